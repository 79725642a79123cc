package quest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/myrjola/questapp/internal/errors"
)

// issueSeparator joins quest issues into one column. Newline is safe because
// issues are single-line sentences.
const issueSeparator = "\n"

// getQuest retrieves the quest for a (user, date) pair including its slots and
// food assignments.
func (r *sqliteRepository) getQuest(ctx context.Context, userID string, date time.Time) (Quest, error) {
	quest, err := r.queryQuestRow(ctx, userID, date)
	if err != nil {
		return Quest{}, err
	}

	if quest.Slots, err = r.queryQuestSlots(ctx, userID, date); err != nil {
		return Quest{}, err
	}
	quest.ShoppingList = shoppingList(quest.Slots)
	return quest, nil
}

func (r *sqliteRepository) queryQuestRow(ctx context.Context, userID string, date time.Time) (Quest, error) {
	var (
		quest       Quest
		issues      string
		workoutName sql.NullString
		exercises   sql.NullInt64
		setsPerEx   sql.NullInt64
		repsPerSet  sql.NullInt64
		burned      sql.NullInt64
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT target_calories, target_protein_g, target_fat_g, target_carb_g,
		       sleep_hours, validated, issues, coach_message,
		       workout_name, workout_exercises, workout_sets_per_exercise,
		       workout_reps_per_set, workout_calories_burned
		FROM quests
		WHERE user_id = ? AND quest_date = ?`,
		userID, date.Format(dateFormat)).Scan(
		&quest.Targets.Calories,
		&quest.Targets.Macros.Protein,
		&quest.Targets.Macros.Fat,
		&quest.Targets.Macros.Carb,
		&quest.SleepHours,
		&quest.Validated,
		&issues,
		&quest.CoachMessage,
		&workoutName,
		&exercises,
		&setsPerEx,
		&repsPerSet,
		&burned,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Quest{}, errors.Wrap(ErrNotFound, "quest")
	}
	if err != nil {
		return Quest{}, fmt.Errorf("query quest: %w", err)
	}

	quest.Date = date
	if issues != "" {
		quest.Issues = strings.Split(issues, issueSeparator)
	}
	if workoutName.Valid {
		quest.Workout = &WorkoutBlock{
			Name:                   workoutName.String,
			ExerciseCount:          int(exercises.Int64),
			SetsPerExercise:        int(setsPerEx.Int64),
			RepsPerSet:             int(repsPerSet.Int64),
			TotalSets:              int(exercises.Int64) * int(setsPerEx.Int64),
			CaloriesBurnedEstimate: int(burned.Int64),
		}
	}
	return quest, nil
}

func (r *sqliteRepository) queryQuestSlots(ctx context.Context, userID string, date time.Time) ([]MealSlot, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT s.slot_number, s.clock_time, s.label, s.eating_out,
		       s.target_protein_g, s.target_fat_g, s.target_carb_g,
		       f.food_id, f.amount_grams
		FROM quest_slots s
		LEFT JOIN quest_slot_foods f
		       ON f.user_id = s.user_id AND f.quest_date = s.quest_date AND f.slot_number = s.slot_number
		WHERE s.user_id = ? AND s.quest_date = ?
		ORDER BY s.slot_number, f.food_id`,
		userID, date.Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("query quest slots: %w", err)
	}
	defer rows.Close()

	var slots []MealSlot
	for rows.Next() {
		var (
			slot   MealSlot
			foodID sql.NullString
			grams  sql.NullInt64
		)
		if err = rows.Scan(
			&slot.Number,
			&slot.ClockTime,
			&slot.Label,
			&slot.EatingOut,
			&slot.Target.Protein,
			&slot.Target.Fat,
			&slot.Target.Carb,
			&foodID,
			&grams,
		); err != nil {
			return nil, fmt.Errorf("scan quest slot row: %w", err)
		}

		if len(slots) == 0 || slots[len(slots)-1].Number != slot.Number {
			slots = append(slots, slot)
		}
		if foodID.Valid {
			last := &slots[len(slots)-1]
			last.Foods = append(last.Foods, FoodPortion{
				FoodID:      foodID.String,
				AmountGrams: int(grams.Int64),
			})
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quest slot rows: %w", err)
	}
	return slots, nil
}

// saveQuest replaces the stored quest for a (user, date) pair. Deleting the
// quest row cascades to slots and foods, so regeneration never leaves stale
// assignments behind.
func (r *sqliteRepository) saveQuest(ctx context.Context, userID string, quest Quest) error {
	dateStr := quest.Date.Format(dateFormat)

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer r.rollback(ctx, tx)

	if _, err = tx.ExecContext(ctx, `
		DELETE FROM quests WHERE user_id = ? AND quest_date = ?`,
		userID, dateStr); err != nil {
		return fmt.Errorf("delete previous quest: %w", err)
	}

	var workoutName, exercises, setsPerEx, repsPerSet, burned any
	if quest.Workout != nil {
		workoutName = quest.Workout.Name
		exercises = quest.Workout.ExerciseCount
		setsPerEx = quest.Workout.SetsPerExercise
		repsPerSet = quest.Workout.RepsPerSet
		burned = quest.Workout.CaloriesBurnedEstimate
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO quests (
			user_id, quest_date, target_calories, target_protein_g, target_fat_g,
			target_carb_g, sleep_hours, validated, issues, coach_message,
			workout_name, workout_exercises, workout_sets_per_exercise,
			workout_reps_per_set, workout_calories_burned
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, dateStr,
		quest.Targets.Calories,
		quest.Targets.Macros.Protein,
		quest.Targets.Macros.Fat,
		quest.Targets.Macros.Carb,
		quest.SleepHours,
		quest.Validated,
		strings.Join(quest.Issues, issueSeparator),
		quest.CoachMessage,
		workoutName, exercises, setsPerEx, repsPerSet, burned,
	); err != nil {
		return fmt.Errorf("insert quest: %w", err)
	}

	for _, slot := range quest.Slots {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO quest_slots (
				user_id, quest_date, slot_number, clock_time, label, eating_out,
				target_protein_g, target_fat_g, target_carb_g
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, dateStr, slot.Number, slot.ClockTime, string(slot.Label),
			slot.EatingOut, slot.Target.Protein, slot.Target.Fat, slot.Target.Carb,
		); err != nil {
			return fmt.Errorf("insert quest slot %d: %w", slot.Number, err)
		}

		for _, portion := range slot.Foods {
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO quest_slot_foods (
					user_id, quest_date, slot_number, food_id, amount_grams
				) VALUES (?, ?, ?, ?, ?)
				ON CONFLICT (user_id, quest_date, slot_number, food_id) DO UPDATE SET
					amount_grams = quest_slot_foods.amount_grams + excluded.amount_grams`,
				userID, dateStr, slot.Number, portion.FoodID, portion.AmountGrams,
			); err != nil {
				return fmt.Errorf("insert quest slot food %s: %w", portion.FoodID, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
