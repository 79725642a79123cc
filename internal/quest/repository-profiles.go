package quest

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/myrjola/questapp/internal/errors"
)

// getProfile retrieves the coaching profile for a user.
func (r *sqliteRepository) getProfile(ctx context.Context, userID string) (Profile, error) {
	var (
		profile        Profile
		ngFoods        string
		eatingOutSlots string
		proteinOvr     int
		fatOvr         int
		carbOvr        int
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT weight_kg, body_fat_percent, activity_level, goal,
		       wake_time, sleep_time, training_time, training_after_meal,
		       training_duration_minutes, training_style, trained_body_part,
		       meals_per_day, budget_tier, ng_foods, eating_out_slots,
		       protein_grams_override, fat_grams_override, carb_grams_override
		FROM coaching_profiles
		WHERE user_id = ?`, userID).Scan(
		&profile.WeightKg,
		&profile.BodyFatPercent,
		&profile.ActivityLevel,
		&profile.Goal,
		&profile.WakeTime,
		&profile.SleepTime,
		&profile.TrainingTime,
		&profile.TrainingAfterMeal,
		&profile.TrainingDurationMinutes,
		&profile.TrainingStyle,
		&profile.TrainedBodyPart,
		&profile.MealsPerDay,
		&profile.BudgetTier,
		&ngFoods,
		&eatingOutSlots,
		&proteinOvr,
		&fatOvr,
		&carbOvr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, errors.Wrap(ErrNotFound, "coaching profile")
	}
	if err != nil {
		return Profile{}, fmt.Errorf("query coaching profile: %w", err)
	}

	profile.NGFoods = splitList(ngFoods)
	if profile.EatingOutSlots, err = splitIntList(eatingOutSlots); err != nil {
		return Profile{}, fmt.Errorf("parse eating out slots: %w", err)
	}
	// All-zero overrides mean the ratio-based split applies.
	if proteinOvr > 0 || fatOvr > 0 || carbOvr > 0 {
		profile.MacroOverride = &MacroGrams{Protein: proteinOvr, Fat: fatOvr, Carb: carbOvr}
	}
	return profile, nil
}

// saveProfile creates or replaces the coaching profile for a user.
func (r *sqliteRepository) saveProfile(ctx context.Context, userID string, profile Profile) error {
	var proteinOvr, fatOvr, carbOvr int
	if profile.MacroOverride != nil {
		proteinOvr = profile.MacroOverride.Protein
		fatOvr = profile.MacroOverride.Fat
		carbOvr = profile.MacroOverride.Carb
	}

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO coaching_profiles (
			user_id, weight_kg, body_fat_percent, activity_level, goal,
			wake_time, sleep_time, training_time, training_after_meal,
			training_duration_minutes, training_style, trained_body_part,
			meals_per_day, budget_tier, ng_foods, eating_out_slots,
			protein_grams_override, fat_grams_override, carb_grams_override
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			weight_kg = excluded.weight_kg,
			body_fat_percent = excluded.body_fat_percent,
			activity_level = excluded.activity_level,
			goal = excluded.goal,
			wake_time = excluded.wake_time,
			sleep_time = excluded.sleep_time,
			training_time = excluded.training_time,
			training_after_meal = excluded.training_after_meal,
			training_duration_minutes = excluded.training_duration_minutes,
			training_style = excluded.training_style,
			trained_body_part = excluded.trained_body_part,
			meals_per_day = excluded.meals_per_day,
			budget_tier = excluded.budget_tier,
			ng_foods = excluded.ng_foods,
			eating_out_slots = excluded.eating_out_slots,
			protein_grams_override = excluded.protein_grams_override,
			fat_grams_override = excluded.fat_grams_override,
			carb_grams_override = excluded.carb_grams_override`,
		userID,
		profile.WeightKg,
		profile.BodyFatPercent,
		string(profile.ActivityLevel),
		string(profile.Goal),
		profile.WakeTime,
		profile.SleepTime,
		profile.TrainingTime,
		profile.TrainingAfterMeal,
		profile.TrainingDurationMinutes,
		string(profile.TrainingStyle),
		string(profile.TrainedBodyPart),
		profile.MealsPerDay,
		profile.BudgetTier,
		joinList(profile.NGFoods),
		joinIntList(profile.EatingOutSlots),
		proteinOvr,
		fatOvr,
		carbOvr,
	)
	if err != nil {
		return fmt.Errorf("save coaching profile: %w", err)
	}
	return nil
}

// joinList serializes a string list as a comma-separated column value.
func joinList(values []string) string {
	return strings.Join(values, ",")
}

// splitList parses a comma-separated column value, dropping empty entries.
func splitList(s string) []string {
	var values []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	return values
}

// joinIntList serializes an int list as a comma-separated column value.
func joinIntList(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// splitIntList parses a comma-separated int column value.
func splitIntList(s string) ([]int, error) {
	var values []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("parse int list entry %q: %w", part, err)
		}
		values = append(values, v)
	}
	return values, nil
}
