// Package quest derives a complete, deterministic daily plan (meals, workout,
// sleep, shopping list) from a user profile and a food-nutrient catalog.
package quest

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/myrjola/questapp/internal/errors"
)

// ErrInvalidProfile is returned when the profile fails its hard
// preconditions. Unlike scheduling soft-fallbacks, generation refuses to
// guess around a non-physiological body composition.
var ErrInvalidProfile = errors.NewSentinel("invalid profile")

// Portion solving constants.
const (
	portionStepGrams         = 10
	maxProteinPortionGrams   = 300
	maxCarbPortionGrams      = 500
	minSlotProteinGrams      = 20
	maxProteinSourcesPerSlot = 2
	// proteinShortfallGrams is the largest acceptable gap between a slot's
	// protein target and what the permitted sources could deliver.
	proteinShortfallGrams = 5
	// carbAssignFloorGrams below which no dedicated carb portion is added.
	carbAssignFloorGrams = 5
)

// Workout block constants.
const (
	minutesPerExercise = 30
	setsPerExercise    = 5
	repsPerSetPower    = 5
	repsPerSetPump     = 10
)

// proteinFallbacks are tried in order when the strategy sources are excluded.
var proteinFallbacks = []string{foodChickenBreast, foodEggWhole, "tofu", "natto"}

// carbFallbacks are tried in order when the strategy carb source is excluded.
var carbFallbacks = []string{foodWhiteRice, foodBrownRice, "sweet_potato", "banana"}

// generator assembles daily quests. It only reads its inputs; every
// invocation allocates fresh output, so concurrent use is safe.
type generator struct {
	profile Profile
	catalog Catalog
}

// Generate derives the quest for one date. It is a pure function: identical
// profile, date, and catalog always produce an identical quest.
func Generate(profile Profile, date time.Time, catalog Catalog) (Quest, error) {
	gen, err := newGenerator(profile, catalog)
	if err != nil {
		return Quest{}, err
	}
	return gen.generate(date), nil
}

// newGenerator validates the inputs and constructs a generator.
func newGenerator(profile Profile, catalog Catalog) (*generator, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, errors.New("food catalog cannot be empty")
	}
	return &generator{profile: profile, catalog: catalog}, nil
}

// validateProfile enforces the hard input preconditions.
func validateProfile(p Profile) error {
	if p.WeightKg <= 0 {
		return errors.Wrap(ErrInvalidProfile, "weight must be positive",
			slog.Float64("weightKg", p.WeightKg))
	}
	if p.BodyFatPercent <= 0 || p.BodyFatPercent >= 100 {
		return errors.Wrap(ErrInvalidProfile, "body fat percent out of range",
			slog.Float64("bodyFatPercent", p.BodyFatPercent))
	}
	if p.MealsPerDay < 1 {
		return errors.Wrap(ErrInvalidProfile, "meals per day must be at least 1",
			slog.Int("mealsPerDay", p.MealsPerDay))
	}
	if _, ok := activityMultipliers[p.ActivityLevel]; !ok {
		return errors.Wrap(ErrInvalidProfile, "unknown activity level",
			slog.String("activityLevel", string(p.ActivityLevel)))
	}
	return nil
}

// generate runs the full pipeline: schedule, energy, macros, strategy,
// assembly, self-check.
func (g *generator) generate(date time.Time) Quest {
	calories := targetCalories(g.profile)
	targets := DailyTargets{
		Calories: calories,
		Macros:   dailyMacros(calories, g.profile.MacroOverride),
	}

	scheduled := allocateSlots(g.profile)
	snackPortions := workoutSnackPortions(calories)
	snackMacros := portionMacros(snackPortions, g.catalog)
	slotTargets := allocateSlotMacros(targets.Macros, scheduled, snackMacros)

	proteinStrategy := proteinStrategyFor(g.profile.TrainedBodyPart, g.profile.BudgetTier)
	carbStrategy := carbStrategyFor(g.profile.Goal)

	var issues []string
	slots := make([]MealSlot, len(scheduled))
	firstRegular := firstRegularSlot(scheduled, g.profile.EatingOutSlots)
	for i, sched := range scheduled {
		slot := MealSlot{
			Number:    sched.number,
			ClockTime: formatClock(sched.minuteOfDay),
			Label:     sched.label,
			Target:    slotTargets[i],
			Foods:     nil,
			EatingOut: slices.Contains(g.profile.EatingOutSlots, sched.number),
		}
		switch {
		case slot.EatingOut:
			// Intentionally empty, not a failure.
		case sched.label == LabelPreWorkout || sched.label == LabelPostWorkout:
			slot.Foods = slices.Clone(snackPortions)
		default:
			var slotIssues []string
			slot.Foods, slotIssues = g.assignFoods(slotTargets[i], sched.number, firstRegular,
				proteinStrategy, carbStrategy)
			issues = append(issues, slotIssues...)
		}
		slots[i] = slot
	}

	quest := Quest{
		Date:         date,
		Targets:      targets,
		Slots:        slots,
		Workout:      g.workoutBlock(),
		SleepHours:   sleepDurationHours(g.profile.WakeTime, g.profile.SleepTime),
		ShoppingList: nil,
		Validated:    true,
		Issues:       issues,
		CoachMessage: "",
	}

	g.selfCheck(&quest)
	quest.ShoppingList = shoppingList(quest.Slots)
	if len(quest.Issues) > 0 {
		quest.Validated = false
	}
	return quest
}

// firstRegularSlot finds the slot number where a place-in-first-slot protein
// source belongs: the first slot that is neither locked nor eating out.
func firstRegularSlot(scheduled []scheduledSlot, eatingOut []int) int {
	for _, sched := range scheduled {
		if sched.label == LabelPreWorkout || sched.label == LabelPostWorkout {
			continue
		}
		if slices.Contains(eatingOut, sched.number) {
			continue
		}
		return sched.number
	}
	return 0
}

// assignFoods solves gram amounts for one regular slot: protein sources first
// (at most two, nearest 10g, at least the protein floor), then a carb source
// to cover the rest of the carbohydrate target. Unsatisfiable targets produce
// a best-effort assignment plus an issue, never an empty slot.
func (g *generator) assignFoods(
	target MacroGrams,
	slotNumber int,
	firstRegular int,
	proteinStrategy ProteinStrategy,
	carbStrategy CarbStrategy,
) ([]FoodPortion, []string) {
	var (
		portions []FoodPortion
		issues   []string
	)

	proteinTarget := maxInt(target.Protein, minSlotProteinGrams)
	remaining := float64(proteinTarget)
	for _, food := range g.proteinCandidates(slotNumber, firstRegular, proteinStrategy) {
		if len(portions) >= maxProteinSourcesPerSlot || remaining < 1 {
			break
		}
		grams := roundToStep(remaining * 100 / food.ProteinPer100g)
		if grams > maxProteinPortionGrams {
			grams = maxProteinPortionGrams
		}
		if grams <= 0 {
			grams = portionStepGrams
		}
		portions = append(portions, FoodPortion{FoodID: food.ID, AmountGrams: grams})
		remaining -= food.ProteinPer100g * float64(grams) / 100
	}
	if len(portions) == 0 {
		issues = append(issues, fmt.Sprintf("slot %d: no permitted protein source", slotNumber))
	} else if remaining > proteinShortfallGrams {
		issues = append(issues, fmt.Sprintf("slot %d: protein short by %dg", slotNumber, roundHalfUp(remaining)))
	}

	carbSoFar := portionMacros(portions, g.catalog).Carb
	carbNeeded := target.Carb - carbSoFar
	if carbNeeded >= carbAssignFloorGrams {
		if food, ok := g.carbSource(carbStrategy); ok {
			grams := roundToStep(float64(carbNeeded) * 100 / food.CarbPer100g)
			if grams > maxCarbPortionGrams {
				grams = maxCarbPortionGrams
			}
			if grams > 0 {
				portions = append(portions, FoodPortion{FoodID: food.ID, AmountGrams: grams})
			}
		} else {
			issues = append(issues, fmt.Sprintf("slot %d: no permitted carbohydrate source", slotNumber))
		}
	}

	return portions, issues
}

// proteinCandidates returns the permitted protein sources for a slot in
// preference order. A place-in-first-slot primary is only offered to the
// first regular slot; other slots start from the secondary source.
func (g *generator) proteinCandidates(
	slotNumber int,
	firstRegular int,
	strategy ProteinStrategy,
) []Food {
	ordered := []string{strategy.FoodID, strategy.SecondaryFoodID}
	if strategy.PlaceInFirstSlot && slotNumber != firstRegular {
		ordered = []string{strategy.SecondaryFoodID}
	}
	ordered = append(ordered, proteinFallbacks...)

	var candidates []Food
	seen := make(map[string]bool, len(ordered))
	for _, id := range ordered {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		food, ok := g.catalog[id]
		if !ok || food.ProteinPer100g <= 0 {
			continue
		}
		if matchesNGList(food, g.profile.NGFoods) {
			continue
		}
		candidates = append(candidates, food)
	}
	return candidates
}

// carbSource picks the first permitted carbohydrate source, starting from the
// strategy's preference.
func (g *generator) carbSource(strategy CarbStrategy) (Food, bool) {
	ordered := append([]string{strategy.FoodID}, carbFallbacks...)
	seen := make(map[string]bool, len(ordered))
	for _, id := range ordered {
		if seen[id] {
			continue
		}
		seen[id] = true
		food, ok := g.catalog[id]
		if !ok || food.CarbPer100g <= 0 {
			continue
		}
		if matchesNGList(food, g.profile.NGFoods) {
			continue
		}
		return food, true
	}
	return Food{}, false
}

// matchesNGList reports whether the food is excluded by the NG list.
// Matching is case-insensitive substring in either direction against both the
// food id and its display name.
func matchesNGList(food Food, ngFoods []string) bool {
	id := strings.ToLower(food.ID)
	name := strings.ToLower(food.Name)
	for _, ng := range ngFoods {
		ng = strings.ToLower(strings.TrimSpace(ng))
		if ng == "" {
			continue
		}
		for _, candidate := range []string{id, name} {
			if strings.Contains(candidate, ng) || strings.Contains(ng, candidate) {
				return true
			}
		}
	}
	return false
}

// workoutBlock builds the day's training block, nil on rest days.
func (g *generator) workoutBlock() *WorkoutBlock {
	part := g.profile.TrainedBodyPart
	if isRestDay(part) {
		return nil
	}

	duration := g.profile.TrainingDurationMinutes
	if duration <= 0 {
		duration = defaultTrainingDurationMinutes
	}
	exerciseCount := maxInt(1, duration/minutesPerExercise)

	repsPerSet := repsPerSetPump
	if g.profile.TrainingStyle == StylePower {
		repsPerSet = repsPerSetPower
	}

	lbm, _ := leanBodyMass(g.profile.WeightKg, g.profile.BodyFatPercent)
	return &WorkoutBlock{
		Name:                   workoutName(part),
		ExerciseCount:          exerciseCount,
		SetsPerExercise:        setsPerExercise,
		RepsPerSet:             repsPerSet,
		TotalSets:              exerciseCount * setsPerExercise,
		CaloriesBurnedEstimate: int(math.Round(trainingBonus(part, lbm))),
	}
}

// workoutName renders a body part as a human-readable session name.
func workoutName(part BodyPart) string {
	name := strings.ReplaceAll(string(part), "_", " ")
	return name + " session"
}

// shoppingList aggregates food amounts across all slots, one entry per
// distinct food, sorted by id for deterministic output.
func shoppingList(slots []MealSlot) []ShoppingItem {
	totals := make(map[string]int)
	for _, slot := range slots {
		for _, portion := range slot.Foods {
			totals[portion.FoodID] += portion.AmountGrams
		}
	}

	items := make([]ShoppingItem, 0, len(totals))
	for foodID, grams := range totals {
		items = append(items, ShoppingItem{FoodID: foodID, TotalGrams: grams})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].FoodID < items[j].FoodID
	})
	return items
}

// roundToStep rounds grams to the nearest portion step (10g).
func roundToStep(grams float64) int {
	return int(math.Round(grams/portionStepGrams)) * portionStepGrams
}
