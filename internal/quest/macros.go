package quest

import "math"

// Macro energy densities in kcal per gram.
const (
	caloriesPerGramProtein = 4
	caloriesPerGramFat     = 9
	caloriesPerGramCarb    = 4
)

// Default macro split when the profile carries no gram overrides.
const (
	defaultProteinRatio = 0.35
	defaultFatRatio     = 0.15
	defaultCarbRatio    = 0.50
)

// Fixed pre/post-workout snack composition: a mochi rice cake sized by the
// calorie budget plus one scoop of whey.
const (
	mochiFoodID         = "mochi"
	wheyFoodID          = "whey_protein"
	mochiLargeGrams     = 50
	mochiSmallGrams     = 25
	mochiCalorieBand    = 2200
	wheyServingGrams    = 30
)

// dailyMacros splits the calorie target into macro gram targets, either from
// the default ratio or from explicit overrides.
func dailyMacros(calories int, override *MacroGrams) MacroGrams {
	if override != nil {
		return *override
	}
	return MacroGrams{
		Protein: roundHalfUp(float64(calories) * defaultProteinRatio / caloriesPerGramProtein),
		Fat:     roundHalfUp(float64(calories) * defaultFatRatio / caloriesPerGramFat),
		Carb:    roundHalfUp(float64(calories) * defaultCarbRatio / caloriesPerGramCarb),
	}
}

// workoutSnackPortions returns the locked pre/post-workout food assignment.
func workoutSnackPortions(targetCalories int) []FoodPortion {
	mochiGrams := mochiSmallGrams
	if targetCalories >= mochiCalorieBand {
		mochiGrams = mochiLargeGrams
	}
	return []FoodPortion{
		{FoodID: mochiFoodID, AmountGrams: mochiGrams},
		{FoodID: wheyFoodID, AmountGrams: wheyServingGrams},
	}
}

// portionMacros sums the macro grams of the given portions via the catalog.
func portionMacros(portions []FoodPortion, catalog Catalog) MacroGrams {
	var protein, fat, carb float64
	for _, portion := range portions {
		food, ok := catalog[portion.FoodID]
		if !ok {
			continue
		}
		factor := float64(portion.AmountGrams) / 100
		protein += food.ProteinPer100g * factor
		fat += food.FatPer100g * factor
		carb += food.CarbPer100g * factor
	}
	return MacroGrams{
		Protein: roundHalfUp(protein),
		Fat:     roundHalfUp(fat),
		Carb:    roundHalfUp(carb),
	}
}

// allocateSlotMacros distributes the daily macro budget across the scheduled
// slots.
//
// Pre/post-workout slots receive the fixed snack macros unmodified; the
// remainder of the budget is divided evenly across the other slots, each value
// independently rounded half up (cumulative drift is the self-check's job).
// When the locked slots leave no room (mealsPerDay of 2 with training) the
// whole budget is divided across all slots instead and the locked slots keep
// their fixed foods but share the even target.
func allocateSlotMacros(daily MacroGrams, slots []scheduledSlot, snack MacroGrams) []MacroGrams {
	lockedCount := 0
	for _, slot := range slots {
		if slot.label == LabelPreWorkout || slot.label == LabelPostWorkout {
			lockedCount++
		}
	}

	remainingCount := len(slots) - lockedCount
	if lockedCount == 0 || remainingCount <= 0 {
		even := evenShare(daily, len(slots))
		targets := make([]MacroGrams, len(slots))
		for i := range slots {
			targets[i] = even
		}
		return targets
	}

	remaining := MacroGrams{
		Protein: maxInt(0, daily.Protein-lockedCount*snack.Protein),
		Fat:     maxInt(0, daily.Fat-lockedCount*snack.Fat),
		Carb:    maxInt(0, daily.Carb-lockedCount*snack.Carb),
	}
	share := evenShare(remaining, remainingCount)

	targets := make([]MacroGrams, len(slots))
	for i, slot := range slots {
		if slot.label == LabelPreWorkout || slot.label == LabelPostWorkout {
			targets[i] = snack
		} else {
			targets[i] = share
		}
	}
	return targets
}

// evenShare divides macros across count slots, rounding each half up.
func evenShare(m MacroGrams, count int) MacroGrams {
	return MacroGrams{
		Protein: roundHalfUp(float64(m.Protein) / float64(count)),
		Fat:     roundHalfUp(float64(m.Fat) / float64(count)),
		Carb:    roundHalfUp(float64(m.Carb) / float64(count)),
	}
}

// roundHalfUp rounds to the nearest integer with halves going up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
