package quest

import (
	"fmt"
	"slices"
)

// Self-check constants. The calorie window is asymmetric: plans land slightly
// under target rather than over.
const (
	calorieWindowLowOffset  = 150
	calorieWindowHighOffset = 50
	carbAdjustStepGrams     = 10
	// maxAdjustIterations bounds the correction loop. The window is 100 kcal
	// wide and each step moves roughly 4 kcal per carb gram, so this is ample.
	maxAdjustIterations = 24
	// proteinCeilingGrams over target before the plan is flagged. Carb sources
	// carry a few grams of protein per portion, so the ceiling leaves room for
	// them on top of the solved protein portions.
	proteinCeilingGrams = 25
)

// adjustableCarbFoods are the only foods the self-check may resize. Protein
// sources are never touched: a corrected plan must still hit its protein
// target.
var adjustableCarbFoods = []string{foodWhiteRice, foodBrownRice, "sweet_potato", "banana"}

// selfCheck verifies the assembled quest against its own targets and repairs
// small calorie drift by resizing carbohydrate portions. It mutates the quest
// in place, appending issues when the plan cannot be brought into the window.
// It never fails: an out-of-window plan ships flagged, not rejected.
func (g *generator) selfCheck(q *Quest) {
	low := q.Targets.Calories - calorieWindowLowOffset
	high := q.Targets.Calories - calorieWindowHighOffset

	for i := 0; i < maxAdjustIterations; i++ {
		calories := g.questCalories(q)
		if calories >= low && calories <= high {
			break
		}
		if !g.adjustCarbs(q, calories < low) {
			break
		}
	}

	calories := g.questCalories(q)
	if calories < low || calories > high {
		q.Issues = append(q.Issues, fmt.Sprintf(
			"calories %d outside window [%d, %d]", calories, low, high))
	}

	totals := g.questMacros(q)
	if totals.Protein > q.Targets.Macros.Protein+proteinCeilingGrams {
		q.Issues = append(q.Issues, fmt.Sprintf(
			"protein %dg exceeds target %dg", totals.Protein, q.Targets.Macros.Protein))
	}
}

// questCalories sums the calorie content of every assigned portion.
func (g *generator) questCalories(q *Quest) int {
	var calories float64
	for _, slot := range q.Slots {
		for _, portion := range slot.Foods {
			food, ok := g.catalog[portion.FoodID]
			if !ok {
				continue
			}
			calories += food.CaloriesPer100g * float64(portion.AmountGrams) / 100
		}
	}
	return roundHalfUp(calories)
}

// questMacros sums macro grams across all assigned portions.
func (g *generator) questMacros(q *Quest) MacroGrams {
	var all []FoodPortion
	for _, slot := range q.Slots {
		all = append(all, slot.Foods...)
	}
	return portionMacros(all, g.catalog)
}

// adjustCarbs grows or shrinks one carbohydrate portion by a single step.
// Only regular slots are candidates, locked workout snacks stay fixed. The
// largest adjustable portion is picked, first slot winning ties, so repeated
// runs over the same quest stay deterministic. Returns false when no portion
// can move.
func (g *generator) adjustCarbs(q *Quest, grow bool) bool {
	bestSlot, bestFood := -1, -1
	bestGrams := -1
	for si, slot := range q.Slots {
		if slot.Label == LabelPreWorkout || slot.Label == LabelPostWorkout || slot.EatingOut {
			continue
		}
		for fi, portion := range slot.Foods {
			if !slices.Contains(adjustableCarbFoods, portion.FoodID) {
				continue
			}
			if grow && portion.AmountGrams+carbAdjustStepGrams > maxCarbPortionGrams {
				continue
			}
			if !grow && portion.AmountGrams-carbAdjustStepGrams < carbAdjustStepGrams {
				continue
			}
			if portion.AmountGrams > bestGrams {
				bestSlot, bestFood, bestGrams = si, fi, portion.AmountGrams
			}
		}
	}
	if bestSlot < 0 {
		return false
	}

	if grow {
		q.Slots[bestSlot].Foods[bestFood].AmountGrams += carbAdjustStepGrams
	} else {
		q.Slots[bestSlot].Foods[bestFood].AmountGrams -= carbAdjustStepGrams
	}
	return true
}
