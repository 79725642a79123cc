package quest

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/myrjola/questapp/internal/errors"
)

// testCatalog mirrors the fixture food table.
func testCatalog() Catalog {
	foods := []Food{
		{ID: "chicken_breast", Name: "Chicken breast (skinless)", CaloriesPer100g: 108, ProteinPer100g: 22.3, FatPer100g: 1.5, CarbPer100g: 0.0, BudgetTier: 1},
		{ID: "egg_whole", Name: "Whole egg", CaloriesPer100g: 151, ProteinPer100g: 12.3, FatPer100g: 10.3, CarbPer100g: 0.3, BudgetTier: 1},
		{ID: "beef_lean", Name: "Lean beef (round)", CaloriesPer100g: 140, ProteinPer100g: 21.2, FatPer100g: 6.0, CarbPer100g: 0.2, BudgetTier: 2},
		{ID: "saba", Name: "Mackerel (saba)", CaloriesPer100g: 247, ProteinPer100g: 20.6, FatPer100g: 16.8, CarbPer100g: 0.3, BudgetTier: 2},
		{ID: "salmon", Name: "Salmon fillet", CaloriesPer100g: 133, ProteinPer100g: 22.3, FatPer100g: 4.1, CarbPer100g: 0.1, BudgetTier: 2},
		{ID: "white_rice", Name: "White rice (cooked)", CaloriesPer100g: 156, ProteinPer100g: 2.5, FatPer100g: 0.3, CarbPer100g: 37.1, BudgetTier: 1},
		{ID: "brown_rice", Name: "Brown rice (cooked)", CaloriesPer100g: 152, ProteinPer100g: 2.8, FatPer100g: 1.0, CarbPer100g: 35.1, BudgetTier: 1},
		{ID: "mochi", Name: "Mochi rice cake", CaloriesPer100g: 223, ProteinPer100g: 4.0, FatPer100g: 0.5, CarbPer100g: 50.3, BudgetTier: 1},
		{ID: "whey_protein", Name: "Whey protein powder", CaloriesPer100g: 400, ProteinPer100g: 75.0, FatPer100g: 7.5, CarbPer100g: 7.5, BudgetTier: 1},
		{ID: "tofu", Name: "Firm tofu", CaloriesPer100g: 72, ProteinPer100g: 6.6, FatPer100g: 4.2, CarbPer100g: 1.6, BudgetTier: 1},
		{ID: "natto", Name: "Natto", CaloriesPer100g: 190, ProteinPer100g: 16.5, FatPer100g: 10.0, CarbPer100g: 12.1, BudgetTier: 1},
		{ID: "banana", Name: "Banana", CaloriesPer100g: 86, ProteinPer100g: 1.1, FatPer100g: 0.2, CarbPer100g: 22.5, BudgetTier: 1},
		{ID: "sweet_potato", Name: "Sweet potato (steamed)", CaloriesPer100g: 131, ProteinPer100g: 0.9, FatPer100g: 0.2, CarbPer100g: 31.2, BudgetTier: 1},
	}
	catalog := make(Catalog, len(foods))
	for _, food := range foods {
		catalog[food.ID] = food
	}
	return catalog
}

// testProfile is a leg-day bulking profile spread over five meals.
func testProfile() Profile {
	return Profile{
		WeightKg:                80,
		BodyFatPercent:          15,
		ActivityLevel:           ActivityModerate,
		Goal:                    GoalGainMuscle,
		WakeTime:                "07:00",
		SleepTime:               "23:00",
		TrainingTime:            "17:00",
		TrainingAfterMeal:       2,
		TrainingDurationMinutes: 120,
		TrainingStyle:           StylePower,
		TrainedBodyPart:         BodyPartLegs,
		MealsPerDay:             5,
		BudgetTier:              2,
	}
}

func testDate() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func TestGenerate(t *testing.T) {
	quest, err := Generate(testProfile(), testDate(), testCatalog())
	if err != nil {
		t.Fatalf("Generate returned unexpected error: %v", err)
	}

	if got, want := quest.Targets.Calories, 3687; got != want {
		t.Errorf("target calories = %d, want %d", got, want)
	}
	if got, want := len(quest.Slots), 5; got != want {
		t.Fatalf("slot count = %d, want %d", got, want)
	}

	// The training overlay replaces the cadence slots around 17:00 training.
	if got := quest.Slots[1]; got.Label != LabelPreWorkout || got.ClockTime != "15:00" {
		t.Errorf("slot 2 = %s %q, want pre-workout 15:00", got.Label, got.ClockTime)
	}
	if got := quest.Slots[2]; got.Label != LabelPostWorkout || got.ClockTime != "19:00" {
		t.Errorf("slot 3 = %s %q, want post-workout 19:00", got.Label, got.ClockTime)
	}

	// Locked slots carry exactly the fixed mochi and whey portions.
	wantSnack := []FoodPortion{
		{FoodID: "mochi", AmountGrams: 50},
		{FoodID: "whey_protein", AmountGrams: 30},
	}
	for _, i := range []int{1, 2} {
		if diff := cmp.Diff(wantSnack, quest.Slots[i].Foods); diff != "" {
			t.Errorf("slot %d foods mismatch (-want +got):\n%s", i+1, diff)
		}
	}

	// Leg day at budget tier 2 eats lean beef and white rice.
	if !slotContains(quest.Slots[0], "beef_lean") {
		t.Errorf("slot 1 foods = %v, want beef_lean", quest.Slots[0].Foods)
	}
	if !slotContains(quest.Slots[0], "white_rice") {
		t.Errorf("slot 1 foods = %v, want white_rice", quest.Slots[0].Foods)
	}

	if quest.Workout == nil {
		t.Fatal("expected a workout block on a training day")
	}
	wantWorkout := WorkoutBlock{
		Name:                   "legs session",
		ExerciseCount:          4,
		SetsPerExercise:        5,
		RepsPerSet:             5,
		TotalSets:              20,
		CaloriesBurnedEstimate: 453,
	}
	if diff := cmp.Diff(wantWorkout, *quest.Workout); diff != "" {
		t.Errorf("workout mismatch (-want +got):\n%s", diff)
	}

	if got, want := quest.SleepHours, 8.0; got != want {
		t.Errorf("sleep hours = %v, want %v", got, want)
	}
	if !quest.Validated || len(quest.Issues) != 0 {
		t.Errorf("quest not validated, issues: %v", quest.Issues)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	first, err := Generate(testProfile(), testDate(), testCatalog())
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	second, err := Generate(testProfile(), testDate(), testCatalog())
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("regeneration differs (-first +second):\n%s", diff)
	}
}

func TestGenerateCalorieWindow(t *testing.T) {
	quest, err := Generate(testProfile(), testDate(), testCatalog())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	catalog := testCatalog()
	var calories float64
	for _, slot := range quest.Slots {
		for _, portion := range slot.Foods {
			food := catalog[portion.FoodID]
			calories += food.CaloriesPer100g * float64(portion.AmountGrams) / 100
		}
	}
	low := float64(quest.Targets.Calories - calorieWindowLowOffset)
	high := float64(quest.Targets.Calories - calorieWindowHighOffset)
	if calories < low || calories > high {
		t.Errorf("assembled calories %.1f outside [%.0f, %.0f]", calories, low, high)
	}
}

func TestGenerateNGFoodsExcluded(t *testing.T) {
	profile := testProfile()
	profile.NGFoods = []string{"beef", "Natto"}

	quest, err := Generate(profile, testDate(), testCatalog())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, slot := range quest.Slots {
		for _, portion := range slot.Foods {
			if portion.FoodID == "beef_lean" || portion.FoodID == "natto" {
				t.Errorf("slot %d contains excluded food %s", slot.Number, portion.FoodID)
			}
		}
	}
}

func TestGenerateBudgetTierOne(t *testing.T) {
	profile := testProfile()
	profile.BudgetTier = 1

	quest, err := Generate(profile, testDate(), testCatalog())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Tier 1 never buys beef regardless of the trained body part.
	for _, slot := range quest.Slots {
		if slotContains(slot, "beef_lean") {
			t.Errorf("slot %d contains beef_lean at budget tier 1", slot.Number)
		}
	}
	if !slotContains(quest.Slots[0], "chicken_breast") {
		t.Errorf("slot 1 foods = %v, want chicken_breast staple", quest.Slots[0].Foods)
	}
}

func TestGenerateEatingOutSlotEmpty(t *testing.T) {
	profile := testProfile()
	profile.EatingOutSlots = []int{4}

	quest, err := Generate(profile, testDate(), testCatalog())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	slot := quest.Slots[3]
	if !slot.EatingOut {
		t.Error("slot 4 not marked eating out")
	}
	if len(slot.Foods) != 0 {
		t.Errorf("eating out slot has foods: %v", slot.Foods)
	}
}

func TestGenerateRestDay(t *testing.T) {
	profile := testProfile()
	profile.TrainedBodyPart = BodyPartRest
	profile.TrainingTime = ""
	profile.TrainingAfterMeal = 0

	quest, err := Generate(profile, testDate(), testCatalog())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if quest.Workout != nil {
		t.Errorf("expected no workout block on a rest day, got %+v", quest.Workout)
	}
	for _, slot := range quest.Slots {
		if slot.Label == LabelPreWorkout || slot.Label == LabelPostWorkout {
			t.Errorf("slot %d has workout label %s on a rest day", slot.Number, slot.Label)
		}
	}
}

func TestGenerateShoppingListAggregates(t *testing.T) {
	quest, err := Generate(testProfile(), testDate(), testCatalog())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := make(map[string]int)
	for _, slot := range quest.Slots {
		for _, portion := range slot.Foods {
			want[portion.FoodID] += portion.AmountGrams
		}
	}
	if got, wantLen := len(quest.ShoppingList), len(want); got != wantLen {
		t.Fatalf("shopping list has %d entries, want %d", got, wantLen)
	}
	for i, item := range quest.ShoppingList {
		if item.TotalGrams != want[item.FoodID] {
			t.Errorf("shopping list %s = %dg, want %dg", item.FoodID, item.TotalGrams, want[item.FoodID])
		}
		if i > 0 && quest.ShoppingList[i-1].FoodID >= item.FoodID {
			t.Errorf("shopping list not sorted at index %d", i)
		}
	}
}

func TestGenerateInvalidProfile(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"zero weight", func(p *Profile) { p.WeightKg = 0 }},
		{"negative body fat", func(p *Profile) { p.BodyFatPercent = -1 }},
		{"body fat at 100", func(p *Profile) { p.BodyFatPercent = 100 }},
		{"zero meals", func(p *Profile) { p.MealsPerDay = 0 }},
		{"unknown activity level", func(p *Profile) { p.ActivityLevel = "heroic" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := testProfile()
			tt.mutate(&profile)
			_, err := Generate(profile, testDate(), testCatalog())
			if !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("Generate error = %v, want ErrInvalidProfile", err)
			}
		})
	}
}

func TestGenerateEmptyCatalog(t *testing.T) {
	if _, err := Generate(testProfile(), testDate(), Catalog{}); err == nil {
		t.Error("expected an error for an empty catalog")
	}
}

func slotContains(slot MealSlot, foodID string) bool {
	for _, portion := range slot.Foods {
		if portion.FoodID == foodID {
			return true
		}
	}
	return false
}
