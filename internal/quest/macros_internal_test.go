package quest

import "testing"

func TestDailyMacros(t *testing.T) {
	t.Run("ratio split", func(t *testing.T) {
		got := dailyMacros(3687, nil)
		want := MacroGrams{Protein: 323, Fat: 61, Carb: 461}
		if got != want {
			t.Errorf("dailyMacros(3687, nil) = %+v, want %+v", got, want)
		}
	})
	t.Run("gram override wins", func(t *testing.T) {
		override := MacroGrams{Protein: 180, Fat: 70, Carb: 300}
		if got := dailyMacros(3687, &override); got != override {
			t.Errorf("dailyMacros with override = %+v, want %+v", got, override)
		}
	})
}

func TestWorkoutSnackPortions(t *testing.T) {
	tests := []struct {
		name       string
		calories   int
		mochiGrams int
	}{
		{"large mochi above the calorie band", 2200, 50},
		{"small mochi below the calorie band", 2199, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := workoutSnackPortions(tt.calories)
			want := []FoodPortion{
				{FoodID: "mochi", AmountGrams: tt.mochiGrams},
				{FoodID: "whey_protein", AmountGrams: 30},
			}
			if len(got) != len(want) {
				t.Fatalf("got %d portions, want %d", len(got), len(want))
			}
			for i := range got {
				if got[i] != want[i] {
					t.Errorf("portion %d = %+v, want %+v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestPortionMacros(t *testing.T) {
	got := portionMacros([]FoodPortion{
		{FoodID: "mochi", AmountGrams: 50},
		{FoodID: "whey_protein", AmountGrams: 30},
	}, testCatalog())
	want := MacroGrams{Protein: 25, Fat: 3, Carb: 27}
	if got != want {
		t.Errorf("portionMacros = %+v, want %+v", got, want)
	}
}

func TestPortionMacrosSkipsUnknownFoods(t *testing.T) {
	got := portionMacros([]FoodPortion{{FoodID: "unicorn_steak", AmountGrams: 200}}, testCatalog())
	if got != (MacroGrams{}) {
		t.Errorf("portionMacros with unknown food = %+v, want zero", got)
	}
}

func TestAllocateSlotMacros(t *testing.T) {
	daily := MacroGrams{Protein: 323, Fat: 61, Carb: 461}
	snack := MacroGrams{Protein: 25, Fat: 3, Carb: 27}

	t.Run("locked slots keep snack macros", func(t *testing.T) {
		slots := []scheduledSlot{
			{number: 1, label: LabelPostWake},
			{number: 2, label: LabelPreWorkout},
			{number: 3, label: LabelPostWorkout},
			{number: 4, label: LabelRegular},
			{number: 5, label: LabelRegular},
		}
		got := allocateSlotMacros(daily, slots, snack)
		// Remainder (273, 55, 407) split over three regular slots.
		share := MacroGrams{Protein: 91, Fat: 18, Carb: 136}
		want := []MacroGrams{share, snack, snack, share, share}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("slot %d target = %+v, want %+v", i+1, got[i], want[i])
			}
		}
	})

	t.Run("no locked slots splits evenly", func(t *testing.T) {
		slots := []scheduledSlot{
			{number: 1, label: LabelPostWake},
			{number: 2, label: LabelRegular},
			{number: 3, label: LabelRegular},
		}
		got := allocateSlotMacros(daily, slots, snack)
		want := MacroGrams{Protein: 108, Fat: 20, Carb: 154}
		for i := range got {
			if got[i] != want {
				t.Errorf("slot %d target = %+v, want %+v", i+1, got[i], want)
			}
		}
	})

	t.Run("two meals with training fall back to an even split", func(t *testing.T) {
		slots := []scheduledSlot{
			{number: 1, label: LabelPreWorkout},
			{number: 2, label: LabelPostWorkout},
		}
		got := allocateSlotMacros(daily, slots, snack)
		want := MacroGrams{Protein: 162, Fat: 31, Carb: 231}
		for i := range got {
			if got[i] != want {
				t.Errorf("slot %d target = %+v, want %+v", i+1, got[i], want)
			}
		}
	})
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{1.4, 1},
		{1.5, 2},
		{2.5, 3},
		{-0.4, 0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := roundHalfUp(tt.in); got != tt.want {
			t.Errorf("roundHalfUp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
