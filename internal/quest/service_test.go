package quest_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/myrjola/questapp/internal/ptr"
	"github.com/myrjola/questapp/internal/quest"
	"github.com/myrjola/questapp/internal/sqlite"
	"github.com/myrjola/questapp/internal/testhelpers"
)

func newTestService(t *testing.T) *quest.Service {
	t.Helper()
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close test database: %v", err)
		}
	})

	return quest.NewService(db, logger, "")
}

func testServiceProfile() quest.Profile {
	return quest.Profile{
		WeightKg:                80,
		BodyFatPercent:          15,
		ActivityLevel:           quest.ActivityModerate,
		Goal:                    quest.GoalGainMuscle,
		WakeTime:                "07:00",
		SleepTime:               "23:00",
		TrainingTime:            "17:00",
		TrainingAfterMeal:       2,
		TrainingDurationMinutes: 120,
		TrainingStyle:           quest.StylePower,
		TrainedBodyPart:         quest.BodyPartLegs,
		MealsPerDay:             5,
		BudgetTier:              2,
	}
}

func TestService_ProfileRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	profile := testServiceProfile()
	profile.NGFoods = []string{"natto", "saba"}
	profile.EatingOutSlots = []int{4}
	profile.MacroOverride = ptr.Ref(quest.MacroGrams{Protein: 200, Fat: 60, Carb: 350})

	if err := svc.SaveProfile(ctx, "user-1", profile); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	got, err := svc.GetProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if diff := cmp.Diff(profile, got); diff != "" {
		t.Errorf("profile round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestService_GetProfileNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetProfile(t.Context(), "nobody")
	if !errors.Is(err, quest.ErrNotFound) {
		t.Errorf("GetProfile error = %v, want ErrNotFound", err)
	}
}

func TestService_SaveProfileRejectsInvalid(t *testing.T) {
	svc := newTestService(t)

	profile := testServiceProfile()
	profile.WeightKg = -10
	err := svc.SaveProfile(t.Context(), "user-1", profile)
	if !errors.Is(err, quest.ErrInvalidProfile) {
		t.Errorf("SaveProfile error = %v, want ErrInvalidProfile", err)
	}
}

func TestService_GenerateDailyStoresQuest(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	if err := svc.SaveProfile(ctx, "user-1", testServiceProfile()); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	generated, err := svc.GenerateDaily(ctx, "user-1", date)
	if err != nil {
		t.Fatalf("GenerateDaily: %v", err)
	}
	if len(generated.Slots) != 5 {
		t.Fatalf("generated %d slots, want 5", len(generated.Slots))
	}

	stored, err := svc.GetQuest(ctx, "user-1", date)
	if err != nil {
		t.Fatalf("GetQuest: %v", err)
	}
	if diff := cmp.Diff(generated, stored); diff != "" {
		t.Errorf("stored quest mismatch (-generated +stored):\n%s", diff)
	}
}

func TestService_GenerateDailyReplacesPreviousQuest(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	profile := testServiceProfile()
	if err := svc.SaveProfile(ctx, "user-1", profile); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if _, err := svc.GenerateDaily(ctx, "user-1", date); err != nil {
		t.Fatalf("first GenerateDaily: %v", err)
	}

	// A profile change must fully replace the stored quest, not merge into it.
	profile.MealsPerDay = 3
	if err := svc.SaveProfile(ctx, "user-1", profile); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	regenerated, err := svc.GenerateDaily(ctx, "user-1", date)
	if err != nil {
		t.Fatalf("second GenerateDaily: %v", err)
	}

	stored, err := svc.GetQuest(ctx, "user-1", date)
	if err != nil {
		t.Fatalf("GetQuest: %v", err)
	}
	if len(stored.Slots) != 3 {
		t.Errorf("stored quest has %d slots after regeneration, want 3", len(stored.Slots))
	}
	if diff := cmp.Diff(regenerated, stored); diff != "" {
		t.Errorf("stored quest mismatch (-regenerated +stored):\n%s", diff)
	}
}

func TestService_GenerateDailyWithoutProfile(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GenerateDaily(t.Context(), "nobody", time.Now())
	if !errors.Is(err, quest.ErrNotFound) {
		t.Errorf("GenerateDaily error = %v, want ErrNotFound", err)
	}
}

func TestService_GenerateWeek(t *testing.T) {
	svc := newTestService(t)
	ctx := t.Context()

	if err := svc.SaveProfile(ctx, "user-1", testServiceProfile()); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	quests, err := svc.GenerateWeek(ctx, "user-1", start)
	if err != nil {
		t.Fatalf("GenerateWeek: %v", err)
	}
	if len(quests) != 7 {
		t.Fatalf("generated %d quests, want 7", len(quests))
	}
	for i, q := range quests {
		want := start.AddDate(0, 0, i)
		if !q.Date.Equal(want) {
			t.Errorf("quest %d date = %v, want %v", i, q.Date, want)
		}
		if _, err := svc.GetQuest(ctx, "user-1", want); err != nil {
			t.Errorf("GetQuest %s: %v", want.Format(time.DateOnly), err)
		}
	}
}

func TestService_ListFoods(t *testing.T) {
	svc := newTestService(t)

	catalog, err := svc.ListFoods(t.Context())
	if err != nil {
		t.Fatalf("ListFoods: %v", err)
	}
	for _, id := range []string{"chicken_breast", "white_rice", "mochi", "whey_protein"} {
		if _, ok := catalog[id]; !ok {
			t.Errorf("catalog missing fixture food %s", id)
		}
	}
}
