package quest

import "time"

// Goal represents the user's body-composition goal.
type Goal string

// Goal constants.
const (
	GoalLoseWeight Goal = "lose_weight"
	GoalMaintain   Goal = "maintain"
	GoalGainMuscle Goal = "gain_muscle"
)

// ActivityLevel classifies non-training daily activity.
type ActivityLevel string

// Activity level constants, ordered from least to most active.
const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// TrainingStyle determines the rep scheme of the workout block.
type TrainingStyle string

// Training style constants.
const (
	StylePower TrainingStyle = "power"
	StylePump  TrainingStyle = "pump"
)

// BodyPart is the body part trained on a given day. Rest-like values (rest,
// off, empty) produce no workout block.
type BodyPart string

// Body part constants.
const (
	BodyPartLegs      BodyPart = "legs"
	BodyPartBack      BodyPart = "back"
	BodyPartChest     BodyPart = "chest"
	BodyPartShoulders BodyPart = "shoulders"
	BodyPartArms      BodyPart = "arms"
	BodyPartCore      BodyPart = "core"
	BodyPartAbs       BodyPart = "abs"
	BodyPartFullBody  BodyPart = "full_body"
	BodyPartLowerBody BodyPart = "lower_body"
	BodyPartCardio    BodyPart = "cardio"
	BodyPartRest      BodyPart = "rest"
	BodyPartOff       BodyPart = "off"
)

// SlotLabel marks the semantic role of a meal slot within the day.
type SlotLabel string

// Slot label constants. Regular slots carry the empty label.
const (
	LabelPostWake    SlotLabel = "post-wake"
	LabelPreWorkout  SlotLabel = "pre-workout"
	LabelPostWorkout SlotLabel = "post-workout"
	LabelRegular     SlotLabel = ""
)

// MacroGrams holds protein, fat, and carbohydrate amounts in grams.
type MacroGrams struct {
	Protein int `json:"protein"`
	Fat     int `json:"fat"`
	Carb    int `json:"carb"`
}

// Calories converts the macro grams to kilocalories (4/9/4 rule).
func (m MacroGrams) Calories() int {
	return m.Protein*caloriesPerGramProtein + m.Fat*caloriesPerGramFat + m.Carb*caloriesPerGramCarb
}

// Profile describes the user for one day's quest generation. It is treated as
// immutable input: generation never mutates it.
type Profile struct {
	WeightKg                float64       `json:"weightKg"`
	BodyFatPercent          float64       `json:"bodyFatPercent"`
	ActivityLevel           ActivityLevel `json:"activityLevel"`
	Goal                    Goal          `json:"goal"`
	WakeTime                string        `json:"wakeTime"`
	SleepTime               string        `json:"sleepTime"`
	TrainingTime            string        `json:"trainingTime"`
	TrainingAfterMeal       int           `json:"trainingAfterMeal"`
	TrainingDurationMinutes int           `json:"trainingDurationMinutes"`
	TrainingStyle           TrainingStyle `json:"trainingStyle"`
	TrainedBodyPart         BodyPart      `json:"trainedBodyPart"`
	MealsPerDay             int           `json:"mealsPerDay"`
	BudgetTier              int           `json:"budgetTier"`
	// NGFoods lists foods the user refuses; matching is by substring in
	// either direction against food ids and names.
	NGFoods []string `json:"ngFoods,omitempty"`
	// EatingOutSlots lists slot numbers that intentionally get no foods.
	EatingOutSlots []int `json:"eatingOutSlots,omitempty"`
	// MacroOverride replaces the ratio-based macro split when set.
	MacroOverride *MacroGrams `json:"macroOverride,omitempty"`
}

// DailyTargets is the daily calorie and macro budget derived from the profile.
type DailyTargets struct {
	Calories int        `json:"calories"`
	Macros   MacroGrams `json:"macros"`
}

// FoodPortion is a single food assignment within a meal slot.
type FoodPortion struct {
	FoodID      string `json:"foodId"`
	AmountGrams int    `json:"amountGrams"`
}

// MealSlot is one scheduled eating occasion.
type MealSlot struct {
	Number    int           `json:"number"`
	ClockTime string        `json:"clockTime"`
	Label     SlotLabel     `json:"label"`
	Target    MacroGrams    `json:"target"`
	Foods     []FoodPortion `json:"foods"`
	EatingOut bool          `json:"eatingOut"`
}

// WorkoutBlock describes the day's training. Nil on rest days.
type WorkoutBlock struct {
	Name                   string `json:"name"`
	ExerciseCount          int    `json:"exerciseCount"`
	SetsPerExercise        int    `json:"setsPerExercise"`
	RepsPerSet             int    `json:"repsPerSet"`
	TotalSets              int    `json:"totalSets"`
	CaloriesBurnedEstimate int    `json:"caloriesBurnedEstimate"`
}

// ShoppingItem aggregates the total amount of one food across all slots.
type ShoppingItem struct {
	FoodID     string `json:"foodId"`
	TotalGrams int    `json:"totalGrams"`
}

// Quest is the complete daily plan for one (user, date) pair. Regeneration
// replaces the whole value, fields are never patched individually.
type Quest struct {
	Date         time.Time      `json:"date"`
	Targets      DailyTargets   `json:"targets"`
	Slots        []MealSlot     `json:"slots"`
	Workout      *WorkoutBlock  `json:"workout,omitempty"`
	SleepHours   float64        `json:"sleepHours"`
	ShoppingList []ShoppingItem `json:"shoppingList"`
	// Validated is false when the self-check could not reconcile totals or a
	// slot had to fall back to a best-effort assignment. Issues lists the
	// human-readable reasons.
	Validated    bool     `json:"validated"`
	Issues       []string `json:"issues,omitempty"`
	CoachMessage string   `json:"coachMessage,omitempty"`
}

// Food is one nutrient reference entry, macro values per 100 grams.
type Food struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	CaloriesPer100g float64 `json:"caloriesPer100g"`
	ProteinPer100g  float64 `json:"proteinPer100g"`
	FatPer100g      float64 `json:"fatPer100g"`
	CarbPer100g     float64 `json:"carbPer100g"`
	BudgetTier      int     `json:"budgetTier"`
}

// Catalog is the read-only food-nutrient reference table keyed by food id.
type Catalog map[string]Food

// ProteinStrategy is the protein-source lookup result for a training day.
type ProteinStrategy struct {
	FoodID          string
	SecondaryFoodID string
	Rationale       string
	// PlaceInFirstSlot pins the source to the first regular slot; later slots
	// fall back to the secondary source.
	PlaceInFirstSlot bool
}

// CarbStrategy is the carbohydrate-source lookup result.
type CarbStrategy struct {
	FoodID    string
	Rationale string
}
