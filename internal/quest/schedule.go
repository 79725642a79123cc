package quest

import "fmt"

// Clock arithmetic constants. All times are minutes since local midnight; the
// caller supplies already-localized clock strings so no timezone handling
// happens here.
const (
	minutesPerDay      = 24 * 60
	minutesPerHour     = 60
	mealCadenceMinutes = 180
	// preWorkoutLeadMinutes is how long before training the pre-workout meal
	// is scheduled.
	preWorkoutLeadMinutes = 120

	defaultWakeMinutes             = 7 * minutesPerHour
	defaultSleepMinutes            = 22 * minutesPerHour
	defaultTrainingDurationMinutes = 120
)

// scheduledSlot is a meal slot before foods and macros are assigned.
type scheduledSlot struct {
	number      int
	minuteOfDay int
	label       SlotLabel
}

// parseClock parses a "HH:MM" string into minutes since midnight.
func parseClock(s string) (int, bool) {
	var hours, minutes int
	if _, err := fmt.Sscanf(s, "%d:%d", &hours, &minutes); err != nil {
		return 0, false
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*minutesPerHour + minutes, true
}

// formatClock renders minutes since midnight as "HH:MM", wrapping at 24h.
func formatClock(minuteOfDay int) string {
	minuteOfDay = ((minuteOfDay % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minuteOfDay/minutesPerHour, minuteOfDay%minutesPerHour)
}

// clockOrDefault parses a clock string, falling back to a default on malformed
// input. The soft fallback keeps quest generation going on partial profiles;
// the service layer logs when it kicks in.
func clockOrDefault(s string, fallback int) int {
	if minute, ok := parseClock(s); ok {
		return minute
	}
	return fallback
}

// allocateSlots produces the day's meal schedule.
//
// Slot 1 starts at wake time labeled post-wake and the rest follow at a fixed
// three hour cadence. When training is scheduled after meal k, slot k moves to
// two hours before training (pre-workout) and slot k+1 to right after training
// (post-workout); later slots resume the cadence from there. A training index
// beyond the last meal simply drops the post-workout slot.
func allocateSlots(p Profile) []scheduledSlot {
	wake := clockOrDefault(p.WakeTime, defaultWakeMinutes)

	trainingMinute, hasTraining := parseClock(p.TrainingTime)
	hasTraining = hasTraining && p.TrainingAfterMeal >= 1
	trainingDuration := p.TrainingDurationMinutes
	if trainingDuration <= 0 {
		trainingDuration = defaultTrainingDurationMinutes
	}

	slots := make([]scheduledSlot, 0, p.MealsPerDay)
	previous := 0
	for i := 1; i <= p.MealsPerDay; i++ {
		var slot scheduledSlot
		switch {
		case hasTraining && i == p.TrainingAfterMeal:
			slot = scheduledSlot{
				number:      i,
				minuteOfDay: wrapMinute(trainingMinute - preWorkoutLeadMinutes),
				label:       LabelPreWorkout,
			}
		case hasTraining && i == p.TrainingAfterMeal+1:
			slot = scheduledSlot{
				number:      i,
				minuteOfDay: wrapMinute(trainingMinute + trainingDuration),
				label:       LabelPostWorkout,
			}
		case i == 1:
			slot = scheduledSlot{number: i, minuteOfDay: wake, label: LabelPostWake}
		default:
			slot = scheduledSlot{
				number:      i,
				minuteOfDay: wrapMinute(previous + mealCadenceMinutes),
				label:       LabelRegular,
			}
		}
		slots = append(slots, slot)
		previous = slot.minuteOfDay
	}
	return slots
}

// wrapMinute normalizes a minute offset into [0, minutesPerDay).
func wrapMinute(minute int) int {
	return ((minute % minutesPerDay) + minutesPerDay) % minutesPerDay
}

// sleepDurationHours computes the nightly sleep target from sleep and wake
// clock times, crossing midnight when needed.
func sleepDurationHours(wakeTime, sleepTime string) float64 {
	wake := clockOrDefault(wakeTime, defaultWakeMinutes)
	sleep := clockOrDefault(sleepTime, defaultSleepMinutes)
	minutes := wrapMinute(wake - sleep)
	return float64(minutes) / minutesPerHour
}
