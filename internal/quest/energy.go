package quest

import "math"

// Katch-McArdle BMR coefficients. The variant with a fat-mass term tracks
// measured resting expenditure better for lean users than the plain formula.
const (
	bmrBaseKcal    = 370.0
	bmrPerKgLBM    = 21.6
	bmrPerKgFat    = 4.5
)

// Calorie adjustment constants.
const (
	goalCalorieDelta = 300
	// referenceLBMKg normalizes the training bonus table, which was calibrated
	// against a 60 kg lean mass.
	referenceLBMKg = 60.0
)

// Training bonus classes by muscle mass involved. Large lower-body sessions
// burn markedly more than isolation work.
const (
	bonusClassSSS = 400.0
	bonusClassS   = 250.0
	bonusClassA   = 100.0
)

// activityMultipliers maps activity level to its TDEE multiplier. This is the
// single source of truth for valid activity levels and doubles as input
// validation.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// leanBodyMass splits weight into lean mass and fat mass. Never persisted,
// always recomputed from the profile.
func leanBodyMass(weightKg, bodyFatPercent float64) (lbm, fatMass float64) {
	fatMass = weightKg * bodyFatPercent / 100
	return weightKg - fatMass, fatMass
}

// basalMetabolicRate computes BMR from the body composition split.
func basalMetabolicRate(lbm, fatMass float64) float64 {
	return bmrBaseKcal + bmrPerKgLBM*lbm + bmrPerKgFat*fatMass
}

// goalAdjustment returns the calorie surplus or deficit for the goal.
func goalAdjustment(goal Goal) int {
	switch goal {
	case GoalLoseWeight:
		return -goalCalorieDelta
	case GoalGainMuscle:
		return goalCalorieDelta
	case GoalMaintain:
		return 0
	default:
		return 0
	}
}

// isRestDay reports whether the body part implies no training.
func isRestDay(part BodyPart) bool {
	switch part {
	case BodyPartRest, BodyPartOff, "":
		return true
	default:
		return false
	}
}

// trainingBonusClass returns the calorie bonus class for a trained body part.
func trainingBonusClass(part BodyPart) float64 {
	switch part {
	case BodyPartLegs, BodyPartFullBody, BodyPartLowerBody:
		return bonusClassSSS
	case BodyPartArms, BodyPartCore, BodyPartAbs:
		return bonusClassA
	default:
		return bonusClassS
	}
}

// trainingBonus estimates the extra expenditure of the day's session, scaled
// by the user's lean mass relative to the reference.
func trainingBonus(part BodyPart, lbm float64) float64 {
	if isRestDay(part) {
		return 0
	}
	return trainingBonusClass(part) * (lbm / referenceLBMKg)
}

// targetCalories derives the daily calorie target from the profile. The
// profile must already be validated, unknown activity levels are a hard
// precondition failure upstream.
func targetCalories(p Profile) int {
	lbm, fatMass := leanBodyMass(p.WeightKg, p.BodyFatPercent)
	bmr := basalMetabolicRate(lbm, fatMass)
	tdee := bmr * activityMultipliers[p.ActivityLevel]
	return int(math.Round(tdee + float64(goalAdjustment(p.Goal)) + trainingBonus(p.TrainedBodyPart, lbm)))
}
