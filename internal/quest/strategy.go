package quest

// Budget tiers. Tier 1 always resolves to the cheapest complete protein
// regardless of the trained body part.
const (
	budgetTierLow  = 1
	budgetTierHigh = 3
)

// Default food ids referenced by the strategy tables. These must exist in the
// catalog fixtures.
const (
	foodChickenBreast = "chicken_breast"
	foodEggWhole      = "egg_whole"
	foodBeefLean      = "beef_lean"
	foodSaba          = "saba"
	foodSalmon        = "salmon"
	foodWhiteRice     = "white_rice"
	foodBrownRice     = "brown_rice"
)

// proteinSourceTable maps trained body parts to their preferred protein
// source at budget tier 2 and above. Read-only.
var proteinSourceTable = map[BodyPart]ProteinStrategy{
	BodyPartLegs: {
		FoodID:          foodBeefLean,
		SecondaryFoodID: foodChickenBreast,
		Rationale:       "heavy lower-body sessions pair with iron-rich red meat",
		PlaceInFirstSlot: false,
	},
	BodyPartBack: {
		FoodID:          foodBeefLean,
		SecondaryFoodID: foodChickenBreast,
		Rationale:       "large pulling volume pairs with iron-rich red meat",
		PlaceInFirstSlot: false,
	},
	BodyPartChest: {
		FoodID:          foodBeefLean,
		SecondaryFoodID: foodChickenBreast,
		Rationale:       "large pressing volume pairs with iron-rich red meat",
		PlaceInFirstSlot: false,
	},
	BodyPartShoulders: {
		FoodID:          foodSaba,
		SecondaryFoodID: foodChickenBreast,
		Rationale:       "omega-3 rich mackerel on shoulder days",
		PlaceInFirstSlot: false,
	},
	BodyPartArms: {
		FoodID:          foodSalmon,
		SecondaryFoodID: foodChickenBreast,
		Rationale:       "salmon early in the day on arm days",
		PlaceInFirstSlot: true,
	},
}

// proteinStrategyFor resolves the protein source for a trained body part and
// budget tier. Pure lookup, identical inputs always yield identical outputs.
func proteinStrategyFor(part BodyPart, budgetTier int) ProteinStrategy {
	if budgetTier <= budgetTierLow {
		return ProteinStrategy{
			FoodID:          foodChickenBreast,
			SecondaryFoodID: foodEggWhole,
			Rationale:       "budget tier 1 staples",
			PlaceInFirstSlot: false,
		}
	}
	if isRestDay(part) || part == BodyPartAbs || part == BodyPartCardio {
		return ProteinStrategy{
			FoodID:          foodChickenBreast,
			SecondaryFoodID: foodEggWhole,
			Rationale:       "lean staple on light days",
			PlaceInFirstSlot: false,
		}
	}
	if strategy, ok := proteinSourceTable[part]; ok {
		return strategy
	}
	// Unknown body parts fall back to the staple.
	return ProteinStrategy{
		FoodID:          foodChickenBreast,
		SecondaryFoodID: foodEggWhole,
		Rationale:       "default staple",
		PlaceInFirstSlot: false,
	}
}

// carbStrategyFor resolves the carbohydrate source from the goal.
func carbStrategyFor(goal Goal) CarbStrategy {
	if goal == GoalLoseWeight {
		return CarbStrategy{
			FoodID:    foodBrownRice,
			Rationale: "lower glycemic load while cutting",
		}
	}
	return CarbStrategy{
		FoodID:    foodWhiteRice,
		Rationale: "easy digestion at maintenance and above",
	}
}
