package quest

import (
	"context"
	"fmt"
)

// listFoods loads the whole food catalog keyed by id.
func (r *sqliteRepository) listFoods(ctx context.Context) (Catalog, error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, calories_per_100g, protein_per_100g, fat_per_100g, carb_per_100g, budget_tier
		FROM foods
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query foods: %w", err)
	}
	defer rows.Close()

	catalog := make(Catalog)
	for rows.Next() {
		var food Food
		if err = rows.Scan(
			&food.ID,
			&food.Name,
			&food.CaloriesPer100g,
			&food.ProteinPer100g,
			&food.FatPer100g,
			&food.CarbPer100g,
			&food.BudgetTier,
		); err != nil {
			return nil, fmt.Errorf("scan food row: %w", err)
		}
		catalog[food.ID] = food
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food rows: %w", err)
	}
	return catalog, nil
}
