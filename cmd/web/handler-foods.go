package main

import (
	"net/http"
)

// foodsGET returns the food-nutrient catalog keyed by food id.
func (app *application) foodsGET(w http.ResponseWriter, r *http.Request) {
	catalog, err := app.questService.ListFoods(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, catalog)
}
