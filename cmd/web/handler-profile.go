package main

import (
	"encoding/json"
	"net/http"

	"github.com/myrjola/questapp/internal/contexthelpers"
	"github.com/myrjola/questapp/internal/errors"
	"github.com/myrjola/questapp/internal/quest"
)

// profileGET returns the caller's coaching profile.
func (app *application) profileGET(w http.ResponseWriter, r *http.Request) {
	profile, err := app.questService.GetProfile(r.Context(), contexthelpers.UserID(r.Context()))
	if errors.Is(err, quest.ErrNotFound) {
		app.writeError(w, r, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, profile)
}

// profilePUT creates or replaces the caller's coaching profile.
func (app *application) profilePUT(w http.ResponseWriter, r *http.Request) {
	var profile quest.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		app.writeError(w, r, http.StatusBadRequest, "invalid profile payload")
		return
	}

	err := app.questService.SaveProfile(r.Context(), contexthelpers.UserID(r.Context()), profile)
	if errors.Is(err, quest.ErrInvalidProfile) {
		app.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, profile)
}
