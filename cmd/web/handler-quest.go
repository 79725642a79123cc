package main

import (
	"net/http"

	"github.com/myrjola/questapp/internal/contexthelpers"
	"github.com/myrjola/questapp/internal/errors"
	"github.com/myrjola/questapp/internal/quest"
)

// questGET returns the stored quest for a date.
func (app *application) questGET(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	q, err := app.questService.GetQuest(r.Context(), contexthelpers.UserID(r.Context()), date)
	if errors.Is(err, quest.ErrNotFound) {
		app.writeError(w, r, http.StatusNotFound, "quest not found, generate it first")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, q)
}

// questTodayGET returns the stored quest for the current date in the
// configured timezone.
func (app *application) questTodayGET(w http.ResponseWriter, r *http.Request) {
	q, err := app.questService.GetQuest(r.Context(), contexthelpers.UserID(r.Context()), app.today())
	if errors.Is(err, quest.ErrNotFound) {
		app.writeError(w, r, http.StatusNotFound, "quest not found, generate it first")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, q)
}

// questGeneratePOST generates and stores the quest for a date, replacing any
// previous quest for that date.
func (app *application) questGeneratePOST(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	q, err := app.questService.GenerateDaily(r.Context(), contexthelpers.UserID(r.Context()), date)
	if err != nil {
		app.generateError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, q)
}

// questGenerateWeekPOST generates quests for seven days starting from a date.
func (app *application) questGenerateWeekPOST(w http.ResponseWriter, r *http.Request) {
	date, ok := app.parseDateParam(w, r)
	if !ok {
		return
	}

	quests, err := app.questService.GenerateWeek(r.Context(), contexthelpers.UserID(r.Context()), date)
	if err != nil {
		app.generateError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, quests)
}

// generateError maps generation failures to client or server errors.
func (app *application) generateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, quest.ErrNotFound):
		app.writeError(w, r, http.StatusNotFound, "profile not found, save it first")
	case errors.Is(err, quest.ErrInvalidProfile):
		app.writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		app.serverError(w, r, err)
	}
}
