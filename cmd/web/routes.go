package main

import (
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	api := func(next http.Handler) http.Handler {
		return app.recoverPanic(app.logAndTraceRequest(secureHeaders(
			app.identify(app.timeout(next)))))
	}

	mux.Handle("GET /api/healthy", api(http.HandlerFunc(app.healthy)))

	mux.Handle("GET /api/profile", api(http.HandlerFunc(app.profileGET)))
	mux.Handle("PUT /api/profile", api(http.HandlerFunc(app.profilePUT)))

	mux.Handle("GET /api/quests/today", api(http.HandlerFunc(app.questTodayGET)))
	mux.Handle("GET /api/quests/{date}", api(http.HandlerFunc(app.questGET)))
	mux.Handle("POST /api/quests/{date}/generate", api(http.HandlerFunc(app.questGeneratePOST)))
	mux.Handle("POST /api/quests/{date}/generate-week", api(http.HandlerFunc(app.questGenerateWeekPOST)))

	mux.Handle("GET /api/foods", api(http.HandlerFunc(app.foodsGET)))

	mux.Handle("GET /api/test/timeout", api(http.HandlerFunc(app.testTimeout)))

	return app.corsPolicy(mux)
}
