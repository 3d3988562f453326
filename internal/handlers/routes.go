package handlers

import (
	"github.com/go-chi/chi/v5"
)

// Routes регистрирует все маршруты трекера на переданном роутере.
func Routes(r chi.Router, tasks *TaskHandler, tracker *TrackerHandler) {
	r.Get("/", tracker.HomePage) // GET /

	r.Route("/tracker", func(r chi.Router) {
		r.Get("/", tracker.TrackerPage)    // GET /tracker
		r.Post("/", tracker.SubmitTracker) // POST /tracker
	})

	r.Get("/suggestion", tracker.Suggestion)  // GET /suggestion
	r.Post("/suggestion", tracker.Suggestion) // POST /suggestion, тело игнорируется

	r.Route("/schedule", func(r chi.Router) {
		r.Get("/", tasks.SchedulePage) // GET /schedule
		r.Post("/", tasks.PostTask)    // POST /schedule
	})

	r.Get("/delete/{id:[0-9]+}", tasks.DeleteTask)  // GET /delete/{id}, старые ссылки
	r.Post("/delete/{id:[0-9]+}", tasks.DeleteTask) // POST /delete/{id}, форма на странице расписания

	r.Get("/health", tasks.HealthCheck)
}
