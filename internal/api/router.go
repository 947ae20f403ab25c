// Package api provides the HTTP transport for the calendar service. Identity
// comes from the X-User-ID header; authentication proper lives upstream.
package api

import (
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"shared-calendar/internal/repository"
	"shared-calendar/internal/service"
)

// NewRouter wires every API route.
func NewRouter(db *gorm.DB, userRepo *repository.UserRepository, eventSvc *service.EventService, sharedSvc *service.SharedEventService) *mux.Router {
	router := mux.NewRouter()

	userHandler := &UserHandler{users: userRepo}
	eventHandler := &EventHandler{users: userRepo, events: eventSvc}
	sharedHandler := &SharedEventHandler{users: userRepo, shared: sharedSvc}
	healthHandler := &HealthHandler{db: db}

	router.HandleFunc("/api/health", healthHandler.Check).Methods("GET")

	router.HandleFunc("/api/users", userHandler.Create).Methods("POST")
	router.HandleFunc("/api/users/{userId:[0-9]+}", userHandler.Get).Methods("GET")

	router.HandleFunc("/api/users/{userId:[0-9]+}/events", eventHandler.Create).Methods("POST")
	router.HandleFunc("/api/users/{userId:[0-9]+}/events", eventHandler.List).Methods("GET")
	router.HandleFunc("/api/users/{userId:[0-9]+}/events/{eventId:[0-9]+}", eventHandler.Get).Methods("GET")
	router.HandleFunc("/api/users/{userId:[0-9]+}/events/{eventId:[0-9]+}", eventHandler.Update).Methods("PUT")
	router.HandleFunc("/api/users/{userId:[0-9]+}/events/{eventId:[0-9]+}", eventHandler.Delete).Methods("DELETE")
	router.HandleFunc("/api/users/{userId:[0-9]+}/calendar.ics", eventHandler.Feed).Methods("GET")

	router.HandleFunc("/api/shared-events", sharedHandler.Create).Methods("POST")
	router.HandleFunc("/api/shared-events/{id}", sharedHandler.Get).Methods("GET")
	router.HandleFunc("/api/shared-events/{id}", sharedHandler.Delete).Methods("DELETE")
	router.HandleFunc("/api/shared-events/{id}/accept", sharedHandler.Accept).Methods("POST")
	router.HandleFunc("/api/shared-events/{id}/reject", sharedHandler.Reject).Methods("POST")
	router.HandleFunc("/api/shared-events/{id}/arrange", sharedHandler.Arrange).Methods("POST")
	router.HandleFunc("/api/shared-events/{id}/save", sharedHandler.Save).Methods("POST")

	return router
}
