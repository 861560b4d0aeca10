package web

import (
	"github.com/gorilla/mux"

	"github.com/davidkairu/TaskManagerApp/middleware"
)

// SetupRoutes wires every route. Owner-scoped routes go through
// RequireUser, which is the single authorization rule in the app.
func (h *WebHandler) SetupRoutes(m *middleware.Middleware) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/register", h.Register).Methods("GET", "POST")
	r.HandleFunc("/login", h.Login).Methods("GET", "POST")
	r.HandleFunc("/logout", h.Logout).Methods("GET")

	// Owner-scoped routes
	r.HandleFunc("/", m.RequireUser(h.Home)).Methods("GET", "POST")
	r.HandleFunc("/edit/{id:[0-9]+}", m.RequireUser(h.EditTask)).Methods("GET", "POST")
	r.HandleFunc("/complete/{id:[0-9]+}", m.RequireUser(h.CompleteTask)).Methods("GET")
	r.HandleFunc("/delete/{id:[0-9]+}", m.RequireUser(h.DeleteTask)).Methods("GET")

	return r
}
