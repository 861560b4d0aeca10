package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/davidkairu/TaskManagerApp/db"
	"github.com/davidkairu/TaskManagerApp/internal/auth"
	"github.com/davidkairu/TaskManagerApp/internal/session"
	"github.com/davidkairu/TaskManagerApp/internal/task"
	"github.com/davidkairu/TaskManagerApp/middleware"
	"github.com/davidkairu/TaskManagerApp/models"
)

type WebHandler struct {
	authService *auth.AuthService
	taskService *task.TaskService
	sessions    *session.Manager
	renderer    Renderer
}

// PageData is the context handed to the renderer.
type PageData struct {
	Page     string
	Identity *models.Identity
	Flashes  []session.Flash
	Tasks    []models.Task
	Task     *models.Task
	Username string
}

func NewWebHandler(
	authService *auth.AuthService,
	taskService *task.TaskService,
	sessions *session.Manager,
	renderer Renderer,
) *WebHandler {
	return &WebHandler{
		authService: authService,
		taskService: taskService,
		sessions:    sessions,
		renderer:    renderer,
	}
}

// Register shows the new-account form and handles its submission.
func (h *WebHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, "register.html", PageData{Page: "register"})
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	err := h.authService.Register(r.Context(), username, password)
	switch {
	case err == nil:
		h.sessions.AddFlash(w, r, "success", "Registration successful! Please log in.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	case errors.Is(err, db.ErrDuplicateUsername):
		h.sessions.AddFlash(w, r, "danger", "Username already exists. Try a different one.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	case errors.Is(err, auth.ErrValidation):
		h.sessions.AddFlash(w, r, "danger", "Username and password are required.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
	default:
		log.Printf("Register error: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Login shows the credentials form and handles its submission.
func (h *WebHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.render(w, r, "login.html", PageData{Page: "login"})
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	identity, err := h.authService.Login(r.Context(), username, password)
	switch {
	case err == nil:
		if err := h.sessions.Issue(w, r, *identity); err != nil {
			log.Printf("Session issue error: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		h.sessions.AddFlash(w, r, "success", "Login successful!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.sessions.AddFlash(w, r, "danger", "Invalid credentials. Please try again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	default:
		log.Printf("Login error: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Logout clears the session.
func (h *WebHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Revoke(w, r); err != nil {
		log.Printf("Session revoke error: %v", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Home lists the caller's tasks; POST adds one first.
func (h *WebHandler) Home(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodPost {
		form := task.TaskForm{
			Name:     r.FormValue("task"),
			Priority: r.FormValue("priority"),
		}
		if _, err := h.taskService.Add(r.Context(), identity, form); err != nil {
			if errors.Is(err, task.ErrValidation) {
				h.sessions.AddFlash(w, r, "danger", "A task name and numeric priority are required.")
			} else {
				log.Printf("Add task error: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
		}
		// Redirect-after-post so a refresh can't resubmit the form.
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	tasks, err := h.taskService.ListForOwner(r.Context(), identity)
	if err != nil {
		log.Printf("List tasks error: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "index.html", PageData{
		Page:     "home",
		Identity: &identity,
		Tasks:    tasks,
	})
}

// EditTask shows the edit form pre-filled, or applies the edit.
func (h *WebHandler) EditTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	taskID, err := h.taskID(r)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodPost {
		form := task.TaskForm{
			Name:     r.FormValue("name"),
			Priority: r.FormValue("priority"),
		}
		if err := h.taskService.Update(r.Context(), identity, taskID, form); err != nil {
			if errors.Is(err, task.ErrValidation) {
				h.sessions.AddFlash(w, r, "danger", "A task name and numeric priority are required.")
			} else {
				log.Printf("Update task error: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	t, err := h.taskService.Get(r.Context(), identity, taskID)
	if err != nil {
		// Missing and not-owned look identical; just go home.
		if !errors.Is(err, db.ErrNotFound) {
			log.Printf("Fetch task error: %v", err)
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.render(w, r, "edit.html", PageData{
		Page:     "edit",
		Identity: &identity,
		Task:     t,
	})
}

// CompleteTask toggles a task's completion flag.
func (h *WebHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	taskID, err := h.taskID(r)
	if err == nil {
		if err := h.taskService.ToggleCompleted(r.Context(), identity, taskID); err != nil {
			log.Printf("Toggle task error: %v", err)
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteTask removes a task.
func (h *WebHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	taskID, err := h.taskID(r)
	if err == nil {
		if err := h.taskService.Delete(r.Context(), identity, taskID); err != nil {
			log.Printf("Delete task error: %v", err)
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Helper methods

func (h *WebHandler) taskID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func (h *WebHandler) render(w http.ResponseWriter, r *http.Request, view string, data PageData) {
	data.Flashes = h.sessions.Flashes(w, r)
	if data.Identity != nil {
		data.Username = data.Identity.Username
	}
	if err := h.renderer.Render(w, view, data); err != nil {
		log.Printf("Template execution error: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
