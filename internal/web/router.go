package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"

	"taskboard/internal/web/handlers"
	"taskboard/internal/web/middleware"
)

//go:embed static
var staticFS embed.FS

// New builds the route table. Method override runs outside the router so the
// rewritten verb is what mux matches on.
func New(handler *handlers.TaskHandler) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Logging)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/tasks", http.StatusSeeOther)
	}).Methods(http.MethodGet)

	router.HandleFunc("/tasks", handler.Index).Methods(http.MethodGet)
	router.HandleFunc("/tasks/new", handler.New).Methods(http.MethodGet)
	router.HandleFunc("/tasks", handler.Create).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{id:[0-9]+}/edit", handler.Edit).Methods(http.MethodGet)
	router.HandleFunc("/tasks/{id:[0-9]+}", handler.Update).Methods(http.MethodPatch)
	router.HandleFunc("/tasks/{id:[0-9]+}", handler.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/tasks/{id:[0-9]+}/toggle_complete", handler.Toggle).Methods(http.MethodPatch)

	static, _ := fs.Sub(staticFS, "static")
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	return middleware.MethodOverride(router)
}
