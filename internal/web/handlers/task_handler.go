package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"taskboard/internal/model"
	"taskboard/internal/service"
	"taskboard/internal/web/render"
)

// dueDateLayout matches the value format of <input type="date">.
const dueDateLayout = "2006-01-02"

type TaskService interface {
	CreateTask(ctx context.Context, input service.TaskInput) (*model.Task, error)
	ListTasks(ctx context.Context, filter service.StatusFilter) ([]model.Task, error)
	GetTask(ctx context.Context, taskID uint) (*model.Task, error)
	UpdateTask(ctx context.Context, taskID uint, input service.TaskInput) (*model.Task, error)
	ToggleComplete(ctx context.Context, taskID uint) (*model.Task, error)
	DeleteTask(ctx context.Context, taskID uint) error
}

type TaskHandler struct {
	taskService TaskService
	renderer    *render.Renderer
}

func New(taskService TaskService, renderer *render.Renderer) *TaskHandler {
	return &TaskHandler{taskService: taskService, renderer: renderer}
}

// GET /tasks
func (h *TaskHandler) Index(w http.ResponseWriter, r *http.Request) {
	filter := service.ParseStatusFilter(r.URL.Query().Get("status"))

	tasks, err := h.taskService.ListTasks(r.Context(), filter)
	if err != nil {
		h.serverError(w, err)
		return
	}

	h.renderer.Page(w, http.StatusOK, "index", render.PageData{
		Tasks:  tasks,
		Filter: string(filter),
	})
}

// GET /tasks/new
func (h *TaskHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderer.Page(w, http.StatusOK, "new", render.PageData{
		Form: render.FormData{Action: "/tasks"},
	})
}

// POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, form, err := parseTaskForm(r)
	form.Action = "/tasks"
	if err != nil {
		form.Error = err.Error()
		h.renderer.Page(w, http.StatusUnprocessableEntity, "new", render.PageData{Form: form})
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			form.Error = "Title is required."
			h.renderer.Page(w, http.StatusUnprocessableEntity, "new", render.PageData{Form: form})
			return
		}
		h.serverError(w, err)
		return
	}

	if render.AcceptsStream(r) {
		row, err := h.renderer.TaskRow(*task)
		if err != nil {
			h.serverError(w, err)
			return
		}
		h.renderer.Stream(w, render.Append("tasks", row))
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// GET /tasks/{id}/edit
func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.taskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskID)
	if err != nil {
		h.taskError(w, err)
		return
	}

	form := render.FormData{
		Action:      fmt.Sprintf("/tasks/%d", task.ID),
		Method:      http.MethodPatch,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
	}
	if task.DueDate != nil {
		form.DueDate = task.DueDate.Format(dueDateLayout)
	}

	h.renderer.Page(w, http.StatusOK, "edit", render.PageData{Task: task, Form: form})
}

// PATCH /tasks/{id}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.taskID(w, r)
	if !ok {
		return
	}

	input, form, err := parseTaskForm(r)
	form.Action = fmt.Sprintf("/tasks/%d", taskID)
	form.Method = http.MethodPatch
	if err != nil {
		form.Error = err.Error()
		h.renderer.Page(w, http.StatusUnprocessableEntity, "edit", render.PageData{Form: form})
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), taskID, input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			form.Error = "Title is required."
			h.renderer.Page(w, http.StatusUnprocessableEntity, "edit", render.PageData{Form: form})
			return
		}
		h.taskError(w, err)
		return
	}

	h.respondWithRow(w, r, task)
}

// PATCH /tasks/{id}/toggle_complete
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.taskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.ToggleComplete(r.Context(), taskID)
	if err != nil {
		h.taskError(w, err)
		return
	}

	h.respondWithRow(w, r, task)
}

// DELETE /tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	taskID, ok := h.taskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), taskID); err != nil {
		h.taskError(w, err)
		return
	}

	if render.AcceptsStream(r) {
		h.renderer.Stream(w, render.Remove(render.TaskDOMID(taskID)))
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// respondWithRow answers a mutation with either a replace fragment or the
// conventional redirect.
func (h *TaskHandler) respondWithRow(w http.ResponseWriter, r *http.Request, task *model.Task) {
	if render.AcceptsStream(r) {
		row, err := h.renderer.TaskRow(*task)
		if err != nil {
			h.serverError(w, err)
			return
		}
		h.renderer.Stream(w, render.Replace(render.TaskDOMID(task.ID), row))
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (h *TaskHandler) taskID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		h.renderer.Page(w, http.StatusBadRequest, "error", render.PageData{Error: "Invalid task id."})
		return 0, false
	}
	return uint(id), true
}

func (h *TaskHandler) taskError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrNotFound) {
		h.renderer.Page(w, http.StatusNotFound, "error", render.PageData{Error: "Task not found."})
		return
	}
	h.serverError(w, err)
}

func (h *TaskHandler) serverError(w http.ResponseWriter, err error) {
	log.Printf("handler: %v", err)
	h.renderer.Page(w, http.StatusInternalServerError, "error", render.PageData{Error: "Something went wrong."})
}

// parseTaskForm pulls task fields out of a submitted form, keeping the raw
// values around so a rejected form can re-render as typed.
func parseTaskForm(r *http.Request) (service.TaskInput, render.FormData, error) {
	if err := r.ParseForm(); err != nil {
		return service.TaskInput{}, render.FormData{}, errors.New("Could not read the submitted form.")
	}

	form := render.FormData{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		DueDate:     strings.TrimSpace(r.PostFormValue("due_date")),
		Completed:   r.PostFormValue("completed") != "",
	}

	input := service.TaskInput{
		Title:       form.Title,
		Description: form.Description,
		Completed:   form.Completed,
	}

	if form.DueDate != "" {
		due, err := time.Parse(dueDateLayout, form.DueDate)
		if err != nil {
			return input, form, errors.New("Due date must be in YYYY-MM-DD format.")
		}
		input.DueDate = &due
	}

	return input, form, nil
}
