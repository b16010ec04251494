package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mcortez/taskstack/internal/api/httputil"
	"github.com/mcortez/taskstack/internal/api/middleware"
	"github.com/mcortez/taskstack/internal/domain"
	"github.com/mcortez/taskstack/internal/service"
	"gorm.io/datatypes"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type CreateTaskRequest struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	Priority    int            `json:"priority"`
	DueDate     *time.Time     `json:"dueDate"`
	Metadata    datatypes.JSON `json:"metadata"`
}

type UpdateTaskRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Completed   *bool          `json:"completed"`
	Priority    *int           `json:"priority"`
	DueDate     *time.Time     `json:"dueDate"`
	Metadata    datatypes.JSON `json:"metadata"`
}

type TaskListResponse struct {
	Data       []*domain.Task     `json:"data"`
	Pagination service.Pagination `json:"pagination"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.WriteError(w, r, domain.Unauthenticated("Unauthorized"))
		return
	}

	var req CreateTaskRequest
	if err := httputil.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	task, err := h.taskService.Create(r.Context(), userID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Metadata:    req.Metadata,
	})
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.WriteError(w, r, domain.Unauthenticated("Unauthorized"))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		// A malformed id looks the same as a missing task.
		httputil.WriteError(w, r, domain.NotFound("Task not found"))
		return
	}

	task, err := h.taskService.Get(r.Context(), userID, id)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.WriteError(w, r, domain.Unauthenticated("Unauthorized"))
		return
	}

	input, err := parseListParams(r)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	page, err := h.taskService.List(r.Context(), userID, input)
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, TaskListResponse{
		Data:       page.Tasks,
		Pagination: page.Pagination,
	})
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.WriteError(w, r, domain.Unauthenticated("Unauthorized"))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, domain.NotFound("Task not found"))
		return
	}

	var req UpdateTaskRequest
	if err := httputil.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	task, err := h.taskService.Update(r.Context(), userID, id, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Metadata:    req.Metadata,
	})
	if err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.WriteError(w, r, domain.Unauthenticated("Unauthorized"))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, domain.NotFound("Task not found"))
		return
	}

	if err := h.taskService.Delete(r.Context(), userID, id); err != nil {
		httputil.WriteError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// parseListParams applies defaults for absent parameters; supplied values are
// passed through untouched so the service can reject out-of-range input.
func parseListParams(r *http.Request) (service.ListTasksInput, error) {
	input := service.ListTasksInput{Page: 1, Limit: service.DefaultPageSize}
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return input, domain.Validation("Page must be an integer")
		}
		input.Page = page
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return input, domain.Validation("Limit must be an integer")
		}
		input.Limit = limit
	}
	if v := q.Get("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return input, domain.Validation("Completed must be true or false")
		}
		input.Filter.Completed = &completed
	}
	if v := q.Get("priority"); v != "" {
		priority, err := strconv.Atoi(v)
		if err != nil {
			return input, domain.Validation("Priority must be an integer")
		}
		input.Filter.Priority = &priority
	}

	return input, nil
}
