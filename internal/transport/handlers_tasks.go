package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/service"
)

// GET /api/objects/{id}/tasks?status&department&block&assignee
//
// assignee=me selects the caller's tasks.
func (h *handlers) listTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := service.TaskListFilter{
		Status:         domain.TaskStatus(q.Get("status")),
		Department:     q.Get("department"),
		Block:          q.Get("block"),
		AssignedUserID: q.Get("assignee"),
	}
	if f.AssignedUserID == "me" {
		f.AssignedUserID = UserFrom(r.Context()).ID
	}
	tasks, err := h.deps.Tasks.List(r.Context(), chi.URLParam(r, "id"), f)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, h.taskDTOs(tasks))
}

// GET /api/tasks/mine
func (h *handlers) myTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.deps.Tasks.MyActive(r.Context(), UserFrom(r.Context()).ID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, h.taskDTOs(tasks))
}

// PATCH /api/tasks/{id}/status
func (h *handlers) taskStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	task, err := h.deps.Tasks.ChangeStatus(r.Context(), chi.URLParam(r, "id"), domain.TaskStatus(req.Status), UserFrom(r.Context()).ID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toTaskDTO(task, h.deps.Now().UTC()))
}

// assigneeRequest clears the assignee when user_id is null.
type assigneeRequest struct {
	UserID *string `json:"user_id"`
}

// PATCH /api/tasks/{id}/assignee
func (h *handlers) taskAssignee(w http.ResponseWriter, r *http.Request) {
	var req assigneeRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.deps.Tasks.Assign(r.Context(), id, req.UserID, UserFrom(r.Context()).ID); err != nil {
		WriteError(w, r, err)
		return
	}
	task, err := h.deps.Tasks.Get(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toTaskDTO(task, h.deps.Now().UTC()))
}

func (h *handlers) taskDTOs(tasks []*domain.EcosystemTask) []*taskDTO {
	now := h.deps.Now().UTC()
	out := make([]*taskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskDTO(t, now))
	}
	return out
}
