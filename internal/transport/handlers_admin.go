package transport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

// GET /api/admin/users?status=
func (h *handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	status := domain.UserStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		WriteError(w, r, apiError(CodeValidation, "unknown user status %q", status))
		return
	}
	users, err := h.deps.Users.List(r.Context(), status)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toUserDTOs(users))
}

// POST /api/admin/users/{id}/approve
func (h *handlers) approveUser(w http.ResponseWriter, r *http.Request) {
	h.userAction(w, r, h.deps.Users.Approve)
}

// POST /api/admin/users/{id}/block
func (h *handlers) blockUser(w http.ResponseWriter, r *http.Request) {
	h.userAction(w, r, h.deps.Users.Block)
}

// POST /api/admin/users/{id}/unblock
func (h *handlers) unblockUser(w http.ResponseWriter, r *http.Request) {
	h.userAction(w, r, h.deps.Users.Unblock)
}

func (h *handlers) userAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, userID, actorID string) error) {
	if err := action(r.Context(), chi.URLParam(r, "id"), UserFrom(r.Context()).ID); err != nil {
		WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// updateUserRequest changes only the fields that are present.
type updateUserRequest struct {
	Role       *string `json:"role"`
	Department *string `json:"department"`
}

// PATCH /api/admin/users/{id}
func (h *handlers) updateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	if req.Role == nil && req.Department == nil {
		WriteError(w, r, apiError(CodeValidation, "nothing to update"))
		return
	}
	id := chi.URLParam(r, "id")
	actor := UserFrom(r.Context()).ID
	if req.Role != nil {
		if err := h.deps.Users.SetRole(r.Context(), id, domain.Role(*req.Role), actor); err != nil {
			WriteError(w, r, err)
			return
		}
	}
	if req.Department != nil {
		if err := h.deps.Users.SetDepartment(r.Context(), id, *req.Department, actor); err != nil {
			WriteError(w, r, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
