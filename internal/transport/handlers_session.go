package transport

import (
	"errors"
	"net/http"
	"strings"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/service"
	"github.com/porbotenet-wq/facadeflow/internal/telegram"
)

type sessionResponse struct {
	TelegramID int64       `json:"telegram_id"`
	Dev        bool        `json:"dev"`
	Status     string      `json:"status"`
	User       *userDTO    `json:"user"`
	RoleLabel  string      `json:"role_label,omitempty"`
	Project    *projectDTO `json:"project"`
	Route      string      `json:"route,omitempty"`
}

// statusUnregistered is reported for identities with no users row.
const statusUnregistered = "UNREGISTERED"

// GET /api/session
func (h *handlers) session(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	u, err := h.deps.Users.Identify(r.Context(), id.TelegramID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	resp := sessionResponse{TelegramID: id.TelegramID, Dev: id.Dev, Status: statusUnregistered}
	if u != nil {
		resp.Status = string(u.Status)
		resp.User = toUserDTO(u)
		resp.RoleLabel = u.RoleLabel()
	}
	if u != nil && u.Status == domain.UserActive {
		p, err := h.deps.Projects.Current(r.Context())
		switch {
		case errors.Is(err, service.ErrNotFound):
		case err != nil:
			WriteError(w, r, err)
			return
		default:
			resp.Project = toProjectDTO(p)
		}
		if route, ok := telegram.RouteForStartParam(id.StartParam); ok {
			resp.Route = route
		}
	}
	WriteJSON(w, http.StatusOK, resp)
}

type registerRequest struct {
	FullName string `json:"full_name"`
}

// POST /api/users/register
func (h *handlers) register(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	var req registerRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			WriteError(w, r, err)
			return
		}
	}
	name := domain.CoalesceStr(strings.TrimSpace(req.FullName), id.FullName)
	u, err := h.deps.Users.Register(r.Context(), id.TelegramID, name)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toUserDTO(u))
}

type projectResponse struct {
	Project     *projectDTO `json:"project"`
	ObjectCount int         `json:"object_count"`
	ActiveUsers int         `json:"active_users"`
}

// currentProject returns the deployment's project or writes a 404.
func (h *handlers) currentProject(w http.ResponseWriter, r *http.Request) (*domain.Project, bool) {
	p, err := h.deps.Projects.Current(r.Context())
	if errors.Is(err, service.ErrNotFound) {
		WriteError(w, r, apiError(CodeNotFound, "no project is configured"))
		return nil, false
	}
	if err != nil {
		WriteError(w, r, err)
		return nil, false
	}
	return p, true
}

// GET /api/project
func (h *handlers) project(w http.ResponseWriter, r *http.Request) {
	p, ok := h.currentProject(w, r)
	if !ok {
		return
	}
	info, err := h.deps.Projects.Info(r.Context(), p.ID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, projectResponse{
		Project:     toProjectDTO(info.Project),
		ObjectCount: info.ObjectCount,
		ActiveUsers: info.ActiveUsers,
	})
}

type dashboardResponse struct {
	FullName      string         `json:"full_name"`
	RoleLabel     string         `json:"role_label"`
	TotalObjects  int            `json:"total_objects"`
	TotalTasks    int            `json:"total_tasks"`
	TasksByStatus map[string]int `json:"tasks_by_status"`
	ActiveUsers   int            `json:"active_users"`
	MyTasks       int            `json:"my_tasks"`
	OverdueTasks  int            `json:"overdue_tasks"`
	DoneTasks     int            `json:"done_tasks"`
	CompletionPct float64        `json:"completion_pct"`
}

// GET /api/dashboard
func (h *handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	u := UserFrom(r.Context())
	p, ok := h.currentProject(w, r)
	if !ok {
		return
	}
	stats, err := h.deps.Dashboard.Stats(r.Context(), p.ID, u.ID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	byStatus := make(map[string]int, len(stats.TasksByStatus))
	for s, n := range stats.TasksByStatus {
		byStatus[string(s)] = n
	}
	WriteJSON(w, http.StatusOK, dashboardResponse{
		FullName:      u.FullName,
		RoleLabel:     u.RoleLabel(),
		TotalObjects:  stats.TotalObjects,
		TotalTasks:    stats.TotalTasks,
		TasksByStatus: byStatus,
		ActiveUsers:   stats.ActiveUsers,
		MyTasks:       stats.MyTasks,
		OverdueTasks:  stats.OverdueTasks,
		DoneTasks:     stats.DoneTasks,
		CompletionPct: stats.CompletionPct,
	})
}

type workflowResponse struct {
	RoleName   string             `json:"role_name"`
	Stages     []workflowStageDTO `json:"stages"`
	StageCount int                `json:"stage_count"`
	StepCount  int                `json:"step_count"`
}

// GET /api/workflow?mine=
func (h *handlers) workflow(w http.ResponseWriter, r *http.Request) {
	roleName := UserFrom(r.Context()).RoleName()
	mine := r.URL.Query().Get("mine") == "true"
	view := h.deps.Workflow.Stages(roleName, mine)
	WriteJSON(w, http.StatusOK, workflowResponse{
		RoleName:   roleName,
		Stages:     toWorkflowDTO(view.Stages, roleName),
		StageCount: view.StageCount,
		StepCount:  view.StepCount,
	})
}

// GET /api/gpr?work_type=
func (h *handlers) gpr(w http.ResponseWriter, r *http.Request) {
	wt := domain.WorkType(r.URL.Query().Get("work_type"))
	items := h.deps.Workflow.GPR(wt)
	out := make([]gprItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, gprItemDTO{
			Section: it.Section, Subsection: it.Subsection, SortOrder: it.SortOrder,
			WorkName: it.WorkName, Unit: it.Unit, WorkType: string(it.WorkType),
		})
	}
	WriteJSON(w, http.StatusOK, out)
}
