package transport

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

// GET /api/objects
func (h *handlers) listObjects(w http.ResponseWriter, r *http.Request) {
	p, ok := h.currentProject(w, r)
	if !ok {
		return
	}
	objects, err := h.deps.Objects.List(r.Context(), p.ID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	out := make([]*objectDTO, 0, len(objects))
	for _, o := range objects {
		out = append(out, toObjectDTO(o))
	}
	WriteJSON(w, http.StatusOK, out)
}

type createObjectResponse struct {
	Object        *objectDTO `json:"object"`
	ScheduleItems int        `json:"schedule_items"`
	Tasks         int        `json:"tasks"`
	ReferenceDate string     `json:"reference_date"`
}

// POST /api/objects
func (h *handlers) createObject(w http.ResponseWriter, r *http.Request) {
	var req createObjectRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	p, ok := h.currentProject(w, r)
	if !ok {
		return
	}
	res, err := h.deps.Objects.Create(r.Context(), req.input(p.ID, UserFrom(r.Context()).ID))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, createObjectResponse{
		Object:        toObjectDTO(res.Object),
		ScheduleItems: res.ScheduleItems,
		Tasks:         res.Tasks,
		ReferenceDate: domain.FormatDate(res.ReferenceDate),
	})
}

type importRequest struct {
	FileName string `json:"file_name"`
}

// POST /api/objects/import
//
// Spreadsheet parsing is not implemented; the file is never read.
func (h *handlers) importObjects(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	h.deps.Logger.InfoContext(r.Context(), "import requested", "file_name", req.FileName)
	WriteError(w, r, apiError(CodeNotImplemented, "Парсинг спецификаций из Excel будет доступен в следующем обновлении"))
}

// GET /api/objects/{id}
func (h *handlers) objectCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.deps.Objects.Card(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toObjectCardDTO(card))
}

type statusRequest struct {
	Status string `json:"status"`
}

// PATCH /api/objects/{id}/status
func (h *handlers) objectStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.deps.Objects.UpdateStatus(r.Context(), id, domain.ObjectStatus(req.Status), UserFrom(r.Context()).ID); err != nil {
		WriteError(w, r, err)
		return
	}
	o, err := h.deps.Objects.Get(r.Context(), id)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, toObjectDTO(o))
}

// POST /api/objects/{id}/materialize?force=
func (h *handlers) materialize(w http.ResponseWriter, r *http.Request) {
	force := false
	if v := r.URL.Query().Get("force"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			WriteError(w, r, apiError(CodeBadRequest, "force must be a boolean"))
			return
		}
		force = b
	}
	n, err := h.deps.Objects.MaterializeTasks(r.Context(), chi.URLParam(r, "id"), force, UserFrom(r.Context()).ID)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]int{"tasks": n})
}

// GET /api/objects/{id}/gantt?block=
func (h *handlers) gantt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.deps.Objects.Get(r.Context(), id); err != nil {
		WriteError(w, r, err)
		return
	}
	chart, err := h.deps.Gantt.Build(r.Context(), id, r.URL.Query().Get("block"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]*ganttDTO{"chart": toGanttDTO(chart)})
}

type planFactResponse struct {
	Rows   []*planFactDTO `json:"rows"`
	Totals struct {
		ModulesPlan  float64 `json:"modules_plan"`
		ModulesFact  float64 `json:"modules_fact"`
		BracketsPlan float64 `json:"brackets_plan"`
		BracketsFact float64 `json:"brackets_fact"`
	} `json:"totals"`
}

// GET /api/objects/{id}/plan-fact
func (h *handlers) listPlanFact(w http.ResponseWriter, r *http.Request) {
	report, err := h.deps.PlanFact.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	var resp planFactResponse
	resp.Rows = make([]*planFactDTO, 0, len(report.Rows))
	for _, row := range report.Rows {
		resp.Rows = append(resp.Rows, toPlanFactDTO(row))
	}
	resp.Totals.ModulesPlan = report.Totals.ModulesPlan
	resp.Totals.ModulesFact = report.Totals.ModulesFact
	resp.Totals.BracketsPlan = report.Totals.BracketsPlan
	resp.Totals.BracketsFact = report.Totals.BracketsFact
	WriteJSON(w, http.StatusOK, resp)
}

// POST /api/objects/{id}/plan-fact
func (h *handlers) reportPlanFact(w http.ResponseWriter, r *http.Request) {
	var req planFactRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	row, err := req.row(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	if err := h.deps.PlanFact.Report(r.Context(), row, UserFrom(r.Context()).ID); err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toPlanFactDTO(row))
}

type facadesResponse struct {
	Facades []*facadeDTO `json:"facades"`
	Totals  struct {
		ModulesPlan  int `json:"modules_plan"`
		ModulesFact  int `json:"modules_fact"`
		BracketsPlan int `json:"brackets_plan"`
		BracketsFact int `json:"brackets_fact"`
	} `json:"totals"`
}

// GET /api/objects/{id}/facades
func (h *handlers) listFacades(w http.ResponseWriter, r *http.Request) {
	overview, err := h.deps.Facades.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}
	var resp facadesResponse
	resp.Facades = make([]*facadeDTO, 0, len(overview.Facades))
	for _, f := range overview.Facades {
		resp.Facades = append(resp.Facades, toFacadeDTO(f))
	}
	resp.Totals.ModulesPlan = overview.Totals.ModulesPlan
	resp.Totals.ModulesFact = overview.Totals.ModulesFact
	resp.Totals.BracketsPlan = overview.Totals.BracketsPlan
	resp.Totals.BracketsFact = overview.Totals.BracketsFact
	WriteJSON(w, http.StatusOK, resp)
}

// POST /api/objects/{id}/facades
func (h *handlers) createFacade(w http.ResponseWriter, r *http.Request) {
	var req createFacadeRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, r, err)
		return
	}
	f := &domain.Facade{
		ObjectID:     chi.URLParam(r, "id"),
		Name:         req.Name,
		SortOrder:    req.SortOrder,
		Status:       domain.FacadeStatus(req.Status),
		ModulesPlan:  req.ModulesPlan,
		ModulesFact:  req.ModulesFact,
		BracketsPlan: req.BracketsPlan,
		BracketsFact: req.BracketsFact,
	}
	if err := h.deps.Facades.Create(r.Context(), f); err != nil {
		WriteError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toFacadeDTO(f))
}
