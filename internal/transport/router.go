package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/porbotenet-wq/facadeflow/internal/config"
	"github.com/porbotenet-wq/facadeflow/internal/observability"
	"github.com/porbotenet-wq/facadeflow/internal/service"
)

// Dependencies holds everything the HTTP layer needs. Metrics may be nil.
type Dependencies struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.Metrics
	Now     func() time.Time

	Projects  service.ProjectService
	Users     service.UserService
	Objects   service.ObjectService
	Tasks     service.TaskService
	Dashboard service.DashboardService
	PlanFact  service.PlanFactService
	Facades   service.FacadeService
	Gantt     service.GanttService
	Workflow  service.WorkflowService
}

// NewRouter builds the API. /healthz and /metrics bypass authentication;
// everything under /api except session and registration requires an ACTIVE
// user.
func NewRouter(deps Dependencies) chi.Router {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	h := &handlers{deps: deps}

	r := chi.NewRouter()
	r.Use(Recovery(deps.Logger))
	r.Use(CORS(deps.Config.Server.CORS))
	r.Use(RequestID)
	r.Use(SecurityHeaders)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Get("/healthz", handleHealth)
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(RequestLogging(deps.Logger))
		r.Use(Authenticate(deps.Config.Auth, deps.Now))

		r.Get("/session", h.session)
		r.Post("/users/register", h.register)

		r.Group(func(r chi.Router) {
			r.Use(RequireUser(deps.Users))

			r.Get("/project", h.project)
			r.Get("/dashboard", h.dashboard)
			r.Get("/workflow", h.workflow)
			r.Get("/gpr", h.gpr)

			r.Get("/objects", h.listObjects)
			r.Post("/objects", h.createObject)
			r.Post("/objects/import", h.importObjects)
			r.Route("/objects/{id}", func(r chi.Router) {
				r.Get("/", h.objectCard)
				r.Patch("/status", h.objectStatus)
				r.Post("/materialize", h.materialize)
				r.Get("/tasks", h.listTasks)
				r.Get("/gantt", h.gantt)
				r.Get("/plan-fact", h.listPlanFact)
				r.Post("/plan-fact", h.reportPlanFact)
				r.Get("/facades", h.listFacades)
				r.Post("/facades", h.createFacade)
			})

			r.Get("/tasks/mine", h.myTasks)
			r.Patch("/tasks/{id}/status", h.taskStatus)
			r.Patch("/tasks/{id}/assignee", h.taskAssignee)

			r.Route("/admin/users", func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Get("/", h.listUsers)
				r.Post("/{id}/approve", h.approveUser)
				r.Post("/{id}/block", h.blockUser)
				r.Post("/{id}/unblock", h.unblockUser)
				r.Patch("/{id}", h.updateUser)
			})
		})
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type handlers struct {
	deps Dependencies
}
