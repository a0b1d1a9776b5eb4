package service

import (
	"context"
	"time"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/repository"
	"github.com/porbotenet-wq/facadeflow/internal/template"
)

type ProjectService interface {
	// Current returns the deployment's project (the oldest one).
	Current(ctx context.Context) (*domain.Project, error)
	Create(ctx context.Context, name, description string) (*domain.Project, error)
	Info(ctx context.Context, projectID string) (*ProjectInfo, error)
}

type ProjectInfo struct {
	Project     *domain.Project
	ObjectCount int
	ActiveUsers int
}

type UserService interface {
	// Identify returns the user for a telegram id, or nil when unknown.
	Identify(ctx context.Context, telegramID int64) (*domain.User, error)
	// Authorize returns the user only when ACTIVE; pending and blocked users
	// get ErrUserPending and ErrUserBlocked.
	Authorize(ctx context.Context, telegramID int64) (*domain.User, error)
	Register(ctx context.Context, telegramID int64, fullName string) (*domain.User, error)
	// Bootstrap makes the caller the first ACTIVE ADMIN of an empty
	// deployment. It fails with ErrForbidden once any user is active.
	Bootstrap(ctx context.Context, telegramID int64, fullName string) (*domain.User, error)
	List(ctx context.Context, status domain.UserStatus) ([]*domain.User, error)
	Approve(ctx context.Context, userID, actorID string) error
	Block(ctx context.Context, userID, actorID string) error
	Unblock(ctx context.Context, userID, actorID string) error
	SetRole(ctx context.Context, userID string, role domain.Role, actorID string) error
	SetDepartment(ctx context.Context, userID, department, actorID string) error
}

// CreateObjectInput carries the creation form. Dates are YYYY-MM-DD or empty.
type CreateObjectInput struct {
	ProjectID        string
	Name             string
	CustomerName     string
	CustomerAddress  string
	CustomerContacts string
	ContractorName   string
	WorkTypes        []domain.WorkType
	TotalVolumeM2    float64
	StartDate        string
	EndDate          string
	ContractDate     string
	DurationDays     *int
	ContractLink     string
	EstimateLink     string
	ProjectManager   string
	CreatedBy        string
}

type CreateObjectResult struct {
	Object        *domain.ConstructionObject
	ScheduleItems int
	Tasks         int
	ReferenceDate time.Time
}

type ObjectService interface {
	// Create persists the object with its schedule and tasks in one transaction.
	Create(ctx context.Context, in CreateObjectInput) (*CreateObjectResult, error)
	// MaterializeTasks re-runs task materialization. Without force it refuses
	// objects that already have tasks; with force it appends a duplicate set.
	MaterializeTasks(ctx context.Context, objectID string, force bool, actorID string) (int, error)
	List(ctx context.Context, projectID string) ([]*domain.ConstructionObject, error)
	Get(ctx context.Context, id string) (*domain.ConstructionObject, error)
	Card(ctx context.Context, id string) (*ObjectCard, error)
	UpdateStatus(ctx context.Context, id string, status domain.ObjectStatus, actorID string) error
}

type TaskStats struct {
	Total   int
	Active  int
	Overdue int
	Done    int
}

// CompletionPct is the share of done tasks, 0..100.
func (s TaskStats) CompletionPct() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Done) / float64(s.Total) * 100
}

type ScheduleSection struct {
	Name  string
	Items []*domain.WorkScheduleItem
	Done  int
}

type BlockProgress struct {
	Block string
	Color string
	Total int
	Done  int
}

func (b BlockProgress) Pct() float64 {
	if b.Total == 0 {
		return 0
	}
	return float64(b.Done) / float64(b.Total) * 100
}

type ObjectCard struct {
	Object       *domain.ConstructionObject
	Sections     []ScheduleSection
	ScheduleDone int
	ScheduleSize int
	Tasks        TaskStats
	Blocks       []BlockProgress
}

// TaskListFilter mirrors the filters of the task board.
type TaskListFilter struct {
	Status         domain.TaskStatus
	Department     string
	Block          string
	AssignedUserID string
}

type TaskService interface {
	List(ctx context.Context, objectID string, f TaskListFilter) ([]*domain.EcosystemTask, error)
	Get(ctx context.Context, id string) (*domain.EcosystemTask, error)
	ChangeStatus(ctx context.Context, taskID string, status domain.TaskStatus, actorID string) (*domain.EcosystemTask, error)
	Assign(ctx context.Context, taskID string, userID *string, actorID string) error
	MyActive(ctx context.Context, userID string) ([]*domain.EcosystemTask, error)
}

type DashboardStats struct {
	TotalTasks    int
	TasksByStatus map[domain.TaskStatus]int
	TotalObjects  int
	ActiveUsers   int
	MyTasks       int
	OverdueTasks  int
	DoneTasks     int
	CompletionPct float64
}

type DashboardService interface {
	Stats(ctx context.Context, projectID, userID string) (*DashboardStats, error)
}

type PlanFactTotals struct {
	ModulesPlan  float64
	ModulesFact  float64
	BracketsPlan float64
	BracketsFact float64
}

type PlanFactReport struct {
	Rows   []*domain.PlanFactDaily
	Totals PlanFactTotals
}

type PlanFactService interface {
	List(ctx context.Context, objectID string) (*PlanFactReport, error)
	Report(ctx context.Context, row *domain.PlanFactDaily, actorID string) error
}

type FacadeTotals struct {
	ModulesPlan  int
	ModulesFact  int
	BracketsPlan int
	BracketsFact int
}

type FacadeOverview struct {
	Facades []*domain.Facade
	Totals  FacadeTotals
}

type FacadeService interface {
	List(ctx context.Context, objectID string) (*FacadeOverview, error)
	Create(ctx context.Context, f *domain.Facade) error
}

type GanttBar struct {
	Task        *domain.EcosystemTask
	Offset      int // days from chart start
	Width       int // days, never below 1
	BlockColor  string
	StatusColor string
}

type GanttChart struct {
	Start     time.Time
	End       time.Time // latest planned date
	TotalDays int       // span plus a 30 day tail
	Weeks     []time.Time
	Bars      []GanttBar
	Blocks    []string
}

type GanttService interface {
	// Build returns nil when no task of the object has a planned date.
	Build(ctx context.Context, objectID, block string) (*GanttChart, error)
}

type WorkflowView struct {
	Stages     []template.WorkflowStage
	StageCount int
	StepCount  int
}

type WorkflowService interface {
	// Stages lists the process; mine keeps only steps roleName can execute.
	Stages(roleName string, mine bool) WorkflowView
	// GPR lists the schedule catalog, optionally for one work type.
	GPR(workType domain.WorkType) []template.WorkBreakdownItem
}

// Repos bundles the non-transactional repositories services read through.
type Repos struct {
	Projects repository.ProjectRepo
	Users    repository.UserRepo
	Objects  repository.ObjectRepo
	Schedule repository.ScheduleRepo
	Tasks    repository.TaskRepo
	Facades  repository.FacadeRepo
	PlanFact repository.PlanFactRepo
	Audit    repository.AuditRepo
}
