package transport

import (
	"time"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/service"
	"github.com/porbotenet-wq/facadeflow/internal/template"
)

func optionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := domain.FormatDate(*t)
	return &s
}

type userDTO struct {
	ID         string `json:"id"`
	TelegramID int64  `json:"telegram_id"`
	FullName   string `json:"full_name"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	Status     string `json:"status"`
	RoleName   string `json:"role_name"`
	CreatedAt  string `json:"created_at"`
}

func toUserDTO(u *domain.User) *userDTO {
	if u == nil {
		return nil
	}
	return &userDTO{
		ID:         u.ID,
		TelegramID: u.TelegramID,
		FullName:   u.FullName,
		Role:       string(u.Role),
		Department: u.Department,
		Status:     string(u.Status),
		RoleName:   u.RoleName(),
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
}

func toUserDTOs(users []*domain.User) []*userDTO {
	out := make([]*userDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	return out
}

type projectDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func toProjectDTO(p *domain.Project) *projectDTO {
	if p == nil {
		return nil
	}
	return &projectDTO{ID: p.ID, Name: p.Name, Description: p.Description, CreatedAt: p.CreatedAt.Format(time.RFC3339)}
}

type objectDTO struct {
	ID               string   `json:"id"`
	DisplayID        string   `json:"display_id"`
	ProjectID        string   `json:"project_id"`
	Name             string   `json:"name"`
	CustomerName     string   `json:"customer_name,omitempty"`
	CustomerAddress  string   `json:"customer_address,omitempty"`
	CustomerContacts string   `json:"customer_contacts,omitempty"`
	ContractorName   string   `json:"contractor_name,omitempty"`
	WorkTypes        []string `json:"work_types"`
	TotalVolumeM2    float64  `json:"total_volume_m2"`
	StartDate        *string  `json:"start_date"`
	EndDate          *string  `json:"end_date"`
	ContractDate     *string  `json:"contract_date"`
	DurationDays     *int     `json:"duration_days"`
	ContractLink     string   `json:"contract_link,omitempty"`
	EstimateLink     string   `json:"estimate_link,omitempty"`
	ProjectManager   string   `json:"project_manager,omitempty"`
	Status           string   `json:"status"`
	StatusLabel      string   `json:"status_label"`
	CreatedAt        string   `json:"created_at"`
}

func toObjectDTO(o *domain.ConstructionObject) *objectDTO {
	workTypes := make([]string, 0, len(o.WorkTypes))
	for _, w := range o.WorkTypes {
		workTypes = append(workTypes, string(w))
	}
	return &objectDTO{
		ID:               o.ID,
		DisplayID:        o.DisplayID(),
		ProjectID:        o.ProjectID,
		Name:             o.Name,
		CustomerName:     o.CustomerName,
		CustomerAddress:  o.CustomerAddress,
		CustomerContacts: o.CustomerContacts,
		ContractorName:   o.ContractorName,
		WorkTypes:        workTypes,
		TotalVolumeM2:    o.TotalVolumeM2,
		StartDate:        optionalDate(o.StartDate),
		EndDate:          optionalDate(o.EndDate),
		ContractDate:     optionalDate(o.ContractDate),
		DurationDays:     o.DurationDays,
		ContractLink:     o.ContractLink,
		EstimateLink:     o.EstimateLink,
		ProjectManager:   o.ProjectManager,
		Status:           string(o.Status),
		StatusLabel:      o.Status.Label(),
		CreatedAt:        o.CreatedAt.Format(time.RFC3339),
	}
}

type createObjectRequest struct {
	Name             string   `json:"name"`
	CustomerName     string   `json:"customer_name"`
	CustomerAddress  string   `json:"customer_address"`
	CustomerContacts string   `json:"customer_contacts"`
	ContractorName   string   `json:"contractor_name"`
	WorkTypes        []string `json:"work_types"`
	TotalVolumeM2    float64  `json:"total_volume_m2"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	ContractDate     string   `json:"contract_date"`
	DurationDays     *int     `json:"duration_days"`
	ContractLink     string   `json:"contract_link"`
	EstimateLink     string   `json:"estimate_link"`
	ProjectManager   string   `json:"project_manager"`
}

func (r createObjectRequest) input(projectID, createdBy string) service.CreateObjectInput {
	workTypes := make([]domain.WorkType, 0, len(r.WorkTypes))
	for _, w := range r.WorkTypes {
		workTypes = append(workTypes, domain.WorkType(w))
	}
	return service.CreateObjectInput{
		ProjectID:        projectID,
		Name:             r.Name,
		CustomerName:     r.CustomerName,
		CustomerAddress:  r.CustomerAddress,
		CustomerContacts: r.CustomerContacts,
		ContractorName:   r.ContractorName,
		WorkTypes:        workTypes,
		TotalVolumeM2:    r.TotalVolumeM2,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		ContractDate:     r.ContractDate,
		DurationDays:     r.DurationDays,
		ContractLink:     r.ContractLink,
		EstimateLink:     r.EstimateLink,
		ProjectManager:   r.ProjectManager,
		CreatedBy:        createdBy,
	}
}

type scheduleItemDTO struct {
	ID         string `json:"id"`
	Section    string `json:"section"`
	Subsection string `json:"subsection"`
	SortOrder  int    `json:"sort_order"`
	WorkName   string `json:"work_name"`
	Unit       string `json:"unit"`
	Status     string `json:"status"`
}

type taskDTO struct {
	ID             string  `json:"id"`
	ObjectID       string  `json:"object_id"`
	TaskNumber     int     `json:"task_number"`
	TaskName       string  `json:"task_name"`
	Block          string  `json:"block"`
	Department     string  `json:"department"`
	Code           string  `json:"code"`
	Recipient      string  `json:"recipient"`
	Document       string  `json:"document,omitempty"`
	BotTrigger     string  `json:"bot_trigger,omitempty"`
	Priority       string  `json:"priority"`
	Status         string  `json:"status"`
	PlannedDate    *string `json:"planned_date"`
	DurationDays   int     `json:"duration_days"`
	AssignedUserID *string `json:"assigned_user_id"`
	CompletedAt    *string `json:"completed_at"`
	Overdue        bool    `json:"overdue"`
}

func toTaskDTO(t *domain.EcosystemTask, now time.Time) *taskDTO {
	var completed *string
	if t.CompletedAt != nil {
		s := t.CompletedAt.Format(time.RFC3339)
		completed = &s
	}
	return &taskDTO{
		ID:             t.ID,
		ObjectID:       t.ObjectID,
		TaskNumber:     t.TaskNumber,
		TaskName:       t.TaskName,
		Block:          t.Block,
		Department:     t.Department,
		Code:           t.Code,
		Recipient:      t.Recipient,
		Document:       t.OutgoingDoc,
		BotTrigger:     t.BotTrigger,
		Priority:       string(t.Priority),
		Status:         string(t.Status),
		PlannedDate:    optionalDate(t.PlannedDate),
		DurationDays:   t.DurationDays,
		AssignedUserID: t.AssignedUserID,
		CompletedAt:    completed,
		Overdue:        t.IsOverdue(now),
	}
}

type taskStatsDTO struct {
	Total         int     `json:"total"`
	Active        int     `json:"active"`
	Overdue       int     `json:"overdue"`
	Done          int     `json:"done"`
	CompletionPct float64 `json:"completion_pct"`
}

type sectionDTO struct {
	Name  string             `json:"name"`
	Done  int                `json:"done"`
	Items []*scheduleItemDTO `json:"items"`
}

type blockDTO struct {
	Block string  `json:"block"`
	Color string  `json:"color"`
	Total int     `json:"total"`
	Done  int     `json:"done"`
	Pct   float64 `json:"pct"`
}

type objectCardDTO struct {
	Object       *objectDTO   `json:"object"`
	Sections     []sectionDTO `json:"sections"`
	ScheduleDone int          `json:"schedule_done"`
	ScheduleSize int          `json:"schedule_size"`
	Tasks        taskStatsDTO `json:"tasks"`
	Blocks       []blockDTO   `json:"blocks"`
}

func toObjectCardDTO(c *service.ObjectCard) *objectCardDTO {
	out := &objectCardDTO{
		Object:       toObjectDTO(c.Object),
		Sections:     make([]sectionDTO, 0, len(c.Sections)),
		ScheduleDone: c.ScheduleDone,
		ScheduleSize: c.ScheduleSize,
		Tasks: taskStatsDTO{
			Total:         c.Tasks.Total,
			Active:        c.Tasks.Active,
			Overdue:       c.Tasks.Overdue,
			Done:          c.Tasks.Done,
			CompletionPct: c.Tasks.CompletionPct(),
		},
		Blocks: make([]blockDTO, 0, len(c.Blocks)),
	}
	for _, s := range c.Sections {
		sec := sectionDTO{Name: s.Name, Done: s.Done, Items: make([]*scheduleItemDTO, 0, len(s.Items))}
		for _, it := range s.Items {
			sec.Items = append(sec.Items, &scheduleItemDTO{
				ID: it.ID, Section: it.Section, Subsection: it.Subsection, SortOrder: it.SortOrder,
				WorkName: it.WorkName, Unit: it.Unit, Status: string(it.Status),
			})
		}
		out.Sections = append(out.Sections, sec)
	}
	for _, b := range c.Blocks {
		out.Blocks = append(out.Blocks, blockDTO{Block: b.Block, Color: b.Color, Total: b.Total, Done: b.Done, Pct: b.Pct()})
	}
	return out
}

type facadeDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SortOrder    int     `json:"sort_order"`
	Status       string  `json:"status"`
	ModulesPlan  int     `json:"modules_plan"`
	ModulesFact  int     `json:"modules_fact"`
	BracketsPlan int     `json:"brackets_plan"`
	BracketsFact int     `json:"brackets_fact"`
	ModulesPct   float64 `json:"modules_pct"`
	BracketsPct  float64 `json:"brackets_pct"`
}

func toFacadeDTO(f *domain.Facade) *facadeDTO {
	return &facadeDTO{
		ID: f.ID, Name: f.Name, SortOrder: f.SortOrder, Status: string(f.Status),
		ModulesPlan: f.ModulesPlan, ModulesFact: f.ModulesFact,
		BracketsPlan: f.BracketsPlan, BracketsFact: f.BracketsFact,
		ModulesPct: f.ModulesPct(), BracketsPct: f.BracketsPct(),
	}
}

type createFacadeRequest struct {
	Name         string `json:"name"`
	SortOrder    int    `json:"sort_order"`
	Status       string `json:"status"`
	ModulesPlan  int    `json:"modules_plan"`
	ModulesFact  int    `json:"modules_fact"`
	BracketsPlan int    `json:"brackets_plan"`
	BracketsFact int    `json:"brackets_fact"`
}

type planFactDTO struct {
	ID           string   `json:"id"`
	ReportDate   string   `json:"report_date"`
	Week         string   `json:"week,omitempty"`
	DayNumber    *int     `json:"day_number"`
	ModulesPlan  *float64 `json:"modules_plan"`
	ModulesFact  *float64 `json:"modules_fact"`
	BracketsPlan *float64 `json:"brackets_plan"`
	BracketsFact *float64 `json:"brackets_fact"`
	SealantPlan  *float64 `json:"sealant_plan"`
	SealantFact  *float64 `json:"sealant_fact"`
	HermeticPlan *float64 `json:"hermetic_plan"`
	HermeticFact *float64 `json:"hermetic_fact"`
	Notes        string   `json:"notes,omitempty"`
}

func toPlanFactDTO(p *domain.PlanFactDaily) *planFactDTO {
	return &planFactDTO{
		ID: p.ID, ReportDate: domain.FormatDate(p.ReportDate), Week: p.Week, DayNumber: p.DayNumber,
		ModulesPlan: p.ModulesPlan, ModulesFact: p.ModulesFact,
		BracketsPlan: p.BracketsPlan, BracketsFact: p.BracketsFact,
		SealantPlan: p.SealantPlan, SealantFact: p.SealantFact,
		HermeticPlan: p.HermeticPlan, HermeticFact: p.HermeticFact,
		Notes: p.Notes,
	}
}

// planFactRequest shares the row shape; report_date is required.
type planFactRequest struct {
	planFactDTO
}

func (r planFactRequest) row(objectID string) (*domain.PlanFactDaily, error) {
	d, err := domain.ParseDate(r.ReportDate)
	if err != nil {
		return nil, err
	}
	return &domain.PlanFactDaily{
		ObjectID: objectID, ReportDate: d, Week: r.Week, DayNumber: r.DayNumber,
		ModulesPlan: r.ModulesPlan, ModulesFact: r.ModulesFact,
		BracketsPlan: r.BracketsPlan, BracketsFact: r.BracketsFact,
		SealantPlan: r.SealantPlan, SealantFact: r.SealantFact,
		HermeticPlan: r.HermeticPlan, HermeticFact: r.HermeticFact,
		Notes: r.Notes,
	}, nil
}

type ganttBarDTO struct {
	TaskID      string `json:"task_id"`
	TaskNumber  int    `json:"task_number"`
	TaskName    string `json:"task_name"`
	Block       string `json:"block"`
	Status      string `json:"status"`
	PlannedDate string `json:"planned_date"`
	Offset      int    `json:"offset"`
	Width       int    `json:"width"`
	BlockColor  string `json:"block_color"`
	StatusColor string `json:"status_color"`
}

type ganttDTO struct {
	Start     string        `json:"start"`
	End       string        `json:"end"`
	TotalDays int           `json:"total_days"`
	Weeks     []string      `json:"weeks"`
	Blocks    []string      `json:"blocks"`
	Bars      []ganttBarDTO `json:"bars"`
}

func toGanttDTO(c *service.GanttChart) *ganttDTO {
	if c == nil {
		return nil
	}
	out := &ganttDTO{
		Start:     domain.FormatDate(c.Start),
		End:       domain.FormatDate(c.End),
		TotalDays: c.TotalDays,
		Weeks:     make([]string, 0, len(c.Weeks)),
		Blocks:    c.Blocks,
		Bars:      make([]ganttBarDTO, 0, len(c.Bars)),
	}
	for _, w := range c.Weeks {
		out.Weeks = append(out.Weeks, domain.FormatDate(w))
	}
	for _, b := range c.Bars {
		out.Bars = append(out.Bars, ganttBarDTO{
			TaskID: b.Task.ID, TaskNumber: b.Task.TaskNumber, TaskName: b.Task.TaskName,
			Block: b.Task.Block, Status: string(b.Task.Status),
			PlannedDate: domain.FormatDate(*b.Task.PlannedDate),
			Offset:      b.Offset, Width: b.Width,
			BlockColor: b.BlockColor, StatusColor: b.StatusColor,
		})
	}
	return out
}

type workflowStepDTO struct {
	ID         string `json:"id"`
	Substep    string `json:"substep"`
	Action     string `json:"action"`
	Initiator  string `json:"initiator"`
	Receiver   string `json:"receiver"`
	Deadline   string `json:"deadline"`
	Document   string `json:"document"`
	Trigger    string `json:"trigger,omitempty"`
	Note       string `json:"note,omitempty"`
	CanExecute bool   `json:"can_execute"`
}

type workflowStageDTO struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Icon  string            `json:"icon"`
	Color string            `json:"color"`
	Steps []workflowStepDTO `json:"steps"`
}

func toWorkflowDTO(stages []template.WorkflowStage, roleName string) []workflowStageDTO {
	out := make([]workflowStageDTO, 0, len(stages))
	for _, st := range stages {
		dto := workflowStageDTO{ID: st.ID, Name: st.Name, Icon: st.Icon, Color: st.Color, Steps: make([]workflowStepDTO, 0, len(st.Steps))}
		for _, s := range st.Steps {
			dto.Steps = append(dto.Steps, workflowStepDTO{
				ID: s.ID, Substep: s.Substep, Action: s.Action, Initiator: s.Initiator,
				Receiver: s.Receiver, Deadline: s.Deadline, Document: s.Document,
				Trigger: s.Trigger, Note: s.Note,
				CanExecute: template.CanExecuteStep(roleName, s),
			})
		}
		out = append(out, dto)
	}
	return out
}

type gprItemDTO struct {
	Section    string `json:"section"`
	Subsection string `json:"subsection"`
	SortOrder  int    `json:"sort_order"`
	WorkName   string `json:"work_name"`
	Unit       string `json:"unit"`
	WorkType   string `json:"work_type"`
}
