package domain

// WorkType tags a work-breakdown item and the kinds of work selected for an object.
type WorkType string

const (
	WorkTypeNVF  WorkType = "НВФ"  // навесной вентилируемый фасад
	WorkTypeSPK  WorkType = "СПК"  // светопрозрачные конструкции
	WorkTypeBoth WorkType = "BOTH" // template-only sentinel: applies to every object
)

// SelectableWorkTypes lists the work types an object may be created with, in display order.
var SelectableWorkTypes = []WorkType{WorkTypeNVF, WorkTypeSPK}

var workTypeLabels = map[WorkType]string{
	WorkTypeNVF: "Навесной вентилируемый фасад (НВФ)",
	WorkTypeSPK: "Светопрозрачные конструкции (СПК)",
}

// Label returns the long human-readable name of the work type.
func (w WorkType) Label() string {
	if l, ok := workTypeLabels[w]; ok {
		return l
	}
	return string(w)
}

// Selectable reports whether w can be chosen for an object. BOTH is not selectable.
func (w WorkType) Selectable() bool {
	_, ok := workTypeLabels[w]
	return ok
}

type ObjectStatus string

const (
	ObjectNew        ObjectStatus = "NEW"
	ObjectInProgress ObjectStatus = "IN_PROGRESS"
	ObjectPaused     ObjectStatus = "PAUSED"
	ObjectCompleted  ObjectStatus = "COMPLETED"
	ObjectCancelled  ObjectStatus = "CANCELLED"
)

var objectStatusLabels = map[ObjectStatus]string{
	ObjectNew:        "Новый",
	ObjectInProgress: "В работе",
	ObjectCompleted:  "Завершён",
	ObjectPaused:     "Приостановлен",
	ObjectCancelled:  "Отменён",
}

func (s ObjectStatus) Label() string {
	if l, ok := objectStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s ObjectStatus) Valid() bool {
	_, ok := objectStatusLabels[s]
	return ok
}

type ScheduleStatus string

const (
	SchedulePlanned    ScheduleStatus = "PLANNED"
	ScheduleInProgress ScheduleStatus = "IN_PROGRESS"
	ScheduleDone       ScheduleStatus = "DONE"
)

// TaskStatus values are stored verbatim; the Mini App displays them as-is.
type TaskStatus string

const (
	TaskWaiting    TaskStatus = "Ожидание"
	TaskInProgress TaskStatus = "В работе"
	TaskDone       TaskStatus = "Выполнено"
	TaskCancelled  TaskStatus = "Отменено"
)

// TaskStatuses is the set of task statuses in board order.
var TaskStatuses = []TaskStatus{TaskWaiting, TaskInProgress, TaskDone, TaskCancelled}

func (s TaskStatus) Valid() bool {
	for _, v := range TaskStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Closed reports whether the task no longer counts toward active or overdue work.
func (s TaskStatus) Closed() bool {
	return s == TaskDone || s == TaskCancelled
}

// Active reports whether the task is waiting or in progress.
func (s TaskStatus) Active() bool {
	return s == TaskWaiting || s == TaskInProgress
}

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "Высокий"
	PriorityMedium TaskPriority = "Средний"
	PriorityLow    TaskPriority = "Низкий"
)

type UserStatus string

const (
	UserPending UserStatus = "PENDING"
	UserActive  UserStatus = "ACTIVE"
	UserBlocked UserStatus = "BLOCKED"
)

func (s UserStatus) Valid() bool {
	return s == UserPending || s == UserActive || s == UserBlocked
}

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEngineer Role = "ENGINEER"
	RoleWorker   Role = "WORKER"
	RoleViewer   Role = "VIEWER"
)

// Roles is the canonical set of assignable roles.
var Roles = []Role{RoleAdmin, RoleManager, RoleEngineer, RoleWorker, RoleViewer}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

// Departments are the organisational units that act as workflow initiators and receivers.
var Departments = []string{
	"Договорной отдел",
	"Руководитель проекта",
	"Проектный отдел",
	"Отдел снабжения",
	"Производственный отдел",
	"Монтажное подразделение",
	"ПТО",
}

// ValidDepartment reports whether name is one of Departments.
func ValidDepartment(name string) bool {
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}

type FacadeStatus string

const (
	FacadePlanned    FacadeStatus = "PLANNED"
	FacadeInProgress FacadeStatus = "IN_PROGRESS"
	FacadeCompleted  FacadeStatus = "COMPLETED"
)

// Audit actions written by the service layer.
const (
	AuditObjectCreated      = "OBJECT_CREATED"
	AuditObjectStatus       = "OBJECT_STATUS_CHANGED"
	AuditTasksMaterialized  = "TASKS_MATERIALIZED"
	AuditTaskStatusChanged  = "TASK_STATUS_CHANGED"
	AuditTaskAssigned       = "TASK_ASSIGNED"
	AuditUserStatusChanged  = "USER_STATUS_CHANGED"
	AuditUserProfileChanged = "USER_PROFILE_CHANGED"
)
