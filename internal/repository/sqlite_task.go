package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/porbotenet-wq/facadeflow/internal/db"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

const taskColumns = `t.id, t.object_id, t.task_number, t.task_name, t.block, t.department, t.code,
	t.responsible, t.recipient, t.incoming_doc, t.outgoing_doc, t.bot_trigger, t.priority,
	t.status, t.planned_date, t.duration_days, t.assigned_user_id, t.completed_at,
	t.created_at, t.updated_at`

func (r *SQLiteTaskRepo) CreateBatch(ctx context.Context, tasks []*domain.EcosystemTask) error {
	query := `INSERT INTO ecosystem_tasks (` + strings.ReplaceAll(taskColumns, "t.", "") + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, t := range tasks {
		_, err := r.db.ExecContext(ctx, query,
			t.ID, t.ObjectID, t.TaskNumber, t.TaskName, t.Block, t.Department, t.Code,
			t.Responsible, t.Recipient, t.IncomingDoc, t.OutgoingDoc, t.BotTrigger,
			string(t.Priority), string(t.Status),
			nullableTimeToString(t.PlannedDate, dateLayout), t.DurationDays,
			nullableStringToValue(t.AssignedUserID),
			nullableTimeToString(t.CompletedAt, tsLayout),
			formatTS(t.CreatedAt), formatTS(t.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting task %d: %w", t.TaskNumber, err)
		}
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.EcosystemTask, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM ecosystem_tasks t WHERE t.id = ?`, id)
	return scanTask(row)
}

func (r *SQLiteTaskRepo) List(ctx context.Context, f TaskFilter) ([]*domain.EcosystemTask, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + taskColumns + ` FROM ecosystem_tasks t`)
	var where []string
	var args []any

	if f.ProjectID != "" {
		b.WriteString(` JOIN construction_objects o ON o.id = t.object_id`)
		where = append(where, `o.project_id = ?`)
		args = append(args, f.ProjectID)
	}
	if f.ObjectID != "" {
		where = append(where, `t.object_id = ?`)
		args = append(args, f.ObjectID)
	}
	if f.Status != "" {
		where = append(where, `t.status = ?`)
		args = append(args, string(f.Status))
	}
	if len(f.Statuses) > 0 {
		marks := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			marks[i] = "?"
			args = append(args, string(s))
		}
		where = append(where, `t.status IN (`+strings.Join(marks, ", ")+`)`)
	}
	if f.Department != "" {
		where = append(where, `t.department = ?`)
		args = append(args, f.Department)
	}
	if f.Block != "" {
		where = append(where, `t.block = ?`)
		args = append(args, f.Block)
	}
	if f.AssignedUserID != "" {
		where = append(where, `t.assigned_user_id = ?`)
		args = append(args, f.AssignedUserID)
	}
	if len(where) > 0 {
		b.WriteString(` WHERE ` + strings.Join(where, ` AND `))
	}
	b.WriteString(` ORDER BY t.task_number, t.created_at, t.id`)
	if f.Limit > 0 {
		b.WriteString(` LIMIT ?`)
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.EcosystemTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) CountByObject(ctx context.Context, objectID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ecosystem_tasks WHERE object_id = ?`, objectID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return n, nil
}

func (r *SQLiteTaskRepo) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus, completedAt *time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE ecosystem_tasks SET status = ?, completed_at = ?, updated_at = ? WHERE id = ?`,
		string(status), nullableTimeToString(completedAt, tsLayout), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating task status: %w", err)
	}
	return requireAffected(res, "task")
}

func (r *SQLiteTaskRepo) Assign(ctx context.Context, id string, userID *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE ecosystem_tasks SET assigned_user_id = ?, updated_at = ? WHERE id = ?`,
		nullableStringToValue(userID), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("assigning task: %w", err)
	}
	return requireAffected(res, "task")
}

func scanTask(row rowScanner) (*domain.EcosystemTask, error) {
	var t domain.EcosystemTask
	var priority, status, createdAt, updatedAt string
	var plannedDate, assignedUserID, completedAt sql.NullString

	err := row.Scan(
		&t.ID, &t.ObjectID, &t.TaskNumber, &t.TaskName, &t.Block, &t.Department, &t.Code,
		&t.Responsible, &t.Recipient, &t.IncomingDoc, &t.OutgoingDoc, &t.BotTrigger, &priority,
		&status, &plannedDate, &t.DurationDays, &assignedUserID, &completedAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, notFound(err, "task")
	}
	t.Priority = domain.TaskPriority(priority)
	t.Status = domain.TaskStatus(status)
	t.PlannedDate = parseNullableTime(plannedDate, dateLayout)
	t.AssignedUserID = nullStringPtr(assignedUserID)
	t.CompletedAt = parseNullableTime(completedAt, time.RFC3339)
	if t.CreatedAt, err = parseTS(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTS(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &t, nil
}
