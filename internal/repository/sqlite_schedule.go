package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/porbotenet-wq/facadeflow/internal/db"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

type SQLiteScheduleRepo struct {
	db db.DBTX
}

func NewSQLiteScheduleRepo(db db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: db}
}

const scheduleColumns = `id, object_id, section, subsection, sort_order, work_name, unit, status,
	volume_plan, volume_fact, workers_count, start_date, end_date, duration_days, notes,
	created_at, updated_at`

// CreateBatch inserts items one statement at a time. Callers wanting
// all-or-nothing semantics run it inside a UnitOfWork.
func (r *SQLiteScheduleRepo) CreateBatch(ctx context.Context, items []*domain.WorkScheduleItem) error {
	query := `INSERT INTO work_schedule_items (` + scheduleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, it := range items {
		_, err := r.db.ExecContext(ctx, query,
			it.ID, it.ObjectID, it.Section, it.Subsection, it.SortOrder, it.WorkName, it.Unit,
			string(it.Status),
			nullableFloatToValue(it.VolumePlan), nullableFloatToValue(it.VolumeFact),
			nullableIntToValue(it.WorkersCount),
			nullableTimeToString(it.StartDate, dateLayout),
			nullableTimeToString(it.EndDate, dateLayout),
			nullableIntToValue(it.DurationDays), it.Notes,
			formatTS(it.CreatedAt), formatTS(it.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting schedule item %d (%s): %w", i, it.WorkName, err)
		}
	}
	return nil
}

func (r *SQLiteScheduleRepo) ListByObject(ctx context.Context, objectID string) ([]*domain.WorkScheduleItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+scheduleColumns+` FROM work_schedule_items WHERE object_id = ? ORDER BY sort_order, id`,
		objectID)
	if err != nil {
		return nil, fmt.Errorf("listing schedule items: %w", err)
	}
	defer rows.Close()

	var items []*domain.WorkScheduleItem
	for rows.Next() {
		var it domain.WorkScheduleItem
		var status, createdAt, updatedAt string
		var volumePlan, volumeFact sql.NullFloat64
		var workers, duration sql.NullInt64
		var startDate, endDate sql.NullString
		err := rows.Scan(
			&it.ID, &it.ObjectID, &it.Section, &it.Subsection, &it.SortOrder, &it.WorkName, &it.Unit,
			&status, &volumePlan, &volumeFact, &workers, &startDate, &endDate, &duration, &it.Notes,
			&createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning schedule item: %w", err)
		}
		it.Status = domain.ScheduleStatus(status)
		it.VolumePlan = nullFloatPtr(volumePlan)
		it.VolumeFact = nullFloatPtr(volumeFact)
		it.WorkersCount = nullIntPtr(workers)
		it.StartDate = parseNullableTime(startDate, dateLayout)
		it.EndDate = parseNullableTime(endDate, dateLayout)
		it.DurationDays = nullIntPtr(duration)
		if it.CreatedAt, err = parseTS(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if it.UpdatedAt, err = parseTS(updatedAt, "updated_at"); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule items: %w", err)
	}
	return items, nil
}
