package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/porbotenet-wq/facadeflow/internal/db"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

type SQLiteObjectRepo struct {
	db db.DBTX
}

func NewSQLiteObjectRepo(db db.DBTX) *SQLiteObjectRepo {
	return &SQLiteObjectRepo{db: db}
}

const objectColumns = `id, project_id, name, customer_name, customer_address, customer_contacts,
	contractor_name, work_types, total_volume_m2, start_date, end_date, contract_date,
	duration_days, contract_link, estimate_link, project_manager, status, created_by,
	created_at, updated_at`

func (r *SQLiteObjectRepo) Create(ctx context.Context, o *domain.ConstructionObject) error {
	workTypes, err := workTypesToJSON(o.WorkTypes)
	if err != nil {
		return err
	}
	query := `INSERT INTO construction_objects (` + objectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		o.ID, o.ProjectID, o.Name, o.CustomerName, o.CustomerAddress, o.CustomerContacts,
		o.ContractorName, workTypes, o.TotalVolumeM2,
		nullableTimeToString(o.StartDate, dateLayout),
		nullableTimeToString(o.EndDate, dateLayout),
		nullableTimeToString(o.ContractDate, dateLayout),
		nullableIntToValue(o.DurationDays),
		o.ContractLink, o.EstimateLink, o.ProjectManager, string(o.Status), o.CreatedBy,
		formatTS(o.CreatedAt), formatTS(o.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting object: %w", err)
	}
	return nil
}

func (r *SQLiteObjectRepo) GetByID(ctx context.Context, id string) (*domain.ConstructionObject, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+objectColumns+` FROM construction_objects WHERE id = ?`, id)
	return scanObject(row)
}

func (r *SQLiteObjectRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ConstructionObject, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+objectColumns+` FROM construction_objects WHERE project_id = ? ORDER BY created_at DESC, id`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("listing objects: %w", err)
	}
	defer rows.Close()

	var objects []*domain.ConstructionObject
	for rows.Next() {
		o, err := scanObject(rows)
		if err != nil {
			return nil, err
		}
		objects = append(objects, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating objects: %w", err)
	}
	return objects, nil
}

func (r *SQLiteObjectRepo) UpdateStatus(ctx context.Context, id string, status domain.ObjectStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE construction_objects SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating object status: %w", err)
	}
	return requireAffected(res, "object")
}

func (r *SQLiteObjectRepo) CountByProject(ctx context.Context, projectID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM construction_objects WHERE project_id = ?`, projectID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting objects: %w", err)
	}
	return n, nil
}

func scanObject(row rowScanner) (*domain.ConstructionObject, error) {
	var o domain.ConstructionObject
	var workTypes, status, createdAt, updatedAt string
	var startDate, endDate, contractDate sql.NullString
	var durationDays sql.NullInt64

	err := row.Scan(
		&o.ID, &o.ProjectID, &o.Name, &o.CustomerName, &o.CustomerAddress, &o.CustomerContacts,
		&o.ContractorName, &workTypes, &o.TotalVolumeM2, &startDate, &endDate, &contractDate,
		&durationDays, &o.ContractLink, &o.EstimateLink, &o.ProjectManager, &status, &o.CreatedBy,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, notFound(err, "object")
	}

	if o.WorkTypes, err = workTypesFromJSON(workTypes); err != nil {
		return nil, err
	}
	o.Status = domain.ObjectStatus(status)
	o.StartDate = parseNullableTime(startDate, dateLayout)
	o.EndDate = parseNullableTime(endDate, dateLayout)
	o.ContractDate = parseNullableTime(contractDate, dateLayout)
	o.DurationDays = nullIntPtr(durationDays)
	if o.CreatedAt, err = parseTS(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if o.UpdatedAt, err = parseTS(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &o, nil
}
