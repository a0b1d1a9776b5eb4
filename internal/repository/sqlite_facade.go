package repository

import (
	"context"
	"fmt"

	"github.com/porbotenet-wq/facadeflow/internal/db"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

type SQLiteFacadeRepo struct {
	db db.DBTX
}

func NewSQLiteFacadeRepo(db db.DBTX) *SQLiteFacadeRepo {
	return &SQLiteFacadeRepo{db: db}
}

func (r *SQLiteFacadeRepo) Create(ctx context.Context, f *domain.Facade) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO facades (id, object_id, name, sort_order, status,
			modules_plan, modules_fact, brackets_plan, brackets_fact, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.ObjectID, f.Name, f.SortOrder, string(f.Status),
		f.ModulesPlan, f.ModulesFact, f.BracketsPlan, f.BracketsFact, formatTS(f.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting facade: %w", err)
	}
	return nil
}

func (r *SQLiteFacadeRepo) ListByObject(ctx context.Context, objectID string) ([]*domain.Facade, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, object_id, name, sort_order, status,
			modules_plan, modules_fact, brackets_plan, brackets_fact, created_at
		FROM facades WHERE object_id = ? ORDER BY sort_order, created_at`, objectID)
	if err != nil {
		return nil, fmt.Errorf("listing facades: %w", err)
	}
	defer rows.Close()

	var facades []*domain.Facade
	for rows.Next() {
		var f domain.Facade
		var status, createdAt string
		if err := rows.Scan(&f.ID, &f.ObjectID, &f.Name, &f.SortOrder, &status,
			&f.ModulesPlan, &f.ModulesFact, &f.BracketsPlan, &f.BracketsFact, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning facade: %w", err)
		}
		f.Status = domain.FacadeStatus(status)
		if f.CreatedAt, err = parseTS(createdAt, "created_at"); err != nil {
			return nil, err
		}
		facades = append(facades, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating facades: %w", err)
	}
	return facades, nil
}
