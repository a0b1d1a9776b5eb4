package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/porbotenet-wq/facadeflow/internal/db"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

type SQLitePlanFactRepo struct {
	db db.DBTX
}

func NewSQLitePlanFactRepo(db db.DBTX) *SQLitePlanFactRepo {
	return &SQLitePlanFactRepo{db: db}
}

const planFactColumns = `id, object_id, report_date, week, day_number,
	modules_plan, modules_fact, brackets_plan, brackets_fact,
	sealant_plan, sealant_fact, hermetic_plan, hermetic_fact, notes, created_at`

func (r *SQLitePlanFactRepo) Create(ctx context.Context, p *domain.PlanFactDaily) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plan_fact_daily (`+planFactColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ObjectID, p.ReportDate.Format(dateLayout), p.Week, nullableIntToValue(p.DayNumber),
		nullableFloatToValue(p.ModulesPlan), nullableFloatToValue(p.ModulesFact),
		nullableFloatToValue(p.BracketsPlan), nullableFloatToValue(p.BracketsFact),
		nullableFloatToValue(p.SealantPlan), nullableFloatToValue(p.SealantFact),
		nullableFloatToValue(p.HermeticPlan), nullableFloatToValue(p.HermeticFact),
		p.Notes, formatTS(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting plan-fact row: %w", err)
	}
	return nil
}

func (r *SQLitePlanFactRepo) ListByObject(ctx context.Context, objectID string, limit int) ([]*domain.PlanFactDaily, error) {
	query := `SELECT ` + planFactColumns + ` FROM plan_fact_daily WHERE object_id = ?
		ORDER BY report_date DESC, created_at DESC`
	args := []any{objectID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing plan-fact rows: %w", err)
	}
	defer rows.Close()

	var out []*domain.PlanFactDaily
	for rows.Next() {
		var p domain.PlanFactDaily
		var reportDate, createdAt string
		var day sql.NullInt64
		var mp, mf, bp, bf, sp, sf, hp, hf sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.ObjectID, &reportDate, &p.Week, &day,
			&mp, &mf, &bp, &bf, &sp, &sf, &hp, &hf, &p.Notes, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning plan-fact row: %w", err)
		}
		if p.ReportDate, err = domain.ParseDate(reportDate); err != nil {
			return nil, fmt.Errorf("parsing report_date: %w", err)
		}
		p.DayNumber = nullIntPtr(day)
		p.ModulesPlan, p.ModulesFact = nullFloatPtr(mp), nullFloatPtr(mf)
		p.BracketsPlan, p.BracketsFact = nullFloatPtr(bp), nullFloatPtr(bf)
		p.SealantPlan, p.SealantFact = nullFloatPtr(sp), nullFloatPtr(sf)
		p.HermeticPlan, p.HermeticFact = nullFloatPtr(hp), nullFloatPtr(hf)
		if p.CreatedAt, err = parseTS(createdAt, "created_at"); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan-fact rows: %w", err)
	}
	return out, nil
}
