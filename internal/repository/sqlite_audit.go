package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/porbotenet-wq/facadeflow/internal/db"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

type SQLiteAuditRepo struct {
	db db.DBTX
}

func NewSQLiteAuditRepo(db db.DBTX) *SQLiteAuditRepo {
	return &SQLiteAuditRepo{db: db}
}

func (r *SQLiteAuditRepo) Create(ctx context.Context, a *domain.AuditLog) error {
	oldValue, err := encodeJSONMap(a.OldValue)
	if err != nil {
		return fmt.Errorf("encoding old_value: %w", err)
	}
	newValue, err := encodeJSONMap(a.NewValue)
	if err != nil {
		return fmt.Errorf("encoding new_value: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, action, entity_type, entity_id, user_id, old_value, new_value, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Action, a.EntityType, a.EntityID, nullableStringToValue(a.UserID),
		oldValue, newValue, formatTS(a.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting audit log: %w", err)
	}
	return nil
}

func (r *SQLiteAuditRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]*domain.AuditLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, action, entity_type, entity_id, user_id, old_value, new_value, created_at
		FROM audit_logs WHERE entity_type = ? AND entity_id = ? ORDER BY created_at, rowid`,
		entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("listing audit logs: %w", err)
	}
	defer rows.Close()

	var out []*domain.AuditLog
	for rows.Next() {
		var a domain.AuditLog
		var userID, oldValue, newValue sql.NullString
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Action, &a.EntityType, &a.EntityID, &userID,
			&oldValue, &newValue, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning audit log: %w", err)
		}
		a.UserID = nullStringPtr(userID)
		if a.OldValue, err = decodeJSONMap(oldValue); err != nil {
			return nil, fmt.Errorf("decoding old_value: %w", err)
		}
		if a.NewValue, err = decodeJSONMap(newValue); err != nil {
			return nil, fmt.Errorf("decoding new_value: %w", err)
		}
		if a.CreatedAt, err = parseTS(createdAt, "created_at"); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit logs: %w", err)
	}
	return out, nil
}
