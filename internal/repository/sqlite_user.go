package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/porbotenet-wq/facadeflow/internal/db"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
)

type SQLiteUserRepo struct {
	db db.DBTX
}

func NewSQLiteUserRepo(db db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: db}
}

const userColumns = `id, telegram_id, full_name, role, department, status, project_id, created_at, updated_at`

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.TelegramID, u.FullName, string(u.Role), u.Department, string(u.Status),
		nullableStringToValue(u.ProjectID), formatTS(u.CreatedAt), formatTS(u.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *SQLiteUserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE telegram_id = ?`, telegramID)
	return scanUser(row)
}

func (r *SQLiteUserRepo) List(ctx context.Context, status domain.UserStatus) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func (r *SQLiteUserRepo) Update(ctx context.Context, u *domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET full_name = ?, role = ?, department = ?, status = ?, project_id = ?, updated_at = ?
		WHERE id = ?`,
		u.FullName, string(u.Role), u.Department, string(u.Status),
		nullableStringToValue(u.ProjectID), nowUTC(), u.ID)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return requireAffected(res, "user")
}

func (r *SQLiteUserRepo) CountByStatus(ctx context.Context, status domain.UserStatus) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE status = ?`, string(status)).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var role, status, createdAt, updatedAt string
	var projectID sql.NullString
	err := row.Scan(&u.ID, &u.TelegramID, &u.FullName, &role, &u.Department, &status,
		&projectID, &createdAt, &updatedAt)
	if err != nil {
		return nil, notFound(err, "user")
	}
	u.Role = domain.Role(role)
	u.Status = domain.UserStatus(status)
	u.ProjectID = nullStringPtr(projectID)
	if u.CreatedAt, err = parseTS(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if u.UpdatedAt, err = parseTS(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &u, nil
}
