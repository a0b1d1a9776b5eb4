package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/porbotenet-wq/facadeflow/internal/db"
	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/repository"
)

type userService struct {
	users    repository.UserRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewUserService(users repository.UserRepo, uow db.UnitOfWork, observers ...UseCaseObserver) UserService {
	return &userService{users: users, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *userService) Identify(ctx context.Context, telegramID int64) (*domain.User, error) {
	u, err := s.users.GetByTelegramID(ctx, telegramID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Authorize(ctx context.Context, telegramID int64) (*domain.User, error) {
	u, err := s.users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	switch u.Status {
	case domain.UserActive:
		return u, nil
	case domain.UserBlocked:
		return u, ErrUserBlocked
	default:
		return u, ErrUserPending
	}
}

// Register creates a PENDING user. Registering an existing telegram id
// returns the stored user unchanged.
func (s *userService) Register(ctx context.Context, telegramID int64, fullName string) (u *domain.User, err error) {
	defer observe(ctx, s.observer, "register-user", time.Now().UTC(), map[string]any{"telegram_id": telegramID}, &err)

	existing, err := s.Identify(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now().UTC()
	u = &domain.User{
		ID:         uuid.New().String(),
		TelegramID: telegramID,
		FullName:   strings.TrimSpace(fullName),
		Status:     domain.UserPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err = u.Validate(); err != nil {
		return nil, err
	}
	if err = s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Bootstrap(ctx context.Context, telegramID int64, fullName string) (u *domain.User, err error) {
	defer observe(ctx, s.observer, "bootstrap-admin", time.Now().UTC(), map[string]any{"telegram_id": telegramID}, &err)

	if _, err = s.Register(ctx, telegramID, fullName); err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txUsers := repository.NewSQLiteUserRepo(tx)
		active, err := txUsers.CountByStatus(ctx, domain.UserActive)
		if err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("%w: %d active users already exist", ErrForbidden, active)
		}
		u, err = txUsers.GetByTelegramID(ctx, telegramID)
		if err != nil {
			return err
		}
		u.Status = domain.UserActive
		u.Role = domain.RoleAdmin
		u.UpdatedAt = time.Now().UTC()
		if err := txUsers.Update(ctx, u); err != nil {
			return err
		}
		return writeAudit(ctx, repository.NewSQLiteAuditRepo(tx), domain.AuditUserStatusChanged, "user", u.ID, u.ID,
			map[string]any{"status": string(domain.UserPending)},
			map[string]any{"status": string(domain.UserActive), "role": string(domain.RoleAdmin)})
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) List(ctx context.Context, status domain.UserStatus) ([]*domain.User, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown user status %q", ErrValidation, status)
	}
	return s.users.List(ctx, status)
}

func (s *userService) Approve(ctx context.Context, userID, actorID string) error {
	return s.setStatus(ctx, "approve-user", userID, domain.UserActive, actorID)
}

func (s *userService) Block(ctx context.Context, userID, actorID string) error {
	return s.setStatus(ctx, "block-user", userID, domain.UserBlocked, actorID)
}

func (s *userService) Unblock(ctx context.Context, userID, actorID string) error {
	return s.setStatus(ctx, "unblock-user", userID, domain.UserActive, actorID)
}

func (s *userService) setStatus(ctx context.Context, name, userID string, status domain.UserStatus, actorID string) (err error) {
	defer observe(ctx, s.observer, name, time.Now().UTC(), map[string]any{"user_id": userID}, &err)

	return s.mutate(ctx, userID, actorID, domain.AuditUserStatusChanged, func(u *domain.User) (map[string]any, map[string]any, error) {
		old := map[string]any{"status": string(u.Status)}
		u.Status = status
		return old, map[string]any{"status": string(status)}, nil
	})
}

func (s *userService) SetRole(ctx context.Context, userID string, role domain.Role, actorID string) (err error) {
	defer observe(ctx, s.observer, "set-user-role", time.Now().UTC(), map[string]any{"user_id": userID, "role": role}, &err)

	return s.mutate(ctx, userID, actorID, domain.AuditUserProfileChanged, func(u *domain.User) (map[string]any, map[string]any, error) {
		if role != "" && !role.Valid() {
			return nil, nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
		}
		old := map[string]any{"role": string(u.Role)}
		u.Role = role
		return old, map[string]any{"role": string(role)}, nil
	})
}

func (s *userService) SetDepartment(ctx context.Context, userID, department, actorID string) (err error) {
	defer observe(ctx, s.observer, "set-user-department", time.Now().UTC(), map[string]any{"user_id": userID}, &err)

	return s.mutate(ctx, userID, actorID, domain.AuditUserProfileChanged, func(u *domain.User) (map[string]any, map[string]any, error) {
		if department != "" && !domain.ValidDepartment(department) {
			return nil, nil, fmt.Errorf("%w: unknown department %q", ErrValidation, department)
		}
		old := map[string]any{"department": u.Department}
		u.Department = department
		return old, map[string]any{"department": department}, nil
	})
}

// mutate loads the user, applies change and writes the update with its audit
// entry in one transaction.
func (s *userService) mutate(ctx context.Context, userID, actorID, action string, change func(u *domain.User) (oldValue, newValue map[string]any, err error)) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txUsers := repository.NewSQLiteUserRepo(tx)
		u, err := txUsers.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		oldValue, newValue, err := change(u)
		if err != nil {
			return err
		}
		if err := txUsers.Update(ctx, u); err != nil {
			return err
		}
		return writeAudit(ctx, repository.NewSQLiteAuditRepo(tx), action, "user", userID, actorID, oldValue, newValue)
	})
}
