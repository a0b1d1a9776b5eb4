package service

import (
	"errors"

	"github.com/porbotenet-wq/facadeflow/internal/domain"
	"github.com/porbotenet-wq/facadeflow/internal/repository"
)

var (
	// ErrValidation wraps every input rejected by a use case.
	ErrValidation = domain.ErrValidation
	// ErrNotFound is the repository sentinel, re-exported for callers of the service layer.
	ErrNotFound = repository.ErrNotFound

	ErrAlreadyMaterialized = errors.New("tasks already materialized for object")
	ErrUserPending         = errors.New("user is awaiting approval")
	ErrUserBlocked         = errors.New("user is blocked")
	ErrForbidden           = errors.New("forbidden")
)
