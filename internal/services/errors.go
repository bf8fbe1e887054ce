package services

import (
	"errors"

	"gorm.io/gorm"

	"portfolio_backend/pkg/apperrors"
)

// handleRepoError maps gorm errors onto the application taxonomy; AppErrors pass through
func handleRepoError(err error, domain string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(err, apperrors.CodeNotFound, domain, "Resource not found", 404)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrIntegrityViolation(err, domain, "Duplicate value violates a unique constraint")
	}
	return apperrors.InternalError(err)
}
