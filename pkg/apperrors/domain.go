package apperrors

import (
	"net/http"
)

// ErrInvalidInput covers conflicting or missing media sources and malformed slug sources
func ErrInvalidInput(domain, message string, details interface{}) *AppError {
	e := New(CodeInvalidInput, domain, message, http.StatusBadRequest)
	if details != nil {
		e.Details = details
	}
	return e
}

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound) into a 404
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// NotFound builds a 404 for a named resource
func NotFound(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrStorageUnavailable wraps a failed save/delete/exists call on the storage backend
func ErrStorageUnavailable(err error) *AppError {
	return Wrap(err, CodeStorageUnavailable, "storage", "Storage backend unavailable", http.StatusServiceUnavailable)
}

// ErrIntegrityViolation covers singleton and slug uniqueness failures
func ErrIntegrityViolation(err error, domain, message string) *AppError {
	return Wrap(err, CodeIntegrityViolation, domain, message, http.StatusConflict)
}

var ErrSingletonExists = New(
	CodeIntegrityViolation,
	"singleton",
	"A row already exists for this singleton entity",
	http.StatusConflict,
)

var ErrSingletonDelete = New(
	CodeIntegrityViolation,
	"singleton",
	"Singleton entities cannot be deleted",
	http.StatusConflict,
)

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrNoMedia = New(
	CodeNotFound,
	"media",
	"No media stored for this field",
	http.StatusNotFound,
)
