package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrCommuneInactive     = errors.New("commune is inactive")
	ErrUserInactive        = errors.New("user is inactive")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrDuplicateCommune    = errors.New("commune code already exists")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrPeriodNotActive     = errors.New("assessment period is not active")
	ErrAssessmentLocked    = errors.New("assessment is not editable in its current state")
	ErrInvalidTransition   = errors.New("invalid assessment status transition")
	ErrUnknownIndicator    = errors.New("indicator not found in criteria catalog")
	ErrCompositeIndicator  = errors.New("composite indicator values are derived from content results")
)
