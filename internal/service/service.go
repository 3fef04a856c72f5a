package service

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roomsense/roomsense-backend/internal/auth"
)

// Notifier is the push side of the live channel. Delivery is best-effort,
// Push never reports failure.
type Notifier interface {
	Push(userID uint64, messageType string, payload interface{})
}

var (
	// ErrNotFound covers both a missing resource and one owned by somebody
	// else, callers cannot tell the two apart.
	ErrNotFound = errors.New("not found")

	ErrEmailTaken         = errors.New("email already in use")
	ErrDuplicateName      = errors.New("device name already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError marks bad input caught at the service boundary.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type Service struct {
	db       *gorm.DB
	tokens   *auth.TokenManager
	notifier Notifier
	logger   *zap.Logger
}

func New(db *gorm.DB, tokens *auth.TokenManager, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{
		db:       db,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger,
	}
}
