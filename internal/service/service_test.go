package service

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roomsense/roomsense-backend/internal/auth"
	"github.com/roomsense/roomsense-backend/internal/database"
	"github.com/roomsense/roomsense-backend/internal/model"
)

type push struct {
	userID      uint64
	messageType string
	payload     interface{}
}

type recordingNotifier struct {
	mu     sync.Mutex
	pushes []push
}

func (n *recordingNotifier) Push(userID uint64, messageType string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushes = append(n.pushes, push{userID: userID, messageType: messageType, payload: payload})
}

func (n *recordingNotifier) all() []push {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]push(nil), n.pushes...)
}

func newTestService(t *testing.T) (*Service, *recordingNotifier) {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	notifier := &recordingNotifier{}
	return New(db, tokens, notifier, zap.NewNop()), notifier
}

func registerUser(t *testing.T, s *Service, email string) *model.User {
	t.Helper()
	user, err := s.Register(email, "pw1")
	require.NoError(t, err)
	return user
}

func createDevice(t *testing.T, s *Service, userID uint64, name string) *model.Device {
	t.Helper()
	device, err := s.CreateDevice(userID, name, "Room A")
	require.NoError(t, err)
	return device
}

func floatPtr(v float64) *float64 {
	return &v
}
