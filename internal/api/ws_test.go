package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomsense/roomsense-backend/internal/auth"
)

func wsURL(srv *httptest.Server, token string) string {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	if token != "" {
		url += "?token=" + token
	}
	return url
}

func expectClose(t *testing.T, conn *websocket.Conn, reason string) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)

	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, websocket.ClosePolicyViolation, closeErr.Code)
	assert.Equal(t, reason, closeErr.Text)
}

func TestWSRejectsMissingToken(t *testing.T) {
	a := newTestAPI(t)
	srv := httptest.NewServer(a.router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.NoError(t, err)
	defer conn.Close()

	expectClose(t, conn, "Token not provided")
}

func TestWSRejectsInvalidToken(t *testing.T) {
	a := newTestAPI(t)
	srv := httptest.NewServer(a.router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "garbage"), nil)
	require.NoError(t, err)
	defer conn.Close()

	expectClose(t, conn, "Invalid token")
}

func TestWSRejectsExpiredToken(t *testing.T) {
	a := newTestAPI(t)
	srv := httptest.NewServer(a.router)
	defer srv.Close()

	// same secret as the router, already expired
	expired, err := auth.NewTokenManager("test-secret", -time.Minute)
	require.NoError(t, err)
	token, err := expired.Generate(1)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	defer conn.Close()

	expectClose(t, conn, "Invalid token")
}

func TestWSRejectsUnknownUser(t *testing.T) {
	a := newTestAPI(t)
	srv := httptest.NewServer(a.router)
	defer srv.Close()

	token, err := a.tokens.Generate(999)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	defer conn.Close()

	expectClose(t, conn, "User not found")
}

func TestWSReceivesAlertOnThresholdBreach(t *testing.T) {
	a := newTestAPI(t)
	srv := httptest.NewServer(a.router)
	defer srv.Close()

	token := a.signup(t, "a@x.com")
	deviceID := a.createDevice(t, token, "sensor1")

	w := a.do(t, http.MethodPost, fmt.Sprintf("/api/devices/%d/thresholds", deviceID), token, map[string]interface{}{"tempMax": 35})
	require.Equal(t, http.StatusOK, w.Code)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	defer conn.Close()

	claims, err := a.tokens.Validate(token)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return a.hub.Connected(claims.UserID) }, time.Second, 10*time.Millisecond)

	// breach the bound over the REST API, the alert arrives on the socket
	w = a.do(t, http.MethodPost, "/api/readings", token, map[string]interface{}{
		"deviceId":    deviceID,
		"temperature": 40,
		"humidity":    50,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"alert"`)
	assert.Contains(t, string(data), "Temperature")
}
