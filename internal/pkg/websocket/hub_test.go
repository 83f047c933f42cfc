package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/futureintern/platform/internal/events"
	"github.com/futureintern/platform/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newServer mounts the handler behind a fake auth step that trusts the
// X-User-ID header.
func newServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()

	h := NewHandler(hub, nil, zerolog.Nop())
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		switch c.GetHeader("X-User-ID") {
		case "3":
			c.Set(middleware.ContextUserID, int64(3))
		case "4":
			c.Set(middleware.ContextUserID, int64(4))
		}
		c.Next()
	}, h.HandleConnection)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	header := http.Header{}
	header.Set("X-User-ID", userID)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

func waitForClients(t *testing.T, hub *Hub, userID int64, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount(userID) == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_StatusChangeReachesOnlyTheStudent(t *testing.T) {
	hub := startHub(t)
	srv := newServer(t, hub)

	student := dial(t, srv, "3")
	other := dial(t, srv, "4")
	waitForClients(t, hub, 3, 1)
	waitForClients(t, hub, 4, 1)

	require.NoError(t, hub.HandleApplicationStatusChanged(context.Background(), events.ApplicationStatusChanged{
		ApplicationID: 5, StudentID: 3, InternshipID: 10, OldStatus: "pending", NewStatus: "accepted", ChangedBy: 20,
	}))

	var got Notification
	require.NoError(t, student.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, student.ReadJSON(&got))
	assert.Equal(t, NotificationApplicationStatus, got.Type)
	assert.Equal(t, int64(5), got.ApplicationID)
	assert.Equal(t, "accepted", got.Status)
	assert.Equal(t, "pending", got.PreviousStatus)
	assert.False(t, got.Timestamp.IsZero())

	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "user 4 must not receive user 3's notification")
}

func TestHub_OwnWithdrawalIsNotPushed(t *testing.T) {
	hub := startHub(t)
	srv := newServer(t, hub)

	student := dial(t, srv, "3")
	waitForClients(t, hub, 3, 1)

	require.NoError(t, hub.HandleApplicationStatusChanged(context.Background(), events.ApplicationStatusChanged{
		ApplicationID: 5, StudentID: 3, NewStatus: "withdrawn", ChangedBy: 3,
	}))

	require.NoError(t, student.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := student.ReadMessage()
	assert.Error(t, err)
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub := startHub(t)
	srv := newServer(t, hub)

	conn := dial(t, srv, "3")
	waitForClients(t, hub, 3, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, hub, 3, 0)
}

func TestHub_NotifyAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Notify(3, Notification{Type: NotificationApplicationStatus})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Notify blocked on a stopped hub")
	}
}

func TestHandleConnection_RequiresIdentity(t *testing.T) {
	hub := startHub(t)
	srv := newServer(t, hub)

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOriginChecker(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "http://api.example.com/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	check := originChecker([]string{"https://app.example.com"})
	assert.True(t, check(req("https://app.example.com")))
	assert.True(t, check(req("")))
	assert.True(t, check(req("http://api.example.com")))
	assert.False(t, check(req("https://evil.example.com")))

	assert.True(t, originChecker([]string{"*"})(req("https://anything.example.com")))

	local := originChecker([]string{"http://localhost:*"})
	assert.True(t, local(req("http://localhost:5173")))
	assert.False(t, local(req("http://localhost.evil.com")))
}
