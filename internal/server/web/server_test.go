package web

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/webchat-dev/webchat/internal/logging"
	"github.com/webchat-dev/webchat/internal/server/auth"
	"github.com/webchat-dev/webchat/internal/server/messages"
	"github.com/webchat-dev/webchat/internal/server/users"
)

// --- shared test fixtures ---

const testSecret = "test-secret"

type stubUserService struct {
	registerOut  *users.User
	registerErr  error
	lastRegister [2]string

	loginToken string
	loginUser  *users.User
	loginErr   error
}

func (s *stubUserService) Register(ctx context.Context, username, password string) (*users.User, error) {
	s.lastRegister = [2]string{username, password}
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	if s.registerOut != nil {
		return s.registerOut, nil
	}
	return &users.User{ID: 1, Username: username}, nil
}

func (s *stubUserService) Login(ctx context.Context, username, password string) (string, *users.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.loginToken, s.loginUser, nil
}

type stubMessageService struct {
	sendOut *messages.Message
	sendErr error
	lastSend struct {
		senderID int64
		content  string
	}
	sendCalls int

	fetchOut    []messages.MessageView
	fetchErr    error
	lastAfterID int64
	lastUserID  int64

	deleteErr error
	lastDelete struct {
		id     int64
		userID int64
	}
	deleteCalls int
}

func (s *stubMessageService) Send(ctx context.Context, senderID int64, content string) (*messages.Message, error) {
	s.sendCalls++
	s.lastSend.senderID = senderID
	s.lastSend.content = content
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	if s.sendOut != nil {
		return s.sendOut, nil
	}
	return &messages.Message{ID: 1, SenderID: senderID, Content: content}, nil
}

func (s *stubMessageService) FetchSince(ctx context.Context, afterID, userID int64) ([]messages.MessageView, error) {
	s.lastAfterID = afterID
	s.lastUserID = userID
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if s.fetchOut == nil {
		return []messages.MessageView{}, nil
	}
	return s.fetchOut, nil
}

func (s *stubMessageService) Delete(ctx context.Context, id, userID int64) error {
	s.deleteCalls++
	s.lastDelete.id = id
	s.lastDelete.userID = userID
	return s.deleteErr
}

func newTestServer(t *testing.T, us UserService, ms MessageService) *Server {
	t.Helper()
	l := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	sessions := NewSessionManager([]byte(testSecret), time.Hour)
	srv, err := NewServer(l, us, ms, sessions)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	return srv
}

func sessionCookie(t *testing.T, userID int64, username string) *http.Cookie {
	t.Helper()
	token, err := auth.GenerateToken(userID, username, []byte(testSecret), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return &http.Cookie{Name: sessionCookieName, Value: token}
}

func doRequest(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// --- static assets ---

func TestStaticAssets(t *testing.T) {
	srv := newTestServer(t, &stubUserService{}, &stubMessageService{})
	h := srv.Handler()

	rec := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/sw.js", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /sw.js status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/javascript; charset=utf-8" {
		t.Fatalf("unexpected content type: %s", ct)
	}

	rec = doRequest(t, h, httptest.NewRequest(http.MethodGet, "/manifest.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /manifest.json status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/manifest+json" {
		t.Fatalf("unexpected content type: %s", ct)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	srv := newTestServer(t, &stubUserService{}, &stubMessageService{})

	rec := doRequest(t, srv.Handler(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d", rec.Code)
	}
}
