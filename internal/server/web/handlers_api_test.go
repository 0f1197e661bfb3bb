package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webchat-dev/webchat/internal/common"
	"github.com/webchat-dev/webchat/internal/server/messages"
)

// --- /get_messages ---

func TestGetMessages_Unauthenticated(t *testing.T) {
	srv := newTestServer(t, &stubUserService{}, &stubMessageService{})

	rec := doRequest(t, srv.Handler(), httptest.NewRequest(http.MethodGet, "/get_messages", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
}

func TestGetMessages_ReturnsViews(t *testing.T) {
	ms := &stubMessageService{fetchOut: []messages.MessageView{
		{ID: 1, Username: "alice", Content: "hi", Time: "14:30", IsMine: true},
		{ID: 2, Username: "bob", Content: "hello", Time: "14:31", IsMine: false},
	}}
	srv := newTestServer(t, &stubUserService{}, ms)

	req := httptest.NewRequest(http.MethodGet, "/get_messages?after_id=0", nil)
	req.AddCookie(sessionCookie(t, 7, "alice"))
	rec := doRequest(t, srv.Handler(), req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), ms.lastUserID, "requesting user id must come from the session")

	var got []messages.MessageView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.True(t, got[0].IsMine)
	assert.False(t, got[1].IsMine)
}

func TestGetMessages_AfterIDParsing(t *testing.T) {
	tests := []struct {
		query string
		want  int64
	}{
		{"?after_id=5", 5},
		{"?after_id=abc", 0},
		{"?after_id=-3", 0},
		{"", 0},
	}

	for _, tc := range tests {
		ms := &stubMessageService{}
		srv := newTestServer(t, &stubUserService{}, ms)

		req := httptest.NewRequest(http.MethodGet, "/get_messages"+tc.query, nil)
		req.AddCookie(sessionCookie(t, 7, "alice"))
		rec := doRequest(t, srv.Handler(), req)

		require.Equal(t, http.StatusOK, rec.Code, "query=%q", tc.query)
		assert.Equal(t, tc.want, ms.lastAfterID, "query=%q", tc.query)
	}
}

func TestGetMessages_StoreError(t *testing.T) {
	ms := &stubMessageService{fetchErr: assert.AnError}
	srv := newTestServer(t, &stubUserService{}, ms)

	req := httptest.NewRequest(http.MethodGet, "/get_messages", nil)
	req.AddCookie(sessionCookie(t, 7, "alice"))
	rec := doRequest(t, srv.Handler(), req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

// --- /send_message ---

func TestSendMessage_Unauthenticated(t *testing.T) {
	ms := &stubMessageService{}
	srv := newTestServer(t, &stubUserService{}, ms)

	req := httptest.NewRequest(http.MethodPost, "/send_message", strings.NewReader(`{"content":"hi"}`))
	rec := doRequest(t, srv.Handler(), req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, ms.sendCalls, "no store access without a session")
}

func TestSendMessage_OK(t *testing.T) {
	ms := &stubMessageService{}
	srv := newTestServer(t, &stubUserService{}, ms)

	req := httptest.NewRequest(http.MethodPost, "/send_message", strings.NewReader(`{"content":"hi"}`))
	req.AddCookie(sessionCookie(t, 7, "alice"))
	rec := doRequest(t, srv.Handler(), req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	assert.Equal(t, int64(7), ms.lastSend.senderID)
	assert.Equal(t, "hi", ms.lastSend.content)
}

func TestSendMessage_EmptyContent(t *testing.T) {
	ms := &stubMessageService{sendErr: common.ErrorEmptyContent}
	srv := newTestServer(t, &stubUserService{}, ms)

	req := httptest.NewRequest(http.MethodPost, "/send_message", strings.NewReader(`{"content":"   "}`))
	req.AddCookie(sessionCookie(t, 7, "alice"))
	rec := doRequest(t, srv.Handler(), req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Empty content", resp.Message)
}

func TestSendMessage_MalformedBody(t *testing.T) {
	ms := &stubMessageService{}
	srv := newTestServer(t, &stubUserService{}, ms)

	req := httptest.NewRequest(http.MethodPost, "/send_message", strings.NewReader(`{not json`))
	req.AddCookie(sessionCookie(t, 7, "alice"))
	rec := doRequest(t, srv.Handler(), req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, ms.sendCalls)
}

// --- /delete/{id} ---

func TestDeleteMessage_RedirectsAndScopes(t *testing.T) {
	ms := &stubMessageService{}
	srv := newTestServer(t, &stubUserService{}, ms)

	req := httptest.NewRequest(http.MethodPost, "/delete/3", nil)
	req.AddCookie(sessionCookie(t, 7, "alice"))
	rec := doRequest(t, srv.Handler(), req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, int64(3), ms.lastDelete.id)
	assert.Equal(t, int64(7), ms.lastDelete.userID)
}

func TestDeleteMessage_Unauthenticated(t *testing.T) {
	ms := &stubMessageService{}
	srv := newTestServer(t, &stubUserService{}, ms)

	rec := doRequest(t, srv.Handler(), httptest.NewRequest(http.MethodPost, "/delete/3", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Zero(t, ms.deleteCalls)
}

func TestDeleteMessage_BadIDStillRedirects(t *testing.T) {
	ms := &stubMessageService{}
	srv := newTestServer(t, &stubUserService{}, ms)

	req := httptest.NewRequest(http.MethodPost, "/delete/abc", nil)
	req.AddCookie(sessionCookie(t, 7, "alice"))
	rec := doRequest(t, srv.Handler(), req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Zero(t, ms.deleteCalls)
}
