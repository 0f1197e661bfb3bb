package messages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/webchat-dev/webchat/internal/common"
	"github.com/webchat-dev/webchat/internal/logging"
	"github.com/webchat-dev/webchat/internal/server/notify"
)

// timeLayout is how a message timestamp is shown to the client: hour and
// minute in server-local time, no date.
const timeLayout = "15:04"

type Service struct {
	repo          Repository
	notifier      notify.Notifier
	logger        logging.Logger
	notifyTimeout time.Duration
}

// NewService wires the message store with the optional push notifier.
// A nil notifier disables dispatch entirely.
func NewService(repo Repository, notifier notify.Notifier, logger logging.Logger, notifyTimeout time.Duration) *Service {
	return &Service{
		repo:          repo,
		notifier:      notifier,
		logger:        logger.With("module", "messages"),
		notifyTimeout: notifyTimeout,
	}
}

// Send appends one message for senderID. Content is trimmed first; an empty
// result rejects the submission without touching the store or the notifier.
// On success a push notification is dispatched in the background, bounded by
// the configured timeout, and its outcome never affects the returned value.
func (s *Service) Send(ctx context.Context, senderID int64, content string) (*Message, error) {

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, common.ErrorEmptyContent
	}

	m, err := s.repo.Create(ctx, senderID, content)
	if err != nil {
		return nil, fmt.Errorf("error creating message: %w", err)
	}

	s.dispatchNotification(m)

	return m, nil
}

// dispatchNotification fires the push in a detached goroutine. The context
// is deliberately not the request context: the response must not wait on a
// slow notification endpoint, and a finished request must not cancel one.
func (s *Service) dispatchNotification(m *Message) {
	if s.notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()

		if err := s.notifier.Push(ctx, m.SenderName, m.Content); err != nil {
			s.logger.Warn(ctx, "notification dispatch failed", "message_id", m.ID, "error", err)
		}
	}()
}

// FetchSince returns every message with id > afterID in timestamp order,
// flagging the ones sent by userID. Repeated calls with the same afterID
// over a stable store return the same result.
func (s *Service) FetchSince(ctx context.Context, afterID, userID int64) ([]MessageView, error) {

	msgs, err := s.repo.ListAfter(ctx, afterID)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}

	views := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, MessageView{
			ID:       m.ID,
			Username: m.SenderName,
			Content:  m.Content,
			Time:     m.Timestamp.Local().Format(timeLayout),
			IsMine:   m.SenderID == userID,
		})
	}

	return views, nil
}

// Delete removes a message when it belongs to userID. Foreign and
// nonexistent ids are silent no-ops, indistinguishable to the caller.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("error deleting message: %w", err)
	}
	return nil
}
