package messages

import (
	"context"
)

type Repository interface {
	// Create appends a message and returns it with the store-assigned id,
	// timestamp and sender display name filled in.
	Create(ctx context.Context, senderID int64, content string) (*Message, error)

	// ListAfter returns all messages with id > afterID joined with the
	// sender username, ordered by timestamp ascending (ties by id).
	ListAfter(ctx context.Context, afterID int64) ([]Message, error)

	// Delete removes a message only when it is owned by senderID. Deleting
	// a nonexistent or foreign message is a silent no-op.
	Delete(ctx context.Context, id, senderID int64) error
}
