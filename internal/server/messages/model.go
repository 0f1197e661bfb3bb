package messages

import "time"

// Message is one chat room entry. IDs are assigned by the store in strictly
// increasing order and are never reused, which is what makes incremental
// polling by "last seen id" correct.
type Message struct {
	ID         int64
	SenderID   int64
	SenderName string
	Content    string
	Timestamp  time.Time
}

// MessageView is the JSON shape returned to a polling client. Time carries
// only hour:minute in server-local time, matching what the chat page shows.
type MessageView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Content  string `json:"content"`
	Time     string `json:"time"`
	IsMine   bool   `json:"is_mine"`
}
