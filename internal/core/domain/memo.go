// internal/core/domain/memo.go
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SystemSender is the sender name attached to generated notices
const SystemSender = "System"

// RecentMemoLimit is how many memos the shared log shows
const RecentMemoLimit = 50

var ErrEmptyMemo = errors.New("memo text is required")

// Memo is one entry of the shared team log
type Memo struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	IsSystem  bool      `json:"is_system"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMemo builds a memo. Human senders are shown by the local part of their email.
func NewMemo(text, userEmail string, isSystem bool, now time.Time) (*Memo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMemo
	}

	sender := SystemSender
	if !isSystem {
		sender = SenderName(userEmail)
	}

	return &Memo{
		ID:        uuid.New(),
		Text:      text,
		Sender:    sender,
		IsSystem:  isSystem,
		CreatedAt: now,
	}, nil
}

// SenderName returns the part of an email before '@'
func SenderName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// CountUnread counts memos newer than lastRead. A zero lastRead means nothing was read yet.
func CountUnread(memos []Memo, lastRead time.Time) int {
	if lastRead.IsZero() {
		return len(memos)
	}
	n := 0
	for _, m := range memos {
		if m.CreatedAt.After(lastRead) {
			n++
		}
	}
	return n
}
