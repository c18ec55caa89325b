package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/picking-be/internal/core/domain"
)

func TestNewMemo(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		text       string
		email      string
		isSystem   bool
		wantSender string
		wantErr    error
	}{
		{name: "human_sender_uses_local_part", text: "pallet 3 is short", email: "jiwoo@warehouse.kr", wantSender: "jiwoo"},
		{name: "system_sender", text: "upload done", email: "jiwoo@warehouse.kr", isSystem: true, wantSender: domain.SystemSender},
		{name: "email_without_at", text: "hi", email: "ops", wantSender: "ops"},
		{name: "blank_text_rejected", text: "   ", email: "a@b.c", wantErr: domain.ErrEmptyMemo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memo, err := domain.NewMemo(tt.text, tt.email, tt.isSystem, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSender, memo.Sender)
			assert.Equal(t, tt.isSystem, memo.IsSystem)
			assert.Equal(t, now, memo.CreatedAt)
		})
	}
}

func TestCountUnread(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	memos := []domain.Memo{
		{CreatedAt: base},
		{CreatedAt: base.Add(time.Minute)},
		{CreatedAt: base.Add(2 * time.Minute)},
	}

	assert.Equal(t, 3, domain.CountUnread(memos, time.Time{}))
	assert.Equal(t, 2, domain.CountUnread(memos, base))
	assert.Equal(t, 0, domain.CountUnread(memos, base.Add(time.Hour)))
}
