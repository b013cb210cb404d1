// Package session defines the per-chat snapshot the bot keeps between
// updates: where the chat is in the navigator plus the local state of the
// screen it is looking at.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aliskhannn/maktabati-bot/internal/domain/navigation"
	"github.com/aliskhannn/maktabati-bot/internal/domain/screens"
)

// ErrNotFound is returned by session stores for chats they hold nothing for.
var ErrNotFound = errors.New("session not found")

// Session is everything needed to redraw a chat's screen. Quiz progress is
// not part of it and lives in process memory only.
type Session struct {
	ChatID    int64               `json:"chat_id"`
	MessageID int                 `json:"message_id,omitempty"` // screen message edited in place
	Nav       navigation.State    `json:"nav"`
	Grade     screens.GradeFilter `json:"grade"`
	Accordion screens.Accordion   `json:"accordion"`
	Reader    screens.Reader      `json:"reader"`
	Vocab     screens.VocabCursor `json:"vocab"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// New returns a session sitting on the home screen.
func New(chatID int64, now time.Time) *Session {
	return &Session{
		ChatID:    chatID,
		Nav:       navigation.Initial(),
		Grade:     screens.NewGradeFilter(),
		Reader:    screens.NewReader(),
		UpdatedAt: now,
	}
}

// View is a shortcut for the current navigator view.
func (s *Session) View() navigation.View {
	return s.Nav.View
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s *Session) Clone() *Session {
	out := *s
	out.Nav.Stack = append([]navigation.View(nil), s.Nav.Stack...)
	return &out
}

// Marshal encodes the session for the persistent stores.
func Marshal(s *Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a stored session.
func Unmarshal(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}
