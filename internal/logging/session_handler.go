package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// FieldSessionID identifies one interactive editing session across log lines.
const FieldSessionID = "session_id"

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// WithSessionID returns a logger that stamps every record with sessionID.
func WithSessionID(logger *slog.Logger, sessionID string) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	return slog.New(newSessionIDHandler(logger.Handler(), sessionID))
}

// sessionIDHandler wraps another handler to inject a session_id attribute into all records.
type sessionIDHandler struct {
	base      slog.Handler
	sessionID string
}

func newSessionIDHandler(base slog.Handler, sessionID string) slog.Handler {
	if base == nil {
		return NoopHandler{}
	}
	return &sessionIDHandler{
		base:      base,
		sessionID: sessionID,
	}
}

func (h *sessionIDHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.base.Enabled(ctx, level)
}

func (h *sessionIDHandler) Handle(ctx context.Context, record slog.Record) error {
	record.AddAttrs(slog.String(FieldSessionID, h.sessionID))
	return h.base.Handle(ctx, record)
}

func (h *sessionIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sessionIDHandler{
		base:      h.base.WithAttrs(attrs),
		sessionID: h.sessionID,
	}
}

func (h *sessionIDHandler) WithGroup(name string) slog.Handler {
	return &sessionIDHandler{
		base:      h.base.WithGroup(name),
		sessionID: h.sessionID,
	}
}
