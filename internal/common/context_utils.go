package common

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	SessionIDKey  contextKey = "pos_session_id"
	EmployeeIDKey contextKey = "employee_id"
)

// WithSessionID stores the POS session id on the context
func WithSessionID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}

// GetSessionIDFromContext extracts the POS session id from the request context
func GetSessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(SessionIDKey).(uuid.UUID)
	return id, ok
}

// WithEmployeeID stores the authenticated operator's employee id on the context
func WithEmployeeID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, EmployeeIDKey, id)
}

// GetEmployeeIDFromContext extracts the authenticated operator's employee id
func GetEmployeeIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(EmployeeIDKey).(int64)
	return id, ok
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
