package domain

import (
	"context"
	"time"
)

// ActivityLog is a best-effort audit trail entry; failures to record one
// never fail the operation that produced it.
type ActivityLog struct {
	ID         int64     `json:"id"`
	UserID     *int64    `json:"user_id,omitempty"` // nil for public actions
	Action     string    `json:"action"`
	EntityType *string   `json:"entity_type,omitempty"`
	EntityID   *int64    `json:"entity_id,omitempty"`
	Details    *string   `json:"details,omitempty"`
	IPAddress  *string   `json:"ip_address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ActivityRepository interface {
	Record(ctx context.Context, entry *ActivityLog) error
	Recent(ctx context.Context, limit int) ([]ActivityLog, error)
}
