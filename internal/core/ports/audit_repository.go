package ports

import (
	"context"

	"github.com/bitforge/playground-api/internal/core/domain"
)

// AuditRepository persists account activity events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}
