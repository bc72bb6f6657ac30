package ports

import (
	"context"

	"github.com/bitforge/playground-api/internal/core/domain"
)

// AuditService processes account activity events off the request path.
type AuditService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}
