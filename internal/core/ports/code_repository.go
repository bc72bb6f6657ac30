package ports

import (
	"context"

	"github.com/bitforge/playground-api/internal/core/domain"
)

// CodeRepository reads saved snippets. This subsystem never writes them;
// the editor service owns creation and updates.
type CodeRepository interface {
	// FindByOwner returns the owner's snippets ordered by creation time,
	// newest first.
	FindByOwner(ctx context.Context, ownerID string) ([]domain.SavedCode, error)
}
