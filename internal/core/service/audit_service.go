package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bitforge/playground-api/internal/core/domain"
	"github.com/bitforge/playground-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists account activity to
// the audit trail.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single account activity event.
func (s *auditService) Process(ctx context.Context, event domain.AuthEvent) error {
	if event.Action == "" {
		return fmt.Errorf("process audit event: missing action")
	}

	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("process audit event: %w", err)
	}

	s.log.Debug().
		Str("email", event.Email).
		Str("action", string(event.Action)).
		Msg("audit event recorded")

	return nil
}
