package service

import (
	"context"

	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/models"
)

// HistoryRepository defines the persistence operations needed by the
// HistoryService.
type HistoryRepository interface {
	// LogAction records a borrow/return event at the front of the log.
	LogAction(ctx context.Context, action models.Action, itemName, cupboardName, ntID string) error
	// GetHistory returns the newest matching entries, newest first.
	GetHistory(ctx context.Context, ntIDFilter, actionFilter string, limit int) ([]models.AuditEntry, error)
}

// HistoryService implements audit-log operations by delegating to a
// HistoryRepository.
type HistoryService struct {
	repo HistoryRepository
}

// NewHistoryService constructs a HistoryService using the provided
// repository.
func NewHistoryService(repo HistoryRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Record appends one audit entry for the given event.
func (s *HistoryService) Record(ctx context.Context, action models.Action, itemName, cupboardName, ntID string) error {
	return s.repo.LogAction(ctx, action, itemName, cupboardName, ntID)
}

// Query returns audit entries filtered by actor and action, newest
// first, capped at limit.
func (s *HistoryService) Query(ctx context.Context, ntIDFilter, actionFilter string, limit int) ([]models.AuditEntry, error) {
	return s.repo.GetHistory(ctx, ntIDFilter, actionFilter, limit)
}
