// Package service provides the business-logic services for inventory,
// audit history, authentication, and notification, delegating
// persistence to repository interfaces.
package service

import (
	"context"

	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/models"
)

// InventoryRepository defines the persistence operations needed by the
// InventoryService.
type InventoryRepository interface {
	// GetAllCupboards returns every cupboard with its items in stored order.
	GetAllCupboards(ctx context.Context) ([]models.Cupboard, error)
	// ToggleLock flips the lock state of an item. It returns
	// repository.ErrNotFound or repository.ErrNotAuthorized for the
	// domain failures and wraps I/O errors otherwise.
	ToggleLock(ctx context.Context, cupboardID int, itemID, ntID string, isAdmin bool) (*models.ToggleResult, error)
	// AddItem appends a new locked item; false when the cupboard is absent.
	AddItem(ctx context.Context, cupboardID int, name string) (bool, error)
	// RemoveItem filters the item out; false when the cupboard is absent.
	RemoveItem(ctx context.Context, cupboardID int, itemID string) (bool, error)
	// AddCupboard appends an empty cupboard and returns its id.
	AddCupboard(ctx context.Context, name string) (int, error)
	// RemoveCupboard filters the cupboard out; absent ids are a no-op.
	RemoveCupboard(ctx context.Context, cupboardID int) error
}

// InventoryService implements inventory operations by delegating to an
// InventoryRepository.
type InventoryService struct {
	repo InventoryRepository
}

// NewInventoryService constructs an InventoryService using the provided
// repository.
func NewInventoryService(repo InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

// ListCupboards returns the full inventory in stored order.
func (s *InventoryService) ListCupboards(ctx context.Context) ([]models.Cupboard, error) {
	return s.repo.GetAllCupboards(ctx)
}

// Toggle flips the lock state of one item on behalf of the given actor.
func (s *InventoryService) Toggle(ctx context.Context, cupboardID int, itemID, ntID string, isAdmin bool) (*models.ToggleResult, error) {
	return s.repo.ToggleLock(ctx, cupboardID, itemID, ntID, isAdmin)
}

// AddItem adds a named item to a cupboard; false when the cupboard is
// unknown.
func (s *InventoryService) AddItem(ctx context.Context, cupboardID int, name string) (bool, error) {
	return s.repo.AddItem(ctx, cupboardID, name)
}

// RemoveItem removes an item from a cupboard; false when the cupboard is
// unknown.
func (s *InventoryService) RemoveItem(ctx context.Context, cupboardID int, itemID string) (bool, error) {
	return s.repo.RemoveItem(ctx, cupboardID, itemID)
}

// AddCupboard creates a new empty cupboard and returns its id.
func (s *InventoryService) AddCupboard(ctx context.Context, name string) (int, error) {
	return s.repo.AddCupboard(ctx, name)
}

// RemoveCupboard deletes a cupboard and all of its items.
func (s *InventoryService) RemoveCupboard(ctx context.Context, cupboardID int) error {
	return s.repo.RemoveCupboard(ctx, cupboardID)
}
