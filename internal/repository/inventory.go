// Package repository provides persistence implementations for the
// inventory and audit history, backed by flat JSON documents on disk.
//
// Each repository keeps the authoritative document in memory behind a
// read-write mutex and snapshots it back to its file after every
// mutation, so reads never touch the disk and writers serialize through
// the lock.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/models"
	"go.uber.org/zap"
)

// inventoryDocument is the on-disk shape of inventory.json.
type inventoryDocument struct {
	Cupboards []models.Cupboard `json:"cupboards"`
}

// FileInventoryRepository implements inventory operations over a single
// JSON document. All methods are safe for concurrent use.
type FileInventoryRepository struct {
	path string
	log  *zap.Logger

	mu  sync.RWMutex
	doc inventoryDocument

	// now is swappable for tests.
	now func() time.Time
}

// NewFileInventoryRepository loads the inventory document at path, seeding
// it with the default cupboard layout when the file does not exist yet.
func NewFileInventoryRepository(path string, log *zap.Logger) (*FileInventoryRepository, error) {
	r := &FileInventoryRepository{
		path: path,
		log:  log,
		now:  time.Now,
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &r.doc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		r.doc = defaultInventory()
		if err := r.save(); err != nil {
			return nil, err
		}
		log.Info("seeded inventory with default data", zap.String("path", path))
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return r, nil
}

// itemID builds the composite item id for a cupboard and sequence
// number, e.g. itemID(1, 4) == "C1_004".
func itemID(cupboardID, seq int) string {
	return fmt.Sprintf("C%d_%03d", cupboardID, seq)
}

// save writes the current document to disk, pretty-printed. Callers must
// hold the write lock.
func (r *FileInventoryRepository) save() error {
	data, err := json.MarshalIndent(&r.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	return nil
}

// GetAllCupboards returns a copy of every cupboard with its items in
// stored order.
func (r *FileInventoryRepository) GetAllCupboards(ctx context.Context) ([]models.Cupboard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cupboards := make([]models.Cupboard, len(r.doc.Cupboards))
	for i, c := range r.doc.Cupboards {
		cupboards[i] = c
		cupboards[i].Items = append([]models.Item(nil), c.Items...)
	}
	return cupboards, nil
}

// ToggleLock flips the lock state of one item.
//
// A locked item is unlocked (borrowed): the actor becomes the borrower
// and the borrow timestamp is set. An unlocked item is locked (returned):
// only the recorded borrower or an admin may do this, otherwise
// ErrNotAuthorized is returned and nothing changes. Borrowing carries no
// ownership check at all, so an actor may re-borrow an item somebody
// else holds.
//
// Returns ErrNotFound when the cupboard or item does not exist. The
// document is persisted before a successful result is returned.
func (r *FileInventoryRepository) ToggleLock(ctx context.Context, cupboardID int, itemID, ntID string, isAdmin bool) (*models.ToggleResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ci := range r.doc.Cupboards {
		cupboard := &r.doc.Cupboards[ci]
		if cupboard.ID != cupboardID {
			continue
		}
		for ii := range cupboard.Items {
			item := &cupboard.Items[ii]
			if item.ID != itemID {
				continue
			}

			var action models.Action
			if item.IsLocked {
				// Borrow: unconditional.
				borrowedAt := r.now().Format(models.TimeLayout)
				item.IsLocked = false
				item.BorrowedBy = &ntID
				item.BorrowedAt = &borrowedAt
				action = models.ActionUnlocked
			} else {
				if !isAdmin && (item.BorrowedBy == nil || *item.BorrowedBy != ntID) {
					return nil, &NotAuthorizedError{
						ItemName:     item.Name,
						CupboardName: cupboard.Name,
					}
				}
				item.IsLocked = true
				item.BorrowedBy = nil
				item.BorrowedAt = nil
				action = models.ActionLocked
			}

			if err := r.save(); err != nil {
				return nil, err
			}
			return &models.ToggleResult{
				Action:       action,
				ItemName:     item.Name,
				CupboardName: cupboard.Name,
			}, nil
		}
		return nil, ErrNotFound
	}
	return nil, ErrNotFound
}

// AddItem appends a new locked item to the cupboard, assigning the
// smallest unused sequence id ("C<cupboard>_<seq>", three digits,
// starting at 1). Released ids are reused. Returns false when the
// cupboard does not exist.
func (r *FileInventoryRepository) AddItem(ctx context.Context, cupboardID int, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ci := range r.doc.Cupboards {
		cupboard := &r.doc.Cupboards[ci]
		if cupboard.ID != cupboardID {
			continue
		}

		existing := make(map[string]bool, len(cupboard.Items))
		for _, item := range cupboard.Items {
			existing[item.ID] = true
		}
		seq := 1
		for existing[itemID(cupboardID, seq)] {
			seq++
		}

		cupboard.Items = append(cupboard.Items, models.Item{
			ID:       itemID(cupboardID, seq),
			Name:     name,
			IsLocked: true,
		})
		if err := r.save(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// RemoveItem filters the item out of the cupboard. Removing an item that
// is already gone still reports true; only a missing cupboard reports
// false.
func (r *FileInventoryRepository) RemoveItem(ctx context.Context, cupboardID int, itemID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for ci := range r.doc.Cupboards {
		cupboard := &r.doc.Cupboards[ci]
		if cupboard.ID != cupboardID {
			continue
		}

		kept := cupboard.Items[:0]
		for _, item := range cupboard.Items {
			if item.ID != itemID {
				kept = append(kept, item)
			}
		}
		if len(kept) == len(cupboard.Items) {
			r.log.Debug("remove-item matched nothing",
				zap.Int("cupboard_id", cupboardID), zap.String("item_id", itemID))
		}
		cupboard.Items = kept

		if err := r.save(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// AddCupboard appends an empty cupboard and returns its new id
// (max existing id + 1, or 1 for an empty inventory).
func (r *FileInventoryRepository) AddCupboard(ctx context.Context, name string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := 1
	for _, c := range r.doc.Cupboards {
		if c.ID >= id {
			id = c.ID + 1
		}
	}

	r.doc.Cupboards = append(r.doc.Cupboards, models.Cupboard{
		ID:    id,
		Name:  name,
		Items: []models.Item{},
	})
	if err := r.save(); err != nil {
		return 0, err
	}
	return id, nil
}

// RemoveCupboard filters the cupboard (and implicitly its items) out of
// the inventory. Removing an absent id is a no-op that still succeeds.
func (r *FileInventoryRepository) RemoveCupboard(ctx context.Context, cupboardID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.doc.Cupboards[:0]
	for _, c := range r.doc.Cupboards {
		if c.ID != cupboardID {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(r.doc.Cupboards) {
		r.log.Debug("remove-cupboard matched nothing", zap.Int("cupboard_id", cupboardID))
	}
	r.doc.Cupboards = kept

	return r.save()
}
