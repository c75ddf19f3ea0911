package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestInventory(t *testing.T) (*FileInventoryRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.json")
	repo, err := NewFileInventoryRepository(path, zap.NewNop())
	require.NoError(t, err)
	return repo, path
}

// checkItemInvariant asserts locked <=> no borrower, no borrow time.
func checkItemInvariant(t *testing.T, repo *FileInventoryRepository) {
	t.Helper()
	cupboards, err := repo.GetAllCupboards(context.Background())
	require.NoError(t, err)
	for _, c := range cupboards {
		for _, item := range c.Items {
			if item.IsLocked {
				assert.Nil(t, item.BorrowedBy, "%s: locked item has a borrower", item.ID)
				assert.Nil(t, item.BorrowedAt, "%s: locked item has a borrow time", item.ID)
			} else {
				assert.NotNil(t, item.BorrowedBy, "%s: unlocked item has no borrower", item.ID)
				assert.NotNil(t, item.BorrowedAt, "%s: unlocked item has no borrow time", item.ID)
			}
		}
	}
}

func TestNewFileInventoryRepository_SeedsDefaults(t *testing.T) {
	repo, path := newTestInventory(t)

	cupboards, err := repo.GetAllCupboards(context.Background())
	require.NoError(t, err)
	require.Len(t, cupboards, 9)
	assert.Equal(t, 1, cupboards[0].ID)
	assert.Equal(t, "C1_001", cupboards[0].Items[0].ID)
	assert.True(t, cupboards[0].Items[0].IsLocked)
	checkItemInvariant(t, repo)

	// The seed must have been written out.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc inventoryDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc.Cupboards, 9)
}

func TestToggleLock_BorrowThenReturn(t *testing.T) {
	repo, _ := newTestInventory(t)
	ctx := context.Background()

	res, err := repo.ToggleLock(ctx, 1, "C1_001", "JDOE", false)
	require.NoError(t, err)
	assert.Equal(t, "unlocked", string(res.Action))
	assert.Equal(t, "Digital Oscilloscope 100MHz", res.ItemName)
	assert.Equal(t, "Cupboard 1 - Measurement Equipment", res.CupboardName)
	checkItemInvariant(t, repo)

	cupboards, err := repo.GetAllCupboards(ctx)
	require.NoError(t, err)
	item := cupboards[0].Items[0]
	require.NotNil(t, item.BorrowedBy)
	assert.Equal(t, "JDOE", *item.BorrowedBy)
	assert.False(t, item.IsLocked)

	// Returning by the same actor restores the original state.
	res, err = repo.ToggleLock(ctx, 1, "C1_001", "JDOE", false)
	require.NoError(t, err)
	assert.Equal(t, "locked", string(res.Action))
	checkItemInvariant(t, repo)

	cupboards, err = repo.GetAllCupboards(ctx)
	require.NoError(t, err)
	item = cupboards[0].Items[0]
	assert.True(t, item.IsLocked)
	assert.Nil(t, item.BorrowedBy)
	assert.Nil(t, item.BorrowedAt)
}

func TestToggleLock_NotFound(t *testing.T) {
	repo, _ := newTestInventory(t)
	ctx := context.Background()

	_, err := repo.ToggleLock(ctx, 99, "C99_001", "JDOE", false)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.ToggleLock(ctx, 1, "C1_999", "JDOE", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleLock_ForeignReturnRejected(t *testing.T) {
	repo, _ := newTestInventory(t)
	ctx := context.Background()

	_, err := repo.ToggleLock(ctx, 1, "C1_002", "JDOE", false)
	require.NoError(t, err)

	_, err = repo.ToggleLock(ctx, 1, "C1_002", "ASMITH", false)
	require.ErrorIs(t, err, ErrNotAuthorized)

	var notAuth *NotAuthorizedError
	require.ErrorAs(t, err, &notAuth)
	assert.Equal(t, "Digital Multimeter", notAuth.ItemName)

	// The item is still held by the original borrower.
	cupboards, err := repo.GetAllCupboards(ctx)
	require.NoError(t, err)
	item := cupboards[0].Items[1]
	assert.False(t, item.IsLocked)
	require.NotNil(t, item.BorrowedBy)
	assert.Equal(t, "JDOE", *item.BorrowedBy)
}

func TestToggleLock_AdminReturnsForeignItem(t *testing.T) {
	repo, _ := newTestInventory(t)
	ctx := context.Background()

	_, err := repo.ToggleLock(ctx, 1, "C1_003", "JDOE", false)
	require.NoError(t, err)

	res, err := repo.ToggleLock(ctx, 1, "C1_003", "ADMIN", true)
	require.NoError(t, err)
	assert.Equal(t, "locked", string(res.Action))
	checkItemInvariant(t, repo)
}

func TestToggleLock_Reborrow(t *testing.T) {
	// Borrowing carries no ownership check: a second actor may unlock an
	// item somebody else holds.
	repo, _ := newTestInventory(t)
	ctx := context.Background()

	_, err := repo.ToggleLock(ctx, 1, "C1_004", "JDOE", false)
	require.NoError(t, err)
	_, err = repo.ToggleLock(ctx, 1, "C1_004", "JDOE", false)
	require.NoError(t, err)

	res, err := repo.ToggleLock(ctx, 1, "C1_004", "ASMITH", false)
	require.NoError(t, err)
	assert.Equal(t, "unlocked", string(res.Action))

	cupboards, err := repo.GetAllCupboards(ctx)
	require.NoError(t, err)
	require.NotNil(t, cupboards[0].Items[3].BorrowedBy)
	assert.Equal(t, "ASMITH", *cupboards[0].Items[3].BorrowedBy)
}

func TestAddItem_AssignsNextSequence(t *testing.T) {
	repo, _ := newTestInventory(t)
	ctx := context.Background()

	// Cupboard 1 is seeded with C1_001..C1_004.
	ok, err := repo.AddItem(ctx, 1, "Thermal Camera")
	require.NoError(t, err)
	require.True(t, ok)

	cupboards, err := repo.GetAllCupboards(ctx)
	require.NoError(t, err)
	added := cupboards[0].Items[len(cupboards[0].Items)-1]
	assert.Equal(t, "C1_005", added.ID)
	assert.Equal(t, "Thermal Camera", added.Name)
	assert.True(t, added.IsLocked)
	assert.Nil(t, added.BorrowedBy)
}

func TestAddItem_ReusesFreedSequence(t *testing.T) {
	repo, _ := newTestInventory(t)
	ctx := context.Background()

	ok, err := repo.RemoveItem(ctx, 1, "C1_002")
	require.NoError(t, err)
	require.True(t, ok)

	// The freed slot is reused, not max+1.
	ok, err = repo.AddItem(ctx, 1, "Bench Multimeter")
	require.NoError(t, err)
	require.True(t, ok)

	cupboards, err := repo.GetAllCupboards(ctx)
	require.NoError(t, err)
	added := cupboards[0].Items[len(cupboards[0].Items)-1]
	assert.Equal(t, "C1_002", added.ID)
}

func TestAddItem_UnknownCupboard(t *testing.T) {
	repo, _ := newTestInventory(t)

	ok, err := repo.AddItem(context.Background(), 99, "Ghost Item")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemoveItem(t *testing.T) {
	repo, _ := newTestInventory(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		cupboardID int
		itemID     string
		want       bool
	}{
		{"existing item", 1, "C1_001", true},
		{"absent item is a successful no-op", 1, "C1_999", true},
		{"unknown cupboard", 99, "C99_001", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := repo.RemoveItem(ctx, tt.cupboardID, tt.itemID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}

	cupboards, err := repo.GetAllCupboards(ctx)
	require.NoError(t, err)
	for _, item := range cupboards[0].Items {
		assert.NotEqual(t, "C1_001", item.ID)
	}
}

func TestAddCupboard_AssignsMaxPlusOne(t *testing.T) {
	repo, _ := newTestInventory(t)
	ctx := context.Background()

	id, err := repo.AddCupboard(ctx, "Cupboard 10 - RF Equipment")
	require.NoError(t, err)
	assert.Equal(t, 10, id)

	cupboards, err := repo.GetAllCupboards(ctx)
	require.NoError(t, err)
	last := cupboards[len(cupboards)-1]
	assert.Equal(t, "Cupboard 10 - RF Equipment", last.Name)
	assert.Empty(t, last.Items)
}

func TestAddCupboard_EmptyInventoryStartsAtOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cupboards": []}`), 0o644))
	repo, err := NewFileInventoryRepository(path, zap.NewNop())
	require.NoError(t, err)

	id, err := repo.AddCupboard(context.Background(), "First")
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}

func TestRemoveCupboard(t *testing.T) {
	repo, _ := newTestInventory(t)
	ctx := context.Background()

	require.NoError(t, repo.RemoveCupboard(ctx, 9))
	cupboards, err := repo.GetAllCupboards(ctx)
	require.NoError(t, err)
	assert.Len(t, cupboards, 8)
}

func TestRemoveCupboard_AbsentIsNoOp(t *testing.T) {
	repo, _ := newTestInventory(t)
	ctx := context.Background()

	before, err := repo.GetAllCupboards(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.RemoveCupboard(ctx, 99))

	after, err := repo.GetAllCupboards(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestReload_StateSurvivesRestart(t *testing.T) {
	repo, path := newTestInventory(t)
	ctx := context.Background()

	_, err := repo.ToggleLock(ctx, 2, "C2_001", "JDOE", false)
	require.NoError(t, err)
	_, err = repo.AddCupboard(ctx, "Cupboard 10 - Spares")
	require.NoError(t, err)

	reloaded, err := NewFileInventoryRepository(path, zap.NewNop())
	require.NoError(t, err)

	want, err := repo.GetAllCupboards(ctx)
	require.NoError(t, err)
	got, err := reloaded.GetAllCupboards(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestToggleLock_ConcurrentDistinctItems(t *testing.T) {
	repo, path := newTestInventory(t)
	ctx := context.Background()

	cupboards, err := repo.GetAllCupboards(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, c := range cupboards {
		for _, item := range c.Items {
			wg.Add(1)
			go func(cupboardID int, itemID string) {
				defer wg.Done()
				actor := fmt.Sprintf("USER_%s", itemID)
				if _, err := repo.ToggleLock(ctx, cupboardID, itemID, actor, false); err != nil {
					t.Errorf("toggle %s: %v", itemID, err)
				}
			}(c.ID, item.ID)
		}
	}
	wg.Wait()

	// Every item must be borrowed by its own actor, and the file on disk
	// must hold a consistent full document.
	reloaded, err := NewFileInventoryRepository(path, zap.NewNop())
	require.NoError(t, err)
	checkItemInvariant(t, reloaded)
	got, err := reloaded.GetAllCupboards(ctx)
	require.NoError(t, err)
	for _, c := range got {
		for _, item := range c.Items {
			assert.False(t, item.IsLocked)
			require.NotNil(t, item.BorrowedBy)
			assert.Equal(t, "USER_"+item.ID, *item.BorrowedBy)
		}
	}
}

func TestToggleLock_ErrorsDoNotTouchDisk(t *testing.T) {
	repo, path := newTestInventory(t)
	ctx := context.Background()

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = repo.ToggleLock(ctx, 1, "C1_999", "JDOE", false)
	require.ErrorIs(t, err, ErrNotFound)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, err = repo.ToggleLock(ctx, 1, "C1_001", "JDOE", false)
	require.NoError(t, err)
	_, err = repo.ToggleLock(ctx, 1, "C1_001", "ASMITH", false)
	require.ErrorIs(t, err, ErrNotAuthorized)

	// An unauthorized return must not have persisted anything new.
	mid, err := os.ReadFile(path)
	require.NoError(t, err)
	reloaded, err := NewFileInventoryRepository(path, zap.NewNop())
	require.NoError(t, err)
	got, err := reloaded.GetAllCupboards(ctx)
	require.NoError(t, err)
	require.NotNil(t, got[0].Items[0].BorrowedBy)
	assert.Equal(t, "JDOE", *got[0].Items[0].BorrowedBy)
	assert.NotEqual(t, before, mid)
}
