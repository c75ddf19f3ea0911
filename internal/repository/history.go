package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/MurugaBoopathi/WS-LAB-INVENTORY-MANAGEMENT/internal/models"
	"go.uber.org/zap"
)

// DefaultHistoryLimit caps history queries that pass no explicit limit.
const DefaultHistoryLimit = 200

// historyDocument is the on-disk shape of history.json. Entries are
// stored newest first.
type historyDocument struct {
	History []models.AuditEntry `json:"history"`
}

// FileHistoryRepository implements the append-only audit log over a
// single JSON document. All methods are safe for concurrent use.
type FileHistoryRepository struct {
	path string
	log  *zap.Logger

	mu  sync.RWMutex
	doc historyDocument

	now func() time.Time
}

// NewFileHistoryRepository loads the history document at path, creating
// an empty log when the file does not exist yet.
func NewFileHistoryRepository(path string, log *zap.Logger) (*FileHistoryRepository, error) {
	r := &FileHistoryRepository{
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
		r.doc = historyDocument{History: []models.AuditEntry{}}
		if err := r.save(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return r, nil
}

// save writes the current document to disk, pretty-printed. Callers must
// hold the write lock.
func (r *FileHistoryRepository) save() error {
	data, err := json.MarshalIndent(&r.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	return nil
}

// LogAction records a borrow/return event at the front of the log and
// persists it.
func (r *FileHistoryRepository) LogAction(ctx context.Context, action models.Action, itemName, cupboardName, ntID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := models.AuditEntry{
		Timestamp:    r.now().Format(models.TimeLayout),
		Action:       action,
		ItemName:     itemName,
		CupboardName: cupboardName,
		NTID:         ntID,
	}
	r.doc.History = append([]models.AuditEntry{entry}, r.doc.History...)

	return r.save()
}

// GetHistory returns the newest matching entries, newest first.
//
// ntIDFilter matches the entry's NT ID case-insensitively and exactly;
// actionFilter matches the action exactly. Either filter may be empty.
// A limit <= 0 falls back to DefaultHistoryLimit.
func (r *FileHistoryRepository) GetHistory(ctx context.Context, ntIDFilter, actionFilter string, limit int) ([]models.AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	records := make([]models.AuditEntry, 0, limit)
	for _, e := range r.doc.History {
		if ntIDFilter != "" && !strings.EqualFold(e.NTID, ntIDFilter) {
			continue
		}
		if actionFilter != "" && string(e.Action) != actionFilter {
			continue
		}
		records = append(records, e)
		if len(records) == limit {
			break
		}
	}
	return records, nil
}

// Compact trims the stored log to the newest keep entries. A keep <= 0
// or a log already within bounds is a no-op. Returns the number of
// entries dropped.
func (r *FileHistoryRepository) Compact(ctx context.Context, keep int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if keep <= 0 || len(r.doc.History) <= keep {
		return 0, nil
	}

	dropped := len(r.doc.History) - keep
	r.doc.History = append([]models.AuditEntry(nil), r.doc.History[:keep]...)
	if err := r.save(); err != nil {
		return 0, err
	}
	return dropped, nil
}
