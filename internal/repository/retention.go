package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartHistoryCompaction trims the audit log to the newest keep entries
// on the given interval until ctx is cancelled. Intended as an operator
// knob for long-lived deployments; the log is unbounded without it.
func StartHistoryCompaction(
	ctx context.Context,
	repo *FileHistoryRepository,
	interval time.Duration,
	keep int,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				dropped, err := repo.Compact(ctx, keep)
				if err != nil {
					log.Error("failed to compact history", zap.Error(err))
					continue
				}
				if dropped > 0 {
					log.Info("compacted history", zap.Int("removed", dropped))
				}
			}
		}
	}()
}
