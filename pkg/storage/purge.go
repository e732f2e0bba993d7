package storage

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/recipebox/pkg/logger"
	"github.com/shashiranjanraj/recipebox/pkg/workerpool"
)

// purgeWorkers bounds concurrent deletes against one disk.
const purgeWorkers = 8

// DeleteAll removes every path from d concurrently. It tries all of them and
// returns the joined errors of those that failed.
func DeleteAll(ctx context.Context, d Disk, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	pool := workerpool.New(min(len(paths), purgeWorkers))
	for _, p := range paths {
		p := p
		err := pool.Submit(ctx, func(ctx context.Context) error {
			if err := d.Delete(ctx, p); err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			logger.Debug("storage: purged", "path", p)
			return nil
		})
		if err != nil {
			break
		}
	}
	return pool.Close()
}
