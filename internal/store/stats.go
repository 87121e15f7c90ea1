package store

import (
	"context"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/rcliao/ghost/internal/model"
)

// Stats holds storage statistics.
type Stats struct {
	DBPath      string      `json:"db_path,omitempty"`
	DBSizeBytes int64       `json:"db_size_bytes"`
	DBSize      string      `json:"db_size"`
	Total       int         `json:"total_records"`
	Kinds       []KindStats `json:"kinds"`
}

// KindStats holds per-kind counts.
type KindStats struct {
	Kind  model.Kind `json:"kind"`
	Count int        `json:"count"`
}

// Stats returns per-kind record counts. dbPath may be empty for non-file backends.
func (r *Records) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if dbPath != "" {
		if info, err := os.Stat(dbPath); err == nil {
			st.DBSizeBytes = info.Size()
		}
	}
	st.DBSize = humanize.Bytes(uint64(st.DBSizeBytes))

	for _, k := range model.Kinds {
		n, err := r.Count(ctx, k)
		if err != nil {
			return st, err
		}
		if n == 0 {
			continue
		}
		st.Kinds = append(st.Kinds, KindStats{Kind: k, Count: n})
		st.Total += n
	}

	return st, nil
}
