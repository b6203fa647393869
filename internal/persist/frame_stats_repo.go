package persist

import (
	"context"
	"fmt"
	"time"
)

// FrameStat is one per-second sample of the frame loop.
type FrameStat struct {
	RecordedAt  time.Time
	Backend     string
	SceneDigest string
	Seconds     float64
	Cycles      uint64
	Entities    int
}

type FrameStatsRepo struct {
	db *DB
}

func NewFrameStatsRepo(db *DB) *FrameStatsRepo {
	return &FrameStatsRepo{db: db}
}

// InsertBatch writes a batch of samples in a single transaction.
func (r *FrameStatsRepo) InsertBatch(ctx context.Context, stats []FrameStat) error {
	if len(stats) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("frame stats begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range stats {
		if _, err := tx.Exec(ctx,
			`INSERT INTO frame_stats (recorded_at, backend, scene_digest, seconds, cycles, entities)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			s.RecordedAt, s.Backend, s.SceneDigest, s.Seconds, int64(s.Cycles), s.Entities,
		); err != nil {
			return fmt.Errorf("frame stats insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Recent returns the newest samples, newest first.
func (r *FrameStatsRepo) Recent(ctx context.Context, limit int) ([]FrameStat, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT recorded_at, backend, scene_digest, seconds, cycles, entities
		 FROM frame_stats ORDER BY recorded_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("frame stats query: %w", err)
	}
	defer rows.Close()

	var out []FrameStat
	for rows.Next() {
		var s FrameStat
		var cycles int64
		if err := rows.Scan(&s.RecordedAt, &s.Backend, &s.SceneDigest, &s.Seconds, &cycles, &s.Entities); err != nil {
			return nil, fmt.Errorf("frame stats scan: %w", err)
		}
		s.Cycles = uint64(cycles)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Prune deletes samples recorded before cutoff and returns how many were removed.
func (r *FrameStatsRepo) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM frame_stats WHERE recorded_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("frame stats prune: %w", err)
	}
	return tag.RowsAffected(), nil
}
