package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const progressKey = "drivemap:ingest:progress"

// Progress is the last reported state of the ingestion pipeline.
type Progress struct {
	RowsIngested int64 `json:"rows_ingested"`
	LastID       int64 `json:"last_id"`
	Finished     bool  `json:"finished"`
}

// ProgressStore caches ingestion progress in redis so the status endpoint
// can answer without touching the measurement table.
type ProgressStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProgressStore returns redis-backed store.
func NewProgressStore(client *redis.Client, ttl time.Duration) *ProgressStore {
	return &ProgressStore{client: client, ttl: ttl}
}

// Record overwrites the cached progress. Implements ingest.ProgressRecorder.
func (s *ProgressStore) Record(ctx context.Context, rowsTotal, lastID int64, finished bool) error {
	data, err := json.Marshal(Progress{
		RowsIngested: rowsTotal,
		LastID:       lastID,
		Finished:     finished,
	})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, progressKey, data, s.ttl).Err()
}

// Load returns the cached progress, or nil when nothing has been recorded.
func (s *ProgressStore) Load(ctx context.Context) (*Progress, error) {
	result, err := s.client.Get(ctx, progressKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p Progress
	if err := json.Unmarshal([]byte(result), &p); err != nil {
		return nil, err
	}
	return &p, nil
}
