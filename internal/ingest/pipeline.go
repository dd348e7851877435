package ingest

import (
	"context"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"drivemap/internal/decode"
	"drivemap/internal/models"
)

// Sink durably stores a batch and assigns ids in place. Either every record
// in the batch gets an id or the call errors and none are stored.
type Sink interface {
	InsertBatch(ctx context.Context, batch []*models.Measurement) error
}

// Broadcaster pushes a persisted batch to live subscribers. It never blocks
// on a single subscriber and never reports an error back to ingestion.
type Broadcaster interface {
	Broadcast(batch []*models.Measurement)
}

// ProgressRecorder receives ingestion progress after each persisted batch.
type ProgressRecorder interface {
	Record(ctx context.Context, rowsTotal, lastID int64, finished bool) error
}

// Pipeline runs the single-producer ingestion loop: read a batch, decode it,
// persist it, broadcast it, wait out the pacing interval. Pacing exists so a
// bulk file replay does not firehose the store and every connected
// subscriber at disk speed.
type Pipeline struct {
	source    string
	batchSize int
	pace      time.Duration
	sink      Sink
	hub       Broadcaster
	progress  ProgressRecorder
	logger    *zap.Logger

	// serializes persistence so id assignment stays single-writer even if
	// a second producer is ever attached to the same sink
	writeMu sync.Mutex
}

// NewPipeline builds the ingestion pipeline. progress may be nil.
func NewPipeline(source string, batchSize int, pace time.Duration, sink Sink, hub Broadcaster, progress ProgressRecorder, logger *zap.Logger) *Pipeline {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Pipeline{
		source:    source,
		batchSize: batchSize,
		pace:      pace,
		sink:      sink,
		hub:       hub,
		progress:  progress,
		logger:    logger,
	}
}

// Run performs one full pass over the source file. It returns nil after the
// last batch, ctx.Err() if cancelled between batches, or the first fatal
// error. A batch that fails to persist is never broadcast.
func (p *Pipeline) Run(ctx context.Context) error {
	reader, err := Open(p.source, p.batchSize)
	if err != nil {
		return err
	}
	defer reader.Close()

	decoder := decode.NewDecoder(reader.Header())

	var rowsTotal, lastID int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		batch := make([]*models.Measurement, 0, len(raw))
		for _, row := range raw {
			batch = append(batch, decoder.Decode(row))
		}

		p.writeMu.Lock()
		err = p.sink.InsertBatch(ctx, batch)
		p.writeMu.Unlock()
		if err != nil {
			return err
		}

		p.hub.Broadcast(batch)

		rowsTotal += int64(len(batch))
		lastID = batch[len(batch)-1].ID
		p.recordProgress(ctx, rowsTotal, lastID, false)
		p.logger.Debug("batch ingested",
			zap.Int("rows", len(batch)),
			zap.Int64("last_id", lastID))

		if p.pace > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.pace):
			}
		}
	}

	p.recordProgress(ctx, rowsTotal, lastID, true)
	p.logger.Info("source exhausted", zap.Int64("rows", rowsTotal))
	return nil
}

func (p *Pipeline) recordProgress(ctx context.Context, rowsTotal, lastID int64, finished bool) {
	if p.progress == nil {
		return
	}
	if err := p.progress.Record(ctx, rowsTotal, lastID, finished); err != nil {
		p.logger.Warn("failed to record ingest progress", zap.Error(err))
	}
}
