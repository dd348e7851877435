package service

import (
	"context"
	"errors"
	"math"

	"drivemap/internal/models"
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 500
)

var (
	// ErrInvalidPage rejects page numbers below 1.
	ErrInvalidPage = errors.New("history: page must be >= 1")
	// ErrInvalidPageSize rejects page sizes outside [1, 500].
	ErrInvalidPageSize = errors.New("history: page_size must be between 1 and 500")
	// ErrInvalidBound rejects negative snapshot bounds.
	ErrInvalidBound = errors.New("history: before_id must be >= 0")
)

// Store is the read side of the measurement relation.
type Store interface {
	MaxID(ctx context.Context) (int64, error)
	HistoryPage(ctx context.Context, bound int64, limit, offset int) ([]*models.Measurement, int64, error)
}

// HistoryPageResult is one page of a snapshot-bounded pagination sequence.
// MaxID is the bound in effect; callers pass it back as before_id so later
// pages ignore rows ingested in the meantime.
type HistoryPageResult struct {
	Data       []*models.Measurement `json:"data"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	Total      int64                 `json:"total"`
	TotalPages int64                 `json:"total_pages"`
	MaxID      int64                 `json:"max_id"`
}

// HistoryService answers paginated historical queries while ingestion keeps
// appending. It never mutates the store.
type HistoryService struct {
	store Store
}

// NewHistoryService returns service instance.
func NewHistoryService(store Store) *HistoryService {
	return &HistoryService{store: store}
}

// Page returns page `page` of the rows with id <= beforeID ordered by id.
// beforeID == 0 means "no bound yet": the current max id is captured and
// returned as MaxID, freezing the result set for the rest of the sequence.
// Because ids only ever grow and rows are never rewritten, every page under
// a fixed bound partitions exactly the rows that existed when the bound was
// taken.
func (s *HistoryService) Page(ctx context.Context, page, pageSize int, beforeID int64) (*HistoryPageResult, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, ErrInvalidPageSize
	}
	if beforeID < 0 {
		return nil, ErrInvalidBound
	}

	bound := beforeID
	if bound == 0 {
		maxID, err := s.store.MaxID(ctx)
		if err != nil {
			return nil, err
		}
		bound = maxID
	}

	result := &HistoryPageResult{
		Data:     make([]*models.Measurement, 0, pageSize),
		Page:     page,
		PageSize: pageSize,
		MaxID:    bound,
	}
	if bound == 0 {
		return result, nil
	}

	// an absurd page number must yield an empty page, not an overflowed
	// negative offset reaching the store
	offset64 := int64(page-1) * int64(pageSize)
	if offset64/int64(pageSize) != int64(page-1) || offset64 > math.MaxInt {
		offset64 = math.MaxInt
	}
	rows, total, err := s.store.HistoryPage(ctx, bound, pageSize, int(offset64))
	if err != nil {
		return nil, err
	}

	result.Data = append(result.Data, rows...)
	result.Total = total
	result.TotalPages = (total + int64(pageSize) - 1) / int64(pageSize)
	return result, nil
}
