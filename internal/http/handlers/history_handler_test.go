package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"drivemap/internal/models"
	"drivemap/internal/service"
)

type stubStore struct {
	rows []*models.Measurement
}

func (s *stubStore) MaxID(ctx context.Context) (int64, error) {
	if len(s.rows) == 0 {
		return 0, nil
	}
	return s.rows[len(s.rows)-1].ID, nil
}

func (s *stubStore) HistoryPage(ctx context.Context, bound int64, limit, offset int) ([]*models.Measurement, int64, error) {
	var under []*models.Measurement
	for _, m := range s.rows {
		if m.ID <= bound {
			under = append(under, m)
		}
	}
	total := int64(len(under))
	if offset >= len(under) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(under) {
		end = len(under)
	}
	return under[offset:end], total, nil
}

func storeWithRows(n int) *stubStore {
	s := &stubStore{}
	for i := 1; i <= n; i++ {
		s.rows = append(s.rows, &models.Measurement{ID: int64(i)})
	}
	return s
}

func newHistoryHandler(store service.Store) *HistoryHandler {
	return NewHistoryHandler(service.NewHistoryService(store), zap.NewNop())
}

func doHistoryRequest(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec, body
}

func TestHistoryHandlerDefaults(t *testing.T) {
	h := newHistoryHandler(storeWithRows(250))

	rec, body := doHistoryRequest(t, h, "/api/history")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var page, pageSize int
	var maxID, total int64
	mustUnmarshal(t, body["page"], &page)
	mustUnmarshal(t, body["page_size"], &pageSize)
	mustUnmarshal(t, body["max_id"], &maxID)
	mustUnmarshal(t, body["total"], &total)

	if page != 1 || pageSize != 100 {
		t.Fatalf("expected default page 1 size 100, got %d/%d", page, pageSize)
	}
	if maxID != 250 || total != 250 {
		t.Fatalf("expected max_id and total 250, got %d/%d", maxID, total)
	}

	var data []*models.Measurement
	mustUnmarshal(t, body["data"], &data)
	if len(data) != 100 || data[0].ID != 1 || data[99].ID != 100 {
		t.Fatalf("expected ids 1-100, got %d rows", len(data))
	}
}

func TestHistoryHandlerHonoursBound(t *testing.T) {
	h := newHistoryHandler(storeWithRows(300))

	rec, body := doHistoryRequest(t, h, "/api/history?page=2&page_size=100&before_id=250")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var data []*models.Measurement
	mustUnmarshal(t, body["data"], &data)
	if len(data) != 100 || data[0].ID != 101 || data[99].ID != 200 {
		t.Fatalf("expected ids 101-200 under bound 250, got %d rows", len(data))
	}

	var totalPages int64
	mustUnmarshal(t, body["total_pages"], &totalPages)
	if totalPages != 3 {
		t.Fatalf("expected 3 pages under the bound, got %d", totalPages)
	}
}

func TestHistoryHandlerEmptyStore(t *testing.T) {
	h := newHistoryHandler(&stubStore{})

	rec, body := doHistoryRequest(t, h, "/api/history?page=1&page_size=100")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if string(body["data"]) != "[]" {
		t.Fatalf("expected empty data array, got %s", body["data"])
	}
	var maxID int64
	mustUnmarshal(t, body["max_id"], &maxID)
	if maxID != 0 {
		t.Fatalf("expected max_id 0, got %d", maxID)
	}
}

func TestHistoryHandlerRejectsBadParameters(t *testing.T) {
	h := newHistoryHandler(storeWithRows(10))

	targets := []string{
		"/api/history?page=0",
		"/api/history?page=abc",
		"/api/history?page_size=0",
		"/api/history?page_size=501",
		"/api/history?before_id=-5",
		"/api/history?before_id=x",
	}

	for _, target := range targets {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func mustUnmarshal(t *testing.T, raw json.RawMessage, v any) {
	t.Helper()
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("unmarshal %s: %v", raw, err)
	}
}
