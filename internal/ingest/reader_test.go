package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeExport(t *testing.T, rows int) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("Time\tEQ\tAll-Latitude\tAll-Longitude\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "10:00:%02d\tEQ1\t59.%d\t18.%d\n", i%60, i, i)
	}

	path := filepath.Join(t.TempDir(), "export.fmt")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatalf("write export: %v", err)
	}
	return path
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.fmt"), 10)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestReaderHeader(t *testing.T) {
	r, err := Open(writeExport(t, 1), 10)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	want := []string{"Time", "EQ", "All-Latitude", "All-Longitude"}
	got := r.Header()
	if len(got) != len(want) {
		t.Fatalf("header length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("header[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReaderBatchesInOrder(t *testing.T) {
	r, err := Open(writeExport(t, 250), 100)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	var sizes []int
	var rows int
	for {
		batch, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		sizes = append(sizes, len(batch))
		for _, row := range batch {
			want := fmt.Sprintf("10:00:%02d", rows%60)
			if row[0] != want {
				t.Fatalf("row %d out of file order: got %q, want %q", rows, row[0], want)
			}
			rows++
		}
	}

	if len(sizes) != 3 || sizes[0] != 100 || sizes[1] != 100 || sizes[2] != 50 {
		t.Fatalf("expected batches [100 100 50], got %v", sizes)
	}
	if rows != 250 {
		t.Fatalf("expected 250 rows, got %d", rows)
	}
}

func TestReaderExhaustsOnce(t *testing.T) {
	r, err := Open(writeExport(t, 5), 10)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	if _, err := r.Next(); err != nil {
		t.Fatalf("first next: %v", err)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF after exhaustion, got %v", err)
	}
	// exhausted stays exhausted, no re-read
	if _, err := r.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF on repeated call, got %v", err)
	}
}

func TestReaderTolerantOfRaggedRows(t *testing.T) {
	content := "Time\tEQ\tAll-Latitude\n" +
		"10:00:00\tEQ1\t59.1\n" +
		"10:00:01\tEQ1\n" + // short row
		"10:00:02\tEQ1\t59.3\textra\n" // long row

	path := filepath.Join(t.TempDir(), "ragged.fmt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write export: %v", err)
	}

	r, err := Open(path, 10)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	batch, err := r.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("ragged rows must not abort the stream, got %d rows", len(batch))
	}
}
