package accesslog

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
)

type fakeLogs struct {
	rows []domain.AccessLog
	err  error
}

func (f *fakeLogs) AppendAccess(_ context.Context, e domain.AccessLog) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, e)
	return nil
}

// fakeCache считает SetNX: первый ключ — true, повтор — false.
type fakeCache struct {
	seen map[string]bool
	err  error
}

func (f *fakeCache) SetNX(_ context.Context, key string, _ []byte, _ int) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

func (f *fakeCache) Ping(context.Context) error { return nil }
func (f *fakeCache) Close()                     {}

func discard() *log.Logger { return log.New(io.Discard, "", 0) }

func TestRecordAuthenticatedView(t *testing.T) {
	logs := &fakeLogs{}
	r := NewRecorder(logs, nil, discard())

	uid := domain.UserID("s@example.com")
	if err := r.RecordView(context.Background(), &uid, "note_1", nil); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if len(logs.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(logs.rows))
	}
	row := logs.rows[0]
	if row.UserID == nil || *row.UserID != uid || row.ShareToken != nil || row.NoteID != "note_1" {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestRecordAnonymousView(t *testing.T) {
	logs := &fakeLogs{}
	r := NewRecorder(logs, nil, discard())

	token := "deadbeef"
	if err := r.RecordView(context.Background(), nil, "note_1", &token); err != nil {
		t.Fatalf("record error: %v", err)
	}
	row := logs.rows[0]
	if row.UserID != nil || row.ShareToken == nil || *row.ShareToken != token {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestDedupSuppressesRepeats(t *testing.T) {
	logs := &fakeLogs{}
	r := NewRecorder(logs, &fakeCache{}, discard())

	uid := domain.UserID("s@example.com")
	for i := 0; i < 3; i++ {
		if err := r.RecordView(context.Background(), &uid, "note_1", nil); err != nil {
			t.Fatalf("record error: %v", err)
		}
	}
	if len(logs.rows) != 1 {
		t.Fatalf("dedup window must keep one row, got %d", len(logs.rows))
	}

	// другой конспект — отдельная строка
	if err := r.RecordView(context.Background(), &uid, "note_2", nil); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if len(logs.rows) != 2 {
		t.Fatalf("distinct note must get its own row, got %d", len(logs.rows))
	}
}

func TestCacheFailureStillWrites(t *testing.T) {
	logs := &fakeLogs{}
	r := NewRecorder(logs, &fakeCache{err: errors.New("redis down")}, discard())

	uid := domain.UserID("s@example.com")
	if err := r.RecordView(context.Background(), &uid, "note_1", nil); err != nil {
		t.Fatalf("record must survive cache failure: %v", err)
	}
	if len(logs.rows) != 1 {
		t.Fatalf("row must be written when dedup is unavailable")
	}
}

func TestAppendFailurePropagates(t *testing.T) {
	r := NewRecorder(&fakeLogs{err: errors.New("insert failed")}, nil, discard())

	uid := domain.UserID("s@example.com")
	if err := r.RecordView(context.Background(), &uid, "note_1", nil); err == nil {
		t.Fatalf("append failure must fail the caller")
	}
}
