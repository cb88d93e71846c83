package sharelink

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
)

// fakeLinks — хранилище ссылок в памяти, повторяет контракт Postgres-репо.
type fakeLinks struct {
	rows map[string]domain.ShareLink
}

func newFakeLinks() *fakeLinks { return &fakeLinks{rows: make(map[string]domain.ShareLink)} }

func (f *fakeLinks) CreateLink(_ context.Context, l domain.ShareLink) (domain.ShareLink, error) {
	f.rows[l.Token] = l
	return l, nil
}

func (f *fakeLinks) LinkByToken(_ context.Context, token string) (domain.ShareLink, error) {
	l, ok := f.rows[token]
	if !ok {
		return domain.ShareLink{}, domain.ErrNotFound
	}
	return l, nil
}

func (f *fakeLinks) LinksByNote(_ context.Context, noteID string) ([]domain.ShareLink, error) {
	var out []domain.ShareLink
	for _, l := range f.rows {
		if l.NoteID == noteID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeLinks) UpdateRevokedAt(_ context.Context, token string, at time.Time) error {
	l, ok := f.rows[token]
	if !ok || l.RevokedAt != nil {
		return nil // как в SQL: ноль задетых строк — не ошибка
	}
	l.RevokedAt = &at
	f.rows[token] = l
	return nil
}

func (f *fakeLinks) RevokeAllForNote(_ context.Context, noteID string, at time.Time) error {
	for tok, l := range f.rows {
		if l.NoteID == noteID && l.RevokedAt == nil {
			l.RevokedAt = &at
			f.rows[tok] = l
		}
	}
	return nil
}

type fakeNotes struct {
	rows map[string]domain.Note
}

func newFakeNotes(ids ...string) *fakeNotes {
	f := &fakeNotes{rows: make(map[string]domain.Note)}
	for _, id := range ids {
		f.rows[id] = domain.Note{ID: id, Title: id, StoragePath: id + ".pdf"}
	}
	return f
}

func (f *fakeNotes) CreateNote(_ context.Context, n domain.Note) (domain.Note, error) {
	f.rows[n.ID] = n
	return n, nil
}

func (f *fakeNotes) NoteByID(_ context.Context, id string) (domain.Note, error) {
	n, ok := f.rows[id]
	if !ok {
		return domain.Note{}, domain.ErrNotFound
	}
	return n, nil
}

func (f *fakeNotes) NotesList(_ context.Context) ([]domain.Note, error) { return nil, nil }
func (f *fakeNotes) NoteDelete(_ context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

func testEngine(links *fakeLinks, notes *fakeNotes, clock *time.Time) *Engine {
	return NewEngineWithClock(links, notes, func() time.Time { return *clock })
}

func TestCreateHourlyLinkLifecycle(t *testing.T) {
	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	links := newFakeLinks()
	e := testEngine(links, newFakeNotes("note_1"), &clock)

	l, err := e.Create(context.Background(), "note_1", "lect@example.com", ExpirySpec{Mode: ExpiryHours, Hours: 1})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if l.Token == "" || len(l.Token) != 64 {
		t.Fatalf("token = %q, want 64 hex chars", l.Token)
	}
	if l.ExpiresAt == nil || !l.ExpiresAt.Equal(clock.Add(time.Hour)) {
		t.Fatalf("expires_at = %v, want %v", l.ExpiresAt, clock.Add(time.Hour))
	}

	if _, err := e.Validate(context.Background(), l.Token); err != nil {
		t.Fatalf("fresh link must validate: %v", err)
	}

	// через час и секунду — истекла, чистки не нужно
	clock = clock.Add(time.Hour + time.Second)
	if _, err := e.Validate(context.Background(), l.Token); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expired link: err = %v, want ErrNotFound", err)
	}
}

func TestCreateWithoutExpiry(t *testing.T) {
	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	links := newFakeLinks()
	e := testEngine(links, newFakeNotes("note_1"), &clock)

	l, err := e.Create(context.Background(), "note_1", "lect@example.com", ExpirySpec{Mode: ExpiryNone})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if l.ExpiresAt != nil {
		t.Fatalf("none-spec link must not carry expires_at")
	}

	// годы спустя всё ещё работает, пока не отозвана
	clock = clock.AddDate(5, 0, 0)
	if _, err := e.Validate(context.Background(), l.Token); err != nil {
		t.Fatalf("unexpired link rejected: %v", err)
	}
}

func TestCreateForMissingNote(t *testing.T) {
	clock := time.Now()
	e := testEngine(newFakeLinks(), newFakeNotes(), &clock)

	if _, err := e.Create(context.Background(), "nope", "lect@example.com", ExpirySpec{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRevokeIdempotent(t *testing.T) {
	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	links := newFakeLinks()
	e := testEngine(links, newFakeNotes("note_1"), &clock)

	l, _ := e.Create(context.Background(), "note_1", "lect@example.com", ExpirySpec{Mode: ExpiryNone})

	if err := e.Revoke(context.Background(), l.Token); err != nil {
		t.Fatalf("revoke error: %v", err)
	}
	first := *links.rows[l.Token].RevokedAt

	// повторный отзыв позже не сдвигает метку
	clock = clock.Add(time.Hour)
	if err := e.Revoke(context.Background(), l.Token); err != nil {
		t.Fatalf("second revoke error: %v", err)
	}
	if got := *links.rows[l.Token].RevokedAt; !got.Equal(first) {
		t.Fatalf("revoked_at moved on second revoke: %v -> %v", first, got)
	}

	// неизвестный токен — no-op
	if err := e.Revoke(context.Background(), "missing"); err != nil {
		t.Fatalf("revoke of unknown token must be a no-op, got %v", err)
	}

	// отозванная ссылка невалидна и без истечения
	if _, err := e.Validate(context.Background(), l.Token); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("revoked link: err = %v, want ErrNotFound", err)
	}
}

func TestListForNoteKeepsDeadLinks(t *testing.T) {
	clock := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	links := newFakeLinks()
	e := testEngine(links, newFakeNotes("note_1"), &clock)

	l1, _ := e.Create(context.Background(), "note_1", "lect@example.com", ExpirySpec{Mode: ExpiryHours, Hours: 1})
	clock = clock.Add(time.Minute)
	l2, _ := e.Create(context.Background(), "note_1", "lect@example.com", ExpirySpec{Mode: ExpiryNone})

	_ = e.Revoke(context.Background(), l2.Token)
	clock = clock.Add(2 * time.Hour) // l1 к этому моменту истекла

	got, err := e.ListForNote(context.Background(), "note_1")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("audit list must keep revoked and expired links, got %d", len(got))
	}
	// новые первыми
	if got[0].Token != l2.Token || got[1].Token != l1.Token {
		t.Fatalf("list order wrong: %s, %s", got[0].Token, got[1].Token)
	}
}
