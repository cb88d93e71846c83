package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/auth/password"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
)

type fakeUsers struct {
	byEmail map[string]domain.User
}

func (f *fakeUsers) Close()                            {}
func (f *fakeUsers) Ping(context.Context) error        { return nil }
func (f *fakeUsers) InsertIfEmpty(context.Context, []domain.User) error { return nil }

func (f *fakeUsers) UserByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) UserByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	return f.UserByEmail(ctx, id) // id — и есть email в нижнем регистре
}

// fakeSessions фиксирует выданные и очищенные сессии.
type fakeSessions struct {
	issued  []string
	cleared int
	current string // что вернёт FromRequest
}

func (f *fakeSessions) Issue(_ http.ResponseWriter, userID domain.UserID) error {
	f.issued = append(f.issued, userID)
	return nil
}

func (f *fakeSessions) FromRequest(*http.Request) (domain.UserID, bool) {
	if f.current == "" {
		return "", false
	}
	return f.current, true
}

func (f *fakeSessions) Clear(http.ResponseWriter) { f.cleared++ }

func seededService(t *testing.T) (*Service, *fakeSessions) {
	t.Helper()
	salt, hash, err := password.Hash("password", "")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	users := &fakeUsers{byEmail: map[string]domain.User{
		"lecturer@example.com": {
			ID:       "lecturer@example.com",
			Name:     "Lecturer",
			Email:    "lecturer@example.com",
			Role:     domain.RoleLecturer,
			PassHash: hash,
			PassSalt: salt,
		},
	}}
	sessions := &fakeSessions{}
	return &Service{Users: users, Sessions: sessions}, sessions
}

func TestLoginSuccess(t *testing.T) {
	svc, sessions := seededService(t)
	rec := httptest.NewRecorder()

	// email нормализуется к нижнему регистру
	u, err := svc.Login(context.Background(), rec, "  Lecturer@Example.COM ", "password")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if u.ID != "lecturer@example.com" || u.Role != domain.RoleLecturer {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.PassHash != "" || u.PassSalt != "" {
		t.Fatalf("password fields must be stripped from the returned user")
	}
	if len(sessions.issued) != 1 || sessions.issued[0] != "lecturer@example.com" {
		t.Fatalf("session not issued: %v", sessions.issued)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, sessions := seededService(t)

	_, errWrongPass := svc.Login(context.Background(), httptest.NewRecorder(), "lecturer@example.com", "nope")
	_, errNoAccount := svc.Login(context.Background(), httptest.NewRecorder(), "ghost@example.com", "password")

	if !errors.Is(errWrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: err = %v", errWrongPass)
	}
	if !errors.Is(errNoAccount, domain.ErrInvalidCredentials) {
		t.Fatalf("missing account: err = %v", errNoAccount)
	}
	// один и тот же sentinel → один и тот же текст наружу
	if errWrongPass.Error() != errNoAccount.Error() {
		t.Fatalf("error texts differ: %q vs %q", errWrongPass, errNoAccount)
	}
	if len(sessions.issued) != 0 {
		t.Fatalf("no session may be issued on failed login")
	}
}

func TestCurrentUser(t *testing.T) {
	svc, sessions := seededService(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	// без сессии
	if _, ok := svc.CurrentUser(context.Background(), req); ok {
		t.Fatalf("no session must mean no user")
	}

	// валидная сессия
	sessions.current = "lecturer@example.com"
	u, ok := svc.CurrentUser(context.Background(), req)
	if !ok {
		t.Fatalf("expected user")
	}
	if u.PassHash != "" || u.PassSalt != "" {
		t.Fatalf("password fields must be stripped")
	}

	// сессия валидна, но пользователь исчез
	sessions.current = "deleted@example.com"
	if _, ok := svc.CurrentUser(context.Background(), req); ok {
		t.Fatalf("session for a deleted user must resolve to no user")
	}
}

func TestRequireUserAndRole(t *testing.T) {
	lecturer := domain.User{ID: "l@example.com", Role: domain.RoleLecturer}
	student := domain.User{ID: "s@example.com", Role: domain.RoleStudent}

	if _, err := RequireUser(context.Background()); !errors.Is(err, domain.ErrUnauth) {
		t.Fatalf("empty ctx: err = %v, want ErrUnauth", err)
	}

	ctx := domain.WithUser(context.Background(), student)
	if _, err := RequireUser(ctx); err != nil {
		t.Fatalf("authenticated ctx rejected: %v", err)
	}

	// чужая роль — мягкий отказ, не Unauth
	if _, err := RequireRole(ctx, domain.RoleLecturer); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("student on lecturer gate: err = %v, want ErrForbidden", err)
	}

	ctx = domain.WithUser(context.Background(), lecturer)
	if _, err := RequireRole(ctx, domain.RoleLecturer); err != nil {
		t.Fatalf("lecturer rejected by lecturer gate: %v", err)
	}
}
