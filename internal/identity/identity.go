package identity

import (
	"context"
	"net/http"
	"strings"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/auth/password"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
)

// Sessions — что identity нужно от менеджера сессий (см. auth/session.Manager).
type Sessions interface {
	Issue(w http.ResponseWriter, userID domain.UserID) error
	FromRequest(r *http.Request) (domain.UserID, bool)
	Clear(w http.ResponseWriter)
}

// Service разрешает текущего пользователя и выполняет вход/выход.
type Service struct {
	Users    domain.UsersRepo
	Sessions Sessions
}

// CurrentUser: валидная сессия + живая строка пользователя, поля пароля срезаны.
// Пользователь мог исчезнуть между выдачей cookie и запросом — тогда сессии нет.
func (s *Service) CurrentUser(ctx context.Context, r *http.Request) (domain.User, bool) {
	userID, ok := s.Sessions.FromRequest(r)
	if !ok {
		return domain.User{}, false
	}
	u, err := s.Users.UserByID(ctx, userID)
	if err != nil {
		return domain.User{}, false
	}
	return u.Public(), true
}

// Login: поиск по email в нижнем регистре, проверка пароля, выдача cookie.
// Несуществующий аккаунт и неверный пароль неразличимы для клиента.
func (s *Service) Login(ctx context.Context, w http.ResponseWriter, email, plain string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plain == "" {
		return domain.User{}, domain.ErrBadParams
	}

	u, err := s.Users.UserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if !password.Verify(plain, u.PassSalt, u.PassHash) {
		return domain.User{}, domain.ErrInvalidCredentials
	}

	if err := s.Sessions.Issue(w, u.ID); err != nil {
		return domain.User{}, err
	}
	return u.Public(), nil
}

// Logout — только очистка cookie, серверного списка сессий нет.
func (s *Service) Logout(w http.ResponseWriter) {
	s.Sessions.Clear(w)
}

// RequireUser достаёт пользователя, положенного в контекст middleware-ом.
// Отсутствие — сигнал редиректа на /login (ErrUnauth).
func RequireUser(ctx context.Context) (domain.User, error) {
	u, ok := domain.UserFromCtx(ctx)
	if !ok {
		return domain.User{}, domain.ErrUnauth
	}
	return u, nil
}

// RequireRole: неподходящая роль — мягкий отказ, редирект на /dashboard
// (ErrForbidden). Данные всё равно защищены проверками ниже по стеку.
func RequireRole(ctx context.Context, role domain.Role) (domain.User, error) {
	u, err := RequireUser(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if u.Role != role {
		return domain.User{}, domain.ErrForbidden
	}
	return u, nil
}
