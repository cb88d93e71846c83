package domain

import (
	"strings"
	"time"
)

// Идентификатор пользователя — email в нижнем регистре (так сидируем, см. InsertIfEmpty)
type UserID = string

// Роль пользователя. Закрытый набор значений, парсим на границе HTTP.
type Role string

const (
	RoleLecturer Role = "LECTURER"
	RoleStudent  Role = "STUDENT"
)

// ParseRole принимает только известные роли; всё остальное отбрасываем сразу.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleLecturer:
		return RoleLecturer, true
	case RoleStudent:
		return RoleStudent, true
	default:
		return "", false
	}
}

// Пользователь
type User struct {
	ID        UserID    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	PassHash  string    `json:"-"` // hex(PBKDF2), никогда не отдаём наружу
	PassSalt  string    `json:"-"` // hex соль
	CreatedAt time.Time `json:"created_at"`
}

// Public возвращает копию без полей пароля — для ответов и контекста запроса.
func (u User) Public() User {
	u.PassHash = ""
	u.PassSalt = ""
	return u
}

// Конспект (PDF). StoragePath — единственный локатор блоба в хранилище.
type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"-"`
	UploadedBy  UserID    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Ссылка доступа: token — единственный bearer-креденшл для анонимного чтения.
type ShareLink struct {
	Token     string     `json:"token"`
	NoteID    string     `json:"note_id"`
	CreatedBy UserID     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at"` // nil — бессрочная
	RevokedAt *time.Time `json:"revoked_at"` // устанавливается один раз, обратно не снимается
}

// ValidAt — инвариант валидности: не отозвана и не истекла на момент now.
// Фоновой чистки нет, истечение проверяется только при обращении.
func (l ShareLink) ValidAt(now time.Time) bool {
	if l.RevokedAt != nil {
		return false
	}
	if l.ExpiresAt != nil && !l.ExpiresAt.After(now) {
		return false
	}
	return true
}

// Запись журнала доступа. Только append, никогда не меняется и не удаляется.
type AccessLog struct {
	UserID     *UserID   `json:"user_id"` // nil — анонимный доступ по ссылке
	NoteID     string    `json:"note_id"`
	ShareToken *string   `json:"share_token"`
	Timestamp  time.Time `json:"timestamp"`
}
