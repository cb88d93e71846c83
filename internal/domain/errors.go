package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды в transport/web/v1)
var (
	ErrBadParams          = errors.New("bad_params")          // 400
	ErrInvalidExpiry      = errors.New("invalid_expiry")      // 400, нечитаемая дата истечения
	ErrInvalidCredentials = errors.New("invalid_credentials") // 401, общий текст — без перечисления аккаунтов
	ErrUnauth             = errors.New("unauthorized")        // 401 / redirect на /login
	ErrForbidden          = errors.New("forbidden")           // 403 / мягкий redirect на /dashboard
	ErrNotFound           = errors.New("not_found")           // 404
	ErrMethodNotAllowed   = errors.New("method_not_allowed")  // 405
	ErrUnexpected         = errors.New("unexpected")          // 500: storage/БД пробрасываем как есть
)

// Коды для конверта ответа
const (
	ErrCodeBadParams          = 1000
	ErrCodeUnauth             = 1001
	ErrCodeForbidden          = 1003
	ErrCodeNotFound           = 1004
	ErrCodeMethodNotAllowed   = 1005
	ErrCodeInvalidCredentials = 1010
	ErrCodeInvalidExpiry      = 1011
	ErrCodeUnexpected         = 1500
)
