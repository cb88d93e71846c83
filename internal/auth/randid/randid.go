package randid

import (
	"crypto/rand"
	"encoding/hex"
)

// Энтропия достаточна, чтобы не проверять уникальность в БД.
const (
	idBytes    = 16
	tokenBytes = 32
)

// New возвращает "<prefix>_<hex>" — идентификаторы конспектов и пр.
func New(prefix string) string {
	return prefix + "_" + randomHex(idBytes)
}

// Token возвращает bearer-токен ссылки: 32 случайных байта в hex.
func Token() string {
	return randomHex(tokenBytes)
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand на поддерживаемых платформах не возвращает ошибок
		panic("randid: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
