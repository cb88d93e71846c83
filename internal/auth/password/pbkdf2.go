package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Параметры KDF. Прототип: PBKDF2-SHA256; соль храним отдельной колонкой в hex.
const (
	saltBytes  = 16
	iterations = 150_000
	keyBytes   = 32
)

// Hash детерминированно выводит hex-хэш пароля.
// Пустая соль — сгенерировать новую (при сидировании), иначе используем переданную
// (при проверке). Соль участвует в KDF как hex-строка, не как сырые байты.
func Hash(plain, saltHex string) (salt, hash string, err error) {
	if saltHex == "" {
		buf := make([]byte, saltBytes)
		if _, err := rand.Read(buf); err != nil {
			return "", "", fmt.Errorf("salt: %w", err)
		}
		saltHex = hex.EncodeToString(buf)
	}
	key := pbkdf2.Key([]byte(plain), []byte(saltHex), iterations, keyBytes, sha256.New)
	return saltHex, hex.EncodeToString(key), nil
}

// Verify пересчитывает хэш и сравнивает за константное время.
// Разная длина — сразу не совпало, без ветвления по содержимому.
func Verify(plain, saltHex, expectedHex string) bool {
	_, got, err := Hash(plain, saltHex)
	if err != nil {
		return false
	}
	a, err := hex.DecodeString(got)
	if err != nil {
		return false
	}
	b, err := hex.DecodeString(expectedHex)
	if err != nil {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
