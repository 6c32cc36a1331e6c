package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// keyLen — длина ключа для AES‑256 (в байтах).
	keyLen = 32
	// iterations — число итераций PBKDF2. Намеренно большое: вывод ключа
	// должен стоить сотни миллисекунд, чтобы перебор слабой парольной
	// фразы был дорогим.
	iterations = 300_000
)

// DeriveKey выводит симметричный ключ из парольной фразы и соли.
// Соль — стабильный несекретный идентификатор пользователя (id аккаунта):
// одинаковые фразы у разных пользователей дают разные ключи, а одна и та же
// пара (фраза, соль) всегда воспроизводит один и тот же ключ — без этого
// ранее зашифрованные записи не прочитать.
// Возвращает nil при пустой фразе или соли.
func DeriveKey(passphrase, salt string) []byte {
	if passphrase == "" || salt == "" {
		return nil
	}
	return pbkdf2.Key([]byte(passphrase), []byte(salt), iterations, keyLen, sha256.New)
}
