package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// packSeparator разделяет base64(nonce) и base64(шифртекст+тег)
// в упакованной строке. Формат хранится в текстовых полях записи
// и непрозрачен для сервера.
const packSeparator = ":"

// EncryptString шифрует строку AES‑GCM и упаковывает результат в
// "base64(nonce):base64(ciphertext)". Каждый вызов генерирует свежий nonce.
// Пустой plaintext коротко замыкается в пустую строку — незаполненные
// опциональные поля не тратят операции шифра.
func EncryptString(plain string, key []byte) (string, error) {
	if plain == "" {
		return "", nil
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("new cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("new gcm: %w", err)
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := gcm.Seal(nil, nonce, []byte(plain), nil)
	return base64.StdEncoding.EncodeToString(nonce) + packSeparator +
		base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptString распаковывает и расшифровывает строку, созданную EncryptString.
// Любая ошибка (битый base64, чужой ключ, повреждённый шифртекст) даёт "",
// никогда не панику: вызывающий обязан трактовать "" как «нечитаемо»,
// а не как пустое валидное поле.
func DecryptString(packed string, key []byte) string {
	if packed == "" || len(key) == 0 {
		return ""
	}
	parts := strings.SplitN(packed, packSeparator, 2)
	if len(parts) != 2 {
		return ""
	}
	nonce, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return ""
	}
	sealed, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return ""
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return ""
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return ""
	}
	if len(nonce) != gcm.NonceSize() {
		return ""
	}
	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return ""
	}
	return string(plain)
}
