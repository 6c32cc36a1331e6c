package vault

import (
	"errors"

	"InfoVault/internal/cli/crypto"
)

// ErrDerivationFailed — вывод ключа не удался (пустая фраза или соль).
var ErrDerivationFailed = errors.New("key derivation failed")

// DeriveResult — ответ фоновой горутины вывода ключа.
type DeriveResult struct {
	Key []byte
	Err error
}

// StartDerive запускает вывод ключа в отдельной горутине и возвращает канал
// с единственным результатом. Канал буферизован: горутина завершится, даже
// если ответ никто не прочитает (fire-and-forget). Вывод намеренно медленный
// (сотни миллисекунд), на интерактивном пути его выполнять нельзя.
func StartDerive(passphrase, salt string) <-chan DeriveResult {
	ch := make(chan DeriveResult, 1)
	go func() {
		key := crypto.DeriveKey(passphrase, salt)
		if key == nil {
			ch <- DeriveResult{Err: ErrDerivationFailed}
			return
		}
		ch <- DeriveResult{Key: key}
	}()
	return ch
}
