package vault

import (
	"context"
	"errors"
	"sync"
)

// Состояния сессии вольта.
type State int

const (
	StateLocked   State = iota // ключа нет
	StateDeriving              // вывод ключа в полёте
	StateUnlocked              // ключ в памяти
)

var (
	// ErrVaultLocked — операция требует разблокированной сессии.
	ErrVaultLocked = errors.New("vault is locked")
	// ErrDerivationInFlight — уже идёт вывод ключа; повторная отправка
	// фразы отклоняется, чтобы два разблокирования не гонялись за ключ.
	ErrDerivationInFlight = errors.New("key derivation already in flight")
)

// Session держит выведенный ключ в памяти на время разблокированной сессии.
// Ключ никогда не персистится и не передаётся по сети; единственный способ
// получить его снова — заново вывести из парольной фразы.
// Явный объект, не синглтон: тесты могут держать несколько независимых сессий.
type Session struct {
	mu    sync.Mutex
	state State
	key   []byte
}

func NewSession() *Session {
	return &Session{state: StateLocked}
}

// State возвращает текущее состояние сессии.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Key возвращает ключ сессии. ok=false, пока сессия не разблокирована.
func (s *Session) Key() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUnlocked {
		return nil, false
	}
	return s.key, true
}

// Unlock выводит ключ из фразы в фоне и кеширует его.
// Single-flight: пока идёт вывод, новая отправка отклоняется с
// ErrDerivationInFlight. Отмена контекста возвращает сессию в Locked;
// результат уже запущенной горутины при этом просто пропадает.
func (s *Session) Unlock(ctx context.Context, passphrase, salt string) error {
	s.mu.Lock()
	if s.state == StateDeriving {
		s.mu.Unlock()
		return ErrDerivationInFlight
	}
	s.state = StateDeriving
	s.key = nil
	s.mu.Unlock()

	ch := StartDerive(passphrase, salt)

	select {
	case <-ctx.Done():
		s.setLocked()
		return ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			s.setLocked()
			return res.Err
		}
		s.mu.Lock()
		s.state = StateUnlocked
		s.key = res.Key
		s.mu.Unlock()
		return nil
	}
}

// Lock сбрасывает ключ и возвращает сессию в Locked.
func (s *Session) Lock() {
	s.setLocked()
}

func (s *Session) setLocked() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateLocked
	s.key = nil
}
