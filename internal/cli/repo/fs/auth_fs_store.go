package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	clirepo "InfoVault/internal/cli/repo"
)

// AuthFSStore — файловое хранилище токена и контекста пользователя для CLI.
// TokenFile, если задан (флаг/переменная TOKEN_FILE), переопределяет
// расположение файла токена; остальные файлы живут в конфиг-каталоге.
type AuthFSStore struct {
	TokenFile string
}

var (
	_ clirepo.TokenStore       = AuthFSStore{}
	_ clirepo.UserContextStore = AuthFSStore{}
)

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "InfoVault")
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return p, nil
}

func (s AuthFSStore) tokenPath() (string, error) {
	if s.TokenFile != "" {
		return s.TokenFile, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "auth_token"), nil
}

func lastLoginPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "last_login"), nil
}

func userIDPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "user_id"), nil
}

func writeFile(path, value string) error {
	return os.WriteFile(path, []byte(value), 0o600)
}

func readTrimmed(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	for len(b) > 0 {
		c := b[len(b)-1]
		if c == '\n' || c == '\r' || c == ' ' || c == '\t' {
			b = b[:len(b)-1]
			continue
		}
		break
	}
	if len(b) == 0 {
		return "", errors.New("empty file")
	}
	return string(b), nil
}

// Save сохраняет auth‑токен в файл.
func (s AuthFSStore) Save(token string) error {
	p, err := s.tokenPath()
	if err != nil {
		return err
	}
	return writeFile(p, token)
}

// Load читает auth‑токен из файла.
func (s AuthFSStore) Load() (string, error) {
	p, err := s.tokenPath()
	if err != nil {
		return "", err
	}
	return readTrimmed(p)
}

// SaveLogin сохраняет логин пользователя в файл.
func (AuthFSStore) SaveLogin(login string) error {
	if login == "" {
		return errors.New("empty login")
	}
	p, err := lastLoginPath()
	if err != nil {
		return err
	}
	return writeFile(p, login)
}

// LoadLogin читает логин пользователя из файла.
func (AuthFSStore) LoadLogin() (string, error) {
	p, err := lastLoginPath()
	if err != nil {
		return "", err
	}
	return readTrimmed(p)
}

// SaveUserID сохраняет id аккаунта. Значение несекретно: это соль для
// вывода ключа, она и так известна серверу.
func (AuthFSStore) SaveUserID(id int64) error {
	if id == 0 {
		return errors.New("empty user id")
	}
	p, err := userIDPath()
	if err != nil {
		return err
	}
	return writeFile(p, strconv.FormatInt(id, 10))
}

// LoadUserID читает id аккаунта.
func (AuthFSStore) LoadUserID() (int64, error) {
	p, err := userIDPath()
	if err != nil {
		return 0, err
	}
	s, err := readTrimmed(p)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(s, 10, 64)
}
