package repo

// TokenStore описывает абстракцию хранилища auth-токена на клиенте.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
}

// UserContextStore абстракция для хранения контекста пользователя:
// последний логин и id аккаунта (соль для вывода ключа).
type UserContextStore interface {
	SaveLogin(login string) error
	LoadLogin() (string, error)
	SaveUserID(id int64) error
	LoadUserID() (int64, error)
}
