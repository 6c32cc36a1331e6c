package bootstrap

import (
	"fmt"

	"InfoVault/internal/cli/api"
	fsrepo "InfoVault/internal/cli/repo/fs"
	"InfoVault/internal/cli/vault"
	"InfoVault/internal/config"
)

// OpenVault собирает сессию и движок вольта для текущего пользователя:
// читает токен и id аккаунта из файлового хранилища, создаёт API-клиент.
// Возвращённая соль — id аккаунта в десятичной записи.
func OpenVault(cfg *config.Config) (*vault.Engine, *vault.Session, string, error) {
	store := fsrepo.AuthFSStore{TokenFile: cfg.TokenFile}
	token, err := store.Load()
	if err != nil {
		return nil, nil, "", fmt.Errorf("нет токена авторизации: выполните login/register: %w", err)
	}
	userID, err := store.LoadUserID()
	if err != nil {
		return nil, nil, "", fmt.Errorf("нет id пользователя: выполните login/register: %w", err)
	}

	apiClient := api.New(cfg.ServerURL, token)
	session := vault.NewSession()
	resolver := vault.NewBlobResolver(apiClient, cfg.S3Bucket)
	engine := vault.NewEngine(apiClient, session, resolver)
	salt := fmt.Sprintf("%d", userID)
	return engine, session, salt, nil
}
