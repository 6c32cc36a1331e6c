package commands

import (
	"InfoVault/internal/cli/api"
	fsrepo "InfoVault/internal/cli/repo/fs"
	"InfoVault/internal/config"
	"context"
	"fmt"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Создать аккаунт и сохранить токен" }
func (registerCmd) Usage() string       { return "register <login> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	client := api.New(cfg.ServerURL, "")
	auth, err := client.Register(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if err := persistAuth(cfg, auth); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	fmt.Fprintf(Out, "Registered as %s (id %d)\n", auth.Login, auth.ID)
	return nil
}

// persistAuth сохраняет токен, логин и id аккаунта (соль для ключа).
func persistAuth(cfg *config.Config, auth api.AuthData) error {
	store := fsrepo.AuthFSStore{TokenFile: cfg.TokenFile}
	if err := store.Save(auth.Token); err != nil {
		return err
	}
	if err := store.SaveLogin(auth.Login); err != nil {
		return err
	}
	return store.SaveUserID(auth.ID)
}

func init() { RegisterCmd(registerCmd{}) }
