package commands

import (
	"InfoVault/internal/cli/api"
	"InfoVault/internal/config"
	"context"
	"errors"
	"fmt"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store auth token" }
func (loginCmd) Usage() string       { return "login <login> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	client := api.New(cfg.ServerURL, "")
	auth, err := client.Login(ctx, args[0], args[1])
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return errors.New("invalid login or password")
		}
		return err
	}
	if err := persistAuth(cfg, auth); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
