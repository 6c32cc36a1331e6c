package commands

import (
	"InfoVault/internal/config"
	"context"
	"fmt"

	fsrepo "InfoVault/internal/cli/repo/fs"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Показать текущего пользователя и сервер" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	store := fsrepo.AuthFSStore{TokenFile: cfg.TokenFile}
	fmt.Fprintf(Out, "Server: %s\n", cfg.ServerURL)
	login, err := store.LoadLogin()
	if err != nil {
		fmt.Fprintln(Out, "User:   <not logged in>")
		return nil
	}
	fmt.Fprintf(Out, "User:   %s\n", login)
	if _, err := store.Load(); err != nil {
		fmt.Fprintln(Out, "Token:  <missing>")
	} else {
		fmt.Fprintln(Out, "Token:  present")
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
