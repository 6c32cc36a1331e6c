package commands

import (
	"InfoVault/internal/config"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrUsage возвращает команда при неверных аргументах: диспетчер
// печатает её usage-строку вместо текста ошибки.
var ErrUsage = errors.New("usage")

// Command — подкоманда CLI.
type Command interface {
	// Name — имя команды, как его набирает пользователь, например "vault".
	Name() string
	// Description — короткое описание для help.
	Description() string
	// Usage — точная строка использования, например "login <login> <password>".
	Usage() string
	// Run выполняет команду с аргументами (без имени команды).
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// registry — зарегистрированные команды по имени.
var registry = map[string]Command{}

// Out — общий writer для вывода CLI. По умолчанию os.Stdout, в тестах переназначается.
var Out io.Writer = os.Stdout

// In — источник ввода для интерактивных команд; в тестах переназначается.
var In io.Reader = os.Stdin

// RegisterCmd добавляет команду в реестр. Вызывается из init() каждой команды.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get возвращает команду по имени.
func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List возвращает все команды, отсортированные по имени.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatGlobalUsage собирает общий help: глобальные флаги и список команд.
func FormatGlobalUsage() string {
	lines := []string{
		"InfoVault CLI",
		"",
		"Usage:",
		"  ivault [flags] <command> [args]",
		"",
		"Flags:",
		"  --base-url <host:port>   адрес сервера (по умолчанию localhost:8081)",
		"  --https                  ходить на сервер по https",
		"  --token-file <path>      файл auth-токена",
		"  --version                показать версию и выйти",
		"",
		"Commands:",
	}
	for _, c := range List() {
		lines = append(lines, fmt.Sprintf("  %-28s %s", c.Usage(), c.Description()))
	}
	return strings.Join(lines, "\n") + "\n"
}
