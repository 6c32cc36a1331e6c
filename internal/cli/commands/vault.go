package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"InfoVault/internal/cli/bootstrap"
	"InfoVault/internal/cli/model"
	view "InfoVault/internal/cli/model/view"
	"InfoVault/internal/cli/vault"
	"InfoVault/internal/config"
)

type vaultCmd struct{}

func (vaultCmd) Name() string        { return "vault" }
func (vaultCmd) Description() string { return "Открыть интерактивную сессию вольта" }
func (vaultCmd) Usage() string       { return "vault" }

// resetConfirmPhrase — вторая ступень подтверждения безвозвратного сброса.
const resetConfirmPhrase = "DELETE EVERYTHING"

func (vaultCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	engine, session, salt, err := bootstrap.OpenVault(cfg)
	if err != nil {
		return err
	}

	sh := &vaultShell{
		engine:  engine,
		session: session,
		salt:    salt,
		scanner: bufio.NewScanner(In),
	}
	return sh.loop(ctx)
}

func init() { RegisterCmd(vaultCmd{}) }

// vaultShell — интерактивный цикл разблокированной сессии.
// Записи последнего fetch держатся в памяти: команды show/edit/rm
// адресуют их по номеру в списке.
type vaultShell struct {
	engine  *vault.Engine
	session *vault.Session
	salt    string
	scanner *bufio.Scanner
	records []view.DecryptedRecord
}

func (sh *vaultShell) readLine(prompt string) (string, bool) {
	fmt.Fprint(Out, prompt)
	if !sh.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(sh.scanner.Text()), true
}

// unlock запрашивает фразу и выводит ключ в фоне, показывая спиннер:
// вывод занимает сотни миллисекунд и не должен выглядеть зависанием.
func (sh *vaultShell) unlock(ctx context.Context) error {
	phrase, ok := sh.readLine("Passphrase: ")
	if !ok {
		return errors.New("input closed")
	}

	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	sp.Suffix = " deriving key..."
	sp.Start()
	err := sh.session.Unlock(ctx, phrase, sh.salt)
	sp.Stop()

	if err != nil {
		return fmt.Errorf("unlock failed: %w", err)
	}
	color.New(color.FgGreen).Fprintln(Out, "Vault unlocked")
	return nil
}

func (sh *vaultShell) loop(ctx context.Context) error {
	if err := sh.unlock(ctx); err != nil {
		return err
	}
	if err := sh.refresh(ctx); err != nil {
		fmt.Fprintf(Out, "× fetch failed: %v\n", err)
	}

	for {
		line, ok := sh.readLine("vault> ")
		if !ok {
			sh.session.Lock()
			return nil
		}
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, rest := fields[0], fields[1:]

		var err error
		switch cmd {
		case "help":
			sh.printHelp()
		case "list":
			err = sh.list(ctx)
		case "show":
			err = sh.show(rest)
		case "add-text":
			err = sh.addText(ctx)
		case "add-image":
			err = sh.addBlob(ctx, model.KindImage, rest)
		case "add-file":
			err = sh.addBlob(ctx, model.KindFile, rest)
		case "edit":
			err = sh.edit(ctx, rest)
		case "rm":
			err = sh.remove(ctx, rest)
		case "reset":
			err = sh.reset(ctx)
		case "lock":
			sh.session.Lock()
			sh.records = nil
			fmt.Fprintln(Out, "Vault locked")
			if err := sh.unlock(ctx); err != nil {
				return err
			}
			err = sh.refresh(ctx)
		case "quit", "exit":
			sh.session.Lock()
			return nil
		default:
			fmt.Fprintf(Out, "Unknown command: %s (try help)\n", cmd)
		}
		if err != nil {
			if errors.Is(err, vault.ErrVaultLocked) {
				fmt.Fprintln(Out, "× vault is locked")
				continue
			}
			fmt.Fprintf(Out, "× %v\n", err)
		}
	}
}

func (sh *vaultShell) printHelp() {
	fmt.Fprint(Out, `Commands:
  list                 показать записи
  show <n>             показать запись целиком
  add-text             добавить текстовую запись
  add-image <path>     добавить изображение
  add-file <path>      добавить файл
  edit <n>             изменить запись
  rm <n>               удалить запись
  reset                безвозвратно удалить ВСЁ (forgot password)
  lock                 заблокировать и запросить фразу заново
  quit                 выйти
`)
}

func (sh *vaultShell) refresh(ctx context.Context) error {
	recs, err := sh.engine.FetchAll(ctx)
	if err != nil {
		return err
	}
	sh.records = recs
	return nil
}

func (sh *vaultShell) list(ctx context.Context) error {
	if err := sh.refresh(ctx); err != nil {
		return err
	}
	if len(sh.records) == 0 {
		fmt.Fprintln(Out, "Vault is empty")
		return nil
	}
	bold := color.New(color.Bold)
	for i, r := range sh.records {
		bold.Fprintf(Out, "%3d. %s", i+1, r.Name)
		fmt.Fprintf(Out, "  [%s/%s] %s\n", r.Category, r.Importance, r.Kind)
	}
	return nil
}

// recordAt возвращает запись по номеру из последнего списка.
func (sh *vaultShell) recordAt(args []string) (view.DecryptedRecord, error) {
	if len(args) < 1 {
		return view.DecryptedRecord{}, ErrUsage
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(sh.records) {
		return view.DecryptedRecord{}, fmt.Errorf("no such record: %s (run list first)", args[0])
	}
	return sh.records[n-1], nil
}

func (sh *vaultShell) show(args []string) error {
	r, err := sh.recordAt(args)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "id:         %s\n", r.ID)
	fmt.Fprintf(Out, "kind:       %s\n", r.Kind)
	fmt.Fprintf(Out, "name:       %s\n", r.Name)
	fmt.Fprintf(Out, "category:   %s\n", r.Category)
	fmt.Fprintf(Out, "importance: %s\n", r.Importance)
	fmt.Fprintf(Out, "created:    %s\n", r.CreatedAt.Format(time.RFC3339))
	switch r.Kind {
	case model.KindText:
		fmt.Fprintf(Out, "content:    %s\n", r.Content)
	default:
		fmt.Fprintf(Out, "url:        %s\n", r.BlobURL)
	}
	return nil
}

// promptFields запрашивает базовые поля записи; текущие значения — дефолты.
func (sh *vaultShell) promptFields(cur view.DecryptedRecord) (vault.Fields, error) {
	f := vault.Fields{Kind: cur.Kind, Content: cur.Content, BlobPath: cur.BlobPath}
	var ok bool
	if f.Name, ok = sh.readLineDefault("Name", cur.Name); !ok {
		return f, errors.New("input closed")
	}
	if f.Category, ok = sh.readLineDefault("Category", cur.Category); !ok {
		return f, errors.New("input closed")
	}
	if f.Importance, ok = sh.readLineDefault("Importance", cur.Importance); !ok {
		return f, errors.New("input closed")
	}
	return f, nil
}

func (sh *vaultShell) readLineDefault(label, def string) (string, bool) {
	prompt := label + ": "
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, def)
	}
	v, ok := sh.readLine(prompt)
	if !ok {
		return "", false
	}
	if v == "" {
		return def, true
	}
	return v, true
}

func (sh *vaultShell) addText(ctx context.Context) error {
	f, err := sh.promptFields(view.DecryptedRecord{Kind: model.KindText})
	if err != nil {
		return err
	}
	content, ok := sh.readLine("Content: ")
	if !ok {
		return errors.New("input closed")
	}
	f.Content = content
	created, err := sh.engine.Create(ctx, f)
	if err != nil {
		return err
	}
	sh.records = append(sh.records, created)
	color.New(color.FgGreen).Fprintf(Out, "Created %s\n", created.ID)
	return nil
}

// addBlob загружает файл и только после полной загрузки создаёт запись.
func (sh *vaultShell) addBlob(ctx context.Context, kind string, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	path := args[0]
	f, err := sh.promptFields(view.DecryptedRecord{Kind: kind})
	if err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	blobPath, err := sh.engine.UploadBlob(ctx, kind, filepath.Base(path), file)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	f.BlobPath = blobPath
	created, err := sh.engine.Create(ctx, f)
	if err != nil {
		return err
	}
	sh.records = append(sh.records, created)
	color.New(color.FgGreen).Fprintf(Out, "Created %s\n", created.ID)
	return nil
}

func (sh *vaultShell) edit(ctx context.Context, args []string) error {
	cur, err := sh.recordAt(args)
	if err != nil {
		return err
	}
	f, err := sh.promptFields(cur)
	if err != nil {
		return err
	}
	if cur.Kind == model.KindText {
		content, ok := sh.readLineDefault("Content", cur.Content)
		if !ok {
			return errors.New("input closed")
		}
		f.Content = content
	}
	updated, err := sh.engine.Update(ctx, cur.ID, f)
	if err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(Out, "Updated %s\n", updated.ID)
	return sh.refresh(ctx)
}

func (sh *vaultShell) remove(ctx context.Context, args []string) error {
	rec, err := sh.recordAt(args)
	if err != nil {
		return err
	}
	if err := sh.engine.Delete(ctx, rec); err != nil {
		return err
	}
	color.New(color.FgYellow).Fprintf(Out, "Deleted %s\n", rec.ID)
	return sh.refresh(ctx)
}

// reset — «забыл фразу»: двухшаговое подтверждение, затем безвозвратное
// удаление всех записей на сервере. Отказ на любом шаге — no-op.
func (sh *vaultShell) reset(ctx context.Context) error {
	color.New(color.FgRed, color.Bold).Fprintln(Out, "WARNING: this permanently deletes ALL your records.")
	fmt.Fprintln(Out, "Without the passphrase the ciphertext is unrecoverable; the key is never stored anywhere.")
	ans, ok := sh.readLine("Continue? [y/N]: ")
	if !ok || !strings.EqualFold(ans, "y") {
		fmt.Fprintln(Out, "Cancelled")
		return nil
	}
	ans, ok = sh.readLine(fmt.Sprintf("Type %q to confirm: ", resetConfirmPhrase))
	if !ok || ans != resetConfirmPhrase {
		fmt.Fprintln(Out, "Cancelled")
		return nil
	}
	count, err := sh.engine.Reset(ctx)
	if err != nil {
		return err
	}
	sh.records = nil
	color.New(color.FgRed).Fprintf(Out, "Deleted %d records. Vault locked.\n", count)
	// новая фраза просто выведет новый ключ — старого шифртекста больше нет
	return sh.unlock(ctx)
}
