package vault

import (
	"context"
	"fmt"
	"io"
	"sync"

	"InfoVault/internal/cli/api"
	"InfoVault/internal/cli/crypto"
	"InfoVault/internal/cli/model"
	view "InfoVault/internal/cli/model/view"
)

// Engine согласует расшифрованный список записей с сервером:
// fetch-all + расшифровка на загрузке, encrypt-then-persist на записи.
// Все операции требуют разблокированной сессии.
type Engine struct {
	api     *api.Client
	session *Session
	blobs   *BlobResolver
}

func NewEngine(apiClient *api.Client, session *Session, blobs *BlobResolver) *Engine {
	return &Engine{api: apiClient, session: session, blobs: blobs}
}

// Fields — plaintext-поля записи от пользователя.
// Для kind=text заполняется Content, для image/file — BlobPath.
type Fields struct {
	Kind       string
	Name       string
	Category   string
	Importance string
	Content    string
	BlobPath   string
}

// FetchAll загружает записи пользователя и расшифровывает их поля.
// Расшифровка по записям независима и выполняется конкурентно.
// Записи с нечитаемым Name (чужой ключ, битый шифртекст) выбрасываются
// из результата — мусор пользователю не показывается.
func (e *Engine) FetchAll(ctx context.Context) ([]view.DecryptedRecord, error) {
	key, ok := e.session.Key()
	if !ok {
		return nil, ErrVaultLocked
	}
	recs, err := e.api.ListRecords(ctx)
	if err != nil {
		return nil, err
	}

	decrypted := make([]view.DecryptedRecord, len(recs))
	readable := make([]bool, len(recs))
	var wg sync.WaitGroup
	for i := range recs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := &recs[i]
			// Name расшифровывается первым: пустой результат — признак
			// нечитаемой записи, остальные поля можно не трогать.
			name := crypto.DecryptString(rec.Name, key)
			if name == "" {
				return
			}
			d := view.DecryptedRecord{
				ID:         rec.ID,
				Kind:       rec.Kind,
				CreatedAt:  rec.CreatedAt,
				Name:       name,
				Category:   crypto.DecryptString(rec.Category, key),
				Importance: crypto.DecryptString(rec.Importance, key),
			}
			switch rec.Kind {
			case model.KindText:
				d.Content = crypto.DecryptString(rec.Content, key)
			case model.KindImage, model.KindFile:
				d.BlobPath = crypto.DecryptString(rec.BlobRef, key)
				if d.BlobPath != "" {
					// ссылка временная, поэтому добывается на каждый fetch;
					// сбой подписи оставляет запись без превью, но видимой
					if url, err := e.blobs.ResolveToURL(ctx, d.BlobPath); err == nil {
						d.BlobURL = url
					}
				}
			}
			decrypted[i] = d
			readable[i] = true
		}(i)
	}
	wg.Wait()

	out := make([]view.DecryptedRecord, 0, len(recs))
	for i := range decrypted {
		if readable[i] {
			out = append(out, decrypted[i])
		}
	}
	return out, nil
}

// encryptFields шифрует plaintext-поля ключом сессии.
func encryptFields(f Fields, key []byte) (model.Record, error) {
	name, err := crypto.EncryptString(f.Name, key)
	if err != nil {
		return model.Record{}, fmt.Errorf("encrypt name: %w", err)
	}
	category, err := crypto.EncryptString(f.Category, key)
	if err != nil {
		return model.Record{}, fmt.Errorf("encrypt category: %w", err)
	}
	importance, err := crypto.EncryptString(f.Importance, key)
	if err != nil {
		return model.Record{}, fmt.Errorf("encrypt importance: %w", err)
	}
	content, err := crypto.EncryptString(f.Content, key)
	if err != nil {
		return model.Record{}, fmt.Errorf("encrypt content: %w", err)
	}
	blobRef, err := crypto.EncryptString(f.BlobPath, key)
	if err != nil {
		return model.Record{}, fmt.Errorf("encrypt blob ref: %w", err)
	}
	return model.Record{
		Kind:       f.Kind,
		Name:       name,
		Category:   category,
		Importance: importance,
		Content:    content,
		BlobRef:    blobRef,
	}, nil
}

// assembleView собирает DisplayRecord из plaintext-входа и серверного ответа —
// без лишнего обратного расшифровывания.
func (e *Engine) assembleView(ctx context.Context, f Fields, created model.Record) view.DecryptedRecord {
	d := view.DecryptedRecord{
		ID:         created.ID,
		Kind:       f.Kind,
		CreatedAt:  created.CreatedAt,
		Name:       f.Name,
		Category:   f.Category,
		Importance: f.Importance,
		Content:    f.Content,
		BlobPath:   f.BlobPath,
	}
	if d.BlobPath != "" {
		if url, err := e.blobs.ResolveToURL(ctx, d.BlobPath); err == nil {
			d.BlobURL = url
		}
	}
	return d
}

// Create шифрует поля и создаёт запись на сервере.
func (e *Engine) Create(ctx context.Context, f Fields) (view.DecryptedRecord, error) {
	key, ok := e.session.Key()
	if !ok {
		return view.DecryptedRecord{}, ErrVaultLocked
	}
	rec, err := encryptFields(f, key)
	if err != nil {
		return view.DecryptedRecord{}, err
	}
	created, err := e.api.CreateRecord(ctx, rec)
	if err != nil {
		return view.DecryptedRecord{}, err
	}
	return e.assembleView(ctx, f, created), nil
}

// Update шифрует поля и полностью заменяет содержимое записи.
func (e *Engine) Update(ctx context.Context, id string, f Fields) (view.DecryptedRecord, error) {
	key, ok := e.session.Key()
	if !ok {
		return view.DecryptedRecord{}, ErrVaultLocked
	}
	rec, err := encryptFields(f, key)
	if err != nil {
		return view.DecryptedRecord{}, err
	}
	patch := api.RecordPatch{
		Kind:       &rec.Kind,
		Name:       &rec.Name,
		Category:   &rec.Category,
		Importance: &rec.Importance,
	}
	// пустой шифртекст не отправляем: поле не относится к этому kind
	if rec.Content != "" {
		patch.Content = &rec.Content
	}
	if rec.BlobRef != "" {
		patch.BlobRef = &rec.BlobRef
	}
	updated, err := e.api.UpdateRecord(ctx, id, patch)
	if err != nil {
		return view.DecryptedRecord{}, err
	}
	return e.assembleView(ctx, f, updated), nil
}

// UploadBlob загружает файл в blob store и возвращает opaque-путь.
// Вызывается ДО Create/Update: запись не пишется, пока блоб не загружен
// целиком — частичная загрузка не должна породить ссылку в никуда.
func (e *Engine) UploadBlob(ctx context.Context, kind, filename string, r io.Reader) (string, error) {
	if _, ok := e.session.Key(); !ok {
		return "", ErrVaultLocked
	}
	folder := "documents"
	if kind == model.KindImage {
		folder = "images"
	}
	return e.api.UploadBlob(ctx, folder, filename, r)
}

// Delete удаляет запись и, если у неё есть блоб, сам блоб.
// Сначала документ, затем блоб: сбой удаления блоба не оставит запись,
// ссылающуюся в никуда.
func (e *Engine) Delete(ctx context.Context, rec view.DecryptedRecord) error {
	if _, ok := e.session.Key(); !ok {
		return ErrVaultLocked
	}
	if err := e.api.DeleteRecord(ctx, rec.ID); err != nil {
		return err
	}
	blobPath := rec.BlobPath
	if blobPath == "" {
		// путь мог потеряться (например, запись пришла из представления,
		// где осталась только подписанная ссылка) — восстанавливаем из неё
		blobPath = e.blobs.ExtractPathFromURL(rec.BlobURL)
	}
	if blobPath != "" {
		if err := e.api.DeleteBlob(ctx, blobPath); err != nil {
			return fmt.Errorf("record deleted, blob cleanup failed: %w", err)
		}
	}
	return nil
}

// Reset безвозвратно удаляет все записи пользователя на сервере и блокирует
// сессию. Старый шифртекст невосстановим: ключ нигде не хранился — это
// осознанная цена отказа от серверного эскроу ключей. Двухшаговое
// подтверждение — обязанность вызывающего UI.
// Доступен и из Locked: именно забытая фраза — главный повод для сброса.
func (e *Engine) Reset(ctx context.Context) (int64, error) {
	count, err := e.api.ResetRecords(ctx)
	if err != nil {
		return 0, err
	}
	e.session.Lock()
	return count, nil
}
