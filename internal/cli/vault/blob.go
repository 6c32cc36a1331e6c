package vault

import (
	"context"
	"strings"

	"InfoVault/internal/cli/api"
)

// BlobResolver превращает расшифрованный путь блоба во временную
// подписанную ссылку и обратно — путь из ранее выданной ссылки.
type BlobResolver struct {
	api    *api.Client
	bucket string
}

func NewBlobResolver(apiClient *api.Client, bucket string) *BlobResolver {
	return &BlobResolver{api: apiClient, bucket: bucket}
}

// ResolveToURL запрашивает у сервера подписанную ссылку на путь.
// Ссылка временная: для каждого показа её нужно запрашивать заново.
func (r *BlobResolver) ResolveToURL(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	return r.api.SignBlob(ctx, path)
}

// ExtractPathFromURL восстанавливает путь в хранилище из ранее выданной
// подписанной ссылки: отрезает query-параметры и всё до сегмента бакета.
// Возвращает "", если ссылка не похожа на ожидаемую — вызывающий трактует
// это как «удалять нечего», а не как ошибку.
func (r *BlobResolver) ExtractPathFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	base := rawURL
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	marker := "/" + r.bucket + "/"
	i := strings.Index(base, marker)
	if i < 0 {
		return ""
	}
	return base[i+len(marker):]
}
