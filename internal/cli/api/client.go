package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"InfoVault/internal/cli/model"
)

var (
	// ErrUnauthorized — токен отсутствует, протух или отклонён сервером.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound — записи нет или она принадлежит другому пользователю
	// (сервер не различает эти случаи для вызывающего).
	ErrNotFound = errors.New("not found")
)

// Client — HTTP-клиент серверного API. Все вызовы несут bearer-токен
// и ограничены таймаутом, чтобы сетевые сбои не подвешивали вызывающего.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New создаёт клиент API. baseURL — вида "http://host:port".
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// конверт ответа сервера
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do выполняет запрос с JSON-телом (payload может быть nil) и декодирует
// поле data конверта в out (если out != nil).
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeEnvelope(resp, out)
}

func decodeEnvelope(resp *http.Response, out any) error {
	raw, _ := io.ReadAll(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound, http.StatusForbidden:
		return ErrNotFound
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if !env.Success {
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, env.Message)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

// AuthData — ответ register/login.
type AuthData struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Token string `json:"token"`
}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Register регистрирует пользователя и возвращает id/токен.
func (c *Client) Register(ctx context.Context, login, password string) (AuthData, error) {
	var out AuthData
	err := c.do(ctx, http.MethodPost, "/api/user/register", credentials{Login: login, Password: password}, &out)
	return out, err
}

// Login выполняет вход и возвращает id/токен.
func (c *Client) Login(ctx context.Context, login, password string) (AuthData, error) {
	var out AuthData
	err := c.do(ctx, http.MethodPost, "/api/user/login", credentials{Login: login, Password: password}, &out)
	return out, err
}

// ListRecords возвращает все записи владельца токена (шифртексты).
func (c *Client) ListRecords(ctx context.Context) ([]model.Record, error) {
	var out []model.Record
	if err := c.do(ctx, http.MethodGet, "/api/records", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRecord отправляет новую запись, возвращает её с серверным id.
func (c *Client) CreateRecord(ctx context.Context, rec model.Record) (model.Record, error) {
	var out model.Record
	err := c.do(ctx, http.MethodPost, "/api/records", rec, &out)
	return out, err
}

// RecordPatch — частичное обновление записи; nil-поле не меняется.
type RecordPatch struct {
	Kind       *string `json:"kind,omitempty"`
	Name       *string `json:"name,omitempty"`
	Category   *string `json:"category,omitempty"`
	Importance *string `json:"importance,omitempty"`
	Content    *string `json:"content,omitempty"`
	BlobRef    *string `json:"blob_ref,omitempty"`
}

// UpdateRecord отправляет частичное обновление записи.
func (c *Client) UpdateRecord(ctx context.Context, id string, patch RecordPatch) (model.Record, error) {
	var out model.Record
	err := c.do(ctx, http.MethodPatch, "/api/records/"+id, patch, &out)
	return out, err
}

// DeleteRecord удаляет запись.
func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/records/"+id, nil, nil)
}

// ResetRecords безвозвратно удаляет ВСЕ записи владельца токена.
func (c *Client) ResetRecords(ctx context.Context) (int64, error) {
	var out struct {
		DeletedCount int64 `json:"deleted_count"`
	}
	err := c.do(ctx, http.MethodDelete, "/api/records/_bulkResetForCaller", nil, &out)
	return out.DeletedCount, err
}

// UploadBlob загружает файл в blob store, возвращает opaque-путь.
func (c *Client) UploadBlob(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("folder", folder); err != nil {
		return "", err
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(fw, r); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/blobs", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	var out struct {
		Path string `json:"path"`
	}
	if err := decodeEnvelope(resp, &out); err != nil {
		return "", err
	}
	return out.Path, nil
}

// SignBlob возвращает временную подписанную ссылку на блоб.
func (c *Client) SignBlob(ctx context.Context, path string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	err := c.do(ctx, http.MethodGet, "/api/blobs/sign?path="+urlQueryEscape(path), nil, &out)
	return out.URL, err
}

// DeleteBlob удаляет блоб по пути.
func (c *Client) DeleteBlob(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, "/api/blobs?path="+urlQueryEscape(path), nil, nil)
}

func urlQueryEscape(s string) string {
	return url.QueryEscape(s)
}
