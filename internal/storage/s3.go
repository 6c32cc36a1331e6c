// Package storage реализует blob store поверх S3-совместимого хранилища.
// Сервер отдаёт клиенту только opaque-путь и временные подписанные ссылки;
// сами ключи доступа к бакету клиента не покидают сервер.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	appconfig "InfoVault/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BlobStore — контракт blob-хранилища для хендлеров.
type BlobStore interface {
	// Upload сохраняет содержимое под указанным путём (ключом) в бакете.
	Upload(ctx context.Context, path string, body io.Reader, contentType string) error

	// SignedURL возвращает временную ссылку на чтение объекта.
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)

	// Delete удаляет объект.
	Delete(ctx context.Context, path string) error
}

type s3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewS3Store собирает S3-клиент из конфигурации приложения.
// Непустой S3Endpoint переключает на совместимое хранилище (minio и т.п.)
// с path-style адресацией.
func NewS3Store(ctx context.Context, cfg *appconfig.Config) (BlobStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.S3Bucket,
	}, nil
}

func (s *s3Store) Upload(ctx context.Context, path string, body io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", path, err)
	}
	return nil
}

func (s *s3Store) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign %q: %w", path, err)
	}
	return req.URL, nil
}

func (s *s3Store) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("delete object %q: %w", path, err)
	}
	return nil
}
