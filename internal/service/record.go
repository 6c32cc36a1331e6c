package service

import (
	"InfoVault/internal/model"
	"InfoVault/internal/repo"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrValidation — запрос не проходит проверку полей записи.
var ErrValidation = errors.New("validation error")

// RecordService инкапсулирует бизнес-логику работы с Record.
// Шифртексты полей для сервиса непрозрачны: проверяется только их наличие.
type RecordService struct {
	repo repo.RecordRepository
}

func NewRecordService(r repo.RecordRepository) *RecordService {
	return &RecordService{repo: r}
}

// RecordFields — поля записи от клиента (уже зашифрованные).
type RecordFields struct {
	Kind       string
	Name       string
	Category   string
	Importance string
	Content    string
	BlobRef    string
}

// RecordPatch — частичное обновление. nil-поле означает «не менять».
type RecordPatch struct {
	Kind       *string
	Name       *string
	Category   *string
	Importance *string
	Content    *string
	BlobRef    *string
}

// validate повторяет проверки оригинального API: базовые поля обязательны,
// kind определяет обязательное контентное поле.
func validate(f RecordFields) error {
	if f.Name == "" || f.Category == "" || f.Importance == "" || f.Kind == "" {
		return fmt.Errorf("%w: missing base fields", ErrValidation)
	}
	switch f.Kind {
	case model.KindText:
		if f.Content == "" {
			return fmt.Errorf("%w: text content is required", ErrValidation)
		}
	case model.KindImage, model.KindFile:
		if f.BlobRef == "" {
			return fmt.Errorf("%w: blob reference is required", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrValidation, f.Kind)
	}
	return nil
}

// List возвращает все записи пользователя.
func (s *RecordService) List(ctx context.Context, userID int64) ([]model.Record, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create проверяет поля и сохраняет новую запись с присвоенным UUID.
func (s *RecordService) Create(ctx context.Context, userID int64, f RecordFields) (*model.Record, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	rec := &model.Record{
		ID:         uuid.NewString(),
		UserID:     userID,
		Kind:       f.Kind,
		Name:       f.Name,
		Category:   f.Category,
		Importance: f.Importance,
		Content:    f.Content,
		BlobRef:    f.BlobRef,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update применяет частичное обновление к записи пользователя.
// Итоговое состояние записи снова проходит полную валидацию.
func (s *RecordService) Update(ctx context.Context, userID int64, id string, p RecordPatch) (*model.Record, error) {
	rec, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p.Kind != nil {
		rec.Kind = *p.Kind
	}
	if p.Name != nil {
		rec.Name = *p.Name
	}
	if p.Category != nil {
		rec.Category = *p.Category
	}
	if p.Importance != nil {
		rec.Importance = *p.Importance
	}
	if p.Content != nil {
		rec.Content = *p.Content
	}
	if p.BlobRef != nil {
		rec.BlobRef = *p.BlobRef
	}
	// ровно одно контентное поле осмысленно — второе затирается по kind
	switch rec.Kind {
	case model.KindText:
		rec.BlobRef = ""
	case model.KindImage, model.KindFile:
		rec.Content = ""
	}
	if err := validate(RecordFields{
		Kind:       rec.Kind,
		Name:       rec.Name,
		Category:   rec.Category,
		Importance: rec.Importance,
		Content:    rec.Content,
		BlobRef:    rec.BlobRef,
	}); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete удаляет запись пользователя.
func (s *RecordService) Delete(ctx context.Context, userID int64, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// Reset удаляет ВСЕ записи пользователя (безвозвратный сброс, см. forgot password).
func (s *RecordService) Reset(ctx context.Context, userID int64) (int64, error) {
	return s.repo.DeleteAllByUser(ctx, userID)
}
