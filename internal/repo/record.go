package repo

import (
	"InfoVault/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// RecordRepository — контракт доступа к Record. Все операции ограничены
// userID владельца: репозиторий — единственное место, где это ограничение
// применяется к SQL.
type RecordRepository interface {
	// ListByUser возвращает все записи пользователя, новые сверху.
	ListByUser(ctx context.Context, userID int64) ([]model.Record, error)

	// Create сохраняет новую запись (ID уже присвоен сервисом).
	Create(ctx context.Context, rec *model.Record) error

	// GetByID возвращает запись пользователя или ErrNotFound.
	GetByID(ctx context.Context, userID int64, id string) (*model.Record, error)

	// Update перезаписывает поля существующей записи пользователя.
	// ErrNotFound, если записи нет или она чужая.
	Update(ctx context.Context, rec *model.Record) error

	// Delete удаляет запись пользователя. ErrNotFound, если записи нет или она чужая.
	Delete(ctx context.Context, userID int64, id string) error

	// DeleteAllByUser удаляет все записи пользователя, возвращает число удалённых.
	DeleteAllByUser(ctx context.Context, userID int64) (int64, error)
}

type recordRepo struct {
	db *gorm.DB
}

// NewRecordRepository создаёт реализацию репозитория для Record.
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepo{db: db}
}

func (r *recordRepo) ListByUser(ctx context.Context, userID int64) ([]model.Record, error) {
	var recs []model.Record
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *recordRepo) Create(ctx context.Context, rec *model.Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recordRepo) GetByID(ctx context.Context, userID int64, id string) (*model.Record, error) {
	var rec model.Record
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recordRepo) Update(ctx context.Context, rec *model.Record) error {
	tx := r.db.WithContext(ctx).
		Model(&model.Record{}).
		Where("id = ? AND user_id = ?", rec.ID, rec.UserID).
		Select("kind", "name", "category", "importance", "content", "blob_ref").
		Updates(rec)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *recordRepo) Delete(ctx context.Context, userID int64, id string) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Record{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *recordRepo) DeleteAllByUser(ctx context.Context, userID int64) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Record{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
