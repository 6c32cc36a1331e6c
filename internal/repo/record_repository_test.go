package repo

import (
	"InfoVault/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// хелпер для создания базовой записи.
// id и userID в тестах уникальны: cache=shared переиспользует одну базу.
func mkRecord(id string, userID int64, name string, created time.Time) model.Record {
	return model.Record{
		ID:         id,
		UserID:     userID,
		Kind:       model.KindText,
		Name:       name,
		Category:   "enc-cat",
		Importance: "enc-imp",
		Content:    "enc-content",
		CreatedAt:  created.UTC(),
	}
}

func TestRecordRepository_CreateAndGetByID(t *testing.T) {
	db := newTestDB(t)
	r := NewRecordRepository(db)
	ctx := context.Background()

	rec := mkRecord("g1", 101, "enc-name", time.Now())
	assert.NoError(t, r.Create(ctx, &rec))

	got, err := r.GetByID(ctx, 101, "g1")
	assert.NoError(t, err)
	assert.Equal(t, "enc-name", got.Name)
	assert.Equal(t, int64(101), got.UserID)

	// чужой пользователь — не найдено
	got, err = r.GetByID(ctx, 999, "g1")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordRepository_ListByUser_ScopedAndOrdered(t *testing.T) {
	db := newTestDB(t)
	r := NewRecordRepository(db)
	ctx := context.Background()

	now := time.Now()
	older := mkRecord("l-old", 201, "old", now.Add(-time.Hour))
	newer := mkRecord("l-new", 201, "new", now)
	alien := mkRecord("l-alien", 202, "alien", now)
	assert.NoError(t, r.Create(ctx, &older))
	assert.NoError(t, r.Create(ctx, &newer))
	assert.NoError(t, r.Create(ctx, &alien))

	recs, err := r.ListByUser(ctx, 201)
	assert.NoError(t, err)
	assert.Len(t, recs, 2)
	// новые сверху, чужих нет
	assert.Equal(t, "l-new", recs[0].ID)
	assert.Equal(t, "l-old", recs[1].ID)
}

func TestRecordRepository_Update(t *testing.T) {
	db := newTestDB(t)
	r := NewRecordRepository(db)
	ctx := context.Background()

	rec := mkRecord("u1", 301, "before", time.Now())
	assert.NoError(t, r.Create(ctx, &rec))

	rec.Name = "after"
	rec.Content = ""
	rec.Kind = model.KindImage
	rec.BlobRef = "301/images/x.png"
	assert.NoError(t, r.Update(ctx, &rec))

	got, err := r.GetByID(ctx, 301, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "after", got.Name)
	assert.Equal(t, model.KindImage, got.Kind)
	assert.Equal(t, "301/images/x.png", got.BlobRef)
	// контентное поле перезаписано вместе с остальными
	assert.Equal(t, "", got.Content)

	// обновление чужой записи не проходит
	alien := rec
	alien.UserID = 999
	assert.ErrorIs(t, r.Update(ctx, &alien), ErrNotFound)
}

func TestRecordRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	r := NewRecordRepository(db)
	ctx := context.Background()

	rec := mkRecord("d1", 401, "x", time.Now())
	assert.NoError(t, r.Create(ctx, &rec))

	// чужой пользователь не может удалить
	assert.ErrorIs(t, r.Delete(ctx, 999, "d1"), ErrNotFound)

	assert.NoError(t, r.Delete(ctx, 401, "d1"))
	_, err := r.GetByID(ctx, 401, "d1")
	assert.ErrorIs(t, err, ErrNotFound)

	// повторное удаление — не найдено
	assert.ErrorIs(t, r.Delete(ctx, 401, "d1"), ErrNotFound)
}

func TestRecordRepository_DeleteAllByUser(t *testing.T) {
	db := newTestDB(t)
	r := NewRecordRepository(db)
	ctx := context.Background()

	for i, id := range []string{"b1", "b2", "b3"} {
		rec := mkRecord(id, 501, "x", time.Now().Add(time.Duration(i)*time.Second))
		assert.NoError(t, r.Create(ctx, &rec))
	}
	alien := mkRecord("b-alien", 502, "alien", time.Now())
	assert.NoError(t, r.Create(ctx, &alien))

	count, err := r.DeleteAllByUser(ctx, 501)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	recs, err := r.ListByUser(ctx, 501)
	assert.NoError(t, err)
	assert.Empty(t, recs)

	// чужие записи нетронуты
	recs, err = r.ListByUser(ctx, 502)
	assert.NoError(t, err)
	assert.Len(t, recs, 1)

	// повторный сброс — ноль удалённых
	count, err = r.DeleteAllByUser(ctx, 501)
	assert.NoError(t, err)
	assert.Zero(t, count)
}
