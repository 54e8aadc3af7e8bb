package usecase

import (
	"context"
	"testing"
	"time"

	"love-journey/internal/destinations/domain/model"
	apperrors "love-journey/internal/shared/errors"
	"love-journey/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDestinationRepo implements repository.DestinationRepository with
// per-test function fields.
type mockDestinationRepo struct {
	listFn       func(ctx context.Context) ([]*model.Destination, error)
	insertFn     func(ctx context.Context, dest *model.Destination) (*model.Destination, error)
	updateFn     func(ctx context.Context, id string, fields map[string]interface{}, updatedAt time.Time) error
	deleteFn     func(ctx context.Context, id string) error
	deleteAllFn  func(ctx context.Context) (int64, error)
	insertManyFn func(ctx context.Context, dests []*model.Destination) (int64, error)
}

func (m *mockDestinationRepo) List(ctx context.Context) ([]*model.Destination, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockDestinationRepo) Insert(ctx context.Context, dest *model.Destination) (*model.Destination, error) {
	if m.insertFn != nil {
		return m.insertFn(ctx, dest)
	}
	return dest, nil
}

func (m *mockDestinationRepo) Update(ctx context.Context, id string, fields map[string]interface{}, updatedAt time.Time) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, fields, updatedAt)
	}
	return nil
}

func (m *mockDestinationRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockDestinationRepo) DeleteAll(ctx context.Context) (int64, error) {
	if m.deleteAllFn != nil {
		return m.deleteAllFn(ctx)
	}
	return 0, nil
}

func (m *mockDestinationRepo) InsertMany(ctx context.Context, dests []*model.Destination) (int64, error) {
	if m.insertManyFn != nil {
		return m.insertManyFn(ctx, dests)
	}
	return int64(len(dests)), nil
}

type staticReadiness bool

func (r staticReadiness) IsReady() bool { return bool(r) }

const testSecret = "our-little-secret"

func newTestUsecase(repo *mockDestinationRepo, ready bool, now time.Time) DestinationUsecase {
	uc := NewDestinationUsecase(repo, staticReadiness(ready), testSecret, logger.NewLogger())
	uc.(*destinationUsecase).now = func() time.Time { return now }
	return uc
}

func TestUsecase_NotReady(t *testing.T) {
	repo := &mockDestinationRepo{
		listFn: func(ctx context.Context) ([]*model.Destination, error) {
			t.Fatal("repository must not be touched while not ready")
			return nil, nil
		},
	}
	uc := newTestUsecase(repo, false, time.Now())
	ctx := context.Background()

	_, err := uc.List(ctx)
	assert.True(t, apperrors.IsUnavailable(err))
	_, err = uc.Create(ctx, map[string]interface{}{"city": "x", "coordinates": "1,1"})
	assert.True(t, apperrors.IsUnavailable(err))
	err = uc.Update(ctx, "id", map[string]interface{}{})
	assert.True(t, apperrors.IsUnavailable(err))
	err = uc.Delete(ctx, "id")
	assert.True(t, apperrors.IsUnavailable(err))
	_, err = uc.Clear(ctx, testSecret)
	assert.True(t, apperrors.IsUnavailable(err))
	_, err = uc.BulkImport(ctx, testSecret, nil)
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestCreate_Validation(t *testing.T) {
	repo := &mockDestinationRepo{
		insertFn: func(ctx context.Context, dest *model.Destination) (*model.Destination, error) {
			t.Fatal("insert must not be called for invalid input")
			return nil, nil
		},
	}
	uc := newTestUsecase(repo, true, time.Now())

	_, err := uc.Create(context.Background(), map[string]interface{}{"coordinates": "1,1"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = uc.Create(context.Background(), map[string]interface{}{"city": "Porto"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreate_AssignsTimestampAndIgnoresClientID(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	var inserted *model.Destination
	repo := &mockDestinationRepo{
		insertFn: func(ctx context.Context, dest *model.Destination) (*model.Destination, error) {
			inserted = dest
			return dest, nil
		},
	}
	uc := newTestUsecase(repo, true, now)

	dest, err := uc.Create(context.Background(), map[string]interface{}{
		"id":          "64a1f0c2b3d4e5f6a7b8c9d0",
		"city":        "Porto",
		"coordinates": map[string]interface{}{"lat": 41.15, "lng": -8.61},
		"notes":       "port wine",
	})
	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.True(t, inserted.ID.IsZero(), "client-supplied id must be ignored")
	assert.Equal(t, now, dest.CreatedAt)
	assert.Equal(t, "port wine", dest.Attributes["notes"])
}

func TestUpdate_StripsServerOwnedFields(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	var gotFields map[string]interface{}
	var gotUpdatedAt time.Time
	repo := &mockDestinationRepo{
		updateFn: func(ctx context.Context, id string, fields map[string]interface{}, updatedAt time.Time) error {
			gotFields = fields
			gotUpdatedAt = updatedAt
			return nil
		},
	}
	uc := newTestUsecase(repo, true, now)

	err := uc.Update(context.Background(), "64a1f0c2b3d4e5f6a7b8c9d0", map[string]interface{}{
		"id":         "injected",
		"_id":        "injected",
		"created_at": "2020-01-01T00:00:00Z",
		"city":       "Braga",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"city": "Braga"}, gotFields)
	assert.Equal(t, now, gotUpdatedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &mockDestinationRepo{
		updateFn: func(ctx context.Context, id string, fields map[string]interface{}, updatedAt time.Time) error {
			return apperrors.ErrDestinationNotFound
		},
	}
	uc := newTestUsecase(repo, true, time.Now())

	err := uc.Update(context.Background(), "ffffffffffffffffffffffff", map[string]interface{}{"city": "x"})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockDestinationRepo{
		deleteFn: func(ctx context.Context, id string) error {
			return apperrors.ErrDestinationNotFound
		},
	}
	uc := newTestUsecase(repo, true, time.Now())

	err := uc.Delete(context.Background(), "ffffffffffffffffffffffff")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestClear_Passphrase(t *testing.T) {
	deleted := false
	repo := &mockDestinationRepo{
		deleteAllFn: func(ctx context.Context) (int64, error) {
			deleted = true
			return 7, nil
		},
	}
	uc := newTestUsecase(repo, true, time.Now())

	_, err := uc.Clear(context.Background(), "wrong")
	assert.True(t, apperrors.IsAuthentication(err))
	assert.False(t, deleted, "wrong passphrase must leave records intact")

	count, err := uc.Clear(context.Background(), testSecret)
	require.NoError(t, err)
	assert.EqualValues(t, 7, count)
	assert.True(t, deleted)
}

func TestBulkImport_WrongPassphrase(t *testing.T) {
	repo := &mockDestinationRepo{
		deleteAllFn: func(ctx context.Context) (int64, error) {
			t.Fatal("wrong passphrase must not touch the collection")
			return 0, nil
		},
	}
	uc := newTestUsecase(repo, true, time.Now())

	_, err := uc.BulkImport(context.Background(), "wrong", []map[string]interface{}{{"city": "x"}})
	assert.True(t, apperrors.IsAuthentication(err))
}

func TestBulkImport_StaggersTimestamps(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cleared := false
	var imported []*model.Destination
	repo := &mockDestinationRepo{
		deleteAllFn: func(ctx context.Context) (int64, error) {
			cleared = true
			return 2, nil
		},
		insertManyFn: func(ctx context.Context, dests []*model.Destination) (int64, error) {
			imported = dests
			return int64(len(dests)), nil
		},
	}
	uc := newTestUsecase(repo, true, base)

	count, err := uc.BulkImport(context.Background(), testSecret, []map[string]interface{}{
		{"city": "A", "coordinates": "1,1"},
		{"city": "B", "coordinates": "2,2"},
		{"city": "C", "coordinates": "3,3"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	assert.True(t, cleared, "import must replace the whole collection")
	require.Len(t, imported, 3)
	assert.Equal(t, base, imported[0].CreatedAt)
	assert.Equal(t, base.Add(time.Second), imported[1].CreatedAt)
	assert.Equal(t, base.Add(2*time.Second), imported[2].CreatedAt)
	for _, d := range imported {
		assert.True(t, d.ID.IsZero(), "imported records get fresh identifiers")
	}
}

func TestBulkImport_EmptySkipsInsert(t *testing.T) {
	cleared := false
	repo := &mockDestinationRepo{
		deleteAllFn: func(ctx context.Context) (int64, error) {
			cleared = true
			return 4, nil
		},
		insertManyFn: func(ctx context.Context, dests []*model.Destination) (int64, error) {
			t.Fatal("insert must be skipped for empty input")
			return 0, nil
		},
	}
	uc := newTestUsecase(repo, true, time.Now())

	count, err := uc.BulkImport(context.Background(), testSecret, []map[string]interface{}{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.True(t, cleared, "empty import still clears the collection")
}

func TestList_PassesThrough(t *testing.T) {
	want := []*model.Destination{{City: "Lyon"}}
	repo := &mockDestinationRepo{
		listFn: func(ctx context.Context) ([]*model.Destination, error) {
			return want, nil
		},
	}
	uc := newTestUsecase(repo, true, time.Now())

	got, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
