package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placenet/placement-backend/internal/app/models"
	"github.com/placenet/placement-backend/internal/app/models/dto"
	"github.com/placenet/placement-backend/internal/pkg/apperrors"
)

type fakeInternshipStore struct {
	mu   sync.Mutex
	seq  int64
	rows map[int64]*models.Internship
}

func newFakeInternshipStore() *fakeInternshipStore {
	return &fakeInternshipStore{rows: make(map[int64]*models.Internship)}
}

func (f *fakeInternshipStore) Create(_ context.Context, in *models.Internship) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	in.ID = f.seq
	in.CreatedAt = time.Now()
	in.UpdatedAt = in.CreatedAt
	stored := *in
	f.rows[in.ID] = &stored
	return nil
}

func (f *fakeInternshipStore) GetByID(_ context.Context, id int64) (*models.Internship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	in, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrInternshipNotFound
	}
	copied := *in
	return &copied, nil
}

func (f *fakeInternshipStore) ListByStudent(_ context.Context, studentID int64) ([]models.Internship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.Internship
	for _, in := range f.rows {
		if in.StudentID == studentID {
			result = append(result, *in)
		}
	}
	return result, nil
}

func (f *fakeInternshipStore) Update(_ context.Context, in *models.Internship) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[in.ID]; !ok {
		return apperrors.ErrInternshipNotFound
	}
	stored := *in
	stored.UpdatedAt = time.Now()
	f.rows[in.ID] = &stored
	return nil
}

func (f *fakeInternshipStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return apperrors.ErrInternshipNotFound
	}
	delete(f.rows, id)
	return nil
}

func newInternshipFixture() (*fakeInternshipStore, InternshipService) {
	store := newFakeInternshipStore()
	return store, NewInternshipService(store, zerolog.Nop())
}

func internshipRequest() *dto.CreateInternshipRequest {
	return &dto.CreateInternshipRequest{
		CompanyName:  "Nimbus Labs",
		Role:         "Backend Intern",
		Type:         string(models.InternshipRemote),
		DurationDays: 60,
		StartDate:    time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateInternshipAssignsOwner(t *testing.T) {
	_, svc := newInternshipFixture()

	in, err := svc.Create(context.Background(), 7, internshipRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(7), in.StudentID)
	assert.Equal(t, models.InternshipRemote, in.Type)
	assert.NotZero(t, in.ID)
}

func TestListByStudentOnlyOwnRecords(t *testing.T) {
	_, svc := newInternshipFixture()
	_, err := svc.Create(context.Background(), 7, internshipRequest())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 8, internshipRequest())
	require.NoError(t, err)

	mine, err := svc.ListByStudent(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(7), mine[0].StudentID)
}

func TestUpdateInternshipOwnershipEnforced(t *testing.T) {
	_, svc := newInternshipFixture()
	in, err := svc.Create(context.Background(), 7, internshipRequest())
	require.NoError(t, err)

	patch := &dto.UpdateInternshipRequest{
		CompanyName:  "Nimbus Labs",
		Role:         "SDE Intern",
		Type:         string(models.InternshipOnSite),
		DurationDays: 90,
		StartDate:    in.StartDate,
	}

	_, err = svc.Update(context.Background(), 8, in.ID, patch)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	updated, err := svc.Update(context.Background(), 7, in.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, "SDE Intern", updated.Role)
	assert.Equal(t, models.InternshipOnSite, updated.Type)
}

func TestDeleteInternshipOwnershipEnforced(t *testing.T) {
	store, svc := newInternshipFixture()
	in, err := svc.Create(context.Background(), 7, internshipRequest())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 8, in.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.Delete(context.Background(), 7, in.ID))

	_, ok := store.rows[in.ID]
	assert.False(t, ok)
}

func TestDeleteInternshipUnknownID(t *testing.T) {
	_, svc := newInternshipFixture()

	err := svc.Delete(context.Background(), 7, 404)
	assert.ErrorIs(t, err, apperrors.ErrInternshipNotFound)
}
