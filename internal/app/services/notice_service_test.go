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

type fakeNoticeStore struct {
	mu      sync.Mutex
	seq     int64
	notices map[int64]*models.Notice
}

func newFakeNoticeStore() *fakeNoticeStore {
	return &fakeNoticeStore{notices: make(map[int64]*models.Notice)}
}

func (f *fakeNoticeStore) Create(_ context.Context, notice *models.Notice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	notice.ID = f.seq
	notice.CreatedAt = time.Now()
	stored := *notice
	f.notices[notice.ID] = &stored
	return nil
}

func (f *fakeNoticeStore) GetByID(_ context.Context, id int64) (*models.Notice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	notice, ok := f.notices[id]
	if !ok {
		return nil, apperrors.ErrNoticeNotFound
	}
	copied := *notice
	return &copied, nil
}

func (f *fakeNoticeStore) ListByReceiverRole(_ context.Context, roles []models.RoleType) ([]models.Notice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[models.RoleType]bool, len(roles))
	for _, r := range roles {
		wanted[r] = true
	}
	var result []models.Notice
	for _, n := range f.notices {
		if wanted[n.ReceiverRole] {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (f *fakeNoticeStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.notices[id]; !ok {
		return apperrors.ErrNoticeNotFound
	}
	delete(f.notices, id)
	return nil
}

func newNoticeFixture() (*fakeNoticeStore, NoticeService) {
	store := newFakeNoticeStore()
	return store, NewNoticeService(store, zerolog.Nop())
}

func sendNotice(t *testing.T, svc NoticeService, senderID int64, senderRole models.RoleType, receiverRole models.RoleType) *dto.NoticeResponse {
	t.Helper()
	resp, err := svc.Send(context.Background(), senderID, senderRole, &dto.SendNoticeRequest{
		Title:        "Placement drive",
		Message:      "Register by Friday.",
		ReceiverRole: string(receiverRole),
	})
	require.NoError(t, err)
	return resp
}

func TestSendNoticeRoleMatrix(t *testing.T) {
	cases := []struct {
		name     string
		sender   models.RoleType
		receiver models.RoleType
		ok       bool
	}{
		{"tpo to students", models.RoleTPOAdmin, models.RoleStudent, true},
		{"tpo to tpos", models.RoleTPOAdmin, models.RoleTPOAdmin, false},
		{"management to students", models.RoleManagementAdmin, models.RoleStudent, true},
		{"management to tpos", models.RoleManagementAdmin, models.RoleTPOAdmin, true},
		{"superuser to tpos", models.RoleSuperuser, models.RoleTPOAdmin, true},
		{"student sends nothing", models.RoleStudent, models.RoleStudent, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, svc := newNoticeFixture()
			_, err := svc.Send(context.Background(), 1, tc.sender, &dto.SendNoticeRequest{
				Title:        "t",
				Message:      "m",
				ReceiverRole: string(tc.receiver),
			})
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrInvalidNoticeTarget)
			}
		})
	}
}

func TestListNoticesStudentSeesStudentFacingOnly(t *testing.T) {
	_, svc := newNoticeFixture()
	sendNotice(t, svc, 10, models.RoleTPOAdmin, models.RoleStudent)
	sendNotice(t, svc, 20, models.RoleManagementAdmin, models.RoleTPOAdmin)

	visible, err := svc.List(context.Background(), 1, models.RoleStudent)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, string(models.RoleStudent), visible[0].ReceiverRole)
}

func TestListNoticesTPOSeesOwnAndAddressed(t *testing.T) {
	_, svc := newNoticeFixture()
	own := sendNotice(t, svc, 10, models.RoleTPOAdmin, models.RoleStudent)
	sendNotice(t, svc, 11, models.RoleTPOAdmin, models.RoleStudent)
	addressed := sendNotice(t, svc, 20, models.RoleManagementAdmin, models.RoleTPOAdmin)

	visible, err := svc.List(context.Background(), 10, models.RoleTPOAdmin)
	require.NoError(t, err)

	ids := make([]int64, 0, len(visible))
	for _, n := range visible {
		ids = append(ids, n.ID)
	}
	// The other TPO's student notice is filtered out
	assert.ElementsMatch(t, []int64{own.ID, addressed.ID}, ids)
}

func TestListNoticesManagementSeesEverything(t *testing.T) {
	_, svc := newNoticeFixture()
	sendNotice(t, svc, 10, models.RoleTPOAdmin, models.RoleStudent)
	sendNotice(t, svc, 20, models.RoleManagementAdmin, models.RoleTPOAdmin)

	visible, err := svc.List(context.Background(), 20, models.RoleManagementAdmin)
	require.NoError(t, err)
	assert.Len(t, visible, 2)
}

func TestDeleteNoticeTPOOwnOnly(t *testing.T) {
	store, svc := newNoticeFixture()
	own := sendNotice(t, svc, 10, models.RoleTPOAdmin, models.RoleStudent)
	other := sendNotice(t, svc, 11, models.RoleTPOAdmin, models.RoleStudent)

	err := svc.Delete(context.Background(), 10, models.RoleTPOAdmin, other.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.Delete(context.Background(), 10, models.RoleTPOAdmin, own.ID))

	_, ok := store.notices[own.ID]
	assert.False(t, ok)
	_, ok = store.notices[other.ID]
	assert.True(t, ok)
}

func TestDeleteNoticeManagementDeletesAny(t *testing.T) {
	store, svc := newNoticeFixture()
	notice := sendNotice(t, svc, 10, models.RoleTPOAdmin, models.RoleStudent)

	require.NoError(t, svc.Delete(context.Background(), 20, models.RoleManagementAdmin, notice.ID))

	_, ok := store.notices[notice.ID]
	assert.False(t, ok)
}

func TestDeleteNoticeStudentDenied(t *testing.T) {
	_, svc := newNoticeFixture()
	notice := sendNotice(t, svc, 10, models.RoleTPOAdmin, models.RoleStudent)

	err := svc.Delete(context.Background(), 1, models.RoleStudent, notice.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestDeleteNoticeUnknownID(t *testing.T) {
	_, svc := newNoticeFixture()

	err := svc.Delete(context.Background(), 20, models.RoleManagementAdmin, 404)
	assert.ErrorIs(t, err, apperrors.ErrNoticeNotFound)
}
