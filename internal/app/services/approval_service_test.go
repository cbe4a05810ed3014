package services

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placenet/placement-backend/internal/app/models"
	"github.com/placenet/placement-backend/internal/pkg/apperrors"
)

type fakeApprovalStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeApprovalStore() *fakeApprovalStore {
	return &fakeApprovalStore{users: make(map[string]*models.User)}
}

func (f *fakeApprovalStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeApprovalStore) ApproveStudent(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == userID && u.StudentProfile != nil {
			u.StudentProfile.Approved = true
			return nil
		}
	}
	return apperrors.ErrStudentNotFound
}

func (f *fakeApprovalStore) ListPendingStudents(_ context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pending []*models.User
	for _, u := range f.users {
		if u.RoleType == models.RoleStudent && u.StudentProfile != nil && !u.StudentProfile.Approved {
			pending = append(pending, u)
		}
	}
	return pending, nil
}

func (f *fakeApprovalStore) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for email, u := range f.users {
		if u.ID == id {
			delete(f.users, email)
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

type recordingEmailService struct {
	approvalEmails []string
	welcomeEmails  []string
}

func (r *recordingEmailService) SendWelcomeEmail(toEmail, _ string) error {
	r.welcomeEmails = append(r.welcomeEmails, toEmail)
	return nil
}

func (r *recordingEmailService) SendApprovalEmail(toEmail, _ string) error {
	r.approvalEmails = append(r.approvalEmails, toEmail)
	return nil
}

func newApprovalFixture() (*fakeApprovalStore, *recordingEmailService, ApprovalService) {
	store := newFakeApprovalStore()
	emails := &recordingEmailService{}
	return store, emails, NewApprovalService(store, emails, zerolog.Nop())
}

func addPendingStudent(store *fakeApprovalStore, id int64, email string) {
	store.users[email] = &models.User{
		ID:        id,
		Email:     email,
		FirstName: "Ravi",
		LastName:  "Kumar",
		RoleType:  models.RoleStudent,
		StudentProfile: &models.StudentProfile{
			UserID:     id,
			RollNumber: "EC2022-007",
			Branch:     "ECE",
		},
	}
}

func TestApproveFlipsFlagAndNotifies(t *testing.T) {
	store, emails, svc := newApprovalFixture()
	addPendingStudent(store, 1, "ravi@college.edu")

	err := svc.Approve(context.Background(), "ravi@college.edu")
	require.NoError(t, err)

	assert.True(t, store.users["ravi@college.edu"].StudentProfile.Approved)
	assert.Equal(t, []string{"ravi@college.edu"}, emails.approvalEmails)

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestApproveIsIdempotent(t *testing.T) {
	store, emails, svc := newApprovalFixture()
	addPendingStudent(store, 1, "ravi@college.edu")

	require.NoError(t, svc.Approve(context.Background(), "ravi@college.edu"))
	require.NoError(t, svc.Approve(context.Background(), "ravi@college.edu"))

	assert.True(t, store.users["ravi@college.edu"].StudentProfile.Approved)
	// The second approval is a no-op and sends no second email
	assert.Len(t, emails.approvalEmails, 1)
}

func TestApproveNonStudentFails(t *testing.T) {
	store, _, svc := newApprovalFixture()
	store.users["tpo@college.edu"] = &models.User{
		ID:       2,
		Email:    "tpo@college.edu",
		RoleType: models.RoleTPOAdmin,
	}

	err := svc.Approve(context.Background(), "tpo@college.edu")
	assert.ErrorIs(t, err, apperrors.ErrNotStudent)
}

func TestApproveUnknownEmailFails(t *testing.T) {
	_, _, svc := newApprovalFixture()

	err := svc.Approve(context.Background(), "ghost@college.edu")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestRejectDeletesPendingStudent(t *testing.T) {
	store, _, svc := newApprovalFixture()
	addPendingStudent(store, 1, "ravi@college.edu")

	err := svc.Reject(context.Background(), "ravi@college.edu")
	require.NoError(t, err)

	_, ok := store.users["ravi@college.edu"]
	assert.False(t, ok)
}

func TestRejectApprovedStudentConflicts(t *testing.T) {
	store, _, svc := newApprovalFixture()
	addPendingStudent(store, 1, "ravi@college.edu")
	require.NoError(t, svc.Approve(context.Background(), "ravi@college.edu"))

	// Unlike Approve, Reject is not idempotent on an approved account:
	// succeeding without deleting would misreport the account as gone
	err := svc.Reject(context.Background(), "ravi@college.edu")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// The account survives the failed rejection
	_, ok := store.users["ravi@college.edu"]
	assert.True(t, ok)
}

func TestListPendingIncludesProfileFields(t *testing.T) {
	store, _, svc := newApprovalFixture()
	addPendingStudent(store, 1, "ravi@college.edu")

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "ravi@college.edu", pending[0].Email)
	assert.Equal(t, "EC2022-007", pending[0].RollNumber)
	assert.Equal(t, "ECE", pending[0].Branch)
}
