package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placenet/placement-backend/internal/app/models"
	"github.com/placenet/placement-backend/internal/app/models/dto"
	"github.com/placenet/placement-backend/internal/app/repositories"
	"github.com/placenet/placement-backend/internal/pkg/apperrors"
)

type pairKey struct {
	studentID int64
	jobID     int64
}

// fakeApplicationStore is a mutex-guarded in-memory applicationStore. A
// single row map backs both projections, mirroring the production schema,
// and the lock makes Create race-free the way the unique constraint does.
type fakeApplicationStore struct {
	mu       sync.Mutex
	seq      int64
	rows     map[pairKey]*models.Application
	users    *fakeUserReader
	jobs     *fakeJobReader
	injected []repositories.StatusMismatch
}

func newFakeApplicationStore(users *fakeUserReader, jobs *fakeJobReader) *fakeApplicationStore {
	return &fakeApplicationStore{
		rows:  make(map[pairKey]*models.Application),
		users: users,
		jobs:  jobs,
	}
}

func (f *fakeApplicationStore) Create(_ context.Context, app *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := pairKey{app.StudentID, app.JobID}
	if _, exists := f.rows[key]; exists {
		return apperrors.ErrDuplicateApplication
	}

	f.seq++
	app.ID = f.seq
	app.Status = models.StatusApplied
	app.AppliedAt = time.Now()
	app.UpdatedAt = app.AppliedAt

	stored := *app
	f.rows[key] = &stored
	return nil
}

func (f *fakeApplicationStore) GetByStudentAndJob(_ context.Context, studentID, jobID int64) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	app, ok := f.rows[pairKey{studentID, jobID}]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	copied := *app
	return &copied, nil
}

func (f *fakeApplicationStore) Update(_ context.Context, app *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := pairKey{app.StudentID, app.JobID}
	if _, ok := f.rows[key]; !ok {
		return apperrors.ErrApplicationNotFound
	}
	stored := *app
	stored.UpdatedAt = time.Now()
	f.rows[key] = &stored
	return nil
}

func (f *fakeApplicationStore) ListByJob(_ context.Context, jobID int64) ([]models.JobApplicant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var applicants []models.JobApplicant
	for key, app := range f.rows {
		if key.jobID != jobID {
			continue
		}
		user := f.users.users[key.studentID]
		applicant := models.JobApplicant{
			ApplicationID: app.ID,
			StudentID:     app.StudentID,
			Status:        app.Status,
			CurrentRound:  app.CurrentRound,
			RoundStatus:   app.RoundStatus,
			AppliedAt:     app.AppliedAt,
		}
		if user != nil {
			applicant.FirstName = user.FirstName
			applicant.LastName = user.LastName
			applicant.Email = user.Email
			if user.StudentProfile != nil {
				applicant.RollNumber = user.StudentProfile.RollNumber
			}
		}
		applicants = append(applicants, applicant)
	}
	return applicants, nil
}

func (f *fakeApplicationStore) ListByStudent(_ context.Context, studentID int64) ([]models.AppliedJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var applied []models.AppliedJob
	for key, app := range f.rows {
		if key.studentID != studentID {
			continue
		}
		entry := models.AppliedJob{
			ApplicationID: app.ID,
			JobID:         app.JobID,
			Status:        app.Status,
			CurrentRound:  app.CurrentRound,
			RoundStatus:   app.RoundStatus,
			Package:       app.Package,
			AppliedAt:     app.AppliedAt,
		}
		if job := f.jobs.jobs[key.jobID]; job != nil {
			entry.JobTitle = job.Title
			if job.Company != nil {
				entry.CompanyName = &job.Company.Name
			}
		}
		applied = append(applied, entry)
	}
	return applied, nil
}

func (f *fakeApplicationStore) CheckConsistency(_ context.Context) (int, []repositories.StatusMismatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows), f.injected, nil
}

type fakeUserReader struct {
	users map[int64]*models.User
}

func (f *fakeUserReader) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

type fakeJobReader struct {
	jobs map[int64]*models.Job
}

func (f *fakeJobReader) GetByID(_ context.Context, id int64) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	return job, nil
}

type trackerFixture struct {
	users *fakeUserReader
	jobs  *fakeJobReader
	store *fakeApplicationStore
	svc   ApplicationService
}

func newTrackerFixture() *trackerFixture {
	users := &fakeUserReader{users: make(map[int64]*models.User)}
	jobs := &fakeJobReader{jobs: make(map[int64]*models.Job)}
	store := newFakeApplicationStore(users, jobs)

	return &trackerFixture{
		users: users,
		jobs:  jobs,
		store: store,
		svc:   NewApplicationService(store, jobs, users, zerolog.Nop()),
	}
}

func (fx *trackerFixture) addStudent(id int64, approved bool) {
	fx.users.users[id] = &models.User{
		ID:        id,
		Email:     "student@college.edu",
		FirstName: "Asha",
		LastName:  "Rao",
		RoleType:  models.RoleStudent,
		StudentProfile: &models.StudentProfile{
			UserID:     id,
			RollNumber: "CS2021-042",
			Branch:     "CSE",
			Approved:   approved,
		},
	}
}

func (fx *trackerFixture) addStaff(id int64, role models.RoleType) {
	fx.users.users[id] = &models.User{
		ID:        id,
		Email:     "staff@college.edu",
		FirstName: "Tanvi",
		LastName:  "Mehta",
		RoleType:  role,
	}
}

func (fx *trackerFixture) addJob(id int64, deadline time.Time) {
	fx.jobs.jobs[id] = &models.Job{
		ID:       id,
		Title:    "Graduate Engineer",
		Salary:   8.5,
		Deadline: deadline,
		Company:  &models.Company{ID: 1, Name: "Acme Systems"},
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestApplyCreatesBothProjections(t *testing.T) {
	fx := newTrackerFixture()
	fx.addStudent(1, true)
	fx.addJob(10, time.Now().Add(24*time.Hour))

	applied, err := fx.svc.Apply(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusApplied), applied.Status)
	assert.Equal(t, "Graduate Engineer", applied.JobTitle)

	applicants, err := fx.svc.ListApplicants(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, applicants, 1)
	assert.Equal(t, string(models.StatusApplied), applicants[0].Status)
	assert.Equal(t, "Asha Rao", applicants[0].Name)

	mine, err := fx.svc.ListAppliedJobs(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, applicants[0].Status, mine[0].Status)
}

func TestApplyDuplicateFails(t *testing.T) {
	fx := newTrackerFixture()
	fx.addStudent(1, true)
	fx.addJob(10, time.Now().Add(24*time.Hour))

	_, err := fx.svc.Apply(context.Background(), 1, 10)
	require.NoError(t, err)

	_, err = fx.svc.Apply(context.Background(), 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateApplication)

	applicants, err := fx.svc.ListApplicants(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, applicants, 1)
}

func TestApplyUnapprovedStudentBlocked(t *testing.T) {
	fx := newTrackerFixture()
	fx.addStudent(2, false)
	fx.addJob(10, time.Now().Add(24*time.Hour))

	_, err := fx.svc.Apply(context.Background(), 2, 10)
	assert.ErrorIs(t, err, apperrors.ErrNotApproved)

	applicants, err := fx.svc.ListApplicants(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, applicants)

	mine, err := fx.svc.ListAppliedJobs(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, mine)

	// Once approved, the same apply succeeds
	fx.users.users[2].StudentProfile.Approved = true
	applied, err := fx.svc.Apply(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusApplied), applied.Status)
}

func TestApplyNonStudentRejected(t *testing.T) {
	fx := newTrackerFixture()
	fx.addStaff(3, models.RoleTPOAdmin)
	fx.addJob(10, time.Now().Add(24*time.Hour))

	_, err := fx.svc.Apply(context.Background(), 3, 10)
	assert.ErrorIs(t, err, apperrors.ErrNotStudent)
}

func TestApplyAfterDeadlineRejected(t *testing.T) {
	fx := newTrackerFixture()
	fx.addStudent(1, true)
	fx.addJob(10, time.Now().Add(-time.Hour))

	_, err := fx.svc.Apply(context.Background(), 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrDeadlinePassed)
}

func TestConcurrentApplyCreatesOneEntry(t *testing.T) {
	fx := newTrackerFixture()
	fx.addStudent(1, true)
	fx.addJob(10, time.Now().Add(24*time.Hour))

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = fx.svc.Apply(context.Background(), 1, 10)
		}(i)
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, apperrors.ErrDuplicateApplication):
			duplicates++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, duplicates)

	applicants, err := fx.svc.ListApplicants(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, applicants, 1)
}

func TestUpdateStatusHiredRequiresPackage(t *testing.T) {
	fx := newTrackerFixture()
	fx.addStudent(1, true)
	fx.addJob(10, time.Now().Add(24*time.Hour))

	_, err := fx.svc.Apply(context.Background(), 1, 10)
	require.NoError(t, err)

	_, err = fx.svc.UpdateStatus(context.Background(), &dto.UpdateApplicationStatusRequest{
		StudentID: 1,
		JobID:     10,
		Status:    strPtr(string(models.StatusHired)),
	})
	assert.ErrorIs(t, err, apperrors.ErrMissingPackage)

	// The failed hire must leave prior state unchanged on both sides
	applicants, err := fx.svc.ListApplicants(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, applicants, 1)
	assert.Equal(t, string(models.StatusApplied), applicants[0].Status)

	mine, err := fx.svc.ListAppliedJobs(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, string(models.StatusApplied), mine[0].Status)
}

func TestUpdateStatusHiredWithPackage(t *testing.T) {
	fx := newTrackerFixture()
	fx.addStudent(1, true)
	fx.addJob(10, time.Now().Add(24*time.Hour))

	_, err := fx.svc.Apply(context.Background(), 1, 10)
	require.NoError(t, err)

	updated, err := fx.svc.UpdateStatus(context.Background(), &dto.UpdateApplicationStatusRequest{
		StudentID: 1,
		JobID:     10,
		Status:    strPtr(string(models.StatusHired)),
		Package:   floatPtr(6.5),
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusHired), updated.Status)
	require.NotNil(t, updated.Package)
	assert.InDelta(t, 6.5, *updated.Package, 0.001)

	applicants, err := fx.svc.ListApplicants(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, applicants, 1)

	mine, err := fx.svc.ListAppliedJobs(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	// Dual-write consistency: both views report the same status
	assert.Equal(t, applicants[0].Status, mine[0].Status)
	assert.Equal(t, string(models.StatusHired), mine[0].Status)
	require.NotNil(t, mine[0].Package)
	assert.InDelta(t, 6.5, *mine[0].Package, 0.001)
}

func TestUpdateStatusRoundsWithoutTransition(t *testing.T) {
	fx := newTrackerFixture()
	fx.addStudent(1, true)
	fx.addJob(10, time.Now().Add(24*time.Hour))

	_, err := fx.svc.Apply(context.Background(), 1, 10)
	require.NoError(t, err)

	_, err = fx.svc.UpdateStatus(context.Background(), &dto.UpdateApplicationStatusRequest{
		StudentID: 1,
		JobID:     10,
		Status:    strPtr(string(models.StatusInterview)),
	})
	require.NoError(t, err)

	updated, err := fx.svc.UpdateStatus(context.Background(), &dto.UpdateApplicationStatusRequest{
		StudentID:    1,
		JobID:        10,
		CurrentRound: strPtr("Technical Interview"),
		RoundStatus:  strPtr(string(models.RoundPassed)),
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusInterview), updated.Status)
	require.NotNil(t, updated.CurrentRound)
	assert.Equal(t, "Technical Interview", *updated.CurrentRound)
	require.NotNil(t, updated.RoundStatus)
	assert.Equal(t, string(models.RoundPassed), *updated.RoundStatus)
}

func TestUpdateStatusTerminalIsFrozen(t *testing.T) {
	fx := newTrackerFixture()
	fx.addStudent(1, true)
	fx.addJob(10, time.Now().Add(24*time.Hour))

	_, err := fx.svc.Apply(context.Background(), 1, 10)
	require.NoError(t, err)

	_, err = fx.svc.UpdateStatus(context.Background(), &dto.UpdateApplicationStatusRequest{
		StudentID: 1,
		JobID:     10,
		Status:    strPtr(string(models.StatusRejected)),
	})
	require.NoError(t, err)

	// No status change out of a terminal state
	_, err = fx.svc.UpdateStatus(context.Background(), &dto.UpdateApplicationStatusRequest{
		StudentID: 1,
		JobID:     10,
		Status:    strPtr(string(models.StatusInterview)),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	// Round progress is frozen too
	_, err = fx.svc.UpdateStatus(context.Background(), &dto.UpdateApplicationStatusRequest{
		StudentID:   1,
		JobID:       10,
		RoundStatus: strPtr(string(models.RoundPending)),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestUpdateStatusUnknownApplication(t *testing.T) {
	fx := newTrackerFixture()
	fx.addStudent(1, true)
	fx.addJob(10, time.Now().Add(24*time.Hour))

	_, err := fx.svc.UpdateStatus(context.Background(), &dto.UpdateApplicationStatusRequest{
		StudentID: 1,
		JobID:     10,
		Status:    strPtr(string(models.StatusInterview)),
	})
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestValidateTransition(t *testing.T) {
	cases := []struct {
		name string
		from models.ApplicationStatus
		to   models.ApplicationStatus
		ok   bool
	}{
		{"applied to interview", models.StatusApplied, models.StatusInterview, true},
		{"applied to hired", models.StatusApplied, models.StatusHired, true},
		{"applied to rejected", models.StatusApplied, models.StatusRejected, true},
		{"interview to hired", models.StatusInterview, models.StatusHired, true},
		{"interview to rejected", models.StatusInterview, models.StatusRejected, true},
		{"interview back to applied", models.StatusInterview, models.StatusApplied, false},
		{"hired to interview", models.StatusHired, models.StatusInterview, false},
		{"rejected to hired", models.StatusRejected, models.StatusHired, false},
		{"same status no-op", models.StatusInterview, models.StatusInterview, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateTransition(tc.from, tc.to)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
			}
		})
	}
}

func TestCheckConsistencyReportsMismatches(t *testing.T) {
	fx := newTrackerFixture()
	fx.addStudent(1, true)
	fx.addJob(10, time.Now().Add(24*time.Hour))

	_, err := fx.svc.Apply(context.Background(), 1, 10)
	require.NoError(t, err)

	report, err := fx.svc.CheckConsistency(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Checked)
	assert.Empty(t, report.Conflicts)

	fx.store.injected = []repositories.StatusMismatch{{
		StudentID:         1,
		JobID:             10,
		JobSideStatus:     models.StatusHired,
		StudentSideStatus: models.StatusApplied,
	}}

	report, err = fx.svc.CheckConsistency(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, string(models.StatusHired), report.Conflicts[0].JobSideStatus)
	assert.Equal(t, string(models.StatusApplied), report.Conflicts[0].StudentStatus)
}
