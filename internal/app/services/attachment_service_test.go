package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placenet/placement-backend/internal/app/models"
	"github.com/placenet/placement-backend/internal/db"
	"github.com/placenet/placement-backend/internal/pkg/apperrors"
)

func fileHeader(name, contentType string, size int64) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: name,
		Header:   header,
		Size:     size,
	}
}

// attachmentState is the shared backing store for the attachment fakes.
// One struct holds users, applications and file rows so the transaction
// fake can snapshot and restore all of them together.
type attachmentState struct {
	mu      sync.Mutex
	fileSeq int64
	users   map[int64]*models.User
	apps    map[int64]*models.Application
	files   map[int64]*models.File

	failSetOfferLetter bool
}

func newAttachmentState() *attachmentState {
	return &attachmentState{
		users: make(map[int64]*models.User),
		apps:  make(map[int64]*models.Application),
		files: make(map[int64]*models.File),
	}
}

type attachmentSnapshot struct {
	users map[int64]*models.User
	apps  map[int64]*models.Application
	files map[int64]*models.File
}

func copyUser(u *models.User) *models.User {
	copied := *u
	if u.StudentProfile != nil {
		profile := *u.StudentProfile
		copied.StudentProfile = &profile
	}
	return &copied
}

func (st *attachmentState) snapshot() attachmentSnapshot {
	st.mu.Lock()
	defer st.mu.Unlock()

	snap := attachmentSnapshot{
		users: make(map[int64]*models.User, len(st.users)),
		apps:  make(map[int64]*models.Application, len(st.apps)),
		files: make(map[int64]*models.File, len(st.files)),
	}
	for id, u := range st.users {
		snap.users[id] = copyUser(u)
	}
	for id, a := range st.apps {
		copied := *a
		snap.apps[id] = &copied
	}
	for id, f := range st.files {
		copied := *f
		snap.files[id] = &copied
	}
	return snap
}

func (st *attachmentState) restore(snap attachmentSnapshot) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.users = snap.users
	st.apps = snap.apps
	st.files = snap.files
}

// fakeAttachmentTx applies fn against the shared state and restores the
// pre-transaction snapshot when fn fails, mimicking a rollback.
type fakeAttachmentTx struct {
	st *attachmentState
}

func (f *fakeAttachmentTx) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	snap := f.st.snapshot()
	if err := fn(ctx, nil); err != nil {
		f.st.restore(snap)
		return err
	}
	return nil
}

type fakeAttachmentUsers struct {
	st *attachmentState
}

func (f *fakeAttachmentUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	u, ok := f.st.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (f *fakeAttachmentUsers) UpdateProfilePhotoFileID(_ context.Context, _ pgx.Tx, userID int64, fileID *int64) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	u, ok := f.st.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.ProfilePhotoFileID = fileID
	return nil
}

func (f *fakeAttachmentUsers) UpdateResumeFileID(_ context.Context, _ pgx.Tx, userID int64, fileID *int64) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	u, ok := f.st.users[userID]
	if !ok || u.StudentProfile == nil {
		return apperrors.ErrStudentNotFound
	}
	u.StudentProfile.ResumeFileID = fileID
	return nil
}

type fakeAttachmentApps struct {
	st *attachmentState
}

func (f *fakeAttachmentApps) GetByStudentAndJob(_ context.Context, studentID, jobID int64) (*models.Application, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	for _, app := range f.st.apps {
		if app.StudentID == studentID && app.JobID == jobID {
			copied := *app
			return &copied, nil
		}
	}
	return nil, apperrors.ErrApplicationNotFound
}

func (f *fakeAttachmentApps) SetOfferLetter(_ context.Context, _ pgx.Tx, applicationID int64, fileID *int64) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	if f.st.failSetOfferLetter {
		return errors.New("offer letter update failed")
	}
	app, ok := f.st.apps[applicationID]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	app.OfferLetterFileID = fileID
	return nil
}

type fakeAttachmentFiles struct {
	st *attachmentState
}

func (f *fakeAttachmentFiles) Create(_ context.Context, _ pgx.Tx, file *models.File) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	f.st.fileSeq++
	file.ID = f.st.fileSeq
	stored := *file
	f.st.files[file.ID] = &stored
	return nil
}

func (f *fakeAttachmentFiles) GetByID(_ context.Context, id int64) (*models.File, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	file, ok := f.st.files[id]
	if !ok {
		return nil, apperrors.ErrFileNotFound
	}
	copied := *file
	return &copied, nil
}

func (f *fakeAttachmentFiles) Delete(_ context.Context, _ pgx.Tx, id int64) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	if _, ok := f.st.files[id]; !ok {
		return apperrors.ErrFileNotFound
	}
	delete(f.st.files, id)
	return nil
}

// fakeDiskStorage tracks stored artifact paths in memory
type fakeDiskStorage struct {
	mu     sync.Mutex
	seq    int
	stored map[string]bool
}

func newFakeDiskStorage() *fakeDiskStorage {
	return &fakeDiskStorage{stored: make(map[string]bool)}
}

func (f *fakeDiskStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return f.SaveFileWithPath(fileHeader, "")
}

func (f *fakeDiskStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	stored := fmt.Sprintf("/uploads/%s/%d_%s", path, f.seq, fileHeader.Filename)
	f.stored[stored] = true
	return stored, nil
}

func (f *fakeDiskStorage) DeleteFile(filePath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.stored, filePath)
	return nil
}

func (f *fakeDiskStorage) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stored)
}

type attachmentFixture struct {
	st   *attachmentState
	disk *fakeDiskStorage
	svc  AttachmentService
}

func newAttachmentFixture() *attachmentFixture {
	st := newAttachmentState()
	disk := newFakeDiskStorage()
	svc := NewAttachmentService(
		&fakeAttachmentTx{st},
		&fakeAttachmentUsers{st},
		&fakeAttachmentApps{st},
		&fakeAttachmentFiles{st},
		disk,
		zerolog.Nop(),
	)
	return &attachmentFixture{st: st, disk: disk, svc: svc}
}

func (fx *attachmentFixture) addApplication(id, studentID, jobID int64) {
	fx.st.apps[id] = &models.Application{
		ID:        id,
		StudentID: studentID,
		JobID:     jobID,
		Status:    models.StatusHired,
	}
}

func (fx *attachmentFixture) addStudent(id int64) {
	fx.st.users[id] = &models.User{
		ID:       id,
		RoleType: models.RoleStudent,
		StudentProfile: &models.StudentProfile{
			UserID:   id,
			Approved: true,
		},
	}
}

func offerLetter() *multipart.FileHeader {
	return fileHeader("offer.pdf", "application/pdf", 1<<20)
}

func TestAttachOfferLetterLinksRowAndReference(t *testing.T) {
	fx := newAttachmentFixture()
	fx.addApplication(1, 7, 10)

	resp, err := fx.svc.AttachOfferLetter(context.Background(), 7, 10, offerLetter())
	require.NoError(t, err)
	require.NotZero(t, resp.ID)

	app := fx.st.apps[1]
	require.NotNil(t, app.OfferLetterFileID)
	assert.Equal(t, resp.ID, *app.OfferLetterFileID)

	stored, err := fx.svc.GetFile(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.FileKindOfferLetter), stored.Kind)
	assert.Equal(t, 1, fx.disk.count())
}

func TestDetachOfferLetterLeavesNoDanglingReference(t *testing.T) {
	fx := newAttachmentFixture()
	fx.addApplication(1, 7, 10)

	resp, err := fx.svc.AttachOfferLetter(context.Background(), 7, 10, offerLetter())
	require.NoError(t, err)

	require.NoError(t, fx.svc.DetachOfferLetter(context.Background(), 7, 10))

	// Reference, file row and disk artifact all go together
	assert.Nil(t, fx.st.apps[1].OfferLetterFileID)
	_, err = fx.svc.GetFile(context.Background(), resp.ID)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
	assert.Zero(t, fx.disk.count())
}

func TestDetachOfferLetterRepeatIsNoOp(t *testing.T) {
	fx := newAttachmentFixture()
	fx.addApplication(1, 7, 10)

	_, err := fx.svc.AttachOfferLetter(context.Background(), 7, 10, offerLetter())
	require.NoError(t, err)

	require.NoError(t, fx.svc.DetachOfferLetter(context.Background(), 7, 10))
	require.NoError(t, fx.svc.DetachOfferLetter(context.Background(), 7, 10))
}

func TestAttachOfferLetterReplacesExisting(t *testing.T) {
	fx := newAttachmentFixture()
	fx.addApplication(1, 7, 10)

	first, err := fx.svc.AttachOfferLetter(context.Background(), 7, 10, offerLetter())
	require.NoError(t, err)

	second, err := fx.svc.AttachOfferLetter(context.Background(), 7, 10, fileHeader("revised.pdf", "application/pdf", 1<<20))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	require.NotNil(t, fx.st.apps[1].OfferLetterFileID)
	assert.Equal(t, second.ID, *fx.st.apps[1].OfferLetterFileID)

	// The replaced letter is fully gone
	_, err = fx.svc.GetFile(context.Background(), first.ID)
	assert.ErrorIs(t, err, apperrors.ErrFileNotFound)
	assert.Equal(t, 1, fx.disk.count())
	assert.Len(t, fx.st.files, 1)
}

func TestAttachOfferLetterRollbackCleansUpArtifact(t *testing.T) {
	fx := newAttachmentFixture()
	fx.addApplication(1, 7, 10)
	fx.st.failSetOfferLetter = true

	_, err := fx.svc.AttachOfferLetter(context.Background(), 7, 10, offerLetter())
	require.Error(t, err)

	// Neither a file row, nor a reference, nor a disk artifact survives
	assert.Nil(t, fx.st.apps[1].OfferLetterFileID)
	assert.Empty(t, fx.st.files)
	assert.Zero(t, fx.disk.count())
}

func TestUploadResumeSymmetry(t *testing.T) {
	fx := newAttachmentFixture()
	fx.addStudent(7)

	resume := fileHeader("cv.pdf", "application/pdf", 1<<20)
	resp, err := fx.svc.UploadResume(context.Background(), 7, resume)
	require.NoError(t, err)

	profile := fx.st.users[7].StudentProfile
	require.NotNil(t, profile.ResumeFileID)
	assert.Equal(t, resp.ID, *profile.ResumeFileID)

	require.NoError(t, fx.svc.DeleteResume(context.Background(), 7))
	assert.Nil(t, fx.st.users[7].StudentProfile.ResumeFileID)
	assert.Empty(t, fx.st.files)
	assert.Zero(t, fx.disk.count())

	// Deleting again is a successful no-op
	require.NoError(t, fx.svc.DeleteResume(context.Background(), 7))
}

func TestUploadResumeRequiresStudent(t *testing.T) {
	fx := newAttachmentFixture()
	fx.st.users[3] = &models.User{ID: 3, RoleType: models.RoleTPOAdmin}

	_, err := fx.svc.UploadResume(context.Background(), 3, fileHeader("cv.pdf", "application/pdf", 1<<20))
	assert.ErrorIs(t, err, apperrors.ErrNotStudent)
}

func TestValidateUpload(t *testing.T) {
	cases := []struct {
		name    string
		kind    models.FileKind
		header  *multipart.FileHeader
		wantErr error
	}{
		{
			name:   "pdf offer letter under limit",
			kind:   models.FileKindOfferLetter,
			header: fileHeader("offer.pdf", "application/pdf", 1<<20),
		},
		{
			name:    "offer letter over limit",
			kind:    models.FileKindOfferLetter,
			header:  fileHeader("offer.pdf", "application/pdf", 6<<20),
			wantErr: apperrors.ErrFileTooLarge,
		},
		{
			name:    "offer letter wrong type",
			kind:    models.FileKindOfferLetter,
			header:  fileHeader("offer.png", "image/png", 1<<20),
			wantErr: apperrors.ErrUnsupportedFileType,
		},
		{
			name:   "png profile photo",
			kind:   models.FileKindProfilePhoto,
			header: fileHeader("me.png", "image/png", 1<<20),
		},
		{
			name:    "photo over limit",
			kind:    models.FileKindProfilePhoto,
			header:  fileHeader("me.jpg", "image/jpeg", 3<<20),
			wantErr: apperrors.ErrFileTooLarge,
		},
		{
			name:    "pdf as profile photo",
			kind:    models.FileKindProfilePhoto,
			header:  fileHeader("me.pdf", "application/pdf", 1<<20),
			wantErr: apperrors.ErrUnsupportedFileType,
		},
		{
			name:   "docx resume",
			kind:   models.FileKindResume,
			header: fileHeader("cv.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", 2<<20),
		},
		{
			name:    "resume missing content type",
			kind:    models.FileKindResume,
			header:  fileHeader("cv", "", 2<<20),
			wantErr: apperrors.ErrUnsupportedFileType,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateUpload(tc.header, tc.kind)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
