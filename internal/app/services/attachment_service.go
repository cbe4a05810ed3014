package services

import (
	"context"
	"mime/multipart"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/placenet/placement-backend/internal/app/models"
	"github.com/placenet/placement-backend/internal/app/models/dto"
	"github.com/placenet/placement-backend/internal/db"
	"github.com/placenet/placement-backend/internal/pkg/apperrors"
	"github.com/placenet/placement-backend/internal/pkg/filestorage"
)

// Attachment size and type limits per artifact kind
const (
	maxOfferLetterSize  = 5 << 20 // 5 MB
	maxProfilePhotoSize = 2 << 20 // 2 MB
	maxResumeSize       = 5 << 20 // 5 MB
)

var allowedMimeTypes = map[models.FileKind]map[string]bool{
	models.FileKindProfilePhoto: {
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
	},
	models.FileKindOfferLetter: {
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	},
	models.FileKindResume: {
		"application/pdf":    true,
		"application/msword": true,
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	},
}

var maxSizes = map[models.FileKind]int64{
	models.FileKindProfilePhoto: maxProfilePhotoSize,
	models.FileKindOfferLetter:  maxOfferLetterSize,
	models.FileKindResume:       maxResumeSize,
}

// txRunner runs a function inside one database transaction.
// Declared here so tests can substitute an in-memory runner.
type txRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

type attachmentUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfilePhotoFileID(ctx context.Context, tx pgx.Tx, userID int64, fileID *int64) error
	UpdateResumeFileID(ctx context.Context, tx pgx.Tx, userID int64, fileID *int64) error
}

type attachmentApplicationStore interface {
	GetByStudentAndJob(ctx context.Context, studentID, jobID int64) (*models.Application, error)
	SetOfferLetter(ctx context.Context, tx pgx.Tx, applicationID int64, fileID *int64) error
}

type attachmentFileStore interface {
	Create(ctx context.Context, tx pgx.Tx, file *models.File) error
	GetByID(ctx context.Context, id int64) (*models.File, error)
	Delete(ctx context.Context, tx pgx.Tx, id int64) error
}

// AttachmentService links uploaded artifacts to the records that own them.
// Every attach and detach couples the file row and the owning record's
// back-reference in one transaction, so neither side can dangle.
type AttachmentService interface {
	UploadProfilePhoto(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*dto.FileResponse, error)
	DeleteProfilePhoto(ctx context.Context, userID int64) error
	UploadResume(ctx context.Context, studentID int64, fileHeader *multipart.FileHeader) (*dto.FileResponse, error)
	DeleteResume(ctx context.Context, studentID int64) error
	AttachOfferLetter(ctx context.Context, studentID, jobID int64, fileHeader *multipart.FileHeader) (*dto.FileResponse, error)
	DetachOfferLetter(ctx context.Context, studentID, jobID int64) error
	GetFile(ctx context.Context, fileID int64) (*dto.FileResponse, error)
}

// attachmentServiceImpl implements AttachmentService
type attachmentServiceImpl struct {
	tx              txRunner
	userRepo        attachmentUserStore
	applicationRepo attachmentApplicationStore
	fileRepo        attachmentFileStore
	fileStorage     filestorage.FileStorage
	logger          zerolog.Logger
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(
	tx txRunner,
	userRepo attachmentUserStore,
	applicationRepo attachmentApplicationStore,
	fileRepo attachmentFileStore,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) AttachmentService {
	return &attachmentServiceImpl{
		tx:              tx,
		userRepo:        userRepo,
		applicationRepo: applicationRepo,
		fileRepo:        fileRepo,
		fileStorage:     fileStorage,
		logger:          logger,
	}
}

func validateUpload(fileHeader *multipart.FileHeader, kind models.FileKind) error {
	if fileHeader.Size > maxSizes[kind] {
		return apperrors.ErrFileTooLarge
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedMimeTypes[kind][contentType] {
		return apperrors.ErrUnsupportedFileType
	}
	return nil
}

// attach stores the artifact, then writes the file row and the owner's
// back-reference in one transaction via setRef. On rollback the stored
// artifact is removed again so disk and database stay in step.
func (s *attachmentServiceImpl) attach(
	ctx context.Context,
	ownerID int64,
	kind models.FileKind,
	subdir string,
	fileHeader *multipart.FileHeader,
	setRef func(tx pgx.Tx, fileID *int64) error,
) (*dto.FileResponse, error) {
	if err := validateUpload(fileHeader, kind); err != nil {
		return nil, err
	}

	fileURL, err := s.fileStorage.SaveFileWithPath(fileHeader, subdir)
	if err != nil {
		return nil, err
	}

	file := &models.File{
		FileName:   fileHeader.Filename,
		FileURL:    fileURL,
		FileSize:   fileHeader.Size,
		MimeType:   fileHeader.Header.Get("Content-Type"),
		Kind:       kind,
		UploadedBy: ownerID,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.fileRepo.Create(ctx, tx, file); err != nil {
			return err
		}
		return setRef(tx, &file.ID)
	})
	if err != nil {
		if cleanupErr := s.fileStorage.DeleteFile(fileURL); cleanupErr != nil {
			s.logger.Warn().Err(cleanupErr).Str("path", fileURL).Msg("Failed to remove artifact after rollback")
		}
		return nil, err
	}

	resp := dto.FromFile(file)
	return &resp, nil
}

// detach clears the owner's back-reference and deletes the file row in one
// transaction, then removes the artifact from storage. Detaching when no
// artifact is attached is a successful no-op.
func (s *attachmentServiceImpl) detach(
	ctx context.Context,
	fileID *int64,
	clearRef func(tx pgx.Tx) error,
) error {
	if fileID == nil {
		return nil
	}

	file, err := s.fileRepo.GetByID(ctx, *fileID)
	if err != nil {
		return err
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := clearRef(tx); err != nil {
			return err
		}
		return s.fileRepo.Delete(ctx, tx, *fileID)
	})
	if err != nil {
		return err
	}

	if err := s.fileStorage.DeleteFile(file.FileURL); err != nil {
		s.logger.Warn().Err(err).Str("path", file.FileURL).Msg("Failed to remove detached artifact from storage")
	}
	return nil
}

// UploadProfilePhoto attaches a profile photo to a user, replacing any
// existing one.
func (s *attachmentServiceImpl) UploadProfilePhoto(ctx context.Context, userID int64, fileHeader *multipart.FileHeader) (*dto.FileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.DeleteProfilePhoto(ctx, user.ID); err != nil {
		return nil, err
	}

	return s.attach(ctx, userID, models.FileKindProfilePhoto, "profile_photos", fileHeader, func(tx pgx.Tx, fileID *int64) error {
		return s.userRepo.UpdateProfilePhotoFileID(ctx, tx, userID, fileID)
	})
}

// DeleteProfilePhoto removes a user's profile photo, if any
func (s *attachmentServiceImpl) DeleteProfilePhoto(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.detach(ctx, user.ProfilePhotoFileID, func(tx pgx.Tx) error {
		return s.userRepo.UpdateProfilePhotoFileID(ctx, tx, userID, nil)
	})
}

// UploadResume attaches a resume to a student profile, replacing any
// existing one.
func (s *attachmentServiceImpl) UploadResume(ctx context.Context, studentID int64, fileHeader *multipart.FileHeader) (*dto.FileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if user.RoleType != models.RoleStudent || user.StudentProfile == nil {
		return nil, apperrors.ErrNotStudent
	}

	if err := s.DeleteResume(ctx, studentID); err != nil {
		return nil, err
	}

	return s.attach(ctx, studentID, models.FileKindResume, "resumes", fileHeader, func(tx pgx.Tx, fileID *int64) error {
		return s.userRepo.UpdateResumeFileID(ctx, tx, studentID, fileID)
	})
}

// DeleteResume removes a student's resume, if any
func (s *attachmentServiceImpl) DeleteResume(ctx context.Context, studentID int64) error {
	user, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if user.RoleType != models.RoleStudent || user.StudentProfile == nil {
		return apperrors.ErrNotStudent
	}
	return s.detach(ctx, user.StudentProfile.ResumeFileID, func(tx pgx.Tx) error {
		return s.userRepo.UpdateResumeFileID(ctx, tx, studentID, nil)
	})
}

// AttachOfferLetter stores an offer letter against an application,
// replacing any existing one.
func (s *attachmentServiceImpl) AttachOfferLetter(ctx context.Context, studentID, jobID int64, fileHeader *multipart.FileHeader) (*dto.FileResponse, error) {
	app, err := s.applicationRepo.GetByStudentAndJob(ctx, studentID, jobID)
	if err != nil {
		return nil, err
	}

	if app.OfferLetterFileID != nil {
		if err := s.detach(ctx, app.OfferLetterFileID, func(tx pgx.Tx) error {
			return s.applicationRepo.SetOfferLetter(ctx, tx, app.ID, nil)
		}); err != nil {
			return nil, err
		}
	}

	return s.attach(ctx, studentID, models.FileKindOfferLetter, "offer_letters", fileHeader, func(tx pgx.Tx, fileID *int64) error {
		return s.applicationRepo.SetOfferLetter(ctx, tx, app.ID, fileID)
	})
}

// DetachOfferLetter removes an application's offer letter. Calling it when
// no letter is attached succeeds, so retries after a timeout are safe.
func (s *attachmentServiceImpl) DetachOfferLetter(ctx context.Context, studentID, jobID int64) error {
	app, err := s.applicationRepo.GetByStudentAndJob(ctx, studentID, jobID)
	if err != nil {
		return err
	}
	return s.detach(ctx, app.OfferLetterFileID, func(tx pgx.Tx) error {
		return s.applicationRepo.SetOfferLetter(ctx, tx, app.ID, nil)
	})
}

// GetFile returns stored artifact metadata
func (s *attachmentServiceImpl) GetFile(ctx context.Context, fileID int64) (*dto.FileResponse, error) {
	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromFile(file)
	return &resp, nil
}
