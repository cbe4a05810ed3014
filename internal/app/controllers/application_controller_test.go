package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placenet/placement-backend/internal/app/models/dto"
)

type stubApplicationService struct {
	listApplicantsJobID int64
	applicants          []dto.ApplicantResponse
}

func (s *stubApplicationService) Apply(_ context.Context, _, _ int64) (*dto.AppliedJobResponse, error) {
	return nil, nil
}

func (s *stubApplicationService) UpdateStatus(_ context.Context, _ *dto.UpdateApplicationStatusRequest) (*dto.AppliedJobResponse, error) {
	return nil, nil
}

func (s *stubApplicationService) ListApplicants(_ context.Context, jobID int64) ([]dto.ApplicantResponse, error) {
	s.listApplicantsJobID = jobID
	return s.applicants, nil
}

func (s *stubApplicationService) ListAppliedJobs(_ context.Context, _ int64) ([]dto.AppliedJobResponse, error) {
	return nil, nil
}

func (s *stubApplicationService) CheckConsistency(_ context.Context) (*dto.ConsistencyReport, error) {
	return nil, nil
}

func applicantListRouter(stub *stubApplicationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewApplicationController(stub, nil)

	router := gin.New()
	// Registered the same way as the route table: the applicant list nests
	// under the /jobs/:id wildcard shared with the single-job read
	router.GET("/api/v1/jobs/:id", func(*gin.Context) {})
	router.GET("/api/v1/jobs/:id/applicants", controller.ListApplicants)
	return router
}

func TestListApplicantsReadsJobIDFromRoute(t *testing.T) {
	stub := &stubApplicationService{
		applicants: []dto.ApplicantResponse{{StudentID: 1, Name: "Asha Rao"}},
	}
	router := applicantListRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/10/applicants", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(10), stub.listApplicantsJobID)
	assert.Contains(t, rec.Body.String(), "Asha Rao")
}

func TestListApplicantsRejectsNonNumericID(t *testing.T) {
	stub := &stubApplicationService{}
	router := applicantListRouter(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/abc/applicants", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, stub.listApplicantsJobID)
}
