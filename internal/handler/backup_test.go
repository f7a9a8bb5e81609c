package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/config"
	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/domain"
	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/testutil"
	"github.com/duminga/Qwen3-14B-anamnesis-entry/internal/usecase"
)

func setupRouter(runs domain.BackupRunRepository) (*testutil.MockArchiver, *testutil.MockObjectStore, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	archiver := new(testutil.MockArchiver)
	store := new(testutil.MockObjectStore)

	uc := usecase.NewBackupUseCase(archiver, store, runs,
		config.BackupConfig{SourceDir: "model", WorkDir: "."}, "backup")

	h := New(uc)
	r := gin.New()
	api := r.Group("/api/v1/model-backup")
	h.RegisterRoutes(api)

	return archiver, store, r
}

func TestTriggerRun(t *testing.T) {
	archiver, store, r := setupRouter(nil)

	archiver.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(int64(42), nil)
	store.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	req, _ := http.NewRequest("POST", "/api/v1/model-backup/runs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var run domain.BackupRun
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	assert.Regexp(t, `^model-\d{8}-\d{6}\.zip$`, run.ArchiveName)
	assert.Equal(t, domain.RunStatusSucceeded, run.Status)
	assert.Equal(t, int64(42), run.SizeBytes)
}

func TestTriggerRun_UploadFailure(t *testing.T) {
	archiver, store, r := setupRouter(nil)

	archiver.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(int64(42), nil)
	store.On("Put", mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrUploadFailed)

	req, _ := http.NewRequest("POST", "/api/v1/model-backup/runs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestListRuns(t *testing.T) {
	runs := new(testutil.MockBackupRunRepo)
	_, _, r := setupRouter(runs)

	recorded := []*domain.BackupRun{
		{
			ID: uuid.New(), StartedAt: time.Now(), FinishedAt: time.Now(),
			SourceDir: "model", ArchiveName: "model-20250101-120000.zip",
			Bucket: "backup", Status: domain.RunStatusSucceeded,
		},
	}
	runs.On("List", mock.Anything, mock.AnythingOfType("domain.RunListFilter")).Return(recorded, 1, nil)

	req, _ := http.NewRequest("GET", "/api/v1/model-backup/runs?limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, float64(1), resp["total"])
}

func TestListRuns_CatalogDisabled(t *testing.T) {
	_, _, r := setupRouter(nil)

	req, _ := http.NewRequest("GET", "/api/v1/model-backup/runs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRun(t *testing.T) {
	runs := new(testutil.MockBackupRunRepo)
	_, _, r := setupRouter(runs)

	id := uuid.New()
	runs.On("GetByID", mock.Anything, id).Return(&domain.BackupRun{
		ID: id, ArchiveName: "model-20250101-120000.zip", Status: domain.RunStatusSucceeded,
	}, nil)

	req, _ := http.NewRequest("GET", "/api/v1/model-backup/runs/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetRun_NotFound(t *testing.T) {
	runs := new(testutil.MockBackupRunRepo)
	_, _, r := setupRouter(runs)

	id := uuid.New()
	runs.On("GetByID", mock.Anything, id).Return(nil, domain.ErrRunNotFound)

	req, _ := http.NewRequest("GET", "/api/v1/model-backup/runs/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRun_InvalidID(t *testing.T) {
	_, _, r := setupRouter(nil)

	req, _ := http.NewRequest("GET", "/api/v1/model-backup/runs/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListArchives(t *testing.T) {
	_, store, r := setupRouter(nil)

	store.On("List", mock.Anything).Return([]domain.RemoteArchive{
		{Name: "model-20250101-120000.zip", SizeBytes: 42, LastModified: time.Now()},
	}, nil)

	req, _ := http.NewRequest("GET", "/api/v1/model-backup/archives", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, float64(1), resp["total"])
}
