package usecase

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/longles/Reddit-Downloader/internal/app/dedup"
	"github.com/longles/Reddit-Downloader/internal/app/events"
	mock_app "github.com/longles/Reddit-Downloader/internal/app/mocks"
	"github.com/longles/Reddit-Downloader/internal/app/models"
	"github.com/longles/Reddit-Downloader/internal/app/repository"
	"github.com/longles/Reddit-Downloader/internal/config"
	"github.com/longles/Reddit-Downloader/internal/utils/errs"
	"github.com/longles/Reddit-Downloader/internal/utils/logger"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	goleak.VerifyTestMain(m)
}

type fixture struct {
	usecase *ArchiveUsecase
	repo    *repository.JobRepository
	bus     *events.Bus
	lister  *mock_app.MockContentLister
	cfg     *config.Config
}

func newFixture(t *testing.T, ctrl *gomock.Controller, client *http.Client) *fixture {
	t.Helper()

	cfg := &config.Config{
		DownloadDir:            filepath.Join(t.TempDir(), "downloads"),
		UploadDir:              filepath.Join(t.TempDir(), "uploads"),
		DownloadLimit:          100,
		MaxConcurrentDownloads: 4,
		ChunkSize:              1024,
		ValidFormats:           map[string]bool{"jpg": true, "png": true, "mp4": true},
	}

	if client == nil {
		client = &http.Client{}
	}

	bus := events.CreateBus()
	t.Cleanup(bus.Close)

	repo := repository.CreateJobRepository()
	lister := mock_app.NewMockContentLister(ctrl)
	uc := CreateArchiveUsecase(repo, lister, bus, dedup.CreateEngine(cfg.ValidFormats), client, cfg)

	return &fixture{usecase: uc, repo: repo, bus: bus, lister: lister, cfg: cfg}
}

func newMediaServer(t *testing.T, files map[string][]byte) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Write(body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func writeUserFile(t *testing.T, names ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "users.txt")
	err := os.WriteFile(path, []byte(strings.Join(names, "\n")+"\n"), 0o644)
	assert.NoError(t, err)

	return path
}

func submission(id string, created time.Time, url string) models.Submission {
	return models.Submission{
		ID:      id,
		Title:   "post " + id,
		URL:     url,
		Created: created,
	}
}

// collectUntilTerminal drains the subscription until the job reaches a
// terminal status, returning everything observed including the terminal
// event itself.
func collectUntilTerminal(t *testing.T, ch <-chan models.Event) []models.Event {
	t.Helper()

	var got []models.Event
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-ch:
			got = append(got, ev)
			if ev.Type == models.EventJobUpdate {
				if payload, ok := ev.Payload.(models.JobUpdate); ok && payload.Status.IsTerminal() {
					return got
				}
			}
		case <-deadline:
			t.Fatal("timed out waiting for a terminal job event")
		}
	}
}

// waitPipelineDone blocks until the job's pipeline goroutine has shut down,
// so the test cannot finish while workers are still draining.
func waitPipelineDone(t *testing.T, u *ArchiveUsecase, jobID string) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		u.mu.Lock()
		_, running := u.cancels[jobID]
		u.mu.Unlock()
		if !running {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("pipeline for job %s did not shut down", jobID)
}

func jobStatuses(evs []models.Event) []models.JobStatus {
	var out []models.JobStatus
	for _, ev := range evs {
		if ev.Type == models.EventJobUpdate {
			out = append(out, ev.Payload.(models.JobUpdate).Status)
		}
	}
	return out
}

func downloadEvents(evs []models.Event, downloadID string) []models.DownloadProgress {
	var out []models.DownloadProgress
	for _, ev := range evs {
		if ev.Type != models.EventDownloadProgress {
			continue
		}
		payload := ev.Payload.(models.DownloadProgress)
		if payload.DownloadID == downloadID {
			out = append(out, payload)
		}
	}
	return out
}

func sweepEvents(evs []models.Event, username string) []models.DuplicateRemovalProgress {
	var out []models.DuplicateRemovalProgress
	for _, ev := range evs {
		if ev.Type != models.EventDuplicateRemovalProgress {
			continue
		}
		payload := ev.Payload.(models.DuplicateRemovalProgress)
		if payload.Username == username {
			out = append(out, payload)
		}
	}
	return out
}

func hasLogContaining(evs []models.Event, substr string) bool {
	for _, ev := range evs {
		if ev.Type != models.EventLogUpdate {
			continue
		}
		if strings.Contains(ev.Payload.(models.LogUpdate).Message, substr) {
			return true
		}
	}
	return false
}

func TestArchiveUsecase_SingleUserPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	body := bytes.Repeat([]byte("a"), 2048)
	srv := newMediaServer(t, map[string][]byte{"/media/photo.jpg": body})
	f := newFixture(t, ctrl, srv.Client())

	created := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	f.lister.EXPECT().
		ListSubmissions(gomock.Any(), "alice", 100).
		Return([]models.Submission{submission("abc", created, srv.URL+"/media/photo.jpg")}, nil)

	ch, unsubscribe := f.bus.Subscribe(256)
	defer unsubscribe()

	job, err := f.usecase.StartArchive(context.Background(), &models.StartArchiveRequest{
		InputMode: models.InputModeSingle,
		Username:  "alice",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.JobStatusRunning, job.Status)
	assert.Equal(t, 1, job.TotalUsers)

	got := collectUntilTerminal(t, ch)
	waitPipelineDone(t, f.usecase, job.ID)

	data, err := os.ReadFile(filepath.Join(f.cfg.DownloadDir, "alice", "2024-05-10-abc.jpg"))
	assert.NoError(t, err)
	assert.Equal(t, body, data)
	_, err = os.Stat(filepath.Join(f.cfg.DownloadDir, "alice", "archive_info.txt"))
	assert.NoError(t, err)

	final, err := f.usecase.GetJob(context.Background(), job.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, final.Status)
	assert.Equal(t, 1, final.ProcessedUsers)
	assert.False(t, final.EndTime.IsZero())

	downloads, err := f.usecase.GetJobDownloads(context.Background(), job.ID)
	assert.NoError(t, err)
	assert.Len(t, downloads, 1)
	assert.Equal(t, "alice/2024-05-10-abc.jpg", downloads[0].ID)
	assert.Equal(t, models.DownloadStatusCompleted, downloads[0].Status)
	assert.Equal(t, int64(2048), downloads[0].CurrentBytes)
	assert.Equal(t, int64(2048), downloads[0].TotalBytes)

	sweeps, err := f.repo.GetJobSweeps(context.Background(), job.ID)
	assert.NoError(t, err)
	assert.Len(t, sweeps, 1)
	assert.Equal(t, models.SweepStatusCompleted, sweeps[0].Status)
	assert.Equal(t, 1, sweeps[0].FilesScanned)
	assert.Equal(t, 0, sweeps[0].DuplicatesRemoved)

	statuses := jobStatuses(got)
	assert.Equal(t, models.JobStatusQueued, statuses[0])
	assert.Equal(t, models.JobStatusRunning, statuses[1])
	assert.Equal(t, models.JobStatusCompleted, statuses[len(statuses)-1])

	// One started event, progress only in between, one terminal at the end.
	seq := downloadEvents(got, "alice/2024-05-10-abc.jpg")
	assert.GreaterOrEqual(t, len(seq), 3)
	assert.Equal(t, models.DownloadStatusStarted, seq[0].Status)
	assert.Equal(t, int64(0), seq[1].CurrentBytes)
	assert.Equal(t, int64(2048), seq[1].TotalBytes)
	for _, p := range seq[1 : len(seq)-1] {
		assert.Equal(t, models.DownloadStatusProgress, p.Status)
	}
	assert.Equal(t, models.DownloadStatusCompleted, seq[len(seq)-1].Status)
	assert.Equal(t, int64(2048), seq[len(seq)-1].CurrentBytes)

	sweepSeq := sweepEvents(got, "alice")
	assert.NotEmpty(t, sweepSeq)
	assert.Equal(t, models.SweepStatusRunning, sweepSeq[0].Status)
	assert.Equal(t, models.SweepStatusCompleted, sweepSeq[len(sweepSeq)-1].Status)
}

func TestArchiveUsecase_AppliesConfiguredDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, nil)

	f.lister.EXPECT().
		ListSubmissions(gomock.Any(), "alice", f.cfg.DownloadLimit).
		Return(nil, nil)

	ch, unsubscribe := f.bus.Subscribe(256)
	defer unsubscribe()

	job, err := f.usecase.StartArchive(context.Background(), &models.StartArchiveRequest{
		InputMode: models.InputModeSingle,
		Username:  "alice",
	})
	assert.NoError(t, err)
	assert.Equal(t, f.cfg.DownloadLimit, job.Limit)
	assert.Equal(t, f.cfg.MaxConcurrentDownloads, job.Concurrency)

	collectUntilTerminal(t, ch)
	waitPipelineDone(t, f.usecase, job.ID)

	final, err := f.usecase.GetJob(context.Background(), job.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, final.Status)
	assert.Equal(t, 1, final.ProcessedUsers)
}

func TestArchiveUsecase_StartArchive_InvalidInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, nil)

	tests := []struct {
		name string
		req  *models.StartArchiveRequest
	}{
		{
			name: "unknown input mode",
			req:  &models.StartArchiveRequest{InputMode: "carrier pigeon"},
		},
		{
			name: "empty username",
			req:  &models.StartArchiveRequest{InputMode: models.InputModeSingle},
		},
		{
			name: "malformed username",
			req:  &models.StartArchiveRequest{InputMode: models.InputModeSingle, Username: "no spaces allowed"},
		},
		{
			name: "negative limit",
			req:  &models.StartArchiveRequest{InputMode: models.InputModeSingle, Username: "alice", Limit: -5},
		},
		{
			name: "negative concurrency",
			req:  &models.StartArchiveRequest{InputMode: models.InputModeSingle, Username: "alice", Concurrency: -1},
		},
		{
			name: "file mode without filepath",
			req:  &models.StartArchiveRequest{InputMode: models.InputModeFile},
		},
		{
			name: "file mode with missing file",
			req:  &models.StartArchiveRequest{InputMode: models.InputModeFile, Filepath: filepath.Join(t.TempDir(), "missing.txt")},
		},
		{
			name: "folders mode with no archive folders",
			req:  &models.StartArchiveRequest{InputMode: models.InputModeFolders},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			job, err := f.usecase.StartArchive(context.Background(), tt.req)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
			assert.Nil(t, job)
		})
	}

	jobs, err := f.usecase.GetAllJobs(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestArchiveUsecase_UserNotFoundDoesNotFailBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	body := []byte("bob's only photo")
	srv := newMediaServer(t, map[string][]byte{"/media/photo.jpg": body})
	f := newFixture(t, ctrl, srv.Client())

	created := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	f.lister.EXPECT().
		ListSubmissions(gomock.Any(), "alice", 100).
		Return(nil, fmt.Errorf("%w: u/alice", errs.ErrUserNotFound))
	f.lister.EXPECT().
		ListSubmissions(gomock.Any(), "bob", 100).
		Return([]models.Submission{submission("xyz", created, srv.URL+"/media/photo.jpg")}, nil)

	ch, unsubscribe := f.bus.Subscribe(256)
	defer unsubscribe()

	job, err := f.usecase.StartArchive(context.Background(), &models.StartArchiveRequest{
		InputMode: models.InputModeFile,
		Filepath:  writeUserFile(t, "alice", "bob"),
	})
	assert.NoError(t, err)

	got := collectUntilTerminal(t, ch)
	waitPipelineDone(t, f.usecase, job.ID)

	final, err := f.usecase.GetJob(context.Background(), job.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, final.Status)
	assert.Equal(t, 2, final.ProcessedUsers)
	assert.Empty(t, final.Error)

	downloads, err := f.usecase.GetJobDownloads(context.Background(), job.ID)
	assert.NoError(t, err)
	assert.Len(t, downloads, 1)
	assert.Equal(t, "bob", downloads[0].Username)

	assert.True(t, hasLogContaining(got, "Failed to list submissions for u/alice"))
}

func TestArchiveUsecase_AllUsersFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, nil)

	f.lister.EXPECT().
		ListSubmissions(gomock.Any(), "ghost", 100).
		Return(nil, fmt.Errorf("%w: u/ghost", errs.ErrUserNotFound))

	ch, unsubscribe := f.bus.Subscribe(256)
	defer unsubscribe()

	job, err := f.usecase.StartArchive(context.Background(), &models.StartArchiveRequest{
		InputMode: models.InputModeSingle,
		Username:  "ghost",
	})
	assert.NoError(t, err)

	got := collectUntilTerminal(t, ch)
	waitPipelineDone(t, f.usecase, job.ID)

	final, err := f.usecase.GetJob(context.Background(), job.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.JobStatusFailed, final.Status)
	assert.Equal(t, "all users failed", final.Error)
	assert.Equal(t, 1, final.ProcessedUsers)

	statuses := jobStatuses(got)
	assert.Equal(t, models.JobStatusFailed, statuses[len(statuses)-1])
}

func TestArchiveUsecase_StopBeforeWorkCancels(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, nil)

	entered := make(chan struct{})
	f.lister.EXPECT().
		ListSubmissions(gomock.Any(), "alice", 100).
		DoAndReturn(func(ctx context.Context, username string, limit int) ([]models.Submission, error) {
			close(entered)
			<-ctx.Done()
			return nil, ctx.Err()
		})

	ch, unsubscribe := f.bus.Subscribe(256)
	defer unsubscribe()

	job, err := f.usecase.StartArchive(context.Background(), &models.StartArchiveRequest{
		InputMode: models.InputModeSingle,
		Username:  "alice",
	})
	assert.NoError(t, err)

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("listing never started")
	}

	stopped, err := f.usecase.StopArchive(context.Background(), job.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.JobStatusStopping, stopped.Status)
	assert.True(t, stopped.CancelRequested)

	got := collectUntilTerminal(t, ch)
	waitPipelineDone(t, f.usecase, job.ID)

	final, err := f.usecase.GetJob(context.Background(), job.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.JobStatusCanceled, final.Status)
	assert.Equal(t, 0, final.ProcessedUsers)

	assert.Equal(t, []models.JobStatus{
		models.JobStatusQueued,
		models.JobStatusRunning,
		models.JobStatusStopping,
		models.JobStatusCanceled,
	}, jobStatuses(got))

	for _, ev := range got {
		assert.NotEqual(t, models.EventDownloadProgress, ev.Type)
		assert.NotEqual(t, models.EventDuplicateRemovalProgress, ev.Type)
	}
}

func TestArchiveUsecase_StopMidJobKeepsProcessedCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, nil)

	f.lister.EXPECT().
		ListSubmissions(gomock.Any(), "alice", 100).
		Return(nil, nil)

	bobEntered := make(chan struct{})
	f.lister.EXPECT().
		ListSubmissions(gomock.Any(), "bob", 100).
		DoAndReturn(func(ctx context.Context, username string, limit int) ([]models.Submission, error) {
			close(bobEntered)
			<-ctx.Done()
			return nil, ctx.Err()
		})

	ch, unsubscribe := f.bus.Subscribe(256)
	defer unsubscribe()

	job, err := f.usecase.StartArchive(context.Background(), &models.StartArchiveRequest{
		InputMode: models.InputModeFile,
		Filepath:  writeUserFile(t, "alice", "bob"),
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, job.TotalUsers)

	select {
	case <-bobEntered:
	case <-time.After(5 * time.Second):
		t.Fatal("second user's listing never started")
	}

	_, err = f.usecase.StopArchive(context.Background(), job.ID)
	assert.NoError(t, err)

	got := collectUntilTerminal(t, ch)
	waitPipelineDone(t, f.usecase, job.ID)

	// The first user finished before the stop and stays counted; the second
	// was interrupted mid-listing and does not.
	final, err := f.usecase.GetJob(context.Background(), job.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.JobStatusCanceled, final.Status)
	assert.Equal(t, 1, final.ProcessedUsers)
	assert.Equal(t, 2, final.TotalUsers)

	statuses := jobStatuses(got)
	assert.Contains(t, statuses, models.JobStatusStopping)
	assert.Equal(t, models.JobStatusCanceled, statuses[len(statuses)-1])
}

func TestArchiveUsecase_StopArchive_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, nil)

	_, err := f.usecase.StopArchive(context.Background(), "no-such-job")
	assert.ErrorIs(t, err, errs.ErrJobNotFound)

	f.lister.EXPECT().
		ListSubmissions(gomock.Any(), "alice", 100).
		Return(nil, nil)

	ch, unsubscribe := f.bus.Subscribe(256)
	defer unsubscribe()

	job, err := f.usecase.StartArchive(context.Background(), &models.StartArchiveRequest{
		InputMode: models.InputModeSingle,
		Username:  "alice",
	})
	assert.NoError(t, err)

	collectUntilTerminal(t, ch)
	waitPipelineDone(t, f.usecase, job.ID)

	_, err = f.usecase.StopArchive(context.Background(), job.ID)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestArchiveUsecase_SweepRemovesDuplicateContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	body := bytes.Repeat([]byte("same bytes"), 100)
	srv := newMediaServer(t, map[string][]byte{
		"/media/one.jpg": body,
		"/media/two.jpg": body,
	})
	f := newFixture(t, ctrl, srv.Client())

	f.lister.EXPECT().
		ListSubmissions(gomock.Any(), "alice", 100).
		Return([]models.Submission{
			submission("aaa", time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), srv.URL+"/media/one.jpg"),
			submission("bbb", time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC), srv.URL+"/media/two.jpg"),
		}, nil)

	ch, unsubscribe := f.bus.Subscribe(256)
	defer unsubscribe()

	job, err := f.usecase.StartArchive(context.Background(), &models.StartArchiveRequest{
		InputMode: models.InputModeSingle,
		Username:  "alice",
	})
	assert.NoError(t, err)

	got := collectUntilTerminal(t, ch)
	waitPipelineDone(t, f.usecase, job.ID)

	folder := filepath.Join(f.cfg.DownloadDir, "alice")
	_, err = os.Stat(filepath.Join(folder, "2024-05-10-aaa.jpg"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(folder, "2024-05-11-bbb.jpg"))
	assert.True(t, os.IsNotExist(err))

	info, err := os.ReadFile(filepath.Join(folder, "archive_info.txt"))
	assert.NoError(t, err)
	assert.Contains(t, string(info), "Total submissions processed: 2")
	assert.Contains(t, string(info), "Latest submission ID: aaa")
	assert.Contains(t, string(info), "Duplicate files removed: 1")

	sweepSeq := sweepEvents(got, "alice")
	assert.NotEmpty(t, sweepSeq)
	last := sweepSeq[len(sweepSeq)-1]
	assert.Equal(t, models.SweepStatusCompleted, last.Status)
	assert.Equal(t, 2, last.FilesScanned)
	assert.Equal(t, 1, last.DuplicatesFound)
	assert.Equal(t, 1, last.DuplicatesRemoved)

	assert.True(t, hasLogContaining(got, "1 removed"))

	final, err := f.usecase.GetJob(context.Background(), job.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, final.Status)
}

func TestArchiveUsecase_SaveUserFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, nil)

	users, path, err := f.usecase.SaveUserFile(context.Background(),
		strings.NewReader("alice\n\nbob\nbad name!\nalice\n"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, users)
	assert.Equal(t, f.cfg.UploadDir, filepath.Dir(path))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "alice")
}

func TestArchiveUsecase_SaveUserFile_NoValidUsernames(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, nil)

	users, path, err := f.usecase.SaveUserFile(context.Background(),
		strings.NewReader("bad name!\n\n"))
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.Nil(t, users)
	assert.Empty(t, path)

	// The rejected upload is not left behind.
	entries, err := os.ReadDir(f.cfg.UploadDir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestArchiveUsecase_ListArchivedUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(t, ctrl, nil)

	users, err := f.usecase.ListArchivedUsers(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, users)

	assert.NoError(t, os.MkdirAll(filepath.Join(f.cfg.DownloadDir, "zeta"), 0o755))
	assert.NoError(t, os.MkdirAll(filepath.Join(f.cfg.DownloadDir, "alpha"), 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(f.cfg.DownloadDir, "notes.txt"), []byte("x"), 0o644))

	users, err = f.usecase.ListArchivedUsers(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, users)
}

func TestArchiveUsecase_GetJob(t *testing.T) {
	tests := []struct {
		name        string
		jobID       string
		mockSetup   func(*mock_app.MockJobRepository)
		expectedJob *models.Job
		expectedErr error
	}{
		{
			name:  "success",
			jobID: "job-1",
			mockSetup: func(repo *mock_app.MockJobRepository) {
				repo.EXPECT().
					GetJob(gomock.Any(), "job-1").
					Return(&models.Job{ID: "job-1", Status: models.JobStatusCompleted}, nil)
			},
			expectedJob: &models.Job{ID: "job-1", Status: models.JobStatusCompleted},
		},
		{
			name:  "not found",
			jobID: "missing",
			mockSetup: func(repo *mock_app.MockJobRepository) {
				repo.EXPECT().
					GetJob(gomock.Any(), "missing").
					Return(nil, errs.ErrJobNotFound)
			},
			expectedErr: errs.ErrJobNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mock_app.NewMockJobRepository(ctrl)
			tt.mockSetup(mockRepo)

			uc := CreateArchiveUsecase(mockRepo, nil, events.CreateBus(), nil, nil, &config.Config{})
			job, err := uc.GetJob(context.Background(), tt.jobID)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, job)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedJob, job)
		})
	}
}

func TestArchiveUsecase_GetAllJobs(t *testing.T) {
	tests := []struct {
		name         string
		mockSetup    func(*mock_app.MockJobRepository)
		expectedJobs []*models.Job
		expectedErr  error
	}{
		{
			name: "success",
			mockSetup: func(repo *mock_app.MockJobRepository) {
				repo.EXPECT().
					GetAllJobs(gomock.Any()).
					Return([]*models.Job{{ID: "job-2"}, {ID: "job-1"}}, nil)
			},
			expectedJobs: []*models.Job{{ID: "job-2"}, {ID: "job-1"}},
		},
		{
			name: "repository error",
			mockSetup: func(repo *mock_app.MockJobRepository) {
				repo.EXPECT().
					GetAllJobs(gomock.Any()).
					Return(nil, assert.AnError)
			},
			expectedErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mock_app.NewMockJobRepository(ctrl)
			tt.mockSetup(mockRepo)

			uc := CreateArchiveUsecase(mockRepo, nil, events.CreateBus(), nil, nil, &config.Config{})
			jobs, err := uc.GetAllJobs(context.Background())
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, jobs)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedJobs, jobs)
		})
	}
}

func TestArchiveUsecase_GetJobDownloads(t *testing.T) {
	tests := []struct {
		name        string
		jobID       string
		mockSetup   func(*mock_app.MockJobRepository)
		expectedLen int
		expectedErr error
	}{
		{
			name:  "success",
			jobID: "job-1",
			mockSetup: func(repo *mock_app.MockJobRepository) {
				repo.EXPECT().
					GetJobDownloads(gomock.Any(), "job-1").
					Return([]*models.Download{{ID: "alice/a.jpg"}, {ID: "alice/b.jpg"}}, nil)
			},
			expectedLen: 2,
		},
		{
			name:  "job not found",
			jobID: "missing",
			mockSetup: func(repo *mock_app.MockJobRepository) {
				repo.EXPECT().
					GetJobDownloads(gomock.Any(), "missing").
					Return(nil, errs.ErrJobNotFound)
			},
			expectedErr: errs.ErrJobNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mock_app.NewMockJobRepository(ctrl)
			tt.mockSetup(mockRepo)

			uc := CreateArchiveUsecase(mockRepo, nil, events.CreateBus(), nil, nil, &config.Config{})
			downloads, err := uc.GetJobDownloads(context.Background(), tt.jobID)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, downloads)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, downloads, tt.expectedLen)
		})
	}
}
