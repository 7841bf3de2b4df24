package usecase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/longles/Reddit-Downloader/internal/app"
	"github.com/longles/Reddit-Downloader/internal/app/dedup"
	"github.com/longles/Reddit-Downloader/internal/app/downloader"
	"github.com/longles/Reddit-Downloader/internal/app/models"
	"github.com/longles/Reddit-Downloader/internal/config"
	"github.com/longles/Reddit-Downloader/internal/utils/errs"
	"github.com/longles/Reddit-Downloader/internal/utils/logger"
	"github.com/longles/Reddit-Downloader/internal/utils/userlist"
	"github.com/longles/Reddit-Downloader/internal/utils/validate"
)

const archiveInfoFilename = "archive_info.txt"

// ArchiveUsecase orchestrates archive jobs: it resolves usernames, runs the
// per-user download pipeline under a bounded worker pool, sweeps each user's
// folder for duplicates once their downloads settle, and keeps the registry
// and event bus in sync at every transition.
type ArchiveUsecase struct {
	jobRepository app.JobRepository
	lister        app.ContentLister
	bus           app.EventBus
	deduper       *dedup.Engine
	client        *http.Client
	cfg           *config.Config

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

func CreateArchiveUsecase(
	jobRepository app.JobRepository,
	lister app.ContentLister,
	bus app.EventBus,
	deduper *dedup.Engine,
	client *http.Client,
	cfg *config.Config,
) *ArchiveUsecase {
	return &ArchiveUsecase{
		jobRepository: jobRepository,
		lister:        lister,
		bus:           bus,
		deduper:       deduper,
		client:        client,
		cfg:           cfg,
		cancels:       make(map[string]context.CancelFunc),
	}
}

// StartArchive creates a job for the request, transitions it to running and
// launches its pipeline in the background. The returned snapshot reflects
// the running state.
func (u *ArchiveUsecase) StartArchive(ctx context.Context, req *models.StartArchiveRequest) (*models.Job, error) {
	const funcName = "ArchiveUsecase.StartArchive"
	logger.Debug("starting archive job",
		zap.String("function", funcName),
		zap.String("input_mode", string(req.InputMode)),
	)

	limit := req.Limit
	if limit == 0 {
		limit = u.cfg.DownloadLimit
	}
	concurrency := req.Concurrency
	if concurrency == 0 {
		concurrency = u.cfg.MaxConcurrentDownloads
	}

	if err := validate.ValidateJobParams(limit, concurrency); err != nil {
		logger.Error("invalid job parameters",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return nil, err
	}

	usernames, err := u.resolveUsernames(req)
	if err != nil {
		logger.Error("failed to resolve usernames",
			zap.String("function", funcName),
			zap.String("input_mode", string(req.InputMode)),
			zap.Error(err),
		)
		return nil, err
	}
	if len(usernames) == 0 {
		return nil, fmt.Errorf("%w: no usernames resolved", errs.ErrInvalidInput)
	}

	job := &models.Job{
		ID:          uuid.NewString(),
		Status:      models.JobStatusQueued,
		InputMode:   req.InputMode,
		Usernames:   usernames,
		TotalUsers:  len(usernames),
		Limit:       limit,
		Concurrency: concurrency,
	}

	created, err := u.jobRepository.CreateJob(ctx, job)
	if err != nil {
		logger.Error("failed to create job",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return nil, err
	}
	u.bus.Publish(models.NewJobUpdateEvent(created))

	started, err := u.jobRepository.StartJob(ctx, created.ID)
	if err != nil {
		logger.Error("failed to start job",
			zap.String("function", funcName),
			zap.String("job_id", created.ID),
			zap.Error(err),
		)
		return nil, err
	}
	u.bus.Publish(models.NewJobUpdateEvent(started))
	u.publishLog(started.ID, fmt.Sprintf("Archive job started for %d user(s)", started.TotalUsers))

	// The pipeline outlives the HTTP request, so its context derives from
	// the process, not from ctx. Registering the cancel func before the
	// goroutine launches keeps a stop request from slipping between the
	// two.
	jobCtx, cancel := context.WithCancel(context.Background())
	u.registerCancel(started.ID, cancel)
	go u.runJob(jobCtx, cancel, started.ID, usernames, limit, concurrency)

	return started, nil
}

// StopArchive requests cancellation of a running job. In-flight downloads
// abort at their next chunk boundary; queued ones are dropped.
func (u *ArchiveUsecase) StopArchive(ctx context.Context, jobID string) (*models.Job, error) {
	const funcName = "ArchiveUsecase.StopArchive"
	logger.Debug("stopping archive job",
		zap.String("function", funcName),
		zap.String("job_id", jobID),
	)

	job, err := u.jobRepository.RequestStop(ctx, jobID)
	if err != nil {
		logger.Error("failed to request stop",
			zap.String("function", funcName),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return nil, err
	}

	u.bus.Publish(models.NewJobUpdateEvent(job))
	u.publishLog(jobID, "Stop requested, waiting for in-flight work to drain")
	u.cancelJob(jobID)

	return job, nil
}

func (u *ArchiveUsecase) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	const funcName = "ArchiveUsecase.GetJob"

	job, err := u.jobRepository.GetJob(ctx, jobID)
	if err != nil {
		logger.Error("failed to get job",
			zap.String("function", funcName),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return nil, err
	}

	return job, nil
}

func (u *ArchiveUsecase) GetAllJobs(ctx context.Context) ([]*models.Job, error) {
	const funcName = "ArchiveUsecase.GetAllJobs"

	jobs, err := u.jobRepository.GetAllJobs(ctx)
	if err != nil {
		logger.Error("failed to get all jobs",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return nil, err
	}

	return jobs, nil
}

func (u *ArchiveUsecase) GetJobDownloads(ctx context.Context, jobID string) ([]*models.Download, error) {
	const funcName = "ArchiveUsecase.GetJobDownloads"

	downloads, err := u.jobRepository.GetJobDownloads(ctx, jobID)
	if err != nil {
		logger.Error("failed to get job downloads",
			zap.String("function", funcName),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return nil, err
	}

	return downloads, nil
}

// ListArchivedUsers returns the usernames that already have archive folders
// on disk.
func (u *ArchiveUsecase) ListArchivedUsers(ctx context.Context) ([]string, error) {
	const funcName = "ArchiveUsecase.ListArchivedUsers"

	users, err := userlist.FromFolders(u.cfg.DownloadDir)
	if err != nil {
		logger.Error("failed to list archived users",
			zap.String("function", funcName),
			zap.String("download_dir", u.cfg.DownloadDir),
			zap.Error(err),
		)
		return nil, err
	}

	return users, nil
}

// SaveUserFile stores an uploaded username list and returns the parsed
// usernames together with the stored path, which a later start request can
// reference.
func (u *ArchiveUsecase) SaveUserFile(ctx context.Context, src io.Reader) ([]string, string, error) {
	const funcName = "ArchiveUsecase.SaveUserFile"

	if err := os.MkdirAll(u.cfg.UploadDir, 0o755); err != nil {
		logger.Error("failed to create upload directory",
			zap.String("function", funcName),
			zap.String("upload_dir", u.cfg.UploadDir),
			zap.Error(err),
		)
		return nil, "", fmt.Errorf("create upload directory: %w", err)
	}

	path := filepath.Join(u.cfg.UploadDir, fmt.Sprintf("users_%d.txt", time.Now().UnixNano()))
	dst, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("create user file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return nil, "", fmt.Errorf("write user file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return nil, "", fmt.Errorf("close user file: %w", err)
	}

	users, err := userlist.FromFile(path)
	if err != nil {
		return nil, "", err
	}
	if len(users) == 0 {
		os.Remove(path)
		return nil, "", fmt.Errorf("%w: uploaded file contains no valid usernames", errs.ErrInvalidInput)
	}

	logger.Info("stored user file",
		zap.String("function", funcName),
		zap.String("path", path),
		zap.Int("users", len(users)),
	)
	return users, path, nil
}

func (u *ArchiveUsecase) resolveUsernames(req *models.StartArchiveRequest) ([]string, error) {
	switch req.InputMode {
	case models.InputModeSingle:
		if err := validate.ValidateUsername(req.Username); err != nil {
			return nil, err
		}
		return []string{req.Username}, nil
	case models.InputModeFile:
		if req.Filepath == "" {
			return nil, fmt.Errorf("%w: filepath is required for file input", errs.ErrInvalidInput)
		}
		users, err := userlist.FromFile(req.Filepath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidInput, err)
		}
		return users, nil
	case models.InputModeFolders:
		return userlist.FromFolders(u.cfg.DownloadDir)
	default:
		return nil, fmt.Errorf("%w: unknown input mode %q", errs.ErrInvalidInput, req.InputMode)
	}
}

// runJob drives one job to a terminal state: users are archived strictly in
// order, each followed by its duplicate sweep, with the registry updated and
// an event published before and after every transition.
func (u *ArchiveUsecase) runJob(ctx context.Context, cancel context.CancelFunc, jobID string, usernames []string, limit, concurrency int) {
	const funcName = "ArchiveUsecase.runJob"
	logger.Info("job pipeline started",
		zap.String("function", funcName),
		zap.String("job_id", jobID),
		zap.Int("total_users", len(usernames)),
	)

	defer cancel()
	defer u.dropCancel(jobID)

	pool := downloader.CreatePool(u.client, downloader.Options{
		Concurrency:  concurrency,
		ChunkSize:    u.cfg.ChunkSize,
		ValidFormats: u.cfg.ValidFormats,
		DownloadDir:  u.cfg.DownloadDir,
	}, &poolReporter{usecase: u})
	defer pool.Close()

	successes, failures := 0, 0
	for _, username := range usernames {
		if ctx.Err() != nil {
			break
		}

		err := u.archiveUser(ctx, pool, jobID, username, limit)
		if err != nil && ctx.Err() != nil {
			// Interrupted mid-user: the username never reached a
			// terminal state and must not count as processed.
			break
		}
		if err != nil {
			failures++
		} else {
			successes++
		}

		job, incErr := u.jobRepository.IncrementProcessedUsers(context.Background(), jobID)
		if incErr != nil {
			logger.Error("failed to increment processed users",
				zap.String("function", funcName),
				zap.String("job_id", jobID),
				zap.Error(incErr),
			)
			continue
		}
		u.bus.Publish(models.NewJobUpdateEvent(job))
	}

	u.finishJob(jobID, successes, failures)
}

// archiveUser runs one username's pipeline: list, download everything, then
// sweep the folder. A context error return means the pipeline was
// interrupted and the username did not finish processing; any other error
// marks the username as failed.
func (u *ArchiveUsecase) archiveUser(ctx context.Context, pool *downloader.Pool, jobID, username string, limit int) error {
	const funcName = "ArchiveUsecase.archiveUser"

	u.publishLog(jobID, fmt.Sprintf("Archiving u/%s", username))

	submissions, err := u.lister.ListSubmissions(ctx, username, limit)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("failed to list submissions",
			zap.String("function", funcName),
			zap.String("job_id", jobID),
			zap.String("username", username),
			zap.Error(err),
		)
		u.publishLog(jobID, fmt.Sprintf("Failed to list submissions for u/%s: %v", username, err))
		return err
	}

	if len(submissions) == 0 {
		u.publishLog(jobID, fmt.Sprintf("No submissions found for u/%s", username))
		return nil
	}

	folder := filepath.Join(u.cfg.DownloadDir, username)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		u.publishLog(jobID, fmt.Sprintf("Failed to create archive folder for u/%s: %v", username, err))
		return fmt.Errorf("create archive folder: %w", err)
	}

	handles := make([]*downloader.Handle, 0, len(submissions))
	for _, sub := range submissions {
		for _, spec := range buildSpecs(jobID, username, sub) {
			h, err := pool.Submit(ctx, spec)
			if err != nil {
				logger.Error("failed to submit download",
					zap.String("function", funcName),
					zap.String("job_id", jobID),
					zap.Error(err),
				)
				continue
			}
			handles = append(handles, h)
		}
	}

	var completed, failed, skipped int
	for _, h := range handles {
		<-h.Done()
		switch h.Outcome() {
		case downloader.OutcomeCompleted:
			completed++
		case downloader.OutcomeFailed:
			failed++
		case downloader.OutcomeSkipped:
			skipped++
		}
	}
	u.publishLog(jobID, fmt.Sprintf("Downloads for u/%s: %d completed, %d failed, %d skipped",
		username, completed, failed, skipped))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return u.sweepUser(ctx, jobID, username, folder, submissions)
}

// sweepUser removes duplicates from one user's folder once their downloads
// have settled. Sweep failures are reported but do not fail the username.
func (u *ArchiveUsecase) sweepUser(ctx context.Context, jobID, username, folder string, submissions []models.Submission) error {
	const funcName = "ArchiveUsecase.sweepUser"

	sweep, err := u.jobRepository.CreateSweep(context.Background(), jobID, username)
	if err != nil {
		logger.Error("failed to create sweep record",
			zap.String("function", funcName),
			zap.String("job_id", jobID),
			zap.String("username", username),
			zap.Error(err),
		)
		return nil
	}
	u.bus.Publish(models.NewDuplicateRemovalEvent(sweep))

	var final models.SweepProgress
	sweepErr := u.deduper.Sweep(ctx, folder, func(p models.SweepProgress) {
		final = p
		snapshot, updateErr := u.jobRepository.UpdateSweep(context.Background(), jobID, username, p)
		if updateErr != nil {
			logger.Warn("failed to update sweep record",
				zap.String("function", funcName),
				zap.String("job_id", jobID),
				zap.String("username", username),
				zap.Error(updateErr),
			)
			return
		}
		u.bus.Publish(models.NewDuplicateRemovalEvent(snapshot))
	})

	if sweepErr != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		u.publishLog(jobID, fmt.Sprintf("Duplicate removal failed for u/%s: %v", username, sweepErr))
		return nil
	}

	u.publishLog(jobID, fmt.Sprintf("Duplicate removal for u/%s: %d removed", username, final.DuplicatesRemoved))
	u.writeArchiveInfo(folder, submissions, final.DuplicatesRemoved)
	return nil
}

// finishJob computes and records the aggregate outcome. One bad username
// never sinks an otherwise successful batch: the job fails only when no
// username succeeded.
func (u *ArchiveUsecase) finishJob(jobID string, successes, failures int) {
	const funcName = "ArchiveUsecase.finishJob"

	job, err := u.jobRepository.GetJob(context.Background(), jobID)
	if err != nil {
		logger.Error("failed to get job for completion",
			zap.String("function", funcName),
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return
	}

	var status models.JobStatus
	var errMsg string
	switch {
	case job.CancelRequested && job.ProcessedUsers < job.TotalUsers:
		status = models.JobStatusCanceled
	case successes == 0 && failures > 0:
		status = models.JobStatusFailed
		errMsg = "all users failed"
	default:
		status = models.JobStatusCompleted
	}

	finished, err := u.jobRepository.FinishJob(context.Background(), jobID, status, errMsg)
	if err != nil {
		logger.Error("failed to finish job",
			zap.String("function", funcName),
			zap.String("job_id", jobID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return
	}

	u.publishLog(jobID, fmt.Sprintf("Archive job %s: %d user(s) succeeded, %d failed", status, successes, failures))
	u.bus.Publish(models.NewJobUpdateEvent(finished))

	logger.Info("job pipeline finished",
		zap.String("function", funcName),
		zap.String("job_id", jobID),
		zap.String("status", string(status)),
		zap.Int("successes", successes),
		zap.Int("failures", failures),
	)
}

// writeArchiveInfo drops a small metadata file next to the archived media
// once the sweep is done, so the duplicate count it records is final.
// Failures here never block the archive itself.
func (u *ArchiveUsecase) writeArchiveInfo(folder string, submissions []models.Submission, duplicatesRemoved int) {
	const funcName = "ArchiveUsecase.writeArchiveInfo"

	latest := "none"
	if len(submissions) > 0 {
		latest = submissions[0].ID
	}
	info := fmt.Sprintf("Archive created: %s\nTotal submissions processed: %d\nLatest submission ID: %s\nDuplicate files removed: %d\n",
		time.Now().UTC().Format(time.RFC3339), len(submissions), latest, duplicatesRemoved)
	if err := os.WriteFile(filepath.Join(folder, archiveInfoFilename), []byte(info), 0o644); err != nil {
		logger.Warn("failed to write archive info",
			zap.String("function", funcName),
			zap.String("folder", folder),
			zap.Error(err),
		)
	}
}

func (u *ArchiveUsecase) publishLog(jobID, message string) {
	u.bus.Publish(models.NewLogUpdateEvent(jobID, message))
}

func (u *ArchiveUsecase) registerCancel(jobID string, cancel context.CancelFunc) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.cancels[jobID] = cancel
}

func (u *ArchiveUsecase) dropCancel(jobID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.cancels, jobID)
}

func (u *ArchiveUsecase) cancelJob(jobID string) {
	u.mu.Lock()
	cancel := u.cancels[jobID]
	u.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// buildSpecs expands one submission into download specs. Gallery items are
// numbered from 1 in metadata-key order; every item keeps its number even if
// the pool later skips it, so filenames stay stable across runs.
func buildSpecs(jobID, username string, sub models.Submission) []downloader.Spec {
	if sub.IsGallery {
		specs := make([]downloader.Spec, 0, len(sub.MediaURLs))
		for idx, url := range sub.MediaURLs {
			specs = append(specs, downloader.Spec{
				JobID:    jobID,
				Username: username,
				Stem:     fmt.Sprintf("%s-%s-%d", sub.DateStr(), sub.ID, idx+1),
				URL:      url,
			})
		}
		return specs
	}

	return []downloader.Spec{{
		JobID:    jobID,
		Username: username,
		Stem:     fmt.Sprintf("%s-%s", sub.DateStr(), sub.ID),
		URL:      sub.URL,
	}}
}

// poolReporter maps worker pool callbacks onto registry mutations, then
// publishes the resulting snapshot, so status queries never trail the event
// stream.
type poolReporter struct {
	usecase *ArchiveUsecase
}

func (r *poolReporter) DownloadStarted(jobID, downloadID, username, filename, url string) {
	const funcName = "poolReporter.DownloadStarted"

	d, err := r.usecase.jobRepository.CreateDownload(context.Background(), &models.Download{
		ID:       downloadID,
		JobID:    jobID,
		Username: username,
		Filename: filename,
		URL:      url,
	})
	if err != nil {
		logger.Warn("failed to record download",
			zap.String("function", funcName),
			zap.String("download_id", downloadID),
			zap.Error(err),
		)
		return
	}
	r.usecase.bus.Publish(models.NewDownloadProgressEvent(d))
}

func (r *poolReporter) DownloadProgress(jobID, downloadID string, current, total int64) {
	const funcName = "poolReporter.DownloadProgress"

	d, err := r.usecase.jobRepository.UpdateDownloadProgress(context.Background(), jobID, downloadID, current, total)
	if err != nil {
		logger.Warn("failed to record download progress",
			zap.String("function", funcName),
			zap.String("download_id", downloadID),
			zap.Error(err),
		)
		return
	}
	r.usecase.bus.Publish(models.NewDownloadProgressEvent(d))
}

func (r *poolReporter) DownloadFinished(jobID, downloadID string, status models.DownloadStatus, bytes int64, errMsg string) {
	const funcName = "poolReporter.DownloadFinished"

	d, err := r.usecase.jobRepository.FinishDownload(context.Background(), jobID, downloadID, status, bytes, errMsg)
	if err != nil {
		logger.Warn("failed to record download completion",
			zap.String("function", funcName),
			zap.String("download_id", downloadID),
			zap.Error(err),
		)
		return
	}
	r.usecase.bus.Publish(models.NewDownloadProgressEvent(d))
}
