package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/longles/Reddit-Downloader/internal/app/models"
	"github.com/longles/Reddit-Downloader/internal/utils/errs"
	"github.com/longles/Reddit-Downloader/internal/utils/logger"
	"go.uber.org/zap"
)

// JobRepository is the in-memory registry of jobs with their downloads and
// duplicate sweeps. It is the single source of truth for status: every
// mutation happens under the lock and every read hands out copies, so
// observers never alias live state.
type JobRepository struct {
	jobs          map[string]*models.Job
	jobOrder      []string
	downloads     map[string]map[string]*models.Download
	downloadOrder map[string][]string
	sweeps        map[string]map[string]*models.DuplicateSweep
	sweepOrder    map[string][]string
	mu            sync.Mutex
}

func CreateJobRepository() *JobRepository {
	return &JobRepository{
		jobs:          make(map[string]*models.Job),
		downloads:     make(map[string]map[string]*models.Download),
		downloadOrder: make(map[string][]string),
		sweeps:        make(map[string]map[string]*models.DuplicateSweep),
		sweepOrder:    make(map[string][]string),
	}
}

func (r *JobRepository) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	const funcName = "JobRepository.CreateJob"
	logger.Debug("attempting to create job",
		zap.String("function", funcName),
		zap.String("job_id", job.ID),
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[job.ID]; exists {
		return nil, fmt.Errorf("job %q already exists", job.ID)
	}

	stored := job.Clone()
	stored.CreatedAt = time.Now()
	r.jobs[stored.ID] = stored
	r.jobOrder = append(r.jobOrder, stored.ID)
	r.downloads[stored.ID] = make(map[string]*models.Download)
	r.sweeps[stored.ID] = make(map[string]*models.DuplicateSweep)

	logger.Info("job created",
		zap.String("function", funcName),
		zap.String("job_id", stored.ID),
		zap.Int("total_users", stored.TotalUsers),
		zap.String("status", string(stored.Status)),
	)

	return stored.Clone(), nil
}

func (r *JobRepository) GetJob(ctx context.Context, id string) (*models.Job, error) {
	const funcName = "JobRepository.GetJob"
	logger.Debug("attempting to get job",
		zap.String("function", funcName),
		zap.String("job_id", id),
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	job, exists := r.jobs[id]
	if !exists {
		logger.Warn("job not found",
			zap.String("function", funcName),
			zap.String("job_id", id),
		)
		return nil, errs.ErrJobNotFound
	}

	return job.Clone(), nil
}

// GetAllJobs returns snapshots of every job, most recently created first.
func (r *JobRepository) GetAllJobs(ctx context.Context) ([]*models.Job, error) {
	const funcName = "JobRepository.GetAllJobs"
	logger.Debug("getting all jobs",
		zap.String("function", funcName),
	)

	r.mu.Lock()
	defer r.mu.Unlock()

	jobs := make([]*models.Job, 0, len(r.jobOrder))
	for i := len(r.jobOrder) - 1; i >= 0; i-- {
		jobs = append(jobs, r.jobs[r.jobOrder[i]].Clone())
	}

	return jobs, nil
}

func (r *JobRepository) StartJob(ctx context.Context, id string) (*models.Job, error) {
	const funcName = "JobRepository.StartJob"

	r.mu.Lock()
	defer r.mu.Unlock()

	job, exists := r.jobs[id]
	if !exists {
		return nil, errs.ErrJobNotFound
	}

	if !job.Status.CanTransition(models.JobStatusRunning) {
		logger.Warn("illegal job start",
			zap.String("function", funcName),
			zap.String("job_id", id),
			zap.String("status", string(job.Status)),
		)
		return nil, fmt.Errorf("%w: cannot start job in status %q", errs.ErrInvalidState, job.Status)
	}

	job.Status = models.JobStatusRunning
	job.StartTime = time.Now()

	logger.Info("job started",
		zap.String("function", funcName),
		zap.String("job_id", id),
	)

	return job.Clone(), nil
}

// RequestStop marks a running job for cancellation and moves it to stopping.
// Stopping a job that is not running is rejected; a terminal job reports the
// same invalid-state error so repeated stops are harmless no-ops for callers.
func (r *JobRepository) RequestStop(ctx context.Context, id string) (*models.Job, error) {
	const funcName = "JobRepository.RequestStop"

	r.mu.Lock()
	defer r.mu.Unlock()

	job, exists := r.jobs[id]
	if !exists {
		logger.Warn("job not found on stop request",
			zap.String("function", funcName),
			zap.String("job_id", id),
		)
		return nil, errs.ErrJobNotFound
	}

	if job.Status != models.JobStatusRunning {
		return nil, fmt.Errorf("%w: cannot stop job in status %q", errs.ErrInvalidState, job.Status)
	}

	job.CancelRequested = true
	job.Status = models.JobStatusStopping

	logger.Info("job stop requested",
		zap.String("function", funcName),
		zap.String("job_id", id),
		zap.Int("processed_users", job.ProcessedUsers),
	)

	return job.Clone(), nil
}

func (r *JobRepository) FinishJob(ctx context.Context, id string, status models.JobStatus, errMsg string) (*models.Job, error) {
	const funcName = "JobRepository.FinishJob"

	r.mu.Lock()
	defer r.mu.Unlock()

	job, exists := r.jobs[id]
	if !exists {
		return nil, errs.ErrJobNotFound
	}

	if !status.IsTerminal() {
		return nil, fmt.Errorf("%w: %q is not a terminal status", errs.ErrInvalidState, status)
	}
	if !job.Status.CanTransition(status) {
		logger.Warn("illegal job finish",
			zap.String("function", funcName),
			zap.String("job_id", id),
			zap.String("from", string(job.Status)),
			zap.String("to", string(status)),
		)
		return nil, fmt.Errorf("%w: cannot finish job in status %q as %q", errs.ErrInvalidState, job.Status, status)
	}

	job.Status = status
	job.EndTime = time.Now()
	job.Error = errMsg

	logger.Info("job finished",
		zap.String("function", funcName),
		zap.String("job_id", id),
		zap.String("status", string(status)),
		zap.Int("processed_users", job.ProcessedUsers),
		zap.Int("total_users", job.TotalUsers),
	)

	return job.Clone(), nil
}

func (r *JobRepository) IncrementProcessedUsers(ctx context.Context, id string) (*models.Job, error) {
	const funcName = "JobRepository.IncrementProcessedUsers"

	r.mu.Lock()
	defer r.mu.Unlock()

	job, exists := r.jobs[id]
	if !exists {
		return nil, errs.ErrJobNotFound
	}

	if job.ProcessedUsers >= job.TotalUsers {
		return nil, fmt.Errorf("processed users %d would exceed total %d for job %q",
			job.ProcessedUsers+1, job.TotalUsers, id)
	}

	job.ProcessedUsers++

	logger.Debug("processed users incremented",
		zap.String("function", funcName),
		zap.String("job_id", id),
		zap.Int("processed_users", job.ProcessedUsers),
		zap.Int("total_users", job.TotalUsers),
	)

	return job.Clone(), nil
}

func (r *JobRepository) IsCancelRequested(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, exists := r.jobs[id]
	if !exists {
		return false, errs.ErrJobNotFound
	}

	return job.CancelRequested, nil
}

func (r *JobRepository) CreateDownload(ctx context.Context, d *models.Download) (*models.Download, error) {
	const funcName = "JobRepository.CreateDownload"

	r.mu.Lock()
	defer r.mu.Unlock()

	jobDownloads, exists := r.downloads[d.JobID]
	if !exists {
		return nil, errs.ErrJobNotFound
	}
	if _, dup := jobDownloads[d.ID]; dup {
		return nil, fmt.Errorf("download %q already exists in job %q", d.ID, d.JobID)
	}

	stored := d.Clone()
	stored.Status = models.DownloadStatusStarted
	stored.StartTime = time.Now()
	jobDownloads[stored.ID] = stored
	r.downloadOrder[d.JobID] = append(r.downloadOrder[d.JobID], stored.ID)

	logger.Debug("download registered",
		zap.String("function", funcName),
		zap.String("job_id", d.JobID),
		zap.String("download_id", d.ID),
		zap.String("url", d.URL),
	)

	return stored.Clone(), nil
}

func (r *JobRepository) UpdateDownloadProgress(ctx context.Context, jobID, downloadID string, current, total int64) (*models.Download, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, err := r.findDownload(jobID, downloadID)
	if err != nil {
		return nil, err
	}

	if d.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: download %q already finished", errs.ErrInvalidState, downloadID)
	}

	d.Status = models.DownloadStatusProgress
	d.CurrentBytes = current
	d.TotalBytes = total

	return d.Clone(), nil
}

func (r *JobRepository) FinishDownload(ctx context.Context, jobID, downloadID string, status models.DownloadStatus, finalBytes int64, errMsg string) (*models.Download, error) {
	const funcName = "JobRepository.FinishDownload"

	r.mu.Lock()
	defer r.mu.Unlock()

	d, err := r.findDownload(jobID, downloadID)
	if err != nil {
		return nil, err
	}

	if !status.IsTerminal() {
		return nil, fmt.Errorf("%w: %q is not a terminal download status", errs.ErrInvalidState, status)
	}
	if d.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: download %q already finished", errs.ErrInvalidState, downloadID)
	}

	d.Status = status
	d.EndTime = time.Now()
	d.Error = errMsg
	if status == models.DownloadStatusCompleted {
		d.CurrentBytes = finalBytes
		d.TotalBytes = finalBytes
	}

	logger.Debug("download finished",
		zap.String("function", funcName),
		zap.String("job_id", jobID),
		zap.String("download_id", downloadID),
		zap.String("status", string(status)),
		zap.Int64("bytes", finalBytes),
	)

	return d.Clone(), nil
}

// GetJobDownloads returns snapshots of a job's downloads in submission order.
func (r *JobRepository) GetJobDownloads(ctx context.Context, jobID string) ([]*models.Download, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	jobDownloads, exists := r.downloads[jobID]
	if !exists {
		return nil, errs.ErrJobNotFound
	}

	result := make([]*models.Download, 0, len(jobDownloads))
	for _, id := range r.downloadOrder[jobID] {
		result = append(result, jobDownloads[id].Clone())
	}

	return result, nil
}

func (r *JobRepository) CreateSweep(ctx context.Context, jobID, username string) (*models.DuplicateSweep, error) {
	const funcName = "JobRepository.CreateSweep"

	r.mu.Lock()
	defer r.mu.Unlock()

	jobSweeps, exists := r.sweeps[jobID]
	if !exists {
		return nil, errs.ErrJobNotFound
	}
	if _, dup := jobSweeps[username]; dup {
		return nil, fmt.Errorf("sweep for %q already exists in job %q", username, jobID)
	}

	sweep := &models.DuplicateSweep{
		JobID:     jobID,
		Username:  username,
		Status:    models.SweepStatusRunning,
		StartTime: time.Now(),
	}
	jobSweeps[username] = sweep
	r.sweepOrder[jobID] = append(r.sweepOrder[jobID], username)

	logger.Debug("sweep registered",
		zap.String("function", funcName),
		zap.String("job_id", jobID),
		zap.String("username", username),
	)

	return sweep.Clone(), nil
}

func (r *JobRepository) UpdateSweep(ctx context.Context, jobID, username string, p models.SweepProgress) (*models.DuplicateSweep, error) {
	const funcName = "JobRepository.UpdateSweep"

	r.mu.Lock()
	defer r.mu.Unlock()

	jobSweeps, exists := r.sweeps[jobID]
	if !exists {
		return nil, errs.ErrJobNotFound
	}
	sweep, exists := jobSweeps[username]
	if !exists {
		return nil, fmt.Errorf("no sweep for %q in job %q", username, jobID)
	}

	if sweep.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: sweep for %q already finished", errs.ErrInvalidState, username)
	}

	sweep.FilesScanned = p.FilesScanned
	sweep.FilesProcessed = p.FilesProcessed
	sweep.DuplicatesFound = p.DuplicatesFound
	sweep.DuplicatesRemoved = p.DuplicatesRemoved
	sweep.Status = p.Status
	sweep.Error = p.Error
	if p.Status.IsTerminal() {
		sweep.EndTime = time.Now()
		logger.Debug("sweep finished",
			zap.String("function", funcName),
			zap.String("job_id", jobID),
			zap.String("username", username),
			zap.String("status", string(p.Status)),
			zap.Int("duplicates_removed", p.DuplicatesRemoved),
		)
	}

	return sweep.Clone(), nil
}

// GetJobSweeps returns snapshots of a job's sweeps in start order.
func (r *JobRepository) GetJobSweeps(ctx context.Context, jobID string) ([]*models.DuplicateSweep, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	jobSweeps, exists := r.sweeps[jobID]
	if !exists {
		return nil, errs.ErrJobNotFound
	}

	result := make([]*models.DuplicateSweep, 0, len(jobSweeps))
	for _, username := range r.sweepOrder[jobID] {
		result = append(result, jobSweeps[username].Clone())
	}

	return result, nil
}

// findDownload must be called with the lock held.
func (r *JobRepository) findDownload(jobID, downloadID string) (*models.Download, error) {
	jobDownloads, exists := r.downloads[jobID]
	if !exists {
		return nil, errs.ErrJobNotFound
	}
	d, exists := jobDownloads[downloadID]
	if !exists {
		return nil, fmt.Errorf("no download %q in job %q", downloadID, jobID)
	}

	return d, nil
}
