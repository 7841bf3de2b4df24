package app

import (
	"context"
	"io"

	"github.com/longles/Reddit-Downloader/internal/app/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go

type JobRepository interface {
	CreateJob(ctx context.Context, job *models.Job) (*models.Job, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)
	GetAllJobs(ctx context.Context) ([]*models.Job, error)
	StartJob(ctx context.Context, id string) (*models.Job, error)
	RequestStop(ctx context.Context, id string) (*models.Job, error)
	FinishJob(ctx context.Context, id string, status models.JobStatus, errMsg string) (*models.Job, error)
	IncrementProcessedUsers(ctx context.Context, id string) (*models.Job, error)
	IsCancelRequested(ctx context.Context, id string) (bool, error)
	CreateDownload(ctx context.Context, d *models.Download) (*models.Download, error)
	UpdateDownloadProgress(ctx context.Context, jobID, downloadID string, current, total int64) (*models.Download, error)
	FinishDownload(ctx context.Context, jobID, downloadID string, status models.DownloadStatus, finalBytes int64, errMsg string) (*models.Download, error)
	GetJobDownloads(ctx context.Context, jobID string) ([]*models.Download, error)
	CreateSweep(ctx context.Context, jobID, username string) (*models.DuplicateSweep, error)
	UpdateSweep(ctx context.Context, jobID, username string, p models.SweepProgress) (*models.DuplicateSweep, error)
	GetJobSweeps(ctx context.Context, jobID string) ([]*models.DuplicateSweep, error)
}

type ContentLister interface {
	ListSubmissions(ctx context.Context, username string, limit int) ([]models.Submission, error)
}

type EventBus interface {
	Publish(event models.Event)
	Subscribe(buffer int) (<-chan models.Event, func())
}

type ArchiveUsecase interface {
	StartArchive(ctx context.Context, req *models.StartArchiveRequest) (*models.Job, error)
	StopArchive(ctx context.Context, jobID string) (*models.Job, error)
	GetJob(ctx context.Context, jobID string) (*models.Job, error)
	GetAllJobs(ctx context.Context) ([]*models.Job, error)
	GetJobDownloads(ctx context.Context, jobID string) ([]*models.Download, error)
	ListArchivedUsers(ctx context.Context) ([]string, error)
	SaveUserFile(ctx context.Context, src io.Reader) ([]string, string, error)
}
