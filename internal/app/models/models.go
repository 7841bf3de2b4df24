package models

import "time"

type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusStopping  JobStatus = "stopping"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCanceled  JobStatus = "canceled"
)

// allowedJobTransitions encodes the legal edges of the job lifecycle.
// Terminal statuses have no outgoing edges: a job finishes exactly once.
var allowedJobTransitions = map[JobStatus]map[JobStatus]bool{
	JobStatusQueued: {
		JobStatusRunning: true,
	},
	JobStatusRunning: {
		JobStatusStopping:  true,
		JobStatusCompleted: true,
		JobStatusFailed:    true,
		JobStatusCanceled:  true,
	},
	JobStatusStopping: {
		JobStatusCompleted: true,
		JobStatusFailed:    true,
		JobStatusCanceled:  true,
	},
}

func (s JobStatus) CanTransition(to JobStatus) bool {
	next, ok := allowedJobTransitions[s]
	if !ok {
		return false
	}
	return next[to]
}

func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed, JobStatusCanceled:
		return true
	default:
		return false
	}
}

type DownloadStatus string

const (
	DownloadStatusStarted   DownloadStatus = "started"
	DownloadStatusProgress  DownloadStatus = "progress"
	DownloadStatusCompleted DownloadStatus = "completed"
	DownloadStatusFailed    DownloadStatus = "failed"
)

func (s DownloadStatus) IsTerminal() bool {
	return s == DownloadStatusCompleted || s == DownloadStatusFailed
}

type SweepStatus string

const (
	SweepStatusRunning   SweepStatus = "running"
	SweepStatusCompleted SweepStatus = "completed"
	SweepStatusFailed    SweepStatus = "failed"
)

func (s SweepStatus) IsTerminal() bool {
	return s == SweepStatusCompleted || s == SweepStatusFailed
}

type InputMode string

const (
	InputModeSingle  InputMode = "single"
	InputModeFile    InputMode = "file"
	InputModeFolders InputMode = "folders"
)

// Job is one archive request spanning one or more usernames. The usecase
// layer is the only writer; everyone else sees copies.
type Job struct {
	ID              string
	Status          JobStatus
	InputMode       InputMode
	Usernames       []string
	TotalUsers      int
	ProcessedUsers  int
	Limit           int
	Concurrency     int
	CancelRequested bool
	Error           string
	CreatedAt       time.Time
	StartTime       time.Time
	EndTime         time.Time
}

// Clone returns a deep copy safe to hand to observers.
func (j *Job) Clone() *Job {
	cp := *j
	cp.Usernames = append([]string(nil), j.Usernames...)
	return &cp
}

// Download is one media fetch for one submission. ID is stable across
// progress updates and unique within the owning job.
type Download struct {
	ID           string
	JobID        string
	Username     string
	Filename     string
	URL          string
	Status       DownloadStatus
	CurrentBytes int64
	TotalBytes   int64
	Error        string
	StartTime    time.Time
	EndTime      time.Time
}

func (d *Download) Clone() *Download {
	cp := *d
	return &cp
}

// DuplicateSweep is one dedup pass over one user's archive folder.
type DuplicateSweep struct {
	JobID             string
	Username          string
	Status            SweepStatus
	FilesScanned      int
	FilesProcessed    int
	DuplicatesFound   int
	DuplicatesRemoved int
	Error             string
	StartTime         time.Time
	EndTime           time.Time
}

func (s *DuplicateSweep) Clone() *DuplicateSweep {
	cp := *s
	return &cp
}

// SweepProgress is a point-in-time report from a running sweep, applied to
// the registry record and fanned out to observers.
type SweepProgress struct {
	FilesScanned      int
	FilesProcessed    int
	DuplicatesFound   int
	DuplicatesRemoved int
	Status            SweepStatus
	Error             string
}

// Submission is one listed post with its downloadable media URLs.
type Submission struct {
	ID        string
	Title     string
	URL       string
	Created   time.Time
	MediaURLs []string
	IsGallery bool
}

// DateStr formats the submission creation date for archive filenames.
func (s *Submission) DateStr() string {
	return s.Created.Format("2006-01-02")
}
