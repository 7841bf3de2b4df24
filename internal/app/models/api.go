package models

import "time"

// StartArchiveRequest is the body of POST /api/archive/start. Zero limit or
// concurrency means "use the configured default".
type StartArchiveRequest struct {
	InputMode   InputMode `json:"input_mode"`
	Username    string    `json:"username,omitempty"`
	Filepath    string    `json:"filepath,omitempty"`
	Limit       int       `json:"limit,omitempty"`
	Concurrency int       `json:"concurrency,omitempty"`
}

type StartArchiveResponse struct {
	JobID   string    `json:"job_id"`
	Status  JobStatus `json:"status"`
	Message string    `json:"message"`
}

type StopArchiveResponse struct {
	JobID   string    `json:"job_id"`
	Status  JobStatus `json:"status"`
	Message string    `json:"message"`
}

type JobResponse struct {
	ID             string     `json:"id"`
	Status         JobStatus  `json:"status"`
	InputMode      InputMode  `json:"input_mode"`
	Usernames      []string   `json:"usernames"`
	TotalUsers     int        `json:"total_users"`
	ProcessedUsers int        `json:"processed_users"`
	Limit          int        `json:"limit"`
	Concurrency    int        `json:"concurrency"`
	Error          string     `json:"error,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	StartTime      *time.Time `json:"start_time,omitempty"`
	EndTime        *time.Time `json:"end_time,omitempty"`
}

func NewJobResponse(job *Job) JobResponse {
	return JobResponse{
		ID:             job.ID,
		Status:         job.Status,
		InputMode:      job.InputMode,
		Usernames:      job.Usernames,
		TotalUsers:     job.TotalUsers,
		ProcessedUsers: job.ProcessedUsers,
		Limit:          job.Limit,
		Concurrency:    job.Concurrency,
		Error:          job.Error,
		CreatedAt:      job.CreatedAt,
		StartTime:      timeOrNil(job.StartTime),
		EndTime:        timeOrNil(job.EndTime),
	}
}

type DownloadResponse struct {
	DownloadID   string         `json:"download_id"`
	JobID        string         `json:"job_id"`
	Username     string         `json:"username"`
	Filename     string         `json:"filename"`
	URL          string         `json:"url"`
	Status       DownloadStatus `json:"status"`
	CurrentBytes int64          `json:"current_bytes"`
	TotalBytes   int64          `json:"total_bytes"`
	Error        string         `json:"error,omitempty"`
	StartTime    *time.Time     `json:"start_time,omitempty"`
	EndTime      *time.Time     `json:"end_time,omitempty"`
}

func NewDownloadResponse(d *Download) DownloadResponse {
	return DownloadResponse{
		DownloadID:   d.ID,
		JobID:        d.JobID,
		Username:     d.Username,
		Filename:     d.Filename,
		URL:          d.URL,
		Status:       d.Status,
		CurrentBytes: d.CurrentBytes,
		TotalBytes:   d.TotalBytes,
		Error:        d.Error,
		StartTime:    timeOrNil(d.StartTime),
		EndTime:      timeOrNil(d.EndTime),
	}
}

type UploadUsersResponse struct {
	Users    []string `json:"users"`
	Filepath string   `json:"filepath"`
}

func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
