package models

import "time"

type EventType string

const (
	EventJobUpdate                EventType = "job_update"
	EventDownloadProgress         EventType = "download_progress"
	EventDuplicateRemovalProgress EventType = "duplicate_removal_progress"
	EventLogUpdate                EventType = "log_update"
)

// Event is the envelope published on the bus and forwarded to observers.
type Event struct {
	Type    EventType `json:"type"`
	JobID   string    `json:"job_id"`
	Payload any       `json:"payload"`
}

type JobUpdate struct {
	JobID          string    `json:"job_id"`
	Status         JobStatus `json:"status"`
	ProcessedUsers int       `json:"processed_users"`
	TotalUsers     int       `json:"total_users"`
	Error          string    `json:"error,omitempty"`
}

type DownloadProgress struct {
	JobID        string         `json:"job_id"`
	DownloadID   string         `json:"download_id"`
	Filename     string         `json:"filename"`
	Status       DownloadStatus `json:"status"`
	CurrentBytes int64          `json:"current_bytes"`
	TotalBytes   int64          `json:"total_bytes"`
	Error        string         `json:"error,omitempty"`
}

type DuplicateRemovalProgress struct {
	JobID             string      `json:"job_id"`
	Username          string      `json:"username"`
	Status            SweepStatus `json:"status"`
	FilesScanned      int         `json:"files_scanned"`
	DuplicatesFound   int         `json:"duplicates_found"`
	DuplicatesRemoved int         `json:"duplicates_removed"`
	Error             string      `json:"error,omitempty"`
}

type LogUpdate struct {
	JobID     string    `json:"job_id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

func NewJobUpdateEvent(job *Job) Event {
	return Event{
		Type:  EventJobUpdate,
		JobID: job.ID,
		Payload: JobUpdate{
			JobID:          job.ID,
			Status:         job.Status,
			ProcessedUsers: job.ProcessedUsers,
			TotalUsers:     job.TotalUsers,
			Error:          job.Error,
		},
	}
}

func NewDownloadProgressEvent(d *Download) Event {
	return Event{
		Type:  EventDownloadProgress,
		JobID: d.JobID,
		Payload: DownloadProgress{
			JobID:        d.JobID,
			DownloadID:   d.ID,
			Filename:     d.Filename,
			Status:       d.Status,
			CurrentBytes: d.CurrentBytes,
			TotalBytes:   d.TotalBytes,
			Error:        d.Error,
		},
	}
}

func NewDuplicateRemovalEvent(s *DuplicateSweep) Event {
	return Event{
		Type:  EventDuplicateRemovalProgress,
		JobID: s.JobID,
		Payload: DuplicateRemovalProgress{
			JobID:             s.JobID,
			Username:          s.Username,
			Status:            s.Status,
			FilesScanned:      s.FilesScanned,
			DuplicatesFound:   s.DuplicatesFound,
			DuplicatesRemoved: s.DuplicatesRemoved,
			Error:             s.Error,
		},
	}
}

func NewLogUpdateEvent(jobID, message string) Event {
	return Event{
		Type:  EventLogUpdate,
		JobID: jobID,
		Payload: LogUpdate{
			JobID:     jobID,
			Timestamp: time.Now(),
			Message:   message,
		},
	}
}
