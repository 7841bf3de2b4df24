package delivery

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/longles/Reddit-Downloader/internal/app"
	"github.com/longles/Reddit-Downloader/internal/app/models"
	"github.com/longles/Reddit-Downloader/internal/utils/logger"
	"github.com/longles/Reddit-Downloader/internal/utils/responses"
	"go.uber.org/zap"
)

const (
	sseBuffer = 256

	// heartbeatInterval paces the comment lines that keep idle event
	// streams alive through proxies. SSE clients ignore comment lines.
	heartbeatInterval = 15 * time.Second
)

type ArchiveDelivery struct {
	archiveUsecase app.ArchiveUsecase
	bus            app.EventBus
}

func CreateArchiveDelivery(archiveUsecase app.ArchiveUsecase, bus app.EventBus) *ArchiveDelivery {
	return &ArchiveDelivery{
		archiveUsecase: archiveUsecase,
		bus:            bus,
	}
}

func (d *ArchiveDelivery) StartArchive(w http.ResponseWriter, r *http.Request) {
	const funcName = "ArchiveDelivery.StartArchive"
	logger.Debug("starting archive job", zap.String("function", funcName))

	req := models.StartArchiveRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		responses.DoBadResponseAndLog(w, http.StatusBadRequest, "invalid request body")
		return
	}

	job, err := d.archiveUsecase.StartArchive(r.Context(), &req)
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	responses.DoJSONResponse(w, models.StartArchiveResponse{
		JobID:   job.ID,
		Status:  job.Status,
		Message: fmt.Sprintf("archiving %d user(s)", job.TotalUsers),
	}, http.StatusAccepted)
}

func (d *ArchiveDelivery) StopArchive(w http.ResponseWriter, r *http.Request) {
	const funcName = "ArchiveDelivery.StopArchive"
	logger.Debug("stopping archive job", zap.String("function", funcName))

	jobID := mux.Vars(r)["id"]
	if jobID == "" {
		responses.DoBadResponseAndLog(w, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := d.archiveUsecase.StopArchive(r.Context(), jobID)
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	responses.DoJSONResponse(w, models.StopArchiveResponse{
		JobID:   job.ID,
		Status:  job.Status,
		Message: "stop requested, in-flight downloads finish their current chunk",
	}, http.StatusAccepted)
}

func (d *ArchiveDelivery) GetJobStatus(w http.ResponseWriter, r *http.Request) {
	const funcName = "ArchiveDelivery.GetJobStatus"
	logger.Debug("getting job status", zap.String("function", funcName))

	jobID := mux.Vars(r)["id"]
	if jobID == "" {
		responses.DoBadResponseAndLog(w, http.StatusBadRequest, "invalid job id")
		return
	}

	job, err := d.archiveUsecase.GetJob(r.Context(), jobID)
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	responses.DoJSONResponse(w, models.NewJobResponse(job), http.StatusOK)
}

func (d *ArchiveDelivery) GetAllJobs(w http.ResponseWriter, r *http.Request) {
	const funcName = "ArchiveDelivery.GetAllJobs"
	logger.Debug("getting all jobs", zap.String("function", funcName))

	jobs, err := d.archiveUsecase.GetAllJobs(r.Context())
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	if len(jobs) == 0 {
		responses.DoJSONResponse(w, map[string]any{
			"message":    "No jobs found",
			"suggestion": "Start a new job with POST /api/archive/start",
			"count":      0,
			"jobs":       []any{},
		}, http.StatusOK)
		return
	}

	response := make([]models.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		response = append(response, models.NewJobResponse(job))
	}

	responses.DoJSONResponse(w, map[string]any{
		"count": len(response),
		"jobs":  response,
	}, http.StatusOK)
}

func (d *ArchiveDelivery) GetJobDownloads(w http.ResponseWriter, r *http.Request) {
	const funcName = "ArchiveDelivery.GetJobDownloads"
	logger.Debug("getting job downloads", zap.String("function", funcName))

	jobID := mux.Vars(r)["id"]
	if jobID == "" {
		responses.DoBadResponseAndLog(w, http.StatusBadRequest, "invalid job id")
		return
	}

	downloads, err := d.archiveUsecase.GetJobDownloads(r.Context(), jobID)
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	response := make([]models.DownloadResponse, 0, len(downloads))
	for _, dl := range downloads {
		response = append(response, models.NewDownloadResponse(dl))
	}

	responses.DoJSONResponse(w, map[string]any{
		"count":     len(response),
		"downloads": response,
	}, http.StatusOK)
}

func (d *ArchiveDelivery) GetUserFolders(w http.ResponseWriter, r *http.Request) {
	const funcName = "ArchiveDelivery.GetUserFolders"
	logger.Debug("listing archived user folders", zap.String("function", funcName))

	users, err := d.archiveUsecase.ListArchivedUsers(r.Context())
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}
	if users == nil {
		users = []string{}
	}

	responses.DoJSONResponse(w, map[string]any{
		"count": len(users),
		"users": users,
	}, http.StatusOK)
}

func (d *ArchiveDelivery) UploadUserFile(w http.ResponseWriter, r *http.Request) {
	const funcName = "ArchiveDelivery.UploadUserFile"
	logger.Debug("uploading user file", zap.String("function", funcName))

	file, header, err := r.FormFile("userFile")
	if err != nil {
		responses.DoBadResponseAndLog(w, http.StatusBadRequest, "userFile is required")
		return
	}
	defer file.Close()

	logger.Debug("received user file",
		zap.String("function", funcName),
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size),
	)

	users, path, err := d.archiveUsecase.SaveUserFile(r.Context(), file)
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	responses.DoJSONResponse(w, models.UploadUsersResponse{
		Users:    users,
		Filepath: path,
	}, http.StatusCreated)
}

// StreamEvents forwards bus events to the client as Server-Sent Events.
// There is no replay: the stream starts with whatever is published after the
// subscription, and late clients catch up through the status endpoints.
func (d *ArchiveDelivery) StreamEvents(w http.ResponseWriter, r *http.Request) {
	const funcName = "ArchiveDelivery.StreamEvents"

	flusher, ok := w.(http.Flusher)
	if !ok {
		responses.DoBadResponseAndLog(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, unsubscribe := d.bus.Subscribe(sseBuffer)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	logger.Info("event stream opened",
		zap.String("function", funcName),
		zap.String("remote", r.RemoteAddr),
	)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			logger.Debug("event stream closed by client",
				zap.String("function", funcName),
				zap.String("remote", r.RemoteAddr),
			)
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case ev, open := <-events:
			if !open {
				return
			}
			body, err := json.Marshal(ev)
			if err != nil {
				logger.Error("failed to marshal event",
					zap.String("function", funcName),
					zap.String("event_type", string(ev.Type)),
					zap.Error(err),
				)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, body); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
