package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/longles/Reddit-Downloader/internal/app/dedup"
	"github.com/longles/Reddit-Downloader/internal/app/events"
	"github.com/longles/Reddit-Downloader/internal/app/lister"
	"github.com/longles/Reddit-Downloader/internal/app/models"
	"github.com/longles/Reddit-Downloader/internal/app/repository"
	"github.com/longles/Reddit-Downloader/internal/app/usecase"
	"github.com/longles/Reddit-Downloader/internal/config"
	"github.com/longles/Reddit-Downloader/internal/utils/errs"
	"github.com/longles/Reddit-Downloader/internal/utils/logger"
	"golang.org/x/sync/errgroup"
)

// eventBuffer is generous so a slow terminal never makes the bus drop the
// terminal job update this process waits on.
const eventBuffer = 1024

func main() {
	var (
		username    = flag.String("username", "", "single Reddit username to archive")
		fromFile    = flag.String("from-file", "", "path to a file with one username per line")
		fromFolders = flag.Bool("from-folders", false, "re-archive every user folder under the download directory")
		limit       = flag.Int("limit", 0, "submission limit per user (0 uses the configured default)")
		concurrent  = flag.Int("concurrent", 0, "concurrent downloads per user (0 uses the configured default)")
		envFile     = flag.String("env", ".env", "path to the environment file")
	)
	flag.Parse()

	req := &models.StartArchiveRequest{
		Limit:       *limit,
		Concurrency: *concurrent,
	}

	modes := 0
	if *username != "" {
		req.InputMode = models.InputModeSingle
		req.Username = *username
		modes++
	}
	if *fromFile != "" {
		req.InputMode = models.InputModeFile
		req.Filepath = *fromFile
		modes++
	}
	if *fromFolders {
		req.InputMode = models.InputModeFolders
		modes++
	}
	if modes != 1 {
		fmt.Fprintln(os.Stderr, "exactly one of -username, -from-file or -from-folders is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*envFile)
	if err != nil {
		fmt.Printf("error initializing config: %v\n", err)
		os.Exit(1)
	}

	err = logger.Init(cfg.LogMode)
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	for _, dir := range []string{cfg.DownloadDir, cfg.UploadDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create directory %s: %v\n", dir, err)
			os.Exit(1)
		}
	}

	bus := events.CreateBus()
	defer bus.Close()

	jobRepo := repository.CreateJobRepository()
	listerClient := lister.CreateClient(&http.Client{Timeout: cfg.ListerTimeout}, cfg.UserAgent)
	deduper := dedup.CreateEngine(cfg.ValidFormats)
	archiveUsecase := usecase.CreateArchiveUsecase(jobRepo, listerClient, bus, deduper, &http.Client{}, cfg)

	// Subscribe before starting so the first job update cannot be missed.
	eventsCh, unsubscribe := bus.Subscribe(eventBuffer)
	defer unsubscribe()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runCtx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	job, err := archiveUsecase.StartArchive(runCtx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("job %s: archiving %d user(s)\n", job.ID, job.TotalUsers)

	var final models.JobUpdate

	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		// Releases the signal watcher once the terminal update arrives.
		defer cancel()
		for ev := range eventsCh {
			if ev.JobID != job.ID {
				continue
			}
			printEvent(ev)
			if update, isJobUpdate := ev.Payload.(models.JobUpdate); isJobUpdate && update.Status.IsTerminal() {
				final = update
				return nil
			}
		}
		return errors.New("event stream closed before the job finished")
	})

	g.Go(func() error {
		<-gctx.Done()

		// A second interrupt falls through to default signal handling.
		stop()

		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()

		_, stopErr := archiveUsecase.StopArchive(stopCtx, job.ID)
		if stopErr != nil {
			if errors.Is(stopErr, errs.ErrInvalidState) || errors.Is(stopErr, errs.ErrJobNotFound) {
				return nil
			}
			return stopErr
		}

		fmt.Println("stop requested, in-flight downloads finish their current chunk")
		return nil
	})

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "archive aborted: %v\n", err)
		os.Exit(1)
	}

	switch final.Status {
	case models.JobStatusCompleted:
		fmt.Printf("archive complete: %d/%d users processed\n", final.ProcessedUsers, final.TotalUsers)
	case models.JobStatusCanceled:
		fmt.Printf("archive canceled: %d/%d users processed\n", final.ProcessedUsers, final.TotalUsers)
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "archive failed: %s\n", final.Error)
		os.Exit(1)
	}
}

func printEvent(ev models.Event) {
	switch p := ev.Payload.(type) {
	case models.JobUpdate:
		fmt.Printf("job %s: %s (%d/%d users)\n", p.JobID, p.Status, p.ProcessedUsers, p.TotalUsers)
	case models.DownloadProgress:
		switch p.Status {
		case models.DownloadStatusCompleted:
			fmt.Printf("  downloaded %s (%d bytes)\n", p.Filename, p.CurrentBytes)
		case models.DownloadStatusFailed:
			fmt.Printf("  failed %s: %s\n", p.Filename, p.Error)
		}
	case models.DuplicateRemovalProgress:
		if p.Status == models.SweepStatusCompleted {
			fmt.Printf("  sweep %s: %d duplicate(s) removed\n", p.Username, p.DuplicatesRemoved)
		}
	case models.LogUpdate:
		fmt.Printf("  %s\n", p.Message)
	}
}
