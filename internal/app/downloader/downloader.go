package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/longles/Reddit-Downloader/internal/app/models"
	"github.com/longles/Reddit-Downloader/internal/utils/logger"
	"github.com/longles/Reddit-Downloader/internal/utils/validate"
)

const (
	// progressInterval bounds how often chunk progress is reported per
	// download. The size marker right after headers is never throttled.
	progressInterval = 200 * time.Millisecond

	queueCapacity = 128

	// Media CDNs reject API-style user agents, so fetches identify as a
	// plain browser.
	mediaUserAgent = "Mozilla/5.0"
)

var redgifsMediaPattern = regexp.MustCompile(`https://media\.redgifs\.com/.*?-mobile\.jpg`)

// Spec describes one media file to fetch. Stem is the target filename
// without an extension; the extension is taken from the resolved URL, so the
// final filename is only known once a worker picks the spec up.
type Spec struct {
	JobID    string
	Username string
	Stem     string
	URL      string
}

// Outcome classifies how a submitted download settled.
type Outcome int

const (
	// OutcomeCompleted means the file was fully written and renamed into place.
	OutcomeCompleted Outcome = iota
	// OutcomeFailed means the fetch or write failed. No partial file is left
	// under the final filename.
	OutcomeFailed
	// OutcomeSkipped means the download never started: unsupported format,
	// unresolvable URL, or a URL already claimed by an earlier download.
	OutcomeSkipped
	// OutcomeDropped means the download was still queued when its job was
	// canceled.
	OutcomeDropped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Reporter receives lifecycle notifications for downloads the pool executes.
// Calls for one download arrive in order from a single worker; calls for
// different downloads may arrive concurrently. Skipped and dropped downloads
// never reach the Reporter.
type Reporter interface {
	DownloadStarted(jobID, downloadID, username, filename, url string)
	DownloadProgress(jobID, downloadID string, current, total int64)
	DownloadFinished(jobID, downloadID string, status models.DownloadStatus, bytes int64, errMsg string)
}

// Handle tracks one submitted download until it settles.
type Handle struct {
	done    chan struct{}
	outcome Outcome
	bytes   int64
	err     error
}

// Done is closed once the download settles.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Outcome reports how the download settled. Valid only after Done is closed.
func (h *Handle) Outcome() Outcome { return h.outcome }

// Bytes reports how many bytes were written. Valid only after Done is closed.
func (h *Handle) Bytes() int64 { return h.bytes }

// Err reports the settling error, if any. Valid only after Done is closed.
func (h *Handle) Err() error { return h.err }

func (h *Handle) settle(outcome Outcome, bytes int64, err error) {
	h.outcome = outcome
	h.bytes = bytes
	h.err = err
	close(h.done)
}

type task struct {
	ctx    context.Context
	spec   Spec
	handle *Handle
}

// Options configure a Pool for one job.
type Options struct {
	Concurrency  int
	ChunkSize    int
	ValidFormats map[string]bool
	DownloadDir  string
}

// Pool executes media fetches with bounded concurrency. Submissions beyond
// the concurrency ceiling queue in submission order and begin as workers
// free up. Each pool serves a single job and holds that job's seen-URL set,
// so a URL archived once is never fetched twice within the job.
type Pool struct {
	client   *http.Client
	opts     Options
	reporter Reporter

	tasks chan *task
	wg    sync.WaitGroup

	mu     sync.Mutex
	urls   map[string]bool
	closed bool
}

func CreatePool(client *http.Client, opts Options, reporter Reporter) *Pool {
	p := &Pool{
		client:   client,
		opts:     opts,
		reporter: reporter,
		tasks:    make(chan *task, queueCapacity),
		urls:     make(map[string]bool),
	}
	p.wg.Add(opts.Concurrency)
	for i := 0; i < opts.Concurrency; i++ {
		go p.worker()
	}
	return p
}

// Submit queues one download. It blocks while the admission queue is full
// and settles the returned handle as dropped if ctx is canceled first.
// Submit must not be called after Close.
func (p *Pool) Submit(ctx context.Context, spec Spec) (*Handle, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, errors.New("download pool is closed")
	}
	p.mu.Unlock()

	h := &Handle{done: make(chan struct{})}
	select {
	case p.tasks <- &task{ctx: ctx, spec: spec, handle: h}:
		return h, nil
	case <-ctx.Done():
		h.settle(OutcomeDropped, 0, ctx.Err())
		return h, nil
	}
}

// Close stops accepting submissions and waits until every queued download
// settles.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.tasks)
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for t := range p.tasks {
		p.execute(t)
	}
}

func (p *Pool) execute(t *task) {
	const funcName = "Pool.execute"

	if err := t.ctx.Err(); err != nil {
		t.handle.settle(OutcomeDropped, 0, err)
		return
	}

	resolved, err := p.resolveURL(t.ctx, t.spec.URL)
	if err != nil {
		logger.Debug("skipping unresolvable url",
			zap.String("function", funcName),
			zap.String("url", t.spec.URL),
			zap.Error(err))
		t.handle.settle(OutcomeSkipped, 0, err)
		return
	}

	ext := validate.ExtensionFromURL(resolved)
	if ext == "" || !p.opts.ValidFormats[ext] {
		logger.Debug("skipping unsupported format",
			zap.String("function", funcName),
			zap.String("url", resolved))
		t.handle.settle(OutcomeSkipped, 0, nil)
		return
	}

	filename := t.spec.Stem + "." + ext
	downloadID := t.spec.Username + "/" + filename

	if !p.claimURL(resolved) {
		logger.Debug("skipping already archived url",
			zap.String("function", funcName),
			zap.String("url", resolved))
		t.handle.settle(OutcomeSkipped, 0, nil)
		return
	}

	logger.Info("starting download",
		zap.String("function", funcName),
		zap.String("download_id", downloadID),
		zap.String("url", resolved))
	p.reporter.DownloadStarted(t.spec.JobID, downloadID, t.spec.Username, filename, resolved)

	bytes, err := p.fetch(t.ctx, resolved, t.spec, downloadID, filename)
	if err != nil {
		p.releaseURL(resolved)
		logger.Error("download failed",
			zap.String("function", funcName),
			zap.String("download_id", downloadID),
			zap.Error(err))
		p.reporter.DownloadFinished(t.spec.JobID, downloadID, models.DownloadStatusFailed, bytes, err.Error())
		t.handle.settle(OutcomeFailed, bytes, err)
		return
	}

	logger.Info("download complete",
		zap.String("function", funcName),
		zap.String("download_id", downloadID),
		zap.Int64("bytes", bytes))
	p.reporter.DownloadFinished(t.spec.JobID, downloadID, models.DownloadStatusCompleted, bytes, "")
	t.handle.settle(OutcomeCompleted, bytes, nil)
}

// fetch streams one file to a temporary name and renames it into place once
// fully written, so a truncated file never appears under the final filename.
func (p *Pool) fetch(ctx context.Context, url string, spec Spec, downloadID, filename string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", mediaUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch media: unexpected status %s", resp.Status)
	}

	// Size marker once headers resolve. total stays 0 for chunked
	// transfers so consumers can render an indeterminate state.
	total := resp.ContentLength
	if total < 0 {
		total = 0
	}
	p.reporter.DownloadProgress(spec.JobID, downloadID, 0, total)

	folder := filepath.Join(p.opts.DownloadDir, spec.Username)
	tmpPath := filepath.Join(folder, filename+".tmp")
	out, err := os.Create(tmpPath)
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}

	current, err := p.stream(ctx, resp.Body, out, spec.JobID, downloadID, total)
	if err != nil {
		out.Close()
		os.Remove(tmpPath)
		return current, err
	}

	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return current, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(folder, filename)); err != nil {
		os.Remove(tmpPath)
		return current, fmt.Errorf("finalize file: %w", err)
	}

	return current, nil
}

// stream copies the response body in chunks, checking for cancellation at
// every chunk boundary and throttling progress reports.
func (p *Pool) stream(ctx context.Context, body io.Reader, out *os.File, jobID, downloadID string, total int64) (int64, error) {
	var current int64
	buf := make([]byte, p.opts.ChunkSize)
	lastReport := time.Now()

	for {
		if err := ctx.Err(); err != nil {
			return current, err
		}

		n, readErr := body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return current, fmt.Errorf("write chunk: %w", writeErr)
			}
			current += int64(n)
			if time.Since(lastReport) >= progressInterval {
				p.reporter.DownloadProgress(jobID, downloadID, current, total)
				lastReport = time.Now()
			}
		}
		if readErr == io.EOF {
			return current, nil
		}
		if readErr != nil {
			return current, fmt.Errorf("read chunk: %w", readErr)
		}
	}
}

// resolveURL rewrites page URLs that hide their media behind a player into
// direct download links. Most URLs pass through unchanged.
func (p *Pool) resolveURL(ctx context.Context, raw string) (string, error) {
	if strings.Contains(raw, "redgifs.com") {
		return p.resolveRedgifs(ctx, raw)
	}
	if strings.Contains(raw, "vidble.com/watch") {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 || parts[1] == "" {
			return "", fmt.Errorf("malformed vidble url %q", raw)
		}
		return "https://vidble.com/" + parts[1] + ".mp4", nil
	}
	return raw, nil
}

// resolveRedgifs scrapes the watch page for its mobile poster image and
// rewrites that to the full video URL. Pages without a poster pass through
// unchanged and are skipped later by the extension check.
func (p *Pool) resolveRedgifs(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", mediaUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolve redgifs page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("resolve redgifs page: unexpected status %s", resp.Status)
	}

	html, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read redgifs page: %w", err)
	}

	match := redgifsMediaPattern.Find(html)
	if match == nil {
		return pageURL, nil
	}
	return strings.Replace(string(match), "-mobile.jpg", ".mp4", 1), nil
}

func (p *Pool) claimURL(url string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.urls[url] {
		return false
	}
	p.urls[url] = true
	return true
}

func (p *Pool) releaseURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.urls, url)
}
