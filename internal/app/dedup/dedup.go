package dedup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/longles/Reddit-Downloader/internal/app/models"
	"github.com/longles/Reddit-Downloader/internal/utils/logger"
)

// ProgressFunc receives sweep progress snapshots. The last call for a sweep
// always carries a terminal status.
type ProgressFunc func(models.SweepProgress)

// Engine finds and removes duplicate media files inside archive folders.
// Detection runs in two passes: candidates are grouped by size, then files
// sharing a size are fingerprinted with sha256. Within every fingerprint
// group the lexicographically smallest filename survives and the rest are
// deleted.
type Engine struct {
	validFormats map[string]bool

	mu      sync.Mutex
	folders map[string]*sync.Mutex
}

func CreateEngine(validFormats map[string]bool) *Engine {
	return &Engine{
		validFormats: validFormats,
		folders:      make(map[string]*sync.Mutex),
	}
}

type candidate struct {
	name string
	size int64
}

// Sweep removes duplicates from a single archive folder. At most one sweep
// runs per folder at a time; concurrent calls for the same folder queue
// behind its lock. Cancellation is honored between files, never mid-file.
func (e *Engine) Sweep(ctx context.Context, folder string, report ProgressFunc) error {
	const funcName = "Engine.Sweep"

	lock := e.folderLock(folder)
	lock.Lock()
	defer lock.Unlock()

	logger.Debug("starting duplicate sweep", zap.String("function", funcName), zap.String("folder", folder))

	progress := models.SweepProgress{Status: models.SweepStatusRunning}
	fail := func(err error) error {
		progress.Status = models.SweepStatusFailed
		progress.Error = err.Error()
		report(progress)
		logger.Error("duplicate sweep failed",
			zap.String("function", funcName),
			zap.String("folder", folder),
			zap.Error(err))
		return err
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	candidates, err := e.scanFolder(folder)
	if err != nil {
		return fail(err)
	}
	progress.FilesScanned = len(candidates)
	report(progress)

	// First pass: only files sharing a size can be identical.
	bySize := make(map[int64][]string)
	for _, c := range candidates {
		bySize[c.size] = append(bySize[c.size], c.name)
	}

	// Second pass: fingerprint the files that share a size.
	byHash := make(map[string][]string)
	for _, names := range bySize {
		if len(names) < 2 {
			progress.FilesProcessed += len(names)
			continue
		}
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				return fail(err)
			}
			sum, err := hashFile(filepath.Join(folder, name))
			if err != nil {
				return fail(err)
			}
			byHash[sum] = append(byHash[sum], name)
			progress.FilesProcessed++
		}
	}
	for _, names := range byHash {
		if len(names) > 1 {
			progress.DuplicatesFound += len(names) - 1
		}
	}
	report(progress)

	// Keep the smallest name in every fingerprint group, delete the rest.
	for _, names := range byHash {
		if len(names) < 2 {
			continue
		}
		sort.Strings(names)
		for _, name := range names[1:] {
			if err := ctx.Err(); err != nil {
				return fail(err)
			}
			if err := os.Remove(filepath.Join(folder, name)); err != nil {
				return fail(fmt.Errorf("remove duplicate: %w", err))
			}
			progress.DuplicatesRemoved++
			logger.Debug("removed duplicate file",
				zap.String("function", funcName),
				zap.String("folder", folder),
				zap.String("filename", name))
		}
	}

	progress.Status = models.SweepStatusCompleted
	report(progress)

	logger.Info("duplicate sweep finished",
		zap.String("function", funcName),
		zap.String("folder", folder),
		zap.Int("filesScanned", progress.FilesScanned),
		zap.Int("duplicatesRemoved", progress.DuplicatesRemoved))
	return nil
}

// scanFolder lists media files directly inside folder. Subdirectories and
// files without an archivable extension (metadata files, leftover partials)
// are ignored.
func (e *Engine) scanFolder(folder string) ([]candidate, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("read archive folder: %w", err)
	}

	candidates := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
		if !e.validFormats[ext] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		candidates = append(candidates, candidate{name: entry.Name(), size: info.Size()})
	}
	return candidates, nil
}

func (e *Engine) folderLock(folder string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := filepath.Clean(folder)
	lock, ok := e.folders[key]
	if !ok {
		lock = &sync.Mutex{}
		e.folders[key] = lock
	}
	return lock
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", filepath.Base(path), err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
