package userlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/longles/Reddit-Downloader/internal/utils/logger"
	"github.com/longles/Reddit-Downloader/internal/utils/validate"
	"go.uber.org/zap"
)

// FromFile reads usernames from a file, one per line. Blank lines are
// skipped, malformed names are dropped with a warning, duplicates keep
// their first position.
func FromFile(path string) ([]string, error) {
	const funcName = "userlist.FromFile"

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open usernames file: %w", err)
	}
	defer file.Close()

	var usernames []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		if err := validate.ValidateUsername(name); err != nil {
			logger.Warn("skipping malformed username",
				zap.String("function", funcName),
				zap.String("username", name),
			)
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		usernames = append(usernames, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read usernames file: %w", err)
	}

	logger.Debug("usernames read from file",
		zap.String("function", funcName),
		zap.String("path", path),
		zap.Int("count", len(usernames)),
	)

	return usernames, nil
}

// FromFolders derives usernames from existing archive folders. A missing
// download directory yields an empty list, not an error.
func FromFolders(downloadDir string) ([]string, error) {
	const funcName = "userlist.FromFolders"

	entries, err := os.ReadDir(downloadDir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("download directory does not exist yet",
				zap.String("function", funcName),
				zap.String("download_dir", downloadDir),
			)
			return nil, nil
		}
		return nil, fmt.Errorf("read download directory: %w", err)
	}

	var usernames []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := validate.ValidateUsername(entry.Name()); err != nil {
			continue
		}
		usernames = append(usernames, entry.Name())
	}

	logger.Debug("usernames derived from folders",
		zap.String("function", funcName),
		zap.String("download_dir", downloadDir),
		zap.Int("count", len(usernames)),
	)

	return usernames, nil
}
