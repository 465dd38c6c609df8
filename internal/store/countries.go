package store

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Countries serves the external user->country mapping. The file is a
// semicolon-separated CSV with a user_id;country header. The mapping is
// cached process-wide and reloaded whenever the file's modtime
// advances, so every report observes a current snapshot without
// re-reading the file per request.
type Countries struct {
	mu      sync.RWMutex
	path    string
	byUser  map[int64]string
	modTime time.Time
	logger  *slog.Logger
}

func NewCountries(path string, logger *slog.Logger) *Countries {
	if logger == nil {
		logger = slog.Default()
	}
	return &Countries{path: path, logger: logger}
}

// SetData installs a fixed mapping, bypassing the file. Used by tests.
func (c *Countries) SetData(byUser map[int64]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byUser = byUser
	c.modTime = time.Now()
}

// Snapshot returns the current mapping. A missing, unreadable, or
// empty mapping is an error: the country report must fail loudly
// rather than silently produce zero-size results.
func (c *Countries) Snapshot(ctx context.Context) (map[int64]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.refresh(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.byUser) == 0 {
		return nil, fmt.Errorf("user-country mapping is empty")
	}
	return c.byUser, nil
}

func (c *Countries) refresh() error {
	c.mu.RLock()
	fixed := c.path == ""
	last := c.modTime
	c.mu.RUnlock()

	if fixed {
		return nil
	}

	info, err := os.Stat(c.path)
	if err != nil {
		return fmt.Errorf("stat mapping file: %w", err)
	}
	if !info.ModTime().After(last) {
		return nil
	}

	byUser, err := loadCountriesCSV(c.path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.byUser = byUser
	c.modTime = info.ModTime()
	c.mu.Unlock()

	c.logger.Info("user-country mapping loaded", "path", c.path, "users", len(byUser))
	return nil
}

func loadCountriesCSV(path string) (map[int64]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping file: %w", err)
	}
	defer file.Close()

	byUser := make(map[int64]string)
	scanner := bufio.NewScanner(file)

	// Skip header
	if !scanner.Scan() {
		return nil, fmt.Errorf("empty mapping file")
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, ";", 2)
		if len(parts) != 2 {
			continue
		}

		userID, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		if err != nil {
			continue
		}

		country := strings.TrimSpace(parts[1])
		if country == "" {
			continue
		}

		byUser[userID] = country
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mapping file: %w", err)
	}

	return byUser, nil
}

// Size reports how many users are currently mapped.
func (c *Countries) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byUser)
}
