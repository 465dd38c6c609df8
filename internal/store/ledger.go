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
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"txn-analytics/internal/models"
)

const (
	batchSize  = 10000
	maxWorkers = 10
)

// Ledger is an in-memory transaction store fed from a CSV file. It is
// the query capability behind every report: Fetch applies a filter and
// returns matching rows in their original file order, which downstream
// ranking relies on for stable tie-breaks.
type Ledger struct {
	mu           sync.RWMutex
	transactions []models.Transaction
	csvPath      string
	loadedAt     time.Time
	skipped      atomic.Int64
	logger       *slog.Logger
}

func NewLedger(logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{logger: logger}
}

// SetData replaces the ledger contents. Used by tests and by callers
// that assemble transactions themselves.
func (l *Ledger) SetData(txs []models.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = txs
	l.loadedAt = time.Now()
}

// Fetch returns a copy of the rows matching the filter, preserving
// input order.
func (l *Ledger) Fetch(ctx context.Context, f models.Filter) ([]models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	matched := make([]models.Transaction, 0)
	for _, tx := range l.transactions {
		if f.Matches(tx) {
			matched = append(matched, tx)
		}
	}
	return matched, nil
}

// LoadCSV streams the ledger file, parsing rows in bounded-worker
// batches. Expected header: id,user_id,amount,status,type,transaction_date.
// Malformed rows are skipped and counted.
func (l *Ledger) LoadCSV(ctx context.Context, filename string) error {
	l.csvPath = filename

	start := time.Now()
	l.logger.Info("loading transaction ledger", "filename", filename)

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 10*1024*1024) // 10MB buffer

	// Skip header
	if !scanner.Scan() {
		return fmt.Errorf("empty file")
	}

	var all []models.Transaction
	batch := make([]string, 0, batchSize)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		batch = append(batch, scanner.Text())

		if len(batch) >= batchSize {
			parsed, err := l.parseBatch(ctx, batch)
			if err != nil {
				return err
			}
			all = append(all, parsed...)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		parsed, err := l.parseBatch(ctx, batch)
		if err != nil {
			return err
		}
		all = append(all, parsed...)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan error: %w", err)
	}

	if len(all) == 0 {
		return fmt.Errorf("no valid records found")
	}

	l.mu.Lock()
	l.transactions = all
	l.loadedAt = time.Now()
	l.mu.Unlock()

	l.logger.Info("ledger loaded",
		"records", len(all),
		"skipped", l.skipped.Load(),
		"duration", time.Since(start))

	return nil
}

// parseBatch parses lines in parallel but writes results by index so
// file order survives.
func (l *Ledger) parseBatch(ctx context.Context, batch []string) ([]models.Transaction, error) {
	var wg errgroup.Group
	wg.SetLimit(maxWorkers)

	parsed := make([]models.Transaction, len(batch))
	valid := make([]bool, len(batch))

	for i, line := range batch {
		wg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			tx, err := parseTransaction(strings.Split(line, ","))
			if err != nil {
				l.skipped.Add(1)
				return nil // Skip invalid records
			}

			parsed[i] = tx
			valid[i] = true
			return nil
		})
	}

	if err := wg.Wait(); err != nil {
		return nil, err
	}

	result := make([]models.Transaction, 0, len(batch))
	for i, tx := range parsed {
		if valid[i] {
			result = append(result, tx)
		}
	}
	return result, nil
}

func parseTransaction(record []string) (models.Transaction, error) {
	if len(record) < 6 {
		return models.Transaction{}, fmt.Errorf("insufficient columns")
	}

	id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil {
		return models.Transaction{}, err
	}

	userID, err := strconv.ParseInt(strings.TrimSpace(record[1]), 10, 64)
	if err != nil {
		return models.Transaction{}, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[2]))
	if err != nil {
		return models.Transaction{}, err
	}

	status := models.Status(strings.ToLower(strings.TrimSpace(record[3])))
	if !status.Valid() {
		return models.Transaction{}, fmt.Errorf("invalid status %q", record[3])
	}

	txType := models.Type(strings.ToLower(strings.TrimSpace(record[4])))
	if !txType.Valid() {
		return models.Transaction{}, fmt.Errorf("invalid type %q", record[4])
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(record[5]))
	if err != nil {
		return models.Transaction{}, err
	}

	return models.Transaction{
		ID:     id,
		UserID: userID,
		Amount: amount,
		Status: status,
		Type:   txType,
		Date:   date,
	}, nil
}

// Stats exposes load metadata for the admin endpoint.
func (l *Ledger) Stats() map[string]any {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return map[string]any{
		"record_count": len(l.transactions),
		"skipped_rows": l.skipped.Load(),
		"loaded_at":    l.loadedAt,
		"source":       l.csvPath,
	}
}
