// Package seed generates demo fixtures: a transaction ledger CSV and
// the matching semicolon-separated user-country mapping.
package seed

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"txn-analytics/internal/models"
)

var countries = []string{
	"Germany", "France", "United States", "United Kingdom", "Spain",
	"Italy", "Netherlands", "Poland", "Brazil", "Japan",
}

// Options controls fixture generation. Distributions follow the demo
// dataset conventions: 70% successful, 60% payment, amounts uniform in
// 1.00..1000.00, dates uniform over the trailing Days window. A
// fraction of users is left out of the country mapping on purpose to
// exercise the unmapped-user drop policy.
type Options struct {
	Users        int
	Transactions int
	Days         int
	UnmappedRate float64
	Seed         uint64
	OutDir       string
}

func DefaultOptions() Options {
	return Options{
		Users:        120,
		Transactions: 12000,
		Days:         730,
		UnmappedRate: 0.1,
		Seed:         1,
		OutDir:       "data",
	}
}

// Generate produces the transaction set and the user-country mapping
// in memory.
func Generate(opts Options) ([]models.Transaction, map[int64]string) {
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -opts.Days)

	byUser := make(map[int64]string, opts.Users)
	for userID := int64(1); userID <= int64(opts.Users); userID++ {
		if rng.Float64() < opts.UnmappedRate {
			continue
		}
		byUser[userID] = countries[rng.IntN(len(countries))]
	}

	txs := make([]models.Transaction, 0, opts.Transactions)
	for i := 0; i < opts.Transactions; i++ {
		status := models.StatusSuccessful
		if rng.Float64() >= 0.7 {
			status = models.StatusFailed
		}

		txType := models.TypePayment
		if rng.Float64() >= 0.6 {
			txType = models.TypeInvoice
		}

		// 1.00 .. 1000.00, two fractional digits exactly
		cents := int64(100 + rng.IntN(99901))

		day := start.AddDate(0, 0, rng.IntN(opts.Days+1))

		txs = append(txs, models.Transaction{
			ID:     int64(i + 1),
			UserID: int64(1 + rng.IntN(opts.Users)),
			Amount: decimal.New(cents, -2),
			Status: status,
			Type:   txType,
			Date:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		})
	}

	return txs, byUser
}

// WriteFiles writes transactions.csv and user_countries.csv under
// opts.OutDir.
func WriteFiles(opts Options, txs []models.Transaction, byUser map[int64]string) error {
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := writeTransactions(filepath.Join(opts.OutDir, "transactions.csv"), txs); err != nil {
		return err
	}
	return writeCountries(filepath.Join(opts.OutDir, "user_countries.csv"), byUser, opts.Users)
}

func writeTransactions(path string, txs []models.Transaction) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintln(w, "id,user_id,amount,status,type,transaction_date")
	for _, tx := range txs {
		fmt.Fprintf(w, "%d,%d,%s,%s,%s,%s\n",
			tx.ID, tx.UserID, tx.Amount.StringFixed(2), tx.Status, tx.Type,
			tx.Date.Format("2006-01-02"))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeCountries(path string, byUser map[int64]string, users int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintln(w, "user_id;country")
	for userID := int64(1); userID <= int64(users); userID++ {
		if country, ok := byUser[userID]; ok {
			fmt.Fprintf(w, "%d;%s\n", userID, country)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
