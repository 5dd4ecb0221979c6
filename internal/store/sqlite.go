package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/mattn/go-sqlite3"

	apperrors "option-pricer/internal/errors"
	"option-pricer/internal/models"
)

// SQLiteStore implements QuoteStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the journal at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS quotes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		priced_at DATETIME NOT NULL,
		spot REAL,
		strike REAL,
		rate REAL,
		expiry REAL,
		volatility REAL,
		call_price REAL,
		put_price REAL,
		parity_gap REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_quotes_priced_at ON quotes(priced_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveQuotes inserts quotes in a single transaction. Non-finite values are
// stored as NULL and read back as NaN.
func (s *SQLiteStore) SaveQuotes(ctx context.Context, quotes []models.OptionQuote) error {
	if len(quotes) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewDataError("save_quotes", "failed to begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO quotes (priced_at, spot, strike, rate, expiry, volatility, call_price, put_price, parity_gap)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return apperrors.NewDataError("save_quotes", "failed to prepare statement", err)
	}
	defer stmt.Close()

	for _, q := range quotes {
		in := q.Inputs
		_, err := stmt.ExecContext(ctx, q.PricedAt.UTC(),
			finiteOrNull(in.Spot), finiteOrNull(in.Strike), finiteOrNull(in.Rate), finiteOrNull(in.Expiry), finiteOrNull(in.Volatility),
			finiteOrNull(q.Call), finiteOrNull(q.Put), finiteOrNull(q.ParityGap))
		if err != nil {
			return apperrors.NewDataError("save_quotes", "failed to insert quote", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewDataError("save_quotes", "failed to commit transaction", err)
	}

	return nil
}

// RecentQuotes returns journal entries newest first.
func (s *SQLiteStore) RecentQuotes(ctx context.Context, filter models.QuoteFilter) ([]models.OptionQuote, error) {
	query := "SELECT id, priced_at, spot, strike, rate, expiry, volatility, call_price, put_price, parity_gap FROM quotes WHERE 1=1"
	args := []interface{}{}

	if !filter.Since.IsZero() {
		query += " AND priced_at >= ?"
		args = append(args, filter.Since.UTC())
	}

	query += " ORDER BY priced_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewDataError("recent_quotes", "failed to query quotes", err)
	}
	defer rows.Close()

	var quotes []models.OptionQuote
	for rows.Next() {
		var q models.OptionQuote
		var vals [8]sql.NullFloat64
		if err := rows.Scan(&q.ID, &q.PricedAt, &vals[0], &vals[1], &vals[2], &vals[3], &vals[4],
			&vals[5], &vals[6], &vals[7]); err != nil {
			return nil, apperrors.NewDataError("recent_quotes", "failed to scan quote", err)
		}
		q.Inputs = models.PricingInputs{
			Spot:       nullToNaN(vals[0]),
			Strike:     nullToNaN(vals[1]),
			Rate:       nullToNaN(vals[2]),
			Expiry:     nullToNaN(vals[3]),
			Volatility: nullToNaN(vals[4]),
		}
		q.Call = nullToNaN(vals[5])
		q.Put = nullToNaN(vals[6])
		q.ParityGap = nullToNaN(vals[7])
		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDataError("recent_quotes", "failed to iterate quotes", err)
	}

	return quotes, nil
}

func finiteOrNull(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func nullToNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

// IsBusy reports whether err is a transient SQLite lock error worth retrying.
func IsBusy(err error) bool {
	var sqliteErr sqlite3.Error
	if !apperrors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}
