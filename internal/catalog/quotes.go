package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/worktop/internal/pricing"
)

const timestampLayout = "2006-01-02 15:04:05"

// NewQuote is a computed quote about to be saved. Configurations holds the
// order as it was submitted, kept verbatim next to the priced snapshot.
type NewQuote struct {
	Title          string
	Notes          string
	Quote          pricing.Quote
	Configurations json.RawMessage
}

// SavedQuote is a stored snapshot. It is never recalculated on read.
type SavedQuote struct {
	ID             int64           `json:"-"`
	PublicID       string          `json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	Title          string          `json:"title"`
	Notes          string          `json:"notes"`
	Quote          pricing.Quote   `json:"quote"`
	Configurations json.RawMessage `json:"configurations"`
}

// QuoteSummary is one row of the saved quote listing.
type QuoteSummary struct {
	PublicID   string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Title      string    `json:"title"`
	Notes      string    `json:"notes"`
	Currency   string    `json:"currency"`
	TotalGross int64     `json:"total_gross"`
}

// SaveQuote stores q under a new public id.
func (s *Store) SaveQuote(ctx context.Context, q NewQuote) (SavedQuote, error) {
	quoteJSON, err := json.Marshal(q.Quote)
	if err != nil {
		return SavedQuote{}, fmt.Errorf("encode quote snapshot: %w", err)
	}
	configurations := q.Configurations
	if len(configurations) == 0 {
		configurations = json.RawMessage("[]")
	}

	saved := SavedQuote{
		PublicID:       uuid.NewString(),
		CreatedAt:      s.now().UTC().Truncate(time.Second),
		Title:          strings.TrimSpace(q.Title),
		Notes:          strings.TrimSpace(q.Notes),
		Quote:          q.Quote,
		Configurations: configurations,
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO quotes (
			public_id, created_at, title, notes, currency,
			total_net, total_vat, total_gross,
			quote_json, configurations_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		saved.PublicID,
		saved.CreatedAt.Format(timestampLayout),
		saved.Title,
		saved.Notes,
		q.Quote.Currency,
		q.Quote.GrandTotalNet,
		q.Quote.GrandTotalVAT,
		q.Quote.GrandTotalGross,
		string(quoteJSON),
		string(configurations),
	)
	if err != nil {
		return SavedQuote{}, fmt.Errorf("insert quote: %w", err)
	}

	if saved.ID, err = res.LastInsertId(); err != nil {
		return SavedQuote{}, fmt.Errorf("read quote id: %w", err)
	}
	return saved, nil
}

// ListQuotes returns saved quotes newest first. A non-empty query filters on
// title and notes.
func (s *Store) ListQuotes(ctx context.Context, query string) ([]QuoteSummary, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT
			public_id,
			created_at,
			COALESCE(title, ''),
			COALESCE(notes, ''),
			currency,
			total_gross
		FROM quotes
		WHERE (? = '' OR COALESCE(title, '') LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY created_at DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]QuoteSummary, 0)
	for rows.Next() {
		var item QuoteSummary
		var createdAt timestamp
		if err := rows.Scan(&item.PublicID, &createdAt, &item.Title, &item.Notes, &item.Currency, &item.TotalGross); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		item.CreatedAt = createdAt.Time
		quotes = append(quotes, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return quotes, nil
}

// QuoteByID returns the snapshot stored under publicID.
func (s *Store) QuoteByID(ctx context.Context, publicID string) (SavedQuote, error) {
	if _, err := uuid.Parse(publicID); err != nil {
		return SavedQuote{}, fmt.Errorf("quote %q: %w", publicID, ErrNotFound)
	}

	var (
		saved          SavedQuote
		createdAt      timestamp
		quoteJSON      string
		configurations string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, public_id, created_at, COALESCE(title, ''), COALESCE(notes, ''), quote_json, configurations_json
		FROM quotes
		WHERE public_id = ?
	`, publicID).Scan(&saved.ID, &saved.PublicID, &createdAt, &saved.Title, &saved.Notes, &quoteJSON, &configurations)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedQuote{}, fmt.Errorf("quote %q: %w", publicID, ErrNotFound)
	}
	if err != nil {
		return SavedQuote{}, fmt.Errorf("query quote %q: %w", publicID, err)
	}

	if err := json.Unmarshal([]byte(quoteJSON), &saved.Quote); err != nil {
		return SavedQuote{}, fmt.Errorf("decode quote snapshot %q: %w", publicID, err)
	}
	saved.CreatedAt = createdAt.Time
	saved.Configurations = json.RawMessage(configurations)
	return saved, nil
}

// timestamp scans DATETIME columns whether the driver hands back a parsed
// time or the stored text.
type timestamp struct {
	time.Time
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		t.Time = time.Time{}
		return nil
	}
	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (t *timestamp) parse(s string) error {
	for _, layout := range []string{timestampLayout, time.RFC3339Nano, "2006-01-02T15:04:05Z"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("parse timestamp %q", s)
}
