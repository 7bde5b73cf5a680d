package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/RahilKothari9/supplier-analysis/pkg/models"
)

// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS entities (
//	  ticker   TEXT PRIMARY KEY,
//	  name     TEXT,
//	  currency TEXT
//	);
//	CREATE TABLE IF NOT EXISTS statement_lines (
//	  ticker     TEXT NOT NULL REFERENCES entities(ticker),
//	  statement  TEXT NOT NULL,              -- income | balance | cashflow
//	  period     TEXT NOT NULL,              -- column header as published
//	  period_end DATE,
//	  line_item  TEXT NOT NULL,
//	  value      DOUBLE PRECISION,           -- NULL when undisclosed
//	  PRIMARY KEY (ticker, statement, period, line_item)
//	);

// Querier is the subset of *pgxpool.Pool the source uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresSource reads statements loaded into Postgres.
type PostgresSource struct {
	db Querier
}

// NewPostgresSource creates a source over an open pool.
func NewPostgresSource(db Querier) *PostgresSource {
	return &PostgresSource{db: db}
}

// StatementLine is one stored cell.
type StatementLine struct {
	Statement string
	Period    string
	LineItem  string
	Value     *float64
}

func (s *PostgresSource) FetchStatements(ctx context.Context, id string) (*models.Statements, error) {
	id = NormalizeID(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrNoData)
	}

	query := `
		SELECT statement, period, line_item, value
		FROM statement_lines
		WHERE ticker = $1
		ORDER BY statement, period_end DESC NULLS LAST, period
	`
	rows, err := s.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query statement lines: %w", err)
	}
	defer rows.Close()

	var lines []StatementLine
	for rows.Next() {
		var l StatementLine
		if err := rows.Scan(&l.Statement, &l.Period, &l.LineItem, &l.Value); err != nil {
			return nil, fmt.Errorf("failed to scan statement line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read statement lines: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, id)
	}

	st := BuildStatements(lines)

	var currency *string
	err = s.db.QueryRow(ctx, `SELECT currency FROM entities WHERE ticker = $1`, id).Scan(&currency)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to load entity currency: %w", err)
	}
	if currency != nil {
		st.Currency = *currency
	}
	return st, nil
}

func (s *PostgresSource) Exists(ctx context.Context, id string) (bool, error) {
	id = NormalizeID(id)
	if id == "" {
		return false, nil
	}
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM entities WHERE ticker = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check entity: %w", err)
	}
	return exists, nil
}

// BuildStatements groups stored lines into tables. Lines must arrive with
// periods most recent first within each statement.
func BuildStatements(lines []StatementLine) *models.Statements {
	builders := map[string]*tableBuilder{}
	for _, l := range lines {
		kind, ok := KindOf(l.Statement)
		if !ok {
			continue
		}
		b, ok := builders[kind]
		if !ok {
			b = newTableBuilder()
			builders[kind] = b
		}
		v := models.Unknown()
		if l.Value != nil {
			v = models.NewValue(*l.Value)
		}
		b.add(l.Period, normalizeItem(l.LineItem), v)
	}

	st := &models.Statements{}
	for kind, b := range builders {
		assign(st, kind, b.build())
	}
	return st
}
