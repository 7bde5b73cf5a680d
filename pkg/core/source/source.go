// Package source provides statement data for an entity identifier. Every
// adapter returns the same models.Statements shape so the analysis engine
// never sees provider-specific layouts.
package source

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/RahilKothari9/supplier-analysis/pkg/models"
)

// ErrNoData is returned (wrapped) when a source holds no record at all for
// the identifier.
var ErrNoData = errors.New("no statement data")

// Source is the data-source collaborator the analysis engine depends on.
type Source interface {
	// FetchStatements returns the income statement, balance sheet and cash
	// flow tables. Any table may be empty.
	FetchStatements(ctx context.Context, id string) (*models.Statements, error)
	// Exists reports whether the identifier names a known entity, used only
	// to tell "unknown entity" apart from "financials unavailable".
	Exists(ctx context.Context, id string) (bool, error)
}

// Statement kinds, used for sheet names, URL segments and database rows.
const (
	KindIncome   = "income"
	KindBalance  = "balance"
	KindCashFlow = "cashflow"
)

// Kinds lists the statement kinds in fetch order.
var Kinds = []string{KindIncome, KindBalance, KindCashFlow}

// localID normalizes id for use as a file name inside a source directory.
// Identifiers that are empty or could step outside the directory are
// rejected.
func localID(id string) (string, bool) {
	id = NormalizeID(id)
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return "", false
	}
	return id, filepath.IsLocal(id)
}

// NormalizeID trims and upper-cases an identifier for lookups.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// tableOf returns the table stored under kind, or nil.
func tableOf(st *models.Statements, kind string) *models.StatementTable {
	switch kind {
	case KindIncome:
		return st.Income
	case KindBalance:
		return st.Balance
	case KindCashFlow:
		return st.CashFlow
	}
	return nil
}

// assign stores table under its kind. Unknown kinds are ignored.
func assign(st *models.Statements, kind string, table *models.StatementTable) {
	switch kind {
	case KindIncome:
		st.Income = table
	case KindBalance:
		st.Balance = table
	case KindCashFlow:
		st.CashFlow = table
	}
}

// kindAliases maps the sheet/section names providers use onto kinds.
var kindAliases = map[string]string{
	"income":              KindIncome,
	"income statement":    KindIncome,
	"financials":          KindIncome,
	"profit & loss":       KindIncome,
	"profit and loss":     KindIncome,
	"balance":             KindBalance,
	"balance sheet":       KindBalance,
	"balance_sheet":       KindBalance,
	"cashflow":            KindCashFlow,
	"cash flow":           KindCashFlow,
	"cash_flow":           KindCashFlow,
	"cash flows":          KindCashFlow,
	"income_statement":    KindIncome,
	"statement of income": KindIncome,
	"cash flow statement": KindCashFlow,
}

// KindOf resolves a provider section name to a statement kind.
func KindOf(name string) (string, bool) {
	kind, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]
	return kind, ok
}
