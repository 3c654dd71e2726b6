package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository exposes the persistent queries the report service depends on.
type Repository interface {
	// FetchLines returns move lines matching the filter, ordered by date,
	// move name, account code and reference.
	FetchLines(ctx context.Context, f LineFilter) ([]JournalLine, error)
	// MatchedAfter returns the distinct reconciliation-group ids covering
	// at least one line dated strictly after the given date.
	MatchedAfter(ctx context.Context, after time.Time) ([]int64, error)
	// SearchAccounts resolves the account scope for a report.
	SearchAccounts(ctx context.Context, q AccountQuery) ([]AccountRef, error)
	// GroupRefs looks up display metadata for the group-by values.
	GroupRefs(ctx context.Context, dim GroupDimension, keys []int64) ([]GroupRef, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository wraps a pgx pool.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const fetchLinesSQL = `SELECT
	l.id,
	l.date,
	l.date_maturity,
	j.code AS journal_code,
	acc.code AS account_code,
	acc.name AS account_name,
	acc.account_type,
	acc.include_initial_balance,
	COALESCE(l.ref, ''),
	m.name AS move_name,
	COALESCE(l.name, ''),
	l.debit,
	l.credit,
	l.amount_currency,
	COALESCE(c.symbol, ''),
	COALESCE(afr.name, ''),
	l.full_reconcile_id,
	l.partner_id,
	l.account_id,
	l.journal_id,
	COALESCE(p.name, '')
FROM move_lines l
	JOIN moves m ON m.id = l.move_id
	JOIN journals j ON j.id = l.journal_id
	JOIN accounts acc ON acc.id = l.account_id
	LEFT JOIN currencies c ON c.id = l.currency_id
	LEFT JOIN full_reconciles afr ON afr.id = l.full_reconcile_id
	LEFT JOIN partners p ON p.id = l.partner_id
WHERE `

func (r *repository) FetchLines(ctx context.Context, f LineFilter) ([]JournalLine, error) {
	where, args := f.Build(0)
	query := fetchLinesSQL + where + `
ORDER BY l.date, m.name, acc.code, l.ref`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryErr("fetch lines", err)
	}
	defer rows.Close()

	var lines []JournalLine
	for rows.Next() {
		var (
			line     JournalLine
			maturity *time.Time
		)
		err := rows.Scan(&line.ID, &line.Date, &maturity, &line.JournalCode,
			&line.AccountCode, &line.AccountName, &line.AccountType,
			&line.IncludeInitialBalance, &line.Ref, &line.MoveName, &line.Name,
			&line.Debit, &line.Credit, &line.AmountCurrency, &line.CurrencyCode,
			&line.MatchingNumber, &line.MatchingNumberID, &line.PartnerID,
			&line.AccountID, &line.JournalID, &line.PartnerName)
		if err != nil {
			return nil, err
		}
		if maturity != nil {
			line.DateMaturity = *maturity
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *repository) MatchedAfter(ctx context.Context, after time.Time) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT afr.id
FROM full_reconciles afr
	JOIN move_lines l ON l.full_reconcile_id = afr.id
WHERE l.date > $1`, after)
	if err != nil {
		return nil, wrapQueryErr("matched after", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *repository) SearchAccounts(ctx context.Context, q AccountQuery) ([]AccountRef, error) {
	clauses := "deprecated = false"
	args := make([]any, 0, 3)
	if len(q.Types) > 0 {
		types := make([]string, 0, len(q.Types))
		for _, t := range q.Types {
			types = append(types, string(t))
		}
		args = append(args, types)
		clauses += fmt.Sprintf(" AND account_type = ANY($%d)", len(args))
	}
	if len(q.IncludeIDs) > 0 {
		args = append(args, q.IncludeIDs)
		clauses += fmt.Sprintf(" AND id = ANY($%d)", len(args))
	} else if len(q.ExcludeIDs) > 0 {
		args = append(args, q.ExcludeIDs)
		clauses += fmt.Sprintf(" AND NOT (id = ANY($%d))", len(args))
	}
	rows, err := r.db.Query(ctx, `SELECT id, code, name FROM accounts WHERE `+clauses+` ORDER BY code`, args...)
	if err != nil {
		return nil, wrapQueryErr("search accounts", err)
	}
	defer rows.Close()

	var accounts []AccountRef
	for rows.Next() {
		var acc AccountRef
		if err := rows.Scan(&acc.ID, &acc.Code, &acc.Name); err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func (r *repository) GroupRefs(ctx context.Context, dim GroupDimension, keys []int64) ([]GroupRef, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	var query string
	switch dim {
	case GroupByPartner:
		query = `SELECT id, '', name, COALESCE(ref, '') FROM partners WHERE id = ANY($1)`
	case GroupByJournal:
		query = `SELECT id, code, name, '' FROM journals WHERE id = ANY($1)`
	default:
		query = `SELECT id, code, name, '' FROM accounts WHERE id = ANY($1)`
	}
	rows, err := r.db.Query(ctx, query, keys)
	if err != nil {
		return nil, wrapQueryErr("group refs", err)
	}
	defer rows.Close()

	var refs []GroupRef
	for rows.Next() {
		var ref GroupRef
		if err := rows.Scan(&ref.Key, &ref.Code, &ref.Name, &ref.Ref); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// wrapQueryErr surfaces schema problems as configuration errors so handlers
// can distinguish them from transient database failures.
func wrapQueryErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42P01" {
		return fmt.Errorf("ledger: %s: %w: %s", op, ErrBadConfiguration, pgErr.Message)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return fmt.Errorf("ledger: %s: %w", op, err)
}
