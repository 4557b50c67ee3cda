package invoices

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/seth-vargas/biztime/internal/platform/db"
	"github.com/seth-vargas/biztime/internal/shared"
)

const invoiceColumns = `id, comp_code, amt, paid, add_date, paid_date`

// Repository is the data access contract for invoices.
type Repository interface {
	List(ctx context.Context) ([]Summary, error)
	GetByID(ctx context.Context, id int64) (Invoice, error)
	GetCompany(ctx context.Context, code string) (CompanyInfo, error)
	Create(ctx context.Context, compCode string, amt decimal.Decimal) (Invoice, error)
	Update(ctx context.Context, inv Invoice) (Invoice, error)
	Delete(ctx context.Context, id int64) error
	ListOverdue(ctx context.Context, addedBefore time.Time) ([]Invoice, error)
	// Today is the store's CURRENT_DATE, the clock add_date defaults to.
	Today(ctx context.Context) (time.Time, error)
}

type repository struct {
	db db.DBTX
}

// NewRepository builds a Postgres backed repository on top of a pool or tx.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

func (r *repository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.db.Query(ctx, `SELECT id, comp_code FROM invoices`)
	if err != nil {
		return nil, fmt.Errorf("invoices: list: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.CompCode); err != nil {
			return nil, fmt.Errorf("invoices: scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (Invoice, error) {
	row := r.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	inv, err := scanInvoice(row)
	if err != nil {
		return Invoice{}, fmt.Errorf("invoices: get %d: %w", id, db.Classify(err))
	}
	return inv, nil
}

func (r *repository) GetCompany(ctx context.Context, code string) (CompanyInfo, error) {
	var c CompanyInfo
	err := r.db.QueryRow(ctx, `SELECT code, name, description FROM companies WHERE code = $1`, code).
		Scan(&c.Code, &c.Name, &c.Description)
	if err != nil {
		return CompanyInfo{}, fmt.Errorf("invoices: get company %s: %w", code, db.Classify(err))
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, compCode string, amt decimal.Decimal) (Invoice, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO invoices (comp_code, amt) VALUES ($1, $2) RETURNING `+invoiceColumns,
		compCode, db.Numeric(amt),
	)
	inv, err := scanInvoice(row)
	if err != nil {
		return Invoice{}, fmt.Errorf("invoices: create for %s: %w", compCode, db.Classify(err))
	}
	return inv, nil
}

func (r *repository) Update(ctx context.Context, inv Invoice) (Invoice, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE invoices SET amt = $2, paid = $3, paid_date = $4 WHERE id = $1 RETURNING `+invoiceColumns,
		inv.ID, db.Numeric(inv.Amt), inv.Paid, toDate(inv.PaidDate),
	)
	updated, err := scanInvoice(row)
	if err != nil {
		return Invoice{}, fmt.Errorf("invoices: update %d: %w", inv.ID, db.Classify(err))
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("invoices: delete %d: %w", id, db.Classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoices: delete %d: %w", id, shared.ErrNotFound)
	}
	return nil
}

// ListOverdue returns unpaid invoices added before the given date, oldest first.
func (r *repository) ListOverdue(ctx context.Context, addedBefore time.Time) ([]Invoice, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE paid = false AND add_date < $1 ORDER BY add_date, id`,
		pgtype.Date{Time: addedBefore, Valid: true},
	)
	if err != nil {
		return nil, fmt.Errorf("invoices: list overdue: %w", err)
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("invoices: scan overdue: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *repository) Today(ctx context.Context) (time.Time, error) {
	var today pgtype.Date
	if err := r.db.QueryRow(ctx, `SELECT CURRENT_DATE`).Scan(&today); err != nil {
		return time.Time{}, fmt.Errorf("invoices: current date: %w", err)
	}
	return DateOf(today.Time), nil
}

func scanInvoice(row pgx.Row) (Invoice, error) {
	var (
		inv      Invoice
		amt      pgtype.Numeric
		addDate  pgtype.Date
		paidDate pgtype.Date
	)
	if err := row.Scan(&inv.ID, &inv.CompCode, &amt, &inv.Paid, &addDate, &paidDate); err != nil {
		return Invoice{}, err
	}
	value, err := db.Decimal(amt)
	if err != nil {
		return Invoice{}, fmt.Errorf("invoices: amount of %d: %w", inv.ID, err)
	}
	inv.Amt = value
	inv.AddDate = addDate.Time
	if paidDate.Valid {
		paidOn := paidDate.Time
		inv.PaidDate = &paidOn
	}
	return inv, nil
}

func toDate(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *t, Valid: true}
}
