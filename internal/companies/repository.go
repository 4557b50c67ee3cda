package companies

import (
	"context"
	"fmt"

	"github.com/seth-vargas/biztime/internal/platform/db"
	"github.com/seth-vargas/biztime/internal/shared"
)

// Repository is the data access contract for companies.
type Repository interface {
	List(ctx context.Context) ([]Summary, error)
	GetByCode(ctx context.Context, code string) (Company, []string, error)
	ListInvoices(ctx context.Context, code string) ([]InvoiceRef, error)
	Create(ctx context.Context, company Company) (Company, error)
	Update(ctx context.Context, company Company) (Company, error)
	Delete(ctx context.Context, code string) error
}

type repository struct {
	db db.DBTX
}

// NewRepository builds a Postgres backed repository on top of a pool or tx.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

func (r *repository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.db.Query(ctx, `SELECT code, name FROM companies`)
	if err != nil {
		return nil, fmt.Errorf("companies: list: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.Code, &s.Name); err != nil {
			return nil, fmt.Errorf("companies: scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByCode loads a company together with the names of its industries.
func (r *repository) GetByCode(ctx context.Context, code string) (Company, []string, error) {
	const query = `
		SELECT c.code, c.name, c.description, i.name AS industry_name
		FROM companies AS c
		LEFT JOIN industries_companies AS ic ON c.code = ic.comp_code
		LEFT JOIN industries AS i ON ic.industry_code = i.code
		WHERE c.code = $1`

	rows, err := r.db.Query(ctx, query, code)
	if err != nil {
		return Company{}, nil, fmt.Errorf("companies: get %s: %w", code, err)
	}
	defer rows.Close()

	var joined []industryRow
	for rows.Next() {
		var row industryRow
		if err := rows.Scan(&row.Code, &row.Name, &row.Description, &row.IndustryName); err != nil {
			return Company{}, nil, fmt.Errorf("companies: scan: %w", err)
		}
		joined = append(joined, row)
	}
	if err := rows.Err(); err != nil {
		return Company{}, nil, fmt.Errorf("companies: get %s: %w", code, err)
	}
	return foldIndustryRows(code, joined)
}

// ListInvoices returns the invoice references owned by code.
func (r *repository) ListInvoices(ctx context.Context, code string) ([]InvoiceRef, error) {
	rows, err := r.db.Query(ctx, `SELECT id, comp_code FROM invoices WHERE comp_code = $1 ORDER BY id`, code)
	if err != nil {
		return nil, fmt.Errorf("companies: list invoices %s: %w", code, err)
	}
	defer rows.Close()

	out := []InvoiceRef{}
	for rows.Next() {
		var ref InvoiceRef
		if err := rows.Scan(&ref.ID, &ref.CompCode); err != nil {
			return nil, fmt.Errorf("companies: scan invoice: %w", err)
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, company Company) (Company, error) {
	var out Company
	err := r.db.QueryRow(ctx,
		`INSERT INTO companies (code, name, description) VALUES ($1, $2, $3) RETURNING code, name, description`,
		company.Code, company.Name, company.Description,
	).Scan(&out.Code, &out.Name, &out.Description)
	if err != nil {
		return Company{}, fmt.Errorf("companies: create %s: %w", company.Code, db.Classify(err))
	}
	return out, nil
}

func (r *repository) Update(ctx context.Context, company Company) (Company, error) {
	var out Company
	err := r.db.QueryRow(ctx,
		`UPDATE companies SET name = $2, description = $3 WHERE code = $1 RETURNING code, name, description`,
		company.Code, company.Name, company.Description,
	).Scan(&out.Code, &out.Name, &out.Description)
	if err != nil {
		return Company{}, fmt.Errorf("companies: update %s: %w", company.Code, db.Classify(err))
	}
	return out, nil
}

func (r *repository) Delete(ctx context.Context, code string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM companies WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("companies: delete %s: %w", code, db.Classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("companies: delete %s: %w", code, shared.ErrNotFound)
	}
	return nil
}

// foldIndustryRows collapses the left join into one company and its industry
// names. Rows without an industry are the join's placeholder and are dropped.
func foldIndustryRows(code string, rows []industryRow) (Company, []string, error) {
	if len(rows) == 0 {
		return Company{}, nil, fmt.Errorf("companies: get %s: %w", code, shared.ErrNotFound)
	}
	first := rows[0]
	company := Company{Code: first.Code, Name: first.Name, Description: first.Description}
	industries := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.IndustryName == nil {
			continue
		}
		industries = append(industries, *row.IndustryName)
	}
	return company, industries, nil
}
