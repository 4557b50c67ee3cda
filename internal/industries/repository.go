package industries

import (
	"context"
	"fmt"

	"github.com/seth-vargas/biztime/internal/platform/db"
)

// Repository is the data access contract for industries.
type Repository interface {
	List(ctx context.Context) ([]Industry, error)
	Create(ctx context.Context, industry Industry) (Industry, error)
	CompaniesByIndustry(ctx context.Context, code string) ([]CompanyRow, error)
	Associate(ctx context.Context, link Link) (Link, error)
}

type repository struct {
	db db.DBTX
}

// NewRepository builds a Postgres backed repository on top of a pool or tx.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

func (r *repository) List(ctx context.Context) ([]Industry, error) {
	rows, err := r.db.Query(ctx, `SELECT code, name FROM industries`)
	if err != nil {
		return nil, fmt.Errorf("industries: list: %w", err)
	}
	defer rows.Close()

	out := []Industry{}
	for rows.Next() {
		var ind Industry
		if err := rows.Scan(&ind.Code, &ind.Name); err != nil {
			return nil, fmt.Errorf("industries: scan: %w", err)
		}
		out = append(out, ind)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, industry Industry) (Industry, error) {
	var out Industry
	err := r.db.QueryRow(ctx,
		`INSERT INTO industries (code, name) VALUES ($1, $2) RETURNING code, name`,
		industry.Code, industry.Name,
	).Scan(&out.Code, &out.Name)
	if err != nil {
		return Industry{}, fmt.Errorf("industries: create %s: %w", industry.Code, db.Classify(err))
	}
	return out, nil
}

// CompaniesByIndustry lists companies linked to the industry. An unknown
// industry and an industry without companies both yield an empty slice.
func (r *repository) CompaniesByIndustry(ctx context.Context, code string) ([]CompanyRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.name, c.code, i.name AS industry
		FROM companies AS c
		JOIN industries_companies AS ic ON c.code = ic.comp_code
		JOIN industries AS i ON ic.industry_code = i.code
		WHERE i.code = $1`, code)
	if err != nil {
		return nil, fmt.Errorf("industries: companies of %s: %w", code, err)
	}
	defer rows.Close()

	out := []CompanyRow{}
	for rows.Next() {
		var row CompanyRow
		if err := rows.Scan(&row.Name, &row.Code, &row.Industry); err != nil {
			return nil, fmt.Errorf("industries: scan company: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) Associate(ctx context.Context, link Link) (Link, error) {
	var out Link
	err := r.db.QueryRow(ctx,
		`INSERT INTO industries_companies (industry_code, comp_code) VALUES ($1, $2) RETURNING industry_code, comp_code`,
		link.IndustryCode, link.CompCode,
	).Scan(&out.IndustryCode, &out.CompCode)
	if err != nil {
		return Link{}, fmt.Errorf("industries: associate %s with %s: %w", link.CompCode, link.IndustryCode, db.Classify(err))
	}
	return out, nil
}
