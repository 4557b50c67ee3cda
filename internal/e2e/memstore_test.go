package e2e

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seth-vargas/biztime/internal/companies"
	"github.com/seth-vargas/biztime/internal/industries"
	"github.com/seth-vargas/biztime/internal/invoices"
	"github.com/seth-vargas/biztime/internal/shared"
)

// memStore mimics the Postgres schema closely enough to exercise the
// cascade and constraint behaviour the HTTP layer depends on.
type memStore struct {
	mu           sync.Mutex
	today        time.Time
	companyOrder []string
	companies    map[string]companies.Company
	nextInvoice  int64
	invoices     map[int64]invoices.Invoice
	industries   []industries.Industry
	links        []industries.Link
}

func newMemStore(today time.Time) *memStore {
	return &memStore{
		today:       today,
		companies:   make(map[string]companies.Company),
		nextInvoice: 1,
		invoices:    make(map[int64]invoices.Invoice),
	}
}

func (s *memStore) invoiceIDs() []int64 {
	ids := make([]int64, 0, len(s.invoices))
	for id := range s.invoices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *memStore) industry(code string) (industries.Industry, bool) {
	for _, ind := range s.industries {
		if ind.Code == code {
			return ind, true
		}
	}
	return industries.Industry{}, false
}

type companyRepo struct{ *memStore }

func (r companyRepo) List(ctx context.Context) ([]companies.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []companies.Summary{}
	for _, code := range r.companyOrder {
		c := r.companies[code]
		out = append(out, companies.Summary{Code: c.Code, Name: c.Name})
	}
	return out, nil
}

func (r companyRepo) GetByCode(ctx context.Context, code string) (companies.Company, []string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[code]
	if !ok {
		return companies.Company{}, nil, fmt.Errorf("memstore: %w", shared.ErrNotFound)
	}
	var names []string
	for _, l := range r.links {
		if l.CompCode != code {
			continue
		}
		if ind, ok := r.industry(l.IndustryCode); ok && ind.Name != nil {
			names = append(names, *ind.Name)
		}
	}
	return c, names, nil
}

func (r companyRepo) ListInvoices(ctx context.Context, code string) ([]companies.InvoiceRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []companies.InvoiceRef{}
	for _, id := range r.invoiceIDs() {
		if inv := r.invoices[id]; inv.CompCode == code {
			out = append(out, companies.InvoiceRef{ID: id, CompCode: code})
		}
	}
	return out, nil
}

func (r companyRepo) Create(ctx context.Context, c companies.Company) (companies.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.companies[c.Code]; exists {
		return companies.Company{}, fmt.Errorf("memstore: companies_pkey: %w", shared.ErrDuplicate)
	}
	for _, existing := range r.companies {
		if existing.Name == c.Name {
			return companies.Company{}, fmt.Errorf("memstore: companies_name_key: %w", shared.ErrDuplicate)
		}
	}
	r.companies[c.Code] = c
	r.companyOrder = append(r.companyOrder, c.Code)
	return c, nil
}

func (r companyRepo) Update(ctx context.Context, c companies.Company) (companies.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[c.Code]; !ok {
		return companies.Company{}, fmt.Errorf("memstore: %w", shared.ErrNotFound)
	}
	r.companies[c.Code] = c
	return c, nil
}

func (r companyRepo) Delete(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[code]; !ok {
		return fmt.Errorf("memstore: %w", shared.ErrNotFound)
	}
	delete(r.companies, code)
	for i, c := range r.companyOrder {
		if c == code {
			r.companyOrder = append(r.companyOrder[:i], r.companyOrder[i+1:]...)
			break
		}
	}
	for id, inv := range r.invoices {
		if inv.CompCode == code {
			delete(r.invoices, id)
		}
	}
	kept := r.links[:0]
	for _, l := range r.links {
		if l.CompCode != code {
			kept = append(kept, l)
		}
	}
	r.links = kept
	return nil
}

type invoiceRepo struct{ *memStore }

func (r invoiceRepo) List(ctx context.Context) ([]invoices.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []invoices.Summary{}
	for _, id := range r.invoiceIDs() {
		out = append(out, invoices.Summary{ID: id, CompCode: r.invoices[id].CompCode})
	}
	return out, nil
}

func (r invoiceRepo) GetByID(ctx context.Context, id int64) (invoices.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	if !ok {
		return invoices.Invoice{}, fmt.Errorf("memstore: %w", shared.ErrNotFound)
	}
	return inv, nil
}

func (r invoiceRepo) GetCompany(ctx context.Context, code string) (invoices.CompanyInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[code]
	if !ok {
		return invoices.CompanyInfo{}, fmt.Errorf("memstore: %w", shared.ErrNotFound)
	}
	return invoices.CompanyInfo{Code: c.Code, Name: c.Name, Description: c.Description}, nil
}

func (r invoiceRepo) Create(ctx context.Context, compCode string, amt decimal.Decimal) (invoices.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[compCode]; !ok {
		return invoices.Invoice{}, fmt.Errorf("memstore: invoices_comp_code_fkey: %w", shared.ErrValidation)
	}
	inv := invoices.Invoice{ID: r.nextInvoice, CompCode: compCode, Amt: amt, AddDate: r.today}
	r.invoices[inv.ID] = inv
	r.nextInvoice++
	return inv, nil
}

func (r invoiceRepo) Update(ctx context.Context, inv invoices.Invoice) (invoices.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[inv.ID]; !ok {
		return invoices.Invoice{}, fmt.Errorf("memstore: %w", shared.ErrNotFound)
	}
	r.invoices[inv.ID] = inv
	return inv, nil
}

func (r invoiceRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[id]; !ok {
		return fmt.Errorf("memstore: %w", shared.ErrNotFound)
	}
	delete(r.invoices, id)
	return nil
}

func (r invoiceRepo) ListOverdue(ctx context.Context, addedBefore time.Time) ([]invoices.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []invoices.Invoice
	for _, id := range r.invoiceIDs() {
		if inv := r.invoices[id]; !inv.Paid && inv.AddDate.Before(addedBefore) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r invoiceRepo) Today(ctx context.Context) (time.Time, error) {
	return r.today, nil
}

type industryRepo struct{ *memStore }

func (r industryRepo) List(ctx context.Context) ([]industries.Industry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]industries.Industry{}, r.industries...), nil
}

func (r industryRepo) Create(ctx context.Context, ind industries.Industry) (industries.Industry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.industry(ind.Code); ok {
		return industries.Industry{}, fmt.Errorf("memstore: industries_pkey: %w", shared.ErrDuplicate)
	}
	r.industries = append(r.industries, ind)
	return ind, nil
}

func (r industryRepo) CompaniesByIndustry(ctx context.Context, code string) ([]industries.CompanyRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []industries.CompanyRow{}
	ind, ok := r.industry(code)
	if !ok {
		return out, nil
	}
	for _, l := range r.links {
		if l.IndustryCode == code {
			c := r.companies[l.CompCode]
			out = append(out, industries.CompanyRow{Name: c.Name, Code: c.Code, Industry: ind.Name})
		}
	}
	return out, nil
}

func (r industryRepo) Associate(ctx context.Context, link industries.Link) (industries.Link, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.industry(link.IndustryCode); !ok {
		return industries.Link{}, fmt.Errorf("memstore: industry fkey: %w", shared.ErrValidation)
	}
	if _, ok := r.companies[link.CompCode]; !ok {
		return industries.Link{}, fmt.Errorf("memstore: company fkey: %w", shared.ErrValidation)
	}
	for _, l := range r.links {
		if l == link {
			return industries.Link{}, fmt.Errorf("memstore: industries_companies_pkey: %w", shared.ErrDuplicate)
		}
	}
	r.links = append(r.links, link)
	return link, nil
}
