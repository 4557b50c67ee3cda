package companies

import (
	"context"
	"fmt"
	"sync"

	"github.com/seth-vargas/biztime/internal/shared"
)

type mockRepository struct {
	mu         sync.Mutex
	order      []string
	companies  map[string]Company
	industries map[string][]string
	invoices   map[string][]InvoiceRef

	listCalls int
	listErr   error
	getErr    error
	createErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		companies:  make(map[string]Company),
		industries: make(map[string][]string),
		invoices:   make(map[string][]InvoiceRef),
	}
}

func (m *mockRepository) seed(c Company) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.companies[c.Code] = c
	m.order = append(m.order, c.Code)
}

func (m *mockRepository) List(ctx context.Context) ([]Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []Summary{}
	for _, code := range m.order {
		c := m.companies[code]
		out = append(out, Summary{Code: c.Code, Name: c.Name})
	}
	return out, nil
}

func (m *mockRepository) GetByCode(ctx context.Context, code string) (Company, []string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return Company{}, nil, m.getErr
	}
	c, ok := m.companies[code]
	if !ok {
		return Company{}, nil, fmt.Errorf("mock: %w", shared.ErrNotFound)
	}
	return c, append([]string(nil), m.industries[code]...), nil
}

func (m *mockRepository) ListInvoices(ctx context.Context, code string) ([]InvoiceRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]InvoiceRef{}, m.invoices[code]...), nil
}

func (m *mockRepository) Create(ctx context.Context, company Company) (Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return Company{}, m.createErr
	}
	if _, exists := m.companies[company.Code]; exists {
		return Company{}, fmt.Errorf("mock: %w", shared.ErrDuplicate)
	}
	m.companies[company.Code] = company
	m.order = append(m.order, company.Code)
	return company, nil
}

func (m *mockRepository) Update(ctx context.Context, company Company) (Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[company.Code]; !ok {
		return Company{}, fmt.Errorf("mock: %w", shared.ErrNotFound)
	}
	m.companies[company.Code] = company
	return company, nil
}

func (m *mockRepository) Delete(ctx context.Context, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[code]; !ok {
		return fmt.Errorf("mock: %w", shared.ErrNotFound)
	}
	delete(m.companies, code)
	delete(m.invoices, code)
	delete(m.industries, code)
	for i, c := range m.order {
		if c == code {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
