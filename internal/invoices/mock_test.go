package invoices

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seth-vargas/biztime/internal/shared"
)

type mockRepository struct {
	mu        sync.Mutex
	nextID    int64
	today     time.Time
	clock     time.Time
	invoices  map[int64]Invoice
	companies map[string]CompanyInfo

	listCalls int
	updateErr error
	todayErr  error
}

func newMockRepository(today time.Time) *mockRepository {
	return &mockRepository{
		nextID:    1,
		today:     today,
		clock:     today,
		invoices:  make(map[int64]Invoice),
		companies: make(map[string]CompanyInfo),
	}
}

func (m *mockRepository) ids() []int64 {
	ids := make([]int64, 0, len(m.invoices))
	for id := range m.invoices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *mockRepository) List(ctx context.Context) ([]Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	out := []Summary{}
	for _, id := range m.ids() {
		out = append(out, Summary{ID: id, CompCode: m.invoices[id].CompCode})
	}
	return out, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.invoices[id]
	if !ok {
		return Invoice{}, fmt.Errorf("mock: %w", shared.ErrNotFound)
	}
	return inv, nil
}

func (m *mockRepository) GetCompany(ctx context.Context, code string) (CompanyInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.companies[code]
	if !ok {
		return CompanyInfo{}, fmt.Errorf("mock: %w", shared.ErrNotFound)
	}
	return c, nil
}

func (m *mockRepository) Create(ctx context.Context, compCode string, amt decimal.Decimal) (Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[compCode]; !ok {
		return Invoice{}, fmt.Errorf("mock: foreign key: %w", shared.ErrValidation)
	}
	inv := Invoice{ID: m.nextID, CompCode: compCode, Amt: amt, AddDate: m.today}
	m.invoices[inv.ID] = inv
	m.nextID++
	return inv, nil
}

func (m *mockRepository) Update(ctx context.Context, inv Invoice) (Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return Invoice{}, m.updateErr
	}
	if _, ok := m.invoices[inv.ID]; !ok {
		return Invoice{}, fmt.Errorf("mock: %w", shared.ErrNotFound)
	}
	m.invoices[inv.ID] = inv
	return inv, nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.invoices[id]; !ok {
		return fmt.Errorf("mock: %w", shared.ErrNotFound)
	}
	delete(m.invoices, id)
	return nil
}

func (m *mockRepository) ListOverdue(ctx context.Context, addedBefore time.Time) ([]Invoice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Invoice
	for _, id := range m.ids() {
		inv := m.invoices[id]
		if !inv.Paid && inv.AddDate.Before(addedBefore) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *mockRepository) Today(ctx context.Context) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clock, m.todayErr
}

type recordingNotifier struct {
	mu   sync.Mutex
	paid []Invoice
	err  error
}

func (n *recordingNotifier) InvoicePaid(ctx context.Context, inv Invoice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paid = append(n.paid, inv)
	return n.err
}

func ptr[T any](v T) *T {
	return &v
}
