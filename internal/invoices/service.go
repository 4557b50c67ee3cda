package invoices

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/seth-vargas/biztime/internal/platform/cache"
)

// Notifier is told about invoices that just moved to paid.
type Notifier interface {
	InvoicePaid(ctx context.Context, inv Invoice) error
}

// Service holds the invoice use cases.
type Service struct {
	repo     Repository
	cache    *cache.Versioned
	notifier Notifier
	logger   *slog.Logger
}

// NewService builds a Service. cache and notifier may be nil.
func NewService(repo Repository, cache *cache.Versioned, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, cache: cache, notifier: notifier, logger: logger}
}

// List returns every invoice as an {id, comp_code} pair.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	var out []Summary
	err := s.cache.FetchJSON(ctx, &out, func(ctx context.Context) (any, error) {
		return s.repo.List(ctx)
	}, "invoices", "list")
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Summary{}
	}
	return out, nil
}

// Get returns the invoice together with its owning company.
func (s *Service) Get(ctx context.Context, id int64) (DetailView, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return DetailView{}, err
	}
	company, err := s.repo.GetCompany(ctx, inv.CompCode)
	if err != nil {
		return DetailView{}, err
	}
	return DetailView{View: NewView(inv), Company: company}, nil
}

// Create stores a new unpaid invoice for an existing company.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Invoice, error) {
	created, err := s.repo.Create(ctx, req.CompCode, req.Amt)
	if err != nil {
		return Invoice{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

// Update applies the amount and paid changes. paid_date is stamped with the
// store's date so it never precedes add_date. A failed notification is logged
// and never fails the update.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (Invoice, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	var today time.Time
	if req.Paid != nil && *req.Paid && existing.PaidDate == nil {
		if today, err = s.repo.Today(ctx); err != nil {
			return Invoice{}, err
		}
	}
	updated, err := s.repo.Update(ctx, ApplyUpdate(existing, req, today))
	if err != nil {
		return Invoice{}, err
	}
	s.invalidate(ctx)

	if s.notifier != nil && BecamePaid(existing, updated) {
		if err := s.notifier.InvoicePaid(ctx, updated); err != nil {
			s.logger.Warn("notify invoice paid", slog.Int64("invoice_id", updated.ID), slog.Any("error", err))
		}
	}
	return updated, nil
}

// Delete removes the invoice.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Overdue lists unpaid invoices older than the given age, measured from the
// store's current date.
func (s *Service) Overdue(ctx context.Context, age time.Duration) ([]Invoice, error) {
	today, err := s.repo.Today(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListOverdue(ctx, DateOf(today.Add(-age)))
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("bump cache version", slog.Any("error", err))
	}
}
