package companies

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/seth-vargas/biztime/internal/platform/cache"
	"github.com/seth-vargas/biztime/internal/shared"
)

// Service holds the company use cases.
type Service struct {
	repo   Repository
	cache  *cache.Versioned
	logger *slog.Logger
}

// NewService builds a Service. cache may be nil.
func NewService(repo Repository, cache *cache.Versioned, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, cache: cache, logger: logger}
}

// List returns every company as a {code, name} pair.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	var out []Summary
	err := s.cache.FetchJSON(ctx, &out, func(ctx context.Context) (any, error) {
		return s.repo.List(ctx)
	}, "companies", "list")
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Summary{}
	}
	return out, nil
}

// Get loads the company and its invoices concurrently and joins the results.
func (s *Service) Get(ctx context.Context, code string) (Detail, error) {
	var (
		company    Company
		industries []string
		invoices   []InvoiceRef
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		company, industries, err = s.repo.GetByCode(gctx, code)
		return err
	})
	g.Go(func() error {
		var err error
		invoices, err = s.repo.ListInvoices(gctx, code)
		return err
	})
	if err := g.Wait(); err != nil {
		return Detail{}, err
	}

	if industries == nil {
		industries = []string{}
	}
	if invoices == nil {
		invoices = []InvoiceRef{}
	}
	return Detail{Company: company, Industries: industries, Invoices: invoices}, nil
}

// Create normalizes the code into a slug and stores the company. A blank code
// is derived from the name.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Company, error) {
	code := Slugify(req.Code)
	if code == "" {
		code = Slugify(req.Name)
	}
	if code == "" {
		return Company{}, fmt.Errorf("%w: code is required", shared.ErrValidation)
	}
	created, err := s.repo.Create(ctx, Company{Code: code, Name: req.Name, Description: req.Description})
	if err != nil {
		return Company{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

// Update merges the supplied fields over the stored company. Read and write are
// separate statements, so concurrent updates race and the last write wins.
func (s *Service) Update(ctx context.Context, code string, req UpdateRequest) (Company, error) {
	existing, _, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return Company{}, err
	}
	updated, err := s.repo.Update(ctx, Merge(existing, req))
	if err != nil {
		return Company{}, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// Delete removes the company; invoices and industry links cascade.
func (s *Service) Delete(ctx context.Context, code string) error {
	if err := s.repo.Delete(ctx, code); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("bump cache version", slog.Any("error", err))
	}
}
