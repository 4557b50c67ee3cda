package industries

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/seth-vargas/biztime/internal/platform/cache"
	"github.com/seth-vargas/biztime/internal/shared"
)

// Service holds the industry use cases.
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

// List returns every industry, served from the versioned cache when it is warm.
func (s *Service) List(ctx context.Context) ([]Industry, error) {
	var out []Industry
	err := s.cache.FetchJSON(ctx, &out, func(ctx context.Context) (any, error) {
		return s.repo.List(ctx)
	}, "industries", "list")
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Industry{}
	}
	return out, nil
}

// Create stores a new industry and invalidates cached listings.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Industry, error) {
	created, err := s.repo.Create(ctx, Industry{Code: req.Code, Name: req.Name})
	if err != nil {
		return Industry{}, err
	}
	s.invalidate(ctx)
	return created, nil
}

// Companies returns the companies linked to the industry. An empty result is
// reported as not found, whether or not the industry exists.
func (s *Service) Companies(ctx context.Context, code string) ([]CompanyRow, error) {
	rows, err := s.repo.CompaniesByIndustry(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("industries: companies of %s: %w", code, shared.ErrNotFound)
	}
	return rows, nil
}

// Associate links a company to an industry.
func (s *Service) Associate(ctx context.Context, code string, req AssociateRequest) (Link, error) {
	link, err := s.repo.Associate(ctx, Link{IndustryCode: code, CompCode: req.CompCode})
	if err != nil {
		return Link{}, err
	}
	s.invalidate(ctx)
	return link, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("bump cache version", slog.Any("error", err))
	}
}
