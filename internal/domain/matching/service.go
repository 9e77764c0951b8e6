package matching

import (
	"context"
	"strings"

	"pet-lost-found/internal/apperrors"
	"pet-lost-found/internal/platform/logger"
)

const (
	DefaultLimit     = 5
	NoResultsMessage = "no coincide ningun reporte activo"
)

// Result: sin candidatos no es error; el Message lo explica.
type Result struct {
	Candidates []Candidate
	Message    string
}

type Service struct {
	repo  Repository
	limit int
	log   logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		limit: DefaultLimit,
		log:   log.With(map[string]any{"component": "matching"}),
	}
}

// Search no valida largo mínimo; eso lo hace quien llama.
func (s *Service) Search(ctx context.Context, description string) (Result, error) {
	q := strings.TrimSpace(description)
	if q == "" {
		return Result{}, apperrors.Validation("description is required", "description")
	}

	items, err := s.repo.SearchActive(ctx, q, s.limit)
	if err != nil {
		s.log.Error("search failed", map[string]any{"error": err})
		return Result{}, apperrors.Wrap(apperrors.KindStorage, apperrors.CodeSearchUnavailable, "search unavailable", err)
	}
	if len(items) == 0 {
		return Result{Candidates: []Candidate{}, Message: NoResultsMessage}, nil
	}
	if len(items) > s.limit {
		items = items[:s.limit]
	}
	return Result{Candidates: items}, nil
}
