package matching

import (
	"context"
	"errors"
	"testing"

	"pet-lost-found/internal/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	items    []Candidate
	err      error
	gotQuery string
	gotLimit int
}

func (s *stubRepo) SearchActive(ctx context.Context, query string, limit int) ([]Candidate, error) {
	s.gotQuery, s.gotLimit = query, limit
	return s.items, s.err
}

func TestSearch_EmptyIsNotAnError(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, nil)

	res, err := svc.Search(context.Background(), "  brown poodle calle 10 ")
	require.NoError(t, err)
	assert.Empty(t, res.Candidates)
	assert.NotNil(t, res.Candidates)
	assert.Equal(t, NoResultsMessage, res.Message)
	assert.Equal(t, "brown poodle calle 10", repo.gotQuery)
	assert.Equal(t, DefaultLimit, repo.gotLimit)
}

func TestSearch_FailureIsDistinct(t *testing.T) {
	svc := NewService(&stubRepo{err: errors.New("function search_lost_pets does not exist")}, nil)

	_, err := svc.Search(context.Background(), "gato gris rayado")
	assert.Equal(t, apperrors.CodeSearchUnavailable, apperrors.CodeOf(err))
}

func TestSearch_CapsResults(t *testing.T) {
	items := make([]Candidate, 8)
	for i := range items {
		items[i] = Candidate{AlertID: string(rune('a' + i)), Rank: float64(10 - i)}
	}
	svc := NewService(&stubRepo{items: items}, nil)

	res, err := svc.Search(context.Background(), "perro negro collar rojo")
	require.NoError(t, err)
	assert.Len(t, res.Candidates, DefaultLimit)
	assert.Equal(t, "a", res.Candidates[0].AlertID)
	assert.Empty(t, res.Message)
}

func TestSearch_BlankDescription(t *testing.T) {
	svc := NewService(&stubRepo{}, nil)

	_, err := svc.Search(context.Background(), "   ")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
