package alerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-lost-found/internal/apperrors"
	"pet-lost-found/internal/domain/broadcast"
	"pet-lost-found/internal/domain/pets"
	"pet-lost-found/internal/domain/profiles"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	byID map[string]Alert
	lost map[string]bool
	// skipPrecheck simula la carrera: GetActiveByPet no ve la alerta ya creada.
	skipPrecheck bool
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Alert{}, lost: map[string]bool{}}
}

func (r *testRepo) CreateActive(ctx context.Context, a Alert) error {
	for _, existing := range r.byID {
		if existing.PetID == a.PetID && existing.Active() {
			return ErrAlreadyActive
		}
	}
	r.byID[a.ID] = a
	r.lost[a.PetID] = true
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Alert, error) {
	a, ok := r.byID[id]
	if !ok {
		return Alert{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) GetActiveByPet(ctx context.Context, petID string) (Alert, error) {
	if r.skipPrecheck {
		return Alert{}, ErrNotFound
	}
	for _, a := range r.byID {
		if a.PetID == petID && a.Active() {
			return a, nil
		}
	}
	return Alert{}, ErrNotFound
}

func (r *testRepo) ListActiveByOwner(ctx context.Context, ownerID string) ([]Alert, error) {
	out := []Alert{}
	for _, a := range r.byID {
		if a.OwnerID == ownerID && a.Active() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) Resolve(ctx context.Context, id string, by ResolvedBy, at time.Time) error {
	a, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if !a.Active() {
		return nil
	}
	a.Status = StatusResolved
	a.ResolvedAt = &at
	a.ResolvedBy = by
	r.byID[id] = a
	r.lost[a.PetID] = false
	return nil
}

type testProfiles map[string]profiles.Profile

func (t testProfiles) Get(ctx context.Context, phone string) (profiles.Profile, error) {
	p, ok := t[phone]
	if !ok {
		return profiles.Profile{}, apperrors.NotFound(apperrors.CodeProfileNotFound, "profile not found")
	}
	return p, nil
}

type testPets struct {
	items []pets.Pet
}

func (t *testPets) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	for _, p := range t.items {
		if p.ID == id {
			return p, nil
		}
	}
	return pets.Pet{}, apperrors.NotFound(apperrors.CodePetNotFound, "pet not found")
}

func (t *testPets) ListByOwnerID(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	out := []pets.Pet{}
	for _, p := range t.items {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeBroadcaster struct {
	reqs []broadcast.Request
	err  error
}

func (f *fakeBroadcaster) Dispatch(ctx context.Context, req broadcast.Request) (broadcast.Result, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return broadcast.Result{}, f.err
	}
	return broadcast.Result{TotalRecipients: 2, SuccessfulSends: 2, Success: true}, nil
}

const (
	ownerPhone = "+573001112233"
	otherPhone = "+573004445566"
)

var (
	maxID   = uuid.NewString()
	lunaID  = uuid.NewString()
	rockyID = uuid.NewString()
	otherID = uuid.NewString()
)

func newTestService(items ...pets.Pet) (*Service, *testRepo, *fakeBroadcaster) {
	repo := newTestRepo()
	b := &fakeBroadcaster{}
	svc := NewService(repo,
		testProfiles{
			ownerPhone: {ID: "owner-1", Phone: ownerPhone, City: "Medellín"},
			otherPhone: {ID: "owner-2", Phone: otherPhone, City: "Cali"},
		},
		&testPets{items: items},
		b,
		nil,
	)
	now := time.Date(2025, 7, 1, 18, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, repo, b
}

func maxPet() pets.Pet {
	return pets.Pet{ID: maxID, OwnerID: "owner-1", Name: "Max", Species: "perro", Breed: "labrador"}
}

// -------------------------
// Tests
// -------------------------

func TestCreate_SinglePetAutoSelectedThenDuplicateRejected(t *testing.T) {
	svc, repo, b := newTestService(maxPet())
	ctx := context.Background()

	res, err := svc.Create(ctx, ownerPhone, CreateInput{LastSeen: "2025-07-01 10:30", Location: "Parque Lleras"})
	require.NoError(t, err)
	assert.Equal(t, maxID, res.Alert.PetID)
	assert.Equal(t, StatusActive, res.Alert.Status)
	assert.True(t, res.Pet.CurrentlyLost)
	assert.True(t, repo.lost[maxID])
	require.NotNil(t, res.Broadcast)
	assert.Equal(t, 2, res.Broadcast.SuccessfulSends)

	require.Len(t, b.reqs, 1)
	assert.Equal(t, "Medellín", b.reqs[0].City)
	assert.Equal(t, ownerPhone, b.reqs[0].OwnerPhone)
	assert.Equal(t, "Max", b.reqs[0].Summary.PetName)
	assert.Equal(t, broadcast.UnknownAge, b.reqs[0].Summary.AgeBucket)

	_, err = svc.Create(ctx, ownerPhone, CreateInput{LastSeen: "2025-07-01"})
	assert.Equal(t, apperrors.CodeAlertAlreadyActive, apperrors.CodeOf(err))
	assert.Len(t, repo.byID, 1)
}

func TestCreate_ConstraintViolationMapsToDuplicate(t *testing.T) {
	svc, repo, _ := newTestService(maxPet())
	ctx := context.Background()

	_, err := svc.Create(ctx, ownerPhone, CreateInput{LastSeen: "2025-07-01"})
	require.NoError(t, err)

	repo.skipPrecheck = true
	_, err = svc.Create(ctx, ownerPhone, CreateInput{LastSeen: "2025-07-01"})
	assert.Equal(t, apperrors.CodeAlertAlreadyActive, apperrors.CodeOf(err))
}

func TestCreate_BroadcastFailureDoesNotFail(t *testing.T) {
	svc, repo, b := newTestService(maxPet())
	b.err = errors.New("directory down")

	res, err := svc.Create(context.Background(), ownerPhone, CreateInput{LastSeen: "2025-07-01T10:00:00-05:00"})
	require.NoError(t, err)
	assert.Nil(t, res.Broadcast)
	assert.NotEmpty(t, res.BroadcastError)
	assert.Contains(t, repo.byID, res.Alert.ID)
}

func TestCreate_InvalidLastSeen(t *testing.T) {
	svc, repo, _ := newTestService(maxPet())

	for _, v := range []string{"", "ayer", "2025-13-45"} {
		_, err := svc.Create(context.Background(), ownerPhone, CreateInput{LastSeen: v})
		assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err), v)
	}
	assert.Empty(t, repo.byID)
}

func TestCreate_PetResolution(t *testing.T) {
	luna := pets.Pet{ID: lunaID, OwnerID: "owner-1", Name: "Luna", Species: "gato", Breed: "siamés"}
	rocky := pets.Pet{ID: rockyID, OwnerID: "owner-1", Name: "Rocky", Species: "perro", Breed: "pastor alemán", CurrentlyLost: true}
	foreign := pets.Pet{ID: otherID, OwnerID: "owner-2", Name: "Kira", Species: "perro", Breed: "pug"}

	cases := []struct {
		name      string
		ref       string
		wantPet   string
		wantCode  apperrors.Code
		wantCands int
	}{
		{name: "no ref with several pets enumerates all", ref: "", wantCode: apperrors.CodePetAmbiguous, wantCands: 3},
		{name: "exact name case insensitive", ref: "luna", wantPet: lunaID},
		{name: "substring on species", ref: "gat", wantPet: lunaID},
		{name: "substring on breed without accent", ref: "aleman", wantPet: rockyID},
		{name: "substring matching many", ref: "perro", wantCode: apperrors.CodePetAmbiguous, wantCands: 2},
		{name: "nothing found", ref: "Firulais", wantCode: apperrors.CodePetNotFound},
		{name: "id owned", ref: rockyID, wantPet: rockyID},
		{name: "id not owned", ref: otherID, wantCode: apperrors.CodePetNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, _ := newTestService(maxPet(), luna, rocky, foreign)
			res, err := svc.Create(context.Background(), ownerPhone, CreateInput{LastSeen: "2025-07-01", PetRef: tc.ref})

			if tc.wantCode != "" {
				require.Error(t, err)
				ae, ok := apperrors.As(err)
				require.True(t, ok)
				assert.Equal(t, tc.wantCode, ae.Code)
				assert.Len(t, ae.Candidates, tc.wantCands)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantPet, res.Alert.PetID)
		})
	}
}

func TestCreate_NoPets(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), ownerPhone, CreateInput{LastSeen: "2025-07-01"})
	assert.Equal(t, apperrors.CodePetNotFound, apperrors.CodeOf(err))
}

func TestCandidates_IncludeLostState(t *testing.T) {
	out := Candidates([]pets.Pet{
		{Name: "Max", Species: "perro", Breed: "labrador"},
		{Name: "Rocky", Species: "perro", Breed: "pug", CurrentlyLost: true},
	})
	assert.Equal(t, []string{"Max (perro, labrador, en casa)", "Rocky (perro, pug, perdida)"}, out)
}

func TestResolve_OwnerOnlyAndIdempotent(t *testing.T) {
	svc, repo, _ := newTestService(maxPet())
	ctx := context.Background()

	res, err := svc.Create(ctx, ownerPhone, CreateInput{LastSeen: "2025-07-01"})
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, otherPhone, res.Alert.ID)
	assert.Equal(t, apperrors.CodeAlertNotFound, apperrors.CodeOf(err))

	a, err := svc.Resolve(ctx, ownerPhone, res.Alert.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, a.Status)
	assert.Equal(t, ResolvedByOwner, a.ResolvedBy)
	assert.False(t, repo.lost[maxID])

	again, err := svc.Resolve(ctx, ownerPhone, res.Alert.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, again.Status)

	// resuelta, se puede volver a reportar
	_, err = svc.Create(ctx, ownerPhone, CreateInput{LastSeen: "2025-07-02"})
	require.NoError(t, err)
}

func TestRebroadcast_RetriesSameAlert(t *testing.T) {
	svc, _, b := newTestService(maxPet())
	ctx := context.Background()

	b.err = errors.New("directory down")
	res, err := svc.Create(ctx, ownerPhone, CreateInput{LastSeen: "2025-07-01"})
	require.NoError(t, err)
	require.NotEmpty(t, res.BroadcastError)

	b.err = nil
	again, err := svc.Rebroadcast(ctx, ownerPhone, res.Alert.ID)
	require.NoError(t, err)
	require.NotNil(t, again.Broadcast)
	assert.Empty(t, again.BroadcastError)
	assert.Equal(t, "Max", again.Pet.Name)

	require.Len(t, b.reqs, 2)
	assert.Equal(t, b.reqs[0].AlertID, b.reqs[1].AlertID)
	assert.Equal(t, res.Alert.ID, b.reqs[1].AlertID)
}

func TestRebroadcast_OwnerAndStatusChecked(t *testing.T) {
	svc, _, b := newTestService(maxPet())
	ctx := context.Background()

	res, err := svc.Create(ctx, ownerPhone, CreateInput{LastSeen: "2025-07-01"})
	require.NoError(t, err)

	_, err = svc.Rebroadcast(ctx, otherPhone, res.Alert.ID)
	assert.Equal(t, apperrors.CodeAlertNotFound, apperrors.CodeOf(err))

	_, err = svc.Resolve(ctx, ownerPhone, res.Alert.ID)
	require.NoError(t, err)
	_, err = svc.Rebroadcast(ctx, ownerPhone, res.Alert.ID)
	assert.Equal(t, apperrors.CodeAlertNotActive, apperrors.CodeOf(err))
	assert.Len(t, b.reqs, 1)
}

func TestResolveByMatch(t *testing.T) {
	svc, _, _ := newTestService(maxPet())
	ctx := context.Background()

	res, err := svc.Create(ctx, ownerPhone, CreateInput{LastSeen: "2025-07-01"})
	require.NoError(t, err)

	a, err := svc.ResolveByMatch(ctx, res.Alert.ID)
	require.NoError(t, err)
	assert.Equal(t, ResolvedBySighting, a.ResolvedBy)

	_, err = svc.ResolveByMatch(ctx, "bad-id")
	assert.Equal(t, apperrors.CodeAlertNotFound, apperrors.CodeOf(err))
}

func TestParseLastSeen_Layouts(t *testing.T) {
	for _, v := range []string{"2025-07-01T10:00:00Z", "2025-07-01T10:00", "2025-07-01 10:00", "2025-07-01", "01/07/2025"} {
		got, err := ParseLastSeen(v)
		require.NoError(t, err, v)
		assert.Equal(t, 2025, got.Year())
		assert.Equal(t, time.July, got.Month())
		assert.Equal(t, 1, got.Day())
	}
}
