package sightings

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-lost-found/internal/apperrors"
	"pet-lost-found/internal/domain/alerts"
	"pet-lost-found/internal/domain/pets"
	"pet-lost-found/internal/domain/profiles"
	"pet-lost-found/internal/ports/messaging"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	byID      map[string]Sighting
	createErr error
	writes    int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Sighting{}}
}

func (r *testRepo) Create(ctx context.Context, s Sighting) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.writes++
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Sighting, error) {
	s, ok := r.byID[id]
	if !ok {
		return Sighting{}, ErrNotFound
	}
	return s, nil
}

func (r *testRepo) LinkAlert(ctx context.Context, id, alertID string, at time.Time) error {
	s, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if s.AlertID != "" {
		return ErrAlreadyMatched
	}
	r.writes++
	s.AlertID = alertID
	s.MatchedAt = &at
	r.byID[id] = s
	return nil
}

func (r *testRepo) ListByAlert(ctx context.Context, alertID string) ([]Sighting, error) {
	out := []Sighting{}
	for _, s := range r.byID {
		if s.AlertID == alertID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *testRepo) ListUnmatched(ctx context.Context, limit int) ([]Sighting, error) {
	out := []Sighting{}
	for _, s := range r.byID {
		if s.AlertID == "" && len(out) < limit {
			out = append(out, s)
		}
	}
	return out, nil
}

type testAlerts struct {
	byID     map[string]alerts.Alert
	resolved []string
}

func (t *testAlerts) Get(ctx context.Context, id string) (alerts.Alert, error) {
	a, ok := t.byID[id]
	if !ok {
		return alerts.Alert{}, apperrors.NotFound(apperrors.CodeAlertNotFound, "alert not found")
	}
	return a, nil
}

func (t *testAlerts) ResolveByMatch(ctx context.Context, id string) (alerts.Alert, error) {
	t.resolved = append(t.resolved, id)
	a := t.byID[id]
	a.Status = alerts.StatusResolved
	t.byID[id] = a
	return a, nil
}

type testPets map[string]pets.Pet

func (t testPets) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	p, ok := t[id]
	if !ok {
		return pets.Pet{}, apperrors.NotFound(apperrors.CodePetNotFound, "pet not found")
	}
	return p, nil
}

type testProfiles map[string]profiles.Profile

func (t testProfiles) Get(ctx context.Context, phone string) (profiles.Profile, error) {
	for _, p := range t {
		if p.Phone == phone {
			return p, nil
		}
	}
	return profiles.Profile{}, apperrors.NotFound(apperrors.CodeProfileNotFound, "profile not found")
}

func (t testProfiles) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	p, ok := t[id]
	if !ok {
		return profiles.Profile{}, apperrors.NotFound(apperrors.CodeProfileNotFound, "profile not found")
	}
	return p, nil
}

type countingGateway struct {
	sent []messaging.TemplateMessage
	err  error
}

func (g *countingGateway) SendTemplate(ctx context.Context, msg messaging.TemplateMessage) (string, error) {
	g.sent = append(g.sent, msg)
	if g.err != nil {
		return "", g.err
	}
	return "SM123", nil
}

const (
	ownerPhone  = "+573001112233"
	finderPhone = "+573007778899"
	photoURL    = "https://abc.supabase.co/storage/v1/object/public/sightings/cat.jpg?v=2"
)

var (
	maxID   = uuid.NewString()
	alertID = uuid.NewString()
)

type fixture struct {
	svc    *Service
	repo   *testRepo
	alerts *testAlerts
	gw     *countingGateway
}

func newFixture() fixture {
	repo := newTestRepo()
	al := &testAlerts{byID: map[string]alerts.Alert{
		alertID: {ID: alertID, PetID: maxID, OwnerID: "owner-1", Status: alerts.StatusActive},
	}}
	gw := &countingGateway{}
	svc := NewService(repo, al,
		testPets{maxID: {ID: maxID, OwnerID: "owner-1", Name: "Max", Species: "perro", Breed: "labrador"}},
		testProfiles{
			"owner-1":  {ID: "owner-1", Phone: ownerPhone, Name: "Laura"},
			"finder-1": {ID: "finder-1", Phone: finderPhone, Name: "Pedro"},
		},
		gw, nil,
		Options{TemplateID: "HXmatch", From: "whatsapp:+15550001111"},
	)
	now := time.Date(2025, 8, 3, 16, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return fixture{svc: svc, repo: repo, alerts: al, gw: gw}
}

// -------------------------
// Tests
// -------------------------

func TestReport_PhotoRequiredOnBothPaths(t *testing.T) {
	f := newFixture()

	for _, alert := range []string{"", alertID} {
		_, err := f.svc.Report(context.Background(), ReportInput{
			FinderPhone: finderPhone,
			Description: "gato gris rayado",
			PhotoURL:    "   ",
			AlertID:     alert,
		})
		assert.Equal(t, apperrors.CodePhotoRequired, apperrors.CodeOf(err))
	}
	assert.Equal(t, 0, f.repo.writes)
	assert.Empty(t, f.gw.sent)
}

func TestReport_OrphanStoresOnly(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Report(context.Background(), ReportInput{
		FinderPhone: finderPhone,
		FinderName:  "Pedro",
		Description: "striped gray cat",
		PhotoURL:    photoURL,
	})
	require.NoError(t, err)
	assert.False(t, res.IsMatch)
	assert.NotEmpty(t, res.SightingID)
	assert.Nil(t, res.Match)
	assert.Empty(t, f.gw.sent)

	stored := f.repo.byID[res.SightingID]
	assert.Empty(t, stored.AlertID)
	assert.Nil(t, stored.MatchedAt)
}

func TestReport_MatchStoresLinkedAndNotifiesOnce(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Report(context.Background(), ReportInput{
		FinderPhone: "whatsapp:" + finderPhone,
		FinderName:  "Pedro",
		Description: "perro dorado con collar",
		Location:    "Calle 10",
		PhotoURL:    photoURL,
		AlertID:     alertID,
	})
	require.NoError(t, err)
	assert.True(t, res.IsMatch)
	assert.True(t, res.NotificationSent)
	assert.Equal(t, "SM123", res.MessageID)

	require.NotNil(t, res.Match)
	assert.Equal(t, "Max", res.Match.Pet.Name)
	assert.Equal(t, ownerPhone, res.Match.Owner.Phone)
	assert.Equal(t, finderPhone, res.Match.Finder.Phone)

	// una sola escritura, ya vinculada
	assert.Equal(t, 1, f.repo.writes)
	assert.Equal(t, alertID, f.repo.byID[res.SightingID].AlertID)

	require.Len(t, f.gw.sent, 1)
	msg := f.gw.sent[0]
	assert.Equal(t, ownerPhone, msg.To)
	assert.Equal(t, "HXmatch", msg.TemplateID)
	assert.Equal(t, "sightings/cat.jpg?v=2", msg.Variables["7"])
	assert.Equal(t, []string{alertID}, f.alerts.resolved)
}

func TestReport_NotificationFailureKeepsSighting(t *testing.T) {
	f := newFixture()
	f.gw.err = errors.New("twilio 503")

	res, err := f.svc.Report(context.Background(), ReportInput{
		FinderPhone: finderPhone,
		PhotoURL:    photoURL,
		AlertID:     alertID,
	})
	require.NoError(t, err)
	assert.True(t, res.IsMatch)
	assert.False(t, res.NotificationSent)
	assert.Contains(t, res.NotificationError, "twilio 503")
	assert.Contains(t, f.repo.byID, res.SightingID)
	assert.Len(t, f.gw.sent, 1)
}

func TestReport_MalformedPhotoAbortsOnlyNotification(t *testing.T) {
	f := newFixture()

	res, err := f.svc.Report(context.Background(), ReportInput{
		FinderPhone: finderPhone,
		PhotoURL:    "https://cdn.example.com/other/path.jpg",
		AlertID:     alertID,
	})
	require.NoError(t, err)
	assert.False(t, res.NotificationSent)
	assert.Contains(t, res.NotificationError, "photo reference")
	assert.Empty(t, f.gw.sent)
	assert.Contains(t, f.repo.byID, res.SightingID)
}

func TestReport_BadAlertID(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Report(context.Background(), ReportInput{FinderPhone: finderPhone, PhotoURL: photoURL, AlertID: "123"})
	assert.Equal(t, apperrors.CodeInvalidID, apperrors.CodeOf(err))

	_, err = f.svc.Report(context.Background(), ReportInput{FinderPhone: finderPhone, PhotoURL: photoURL, AlertID: uuid.NewString()})
	assert.Equal(t, apperrors.CodeAlertNotFound, apperrors.CodeOf(err))
	assert.Equal(t, 0, f.repo.writes)
}

func TestReport_StorageFailure(t *testing.T) {
	f := newFixture()
	f.repo.createErr = errors.New("insert failed")

	_, err := f.svc.Report(context.Background(), ReportInput{FinderPhone: finderPhone, PhotoURL: photoURL, AlertID: alertID})
	assert.Equal(t, apperrors.CodeDatabase, apperrors.CodeOf(err))
	assert.Empty(t, f.gw.sent)
}

func TestConfirm_LinksOrphanOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	orphan, err := f.svc.Report(ctx, ReportInput{FinderPhone: finderPhone, PhotoURL: photoURL})
	require.NoError(t, err)

	res, err := f.svc.Confirm(ctx, orphan.SightingID, alertID)
	require.NoError(t, err)
	assert.True(t, res.IsMatch)
	assert.True(t, res.NotificationSent)
	assert.Len(t, f.gw.sent, 1)
	assert.Equal(t, alertID, f.repo.byID[orphan.SightingID].AlertID)

	_, err = f.svc.Confirm(ctx, orphan.SightingID, alertID)
	assert.Equal(t, apperrors.CodeSightingAlreadyMatched, apperrors.CodeOf(err))
	assert.Len(t, f.gw.sent, 1)
}

func TestConfirm_Errors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Confirm(ctx, "nope", alertID)
	assert.Equal(t, apperrors.CodeInvalidID, apperrors.CodeOf(err))

	_, err = f.svc.Confirm(ctx, uuid.NewString(), alertID)
	assert.Equal(t, apperrors.CodeSightingNotFound, apperrors.CodeOf(err))

	orphan, err := f.svc.Report(ctx, ReportInput{FinderPhone: finderPhone, PhotoURL: photoURL})
	require.NoError(t, err)
	_, err = f.svc.Confirm(ctx, orphan.SightingID, uuid.NewString())
	assert.Equal(t, apperrors.CodeAlertNotFound, apperrors.CodeOf(err))
}

func TestListByAlert_OwnerOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Report(ctx, ReportInput{FinderPhone: finderPhone, PhotoURL: photoURL, AlertID: alertID})
	require.NoError(t, err)

	items, err := f.svc.ListByAlert(ctx, ownerPhone, alertID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = f.svc.ListByAlert(ctx, finderPhone, alertID)
	assert.Equal(t, apperrors.CodeAlertNotFound, apperrors.CodeOf(err))
}

func TestListUnmatched(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Report(ctx, ReportInput{FinderPhone: finderPhone, PhotoURL: photoURL})
	require.NoError(t, err)
	_, err = f.svc.Report(ctx, ReportInput{FinderPhone: finderPhone, PhotoURL: photoURL, AlertID: alertID})
	require.NoError(t, err)

	items, err := f.svc.ListUnmatched(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
