package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-lost-found/internal/domain/profiles"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfiles struct {
	byPhone map[string]profiles.Profile
	err     error
}

func (f fakeProfiles) GetByPhone(ctx context.Context, phone string) (profiles.Profile, error) {
	if f.err != nil {
		return profiles.Profile{}, f.err
	}
	p, ok := f.byPhone[phone]
	if !ok {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return p, nil
}

type fakeSubs struct {
	items []profiles.Subscription
	err   error
}

func (f fakeSubs) ListByProfile(ctx context.Context, profileID string) ([]profiles.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []profiles.Subscription{}
	for _, s := range f.items {
		if s.ProfileID == profileID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeCounter struct {
	count int
	err   error
}

func (f fakeCounter) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	return f.count, f.err
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

const testPhone = "+573001112233"

func sub(limit int, expires time.Time) profiles.Subscription {
	return profiles.Subscription{
		ID:        "s-" + expires.Format("20060102") + "-" + string(rune('a'+limit%26)),
		ProfileID: "p1",
		Status:    profiles.SubscriptionActive,
		Plan:      profiles.Plan{ID: "plan", PetLimit: limit, Active: true},
		ExpiresAt: expires,
	}
}

func newTestResolver(subs fakeSubs, count fakeCounter) *Resolver {
	r := NewResolver(
		fakeProfiles{byPhone: map[string]profiles.Profile{testPhone: {ID: "p1", Phone: testPhone}}},
		subs,
		count,
		nil,
	)
	r.now = func() time.Time { return testNow }
	return r
}

func TestCheck_SumsActiveSubscriptions(t *testing.T) {
	future := testNow.AddDate(0, 1, 0)
	r := newTestResolver(fakeSubs{items: []profiles.Subscription{sub(2, future), sub(3, future)}}, fakeCounter{count: 4})

	st := r.Check(context.Background(), testPhone)
	assert.True(t, st.Active)
	assert.Equal(t, 5, st.TotalLimit)
	assert.Equal(t, 4, st.CurrentCount)
	assert.True(t, st.CanRegister)
	assert.Equal(t, 1, st.Remaining())
	assert.Len(t, st.Subscriptions, 2)
}

func TestCheck_LimitReached(t *testing.T) {
	future := testNow.AddDate(0, 1, 0)
	r := newTestResolver(fakeSubs{items: []profiles.Subscription{sub(2, future), sub(3, future)}}, fakeCounter{count: 5})

	st := r.Check(context.Background(), testPhone)
	assert.True(t, st.Active)
	assert.False(t, st.CanRegister)
	assert.Equal(t, 0, st.Remaining())
}

func TestCheck_UnlimitedSentinel(t *testing.T) {
	future := testNow.AddDate(1, 0, 0)
	r := newTestResolver(fakeSubs{items: []profiles.Subscription{sub(1, future), sub(999, future)}}, fakeCounter{count: 1500})

	st := r.Check(context.Background(), testPhone)
	assert.True(t, st.Active)
	assert.True(t, st.Unlimited)
	assert.True(t, st.CanRegister)
	assert.Equal(t, -1, st.Remaining())
}

func TestCheck_ExpiredIgnored(t *testing.T) {
	past := testNow.Add(-time.Hour)
	future := testNow.AddDate(0, 1, 0)
	r := newTestResolver(fakeSubs{items: []profiles.Subscription{sub(10, past), sub(1, future)}}, fakeCounter{count: 1})

	st := r.Check(context.Background(), testPhone)
	assert.True(t, st.Active)
	assert.Equal(t, 1, st.TotalLimit)
	assert.False(t, st.CanRegister)
}

func TestCheck_ZeroSlotPlansAreActiveWithoutRoom(t *testing.T) {
	r := newTestResolver(fakeSubs{items: []profiles.Subscription{sub(0, testNow.AddDate(0, 1, 0))}}, fakeCounter{})

	st := r.Check(context.Background(), testPhone)
	assert.True(t, st.Active)
	assert.Equal(t, DenialNone, st.Denial)
	assert.Equal(t, 0, st.TotalLimit)
	assert.False(t, st.CanRegister)
	assert.Equal(t, 0, st.Remaining())
}

func TestCheck_Denials(t *testing.T) {
	past := testNow.Add(-time.Hour)

	cases := []struct {
		name   string
		r      *Resolver
		phone  string
		denial Denial
	}{
		{
			name:   "no profile",
			r:      newTestResolver(fakeSubs{}, fakeCounter{}),
			phone:  "+570000000000",
			denial: DenialNoProfile,
		},
		{
			name:   "no subscriptions",
			r:      newTestResolver(fakeSubs{}, fakeCounter{}),
			phone:  testPhone,
			denial: DenialNoSubscription,
		},
		{
			name:   "all expired",
			r:      newTestResolver(fakeSubs{items: []profiles.Subscription{sub(3, past)}}, fakeCounter{}),
			phone:  testPhone,
			denial: DenialExpired,
		},
		{
			name:   "subscription lookup fails",
			r:      newTestResolver(fakeSubs{err: errors.New("db down")}, fakeCounter{}),
			phone:  testPhone,
			denial: DenialLookupFailed,
		},
		{
			name:   "pet count fails",
			r:      newTestResolver(fakeSubs{items: []profiles.Subscription{sub(3, testNow.AddDate(0, 1, 0))}}, fakeCounter{err: errors.New("timeout")}),
			phone:  testPhone,
			denial: DenialLookupFailed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := tc.r.Check(context.Background(), tc.phone)
			require.False(t, st.Active)
			assert.False(t, st.CanRegister)
			assert.Equal(t, tc.denial, st.Denial)
			assert.NotEmpty(t, st.Reason)
		})
	}
}

func TestCheck_ProfileLookupFailsClosed(t *testing.T) {
	r := NewResolver(fakeProfiles{err: errors.New("conn refused")}, fakeSubs{}, fakeCounter{}, nil)

	st := r.Check(context.Background(), testPhone)
	assert.False(t, st.Active)
	assert.Equal(t, DenialLookupFailed, st.Denial)
}
