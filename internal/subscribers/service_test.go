package subscribers

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailymenu/internal/menu"
)

type sentMail struct {
	kind, email, token string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeNotifier) record(m sentMail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m)
	return f.err
}

func (f *fakeNotifier) SendConfirmation(_ context.Context, email, token string) error {
	return f.record(sentMail{"confirm", email, token})
}

func (f *fakeNotifier) SendManageLink(_ context.Context, email, token string) error {
	return f.record(sentMail{"manage", email, token})
}

func newTestService(t *testing.T) (*Service, *Repository, *fakeNotifier) {
	repo := newTestRepo(t)
	n := &fakeNotifier{}
	return NewService(repo, menu.NewCatalog(), n, zerolog.Nop()), repo, n
}

func TestService_SubscribeFlow(t *testing.T) {
	ctx := context.Background()
	svc, repo, n := newTestService(t)

	req := SubscribeRequest{Email: "  Student@Example.edu ", Meals: []string{"Lunch", "lunch"}, Stations: []string{"Grill"}}
	outcome, err := svc.Subscribe(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, outcome)

	s, err := repo.GetByEmail(ctx, "student@example.edu")
	require.NoError(t, err)
	assert.False(t, s.IsActive)
	assert.Equal(t, lunchGrill, s.Preferences)
	require.Len(t, n.sent, 1)
	assert.Equal(t, sentMail{"confirm", "student@example.edu", s.Token}, n.sent[0])

	// Not yet confirmed: choices replaced, link re-sent.
	req.Stations = []string{"Soup"}
	outcome, err = svc.Subscribe(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmationResent, outcome)
	s, err = repo.GetByEmail(ctx, "student@example.edu")
	require.NoError(t, err)
	assert.Equal(t, []string{"Soup"}, s.Preferences.Stations)

	require.NoError(t, svc.Confirm(ctx, s.Token))

	// Active: choices untouched, manage link sent.
	req.Stations = []string{"Deli"}
	outcome, err = svc.Subscribe(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, OutcomeManageLinkSent, outcome)
	s, err = repo.GetByEmail(ctx, "student@example.edu")
	require.NoError(t, err)
	assert.True(t, s.IsActive)
	assert.Equal(t, []string{"Soup"}, s.Preferences.Stations)
	assert.Equal(t, "manage", n.sent[len(n.sent)-1].kind)
}

func TestService_SubscribeValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, n := newTestService(t)

	tests := []struct {
		name string
		req  SubscribeRequest
		want error
	}{
		{"missing email", SubscribeRequest{Meals: []string{"lunch"}, Stations: []string{"Grill"}}, ErrInvalidEmail},
		{"bad email", SubscribeRequest{Email: "not-an-email", Meals: []string{"lunch"}, Stations: []string{"Grill"}}, ErrInvalidEmail},
		{"no meals", SubscribeRequest{Email: "a@example.edu", Stations: []string{"Grill"}}, ErrNoMeals},
		{"unknown meal", SubscribeRequest{Email: "a@example.edu", Meals: []string{"brunch"}, Stations: []string{"Grill"}}, ErrUnknownMeal},
		{"no stations", SubscribeRequest{Email: "a@example.edu", Meals: []string{"lunch"}}, ErrNoStations},
		{"unknown station", SubscribeRequest{Email: "a@example.edu", Meals: []string{"lunch"}, Stations: []string{"Sushi"}}, ErrUnknownStation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Subscribe(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, n.sent)
}

func TestService_SubscribeDeliveryFailure(t *testing.T) {
	ctx := context.Background()
	svc, repo, n := newTestService(t)
	n.err = errors.New("smtp down")

	outcome, err := svc.Subscribe(ctx, SubscribeRequest{Email: "a@example.edu", Meals: []string{"dinner"}, Stations: []string{"Pizza"}})
	assert.ErrorIs(t, err, ErrDelivery)
	assert.Equal(t, OutcomeCreated, outcome)

	// The record is kept so a retry re-sends the confirmation.
	_, err = repo.GetByEmail(ctx, "a@example.edu")
	assert.NoError(t, err)
}

func TestService_TokenOperations(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	s, err := repo.Create(ctx, "a@example.edu", lunchGrill)
	require.NoError(t, err)

	updated, err := svc.UpdatePreferences(ctx, s.Token, PreferencesRequest{Meals: []string{"breakfast"}, Stations: []string{"Deli"}})
	require.NoError(t, err)
	assert.Equal(t, menu.Preferences{Meals: []menu.Meal{menu.Breakfast}, Stations: []string{"Deli"}}, updated.Preferences)

	_, err = svc.UpdatePreferences(ctx, s.Token, PreferencesRequest{Meals: []string{"breakfast"}})
	assert.ErrorIs(t, err, ErrNoStations)

	require.NoError(t, svc.Confirm(ctx, s.Token))
	got, err := svc.Get(ctx, s.Token)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	require.NoError(t, svc.Unsubscribe(ctx, s.Token))
	got, err = svc.Get(ctx, s.Token)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	for _, bad := range []string{"", "garbage", "dm_abc"} {
		assert.ErrorIs(t, svc.Confirm(ctx, bad), ErrNotFound)
		assert.ErrorIs(t, svc.Unsubscribe(ctx, bad), ErrNotFound)
		_, err := svc.Get(ctx, bad)
		assert.ErrorIs(t, err, ErrNotFound)
	}

	missing, err := GenerateToken()
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Confirm(ctx, missing), ErrNotFound)
}

func TestService_CreateOrLoadAfterLostRace(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	first, err := repo.Create(ctx, "race@example.edu", lunchGrill)
	require.NoError(t, err)

	created, raced, err := svc.createOrLoad(ctx, "race@example.edu", lunchGrill)
	require.NoError(t, err)
	assert.Nil(t, created)
	require.NotNil(t, raced)
	assert.Equal(t, first.Token, raced.Token)
}

func TestService_ConcurrentSubscribeSameEmail(t *testing.T) {
	ctx := context.Background()
	svc, repo, n := newTestService(t)
	req := SubscribeRequest{Email: "twice@example.edu", Meals: []string{"lunch"}, Stations: []string{"Grill"}}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Subscribe(ctx, req)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	s, err := repo.GetByEmail(ctx, "twice@example.edu")
	require.NoError(t, err)
	assert.Len(t, n.sent, len(errs))
	for _, m := range n.sent {
		assert.Equal(t, s.Token, m.token)
	}
}

func TestService_StationNamesIgnoreCase(t *testing.T) {
	svc, _, _ := newTestService(t)

	prefs, err := svc.NormalizePreferences([]string{"lunch"}, []string{"grill", "GRILL", "texmex"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Grill", "TexMex"}, prefs.Stations)
}
