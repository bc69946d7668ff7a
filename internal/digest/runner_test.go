package digest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailymenu/internal/mailer"
	"dailymenu/internal/menu"
	"dailymenu/internal/metrics"
	"dailymenu/internal/subscribers"
)

var runDate = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

type staticSource struct {
	raw   menu.RawMenu
	calls int
}

func (s *staticSource) FetchMenuData(_ context.Context, _ time.Time) menu.RawMenu {
	s.calls++
	return s.raw
}

type staticLister struct {
	subs  []subscribers.Subscriber
	err   error
	email string
}

func (l *staticLister) ListActive(_ context.Context, email string) ([]subscribers.Subscriber, error) {
	l.email = email
	return l.subs, l.err
}

type memorySender struct {
	mu    sync.Mutex
	sent  map[string]string
	fails map[string]bool
}

func newMemorySender(fail ...string) *memorySender {
	s := &memorySender{sent: map[string]string{}, fails: map[string]bool{}}
	for _, f := range fail {
		s.fails[f] = true
	}
	return s
}

func (s *memorySender) Send(_ context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails[to] {
		return errors.New("mailbox unavailable")
	}
	s.sent[to] = subject + "\n" + body
	return nil
}

func sampleMenu() menu.RawMenu {
	name := func(s string) *string { return &s }
	return menu.RawMenu{
		{Meal: menu.Breakfast},
		{Meal: menu.Lunch, Payload: &menu.RawDayPayload{Days: []menu.RawDay{{
			Date: "2024-01-02",
			MenuItems: []menu.RawEntry{
				{IsStationHeader: true, Text: "Grill"},
				{Food: &menu.RawFood{Name: name("Burger")}},
				{IsStationHeader: true, Text: "Soup"},
				{Food: &menu.RawFood{Name: name("Chili")}},
			},
		}}}},
		{Meal: menu.Dinner, Payload: &menu.RawDayPayload{Days: []menu.RawDay{{
			Date:      "2024-01-02",
			MenuItems: []menu.RawEntry{{IsStationHeader: true, Text: "Pizza"}, {Food: &menu.RawFood{Name: name("Slice")}}},
		}}}},
	}
}

func sub(email, token string, meals []menu.Meal, stations ...string) subscribers.Subscriber {
	return subscribers.Subscriber{Email: email, Token: token, IsActive: true, Preferences: menu.Preferences{Meals: meals, Stations: stations}}
}

func newTestRunner(t *testing.T, src menu.Source, lister SubscriberLister, sender mailer.Sender, cfg Config) *Runner {
	t.Helper()
	renderer, err := mailer.NewRenderer("", mailer.Links{BaseURL: "https://menu.example.edu"})
	require.NoError(t, err)
	return NewRunner(src, lister, renderer, sender, cfg, zerolog.Nop())
}

func TestRunner_Run(t *testing.T) {
	lister := &staticLister{subs: []subscribers.Subscriber{
		sub("grill@example.edu", "dm_a", []menu.Meal{menu.Lunch}, "Grill"),
		sub("none@example.edu", "dm_b", nil, "Grill"),
		sub("notoken@example.edu", "", []menu.Meal{menu.Lunch}, "Grill"),
		sub("broken@example.edu", "dm_c", []menu.Meal{menu.Dinner}, "Pizza"),
		sub("nostations@example.edu", "dm_d", []menu.Meal{menu.Dinner}),
		sub("both@example.edu", "dm_e", []menu.Meal{menu.Lunch, menu.Dinner}, "Soup", "Pizza"),
	}}
	sender := newMemorySender("broken@example.edu")
	r := newTestRunner(t, &staticSource{raw: sampleMenu()}, lister, sender, Config{Workers: 2})

	report, err := r.Run(context.Background(), Options{Date: runDate})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-02", report.Date)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 3, report.Items)
	assert.Equal(t, 6, report.Subscribers)
	assert.Equal(t, 2, report.Sent)
	assert.Equal(t, 3, report.Skipped)
	assert.Equal(t, 1, report.Failed)

	require.Contains(t, sender.sent, "grill@example.edu")
	assert.Contains(t, sender.sent["grill@example.edu"], "Dickinson Daily Menu - Jan 02")
	assert.Contains(t, sender.sent["grill@example.edu"], "Burger")
	assert.NotContains(t, sender.sent["grill@example.edu"], "Chili")

	require.Contains(t, sender.sent, "both@example.edu")
	assert.Contains(t, sender.sent["both@example.edu"], "Chili")
	assert.Contains(t, sender.sent["both@example.edu"], "Slice")
	assert.NotContains(t, sender.sent["both@example.edu"], "Burger")
}

func TestRunner_AllowAllPolicy(t *testing.T) {
	lister := &staticLister{subs: []subscribers.Subscriber{
		sub("nostations@example.edu", "dm_d", []menu.Meal{menu.Lunch}),
	}}
	sender := newMemorySender()
	r := newTestRunner(t, &staticSource{raw: sampleMenu()}, lister, sender, Config{Filter: menu.Filter{OnEmptyStations: menu.AllowAll}})

	report, err := r.Run(context.Background(), Options{Date: runDate})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.Contains(t, sender.sent["nostations@example.edu"], "Burger")
	assert.Contains(t, sender.sent["nostations@example.edu"], "Chili")
}

func TestRunner_NoMenuData(t *testing.T) {
	lister := &staticLister{subs: []subscribers.Subscriber{sub("a@example.edu", "dm_a", []menu.Meal{menu.Lunch}, "Grill")}}
	sender := newMemorySender()
	src := &staticSource{raw: menu.RawMenu{{Meal: menu.Breakfast}, {Meal: menu.Lunch}, {Meal: menu.Dinner}}}
	r := newTestRunner(t, src, lister, sender, Config{})

	report, err := r.Run(context.Background(), Options{Date: runDate})
	require.NoError(t, err)
	assert.Zero(t, report.Items)
	assert.Zero(t, report.Subscribers)
	assert.Empty(t, sender.sent)
}

func TestRunner_EmailOverrideAndDryRun(t *testing.T) {
	lister := &staticLister{subs: []subscribers.Subscriber{sub("a@example.edu", "dm_a", []menu.Meal{menu.Lunch}, "Grill")}}
	sender := newMemorySender()
	r := newTestRunner(t, &staticSource{raw: sampleMenu()}, lister, sender, Config{})

	okBefore := testutil.ToFloat64(metrics.DigestEmailsTotal.WithLabelValues(metrics.ResultOK))
	runsBefore := testutil.ToFloat64(metrics.DigestRunsTotal)

	report, err := r.Run(context.Background(), Options{Date: runDate, Email: "a@example.edu", DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, "a@example.edu", lister.email)
	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Sent)
	assert.Empty(t, sender.sent)
	assert.Equal(t, okBefore, testutil.ToFloat64(metrics.DigestEmailsTotal.WithLabelValues(metrics.ResultOK)))
	assert.Equal(t, runsBefore, testutil.ToFloat64(metrics.DigestRunsTotal))

	report, err = r.Run(context.Background(), Options{Date: runDate})
	require.NoError(t, err)
	assert.False(t, report.DryRun)
	assert.Len(t, sender.sent, 1)
	assert.Equal(t, okBefore+1, testutil.ToFloat64(metrics.DigestEmailsTotal.WithLabelValues(metrics.ResultOK)))
	assert.Equal(t, runsBefore+1, testutil.ToFloat64(metrics.DigestRunsTotal))
}

func TestRunner_ListError(t *testing.T) {
	lister := &staticLister{err: errors.New("db locked")}
	r := newTestRunner(t, &staticSource{raw: sampleMenu()}, lister, newMemorySender(), Config{})

	_, err := r.Run(context.Background(), Options{Date: runDate})
	assert.ErrorContains(t, err, "db locked")
}

func TestRunner_DefaultsToToday(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	src := &staticSource{raw: sampleMenu()}
	r := newTestRunner(t, src, &staticLister{}, newMemorySender(), Config{Location: loc})
	// 03:00 UTC on Jan 3 is still Jan 2 in EST.
	r.now = func() time.Time { return time.Date(2024, 1, 3, 3, 0, 0, 0, time.UTC) }

	report, err := r.Run(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", report.Date)
	assert.Equal(t, 3, report.Items)
	assert.Equal(t, 1, src.calls)
}
