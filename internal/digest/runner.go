// Package digest sends the daily menu email to every active subscriber.
package digest

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"dailymenu/internal/mailer"
	"dailymenu/internal/menu"
	"dailymenu/internal/metrics"
	"dailymenu/internal/subscribers"
)

// SubscriberLister is the read side of the subscriber store used by a run.
type SubscriberLister interface {
	ListActive(ctx context.Context, email string) ([]subscribers.Subscriber, error)
}

// Config tunes a Runner.
type Config struct {
	// Workers bounds how many subscribers are rendered and mailed at once.
	Workers int
	// Location decides which calendar day "today" is.
	Location *time.Location
	// Filter carries the empty-stations policy applied to every subscriber.
	Filter menu.Filter
}

// Options select what one run does.
type Options struct {
	// Date of the menu; zero means today in the runner's location.
	Date time.Time
	// Email restricts the run to one active subscriber.
	Email string
	// DryRun renders every email but only logs it.
	DryRun bool
}

// Report summarizes a run. In a dry run Sent counts rendered emails.
type Report struct {
	RunID       string `json:"runId"`
	Date        string `json:"date"`
	DryRun      bool   `json:"dryRun"`
	Items       int    `json:"items"`
	Subscribers int    `json:"subscribers"`
	Sent        int    `json:"sent"`
	Skipped     int    `json:"skipped"`
	Failed      int    `json:"failed"`
}

// Runner executes the fetch, parse, filter, render and send pipeline.
type Runner struct {
	source   menu.Source
	store    SubscriberLister
	renderer *mailer.Renderer
	sender   mailer.Sender
	cfg      Config
	log      zerolog.Logger
	now      func() time.Time
}

// NewRunner wires a runner. Workers defaults to 4 and Location to UTC.
func NewRunner(source menu.Source, store SubscriberLister, renderer *mailer.Renderer, sender mailer.Sender, cfg Config, log zerolog.Logger) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Filter.OnEmptyStations == "" {
		cfg.Filter.OnEmptyStations = menu.DefaultEmptyStationsPolicy
	}
	return &Runner{
		source:   source,
		store:    store,
		renderer: renderer,
		sender:   sender,
		cfg:      cfg,
		log:      log.With().Str("component", "digest").Logger(),
		now:      time.Now,
	}
}

// Run sends the menu of opts.Date. A day without menu data is not an error:
// the report is returned with zero items and nobody is mailed. Failures for
// one subscriber are counted and never stop the others; only a failure to
// list subscribers is returned as an error.
func (r *Runner) Run(ctx context.Context, opts Options) (Report, error) {
	date := opts.Date
	if date.IsZero() {
		date = r.now().In(r.cfg.Location)
	}
	report := Report{RunID: uuid.NewString(), Date: date.Format(menu.DateLayout), DryRun: opts.DryRun}
	log := r.log.With().Str("run_id", report.RunID).Str("date", report.Date).Bool("dry_run", opts.DryRun).Logger()

	log.Info().Msg("fetching menu")
	items := menu.ParseMenu(r.source.FetchMenuData(ctx, date), date)
	report.Items = len(items)
	if len(items) == 0 {
		log.Warn().Msg("no menu items found for date, nothing to send")
		r.countRun(opts)
		return report, nil
	}
	log.Info().Int("items", len(items)).Msg("menu parsed")

	subs, err := r.store.ListActive(ctx, opts.Email)
	if err != nil {
		return report, fmt.Errorf("list subscribers: %w", err)
	}
	report.Subscribers = len(subs)
	if len(subs) == 0 {
		log.Info().Msg("no active subscribers")
		r.countRun(opts)
		return report, nil
	}

	sender := r.sender
	if opts.DryRun {
		sender = mailer.LogSender{Log: log}
	}

	var sent, skipped, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)
	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			switch r.deliver(gctx, log, sender, sub, items, date, opts.DryRun) {
			case metrics.ResultOK:
				sent.Add(1)
			case metrics.ResultSkipped:
				skipped.Add(1)
			default:
				failed.Add(1)
			}
			// Per-subscriber failures are reported, not propagated.
			return nil
		})
	}
	_ = g.Wait()

	report.Sent = int(sent.Load())
	report.Skipped = int(skipped.Load())
	report.Failed = int(failed.Load())
	r.countRun(opts)

	log.Info().
		Int("subscribers", report.Subscribers).
		Int("sent", report.Sent).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("digest run finished")
	return report, nil
}

// countRun records a finished run. Dry runs stay out of the delivery metrics.
func (r *Runner) countRun(opts Options) {
	if !opts.DryRun {
		metrics.DigestRunsTotal.Inc()
	}
}

func (r *Runner) deliver(ctx context.Context, log zerolog.Logger, sender mailer.Sender, sub subscribers.Subscriber, items []menu.MenuItem, date time.Time, dryRun bool) string {
	result := r.deliverOne(ctx, log, sender, sub, items, date)
	if !dryRun {
		metrics.DigestEmailsTotal.WithLabelValues(result).Inc()
	}
	return result
}

func (r *Runner) deliverOne(ctx context.Context, log zerolog.Logger, sender mailer.Sender, sub subscribers.Subscriber, items []menu.MenuItem, date time.Time) string {
	log = log.With().Str("email", sub.Email).Logger()
	if sub.Token == "" {
		log.Warn().Msg("subscriber has no token, skipping")
		return metrics.ResultSkipped
	}

	filtered := r.cfg.Filter.ForUser(items, sub.Preferences)
	if len(filtered) == 0 {
		log.Info().Msg("no items match preferences, skipping")
		return metrics.ResultSkipped
	}

	body, err := r.renderer.Digest(filtered, date, sub.Token)
	if err != nil {
		log.Error().Err(err).Msg("render digest")
		return metrics.ResultError
	}
	log.Info().Int("items", len(filtered)).Msg("sending digest")
	if err := sender.Send(ctx, sub.Email, r.renderer.DigestSubject(date), body); err != nil {
		log.Error().Err(err).Msg("send digest")
		return metrics.ResultError
	}
	return metrics.ResultOK
}

//   This project is the monolithic backend API for the OpenSourceDUTH team. Access to open data compiled and provided by the OpenSourceDUTH University Team.
//   API Copyright (C) 2025 OpenSourceDUTH
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.
