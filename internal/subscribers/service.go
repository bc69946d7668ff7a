package subscribers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"dailymenu/internal/menu"
	"dailymenu/internal/metrics"
)

// Notifier delivers the transactional emails of the subscription flow.
type Notifier interface {
	SendConfirmation(ctx context.Context, email, token string) error
	SendManageLink(ctx context.Context, email, token string) error
}

// Service implements the subscription lifecycle on top of the repository
type Service struct {
	repo     *Repository
	catalog  *menu.Catalog
	notifier Notifier
	validate *validator.Validate
	log      zerolog.Logger
}

// NewService creates a new subscription service
func NewService(repo *Repository, catalog *menu.Catalog, notifier Notifier, log zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
		validate: validator.New(),
		log:      log.With().Str("component", "subscriptions").Logger(),
	}
}

// NormalizeEmail trims and lowercases an address and checks its syntax.
func (s *Service) NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// NormalizePreferences validates raw meal and station choices against the
// known meals and the station catalog. Stations match ignoring case and are
// stored in the catalog's spelling. Duplicates are dropped, order is kept.
func (s *Service) NormalizePreferences(meals, stations []string) (menu.Preferences, error) {
	var prefs menu.Preferences
	seenMeals := map[menu.Meal]bool{}
	for _, raw := range meals {
		m, err := menu.ParseMeal(raw)
		if err != nil {
			return menu.Preferences{}, fmt.Errorf("%w: %q", ErrUnknownMeal, raw)
		}
		if !seenMeals[m] {
			seenMeals[m] = true
			prefs.Meals = append(prefs.Meals, m)
		}
	}
	if len(prefs.Meals) == 0 {
		return menu.Preferences{}, ErrNoMeals
	}

	seenStations := map[string]bool{}
	for _, raw := range stations {
		name, ok := s.catalog.Lookup(strings.TrimSpace(raw))
		if !ok {
			return menu.Preferences{}, fmt.Errorf("%w: %q", ErrUnknownStation, raw)
		}
		if !seenStations[name] {
			seenStations[name] = true
			prefs.Stations = append(prefs.Stations, name)
		}
	}
	if len(prefs.Stations) == 0 {
		return menu.Preferences{}, ErrNoStations
	}
	return prefs, nil
}

// Subscribe registers email with the given choices.
//
// A new address is stored inactive and receives a confirmation link. An address
// that never confirmed gets its choices replaced and the link re-sent. An active
// address keeps its choices and is mailed a manage link instead, so nobody can
// change another person's subscription by knowing their email.
func (s *Service) Subscribe(ctx context.Context, req SubscribeRequest) (Outcome, error) {
	email, err := s.NormalizeEmail(req.Email)
	if err != nil {
		return "", err
	}
	prefs, err := s.NormalizePreferences(req.Meals, req.Stations)
	if err != nil {
		return "", err
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", err
	}

	if existing != nil {
		return s.subscribeExisting(ctx, email, existing, prefs)
	}

	created, raced, err := s.createOrLoad(ctx, email, prefs)
	if err != nil {
		return "", err
	}
	if raced != nil {
		// Another request stored the address first; answer as if it had been found.
		return s.subscribeExisting(ctx, email, raced, prefs)
	}
	if err := s.notifier.SendConfirmation(ctx, email, created.Token); err != nil {
		return s.deliveryFailed(OutcomeCreated, email, err)
	}
	return s.handled(OutcomeCreated), nil
}

// createOrLoad inserts a new subscriber. When the insert loses a race on the
// unique email it returns the stored record as raced instead.
func (s *Service) createOrLoad(ctx context.Context, email string, prefs menu.Preferences) (created, raced *Subscriber, err error) {
	created, err = s.repo.Create(ctx, email, prefs)
	if errors.Is(err, ErrEmailTaken) {
		raced, err = s.repo.GetByEmail(ctx, email)
		return nil, raced, err
	}
	return created, nil, err
}

func (s *Service) subscribeExisting(ctx context.Context, email string, existing *Subscriber, prefs menu.Preferences) (Outcome, error) {
	if !existing.IsActive {
		if err := s.repo.UpdatePreferences(ctx, existing.Token, prefs); err != nil {
			return "", err
		}
		if err := s.notifier.SendConfirmation(ctx, email, existing.Token); err != nil {
			return s.deliveryFailed(OutcomeConfirmationResent, email, err)
		}
		return s.handled(OutcomeConfirmationResent), nil
	}
	if err := s.notifier.SendManageLink(ctx, email, existing.Token); err != nil {
		return s.deliveryFailed(OutcomeManageLinkSent, email, err)
	}
	return s.handled(OutcomeManageLinkSent), nil
}

func (s *Service) handled(outcome Outcome) Outcome {
	metrics.SubscriptionsTotal.WithLabelValues(string(outcome)).Inc()
	s.log.Info().Str("outcome", string(outcome)).Msg("subscription request handled")
	return outcome
}

func (s *Service) deliveryFailed(outcome Outcome, email string, err error) (Outcome, error) {
	metrics.SubscriptionsTotal.WithLabelValues("delivery_failed").Inc()
	s.log.Error().Err(err).Str("outcome", string(outcome)).Str("email", email).Msg("subscription email not delivered")
	return outcome, fmt.Errorf("%w: %v", ErrDelivery, err)
}

// Confirm activates the subscription owning token.
func (s *Service) Confirm(ctx context.Context, token string) error {
	if !ValidTokenFormat(token) {
		return ErrNotFound
	}
	return s.repo.Activate(ctx, token)
}

// Get returns the subscription owning token.
func (s *Service) Get(ctx context.Context, token string) (*Subscriber, error) {
	if !ValidTokenFormat(token) {
		return nil, ErrNotFound
	}
	return s.repo.GetByToken(ctx, token)
}

// UpdatePreferences validates and stores new choices for the subscription owning token.
func (s *Service) UpdatePreferences(ctx context.Context, token string, req PreferencesRequest) (*Subscriber, error) {
	if !ValidTokenFormat(token) {
		return nil, ErrNotFound
	}
	prefs, err := s.NormalizePreferences(req.Meals, req.Stations)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePreferences(ctx, token, prefs); err != nil {
		return nil, err
	}
	return s.repo.GetByToken(ctx, token)
}

// Unsubscribe deactivates the subscription owning token.
func (s *Service) Unsubscribe(ctx context.Context, token string) error {
	if !ValidTokenFormat(token) {
		return ErrNotFound
	}
	return s.repo.Deactivate(ctx, token)
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
