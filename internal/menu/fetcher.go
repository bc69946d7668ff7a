package menu

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"dailymenu/internal/metrics"
)

const (
	// DefaultBaseURL is the nutrition-data endpoint serving the cafeteria menus.
	DefaultBaseURL = "https://dickinson.api.nutrislice.com/menu/api/weeks/school/the-caf/menu-type"
	// DefaultFetchTimeout bounds each per-meal request.
	DefaultFetchTimeout = 10 * time.Second
)

// Source produces the raw per-meal payloads for a date.
type Source interface {
	FetchMenuData(ctx context.Context, date time.Time) RawMenu
}

// Fetcher reads menus from the upstream nutrition-data API.
type Fetcher struct {
	baseURL string
	client  *resty.Client
	log     zerolog.Logger
}

// NewFetcher creates a fetcher. Empty baseURL and non-positive timeout take the defaults.
func NewFetcher(baseURL string, timeout time.Duration, log zerolog.Logger) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	c := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Fetcher{baseURL: baseURL, client: c, log: log.With().Str("component", "menu_fetcher").Logger()}
}

// MenuURL builds the request URL for one meal on one date:
// <base>/{meal}/{yyyy}/{mm}/{dd}/
func (f *Fetcher) MenuURL(date time.Time, meal Meal) string {
	return fmt.Sprintf("%s/%s/%04d/%02d/%02d/", f.baseURL, meal, date.Year(), int(date.Month()), date.Day())
}

// FetchMenuData requests every meal of the date, one after the other.
// A meal whose request fails in any way is returned with a nil payload;
// the remaining meals are still requested. It never returns an error.
func (f *Fetcher) FetchMenuData(ctx context.Context, date time.Time) RawMenu {
	out := make(RawMenu, 0, len(Meals()))
	for _, meal := range Meals() {
		payload, err := f.fetchMeal(ctx, date, meal)
		if err != nil {
			f.log.Warn().Err(err).
				Str("meal", string(meal)).
				Str("date", date.Format(DateLayout)).
				Msg("menu fetch failed")
			metrics.MenuFetchTotal.WithLabelValues(string(meal), metrics.ResultError).Inc()
			out = append(out, MealPayload{Meal: meal})
			continue
		}
		metrics.MenuFetchTotal.WithLabelValues(string(meal), metrics.ResultOK).Inc()
		out = append(out, MealPayload{Meal: meal, Payload: payload})
	}
	return out
}

func (f *Fetcher) fetchMeal(ctx context.Context, date time.Time, meal Meal) (*RawDayPayload, error) {
	url := f.MenuURL(date, meal)
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode())
	}

	var payload RawDayPayload
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return &payload, nil
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
