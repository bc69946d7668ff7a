// Package app assembles the menu pipeline and subscriber store from the environment.
package app

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"dailymenu/internal/databases"
	"dailymenu/internal/digest"
	"dailymenu/internal/env"
	"dailymenu/internal/mailer"
	"dailymenu/internal/menu"
	"dailymenu/internal/subscribers"
)

// DefaultDatabasePath is used when DATABASE_PATH is unset.
const DefaultDatabasePath = "./internal/databases/subscribers.db"

// App holds the long-lived components shared by the binaries.
type App struct {
	DB          *sql.DB
	Location    *time.Location
	Catalog     *menu.Catalog
	Stations    *menu.StationCache
	Fetcher     *menu.Fetcher
	Renderer    *mailer.Renderer
	Sender      mailer.Sender
	Subscribers *subscribers.Repository
	Service     *subscribers.Service
	Runner      *digest.Runner
}

// Build opens and migrates the database and wires every component.
func Build(log zerolog.Logger) (*App, error) {
	policy, err := menu.ParseEmptyStationsPolicy(env.GetEnv(env.EnvOnEmptyStations, ""))
	if err != nil {
		return nil, errors.Wrap(err, env.EnvOnEmptyStations)
	}
	loc, err := time.LoadLocation(env.GetEnv(env.EnvDigestTimezone, "America/New_York"))
	if err != nil {
		return nil, errors.Wrap(err, env.EnvDigestTimezone)
	}

	db, err := databases.Open(env.GetEnv(env.EnvDatabasePath, DefaultDatabasePath))
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if err := databases.Migrate(db, databases.Subscribers); err != nil {
		db.Close()
		return nil, errors.WithStack(err)
	}

	renderer, err := mailer.NewRenderer(
		env.GetEnv(env.EnvMenuBrand, mailer.DefaultBrand),
		mailer.Links{BaseURL: env.GetEnv(env.EnvPublicURL, "http://localhost:9237")},
	)
	if err != nil {
		db.Close()
		return nil, errors.WithStack(err)
	}

	a := &App{
		DB:       db,
		Location: loc,
		Catalog:  menu.NewCatalog(),
		Fetcher: menu.NewFetcher(
			env.GetEnv(env.EnvMenuBaseURL, menu.DefaultBaseURL),
			env.GetDuration(env.EnvMenuFetchTimeout, menu.DefaultFetchTimeout),
			log,
		),
		Renderer: renderer,
		Sender: mailer.NewSMTPSender(mailer.SMTPConfig{
			Server:   env.GetEnv(env.EnvSMTPServer, "smtp.gmail.com"),
			Port:     env.GetInt(env.EnvSMTPPort, 587),
			Email:    env.GetEnv(env.EnvSMTPEmail, ""),
			Password: env.GetEnv(env.EnvSMTPPassword, ""),
		}, log),
		Subscribers: subscribers.NewRepository(db),
	}
	a.Stations = menu.NewStationCache(a.Catalog, env.GetDuration(env.EnvStationCacheTTL, time.Hour))
	a.Service = subscribers.NewService(a.Subscribers, a.Catalog, mailer.NewNotifier(renderer, a.Sender), log)
	a.Runner = digest.NewRunner(a.Fetcher, a.Subscribers, renderer, a.Sender, digest.Config{
		Workers:  env.GetInt(env.EnvDigestWorkers, 4),
		Location: loc,
		Filter:   menu.Filter{OnEmptyStations: policy},
	}, log)
	return a, nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.DB.Close()
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
