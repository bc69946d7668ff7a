package main

import (
	"flag"

	"github.com/joho/godotenv"

	"dailymenu/internal/app"
	"dailymenu/internal/databases"
	"dailymenu/internal/env"
	"dailymenu/internal/logger"
)

func main() {
	_ = godotenv.Load()
	log := logger.New("dailymenu-migrate", env.GetEnv(env.EnvLogLevel, "info"))

	path := flag.String("db", env.GetEnv(env.EnvDatabasePath, app.DefaultDatabasePath), "path to the database file")
	set := flag.String("set", databases.Subscribers, "migration set to apply")
	flag.Parse()

	db, err := databases.Open(*path)
	if err != nil {
		log.Fatal().Err(err).Str("db", *path).Msg("open database")
	}
	defer db.Close()

	if err := databases.Migrate(db, *set); err != nil {
		log.Fatal().Err(err).Str("db", *path).Msg("migration failed")
	}
	log.Info().Str("db", *path).Str("set", *set).Msg("Database migration complete")
}

/*
This project is the monolithic backend API for the OpenSourceDUTH team. Access to open data compiled and provided by the OpenSourceDUTH University Team as well as helper endpoints to integrate with our apps.
API Copyright (C) 2025 OpenSourceDUTH
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
