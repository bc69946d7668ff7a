package env

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetList splits a comma separated variable, dropping blank elements.
func GetList(key string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Server
const (
	EnvPort         = "PORT"
	EnvDatabasePath = "DATABASE_PATH"
	EnvLogLevel     = "LOG_LEVEL"
	EnvPublicURL    = "PUBLIC_BASE_URL"
)

// Menu pipeline
const (
	EnvMenuBaseURL      = "MENU_BASE_URL"
	EnvMenuFetchTimeout = "MENU_FETCH_TIMEOUT"
	EnvMenuBrand        = "MENU_BRAND"
	EnvOnEmptyStations  = "ON_EMPTY_STATIONS"
	EnvStationCacheTTL  = "STATION_CACHE_TTL"
)

// Outbound mail
const (
	EnvSMTPServer   = "SMTP_SERVER"
	EnvSMTPPort     = "SMTP_PORT"
	EnvSMTPEmail    = "SMTP_EMAIL"
	EnvSMTPPassword = "SMTP_PASSWORD"
)

// Daily digest
const (
	EnvSchedulerEnabled = "SCHEDULER_ENABLED"
	EnvDigestAt         = "DIGEST_AT"
	EnvDigestTimezone   = "DIGEST_TIMEZONE"
	EnvDigestWorkers    = "DIGEST_WORKERS"
)

// Admin access
const (
	EnvAdminToken      = "ADMIN_TOKEN"
	EnvAdminAllowedIPs = "ADMIN_ALLOWED_IPS"
)

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
