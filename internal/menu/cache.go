package menu

import (
	"sync"
	"time"
)

// StationCache memoizes Catalog.AvailableStations for a fixed TTL.
type StationCache struct {
	catalog *Catalog
	ttl     time.Duration
	now     func() time.Time

	mu        sync.Mutex
	stations  []string
	expiresAt time.Time
}

// NewStationCache wraps catalog; a non-positive ttl defaults to one hour.
func NewStationCache(catalog *Catalog, ttl time.Duration) *StationCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &StationCache{catalog: catalog, ttl: ttl, now: time.Now}
}

// Stations returns the cached list, reloading it once the TTL has passed.
func (c *StationCache) Stations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.stations == nil || !now.Before(c.expiresAt) {
		c.stations = c.catalog.AvailableStations(now)
		c.expiresAt = now.Add(c.ttl)
	}

	result := make([]string, len(c.stations))
	copy(result, c.stations)
	return result
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
