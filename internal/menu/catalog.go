package menu

import (
	"sort"
	"strings"
	"time"
)

// DefaultStations is the serving-line table of the cafeteria. It is the single
// definition of the station list; consumers receive it through a Catalog.
var DefaultStations = []string{
	"Deli", "Grill", "Pizza", "Pasta Bar", "Salad Bar",
	"TexMex", "Ice Cream Toppings", "Soup", "Desserts", "Special Salad Bar",
	"Fruit Bar", "Sauce Bar", "Island 3", "Main Line", "Gluten Free", "Kove", "Sandwich Toppings",
}

// Catalog is the fixed set of stations subscribers can choose from.
type Catalog struct {
	stations []string
	byName   map[string]string // lower-cased name -> catalog spelling
}

// NewCatalog builds a catalog from the given names, or DefaultStations when none are given.
func NewCatalog(names ...string) *Catalog {
	if len(names) == 0 {
		names = DefaultStations
	}
	c := &Catalog{byName: make(map[string]string, len(names))}
	for _, n := range names {
		key := strings.ToLower(n)
		if _, dup := c.byName[key]; dup {
			continue
		}
		c.byName[key] = n
		c.stations = append(c.stations, n)
	}
	sort.Strings(c.stations)
	return c
}

// AvailableStations returns the sorted station names. The date does not change
// the result; the set is fixed for the lifetime of the process.
func (c *Catalog) AvailableStations(_ time.Time) []string {
	// Return a copy to prevent external modification
	result := make([]string, len(c.stations))
	copy(result, c.stations)
	return result
}

// Has reports whether name is a known station, ignoring case.
func (c *Catalog) Has(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// Lookup returns the catalog spelling of name, matched ignoring case.
func (c *Catalog) Lookup(name string) (string, bool) {
	canonical, ok := c.byName[strings.ToLower(name)]
	return canonical, ok
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
