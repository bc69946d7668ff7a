package menu

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DateLayout is the upstream day format.
const DateLayout = "2006-01-02"

// ParseMenu flattens the fetched payloads into menu items in fetch order.
// When targetDate is non-zero only the day with that date contributes items.
// Missing payloads, days and fields are skipped or defaulted; it never fails.
func ParseMenu(raw RawMenu, targetDate time.Time) []MenuItem {
	var want string
	if !targetDate.IsZero() {
		want = targetDate.Format(DateLayout)
	}
	// A Caser keeps state between calls and is not shared outside this parse.
	title := cases.Title(language.Und)

	items := []MenuItem{}
	for _, mp := range raw {
		if mp.Payload == nil || len(mp.Payload.Days) == 0 {
			continue
		}
		for _, day := range mp.Payload.Days {
			if want != "" && day.Date != want {
				continue
			}
			items = append(items, parseDay(mp.Meal, day, title)...)
		}
	}
	return items
}

// stationScan is the accumulator of the fold over one day's entries.
type stationScan struct {
	station string
	items   []MenuItem
}

func parseDay(meal Meal, day RawDay, title cases.Caser) []MenuItem {
	scan := stationScan{station: DefaultStation}
	for _, entry := range day.MenuItems {
		scan = scan.step(meal, entry, title)
	}
	return scan.items
}

// step consumes one entry: a header moves the current station, a food entry
// emits an item at the current station, anything else is ignored.
func (s stationScan) step(meal Meal, e RawEntry, title cases.Caser) stationScan {
	if e.IsStationHeader {
		s.station = stationLabel(e.Text, title)
		return s
	}
	if e.Food == nil {
		return s
	}
	s.items = append(s.items, MenuItem{
		Meal:        meal,
		Station:     s.station,
		Name:        foodName(e.Food),
		Description: foodDescription(e.Food),
	})
	return s
}

func stationLabel(text string, title cases.Caser) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultStation
	}
	return title.String(text)
}

func foodName(f *RawFood) string {
	if f.Name == nil || strings.TrimSpace(*f.Name) == "" {
		return UnknownName
	}
	return *f.Name
}

func foodDescription(f *RawFood) string {
	if f.Description == nil {
		return ""
	}
	return strings.TrimSpace(*f.Description)
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
