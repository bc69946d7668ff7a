package menu

import "fmt"

// EmptyStationsPolicy decides what a subscriber with meals but no stations receives.
type EmptyStationsPolicy string

const (
	// AllowAll sends every station of the selected meals.
	AllowAll EmptyStationsPolicy = "allowAll"
	// SuppressAll sends nothing, the same outcome as selecting no meals.
	SuppressAll EmptyStationsPolicy = "suppressAll"
)

// DefaultEmptyStationsPolicy mirrors the empty-meals rule: no selection, no content.
const DefaultEmptyStationsPolicy = SuppressAll

// ParseEmptyStationsPolicy accepts "allowAll" or "suppressAll"; empty input yields the default.
func ParseEmptyStationsPolicy(s string) (EmptyStationsPolicy, error) {
	switch EmptyStationsPolicy(s) {
	case "":
		return DefaultEmptyStationsPolicy, nil
	case AllowAll, SuppressAll:
		return EmptyStationsPolicy(s), nil
	}
	return "", fmt.Errorf("unknown empty-stations policy %q", s)
}

// Filter selects the items matching a subscriber's preferences.
type Filter struct {
	OnEmptyStations EmptyStationsPolicy
}

// ForUser returns the items whose meal and station are both selected, in input order.
// No selected meals means no items.
func (f Filter) ForUser(items []MenuItem, prefs Preferences) []MenuItem {
	out := []MenuItem{}
	if len(prefs.Meals) == 0 {
		return out
	}
	anyStation := false
	if len(prefs.Stations) == 0 {
		if f.OnEmptyStations != AllowAll {
			return out
		}
		anyStation = true
	}

	for _, item := range items {
		if !prefs.HasMeal(item.Meal) {
			continue
		}
		if !anyStation && !prefs.HasStation(item.Station) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FilterForUser applies the default policy.
func FilterForUser(items []MenuItem, prefs Preferences) []MenuItem {
	return Filter{OnEmptyStations: DefaultEmptyStationsPolicy}.ForUser(items, prefs)
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
