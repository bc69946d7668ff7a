package menu

import (
	"fmt"
	"strings"
)

// Meal is the coarse time-of-day bucket a menu item belongs to.
type Meal string

const (
	Breakfast Meal = "breakfast"
	Lunch     Meal = "lunch"
	Dinner    Meal = "dinner"
)

// Meals returns the meal tags in serving order.
func Meals() []Meal {
	return []Meal{Breakfast, Lunch, Dinner}
}

// ParseMeal normalizes a meal tag, rejecting anything that is not one of Meals().
func ParseMeal(s string) (Meal, error) {
	m := Meal(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case Breakfast, Lunch, Dinner:
		return m, nil
	}
	return "", fmt.Errorf("unknown meal %q", s)
}

// Title returns the display form of the meal, e.g. "Lunch".
func (m Meal) Title() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// DefaultStation is used for items that appear before any station header of the day.
const DefaultStation = "General"

// UnknownName is used for food records without a name.
const UnknownName = "Unknown"

// MenuItem is one food offered at a station during a meal.
type MenuItem struct {
	Meal        Meal   `json:"meal"`
	Station     string `json:"station"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Preferences is the subscriber's selection. Both sets must match for an item to be sent.
type Preferences struct {
	Meals    []Meal   `json:"meals"`
	Stations []string `json:"stations"`
}

// HasMeal reports whether m is among the selected meals.
func (p Preferences) HasMeal(m Meal) bool {
	for _, v := range p.Meals {
		if v == m {
			return true
		}
	}
	return false
}

// HasStation reports whether station is among the selected stations. Parsed
// labels are title-cased ("Texmex") while catalog names may not be ("TexMex"),
// so the comparison ignores case.
func (p Preferences) HasStation(station string) bool {
	for _, v := range p.Stations {
		if strings.EqualFold(v, station) {
			return true
		}
	}
	return false
}

// MealPayload pairs a meal tag with the upstream payload fetched for it.
// Payload is nil when the fetch for that meal failed.
type MealPayload struct {
	Meal    Meal
	Payload *RawDayPayload
}

// RawMenu is the fetch result for one date, in fetch order.
type RawMenu []MealPayload

// RawDayPayload is the upstream body for one meal type.
type RawDayPayload struct {
	Days []RawDay `json:"days"`
}

// RawDay is one calendar day of entries. Entry order is significant:
// a station header applies to every following food entry until the next header.
type RawDay struct {
	Date      string     `json:"date"`
	MenuItems []RawEntry `json:"menu_items"`
}

// RawEntry is either a station header (IsStationHeader, Text) or a food entry (Food).
type RawEntry struct {
	IsStationHeader bool     `json:"is_station_header"`
	Text            string   `json:"text"`
	Food            *RawFood `json:"food"`
}

// RawFood is the nested food descriptor of a food entry.
type RawFood struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
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
