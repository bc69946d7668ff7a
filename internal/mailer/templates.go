package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"sort"
	"strings"
	"time"

	"dailymenu/internal/menu"
)

//go:embed templates/*.html
var templateFS embed.FS

// DefaultBrand is the product name used in subjects and bodies.
const DefaultBrand = "Dickinson Daily Menu"

// Station colours (pastel palette); stations without an entry use defaultStationColor.
var stationColors = map[string]string{
	"Grill":              "#FFF3E0",
	"Pizza":              "#FBE9E7",
	"Pasta Bar":          "#FFF8E1",
	"Salad Bar":          "#E8F5E9",
	"Special Salad Bar":  "#F1F8E9",
	"Fruit Bar":          "#F9FBE7",
	"Deli":               "#EFEBE9",
	"Sandwich Toppings":  "#F5F5F5",
	"Soup":               "#E0F2F1",
	"Desserts":           "#FCE4EC",
	"Ice Cream Toppings": "#F3E5F5",
	"Main Line":          "#E3F2FD",
	"Island 3":           "#E8EAF6",
	"Kove":               "#E1F5FE",
	"Texmex":             "#FFEBEE",
	"Gluten Free":        "#ECEFF1",
	"Sauce Bar":          "#FAFAFA",
}

const defaultStationColor = "#EEEEEE"

// StationColor returns the background colour of a station label.
func StationColor(station string) string {
	if c, ok := stationColors[station]; ok {
		return c
	}
	return defaultStationColor
}

// Links builds the token links placed in emails. Only the token identifies the
// subscriber; addresses never appear in URLs.
type Links struct {
	BaseURL string
}

func (l Links) base() string {
	return strings.TrimRight(l.BaseURL, "/")
}

// Manage points at the subscription form, which loads preferences by token.
func (l Links) Manage(token string) string {
	return l.base() + "/?token=" + url.QueryEscape(token)
}

func (l Links) Confirm(token string) string {
	return l.base() + "/api/v0/subscriptions/" + url.PathEscape(token) + "/confirm"
}

func (l Links) Unsubscribe(token string) string {
	return l.base() + "/api/v0/subscriptions/" + url.PathEscape(token) + "/unsubscribe"
}

// Renderer produces the HTML bodies and subjects of all outgoing mail.
type Renderer struct {
	brand string
	links Links
	tmpl  *template.Template
}

// NewRenderer parses the embedded templates. An empty brand uses DefaultBrand.
func NewRenderer(brand string, links Links) (*Renderer, error) {
	if brand == "" {
		brand = DefaultBrand
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return &Renderer{brand: brand, links: links, tmpl: tmpl}, nil
}

type linkView struct {
	Brand string
	URL   string
}

type stationView struct {
	Name  string
	Color string
	Items []menu.MenuItem
}

type mealView struct {
	Title    string
	Stations []stationView
}

type digestView struct {
	Brand          string
	Date           string
	Meals          []mealView
	ManageURL      string
	UnsubscribeURL string
}

// Confirmation renders the confirm-your-subscription email.
func (r *Renderer) Confirmation(token string) (subject, body string, err error) {
	body, err = r.execute("confirmation.html", linkView{Brand: r.brand, URL: r.links.Confirm(token)})
	return "Confirm your " + r.brand + " subscription", body, err
}

// ManageLink renders the email carrying the preferences link of an existing subscriber.
func (r *Renderer) ManageLink(token string) (subject, body string, err error) {
	body, err = r.execute("manage.html", linkView{Brand: r.brand, URL: r.links.Manage(token)})
	return "Manage your " + r.brand + " preferences", body, err
}

// DigestSubject is the subject line of the daily email, e.g. "Dickinson Daily Menu - Jan 02".
func (r *Renderer) DigestSubject(date time.Time) string {
	return fmt.Sprintf("%s - %s", r.brand, date.Format("Jan 02"))
}

// Digest renders the daily menu for one subscriber. Items are grouped by meal
// in serving order, then by station alphabetically; items keep their order.
func (r *Renderer) Digest(items []menu.MenuItem, date time.Time, token string) (string, error) {
	return r.execute("digest.html", digestView{
		Brand:          r.brand,
		Date:           date.Format("Monday, January 02, 2006"),
		Meals:          groupItems(items),
		ManageURL:      r.links.Manage(token),
		UnsubscribeURL: r.links.Unsubscribe(token),
	})
}

func groupItems(items []menu.MenuItem) []mealView {
	byMeal := map[menu.Meal]map[string][]menu.MenuItem{}
	for _, it := range items {
		if byMeal[it.Meal] == nil {
			byMeal[it.Meal] = map[string][]menu.MenuItem{}
		}
		byMeal[it.Meal][it.Station] = append(byMeal[it.Meal][it.Station], it)
	}

	var meals []mealView
	for _, m := range menu.Meals() {
		stations, ok := byMeal[m]
		if !ok {
			continue
		}
		names := make([]string, 0, len(stations))
		for name := range stations {
			names = append(names, name)
		}
		sort.Strings(names)

		mv := mealView{Title: m.Title()}
		for _, name := range names {
			mv.Stations = append(mv.Stations, stationView{Name: name, Color: StationColor(name), Items: stations[name]})
		}
		meals = append(meals, mv)
	}
	return meals
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
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
