package menu

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dailymenu/internal/common"
	"dailymenu/internal/menu"
)

// Handler serves the parsed menu straight from the upstream source
type Handler struct {
	source   menu.Source
	stations *menu.StationCache
	loc      *time.Location
	now      func() time.Time
}

func NewHandler(source menu.Source, stations *menu.StationCache, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{source: source, stations: stations, loc: loc, now: time.Now}
}

// GetMenu returns the menu of ?date=DDMMYYYY (today when absent), optionally
// narrowed by comma separated ?meals= and ?stations=.
func (h *Handler) GetMenu(c *gin.Context) {
	date := h.now().In(h.loc)
	if dateParameter := c.Query("date"); dateParameter != "" {
		parsedTime, err := time.ParseInLocation(QueryDateLayout, dateParameter, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"Invalid date format. Please use DDMMYYYY"}))
			return
		}
		date = parsedTime
	}

	prefs := menu.Preferences{Meals: menu.Meals(), Stations: splitList(c.Query("stations"))}
	if meals := splitList(c.Query("meals")); len(meals) > 0 {
		prefs.Meals = nil
		for _, raw := range meals {
			m, err := menu.ParseMeal(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
				return
			}
			prefs.Meals = append(prefs.Meals, m)
		}
	}

	items := menu.ParseMenu(h.source.FetchMenuData(c.Request.Context(), date), date)
	// Missing stations mean every station here, whatever the digest policy is.
	items = menu.Filter{OnEmptyStations: menu.AllowAll}.ForUser(items, prefs)

	c.JSON(http.StatusOK, common.CreateSuccessResponse(DayMenu{
		Date:  date.Format(menu.DateLayout),
		Items: items,
	}))
}

// GetStations returns the station catalog
func (h *Handler) GetStations(c *gin.Context) {
	c.JSON(http.StatusOK, common.CreateSuccessResponse(StationList{Stations: h.stations.Stations()}))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
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
