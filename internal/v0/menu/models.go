package menu

import "dailymenu/internal/menu"

// QueryDateLayout is the DDMMYYYY date format accepted by the menu endpoint.
const QueryDateLayout = "02012006"

// DayMenu is the menu of one day after optional filtering
type DayMenu struct {
	Date  string          `json:"date"`
	Items []menu.MenuItem `json:"items"`
}

type StationList struct {
	Stations []string `json:"stations"`
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
