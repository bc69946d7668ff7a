package menu

import (
	"encoding/json"
	"fmt"
)

// Upstream records are decoded field by field so that one record with an
// unexpected shape degrades to defaults instead of failing the whole payload.
// Only a body that is not a JSON object at all is reported as an error.

type rawObject map[string]json.RawMessage

func decodeObject(data []byte) (rawObject, error) {
	var obj rawObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, fmt.Errorf("expected JSON object, got null")
	}
	return obj, nil
}

func (o rawObject) str(key string) (string, bool) {
	var s string
	if raw, ok := o[key]; ok && json.Unmarshal(raw, &s) == nil && !isNull(raw) {
		return s, true
	}
	return "", false
}

func (o rawObject) boolean(key string) bool {
	var b bool
	if raw, ok := o[key]; ok && json.Unmarshal(raw, &b) == nil {
		return b
	}
	return false
}

func (o rawObject) list(key string) []json.RawMessage {
	var l []json.RawMessage
	if raw, ok := o[key]; ok && json.Unmarshal(raw, &l) == nil {
		return l
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

func (p *RawDayPayload) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("menu payload: %w", err)
	}
	p.Days = nil
	for _, raw := range obj.list("days") {
		var day RawDay
		if err := json.Unmarshal(raw, &day); err != nil {
			continue
		}
		p.Days = append(p.Days, day)
	}
	return nil
}

func (d *RawDay) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("menu day: %w", err)
	}
	d.Date, _ = obj.str("date")
	d.MenuItems = nil
	for _, raw := range obj.list("menu_items") {
		var entry RawEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		d.MenuItems = append(d.MenuItems, entry)
	}
	return nil
}

func (e *RawEntry) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("menu entry: %w", err)
	}
	e.IsStationHeader = obj.boolean("is_station_header")
	e.Text, _ = obj.str("text")
	e.Food = nil
	if raw, ok := obj["food"]; ok {
		// An empty descriptor carries no food, same as a missing one.
		if food, err := decodeObject(raw); err == nil && len(food) > 0 {
			e.Food = food.food()
		}
	}
	return nil
}

func (o rawObject) food() *RawFood {
	f := &RawFood{}
	if name, ok := o.str("name"); ok {
		f.Name = &name
	}
	if desc, ok := o.str("description"); ok {
		f.Description = &desc
	}
	return f
}

func (f *RawFood) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("menu food: %w", err)
	}
	*f = *obj.food()
	return nil
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
