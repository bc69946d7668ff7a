package menu

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(label string) RawEntry { return RawEntry{IsStationHeader: true, Text: label} }

func food(name string) RawEntry { return RawEntry{Food: &RawFood{Name: &name}} }

func day(date string, entries ...RawEntry) RawDay { return RawDay{Date: date, MenuItems: entries} }

func payload(days ...RawDay) *RawDayPayload { return &RawDayPayload{Days: days} }

func TestParseMenu_StationHeaderScoping(t *testing.T) {
	raw := RawMenu{{Meal: Lunch, Payload: payload(day("2024-01-02",
		header("Grill"), food("Burger"), header("Soup"), food("Chili"), food("Stew"),
	))}}

	items := ParseMenu(raw, time.Time{})

	assert.Equal(t, []MenuItem{
		{Meal: Lunch, Station: "Grill", Name: "Burger"},
		{Meal: Lunch, Station: "Soup", Name: "Chili"},
		{Meal: Lunch, Station: "Soup", Name: "Stew"},
	}, items)
}

func TestParseMenu_LeadingFoodDefaultsToGeneral(t *testing.T) {
	raw := RawMenu{{Meal: Breakfast, Payload: payload(day("2024-01-02", food("Apple")))}}

	assert.Equal(t, []MenuItem{{Meal: Breakfast, Station: "General", Name: "Apple"}}, ParseMenu(raw, time.Time{}))
}

func TestParseMenu_StationResetsEachDay(t *testing.T) {
	raw := RawMenu{{Meal: Dinner, Payload: payload(
		day("2024-01-01", header("Pizza"), food("Slice")),
		day("2024-01-02", food("Toast")),
	)}}

	items := ParseMenu(raw, time.Time{})
	require.Len(t, items, 2)
	assert.Equal(t, "Pizza", items[0].Station)
	assert.Equal(t, "General", items[1].Station)
}

func TestParseMenu_DateFiltering(t *testing.T) {
	raw := RawMenu{{Meal: Lunch, Payload: payload(
		day("2024-01-01", food("Old")),
		day("2024-01-02", food("New")),
	)}}

	items := ParseMenu(raw, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []MenuItem{{Meal: Lunch, Station: "General", Name: "New"}}, items)
}

func TestParseMenu_NoData(t *testing.T) {
	raw := RawMenu{{Meal: Breakfast}, {Meal: Lunch}, {Meal: Dinner}}
	items := ParseMenu(raw, time.Now())
	assert.NotNil(t, items)
	assert.Empty(t, items)

	assert.Empty(t, ParseMenu(nil, time.Time{}))
	assert.Empty(t, ParseMenu(RawMenu{{Meal: Lunch, Payload: payload()}}, time.Time{}))
}

func TestParseMenu_FailedMealIsIsolated(t *testing.T) {
	raw := RawMenu{
		{Meal: Breakfast},
		{Meal: Lunch, Payload: payload(day("2024-01-02", header("Grill"), food("Burger")))},
		{Meal: Dinner, Payload: payload(day("2024-01-02", header("Soup"), food("Chili")))},
	}

	items := ParseMenu(raw, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []MenuItem{
		{Meal: Lunch, Station: "Grill", Name: "Burger"},
		{Meal: Dinner, Station: "Soup", Name: "Chili"},
	}, items)
}

func TestParseMenu_Idempotent(t *testing.T) {
	raw := RawMenu{{Meal: Lunch, Payload: payload(day("2024-01-02",
		header("grill"), food("Burger"), header("SALAD BAR"), food("Greens"),
	))}}
	target := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, ParseMenu(raw, target), ParseMenu(raw, target))
}

func TestParseMenu_Defaults(t *testing.T) {
	raw := RawMenu{{Meal: Lunch, Payload: payload(day("2024-01-02",
		header(""),
		RawEntry{Food: &RawFood{}},
		RawEntry{},
		header("pasta bar"),
		RawEntry{Food: &RawFood{Name: strPtr("Penne"), Description: strPtr(" with marinara ")}},
	))}}

	assert.Equal(t, []MenuItem{
		{Meal: Lunch, Station: "General", Name: "Unknown"},
		{Meal: Lunch, Station: "Pasta Bar", Name: "Penne", Description: "with marinara"},
	}, ParseMenu(raw, time.Time{}))
}

func TestParseMenu_TitleCasesHeaders(t *testing.T) {
	headers := map[string]string{
		"grill":              "Grill",
		"SOUP":               "Soup",
		"TexMex":             "Texmex",
		"ice cream toppings": "Ice Cream Toppings",
	}
	for in, want := range headers {
		raw := RawMenu{{Meal: Lunch, Payload: payload(day("2024-01-02", header(in), food("x")))}}
		items := ParseMenu(raw, time.Time{})
		require.Len(t, items, 1)
		assert.Equal(t, want, items[0].Station, in)
	}
}

func TestParseMenu_FromUpstreamJSON(t *testing.T) {
	body := `{
		"days": [
			{"date": "2024-01-02", "menu_items": [
				{"is_station_header": true, "text": "grill"},
				{"food": {"name": "Burger"}},
				"not-an-entry",
				{"food": "not-a-food"},
				{"food": {}},
				{"food": {"name": 42}},
				{"text": "separator", "food": null},
				{"is_station_header": "yes", "food": {"name": "Fries"}}
			]},
			{"date": 20240103, "menu_items": "nope"},
			17
		]
	}`

	var p RawDayPayload
	require.NoError(t, json.Unmarshal([]byte(body), &p))

	items := ParseMenu(RawMenu{{Meal: Lunch, Payload: &p}}, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []MenuItem{
		{Meal: Lunch, Station: "Grill", Name: "Burger"},
		{Meal: Lunch, Station: "Grill", Name: "Unknown"},
		{Meal: Lunch, Station: "Grill", Name: "Fries"},
	}, items)
}

func TestRawDayPayload_RejectsNonObjectBody(t *testing.T) {
	var p RawDayPayload
	assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &p))
	assert.Error(t, json.Unmarshal([]byte(`<html>`), &p))

	require.NoError(t, json.Unmarshal([]byte(`{"days": "none"}`), &p))
	assert.Empty(t, p.Days)
}

func strPtr(s string) *string { return &s }
