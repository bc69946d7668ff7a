package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var filterItems = []MenuItem{
	{Meal: Lunch, Station: "Grill", Name: "A"},
	{Meal: Lunch, Station: "Soup", Name: "B"},
	{Meal: Dinner, Station: "Grill", Name: "C"},
}

func TestFilterForUser(t *testing.T) {
	got := FilterForUser(filterItems, Preferences{Meals: []Meal{Lunch}, Stations: []string{"Grill"}})
	assert.Equal(t, []MenuItem{{Meal: Lunch, Station: "Grill", Name: "A"}}, got)
}

func TestFilterForUser_PreservesOrder(t *testing.T) {
	got := FilterForUser(filterItems, Preferences{Meals: []Meal{Dinner, Lunch}, Stations: []string{"Soup", "Grill"}})
	assert.Equal(t, filterItems, got)
}

func TestFilterForUser_EmptyMealsSuppresses(t *testing.T) {
	for _, policy := range []EmptyStationsPolicy{AllowAll, SuppressAll} {
		f := Filter{OnEmptyStations: policy}
		assert.Empty(t, f.ForUser(filterItems, Preferences{Stations: []string{"Grill"}}), policy)
		assert.Empty(t, f.ForUser(filterItems, Preferences{}), policy)
	}
}

func TestFilter_EmptyStationsPolicy(t *testing.T) {
	prefs := Preferences{Meals: []Meal{Lunch}}

	assert.Empty(t, Filter{OnEmptyStations: SuppressAll}.ForUser(filterItems, prefs))
	assert.Empty(t, FilterForUser(filterItems, prefs))
	assert.Equal(t, filterItems[:2], Filter{OnEmptyStations: AllowAll}.ForUser(filterItems, prefs))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := append([]MenuItem(nil), filterItems...)
	FilterForUser(in, Preferences{Meals: []Meal{Lunch}, Stations: []string{"Grill"}})
	assert.Equal(t, filterItems, in)
}

func TestParseEmptyStationsPolicy(t *testing.T) {
	p, err := ParseEmptyStationsPolicy("")
	assert.NoError(t, err)
	assert.Equal(t, SuppressAll, p)

	p, err = ParseEmptyStationsPolicy("allowAll")
	assert.NoError(t, err)
	assert.Equal(t, AllowAll, p)

	_, err = ParseEmptyStationsPolicy("everything")
	assert.Error(t, err)
}

func TestParseMeal(t *testing.T) {
	m, err := ParseMeal(" Lunch ")
	assert.NoError(t, err)
	assert.Equal(t, Lunch, m)
	assert.Equal(t, "Lunch", m.Title())

	_, err = ParseMeal("brunch")
	assert.Error(t, err)
}

func TestFilter_StationMatchIgnoresCase(t *testing.T) {
	items := []MenuItem{{Meal: Lunch, Station: "Texmex", Name: "Taco"}}
	got := FilterForUser(items, Preferences{Meals: []Meal{Lunch}, Stations: []string{"TexMex"}})
	assert.Equal(t, items, got)
}
