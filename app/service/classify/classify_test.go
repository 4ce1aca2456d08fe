package classify_test

import (
	"strings"
	"testing"

	"dashmate/app/service/classify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPlaceSearch(t *testing.T) {
	raw := "Found 3 restaurants near you (sample)\n" +
		"1. 📍 Cafe A (0.5 mi) ⭐ 4.5 🟢\n" +
		"2. 📍 Cafe B (1.2 mi) ⭐ 4.0 🔴"

	result := classify.Classify(raw)

	require.Equal(t, classify.KindPlaceSearch, result.Kind)
	require.NotNil(t, result.PlaceSearch)

	search := result.PlaceSearch
	assert.Equal(t, 3, search.Count)
	assert.Equal(t, "restaurants", search.Category)

	require.Len(t, search.Places, 2)
	assert.Equal(t, classify.Place{Name: "Cafe A", Distance: "0.5 mi", Rating: "⭐ 4.5", Status: "Open"}, search.Places[0])
	assert.Equal(t, classify.Place{Name: "Cafe B", Distance: "1.2 mi", Rating: "⭐ 4.0", Status: "Closed"}, search.Places[1])
}

func TestClassifyPlaceSearchBackendFormat(t *testing.T) {
	raw := "🔍 Found 2 places to visit near you:\n" +
		"\n" +
		"1. 📍 Buddha Park (Temple Complex) ⭐ 4.2/5 🟢\n" +
		"2. 📍 Ventrapragada Temple (Temple) ⭐ 4.5/5\n" +
		"\n" +
		"💡 Say 'navigate to [place name]' for directions"

	result := classify.Classify(raw)

	require.Equal(t, classify.KindPlaceSearch, result.Kind)
	assert.Equal(t, 2, result.PlaceSearch.Count)
	assert.Equal(t, "places to visit", result.PlaceSearch.Category)

	require.Len(t, result.PlaceSearch.Places, 2)
	assert.Equal(t, "Buddha Park", result.PlaceSearch.Places[0].Name)
	assert.Equal(t, "Temple Complex", result.PlaceSearch.Places[0].Distance)
	assert.Equal(t, "⭐ 4.2/5", result.PlaceSearch.Places[0].Rating)
	assert.Equal(t, "Open", result.PlaceSearch.Places[0].Status)
	assert.Equal(t, "", result.PlaceSearch.Places[1].Status)
}

func TestClassifyPlaceSearchNoParens(t *testing.T) {
	raw := "Found 1 hotels near you\n1. 📍 Grand Residency ⭐ 4.1 🔴"

	result := classify.Classify(raw)

	require.Equal(t, classify.KindPlaceSearch, result.Kind)
	require.Len(t, result.PlaceSearch.Places, 1)

	place := result.PlaceSearch.Places[0]
	assert.Equal(t, "Grand Residency", place.Name)
	assert.Equal(t, "⭐ 4.1", place.Rating)
	assert.Equal(t, "Closed", place.Status)
	assert.Empty(t, place.Distance)
}

func TestClassifyPlaceSearchDropsNamelessEntries(t *testing.T) {
	raw := "Found 2 restaurants near you\n1. 📍 (0.5 mi)\n2. 📍 Cafe B (1.2 mi)"

	result := classify.Classify(raw)

	require.Equal(t, classify.KindPlaceSearch, result.Kind)
	// The announced count stays even when an entry is unusable.
	assert.Equal(t, 2, result.PlaceSearch.Count)
	require.Len(t, result.PlaceSearch.Places, 1)
	assert.Equal(t, "Cafe B", result.PlaceSearch.Places[0].Name)
}

func TestClassifyDirections(t *testing.T) {
	raw := "🧭 Navigation Route\n" +
		"📍 Destination: Chennai International Airport\n" +
		"📏 Distance: 24.3 km\n" +
		"⏱️ Duration: 42 mins\n" +
		"\n" +
		"🗺️ Turn-by-Turn Directions:\n" +
		"1. Head north on Main St (0.5 km)\n" +
		"2. Turn left onto Airport Rd (3.1 km)\n" +
		"\n" +
		"🌐 Open in Google Maps: https://www.google.com/maps/dir/13.08,80.27/Chennai+Airport"

	result := classify.Classify(raw)

	require.Equal(t, classify.KindDirections, result.Kind)

	directions := result.Directions
	assert.Equal(t, "Chennai International Airport", directions.Destination)
	assert.Equal(t, "24.3 km", directions.Distance)
	assert.Equal(t, "42 mins", directions.Duration)
	assert.Equal(t, "https://www.google.com/maps/dir/13.08,80.27/Chennai+Airport", directions.MapsURL)

	require.Len(t, directions.Steps, 2)
	assert.Equal(t, classify.Step{Index: 1, Instruction: "Head north on Main St (0.5 km)"}, directions.Steps[0])
	assert.Equal(t, classify.Step{Index: 2, Instruction: "Turn left onto Airport Rd (3.1 km)"}, directions.Steps[1])
}

func TestClassifyDirectionsErrorMarker(t *testing.T) {
	raw := "🧭 Navigation Route\n❌ Unable to calculate a route to that destination"

	result := classify.Classify(raw)

	require.Equal(t, classify.KindError, result.Kind)
	assert.Equal(t, raw, result.Error.Raw)
	assert.NotEmpty(t, result.Error.Message)
}

func TestClassifyDirectionsMissingDestination(t *testing.T) {
	raw := "🧭 Navigation Route\n📏 Distance: 12 km"

	result := classify.Classify(raw)

	require.Equal(t, classify.KindError, result.Kind)
	assert.Equal(t, raw, result.Error.Raw)
}

func TestClassifyLocation(t *testing.T) {
	raw := "📍 You are in Eluru, Andhra Pradesh, India"

	result := classify.Classify(raw)

	require.Equal(t, classify.KindLocation, result.Kind)
	assert.Equal(t, raw, result.Location.Text)
}

func TestClassifyLocationTooManyLines(t *testing.T) {
	raw := "📍 You are here\nline two\nline three\nline four"

	result := classify.Classify(raw)

	assert.Equal(t, classify.KindGeneral, result.Kind)
}

func TestClassifyGeneralWithMapsLink(t *testing.T) {
	raw := "Here is the route overview. View it at https://www.google.com/maps/dir/a/b and drive safely."

	result := classify.Classify(raw)

	require.Equal(t, classify.KindGeneral, result.Kind)

	general := result.General
	assert.Equal(t, raw, general.Text)
	assert.Equal(t, "Here is the route overview. View it at ", general.Before)
	assert.Equal(t, "https://www.google.com/maps/dir/a/b", general.URL)
	assert.Equal(t, " and drive safely.", general.After)
}

func TestClassifyGeneralPlain(t *testing.T) {
	result := classify.Classify("The temperature is set to 22 degrees.")

	require.Equal(t, classify.KindGeneral, result.Kind)
	assert.Empty(t, result.General.URL)
}

// Classification is total: any input produces exactly one variant and
// never panics.
func TestClassifyTotality(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"\n\n\n",
		"📍",
		"🧭",
		"🔍 Found near you",
		"Found x restaurants near you",
		"1. ",
		strings.Repeat("📍 pin ", 500),
		"Found 99999999999999999999 things near you",
		"🧭\n1. step without any destination",
		"🌐 Open in Google Maps:",
	}

	for _, input := range inputs {
		result := classify.Classify(input)

		variants := 0
		for _, set := range []bool{
			result.PlaceSearch != nil,
			result.Directions != nil,
			result.Location != nil,
			result.General != nil,
			result.Error != nil,
		} {
			if set {
				variants++
			}
		}

		assert.Equal(t, 1, variants, "input %q", input)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	raw := "Found 3 restaurants near you\n1. 📍 Cafe A (0.5 mi) ⭐ 4.5 🟢"

	first := classify.Classify(raw)
	second := classify.Classify(raw)

	assert.Equal(t, first, second)
}
