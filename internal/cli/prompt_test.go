package cli

import (
	"bytes"
	"context"
	"errors"
	"map-routing-service/internal/adapters/mock"
	"map-routing-service/internal/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGeocoder() *mock.Geocoder {
	return mock.NewGeocoder(map[string]domain.Coordinates{
		"paris":  {Lat: 48.8566, Lon: 2.3522},
		"london": {Lat: 51.5074, Lon: -0.1278},
	})
}

func TestRunPrintsRouteDetails(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("Paris\nLondon\n")

	err := NewPrompter(testGeocoder(), in, &out, nil).Run(context.Background())
	require.NoError(t, err)

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Welcome to the Map Routing System\n"))
	assert.Contains(t, text, "Enter the name of Start Location: ")
	assert.Contains(t, text, "Enter the name of End Location: ")
	assert.Contains(t, text, "Route Details:")
	assert.Contains(t, text, "Start Location: (48.856600, 2.352200)")
	assert.Contains(t, text, "End Location: (51.507400, -0.127800)")
	assert.Regexp(t, `Distance: 34\d\.\d\d km`, text)
	assert.Regexp(t, `Estimated Time to Travel: 5\.7\d hours`, text)
}

func TestAskLocationRepromptsUntilResolved(t *testing.T) {
	var out bytes.Buffer
	geo := testGeocoder()
	geo.FailWith("timeout town", errors.New("upstream down"))
	in := strings.NewReader("Atlantis\ntimeout town\nParis\n")

	coords, err := NewPrompter(geo, in, &out, nil).AskLocation(context.Background(), "Start Location")
	require.NoError(t, err)
	assert.Equal(t, 48.8566, coords.Lat)

	text := out.String()
	assert.Equal(t, 3, strings.Count(text, "Enter the name of Start Location: "))
	assert.Equal(t, 2, strings.Count(text, "Invalid location name. Please try again."))
	assert.Contains(t, text, "Location 'Atlantis' not found.")
}

func TestAskLocationStopsAtEOF(t *testing.T) {
	var out bytes.Buffer
	_, err := NewPrompter(testGeocoder(), strings.NewReader("Atlantis\n"), &out, nil).
		AskLocation(context.Background(), "Start Location")

	assert.True(t, IsEOF(err))
}
