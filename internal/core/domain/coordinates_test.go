package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinates_Validate(t *testing.T) {
	tests := []struct {
		name        string
		coords      Coordinates
		expectError bool
	}{
		{name: "valid", coords: Coordinates{Latitude: 48.2, Longitude: 16.4}},
		{name: "latitude too high", coords: Coordinates{Latitude: 91}, expectError: true},
		{name: "latitude too low", coords: Coordinates{Latitude: -91}, expectError: true},
		{name: "longitude too high", coords: Coordinates{Longitude: 181}, expectError: true},
		{name: "longitude too low", coords: Coordinates{Longitude: -181}, expectError: true},
		{name: "boundary values", coords: Coordinates{Latitude: 90, Longitude: -180}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coords.Validate()

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCoordinates_Key(t *testing.T) {
	a := Coordinates{Latitude: 48.20835, Longitude: 16.37250}
	b := Coordinates{Latitude: 48.20849, Longitude: 16.37281}

	// Same place within ~111m rounds onto one cache key.
	assert.Equal(t, a.Key(), b.Key())

	c := Coordinates{Latitude: 48.3, Longitude: 16.37250}
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestCoordinates_Rounded(t *testing.T) {
	c := Coordinates{Latitude: 48.123456, Longitude: -16.987654}

	r := c.Rounded()

	assert.Equal(t, 48.123, r.Latitude)
	assert.Equal(t, -16.988, r.Longitude)
}
