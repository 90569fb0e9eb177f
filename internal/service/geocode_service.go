package service

import "fmt"

// Geocoder derives a display address from raw coordinates. Stand-in for a real
// reverse-geocoding provider.
type Geocoder struct{}

// NewGeocoder constructs the geocoder.
func NewGeocoder() *Geocoder {
	return &Geocoder{}
}

// ReverseGeocode returns a placeholder address built from the coordinates.
func (g *Geocoder) ReverseGeocode(lat, lng float64) string {
	return fmt.Sprintf("Lat: %.4f, Lng: %.4f", lat, lng)
}
