package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Restaurant is a place that sells items. Latitude is within [-90, 90] and longitude within [-180, 180].
type Restaurant struct {
	ID        int64
	Name      string
	Address   string
	Latitude  float64
	Longitude float64
	PlaceID   string     // External place identifier, unique.
	IsActive  bool
	OwnerID   *uuid.UUID // Merchant account owning the restaurant, if any.
	CreatedAt time.Time
}

// Point returns the restaurant location in orb's (lon, lat) order.
func (r *Restaurant) Point() orb.Point {
	return orb.Point{r.Longitude, r.Latitude}
}

// HasValidCoordinates reports whether the geocoordinate is within range.
func (r *Restaurant) HasValidCoordinates() bool {
	return ValidCoordinates(r.Latitude, r.Longitude)
}

// IsOwnedBy reports whether the merchant owns the restaurant.
func (r *Restaurant) IsOwnedBy(userID uuid.UUID) bool {
	return r.OwnerID != nil && *r.OwnerID == userID
}

// ValidCoordinates reports whether lat/lng form a valid geocoordinate.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
