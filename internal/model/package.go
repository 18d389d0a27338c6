package model

import (
	"time"

	"github.com/google/uuid"
)

// PackageStatus enumerates the visibility states of a travel package.
type PackageStatus string

const (
	PackageStatusActive   PackageStatus = "active"
	PackageStatusInactive PackageStatus = "inactive"
)

// MaxSimilarTours caps how many cross-sell entries a package may carry.
const MaxSimilarTours = 3

// DefaultHeroImage is served when a package was created without one.
const DefaultHeroImage = "/uploads/defaults/hero.jpg"

// TravelPackage is a sellable travel itinerary offering.
type TravelPackage struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	Route        string        `json:"route"`
	Duration     int           `json:"duration"`
	Description  string        `json:"description"`
	Price        float64       `json:"price"`
	Included     []string      `json:"included"`
	HeroImage    string        `json:"heroImage"`
	BrochureURL  string        `json:"brochureUrl"`
	Status       PackageStatus `json:"status"`
	SimilarTours []SimilarTour `json:"similarTours"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// SimilarTour is a lightweight cross-sell summary embedded in a package.
// Entries are addressed by their position in the package's list; there is
// no stable per-entry id in the backend contract.
type SimilarTour struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// PackageDetail is the aggregate returned by GET /api/packages/:id.
type PackageDetail struct {
	Package   TravelPackage  `json:"package"`
	Itinerary []ItineraryDay `json:"itinerary"`
}

// UpdatePackageRequest is the JSON payload for image-less package updates.
// Multipart updates carry the same fields as form values.
type UpdatePackageRequest struct {
	Title       string   `json:"title" binding:"required,min=3,max=255"`
	Route       string   `json:"route" binding:"required,max=500"`
	Duration    int      `json:"duration" binding:"required,min=1"`
	Description string   `json:"description" binding:"required"`
	Price       float64  `json:"price" binding:"min=0"`
	Included    []string `json:"included"`
	HeroImage   string   `json:"heroImage" binding:"omitempty,max=500"`
	BrochureURL string   `json:"brochureUrl" binding:"omitempty,max=500"`
	Status      string   `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ValidStatus reports whether s is one of the allowed package statuses.
func ValidStatus(s string) bool {
	switch PackageStatus(s) {
	case PackageStatusActive, PackageStatusInactive:
		return true
	}
	return false
}
