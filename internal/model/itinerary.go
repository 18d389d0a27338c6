package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// ItineraryDay is one day's schedule within a package. Day numbers are not
// required to be unique or contiguous; display order is a numeric sort.
type ItineraryDay struct {
	ID          uuid.UUID `json:"id"`
	PackageID   uuid.UUID `json:"packageId"`
	DayNumber   int       `json:"dayNumber"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Activities  []string  `json:"activities"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateItineraryDayRequest is the payload for adding a day to a package.
type CreateItineraryDayRequest struct {
	PackageID   string   `json:"packageId" binding:"required,uuid"`
	DayNumber   int      `json:"dayNumber" binding:"required,min=1"`
	Title       string   `json:"title" binding:"required,min=1,max=255"`
	Description string   `json:"description" binding:"required"`
	Activities  []string `json:"activities"`
}

// UpdateItineraryDayRequest is the payload for updating an existing day.
type UpdateItineraryDayRequest struct {
	DayNumber   int      `json:"dayNumber" binding:"required,min=1"`
	Title       string   `json:"title" binding:"required,min=1,max=255"`
	Description string   `json:"description" binding:"required"`
	Activities  []string `json:"activities"`
}

// SortItineraryDays orders days by ascending day number. The sort is stable
// so duplicate day numbers keep their fetch order.
func SortItineraryDays(days []ItineraryDay) {
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].DayNumber < days[j].DayNumber
	})
}
