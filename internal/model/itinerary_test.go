package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/travelia/travelia-backend/internal/model"
)

// TestSortItineraryDays verifies days come out in ascending day order
// regardless of insertion order.
func TestSortItineraryDays(t *testing.T) {
	days := []model.ItineraryDay{
		{DayNumber: 3, Title: "Summit"},
		{DayNumber: 1, Title: "Arrival"},
		{DayNumber: 2, Title: "Base camp"},
	}

	model.SortItineraryDays(days)

	require.Equal(t, []int{1, 2, 3}, []int{days[0].DayNumber, days[1].DayNumber, days[2].DayNumber})
	require.Equal(t, "Arrival", days[0].Title)
}

// TestSortItineraryDays_stable verifies duplicate day numbers keep their
// original relative order.
func TestSortItineraryDays_stable(t *testing.T) {
	days := []model.ItineraryDay{
		{DayNumber: 2, Title: "second-first"},
		{DayNumber: 1, Title: "first"},
		{DayNumber: 2, Title: "second-second"},
	}

	model.SortItineraryDays(days)

	require.Equal(t, "first", days[0].Title)
	require.Equal(t, "second-first", days[1].Title)
	require.Equal(t, "second-second", days[2].Title)
}

// TestValidStatus covers the two legal statuses and a rejection.
func TestValidStatus(t *testing.T) {
	require.True(t, model.ValidStatus("active"))
	require.True(t, model.ValidStatus("inactive"))
	require.False(t, model.ValidStatus("archived"))
	require.False(t, model.ValidStatus(""))
}
