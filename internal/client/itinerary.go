package client

import (
	"context"
	"net/http"

	"github.com/travelia/travelia-backend/internal/model"
)

// CreateItineraryDay adds a day to a package's itinerary.
func (c *Client) CreateItineraryDay(ctx context.Context, req model.CreateItineraryDayRequest) (*model.ItineraryDay, error) {
	var result model.ItineraryDay
	if err := c.doJSON(ctx, http.MethodPost, "/admin/itinerary", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateItineraryDay updates an existing itinerary day.
func (c *Client) UpdateItineraryDay(ctx context.Context, id string, req model.UpdateItineraryDayRequest) (*model.ItineraryDay, error) {
	var result model.ItineraryDay
	if err := c.doJSON(ctx, http.MethodPut, "/admin/itinerary/"+id, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteItineraryDay removes a day from an itinerary.
func (c *Client) DeleteItineraryDay(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/admin/itinerary/"+id, nil, nil)
}
