package model

import (
	"time"

	"github.com/google/uuid"
)

// Testimonial is a customer review shown on the marketing site.
type Testimonial struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTestimonialRequest is the admin payload for publishing a testimonial.
type CreateTestimonialRequest struct {
	Name   string `json:"name" binding:"required,min=2,max=120"`
	Text   string `json:"text" binding:"required,min=5,max=2000"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
}
