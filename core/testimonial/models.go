package testimonial

import (
	"time"

	"github.com/chuodata/usajili/core"
)

type Testimonial struct {
	ID          int       `json:"id"`
	Author      string    `json:"author"`
	Role        string    `json:"role,omitempty"` // e.g. "Data Analyst, BootCamp '24"
	Quote       string    `json:"quote"`
	Rating      int       `json:"rating"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// NewTestimonial contains information needed to create a new Testimonial.
type NewTestimonial struct {
	Author      string `json:"author" validate:"required"`
	Role        string `json:"role"`
	Quote       string `json:"quote" validate:"required"`
	Rating      int    `json:"rating" validate:"gte=1,lte=5"`
	IsPublished bool   `json:"is_published"`
}

func (nt *NewTestimonial) Validate() error {
	nt.Author = core.CleanString(nt.Author)
	nt.Quote = core.CleanString(nt.Quote)
	return core.Validate.Struct(nt)
}

// UpdateTestimonial defines what information may be provided to modify an existing Testimonial.
type UpdateTestimonial struct {
	Author      string `json:"author"`
	Role        string `json:"role"`
	Quote       string `json:"quote"`
	Rating      *int   `json:"rating" validate:"omitempty,gte=1,lte=5"`
	IsPublished *bool  `json:"is_published"`
}

func (ut *UpdateTestimonial) Validate(orig Testimonial) error {
	if author := core.CleanString(ut.Author); author != "" {
		ut.Author = author
	} else {
		ut.Author = orig.Author
	}
	if quote := core.CleanString(ut.Quote); quote != "" {
		ut.Quote = quote
	} else {
		ut.Quote = orig.Quote
	}
	if ut.Role == "" {
		ut.Role = orig.Role
	}
	if ut.Rating == nil {
		ut.Rating = &orig.Rating
	}
	return core.Validate.Struct(ut)
}
