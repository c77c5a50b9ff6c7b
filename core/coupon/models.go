package coupon

import (
	"time"

	"github.com/chuodata/usajili/core"
)

// Discount types
const (
	TypeFlat    = "flat"    // Value is subtracted as-is
	TypePercent = "percent" // Value is a percentage of the price
)

type Coupon struct {
	ID        int        `json:"id"`
	Code      string     `json:"code"`
	Type      string     `json:"type"`
	Value     float64    `json:"value"`
	CourseID  *int       `json:"course_id,omitempty"`  // nil: applies to all courses
	ExpiresAt *time.Time `json:"expires_at,omitempty"` // nil: never expires
	MinPrice  *float64   `json:"min_price,omitempty"`  // nil: no minimum
	CreatedAt time.Time  `json:"created_at"`           // UTC
	UpdatedAt time.Time  `json:"updated_at"`           // UTC
}

// Descriptor is the resolved outcome of validating a coupon code
// against a course and a price. An invalid coupon carries a zero Discount.
type Descriptor struct {
	Valid    bool    `json:"valid"`
	Code     string  `json:"code,omitempty"`
	Message  string  `json:"message"`
	Discount float64 `json:"discount"` // absolute currency units
}

// NewCoupon contains information needed to create a new Coupon.
type NewCoupon struct {
	Code      string     `json:"code" validate:"required"`
	Type      string     `json:"type" validate:"required,oneof=flat percent"`
	Value     float64    `json:"value" validate:"gt=0"`
	CourseID  *int       `json:"course_id"`
	ExpiresAt *time.Time `json:"expires_at"`
	MinPrice  *float64   `json:"min_price" validate:"omitempty,gte=0"`
}

func (nc *NewCoupon) Validate() error {
	// codes are matched exactly; only whitespace is stripped
	nc.Code = core.CleanString(nc.Code)
	return core.Validate.Struct(nc)
}

// UpdateCoupon defines what information may be provided to modify an existing Coupon.
type UpdateCoupon struct {
	Code      string     `json:"code"`
	Type      string     `json:"type" validate:"omitempty,oneof=flat percent"`
	Value     *float64   `json:"value" validate:"omitempty,gt=0"`
	CourseID  *int       `json:"course_id"`
	ExpiresAt *time.Time `json:"expires_at"`
	MinPrice  *float64   `json:"min_price" validate:"omitempty,gte=0"`
}

func (uc *UpdateCoupon) Validate(orig Coupon) error {
	if code := core.CleanString(uc.Code); code != "" {
		uc.Code = code
	} else {
		uc.Code = orig.Code
	}
	if uc.Type == "" {
		uc.Type = orig.Type
	}
	if uc.Value == nil {
		uc.Value = &orig.Value
	}
	return core.Validate.Struct(uc)
}
