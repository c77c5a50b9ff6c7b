package catalog

import (
	"time"

	"github.com/chuodata/usajili/core"
)

// Known category slugs; the registration wizard keys its
// category-specific field sets off these.
const (
	SlugDasaca    = "dasaca"
	SlugBootCamp  = "bootcamp"
	SlugCorporate = "corporate"
)

type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

type Course struct {
	ID            int            `json:"id"`
	CategoryID    int            `json:"category_id"`
	CategorySlug  string         `json:"category"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Price         float64        `json:"price"`
	DiscountPrice *float64       `json:"discount_price,omitempty"`
	Duration      string         `json:"duration,omitempty"`
	Level         string         `json:"level,omitempty"`
	Modules       []CourseModule `json:"modules,omitempty"`
	CreatedAt     time.Time      `json:"created_at"` // UTC
	UpdatedAt     time.Time      `json:"updated_at"` // UTC
}

// BasePrice is the price checkout starts from: the sale price when one is set.
func (c Course) BasePrice() float64 {
	if c.DiscountPrice != nil {
		return *c.DiscountPrice
	}
	return c.Price
}

// CourseModule is one curriculum row of a Course.
type CourseModule struct {
	ID       int    `json:"id"`
	CourseID int    `json:"course_id"`
	Position int    `json:"position"`
	Title    string `json:"title"`
	Summary  string `json:"summary,omitempty"`
}

// NewCategory contains information needed to create a new Category.
type NewCategory struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required,lowercase"`
	Description string `json:"description"`
}

func (nc *NewCategory) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Slug = core.CleanString(nc.Slug, true /* lower */)
	return core.Validate.Struct(nc)
}

// UpdateCategory defines what information may be provided to modify an existing Category.
type UpdateCategory struct {
	Name        string `json:"name"`
	Slug        string `json:"slug" validate:"omitempty,lowercase"`
	Description string `json:"description"`
}

func (uc *UpdateCategory) Validate(orig Category) error {
	if name := core.CleanString(uc.Name); name != "" {
		uc.Name = name
	} else {
		uc.Name = orig.Name
	}
	if slug := core.CleanString(uc.Slug, true /* lower */); slug != "" {
		uc.Slug = slug
	} else {
		uc.Slug = orig.Slug
	}
	if uc.Description == "" {
		uc.Description = orig.Description
	}
	return core.Validate.Struct(uc)
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	CategoryID    int               `json:"category_id" validate:"required"`
	Title         string            `json:"title" validate:"required"`
	Description   string            `json:"description"`
	Price         float64           `json:"price" validate:"gte=0"`
	DiscountPrice *float64          `json:"discount_price" validate:"omitempty,gte=0"`
	Duration      string            `json:"duration"`
	Level         string            `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Modules       []NewCourseModule `json:"modules" validate:"dive"`
}

func (nc *NewCourse) Validate() error {
	nc.Title = core.CleanString(nc.Title)
	return core.Validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
type UpdateCourse struct {
	CategoryID    int      `json:"category_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	DiscountPrice *float64 `json:"discount_price" validate:"omitempty,gte=0"`
	Duration      string   `json:"duration"`
	Level         string   `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
}

func (uc *UpdateCourse) Validate(orig Course) error {
	if title := core.CleanString(uc.Title); title != "" {
		uc.Title = title
	} else {
		uc.Title = orig.Title
	}
	if uc.CategoryID == 0 {
		uc.CategoryID = orig.CategoryID
	}
	if uc.Description == "" {
		uc.Description = orig.Description
	}
	if uc.Duration == "" {
		uc.Duration = orig.Duration
	}
	if uc.Level == "" {
		uc.Level = orig.Level
	}
	if uc.Price == nil {
		price := orig.Price
		uc.Price = &price
	}
	if uc.DiscountPrice == nil {
		uc.DiscountPrice = orig.DiscountPrice
	}
	return core.Validate.Struct(uc)
}

type NewCourseModule struct {
	Position int    `json:"position" validate:"gte=0"`
	Title    string `json:"title" validate:"required"`
	Summary  string `json:"summary"`
}
