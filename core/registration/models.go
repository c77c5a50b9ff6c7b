package registration

import (
	"strings"
	"time"

	"github.com/chuodata/usajili/core"
)

// Registration is a submitted, persisted enrollment record.
type Registration struct {
	ID        int    `json:"id"`
	Reference string `json:"reference"` // opaque public identifier

	Category    string `json:"category"`
	CourseID    int    `json:"course_id"`
	CourseTitle string `json:"course_title"`

	FirstName   string `json:"first_name" validate:"required"`
	MiddleName  string `json:"middle_name,omitempty"`
	LastName    string `json:"last_name" validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required"` // YYYY-MM-DD
	Gender      string `json:"gender" validate:"required"`
	Nationality string `json:"nationality,omitempty"`

	Email string `json:"email" validate:"required"`
	Phone string `json:"phone" validate:"required"`

	Qualification  string `json:"qualification" validate:"required"`
	Institution    string `json:"institution" validate:"required"`
	FieldOfStudy   string `json:"field_of_study" validate:"required"`
	CompletionYear string `json:"completion_year,omitempty"`

	EmploymentStatus     string `json:"employment_status,omitempty"`
	Employer             string `json:"employer,omitempty"`
	ExperienceYears      string `json:"experience_years,omitempty"`
	ExperienceMonths     string `json:"experience_months,omitempty"`
	ProgExperienceYears  string `json:"prog_experience_years,omitempty"`
	ProgExperienceMonths string `json:"prog_experience_months,omitempty"`

	Billing Address `json:"billing_address"`
	Mailing Address `json:"mailing_address"`

	CategoryFields CategoryFields `json:"category_fields"`

	CouponCode    string  `json:"coupon_code,omitempty"`
	Discount      float64 `json:"discount"`
	FinalPrice    float64 `json:"final_price"`
	PaymentMethod string  `json:"payment_method" validate:"required"`

	TermsAccepted bool      `json:"terms_accepted" validate:"eq=true"`
	CreatedAt     time.Time `json:"created_at"` // UTC
}

// Validate applies the orchestrator's own required-field rules on the
// assembled payload; notably both addresses must be complete regardless of
// how the mailing address was filled in.
func (r *Registration) Validate() error {
	return core.Validate.Struct(r)
}

// formatDOB concatenates the date-of-birth parts with '-' separators.
// The parts are taken as-is; no calendar parsing is attempted.
func formatDOB(year, month, day string) string {
	return strings.Join([]string{year, month, day}, "-")
}

// QueryFilter narrows admin registration listings.
type QueryFilter struct {
	Search      string    `query:"search"` // matches name or email
	Category    string    `query:"category"`
	CourseID    int       `query:"course_id"`
	CreatedFrom time.Time `query:"created_from"`
	CreatedTo   time.Time `query:"created_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Category == "" && qf.CourseID == 0 &&
		qf.CreatedFrom.IsZero() && qf.CreatedTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Category = core.CleanString(qf.Category, true /* lower */)
}
