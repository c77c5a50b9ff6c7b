package registration

import (
	"strconv"
	"strings"

	"github.com/chuodata/usajili/core"
)

// Address is used for both billing and mailing addresses. The validate tags
// only come into play on the assembled Registration payload; drafts are
// checked by the step validators instead.
type Address struct {
	Line1   string `json:"line1" validate:"required"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Zip     string `json:"zip" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// Draft is the accumulated, not-yet-submitted registration form data.
// It is a value type: ApplyField returns a new Draft and never mutates in place.
type Draft struct {
	// course selection
	Category string `json:"category"` // category slug
	CourseID int    `json:"course_id"`

	// personal identity
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name,omitempty"`
	LastName    string `json:"last_name"`
	DOBDay      string `json:"dob_day"`
	DOBMonth    string `json:"dob_month"`
	DOBYear     string `json:"dob_year"`
	Gender      string `json:"gender"`
	Nationality string `json:"nationality,omitempty"`

	// contact
	Email string `json:"email"`
	Phone string `json:"phone"`

	// education
	Qualification  string `json:"qualification"`
	Institution    string `json:"institution"`
	FieldOfStudy   string `json:"field_of_study"`
	CompletionYear string `json:"completion_year,omitempty"`

	// employment
	EmploymentStatus     string `json:"employment_status,omitempty"`
	Employer             string `json:"employer,omitempty"`
	ExperienceYears      string `json:"experience_years,omitempty"`
	ExperienceMonths     string `json:"experience_months,omitempty"`
	ProgExperienceYears  string `json:"prog_experience_years,omitempty"`
	ProgExperienceMonths string `json:"prog_experience_months,omitempty"`

	// addresses
	Billing       Address `json:"billing_address"`
	Mailing       Address `json:"mailing_address"`
	SameAsBilling bool    `json:"same_as_billing"`

	// category-specific dynamic fields
	CategoryFields CategoryFields `json:"category_fields"`

	// payment
	CouponCode    string `json:"coupon_code,omitempty"`
	PaymentMethod string `json:"payment_method"`

	TermsAccepted bool `json:"terms_accepted"`
}

// ApplyField applies a single (field, value) change event and returns the
// resulting draft. Unknown field names are ignored. Two special cases:
//   - changing "category" invalidates any previously chosen course and resets
//     the category-specific fields to the new category's (empty) set;
//   - flipping "same_as_billing" to true copies the billing address into the
//     mailing address at that moment (copy-on-check, not copy-on-read).
func (d Draft) ApplyField(name, value string) Draft {
	switch name {
	case "category":
		if value != d.Category {
			d.CourseID = 0
			d.CategoryFields = newCategoryFields(value)
		}
		d.Category = value
	case "course_id":
		d.CourseID = coerceInt(value)

	case "first_name":
		d.FirstName = value
	case "middle_name":
		d.MiddleName = value
	case "last_name":
		d.LastName = value
	case "dob_day":
		d.DOBDay = value
	case "dob_month":
		d.DOBMonth = value
	case "dob_year":
		d.DOBYear = value
	case "gender":
		d.Gender = value
	case "nationality":
		d.Nationality = value

	case "email":
		d.Email = core.CleanString(value, true /* lower */)
	case "phone":
		d.Phone = core.CleanString(value)

	case "qualification":
		d.Qualification = value
	case "institution":
		d.Institution = value
	case "field_of_study":
		d.FieldOfStudy = value
	case "completion_year":
		d.CompletionYear = value

	case "employment_status":
		d.EmploymentStatus = value
	case "employer":
		d.Employer = value
	case "experience_years":
		d.ExperienceYears = value
	case "experience_months":
		d.ExperienceMonths = value
	case "prog_experience_years":
		d.ProgExperienceYears = value
	case "prog_experience_months":
		d.ProgExperienceMonths = value

	case "billing_line1":
		d.Billing.Line1 = value
	case "billing_line2":
		d.Billing.Line2 = value
	case "billing_city":
		d.Billing.City = value
	case "billing_state":
		d.Billing.State = value
	case "billing_zip":
		d.Billing.Zip = value
	case "billing_country":
		d.Billing.Country = value

	case "mailing_line1":
		d.Mailing.Line1 = value
	case "mailing_line2":
		d.Mailing.Line2 = value
	case "mailing_city":
		d.Mailing.City = value
	case "mailing_state":
		d.Mailing.State = value
	case "mailing_zip":
		d.Mailing.Zip = value
	case "mailing_country":
		d.Mailing.Country = value

	case "same_as_billing":
		d.SameAsBilling = coerceBool(value)
		if d.SameAsBilling {
			d.Mailing = d.Billing
		}

	case "coupon_code":
		d.CouponCode = core.CleanString(value)
	case "payment_method":
		d.PaymentMethod = value
	case "terms_accepted":
		d.TermsAccepted = coerceBool(value)

	default:
		d.CategoryFields = d.CategoryFields.applyField(name, value)
	}
	return d
}

// coerceBool maps checkbox-type input values to a boolean.
func coerceBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "on", "1", "yes", "checked":
		return true
	}
	return false
}

// coerceInt maps numeric id inputs to an int; anything unparseable is zero.
func coerceInt(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}
