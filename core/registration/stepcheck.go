package registration

import "github.com/chuodata/usajili/core"

// StepResult is the outcome of validating one wizard step against a draft.
// Errors are advisory, keyed by field name; Complete alone gates navigation.
type StepResult struct {
	Errors   map[string]string `json:"errors"`
	Complete bool              `json:"complete"`
}

type stepValidator func(Draft) StepResult

var stepValidators = map[string]stepValidator{
	StepCourse:    validateCourseStep,
	StepPersonal:  validatePersonalStep,
	StepEducation: validateEducationStep,
	StepPayment:   validatePaymentStep,
	StepReview:    validateReviewStep,
}

// ValidateStep runs the validator for the given step id.
// Unknown step ids report complete with no errors.
func ValidateStep(stepID string, d Draft) StepResult {
	if validate, ok := stepValidators[stepID]; ok {
		return validate(d)
	}
	return StepResult{Errors: map[string]string{}, Complete: true}
}

// Completion recomputes the per-step completion map from the draft.
func Completion(d Draft) map[string]bool {
	m := make(map[string]bool, len(Steps))
	for _, step := range Steps {
		m[step.ID] = ValidateStep(step.ID, d).Complete
	}
	return m
}

const requiredMsg = "this field is required"

func validateCourseStep(d Draft) StepResult {
	errs := map[string]string{}
	if d.Category == "" {
		errs["category"] = "please select a category"
	}
	if d.CourseID == 0 {
		errs["course_id"] = "please select a course"
	}
	return StepResult{Errors: errs, Complete: len(errs) == 0}
}

// validatePersonalStep gates completion on emptiness alone; email/phone format
// failures surface as field errors but do not affect Complete.
func validatePersonalStep(d Draft) StepResult {
	errs := map[string]string{}
	required := map[string]string{
		"first_name":    d.FirstName,
		"last_name":     d.LastName,
		"email":         d.Email,
		"phone":         d.Phone,
		"gender":        d.Gender,
		"dob_day":       d.DOBDay,
		"dob_month":     d.DOBMonth,
		"dob_year":      d.DOBYear,
		"billing_line1": d.Billing.Line1,
		"billing_city":  d.Billing.City,
		"billing_zip":   d.Billing.Zip,
	}
	for name, val := range required {
		if val == "" {
			errs[name] = requiredMsg
		}
	}
	complete := len(errs) == 0

	if d.Email != "" && !core.EmailIsValid(d.Email) {
		errs["email"] = "enter a valid email address"
	}
	if d.Phone != "" && !core.PhoneIsValid(d.Phone) {
		errs["phone"] = "phone number must be exactly 10 digits"
	}
	return StepResult{Errors: errs, Complete: complete}
}

func validateEducationStep(d Draft) StepResult {
	errs := map[string]string{}
	if d.Qualification == "" {
		errs["qualification"] = requiredMsg
	}
	if d.Institution == "" {
		errs["institution"] = requiredMsg
	}
	if d.FieldOfStudy == "" {
		errs["field_of_study"] = requiredMsg
	}
	return StepResult{Errors: errs, Complete: len(errs) == 0}
}

func validatePaymentStep(d Draft) StepResult {
	errs := map[string]string{}
	if d.PaymentMethod == "" {
		errs["payment_method"] = "please select a payment method"
	}
	return StepResult{Errors: errs, Complete: len(errs) == 0}
}

func validateReviewStep(d Draft) StepResult {
	errs := map[string]string{}
	if !d.TermsAccepted {
		errs["terms_accepted"] = "you must accept the terms and conditions"
	}
	return StepResult{Errors: errs, Complete: len(errs) == 0}
}
