package registration

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/chuodata/usajili/core"
	"github.com/chuodata/usajili/core/catalog"
	"github.com/chuodata/usajili/core/coupon"
)

var (
	// errors
	ErrNotFound        = errors.New("registration not found")
	ErrSubmitInFlight  = errors.New("a submission is already in progress")
	ErrNotOnReviewStep = errors.New("submission is only allowed from the review step")
)

const confirmationTmpl = "registration-confirmation"

func init() {
	core.RegisterEmailTemplate(
		confirmationTmpl,
		`Hi {{ .Data.FirstName }},

Your registration for "{{ .Data.CourseTitle }}" has been received.

Reference: {{ .Data.Reference }}
Amount due: {{ printf "%.2f" .Data.FinalPrice }}

Track your enrollment at {{ .FrontendBaseURL }}/registrations/{{ .Data.Reference }}.
`,
		`<p>Hi {{ .Data.FirstName }},</p>
<p>Your registration for <strong>{{ .Data.CourseTitle }}</strong> has been received.</p>
<p>Reference: {{ .Data.Reference }}<br>
Amount due: {{ printf "%.2f" .Data.FinalPrice }}</p>
<p><a href="{{ .FrontendBaseURL }}/registrations/{{ .Data.Reference }}">Track your enrollment</a>.</p>
`,
	)
}

type (
	Repository interface {
		CreateRegistration(ctx context.Context, reg Registration) (Registration, error)
		QueryAllRegistrations(ctx context.Context) ([]Registration, error)
		GetRegistrationByID(ctx context.Context, id int) (Registration, error)
		// FilterRegistrations applies AND on available QueryFilter fields;
		// QueryFilter.Search does a case-insensitive match on name or email.
		FilterRegistrations(ctx context.Context, filter QueryFilter) ([]Registration, error)
	}

	Service struct {
		repo       Repository
		catalogSvc *catalog.Service
		couponSvc  *coupon.Service
		mailSvc    core.EmailService
		sessions   *SessionStore
	}
)

func NewService(
	repo Repository,
	catalogSvc *catalog.Service,
	couponSvc *coupon.Service,
	mailSvc core.EmailService,
	sessions *SessionStore,
) *Service {
	return &Service{
		repo:       repo,
		catalogSvc: catalogSvc,
		couponSvc:  couponSvc,
		mailSvc:    mailSvc,
		sessions:   sessions,
	}
}

// Quote is the current pricing picture for a wizard's selected course.
type Quote struct {
	CourseID      int               `json:"course_id"`
	CourseTitle   string            `json:"course_title"`
	Price         float64           `json:"price"`
	DiscountPrice *float64          `json:"discount_price,omitempty"`
	Coupon        coupon.Descriptor `json:"coupon"`
	FinalPrice    float64           `json:"final_price"`
}

// State is a snapshot of a wizard session, as served to the client.
type State struct {
	Token         string            `json:"token"`
	StepIndex     int               `json:"step_index"`
	Step          StepDescriptor    `json:"step"`
	Steps         []StepDescriptor  `json:"steps"`
	Completion    map[string]bool   `json:"completion"`
	StepErrors    map[string]string `json:"step_errors"`
	Draft         Draft             `json:"draft"`
	DynamicFields []FieldDef        `json:"dynamic_fields,omitempty"`
	Quote         *Quote            `json:"quote,omitempty"`
	Submitting    bool              `json:"submitting"`
}

// StartWizard opens a new wizard session, optionally pre-seeded from query
// parameters. A seeded course id that resolves to a real course skips the
// course-selection step.
func (svc *Service) StartWizard(ctx context.Context, category string, courseID int) (State, error) {
	var w *Wizard
	if courseID != 0 {
		crs, err := svc.catalogSvc.GetCourseByID(ctx, courseID)
		switch {
		case err == nil:
			w = NewSeededWizard(crs.CategorySlug, crs.ID, true)
		case errors.Cause(err) == catalog.ErrNotFound:
			w = NewSeededWizard(category, 0, false)
		default:
			return State{}, errors.Wrap(err, "resolving seeded course")
		}
	} else {
		w = NewSeededWizard(category, 0, false)
		if category == "" {
			w = NewWizard()
		}
	}

	sess := svc.sessions.Start(w)
	return svc.state(ctx, sess)
}

// GetState returns the current snapshot of a wizard session.
func (svc *Service) GetState(ctx context.Context, token string) (State, error) {
	sess, err := svc.sessions.Get(token)
	if err != nil {
		return State{}, err
	}
	return svc.state(ctx, sess)
}

// SetField applies one field-change event to the session's draft. A course
// may only be chosen from the drafted category; a course id pointing outside
// it is discarded.
func (svc *Service) SetField(ctx context.Context, token, name, value string) (State, error) {
	sess, err := svc.sessions.Get(token)
	if err != nil {
		return State{}, err
	}
	err = sess.Do(func(w *Wizard) error {
		w.SetField(name, value)
		if name != "course_id" {
			return nil
		}
		d := w.Draft()
		if d.CourseID == 0 || d.Category == "" {
			return nil
		}
		crs, err := svc.catalogSvc.GetCourseByID(ctx, d.CourseID)
		switch {
		case err == nil:
			if crs.CategorySlug != d.Category {
				w.SetField(name, "0")
			}
		case errors.Cause(err) != catalog.ErrNotFound:
			return errors.Wrap(err, "resolving selected course")
		}
		return nil
	})
	if err != nil {
		return State{}, err
	}
	return svc.state(ctx, sess)
}

// Next advances the wizard when the active step is complete; a blocked
// advance leaves the state unchanged and is reported on the snapshot's
// StepErrors rather than as an error.
func (svc *Service) Next(ctx context.Context, token string) (State, error) {
	sess, err := svc.sessions.Get(token)
	if err != nil {
		return State{}, err
	}
	_ = sess.Do(func(w *Wizard) error {
		w.Next()
		return nil
	})
	return svc.state(ctx, sess)
}

func (svc *Service) Previous(ctx context.Context, token string) (State, error) {
	sess, err := svc.sessions.Get(token)
	if err != nil {
		return State{}, err
	}
	_ = sess.Do(func(w *Wizard) error {
		w.Previous()
		return nil
	})
	return svc.state(ctx, sess)
}

func (svc *Service) JumpTo(ctx context.Context, token string, index int) (State, error) {
	sess, err := svc.sessions.Get(token)
	if err != nil {
		return State{}, err
	}
	_ = sess.Do(func(w *Wizard) error {
		w.JumpTo(index)
		return nil
	})
	return svc.state(ctx, sess)
}

// Submit is the final safety net: it re-validates every step, assembles the
// payload with the computed final price, persists it and resets the wizard.
// On any failure the draft is preserved so the user can retry.
func (svc *Service) Submit(ctx context.Context, token string) (Registration, error) {
	sess, err := svc.sessions.Get(token)
	if err != nil {
		return Registration{}, err
	}

	var reg Registration
	err = sess.Do(func(w *Wizard) error {
		if w.StepIndex() != lastStepIndex() {
			return ErrNotOnReviewStep
		}
		if !w.beginSubmit() {
			return ErrSubmitInFlight
		}
		defer w.endSubmit()

		if errs, complete := w.ValidateAll(); !complete {
			flds := make([]core.FieldError, 0, len(errs))
			for field, msg := range errs {
				flds = append(flds, core.FieldError{Field: field, Error: msg})
			}
			return core.NewValidationError(errors.New("registration is incomplete"), flds...)
		}

		d := w.Draft()
		crs, err := svc.catalogSvc.GetCourseByID(ctx, d.CourseID)
		if err != nil {
			return errors.Wrap(err, "resolving selected course")
		}
		// the catalog may have moved the course since it was drafted
		if crs.CategorySlug != d.Category {
			return core.NewValidationError(
				errors.New("registration is incomplete"),
				core.FieldError{Field: "course_id", Error: "this course is not part of the chosen category"},
			)
		}

		desc, err := svc.couponSvc.Validate(ctx, d.CouponCode, crs.ID, crs.BasePrice())
		if err != nil {
			return errors.Wrap(err, "validating coupon")
		}

		reg = assemble(d, crs, desc)
		if err := reg.Validate(); err != nil {
			return err
		}

		if reg, err = svc.repo.CreateRegistration(ctx, reg); err != nil {
			return errors.Wrap(err, "persisting registration")
		}

		svc.sendConfirmationMail(reg)
		w.Reset()
		return nil
	})
	if err != nil {
		return Registration{}, err
	}
	return reg, nil
}

// assemble builds the final payload from the draft and the resolved course
// and coupon.
func assemble(d Draft, crs catalog.Course, desc coupon.Descriptor) Registration {
	reg := Registration{
		Reference: uuid.New().String(),

		Category:    crs.CategorySlug,
		CourseID:    crs.ID,
		CourseTitle: crs.Title,

		FirstName:   core.CleanString(d.FirstName),
		MiddleName:  core.CleanString(d.MiddleName),
		LastName:    core.CleanString(d.LastName),
		DateOfBirth: formatDOB(d.DOBYear, d.DOBMonth, d.DOBDay),
		Gender:      d.Gender,
		Nationality: d.Nationality,

		Email: d.Email,
		Phone: d.Phone,

		Qualification:  d.Qualification,
		Institution:    d.Institution,
		FieldOfStudy:   d.FieldOfStudy,
		CompletionYear: d.CompletionYear,

		EmploymentStatus:     d.EmploymentStatus,
		Employer:             d.Employer,
		ExperienceYears:      d.ExperienceYears,
		ExperienceMonths:     d.ExperienceMonths,
		ProgExperienceYears:  d.ProgExperienceYears,
		ProgExperienceMonths: d.ProgExperienceMonths,

		Billing: d.Billing,
		Mailing: d.Mailing,

		CategoryFields: d.CategoryFields,

		CouponCode:    d.CouponCode,
		Discount:      desc.Discount,
		PaymentMethod: d.PaymentMethod,

		TermsAccepted: d.TermsAccepted,
		CreatedAt:     time.Now().UTC(),
	}
	if !desc.Valid {
		reg.CouponCode = ""
	}
	reg.FinalPrice = ComputeFinalPrice(crs, desc)
	return reg
}

func (svc *Service) sendConfirmationMail(reg Registration) {
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: reg.FirstName + " " + reg.LastName, Address: reg.Email}},
		Subject:      "Registration received",
		TemplateName: confirmationTmpl,
		TemplateData: reg,
	})
}

// state computes a session snapshot, resolving the quote when a course is
// selected. A course that no longer resolves degrades to a nil quote.
func (svc *Service) state(ctx context.Context, sess *Session) (State, error) {
	var st State
	err := sess.Do(func(w *Wizard) error {
		d := w.Draft()
		st = State{
			Token:         sess.Token,
			StepIndex:     w.StepIndex(),
			Step:          w.Step(),
			Steps:         Steps,
			Completion:    w.Completion(),
			StepErrors:    w.StepResult().Errors,
			Draft:         d,
			DynamicFields: ResolveFieldDefs(d.Category),
			Submitting:    w.Submitting(),
		}
		return nil
	})
	if err != nil {
		return State{}, err
	}

	if st.Draft.CourseID != 0 {
		crs, err := svc.catalogSvc.GetCourseByID(ctx, st.Draft.CourseID)
		switch {
		case err == nil:
			desc, err := svc.couponSvc.Validate(ctx, st.Draft.CouponCode, crs.ID, crs.BasePrice())
			if err != nil {
				return State{}, errors.Wrap(err, "validating coupon")
			}
			st.Quote = &Quote{
				CourseID:      crs.ID,
				CourseTitle:   crs.Title,
				Price:         crs.Price,
				DiscountPrice: crs.DiscountPrice,
				Coupon:        desc,
				FinalPrice:    ComputeFinalPrice(crs, desc),
			}
		case errors.Cause(err) != catalog.ErrNotFound:
			return State{}, errors.Wrap(err, "resolving selected course")
		}
	}
	return st, nil
}

// Admin read side

func (svc *Service) QueryAll(ctx context.Context) ([]Registration, error) {
	return svc.repo.QueryAllRegistrations(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Registration, error) {
	return svc.repo.GetRegistrationByID(ctx, id)
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Registration, error) {
	filter.Clean()
	if filter.IsEmpty() {
		return svc.repo.QueryAllRegistrations(ctx)
	}
	return svc.repo.FilterRegistrations(ctx, filter)
}
