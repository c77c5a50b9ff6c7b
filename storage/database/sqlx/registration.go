package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/chuodata/usajili/core/registration"
)

type registrationRepository struct {
	db *sqlx.DB
}

var _ registration.Repository = (*registrationRepository)(nil) // interface compliance check

func NewRegistrationRepository(db *sqlx.DB) *registrationRepository {
	return &registrationRepository{db: db}
}

type registrationRow struct {
	ID          int    `db:"id"`
	Reference   string `db:"reference"`
	Category    string `db:"category"`
	CourseID    int    `db:"course_id"`
	CourseTitle string `db:"course_title"`

	FirstName   string `db:"first_name"`
	MiddleName  string `db:"middle_name"`
	LastName    string `db:"last_name"`
	DateOfBirth string `db:"date_of_birth"`
	Gender      string `db:"gender"`
	Nationality string `db:"nationality"`

	Email string `db:"email"`
	Phone string `db:"phone"`

	Qualification  string `db:"qualification"`
	Institution    string `db:"institution"`
	FieldOfStudy   string `db:"field_of_study"`
	CompletionYear string `db:"completion_year"`

	EmploymentStatus     string `db:"employment_status"`
	Employer             string `db:"employer"`
	ExperienceYears      string `db:"experience_years"`
	ExperienceMonths     string `db:"experience_months"`
	ProgExperienceYears  string `db:"prog_experience_years"`
	ProgExperienceMonths string `db:"prog_experience_months"`

	BillingLine1   string `db:"billing_line1"`
	BillingLine2   string `db:"billing_line2"`
	BillingCity    string `db:"billing_city"`
	BillingState   string `db:"billing_state"`
	BillingZip     string `db:"billing_zip"`
	BillingCountry string `db:"billing_country"`

	MailingLine1   string `db:"mailing_line1"`
	MailingLine2   string `db:"mailing_line2"`
	MailingCity    string `db:"mailing_city"`
	MailingState   string `db:"mailing_state"`
	MailingZip     string `db:"mailing_zip"`
	MailingCountry string `db:"mailing_country"`

	CategoryFields []byte `db:"category_fields"` // jsonb

	CouponCode    string  `db:"coupon_code"`
	Discount      float64 `db:"discount"`
	FinalPrice    float64 `db:"final_price"`
	PaymentMethod string  `db:"payment_method"`

	TermsAccepted bool      `db:"terms_accepted"`
	CreatedAt     time.Time `db:"created_at"`
}

func (repo registrationRepository) row(reg registration.Registration) (registrationRow, error) {
	catFields, err := json.Marshal(reg.CategoryFields)
	if err != nil {
		return registrationRow{}, errors.Wrap(err, "marshaling category fields")
	}
	return registrationRow{
		ID:          reg.ID,
		Reference:   reg.Reference,
		Category:    reg.Category,
		CourseID:    reg.CourseID,
		CourseTitle: reg.CourseTitle,

		FirstName:   reg.FirstName,
		MiddleName:  reg.MiddleName,
		LastName:    reg.LastName,
		DateOfBirth: reg.DateOfBirth,
		Gender:      reg.Gender,
		Nationality: reg.Nationality,

		Email: reg.Email,
		Phone: reg.Phone,

		Qualification:  reg.Qualification,
		Institution:    reg.Institution,
		FieldOfStudy:   reg.FieldOfStudy,
		CompletionYear: reg.CompletionYear,

		EmploymentStatus:     reg.EmploymentStatus,
		Employer:             reg.Employer,
		ExperienceYears:      reg.ExperienceYears,
		ExperienceMonths:     reg.ExperienceMonths,
		ProgExperienceYears:  reg.ProgExperienceYears,
		ProgExperienceMonths: reg.ProgExperienceMonths,

		BillingLine1:   reg.Billing.Line1,
		BillingLine2:   reg.Billing.Line2,
		BillingCity:    reg.Billing.City,
		BillingState:   reg.Billing.State,
		BillingZip:     reg.Billing.Zip,
		BillingCountry: reg.Billing.Country,

		MailingLine1:   reg.Mailing.Line1,
		MailingLine2:   reg.Mailing.Line2,
		MailingCity:    reg.Mailing.City,
		MailingState:   reg.Mailing.State,
		MailingZip:     reg.Mailing.Zip,
		MailingCountry: reg.Mailing.Country,

		CategoryFields: catFields,

		CouponCode:    reg.CouponCode,
		Discount:      reg.Discount,
		FinalPrice:    reg.FinalPrice,
		PaymentMethod: reg.PaymentMethod,

		TermsAccepted: reg.TermsAccepted,
		CreatedAt:     reg.CreatedAt,
	}, nil
}

func (repo registrationRepository) registration(row registrationRow) (registration.Registration, error) {
	reg := registration.Registration{
		ID:          row.ID,
		Reference:   row.Reference,
		Category:    row.Category,
		CourseID:    row.CourseID,
		CourseTitle: row.CourseTitle,

		FirstName:   row.FirstName,
		MiddleName:  row.MiddleName,
		LastName:    row.LastName,
		DateOfBirth: row.DateOfBirth,
		Gender:      row.Gender,
		Nationality: row.Nationality,

		Email: row.Email,
		Phone: row.Phone,

		Qualification:  row.Qualification,
		Institution:    row.Institution,
		FieldOfStudy:   row.FieldOfStudy,
		CompletionYear: row.CompletionYear,

		EmploymentStatus:     row.EmploymentStatus,
		Employer:             row.Employer,
		ExperienceYears:      row.ExperienceYears,
		ExperienceMonths:     row.ExperienceMonths,
		ProgExperienceYears:  row.ProgExperienceYears,
		ProgExperienceMonths: row.ProgExperienceMonths,

		Billing: registration.Address{
			Line1: row.BillingLine1, Line2: row.BillingLine2, City: row.BillingCity,
			State: row.BillingState, Zip: row.BillingZip, Country: row.BillingCountry,
		},
		Mailing: registration.Address{
			Line1: row.MailingLine1, Line2: row.MailingLine2, City: row.MailingCity,
			State: row.MailingState, Zip: row.MailingZip, Country: row.MailingCountry,
		},

		CouponCode:    row.CouponCode,
		Discount:      row.Discount,
		FinalPrice:    row.FinalPrice,
		PaymentMethod: row.PaymentMethod,

		TermsAccepted: row.TermsAccepted,
		CreatedAt:     row.CreatedAt,
	}
	if len(row.CategoryFields) > 0 {
		if err := json.Unmarshal(row.CategoryFields, &reg.CategoryFields); err != nil {
			return registration.Registration{}, errors.Wrap(err, "unmarshaling category fields")
		}
	}
	return reg, nil
}

func (repo registrationRepository) registrations(rows []registrationRow) ([]registration.Registration, error) {
	regs := make([]registration.Registration, 0, len(rows))
	for _, row := range rows {
		reg, err := repo.registration(row)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, nil
}

func (repo registrationRepository) CreateRegistration(ctx context.Context, reg registration.Registration) (registration.Registration, error) {
	row, err := repo.row(reg)
	if err != nil {
		return registration.Registration{}, err
	}
	query, args, err := repo.db.BindNamed(
		`INSERT INTO registration (
			reference, category, course_id, course_title,
			first_name, middle_name, last_name, date_of_birth, gender, nationality,
			email, phone,
			qualification, institution, field_of_study, completion_year,
			employment_status, employer, experience_years, experience_months,
			prog_experience_years, prog_experience_months,
			billing_line1, billing_line2, billing_city, billing_state, billing_zip, billing_country,
			mailing_line1, mailing_line2, mailing_city, mailing_state, mailing_zip, mailing_country,
			category_fields, coupon_code, discount, final_price, payment_method,
			terms_accepted, created_at
		) VALUES (
			:reference, :category, :course_id, :course_title,
			:first_name, :middle_name, :last_name, :date_of_birth, :gender, :nationality,
			:email, :phone,
			:qualification, :institution, :field_of_study, :completion_year,
			:employment_status, :employer, :experience_years, :experience_months,
			:prog_experience_years, :prog_experience_months,
			:billing_line1, :billing_line2, :billing_city, :billing_state, :billing_zip, :billing_country,
			:mailing_line1, :mailing_line2, :mailing_city, :mailing_state, :mailing_zip, :mailing_country,
			:category_fields, :coupon_code, :discount, :final_price, :payment_method,
			:terms_accepted, :created_at
		) RETURNING id`, row)
	if err != nil {
		return registration.Registration{}, errors.Wrap(err, "binding registration insert")
	}
	if err = repo.db.QueryRowContext(ctx, query, args...).Scan(&reg.ID); err != nil {
		return registration.Registration{}, errors.Wrap(err, "creating registration")
	}
	return reg, nil
}

func (repo registrationRepository) QueryAllRegistrations(ctx context.Context) ([]registration.Registration, error) {
	var rows []registrationRow
	if err := repo.db.SelectContext(ctx, &rows, "SELECT * FROM registration ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "querying registrations")
	}
	return repo.registrations(rows)
}

func (repo registrationRepository) GetRegistrationByID(ctx context.Context, id int) (registration.Registration, error) {
	var row registrationRow
	if err := repo.db.GetContext(ctx, &row, "SELECT * FROM registration WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return registration.Registration{}, registration.ErrNotFound
		}
		return registration.Registration{}, errors.Wrap(err, "getting registration by id")
	}
	return repo.registration(row)
}

func (repo registrationRepository) FilterRegistrations(ctx context.Context, filter registration.QueryFilter) ([]registration.Registration, error) {
	query := "SELECT * FROM registration WHERE 1=1"
	args := make([]interface{}, 0, 6)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query += " AND (first_name || ' ' || last_name ILIKE ? OR email ILIKE ?)"
		args = append(args, pattern, pattern)
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.CourseID != 0 {
		query += " AND course_id = ?"
		args = append(args, filter.CourseID)
	}
	if !filter.CreatedFrom.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.CreatedFrom)
	}
	if !filter.CreatedTo.IsZero() {
		query += " AND created_at <= ?"
		args = append(args, filter.CreatedTo)
	}
	query = repo.db.Rebind(query + " ORDER BY id")

	var rows []registrationRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering registrations")
	}
	return repo.registrations(rows)
}
