package coupon

import (
	"context"
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound   = errors.New("coupon not found")
	ErrCodeExists = errors.New("a coupon with this code already exists")

	// advisory messages carried on Descriptor
	msgApplied     = "coupon applied"
	msgUnknownCode = "invalid coupon code"
	msgWrongCourse = "this coupon does not apply to the selected course"
	msgExpired     = "this coupon has expired"
	msgBelowMin    = "the course price does not meet this coupon's minimum"

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		GetCouponByCode(ctx context.Context, code string) (Coupon, error)
		QueryAllCoupons(ctx context.Context) ([]Coupon, error)
		GetCouponByID(ctx context.Context, id int) (Coupon, error)
		CreateCoupon(ctx context.Context, cpn Coupon) (Coupon, error)
		UpdateCoupon(ctx context.Context, cpn Coupon) (Coupon, error)
		DeleteCouponsByID(ctx context.Context, ids ...int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Validate resolves a coupon code against a course and a price.
// An unknown, out-of-scope, expired or below-minimum coupon degrades to an
// invalid Descriptor with a zero discount; it never returns a validation error.
func (svc *Service) Validate(ctx context.Context, code string, courseID int, price float64) (Descriptor, error) {
	if code == "" {
		// absent coupon: zero discount, nothing to report
		return Descriptor{}, nil
	}

	cpn, err := svc.repo.GetCouponByCode(ctx, code) // exact match
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Descriptor{Code: code, Message: msgUnknownCode}, nil
		}
		return Descriptor{}, err
	}

	if cpn.CourseID != nil && *cpn.CourseID != courseID {
		return Descriptor{Code: code, Message: msgWrongCourse}, nil
	}
	if cpn.ExpiresAt != nil && nowFunc().After(*cpn.ExpiresAt) {
		return Descriptor{Code: code, Message: msgExpired}, nil
	}
	if cpn.MinPrice != nil && price < *cpn.MinPrice {
		return Descriptor{Code: code, Message: msgBelowMin}, nil
	}

	return Descriptor{
		Valid:    true,
		Code:     code,
		Message:  msgApplied,
		Discount: cpn.discount(price),
	}, nil
}

// discount resolves the coupon's value into absolute currency units.
func (c Coupon) discount(price float64) float64 {
	if c.Type == TypePercent {
		return price * c.Value / 100
	}
	return c.Value
}

// Admin CRUD

func (svc *Service) QueryAll(ctx context.Context) ([]Coupon, error) {
	return svc.repo.QueryAllCoupons(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Coupon, error) {
	return svc.repo.GetCouponByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nc NewCoupon) (Coupon, error) {
	now := time.Now().UTC()
	cpn := Coupon{
		Code:      nc.Code,
		Type:      nc.Type,
		Value:     nc.Value,
		CourseID:  nc.CourseID,
		ExpiresAt: nc.ExpiresAt,
		MinPrice:  nc.MinPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateCoupon(ctx, cpn)
}

func (svc *Service) Update(ctx context.Context, id int, uc UpdateCoupon) (Coupon, error) {
	cpn := Coupon{
		ID:        id,
		Code:      uc.Code,
		Type:      uc.Type,
		CourseID:  uc.CourseID,
		ExpiresAt: uc.ExpiresAt,
		MinPrice:  uc.MinPrice,
		UpdatedAt: time.Now().UTC(),
	}
	if uc.Value != nil {
		cpn.Value = *uc.Value
	}
	return svc.repo.UpdateCoupon(ctx, cpn)
}

func (svc *Service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteCouponsByID(ctx, ids...)
}
