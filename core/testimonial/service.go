package testimonial

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("testimonial not found")

type (
	Repository interface {
		QueryAllTestimonials(ctx context.Context) ([]Testimonial, error)
		QueryPublishedTestimonials(ctx context.Context) ([]Testimonial, error)
		GetTestimonialByID(ctx context.Context, id int) (Testimonial, error)
		CreateTestimonial(ctx context.Context, tst Testimonial) (Testimonial, error)
		UpdateTestimonial(ctx context.Context, tst Testimonial) (Testimonial, error)
		DeleteTestimonialsByID(ctx context.Context, ids ...int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Testimonial, error) {
	return svc.repo.QueryAllTestimonials(ctx)
}

// QueryPublished returns only testimonials visible on the public site.
func (svc *Service) QueryPublished(ctx context.Context) ([]Testimonial, error) {
	return svc.repo.QueryPublishedTestimonials(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Testimonial, error) {
	return svc.repo.GetTestimonialByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nt NewTestimonial) (Testimonial, error) {
	now := time.Now().UTC()
	tst := Testimonial{
		Author:      nt.Author,
		Role:        nt.Role,
		Quote:       nt.Quote,
		Rating:      nt.Rating,
		IsPublished: nt.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateTestimonial(ctx, tst)
}

func (svc *Service) Update(ctx context.Context, id int, ut UpdateTestimonial) (Testimonial, error) {
	orig, err := svc.repo.GetTestimonialByID(ctx, id)
	if err != nil {
		return Testimonial{}, err
	}

	tst := Testimonial{
		ID:          id,
		Author:      ut.Author,
		Role:        ut.Role,
		Quote:       ut.Quote,
		Rating:      orig.Rating,
		IsPublished: orig.IsPublished,
		UpdatedAt:   time.Now().UTC(),
	}
	if ut.Rating != nil {
		tst.Rating = *ut.Rating
	}
	if ut.IsPublished != nil {
		tst.IsPublished = *ut.IsPublished
	}
	return svc.repo.UpdateTestimonial(ctx, tst)
}

func (svc *Service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteTestimonialsByID(ctx, ids...)
}
