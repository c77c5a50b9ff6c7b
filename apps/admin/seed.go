package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/chuodata/usajili/core/catalog"
	"github.com/chuodata/usajili/core/coupon"
	"github.com/chuodata/usajili/core/testimonial"
)

func floatPtr(v float64) *float64 { return &v }

// seed loads a demo catalog: the three course categories, a few courses with
// curricula, coupons and testimonials. Safe to re-run; existing slugs/codes
// are skipped.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	categories := []catalog.NewCategory{
		{Name: "DASACA™ Certification", Slug: catalog.SlugDasaca, Description: "Data Science and Analytics Certification tracks."},
		{Name: "Data Analytics BootCamp", Slug: catalog.SlugBootCamp, Description: "Intensive hands-on analytics bootcamps."},
		{Name: "Corporate Training", Slug: catalog.SlugCorporate, Description: "Tailored on-site and online team training."},
	}
	catIDs := make(map[string]int, len(categories))
	for _, nc := range categories {
		if err := nc.Validate(); err != nil {
			return err
		}
		cat, err := cli.catalogSvc.CreateCategory(ctx, nc)
		if err != nil {
			if errors.Cause(err) == catalog.ErrSlugExists {
				if cat, err = cli.catalogSvc.GetCategoryBySlug(ctx, nc.Slug); err != nil {
					return err
				}
				catIDs[cat.Slug] = cat.ID
				continue
			}
			return err
		}
		fmt.Printf("created category %q\n", cat.Name)
		catIDs[cat.Slug] = cat.ID
	}

	courses := []catalog.NewCourse{
		{
			CategoryID:  catIDs[catalog.SlugDasaca],
			Title:       "DASACA™ Foundation",
			Description: "Entry-level certification covering statistics, SQL and visualization.",
			Price:       450, DiscountPrice: floatPtr(399),
			Duration: "8 weeks", Level: "Beginner",
			Modules: []catalog.NewCourseModule{
				{Position: 1, Title: "Statistics Essentials"},
				{Position: 2, Title: "SQL for Analysts"},
				{Position: 3, Title: "Data Visualization"},
			},
		},
		{
			CategoryID:  catIDs[catalog.SlugDasaca],
			Title:       "DASACA™ Practitioner",
			Description: "Applied machine learning and model evaluation for certified analysts.",
			Price:       750,
			Duration:    "12 weeks", Level: "Intermediate",
			Modules: []catalog.NewCourseModule{
				{Position: 1, Title: "Supervised Learning"},
				{Position: 2, Title: "Model Evaluation"},
			},
		},
		{
			CategoryID:  catIDs[catalog.SlugBootCamp],
			Title:       "Data Analytics BootCamp",
			Description: "Full-time immersive program, portfolio projects included.",
			Price:       1200, DiscountPrice: floatPtr(999),
			Duration: "10 weeks", Level: "Beginner",
			Modules: []catalog.NewCourseModule{
				{Position: 1, Title: "Python Foundations"},
				{Position: 2, Title: "Exploratory Data Analysis"},
				{Position: 3, Title: "Capstone Project"},
			},
		},
		{
			CategoryID:  catIDs[catalog.SlugCorporate],
			Title:       "Analytics for Managers",
			Description: "Decision-making with data for non-technical leads.",
			Price:       2000,
			Duration:    "3 days", Level: "Beginner",
		},
	}
	existing, err := cli.catalogSvc.QueryCourses(ctx)
	if err != nil {
		return err
	}
	courseIDs := make(map[string]int, len(courses))
	for _, crs := range existing {
		courseIDs[crs.Title] = crs.ID
	}
	for _, nc := range courses {
		if _, ok := courseIDs[nc.Title]; ok {
			continue
		}
		if err := nc.Validate(); err != nil {
			return err
		}
		crs, err := cli.catalogSvc.CreateCourse(ctx, nc)
		if err != nil {
			return err
		}
		fmt.Printf("created course %q\n", crs.Title)
		courseIDs[crs.Title] = crs.ID
	}

	expiry := time.Now().AddDate(1, 0, 0)
	bootcampID := courseIDs["Data Analytics BootCamp"]
	coupons := []coupon.NewCoupon{
		{Code: "KARIBU10", Type: coupon.TypePercent, Value: 10, ExpiresAt: &expiry},
		{Code: "BOOTCAMP50", Type: coupon.TypeFlat, Value: 50, CourseID: &bootcampID, MinPrice: floatPtr(500)},
	}
	for _, nc := range coupons {
		if err := nc.Validate(); err != nil {
			return err
		}
		cpn, err := cli.couponSvc.Create(ctx, nc)
		if err != nil {
			if errors.Cause(err) == coupon.ErrCodeExists {
				continue
			}
			return err
		}
		fmt.Printf("created coupon %q\n", cpn.Code)
	}

	existingTsts, err := cli.testimonialSvc.QueryAll(ctx)
	if err != nil {
		return err
	}
	if len(existingTsts) > 0 {
		return nil
	}
	testimonials := []testimonial.NewTestimonial{
		{Author: "Amina J.", Role: "Data Analyst, BootCamp '24", Quote: "The capstone project landed me my first analytics role.", Rating: 5, IsPublished: true},
		{Author: "Daniel M.", Role: "DASACA™ Practitioner", Quote: "Hands-down the most practical certification I have taken.", Rating: 5, IsPublished: true},
		{Author: "Grace W.", Role: "Team Lead", Quote: "Our whole team levelled up after the corporate training week.", Rating: 4, IsPublished: false},
	}
	for _, nt := range testimonials {
		if err := nt.Validate(); err != nil {
			return err
		}
		tst, err := cli.testimonialSvc.Create(ctx, nt)
		if err != nil {
			return err
		}
		fmt.Printf("created testimonial by %q\n", tst.Author)
	}

	return nil
}
