package tests

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	. "github.com/chuodata/usajili/apps/api/echo"
	"github.com/chuodata/usajili/core"
	"github.com/chuodata/usajili/core/catalog"
	"github.com/chuodata/usajili/core/coupon"
	"github.com/chuodata/usajili/core/registration"
	"github.com/chuodata/usajili/core/testimonial"
	"github.com/chuodata/usajili/services/email"
	"github.com/chuodata/usajili/services/logger"
	"github.com/chuodata/usajili/storage/database/inmem"
)

const (
	adminEmail    = "admin@usajili.app"
	adminPassword = "s3cr3t-Pa55"
)

var (
	app Server

	catalogSvc     *catalog.Service
	couponSvc      *coupon.Service
	testimonialSvc *testimonial.Service

	dasacaCourse   catalog.Course
	bootcampCourse catalog.Course

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func TestMain(m *testing.M) {
	core.Conf.Debug = false
	core.Conf.TestMode = true

	// the configured admin account backs the login tests
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	if err != nil {
		fmt.Printf("bcrypt: %v", err)
		os.Exit(1)
	}
	core.Conf.Admin.Email = adminEmail
	core.Conf.Admin.PasswordHash = string(hash)

	// set up DB & repos
	db, err := inmemdb.Open()
	if err != nil {
		fmt.Printf("inmemdb.Open(): %v", err)
		os.Exit(1)
	}

	// set up services
	catalogSvc = catalog.NewService(inmemdb.NewCatalogRepository(db))
	couponSvc = coupon.NewService(inmemdb.NewCouponRepository(db))
	testimonialSvc = testimonial.NewService(inmemdb.NewTestimonialRepository(db))
	registrationSvc := registration.NewService(
		inmemdb.NewRegistrationRepository(db),
		catalogSvc,
		couponSvc,
		emailsvc.NewConsoleServiceMock(),
		registration.NewSessionStore(time.Hour),
	)

	if err = seedCatalog(); err != nil {
		fmt.Printf("seeding catalog: %v", err)
		os.Exit(1)
	}

	// set up server
	app = NewServer(
		&Options{
			DisableReqLogs:  true,
			Logger:          logsvc.NewStdLogger(log.New(os.Stdout, "TEST : ", log.LstdFlags)),
			CatalogSvc:      catalogSvc,
			TestimonialSvc:  testimonialSvc,
			CouponSvc:       couponSvc,
			RegistrationSvc: registrationSvc,
		},
	)

	os.Exit(m.Run())
}

func seedCatalog() error {
	ctx := context.Background()

	dasaca, err := catalogSvc.CreateCategory(ctx, catalog.NewCategory{Name: "DASACA", Slug: catalog.SlugDasaca})
	if err != nil {
		return err
	}
	bootcamp, err := catalogSvc.CreateCategory(ctx, catalog.NewCategory{Name: "BootCamp", Slug: catalog.SlugBootCamp})
	if err != nil {
		return err
	}

	sale := 399.0
	if dasacaCourse, err = catalogSvc.CreateCourse(ctx, catalog.NewCourse{
		CategoryID: dasaca.ID, Title: "DASACA Foundation", Price: 450, DiscountPrice: &sale,
	}); err != nil {
		return err
	}
	if bootcampCourse, err = catalogSvc.CreateCourse(ctx, catalog.NewCourse{
		CategoryID: bootcamp.ID, Title: "Analytics BootCamp", Price: 1200,
	}); err != nil {
		return err
	}

	if _, err = couponSvc.Create(ctx, coupon.NewCoupon{
		Code: "SAVE10", Type: coupon.TypePercent, Value: 10,
	}); err != nil {
		return err
	}
	if _, err = couponSvc.Create(ctx, coupon.NewCoupon{
		Code: "CAMP50", Type: coupon.TypeFlat, Value: 50, CourseID: &bootcampCourse.ID,
	}); err != nil {
		return err
	}

	_, err = testimonialSvc.Create(ctx, testimonial.NewTestimonial{
		Author: "Amina J.", Quote: "Great program.", Rating: 5, IsPublished: true,
	})
	return err
}

func getAdminToken(t *testing.T) string {
	t.Helper()
	token, err := GenerateToken(GetAdminClaims(adminEmail))
	if err != nil {
		t.Fatalf("getAdminToken(): %v", err)
	}
	return token
}
