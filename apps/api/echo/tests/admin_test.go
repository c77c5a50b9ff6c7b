package tests

import (
	"net/http"
	"strconv"
	"testing"

	. "github.com/chuodata/usajili/apps/api/echo"
	"github.com/chuodata/usajili/core/catalog"
	"github.com/chuodata/usajili/core/coupon"
	"github.com/chuodata/usajili/core/testimonial"
)

func Test_authApi_login(t *testing.T) {
	tests := []httpTest{
		{
			name:     "empty credentials",
			body:     marchallObj(t, LoginRequest{}),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"email":"this field is required","password":"this field is required"}`),
		},
		{
			name:     "unknown email",
			body:     marchallObj(t, LoginRequest{Email: "nobody@usajili.app", Password: adminPassword}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name:     "wrong password",
			body:     marchallObj(t, LoginRequest{Email: adminEmail, Password: "nope"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/admin/login", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("valid credentials", func(t *testing.T) {
		body := marchallObj(t, LoginRequest{Email: adminEmail, Password: adminPassword})
		req, rec := newRequest(http.MethodPost, "/v1/admin/login", body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body: %s", rec.Code, rec.Body.String())
		}
		var res LoginResponse
		unmarshallObj(t, rec, &res)
		if res.Token == "" {
			t.Error("no token issued")
		}
	})
}

func Test_adminApi_authRequired(t *testing.T) {
	paths := []string{
		"/v1/admin/registrations",
		"/v1/admin/coupons",
		"/v1/admin/testimonials",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			tt := httpTest{
				wantCode: http.StatusUnauthorized,
				wantData: marchallObj(t, errMissingToken),
			}
			req, rec := newRequest(http.MethodGet, path)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_catalogApi(t *testing.T) {
	token := getAdminToken(t)

	t.Run("public category list", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/categories")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d", rec.Code)
		}
		var cats []catalog.Category
		unmarshallObj(t, rec, &cats)
		if len(cats) < 2 {
			t.Errorf("got %d categories; want the seeded set", len(cats))
		}
	})

	t.Run("public course detail", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/courses/9999")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d; want 404", rec.Code)
		}
	})

	t.Run("admin create category", func(t *testing.T) {
		body := marchallObj(t, catalog.NewCategory{Name: "Corporate Training", Slug: catalog.SlugCorporate})
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/categories", token, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %d; body: %s", rec.Code, rec.Body.String())
		}
		var cat catalog.Category
		unmarshallObj(t, rec, &cat)
		if cat.ID == 0 || cat.Slug != catalog.SlugCorporate {
			t.Errorf("category = %+v", cat)
		}
	})

	t.Run("admin duplicate slug", func(t *testing.T) {
		body := marchallObj(t, catalog.NewCategory{Name: "DASACA again", Slug: catalog.SlugDasaca})
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"slug":"a category with this slug already exists"}`),
		}
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/categories", token, body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func Test_couponApi_check(t *testing.T) {
	tests := []struct {
		name      string
		body      CouponCheckRequest
		wantValid bool
	}{
		{
			name:      "sitewide coupon",
			body:      CouponCheckRequest{Code: "SAVE10", CourseID: dasacaCourse.ID},
			wantValid: true,
		},
		{
			name:      "scoped coupon on its course",
			body:      CouponCheckRequest{Code: "CAMP50", CourseID: bootcampCourse.ID},
			wantValid: true,
		},
		{
			name: "scoped coupon on the wrong course",
			body: CouponCheckRequest{Code: "CAMP50", CourseID: dasacaCourse.ID},
		},
		{
			name: "unknown code",
			body: CouponCheckRequest{Code: "NOPE", CourseID: dasacaCourse.ID},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/coupons/check", marchallObj(t, tt.body))
			app.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("code = %d; body: %s", rec.Code, rec.Body.String())
			}
			var desc coupon.Descriptor
			unmarshallObj(t, rec, &desc)
			if desc.Valid != tt.wantValid {
				t.Errorf("Valid = %v; want %v", desc.Valid, tt.wantValid)
			}
		})
	}

	t.Run("unknown course", func(t *testing.T) {
		body := marchallObj(t, CouponCheckRequest{Code: "SAVE10", CourseID: 9999})
		req, rec := newRequest(http.MethodPost, "/v1/coupons/check", body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d; want 404", rec.Code)
		}
	})
}

func Test_testimonialApi(t *testing.T) {
	t.Run("public list shows published only", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/testimonials")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d", rec.Code)
		}
		var tsts []testimonial.Testimonial
		unmarshallObj(t, rec, &tsts)
		for _, tst := range tsts {
			if !tst.IsPublished {
				t.Errorf("unpublished testimonial leaked: %+v", tst)
			}
		}
	})

	t.Run("admin create and unpublish", func(t *testing.T) {
		token := getAdminToken(t)

		body := marchallObj(t, testimonial.NewTestimonial{
			Author: "Daniel M.", Quote: "Solid.", Rating: 4, IsPublished: true,
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/testimonials", token, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create: code = %d; body: %s", rec.Code, rec.Body.String())
		}
		var tst testimonial.Testimonial
		unmarshallObj(t, rec, &tst)

		published := false
		body = marchallObj(t, testimonial.UpdateTestimonial{IsPublished: &published})
		req, rec = newAuthRequest(http.MethodPut, "/v1/admin/testimonials/"+strconv.Itoa(tst.ID), token, body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("update: code = %d; body: %s", rec.Code, rec.Body.String())
		}
		unmarshallObj(t, rec, &tst)
		if tst.IsPublished {
			t.Error("testimonial still published")
		}
	})
}

func Test_registrationApi_adminReads(t *testing.T) {
	token := getAdminToken(t)

	req, rec := newAuthRequest(http.MethodGet, "/v1/admin/registrations", token)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d; body: %s", rec.Code, rec.Body.String())
	}

	t.Run("filtered", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/registrations?search=asha&category=dasaca", token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; body: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("bad date filter", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/registrations?created_from=banana", token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("code = %d; want 400", rec.Code)
		}
	})

	t.Run("missing registration", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/registrations/9999", token)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d; want 404", rec.Code)
		}
	})
}
