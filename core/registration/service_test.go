package registration_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/chuodata/usajili/core"
	"github.com/chuodata/usajili/core/catalog"
	"github.com/chuodata/usajili/core/coupon"
	"github.com/chuodata/usajili/core/registration"
	"github.com/chuodata/usajili/services/email"
	"github.com/chuodata/usajili/storage/database/inmem"
)

type testEnv struct {
	svc        *registration.Service
	catalogSvc *catalog.Service
	couponSvc  *coupon.Service
	sessions   *registration.SessionStore

	course       catalog.Course // dasaca, 450 with sale price 399
	otherCourse  catalog.Course // bootcamp, 1200
	scopedCoupon coupon.Coupon  // flat 50, bound to otherCourse
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}

	env := &testEnv{
		catalogSvc: catalog.NewService(inmemdb.NewCatalogRepository(db)),
		couponSvc:  coupon.NewService(inmemdb.NewCouponRepository(db)),
		sessions:   registration.NewSessionStore(time.Hour),
	}
	env.svc = registration.NewService(
		inmemdb.NewRegistrationRepository(db),
		env.catalogSvc,
		env.couponSvc,
		emailsvc.NewConsoleServiceMock(),
		env.sessions,
	)

	ctx := context.Background()
	dasaca, err := env.catalogSvc.CreateCategory(ctx, catalog.NewCategory{Name: "DASACA", Slug: catalog.SlugDasaca})
	if err != nil {
		t.Fatalf("creating category: %v", err)
	}
	bootcamp, err := env.catalogSvc.CreateCategory(ctx, catalog.NewCategory{Name: "BootCamp", Slug: catalog.SlugBootCamp})
	if err != nil {
		t.Fatalf("creating category: %v", err)
	}

	sale := 399.0
	env.course, err = env.catalogSvc.CreateCourse(ctx, catalog.NewCourse{
		CategoryID: dasaca.ID, Title: "DASACA Foundation", Price: 450, DiscountPrice: &sale,
	})
	if err != nil {
		t.Fatalf("creating course: %v", err)
	}
	env.otherCourse, err = env.catalogSvc.CreateCourse(ctx, catalog.NewCourse{
		CategoryID: bootcamp.ID, Title: "Analytics BootCamp", Price: 1200,
	})
	if err != nil {
		t.Fatalf("creating course: %v", err)
	}

	if _, err = env.couponSvc.Create(ctx, coupon.NewCoupon{
		Code: "SAVE10", Type: coupon.TypePercent, Value: 10,
	}); err != nil {
		t.Fatalf("creating coupon: %v", err)
	}
	env.scopedCoupon, err = env.couponSvc.Create(ctx, coupon.NewCoupon{
		Code: "CAMP50", Type: coupon.TypeFlat, Value: 50, CourseID: &env.otherCourse.ID,
	})
	if err != nil {
		t.Fatalf("creating coupon: %v", err)
	}
	return env
}

// completeDraft drives a session's draft to a fully-submittable state.
func completeDraft(t *testing.T, env *testEnv, token string, courseID int) {
	t.Helper()
	ctx := context.Background()
	fields := [][2]string{
		{"category", "dasaca"},
		{"course_id", ""}, // placeholder, set below
		{"first_name", "Asha"},
		{"last_name", "Mwangi"},
		{"email", "asha@example.com"},
		{"phone", "0712345678"},
		{"gender", "female"},
		{"dob_day", "23"},
		{"dob_month", "07"},
		{"dob_year", "1995"},
		{"billing_line1", "12 Haile Selassie Rd"},
		{"billing_city", "Dar es Salaam"},
		{"billing_state", "Dar es Salaam"},
		{"billing_zip", "11101"},
		{"billing_country", "Tanzania"},
		{"same_as_billing", "true"},
		{"qualification", "BSc"},
		{"institution", "UDSM"},
		{"field_of_study", "Statistics"},
		{"payment_method", "mpesa"},
		{"terms_accepted", "true"},
	}
	for _, field := range fields {
		name, value := field[0], field[1]
		if name == "course_id" {
			value = strconv.Itoa(courseID)
		}
		if _, err := env.svc.SetField(ctx, token, name, value); err != nil {
			t.Fatalf("SetField(%s): %v", name, err)
		}
	}
	if _, err := env.svc.JumpTo(ctx, token, 4); err != nil {
		t.Fatalf("JumpTo(4): %v", err)
	}
}

func TestService_StartWizard(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	t.Run("blank start", func(t *testing.T) {
		st, err := env.svc.StartWizard(ctx, "", 0)
		if err != nil {
			t.Fatalf("StartWizard(): %v", err)
		}
		if st.Token == "" {
			t.Error("no session token issued")
		}
		if st.StepIndex != 0 {
			t.Errorf("StepIndex = %d; want 0", st.StepIndex)
		}
	})

	t.Run("seeded with a real course skips course selection", func(t *testing.T) {
		st, err := env.svc.StartWizard(ctx, "", env.course.ID)
		if err != nil {
			t.Fatalf("StartWizard(): %v", err)
		}
		if st.StepIndex != 1 {
			t.Errorf("StepIndex = %d; want 1", st.StepIndex)
		}
		if st.Draft.Category != catalog.SlugDasaca || st.Draft.CourseID != env.course.ID {
			t.Errorf("draft not seeded: %+v", st.Draft)
		}
		if st.Quote == nil || st.Quote.FinalPrice != 399 {
			t.Errorf("Quote = %+v; want sale price 399", st.Quote)
		}
	})

	t.Run("seeded with a bogus course stays on course selection", func(t *testing.T) {
		st, err := env.svc.StartWizard(ctx, catalog.SlugDasaca, 9999)
		if err != nil {
			t.Fatalf("StartWizard(): %v", err)
		}
		if st.StepIndex != 0 {
			t.Errorf("StepIndex = %d; want 0", st.StepIndex)
		}
		if st.Draft.Category != catalog.SlugDasaca {
			t.Errorf("Category = %q; want seeded category kept", st.Draft.Category)
		}
	})
}

func TestService_sessionExpiry(t *testing.T) {
	env := setup(t)
	if _, err := env.svc.GetState(context.Background(), "no-such-token"); err != registration.ErrSessionNotFound {
		t.Errorf("err = %v; want ErrSessionNotFound", err)
	}
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path with sitewide coupon", func(t *testing.T) {
		env := setup(t)
		st, err := env.svc.StartWizard(ctx, "", 0)
		if err != nil {
			t.Fatalf("StartWizard(): %v", err)
		}
		completeDraft(t, env, st.Token, env.course.ID)
		if _, err = env.svc.SetField(ctx, st.Token, "coupon_code", "SAVE10"); err != nil {
			t.Fatalf("SetField(coupon_code): %v", err)
		}

		emailsvc.SentMessages = emailsvc.SentMessages[:0]
		reg, err := env.svc.Submit(ctx, st.Token)
		if err != nil {
			t.Fatalf("Submit(): %v", err)
		}
		if reg.ID == 0 || reg.Reference == "" {
			t.Errorf("registration not persisted: %+v", reg)
		}
		// 10% off the 399 sale price
		if reg.Discount != 39.9 || reg.FinalPrice != 399-39.9 {
			t.Errorf("Discount = %v, FinalPrice = %v; want 39.9 and %v", reg.Discount, reg.FinalPrice, 399-39.9)
		}
		if reg.CouponCode != "SAVE10" {
			t.Errorf("CouponCode = %q; want SAVE10", reg.CouponCode)
		}
		if reg.DateOfBirth != "1995-07-23" {
			t.Errorf("DateOfBirth = %q; want 1995-07-23", reg.DateOfBirth)
		}
		if reg.Mailing != reg.Billing {
			t.Errorf("Mailing = %+v; want billing copy", reg.Mailing)
		}

		if len(emailsvc.SentMessages) != 1 {
			t.Fatalf("sent %d mails; want 1", len(emailsvc.SentMessages))
		}
		if to := emailsvc.SentMessages[0].To[0].Address; to != "asha@example.com" {
			t.Errorf("mail to %q; want asha@example.com", to)
		}

		// the wizard was reset but the session survives
		st, err = env.svc.GetState(ctx, st.Token)
		if err != nil {
			t.Fatalf("GetState(): %v", err)
		}
		if st.StepIndex != 0 || st.Draft.FirstName != "" {
			t.Errorf("wizard not reset: step=%d draft=%+v", st.StepIndex, st.Draft)
		}
	})

	t.Run("coupon scoped to another course is dropped", func(t *testing.T) {
		env := setup(t)
		st, err := env.svc.StartWizard(ctx, "", 0)
		if err != nil {
			t.Fatalf("StartWizard(): %v", err)
		}
		completeDraft(t, env, st.Token, env.course.ID)
		if _, err = env.svc.SetField(ctx, st.Token, "coupon_code", "CAMP50"); err != nil {
			t.Fatalf("SetField(coupon_code): %v", err)
		}

		reg, err := env.svc.Submit(ctx, st.Token)
		if err != nil {
			t.Fatalf("Submit(): %v", err)
		}
		if reg.Discount != 0 {
			t.Errorf("Discount = %v; want 0 for out-of-scope coupon", reg.Discount)
		}
		if reg.CouponCode != "" {
			t.Errorf("CouponCode = %q; invalid codes must not be persisted", reg.CouponCode)
		}
		if reg.FinalPrice != 399 {
			t.Errorf("FinalPrice = %v; want undiscounted 399", reg.FinalPrice)
		}
	})

	t.Run("not on review step", func(t *testing.T) {
		env := setup(t)
		st, _ := env.svc.StartWizard(ctx, "", 0)
		if _, err := env.svc.Submit(ctx, st.Token); err != registration.ErrNotOnReviewStep {
			t.Errorf("err = %v; want ErrNotOnReviewStep", err)
		}
	})

	t.Run("unaccepted terms fail the full re-validation", func(t *testing.T) {
		env := setup(t)
		st, _ := env.svc.StartWizard(ctx, "", 0)
		completeDraft(t, env, st.Token, env.course.ID)
		if _, err := env.svc.SetField(ctx, st.Token, "terms_accepted", "false"); err != nil {
			t.Fatalf("SetField(terms_accepted): %v", err)
		}

		_, err := env.svc.Submit(ctx, st.Token)
		vErr, ok := err.(*core.ValidationError)
		if !ok {
			t.Fatalf("err = %v (%T); want *core.ValidationError", err, err)
		}
		var found bool
		for _, fld := range vErr.Fields {
			if fld.Field == "terms_accepted" {
				found = true
			}
		}
		if !found {
			t.Errorf("Fields = %+v; want a terms_accepted entry", vErr.Fields)
		}

		// the draft survives the failed attempt
		st, err = env.svc.GetState(ctx, st.Token)
		if err != nil {
			t.Fatalf("GetState(): %v", err)
		}
		if st.Draft.FirstName != "Asha" {
			t.Error("draft was lost on a failed submit")
		}
	})

	t.Run("incomplete mailing address blocks submission", func(t *testing.T) {
		env := setup(t)
		st, _ := env.svc.StartWizard(ctx, "", 0)
		completeDraft(t, env, st.Token, env.course.ID)
		// blank out one copied mailing field; steps stay complete
		if _, err := env.svc.SetField(ctx, st.Token, "mailing_country", ""); err != nil {
			t.Fatalf("SetField(mailing_country): %v", err)
		}

		if _, err := env.svc.Submit(ctx, st.Token); err == nil {
			t.Error("Submit() passed with an incomplete mailing address")
		}
	})
}

func TestService_crossCategoryCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("selecting a course outside the category is discarded", func(t *testing.T) {
		env := setup(t)
		st, err := env.svc.StartWizard(ctx, "", 0)
		if err != nil {
			t.Fatalf("StartWizard(): %v", err)
		}
		if _, err = env.svc.SetField(ctx, st.Token, "category", catalog.SlugDasaca); err != nil {
			t.Fatalf("SetField(category): %v", err)
		}

		st, err = env.svc.SetField(ctx, st.Token, "course_id", strconv.Itoa(env.otherCourse.ID))
		if err != nil {
			t.Fatalf("SetField(course_id): %v", err)
		}
		if st.Draft.CourseID != 0 {
			t.Errorf("CourseID = %d; a bootcamp course must not stick to a dasaca draft", st.Draft.CourseID)
		}
		if st.Quote != nil {
			t.Errorf("Quote = %+v; want none for a rejected course", st.Quote)
		}
		if st.Completion[registration.StepCourse] {
			t.Error("course step reported complete without a valid course")
		}

		// a course from the drafted category is accepted as usual
		st, err = env.svc.SetField(ctx, st.Token, "course_id", strconv.Itoa(env.course.ID))
		if err != nil {
			t.Fatalf("SetField(course_id): %v", err)
		}
		if st.Draft.CourseID != env.course.ID {
			t.Errorf("CourseID = %d; want %d", st.Draft.CourseID, env.course.ID)
		}
	})

	t.Run("course recategorized after drafting fails the submit", func(t *testing.T) {
		env := setup(t)
		st, _ := env.svc.StartWizard(ctx, "", 0)
		completeDraft(t, env, st.Token, env.course.ID)

		// an admin moves the drafted course into another category
		orig, err := env.catalogSvc.GetCourseByID(ctx, env.course.ID)
		if err != nil {
			t.Fatalf("GetCourseByID(): %v", err)
		}
		uc := catalog.UpdateCourse{CategoryID: env.otherCourse.CategoryID}
		if err = uc.Validate(orig); err != nil {
			t.Fatalf("UpdateCourse.Validate(): %v", err)
		}
		if _, err = env.catalogSvc.UpdateCourse(ctx, env.course.ID, uc); err != nil {
			t.Fatalf("UpdateCourse(): %v", err)
		}

		_, err = env.svc.Submit(ctx, st.Token)
		vErr, ok := err.(*core.ValidationError)
		if !ok {
			t.Fatalf("err = %v (%T); want *core.ValidationError", err, err)
		}
		var found bool
		for _, fld := range vErr.Fields {
			if fld.Field == "course_id" {
				found = true
			}
		}
		if !found {
			t.Errorf("Fields = %+v; want a course_id entry", vErr.Fields)
		}
	})
}

func TestService_adminReads(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	st, _ := env.svc.StartWizard(ctx, "", 0)
	completeDraft(t, env, st.Token, env.course.ID)
	reg, err := env.svc.Submit(ctx, st.Token)
	if err != nil {
		t.Fatalf("Submit(): %v", err)
	}

	regs, err := env.svc.QueryAll(ctx)
	if err != nil {
		t.Fatalf("QueryAll(): %v", err)
	}
	if len(regs) != 1 {
		t.Fatalf("got %d registrations; want 1", len(regs))
	}

	got, err := env.svc.GetByID(ctx, reg.ID)
	if err != nil {
		t.Fatalf("GetByID(): %v", err)
	}
	if got.Reference != reg.Reference {
		t.Errorf("Reference = %q; want %q", got.Reference, reg.Reference)
	}

	t.Run("filter", func(t *testing.T) {
		regs, err := env.svc.Filter(ctx, registration.QueryFilter{Search: "asha"})
		if err != nil {
			t.Fatalf("Filter(): %v", err)
		}
		if len(regs) != 1 {
			t.Errorf("got %d registrations; want 1", len(regs))
		}

		regs, err = env.svc.Filter(ctx, registration.QueryFilter{Search: "nobody"})
		if err != nil {
			t.Fatalf("Filter(): %v", err)
		}
		if len(regs) != 0 {
			t.Errorf("got %d registrations; want 0", len(regs))
		}
	})

	if _, err = env.svc.GetByID(ctx, 9999); err != registration.ErrNotFound {
		t.Errorf("err = %v; want ErrNotFound", err)
	}
}
