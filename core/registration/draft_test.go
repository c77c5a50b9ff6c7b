package registration

import "testing"

func TestDraft_ApplyField(t *testing.T) {
	t.Run("plain fields are set", func(t *testing.T) {
		d := Draft{}.
			ApplyField("first_name", "Asha").
			ApplyField("last_name", "Mwangi").
			ApplyField("phone", " 0712345678 ")
		if d.FirstName != "Asha" || d.LastName != "Mwangi" {
			t.Errorf("names not applied: %+v", d)
		}
		if d.Phone != "0712345678" {
			t.Errorf("Phone = %q; want trimmed", d.Phone)
		}
	})

	t.Run("email is lowercased", func(t *testing.T) {
		d := Draft{}.ApplyField("email", "  Asha@Example.COM ")
		if d.Email != "asha@example.com" {
			t.Errorf("Email = %q; want asha@example.com", d.Email)
		}
	})

	t.Run("unknown field is ignored", func(t *testing.T) {
		d := Draft{FirstName: "Asha"}.ApplyField("no_such_field", "x")
		if d != (Draft{FirstName: "Asha"}) {
			t.Errorf("draft changed: %+v", d)
		}
	})

	t.Run("changing category resets course and fields", func(t *testing.T) {
		d := Draft{}.
			ApplyField("category", "dasaca").
			ApplyField("course_id", "42").
			ApplyField("certification_level", "Expert")
		if d.CourseID != 42 {
			t.Fatalf("CourseID = %d; want 42", d.CourseID)
		}
		if d.CategoryFields.Dasaca == nil || d.CategoryFields.Dasaca.CertificationLevel != "Expert" {
			t.Fatalf("dasaca fields not applied: %+v", d.CategoryFields)
		}

		d = d.ApplyField("category", "bootcamp")
		if d.CourseID != 0 {
			t.Errorf("CourseID = %d; want 0 after category change", d.CourseID)
		}
		if d.CategoryFields.Dasaca != nil {
			t.Error("dasaca fields survived category change")
		}
		if d.CategoryFields.BootCamp == nil || *d.CategoryFields.BootCamp != (BootCampFields{}) {
			t.Errorf("bootcamp fields not reset empty: %+v", d.CategoryFields.BootCamp)
		}
	})

	t.Run("re-setting the same category keeps the course", func(t *testing.T) {
		d := Draft{}.
			ApplyField("category", "dasaca").
			ApplyField("course_id", "42").
			ApplyField("category", "dasaca")
		if d.CourseID != 42 {
			t.Errorf("CourseID = %d; want 42", d.CourseID)
		}
	})

	t.Run("same_as_billing copies at flip time", func(t *testing.T) {
		d := Draft{}.
			ApplyField("billing_line1", "12 Haile Selassie Rd").
			ApplyField("billing_city", "Dar es Salaam").
			ApplyField("billing_zip", "11101").
			ApplyField("same_as_billing", "true")
		if d.Mailing != d.Billing {
			t.Fatalf("Mailing = %+v; want copy of Billing %+v", d.Mailing, d.Billing)
		}

		// later billing edits must not propagate
		d = d.ApplyField("billing_city", "Arusha")
		if d.Mailing.City != "Dar es Salaam" {
			t.Errorf("Mailing.City = %q; want the snapshot taken at flip time", d.Mailing.City)
		}

		// unchecking leaves the copied values in place
		d = d.ApplyField("same_as_billing", "false")
		if d.SameAsBilling {
			t.Error("SameAsBilling still true")
		}
		if d.Mailing.City != "Dar es Salaam" {
			t.Errorf("Mailing.City = %q; unchecking must not clear it", d.Mailing.City)
		}
	})

	t.Run("category field for inactive set is dropped", func(t *testing.T) {
		d := Draft{}.
			ApplyField("category", "bootcamp").
			ApplyField("certification_level", "Expert") // dasaca-only
		if d.CategoryFields.BootCamp == nil || *d.CategoryFields.BootCamp != (BootCampFields{}) {
			t.Errorf("bootcamp fields changed: %+v", d.CategoryFields.BootCamp)
		}
	})
}

func Test_coerceBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"True", true},
		{"on", true},
		{"1", true},
		{"yes", true},
		{"checked", true},
		{"false", false},
		{"off", false},
		{"0", false},
		{"", false},
		{"banana", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := coerceBool(tt.value); got != tt.want {
				t.Errorf("coerceBool(%q) = %v; want %v", tt.value, got, tt.want)
			}
		})
	}
}

func Test_coerceInt(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"42", 42},
		{" 7 ", 7},
		{"", 0},
		{"abc", 0},
		{"4.2", 0},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := coerceInt(tt.value); got != tt.want {
				t.Errorf("coerceInt(%q) = %d; want %d", tt.value, got, tt.want)
			}
		})
	}
}

func Test_formatDOB(t *testing.T) {
	if got := formatDOB("1995", "07", "23"); got != "1995-07-23" {
		t.Errorf("formatDOB() = %q; want 1995-07-23", got)
	}
	// parts are joined as-is, even when empty
	if got := formatDOB("", "07", ""); got != "-07-" {
		t.Errorf("formatDOB() = %q; want -07-", got)
	}
}
