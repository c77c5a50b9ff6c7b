package registration

import "testing"

// completeDraftFields walks a wizard's draft to a fully-filled state.
func completeDraftFields(w *Wizard) {
	// Applied in order: "category" must precede "course_id" because
	// ApplyField resets the chosen course when the category changes.
	fields := []struct{ name, value string }{
		{"category", "dasaca"},
		{"course_id", "1"},
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
		{"billing_zip", "11101"},
		{"qualification", "BSc"},
		{"institution", "UDSM"},
		{"field_of_study", "Statistics"},
		{"payment_method", "mpesa"},
		{"terms_accepted", "true"},
	}
	for _, f := range fields {
		w.SetField(f.name, f.value)
	}
}

func TestWizard_Next(t *testing.T) {
	w := NewWizard()

	// incomplete step: blocked, no-op
	if w.Next() {
		t.Error("Next() on incomplete step must report false")
	}
	if w.StepIndex() != 0 {
		t.Errorf("StepIndex = %d; blocked Next must not move", w.StepIndex())
	}

	w.SetField("category", "dasaca")
	w.SetField("course_id", "1")
	if !w.Next() {
		t.Error("Next() on complete step must report true")
	}
	if w.StepIndex() != 1 {
		t.Errorf("StepIndex = %d; want 1", w.StepIndex())
	}
}

func TestWizard_Next_clampsAtLastStep(t *testing.T) {
	w := NewWizard()
	completeDraftFields(w)
	for range Steps {
		w.Next()
	}
	if w.StepIndex() != lastStepIndex() {
		t.Errorf("StepIndex = %d; want %d", w.StepIndex(), lastStepIndex())
	}
	// one more Next: allowed, but clamped
	if !w.Next() {
		t.Error("Next() on a complete last step must report true")
	}
	if w.StepIndex() != lastStepIndex() {
		t.Errorf("StepIndex = %d; want clamp at %d", w.StepIndex(), lastStepIndex())
	}
}

func TestWizard_Previous(t *testing.T) {
	w := NewWizard()
	if w.Previous() {
		t.Error("Previous() at the first step must report false")
	}

	w.SetField("category", "dasaca")
	w.SetField("course_id", "1")
	w.Next()

	// previous never validates: blank out the draft first
	w.SetField("course_id", "0")
	if !w.Previous() {
		t.Error("Previous() must always be allowed")
	}
	if w.StepIndex() != 0 {
		t.Errorf("StepIndex = %d; want 0", w.StepIndex())
	}
}

func TestWizard_JumpTo(t *testing.T) {
	w := NewWizard()
	completeDraftFields(w)
	w.Next() // -> 1
	w.Next() // -> 2

	t.Run("backward always allowed", func(t *testing.T) {
		if !w.JumpTo(0) {
			t.Error("backward jump must be allowed")
		}
		if w.StepIndex() != 0 {
			t.Errorf("StepIndex = %d; want 0", w.StepIndex())
		}
	})

	t.Run("forward allowed when all prior steps complete", func(t *testing.T) {
		if !w.JumpTo(4) {
			t.Error("forward jump with complete prior steps must be allowed")
		}
		if w.StepIndex() != 4 {
			t.Errorf("StepIndex = %d; want 4", w.StepIndex())
		}
	})

	t.Run("forward blocked on incomplete prior step", func(t *testing.T) {
		w := NewWizard()
		w.SetField("category", "dasaca")
		w.SetField("course_id", "1")
		if w.JumpTo(3) {
			t.Error("forward jump over incomplete steps must be blocked")
		}
		if w.StepIndex() != 0 {
			t.Errorf("StepIndex = %d; blocked jump must not move", w.StepIndex())
		}
	})

	t.Run("out of range", func(t *testing.T) {
		if w.JumpTo(-1) || w.JumpTo(len(Steps)) {
			t.Error("out-of-range jumps must be blocked")
		}
	})
}

func TestWizard_ValidateAll(t *testing.T) {
	w := NewWizard()
	errs, complete := w.ValidateAll()
	if complete {
		t.Error("empty wizard reported complete")
	}
	for _, field := range []string{"category", "first_name", "qualification", "payment_method", "terms_accepted"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("missing accumulated error for %q", field)
		}
	}

	completeDraftFields(w)
	if errs, complete = w.ValidateAll(); !complete || len(errs) != 0 {
		t.Errorf("want complete with no errors; got %v", errs)
	}
}

func TestWizard_submitGuard(t *testing.T) {
	w := NewWizard()
	if !w.beginSubmit() {
		t.Fatal("first beginSubmit must succeed")
	}
	if w.beginSubmit() {
		t.Error("re-entrant beginSubmit must be rejected")
	}
	w.endSubmit()
	if !w.beginSubmit() {
		t.Error("beginSubmit after endSubmit must succeed")
	}
}

func TestWizard_Reset(t *testing.T) {
	w := NewWizard()
	completeDraftFields(w)
	w.Next()
	w.Reset()
	if w.StepIndex() != 0 || w.Draft() != (Draft{}) || w.Submitting() {
		t.Errorf("Reset() left state behind: step=%d draft=%+v", w.StepIndex(), w.Draft())
	}
}

func TestNewSeededWizard(t *testing.T) {
	t.Run("resolved course skips course selection", func(t *testing.T) {
		w := NewSeededWizard("dasaca", 7, true)
		if w.StepIndex() != 1 {
			t.Errorf("StepIndex = %d; want 1", w.StepIndex())
		}
		if d := w.Draft(); d.Category != "dasaca" || d.CourseID != 7 {
			t.Errorf("draft not seeded: %+v", d)
		}
		if w.Draft().CategoryFields.Dasaca == nil {
			t.Error("category fields not resolved for seeded category")
		}
	})

	t.Run("unresolved course starts at course selection", func(t *testing.T) {
		w := NewSeededWizard("dasaca", 0, false)
		if w.StepIndex() != 0 {
			t.Errorf("StepIndex = %d; want 0", w.StepIndex())
		}
		if d := w.Draft(); d.Category != "dasaca" || d.CourseID != 0 {
			t.Errorf("draft = %+v", d)
		}
	})
}
