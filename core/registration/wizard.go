package registration

// Wizard is the single source of truth for one in-progress registration:
// the accumulated draft, the active step index and the navigation gate.
// It is owned by exactly one wizard session and is not safe for concurrent
// use; the session store serializes access.
type Wizard struct {
	draft      Draft
	step       int
	submitting bool
}

// NewWizard starts an empty wizard at the course-selection step.
func NewWizard() *Wizard {
	return &Wizard{draft: Draft{}}
}

// NewSeededWizard starts a wizard pre-populated from query parameters.
// When the seeded course resolved to a real course the course-selection step
// is already complete and the wizard starts at the personal step.
func NewSeededWizard(category string, courseID int, courseResolved bool) *Wizard {
	d := Draft{}.ApplyField("category", category)
	if courseResolved {
		d.CourseID = courseID
		return &Wizard{draft: d, step: 1}
	}
	return &Wizard{draft: d}
}

func (w *Wizard) Draft() Draft     { return w.draft }
func (w *Wizard) StepIndex() int   { return w.step }
func (w *Wizard) Submitting() bool { return w.submitting }

// Step returns the active step's descriptor.
func (w *Wizard) Step() StepDescriptor { return Steps[w.step] }

// Completion derives the per-step completion map from the current draft.
func (w *Wizard) Completion() map[string]bool { return Completion(w.draft) }

// StepResult validates the active step.
func (w *Wizard) StepResult() StepResult { return ValidateStep(Steps[w.step].ID, w.draft) }

// SetField applies one field-change event to the draft.
func (w *Wizard) SetField(name, value string) {
	w.draft = w.draft.ApplyField(name, value)
}

// Next advances to the following step, but only when the active step is
// complete. A blocked advance is a no-op and reports false.
func (w *Wizard) Next() bool {
	if !w.StepResult().Complete {
		return false
	}
	if w.step < lastStepIndex() {
		w.step++
	}
	return true
}

// Previous goes back one step. Going back never requires validation.
func (w *Wizard) Previous() bool {
	if w.step == 0 {
		return false
	}
	w.step--
	return true
}

// JumpTo moves directly to the given step. Revisiting an already-reached step
// is always permitted; jumping forward requires every step strictly before
// the target to be complete. A blocked jump is a no-op and reports false.
func (w *Wizard) JumpTo(index int) bool {
	if index < 0 || index > lastStepIndex() {
		return false
	}
	if index <= w.step {
		w.step = index
		return true
	}
	completion := w.Completion()
	for _, step := range Steps[:index] {
		if !completion[step.ID] {
			return false
		}
	}
	w.step = index
	return true
}

// ValidateAll re-validates every step and accumulates the field errors.
// This is the submission safety net against stale completion flags.
func (w *Wizard) ValidateAll() (map[string]string, bool) {
	errs := make(map[string]string)
	complete := true
	for _, step := range Steps {
		res := ValidateStep(step.ID, w.draft)
		if !res.Complete {
			complete = false
		}
		for field, msg := range res.Errors {
			errs[field] = msg
		}
	}
	return errs, complete
}

// beginSubmit flips the in-flight flag; a second submit while one is in
// flight reports false and must be rejected by the caller.
func (w *Wizard) beginSubmit() bool {
	if w.submitting {
		return false
	}
	w.submitting = true
	return true
}

func (w *Wizard) endSubmit() { w.submitting = false }

// Reset discards all progress: empty draft, back to the first step.
func (w *Wizard) Reset() {
	w.draft = Draft{}
	w.step = 0
	w.submitting = false
}
