package registration

// Step identifiers, in wizard order.
const (
	StepCourse    = "course"
	StepPersonal  = "personal"
	StepEducation = "education"
	StepPayment   = "payment"
	StepReview    = "review"
)

// StepDescriptor is static step metadata; the sequence is fixed for the
// lifetime of a wizard.
type StepDescriptor struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Steps is the canonical ordered step sequence. Both the navigation gate and
// the step validators are parameterized by this list.
var Steps = []StepDescriptor{
	{ID: StepCourse, Title: "Course Selection"},
	{ID: StepPersonal, Title: "Personal Information"},
	{ID: StepEducation, Title: "Education & Experience"},
	{ID: StepPayment, Title: "Payment"},
	{ID: StepReview, Title: "Review & Submit"},
}

func lastStepIndex() int { return len(Steps) - 1 }
