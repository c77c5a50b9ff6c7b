package registration

import "github.com/chuodata/usajili/core/catalog"

// Field kinds rendered by the front end.
const (
	FieldText     = "text"
	FieldSelect   = "select"
	FieldCheckbox = "checkbox"
	FieldNumber   = "number"
)

// Enum options for category-specific selects.
var (
	CertificationLevels = []string{"Foundation", "Practitioner", "Expert"}
	PriorExperiences    = []string{"None", "1-2 years", "3-5 years", "5+ years"}
	Schedules           = []string{"Weekday", "Weekend", "Evening"}
	Locations           = []string{"On-site", "Online", "Hybrid"}
)

// FieldDef describes one dynamic form field to render and collect.
// Category-specific fields are optional: they never gate step completion.
type FieldDef struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Kind    string   `json:"kind"`
	Options []string `json:"options,omitempty"`
}

type DasacaFields struct {
	CertificationLevel string `json:"certification_level,omitempty" validate:"omitempty,oneof=Foundation Practitioner Expert"`
	PriorExperience    string `json:"prior_experience,omitempty" validate:"omitempty,oneof=None '1-2 years' '3-5 years' '5+ years'"`
	PreExamMaterials   bool   `json:"pre_exam_materials"`
	ExamVoucher        bool   `json:"exam_voucher"`
}

type BootCampFields struct {
	KnownLanguages    string `json:"known_languages,omitempty"`
	PreferredSchedule string `json:"preferred_schedule,omitempty" validate:"omitempty,oneof=Weekday Weekend Evening"`
	ProjectIdeas      string `json:"project_ideas,omitempty"`
	HasLaptop         bool   `json:"has_laptop"`
	NeedsInstallHelp  bool   `json:"needs_install_help"`
}

type CorporateFields struct {
	CompanyName        string `json:"company_name,omitempty"`
	JobTitle           string `json:"job_title,omitempty"`
	TeamSize           int    `json:"team_size,omitempty" validate:"omitempty,gt=0"`
	PreferredLocation  string `json:"preferred_location,omitempty" validate:"omitempty,oneof=On-site Online Hybrid"`
	DepartmentFocus    string `json:"department_focus,omitempty"`
	TrainingObjectives string `json:"training_objectives,omitempty"`
}

// CategoryFields is the discriminated per-category sub-object of the draft.
// At most one member is non-nil, resolved from the selected category.
type CategoryFields struct {
	Dasaca    *DasacaFields    `json:"dasaca,omitempty"`
	BootCamp  *BootCampFields  `json:"bootcamp,omitempty"`
	Corporate *CorporateFields `json:"corporate,omitempty"`
}

// newCategoryFields resolves the (empty) typed field set for a category slug.
// An unknown or empty category yields no fields rather than an error.
func newCategoryFields(category string) CategoryFields {
	switch category {
	case catalog.SlugDasaca:
		return CategoryFields{Dasaca: &DasacaFields{}}
	case catalog.SlugBootCamp:
		return CategoryFields{BootCamp: &BootCampFields{}}
	case catalog.SlugCorporate:
		return CategoryFields{Corporate: &CorporateFields{}}
	}
	return CategoryFields{}
}

// ResolveFieldDefs returns the dynamic field definitions to render for a category.
func ResolveFieldDefs(category string) []FieldDef {
	switch category {
	case catalog.SlugDasaca:
		return []FieldDef{
			{Name: "certification_level", Label: "Certification Level", Kind: FieldSelect, Options: CertificationLevels},
			{Name: "prior_experience", Label: "Prior Analytics Experience", Kind: FieldSelect, Options: PriorExperiences},
			{Name: "pre_exam_materials", Label: "Include Pre-Exam Materials", Kind: FieldCheckbox},
			{Name: "exam_voucher", Label: "Include Exam Voucher", Kind: FieldCheckbox},
		}
	case catalog.SlugBootCamp:
		return []FieldDef{
			{Name: "known_languages", Label: "Known Programming Languages", Kind: FieldText},
			{Name: "preferred_schedule", Label: "Preferred Schedule", Kind: FieldSelect, Options: Schedules},
			{Name: "project_ideas", Label: "Project Ideas", Kind: FieldText},
			{Name: "has_laptop", Label: "I have my own laptop", Kind: FieldCheckbox},
			{Name: "needs_install_help", Label: "I need help installing software", Kind: FieldCheckbox},
		}
	case catalog.SlugCorporate:
		return []FieldDef{
			{Name: "company_name", Label: "Company Name", Kind: FieldText},
			{Name: "job_title", Label: "Job Title", Kind: FieldText},
			{Name: "team_size", Label: "Team Size", Kind: FieldNumber},
			{Name: "preferred_location", Label: "Preferred Training Location", Kind: FieldSelect, Options: Locations},
			{Name: "department_focus", Label: "Department Focus", Kind: FieldText},
			{Name: "training_objectives", Label: "Training Objectives", Kind: FieldText},
		}
	}
	return nil
}

// applyField routes a category-specific field change to the active typed set.
// Events for a set that is not active are dropped silently.
func (cf CategoryFields) applyField(name, value string) CategoryFields {
	switch {
	case cf.Dasaca != nil:
		flds := *cf.Dasaca
		switch name {
		case "certification_level":
			flds.CertificationLevel = value
		case "prior_experience":
			flds.PriorExperience = value
		case "pre_exam_materials":
			flds.PreExamMaterials = coerceBool(value)
		case "exam_voucher":
			flds.ExamVoucher = coerceBool(value)
		default:
			return cf
		}
		cf.Dasaca = &flds

	case cf.BootCamp != nil:
		flds := *cf.BootCamp
		switch name {
		case "known_languages":
			flds.KnownLanguages = value
		case "preferred_schedule":
			flds.PreferredSchedule = value
		case "project_ideas":
			flds.ProjectIdeas = value
		case "has_laptop":
			flds.HasLaptop = coerceBool(value)
		case "needs_install_help":
			flds.NeedsInstallHelp = coerceBool(value)
		default:
			return cf
		}
		cf.BootCamp = &flds

	case cf.Corporate != nil:
		flds := *cf.Corporate
		switch name {
		case "company_name":
			flds.CompanyName = value
		case "job_title":
			flds.JobTitle = value
		case "team_size":
			flds.TeamSize = coerceInt(value)
		case "preferred_location":
			flds.PreferredLocation = value
		case "department_focus":
			flds.DepartmentFocus = value
		case "training_objectives":
			flds.TrainingObjectives = value
		default:
			return cf
		}
		cf.Corporate = &flds
	}
	return cf
}
