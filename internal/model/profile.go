package model

// MaritalStatus values match the interview's choice options.
const (
	StatusSingle      = "single"
	StatusMarried     = "married"
	StatusPartnership = "partnership"
	StatusDivorced    = "divorced"
	StatusWidowed     = "widowed"
)

// Dependent is one qualifying child. AdultBand marks the 18-24 range where the
// family bonus depends on the dependent's own income.
type Dependent struct {
	AdultBand   bool  `json:"adult_band"`
	IncomeCents Cents `json:"income_cents"`
}

// TaxProfile is the normalized, year-scoped projection of a session's answers.
// Questions skipped during the interview appear here as their neutral values,
// never as "unknown": the calculator is total over every skip pattern.
type TaxProfile struct {
	TaxYear int `json:"tax_year"`

	// personal facts
	MaritalStatus    string      `json:"marital_status"`
	SingleParent     bool        `json:"single_parent"`
	SingleEarner     bool        `json:"single_earner"`
	Disability       bool        `json:"disability"`
	DisabilityDegree int         `json:"disability_degree"`
	Dependents       []Dependent `json:"dependents"`

	// income facts
	GrossIncomeCents Cents `json:"gross_income_cents"`
	WithheldCents    Cents `json:"withheld_cents"`
	EmployerCount    int   `json:"employer_count"`
	SelfEmployed     bool  `json:"self_employed"`

	// itemized deduction inputs
	HasCommute      bool  `json:"has_commute"`
	CommuteKm       int   `json:"commute_km"`
	CommutePublicOK bool  `json:"commute_public_ok"`
	HomeOfficeDays  int   `json:"home_office_days"`
	EquipmentCents  Cents `json:"equipment_cents"`
	EducationCents  Cents `json:"education_cents"`
	ChurchCents     Cents `json:"church_cents"`
	DonationCents   Cents `json:"donation_cents"`
	MedicalCents    Cents `json:"medical_cents"`
	ChildcareCents  Cents `json:"childcare_cents"`
	SharedCustody   bool  `json:"shared_custody"`
}
