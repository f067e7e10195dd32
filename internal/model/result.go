package model

// Deduction and credit categories, in the calculator's fixed order.
const (
	DeductionCommute    = "COMMUTE"
	DeductionHomeOffice = "HOME_OFFICE"
	DeductionEquipment  = "EQUIPMENT_EDUCATION"
	DeductionChurch     = "CHURCH"
	DeductionDonations  = "DONATIONS"
	DeductionMedical    = "MEDICAL"
	DeductionChildcare  = "CHILDCARE"

	CreditEmployee     = "EMPLOYEE"
	CreditFamilyBonus  = "FAMILY_BONUS"
	CreditSingleEarner = "SINGLE_EARNER"
	CreditSingleParent = "SINGLE_PARENT"
)

// DeductionLine is one itemized deduction as applied.
type DeductionLine struct {
	Category    string `json:"category"`
	AmountCents Cents  `json:"amount_cents"`
}

// CreditLine is one credit as actually applied, after the zero clamp.
type CreditLine struct {
	Category    string `json:"category"`
	AmountCents Cents  `json:"amount_cents"`
}

// Suggestion is one unclaimed-but-eligible deduction surfaced by the advisor,
// with the estimated refund delta of a hypothetical claim.
type Suggestion struct {
	Category     string `json:"category"`
	Rationale    string `json:"rationale"`
	SavingsCents Cents  `json:"savings_cents"`
}

// CalculationResult is the full breakdown for one (profile, rule pack) pair.
// Identical inputs always produce an identical result.
type CalculationResult struct {
	TaxYear int `json:"tax_year"`

	GrossIncomeCents     Cents           `json:"gross_income_cents"`
	Deductions           []DeductionLine `json:"deductions"`
	TotalDeductionsCents Cents           `json:"total_deductions_cents"`
	TaxableCents         Cents           `json:"taxable_cents"`
	GrossTaxCents        Cents           `json:"gross_tax_cents"`
	Credits              []CreditLine    `json:"credits"`
	FinalTaxCents        Cents           `json:"final_tax_cents"`

	// NetCents is withheld minus final tax: positive refund, negative due.
	NetCents Cents `json:"net_cents"`

	Suggestions []Suggestion `json:"suggestions,omitempty"`
}
