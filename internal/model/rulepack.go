package model

import "time"

// PackState reports the registry's verdict for a year. Only PackOK permits
// calculation.
type PackState string

const (
	PackOK              PackState = "ok"
	PackMissing         PackState = "missing"
	PackStale           PackState = "stale"
	PackInvalid         PackState = "invalid"
	PackUnsupportedYear PackState = "unsupported-year"
)

// RulePack is the year-scoped table of legal constants. The registry treats
// the source document as read-only input; a loaded pack is immutable and safe
// for concurrent reads.
type RulePack struct {
	Year       int       `yaml:"year" json:"year"`
	VerifiedAt time.Time `yaml:"verified_at" json:"verified_at"`
	Valid      bool      `yaml:"valid" json:"valid"`

	Brackets   []Bracket      `yaml:"brackets" json:"brackets"`
	Credits    CreditTable    `yaml:"credits" json:"credits"`
	Deductions DeductionTable `yaml:"deductions" json:"deductions"`
}

// Bracket is one income range of the progressive schedule. ToCents of zero
// marks the unbounded top bracket. Rates are basis points so the slice tax
// stays pure integer arithmetic.
type Bracket struct {
	FromCents Cents `yaml:"from_cents" json:"from_cents"`
	ToCents   Cents `yaml:"to_cents" json:"to_cents"`
	RateBps   int64 `yaml:"rate_bps" json:"rate_bps"`
}

// CreditTable holds the flat credits and the family-bonus constants.
type CreditTable struct {
	EmployeeCents         Cents `yaml:"employee_cents" json:"employee_cents"`
	SingleEarnerCents     Cents `yaml:"single_earner_cents" json:"single_earner_cents"`
	SingleParentCents     Cents `yaml:"single_parent_cents" json:"single_parent_cents"`
	FamilyBonusMinorCents Cents `yaml:"family_bonus_minor_cents" json:"family_bonus_minor_cents"`
	FamilyBonusAdultCents Cents `yaml:"family_bonus_adult_cents" json:"family_bonus_adult_cents"`
	AdultIncomeLimitCents Cents `yaml:"adult_income_limit_cents" json:"adult_income_limit_cents"`
}

// DeductionTable holds the itemized-deduction constants.
type DeductionTable struct {
	Commute            CommuteTable       `yaml:"commute" json:"commute"`
	HomeOfficeDayCents Cents              `yaml:"home_office_day_cents" json:"home_office_day_cents"`
	HomeOfficeCapCents Cents              `yaml:"home_office_cap_cents" json:"home_office_cap_cents"`
	EquipmentCapCents  Cents              `yaml:"equipment_cap_cents" json:"equipment_cap_cents"` // 0 = uncapped
	ChurchCapCents     Cents              `yaml:"church_cap_cents" json:"church_cap_cents"`
	ChildcareCapCents  Cents              `yaml:"childcare_cap_cents" json:"childcare_cap_cents"` // per child
	SelfRetention      SelfRetentionTable `yaml:"self_retention" json:"self_retention"`
}

// CommuteTable is the distance-step allowance, split by whether public
// transport is feasible (the reduced table) or not.
type CommuteTable struct {
	Public  []CommuteStep `yaml:"public" json:"public"`
	Private []CommuteStep `yaml:"private" json:"private"`
}

// CommuteStep grants the amount from MinKm upward; the highest matching step
// wins. Distances below the first step earn nothing.
type CommuteStep struct {
	MinKm int   `yaml:"min_km" json:"min_km"`
	Cents Cents `yaml:"cents" json:"cents"`
}

// SelfRetentionTable is the income percentage (basis points) a filer bears
// before medical expenses become deductible, keyed by family hardship. The
// registry rejects packs where hardship does not lower the percentage.
type SelfRetentionTable struct {
	GeneralBps          int64 `yaml:"general_bps" json:"general_bps"`
	SingleParentManyBps int64 `yaml:"single_parent_many_bps" json:"single_parent_many_bps"`
	DisabilityBps       int64 `yaml:"disability_bps" json:"disability_bps"`
}
