// Package profile projects a session's answer set into the normalized tax
// profile the calculator consumes.
package profile

import "tax-engine/internal/model"

// Build maps the session's answers onto a TaxProfile. Questions that were
// skipped or left unanswered map to their domain-neutral value (zero spend,
// false flag, single status) so the calculator is total over every skip
// pattern.
func Build(s *model.Session) *model.TaxProfile {
	p := &model.TaxProfile{
		TaxYear:       s.TaxYear,
		MaritalStatus: choice(s, "marital_status", model.StatusSingle),

		SingleParent:     flag(s, "single_parent"),
		SingleEarner:     flag(s, "single_earner"),
		Disability:       flag(s, "disability"),
		DisabilityDegree: count(s, "disability_degree"),

		GrossIncomeCents: amount(s, "gross_income"),
		WithheldCents:    amount(s, "withheld_tax"),
		EmployerCount:    count(s, "employer_count"),
		SelfEmployed:     flag(s, "self_employed"),

		HasCommute:      flag(s, "commute_exists"),
		CommuteKm:       count(s, "commute_distance_km"),
		CommutePublicOK: flag(s, "commute_public_feasible"),
		HomeOfficeDays:  count(s, "home_office_days"),
		EquipmentCents:  amount(s, "equipment_spend"),
		EducationCents:  amount(s, "education_spend"),
		ChurchCents:     amount(s, "church_contribution"),
		DonationCents:   amount(s, "donations"),
		MedicalCents:    amount(s, "medical_spend"),
		ChildcareCents:  amount(s, "childcare_spend"),
		SharedCustody:   flag(s, "shared_custody"),
	}

	total := count(s, "children_count")
	adults := count(s, "children_adult_count")
	if adults > total {
		adults = total
	}
	adultIncome := amount(s, "adult_children_income")
	for i := 0; i < total; i++ {
		d := model.Dependent{}
		if i < adults {
			d.AdultBand = true
			d.IncomeCents = adultIncome
		}
		p.Dependents = append(p.Dependents, d)
	}

	return p
}

func amount(s *model.Session, id string) model.Cents {
	if a, ok := s.Answers[id]; ok {
		return a.Number
	}
	return 0
}

// count reads a numeric answer back as a whole number (answers are stored at
// hundredth resolution).
func count(s *model.Session, id string) int {
	return int(amount(s, id).Whole())
}

func flag(s *model.Session, id string) bool {
	if a, ok := s.Answers[id]; ok {
		return a.Bool
	}
	return false
}

func choice(s *model.Session, id, fallback string) string {
	if a, ok := s.Answers[id]; ok && a.Choice != "" {
		return a.Choice
	}
	return fallback
}
