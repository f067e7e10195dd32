// Package taxcalc computes the tax outcome from a profile and a verified rule
// pack. Calculate is pure and idempotent: identical inputs always yield an
// identical result. Holding a *rulepack.Verified is the only way in; unverified
// constants cannot reach this code.
package taxcalc

import (
	"tax-engine/internal/model"
	"tax-engine/internal/rulepack"
)

// Evaluate runs the full pipeline including the optimization advisor.
func Evaluate(p *model.TaxProfile, vp *rulepack.Verified) *model.CalculationResult {
	result := Calculate(p, vp)
	result.Suggestions = Advise(p, result, vp)
	return result
}

// Calculate produces the breakdown: itemized deductions, taxable income,
// progressive gross tax, credits in fixed order, net refund or amount due.
func Calculate(p *model.TaxProfile, vp *rulepack.Verified) *model.CalculationResult {
	pack := vp.Data()

	deductions := itemize(p, &pack)
	var totalDeductions model.Cents
	for _, d := range deductions {
		totalDeductions += d.AmountCents
	}

	taxable := p.GrossIncomeCents - totalDeductions
	if taxable < 0 {
		taxable = 0
	}

	grossTax := bracketTax(taxable, pack.Brackets)
	credits, finalTax := applyCredits(p, &pack.Credits, grossTax)

	return &model.CalculationResult{
		TaxYear:              pack.Year,
		GrossIncomeCents:     p.GrossIncomeCents,
		Deductions:           deductions,
		TotalDeductionsCents: totalDeductions,
		TaxableCents:         taxable,
		GrossTaxCents:        grossTax,
		Credits:              credits,
		FinalTaxCents:        finalTax,
		NetCents:             p.WithheldCents - finalTax,
	}
}

// itemize computes every deduction category independently from profile and
// pack constants.
func itemize(p *model.TaxProfile, pack *model.RulePack) []model.DeductionLine {
	d := &pack.Deductions
	return []model.DeductionLine{
		{Category: model.DeductionCommute, AmountCents: commuteAllowance(p, &d.Commute)},
		{Category: model.DeductionHomeOffice, AmountCents: homeOffice(p.HomeOfficeDays, d)},
		{Category: model.DeductionEquipment, AmountCents: capped(p.EquipmentCents+p.EducationCents, d.EquipmentCapCents)},
		{Category: model.DeductionChurch, AmountCents: capped(p.ChurchCents, d.ChurchCapCents)},
		{Category: model.DeductionDonations, AmountCents: p.DonationCents},
		{Category: model.DeductionMedical, AmountCents: medical(p, d)},
		{Category: model.DeductionChildcare, AmountCents: childcare(p, d)},
	}
}

// commuteAllowance is a step function of distance; the reduced table applies
// when public transport is feasible.
func commuteAllowance(p *model.TaxProfile, tbl *model.CommuteTable) model.Cents {
	if !p.HasCommute {
		return 0
	}
	steps := tbl.Private
	if p.CommutePublicOK {
		steps = tbl.Public
	}
	var amount model.Cents
	for _, step := range steps {
		if p.CommuteKm >= step.MinKm {
			amount = step.Cents
		}
	}
	return amount
}

func homeOffice(days int, d *model.DeductionTable) model.Cents {
	return capped(d.HomeOfficeDayCents*model.Cents(days), d.HomeOfficeCapCents)
}

// medical deducts expenses above the self-retention floor, a percentage of
// income that varies by family situation. The percentages come from the pack,
// never from code.
func medical(p *model.TaxProfile, d *model.DeductionTable) model.Cents {
	bps := d.SelfRetention.GeneralBps
	switch {
	case p.Disability:
		bps = d.SelfRetention.DisabilityBps
	case p.SingleParent && len(p.Dependents) >= 3:
		bps = d.SelfRetention.SingleParentManyBps
	}
	retention := model.Cents(int64(p.GrossIncomeCents) * bps / 10000)
	net := p.MedicalCents - retention
	if net < 0 {
		return 0
	}
	return net
}

// childcare applies the custody-split fraction (half under shared custody) and
// the per-child cap.
func childcare(p *model.TaxProfile, d *model.DeductionTable) model.Cents {
	if len(p.Dependents) == 0 {
		return 0
	}
	amount := p.ChildcareCents
	if p.SharedCustody {
		amount /= 2
	}
	return capped(amount, d.ChildcareCapCents*model.Cents(len(p.Dependents)))
}

func capped(v, cap model.Cents) model.Cents {
	if cap > 0 && v > cap {
		return cap
	}
	return v
}

// bracketTax sums tax over every bracket slice that overlaps the taxable
// income: piecewise-linear progressive schedule, not a single marginal lookup.
func bracketTax(taxable model.Cents, brackets []model.Bracket) model.Cents {
	var tax int64
	for _, b := range brackets {
		lo := b.FromCents
		hi := b.ToCents
		if hi == 0 || hi > taxable {
			hi = taxable
		}
		if hi <= lo {
			continue
		}
		tax += int64(hi-lo) * b.RateBps / 10000
	}
	return model.Cents(tax)
}

// applyCredits subtracts the credits in fixed order, clamping the running tax
// at zero. Returned lines record what was actually applied.
func applyCredits(p *model.TaxProfile, ct *model.CreditTable, grossTax model.Cents) ([]model.CreditLine, model.Cents) {
	remaining := grossTax
	var lines []model.CreditLine

	apply := func(category string, amount model.Cents) {
		if amount <= 0 {
			return
		}
		if amount > remaining {
			amount = remaining
		}
		if amount == 0 {
			return
		}
		remaining -= amount
		lines = append(lines, model.CreditLine{Category: category, AmountCents: amount})
	}

	// base employee credit, unless the filer has self-employment income only
	if !(p.SelfEmployed && p.EmployerCount == 0) {
		apply(model.CreditEmployee, ct.EmployeeCents)
	}

	var bonus model.Cents
	for _, dep := range p.Dependents {
		if dep.AdultBand {
			if dep.IncomeCents <= ct.AdultIncomeLimitCents {
				bonus += ct.FamilyBonusAdultCents
			}
			continue
		}
		bonus += ct.FamilyBonusMinorCents
	}
	apply(model.CreditFamilyBonus, bonus)

	if p.SingleEarner {
		apply(model.CreditSingleEarner, ct.SingleEarnerCents)
	}
	if p.SingleParent {
		apply(model.CreditSingleParent, ct.SingleParentCents)
	}

	return lines, remaining
}
