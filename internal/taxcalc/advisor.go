package taxcalc

import (
	"sort"

	"tax-engine/internal/model"
	"tax-engine/internal/rulepack"
)

// catalogEntry is one deduction category the advisor watches. When enabled
// shows an opportunity and the itemized amount sits below expected, the
// advisor re-runs the calculation with the hypothetical profile and reports
// the refund delta.
type catalogEntry struct {
	category  string
	rationale string
	enabled   func(*model.TaxProfile, *model.RulePack) bool
	below     func(*model.TaxProfile, *model.CalculationResult, *model.RulePack) bool
	whatIf    func(model.TaxProfile, *model.RulePack) model.TaxProfile
}

// catalog order breaks savings ties.
var catalog = []catalogEntry{
	{
		category:  model.DeductionHomeOffice,
		rationale: "your home-office days do not exhaust the annual allowance ceiling",
		enabled: func(p *model.TaxProfile, _ *model.RulePack) bool {
			return p.HomeOfficeDays > 0
		},
		below: func(p *model.TaxProfile, r *model.CalculationResult, pack *model.RulePack) bool {
			return itemized(r, model.DeductionHomeOffice) < pack.Deductions.HomeOfficeCapCents
		},
		whatIf: func(p model.TaxProfile, pack *model.RulePack) model.TaxProfile {
			if pack.Deductions.HomeOfficeDayCents > 0 {
				p.HomeOfficeDays = int(pack.Deductions.HomeOfficeCapCents / pack.Deductions.HomeOfficeDayCents)
			}
			return p
		},
	},
	{
		category:  model.DeductionCommute,
		rationale: "you commute but claim no commuter allowance; check the distance table",
		enabled: func(p *model.TaxProfile, _ *model.RulePack) bool {
			return p.HasCommute
		},
		below: func(_ *model.TaxProfile, r *model.CalculationResult, _ *model.RulePack) bool {
			return itemized(r, model.DeductionCommute) == 0
		},
		whatIf: func(p model.TaxProfile, pack *model.RulePack) model.TaxProfile {
			steps := pack.Deductions.Commute.Private
			if p.CommutePublicOK {
				steps = pack.Deductions.Commute.Public
			}
			if len(steps) > 0 {
				p.CommuteKm = steps[0].MinKm
			}
			return p
		},
	},
	{
		category:  model.DeductionEquipment,
		rationale: "employees typically claim some work equipment or education spend",
		enabled: func(p *model.TaxProfile, _ *model.RulePack) bool {
			return p.EmployerCount > 0
		},
		below: func(_ *model.TaxProfile, r *model.CalculationResult, _ *model.RulePack) bool {
			return itemized(r, model.DeductionEquipment) == 0
		},
		whatIf: func(p model.TaxProfile, _ *model.RulePack) model.TaxProfile {
			p.EquipmentCents = 30000
			return p
		},
	},
	{
		category:  model.DeductionChurch,
		rationale: "your church contribution stays below the deductible cap",
		enabled: func(p *model.TaxProfile, _ *model.RulePack) bool {
			return p.ChurchCents > 0
		},
		below: func(_ *model.TaxProfile, r *model.CalculationResult, pack *model.RulePack) bool {
			return itemized(r, model.DeductionChurch) < pack.Deductions.ChurchCapCents
		},
		whatIf: func(p model.TaxProfile, pack *model.RulePack) model.TaxProfile {
			p.ChurchCents = pack.Deductions.ChurchCapCents
			return p
		},
	},
	{
		category:  model.DeductionChildcare,
		rationale: "you have children but claim no childcare costs",
		enabled: func(p *model.TaxProfile, _ *model.RulePack) bool {
			return len(p.Dependents) > 0
		},
		below: func(_ *model.TaxProfile, r *model.CalculationResult, _ *model.RulePack) bool {
			return itemized(r, model.DeductionChildcare) == 0
		},
		whatIf: func(p model.TaxProfile, pack *model.RulePack) model.TaxProfile {
			p.ChildcareCents = pack.Deductions.ChildcareCapCents
			p.SharedCustody = false
			return p
		},
	},
}

// Advise scans the catalog against the profile and the already-computed
// result and returns suggestions ordered by descending estimated savings,
// ties broken by catalog order.
func Advise(p *model.TaxProfile, result *model.CalculationResult, vp *rulepack.Verified) []model.Suggestion {
	pack := vp.Data()
	var suggestions []model.Suggestion

	for _, entry := range catalog {
		if !entry.enabled(p, &pack) || !entry.below(p, result, &pack) {
			continue
		}
		hypothetical := entry.whatIf(*p, &pack)
		delta := Calculate(&hypothetical, vp).NetCents - result.NetCents
		if delta <= 0 {
			continue
		}
		suggestions = append(suggestions, model.Suggestion{
			Category:     entry.category,
			Rationale:    entry.rationale,
			SavingsCents: delta,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].SavingsCents > suggestions[j].SavingsCents
	})
	return suggestions
}

func itemized(r *model.CalculationResult, category string) model.Cents {
	for _, d := range r.Deductions {
		if d.Category == category {
			return d.AmountCents
		}
	}
	return 0
}
