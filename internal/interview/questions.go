package interview

import "tax-engine/internal/model"

func cents(v int64) *model.Cents {
	c := model.Cents(v)
	return &c
}

// TaxGraph returns the authored interview graph for a personal income-tax
// filing. Numeric answers are stored at hundredth resolution, so a count
// bound of 20 appears as 2000.
func TaxGraph() (*Graph, error) {
	return NewGraph([]model.Question{
		{
			ID:       "taxpayer_id",
			Prompt:   "What is your taxpayer identification number?",
			Type:     model.AnswerText,
			Required: true,
			Pattern:  `^\d{2}-\d{3}/\d{4}$`,
			Help:     "Format: 12-345/6789, as printed on your last assessment notice.",
		},
		{
			ID:       "birth_date",
			Prompt:   "What is your date of birth?",
			Type:     model.AnswerDate,
			Required: true,
		},
		{
			ID:       "marital_status",
			Prompt:   "What is your marital status?",
			Type:     model.AnswerChoice,
			Required: true,
			Options: []string{
				model.StatusSingle, model.StatusMarried, model.StatusPartnership,
				model.StatusDivorced, model.StatusWidowed,
			},
			SkipRules: []model.SkipRule{
				{WhenAnswer: "marital_status", Condition: model.CondEquals, Equals: model.StatusSingle, Skip: []string{"single_earner"}},
				{WhenAnswer: "marital_status", Condition: model.CondEquals, Equals: model.StatusDivorced, Skip: []string{"single_earner"}},
				{WhenAnswer: "marital_status", Condition: model.CondEquals, Equals: model.StatusWidowed, Skip: []string{"single_earner"}},
				{WhenAnswer: "marital_status", Condition: model.CondEquals, Equals: model.StatusMarried, Skip: []string{"single_parent"}},
				{WhenAnswer: "marital_status", Condition: model.CondEquals, Equals: model.StatusPartnership, Skip: []string{"single_parent"}},
			},
		},
		{
			ID:     "single_earner",
			Prompt: "Are you the sole earner in your household?",
			Type:   model.AnswerBoolean,
		},
		{
			ID:           "children_count",
			Prompt:       "How many dependent children do you have?",
			Type:         model.AnswerNumber,
			Required:     true,
			Min:          cents(0),
			Max:          cents(2000),
			RangeMessage: "please enter a count between 0 and 20",
			SkipRules: []model.SkipRule{
				{
					WhenAnswer: "children_count", Condition: model.CondInRange, Min: 0, Max: 0,
					Skip: []string{
						"children_adult_count", "adult_children_income",
						"single_parent", "childcare_spend", "shared_custody",
					},
				},
			},
		},
		{
			ID:           "children_adult_count",
			Prompt:       "How many of your children are between 18 and 24?",
			Type:         model.AnswerNumber,
			Min:          cents(0),
			Max:          cents(2000),
			RangeMessage: "please enter a count between 0 and 20",
			SkipRules: []model.SkipRule{
				{WhenAnswer: "children_adult_count", Condition: model.CondInRange, Min: 0, Max: 0, Skip: []string{"adult_children_income"}},
			},
		},
		{
			ID:     "adult_children_income",
			Prompt: "What is the annual income of your children aged 18-24?",
			Type:   model.AnswerNumber,
			Min:    cents(0),
			Help:   "Their own income decides whether the family bonus still applies.",
		},
		{
			ID:     "single_parent",
			Prompt: "Are you raising your children alone?",
			Type:   model.AnswerBoolean,
		},
		{
			ID:     "disability",
			Prompt: "Do you have a recognized disability?",
			Type:   model.AnswerBoolean,
			SkipRules: []model.SkipRule{
				{WhenAnswer: "disability", Condition: model.CondEquals, Equals: "false", Skip: []string{"disability_degree"}},
			},
		},
		{
			ID:           "disability_degree",
			Prompt:       "What is your degree of disability in percent?",
			Type:         model.AnswerNumber,
			Min:          cents(0),
			Max:          cents(10000),
			RangeMessage: "the degree must be between 0 and 100",
		},
		{
			ID:       "gross_income",
			Prompt:   "What was your gross annual income?",
			Type:     model.AnswerNumber,
			Required: true,
			Min:      cents(0),
		},
		{
			ID:     "withheld_tax",
			Prompt: "How much income tax was withheld by your employer?",
			Type:   model.AnswerNumber,
			Min:    cents(0),
		},
		{
			ID:           "employer_count",
			Prompt:       "How many employers did you have during the year?",
			Type:         model.AnswerNumber,
			Min:          cents(0),
			Max:          cents(1000),
			RangeMessage: "please enter a count between 0 and 10",
		},
		{
			ID:     "self_employed",
			Prompt: "Did you have income from self-employment?",
			Type:   model.AnswerBoolean,
		},
		{
			ID:     "commute_exists",
			Prompt: "Do you commute to a workplace?",
			Type:   model.AnswerBoolean,
			SkipRules: []model.SkipRule{
				{WhenAnswer: "commute_exists", Condition: model.CondEquals, Equals: "false", Skip: []string{"commute_distance_km", "commute_public_feasible"}},
			},
		},
		{
			ID:     "commute_distance_km",
			Prompt: "How far is your one-way commute in kilometers?",
			Type:   model.AnswerNumber,
			Min:    cents(0),
			Max:    cents(50000),
		},
		{
			ID:     "commute_public_feasible",
			Prompt: "Is commuting by public transport reasonable for you?",
			Type:   model.AnswerBoolean,
		},
		{
			ID:           "home_office_days",
			Prompt:       "How many days did you work from home?",
			Type:         model.AnswerNumber,
			Min:          cents(0),
			Max:          cents(36600),
			RangeMessage: "please enter a day count between 0 and 366",
		},
		{
			ID:     "equipment_spend",
			Prompt: "How much did you spend on work equipment?",
			Type:   model.AnswerNumber,
			Min:    cents(0),
		},
		{
			ID:     "education_spend",
			Prompt: "How much did you spend on professional education?",
			Type:   model.AnswerNumber,
			Min:    cents(0),
		},
		{
			ID:     "church_contribution",
			Prompt: "How much church contribution did you pay?",
			Type:   model.AnswerNumber,
			Min:    cents(0),
		},
		{
			ID:     "donations",
			Prompt: "How much did you donate to eligible organizations?",
			Type:   model.AnswerNumber,
			Min:    cents(0),
		},
		{
			ID:     "medical_spend",
			Prompt: "How much did you spend on medical expenses?",
			Type:   model.AnswerNumber,
			Min:    cents(0),
		},
		{
			ID:     "childcare_spend",
			Prompt: "How much did you spend on childcare?",
			Type:   model.AnswerNumber,
			Min:    cents(0),
			SkipRules: []model.SkipRule{
				{WhenAnswer: "childcare_spend", Condition: model.CondInRange, Min: 0, Max: 0, Skip: []string{"shared_custody"}},
			},
		},
		{
			ID:     "shared_custody",
			Prompt: "Is custody of your children shared?",
			Type:   model.AnswerBoolean,
			Help:   "Under shared custody only half of the childcare cost counts.",
		},
	})
}
