package catalog

import "adapter-quiz-service/internal/domain"

// Default returns the built-in charging-accessory catalog. Production setups
// load the same structure from the question_catalogs table; this set keeps
// the service usable without a database and seeds tests.
func Default() *Set {
	return NewSet(defaultQuestions(), defaultStages())
}

func defaultStages() map[domain.Stage][]domain.StageEntry {
	return map[domain.Stage][]domain.StageEntry{
		domain.StageInitial: {
			{QuestionID: "device_category", Weight: 1.0},
			{QuestionID: "port_type", Weight: 0.9},
			{QuestionID: "usage_scenario", Weight: 0.8},
			{QuestionID: "manufacturer_preference", Weight: 0.7},
		},
		domain.StageRefinement: {
			{QuestionID: "budget_range", Weight: 0.9},
			{QuestionID: "power_requirements", Weight: 0.85},
			{QuestionID: "certification_needs", Weight: 0.8},
			{QuestionID: "cable_length", Weight: 0.6},
		},
		domain.StageFinalization: {
			{QuestionID: "feature_priorities", Weight: 0.7},
			{QuestionID: "warranty_importance", Weight: 0.6},
			{QuestionID: "port_type", Weight: 0.5},
			{QuestionID: "budget_range", Weight: 0.4},
		},
	}
}

// defaultQuestions lists questions in canonical order; the planner fills
// fallback batch slots by walking this order.
func defaultQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:       "device_category",
			Text:     "What device do you need an adapter for?",
			Kind:     domain.SingleChoice,
			Category: "device",
			Options: []domain.Option{
				{ID: "laptop", Label: "Laptop", FollowUp: "power_requirements"},
				{ID: "smartphone", Label: "Smartphone", FollowUp: "port_type"},
				{ID: "tablet", Label: "Tablet", FollowUp: "port_type"},
				{ID: "gaming_console", Label: "Gaming console", FollowUp: "power_requirements"},
				{ID: "multiple_devices", Label: "Several devices", FollowUp: "feature_priorities"},
			},
		},
		{
			ID:       "port_type",
			Text:     "Which connector does your device use?",
			Kind:     domain.SingleChoice,
			Category: "compatibility",
			Options: []domain.Option{
				{ID: "usb_c", Label: "USB-C", Filter: domain.FilterPredicate{"port_type_name": {Equals: "usb_c"}}},
				{ID: "usb_a", Label: "USB-A", Filter: domain.FilterPredicate{"port_type_name": {Equals: "usb_a"}}},
				{ID: "lightning", Label: "Lightning", Filter: domain.FilterPredicate{"port_type_name": {Equals: "lightning"}}},
				{ID: "magsafe", Label: "MagSafe", Filter: domain.FilterPredicate{"port_type_name": {Equals: "magsafe"}}},
				{ID: "hdmi", Label: "HDMI", Filter: domain.FilterPredicate{"port_type_name": {Equals: "hdmi"}}},
			},
		},
		{
			ID:       "usage_scenario",
			Text:     "Where will you mostly use it?",
			Kind:     domain.SingleChoice,
			Category: "usage",
			Options: []domain.Option{
				{ID: "travel", Label: "Travelling", Tags: []string{"portable"}},
				{ID: "office", Label: "At the office", Tags: []string{"desk"}},
				{ID: "home", Label: "At home", Tags: []string{"desk"}},
				{ID: "gaming", Label: "Gaming setup", Tags: []string{"high_power"}, FollowUp: "power_requirements"},
			},
		},
		{
			ID:       "manufacturer_preference",
			Text:     "Do you prefer a particular manufacturer?",
			Kind:     domain.SingleChoice,
			Category: "brand",
			Options: []domain.Option{
				{ID: "apple", Label: "Apple", Filter: domain.FilterPredicate{"manufacturer": {Equals: "apple"}}},
				{ID: "samsung", Label: "Samsung", Filter: domain.FilterPredicate{"manufacturer": {Equals: "samsung"}}},
				{ID: "anker", Label: "Anker", Filter: domain.FilterPredicate{"manufacturer": {Equals: "anker"}}},
				{ID: "belkin", Label: "Belkin", Filter: domain.FilterPredicate{"manufacturer": {Equals: "belkin"}}},
				{ID: "no_preference", Label: "No preference"},
			},
		},
		{
			ID:       "budget_range",
			Text:     "How much do you want to spend?",
			Kind:     domain.SingleChoice,
			Category: "budget",
			Options: []domain.Option{
				{ID: "budget", Label: "Under $25", Filter: domain.FilterPredicate{"price": {Max: f(25)}}},
				{ID: "mid_range", Label: "$25 to $75", Filter: domain.FilterPredicate{"price": {Min: f(25), Max: f(75)}}},
				{ID: "premium", Label: "Over $75", Filter: domain.FilterPredicate{"price": {Min: f(75)}}},
			},
		},
		{
			ID:       "power_requirements",
			Text:     "How much charging power do you need?",
			Kind:     domain.SingleChoice,
			Category: "power",
			Options: []domain.Option{
				{ID: "low", Label: "Up to 30W (phones, earbuds)", Filter: domain.FilterPredicate{"max_wattage": {Max: f(30)}}},
				{ID: "medium", Label: "30W to 65W (tablets, ultrabooks)", Filter: domain.FilterPredicate{"max_wattage": {Min: f(30), Max: f(65)}}},
				{ID: "high", Label: "65W and up (workstations, consoles)", Filter: domain.FilterPredicate{"max_wattage": {Min: f(65)}}},
			},
		},
		{
			ID:       "certification_needs",
			Text:     "Do you require safety-certified hardware?",
			Kind:     domain.SingleChoice,
			Category: "quality",
			Options: []domain.Option{
				{ID: "required", Label: "Yes, certified only", Filter: domain.FilterPredicate{"is_certified": {Equals: true}}, Tags: []string{"quality"}},
				{ID: "preferred", Label: "Preferred but not required"},
				{ID: "none", Label: "Doesn't matter"},
			},
		},
		{
			ID:       "cable_length",
			Text:     "How long should the cable be?",
			Kind:     domain.SingleChoice,
			Category: "form_factor",
			Options: []domain.Option{
				{ID: "short", Label: "Under 1m", Filter: domain.FilterPredicate{"cable_length_m": {Max: f(1)}}},
				{ID: "standard", Label: "1m to 2m", Filter: domain.FilterPredicate{"cable_length_m": {Min: f(1), Max: f(2)}}},
				{ID: "long", Label: "Over 2m", Filter: domain.FilterPredicate{"cable_length_m": {Min: f(2)}}},
			},
		},
		{
			ID:       "feature_priorities",
			Text:     "Which features matter most to you?",
			Kind:     domain.MultiChoice,
			Category: "features",
			Options: []domain.Option{
				{ID: "fast_charging", Label: "Fast charging", Filter: domain.FilterPredicate{"max_wattage": {Min: f(45)}}},
				{ID: "multi_port", Label: "Multiple ports", Filter: domain.FilterPredicate{"port_count": {Min: f(2)}}},
				{ID: "compact", Label: "Compact size", Tags: []string{"portable"}},
				{ID: "durability", Label: "Rugged build", Tags: []string{"quality"}},
			},
		},
		{
			ID:       "warranty_importance",
			Text:     "How important is a long warranty?",
			Kind:     domain.SingleChoice,
			Category: "quality",
			Options: []domain.Option{
				{ID: "essential", Label: "Essential", Filter: domain.FilterPredicate{"warranty_years": {Min: f(2)}}},
				{ID: "nice_to_have", Label: "Nice to have"},
				{ID: "not_important", Label: "Not important"},
			},
		},
	}
}

func f(v float64) *float64 { return &v }
