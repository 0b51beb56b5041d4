package model

// Settings are the tunable knobs that persist across months (spec §3
// Lifecycle). SelectedShifts must include PRD and the six CS-anchor
// codes for FeasibilityChecker to accept a run.
type Settings struct {
	VXMin                 int                 `json:"vxMin" yaml:"vx_min"`
	MaxGenerations        int                 `json:"maxGenerations" yaml:"max_generations"`
	BalanceMorningEvening bool                `json:"balanceMorningEvening" yaml:"balance_morning_evening"`
	MaxMorningEveningDiff int                 `json:"maxMorningEveningDiff" yaml:"max_morning_evening_diff"`
	SelectedShifts        map[ShiftCode]bool  `json:"selectedShifts" yaml:"-"`
	HolidaySet            []MonthDay          `json:"holidaySet" yaml:"holiday_set"`
}

// DefaultSettings returns the spec's documented defaults.
func DefaultSettings() Settings {
	return Settings{
		VXMin:                 3,
		MaxGenerations:        200,
		BalanceMorningEvening: false,
		MaxMorningEveningDiff: 2,
		SelectedShifts:        map[ShiftCode]bool{},
	}
}

// HasSelected reports whether code is in the selected-shifts set.
func (s Settings) HasSelected(code ShiftCode) bool {
	return s.SelectedShifts[code]
}
