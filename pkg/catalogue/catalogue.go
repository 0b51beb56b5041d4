// Package catalogue enumerates valid shift codes and derives their
// start/end times. Every lookup is a pure function over a code's text
// form; results are memoised at package initialization since the
// catalogue itself never changes at runtime.
package catalogue

import (
	"strconv"
	"strings"

	"github.com/shiftboard/engine/pkg/model"
)

type familySpec struct {
	prefix      string
	family      model.Family
	minHH, maxHH int
	lengthHours float64
}

var families = []familySpec{
	{prefix: "VX", family: model.FamilyVX, minHH: 14, maxHH: 25, lengthHours: 10},
	{prefix: "V8", family: model.FamilyV8, minHH: 14, maxHH: 29, lengthHours: 8},
	{prefix: "V6", family: model.FamilyV6, minHH: 14, maxHH: 33, lengthHours: 6},
}

type entry struct {
	family model.Family
	start  float64
	end    float64
}

var (
	table     map[model.ShiftCode]entry
	allCodes  []model.ShiftCode
)

func init() {
	table = make(map[model.ShiftCode]entry)
	allCodes = nil

	for _, fs := range families {
		for hh := fs.minHH; hh <= fs.maxHH; hh++ {
			code := model.ShiftCode(fs.prefix + strconv.Itoa(hh))
			start := float64(hh) / 2.0
			table[code] = entry{family: fs.family, start: start, end: start + fs.lengthHours}
			allCodes = append(allCodes, code)
		}
	}

	for _, marker := range []model.ShiftCode{model.PRD, model.AL, model.NPL} {
		table[marker] = entry{family: model.FamilyOff}
		allCodes = append(allCodes, marker)
	}
}

// Enumerate returns every valid VX/V8/V6 code plus {PRD, AL, NPL}, in
// the order VX ascending, V8 ascending, V6 ascending, then markers.
func Enumerate() []model.ShiftCode {
	out := make([]model.ShiftCode, len(allCodes))
	copy(out, allCodes)
	return out
}

// WorkCodes returns Enumerate() minus the three off/absence markers —
// the draw pool for initialization and mutation.
func WorkCodes() []model.ShiftCode {
	out := make([]model.ShiftCode, 0, len(allCodes))
	for _, c := range allCodes {
		if !c.IsOffMarker() {
			out = append(out, c)
		}
	}
	return out
}

// MorningWorkCodes returns WorkCodes() restricted to start < 12 —
// the draw pool for Senior/Manager employees.
func MorningWorkCodes() []model.ShiftCode {
	out := make([]model.ShiftCode, 0, len(allCodes))
	for _, c := range WorkCodes() {
		if start, ok := StartHour(c); ok && start < 12 {
			out = append(out, c)
		}
	}
	return out
}

// IsValid reports whether code is a known catalogue entry.
func IsValid(code model.ShiftCode) bool {
	_, ok := table[code]
	return ok
}

// StartHour returns the half-hour-resolution start time for code, or
// ok=false for PRD/AL/NPL/empty/unknown codes.
func StartHour(code model.ShiftCode) (hour float64, ok bool) {
	e, found := table[code]
	if !found || e.family == model.FamilyOff {
		return 0, false
	}
	return e.start, true
}

// EndHour returns the half-hour-resolution end time for code. End may
// exceed 24 for shifts that wrap past midnight's hour numbering.
func EndHour(code model.ShiftCode) (hour float64, ok bool) {
	e, found := table[code]
	if !found || e.family == model.FamilyOff {
		return 0, false
	}
	return e.end, true
}

// FamilyOf classifies code into {VX, V8, V6, off}. Unknown codes and
// the empty string are classified as off.
func FamilyOf(code model.ShiftCode) model.Family {
	e, found := table[code]
	if !found {
		return model.FamilyOff
	}
	return e.family
}

// IsMorning reports whether code has a start hour before noon. Off
// markers are never morning shifts.
func IsMorning(code model.ShiftCode) bool {
	start, ok := StartHour(code)
	return ok && start < 12
}

// ParseFamily extracts the two-character family prefix from a code
// string, used by callers that need to validate user input before it
// reaches the catalogue tables.
func ParseFamily(code string) (string, bool) {
	for _, fs := range families {
		if strings.HasPrefix(code, fs.prefix) {
			return fs.prefix, true
		}
	}
	return "", false
}
