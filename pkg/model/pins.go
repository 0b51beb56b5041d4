package model

// PinKey addresses a single (employee, day) cell in the pin table.
type PinKey struct {
	EmployeeID string
	Day        int
}

// ManualPins is an operator-supplied (employee, day) -> ShiftCode
// table. Pins are authoritative: the engine may never overwrite them.
type ManualPins map[PinKey]ShiftCode

// Clone deep-copies the pin table.
func (p ManualPins) Clone() ManualPins {
	clone := make(ManualPins, len(p))
	for k, v := range p {
		clone[k] = v
	}
	return clone
}

// Get returns the pin at (employeeID, day) and whether one exists.
func (p ManualPins) Get(employeeID string, day int) (ShiftCode, bool) {
	c, ok := p[PinKey{employeeID, day}]
	return c, ok
}

// Set records a pin, overwriting any prior value for that cell.
func (p ManualPins) Set(employeeID string, day int, code ShiftCode) {
	p[PinKey{employeeID, day}] = code
}

// Delete removes a pin, if present.
func (p ManualPins) Delete(employeeID string, day int) {
	delete(p, PinKey{employeeID, day})
}

// CountForEmployee counts pins of a given code for one employee.
func (p ManualPins) CountForEmployee(employeeID string, code ShiftCode) int {
	n := 0
	for k, v := range p {
		if k.EmployeeID == employeeID && v == code {
			n++
		}
	}
	return n
}
