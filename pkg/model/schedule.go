package model

import "hash/fnv"

// Schedule is the dense employee×day assignment matrix. Cells are
// addressed by employee index (stable for the lifetime of a Schedule)
// rather than by map lookup, so population members can be compared
// and hashed cheaply during the memetic search.
type Schedule struct {
	employeeIDs []string
	index       map[string]int
	days        int
	cells       [][]ShiftCode // cells[empIndex][day]
}

// NewSchedule allocates an empty schedule for the given employees and
// day count. All cells start unassigned.
func NewSchedule(employeeIDs []string, days int) *Schedule {
	s := &Schedule{
		employeeIDs: append([]string(nil), employeeIDs...),
		index:       make(map[string]int, len(employeeIDs)),
		days:        days,
		cells:       make([][]ShiftCode, len(employeeIDs)),
	}
	for i, id := range employeeIDs {
		s.index[id] = i
		s.cells[i] = make([]ShiftCode, days)
	}
	return s
}

// EmployeeIDs returns the schedule's employee ordering.
func (s *Schedule) EmployeeIDs() []string { return s.employeeIDs }

// Days returns the number of days in the schedule.
func (s *Schedule) Days() int { return s.days }

// Get returns the shift code at (employeeID, day), or Off if the
// employee is not part of this schedule.
func (s *Schedule) Get(employeeID string, day int) ShiftCode {
	i, ok := s.index[employeeID]
	if !ok {
		return Off
	}
	return s.cells[i][day]
}

// GetByIndex returns the shift code at (empIndex, day) directly.
func (s *Schedule) GetByIndex(empIndex, day int) ShiftCode {
	return s.cells[empIndex][day]
}

// Set assigns a shift code at (employeeID, day). No-op for an unknown
// employee.
func (s *Schedule) Set(employeeID string, day int, code ShiftCode) {
	i, ok := s.index[employeeID]
	if !ok {
		return
	}
	s.cells[i][day] = code
}

// SetByIndex assigns a shift code at (empIndex, day) directly.
func (s *Schedule) SetByIndex(empIndex, day int, code ShiftCode) {
	s.cells[empIndex][day] = code
}

// Row returns the day-vector for an employee index. The returned
// slice aliases the schedule's storage; callers that mutate it are
// mutating this schedule.
func (s *Schedule) Row(empIndex int) []ShiftCode {
	return s.cells[empIndex]
}

// IndexOf returns the employee index for an ID, or -1.
func (s *Schedule) IndexOf(employeeID string) int {
	if i, ok := s.index[employeeID]; ok {
		return i
	}
	return -1
}

// Clone deep-copies the schedule. Every intermediate candidate in the
// memetic population is an independent copy (see spec §3 Ownership).
func (s *Schedule) Clone() *Schedule {
	clone := &Schedule{
		employeeIDs: append([]string(nil), s.employeeIDs...),
		index:       make(map[string]int, len(s.index)),
		days:        s.days,
		cells:       make([][]ShiftCode, len(s.cells)),
	}
	for k, v := range s.index {
		clone.index[k] = v
	}
	for i, row := range s.cells {
		clone.cells[i] = append([]ShiftCode(nil), row...)
	}
	return clone
}

// Hash computes a stable FNV-1a hash of the schedule's contents,
// grounded on the teacher's hashAssignments pattern. The memetic
// engine calls this to collapse converged population duplicates
// (dedupePopulation) and to key its local-repair tabu list
// (randomCellImprovement).
func (s *Schedule) Hash() uint64 {
	h := fnv.New64a()
	for _, row := range s.cells {
		for _, c := range row {
			h.Write([]byte(c))
			h.Write([]byte{0})
		}
	}
	return h.Sum64()
}
