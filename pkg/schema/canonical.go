package schema

// ManagerRole is the canonical role that owns a reporting chain. Only
// employees holding it are walked into during aggregation.
const ManagerRole = "MANAGER"

// EmployeeRecord is one line of the employee directory after canonicalization.
type EmployeeRecord struct {
	ID         string `json:"id"`
	LastName   string `json:"lastName"`
	FirstName  string `json:"firstName"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Manager    string `json:"manager"`
	SourceLine int    `json:"sourceLine"`
}

// IsManager reports whether the record's canonical role is MANAGER.
func (r *EmployeeRecord) IsManager() bool {
	return r.Role == ManagerRole
}

// DisplayName returns "First Last", skipping whichever half is empty.
func (r *EmployeeRecord) DisplayName() string {
	switch {
	case r.FirstName == "":
		return r.LastName
	case r.LastName == "":
		return r.FirstName
	}
	return r.FirstName + " " + r.LastName
}

// RoleCost is one entry of the role-cost table.
type RoleCost struct {
	Role       string `json:"role"`
	Cost       int    `json:"cost"`
	SourceLine int    `json:"sourceLine"`
}
