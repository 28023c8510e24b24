package schema

// FieldDelimiter separates fields in both input sources.
const FieldDelimiter = "|"

// Employee directory field positions, in file order.
const (
	FieldID = iota
	FieldLastName
	FieldFirstName
	FieldRole
	FieldDepartment
	FieldManager

	// EmployeeFieldCount is the exact number of fields every directory line must carry.
	EmployeeFieldCount
)

// EmployeeFieldNames names each directory field by position, for diagnostics.
var EmployeeFieldNames = [EmployeeFieldCount]string{
	FieldID:         "id",
	FieldLastName:   "last",
	FieldFirstName:  "first",
	FieldRole:       "role",
	FieldDepartment: "department",
	FieldManager:    "manager",
}

// Role-cost line field positions.
const (
	CostFieldRole = iota
	CostFieldCost

	// CostFieldCount is the exact number of fields a delimited role-cost line carries.
	CostFieldCount
)

// FromFields builds an EmployeeRecord from an already split directory line.
// The caller guarantees len(fields) == EmployeeFieldCount.
func FromFields(fields []string, line int) *EmployeeRecord {
	return &EmployeeRecord{
		ID:         fields[FieldID],
		LastName:   fields[FieldLastName],
		FirstName:  fields[FieldFirstName],
		Role:       CanonicalRole(fields[FieldRole]),
		Department: fields[FieldDepartment],
		Manager:    fields[FieldManager],
		SourceLine: line,
	}
}

// DiffFields lists the names of the directory fields whose values differ
// between two records for the same identifier. Role is compared after
// canonicalization, so "Manager" and "MANAGER" are not a difference.
func DiffFields(a, b *EmployeeRecord) []string {
	var diff []string
	pairs := [EmployeeFieldCount][2]string{
		FieldID:         {a.ID, b.ID},
		FieldLastName:   {a.LastName, b.LastName},
		FieldFirstName:  {a.FirstName, b.FirstName},
		FieldRole:       {a.Role, b.Role},
		FieldDepartment: {a.Department, b.Department},
		FieldManager:    {a.Manager, b.Manager},
	}
	for i, p := range pairs {
		if p[0] != p[1] {
			diff = append(diff, EmployeeFieldNames[i])
		}
	}
	return diff
}
