package engine

import (
	"allocation/pkg/schema"
)

// DuplicateRecord describes an identifier defined more than once in the
// directory. The later definition always replaces the earlier one unless the
// policy rejects duplicates outright.
type DuplicateRecord struct {
	ID            string   `json:"id"`
	PreviousLine  int      `json:"previousLine"`
	Line          int      `json:"line"`
	ChangedFields []string `json:"changedFields"`
	Resolution    string   `json:"resolution"` // always "last_wins"
}

// DetectDuplicate compares two definitions of the same identifier. An exact
// repeat reports no changed fields.
func DetectDuplicate(prev, next *schema.EmployeeRecord) DuplicateRecord {
	return DuplicateRecord{
		ID:            next.ID,
		PreviousLine:  prev.SourceLine,
		Line:          next.SourceLine,
		ChangedFields: schema.DiffFields(prev, next),
		Resolution:    "last_wins",
	}
}
