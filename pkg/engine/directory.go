package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"allocation/pkg/parser"
	"allocation/pkg/schema"
)

// DuplicatePolicy decides what happens when an employee id appears on more
// than one directory line.
type DuplicatePolicy string

const (
	// DuplicateOverwrite silently keeps the last definition.
	DuplicateOverwrite DuplicatePolicy = "overwrite"
	// DuplicateWarn keeps the last definition and logs a warning.
	DuplicateWarn DuplicatePolicy = "warn"
	// DuplicateReject fails the load with ErrDuplicateEmployee.
	DuplicateReject DuplicatePolicy = "reject"
)

// ParseDuplicatePolicy accepts the policy names case-insensitively.
// An empty string selects DuplicateWarn.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DuplicateWarn, nil
	case DuplicateOverwrite, DuplicateWarn, DuplicateReject:
		return p, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q (want overwrite, warn or reject)", s)
	}
}

// Directory is the in-memory employee directory keyed by employee id.
//
// Iteration follows the position at which an id was first seen, while the
// record stored for it is the last one loaded. The reports-to index is
// derived from the final records so it always agrees with Lookup.
type Directory struct {
	byID    map[string]*schema.EmployeeRecord
	order   []string
	reports map[string][]string

	Duplicates []DuplicateRecord `json:"duplicates"`
	Dangling   []string          `json:"dangling"`
	Stats      DirectoryStats    `json:"stats"`
}

// DirectoryStats contains aggregate statistics about a loaded directory.
type DirectoryStats struct {
	TotalLines int `json:"totalLines"`
	BlankLines int `json:"blankLines"`
	Records    int `json:"records"`
	Managers   int `json:"managers"`
	Duplicates int `json:"duplicates"`
	Dangling   int `json:"dangling"`
}

// LoadDirectory converts parsed directory lines into records and builds the
// directory from them. Blank lines are skipped; every other line must carry
// exactly six fields.
func LoadDirectory(res *parser.ParseResult, policy DuplicatePolicy, log logrus.FieldLogger) (*Directory, error) {
	records := make([]*schema.EmployeeRecord, 0, len(res.Lines))
	blank := 0
	for _, line := range res.Lines {
		if line.Blank() {
			blank++
			continue
		}
		if len(line.Fields) != schema.EmployeeFieldCount {
			return nil, fmt.Errorf("%w: employee line %d has %d fields, expected %d (%s)",
				ErrMalformedRecord, line.Number, len(line.Fields), schema.EmployeeFieldCount,
				strings.Join(schema.EmployeeFieldNames[:], schema.FieldDelimiter))
		}
		records = append(records, schema.FromFields(line.Fields, line.Number))
	}

	dir, err := BuildDirectory(records, policy, log)
	if err != nil {
		return nil, err
	}
	dir.Stats.TotalLines = len(res.Lines)
	dir.Stats.BlankLines = blank
	return dir, nil
}

// BuildDirectory indexes records by id, applying policy to repeated ids.
// Manager references that resolve to no record are collected in Dangling;
// they are reported but never fatal since such employees simply sit outside
// every queried chain.
func BuildDirectory(records []*schema.EmployeeRecord, policy DuplicatePolicy, log logrus.FieldLogger) (*Directory, error) {
	if log == nil {
		log = discardLogger()
	}
	if policy == "" {
		policy = DuplicateWarn
	}

	dir := &Directory{
		byID:    make(map[string]*schema.EmployeeRecord, len(records)),
		order:   make([]string, 0, len(records)),
		reports: make(map[string][]string),
	}

	for _, rec := range records {
		prev, exists := dir.byID[rec.ID]
		if !exists {
			dir.order = append(dir.order, rec.ID)
			dir.byID[rec.ID] = rec
			continue
		}

		dup := DetectDuplicate(prev, rec)
		switch policy {
		case DuplicateReject:
			return nil, fmt.Errorf("%w: %s is defined on line %d and again on line %d",
				ErrDuplicateEmployee, rec.ID, prev.SourceLine, rec.SourceLine)
		case DuplicateWarn:
			log.WithFields(logrus.Fields{
				"id":            rec.ID,
				"previous_line": dup.PreviousLine,
				"line":          dup.Line,
				"changed":       strings.Join(dup.ChangedFields, ","),
			}).Warn("Duplicate employee id; last definition wins")
		}
		dir.Duplicates = append(dir.Duplicates, dup)
		dir.byID[rec.ID] = rec
	}

	for _, id := range dir.order {
		rec := dir.byID[id]
		if rec.IsManager() {
			dir.Stats.Managers++
		}
		if rec.Manager == "" {
			continue
		}
		dir.reports[rec.Manager] = append(dir.reports[rec.Manager], id)
		if _, ok := dir.byID[rec.Manager]; !ok {
			dir.Dangling = append(dir.Dangling, id)
			log.WithFields(logrus.Fields{
				"id":      id,
				"manager": rec.Manager,
			}).Info("Manager reference does not resolve to any employee")
		}
	}

	dir.Stats.Records = len(dir.order)
	dir.Stats.Duplicates = len(dir.Duplicates)
	dir.Stats.Dangling = len(dir.Dangling)

	log.WithFields(logrus.Fields{
		"records":    dir.Stats.Records,
		"managers":   dir.Stats.Managers,
		"duplicates": dir.Stats.Duplicates,
	}).Debug("Built employee directory")

	return dir, nil
}

// Lookup returns the record stored for id.
func (d *Directory) Lookup(id string) (*schema.EmployeeRecord, bool) {
	rec, ok := d.byID[id]
	return rec, ok
}

// ReportsTo returns the direct reports of managerID in directory order.
func (d *Directory) ReportsTo(managerID string) []*schema.EmployeeRecord {
	ids := d.reports[managerID]
	out := make([]*schema.EmployeeRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.byID[id])
	}
	return out
}

// Records returns every record in directory order.
func (d *Directory) Records() []*schema.EmployeeRecord {
	out := make([]*schema.EmployeeRecord, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.byID[id])
	}
	return out
}

// Len returns the number of distinct employee ids.
func (d *Directory) Len() int {
	return len(d.order)
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
