package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"

	"allocation/pkg/parser"
	"allocation/pkg/schema"
)

// RoleCostTable maps canonical role names to their allocation cost.
// It is built once and never modified afterwards.
type RoleCostTable struct {
	costs map[string]schema.RoleCost
}

// NewRoleCostTable builds a table from entries. Roles are canonicalized and
// a later entry for the same role replaces an earlier one.
func NewRoleCostTable(entries ...schema.RoleCost) *RoleCostTable {
	t := &RoleCostTable{costs: make(map[string]schema.RoleCost, len(entries))}
	for _, e := range entries {
		e.Role = schema.CanonicalRole(e.Role)
		t.costs[e.Role] = e
	}
	return t
}

// LoadRoleCosts builds the table from parsed role-cost lines.
//
// Lines without a delimiter are comments or blanks and are ignored. Every
// other line must be exactly role|cost. The cost is trimmed of surrounding
// whitespace and must parse as a non-negative base-10 integer, otherwise the
// load fails with ErrInvalidCost naming the role and the literal value.
// Whether every directory role is covered is checked later, at aggregation.
func LoadRoleCosts(res *parser.ParseResult, log logrus.FieldLogger) (*RoleCostTable, error) {
	if log == nil {
		log = discardLogger()
	}
	t := &RoleCostTable{costs: make(map[string]schema.RoleCost)}

	for _, line := range res.Lines {
		if !line.Delimited() {
			continue
		}
		if len(line.Fields) != schema.CostFieldCount {
			return nil, fmt.Errorf("%w: role-cost line %d has %d fields, expected role%scost",
				ErrMalformedRecord, line.Number, len(line.Fields), schema.FieldDelimiter)
		}

		rawRole := line.Fields[schema.CostFieldRole]
		rawCost := line.Fields[schema.CostFieldCost]
		cost, err := strconv.Atoi(strings.TrimSpace(rawCost))
		if err != nil || cost < 0 {
			return nil, fmt.Errorf("%w: role %s is configured to %q on line %d; cost must be a non-negative whole number",
				ErrInvalidCost, rawRole, rawCost, line.Number)
		}

		role := schema.CanonicalRole(rawRole)
		if prev, ok := t.costs[role]; ok {
			log.WithFields(logrus.Fields{
				"role":          role,
				"previous_line": prev.SourceLine,
				"line":          line.Number,
			}).Debug("Role cost redefined; last definition wins")
		}
		t.costs[role] = schema.RoleCost{Role: role, Cost: cost, SourceLine: line.Number}
	}

	log.WithField("roles", len(t.costs)).Debug("Loaded role costs")
	return t, nil
}

// Cost returns the allocation cost for role, canonicalizing it first.
func (t *RoleCostTable) Cost(role string) (int, bool) {
	rc, ok := t.costs[schema.CanonicalRole(role)]
	return rc.Cost, ok
}

// Roles returns the set of canonical role names the table covers.
func (t *RoleCostTable) Roles() sets.Set[string] {
	roles := sets.New[string]()
	for role := range t.costs {
		roles.Insert(role)
	}
	return roles
}

// Len returns the number of roles in the table.
func (t *RoleCostTable) Len() int {
	return len(t.costs)
}
