package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"

	"allocation/pkg/schema"
)

// DefaultManagerBaseCost is the queried manager's own allocation.
//
// It is added directly and never looked up in the role-cost table, even
// though the root is itself a MANAGER: reports are charged their table cost,
// the root is charged this constant.
const DefaultManagerBaseCost = 300

// Contribution is one employee's share of an aggregation.
type Contribution struct {
	EmployeeID string `json:"employeeId"`
	Role       string `json:"role"`
	Manager    string `json:"manager"`
	Cost       int    `json:"cost"`
	// Depth is 1 for direct reports of the root.
	Depth int `json:"depth"`
}

// AggregationResult is the outcome of one traversal.
type AggregationResult struct {
	Root          string         `json:"root"`
	BaseCost      int            `json:"baseCost"`
	Total         int            `json:"total"`
	ByRole        map[string]int `json:"byRole"`
	Contributions []Contribution `json:"contributions"`
}

// Aggregator sums role costs over a manager's reporting chain.
type Aggregator struct {
	dir      *Directory
	costs    *RoleCostTable
	baseCost int
	log      logrus.FieldLogger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithBaseCost overrides DefaultManagerBaseCost.
func WithBaseCost(cost int) Option {
	return func(a *Aggregator) { a.baseCost = cost }
}

// WithLogger routes traversal logging to log.
func WithLogger(log logrus.FieldLogger) Option {
	return func(a *Aggregator) {
		if log != nil {
			a.log = log
		}
	}
}

// NewAggregator returns an Aggregator over a loaded directory and cost table.
func NewAggregator(dir *Directory, costs *RoleCostTable, opts ...Option) *Aggregator {
	a := &Aggregator{
		dir:      dir,
		costs:    costs,
		baseCost: DefaultManagerBaseCost,
		log:      discardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// traversal is the per-call accumulator; nothing survives between calls.
type traversal struct {
	result  *AggregationResult
	visited sets.Set[string]
}

// Aggregate computes the total allocation for rootID's reporting chain.
//
// The walk is depth-first pre-order: each direct report is charged its role
// cost and, when it is itself a MANAGER, its own reports are walked before
// the next sibling. Every employee may be reached at most once; reaching one
// again (including the root) means the manager references form a loop and
// the walk stops with ErrCycleDetected.
//
// Aggregate is the single place the root is checked with ValidateRoot;
// callers such as Pipeline.Run do not repeat it.
func (a *Aggregator) Aggregate(rootID string) (*AggregationResult, error) {
	if _, err := ValidateRoot(a.dir, rootID); err != nil {
		return nil, err
	}

	t := &traversal{
		result: &AggregationResult{
			Root:          rootID,
			BaseCost:      a.baseCost,
			Total:         a.baseCost,
			ByRole:        make(map[string]int),
			Contributions: make([]Contribution, 0),
		},
		visited: sets.New(rootID),
	}

	if err := a.accumulate(t, rootID, 1); err != nil {
		return nil, err
	}

	a.log.WithFields(logrus.Fields{
		"root":      rootID,
		"employees": len(t.result.Contributions),
		"total":     t.result.Total,
	}).Debug("Aggregated reporting chain")

	return t.result, nil
}

func (a *Aggregator) accumulate(t *traversal, managerID string, depth int) error {
	for _, rec := range a.dir.ReportsTo(managerID) {
		if t.visited.Has(rec.ID) {
			return fmt.Errorf("%w: %s is reached again through manager %s", ErrCycleDetected, rec.ID, managerID)
		}
		t.visited.Insert(rec.ID)

		cost, ok := a.costs.Cost(rec.Role)
		if !ok {
			return a.missingRole(rec)
		}

		t.result.Total += cost
		t.result.ByRole[rec.Role] += cost
		t.result.Contributions = append(t.result.Contributions, Contribution{
			EmployeeID: rec.ID,
			Role:       rec.Role,
			Manager:    managerID,
			Cost:       cost,
			Depth:      depth,
		})

		if rec.IsManager() {
			if err := a.accumulate(t, rec.ID, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// missingRole builds the hard-stop error for a role the table does not cover.
func (a *Aggregator) missingRole(rec *schema.EmployeeRecord) error {
	if hint, ok := closestRole(rec.Role, a.costs.Roles()); ok {
		return fmt.Errorf("%w: role %s (employee %s) not found; add an allocation for it to the role-cost configuration (did you mean %s?)",
			ErrMissingRoleAllocation, rec.Role, rec.ID, hint)
	}
	return fmt.Errorf("%w: role %s (employee %s) not found; add an allocation for it to the role-cost configuration",
		ErrMissingRoleAllocation, rec.Role, rec.ID)
}
