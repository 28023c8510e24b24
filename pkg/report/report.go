package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"allocation/pkg/engine"
)

// Format selects how a result is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" or "json", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// RoleSubtotal is one row of the per-role breakdown.
type RoleSubtotal struct {
	Role      string `json:"role"`
	Employees int    `json:"employees"`
	Cost      int    `json:"cost"`
}

// AllocationReport is the rendered form of an aggregation.
type AllocationReport struct {
	RunID         string                `json:"runId"`
	Root          string                `json:"root"`
	BaseCost      int                   `json:"baseCost"`
	Total         int                   `json:"total"`
	ByRole        []RoleSubtotal        `json:"byRole"`
	Contributions []engine.Contribution `json:"contributions"`
}

// Build compiles an aggregation into a report. Role subtotals are sorted by
// role name so output is stable regardless of directory order.
func Build(runID string, res *engine.AggregationResult) *AllocationReport {
	counts := make(map[string]int, len(res.ByRole))
	for _, c := range res.Contributions {
		counts[c.Role]++
	}

	byRole := make([]RoleSubtotal, 0, len(res.ByRole))
	for role, cost := range res.ByRole {
		byRole = append(byRole, RoleSubtotal{Role: role, Employees: counts[role], Cost: cost})
	}
	sort.Slice(byRole, func(i, j int) bool { return byRole[i].Role < byRole[j].Role })

	return &AllocationReport{
		RunID:         runID,
		Root:          res.Root,
		BaseCost:      res.BaseCost,
		Total:         res.Total,
		ByRole:        byRole,
		Contributions: res.Contributions,
	}
}

// WriteText prints the total line. With breakdown set it is followed by one
// line per contribution, indented by depth, then the per-role subtotals.
func WriteText(w io.Writer, r *AllocationReport, breakdown bool) error {
	if _, err := fmt.Fprintf(w, "Total Allocation: %d\n", r.Total); err != nil {
		return err
	}
	if !breakdown {
		return nil
	}

	if _, err := fmt.Fprintf(w, "%s MANAGER (base) %d\n", r.Root, r.BaseCost); err != nil {
		return err
	}
	for _, c := range r.Contributions {
		indent := strings.Repeat("  ", c.Depth)
		if _, err := fmt.Fprintf(w, "%s%s %s %d\n", indent, c.EmployeeID, c.Role, c.Cost); err != nil {
			return err
		}
	}
	for _, s := range r.ByRole {
		if _, err := fmt.Fprintf(w, "%s: %d employees, %d\n", s.Role, s.Employees, s.Cost); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON encodes the report as indented JSON.
func WriteJSON(w io.Writer, r *AllocationReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Write renders r in the requested format.
func Write(w io.Writer, r *AllocationReport, format Format, breakdown bool) error {
	if format == FormatJSON {
		return WriteJSON(w, r)
	}
	return WriteText(w, r, breakdown)
}
