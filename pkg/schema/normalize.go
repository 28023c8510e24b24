package schema

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// employeeIDRe matches exactly six ASCII digits and nothing else.
var employeeIDRe = regexp.MustCompile(`\A[0-9]{6}\z`)

// CanonicalRole returns the lookup key for a role name.
//
// Role names are compared case-insensitively: both the role-cost table and
// the employee directory store roles in this form. The string is composed
// to NFC first so that precomposed and combining-mark spellings of the same
// name fold to one key, then upper-cased with language-neutral rules.
// Surrounding whitespace is kept; it is part of the role name.
func CanonicalRole(role string) string {
	if role == "" {
		return role
	}
	// A Caser carries state, so one is built per call rather than shared.
	return cases.Upper(language.Und).String(norm.NFC.String(role))
}

// ValidEmployeeID reports whether id is exactly six ASCII digits.
func ValidEmployeeID(id string) bool {
	return employeeIDRe.MatchString(id)
}
