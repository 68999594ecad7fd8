package ldtest

import (
	"fmt"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests by matching regular expressions against the full test name,
// such as "Pet/get pet by id".
//
// A MustMatch pattern that contains slashes also selects the parent groups of the tests it
// could match, so that "-run Pet/find" enters the "Pet" group. A MustNotMatch pattern
// excludes the matching test and everything under it.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	if r.MustNotMatch.AnyMatch(name) {
		return false
	}
	if !r.MustMatch.IsDefined() {
		return true
	}
	return r.MustMatch.AnyMatch(name) || r.MustMatch.AnyCouldMatchDescendant(id)
}

// IsDefined returns true if any filter patterns were specified.
func (r RegexFilters) IsDefined() bool {
	return r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined()
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// AnyCouldMatchDescendant returns true if some pattern has more slash-separated elements than
// the test ID, and each element of the ID matches the corresponding element of the pattern.
func (r RegexList) AnyCouldMatchDescendant(id TestID) bool {
	for _, p := range r.patterns {
		parts := strings.Split(p.String(), "/")
		if len(parts) <= len(id.Path) {
			continue
		}
		matched := true
		for i, name := range id.Path {
			rx, err := regexp.Compile(parts[i])
			if err != nil || !rx.MatchString(name) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}
