// Package listfilter narrows an already rendered page of job-role cards without a server round trip.
// The same matching rules back server-side list queries so both sides agree on what "matches" means.
package listfilter

import "strings"

// Card attribute names the rendering layer puts on every list item.
const (
	AttrRoleName = "data-role-name"
	AttrLocation = "data-location"
	AttrBand     = "data-band"
)

// HiddenClass is toggled on cards that fail the current criteria.
const HiddenClass = "hidden"

// Criteria is the live filter state read from the page controls.
type Criteria struct {
	Query    string `form:"q" json:"q,omitempty"`
	Location string `form:"location" json:"location,omitempty"`
	Band     string `form:"band" json:"band,omitempty"`
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.Query == "" && c.Location == "" && c.Band == ""
}

// Match applies the filter predicate to raw role values.
// Query is a case-insensitive substring of the role name; location and band must match exactly.
func (c Criteria) Match(roleName, location, band string) bool {
	return c.match(strings.ToLower(roleName), location, band)
}

// Matches applies the predicate to a cached card.
func (c Criteria) Matches(card CachedCard) bool {
	return c.match(card.RoleNameLower, card.Location, card.Band)
}

func (c Criteria) match(roleNameLower, location, band string) bool {
	if c.Query != "" && !strings.Contains(roleNameLower, strings.ToLower(c.Query)) {
		return false
	}
	if c.Location != "" && c.Location != location {
		return false
	}
	if c.Band != "" && c.Band != band {
		return false
	}
	return true
}
