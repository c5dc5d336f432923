package types

import "strings"

// NotAvailable replaces empty location fields in a GroupKey.
const NotAvailable = "غير متوفر"

// GroupKey identifies a group of employees sharing a work location, division and city.
type GroupKey struct {
	WorkLocation string `json:"work_location"`
	Division     string `json:"division"`
	City         string `json:"city"`
}

// NewGroupKey builds a key with trimmed fields, defaulting empty ones to NotAvailable.
func NewGroupKey(workLocation, division, city string) GroupKey {
	return GroupKey{
		WorkLocation: orNotAvailable(workLocation),
		Division:     orNotAvailable(division),
		City:         orNotAvailable(city),
	}
}

func orNotAvailable(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return NotAvailable
	}
	return s
}

func (k GroupKey) String() string {
	return k.City + "/" + k.WorkLocation + "/" + k.Division
}

// Group is the ordered set of invitees sharing a GroupKey. Members keep the
// order in which they were first seen in the invited list.
type Group struct {
	Key     GroupKey   `json:"key"`
	Members []Employee `json:"members"`
}

// CollectiveTitles is the grammar-agreed text derived from a group's members.
type CollectiveTitles struct {
	City                  string `json:"city"`
	MaleCollectiveTitle   string `json:"male_collective_title"`
	FemaleCollectiveTitle string `json:"female_collective_title"`
	CollectiveTitle       string `json:"collective_title"`
	ContextualPronoun     string `json:"contextual_pronoun"`
	AgreedJobTitle        string `json:"agreed_job_title"`
	InviteeNames          string `json:"invitee_names"`
	MaleCount             int    `json:"male_count"`
	FemaleCount           int    `json:"female_count"`
	Total                 int    `json:"total"`
}

// GroupDocument is the flat field set handed to the template renderer for one group.
type GroupDocument struct {
	CollectiveTitles
	Group              GroupKey   `json:"group"`
	WorkLocation       string     `json:"work_location"`
	Division           string     `json:"division"`
	Employees          []Employee `json:"employees"`
	ResponsibilityLine string     `json:"responsibility_line"`
	Responsible        *Employee  `json:"responsible,omitempty"`
}

// Key returns the key of the group the document was assembled for. City may
// differ from the resolved City when every member was excluded.
func (d GroupDocument) Key() GroupKey {
	return d.Group
}

// Snapshot is a read-only copy of the roster and the invited list taken for
// one generation pass.
type Snapshot struct {
	Roster  []Employee `json:"roster"`
	Invited []Employee `json:"invited"`
}
