package domain

const Unknown = "Unknown"

var statusText = []string{"Submitted", "Under Review", "Approved", "Rejected", "Requires Revision"}
var statusClass = []string{"status-submitted", "status-under-review", "status-approved", "status-rejected", "status-requires-revision"}

var roleText = []string{"Junior", "Senior", "Expert"}
var roleClass = []string{"role-junior", "role-senior", "role-expert"}

func (s ProposalStatus) String() string { return lookup(statusText, int(s), Unknown) }

// Class is the CSS class for the status badge, empty when the value is unknown.
func (s ProposalStatus) Class() string { return lookup(statusClass, int(s), "") }

func (r ReviewerRole) String() string { return lookup(roleText, int(r), Unknown) }

func (r ReviewerRole) Class() string { return lookup(roleClass, int(r), "") }

func lookup(table []string, i int, def string) string {
	if i < 0 || i >= len(table) {
		return def
	}
	return table[i]
}
