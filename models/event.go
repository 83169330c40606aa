package models

// AvailabilityType controls how many hosts must be free for a slot to be offered.
type AvailabilityType string

const (
	OneHostAvailable  AvailabilityType = "one_host_available"
	AllHostsAvailable AvailabilityType = "all_hosts_available"
)

// FallbackStrategy is the deterministic host-selection rule used when AI
// routing is disabled, fails, or is not configured.
type FallbackStrategy string

const (
	FallbackRoundRobin FallbackStrategy = "round_robin"
	FallbackLeastBusy  FallbackStrategy = "least_busy"
	FallbackRandom     FallbackStrategy = "random"
)

// AssigneeRole is the role a user holds on an event. All four roles are
// eligible hosts for availability filtering and routing.
type AssigneeRole string

const (
	RoleCreator AssigneeRole = "creator"
	RoleAdmin   AssigneeRole = "admin"
	RoleHost    AssigneeRole = "host"
	RoleMember  AssigneeRole = "member"
)

// User is the minimal host/requester identity this engine needs.
type User struct {
	ID    int64  `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// Assignee ties a user to an event with a role.
type Assignee struct {
	User User         `bson:"user" json:"user"`
	Role AssigneeRole `bson:"role" json:"role"`
}

// DurationOption is one selectable meeting length.
type DurationOption struct {
	Label   string `bson:"label" json:"label"`
	Minutes int    `bson:"minutes" json:"minutes"`
}

// EventConfig holds the booking rules for an event. Read-only to the engine.
type EventConfig struct {
	Durations            []DurationOption `bson:"durations,omitempty" json:"durations,omitempty"`
	BufferMinutes        int              `bson:"buffer_minutes" json:"buffer_minutes"`
	AdvanceNoticeMinutes int              `bson:"advance_notice_minutes" json:"advance_notice_minutes"`
	AvailabilityType     AvailabilityType `bson:"availability_type" json:"availability_type"`
	RoutingEnabled       bool             `bson:"routing_enabled" json:"routing_enabled"`
	RoutingInstructions  string           `bson:"routing_instructions,omitempty" json:"routing_instructions,omitempty"`
	RoutingFallback      FallbackStrategy `bson:"routing_fallback,omitempty" json:"routing_fallback,omitempty"`
}

// Event is the scheduling aggregate: weekly template, booking rules and
// the host pool.
type Event struct {
	ID        string         `bson:"id" json:"id"`
	Title     string         `bson:"title" json:"title"`
	Creator   *User          `bson:"creator,omitempty" json:"creator,omitempty"`
	Schedule  WeeklySchedule `bson:"schedule" json:"schedule"`
	Config    EventConfig    `bson:"config" json:"config"`
	Assignees []Assignee     `bson:"assignees,omitempty" json:"assignees,omitempty"`
}

// DefaultDurationMinutes is used when an event has no configured durations
// and the request does not name one.
const DefaultDurationMinutes = 30

// DurationMinutes resolves the meeting length for a request. A requested
// value wins; otherwise the first configured duration; otherwise 30.
func (e *Event) DurationMinutes(requested int) int {
	if requested > 0 {
		return requested
	}
	if len(e.Config.Durations) > 0 && e.Config.Durations[0].Minutes > 0 {
		return e.Config.Durations[0].Minutes
	}
	return DefaultDurationMinutes
}

// HostPool returns the event's eligible hosts. An event with no assignees
// falls back to the creator as a single implicit host; the pool may be
// empty if the creator is also unset.
func (e *Event) HostPool() []Assignee {
	if len(e.Assignees) > 0 {
		return e.Assignees
	}
	if e.Creator != nil {
		return []Assignee{{User: *e.Creator, Role: RoleCreator}}
	}
	return nil
}
