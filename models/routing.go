package models

// RoutingMethod names how a booking was (or was not) assigned to a host.
type RoutingMethod string

const (
	RoutingDisabled        RoutingMethod = "disabled"
	RoutingCreatorFallback RoutingMethod = "creator_fallback"
	RoutingSingleAvailable RoutingMethod = "single_available"
	RoutingAI              RoutingMethod = "ai_routing"
	RoutingLeastBusy       RoutingMethod = "least_busy_fallback"
	RoutingRoundRobin      RoutingMethod = "round_robin"
	RoutingRandom          RoutingMethod = "random"
)

// RoutingDecision is the outcome of one routing-engine evaluation. Host is
// nil when routing is disabled or the event has no creator to fall back to.
// RawResponse keeps the verbatim AI reply for audit when AI routing ran.
type RoutingDecision struct {
	Host        *User         `json:"host,omitempty"`
	Method      RoutingMethod `json:"method"`
	Reason      string        `json:"reason,omitempty"`
	RawResponse string        `json:"-"`
}

// RoutingResult is the wire form returned to booking callers.
type RoutingResult struct {
	AssignedTo    *int64        `json:"assigned_to"`
	AssignedName  *string       `json:"assigned_name"`
	RoutingMethod RoutingMethod `json:"routing_method"`
}

// Result flattens the decision into its wire form.
func (d RoutingDecision) Result() RoutingResult {
	res := RoutingResult{RoutingMethod: d.Method}
	if d.Host != nil {
		res.AssignedTo = &d.Host.ID
		res.AssignedName = &d.Host.Name
	}
	return res
}
