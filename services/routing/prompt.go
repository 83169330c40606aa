package routing

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"slotwise/models"
)

// PromptInput carries everything the prompt builder needs. Keeping it a
// plain value makes BuildRoutingPrompt a pure function.
type PromptInput struct {
	RequesterName  string
	RequesterEmail string
	FormValues     map[string]string
	Candidates     []models.Assignee
	Instructions   string
}

// Well-known consumer mail providers; anything else is assumed to be a
// business domain.
var publicEmailDomains = map[string]bool{
	"gmail.com":      true,
	"googlemail.com": true,
	"yahoo.com":      true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"live.com":       true,
	"icloud.com":     true,
	"me.com":         true,
	"aol.com":        true,
	"protonmail.com": true,
	"proton.me":      true,
	"gmx.com":        true,
	"mail.com":       true,
	"yandex.com":     true,
	"zoho.com":       true,
}

// ClassifyEmailDomain labels the requester's email domain as "public" or
// "business". A heuristic only; it feeds the prompt, nothing else.
func ClassifyEmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return "unknown"
	}
	domain := strings.ToLower(email[at+1:])
	if publicEmailDomains[domain] {
		return "public"
	}
	return "business"
}

// BuildRoutingPrompt assembles the routing prompt from labeled sections:
// customer info, email-domain classification, custom form fields, the
// candidate roster (id and name only), the operator's instructions, and
// the output-format directive. Form fields are emitted in sorted key order
// so the prompt is stable for identical input.
func BuildRoutingPrompt(in PromptInput) string {
	var sb strings.Builder

	sb.WriteString("You are a meeting routing assistant. Assign the incoming booking to exactly one of the candidate hosts.\n\n")

	sb.WriteString("CUSTOMER INFORMATION:\n")
	fmt.Fprintf(&sb, "Name: %s\n", in.RequesterName)
	fmt.Fprintf(&sb, "Email: %s\n\n", in.RequesterEmail)

	sb.WriteString("EMAIL DOMAIN CLASSIFICATION:\n")
	fmt.Fprintf(&sb, "The customer's email domain appears to be a %s domain.\n\n", ClassifyEmailDomain(in.RequesterEmail))

	if len(in.FormValues) > 0 {
		sb.WriteString("CUSTOM FORM FIELDS:\n")
		keys := make([]string, 0, len(in.FormValues))
		for k := range in.FormValues {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s: %s\n", k, in.FormValues[k])
		}
		sb.WriteString("\n")
	}

	sb.WriteString("CANDIDATE HOSTS:\n")
	for _, c := range in.Candidates {
		fmt.Fprintf(&sb, "- id=%d name=%s\n", c.User.ID, c.User.Name)
	}
	sb.WriteString("\n")

	sb.WriteString("ROUTING INSTRUCTIONS:\n")
	sb.WriteString(in.Instructions)
	sb.WriteString("\n\n")

	sb.WriteString("OUTPUT FORMAT:\n")
	sb.WriteString(`Respond with a single JSON object and nothing else: {"assignee_id": <int>, "reason": <string>}. The assignee_id must be one of the candidate ids listed above.`)
	sb.WriteString("\n")

	return sb.String()
}

// aiDecision is the strict JSON contract expected back from the model.
type aiDecision struct {
	AssigneeID int64  `json:"assignee_id"`
	Reason     string `json:"reason"`
}

// stripCodeFences removes a surrounding markdown code fence, with or
// without a language tag. Models wrap JSON this way often enough that
// parsing without stripping is a lost cause.
func stripCodeFences(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	out = strings.TrimPrefix(out, "```")
	if nl := strings.Index(out, "\n"); nl >= 0 && !strings.Contains(out[:nl], "{") {
		// Drop a language tag like "json" on the opening fence line.
		out = out[nl+1:]
	}
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}

func parseAIDecision(raw string) (aiDecision, error) {
	var dec aiDecision
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &dec); err != nil {
		return aiDecision{}, fmt.Errorf("unparsable AI response: %w", err)
	}
	return dec, nil
}
