package routing

import (
	"strings"
	"testing"

	"slotwise/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyEmailDomain(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"dana@gmail.com", "public"},
		{"dana@GMAIL.com", "public"},
		{"dana@icloud.com", "public"},
		{"dana@acme.io", "business"},
		{"dana@corp.example.com", "business"},
		{"not-an-email", "unknown"},
		{"trailing@", "unknown"},
		{"", "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyEmailDomain(tt.email), tt.email)
	}
}

func TestBuildRoutingPrompt_Sections(t *testing.T) {
	prompt := BuildRoutingPrompt(PromptInput{
		RequesterName:  "Dana",
		RequesterEmail: "dana@acme.io",
		FormValues:     map[string]string{"company_size": "250", "budget": "10k"},
		Candidates: []models.Assignee{
			{User: models.User{ID: 1, Name: "Alice"}, Role: models.RoleHost},
			{User: models.User{ID: 2, Name: "Bob"}, Role: models.RoleHost},
		},
		Instructions: "Enterprise leads go to Alice.",
	})

	for _, section := range []string{
		"CUSTOMER INFORMATION:",
		"EMAIL DOMAIN CLASSIFICATION:",
		"CUSTOM FORM FIELDS:",
		"CANDIDATE HOSTS:",
		"ROUTING INSTRUCTIONS:",
		"OUTPUT FORMAT:",
	} {
		assert.Contains(t, prompt, section)
	}

	assert.Contains(t, prompt, "Name: Dana")
	assert.Contains(t, prompt, "business domain")
	assert.Contains(t, prompt, "- id=1 name=Alice")
	assert.Contains(t, prompt, "- id=2 name=Bob")
	assert.Contains(t, prompt, "Enterprise leads go to Alice.")
	assert.Contains(t, prompt, `{"assignee_id": <int>, "reason": <string>}`)

	// Form fields come out in sorted key order regardless of map iteration.
	assert.Less(t, strings.Index(prompt, "budget: 10k"), strings.Index(prompt, "company_size: 250"))
}

func TestBuildRoutingPrompt_NoFormFields(t *testing.T) {
	prompt := BuildRoutingPrompt(PromptInput{
		RequesterName:  "Dana",
		RequesterEmail: "dana@gmail.com",
		Candidates:     []models.Assignee{{User: models.User{ID: 1, Name: "Alice"}}},
		Instructions:   "anything",
	})
	assert.NotContains(t, prompt, "CUSTOM FORM FIELDS:")
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"assignee_id": 1}`, `{"assignee_id": 1}`},
		{"plain fence", "```\n{\"assignee_id\": 1}\n```", `{"assignee_id": 1}`},
		{"json fence", "```json\n{\"assignee_id\": 1}\n```", `{"assignee_id": 1}`},
		{"surrounding whitespace", "  \n```json\n{\"assignee_id\": 1}\n```\n  ", `{"assignee_id": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}

func TestParseAIDecision(t *testing.T) {
	dec, err := parseAIDecision("```json\n{\"assignee_id\": 7, \"reason\": \"seniority\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, int64(7), dec.AssigneeID)
	assert.Equal(t, "seniority", dec.Reason)

	_, err = parseAIDecision("Bob, because he knows the product.")
	assert.Error(t, err)

	_, err = parseAIDecision("")
	assert.Error(t, err)
}
