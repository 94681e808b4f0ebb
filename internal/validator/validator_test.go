package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type planPayload struct {
	Plan         string `json:"plan" validate:"required,subscription_plan"`
	BillingCycle string `json:"billing_cycle" validate:"omitempty,billing_cycle"`
	Status       string `json:"status" validate:"omitempty,case_status"`
}

func TestValidate_DomainRules(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&planPayload{Plan: "Pro", BillingCycle: "monthly", Status: "on_hold"}))

	err := v.Validate(&planPayload{Plan: "Platinum", BillingCycle: "weekly", Status: "archived"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "plan")
	assert.Contains(t, vErr.Errors, "billing_cycle")
	assert.Contains(t, vErr.Errors, "status")
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&planPayload{})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	// The Go field is Plan; the reported name is the JSON tag.
	assert.Contains(t, vErr.Errors, "plan")
	assert.NotContains(t, vErr.Errors, "Plan")
	assert.Equal(t, "is required", vErr.Errors["plan"])
}
