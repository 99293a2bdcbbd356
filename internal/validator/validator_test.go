package validator

import (
	"testing"

	"broadcast_backend/internal/models"
	"broadcast_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBroadcastRequest() dto.BroadcastRequest {
	return dto.BroadcastRequest{
		Title:      "Maintenance",
		Message:    dto.BroadcastMessage{Text: "Down at noon", Format: models.FormatHTML},
		ScopeSite:  models.ScopeSite,
		ActiveFrom: 1591842960,
		Expiry:     1591846560,
		Mode:       models.BroadcastModeModal,
	}
}

func TestValidate_BroadcastRequest_OK(t *testing.T) {
	v := New()
	req := validBroadcastRequest()
	assert.NoError(t, v.Validate(&req))

	// режим не обязателен
	req.Mode = 0
	assert.NoError(t, v.Validate(&req))
}

func TestValidate_BroadcastRequest_Errors(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		mutate func(r *dto.BroadcastRequest)
		field  string
	}{
		{"missing title", func(r *dto.BroadcastRequest) { r.Title = "" }, "title"},
		{"blank title", func(r *dto.BroadcastRequest) { r.Title = "   " }, "title"},
		{"expiry before start", func(r *dto.BroadcastRequest) { r.Expiry = r.ActiveFrom - 1 }, "expiry"},
		{"expiry equal to start", func(r *dto.BroadcastRequest) { r.Expiry = r.ActiveFrom }, "expiry"},
		{"bad mode", func(r *dto.BroadcastRequest) { r.Mode = 7 }, "mode"},
		{"bad scope", func(r *dto.BroadcastRequest) { r.ScopeSite = 5 }, "scopesite"},
		{"bad format", func(r *dto.BroadcastRequest) { r.Message.Format = 3 }, "format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBroadcastRequest()
			tt.mutate(&req)

			err := v.Validate(&req)
			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Errors, tt.field)
		})
	}
}

func TestValidate_QueryUsesFormTag(t *testing.T) {
	v := New()
	err := v.Validate(&dto.BroadcastQuery{})
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "This field is required", vErr.Errors["contextid"])
}

func TestValidate_Role(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(&dto.AssignRoleRequest{UserID: 1, ContextID: 1, Role: models.RoleStudent}))
	assert.Error(t, v.Validate(&dto.AssignRoleRequest{UserID: 1, ContextID: 1, Role: "owner"}))
}
