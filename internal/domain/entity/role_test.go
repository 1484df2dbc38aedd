package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"student", RoleStudent, false},
		{"admin", RoleAdmin, false},
		{"canteen_staff", RoleCanteenStaff, false},
		{"merchant", roleUnknown, true},
		{"", roleUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownRole)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestRole_CanManageOrders(t *testing.T) {
	assert.True(t, RoleAdmin.CanManageOrders())
	assert.True(t, RoleCanteenStaff.CanManageOrders())
	assert.False(t, RoleStudent.CanManageOrders())
	assert.False(t, Role(0).CanManageOrders())
	assert.False(t, Role(42).CanManageOrders())
}

func TestRole_JSON(t *testing.T) {
	profile := Profile{FullName: "Ada", Role: RoleCanteenStaff}

	data, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"role":"canteen_staff"`)

	var decoded Profile
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, RoleCanteenStaff, decoded.Role)

	_, err = json.Marshal(Profile{})
	assert.Error(t, err)
}
