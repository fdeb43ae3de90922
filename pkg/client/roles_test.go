package client

import "testing"

func TestCanPerform(t *testing.T) {
	tests := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleAdmin, ActionManageUsers, true},
		{RoleAdmin, ActionManageSettings, true},
		{RoleAdmin, ActionUpdateRequest, true},
		{RoleTechnician, ActionUpdateRequest, true},
		{RoleTechnician, ActionDeleteRequest, true},
		{RoleTechnician, ActionManageUsers, false},
		{RoleTechnician, ActionManageSettings, false},
		{RoleRequester, ActionCreateRequest, true},
		{RoleRequester, ActionViewDashboard, true},
		{RoleRequester, ActionUpdateRequest, false},
		{RoleRequester, ActionManageCategory, false},
		{"", ActionViewDashboard, false},
		{"ghost", ActionUpdateRequest, false},
	}

	for _, tt := range tests {
		if got := CanPerform(tt.role, tt.action); got != tt.want {
			t.Errorf("CanPerform(%q, %q) = %v, want %v", tt.role, tt.action, got, tt.want)
		}
	}
}
