package client

// Action names a capability a screen may gate on. The gate is display
// only; the server remains the authorization boundary.
type Action string

const (
	ActionCreateRequest  Action = "create_request"
	ActionUpdateRequest  Action = "update_request"
	ActionDeleteRequest  Action = "delete_request"
	ActionManageCategory Action = "manage_category"
	ActionManageUsers    Action = "manage_users"
	ActionManageSettings Action = "manage_settings"
	ActionViewDashboard  Action = "view_dashboard"
)

// CanPerform is the single role gate every controller consults. Pure
// function of role and action.
func CanPerform(role Role, action Action) bool {
	switch action {
	case ActionCreateRequest, ActionViewDashboard:
		return role == RoleAdmin || role == RoleTechnician || role == RoleRequester
	case ActionUpdateRequest, ActionDeleteRequest:
		return role == RoleAdmin || role == RoleTechnician
	case ActionManageCategory, ActionManageUsers, ActionManageSettings:
		return role == RoleAdmin
	}
	return false
}
