// Package permission maps organization roles to entity/action grants.
package permission

import (
	"slices"

	"github.com/hylla/assetdex/internal/domain"
)

// Entity identifies a permission-guarded resource.
type Entity string

// Entity values.
const (
	EntityAsset       Entity = "asset"
	EntityCustody     Entity = "custody"
	EntityCategory    Entity = "category"
	EntityLocation    Entity = "location"
	EntityKit         Entity = "kit"
	EntityTag         Entity = "tag"
	EntityCustomField Entity = "customField"
	EntityReminder    Entity = "reminder"
	EntityQR          Entity = "qr"
)

// Action identifies an operation on an entity.
type Action string

// Action values.
const (
	ActionRead     Action = "read"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionCheckout Action = "checkout"
)

var allActions = []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionCheckout}

var allEntities = []Entity{
	EntityAsset,
	EntityCustody,
	EntityCategory,
	EntityLocation,
	EntityKit,
	EntityTag,
	EntityCustomField,
	EntityReminder,
	EntityQR,
}

// matrix lists grants per role; OWNER and ADMIN are handled as full access.
var matrix = map[domain.Role]map[Entity][]Action{
	domain.RoleBase: {
		EntityAsset:       {ActionRead},
		EntityCategory:    {ActionRead},
		EntityLocation:    {ActionRead},
		EntityKit:         {ActionRead},
		EntityTag:         {ActionRead},
		EntityCustomField: {ActionRead},
		EntityReminder:    {ActionRead},
		EntityQR:          {ActionRead},
	},
	domain.RoleSelfService: {
		EntityAsset:    {ActionRead},
		EntityCustody:  {ActionRead, ActionCheckout},
		EntityCategory: {ActionRead},
		EntityLocation: {ActionRead},
		EntityKit:      {ActionRead},
		EntityTag:      {ActionRead},
		EntityQR:       {ActionRead},
	},
}

// HasPermission reports whether any of the roles grants action on entity.
func HasPermission(roles []domain.Role, entity Entity, action Action) bool {
	for _, role := range roles {
		switch role {
		case domain.RoleOwner, domain.RoleAdmin:
			if slices.Contains(allEntities, entity) && slices.Contains(allActions, action) {
				return true
			}
		default:
			if slices.Contains(matrix[role][entity], action) {
				return true
			}
		}
	}
	return false
}

// Checker adapts HasPermission to a predicate bound to one role set.
func Checker(roles []domain.Role) func(Entity, Action) bool {
	roles = slices.Clone(roles)
	return func(entity Entity, action Action) bool {
		return HasPermission(roles, entity, action)
	}
}
