package permission

import (
	"testing"

	"github.com/hylla/assetdex/internal/domain"
)

func TestHasPermissionMatrix(t *testing.T) {
	cases := []struct {
		name   string
		roles  []domain.Role
		entity Entity
		action Action
		want   bool
	}{
		{name: "owner reads custody", roles: []domain.Role{domain.RoleOwner}, entity: EntityCustody, action: ActionRead, want: true},
		{name: "admin deletes asset", roles: []domain.Role{domain.RoleAdmin}, entity: EntityAsset, action: ActionDelete, want: true},
		{name: "base reads asset", roles: []domain.Role{domain.RoleBase}, entity: EntityAsset, action: ActionRead, want: true},
		{name: "base cannot read custody", roles: []domain.Role{domain.RoleBase}, entity: EntityCustody, action: ActionRead, want: false},
		{name: "self service reads custody", roles: []domain.Role{domain.RoleSelfService}, entity: EntityCustody, action: ActionRead, want: true},
		{name: "self service cannot update asset", roles: []domain.Role{domain.RoleSelfService}, entity: EntityAsset, action: ActionUpdate, want: false},
		{name: "mixed roles union", roles: []domain.Role{domain.RoleBase, domain.RoleSelfService}, entity: EntityCustody, action: ActionCheckout, want: true},
		{name: "no roles", roles: nil, entity: EntityAsset, action: ActionRead, want: false},
		{name: "unknown entity", roles: []domain.Role{domain.RoleOwner}, entity: Entity("invoice"), action: ActionRead, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasPermission(tc.roles, tc.entity, tc.action); got != tc.want {
				t.Fatalf("HasPermission(%v, %s, %s) = %t, want %t", tc.roles, tc.entity, tc.action, got, tc.want)
			}
		})
	}
}

func TestCheckerCopiesRoles(t *testing.T) {
	roles := []domain.Role{domain.RoleAdmin}
	can := Checker(roles)
	roles[0] = domain.RoleBase
	if !can(EntityCustody, ActionRead) {
		t.Fatal("expected checker to keep the original role set")
	}
}
