package access

import "testing"

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role Role
		perm Permission
		want bool
	}{
		{RoleSuperAdmin, PermDelete, true},
		{RoleSuperAdmin, PermAdmin, true},
		{RoleAdmin, PermPublish, true},
		{RoleAdmin, PermDelete, false},
		{RoleAdmin, PermAdmin, false},
		{RoleModerator, PermEdit, true},
		{RoleModerator, PermDelete, false},
		{RoleModerator, PermPublish, false},
		{RoleViewer, PermView, true},
		{RoleViewer, PermEdit, false},
		{Role(""), PermView, false},
		{Role("unknown"), PermView, false},
	}

	for _, tt := range tests {
		if got := HasPermission(tt.role, tt.perm); got != tt.want {
			t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.perm, got, tt.want)
		}
	}
}

func TestDeleteOnlyForSuperAdmin(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleModerator, RoleViewer, Role("")} {
		if HasPermission(role, PermDelete) {
			t.Errorf("role %q must not carry delete", role)
		}
	}
	if !HasPermission(RoleSuperAdmin, PermDelete) {
		t.Error("super_admin must carry delete")
	}
}

func TestIsAdminEligible(t *testing.T) {
	eligible := []Role{RoleSuperAdmin, RoleAdmin, RoleModerator}
	for _, role := range eligible {
		if !IsAdminEligible(role) {
			t.Errorf("role %q should be admin eligible", role)
		}
	}
	for _, role := range []Role{RoleViewer, Role(""), Role("guest")} {
		if IsAdminEligible(role) {
			t.Errorf("role %q should not be admin eligible", role)
		}
	}
}

func TestPermissionsCopy(t *testing.T) {
	perms := Permissions(RoleViewer)
	if len(perms) != 1 || perms[0] != PermView {
		t.Fatalf("unexpected viewer permissions: %v", perms)
	}
	perms[0] = PermAdmin
	if HasPermission(RoleViewer, PermAdmin) {
		t.Error("mutating the returned slice must not affect the table")
	}
}
