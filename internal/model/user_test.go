package model

import "testing"

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role Role
		cap  Capability
		want bool
	}{
		{RoleAdmin, CapUpload, true},
		{RoleAdmin, CapProposeVersion, true},
		{RoleAdmin, CapApprove, true},
		{RoleAdmin, CapDelete, true},
		{RoleEditor, CapUpload, true},
		{RoleEditor, CapProposeVersion, true},
		{RoleEditor, CapApprove, false},
		{RoleEditor, CapDelete, false},
		{RoleViewer, CapUpload, false},
		{RoleViewer, CapProposeVersion, false},
		{RoleViewer, CapApprove, false},
		{RoleViewer, CapDelete, false},
		{Role("superuser"), CapApprove, false},
		{Role(""), CapUpload, false},
	}

	for _, tt := range tests {
		if got := tt.role.Can(tt.cap); got != tt.want {
			t.Errorf("Role(%q).Can(%d) = %v, want %v", tt.role, tt.cap, got, tt.want)
		}
	}
}
