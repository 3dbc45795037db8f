package model

import "testing"

func TestUserPassword(t *testing.T) {
	u := &User{Email: "staff@example.com"}
	if err := u.SetPassword("secret123"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}

	if u.Password == "secret123" {
		t.Error("password must be stored hashed, not in plain text")
	}
	if !u.CheckPassword("secret123") {
		t.Error("correct password rejected")
	}
	if u.CheckPassword("wrong") {
		t.Error("wrong password accepted")
	}
}

func TestUserIsAdmin(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	if !admin.IsAdmin() {
		t.Error("ADMIN role should be admin")
	}

	user := &User{Role: RoleUser}
	if user.IsAdmin() {
		t.Error("USER role should not be admin")
	}
}

func TestUserToResponse(t *testing.T) {
	u := &User{
		Email:    "staff@example.com",
		FullName: "Staff Member",
		Role:     RoleUser,
		IsActive: true,
	}
	u.Password = "hash"

	resp := u.ToResponse()
	if resp.Email != u.Email || resp.FullName != u.FullName || resp.Role != u.Role {
		t.Errorf("response fields mismatch: %+v", resp)
	}
}
