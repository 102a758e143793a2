package model

import "testing"

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	if got := NormalizeEmail("  Ada@Example.COM "); got != "ada@example.com" {
		t.Errorf("NormalizeEmail() = %q, want ada@example.com", got)
	}
}

func TestUser_Roles(t *testing.T) {
	t.Parallel()

	admin := &User{Role: RoleAdmin}
	user := &User{Role: RoleUser}

	if !admin.IsAdmin() {
		t.Error("admin should be admin")
	}
	if user.IsAdmin() {
		t.Error("user should not be admin")
	}
	if !IsValidRole("user") || IsValidRole("root") {
		t.Error("IsValidRole mismatch")
	}
}

func TestEventPatch_Apply(t *testing.T) {
	t.Parallel()

	e := &Event{Title: "Maker Fair", Location: "Berlin", Status: EventStatusUpcoming}
	status := EventStatusCancelled
	EventPatch{Status: &status}.Apply(e)

	if e.Status != EventStatusCancelled {
		t.Errorf("Status = %s, want cancelled", e.Status)
	}
	if e.Title != "Maker Fair" || e.Location != "Berlin" {
		t.Errorf("untouched fields changed: %+v", e)
	}
}
