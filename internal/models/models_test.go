package models_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"project-hub/backend/internal/models"

	"github.com/gofrs/uuid"
)

func TestMemberRole_Valid(t *testing.T) {
	tests := []struct {
		role  models.MemberRole
		valid bool
	}{
		{models.RoleAdmin, true},
		{models.RoleMember, true},
		{models.MemberRole("Owner"), false},
		{models.MemberRole("admin"), false},
		{models.MemberRole(""), false},
	}

	for _, tt := range tests {
		if got := tt.role.Valid(); got != tt.valid {
			t.Errorf("MemberRole(%q).Valid() = %v, want %v", tt.role, got, tt.valid)
		}
	}
}

func TestTaskStatus_Valid(t *testing.T) {
	tests := []struct {
		status models.TaskStatus
		valid  bool
	}{
		{models.StatusToDo, true},
		{models.StatusInProgress, true},
		{models.StatusDone, true},
		{models.TaskStatus("Cancelled"), false},
		{models.TaskStatus("done"), false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.valid {
			t.Errorf("TaskStatus(%q).Valid() = %v, want %v", tt.status, got, tt.valid)
		}
	}
}

func TestTaskPriority_Valid(t *testing.T) {
	tests := []struct {
		priority models.TaskPriority
		valid    bool
	}{
		{models.PriorityLow, true},
		{models.PriorityMedium, true},
		{models.PriorityHigh, true},
		{models.TaskPriority("Urgent"), false},
	}

	for _, tt := range tests {
		if got := tt.priority.Valid(); got != tt.valid {
			t.Errorf("TaskPriority(%q).Valid() = %v, want %v", tt.priority, got, tt.valid)
		}
	}
}

func TestUser_PasswordNeverMarshalled(t *testing.T) {
	user := models.User{
		ID:       1,
		Username: "testuser",
		Email:    "test@example.com",
		Password: "hashedpassword",
	}

	data, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("Failed to marshal user: %v", err)
	}

	if strings.Contains(string(data), "hashedpassword") {
		t.Errorf("Password leaked into JSON output: %s", data)
	}
	if strings.Contains(string(data), `"password"`) {
		t.Errorf("Password field present in JSON output: %s", data)
	}
}

func TestUser_FullName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Ada", "Lovelace", "Ada Lovelace"},
		{"Ada", "", "Ada"},
		{"", "Lovelace", "Lovelace"},
		{"", "", ""},
	}

	for _, tt := range tests {
		user := models.User{FirstName: tt.first, LastName: tt.last}
		if got := user.FullName(); got != tt.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestToken_Expired(t *testing.T) {
	token := models.Token{
		ID:           uuid.Must(uuid.NewV4()),
		UserID:       1,
		RefreshToken: uuid.Must(uuid.NewV4()),
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}

	if token.Expired() {
		t.Error("Expected token with future expiry to not be expired")
	}

	token.ExpiresAt = time.Now().Add(-time.Minute)
	if !token.Expired() {
		t.Error("Expected token with past expiry to be expired")
	}
}
