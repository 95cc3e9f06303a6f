package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"project-hub/backend/internal/models"
)

func TestCreateProject_OwnerFromCaller(t *testing.T) {
	env := newTestEnv(t)

	w := env.do("POST", "/api/projects", map[string]interface{}{
		"name":        "Apollo",
		"description": "Launch prep",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	body := decode(t, w)
	owner, ok := body["owner"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected nested owner, got %v", body["owner"])
	}
	if uint(owner["id"].(float64)) != env.callerID {
		t.Errorf("Expected owner %d, got %v", env.callerID, owner["id"])
	}
}

func TestCreateProject_MissingName(t *testing.T) {
	env := newTestEnv(t)

	w := env.do("POST", "/api/projects", map[string]interface{}{
		"description": "no name",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	fields := decode(t, w)["errors"].(map[string]interface{})
	if fields["name"] != "This field is required." {
		t.Errorf("Expected name error, got %v", fields)
	}
}

func TestGetProject_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do("GET", "/api/projects/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
	if decode(t, w)["detail"] != "Project not found" {
		t.Errorf("Expected 'Project not found', got %s", w.Body.String())
	}
}

func TestPatchProject_NameOnly(t *testing.T) {
	env := newTestEnv(t)
	project := env.seedProject("Apollo")

	w := env.do("PATCH", fmt.Sprintf("/api/projects/%d", project.ID), map[string]interface{}{
		"name": "Apollo 11",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if decode(t, w)["name"] != "Apollo 11" {
		t.Errorf("Expected renamed project, got %s", w.Body.String())
	}
}

func TestPatchProject_BlankName(t *testing.T) {
	env := newTestEnv(t)
	project := env.seedProject("Apollo")

	w := env.do("PATCH", fmt.Sprintf("/api/projects/%d", project.ID), map[string]interface{}{
		"name": "",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestListProjects_Unscoped(t *testing.T) {
	env := newTestEnv(t)
	env.seedProject("Apollo")

	stranger := env.seedUser("stranger", "stranger@example.com")
	theirs := models.Project{Name: "Gemini", OwnerID: stranger.ID}
	if err := env.db.Create(&theirs).Error; err != nil {
		t.Fatalf("Failed to seed project: %v", err)
	}

	w := env.do("GET", "/api/projects", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if got := len(decodeList(t, w)); got != 2 {
		t.Errorf("Expected all projects regardless of owner, got %d", got)
	}
}

func TestDeleteProject_NoContent(t *testing.T) {
	env := newTestEnv(t)
	project := env.seedProject("Apollo")
	env.seedTask(project.ID, "Fuel check")

	w := env.do("DELETE", fmt.Sprintf("/api/projects/%d", project.ID), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status %d, got %d", http.StatusNoContent, w.Code)
	}

	after := env.do("GET", fmt.Sprintf("/api/projects/%d", project.ID), nil)
	if after.Code != http.StatusNotFound {
		t.Errorf("Expected status %d after delete, got %d", http.StatusNotFound, after.Code)
	}
}
