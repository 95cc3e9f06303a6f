package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"project-hub/backend/internal/config"
	"project-hub/backend/internal/handlers"
	"project-hub/backend/internal/models"
	"project-hub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv is a full router over an in-memory database. Auth middleware is
// replaced by one that injects env.callerID.
type testEnv struct {
	t        *testing.T
	db       *gorm.DB
	router   *gin.Engine
	caller   models.User
	callerID uint
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Comment{},
		&models.Token{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	env := &testEnv{t: t, db: db}

	env.caller = models.User{Username: "caller", Email: "caller@example.com", Password: "x"}
	if err := db.Create(&env.caller).Error; err != nil {
		t.Fatalf("Failed to seed caller: %v", err)
	}
	env.callerID = env.caller.ID

	authCfg := config.AuthConfig{
		JWTSecret:       "test-secret",
		Issuer:          "projecthub-backend",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		BCryptCost:      4,
	}

	registerHandler := handlers.NewRegisterHandler(db, services.NewRegisterService(4))
	authHandler := handlers.NewAuthHandler(db, services.NewAuthService(authCfg), 900)
	refreshHandler := handlers.NewRefreshHandler(db, services.NewAuthService(authCfg))
	logoutHandler := handlers.NewLogoutHandler(db, services.NewAuthService(authCfg))
	userHandler := handlers.NewUserHandler(db, services.NewUserService(4, nil))
	projectHandler := handlers.NewProjectHandler(db, services.NewProjectService(nil))
	memberHandler := handlers.NewMemberHandler(db, services.NewMemberService())
	taskHandler := handlers.NewTaskHandler(db, services.NewTaskService(), nil)
	commentHandler := handlers.NewCommentHandler(db, services.NewCommentService())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", env.callerID)
		c.Next()
	})

	api := router.Group("/api")
	api.POST("/users/register", registerHandler.Register)
	api.POST("/users/login", authHandler.Login)
	api.POST("/token", authHandler.Login)
	api.POST("/token/refresh", refreshHandler.Refresh)
	api.POST("/token/logout", logoutHandler.Logout)

	api.GET("/users/:id", userHandler.GetUser)
	api.PUT("/users/:id", userHandler.UpdateUser)
	api.PATCH("/users/:id", userHandler.PatchUser)
	api.DELETE("/users/:id", userHandler.DeleteUser)

	api.GET("/projects", projectHandler.ListProjects)
	api.POST("/projects", projectHandler.CreateProject)
	api.GET("/projects/:project_id", projectHandler.GetProject)
	api.PUT("/projects/:project_id", projectHandler.UpdateProject)
	api.PATCH("/projects/:project_id", projectHandler.PatchProject)
	api.DELETE("/projects/:project_id", projectHandler.DeleteProject)

	api.GET("/projects/:project_id/members", memberHandler.ListMembers)
	api.POST("/projects/:project_id/members", memberHandler.CreateMember)
	api.GET("/members/:id", memberHandler.GetMember)
	api.PUT("/members/:id", memberHandler.UpdateMember)
	api.PATCH("/members/:id", memberHandler.UpdateMember)
	api.DELETE("/members/:id", memberHandler.DeleteMember)

	api.GET("/projects/:project_id/tasks", taskHandler.ListTasks)
	api.POST("/projects/:project_id/tasks", taskHandler.CreateTask)
	api.GET("/tasks/:task_id", taskHandler.GetTask)
	api.PUT("/tasks/:task_id", taskHandler.UpdateTask)
	api.PATCH("/tasks/:task_id", taskHandler.UpdateTask)
	api.DELETE("/tasks/:task_id", taskHandler.DeleteTask)

	api.GET("/tasks/:task_id/comments", commentHandler.ListComments)
	api.POST("/tasks/:task_id/comments", commentHandler.CreateComment)
	api.GET("/comments/:id", commentHandler.GetComment)
	api.PUT("/comments/:id", commentHandler.UpdateComment)
	api.DELETE("/comments/:id", commentHandler.DeleteComment)

	env.router = router
	return env
}

func (env *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	env.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			env.t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func (env *testEnv) seedProject(name string) models.Project {
	env.t.Helper()
	project := models.Project{Name: name, OwnerID: env.callerID}
	if err := env.db.Create(&project).Error; err != nil {
		env.t.Fatalf("Failed to seed project: %v", err)
	}
	return project
}

func (env *testEnv) seedTask(projectID uint, title string) models.Task {
	env.t.Helper()
	task := models.Task{
		Title:     title,
		Status:    models.StatusToDo,
		Priority:  models.PriorityMedium,
		ProjectID: projectID,
		DueDate:   time.Now().Add(24 * time.Hour),
	}
	if err := env.db.Create(&task).Error; err != nil {
		env.t.Fatalf("Failed to seed task: %v", err)
	}
	return task
}

func (env *testEnv) seedUser(username, email string) models.User {
	env.t.Helper()
	user := models.User{Username: username, Email: email, Password: "x"}
	if err := env.db.Create(&user).Error; err != nil {
		env.t.Fatalf("Failed to seed user: %v", err)
	}
	return user
}
