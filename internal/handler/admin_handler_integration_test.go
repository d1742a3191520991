package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/promptvault/promptvault/internal/handler"
	"github.com/promptvault/promptvault/internal/middleware"
	"github.com/promptvault/promptvault/internal/models"
	"github.com/promptvault/promptvault/internal/repository"
	"github.com/promptvault/promptvault/internal/service"
	"github.com/promptvault/promptvault/internal/testutil"
	"github.com/promptvault/promptvault/internal/utils"
	"github.com/promptvault/promptvault/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const adminTestSecret = "admin-test-secret"

type AdminHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine

	admin       *models.User
	member      *models.User
	adminToken  string
	memberToken string
}

func (s *AdminHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	userRepo := repository.NewUserRepository(s.testDB.DB)
	promptRepo := repository.NewPromptRepository(s.testDB.DB)
	adminService := service.NewAdminService(userRepo, promptRepo)
	adminHandler := handler.NewAdminHandler(adminService)

	s.router = gin.New()
	admin := s.router.Group("/admin", middleware.Auth(adminTestSecret), middleware.RequireAdmin())
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users/summary", adminHandler.UsersSummary)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
}

func (s *AdminHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *AdminHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	var err error
	s.admin, err = testutil.DefaultAdminUser()
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(s.admin).Error)

	s.member, err = testutil.CreateTestUser("member", "member@example.com", "MemberPass123", models.RoleMember)
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(s.member).Error)

	s.adminToken, err = utils.GenerateToken(s.admin, adminTestSecret, time.Hour)
	s.Require().NoError(err)
	s.memberToken, err = utils.GenerateToken(s.member, adminTestSecret, time.Hour)
	s.Require().NoError(err)
}

func (s *AdminHandlerIntegrationTestSuite) seedMember(name, email string) *models.User {
	user, err := testutil.CreateTestUser(name, email, "SeedPass12345", models.RoleMember)
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(user).Error)
	return user
}

func (s *AdminHandlerIntegrationTestSuite) seedPrompt(ownerID uuid.UUID, title string, isPublic bool) *models.Prompt {
	prompt := testutil.CreateTestPrompt(ownerID, title, "prompt body text", isPublic)
	s.Require().NoError(s.testDB.DB.Create(prompt).Error)
	return prompt
}

func (s *AdminHandlerIntegrationTestSuite) TestStatsCountsMembersAndSharedPrompts() {
	s.seedMember("second", "second@example.com")
	s.seedPrompt(s.member.ID, "Shared", true)
	s.seedPrompt(s.member.ID, "Private", false)

	w := testutil.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/stats", nil, s.adminToken)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var stats map[string]interface{}
	testutil.DecodeJSON(s.T(), w, &stats)
	assert.Equal(s.T(), float64(2), stats["userCount"], "admin accounts are excluded")
	assert.Equal(s.T(), float64(1), stats["sharedPromptCount"], "private prompts are excluded")
}

func (s *AdminHandlerIntegrationTestSuite) TestUsersSummaryOrdering() {
	busy := s.seedMember("busy", "busy@example.com")
	s.seedPrompt(busy.ID, "One", true)
	s.seedPrompt(busy.ID, "Two", true)
	s.seedPrompt(s.member.ID, "Solo", true)
	s.seedMember("idle", "idle@example.com")

	w := testutil.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/users/summary", nil, s.adminToken)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var summaries []map[string]interface{}
	testutil.DecodeJSON(s.T(), w, &summaries)
	s.Require().Len(summaries, 3, "admin accounts do not appear")

	assert.Equal(s.T(), "busy@example.com", summaries[0]["email"])
	assert.Equal(s.T(), float64(2), summaries[0]["sharedPromptCount"])
	assert.Equal(s.T(), "member@example.com", summaries[1]["email"])
	assert.Equal(s.T(), "idle@example.com", summaries[2]["email"])
	assert.Equal(s.T(), float64(0), summaries[2]["sharedPromptCount"])
}

func (s *AdminHandlerIntegrationTestSuite) TestDeleteUserCascades() {
	target := s.seedMember("target", "target@example.com")
	owned := s.seedPrompt(target.ID, "Owned by target", true)
	survivor := s.seedPrompt(s.member.ID, "Survivor", true)

	// Target likes the surviving prompt; its count must drop on delete.
	s.Require().NoError(s.testDB.DB.Create(&models.PromptLike{
		PromptID: survivor.ID,
		UserID:   target.ID,
	}).Error)
	s.Require().NoError(s.testDB.DB.Model(&models.Prompt{}).
		Where("id = ?", survivor.ID).Update("likes", 1).Error)

	// Someone else liked the target's prompt; that row must vanish too.
	s.Require().NoError(s.testDB.DB.Create(&models.PromptLike{
		PromptID: owned.ID,
		UserID:   s.member.ID,
	}).Error)

	w := testutil.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/users/"+target.ID.String(), nil, s.adminToken)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	testutil.DecodeJSON(s.T(), w, &response)
	assert.Equal(s.T(), true, response["success"])

	var userCount int64
	s.Require().NoError(s.testDB.DB.Model(&models.User{}).
		Where("id = ?", target.ID).Count(&userCount).Error)
	assert.Zero(s.T(), userCount)

	var promptCount int64
	s.Require().NoError(s.testDB.DB.Model(&models.Prompt{}).
		Where("owner_id = ?", target.ID).Count(&promptCount).Error)
	assert.Zero(s.T(), promptCount, "owned prompts are deleted")

	var likeCount int64
	s.Require().NoError(s.testDB.DB.Model(&models.PromptLike{}).
		Where("prompt_id = ? OR user_id = ?", owned.ID, target.ID).Count(&likeCount).Error)
	assert.Zero(s.T(), likeCount, "like rows referencing the user are gone")

	var refreshed models.Prompt
	s.Require().NoError(s.testDB.DB.First(&refreshed, "id = ?", survivor.ID).Error)
	assert.Equal(s.T(), 0, refreshed.Likes, "like counts are re-derived")
}

func (s *AdminHandlerIntegrationTestSuite) TestDeleteUnknownUser() {
	w := testutil.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/users/"+uuid.NewString(), nil, s.adminToken)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	var response map[string]interface{}
	testutil.DecodeJSON(s.T(), w, &response)
	assert.Equal(s.T(), "User not found", response["message"])
}

func (s *AdminHandlerIntegrationTestSuite) TestDeleteAdminIsRejected() {
	w := testutil.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/users/"+s.admin.ID.String(), nil, s.adminToken)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	testutil.DecodeJSON(s.T(), w, &response)
	assert.Equal(s.T(), "Cannot delete an admin user", response["message"])
}

func (s *AdminHandlerIntegrationTestSuite) TestMemberIsForbidden() {
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/stats"},
		{http.MethodGet, "/admin/users/summary"},
		{http.MethodDelete, "/admin/users/" + uuid.NewString()},
	}

	for _, p := range paths {
		w := testutil.PerformRequest(s.T(), s.router, p.method, p.path, nil, s.memberToken)
		assert.Equal(s.T(), http.StatusForbidden, w.Code, "%s %s", p.method, p.path)

		var response map[string]interface{}
		testutil.DecodeJSON(s.T(), w, &response)
		assert.Equal(s.T(), "Admin only", response["message"])
	}
}

func (s *AdminHandlerIntegrationTestSuite) TestRequiresToken() {
	w := testutil.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/stats", nil, "")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func TestAdminHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerIntegrationTestSuite))
}
