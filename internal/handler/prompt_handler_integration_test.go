package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
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

const promptTestSecret = "prompt-test-secret"

type PromptHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	router *gin.Engine

	alice      *models.User
	bob        *models.User
	aliceToken string
	bobToken   string
}

func (s *PromptHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())

	promptRepo := repository.NewPromptRepository(s.testDB.DB)
	promptService := service.NewPromptService(promptRepo, service.NewKeywordSuggester())
	promptHandler := handler.NewPromptHandler(promptService)

	s.router = gin.New()
	protected := s.router.Group("/", middleware.Auth(promptTestSecret))
	protected.GET("/prompts", promptHandler.List)
	protected.POST("/prompts", promptHandler.Create)
	protected.GET("/prompts/:id", promptHandler.Get)
	protected.PUT("/prompts/:id", promptHandler.Update)
	protected.DELETE("/prompts/:id", promptHandler.Delete)
}

func (s *PromptHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

func (s *PromptHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)

	var err error
	s.alice, err = testutil.CreateTestUser("alice", "alice@example.com", "AlicePass123", models.RoleMember)
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(s.alice).Error)

	s.bob, err = testutil.CreateTestUser("bob", "bob@example.com", "BobPass123", models.RoleMember)
	s.Require().NoError(err)
	s.Require().NoError(s.testDB.DB.Create(s.bob).Error)

	s.aliceToken, err = utils.GenerateToken(s.alice, promptTestSecret, time.Hour)
	s.Require().NoError(err)
	s.bobToken, err = utils.GenerateToken(s.bob, promptTestSecret, time.Hour)
	s.Require().NoError(err)
}

func (s *PromptHandlerIntegrationTestSuite) createPrompt(token string, body map[string]interface{}) map[string]interface{} {
	w := testutil.PerformRequest(s.T(), s.router, http.MethodPost, "/prompts", body, token)
	s.Require().Equal(http.StatusCreated, w.Code, "create failed: %s", w.Body.String())

	var prompt map[string]interface{}
	testutil.DecodeJSON(s.T(), w, &prompt)
	return prompt
}

func (s *PromptHandlerIntegrationTestSuite) TestCreateWithExplicitTags() {
	prompt := s.createPrompt(s.aliceToken, map[string]interface{}{
		"title": "Greeting",
		"text":  "Hello world prompt",
		"tags":  []string{"demo", "intro"},
	})

	assert.Equal(s.T(), "Greeting", prompt["title"])
	assert.Equal(s.T(), s.alice.ID.String(), prompt["owner"])
	assert.Equal(s.T(), []interface{}{"demo", "intro"}, prompt["tags"])
	assert.Equal(s.T(), false, prompt["isPublic"])
	assert.Equal(s.T(), float64(0), prompt["likes"])
	assert.Equal(s.T(), []interface{}{}, prompt["likedBy"])
}

func (s *PromptHandlerIntegrationTestSuite) TestCreateSuggestsTags() {
	prompt := s.createPrompt(s.aliceToken, map[string]interface{}{
		"title": "Helpers",
		"text":  "Generate a React component backed by a Node API and a SQL query",
	})

	assert.Equal(s.T(), []interface{}{"react", "nodejs", "sql"}, prompt["tags"])
}

func (s *PromptHandlerIntegrationTestSuite) TestCreateNoTriggerKeywordsYieldsEmptyTags() {
	prompt := s.createPrompt(s.aliceToken, map[string]interface{}{
		"title": "Greeting",
		"text":  "Hello world prompt",
	})

	assert.Equal(s.T(), []interface{}{}, prompt["tags"])
}

func (s *PromptHandlerIntegrationTestSuite) TestCreateValidation() {
	testCases := []struct {
		name string
		body map[string]interface{}
	}{
		{"Short title", map[string]interface{}{"title": "a", "text": "valid text"}},
		{"Short text", map[string]interface{}{"title": "Valid", "text": "abcd"}},
		{"Missing everything", map[string]interface{}{}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			w := testutil.PerformRequest(s.T(), s.router, http.MethodPost, "/prompts", tc.body, s.aliceToken)
			assert.Equal(s.T(), http.StatusBadRequest, w.Code)
		})
	}
}

func (s *PromptHandlerIntegrationTestSuite) TestListIsOwnerScoped() {
	s.createPrompt(s.aliceToken, map[string]interface{}{"title": "Alice one", "text": "alpha text"})
	s.createPrompt(s.aliceToken, map[string]interface{}{"title": "Alice two", "text": "beta text"})
	s.createPrompt(s.bobToken, map[string]interface{}{"title": "Bob one", "text": "gamma text"})

	w := testutil.PerformRequest(s.T(), s.router, http.MethodGet, "/prompts", nil, s.aliceToken)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var prompts []map[string]interface{}
	testutil.DecodeJSON(s.T(), w, &prompts)
	assert.Len(s.T(), prompts, 2)
	for _, p := range prompts {
		assert.Equal(s.T(), s.alice.ID.String(), p["owner"])
	}
}

func (s *PromptHandlerIntegrationTestSuite) TestListFilters() {
	s.createPrompt(s.aliceToken, map[string]interface{}{
		"title": "SQL helper", "text": "Write a SQL join", "tags": []string{"sql"},
		"category": "coding", "folder": "work",
	})
	s.createPrompt(s.aliceToken, map[string]interface{}{
		"title": "Poem", "text": "Write a short poem", "tags": []string{"writing"},
		"category": "creative", "folder": "personal",
	})

	testCases := []struct {
		name  string
		query string
		count int
		title string
	}{
		{"By tag", "?tag=sql", 1, "SQL helper"},
		{"By folder", "?folder=personal", 1, "Poem"},
		{"By category", "?category=coding", 1, "SQL helper"},
		{"By text search", "?q=poem", 1, "Poem"},
		{"Search matches title", "?q=sql", 1, "SQL helper"},
		{"No match", "?q=nonexistent", 0, ""},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			w := testutil.PerformRequest(s.T(), s.router, http.MethodGet, "/prompts"+tc.query, nil, s.aliceToken)
			assert.Equal(s.T(), http.StatusOK, w.Code)

			var prompts []map[string]interface{}
			testutil.DecodeJSON(s.T(), w, &prompts)
			assert.Len(s.T(), prompts, tc.count)
			if tc.count == 1 {
				assert.Equal(s.T(), tc.title, prompts[0]["title"])
			}
		})
	}
}

func (s *PromptHandlerIntegrationTestSuite) TestListOrdersByMostRecentlyUpdated() {
	first := s.createPrompt(s.aliceToken, map[string]interface{}{"title": "First", "text": "first text"})
	s.createPrompt(s.aliceToken, map[string]interface{}{"title": "Second", "text": "second text"})

	// Editing the older prompt moves it to the front
	update := map[string]interface{}{"description": "edited"}
	w := testutil.PerformRequest(s.T(), s.router, http.MethodPut, "/prompts/"+first["id"].(string), update, s.aliceToken)
	s.Require().Equal(http.StatusOK, w.Code)

	w = testutil.PerformRequest(s.T(), s.router, http.MethodGet, "/prompts", nil, s.aliceToken)
	var prompts []map[string]interface{}
	testutil.DecodeJSON(s.T(), w, &prompts)
	s.Require().Len(prompts, 2)
	assert.Equal(s.T(), "First", prompts[0]["title"])
}

func (s *PromptHandlerIntegrationTestSuite) TestGetOtherUsersPromptIsNotFound() {
	prompt := s.createPrompt(s.aliceToken, map[string]interface{}{"title": "Private", "text": "alice only"})

	// Owner sees it
	w := testutil.PerformRequest(s.T(), s.router, http.MethodGet, "/prompts/"+prompt["id"].(string), nil, s.aliceToken)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	// Bob gets the same 404 as for a missing id
	w = testutil.PerformRequest(s.T(), s.router, http.MethodGet, "/prompts/"+prompt["id"].(string), nil, s.bobToken)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	var response map[string]interface{}
	testutil.DecodeJSON(s.T(), w, &response)
	assert.Equal(s.T(), "Not found", response["message"])
}

func (s *PromptHandlerIntegrationTestSuite) TestUpdatePartialFields() {
	prompt := s.createPrompt(s.aliceToken, map[string]interface{}{
		"title": "Original", "text": "original text", "tags": []string{"old"},
	})

	update := map[string]interface{}{
		"title": "Renamed",
		"tags":  []string{"new", "fresh"},
	}
	w := testutil.PerformRequest(s.T(), s.router, http.MethodPut, "/prompts/"+prompt["id"].(string), update, s.aliceToken)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var updated map[string]interface{}
	testutil.DecodeJSON(s.T(), w, &updated)
	assert.Equal(s.T(), "Renamed", updated["title"])
	assert.Equal(s.T(), "original text", updated["text"], "unsent fields stay unchanged")
	assert.Equal(s.T(), []interface{}{"new", "fresh"}, updated["tags"])
}

func (s *PromptHandlerIntegrationTestSuite) TestUpdateByNonOwnerIsNotFound() {
	prompt := s.createPrompt(s.aliceToken, map[string]interface{}{"title": "Mine", "text": "alice text"})

	update := map[string]interface{}{"title": "Stolen"}
	w := testutil.PerformRequest(s.T(), s.router, http.MethodPut, "/prompts/"+prompt["id"].(string), update, s.bobToken)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *PromptHandlerIntegrationTestSuite) TestDeleteIsIdempotentInEffect() {
	prompt := s.createPrompt(s.aliceToken, map[string]interface{}{"title": "Doomed", "text": "delete me"})
	id := prompt["id"].(string)

	w := testutil.PerformRequest(s.T(), s.router, http.MethodDelete, "/prompts/"+id, nil, s.aliceToken)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	testutil.DecodeJSON(s.T(), w, &response)
	assert.Equal(s.T(), true, response["success"])

	// Repeated delete of an already-gone id yields the same NotFound
	w = testutil.PerformRequest(s.T(), s.router, http.MethodDelete, "/prompts/"+id, nil, s.aliceToken)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *PromptHandlerIntegrationTestSuite) TestRequiresToken() {
	w := testutil.PerformRequest(s.T(), s.router, http.MethodGet, "/prompts", nil, "")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w = testutil.PerformRequest(s.T(), s.router, http.MethodGet, "/prompts", nil, "garbage-token")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func TestPromptHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PromptHandlerIntegrationTestSuite))
}
