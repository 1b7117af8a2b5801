//go:build integration_test || all_tests

package test

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/2beens/gymstats/internal/gymstats"
	"github.com/2beens/gymstats/internal/gymstats/coach"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestRedisChatHistory_KeepsLastTurns() {
	ctx := context.Background()
	userID := gofakeit.UUID()
	chat := coach.NewRedisChatHistory(s.redisClient, 2)

	recent, err := chat.Recent(ctx, userID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), recent)

	for i := 1; i <= 3; i++ {
		require.NoError(s.T(), chat.Append(ctx, userID,
			coach.Message{Role: coach.RoleUser, Content: fmt.Sprintf("question %d", i)},
			coach.Message{Role: coach.RoleAssistant, Content: fmt.Sprintf("answer %d", i)},
		))
	}

	recent, err = chat.Recent(ctx, userID)
	require.NoError(s.T(), err)
	require.Len(s.T(), recent, 4)
	assert.Equal(s.T(), "question 2", recent[0].Content)
	assert.Equal(s.T(), coach.RoleUser, recent[0].Role)
	assert.Equal(s.T(), "answer 3", recent[3].Content)
	assert.Equal(s.T(), coach.RoleAssistant, recent[3].Role)

	ttl, err := s.redisClient.TTL(ctx, "gymstats-coach-chat||"+userID).Result()
	require.NoError(s.T(), err)
	assert.True(s.T(), ttl > 0, "ttl: %s", ttl)
}

func (s *IntegrationTestSuite) TestCoach_DisabledAndRateLimited() {
	ctx := context.Background()
	ask := gymstats.AskRequest{UserID: gofakeit.UUID(), Question: "how is my bench going?"}

	for i := 0; i < coachRateLimitMin; i++ {
		status, body := s.doRequest(ctx, "POST", "/gymstats/coach/ask", ask)
		assert.Equal(s.T(), http.StatusServiceUnavailable, status, string(body))
	}

	status, body := s.doRequest(ctx, "POST", "/gymstats/coach/ask", ask)
	assert.Equal(s.T(), http.StatusTooManyRequests, status)
	assert.True(s.T(), strings.HasPrefix(string(body), "retry after"), string(body))

	// the rate limit is scoped to the coach routes
	status, _ = s.doRequest(ctx, "GET", "/gymstats/users/"+ask.UserID+"/catalog", nil)
	assert.Equal(s.T(), http.StatusOK, status)
}

type mcpSecretTransport struct {
	secret string
}

func (t *mcpSecretTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-MCP-Secret", t.secret)
	return http.DefaultTransport.RoundTrip(r)
}

func (s *IntegrationTestSuite) TestMcpEndpoint() {
	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{Name: "integration-test", Version: "1.0.0"}, nil)
	clientSession, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: serverEndpoint + "/mcp",
		HTTPClient: &http.Client{
			Transport: &mcpSecretTransport{secret: "integration-mcp-secret"},
		},
		MaxRetries: -1,
	}, nil)
	require.NoError(s.T(), err)
	defer clientSession.Close()

	tools, err := clientSession.ListTools(ctx, nil)
	require.NoError(s.T(), err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	// postgres backend exposes the schema tool as well
	assert.ElementsMatch(s.T(), []string{
		"get_gymstats_context",
		"get_exercise_progress",
		"get_daily_stats",
		"get_exercise_catalog",
		"get_recent_history",
	}, names)

	res, err := clientSession.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_gymstats_context",
		Arguments: map[string]any{},
	})
	require.NoError(s.T(), err)
	require.False(s.T(), res.IsError)
	require.NotEmpty(s.T(), res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(s.T(), ok)
	assert.Contains(s.T(), text.Text, "workout_session")
	assert.Contains(s.T(), text.Text, "exercises")
}
