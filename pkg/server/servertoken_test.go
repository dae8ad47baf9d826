package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ServerTokenTestSuite tests the token status route.
type ServerTokenTestSuite struct {
	suite.Suite
}

func (s *ServerTokenTestSuite) get(server *Server) map[string]bool {
	req := httptest.NewRequest(http.MethodGet, "/api/figma/server-token", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)
	s.Require().Equal(http.StatusOK, rec.Code)

	var response map[string]bool
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

// TestTokenConfigured tests the positive status.
func (s *ServerTokenTestSuite) TestTokenConfigured() {
	server := newTestServer(testConfig(), &mockGateway{})
	s.True(s.get(server)["has_server_token"])
}

// TestTokenAbsent tests the negative status; the route itself never needs a
// token.
func (s *ServerTokenTestSuite) TestTokenAbsent() {
	cfg := testConfig()
	cfg.FigmaToken = ""
	server := newTestServer(cfg, &mockGateway{})
	s.False(s.get(server)["has_server_token"])
}

// TestTokenNeverEchoed tests that the response carries only the flag.
func (s *ServerTokenTestSuite) TestTokenNeverEchoed() {
	server := newTestServer(testConfig(), &mockGateway{})

	req := httptest.NewRequest(http.MethodGet, "/api/figma/server-token", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	s.NotContains(rec.Body.String(), "test-token")
}

// TestServerTokenSuite runs the server token test suite.
func TestServerTokenSuite(t *testing.T) {
	suite.Run(t, new(ServerTokenTestSuite))
}
