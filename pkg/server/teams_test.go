package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"figdash/pkg/models"
)

// TeamsTestSuite tests the team discovery route.
type TeamsTestSuite struct {
	suite.Suite
	server *Server
	mock   *mockGateway
}

// SetupTest runs before each test.
func (s *TeamsTestSuite) SetupTest() {
	s.mock = &mockGateway{teamDetail: &models.TeamDetail{
		ID:           "123456",
		ProjectCount: 2,
		TotalFiles:   7,
		Projects: []models.ProjectFileCount{
			{ID: "p1", Name: "Website", FileCount: 5},
			{ID: "p2", Name: "App", FileCount: 2},
		},
	}}
	s.server = newTestServer(testConfig(), s.mock)
}

func (s *TeamsTestSuite) get(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.server.echo.ServeHTTP(rec, req)
	return rec
}

// TestDiscoverConfiguredTeam tests the default path using the configured
// team id.
func (s *TeamsTestSuite) TestDiscoverConfiguredTeam() {
	rec := s.get("/api/figma/teams")

	s.Equal(http.StatusOK, rec.Code)
	var response teamsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(1, response.TotalTeams)
	s.Require().Len(response.Teams, 1)
	s.Equal("123456", response.Teams[0].ID)
	s.Equal(2, response.Teams[0].ProjectCount)
	s.Equal(7, response.Teams[0].TotalFiles)
	s.Require().Len(response.Teams[0].Projects, 2)
	s.Equal(5, response.Teams[0].Projects[0].FileCount)
}

// TestDiscoverExplicitTeam tests that a team_id query overrides the
// configured team.
func (s *TeamsTestSuite) TestDiscoverExplicitTeam() {
	s.mock.teamDetail = nil

	rec := s.get("/api/figma/teams?team_id=777")

	s.Equal(http.StatusOK, rec.Code)
	var response teamsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Require().Len(response.Teams, 1)
	s.Equal("777", response.Teams[0].ID)
}

// TestDiscoverNoTeamsKnown tests the empty result when nothing is
// configured.
func (s *TeamsTestSuite) TestDiscoverNoTeamsKnown() {
	cfg := testConfig()
	cfg.TeamID = ""
	server := newTestServer(cfg, s.mock)

	req := httptest.NewRequest(http.MethodGet, "/api/figma/teams", nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	var response teamsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(0, response.TotalTeams)
	s.EqualValues(0, s.mock.count())
}

// TestDiscoverTeamFailureKeptWithZeroCounts tests that an inaccessible team
// still appears, zeroed and annotated.
func (s *TeamsTestSuite) TestDiscoverTeamFailureKeptWithZeroCounts() {
	s.mock.teamDetail = nil
	s.mock.err = errors.New("team locked")

	rec := s.get("/api/figma/teams")

	s.Equal(http.StatusOK, rec.Code)
	var response teamsResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Require().Len(response.Teams, 1)
	s.Equal(0, response.Teams[0].TotalFiles)
	s.Equal("could not access team details", response.Teams[0].Error)
}

// TestTeamsSuite runs the teams test suite.
func TestTeamsSuite(t *testing.T) {
	suite.Run(t, new(TeamsTestSuite))
}
