package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite tests configuration loading.
type ConfigTestSuite struct {
	suite.Suite
}

// TestDefaults tests that defaults apply with an empty environment.
func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := Load("does-not-exist.env")
	s.Require().NoError(err)

	s.Equal("8080", cfg.Port)
	s.Equal("https://api.figma.com/v1", cfg.FigmaAPIBase)
	s.Equal(15*time.Second, cfg.RequestTimeout)
	s.Equal(5*time.Minute, cfg.AutoSyncInterval)
	s.Equal(500*time.Millisecond, cfg.BackfillDelay)
	s.Equal(5, cfg.SyncLogSize)
	s.Equal(2, cfg.RetryMax)
	s.False(cfg.Debug)
}

// TestEnvOverrides tests FIGDASH_* variables override defaults.
func (s *ConfigTestSuite) TestEnvOverrides() {
	s.T().Setenv("FIGDASH_PORT", "9090")
	s.T().Setenv("FIGDASH_FIGMA_TOKEN", "figd_test")
	s.T().Setenv("FIGDASH_AUTO_SYNC_INTERVAL", "90s")

	cfg, err := Load("does-not-exist.env")
	s.Require().NoError(err)

	s.Equal("9090", cfg.Port)
	s.Equal("figd_test", cfg.FigmaToken)
	s.Equal(90*time.Second, cfg.AutoSyncInterval)
	s.True(cfg.HasToken())
}

// TestHasToken tests token presence detection.
func (s *ConfigTestSuite) TestHasToken() {
	cfg := &Config{}
	s.False(cfg.HasToken())
	cfg.FigmaToken = "figd_abc"
	s.True(cfg.HasToken())
}

// TestConfigSuite runs the config test suite.
func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
