package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/breathe/internal/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	home := t.TempDir()
	cfg, err := config.Load(home, filepath.Join(home, "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "breathe.db"), cfg.DatabasePath)
	assert.Equal(t, "info", cfg.Logging.Level)

	cc := cfg.CueConfig()
	assert.Equal(t, 0.3, cc.CueLevel)
	assert.Equal(t, 0.2, cc.StoryLevel)
	assert.Equal(t, 2*time.Second, cc.FallbackDelay)
	assert.Equal(t, 100*time.Millisecond, cc.RestorePadding)
}

func TestLoadOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
audio:
  cue_level: 0.4
  fallback_delay: 3s
logging:
  level: debug
`), 0644))

	cfg, err := config.Load(home, path)
	require.NoError(t, err)
	assert.Equal(t, 0.4, cfg.Audio.CueLevel)
	assert.Equal(t, 0.2, cfg.Audio.StoryLevel, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 3*time.Second, cfg.CueConfig().FallbackDelay)
}

func TestLoadRejectsInvalid(t *testing.T) {
	home := t.TempDir()
	cases := map[string]string{
		"volume":   "audio:\n  cue_level: 1.5\n",
		"duration": "audio:\n  story_grace: soon\n",
		"level":    "logging:\n  level: loud\n",
		"yaml":     "audio: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(home, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			_, err := config.Load(home, path)
			assert.Error(t, err)
		})
	}
}

func TestEnvOverride(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("home: "+home+"\n"), 0644))
	t.Setenv("BREATHE_DB", "/tmp/other.db")

	cfg, err := config.Load(home, path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.DatabasePath)
}

func TestSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "nested", "config.yaml")
	cfg := config.DefaultConfig(home)
	cfg.Audio.BackgroundVolume = 0.55
	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(home, path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
