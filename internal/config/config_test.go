package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Parallel()
	svc := NewConfigService(filepath.Join(t.TempDir(), "config.toml"))
	cfg, err := svc.Load()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	svc := NewConfigService(path)
	require.Equal(t, path, svc.Path())

	cfg := DefaultConfig()
	cfg.DBPath = "/tmp/cm-test.db"
	cfg.StoreTimeout = Duration{750 * time.Millisecond}
	cfg.UI.ShowTags = false
	require.NoError(t, svc.Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "version = 1")
	require.Contains(t, string(data), "750ms")

	loaded, err := svc.Load()
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 1\nshell = \"/bin/zsh\"\n[log]\nlevel = \"debug\"\n"), 0644))

	cfg, err := NewConfigService(path).Load()
	require.NoError(t, err)
	require.Equal(t, "/bin/zsh", cfg.ShellPath())
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, DefaultConfig().UI, cfg.UI)
	require.Equal(t, 2*time.Second, cfg.StoreTimeout.Duration)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"version":  "version = 2\n",
		"timeout":  "version = 1\nstore_timeout = \"soon\"\n",
		"negative": "version = 1\nstore_timeout = \"-1s\"\n",
		"tabs":     "version = 1\n[ui]\ntabs = [\"one\"]\n",
		"syntax":   "version = \n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			_, err := NewConfigService(path).Load()
			require.Error(t, err)
		})
	}
}

func TestLoadFromPathMissing(t *testing.T) {
	t.Parallel()
	_, err := NewConfigService("").LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorContains(t, err, "config file not found")
}

// t.Setenv forbids t.Parallel
func TestResolveDBPath(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.db")
	require.NoError(t, os.WriteFile(existing, nil, 0644))

	cfg := DefaultConfig()
	cfg.DBPath = filepath.Join(dir, "config.db")

	t.Setenv(EnvDB, "")
	got, err := cfg.ResolveDBPath("")
	require.NoError(t, err)
	require.Equal(t, cfg.DBPath, got)

	t.Setenv(EnvDB, existing)
	got, err = cfg.ResolveDBPath("")
	require.NoError(t, err)
	require.Equal(t, existing, got)

	got, err = cfg.ResolveDBPath("/flag.db")
	require.NoError(t, err)
	require.Equal(t, "/flag.db", got, "the flag wins over the environment")

	t.Setenv(EnvDB, filepath.Join(dir, "missing.db"))
	_, err = cfg.ResolveDBPath("")
	require.Error(t, err)

	t.Setenv(EnvDB, dir)
	_, err = cfg.ResolveDBPath("")
	require.ErrorContains(t, err, "is a directory")
}

func TestShellPathFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	t.Setenv("SHELL", "")
	require.Equal(t, "/bin/sh", cfg.ShellPath())
	t.Setenv("SHELL", "/bin/fish")
	require.Equal(t, "/bin/fish", cfg.ShellPath())
}

func TestLogFileExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg := DefaultConfig()
	cfg.Log.File = "~/logs/cm.log"
	require.Equal(t, filepath.Join(home, "logs", "cm.log"), cfg.LogFile())

	cfg.Log.File = "/var/log/cm.log"
	require.Equal(t, "/var/log/cm.log", cfg.LogFile())
}
