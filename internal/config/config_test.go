package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PIXED_CONFIG", "")
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, 64, cfg.Picture.Width)
	require.Equal(t, 0, cfg.Picture.Height)
	require.Equal(t, "untitled", cfg.Picture.Name)
	require.Equal(t, "000000", cfg.Paint.Color)
	require.Equal(t, "pencil", cfg.Paint.Tool)
	require.Equal(t, ".", cfg.Files.Dir)
	require.False(t, cfg.Files.Watch)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, filepath.Join(home, ".local", "state", "pixed", "pixed.log"), cfg.Log.File)
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "pixed")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[picture]
width = 16
name = "sprite"

[paint]
color = "ff0000"
`), 0o600))
	t.Setenv("PIXED_PAINT_COLOR", "00ff00")

	flags := Flags()
	require.NoError(t, flags.Parse([]string{"--height", "8", "--watch"}))

	cfg, err := Load(flags)
	require.NoError(t, err)
	require.Equal(t, 16, cfg.Picture.Width)
	require.Equal(t, 8, cfg.Picture.Height)
	require.Equal(t, "sprite", cfg.Picture.Name)
	require.Equal(t, "00ff00", cfg.Paint.Color, "env beats file")
	require.True(t, cfg.Files.Watch)
}

func TestLoadExplicitConfigMissing(t *testing.T) {
	isolate(t)
	flags := Flags()
	require.NoError(t, flags.Parse([]string{"--config", filepath.Join(t.TempDir(), "nope.toml")}))
	_, err := Load(flags)
	require.Error(t, err)
}

func TestLoadRejectsNegativeSize(t *testing.T) {
	isolate(t)
	t.Setenv("PIXED_PICTURE_WIDTH", "-3")
	_, err := Load(nil)
	require.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	home := isolate(t)
	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".config", "pixed", "config.toml"), cfg.Path)

	cfg.Paint.Color = "#123456"
	cfg.Paint.Tool = "eraser"
	cfg.Picture.Width = 32
	require.NoError(t, Save(cfg))

	back, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, "#123456", back.Paint.Color)
	require.Equal(t, "eraser", back.Paint.Tool)
	require.Equal(t, 32, back.Picture.Width)
}

func TestSaveWritesToExplicitConfig(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(t.TempDir(), "art.toml")
	require.NoError(t, os.WriteFile(path, []byte("[paint]\ncolor = \"ff0000\"\n"), 0o600))

	flags := Flags()
	require.NoError(t, flags.Parse([]string{"--config", path}))
	cfg, err := Load(flags)
	require.NoError(t, err)
	require.Equal(t, path, cfg.Path)

	cfg.Paint.Tool = "eraser"
	require.NoError(t, Save(cfg))
	require.NoFileExists(t, filepath.Join(home, ".config", "pixed", "config.toml"))

	again := Flags()
	require.NoError(t, again.Parse([]string{"--config", path}))
	back, err := Load(again)
	require.NoError(t, err)
	require.Equal(t, "eraser", back.Paint.Tool)
	require.Equal(t, "ff0000", back.Paint.Color)
}

func TestLoadRejectsMalformedDotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("PIXED_PAINT_COLOR='unterminated\n"), 0o600))
	_, err := Load(nil)
	require.ErrorContains(t, err, "load .env")
}

func TestLoadWithoutDotEnv(t *testing.T) {
	isolate(t)
	_, err := Load(nil)
	require.NoError(t, err)
}
