package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Picture PictureConfig
	Paint   PaintConfig
	Files   FilesConfig
	Log     LogConfig

	// Path is the file Load resolved and Save writes back to.
	Path string `mapstructure:"-"`
}

// PictureConfig holds the shape of a new picture. Height 0 follows width.
type PictureConfig struct {
	Width  int
	Height int
	Name   string
}

// PaintConfig holds the initial tool state.
type PaintConfig struct {
	Color string
	Tool  string
}

// FilesConfig holds snapshot file settings.
type FilesConfig struct {
	Dir   string
	Watch bool
}

// LogConfig holds logrus settings.
type LogConfig struct {
	Level string
	File  string
}

// flag name -> config key
var flagKeys = map[string]string{
	"width":  "picture.width",
	"height": "picture.height",
	"name":   "picture.name",
	"color":  "paint.color",
	"tool":   "paint.tool",
	"dir":    "files.dir",
	"watch":  "files.watch",
}

// Flags declares the command line overrides understood by Load.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("pixed", pflag.ContinueOnError)
	fs.String("config", "", "config file (default ~/.config/pixed/config.toml)")
	fs.Int("width", 0, "width of a new picture")
	fs.Int("height", 0, "height of a new picture (defaults to width)")
	fs.String("name", "", "name of a new picture")
	fs.String("color", "", "initial pencil color")
	fs.String("tool", "", "initial tool: pencil, eraser")
	fs.String("dir", "", "directory snapshots are saved to")
	fs.Bool("watch", false, "reload the open snapshot when it changes on disk")
	return fs
}

// Load reads configuration from file, env and flags. Env var overrides use
// prefix PIXED_; a .env file in the working directory is read first.
// flags may be nil.
func Load(flags *pflag.FlagSet) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	// default values
	v.SetDefault("picture.width", 64)
	v.SetDefault("picture.height", 0)
	v.SetDefault("picture.name", "untitled")
	v.SetDefault("paint.color", "000000")
	v.SetDefault("paint.tool", "pencil")
	v.SetDefault("files.dir", ".")
	v.SetDefault("files.watch", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(os.Getenv("HOME"), ".local", "state", "pixed", "pixed.log"))

	v.SetConfigType("toml")

	cfgPath := configPath(flags)
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Dir(defaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PIXED")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Picture.Width < 0 || c.Picture.Height < 0 {
		return Config{}, fmt.Errorf("picture size %dx%d must not be negative", c.Picture.Width, c.Picture.Height)
	}
	switch {
	case cfgPath != "":
		c.Path = cfgPath
	case v.ConfigFileUsed() != "":
		c.Path = v.ConfigFileUsed()
	default:
		c.Path = defaultPath()
	}
	return c, nil
}

// Save writes the provided config to cfg.Path, creating its directory if
// needed. An empty Path falls back to PIXED_CONFIG, then the default file.
func Save(cfg Config) error {
	path := cfg.Path
	if path == "" {
		path = configPath(nil)
	}
	if path == "" {
		path = defaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("picture.width", cfg.Picture.Width)
	v.Set("picture.height", cfg.Picture.Height)
	v.Set("picture.name", cfg.Picture.Name)
	v.Set("paint.color", cfg.Paint.Color)
	v.Set("paint.tool", cfg.Paint.Tool)
	v.Set("files.dir", cfg.Files.Dir)
	v.Set("files.watch", cfg.Files.Watch)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func defaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "pixed", "config.toml")
}

func configPath(flags *pflag.FlagSet) string {
	if flags != nil {
		if p, err := flags.GetString("config"); err == nil && p != "" {
			return p
		}
	}
	return os.Getenv("PIXED_CONFIG")
}
