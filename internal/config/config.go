package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/assetnav/internal/app"
	"github.com/atomicstack/assetnav/internal/gateway"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	File     string
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envConfig      = "ASSETNAV_CONFIG"
	envTool        = "ASSETNAV_TOOL"
	envDownloadDir = "ASSETNAV_DOWNLOAD_DIR"
	envWatchDir    = "ASSETNAV_WATCH_DIR"
	envHistoryDB   = "ASSETNAV_HISTORY_DB"
	envCacheTTL    = "ASSETNAV_CACHE_TTL"
	envWidth       = "ASSETNAV_WIDTH"
	envHeight      = "ASSETNAV_HEIGHT"
	envShowFooter  = "ASSETNAV_FOOTER"
	envVerbose     = "ASSETNAV_VERBOSE"
	envTrace       = "ASSETNAV_TRACE"
	envLogFile     = "ASSETNAV_LOG_FILE"
)

// File mirrors the optional YAML configuration file. Unset keys leave the
// lower-precedence value in place.
type File struct {
	Tool        *string `yaml:"tool"`
	DownloadDir *string `yaml:"download_dir"`
	WatchDir    *string `yaml:"watch_dir"`
	HistoryDB   *string `yaml:"history_db"`
	CacheTTL    *string `yaml:"cache_ttl"`
	Width       *int    `yaml:"width"`
	Height      *int    `yaml:"height"`
	Footer      *bool   `yaml:"footer"`
	Verbose     *bool   `yaml:"verbose"`
	Trace       *bool   `yaml:"trace"`
	LogFile     *string `yaml:"log_file"`
}

// Flags holds the command-line flags registered on a flag set.
type Flags struct {
	fs          *pflag.FlagSet
	config      *string
	tool        *string
	downloadDir *string
	watchDir    *string
	historyDB   *string
	cacheTTL    *time.Duration
	width       *int
	height      *int
	footer      *bool
	verbose     *bool
	trace       *bool
	logFile     *string
}

// Register adds the application's flags to fs.
func Register(fs *pflag.FlagSet) *Flags {
	return &Flags{
		fs:          fs,
		config:      fs.String("config", "", "path to a YAML config file"),
		tool:        fs.String("tool", gateway.DefaultTool, "name or path of the asset CLI"),
		downloadDir: fs.String("download-dir", ".", "directory downloads are written to"),
		watchDir:    fs.String("watch-dir", ".", "directory offered for upload suggestions"),
		historyDB:   fs.String("history-db", "", "path to the sqlite command history (empty disables it)"),
		cacheTTL:    fs.Duration("cache-ttl", 0, "reuse folder listings younger than this (0 always fetches)"),
		width:       fs.Int("width", 0, "desired viewport width in cells (0 uses terminal width)"),
		height:      fs.Int("height", 0, "desired viewport height in rows (0 uses terminal height)"),
		footer:      fs.Bool("footer", false, "enable footer hint row"),
		verbose:     fs.Bool("verbose", false, "print success messages for actions"),
		trace:       fs.Bool("trace", false, "enable verbose JSON trace logging"),
		logFile:     fs.String("log-file", "", "path to the log file"),
	}
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("assetnav", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	flags := Register(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return flags.Resolve(args, environ)
}

// Resolve merges defaults, the config file, the environment and explicitly
// set flags, in increasing order of precedence.
func (f *Flags) Resolve(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	s := settings{
		tool:        gateway.DefaultTool,
		downloadDir: ".",
		watchDir:    ".",
	}

	path, explicit := f.configPath(env)
	if path != "" {
		file, err := LoadFile(path)
		switch {
		case err == nil:
			if err := s.applyFile(file); err != nil {
				return Config{}, fmt.Errorf("config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
			path = ""
		default:
			return Config{}, err
		}
	}

	if err := s.applyEnv(env); err != nil {
		return Config{}, err
	}
	f.applyFlags(&s)

	if s.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", s.width)
	}
	if s.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", s.height)
	}
	if s.cacheTTL < 0 {
		return Config{}, fmt.Errorf("cache-ttl must be >= 0 (got %s)", s.cacheTTL)
	}

	cfg := Config{
		App: app.Config{
			Tool:        s.tool,
			DownloadDir: s.downloadDir,
			WatchDir:    s.watchDir,
			HistoryPath: s.historyDB,
			CacheTTL:    s.cacheTTL,
			Width:       s.width,
			Height:      s.height,
			ShowFooter:  s.footer,
			Verbose:     s.verbose,
		},
		Logging: Logging{
			FilePath: s.logFile,
			Trace:    s.trace,
		},
		Features: Features{
			Verbose: s.verbose,
		},
		File: path,
		Flags: map[string]string{
			"tool":        s.tool,
			"downloadDir": s.downloadDir,
			"watchDir":    s.watchDir,
			"historyDB":   s.historyDB,
			"cacheTTL":    s.cacheTTL.String(),
			"width":       strconv.Itoa(s.width),
			"height":      strconv.Itoa(s.height),
			"footer":      strconv.FormatBool(s.footer),
			"trace":       strconv.FormatBool(s.trace),
			"verbose":     strconv.FormatBool(s.verbose),
			"logFile":     s.logFile,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// LoadFile reads a YAML config file.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return file, nil
}

// configPath returns the config file to read and whether it was named
// explicitly.
func (f *Flags) configPath(env map[string]string) (string, bool) {
	if f.fs != nil && f.fs.Changed("config") {
		return *f.config, true
	}
	if v := strings.TrimSpace(env[envConfig]); v != "" {
		return v, true
	}
	base := env["XDG_CONFIG_HOME"]
	if base == "" {
		home := env["HOME"]
		if home == "" {
			return "", false
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "assetnav", "config.yaml"), false
}

type settings struct {
	tool        string
	downloadDir string
	watchDir    string
	historyDB   string
	cacheTTL    time.Duration
	width       int
	height      int
	footer      bool
	verbose     bool
	trace       bool
	logFile     string
}

func (s *settings) applyFile(file File) error {
	setString(&s.tool, file.Tool)
	setString(&s.downloadDir, file.DownloadDir)
	setString(&s.watchDir, file.WatchDir)
	setString(&s.historyDB, file.HistoryDB)
	setString(&s.logFile, file.LogFile)
	if file.CacheTTL != nil {
		ttl, err := time.ParseDuration(*file.CacheTTL)
		if err != nil {
			return fmt.Errorf("cache_ttl: %w", err)
		}
		s.cacheTTL = ttl
	}
	if file.Width != nil {
		s.width = *file.Width
	}
	if file.Height != nil {
		s.height = *file.Height
	}
	if file.Footer != nil {
		s.footer = *file.Footer
	}
	if file.Verbose != nil {
		s.verbose = *file.Verbose
	}
	if file.Trace != nil {
		s.trace = *file.Trace
	}
	return nil
}

func (s *settings) applyEnv(env map[string]string) error {
	s.tool = envOrDefault(env, envTool, s.tool)
	s.downloadDir = envOrDefault(env, envDownloadDir, s.downloadDir)
	s.watchDir = envOrDefault(env, envWatchDir, s.watchDir)
	s.historyDB = envOrDefault(env, envHistoryDB, s.historyDB)
	s.logFile = envOrDefault(env, envLogFile, s.logFile)
	s.width = envOrInt(env, envWidth, s.width)
	s.height = envOrInt(env, envHeight, s.height)
	s.footer = envOrBool(env, envShowFooter, s.footer)
	s.verbose = envOrBool(env, envVerbose, s.verbose)
	s.trace = envOrBool(env, envTrace, s.trace)
	if v := strings.TrimSpace(env[envCacheTTL]); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envCacheTTL, err)
		}
		s.cacheTTL = ttl
	}
	return nil
}

func (f *Flags) applyFlags(s *settings) {
	changed := func(name string) bool { return f.fs != nil && f.fs.Changed(name) }
	if changed("tool") {
		s.tool = *f.tool
	}
	if changed("download-dir") {
		s.downloadDir = *f.downloadDir
	}
	if changed("watch-dir") {
		s.watchDir = *f.watchDir
	}
	if changed("history-db") {
		s.historyDB = *f.historyDB
	}
	if changed("cache-ttl") {
		s.cacheTTL = *f.cacheTTL
	}
	if changed("width") {
		s.width = *f.width
	}
	if changed("height") {
		s.height = *f.height
	}
	if changed("footer") {
		s.footer = *f.footer
	}
	if changed("verbose") {
		s.verbose = *f.verbose
	}
	if changed("trace") {
		s.trace = *f.trace
	}
	if changed("log-file") {
		s.logFile = *f.logFile
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.Tool) == "" {
		return errors.New("tool must not be empty")
	}
	if cfg.App.DownloadDir != "" {
		info, err := os.Stat(cfg.App.DownloadDir)
		if err != nil {
			return fmt.Errorf("download dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("download dir %s is not a directory", cfg.App.DownloadDir)
		}
	}
	return nil
}
