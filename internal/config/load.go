package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/keeponfirst/localbrain/internal/loghome"
	"github.com/keeponfirst/localbrain/internal/paths"
	"github.com/keeponfirst/localbrain/internal/state"
)

// RecordDirs are the per-type subdirectories created under the records dir.
var RecordDirs = []string{"decisions", "worklogs", "ideas", "backlogs"}

// LoadOptions controls Load.
type LoadOptions struct {
	// Root is the install root (see paths.InstallRoot).
	Root string
	// ConfigPath is the global TOML file; empty means DefaultPath().
	ConfigPath string
	// Getenv reads the process environment; nil means os.Getenv.
	Getenv func(string) string
	// LogHome is passed to the log home resolver. StatePath and EnvVar are
	// filled in from the install root and config when empty.
	LogHome loghome.Options
	// SkipValidation loads whatever is present without checking it.
	SkipValidation bool
	Logger         *slog.Logger
}

// Settings is a fully loaded configuration plus derived runtime values.
type Settings struct {
	Config

	Root       string
	ConfigPath string
	// EnvFile is the .env path; EnvFileLoaded reports whether it was read.
	EnvFile       string
	EnvFileLoaded bool

	// BrainRoot holds records/ and assets/. It is the resolved log home, or
	// Root when resolution failed (LogHomeErr is then set).
	BrainRoot  string
	LogHome    loghome.Home
	LogHomeErr error

	// AutoInit is true when the parent came from .local_state.json.
	AutoInit bool

	resolver *loghome.Resolver
}

// Load reads .env, config.toml and the environment, validates the result, and
// resolves the brain root.
func Load(opts LoadOptions) (*Settings, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	root := opts.Root
	if root == "" {
		root = paths.InstallRoot("")
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = DefaultPath()
	}
	cfg := &Config{}
	if _, err := os.Stat(configPath); err == nil {
		loaded, err := LoadFrom(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	s := &Settings{Root: root, ConfigPath: configPath, EnvFile: paths.EnvFile(root)}

	dotenv, err := godotenv.Read(s.EnvFile)
	switch {
	case err == nil:
		s.EnvFileLoaded = true
		cfg.ApplyEnv(func(k string) string { return dotenv[k] })
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read %s: %w", s.EnvFile, err)
	}
	cfg.ApplyEnv(getenv)
	cfg.ApplyDefaults()

	if !opts.SkipValidation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	s.Config = *cfg

	if s.NotionParent == "" {
		if id, ok := state.Load(s.LocalStateFile()).String("root_page_id"); ok {
			s.NotionParent = id
			s.AutoInit = true
		}
	}

	lhOpts := opts.LogHome
	if lhOpts.StatePath == "" {
		lhOpts.StatePath = paths.LogHomeStateFile(root)
	}
	if lhOpts.EnvVar == "" {
		lhOpts.EnvVar = cfg.LogHomeEnv
	}
	if lhOpts.Getenv == nil {
		lhOpts.Getenv = getenv
	}
	if lhOpts.Logger == nil {
		lhOpts.Logger = log
	}
	s.resolver = loghome.New(lhOpts)

	home, err := s.resolver.Resolve()
	if err != nil {
		log.Debug("log home unresolved; using install root", "root", root, "error", err)
		s.BrainRoot = root
		s.LogHome = home
		s.LogHomeErr = err
	} else {
		s.BrainRoot = home.Path
		s.LogHome = home
	}
	return s, nil
}

// Resolver returns the log home resolver used by Load.
func (s *Settings) Resolver() *loghome.Resolver { return s.resolver }

func (s *Settings) RecordsDir() string       { return paths.RecordsDir(s.BrainRoot) }
func (s *Settings) AssetsDir() string        { return paths.AssetsDir(s.BrainRoot) }
func (s *Settings) LocalStateFile() string   { return paths.LocalStateFile(s.Root) }
func (s *Settings) LogHomeStateFile() string { return paths.LogHomeStateFile(s.Root) }

// EnsureDirs creates the record type directories and assets/prompts.
func (s *Settings) EnsureDirs() error {
	dirs := make([]string, 0, len(RecordDirs)+1)
	for _, d := range RecordDirs {
		dirs = append(dirs, filepath.Join(s.RecordsDir(), d))
	}
	dirs = append(dirs, paths.PromptsDir(s.BrainRoot))
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", d, err)
		}
	}
	return nil
}

// NeedsInitialization reports whether no parent page is known yet.
func (s *Settings) NeedsInitialization() bool {
	return strings.TrimSpace(s.NotionParent) == ""
}

// SaveRootPage persists an auto-created root page id and makes it the parent.
func (s *Settings) SaveRootPage(pageID string) error {
	if err := state.Update(s.LocalStateFile(), func(st state.State) {
		st.Set(pageID, "root_page_id")
	}); err != nil {
		return fmt.Errorf("failed to save root page: %w", err)
	}
	s.NotionParent = pageID
	s.AutoInit = true
	return nil
}
