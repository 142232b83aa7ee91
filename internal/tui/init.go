package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/studiowebux/keydeck/internal/config"
	"github.com/studiowebux/keydeck/internal/countdown"
	"github.com/studiowebux/keydeck/internal/history"
	"github.com/studiowebux/keydeck/internal/keybinds"
	"github.com/studiowebux/keydeck/internal/logging"
	"github.com/studiowebux/keydeck/internal/profile"
	"github.com/studiowebux/keydeck/internal/seed"
	"github.com/studiowebux/keydeck/internal/session"
	"github.com/studiowebux/keydeck/internal/types"
	"github.com/studiowebux/keydeck/internal/watch"
)

// Options wires the collaborators of the TUI. Nil fields get defaults:
// a fresh edit session, a store gated by it, the default keymap and a
// discarding logger. History and Watcher stay off when nil.
type Options struct {
	Store        *profile.Store
	Session      *session.EditSession
	Keybinds     *keybinds.Registry
	History      *history.Manager
	Watcher      *watch.Watcher
	Log          *logrus.Logger
	Settings     config.Settings
	ProfilesPath string
}

// New creates a new TUI model
func New(opts Options) Model {
	if opts.Session == nil {
		opts.Session = session.NewEditSession()
	}
	if opts.Store == nil {
		opts.Store = profile.NewStore(opts.Session)
	}
	if opts.Keybinds == nil {
		opts.Keybinds = keybinds.NewDefaultRegistry()
	}
	if opts.Log == nil {
		opts.Log = logging.Discard()
	}
	if opts.Settings.CountdownSeconds == 0 {
		opts.Settings = config.DefaultSettings()
	}

	m := Model{
		store:          opts.Store,
		editSession:    opts.Session,
		keybinds:       opts.Keybinds,
		historyManager: opts.History,
		watcher:        opts.Watcher,
		log:            opts.Log,
		settings:       opts.Settings,
		profilesPath:   opts.ProfilesPath,
		mode:           ModeNormal,
		theme:          NewTheme(opts.Settings.Theme),
		textInput:      NewTextInputState(),
		countdown:      countdown.New(opts.Settings.CountdownSeconds),
		helpView:       viewport.New(80, 20),
		modalView:      viewport.New(80, 20),
	}

	if opts.Settings.AutoCreateProfile {
		m.ensureFirstProfile()
	}

	return m
}

// ensureFirstProfile adds an empty "Profile #1" when only Default exists.
// It goes through Refresh so the power gate does not apply at startup.
func (m *Model) ensureFirstProfile() {
	if m.store.ExtraCount() > 0 {
		return
	}
	file := m.store.SeedFile()
	file.Profiles = append(file.Profiles, types.ProfileSnapshot{Name: profile.SlotName(1)})
	m.store.Refresh(file)
}

// Run starts the TUI. profilesPath overrides the configured profiles file.
func Run(profilesPath string) error {
	// Initialize config
	if err := config.Initialize(); err != nil {
		return err
	}

	settings, err := config.LoadSettings(config.ConfigDir)
	if err != nil {
		return err
	}

	log, logFile, err := logging.OpenFile(config.LogFile, settings.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if profilesPath == "" {
		profilesPath = settings.ProfilesFile
	}
	profilesPath = config.GetProfilesFilePath(profilesPath)

	editSession := session.NewEditSession()
	editSession.OnChange(func(state session.State) {
		log.WithField("state", state.String()).Info("power toggled")
	})

	store, report, err := seed.Open(profilesPath, editSession)
	if err != nil {
		return fmt.Errorf("failed to load profiles from %s: %w", profilesPath, err)
	}
	for _, issue := range report.Issues() {
		log.WithField("file", profilesPath).Warn(issue)
	}
	store.Subscribe(logging.StoreListener(log, store))

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		log.WithError(err).Warn("invalid keybinds file, using defaults")
		registry = keybinds.NewDefaultRegistry()
	}

	opts := Options{
		Store:        store,
		Session:      editSession,
		Keybinds:     registry,
		Log:          log,
		Settings:     *settings,
		ProfilesPath: profilesPath,
	}

	if settings.HistoryEnabled {
		mgr, err := history.NewManager(config.DatabasePath)
		if err != nil {
			log.WithError(err).Warn("journal disabled")
		} else {
			store.Subscribe(history.Recorder(mgr, log))
			opts.History = mgr
		}
	}

	if settings.WatchProfiles {
		w, err := watch.New(profilesPath, log)
		if err != nil {
			log.WithError(err).Warn("profiles watcher disabled")
		} else {
			opts.Watcher = w
		}
	}

	m := New(opts)
	defer m.Cleanup()

	// Start TUI (pass pointer since Update uses pointer receiver)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
