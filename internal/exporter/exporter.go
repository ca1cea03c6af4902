// Package exporter adds configured applications to a Steam account's
// non-Steam shortcuts.
//
// A run moves through a fixed sequence of states:
//
//	Init -> ConfigLoaded -> LibraryLocated -> StoreLocated -> Processing -> Done
//
// Failing any step before Processing aborts the run with a *StageError.
// During Processing every application is handled on its own: the store is
// reloaded, checked for an existing entry, extended and written back before
// the next application is considered, so a crash loses at most one entry.
// A dry run keeps a single store in memory instead.
package exporter

import (
	"fmt"
	"log/slog"

	"github.com/lobinuxsoft/shortcut-export/internal/config"
	"github.com/lobinuxsoft/shortcut-export/internal/logging"
	"github.com/lobinuxsoft/shortcut-export/pkg/steam"
)

// State is a step of an export run.
type State int

const (
	StateInit State = iota
	StateConfigLoaded
	StateLibraryLocated
	StateStoreLocated
	StateProcessing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateConfigLoaded:
		return "ConfigLoaded"
	case StateLibraryLocated:
		return "LibraryLocated"
	case StateStoreLocated:
		return "StoreLocated"
	case StateProcessing:
		return "Processing"
	case StateDone:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options configures a run.
type Options struct {
	// ConfigPath is the application list (JSON or YAML).
	ConfigPath string
	// AccountName is the Steam login name whose shortcuts are edited.
	AccountName string
	// LauncherPath is the executable every shortcut starts.
	LauncherPath string
	// SteamDir overrides Steam root detection when set.
	SteamDir string
	// DryRun performs every step except writing shortcuts.vdf.
	DryRun bool
}

// Exporter runs one export.
type Exporter struct {
	opts   Options
	logger *slog.Logger
	state  State

	// locate finds the Steam root; replaced in tests.
	locate func() (*steam.Paths, error)
}

// New returns an Exporter. A nil logger discards output.
func New(opts Options, logger *slog.Logger) *Exporter {
	e := &Exporter{
		opts:   opts,
		logger: logging.Component(logger, "exporter"),
	}
	e.locate = e.locateSteam
	return e
}

// State returns the state reached by the last Run.
func (e *Exporter) State() State {
	return e.state
}

// Run executes the export. A non-nil error is always a *StageError and means
// no shortcut was touched. Otherwise the Result holds the per-application
// outcome; Result.OK reports whether every application succeeded.
func (e *Exporter) Run() (Result, error) {
	e.state = StateInit

	cfg, err := config.Load(e.opts.ConfigPath)
	if err != nil {
		return Result{}, e.fail(err)
	}
	e.advance(StateConfigLoaded, "applications", cfg.Len(), "config", e.opts.ConfigPath)

	paths, err := e.locate()
	if err != nil {
		return Result{}, e.fail(err)
	}
	e.advance(StateLibraryLocated, "steamDir", paths.BaseDir())

	userID, err := steam.ResolveUserID(paths, e.opts.AccountName, e.logger)
	if err != nil {
		return Result{}, e.fail(err)
	}
	shortcutsPath := paths.ShortcutsPath(userID)
	e.advance(StateStoreLocated, "account", e.opts.AccountName, "userId", userID, "path", shortcutsPath,
		"existing", paths.HasShortcuts(userID))

	e.advance(StateProcessing)

	// A dry run never saves, so one in-memory store carries the entries it
	// would have written across applications.
	var dryStore *steam.Shortcuts
	if e.opts.DryRun {
		dryStore = steam.LoadShortcuts(shortcutsPath, e.logger)
	}

	result := Result{Total: cfg.Len()}
	for _, app := range cfg.Apps {
		store := dryStore
		if store == nil {
			store = steam.LoadShortcuts(shortcutsPath, e.logger)
		}
		outcome := e.process(shortcutsPath, store, app)
		result.record(outcome)
		if outcome.Err != nil {
			e.logger.Warn("failed to add shortcut", "app", app.Key, "category", outcome.Category, "error", outcome.Err)
		}
	}

	e.advance(StateDone)
	e.logger.Info("processing complete",
		"succeeded", result.Succeeded, "total", result.Total, "added", len(result.Added), "dryRun", e.opts.DryRun)

	return result, nil
}

// process handles a single application against store, writing it back to
// path unless this is a dry run.
func (e *Exporter) process(path string, store *steam.Shortcuts, app config.App) Outcome {
	displayName := app.DisplayName()

	if store.Contains(displayName) || store.Contains(app.Key) {
		e.logger.Info("shortcut already exists, skipping", "app", app.Key, "name", displayName)
		return Outcome{App: app.Key, Name: displayName, Status: StatusExists}
	}

	sc, err := steam.NewShortcut(app.Key, e.opts.LauncherPath, displayName)
	if err != nil {
		return Outcome{App: app.Key, Name: displayName, Status: StatusFailed, Category: CategoryEntry, Err: err}
	}

	id := store.Append(sc)

	if e.opts.DryRun {
		e.logger.Info("dry run: would add shortcut", "app", app.Key, "name", displayName, "id", id, "appid", sc.AppID())
		return Outcome{App: app.Key, Name: displayName, Status: StatusAdded, ID: id}
	}

	if err := store.Save(path); err != nil {
		return Outcome{App: app.Key, Name: displayName, Status: StatusFailed, Category: CategoryPersistence, Err: err}
	}

	e.logger.Info("shortcut added", "app", app.Key, "name", displayName, "id", id, "appid", sc.AppID())
	return Outcome{App: app.Key, Name: displayName, Status: StatusAdded, ID: id}
}

func (e *Exporter) locateSteam() (*steam.Paths, error) {
	if e.opts.SteamDir != "" {
		return steam.NewPathsWithBase(e.opts.SteamDir), nil
	}
	return steam.NewPaths()
}

func (e *Exporter) advance(next State, attrs ...any) {
	e.state = next
	e.logger.Debug("state "+next.String(), attrs...)
}

func (e *Exporter) fail(err error) *StageError {
	stageErr := &StageError{Stage: e.state, Err: err}
	e.logger.Error("export aborted", "stage", e.state, "category", stageErr.Category(), "error", err)
	return stageErr
}
