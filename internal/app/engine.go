package app

import (
	"sync"

	"github.com/dshills/vecstorm/internal/config"
	"github.com/dshills/vecstorm/internal/document"
	"github.com/dshills/vecstorm/internal/transform"
)

// Options configures engine construction.
type Options struct {
	// ConfigPath is the TOML configuration file. Empty means defaults.
	ConfigPath string

	// WatchConfig enables live reload of ConfigPath.
	WatchConfig bool

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string

	// Logger overrides the default stderr logger.
	Logger *Logger
}

// Engine owns a document and its transform session and applies
// configuration to both. All gesture calls are serialized; the config
// watcher reloads from its own goroutine.
type Engine struct {
	logger  *Logger
	metrics *Metrics

	mu      sync.Mutex
	doc     *document.Context
	session *transform.Session
	watcher *config.Watcher
}

// New creates an engine, loading configuration from opts.ConfigPath
// when set.
func New(opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		cfg := DefaultLoggerConfig()
		cfg.Level = ParseLogLevel(opts.LogLevel)
		logger = NewLogger(cfg)
	}

	file := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		file = loaded
	}

	doc := document.NewContext()
	session := transform.NewSession(doc, file.Config())
	session.SetOptions(file.Options())
	session.Log().SetEnabled(file.Log.Enabled)

	e := &Engine{
		logger:  logger,
		metrics: NewMetrics(),
		doc:     doc,
		session: session,
	}

	if opts.WatchConfig && opts.ConfigPath != "" {
		watcher, err := config.NewWatcher(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		watcher.OnReload(e.applyReload)
		e.watcher = watcher
		logger.WithComponent("config").Info("watching %s", watcher.Path())
	}

	return e, nil
}

// Close stops the config watcher. The document and session stay
// usable.
func (e *Engine) Close() error {
	if e.watcher == nil {
		return nil
	}
	return e.watcher.Close()
}

// Document returns the engine's document.
func (e *Engine) Document() *document.Context { return e.doc }

// Session returns the transform session.
func (e *Engine) Session() *transform.Session { return e.session }

// Logger returns the engine's logger.
func (e *Engine) Logger() *Logger { return e.logger }

// Metrics returns the engine's metrics tracker.
func (e *Engine) Metrics() *Metrics { return e.metrics }

// applyReload pushes a changed configuration into the session.
func (e *Engine) applyReload(file config.File, err error) {
	log := e.logger.WithComponent("config")
	if err != nil {
		log.Warn("reload failed, keeping previous config: %v", err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.SetOptions(file.Options())
	e.session.Log().SetEnabled(file.Log.Enabled)
	e.session.SetConfig(file.Config())
	log.Info("configuration reloaded")
}

// ApplyConfig applies a configuration document directly, bypassing the
// file watcher.
func (e *Engine) ApplyConfig(file config.File) {
	e.applyReload(file, nil)
}

// BeginTransform starts a gesture. See transform.Session.Begin.
func (e *Engine) BeginTransform(ids []uint32, mode transform.Mode, specificID uint32, target transform.Target, screenX, screenY float64, view transform.Viewport, mods transform.Modifiers) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.session.Begin(ids, mode, specificID, target, screenX, screenY, view, mods); err != nil {
		return err
	}
	e.metrics.RecordBegin()
	e.logger.WithComponent("transform").Debug("begin %s over %d entities", mode, len(ids))
	return nil
}

// UpdateTransform advances the active gesture.
func (e *Engine) UpdateTransform(screenX, screenY float64, view transform.Viewport, mods transform.Modifiers) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.Update(screenX, screenY, view, mods)
	stats := e.session.Stats()
	e.metrics.RecordUpdate(stats.LastUpdate, stats.LastSnapHits)
}

// CommitTransform ends the gesture and returns its operations.
func (e *Engine) CommitTransform() transform.CommitResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	res := e.session.Commit()
	if res.GestureID != "" {
		e.metrics.RecordCommit(len(res.IDs))
		e.logger.WithComponent("transform").Debug("commit %s: %d ops", res.GestureID, len(res.IDs))
	}
	return res
}

// CancelTransform ends the gesture and rolls the document back.
func (e *Engine) CancelTransform() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.session.State().Active {
		return
	}
	e.session.Cancel()
	e.metrics.RecordCancel()
}

// TransformState reports the gesture state for UI feedback.
func (e *Engine) TransformState() transform.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.State()
}

// TransformStats reports the telemetry of the most recent update.
func (e *Engine) TransformStats() transform.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Stats()
}

// SnapGuides returns the guides of the most recent update.
func (e *Engine) SnapGuides() []transform.SnapGuide {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Guides()
}

// SnapHits returns the feature hits of the most recent update.
func (e *Engine) SnapHits() []transform.SnapHit {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Hits()
}

// SetTransformOptions replaces the live engine options.
func (e *Engine) SetTransformOptions(opts transform.Options) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session.SetOptions(opts)
}

// TransformOptions returns the live engine options.
func (e *Engine) TransformOptions() transform.Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Options()
}

// Replay feeds a recorded gesture stream through the session.
func (e *Engine) Replay(entries []transform.LogEntry) (transform.CommitResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Replay(entries)
}
