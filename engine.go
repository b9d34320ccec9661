package serenity

import "go.uber.org/zap"

// Engine is the explicit context object that ties the subsystems together.
// It owns the frame loop and the input sampler and is handed to whatever
// needs them; there are no package-level instances.
type Engine struct {
	cfg   Config
	host  Host
	log   *zap.Logger
	loop  *Loop
	input *Input
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the root logger. Subsystems log through named children.
func WithLogger(log *zap.Logger) EngineOption {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// NewEngine creates an engine on host. The loop is created stopped; call
// Start to begin scheduling frames.
func NewEngine(host Host, cfg Config, opts ...EngineOption) *Engine {
	e := &Engine{
		cfg:   cfg,
		host:  host,
		log:   zap.NewNop(),
		input: NewInput(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.loop = NewLoop(host,
		WithLoopLogger(e.log.Named("loop")),
		WithLoopDebug(cfg.Debug),
	)
	return e
}

// Config returns the settings the engine was created with.
func (e *Engine) Config() Config { return e.cfg }

// Host returns the platform host.
func (e *Engine) Host() Host { return e.host }

// Logger returns the root logger.
func (e *Engine) Logger() *zap.Logger { return e.log }

// Loop returns the frame scheduler.
func (e *Engine) Loop() *Loop { return e.loop }

// Input returns the input sampler. Host adapters dispatch events into it;
// game code should prefer InputState.
func (e *Engine) Input() *Input { return e.input }

// InputState returns the read-only input view.
func (e *Engine) InputState() InputState { return e.input }

// Start starts the frame loop.
func (e *Engine) Start() {
	e.log.Info("engine starting",
		zap.String("title", e.cfg.Title),
		zap.Int("width", e.cfg.Width),
		zap.Int("height", e.cfg.Height),
		zap.Bool("debug", e.cfg.Debug),
	)
	e.loop.Start()
}

// Stop stops the frame loop at the next frame boundary.
func (e *Engine) Stop() {
	e.loop.Stop()
}

// RegisterUpdate adds an update callback to the loop.
func (e *Engine) RegisterUpdate(fn func(dt float64)) CallbackHandle {
	return e.loop.RegisterUpdate(fn)
}

// RegisterRender adds a render callback to the loop.
func (e *Engine) RegisterRender(fn func()) CallbackHandle {
	return e.loop.RegisterRender(fn)
}

// Animate starts an animation on the engine's host. See Animate.
func (e *Engine) Animate(opts AnimateOptions) *TweenRun {
	e.log.Debug("animation started", zap.Duration("duration", opts.Duration))
	return Animate(e.host, opts)
}
