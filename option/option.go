package option

import (
	"github.com/viant/csvx/config"
	"log/slog"
)

// Layout controls how lists and maps are flattened
type Layout int

const (
	//Spread recurses into list elements and map entries, empty collections are deferred
	Spread Layout = iota
	//Deferred renders lists, maps and self recursive structures as a single JSON column
	Deferred
)

func (l Layout) String() string {
	if l == Deferred {
		return "deferred"
	}
	return "spread"
}

// Mode controls how a streaming encoder resolves its header
type Mode int

const (
	//Steady writes the header derived from the shape before any value
	Steady Mode = iota
	//AdHoc buffers every record and writes the union of their keys on close
	AdHoc
)

func (m Mode) String() string {
	if m == AdHoc {
		return "adhoc"
	}
	return "steady"
}

type (
	Options struct {
		config    *config.Config
		layout    Layout
		hasLayout bool
		mode      Mode
		logger    *slog.Logger
	}

	Option func(o *Options)
)

func NewOptions(options ...Option) *Options {
	ret := &Options{}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Apply applies options on top of existing ones
func (o *Options) Apply(options ...Option) *Options {
	ret := *o
	for _, opt := range options {
		opt(&ret)
	}
	return &ret
}

func WithConfig(config *config.Config) Option {
	return func(o *Options) {
		o.config = config
	}
}

func WithLayout(layout Layout) Option {
	return func(o *Options) {
		o.layout = layout
		o.hasLayout = true
	}
}

func WithMode(mode Mode) Option {
	return func(o *Options) {
		o.mode = mode
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

// GetConfig returns config, default config when not set
func (o *Options) GetConfig() *config.Config {
	if o.config == nil {
		return config.Default()
	}
	return o.config
}

// GetLayout returns layout, fallback when not set
func (o *Options) GetLayout(fallback Layout) Layout {
	if !o.hasLayout {
		return fallback
	}
	return o.layout
}

func (o *Options) GetMode() Mode {
	return o.mode
}

func (o *Options) GetLogger() *slog.Logger {
	return o.logger
}
