package page

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ravenlinux/raven-settings/pkg/logging"
)

var (
	// ErrUnknownCategory is returned by Show for categories without a
	// registered builder.
	ErrUnknownCategory = errors.New("page: unknown category")

	// ErrBuilding is returned by Show when called again while the same
	// page is still being built.
	ErrBuilding = errors.New("page: build in progress")
)

// View is the frontend's handle on a built page, e.g. a GTK widget.
type View any

// Host is the navigable container pages are added to.
type Host interface {
	Add(cat Category, view View)
	Show(cat Category)
}

// BuildContext is handed to a Builder.
type BuildContext struct {
	Category Category
	closers  []func()
}

// OnClose registers fn to run when the page is torn down, or right away if
// the build fails.
func (c *BuildContext) OnClose(fn func()) {
	c.closers = append(c.closers, fn)
}

// Builder constructs a page.
type Builder interface {
	Build(ctx *BuildContext) (View, error)
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(ctx *BuildContext) (View, error)

// Build calls f(ctx).
func (f BuilderFunc) Build(ctx *BuildContext) (View, error) {
	return f(ctx)
}

// BuildError wraps a builder failure with its category.
type BuildError struct {
	Category Category
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("failed to build %s page: %v", e.Category, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// State is a built page.
type State struct {
	Category Category
	View     View
	BuiltAt  time.Time
	closers  []func()
}

func (s *State) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// Registry builds pages on first display and caches them. It must only be
// used from the UI thread.
type Registry struct {
	host     Host
	builders map[Category]Builder
	order    []Category
	pages    map[Category]*State
	building map[Category]bool
	current  Category
	logger   *zap.Logger
}

// NewRegistry creates an empty registry that shows pages in host.
func NewRegistry(host Host, logger *zap.Logger) *Registry {
	return &Registry{
		host:     host,
		builders: make(map[Category]Builder),
		pages:    make(map[Category]*State),
		building: make(map[Category]bool),
		logger:   logging.OrNop(logger),
	}
}

// Register sets the builder for cat, replacing any previous one.
func (r *Registry) Register(cat Category, b Builder) {
	if _, ok := r.builders[cat]; !ok {
		r.order = append(r.order, cat)
	}
	r.builders[cat] = b
}

// Categories returns the registered categories in registration order.
func (r *Registry) Categories() []Category {
	return append([]Category(nil), r.order...)
}

// Registered reports whether cat has a builder.
func (r *Registry) Registered(cat Category) bool {
	_, ok := r.builders[cat]
	return ok
}

// Built reports whether cat has been built and cached.
func (r *Registry) Built(cat Category) bool {
	_, ok := r.pages[cat]
	return ok
}

// State returns the cached state of cat.
func (r *Registry) State(cat Category) (*State, bool) {
	st, ok := r.pages[cat]
	return st, ok
}

// Current returns the last category shown.
func (r *Registry) Current() Category {
	return r.current
}

// Show makes cat the visible page, building it first if needed. Build
// failures are logged and returned; nothing is cached and no page is
// shown.
func (r *Registry) Show(cat Category) error {
	if _, ok := r.pages[cat]; ok {
		r.host.Show(cat)
		r.current = cat
		return nil
	}

	b, ok := r.builders[cat]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, cat)
	}
	if r.building[cat] {
		return fmt.Errorf("%w: %s", ErrBuilding, cat)
	}

	r.building[cat] = true
	defer delete(r.building, cat)

	start := time.Now()
	ctx := &BuildContext{Category: cat}
	view, err := b.Build(ctx)
	if err != nil {
		(&State{closers: ctx.closers}).close()
		r.logger.Error("failed to build page", zap.String("category", string(cat)), zap.Error(err))
		return &BuildError{Category: cat, Err: err}
	}

	r.pages[cat] = &State{
		Category: cat,
		View:     view,
		BuiltAt:  time.Now(),
		closers:  ctx.closers,
	}
	r.host.Add(cat, view)
	r.host.Show(cat)
	r.current = cat

	r.logger.Debug("page built",
		zap.String("category", string(cat)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// Close tears down every built page: timers are cancelled and in-flight
// scans abandoned. The registry is empty afterwards; builders stay
// registered.
func (r *Registry) Close() {
	for i := len(r.order) - 1; i >= 0; i-- {
		if st, ok := r.pages[r.order[i]]; ok {
			st.close()
		}
	}
	r.pages = make(map[Category]*State)
	r.current = ""
}
