package selector

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/recordkit/internal/domain/creation"
	"github.com/kailas-cloud/recordkit/internal/domain/datatype"
	"github.com/kailas-cloud/recordkit/internal/usecase/form"
)

// CreationForm is an open inline creation form.
// Values holds an entry for every schema field; Controls only the enabled ones.
type CreationForm struct {
	TypeSlug string
	Controls []form.Control

	mu     sync.Mutex
	values map[string]any
	nested map[string]*Selector
}

func newCreationForm(dt datatype.DataType, cfg creation.Config) *CreationForm {
	values := form.Defaults(dt, form.ModeCreate)
	controls := make([]form.Control, 0, len(dt.Fields()))
	for _, f := range dt.Fields() {
		if !cfg.Enabled(f.Name()) {
			continue
		}
		ctx := form.ContextFor(f, cfg, dt.IsRequired(f.Name()))
		controls = append(controls, form.Render(f.Name(), f, values[f.Name()], ctx))
	}
	return &CreationForm{
		TypeSlug: dt.Slug(),
		Controls: controls,
		values:   values,
		nested:   make(map[string]*Selector),
	}
}

// Values returns a copy of the current field values.
func (f *CreationForm) Values() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]any, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Set stores the value of one field.
func (f *CreationForm) Set(name string, v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = v
}

// Nested returns the selector embedded for a reference field.
func (f *CreationForm) Nested(name string) (*Selector, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.nested[name]
	return s, ok
}

func (f *CreationForm) close() {
	f.mu.Lock()
	nested := make([]*Selector, 0, len(f.nested))
	for _, s := range f.nested {
		nested = append(nested, s)
	}
	f.mu.Unlock()

	for _, s := range nested {
		s.Close()
	}
}

// attachNested creates and configures one selector per reference control.
// Load failures stay in the nested selector's own state.
func (s *Selector) attachNested(ctx context.Context, frm *CreationForm) {
	var g errgroup.Group
	for _, c := range frm.Controls {
		if c.Reference == nil {
			continue
		}
		name, slug := c.Name, c.Reference.TypeSlug
		child := New(s.types, s.records,
			Config{
				Placeholder: c.Placeholder,
				Required:    c.Required,
				Disabled:    c.Disabled,
				Creation:    c.Reference.Creation,
			},
			WithLogger(s.logger.With(zap.String("field", name))),
			WithObserver(s.observer),
			WithOnSelectionChange(func(id *string) {
				if id == nil {
					frm.Set(name, nil)
					return
				}
				frm.Set(name, *id)
			}),
		)

		frm.mu.Lock()
		frm.nested[name] = child
		frm.mu.Unlock()

		g.Go(func() error {
			if err := child.Configure(ctx, slug); err != nil {
				s.logger.Debug("nested selector load failed",
					zap.String("field", name), zap.String("type", slug), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}
