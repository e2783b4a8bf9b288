package ui

import (
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/ravenlinux/raven-settings/pkg/page"
)

// objects looks up widgets in a loaded UI description. The first failed
// lookup is kept in err and later lookups return zero values.
type objects struct {
	builder *gtk.Builder
	file    string
	err     error
}

func lookup[T any](o *objects, id string) T {
	var zero T
	if o.err != nil {
		return zero
	}
	obj := o.builder.GetObject(id)
	if obj == nil {
		o.err = fmt.Errorf("%s: object %q not found", o.file, id)
		return zero
	}
	v, ok := obj.Cast().(T)
	if !ok {
		o.err = fmt.Errorf("%s: object %q is %T, want %T", o.file, id, obj.Cast(), zero)
		return zero
	}
	return v
}

// loadDescription reads the UI description of cat from the configured
// search path and returns its page container.
func loadDescription(cat page.Category, dirs []string) (*objects, gtk.Widgetter, error) {
	desc, ok := page.Descriptions[cat]
	if !ok {
		return nil, nil, fmt.Errorf("no UI description for %s", cat)
	}
	path, err := page.ResolveDescription(desc.File, dirs)
	if err != nil {
		return nil, nil, err
	}

	builder := gtk.NewBuilder()
	if err := builder.AddFromFile(path); err != nil {
		return nil, nil, &page.DescriptionError{File: path, Err: err}
	}
	objs := &objects{builder: builder, file: desc.File}
	root := lookup[gtk.Widgetter](objs, desc.Object)
	if objs.err != nil {
		return nil, nil, &page.DescriptionError{File: path, Err: objs.err}
	}
	return objs, root, nil
}
