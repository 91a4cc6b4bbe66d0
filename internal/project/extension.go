package project

import (
	"fmt"

	m "srcmap.dev/pkg/srcmap/internal/model"
)

type namedExtension struct {
	name  string
	value any
}

// ExtensionContainer holds the extensions registered on a project, in
// registration order.
type ExtensionContainer struct {
	items []namedExtension
}

// NewExtensionContainer returns an empty container.
func NewExtensionContainer() *ExtensionContainer {
	return &ExtensionContainer{}
}

// Add registers ext under name. Names are unique within a container.
func (c *ExtensionContainer) Add(name string, ext any) error {
	if ext == nil {
		return fmt.Errorf("extension %q is nil", name)
	}

	for _, item := range c.items {
		if item.name == name {
			return fmt.Errorf("extension %q already registered", name)
		}
	}

	c.items = append(c.items, namedExtension{name: name, value: ext})

	return nil
}

// FindByName returns the extension registered under name.
func (c *ExtensionContainer) FindByName(name string) m.Optional[any] {
	for _, item := range c.items {
		if item.name == name {
			return m.Some(item.value)
		}
	}

	return m.None[any]()
}

// Names lists registered extension names in registration order.
func (c *ExtensionContainer) Names() []string {
	names := make([]string, 0, len(c.items))
	for _, item := range c.items {
		names = append(names, item.name)
	}

	return names
}

// FindByType returns the first registered extension assignable to T.
func FindByType[T any](c *ExtensionContainer) m.Optional[T] {
	if c == nil {
		return m.None[T]()
	}

	for _, item := range c.items {
		if v, ok := item.value.(T); ok {
			return m.Some(v)
		}
	}

	return m.None[T]()
}
