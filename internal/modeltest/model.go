// Package modeltest provides an in-memory model.Model for tests that need
// precise control over property and item state without a document on disk.
package modeltest

import (
	"path/filepath"

	"github.com/buildgraph/projfile/pkg/model"
)

// InMemory implements model.Model over plain maps and slices. Reevaluations
// and saves are counted so tests can assert on sequencing.
type InMemory struct {
	DocPath  string
	Lang     string
	Props    map[string]string
	AllItems []model.Item

	Reevals int
	Saves   int

	// SaveErr, when set, is returned by Save.
	SaveErr error
}

// New creates an InMemory model for a document at path.
func New(path, lang string) *InMemory {
	return &InMemory{
		DocPath: path,
		Lang:    lang,
		Props:   map[string]string{},
	}
}

// WithProperty sets a property and returns the model for chaining.
func (m *InMemory) WithProperty(name, value string) *InMemory {
	m.Props[name] = value
	return m
}

// WithItem appends an item and returns the model for chaining.
func (m *InMemory) WithItem(kind, include string, metadata map[string]string) *InMemory {
	m.AddItem(kind, include, metadata)
	return m
}

func (m *InMemory) Path() string     { return m.DocPath }
func (m *InMemory) Dir() string      { return filepath.Dir(m.DocPath) }
func (m *InMemory) Language() string { return m.Lang }

func (m *InMemory) Property(name string) (string, bool) {
	v, ok := m.Props[name]
	return v, ok
}

func (m *InMemory) SetProperty(name, value string) {
	m.Props[name] = value
}

func (m *InMemory) RemoveProperty(name string) {
	delete(m.Props, name)
}

func (m *InMemory) Items(kind string) []model.Item {
	var out []model.Item
	for _, it := range m.AllItems {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

func (m *InMemory) AddItem(kind, include string, metadata map[string]string) {
	m.AllItems = append(m.AllItems, model.Item{
		Kind:     kind,
		Include:  include,
		Metadata: metadata,
		Ordinal:  len(m.AllItems),
	})
}

func (m *InMemory) RemoveItem(item model.Item) bool {
	for i, it := range m.AllItems {
		if it.Ordinal == item.Ordinal {
			m.AllItems = append(m.AllItems[:i], m.AllItems[i+1:]...)
			for j := range m.AllItems {
				m.AllItems[j].Ordinal = j
			}
			return true
		}
	}
	return false
}

func (m *InMemory) Reevaluate() error {
	m.Reevals++
	return nil
}

func (m *InMemory) Save() error {
	m.Saves++
	return m.SaveErr
}
