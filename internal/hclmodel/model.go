package hclmodel

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/buildgraph/projfile/pkg/model"
)

// Model is the HCL-backed implementation of model.Model. Item mutations
// update both the syntax tree and the current evaluated state; expressions
// only observe mutations after Reevaluate.
//
// Property overrides set via SetProperty live in a layer above the document,
// the way global build properties do: they win over document declarations,
// seed expression evaluation, and are never persisted by Save. Not safe for
// concurrent use.
type Model struct {
	path      string
	dir       string
	file      *hclwrite.File
	overrides map[string]string
	ev        *evaluated
}

// Load reads and evaluates the project document at path.
func Load(path string) (*Model, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	return Parse(src, abs)
}

// Parse evaluates document bytes as if read from path.
func Parse(src []byte, path string) (*Model, error) {
	wf, diags := hclwrite.ParseConfig(src, path, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", path, diags.Error())
	}
	overrides := map[string]string{}
	ev, err := evaluate(src, path, overrides)
	if err != nil {
		return nil, err
	}
	return &Model{
		path:      path,
		dir:       filepath.Dir(path),
		file:      wf,
		overrides: overrides,
		ev:        ev,
	}, nil
}

// Path implements model.Model.
func (m *Model) Path() string { return m.path }

// Dir implements model.Model.
func (m *Model) Dir() string { return m.dir }

// Language implements model.Model.
func (m *Model) Language() string { return m.ev.language }

// Property implements model.Model.
func (m *Model) Property(name string) (string, bool) {
	v, ok := m.ev.props[name]
	return v, ok
}

// SetProperty implements model.Model. The value is an override above the
// document: it is visible immediately, wins over a document declaration
// after Reevaluate, and is not written by Save.
func (m *Model) SetProperty(name, value string) {
	m.overrides[name] = value
	m.ev.props[name] = value
}

// RemoveProperty implements model.Model. It drops the override and any
// document declaration of the property.
func (m *Model) RemoveProperty(name string) {
	delete(m.overrides, name)
	if props := m.findPropertiesBody(); props != nil {
		props.RemoveAttribute(name)
	}
	delete(m.ev.props, name)
}

// Items implements model.Model.
func (m *Model) Items(kind string) []model.Item {
	var out []model.Item
	for _, it := range m.ev.items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

// AddItem implements model.Model. Repeated adds are not deduplicated.
func (m *Model) AddItem(kind, include string, metadata map[string]string) {
	proj := m.projectBody()
	block := proj.AppendNewBlock("item", []string{kind})
	block.Body().SetAttributeValue("include", cty.StringVal(include))
	if len(metadata) > 0 {
		vals := make(map[string]cty.Value, len(metadata))
		for k, v := range metadata {
			vals[k] = cty.StringVal(v)
		}
		block.Body().SetAttributeValue("metadata", cty.MapVal(vals))
	}

	var meta map[string]string
	if len(metadata) > 0 {
		meta = make(map[string]string, len(metadata))
		for k, v := range metadata {
			meta[k] = v
		}
	}
	m.ev.items = append(m.ev.items, model.Item{
		Kind:     kind,
		Include:  include,
		Metadata: meta,
		Ordinal:  len(m.ev.items),
	})
}

// RemoveItem implements model.Model.
func (m *Model) RemoveItem(item model.Item) bool {
	proj := m.projectBody()
	ord := 0
	for _, block := range proj.Blocks() {
		if block.Type() != "item" {
			continue
		}
		if ord == item.Ordinal {
			proj.RemoveBlock(block)
			m.ev.items = append(m.ev.items[:ord], m.ev.items[ord+1:]...)
			for i := range m.ev.items {
				m.ev.items[i].Ordinal = i
			}
			return true
		}
		ord++
	}
	return false
}

// Reevaluate implements model.Model: it re-parses the mutated syntax tree so
// property and item expressions observe earlier mutations.
func (m *Model) Reevaluate() error {
	ev, err := evaluate(m.file.Bytes(), m.path, m.overrides)
	if err != nil {
		return fmt.Errorf("reevaluate: %w", err)
	}
	m.ev = ev
	return nil
}

// Save implements model.Model, writing the syntax tree back to disk. hclwrite
// preserves the formatting of everything that was not touched.
func (m *Model) Save() error {
	if err := os.WriteFile(m.path, m.file.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// Bytes returns the document's current serialized form.
func (m *Model) Bytes() []byte { return m.file.Bytes() }

func (m *Model) projectBody() *hclwrite.Body {
	if block := m.file.Body().FirstMatchingBlock("project", nil); block != nil {
		return block.Body()
	}
	return m.file.Body().AppendNewBlock("project", nil).Body()
}

func (m *Model) findPropertiesBody() *hclwrite.Body {
	proj := m.file.Body().FirstMatchingBlock("project", nil)
	if proj == nil {
		return nil
	}
	if props := proj.Body().FirstMatchingBlock("properties", nil); props != nil {
		return props.Body()
	}
	return nil
}
