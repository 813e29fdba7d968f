// Package hclmodel implements the evaluated project model over an HCL
// build-description document. The hclwrite syntax tree is the source of
// truth: evaluation parses its current bytes, mutation edits it in place,
// and Save persists it with formatting fidelity.
package hclmodel

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/buildgraph/projfile/pkg/model"
)

type documentSchema struct {
	Project *projectSchema `hcl:"project,block"`
}

type projectSchema struct {
	Language   string            `hcl:"language,optional"`
	Properties *propertiesSchema `hcl:"properties,block"`
	Items      []itemSchema      `hcl:"item,block"`
}

type propertiesSchema struct {
	// Property names are free-form, so the block body is evaluated manually
	// in declaration order rather than decoded into struct fields.
	Body hcl.Body `hcl:",remain"`
}

type itemSchema struct {
	Kind     string         `hcl:"kind,label"`
	Include  hcl.Expression `hcl:"include"`
	Metadata hcl.Expression `hcl:"metadata,optional"`
}

// evaluated is one evaluation pass over the document.
type evaluated struct {
	language string
	props    map[string]string
	items    []model.Item
}

// evaluate parses and evaluates the document bytes. Overrides win over
// document declarations and seed expression evaluation. Document properties
// are evaluated in declaration order, each visible to the ones after it;
// item expressions see all properties.
func evaluate(src []byte, filename string, overrides map[string]string) (*evaluated, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", filename, diags.Error())
	}

	var doc documentSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s", filename, diags.Error())
	}
	if doc.Project == nil {
		return nil, fmt.Errorf("decode %s: missing project block", filename)
	}

	ev := &evaluated{
		language: doc.Project.Language,
		props:    map[string]string{},
	}

	ctx := &hcl.EvalContext{Variables: map[string]cty.Value{}}
	for name, v := range overrides {
		ev.props[name] = v
		ctx.Variables[name] = cty.StringVal(v)
	}

	if doc.Project.Properties != nil {
		attrs, diags := doc.Project.Properties.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, fmt.Errorf("properties of %s: %s", filename, diags.Error())
		}
		for _, attr := range sortedByRange(attrs) {
			if _, ok := overrides[attr.Name]; ok {
				// An override shadows the declaration entirely.
				continue
			}
			fillMissing(attr.Expr, ctx)
			val, diags := attr.Expr.Value(ctx)
			if diags.HasErrors() {
				return nil, fmt.Errorf("property %s of %s: %s", attr.Name, filename, diags.Error())
			}
			s, err := stringValue(val)
			if err != nil {
				return nil, fmt.Errorf("property %s of %s: %w", attr.Name, filename, err)
			}
			ev.props[attr.Name] = s
			ctx.Variables[attr.Name] = cty.StringVal(s)
		}
	}

	for i, raw := range doc.Project.Items {
		fillMissing(raw.Include, ctx)
		if raw.Metadata != nil {
			fillMissing(raw.Metadata, ctx)
		}
		include, diags := raw.Include.Value(ctx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("item %q of %s: %s", raw.Kind, filename, diags.Error())
		}
		inc, err := stringValue(include)
		if err != nil {
			return nil, fmt.Errorf("item %q of %s: %w", raw.Kind, filename, err)
		}

		meta, err := metadataValue(raw.Metadata, ctx)
		if err != nil {
			return nil, fmt.Errorf("item %q of %s: %w", raw.Kind, filename, err)
		}

		ev.items = append(ev.items, model.Item{
			Kind:     raw.Kind,
			Include:  inc,
			Metadata: meta,
			Ordinal:  i,
		})
	}

	return ev, nil
}

// fillMissing declares every property the expression references but that is
// not (yet) defined as the empty string, matching the way build-description
// properties expand: an unset property is "", not an error.
func fillMissing(expr hcl.Expression, ctx *hcl.EvalContext) {
	for _, trav := range expr.Variables() {
		name := trav.RootName()
		if _, ok := ctx.Variables[name]; !ok {
			ctx.Variables[name] = cty.StringVal("")
		}
	}
}

func sortedByRange(attrs hcl.Attributes) []*hcl.Attribute {
	out := make([]*hcl.Attribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Range.Start.Byte < out[j].Range.Start.Byte
	})
	return out
}

func stringValue(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", fmt.Errorf("value is null")
	}
	switch {
	case v.Type().Equals(cty.String):
		return v.AsString(), nil
	case v.Type().Equals(cty.Number):
		return v.AsBigFloat().Text('f', -1), nil
	case v.Type().Equals(cty.Bool):
		if v.True() {
			return "true", nil
		}
		return "false", nil
	default:
		return "", fmt.Errorf("expected string, got %s", v.Type().FriendlyName())
	}
}

func metadataValue(expr hcl.Expression, ctx *hcl.EvalContext) (map[string]string, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("metadata: %s", diags.Error())
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("metadata must be a map of strings")
	}
	meta := map[string]string{}
	for k, v := range val.AsValueMap() {
		s, err := stringValue(v)
		if err != nil {
			return nil, fmt.Errorf("metadata %s: %w", k, err)
		}
		meta[k] = s
	}
	if len(meta) == 0 {
		return nil, nil
	}
	return meta, nil
}
