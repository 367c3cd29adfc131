package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// --- Router YAML methods ---

// UnmarshalYAML decodes the router mapping keeping key order.
// Each value is either a single template or a list of templates:
//
//	page1: /a
//	page4: [/d/:id, /detail/:id]
func (r *Router) UnmarshalYAML(node *yaml.Node) error {
	if isNull(node) {
		*r = nil
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("router: expected mapping, got %v", kindName(node.Kind))
	}

	routes := make(Router, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string
		if err := node.Content[i].Decode(&name); err != nil {
			return fmt.Errorf("router: invalid route name: %w", err)
		}

		templates, err := decodeTemplates(node.Content[i+1])
		if err != nil {
			return fmt.Errorf("router %q: %w", name, err)
		}

		routes = append(routes, Route{Name: name, Templates: templates})
	}

	*r = routes

	return nil
}

// decodeTemplates accepts a scalar or a sequence and returns the decoded values.
// Values are not type-checked here.
func decodeTemplates(node *yaml.Node) ([]any, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))

		for _, item := range node.Content {
			var v any
			if err := item.Decode(&v); err != nil {
				return nil, err
			}

			out = append(out, v)
		}

		return out, nil

	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}

		return []any{v}, nil
	}
}

// Lookup returns the route with the given name.
func (r Router) Lookup(name string) (Route, bool) {
	for _, route := range r {
		if route.Name == name {
			return route, true
		}
	}

	return Route{}, false
}

// --- Subpackages YAML methods ---

// UnmarshalYAML decodes the subpackage mapping keeping key order.
// A package with a null page list is kept with no pages.
func (s *Subpackages) UnmarshalYAML(node *yaml.Node) error {
	if isNull(node) {
		*s = nil
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("subpackages: expected mapping, got %v", kindName(node.Kind))
	}

	pkgs := make(Subpackages, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var p Package
		if err := node.Content[i].Decode(&p.Name); err != nil {
			return fmt.Errorf("subpackages: invalid package name: %w", err)
		}

		if value := node.Content[i+1]; !isNull(value) {
			if err := value.Decode(&p.Pages); err != nil {
				return fmt.Errorf("subpackage %q: %w", p.Name, err)
			}
		}

		pkgs = append(pkgs, p)
	}

	*s = pkgs

	return nil
}

// --- PreloadRules YAML methods ---

// UnmarshalYAML decodes the preload rule mapping keeping key order.
func (p *PreloadRules) UnmarshalYAML(node *yaml.Node) error {
	if isNull(node) {
		*p = nil
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("preloadRule: expected mapping, got %v", kindName(node.Kind))
	}

	rules := make(PreloadRules, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var page string
		if err := node.Content[i].Decode(&page); err != nil {
			return fmt.Errorf("preloadRule: invalid page name: %w", err)
		}

		var rule PreloadRule
		if err := node.Content[i+1].Decode(&rule); err != nil {
			return fmt.Errorf("preloadRule %q: %w", page, err)
		}

		rule.Page = page
		rules = append(rules, rule)
	}

	*p = rules

	return nil
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}
