package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"mp-generator/internal/route"
)

// patternView is a compiled template as printed by the routes command.
type patternView struct {
	Template string   `json:"template" yaml:"template"`
	Regexp   string   `json:"regexp" yaml:"regexp"`
	Options  string   `json:"options" yaml:"options"`
	Params   []string `json:"params,omitempty" yaml:"params,omitempty"`
}

type routeView struct {
	Name     string        `json:"name" yaml:"name"`
	Patterns []patternView `json:"patterns" yaml:"patterns"`
}

type matchView struct {
	Path   string            `json:"path" yaml:"path"`
	Route  string            `json:"route,omitempty" yaml:"route,omitempty"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

func (a *app) routesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the compiled route table",
		Long: `Compile the router section of the options file and print every pattern in
the order the runtime tries them. With --match, print the route a path resolves to.`,
		Example: `  mp-generator routes -o json
  mp-generator routes --match /d/42`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runRoutes()
		},
	}

	cmd.Flags().StringP("output", "o", "table", "output format (table, json, yaml)")
	cmd.Flags().String("match", "", "resolve a path against the table")

	return cmd
}

func (a *app) runRoutes() error {
	format, err := ParseFormat(a.v.GetString("output"))
	if err != nil {
		return err
	}

	opts, err := a.loadOptions()
	if err != nil {
		return err
	}

	table, diags := route.NewCompiler(route.Options{}, a.logger).Compile(opts.Router)
	diags.Log(a.logger)

	f := &Formatter{Format: format, Writer: a.out}

	if path := a.v.GetString("match"); path != "" {
		return printMatch(f, table, path)
	}

	if format != FormatTable {
		return f.Print(routeViews(table))
	}

	data := TableData{Headers: []string{"Route", "Template", "Regexp", "Options", "Params"}}

	for _, r := range table {
		for _, p := range r.Patterns {
			data.Rows = append(data.Rows, []string{r.Name, p.Template, p.Source, p.Flags, strings.Join(p.Params, ",")})
		}
	}

	return f.PrintTable(data)
}

func routeViews(table route.Table) []routeView {
	views := make([]routeView, 0, len(table))

	for _, r := range table {
		v := routeView{Name: r.Name, Patterns: []patternView{}}
		for _, p := range r.Patterns {
			v.Patterns = append(v.Patterns, patternView{
				Template: p.Template,
				Regexp:   p.Source,
				Options:  p.Flags,
				Params:   p.Params,
			})
		}

		views = append(views, v)
	}

	return views
}

func printMatch(f *Formatter, table route.Table, path string) error {
	name, params, ok := table.Match(path)
	if !ok {
		return fmt.Errorf("no route matches %s", path)
	}

	if f.Format != FormatTable {
		return f.Print(matchView{Path: path, Route: name, Params: params})
	}

	data := TableData{Headers: []string{"Param", "Value"}}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		data.Rows = append(data.Rows, []string{k, params[k]})
	}

	if _, err := fmt.Fprintf(f.Writer, "%s -> %s\n", path, name); err != nil {
		return err
	}

	if len(data.Rows) == 0 {
		return nil
	}

	return f.PrintTable(data)
}
