package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mp-generator/internal/pipeline"
)

func (a *app) inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show where every asset is placed",
		Long: `Run the pipeline without writing anything and print each collected asset with
its kind, size, owning entries and output location.`,
		Example: `  mp-generator inspect --metafile meta.json --dist dist`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInspect(cmd.Context())
		},
	}

	cmd.Flags().StringP("output", "o", "table", "output format (table, json, yaml)")
	addHostFlags(cmd)

	return cmd
}

func (a *app) runInspect(ctx context.Context) error {
	format, err := ParseFormat(a.v.GetString("output"))
	if err != nil {
		return err
	}

	_, res, err := a.runPipeline(ctx)
	if err != nil {
		return err
	}

	f := &Formatter{Format: format, Writer: a.out}
	if err := f.PrintTable(placementTable(res)); err != nil {
		return err
	}

	if format != FormatTable {
		return nil
	}

	_, err = fmt.Fprintf(a.out, "\n%d assets, %d relocated, %s output\n",
		len(res.Collection.Paths()), len(res.Plan.Relocations()), humanize.Bytes(res.Size()))

	return err
}

// placementTable lists collected assets in first-seen order.
func placementTable(res *pipeline.Result) TableData {
	data := TableData{Headers: []string{"Asset", "Kind", "Size", "Owners", "Placement"}}

	for _, p := range res.Collection.Paths() {
		out := res.Plan.OutputPath(p)

		size := "-"
		if content, ok := res.Lookup(out); ok {
			size = humanize.Bytes(uint64(len(content)))
		}

		placement := "shared"
		if pkg := res.Plan.PackageOf(p); pkg != "" {
			placement = pkg
		}

		data.Rows = append(data.Rows, []string{
			p,
			res.Collection.Kinds[p].String(),
			size,
			strings.Join(res.Collection.Owners.Owners(p), ","),
			placement + " (" + out + ")",
		})
	}

	return data
}
