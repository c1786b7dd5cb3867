package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/soypat/multiwing/diagram"
	"github.com/soypat/multiwing/span"
	"github.com/soypat/multiwing/wing"
	"github.com/spf13/cobra"
)

var (
	inspectStrict bool
	inspectChart  string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <case-dir>",
	Short: "Print element presence over the span stations and the loft groups",
	Long: `Evaluate the case at every span station and print a table of which
elements are present ('#') or absent ('.'), followed by the loft groups
a generation pass would build and the state of each endplate.
With --chart the spanwise distribution of one control quantity is drawn
in the terminal, one series per element.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntP("sections", "n", 50, "Number of span stations")
	inspectCmd.Flags().BoolVar(&inspectStrict, "strict", false, "Abort on configuration errors instead of disabling elements")
	inspectCmd.Flags().StringVar(&inspectChart, "chart", "", "Chart a control quantity (u1..u6, l1..l6, a, xoff, yoff, ovlp, sl, scl)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	dir := args[0]
	cfg, err := runConfig(cmd, dir)
	if err != nil {
		return err
	}
	c, g, err := loadGrid(dir, inspectStrict)
	if err != nil {
		return err
	}
	w := wing.NewWireframe(wing.Sections(g, wing.Stations(cfg.Sections)))

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := []string{"STATION", "Z"}
	for j := 0; j < w.Elements(); j++ {
		name := fmt.Sprintf("E%d", j+1)
		if g.Disabled(j) {
			name += "(off)"
		}
		header = append(header, name)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for i := 0; i < w.Stations(); i++ {
		row := []string{fmt.Sprint(i), fmt.Sprintf("%.4f", w.Z(i))}
		for j := 0; j < w.Elements(); j++ {
			mark := "."
			if w.At(i, j).Present() {
				mark = "#"
			}
			row = append(row, mark)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ELEMENT\tFIRST\tLAST\tSECTIONS\tZ")
	for _, grp := range w.LoftGroups() {
		first, last := grp.Stations[0], grp.Stations[len(grp.Stations)-1]
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%.4f..%.4f\n", grp.Element+1, first, last, len(grp.Stations), w.Z(first), w.Z(last))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if inspectChart != "" {
		if err := chart(out, g, w, inspectChart); err != nil {
			return err
		}
	}

	if len(c.Endplates) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENDPLATE\tZ\tTHICKNESS\tSTATUS")
	for i, e := range c.Endplates {
		status := "ok"
		if _, err := wing.NewEndplateProfile(g, e); err != nil {
			status = err.Error()
		}
		fmt.Fprintf(tw, "%d\t%.4f\t%g\t%s\n", i, e.Z, e.Thickness, status)
	}
	return tw.Flush()
}

// chart draws quantity name of every element sampled at the wireframe
// stations. Elements that are undefined over the whole span are skipped.
func chart(out io.Writer, g *span.Grid, w *wing.Wireframe, name string) error {
	q, err := diagram.QuantityIndex(name)
	if err != nil {
		return err
	}
	var (
		series [][]float64
		legend []string
		colors []asciigraph.AnsiColor
	)
	for j := 0; j < g.Elements(); j++ {
		in := g.Interpolator(j, q)
		if in == nil {
			continue
		}
		vals := make([]float64, w.Stations())
		defined := false
		for i := range vals {
			vals[i] = in.At(w.Z(i))
			defined = defined || !math.IsNaN(vals[i])
		}
		if !defined {
			continue
		}
		series = append(series, vals)
		legend = append(legend, fmt.Sprintf("E%d", j+1))
		colors = append(colors, chartColors[len(colors)%len(chartColors)])
	}
	if len(series) == 0 {
		return fmt.Errorf("quantity %s: %w", name, diagram.ErrNoData)
	}
	graph := asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Caption(fmt.Sprintf("%s over %d stations", name, w.Stations())),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legend...),
	)
	_, err = fmt.Fprintf(out, "\n%s\n", graph)
	return err
}

var chartColors = []asciigraph.AnsiColor{
	asciigraph.Blue, asciigraph.Red, asciigraph.Green, asciigraph.Yellow, asciigraph.Magenta, asciigraph.Cyan,
}
