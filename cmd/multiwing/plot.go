package main

import (
	"errors"
	"fmt"

	"github.com/soypat/multiwing/diagram"
	"github.com/soypat/multiwing/wing"
	"github.com/spf13/cobra"
)

var (
	plotZ        float64
	plotQuantity string
	plotSamples  int
	plotOutput   string
)

var plotCmd = &cobra.Command{
	Use:   "plot <case-dir>",
	Short: "Draw a wing section or a spanwise control distribution",
	Long: `Draw the element outlines of the wing section at span fraction --z,
or the spanwise distribution of one control quantity (u1..u6, l1..l6,
a, xoff, yoff, ovlp, sl, scl) for every element.

Examples:
  multiwing plot ./CaseFolder --z 0.5 -o mid.png
  multiwing plot ./CaseFolder --quantity scl -o scale.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runPlot,
}

func init() {
	rootCmd.AddCommand(plotCmd)
	flags := plotCmd.Flags()
	flags.Float64Var(&plotZ, "z", 0, "Span fraction of the section to draw")
	flags.StringVarP(&plotQuantity, "quantity", "q", "", "Control quantity to draw along the span")
	flags.IntVar(&plotSamples, "samples", 200, "Samples per spanwise line")
	flags.StringVarP(&plotOutput, "output", "o", "plot.png", "Output image (.png, .svg, .pdf)")
	plotCmd.MarkFlagsMutuallyExclusive("z", "quantity")
}

func runPlot(cmd *cobra.Command, args []string) error {
	zSet := cmd.Flags().Changed("z")
	if !zSet && plotQuantity == "" {
		return errors.New("one of --z or --quantity is required")
	}
	_, g, err := loadGrid(args[0], false)
	if err != nil {
		return err
	}
	if zSet {
		err = diagram.SectionPlot(wing.NewSection(g.Eval(plotZ), plotZ), plotOutput)
	} else {
		var q int
		q, err = diagram.QuantityIndex(plotQuantity)
		if err != nil {
			return err
		}
		err = diagram.SpanPlot(g, q, plotSamples, plotOutput)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", plotOutput)
	return nil
}
