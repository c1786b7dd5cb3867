package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/soypat/multiwing/kernel"
	"github.com/soypat/multiwing/render"
	"github.com/soypat/multiwing/wing"
	"github.com/spf13/cobra"
)

var (
	genOutput  string
	genDomain  bool
	genDryRun  bool
	genPreview string
	genStrict  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <case-dir>",
	Short: "Loft the wing described by a case folder and export it",
	Long: `Build the cross-sections of every wing element at evenly spaced
span stations, loft each run of consecutive present sections, extrude
the endplates, fuse and scale everything and export an STL file.

Examples:
  # Generate with the defaults of the case configuration
  multiwing generate ./CaseFolder

  # 80 sections, no scaling, preview image
  multiwing generate ./CaseFolder --sections 80 --scale 1 --preview wing.png

  # List the kernel requests without building geometry
  multiwing generate ./CaseFolder --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	flags := generateCmd.Flags()
	flags.IntP("sections", "n", 50, "Number of span stations")
	flags.Float64P("scale", "s", 1.5, "Uniform scale applied to the fused geometry")
	flags.StringVarP(&genOutput, "output", "o", "", "Output file (default from configuration)")
	flags.BoolVar(&genDomain, "domain", false, "Cut the wing out of the fluid domain box")
	flags.BoolVar(&genDryRun, "dry-run", false, "Print kernel requests instead of building geometry")
	flags.StringVar(&genPreview, "preview", "", "Render a PNG preview of the exported STL")
	flags.BoolVar(&genStrict, "strict", false, "Abort on configuration errors instead of disabling elements")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	dir := args[0]
	cfg, err := runConfig(cmd, dir)
	if err != nil {
		return err
	}
	if genOutput != "" {
		cfg.Output = genOutput
	}
	if cmd.Flags().Changed("domain") {
		cfg.Domain.Enabled = genDomain
	}
	c, g, err := loadGrid(dir, genStrict)
	if err != nil {
		return err
	}

	var (
		k   kernel.Kernel
		rec *kernel.Recorder
	)
	if genDryRun {
		rec = &kernel.Recorder{}
		k = rec
		cfg.Output = ""
	} else {
		k = kernel.NewMesh()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	res, err := wing.Generate(ctx, k, g, c.Endplates, cfg)
	out := cmd.OutOrStdout()
	if rec != nil {
		if _, werr := rec.WriteTo(out); werr != nil {
			return werr
		}
	}
	fmt.Fprintf(out, "stations=%d groups=%d lofts=%d endplates=%d domain=%v\n",
		res.Stations, res.Groups, res.Lofts, res.Endplates, res.Domain)
	if err != nil {
		if res.Solid < 0 || genStrict || ctx.Err() != nil {
			return err
		}
		slog.Warn("generation completed with errors", "err", err)
	}
	if cfg.Output != "" {
		fmt.Fprintf(out, "wrote %s\n", cfg.Output)
	}
	if genPreview != "" && cfg.Output != "" {
		if err := render.PreviewPNG(cfg.Output, genPreview, render.DefaultView()); err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		fmt.Fprintf(out, "wrote %s\n", genPreview)
	}
	return nil
}
