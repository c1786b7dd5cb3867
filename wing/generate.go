package wing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/soypat/multiwing/kernel"
	"github.com/soypat/multiwing/span"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNothingBuilt is returned when no loft or endplate solid could be built.
var ErrNothingBuilt = errors.New("wing: no solids built")

// Result summarizes a generation pass.
type Result struct {
	Stations  int
	Groups    int
	Lofts     int
	Endplates int
	// Domain is true if the wing was cut out of the fluid domain.
	Domain bool
	// Solid is the final solid handle, or -1 if none was built.
	Solid kernel.Solid
}

// Loft hands every group to k as an ordered curve sequence and lofts it.
// A failing group is logged and skipped. The returned error joins every
// group failure; the solids that were built are returned regardless.
func Loft(ctx context.Context, k kernel.Kernel, groups []LoftGroup, log *slog.Logger) ([]kernel.Solid, error) {
	if log == nil {
		log = slog.Default()
	}
	var (
		solids []kernel.Solid
		errs   []error
	)
	for gi, grp := range groups {
		if err := ctx.Err(); err != nil {
			return solids, errors.Join(append(errs, err)...)
		}
		s, err := loftGroup(k, grp)
		if err != nil {
			log.Warn("loft failed", "element", grp.Element+1, "first", grp.Stations[0], "stations", len(grp.Stations), "err", err)
			errs = append(errs, fmt.Errorf("loft group %d (element %d): %w", gi, grp.Element+1, err))
			continue
		}
		log.Debug("lofted", "element", grp.Element+1, "first", grp.Stations[0], "stations", len(grp.Stations))
		solids = append(solids, s)
	}
	return solids, errors.Join(errs...)
}

func loftGroup(k kernel.Kernel, grp LoftGroup) (kernel.Solid, error) {
	curves := make([]kernel.Curve, len(grp.Curves))
	for i, pts := range grp.Curves {
		c, err := k.AddCurve(pts)
		if err != nil {
			return -1, err
		}
		curves[i] = c
	}
	return k.Loft(curves)
}

// Generate runs a full generation pass: the wing is sampled at cfg.Sections
// stations, every loft group and endplate is built, the solids are fused and
// dilated by cfg.Scale, optionally cut out of the fluid domain, and exported
// to cfg.Output. Kernel failures on single lofts, endplates, the dilation or
// the domain cut are logged and joined into the returned error while the
// pass continues with what was built.
func Generate(ctx context.Context, k kernel.Kernel, g *span.Grid, plates []Endplate, cfg Config) (Result, error) {
	res := Result{Solid: -1}
	if err := cfg.Validate(); err != nil {
		return res, err
	}
	log := cfg.logger()

	zs := Stations(cfg.Sections)
	w := NewWireframe(Sections(g, zs))
	groups := w.LoftGroups()
	res.Stations, res.Groups = len(zs), len(groups)
	for j := 0; j < w.Elements(); j++ {
		n := 0
		for _, p := range w.Present(j) {
			if p {
				n++
			}
		}
		log.Debug("element presence", "element", j+1, "present", n, "stations", len(zs), "disabled", j < g.Elements() && g.Disabled(j))
	}

	var errs []error
	solids, err := Loft(ctx, k, groups, log)
	res.Lofts = len(solids)
	if err != nil {
		errs = append(errs, err)
		if ctx.Err() != nil {
			return res, errors.Join(errs...)
		}
	}

	for i, e := range plates {
		if err := ctx.Err(); err != nil {
			return res, errors.Join(append(errs, err)...)
		}
		s, err := buildEndplate(k, g, e)
		if err != nil {
			log.Warn("endplate failed", "row", i, "z", e.Z, "err", err)
			errs = append(errs, fmt.Errorf("endplate %d: %w", i, err))
			continue
		}
		solids = append(solids, s)
		res.Endplates++
	}
	if len(solids) == 0 {
		return res, errors.Join(append(errs, ErrNothingBuilt)...)
	}

	fused, err := k.Fuse(solids)
	if err != nil {
		return res, errors.Join(append(errs, fmt.Errorf("fuse: %w", err))...)
	}
	res.Solid = fused
	if cfg.Scale != 1 {
		if err := k.Dilate(fused, cfg.Scale); err != nil {
			log.Warn("dilate failed", "scale", cfg.Scale, "err", err)
			errs = append(errs, fmt.Errorf("dilate: %w", err))
		}
	}

	if cfg.Domain.Enabled {
		if err := ctx.Err(); err != nil {
			return res, errors.Join(append(errs, err)...)
		}
		fluid, err := buildDomain(k, fused, cfg)
		if err != nil {
			log.Warn("domain cut failed", "err", err)
			errs = append(errs, fmt.Errorf("domain: %w", err))
		} else {
			res.Solid, res.Domain = fluid, true
		}
	}

	if cfg.Output != "" {
		if err := ctx.Err(); err != nil {
			return res, errors.Join(append(errs, err)...)
		}
		if err := k.Export(cfg.Output, res.Solid); err != nil {
			errs = append(errs, fmt.Errorf("export: %w", err))
		} else {
			log.Info("exported", "path", cfg.Output)
		}
	}
	return res, errors.Join(errs...)
}

func buildEndplate(k kernel.Kernel, g *span.Grid, e Endplate) (kernel.Solid, error) {
	p, err := NewEndplateProfile(g, e)
	if err != nil {
		return -1, err
	}
	return p.Extrude(k)
}

func buildDomain(k kernel.Kernel, wing kernel.Solid, cfg Config) (kernel.Solid, error) {
	box, err := k.Extrude(cfg.Domain.Profile(cfg.Scale), r3.Vec{Z: cfg.Domain.Width})
	if err != nil {
		return -1, err
	}
	return k.Cut(box, wing)
}
