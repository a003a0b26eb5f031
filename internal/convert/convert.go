// Package convert wires the pipeline together: parse AVL text, resolve
// airfoils, place sections, loft each surface, duplicate mirrored siblings,
// and export the assembled compound as STEP.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"avl2step/internal/airfoil"
	"avl2step/internal/avl"
	"avl2step/internal/cad"
	"avl2step/internal/geom"
	"avl2step/internal/step"
)

// Options configures one conversion run.
type Options struct {
	Input  string // AVL file path
	Output string // STEP path; empty derives <input base>.step

	// ExcludeLastSurface drops the final surface in the model. AVL files
	// commonly end with a non-geometric reference surface, so this defaults
	// to true via DefaultOptions.
	ExcludeLastSurface bool

	// Strict aborts the whole run on the first loft failure. When false a
	// failing surface is reported and skipped.
	Strict bool

	Verbose bool

	// Points is the per-side station count for generated NACA profiles.
	Points int
}

// DefaultOptions returns the documented defaults for input.
func DefaultOptions(input string) Options {
	return Options{
		Input:              input,
		ExcludeLastSurface: true,
		Verbose:            true,
	}
}

// Result summarizes a completed run.
type Result struct {
	Output   string
	Surfaces int      // surfaces lofted (before Y-duplication)
	Shapes   int      // shapes in the exported compound
	Skipped  []string // surfaces skipped under non-strict loft failures
	Model    *cad.CadModel
}

// placedSurface is one surface fully resolved and ready to loft.
type placedSurface struct {
	surf    *avl.Surface
	profile []geom.PlacedProfile
}

// Convert runs the full pipeline. Parse, airfoil, and transform errors abort
// before any lofting; loft failures follow Options.Strict; export failures
// are always fatal.
func Convert(opts Options) (*Result, error) {
	if opts.Output == "" {
		opts.Output = strings.TrimSuffix(opts.Input, filepath.Ext(opts.Input)) + ".step"
	}

	if opts.Verbose {
		fmt.Printf("Input AVL file: %s\n", opts.Input)
		fmt.Printf("Output STEP file: %s\n", opts.Output)
	}

	model, err := avl.ParseFile(opts.Input)
	if err != nil {
		return nil, err
	}

	surfaces := model.Surfaces
	if opts.ExcludeLastSurface && len(surfaces) > 0 {
		surfaces = surfaces[:len(surfaces)-1]
	}
	if len(surfaces) == 0 {
		return nil, fmt.Errorf("convert: %s: no surfaces to loft", opts.Input)
	}

	resolver := airfoil.NewCache(filepath.Dir(opts.Input), opts.Points)

	// Phase 1: resolve and place everything. Any failure here aborts the run
	// before a single loft happens.
	placed := make([]placedSurface, 0, len(surfaces))
	for i := range surfaces {
		surf := &surfaces[i]
		if opts.Verbose {
			fmt.Printf("\nBuilding: %s\n", surf.Name)
		}

		axis, err := geom.SpanAxis(surf)
		if err != nil {
			return nil, err
		}
		if opts.Verbose {
			if axis == geom.AxisZ {
				fmt.Println("  vertical surface (spanwise in Z)")
			} else {
				fmt.Println("  horizontal surface (spanwise in Y)")
			}
		}

		profiles, err := resolveProfiles(resolver, surf, opts.Points)
		if err != nil {
			return nil, err
		}

		pp, err := geom.PlaceSurface(profiles, surf, axis)
		if err != nil {
			return nil, err
		}
		if opts.Verbose {
			for _, prof := range pp {
				fmt.Printf("  section %s=%.3f, chord=%.3f, pts=%d\n",
					axis, prof.Span, prof.Chord, len(prof.Points))
			}
		}
		placed = append(placed, placedSurface{surf: surf, profile: pp})
	}

	// Phase 2: loft and assemble.
	var shapes []cad.Shape
	var skipped []string
	lofted := 0
	for i, ps := range placed {
		shape, err := loftSurface(ps)
		if err != nil {
			if opts.Strict {
				return nil, err
			}
			fmt.Fprintf(os.Stderr, "  warning: surface %d (%s) skipped: %v\n", i, ps.surf.Name, err)
			skipped = append(skipped, ps.surf.Name)
			continue
		}
		lofted++
		shapes = append(shapes, shape)
		if ps.surf.YDup != nil {
			shapes = append(shapes, cad.MirrorY(shape, *ps.surf.YDup))
			if opts.Verbose {
				fmt.Printf("  duplicated across y=%g\n", *ps.surf.YDup)
			}
		}
	}
	if len(shapes) == 0 {
		return nil, fmt.Errorf("convert: %s: every surface failed to loft", opts.Input)
	}

	compound := cad.Compound(model.Title, shapes)
	if err := step.Write(compound, opts.Output); err != nil {
		return nil, err
	}
	if opts.Verbose {
		fmt.Printf("\nWrote %s\n", opts.Output)
	}

	return &Result{
		Output:   opts.Output,
		Surfaces: lofted,
		Shapes:   len(shapes),
		Skipped:  skipped,
		Model:    compound,
	}, nil
}

// resolveProfiles resolves one profile per section. The first explicit
// airfoil in the surface becomes the surface reference: sections without an
// airfoil inherit it, and every profile is resampled to its vertex count so
// the loft stack is consistent. Surfaces with no airfoil at all fall back to
// a flat plate.
func resolveProfiles(resolver airfoil.Resolver, surf *avl.Surface, points int) ([]airfoil.Profile, error) {
	specs := make([]string, len(surf.Sections))
	ref := ""
	for i, sec := range surf.Sections {
		switch {
		case sec.NACA != "":
			specs[i] = sec.NACA
		case sec.Airfoil != "":
			specs[i] = sec.Airfoil
		}
		if ref == "" && specs[i] != "" {
			ref = specs[i]
		}
	}

	var refProfile airfoil.Profile
	if ref == "" {
		refProfile = airfoil.FlatPlate(points)
	} else {
		p, err := resolver.Resolve(ref)
		if err != nil {
			return nil, err
		}
		refProfile = p
	}

	out := make([]airfoil.Profile, len(specs))
	for i, spec := range specs {
		if spec == "" || spec == ref {
			out[i] = refProfile
			continue
		}
		p, err := resolver.Resolve(spec)
		if err != nil {
			return nil, err
		}
		out[i] = airfoil.Resample(refProfile, p)
	}
	return out, nil
}

func loftSurface(ps placedSurface) (cad.Shape, error) {
	wires := make([]cad.Wire, len(ps.profile))
	for i, prof := range ps.profile {
		w, err := cad.BuildWire(prof.Points, true)
		if err != nil {
			return cad.Shape{}, &cad.LoftError{Surface: ps.surf.Name, Msg: err.Error()}
		}
		wires[i] = w
	}
	return cad.Loft(ps.surf.Name, wires)
}
