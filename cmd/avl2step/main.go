package main

import (
	"flag"
	"fmt"
	"os"

	"avl2step/internal/config"
	"avl2step/internal/convert"
	"avl2step/internal/preview"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	keepLast := flag.Bool("keep-last", false, "Keep the last surface (excluded by default)")
	strict := flag.Bool("strict", false, "Abort on the first loft failure instead of skipping the surface")
	quiet := flag.Bool("quiet", false, "Suppress progress output")
	previewPath := flag.String("preview", "", "Also write a planform WebP preview to this path")
	points := flag.Int("points", 0, "Chordwise stations per side for generated NACA profiles (default: 80)")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: avl2step [flags] <input.avl> [output.step]")
		fmt.Fprintln(os.Stderr, "  Output defaults to the input base name with a .step extension.")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(1)
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		Points:   *points,
		KeepLast: *keepLast,
		Strict:   *strict,
		Preview:  *previewPath,
		Quiet:    *quiet,
	})

	opts := convert.Options{
		Input:              flag.Arg(0),
		ExcludeLastSurface: !cfg.KeepLastSurface,
		Strict:             cfg.Strict,
		Verbose:            !cfg.Quiet,
		Points:             cfg.Points,
	}
	if flag.NArg() == 2 {
		opts.Output = flag.Arg(1)
	}

	res, err := convert.Convert(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Preview != "" {
		img := preview.Planform(res.Model, 512)
		if err := preview.WriteWebP(img, cfg.Preview); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else if !cfg.Quiet {
			fmt.Printf("Preview: %s\n", cfg.Preview)
		}
	}

	if !cfg.Quiet {
		fmt.Printf("Surfaces: %d, shapes: %d\n", res.Surfaces, res.Shapes)
		for _, name := range res.Skipped {
			fmt.Printf("Skipped: %s\n", name)
		}
	}
}
