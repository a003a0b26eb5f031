// inspectavl dumps the parsed structure of an AVL file: surfaces, directives,
// and section tables. Useful for checking what the converter will see before
// running it.
package main

import (
	"flag"
	"fmt"
	"os"

	"avl2step/internal/avl"
	"avl2step/internal/geom"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: inspectavl <input.avl>")
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	model, err := avl.ParseFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Title: %s\n", model.Title)
	fmt.Printf("Surfaces: %d\n", len(model.Surfaces))

	for i := range model.Surfaces {
		s := &model.Surfaces[i]
		fmt.Printf("\n[%d] %s\n", i, s.Name)
		fmt.Printf("    angle=%g scale=(%g %g %g) translate=(%g %g %g)\n",
			s.Angle, s.Scale[0], s.Scale[1], s.Scale[2],
			s.Translate[0], s.Translate[1], s.Translate[2])
		if s.YDup != nil {
			fmt.Printf("    yduplicate about y=%g\n", *s.YDup)
		}
		if axis, err := geom.SpanAxis(s); err == nil {
			fmt.Printf("    loft axis: %s\n", axis)
		} else {
			fmt.Printf("    loft axis: %v\n", err)
		}
		fmt.Printf("    %-10s %-10s %-10s %-10s %-8s %s\n", "Xle", "Yle", "Zle", "Chord", "Ainc", "Airfoil")
		for _, sec := range s.Sections {
			af := sec.Airfoil
			if sec.NACA != "" {
				af = "NACA " + sec.NACA
			}
			fmt.Printf("    %-10.4f %-10.4f %-10.4f %-10.4f %-8.3f %s\n",
				sec.Xle, sec.Yle, sec.Zle, sec.Chord, sec.Ainc, af)
		}
	}
}
