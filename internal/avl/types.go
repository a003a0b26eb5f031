package avl

// Section is one spanwise station of a Surface: a leading-edge placement,
// chord, incidence, and an airfoil reference.
type Section struct {
	Xle, Yle, Zle float64 // leading-edge offset in the surface frame
	Chord         float64
	Ainc          float64 // incidence (twist) in degrees
	Nspan         int     // vortex spacing hints, carried for inspection only
	Sspace        float64

	Airfoil string // AFILE data-file reference, "" if none
	NACA    string // NACA 4-digit code, "" if none
}

// Surface is an ordered stack of sections plus the surface-level directives
// that apply uniformly to all of them.
type Surface struct {
	Name      string
	Angle     float64    // surface-wide incidence added to every section's Ainc
	Scale     [3]float64 // per-axis scale, defaults to (1,1,1)
	Translate [3]float64
	YDup      *float64 // mirror plane y value when YDUPLICATE is present

	Sections []Section
}

// Model is the full ordered surface list parsed from one AVL document.
type Model struct {
	Title    string
	Surfaces []Surface
}
