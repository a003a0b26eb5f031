package avl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseError reports malformed AVL input with its 1-based line number.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("avl: line %d: %s", e.Line, e.Msg)
}

// Parser state follows AVL's positional keyword scoping: a keyword applies to
// whichever surface/section context precedes it.
type state int

const (
	stateHeader  state = iota // before the first SURFACE keyword
	stateSurface              // inside a SURFACE, before its first SECTION
	stateSection              // inside a SECTION
	stateIgnored              // inside a BODY or other skipped block
)

// ParseFile reads path and parses it as an AVL document.
func ParseFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("avl: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads line-oriented AVL text into a Model. Comment lines (# or !) and
// blank lines are tolerated anywhere. Parsing is all-or-nothing: on any
// *ParseError no Model is returned.
func Parse(r io.Reader) (*Model, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("avl: read input: %w", err)
	}

	p := &parser{lines: lines, model: &Model{}, state: stateHeader, curSurf: -1, curSec: -1}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.model, nil
}

type parser struct {
	lines []string
	i     int // current line index (0-based)
	model *Model

	state   state
	curSurf int // index into model.Surfaces, -1 before the first
	curSec  int // index into current surface's Sections, -1 before the first

	titleSet bool
}

func isComment(line string) bool {
	return strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!")
}

// keyword returns the normalized 4-letter keyword prefix of a line, or "" if
// the line does not begin with a keyword-shaped token. AVL matches keywords
// on their first four characters.
func keyword(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	tok := strings.ToUpper(fields[0])
	if tok[0] < 'A' || tok[0] > 'Z' {
		return ""
	}
	if len(tok) > 4 {
		tok = tok[:4]
	}
	return tok
}

func (p *parser) run() error {
	for p.i < len(p.lines) {
		line := p.lines[p.i]
		if line == "" || isComment(line) {
			p.i++
			continue
		}

		// The first content line is the free-text title, taken verbatim. It
		// must not reach keyword dispatch: titles like "Transall C-160" or
		// "Scaled Demo" start with directive prefixes.
		if p.state == stateHeader && !p.titleSet {
			p.model.Title = line
			p.titleSet = true
			p.i++
			continue
		}

		kw := keyword(line)
		switch kw {
		case "SURF":
			if err := p.startSurface(); err != nil {
				return err
			}
		case "BODY":
			// Fuselage bodies carry no lofted sections; skip the block.
			p.state = stateIgnored
			p.curSurf = -1
			p.curSec = -1
			p.i++
		case "SECT":
			if err := p.startSection(); err != nil {
				return err
			}
		case "YDUP":
			if err := p.readYDup(); err != nil {
				return err
			}
		case "SCAL":
			if err := p.readSurfaceVec("SCALE"); err != nil {
				return err
			}
		case "TRAN":
			if err := p.readSurfaceVec("TRANSLATE"); err != nil {
				return err
			}
		case "ANGL":
			if err := p.readAngle(); err != nil {
				return err
			}
		case "AFIL":
			if err := p.readAirfoilFile(); err != nil {
				return err
			}
		case "NACA":
			if err := p.readNACA(); err != nil {
				return err
			}
		default:
			// Header payload before the first SURFACE (Mach, symmetry and
			// reference lines), and aerodynamic-only keywords inside a
			// surface (CONTROL, CDCL, CLAF, NOWAKE, ...) are skipped.
			p.i++
		}
	}

	return nil
}

func (p *parser) surface() *Surface {
	return &p.model.Surfaces[p.curSurf]
}

func (p *parser) startSurface() error {
	nameLine := p.nextContent(p.i + 1)
	if nameLine < 0 {
		return &ParseError{Line: p.i + 1, Msg: "SURFACE without a name line"}
	}

	p.model.Surfaces = append(p.model.Surfaces, Surface{
		Name:  p.lines[nameLine],
		Scale: [3]float64{1, 1, 1},
	})
	p.curSurf = len(p.model.Surfaces) - 1
	p.curSec = -1
	p.state = stateSurface
	p.i = nameLine + 1
	return nil
}

func (p *parser) startSection() error {
	if p.state == stateHeader {
		return &ParseError{Line: p.i + 1, Msg: "SECTION before any SURFACE"}
	}
	if p.state == stateIgnored {
		p.i++
		return nil
	}

	vals, last, err := p.readValues(p.i, 4)
	if err != nil {
		return err
	}
	sec := Section{
		Xle:   vals[0],
		Yle:   vals[1],
		Zle:   vals[2],
		Chord: vals[3],
	}
	// Optional trailing fields on the data line: Ainc [Nspan Sspace].
	extra := strings.Fields(p.lines[last])
	if last == p.i {
		extra = extra[1:] // values were on the keyword line
	}
	if len(extra) >= 5 {
		a, err := strconv.ParseFloat(extra[4], 64)
		if err != nil {
			return &ParseError{Line: last + 1, Msg: fmt.Sprintf("bad incidence %q", extra[4])}
		}
		sec.Ainc = a
	}
	if len(extra) >= 7 {
		if n, err := strconv.Atoi(extra[5]); err == nil {
			sec.Nspan = n
		}
		if s, err := strconv.ParseFloat(extra[6], 64); err == nil {
			sec.Sspace = s
		}
	}

	s := p.surface()
	s.Sections = append(s.Sections, sec)
	p.curSec = len(s.Sections) - 1
	p.state = stateSection
	p.i = last + 1
	return nil
}

func (p *parser) readYDup() error {
	if p.state == stateIgnored {
		p.i++
		return nil
	}
	if p.curSurf < 0 {
		return &ParseError{Line: p.i + 1, Msg: "YDUPLICATE before any SURFACE"}
	}
	vals, last, err := p.readValues(p.i, 1)
	if err != nil {
		return err
	}
	y := vals[0]
	p.surface().YDup = &y
	p.i = last + 1
	return nil
}

func (p *parser) readSurfaceVec(name string) error {
	if p.state == stateIgnored {
		p.i++
		return nil
	}
	if p.curSurf < 0 {
		return &ParseError{Line: p.i + 1, Msg: name + " before any SURFACE"}
	}
	vals, last, err := p.readValues(p.i, 3)
	if err != nil {
		return err
	}
	s := p.surface()
	switch name {
	case "SCALE":
		s.Scale = [3]float64{vals[0], vals[1], vals[2]}
	case "TRANSLATE":
		s.Translate = [3]float64{vals[0], vals[1], vals[2]}
	}
	p.i = last + 1
	return nil
}

func (p *parser) readAngle() error {
	if p.state == stateIgnored {
		p.i++
		return nil
	}
	if p.curSurf < 0 {
		return &ParseError{Line: p.i + 1, Msg: "ANGLE before any SURFACE"}
	}
	vals, last, err := p.readValues(p.i, 1)
	if err != nil {
		return err
	}
	p.surface().Angle = vals[0]
	p.i = last + 1
	return nil
}

func (p *parser) readAirfoilFile() error {
	if p.state != stateSection {
		if p.state == stateIgnored {
			p.i++
			return nil
		}
		return &ParseError{Line: p.i + 1, Msg: "AFILE outside a SECTION"}
	}
	name, last, err := p.readToken(p.i)
	if err != nil {
		return err
	}
	// AFILE may carry a numeric X1 X2 chord range on the keyword line, with
	// the filename on the following line.
	if _, numErr := strconv.ParseFloat(name, 64); numErr == nil {
		src := p.nextContent(last + 1)
		if src < 0 {
			return &ParseError{Line: last + 1, Msg: "AFILE without a filename"}
		}
		name = strings.Fields(p.lines[src])[0]
		last = src
	}
	p.surface().Sections[p.curSec].Airfoil = name
	p.i = last + 1
	return nil
}

func (p *parser) readNACA() error {
	if p.state != stateSection {
		if p.state == stateIgnored {
			p.i++
			return nil
		}
		return &ParseError{Line: p.i + 1, Msg: "NACA outside a SECTION"}
	}
	code, last, err := p.readToken(p.i)
	if err != nil {
		return err
	}
	p.surface().Sections[p.curSec].NACA = code
	p.i = last + 1
	return nil
}

// nextContent returns the index of the next non-blank, non-comment line at or
// after start, or -1 when input is exhausted.
func (p *parser) nextContent(start int) int {
	for j := start; j < len(p.lines); j++ {
		if p.lines[j] != "" && !isComment(p.lines[j]) {
			return j
		}
	}
	return -1
}

// readValues reads n floats belonging to the keyword at line index i. AVL
// allows the values on the keyword line itself or on the next content line.
// Returns the values and the index of the line they came from.
func (p *parser) readValues(i, n int) ([]float64, int, error) {
	fields := strings.Fields(p.lines[i])
	src := i
	if len(fields) >= n+1 {
		fields = fields[1:]
	} else {
		src = p.nextContent(i + 1)
		if src < 0 {
			return nil, 0, &ParseError{Line: i + 1, Msg: fmt.Sprintf("expected %d values after %s", n, fields[0])}
		}
		fields = strings.Fields(p.lines[src])
	}
	if len(fields) < n {
		return nil, 0, &ParseError{Line: src + 1, Msg: fmt.Sprintf("expected %d values, found %d", n, len(fields))}
	}

	vals := make([]float64, n)
	for k := 0; k < n; k++ {
		v, err := strconv.ParseFloat(fields[k], 64)
		if err != nil {
			return nil, 0, &ParseError{Line: src + 1, Msg: fmt.Sprintf("bad numeric field %q", fields[k])}
		}
		vals[k] = v
	}
	return vals, src, nil
}

// readToken reads a single string argument for the keyword at line index i,
// from the keyword line or the next content line.
func (p *parser) readToken(i int) (string, int, error) {
	fields := strings.Fields(p.lines[i])
	if len(fields) >= 2 {
		return fields[1], i, nil
	}
	src := p.nextContent(i + 1)
	if src < 0 {
		return "", 0, &ParseError{Line: i + 1, Msg: fmt.Sprintf("expected a value after %s", fields[0])}
	}
	return strings.Fields(p.lines[src])[0], src, nil
}
