// Package step serializes a cad.CadModel to an ISO 10303-21 (STEP AP214)
// file. Each lofted shape becomes one ruled (degree 1×1) B-spline surface
// whose control net is exactly the placed section stack, so exported
// dimensions match the placed geometry without approximation.
package step

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"avl2step/internal/cad"
	"avl2step/internal/mathutil"
)

// ExportError reports an I/O or serialization failure. Export failures are
// fatal and never leave a partial file at the destination path.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("step: export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Write serializes the model to path. The file is written to a temporary
// sibling first and renamed into place on success; any failure removes the
// temporary and returns *ExportError.
func Write(m *cad.CadModel, path string) error {
	data := Encode(m, filepath.Base(path))

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".avl2step-*.step")
	if err != nil {
		return &ExportError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &ExportError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &ExportError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &ExportError{Path: path, Err: err}
	}
	return nil
}

// Encode renders the model as STEP part-21 text.
func Encode(m *cad.CadModel, filename string) []byte {
	w := &writer{}

	name := m.Name
	if name == "" {
		name = strings.TrimSuffix(filename, filepath.Ext(filename))
	}

	appCtx := w.entity("APPLICATION_CONTEXT('automotive design')")
	w.entity(fmt.Sprintf("APPLICATION_PROTOCOL_DEFINITION('international standard','automotive_design',2010,#%d)", appCtx))
	prodCtx := w.entity(fmt.Sprintf("PRODUCT_CONTEXT('',#%d,'mechanical')", appCtx))
	prod := w.entity(fmt.Sprintf("PRODUCT(%s,%s,'',(#%d))", str(name), str(name), prodCtx))
	defCtx := w.entity(fmt.Sprintf("PRODUCT_DEFINITION_CONTEXT('part definition',#%d,'design')", appCtx))
	formation := w.entity(fmt.Sprintf("PRODUCT_DEFINITION_FORMATION('','',#%d)", prod))
	prodDef := w.entity(fmt.Sprintf("PRODUCT_DEFINITION('design','',#%d,#%d)", formation, defCtx))
	prodShape := w.entity(fmt.Sprintf("PRODUCT_DEFINITION_SHAPE('','',#%d)", prodDef))

	lenUnit := w.entity("(LENGTH_UNIT()NAMED_UNIT(*)SI_UNIT(.MILLI.,.METRE.))")
	angUnit := w.entity("(NAMED_UNIT(*)PLANE_ANGLE_UNIT()SI_UNIT($,.RADIAN.))")
	solidUnit := w.entity("(NAMED_UNIT(*)SI_UNIT($,.STERADIAN.)SOLID_ANGLE_UNIT())")
	uncertainty := w.entity(fmt.Sprintf("UNCERTAINTY_MEASURE_WITH_UNIT(LENGTH_MEASURE(1.E-06),#%d,'distance_accuracy_value','')", lenUnit))
	geoCtx := w.entity(fmt.Sprintf(
		"(GEOMETRIC_REPRESENTATION_CONTEXT(3)GLOBAL_UNCERTAINTY_ASSIGNED_CONTEXT((#%d))GLOBAL_UNIT_ASSIGNED_CONTEXT((#%d,#%d,#%d))REPRESENTATION_CONTEXT('',''))",
		uncertainty, lenUnit, angUnit, solidUnit))

	origin := w.entity("CARTESIAN_POINT('',(0.,0.,0.))")
	axisZ := w.entity("DIRECTION('',(0.,0.,1.))")
	axisX := w.entity("DIRECTION('',(1.,0.,0.))")
	placement := w.entity(fmt.Sprintf("AXIS2_PLACEMENT_3D('',#%d,#%d,#%d)", origin, axisZ, axisX))

	items := []int{placement}
	for _, s := range m.Shapes {
		items = append(items, w.surface(s))
	}

	rep := w.entity(fmt.Sprintf("SHAPE_REPRESENTATION(%s,(%s),#%d)", str(name), refs(items), geoCtx))
	w.entity(fmt.Sprintf("SHAPE_DEFINITION_REPRESENTATION(#%d,#%d)", prodShape, rep))

	var out bytes.Buffer
	out.WriteString("ISO-10303-21;\n")
	out.WriteString("HEADER;\n")
	out.WriteString("FILE_DESCRIPTION(('AVL lofted surface model'),'2;1');\n")
	fmt.Fprintf(&out, "FILE_NAME(%s,%s,(''),(''),'avl2step','avl2step','');\n",
		str(filename), str(time.Now().UTC().Format("2006-01-02T15:04:05")))
	out.WriteString("FILE_SCHEMA(('AUTOMOTIVE_DESIGN { 1 0 10303 214 1 1 1 1 }'));\n")
	out.WriteString("ENDSEC;\n")
	out.WriteString("DATA;\n")
	out.Write(w.buf.Bytes())
	out.WriteString("ENDSEC;\n")
	out.WriteString("END-ISO-10303-21;\n")
	return out.Bytes()
}

type writer struct {
	buf bytes.Buffer
	id  int
}

// entity appends one instance and returns its id.
func (w *writer) entity(body string) int {
	w.id++
	fmt.Fprintf(&w.buf, "#%d=%s;\n", w.id, body)
	return w.id
}

// surface emits one lofted shape as a ruled B-spline surface. U runs
// spanwise over the section wires, V chordwise around the profile; closed
// profiles repeat their first point to close the loop explicitly.
func (w *writer) surface(s cad.Shape) int {
	nu := len(s.Wires)
	nv := len(s.Wires[0].Points)
	if s.Wires[0].Closed {
		nv++
	}

	rows := make([]string, nu)
	for i, wire := range s.Wires {
		ids := make([]int, 0, nv)
		for _, p := range wire.Points {
			ids = append(ids, w.point(p))
		}
		if wire.Closed {
			ids = append(ids, w.point(wire.Points[0]))
		}
		rows[i] = "(" + refs(ids) + ")"
	}

	return w.entity(fmt.Sprintf(
		"B_SPLINE_SURFACE_WITH_KNOTS(%s,1,1,(%s),.UNSPECIFIED.,.F.,.F.,.F.,(%s),(%s),(%s),(%s),.UNSPECIFIED.)",
		str(s.Name),
		strings.Join(rows, ","),
		mults(nu), mults(nv), knots(nu), knots(nv)))
}

func (w *writer) point(p mathutil.Vec3) int {
	return w.entity(fmt.Sprintf("CARTESIAN_POINT('',(%s,%s,%s))", fmtReal(p[0]), fmtReal(p[1]), fmtReal(p[2])))
}

// mults builds the degree-1 knot multiplicity list (2,1,...,1,2) for n
// control points.
func mults(n int) string {
	parts := make([]string, 0, n)
	parts = append(parts, "2")
	for i := 0; i < n-2; i++ {
		parts = append(parts, "1")
	}
	parts = append(parts, "2")
	return strings.Join(parts, ",")
}

// knots builds the distinct knot values 0.,1.,...,n-1. for n control points.
func knots(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmtReal(float64(i))
	}
	return strings.Join(parts, ",")
}

func refs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = "#" + strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// fmtReal formats a float as a STEP real: a decimal point is mandatory.
func fmtReal(v float64) string {
	s := strconv.FormatFloat(v, 'G', -1, 64)
	if i := strings.IndexAny(s, "Ee"); i >= 0 {
		if !strings.Contains(s[:i], ".") {
			s = s[:i] + "." + s[i:]
		}
		return s
	}
	if !strings.Contains(s, ".") {
		s += "."
	}
	return s
}

// str quotes a STEP string, doubling embedded apostrophes.
func str(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
