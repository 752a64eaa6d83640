//
// Standard aperture templates and aperture definitions (AD), 4.3
package apertures

import (
	"strconv"
	"strings"

	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerbergen/xy"
)

// Template is the shape part of an aperture definition.
// Render returns the template name with its parameters, e.g. C,4X2.
type Template interface {
	Render() (string, error)
	Type() gbt.GerberApType
	Validate() error
}

/*
############################## definition #################################
*/

// Definition assigns a D code to a template. It is an extended code.
type Definition struct {
	Code     int
	Template Template
}

func NewDefinition(code int, template Template) Definition {
	return Definition{Code: code, Template: template}
}

func (apert Definition) Kind() gbt.CommandKind {
	return gbt.KindExtendedCode
}

// Render returns ADD<code><template>
func (apert Definition) Render() (string, error) {
	if apert.Code < gbt.MinApertureCode {
		return "", gbt.NewError(gbt.ErrCodeInvalidApertureCode,
			"aperture code D%d is reserved, codes start at %d", apert.Code, gbt.MinApertureCode)
	}
	if apert.Template == nil {
		return "", gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, "D%d has no template", apert.Code)
	}
	body, err := apert.Template.Render()
	if err != nil {
		return "", err
	}
	return gbt.GerberApertureDef + "D" + strconv.Itoa(apert.Code) + body, nil
}

func (apert Definition) String() string {
	if apert.Template == nil {
		return "Aperture D" + strconv.Itoa(apert.Code) + ": <nil>"
	}
	return "Aperture D" + strconv.Itoa(apert.Code) + ": " + apert.Template.Type().String()
}

/*
############################## helpers #################################
*/

func checkDimension(what string, v float64) error {
	if !xy.IsFiniteNonNegative(v) {
		return gbt.NewError(gbt.ErrCodeInvalidTemplateParameter,
			"%s must be a non-negative number, got %v", what, v)
	}
	return nil
}

func checkHole(hole *float64) error {
	if hole == nil {
		return nil
	}
	return checkDimension("hole diameter", *hole)
}

// joins the parameters with the X separator
func joinParams(params ...float64) string {
	s := make([]string, len(params))
	for i := range params {
		s[i] = xy.FormatDecimal(params[i])
	}
	return strings.Join(s, "X")
}

func withOptional(params []float64, hole *float64) []float64 {
	if hole != nil {
		params = append(params, *hole)
	}
	return params
}

/*
############################## circle #################################
*/

type Circle struct {
	Diameter     float64
	HoleDiameter *float64
}

func NewCircle(diameter float64) Circle {
	return Circle{Diameter: diameter}
}

func (c Circle) WithHole(holeDiameter float64) Circle {
	c.HoleDiameter = &holeDiameter
	return c
}

func (c Circle) Type() gbt.GerberApType {
	return gbt.AptypeCircle
}

func (c Circle) Validate() error {
	if err := checkDimension("circle diameter", c.Diameter); err != nil {
		return err
	}
	return checkHole(c.HoleDiameter)
}

func (c Circle) Render() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	return "C," + joinParams(withOptional([]float64{c.Diameter}, c.HoleDiameter)...), nil
}

/*
############################## rectangle and obround #################################
*/

type Rectangle struct {
	XSize        float64
	YSize        float64
	HoleDiameter *float64
}

func NewRectangle(xSize, ySize float64) Rectangle {
	return Rectangle{XSize: xSize, YSize: ySize}
}

func (r Rectangle) WithHole(holeDiameter float64) Rectangle {
	r.HoleDiameter = &holeDiameter
	return r
}

func (r Rectangle) Type() gbt.GerberApType {
	return gbt.AptypeRectangle
}

func (r Rectangle) Validate() error {
	return validateBox(r.XSize, r.YSize, r.HoleDiameter)
}

func (r Rectangle) Render() (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	return "R," + joinParams(withOptional([]float64{r.XSize, r.YSize}, r.HoleDiameter)...), nil
}

// Obround is a rectangle with rounded short sides
type Obround struct {
	XSize        float64
	YSize        float64
	HoleDiameter *float64
}

func NewObround(xSize, ySize float64) Obround {
	return Obround{XSize: xSize, YSize: ySize}
}

func (o Obround) WithHole(holeDiameter float64) Obround {
	o.HoleDiameter = &holeDiameter
	return o
}

func (o Obround) Type() gbt.GerberApType {
	return gbt.AptypeObround
}

func (o Obround) Validate() error {
	return validateBox(o.XSize, o.YSize, o.HoleDiameter)
}

func (o Obround) Render() (string, error) {
	if err := o.Validate(); err != nil {
		return "", err
	}
	return "O," + joinParams(withOptional([]float64{o.XSize, o.YSize}, o.HoleDiameter)...), nil
}

func validateBox(xSize, ySize float64, hole *float64) error {
	if err := checkDimension("X size", xSize); err != nil {
		return err
	}
	if err := checkDimension("Y size", ySize); err != nil {
		return err
	}
	return checkHole(hole)
}

/*
############################## polygon #################################
*/

const (
	MinPolygonVertices = 3
	MaxPolygonVertices = 12
)

// Polygon is a regular polygon given by its circumscribed circle
type Polygon struct {
	OuterDiameter float64
	Vertices      int
	Rotation      *float64 // degrees, counterclockwise
	HoleDiameter  *float64
}

func NewPolygon(outerDiameter float64, vertices int) Polygon {
	return Polygon{OuterDiameter: outerDiameter, Vertices: vertices}
}

func (p Polygon) WithRotation(degrees float64) Polygon {
	p.Rotation = &degrees
	return p
}

func (p Polygon) WithHole(holeDiameter float64) Polygon {
	p.HoleDiameter = &holeDiameter
	return p
}

func (p Polygon) Type() gbt.GerberApType {
	return gbt.AptypePoly
}

func (p Polygon) Validate() error {
	if err := checkDimension("polygon diameter", p.OuterDiameter); err != nil {
		return err
	}
	if p.Vertices < MinPolygonVertices || p.Vertices > MaxPolygonVertices {
		return gbt.NewError(gbt.ErrCodeInvalidTemplateParameter,
			"polygon vertices must be in [%d,%d], got %d", MinPolygonVertices, MaxPolygonVertices, p.Vertices)
	}
	if p.Rotation != nil && !xy.IsFinite(*p.Rotation) {
		return gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, "polygon rotation %v is not a number", *p.Rotation)
	}
	return checkHole(p.HoleDiameter)
}

// Render returns P,<diameter>X<vertices>[X<rotation>[X<hole>]].
// The hole needs the rotation position, 0 is emitted when no rotation is set.
func (p Polygon) Render() (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	s := "P," + xy.FormatDecimal(p.OuterDiameter) + "X" + strconv.Itoa(p.Vertices)
	switch {
	case p.Rotation != nil:
		s += "X" + xy.FormatDecimal(*p.Rotation)
	case p.HoleDiameter != nil:
		s += "X0"
	}
	if p.HoleDiameter != nil {
		s += "X" + xy.FormatDecimal(*p.HoleDiameter)
	}
	return s, nil
}

/*
############################## macro #################################
*/

// Macro instantiates an aperture macro defined by an AM command
type Macro struct {
	Name   string
	Params []float64
}

func NewMacro(name string, params ...float64) Macro {
	return Macro{Name: name, Params: append([]float64(nil), params...)}
}

func (m Macro) Type() gbt.GerberApType {
	return gbt.AptypeMacro
}

func (m Macro) Validate() error {
	if err := ValidateName(m.Name); err != nil {
		return err
	}
	for i, v := range m.Params {
		if !xy.IsFinite(v) {
			return gbt.NewError(gbt.ErrCodeInvalidTemplateParameter,
				"macro %s parameter %d is not a number", m.Name, i+1)
		}
	}
	return nil
}

// Render returns <name>[,<p1>X<p2>...]
func (m Macro) Render() (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	if len(m.Params) == 0 {
		return m.Name, nil
	}
	return m.Name + "," + joinParams(m.Params...), nil
}

// ValidateName checks a macro name: a letter, _, . or $ followed by
// letters, digits, _, . and $; the standard template names are reserved.
func ValidateName(name string) error {
	if len(name) == 0 {
		return gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, "empty macro name")
	}
	switch name {
	case "C", "R", "O", "P":
		return gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, "macro name %s is reserved", name)
	}
	for i, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '.', c == '$':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, "bad character %q in macro name %q", c, name)
		}
	}
	return nil
}
