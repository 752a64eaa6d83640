//Aperture Macros support, 4.5
package amprocessor

import (
	"math"
	"strconv"
	"strings"

	"github.com/akavel/polyclip-go"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/VasiliyTurchenko/gerbergen/apertures"
	"github.com/VasiliyTurchenko/gerbergen/calculator"
	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
)

// outline limits, 4.5.1.6
const (
	MinOutlinePoints = 1
	MaxOutlinePoints = 5000
)

// Statement is one line of an aperture macro body: a primitive or a variable definition
type Statement interface {
	// returns the statement text without the terminating *
	Render() (string, error)
	// checks the modifiers which are constants
	Validate() error
}

type AMPrimitiveType int

const (
	AMPrimitive_Comment    AMPrimitiveType = 0
	AMPrimitive_Circle     AMPrimitiveType = 1
	AMPrimitive_VectLine   AMPrimitiveType = 20
	AMPrimitive_CenterLine AMPrimitiveType = 21
	AMPRimitive_OutLine    AMPrimitiveType = 4
	AMPrimitive_Polygon    AMPrimitiveType = 5
	AMPrimitive_Moire      AMPrimitiveType = 6
	AMPrimitive_Thermal    AMPrimitiveType = 7
)

func (amp AMPrimitiveType) String() string {
	var retVal string
	switch amp {
	case AMPrimitive_Comment:
		retVal = "comment"
	case AMPrimitive_Circle:
		retVal = "circle"
	case AMPrimitive_VectLine:
		retVal = "vector line"
	case AMPrimitive_CenterLine:
		retVal = "center line"
	case AMPRimitive_OutLine:
		retVal = "outline"
	case AMPrimitive_Polygon:
		retVal = "polygon"
	case AMPrimitive_Moire:
		retVal = "moire"
	case AMPrimitive_Thermal:
		retVal = "thermal"
	default:
		retVal = "unknown"
	}
	return retVal
}

// exposure modifiers
var (
	ExposureOff = calculator.Const(0)
	ExposureOn  = calculator.Const(1)
)

// Exposure returns the constant exposure modifier
func Exposure(on bool) *calculator.Operand {
	if on {
		return ExposureOn
	}
	return ExposureOff
}

/*
############################## AM container #################################
*/

// ApertureMacro is the AM extended code
type ApertureMacro struct {
	Name    string
	Content []Statement
}

func NewApertureMacro(name string, content ...Statement) ApertureMacro {
	return ApertureMacro{Name: name, Content: append([]Statement(nil), content...)}
}

func (am ApertureMacro) Kind() gbt.CommandKind {
	return gbt.KindExtendedCode
}

// Render returns AM<name>*\n<statement>*\n...<statement>.
// The closing *% comes from the extended code framing.
func (am ApertureMacro) Render() (string, error) {
	if err := apertures.ValidateName(am.Name); err != nil {
		return "", err
	}
	if len(am.Content) == 0 {
		return "", gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, "aperture macro %s has no content", am.Name)
	}
	lines := make([]string, 0, len(am.Content)+1)
	lines = append(lines, gbt.GerberApertureMacroDef+am.Name)
	for i := range am.Content {
		if am.Content[i] == nil {
			return "", gbt.NewError(gbt.ErrCodeInvalidTemplateParameter,
				"aperture macro %s: statement %d is nil", am.Name, i)
		}
		s, err := am.Content[i].Render()
		if err != nil {
			return "", wrapStatementError(err, "aperture macro %s: statement %d", am.Name, i)
		}
		lines = append(lines, s)
	}
	return strings.Join(lines, gbt.GerberFunctionTerminator+gbt.GerberLineSeparator), nil
}

// Apply returns the template which instantiates the macro in an AD command
func (am ApertureMacro) Apply(params ...float64) apertures.Macro {
	return apertures.NewMacro(am.Name, params...)
}

func (am ApertureMacro) String() string {
	return "Aperture macro " + am.Name + " (" + strconv.Itoa(len(am.Content)) + " statements)"
}

/*
############################## helpers #################################
*/

func orZero(op *calculator.Operand) *calculator.Operand {
	if op == nil {
		return calculator.Const(0)
	}
	return op
}

// renders <code>,<m1>,<m2>...
func renderModifiers(amp AMPrimitiveType, mods ...*calculator.Operand) (string, error) {
	s := make([]string, 0, len(mods)+1)
	s = append(s, strconv.Itoa(int(amp)))
	for i := range mods {
		m, err := mods[i].Render()
		if err != nil {
			return "", wrapStatementError(err, "%s modifier %d", amp.String(), i+1)
		}
		s = append(s, m)
	}
	return strings.Join(s, ","), nil
}

// keeps the code of a coded cause, other causes become template errors
func wrapStatementError(err error, format string, args ...any) error {
	code := gbt.GetCode(err)
	if code == "" {
		code = gbt.ErrCodeInvalidTemplateParameter
	}
	return gbt.WrapError(code, err, format, args...)
}

func badParameter(amp AMPrimitiveType, format string, args ...any) error {
	return gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, amp.String()+": "+format, args...)
}

// checks a constant modifier to be non-negative, expressions are left to the reader
func checkNonNegative(amp AMPrimitiveType, what string, op *calculator.Operand) error {
	if v, ok := op.Constant(); ok && v < 0 {
		return badParameter(amp, "%s must not be negative, got %v", what, v)
	}
	return nil
}

func checkExposure(amp AMPrimitiveType, op *calculator.Operand) error {
	if v, ok := op.Constant(); ok && v != 0 && v != 1 {
		return badParameter(amp, "exposure must be 0 or 1, got %v", v)
	}
	return nil
}

/*
############################## comment #################################
*/

type Comment struct {
	Text string
}

func (amp Comment) Validate() error {
	if strings.ContainsAny(amp.Text, "*%") {
		return badParameter(AMPrimitive_Comment, "text %q holds a reserved character", amp.Text)
	}
	return nil
}

func (amp Comment) Render() (string, error) {
	if err := amp.Validate(); err != nil {
		return "", err
	}
	return strconv.Itoa(int(AMPrimitive_Comment)) + " " + amp.Text, nil
}

/*
############################## circle #################################
*/

type Circle struct {
	Exposure *calculator.Operand
	Diameter *calculator.Operand
	CenterX  *calculator.Operand
	CenterY  *calculator.Operand
	Rotation *calculator.Operand // optional
}

func (amp Circle) Validate() error {
	if err := checkExposure(AMPrimitive_Circle, amp.Exposure); err != nil {
		return err
	}
	return checkNonNegative(AMPrimitive_Circle, "diameter", amp.Diameter)
}

func (amp Circle) Render() (string, error) {
	if err := amp.Validate(); err != nil {
		return "", err
	}
	mods := []*calculator.Operand{amp.Exposure, amp.Diameter, amp.CenterX, amp.CenterY}
	if amp.Rotation != nil {
		mods = append(mods, amp.Rotation)
	}
	return renderModifiers(AMPrimitive_Circle, mods...)
}

/*
############################## vector line #################################
*/

type VectorLine struct {
	Exposure *calculator.Operand
	Width    *calculator.Operand
	StartX   *calculator.Operand
	StartY   *calculator.Operand
	EndX     *calculator.Operand
	EndY     *calculator.Operand
	Rotation *calculator.Operand // nil is 0
}

func (amp VectorLine) Validate() error {
	if err := checkExposure(AMPrimitive_VectLine, amp.Exposure); err != nil {
		return err
	}
	return checkNonNegative(AMPrimitive_VectLine, "width", amp.Width)
}

func (amp VectorLine) Render() (string, error) {
	if err := amp.Validate(); err != nil {
		return "", err
	}
	return renderModifiers(AMPrimitive_VectLine, amp.Exposure, amp.Width,
		amp.StartX, amp.StartY, amp.EndX, amp.EndY, orZero(amp.Rotation))
}

/*
############################## center line #################################
*/

type CenterLine struct {
	Exposure *calculator.Operand
	Width    *calculator.Operand
	Height   *calculator.Operand
	CenterX  *calculator.Operand
	CenterY  *calculator.Operand
	Rotation *calculator.Operand // nil is 0
}

func (amp CenterLine) Validate() error {
	if err := checkExposure(AMPrimitive_CenterLine, amp.Exposure); err != nil {
		return err
	}
	if err := checkNonNegative(AMPrimitive_CenterLine, "width", amp.Width); err != nil {
		return err
	}
	return checkNonNegative(AMPrimitive_CenterLine, "height", amp.Height)
}

func (amp CenterLine) Render() (string, error) {
	if err := amp.Validate(); err != nil {
		return "", err
	}
	return renderModifiers(AMPrimitive_CenterLine, amp.Exposure, amp.Width, amp.Height,
		amp.CenterX, amp.CenterY, orZero(amp.Rotation))
}

/*
############################## outline #################################
*/

type Vertex struct {
	X *calculator.Operand
	Y *calculator.Operand
}

func ConstVertex(x, y float64) Vertex {
	return Vertex{calculator.Const(x), calculator.Const(y)}
}

// Outline is a closed polygon: the first point is repeated as the last one
type Outline struct {
	Exposure *calculator.Operand
	Points   []Vertex
	Rotation *calculator.Operand // nil is 0
}

// NewOutlineFromContour builds an outline of constant points, the contour is closed if needed
func NewOutlineFromContour(exposure *calculator.Operand, c polyclip.Contour, rotation float64) Outline {
	points := make([]Vertex, 0, len(c)+1)
	for _, p := range c {
		points = append(points, ConstVertex(p.X, p.Y))
	}
	if len(c) > 0 && !c[0].Equals(c[len(c)-1]) {
		points = append(points, ConstVertex(c[0].X, c[0].Y))
	}
	return Outline{Exposure: exposure, Points: points, Rotation: calculator.Const(rotation)}
}

// NewOutlineFromVectors is NewOutlineFromContour for mgl64 points
func NewOutlineFromVectors(exposure *calculator.Operand, pts []mgl64.Vec2, rotation float64) Outline {
	c := make(polyclip.Contour, len(pts))
	for i := range pts {
		c[i] = polyclip.Point{X: pts[i].X(), Y: pts[i].Y()}
	}
	return NewOutlineFromContour(exposure, c, rotation)
}

// subsequent points, the start point is not counted
func (amp Outline) subsequent() int {
	return len(amp.Points) - 1
}

func (amp Outline) Validate() error {
	if err := checkExposure(AMPRimitive_OutLine, amp.Exposure); err != nil {
		return err
	}
	n := amp.subsequent()
	if n < MinOutlinePoints || n > MaxOutlinePoints {
		return badParameter(AMPRimitive_OutLine, "number of subsequent points must be in [%d,%d], got %d",
			MinOutlinePoints, MaxOutlinePoints, n)
	}
	first, last := amp.Points[0], amp.Points[n]
	x0, okx0 := first.X.Constant()
	y0, oky0 := first.Y.Constant()
	xn, okxn := last.X.Constant()
	yn, okyn := last.Y.Constant()
	if okx0 && oky0 && okxn && okyn {
		if !(polyclip.Point{X: x0, Y: y0}).Equals(polyclip.Point{X: xn, Y: yn}) {
			return badParameter(AMPRimitive_OutLine, "outline is not closed: (%v,%v) != (%v,%v)", x0, y0, xn, yn)
		}
	}
	return nil
}

func (amp Outline) Render() (string, error) {
	if err := amp.Validate(); err != nil {
		return "", err
	}
	mods := make([]*calculator.Operand, 0, 2*len(amp.Points)+3)
	mods = append(mods, amp.Exposure, calculator.Const(float64(amp.subsequent())))
	for _, p := range amp.Points {
		mods = append(mods, p.X, p.Y)
	}
	mods = append(mods, orZero(amp.Rotation))
	return renderModifiers(AMPRimitive_OutLine, mods...)
}

/*
############################## polygon #################################
*/

type Polygon struct {
	Exposure *calculator.Operand
	Vertices *calculator.Operand
	CenterX  *calculator.Operand
	CenterY  *calculator.Operand
	Diameter *calculator.Operand
	Rotation *calculator.Operand // nil is 0
}

func (amp Polygon) Validate() error {
	if err := checkExposure(AMPrimitive_Polygon, amp.Exposure); err != nil {
		return err
	}
	if v, ok := amp.Vertices.Constant(); ok {
		if v != math.Trunc(v) || v < apertures.MinPolygonVertices || v > apertures.MaxPolygonVertices {
			return badParameter(AMPrimitive_Polygon, "vertices must be an integer in [%d,%d], got %v",
				apertures.MinPolygonVertices, apertures.MaxPolygonVertices, v)
		}
	}
	return checkNonNegative(AMPrimitive_Polygon, "diameter", amp.Diameter)
}

func (amp Polygon) Render() (string, error) {
	if err := amp.Validate(); err != nil {
		return "", err
	}
	return renderModifiers(AMPrimitive_Polygon, amp.Exposure, amp.Vertices,
		amp.CenterX, amp.CenterY, amp.Diameter, orZero(amp.Rotation))
}

/*
############################## moire #################################
*/

type Moire struct {
	CenterX            *calculator.Operand
	CenterY            *calculator.Operand
	OuterDiameter      *calculator.Operand
	RingThickness      *calculator.Operand
	Gap                *calculator.Operand
	MaxRings           *calculator.Operand
	CrosshairThickness *calculator.Operand
	CrosshairLength    *calculator.Operand
	Rotation           *calculator.Operand // nil is 0
}

func (amp Moire) Validate() error {
	for _, m := range []struct {
		what string
		op   *calculator.Operand
	}{
		{"outer diameter", amp.OuterDiameter},
		{"ring thickness", amp.RingThickness},
		{"gap", amp.Gap},
		{"max rings", amp.MaxRings},
		{"crosshair thickness", amp.CrosshairThickness},
		{"crosshair length", amp.CrosshairLength},
	} {
		if err := checkNonNegative(AMPrimitive_Moire, m.what, m.op); err != nil {
			return err
		}
	}
	return nil
}

func (amp Moire) Render() (string, error) {
	if err := amp.Validate(); err != nil {
		return "", err
	}
	return renderModifiers(AMPrimitive_Moire, amp.CenterX, amp.CenterY, amp.OuterDiameter,
		amp.RingThickness, amp.Gap, amp.MaxRings, amp.CrosshairThickness, amp.CrosshairLength,
		orZero(amp.Rotation))
}

/*
############################## thermal #################################
*/

type Thermal struct {
	CenterX       *calculator.Operand
	CenterY       *calculator.Operand
	OuterDiameter *calculator.Operand
	InnerDiameter *calculator.Operand
	Gap           *calculator.Operand
	Rotation      *calculator.Operand // nil is 0
}

func (amp Thermal) Validate() error {
	if err := checkNonNegative(AMPrimitive_Thermal, "inner diameter", amp.InnerDiameter); err != nil {
		return err
	}
	if err := checkNonNegative(AMPrimitive_Thermal, "gap", amp.Gap); err != nil {
		return err
	}
	outer, okOuter := amp.OuterDiameter.Constant()
	if !okOuter {
		return nil
	}
	if inner, ok := amp.InnerDiameter.Constant(); ok && outer <= inner {
		return badParameter(AMPrimitive_Thermal, "outer diameter %v must exceed inner diameter %v", outer, inner)
	}
	// the gaps must not cut the ring into more than four pieces
	if gap, ok := amp.Gap.Constant(); ok && gap >= outer/math.Sqrt2 {
		return badParameter(AMPrimitive_Thermal, "gap %v must be less than %v", gap, outer/math.Sqrt2)
	}
	return nil
}

func (amp Thermal) Render() (string, error) {
	if err := amp.Validate(); err != nil {
		return "", err
	}
	return renderModifiers(AMPrimitive_Thermal, amp.CenterX, amp.CenterY, amp.OuterDiameter,
		amp.InnerDiameter, amp.Gap, orZero(amp.Rotation))
}

/*
############################## variables #################################
*/

// VariableDefinition assigns an expression to $n for the statements which follow
type VariableDefinition struct {
	Number int
	Value  *calculator.Operand
}

func (amv VariableDefinition) Validate() error {
	if amv.Number < 1 {
		return gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, "bad variable number %d", amv.Number)
	}
	if amv.Value == nil {
		return gbt.NewError(gbt.ErrCodeInvalidTemplateParameter, "variable $%d has no value", amv.Number)
	}
	return nil
}

// Render returns $n=<expression>
func (amv VariableDefinition) Render() (string, error) {
	if err := amv.Validate(); err != nil {
		return "", err
	}
	v, err := amv.Value.Render()
	if err != nil {
		return "", err
	}
	return "$" + strconv.Itoa(amv.Number) + "=" + v, nil
}

func (amv VariableDefinition) String() string {
	return "$" + strconv.Itoa(amv.Number) + "=" + amv.Value.String()
}
