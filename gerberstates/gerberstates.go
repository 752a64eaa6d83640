/*
################################## Gerber commands ######################################
*/
package gerberstates

import (
	"reflect"
	"strconv"

	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerbergen/xy"
)

// Value returns the command a pointer points to, other commands are returned
// as they are. A nil pointer gives nil.
func Value(cmd gbt.Command) gbt.Command {
	v := reflect.ValueOf(cmd)
	if !v.IsValid() || v.Kind() != reflect.Ptr {
		return cmd
	}
	if v.IsNil() {
		return nil
	}
	if c, ok := v.Elem().Interface().(gbt.Command); ok {
		return c
	}
	return cmd
}

// Line frames the command: function codes as <body>*, extended codes as %<body>*%
func Line(cmd gbt.Command) (string, error) {
	cmd = Value(cmd)
	if cmd == nil {
		return "", gbt.NewError(gbt.ErrCodeInvalidCommand, "nil command")
	}
	kind := cmd.Kind()
	switch kind {
	case gbt.KindFunctionCode, gbt.KindExtendedCode:
	default:
		return "", gbt.NewError(gbt.ErrCodeInvalidCommand, "bad command kind %d", kind)
	}
	body, err := cmd.Render()
	if err != nil {
		return "", err
	}
	if kind == gbt.KindExtendedCode {
		return gbt.GerberExtendedDelimiter + body + gbt.GerberFunctionTerminator + gbt.GerberExtendedDelimiter, nil
	}
	return body + gbt.GerberFunctionTerminator, nil
}

func badCode(what string, v int) error {
	return gbt.NewError(gbt.ErrCodeInvalidCommand, "bad %s %d", what, v)
}

/*
################################## function codes ######################################
*/

type functionCode struct{}

func (functionCode) Kind() gbt.CommandKind { return gbt.KindFunctionCode }

// InterpolationMode is G01, G02 or G03
type InterpolationMode struct {
	functionCode
	Mode gbt.IPmode
}

func NewInterpolationMode(mode gbt.IPmode) InterpolationMode {
	return InterpolationMode{Mode: mode}
}

func (im InterpolationMode) Render() (string, error) {
	if s, ok := im.Mode.Code(); ok {
		return s, nil
	}
	return "", badCode("interpolation mode", int(im.Mode))
}

// QuadrantMode is G74 or G75
type QuadrantMode struct {
	functionCode
	Mode gbt.QuadMode
}

func NewQuadrantMode(mode gbt.QuadMode) QuadrantMode {
	return QuadrantMode{Mode: mode}
}

func (qm QuadrantMode) Render() (string, error) {
	if s, ok := qm.Mode.Code(); ok {
		return s, nil
	}
	return "", badCode("quadrant mode", int(qm.Mode))
}

// RegionBegin is G36
type RegionBegin struct{ functionCode }

func (RegionBegin) Render() (string, error) { return "G36", nil }

// RegionEnd is G37
type RegionEnd struct{ functionCode }

func (RegionEnd) Render() (string, error) { return "G37", nil }

// Comment is G04, the text is written as is
type Comment struct {
	functionCode
	Text string
}

func NewComment(text string) Comment {
	return Comment{Text: text}
}

func (c Comment) Render() (string, error) {
	return "G04" + c.Text, nil
}

// SelectAperture is Dnn, nn >= 10
type SelectAperture struct {
	functionCode
	Code int
}

func NewSelectAperture(code int) SelectAperture {
	return SelectAperture{Code: code}
}

func (sa SelectAperture) Render() (string, error) {
	if sa.Code < gbt.MinApertureCode {
		return "", gbt.NewError(gbt.ErrCodeInvalidApertureCode,
			"aperture code D%d is reserved, codes start at %d", sa.Code, gbt.MinApertureCode)
	}
	return "D" + strconv.Itoa(sa.Code), nil
}

// Operation is D01, D02 or D03 with its coordinates. The I/J offset is
// used by circular D01 only.
type Operation struct {
	functionCode
	Action gbt.ActType
	Coords xy.Coordinates
	Offset xy.CoordinateOffset
}

// Interpolate is D01
func Interpolate(c xy.Coordinates, off xy.CoordinateOffset) Operation {
	return Operation{Action: gbt.OpcodeD01_DRAW, Coords: c, Offset: off}
}

// Move is D02
func Move(c xy.Coordinates) Operation {
	return Operation{Action: gbt.OpcodeD02_MOVE, Coords: c}
}

// Flash is D03
func Flash(c xy.Coordinates) Operation {
	return Operation{Action: gbt.OpcodeD03_FLASH, Coords: c}
}

// Render returns [X..][Y..][I..][J..]D0n
func (op Operation) Render() (string, error) {
	code, ok := op.Action.Code()
	if !ok {
		return "", badCode("operation", int(op.Action))
	}
	if !op.Offset.IsEmpty() && op.Action != gbt.OpcodeD01_DRAW {
		return "", gbt.NewError(gbt.ErrCodeInvalidCommand, "%s takes no I/J offset", code)
	}
	coords, err := op.Coords.Render()
	if err != nil {
		return "", err
	}
	offset, err := op.Offset.Render()
	if err != nil {
		return "", err
	}
	return coords + offset + code, nil
}

// EndOfFile is M02
type EndOfFile struct{ functionCode }

func (EndOfFile) Render() (string, error) { return "M02", nil }

/*
################################## extended codes ######################################
*/

type extendedCode struct{}

func (extendedCode) Kind() gbt.CommandKind { return gbt.KindExtendedCode }

// CoordinateFormat is FS
type CoordinateFormat struct {
	extendedCode
	Spec xy.FormatSpec
}

func NewCoordinateFormat(fs xy.FormatSpec) CoordinateFormat {
	return CoordinateFormat{Spec: fs}
}

func (cf CoordinateFormat) Render() (string, error) {
	s, err := cf.Spec.Render()
	if err != nil {
		return "", err
	}
	return gbt.GerberFormatSpec + s, nil
}

// Units is MO
type Units struct {
	extendedCode
	Unit gbt.Unit
}

func NewUnits(u gbt.Unit) Units {
	return Units{Unit: u}
}

func (u Units) Render() (string, error) {
	if s, ok := u.Unit.Code(); ok {
		return gbt.GerberUnits + s, nil
	}
	return "", badCode("unit", int(u.Unit))
}

// LoadPolarity is LP
type LoadPolarity struct {
	extendedCode
	Polarity gbt.PolType
}

func NewLoadPolarity(p gbt.PolType) LoadPolarity {
	return LoadPolarity{Polarity: p}
}

func (lp LoadPolarity) Render() (string, error) {
	if s, ok := lp.Polarity.Code(); ok {
		return gbt.GerberLoadPolarity + s, nil
	}
	return "", badCode("polarity", int(lp.Polarity))
}

// LoadMirroring is LM
type LoadMirroring struct {
	extendedCode
	Mirror gbt.Mirror
}

func NewLoadMirroring(m gbt.Mirror) LoadMirroring {
	return LoadMirroring{Mirror: m}
}

func (lm LoadMirroring) Render() (string, error) {
	if s, ok := lm.Mirror.Code(); ok {
		return gbt.GerberLoadMirroring + s, nil
	}
	return "", badCode("mirroring", int(lm.Mirror))
}

// LoadRotation is LR, degrees counterclockwise
type LoadRotation struct {
	extendedCode
	Degrees float64
}

func NewLoadRotation(degrees float64) LoadRotation {
	return LoadRotation{Degrees: degrees}
}

func (lr LoadRotation) Render() (string, error) {
	if !xy.IsFinite(lr.Degrees) {
		return "", gbt.NewError(gbt.ErrCodeInvalidParameter, "rotation %v is not a number", lr.Degrees)
	}
	return gbt.GerberLoadRotation + xy.FormatDecimal(lr.Degrees), nil
}

// LoadScaling is LS, the factor must be positive
type LoadScaling struct {
	extendedCode
	Factor float64
}

func NewLoadScaling(factor float64) LoadScaling {
	return LoadScaling{Factor: factor}
}

func (ls LoadScaling) Render() (string, error) {
	if !xy.IsFinite(ls.Factor) || ls.Factor <= 0 {
		return "", gbt.NewError(gbt.ErrCodeInvalidParameter, "scale factor %v must be positive", ls.Factor)
	}
	return gbt.GerberLoadScaling + xy.FormatDecimal(ls.Factor), nil
}
