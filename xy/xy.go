package xy

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
)

// Gerber limits for the coordinate format, 4.1.1. Each field is limited
// on its own, a 6.6 format is valid.
const (
	MaxIntegerDigits = 6
	MaxDecimalDigits = 6
)

// decimal places kept by FormatDecimal
const decimalPrecision = 6

/*
############################ format specification #####################
*/

// Format specification object. Both axes share the same format.
type FormatSpec struct {
	IntegerDigits uint8 // digits in the integer part
	DecimalDigits uint8 // digits in the fractional part
	Suppression   gbt.ZeroSuppression
	Mode          gbt.CoordMode
}

// NewFormatSpec returns the usual X2 format: leading zero omission, absolute coordinates
func NewFormatSpec(integerDigits, decimalDigits uint8) FormatSpec {
	return FormatSpec{
		IntegerDigits: integerDigits,
		DecimalDigits: decimalDigits,
		Suppression:   gbt.SuppressLeading,
		Mode:          gbt.CoordModeAbsolute,
	}
}

func (fs FormatSpec) WithSuppression(zs gbt.ZeroSuppression) FormatSpec {
	fs.Suppression = zs
	return fs
}

func (fs FormatSpec) WithMode(cm gbt.CoordMode) FormatSpec {
	fs.Mode = cm
	return fs
}

// Width is the number of digits of an unsuppressed coordinate number
func (fs FormatSpec) Width() int {
	return int(fs.IntegerDigits) + int(fs.DecimalDigits)
}

func (fs FormatSpec) Validate() error {
	if fs.IntegerDigits < 1 || fs.IntegerDigits > MaxIntegerDigits {
		return gbt.NewError(gbt.ErrCodeNumberFormat,
			"integer digits must be in [1,%d], got %d", MaxIntegerDigits, fs.IntegerDigits)
	}
	if fs.DecimalDigits < 1 || fs.DecimalDigits > MaxDecimalDigits {
		return gbt.NewError(gbt.ErrCodeNumberFormat,
			"decimal digits must be in [1,%d], got %d", MaxDecimalDigits, fs.DecimalDigits)
	}
	if _, ok := fs.Suppression.Code(); !ok {
		return gbt.NewError(gbt.ErrCodeNumberFormat, "bad zero suppression %d", fs.Suppression)
	}
	if _, ok := fs.Mode.Code(); !ok {
		return gbt.NewError(gbt.ErrCodeNumberFormat, "bad coordinate mode %d", fs.Mode)
	}
	return nil
}

// Render returns the FS operands, e.g. LAX24Y24
func (fs FormatSpec) Render() (string, error) {
	if err := fs.Validate(); err != nil {
		return "", err
	}
	zs, _ := fs.Suppression.Code()
	cm, _ := fs.Mode.Code()
	digits := strconv.Itoa(int(fs.IntegerDigits)) + strconv.Itoa(int(fs.DecimalDigits))
	return zs + cm + "X" + digits + "Y" + digits, nil
}

func (fs FormatSpec) String() string {
	return "Format: " + strconv.Itoa(int(fs.IntegerDigits)) + "." + strconv.Itoa(int(fs.DecimalDigits)) +
		", " + fs.Suppression.String() + ", " + fs.Mode.String()
}

/*
############################ numbers #####################
*/

// FormatNumber converts v to a fixed point coordinate number of the format fs.
// The result never holds a decimal point. Values which do not fit into
// IntegerDigits+DecimalDigits digits are rejected, never truncated.
func FormatNumber(v float64, fs FormatSpec) (string, error) {
	if err := fs.Validate(); err != nil {
		return "", err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", gbt.NewError(gbt.ErrCodeNumberFormat, "value %v is not a finite number", v)
	}
	neg := v < 0
	width := fs.Width()
	scaled := math.Round(math.Abs(v) * math.Pow10(int(fs.DecimalDigits)))
	if scaled >= math.Pow10(width) {
		return "", gbt.NewError(gbt.ErrCodeNumberFormat,
			"value %v does not fit into %d integer and %d decimal digits", v, fs.IntegerDigits, fs.DecimalDigits)
	}
	n := int64(scaled)
	digits := strconv.FormatInt(n, 10)
	padded := strings.Repeat("0", width-len(digits)) + digits

	var out string
	switch fs.Suppression {
	case gbt.SuppressNone:
		out = padded
	case gbt.SuppressLeading:
		if n == 0 {
			out = "0"
		} else {
			out = strings.TrimLeft(padded, "0")
		}
	case gbt.SuppressTrailing:
		if n == 0 {
			out = "0"
		} else {
			ip := padded[:fs.IntegerDigits]
			out = ip + strings.TrimRight(padded[fs.IntegerDigits:], "0")
		}
	}
	// a value rounded to zero has no sign
	if neg && n != 0 {
		out = "-" + out
	}
	return out, nil
}

// FormatDecimal renders a plain decimal number as used by aperture,
// macro and step and repeat parameters: 4.0 -> "4", 0.25 -> "0.25".
func FormatDecimal(v float64) string {
	r := mgl64.Round(v, decimalPrecision)
	if r == 0 {
		r = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsFiniteNonNegative reports whether v can be used as a dimension
func IsFiniteNonNegative(v float64) bool {
	return IsFinite(v) && v >= 0
}

/*
######################### coordinates #########################################
*/

// a value on an axis which may be omitted
type axisPoint struct {
	value float64
	set   bool
}

func (ap axisPoint) render(letter string, fs FormatSpec) (string, error) {
	if !ap.set {
		return "", nil
	}
	s, err := FormatNumber(ap.value, fs)
	if err != nil {
		return "", gbt.WrapError(gbt.ErrCodeNumberFormat, err, "%s coordinate", letter)
	}
	return letter + s, nil
}

// Coordinates of an operation. Unset axes are omitted, the modal value applies.
type Coordinates struct {
	x      axisPoint
	y      axisPoint
	format FormatSpec
}

func NewXY(x, y float64, fs FormatSpec) Coordinates {
	return Coordinates{x: axisPoint{x, true}, y: axisPoint{y, true}, format: fs}
}

func AtX(x float64, fs FormatSpec) Coordinates {
	return Coordinates{x: axisPoint{x, true}, format: fs}
}

func AtY(y float64, fs FormatSpec) Coordinates {
	return Coordinates{y: axisPoint{y, true}, format: fs}
}

func (c Coordinates) X() (float64, bool) {
	return c.x.value, c.x.set
}

func (c Coordinates) Y() (float64, bool) {
	return c.y.value, c.y.set
}

func (c Coordinates) Format() FormatSpec {
	return c.format
}

func (c Coordinates) IsEmpty() bool {
	return !c.x.set && !c.y.set
}

// Render returns X<digits>Y<digits>, an empty string if no axis is set
func (c Coordinates) Render() (string, error) {
	xs, err := c.x.render("X", c.format)
	if err != nil {
		return "", err
	}
	ys, err := c.y.render("Y", c.format)
	if err != nil {
		return "", err
	}
	return xs + ys, nil
}

func (c Coordinates) String() string {
	return "XY: x=" + c.x.String() + ", y=" + c.y.String()
}

func (ap axisPoint) String() string {
	if !ap.set {
		return "<unset>"
	}
	return strconv.FormatFloat(ap.value, 'f', 5, 64)
}

// CoordinateOffset holds the I and J distances from the start point
// to the arc center of a circular D01
type CoordinateOffset struct {
	i      axisPoint
	j      axisPoint
	format FormatSpec
}

func NewOffset(i, j float64, fs FormatSpec) CoordinateOffset {
	return CoordinateOffset{i: axisPoint{i, true}, j: axisPoint{j, true}, format: fs}
}

func OffsetAtI(i float64, fs FormatSpec) CoordinateOffset {
	return CoordinateOffset{i: axisPoint{i, true}, format: fs}
}

func OffsetAtJ(j float64, fs FormatSpec) CoordinateOffset {
	return CoordinateOffset{j: axisPoint{j, true}, format: fs}
}

func (co CoordinateOffset) I() (float64, bool) {
	return co.i.value, co.i.set
}

func (co CoordinateOffset) J() (float64, bool) {
	return co.j.value, co.j.set
}

func (co CoordinateOffset) IsEmpty() bool {
	return !co.i.set && !co.j.set
}

// Render returns I<digits>J<digits>
func (co CoordinateOffset) Render() (string, error) {
	is, err := co.i.render("I", co.format)
	if err != nil {
		return "", err
	}
	js, err := co.j.render("J", co.format)
	if err != nil {
		return "", err
	}
	return is + js, nil
}

func (co CoordinateOffset) String() string {
	return "IJ: i=" + co.i.String() + ", j=" + co.j.String()
}
