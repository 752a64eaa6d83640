// Base types for Gerber code generation
package gerberbasetypes

// Command prefixes
const (
	GerberFunctionTerminator = "*"
	GerberExtendedDelimiter  = "%"
	GerberLineSeparator      = "\n"
)

// Extended codes
const (
	GerberFormatSpec        = "FS"
	GerberUnits             = "MO"
	GerberApertureDef       = "AD"
	GerberApertureMacroDef  = "AM"
	GerberApertureBlockDef  = "AB"
	GerberLoadPolarity      = "LP"
	GerberLoadMirroring     = "LM"
	GerberLoadRotation      = "LR"
	GerberLoadScaling       = "LS"
	GerberStepAndRepeat     = "SR"
	GerberFileAttribute     = "TF"
	GerberApertureAttribute = "TA"
	GerberObjectAttribute   = "TO"
	GerberDeleteAttribute   = "TD"
)

// The lowest aperture number available for user definitions, D00..D09 are reserved.
const MinApertureCode = 10

// Command is anything that can be emitted as one Gerber command.
// Render returns the command body without the terminator and the % framing.
type Command interface {
	Render() (string, error)
	Kind() CommandKind
}

type CommandKind int

const (
	KindFunctionCode CommandKind = iota + 1
	KindExtendedCode
)

func (ck CommandKind) String() string {
	switch ck {
	case KindFunctionCode:
		return "function code"
	case KindExtendedCode:
		return "extended code"
	default:
	}
	return "Unknown command kind"
}

type GerberApType int

const (
	AptypeCircle GerberApType = iota + 1
	AptypeRectangle
	AptypeObround
	AptypePoly
	AptypeMacro
	AptypeBlock
)

func (ga GerberApType) String() string {
	switch ga {
	case AptypeCircle:
		return "circle aperture"
	case AptypeRectangle:
		return "rectangle aperture"
	case AptypeObround:
		return "obround (box) aperture"
	case AptypePoly:
		return "polygon aperture"
	case AptypeMacro:
		return "macro aperture"
	case AptypeBlock:
		return "block aperture"
	default:
	}
	return "Unknown aperture type"
}

type PolType int

const (
	PolTypeDark PolType = iota + 1
	PolTypeClear
)

func (p PolType) String() string {
	switch p {
	case PolTypeDark:
		return "Polarity: dark"
	case PolTypeClear:
		return "Polarity: clear"
	default:
	}
	return "Unknown polarity"
}

// Code returns the LP operand
func (p PolType) Code() (string, bool) {
	switch p {
	case PolTypeDark:
		return "D", true
	case PolTypeClear:
		return "C", true
	}
	return "", false
}

type ActType int

const (
	OpcodeD01_DRAW ActType = iota + 1
	OpcodeD02_MOVE
	OpcodeD03_FLASH
)

func (act ActType) String() string {
	switch act {
	case OpcodeD01_DRAW:
		return "Opcode D01 (DRAW)"
	case OpcodeD02_MOVE:
		return "Opcode D02 (MOVE)"
	case OpcodeD03_FLASH:
		return "Opcode D03 (FLASH)"
	default:
	}
	return "Unknown OpCode"
}

// Code returns the D code of the operation
func (act ActType) Code() (string, bool) {
	switch act {
	case OpcodeD01_DRAW:
		return "D01", true
	case OpcodeD02_MOVE:
		return "D02", true
	case OpcodeD03_FLASH:
		return "D03", true
	}
	return "", false
}

type QuadMode int

const (
	QuadModeSingle QuadMode = iota + 1
	QuadModeMulti
)

func (q QuadMode) String() string {
	switch q {
	case QuadModeSingle:
		return "QuadMode: Single"
	case QuadModeMulti:
		return "QuadMode: Multi"
	default:
	}
	return "Unknown QuadMode"
}

func (q QuadMode) Code() (string, bool) {
	switch q {
	case QuadModeSingle:
		return "G74", true
	case QuadModeMulti:
		return "G75", true
	}
	return "", false
}

type IPmode int

const (
	IPModeLinear IPmode = iota + 1
	IPModeCwC
	IPModeCCwC
)

func (ipm IPmode) String() string {
	switch ipm {
	case IPModeLinear:
		return "Linear interpolation"
	case IPModeCwC:
		return "Clockwise interpolation"
	case IPModeCCwC:
		return "Counter-clockwise interpolation"
	default:
	}
	return "Unknown interpolation"
}

func (ipm IPmode) Code() (string, bool) {
	switch ipm {
	case IPModeLinear:
		return "G01", true
	case IPModeCwC:
		return "G02", true
	case IPModeCCwC:
		return "G03", true
	}
	return "", false
}

type Unit int

const (
	UnitMillimeters Unit = iota + 1
	UnitInches
)

func (u Unit) String() string {
	switch u {
	case UnitMillimeters:
		return "Units: millimeters"
	case UnitInches:
		return "Units: inches"
	default:
	}
	return "Unknown units"
}

func (u Unit) Code() (string, bool) {
	switch u {
	case UnitMillimeters:
		return "MM", true
	case UnitInches:
		return "IN", true
	}
	return "", false
}

type Mirror int

const (
	NoMirror Mirror = iota + 1
	MirrorX
	MirrorY
	MirrorXY
)

func (m Mirror) String() string {
	switch m {
	case NoMirror:
		return "No mirroring"
	case MirrorX:
		return "Mirroring along X axis"
	case MirrorY:
		return "Mirroring along Y axis"
	case MirrorXY:
		return "Mirroring along X and Y axis"
	default:
	}
	return "Unknown mirroring"
}

func (m Mirror) Code() (string, bool) {
	switch m {
	case NoMirror:
		return "N", true
	case MirrorX:
		return "X", true
	case MirrorY:
		return "Y", true
	case MirrorXY:
		return "XY", true
	}
	return "", false
}

// ZeroSuppression selects which redundant zeros are omitted in coordinate numbers
type ZeroSuppression int

const (
	SuppressNone ZeroSuppression = iota + 1
	SuppressLeading
	SuppressTrailing
)

func (zs ZeroSuppression) String() string {
	switch zs {
	case SuppressNone:
		return "Zero suppression: none"
	case SuppressLeading:
		return "Zero suppression: leading"
	case SuppressTrailing:
		return "Zero suppression: trailing"
	default:
	}
	return "Unknown zero suppression"
}

// Code returns the FS zero omission character. Fully padded numbers
// read the same with leading zero omission, so SuppressNone declares L.
func (zs ZeroSuppression) Code() (string, bool) {
	switch zs {
	case SuppressNone, SuppressLeading:
		return "L", true
	case SuppressTrailing:
		return "T", true
	}
	return "", false
}

type CoordMode int

const (
	CoordModeAbsolute CoordMode = iota + 1
	CoordModeIncremental
)

func (cm CoordMode) String() string {
	switch cm {
	case CoordModeAbsolute:
		return "Coordinates: absolute"
	case CoordModeIncremental:
		return "Coordinates: incremental"
	default:
	}
	return "Unknown coordinate mode"
}

func (cm CoordMode) Code() (string, bool) {
	switch cm {
	case CoordModeAbsolute:
		return "A", true
	case CoordModeIncremental:
		return "I", true
	}
	return "", false
}
