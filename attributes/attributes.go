// Gerber X2 attributes: TF, TA, TO and TD, 5
package attributes

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerbergen/xy"
)

// Attribute is a name with an ordered list of values
type Attribute struct {
	Name   string
	Values []string
}

func New(name string, values ...string) Attribute {
	return Attribute{Name: name, Values: append([]string(nil), values...)}
}

// number of values, max < 0 is unlimited
type valueRange struct {
	min int
	max int
}

func (vr valueRange) String() string {
	switch {
	case vr.max < 0:
		return "at least " + strconv.Itoa(vr.min)
	case vr.min == vr.max:
		return "exactly " + strconv.Itoa(vr.min)
	}
	return strconv.Itoa(vr.min) + " to " + strconv.Itoa(vr.max)
}

// value counts of the standard attributes
var cardinality = map[string]valueRange{
	".Part":               {1, 2},
	".FileFunction":       {1, -1},
	".FilePolarity":       {1, 1},
	".SameCoordinates":    {0, 1},
	".GenerationSoftware": {2, 3},
	".CreationDate":       {1, 1},
	".ProjectId":          {3, 3},
	".MD5":                {1, 1},
	".AperFunction":       {1, -1},
	".DrillTolerance":     {2, 2},
	".FlashText":          {2, -1},
	".N":                  {1, -1},
	".P":                  {2, 3},
	".C":                  {1, 1},
}

// ValidateName checks an attribute name: a letter, _ or . followed by
// letters, digits, _, . and $
func ValidateName(name string) error {
	if len(name) == 0 {
		return gbt.NewError(gbt.ErrCodeInvalidAttributeValue, "empty attribute name")
	}
	for i, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c == '.':
		case (c >= '0' && c <= '9' || c == '$') && i > 0:
		default:
			return gbt.NewError(gbt.ErrCodeInvalidAttributeValue, "bad character %q in attribute name %q", c, name)
		}
	}
	return nil
}

func (a Attribute) Validate() error {
	if err := ValidateName(a.Name); err != nil {
		return err
	}
	for i, v := range a.Values {
		if strings.ContainsAny(v, "*%,") {
			return gbt.NewError(gbt.ErrCodeInvalidAttributeValue,
				"attribute %s value %d (%q) holds a reserved character", a.Name, i+1, v)
		}
	}
	if c, ok := cardinality[a.Name]; ok {
		n := len(a.Values)
		if n < c.min || (c.max >= 0 && n > c.max) {
			return gbt.NewError(gbt.ErrCodeInvalidAttributeValue,
				"attribute %s takes %s values, got %d", a.Name, c.String(), n)
		}
	}
	return nil
}

// Render returns <name>[,<value>...]
func (a Attribute) Render() (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	if len(a.Values) == 0 {
		return a.Name, nil
	}
	return a.Name + "," + strings.Join(a.Values, ","), nil
}

func (a Attribute) String() string {
	return a.Name + "[" + strings.Join(a.Values, "|") + "]"
}

/*
############################## commands #################################
*/

// FileAttribute is the TF extended code
type FileAttribute struct {
	Attribute
}

func File(a Attribute) FileAttribute { return FileAttribute{a} }

func (fa FileAttribute) Kind() gbt.CommandKind { return gbt.KindExtendedCode }

func (fa FileAttribute) Render() (string, error) {
	return renderWith(gbt.GerberFileAttribute, fa.Attribute)
}

// ApertureAttribute is the TA extended code, it applies to the apertures defined after it
type ApertureAttribute struct {
	Attribute
}

func Aperture(a Attribute) ApertureAttribute { return ApertureAttribute{a} }

func (aa ApertureAttribute) Kind() gbt.CommandKind { return gbt.KindExtendedCode }

func (aa ApertureAttribute) Render() (string, error) {
	return renderWith(gbt.GerberApertureAttribute, aa.Attribute)
}

// ObjectAttribute is the TO extended code, it applies to the graphical objects created after it
type ObjectAttribute struct {
	Attribute
}

func Object(a Attribute) ObjectAttribute { return ObjectAttribute{a} }

func (oa ObjectAttribute) Kind() gbt.CommandKind { return gbt.KindExtendedCode }

func (oa ObjectAttribute) Render() (string, error) {
	return renderWith(gbt.GerberObjectAttribute, oa.Attribute)
}

func renderWith(code string, a Attribute) (string, error) {
	s, err := a.Render()
	if err != nil {
		return "", err
	}
	return code + s, nil
}

// DeleteAttribute is the TD extended code. An empty name deletes all
// aperture and object attributes.
type DeleteAttribute struct {
	Name string
}

func Delete(name string) DeleteAttribute { return DeleteAttribute{Name: name} }

func (da DeleteAttribute) Kind() gbt.CommandKind { return gbt.KindExtendedCode }

func (da DeleteAttribute) Render() (string, error) {
	if da.Name == "" {
		return gbt.GerberDeleteAttribute, nil
	}
	if err := ValidateName(da.Name); err != nil {
		return "", err
	}
	return gbt.GerberDeleteAttribute + da.Name, nil
}

/*
############################## standard file attributes #################################
*/

type PartType int

const (
	PartSingle PartType = iota + 1
	PartArray
	PartFabricationPanel
	PartCoupon
)

func (pt PartType) String() string {
	switch pt {
	case PartSingle:
		return "Single"
	case PartArray:
		return "Array"
	case PartFabricationPanel:
		return "FabricationPanel"
	case PartCoupon:
		return "Coupon"
	default:
	}
	return "Unknown part type"
}

// Part tells which part the file represents
func Part(pt PartType) FileAttribute {
	return File(New(".Part", pt.String()))
}

// OtherPart is .Part,Other,<description>
func OtherPart(description string) FileAttribute {
	return File(New(".Part", "Other", description))
}

// FileFunction takes the function and its fields, e.g. "Soldermask", "Top"
func FileFunction(values ...string) FileAttribute {
	return File(New(".FileFunction", values...))
}

type Position int

const (
	PositionTop Position = iota + 1
	PositionInner
	PositionBottom
)

func (p Position) String() string {
	switch p {
	case PositionTop:
		return "Top"
	case PositionInner:
		return "Inr"
	case PositionBottom:
		return "Bot"
	default:
	}
	return "Unknown position"
}

// Copper is .FileFunction,Copper,L<layer>,<position>[,<copper type>]
func Copper(layer int, pos Position, copperType string) FileAttribute {
	values := []string{"Copper", "L" + strconv.Itoa(layer), pos.String()}
	if copperType != "" {
		values = append(values, copperType)
	}
	return FileFunction(values...)
}

func FilePolarity(positive bool) FileAttribute {
	if positive {
		return File(New(".FilePolarity", "Positive"))
	}
	return File(New(".FilePolarity", "Negative"))
}

// SameCoordinates marks files sharing the coordinate system, ident is optional
func SameCoordinates(ident string) FileAttribute {
	if ident == "" {
		return File(New(".SameCoordinates"))
	}
	return File(New(".SameCoordinates", ident))
}

// GenerationSoftware names the writer of the file, version is optional
func GenerationSoftware(vendor, application, version string) FileAttribute {
	if version == "" {
		return File(New(".GenerationSoftware", vendor, application))
	}
	return File(New(".GenerationSoftware", vendor, application, version))
}

// CreationDate in the ISO 8601 form of RFC 3339, e.g. 2015-02-23T15:59:51+01:00
func CreationDate(t time.Time) FileAttribute {
	return File(New(".CreationDate", t.Format(time.RFC3339)))
}

// ProjectID identifies the project by name, GUID and revision
func ProjectID(name string, guid uuid.UUID, revision string) FileAttribute {
	return File(New(".ProjectId", name, guid.String(), revision))
}

// MD5 is the checksum of the file content the caller supplies
func MD5(content []byte) FileAttribute {
	sum := md5.Sum(content)
	return File(New(".MD5", hex.EncodeToString(sum[:])))
}

/*
############################## aperture and object attributes #################################
*/

// AperFunction takes the function and its fields, e.g. "SMDPad", "CuDef"
func AperFunction(values ...string) ApertureAttribute {
	return Aperture(New(".AperFunction", values...))
}

// DrillTolerance is .DrillTolerance,<plus>,<minus>, both non-negative
func DrillTolerance(plus, minus float64) (ApertureAttribute, error) {
	a := Aperture(New(".DrillTolerance", xy.FormatDecimal(plus), xy.FormatDecimal(minus)))
	if !xy.IsFiniteNonNegative(plus) || !xy.IsFiniteNonNegative(minus) {
		return a, gbt.NewError(gbt.ErrCodeInvalidAttributeValue, "bad drill tolerance +%v -%v", plus, minus)
	}
	return a, nil
}

// Net names the nets the object belongs to
func Net(names ...string) ObjectAttribute {
	return Object(New(".N", names...))
}

// Pin is .P,<refdes>,<number>[,<function>]
func Pin(refdes, number, function string) ObjectAttribute {
	if function == "" {
		return Object(New(".P", refdes, number))
	}
	return Object(New(".P", refdes, number, function))
}

func Component(refdes string) ObjectAttribute {
	return Object(New(".C", refdes))
}

// UserDefined attributes must not start with a dot
func UserDefined(name string, values ...string) (Attribute, error) {
	a := New(name, values...)
	if strings.HasPrefix(name, ".") {
		return a, gbt.NewError(gbt.ErrCodeInvalidAttributeValue, "user attribute %s must not start with a dot", name)
	}
	return a, a.Validate()
}
