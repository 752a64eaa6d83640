package gerberstates

import (
	"math"
	"testing"

	"github.com/VasiliyTurchenko/gerbergen/blockapertures"
	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerbergen/srblocks"
	"github.com/VasiliyTurchenko/gerbergen/xy"
)

var fs46 = xy.NewFormatSpec(4, 6)

type lineCase struct {
	cmd gbt.Command
	ans string
}

func TestLine(t *testing.T) {
	var cases = []lineCase{
		{NewComment(" a  b "), "G04 a  b *"},
		{NewComment("Ucamco ex. 2: Shapes"), "G04Ucamco ex. 2: Shapes*"},
		{NewUnits(gbt.UnitMillimeters), "%MOMM*%"},
		{NewUnits(gbt.UnitInches), "%MOIN*%"},
		{NewCoordinateFormat(xy.NewFormatSpec(2, 4)), "%FSLAX24Y24*%"},
		{NewCoordinateFormat(xy.NewFormatSpec(3, 5).WithSuppression(gbt.SuppressTrailing).WithMode(gbt.CoordModeIncremental)), "%FSTIX35Y35*%"},
		{NewInterpolationMode(gbt.IPModeLinear), "G01*"},
		{NewInterpolationMode(gbt.IPModeCwC), "G02*"},
		{NewInterpolationMode(gbt.IPModeCCwC), "G03*"},
		{NewQuadrantMode(gbt.QuadModeSingle), "G74*"},
		{NewQuadrantMode(gbt.QuadModeMulti), "G75*"},
		{RegionBegin{}, "G36*"},
		{RegionEnd{}, "G37*"},
		{NewSelectAperture(10), "D10*"},
		{NewSelectAperture(123), "D123*"},
		{Interpolate(xy.NewXY(0.1, 0.2, fs46), xy.NewOffset(0.5, 1, fs46)), "X100000Y200000I500000J1000000D01*"},
		{Interpolate(xy.AtY(-2.5, fs46), xy.CoordinateOffset{}), "Y-2500000D01*"},
		{Move(xy.NewXY(0, 0, fs46)), "X0Y0D02*"},
		{Flash(xy.AtX(1.25, fs46)), "X1250000D03*"},
		{Flash(xy.Coordinates{}), "D03*"},
		{EndOfFile{}, "M02*"},
		{NewLoadPolarity(gbt.PolTypeDark), "%LPD*%"},
		{NewLoadPolarity(gbt.PolTypeClear), "%LPC*%"},
		{NewLoadMirroring(gbt.MirrorXY), "%LMXY*%"},
		{NewLoadMirroring(gbt.NoMirror), "%LMN*%"},
		{NewLoadRotation(45), "%LR45*%"},
		{NewLoadRotation(-12.5), "%LR-12.5*%"},
		{NewLoadScaling(0.8), "%LS0.8*%"},
		{srblocks.Open(2, 3, 2, 3), "%SRX2Y3I2J3*%"},
		{srblocks.Close(), "%SR*%"},
		{blockapertures.Open(11), "%ABD11*%"},
		{blockapertures.Close(), "%AB*%"},
	}
	for _, c := range cases {
		got, err := Line(c.cmd)
		if err != nil {
			t.Fatal(c.ans + ": " + err.Error())
		}
		if got != c.ans {
			t.Error("got " + got + " expected " + c.ans)
		}
	}
}

type badKind struct{}

func (badKind) Render() (string, error) { return "X", nil }
func (badKind) Kind() gbt.CommandKind   { return gbt.CommandKind(0) }

func TestLine_Errors(t *testing.T) {
	var cases = []struct {
		cmd  gbt.Command
		code gbt.ErrCode
	}{
		{nil, gbt.ErrCodeInvalidCommand},
		{(*Operation)(nil), gbt.ErrCodeInvalidCommand},
		{badKind{}, gbt.ErrCodeInvalidCommand},
		{NewSelectAperture(9), gbt.ErrCodeInvalidApertureCode},
		{NewInterpolationMode(gbt.IPmode(0)), gbt.ErrCodeInvalidCommand},
		{NewQuadrantMode(gbt.QuadMode(7)), gbt.ErrCodeInvalidCommand},
		{NewUnits(gbt.Unit(0)), gbt.ErrCodeInvalidCommand},
		{NewLoadPolarity(gbt.PolType(0)), gbt.ErrCodeInvalidCommand},
		{NewLoadMirroring(gbt.Mirror(0)), gbt.ErrCodeInvalidCommand},
		{Operation{Action: gbt.ActType(0)}, gbt.ErrCodeInvalidCommand},
		{Operation{Action: gbt.OpcodeD03_FLASH, Offset: xy.NewOffset(1, 1, fs46)}, gbt.ErrCodeInvalidCommand},
		{Move(xy.NewXY(10000, 0, fs46)), gbt.ErrCodeNumberFormat},
		{NewCoordinateFormat(xy.NewFormatSpec(7, 6)), gbt.ErrCodeNumberFormat},
		{NewLoadRotation(math.Inf(1)), gbt.ErrCodeInvalidParameter},
		{NewLoadScaling(0), gbt.ErrCodeInvalidParameter},
		{NewLoadScaling(-1), gbt.ErrCodeInvalidParameter},
	}
	for i, c := range cases {
		if _, err := Line(c.cmd); !gbt.Is(err, c.code) {
			t.Errorf("case %d: expected %s, got %v", i, c.code, err)
		}
	}
}

func TestState_Apply(t *testing.T) {
	state := NewState()
	for _, cmd := range []gbt.Command{
		NewSelectAperture(11),
		NewInterpolationMode(gbt.IPModeCwC),
		NewQuadrantMode(gbt.QuadModeMulti),
		NewLoadPolarity(gbt.PolTypeClear),
		srblocks.Open(2, 2, 1, 1),
		RegionBegin{},
		Move(xy.NewXY(1, 2, fs46)),
		Interpolate(xy.AtX(3, fs46), xy.CoordinateOffset{}),
		blockapertures.Open(12),
	} {
		state.Apply(cmd)
	}
	if state.StepNumber != 9 || state.CurrentAp != 11 || state.IpMode != gbt.IPModeCwC ||
		state.QMode != gbt.QuadModeMulti || state.Polarity != gbt.PolTypeClear ||
		!state.InSRBlock || !state.InRegion || state.BlockDepth != 1 ||
		state.Action != gbt.OpcodeD01_DRAW || state.X != 3 || state.Y != 2 {
		t.Fatal(state.String())
	}
	state.Apply(RegionEnd{})
	state.Apply(blockapertures.Close())
	state.Apply(srblocks.Close())
	if state.InRegion || state.InSRBlock || state.BlockDepth != 0 {
		t.Fatal(state.String())
	}
	t.Log(state.String())
}

// commands passed by pointer render and change the state like values
func TestState_ApplyPointers(t *testing.T) {
	sel := NewSelectAperture(12)
	flash := Flash(xy.NewXY(1, 2, fs46))
	region := RegionBegin{}

	line, err := Line(&flash)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := Line(flash)
	if line != want {
		t.Fatal("got " + line + " expected " + want)
	}

	state := NewState()
	state.Apply(&sel)
	state.Apply(&region)
	state.Apply(&flash)
	state.Apply((*Operation)(nil))
	if state.StepNumber != 4 || state.CurrentAp != 12 || !state.InRegion ||
		state.Action != gbt.OpcodeD03_FLASH || state.X != 1 || state.Y != 2 {
		t.Fatal(state.String())
	}
	if Value(nil) != nil || Value((*Operation)(nil)) != nil {
		t.Fatal("nil commands must stay nil")
	}
	if _, ok := Value(&flash).(Operation); !ok {
		t.Fatal("pointer must be dereferenced")
	}
}
