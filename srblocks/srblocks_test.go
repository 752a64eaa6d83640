package srblocks

import (
	"math"
	"testing"

	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
)

func TestStepAndRepeat_Render(t *testing.T) {
	var cases = []struct {
		sr  StepAndRepeat
		ans string
	}{
		{Open(2, 3, 2, 3), "SRX2Y3I2J3"},
		{Open(1, 1, 0, 0), "SRX1Y1I0J0"},
		{Open(3, 2, 5.0, 6.5), "SRX3Y2I5J6.5"},
		{Close(), "SR"},
	}
	for _, c := range cases {
		got, err := c.sr.Render()
		if err != nil {
			t.Fatal(err)
		}
		if got != c.ans {
			t.Error("got " + got + " expected " + c.ans)
		}
		if c.sr.Kind() != gbt.KindExtendedCode {
			t.Error("SR must be an extended code")
		}
	}
}

func TestStepAndRepeat_Accessors(t *testing.T) {
	sr := Open(2, 3, 1.5, 2.5)
	if sr.NumX() != 2 || sr.NumY() != 3 || sr.DX() != 1.5 || sr.DY() != 2.5 || sr.IsClose() {
		t.Fatal(sr.String())
	}
	if !Close().IsClose() {
		t.Fatal("close expected")
	}
}

func TestStepAndRepeat_Errors(t *testing.T) {
	for i, sr := range []StepAndRepeat{
		Open(0, 1, 0, 0),
		Open(1, 0, 0, 0),
		Open(-2, 3, 1, 1),
		Open(2, 3, -1, 1),
		Open(2, 3, 1, math.NaN()),
	} {
		if _, err := sr.Render(); !gbt.Is(err, gbt.ErrCodeInvalidParameter) {
			t.Errorf("case %d: expected %s, got %v", i, gbt.ErrCodeInvalidParameter, err)
		}
	}
}
