package plotter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/VasiliyTurchenko/gerbergen/apertures"
	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerbergen/gerberdatamodel"
	gs "github.com/VasiliyTurchenko/gerbergen/gerberstates"
	"github.com/VasiliyTurchenko/gerbergen/xy"
)

var fs26 = xy.NewFormatSpec(2, 6)

func testDocument() gerberdatamodel.Document {
	return gerberdatamodel.New(
		gs.NewCoordinateFormat(fs26),
		gs.NewUnits(gbt.UnitMillimeters),
		apertures.NewDefinition(10, apertures.NewCircle(0.1)),
		gs.NewSelectAperture(10),
		gs.Move(xy.NewXY(0, 0, fs26)),
		gs.Interpolate(xy.AtX(1, fs26), xy.CoordinateOffset{}),
		gs.Flash(xy.NewXY(2, 2, fs26)),
		gs.RegionBegin{},
		gs.Move(xy.NewXY(3, 3, fs26)),
		gs.Interpolate(xy.AtX(4, fs26), xy.CoordinateOffset{}),
		gs.Interpolate(xy.AtY(4, fs26), xy.CoordinateOffset{}),
		gs.Interpolate(xy.AtX(3, fs26), xy.CoordinateOffset{}),
		gs.Interpolate(xy.AtY(3, fs26), xy.CoordinateOffset{}),
		gs.RegionEnd{},
		gs.EndOfFile{},
	)
}

const testText = "%FSLAX26Y26*%\n%MOMM*%\n%ADD10C,0.1*%\nD10*\nX0Y0D02*\nX1000000D01*\nX2000000Y2000000D03*\n" +
	"G36*\nX3000000Y3000000D02*\nX4000000D01*\nY4000000D01*\nX3000000D01*\nY3000000D01*\nG37*\nM02*"

func TestPlotter_Plot(t *testing.T) {
	var buf bytes.Buffer
	stat, err := NewPlotter(false).Plot(testDocument(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != testText {
		t.Fatal("got:\n" + buf.String())
	}
	want := Statistic{Lines: 15, Draws: 5, Moves: 2, Flashes: 1, ApertureSelects: 1, ExtendedCodes: 3, Regions: 1}
	if stat != want {
		t.Fatal("got " + stat.String() + ", expected " + want.String())
	}

	buf.Reset()
	if _, err := NewPlotter(true).Plot(testDocument(), &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != testText+"\n" {
		t.Fatal("final newline expected")
	}

	buf.Reset()
	if _, err := NewPlotter(true).Plot(gerberdatamodel.New(), &buf); err != nil || buf.Len() != 0 {
		t.Fatal("empty document must produce no output")
	}
}

func TestPlotter_PlotError(t *testing.T) {
	var buf bytes.Buffer
	doc := testDocument().Append(gs.NewSelectAperture(3))
	if _, err := NewPlotter(true).Plot(doc, &buf); !gbt.Is(err, gbt.ErrCodeInvalidApertureCode) {
		t.Fatal("expected an aperture code error, got", err)
	}
	if buf.Len() != 0 {
		t.Fatal("nothing must be written")
	}
}

func TestPlotter_PlotFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.gbr")
	// an existing file is truncated
	if err := os.WriteFile(name, bytes.Repeat([]byte("x"), 4096), 0644); err != nil {
		t.Fatal(err)
	}
	stat, err := NewPlotter(true).PlotFile(testDocument(), name)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != testText+"\n" {
		t.Fatal("got:\n" + string(data))
	}
	if stat.Lines != 15 {
		t.Fatal(stat.String())
	}

	if _, err := NewPlotter(true).PlotFile(testDocument(), filepath.Join(t.TempDir(), "no", "such", "dir.gbr")); err == nil {
		t.Fatal("missing directory must fail")
	}
}

func TestPlotter_PlotPointers(t *testing.T) {
	sel := gs.NewSelectAperture(10)
	flash := gs.Flash(xy.NewXY(1, 2, fs26))
	doc := gerberdatamodel.New(
		apertures.NewDefinition(10, apertures.NewCircle(0.1)),
		&sel,
		&flash,
		gs.EndOfFile{},
	)
	var buf bytes.Buffer
	stat, err := NewPlotter(false).Plot(doc, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != "%ADD10C,0.1*%\nD10*\nX1000000Y2000000D03*\nM02*" {
		t.Fatal("got:\n" + buf.String())
	}
	want := Statistic{Lines: 4, Flashes: 1, ApertureSelects: 1, ExtendedCodes: 1}
	if stat != want {
		t.Fatal("got " + stat.String() + ", expected " + want.String())
	}
}
