package attributes

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
)

func TestAttributes_Render(t *testing.T) {
	guid := uuid.MustParse("8d4a8ac2-ac25-4ab4-a50a-1d3b2c4f8e11")
	date := time.Date(2015, 2, 23, 15, 59, 51, 0, time.FixedZone("CET", 3600))

	var cases = []struct {
		cmd interface {
			Render() (string, error)
			Kind() gbt.CommandKind
		}
		ans string
	}{
		{OtherPart("foo"), "TF.Part,Other,foo"},
		{Part(PartSingle), "TF.Part,Single"},
		{GenerationSoftware("Vend0r", "superpcb", ""), "TF.GenerationSoftware,Vend0r,superpcb"},
		{GenerationSoftware("Vend0r", "superpcb", "1.2.3"), "TF.GenerationSoftware,Vend0r,superpcb,1.2.3"},
		{Copper(1, PositionTop, "Signal"), "TF.FileFunction,Copper,L1,Top,Signal"},
		{Copper(4, PositionBottom, ""), "TF.FileFunction,Copper,L4,Bot"},
		{FileFunction("Soldermask", "Top"), "TF.FileFunction,Soldermask,Top"},
		{FilePolarity(true), "TF.FilePolarity,Positive"},
		{FilePolarity(false), "TF.FilePolarity,Negative"},
		{SameCoordinates(""), "TF.SameCoordinates"},
		{SameCoordinates("PCB1"), "TF.SameCoordinates,PCB1"},
		{CreationDate(date), "TF.CreationDate,2015-02-23T15:59:51+01:00"},
		{ProjectID("Othello", guid, "2"), "TF.ProjectId,Othello,8d4a8ac2-ac25-4ab4-a50a-1d3b2c4f8e11,2"},
		{MD5([]byte("hello")), "TF.MD5,5d41402abc4b2a76b9719d911017c592"},
		{AperFunction("SMDPad", "CuDef"), "TA.AperFunction,SMDPad,CuDef"},
		{Net("GND"), "TO.N,GND"},
		{Net("N/C", "VCC"), "TO.N,N/C,VCC"},
		{Pin("U1", "14", ""), "TO.P,U1,14"},
		{Pin("U1", "14", "VDD"), "TO.P,U1,14,VDD"},
		{Component("R12"), "TO.C,R12"},
		{File(New("Custom_1", "a", "b")), "TFCustom_1,a,b"},
		{Delete("foo"), "TDfoo"},
		{Delete(".AperFunction"), "TD.AperFunction"},
		{Delete(""), "TD"},
	}
	for _, c := range cases {
		got, err := c.cmd.Render()
		if err != nil {
			t.Fatal(c.ans + ": " + err.Error())
		}
		if got != c.ans {
			t.Error("got " + got + " expected " + c.ans)
		}
		if c.cmd.Kind() != gbt.KindExtendedCode {
			t.Error(c.ans + " must be an extended code")
		}
	}
}

func TestAttributes_Errors(t *testing.T) {
	var cases = []interface{ Render() (string, error) }{
		File(New("")),
		File(New("1abc")),
		File(New("$abc")),
		File(New("a b")),
		File(New(".Part")),
		File(New(".Part", "Other", "a", "b")),
		File(New(".GenerationSoftware", "Vendor")),
		File(New(".CreationDate")),
		File(New(".ProjectId", "name", "guid")),
		File(New(".MD5", "a", "b")),
		Aperture(New(".AperFunction")),
		Aperture(New(".DrillTolerance", "0.1")),
		Object(New(".N")),
		Object(New(".P", "U1")),
		Object(New(".C")),
		OtherPart("with,comma"),
		OtherPart("with*star"),
		Net("100%"),
		Delete("bad name"),
	}
	for i, c := range cases {
		if _, err := c.Render(); !gbt.Is(err, gbt.ErrCodeInvalidAttributeValue) {
			t.Errorf("case %d: expected %s, got %v", i, gbt.ErrCodeInvalidAttributeValue, err)
		}
	}
}

func TestUserDefined(t *testing.T) {
	a, err := UserDefined("Impedance$1", "50R")
	if err != nil {
		t.Fatal(err)
	}
	s, err := Object(a).Render()
	if err != nil {
		t.Fatal(err)
	}
	if s != "TOImpedance$1,50R" {
		t.Fatal("got " + s)
	}
	if _, err := UserDefined(".Reserved"); !gbt.Is(err, gbt.ErrCodeInvalidAttributeValue) {
		t.Fatal("user attributes must not start with a dot")
	}
	if _, err := UserDefined("x", "a,b"); err == nil {
		t.Fatal("comma in a value must fail")
	}
}

func TestDrillTolerance(t *testing.T) {
	a, err := DrillTolerance(0.01, 0.005)
	if err != nil {
		t.Fatal(err)
	}
	s, err := a.Render()
	if err != nil {
		t.Fatal(err)
	}
	if s != "TA.DrillTolerance,0.01,0.005" {
		t.Fatal("got " + s)
	}
	if a, err = DrillTolerance(0.1, 0); err != nil || a.Values[1] != "0" {
		t.Fatal("zero tolerance must be accepted:", err)
	}

	var bad = [][2]float64{
		{math.NaN(), 1},
		{1, math.NaN()},
		{math.Inf(1), 1},
		{-0.01, 0.01},
		{0.01, -0.01},
	}
	for _, b := range bad {
		if _, err := DrillTolerance(b[0], b[1]); !gbt.Is(err, gbt.ErrCodeInvalidAttributeValue) {
			t.Errorf("%v: expected %s, got %v", b, gbt.ErrCodeInvalidAttributeValue, err)
		}
	}
}

// unknown names have no value count limits
func TestAttribute_FreeCardinality(t *testing.T) {
	for n := 0; n < 4; n++ {
		values := make([]string, n)
		if err := New("Custom", values...).Validate(); err != nil {
			t.Fatal(err)
		}
	}
}
