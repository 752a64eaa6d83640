package gerberstates

import (
	"fmt"
	"strconv"

	"github.com/VasiliyTurchenko/gerbergen/blockapertures"
	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerbergen/srblocks"
)

/*
	The State object follows the graphics state a reader would have after
	each command of a document. It only observes, nothing is checked.
*/
type State struct {
	StepNumber int         // commands seen
	Polarity   gbt.PolType // %LPD*% or %LPC*%
	QMode      gbt.QuadMode
	CurrentAp  int // selected aperture code, 0 if none
	IpMode     gbt.IPmode
	Action     gbt.ActType // last operation
	InRegion   bool
	InSRBlock  bool
	BlockDepth int // nesting of AB blocks
	X, Y       float64
}

// creates and initializes state object with default values
func NewState() *State {
	state := new(State)
	state.Polarity = gbt.PolTypeDark
	state.IpMode = gbt.IPModeLinear
	return state
}

// Apply advances the state by one command, given by value or by pointer
func (step *State) Apply(cmd gbt.Command) {
	step.StepNumber++
	switch c := Value(cmd).(type) {
	case InterpolationMode:
		step.IpMode = c.Mode
	case QuadrantMode:
		step.QMode = c.Mode
	case LoadPolarity:
		step.Polarity = c.Polarity
	case RegionBegin:
		step.InRegion = true
	case RegionEnd:
		step.InRegion = false
	case SelectAperture:
		step.CurrentAp = c.Code
	case Operation:
		step.Action = c.Action
		if x, ok := c.Coords.X(); ok {
			step.X = x
		}
		if y, ok := c.Coords.Y(); ok {
			step.Y = y
		}
	case srblocks.StepAndRepeat:
		step.InSRBlock = !c.IsClose()
	case blockapertures.BlockAperture:
		if c.IsClose() {
			if step.BlockDepth > 0 {
				step.BlockDepth--
			}
		} else {
			step.BlockDepth++
		}
	case EndOfFile:
		step.InSRBlock = false
	}
}

// diagnostic print
func (step *State) String() string {
	return "Step# " + strconv.Itoa(step.StepNumber) + "\n" +
		"\t" + step.Polarity.String() + "\n" +
		"\t" + step.QMode.String() + "\n" +
		"\t" + step.IpMode.String() + "\n" +
		"\tAperture D" + strconv.Itoa(step.CurrentAp) + "\n" +
		"\t" + step.Action.String() + "\n" +
		fmt.Sprintf("\tregion: %v, step and repeat: %v, block depth: %d\n", step.InRegion, step.InSRBlock, step.BlockDepth) +
		fmt.Sprintf("\tcurrent point: (%.5f, %.5f)", step.X, step.Y)
}
