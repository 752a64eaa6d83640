/*
Step and repeat blocks, 4.11
*/
package srblocks

import (
	"strconv"

	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerbergen/xy"
)

/*
############################## step and repeat blocks #################################
*/

// StepAndRepeat opens a block which is replicated numX times along X with the
// dX distance and numY times along Y with the dY distance, or closes the
// current block.
type StepAndRepeat struct {
	numX    int
	numY    int
	dX      float64
	dY      float64
	closing bool
}

func Open(numX, numY int, dX, dY float64) StepAndRepeat {
	return StepAndRepeat{numX: numX, numY: numY, dX: dX, dY: dY}
}

func Close() StepAndRepeat {
	return StepAndRepeat{closing: true}
}

func (srblock StepAndRepeat) NumX() int {
	return srblock.numX
}

func (srblock StepAndRepeat) NumY() int {
	return srblock.numY
}

func (srblock StepAndRepeat) DX() float64 {
	return srblock.dX
}

func (srblock StepAndRepeat) DY() float64 {
	return srblock.dY
}

func (srblock StepAndRepeat) IsClose() bool {
	return srblock.closing
}

func (srblock StepAndRepeat) Kind() gbt.CommandKind {
	return gbt.KindExtendedCode
}

func (srblock StepAndRepeat) Validate() error {
	if srblock.closing {
		return nil
	}
	if srblock.numX < 1 {
		return gbt.NewError(gbt.ErrCodeInvalidParameter, "step and repeat: X count %d < 1", srblock.numX)
	}
	if srblock.numY < 1 {
		return gbt.NewError(gbt.ErrCodeInvalidParameter, "step and repeat: Y count %d < 1", srblock.numY)
	}
	if !xy.IsFiniteNonNegative(srblock.dX) || !xy.IsFiniteNonNegative(srblock.dY) {
		return gbt.NewError(gbt.ErrCodeInvalidParameter,
			"step and repeat: bad distances I=%v J=%v", srblock.dX, srblock.dY)
	}
	return nil
}

// Render returns SRX<numX>Y<numY>I<dX>J<dY>, or SR for the closing command
func (srblock StepAndRepeat) Render() (string, error) {
	if srblock.closing {
		return gbt.GerberStepAndRepeat, nil
	}
	if err := srblock.Validate(); err != nil {
		return "", err
	}
	return gbt.GerberStepAndRepeat +
		"X" + strconv.Itoa(srblock.numX) +
		"Y" + strconv.Itoa(srblock.numY) +
		"I" + xy.FormatDecimal(srblock.dX) +
		"J" + xy.FormatDecimal(srblock.dY), nil
}

func (srblock StepAndRepeat) String() string {
	if srblock.closing {
		return "Step and repeat block: close"
	}
	return "Step and repeat block:\n" +
		"\tcontains " + strconv.Itoa(srblock.numX) + " repeats along X axis and " + strconv.Itoa(srblock.numY) + " repeats along Y axis\n" +
		"\tdX=" + strconv.FormatFloat(srblock.dX, 'f', 5, 64) +
		", dY=" + strconv.FormatFloat(srblock.dY, 'f', 5, 64) + "\n"
}
