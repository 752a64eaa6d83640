// Block apertures, 4.7
package blockapertures

import (
	"strconv"

	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
)

// BlockAperture opens the definition of the block aperture Code (ABD<code>)
// or closes the current one (AB). The commands between open and close
// form the block.
type BlockAperture struct {
	Code    int
	closing bool
}

func Open(code int) BlockAperture {
	return BlockAperture{Code: code}
}

func Close() BlockAperture {
	return BlockAperture{closing: true}
}

func (ba BlockAperture) IsClose() bool {
	return ba.closing
}

// Type is the aperture type the block defines
func (ba BlockAperture) Type() gbt.GerberApType {
	return gbt.AptypeBlock
}

func (ba BlockAperture) Kind() gbt.CommandKind {
	return gbt.KindExtendedCode
}

func (ba BlockAperture) Render() (string, error) {
	if ba.closing {
		return gbt.GerberApertureBlockDef, nil
	}
	if ba.Code < gbt.MinApertureCode {
		return "", gbt.NewError(gbt.ErrCodeInvalidApertureCode,
			"block aperture code D%d is reserved, codes start at %d", ba.Code, gbt.MinApertureCode)
	}
	return gbt.GerberApertureBlockDef + "D" + strconv.Itoa(ba.Code), nil
}

func (ba BlockAperture) String() string {
	if ba.closing {
		return "Block aperture: close"
	}
	return "Block aperture code: D" + strconv.Itoa(ba.Code)
}
