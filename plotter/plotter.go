/*
 Writes Gerber documents to streams and files
*/
package plotter

import (
	"io"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerbergen/gerberdatamodel"
	"github.com/VasiliyTurchenko/gerbergen/gerberstates"
	"github.com/VasiliyTurchenko/gerbergen/strings_storage"
)

/*
	Statistic of one plot
*/
type Statistic struct {
	Lines           int
	Draws           int // D01
	Moves           int // D02
	Flashes         int // D03
	ApertureSelects int
	ExtendedCodes   int
	Regions         int
}

func (stat Statistic) String() string {
	return "lines: " + strconv.Itoa(stat.Lines) +
		", draws: " + strconv.Itoa(stat.Draws) +
		", moves: " + strconv.Itoa(stat.Moves) +
		", flashes: " + strconv.Itoa(stat.Flashes) +
		", aperture selections: " + strconv.Itoa(stat.ApertureSelects) +
		", extended codes: " + strconv.Itoa(stat.ExtendedCodes) +
		", regions: " + strconv.Itoa(stat.Regions)
}

type Plotter struct {
	finalNewline bool
}

// NewPlotter returns a plotter, finalNewline adds a newline after the last line
func NewPlotter(finalNewline bool) *Plotter {
	return &Plotter{finalNewline: finalNewline}
}

// collects the statistic following the graphics state
func count(doc gerberdatamodel.Document) Statistic {
	var stat Statistic
	state := gerberstates.NewState()
	for _, cmd := range doc.Commands() {
		cmd = gerberstates.Value(cmd)
		inRegion := state.InRegion
		state.Apply(cmd)
		stat.Lines++
		if cmd.Kind() == gbt.KindExtendedCode {
			stat.ExtendedCodes++
		}
		switch cmd.(type) {
		case gerberstates.Operation:
			switch state.Action {
			case gbt.OpcodeD01_DRAW:
				stat.Draws++
			case gbt.OpcodeD02_MOVE:
				stat.Moves++
			case gbt.OpcodeD03_FLASH:
				stat.Flashes++
			}
		case gerberstates.SelectAperture:
			stat.ApertureSelects++
		}
		if !inRegion && state.InRegion {
			stat.Regions++
		}
	}
	return stat
}

// Plot writes the document to w. Nothing is written if a command can not be rendered.
func (plotter *Plotter) Plot(doc gerberdatamodel.Document, w io.Writer) (Statistic, error) {
	storage := strings_storage.NewStorage()
	if err := doc.RenderTo(storage); err != nil {
		glog.Errorln("plot failed:", err)
		return Statistic{}, errors.Wrap(err, "plot")
	}
	wc := strings_storage.NewWriterConsumer(w, gbt.GerberLineSeparator)
	n := strings_storage.Copy(wc, storage)
	if wc.Err() == nil && plotter.finalNewline && n > 0 {
		if _, err := io.WriteString(w, gbt.GerberLineSeparator); err != nil {
			return Statistic{}, errors.Wrap(err, "plot: final newline")
		}
	}
	if wc.Err() != nil {
		glog.Errorln("plot failed:", wc.Err())
		return Statistic{}, errors.Wrapf(wc.Err(), "plot: writing line %d", wc.Lines())
	}
	stat := count(doc)
	glog.Infoln("plot:", stat.String())
	return stat, nil
}

// PlotFile writes the document into the file outFileName, an existing file is truncated
func (plotter *Plotter) PlotFile(doc gerberdatamodel.Document, outFileName string) (stat Statistic, err error) {
	outputFile, err := os.OpenFile(outFileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		glog.Errorln(err)
		return Statistic{}, errors.Wrapf(err, "plot file %s", outFileName)
	}
	defer func() {
		if cerr := outputFile.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "plot file %s", outFileName)
		}
	}()
	stat, err = plotter.Plot(doc, outputFile)
	if err != nil {
		return Statistic{}, errors.Wrapf(err, "plot file %s", outFileName)
	}
	if err = outputFile.Sync(); err != nil {
		return Statistic{}, errors.Wrapf(err, "plot file %s", outFileName)
	}
	glog.Infoln("plot file", outFileName, "written")
	return stat, nil
}
