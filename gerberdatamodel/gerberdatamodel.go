// Gerber document: an ordered list of commands rendered line by line
package gerberdatamodel

import (
	"fmt"
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	gbt "github.com/VasiliyTurchenko/gerbergen/gerberbasetypes"
	"github.com/VasiliyTurchenko/gerbergen/gerberstates"
	"github.com/VasiliyTurchenko/gerbergen/strings_storage"
)

// Document holds the commands in program order. Documents are values:
// Append returns a new document and rendering never changes one, so a
// document can be rendered from several goroutines at once.
type Document struct {
	commands []gbt.Command
}

func New(cmds ...gbt.Command) Document {
	return Document{commands: append([]gbt.Command(nil), cmds...)}
}

// Append returns a document with cmds added after the existing commands
func (doc Document) Append(cmds ...gbt.Command) Document {
	retVal := make([]gbt.Command, 0, len(doc.commands)+len(cmds))
	retVal = append(retVal, doc.commands...)
	retVal = append(retVal, cmds...)
	return Document{commands: retVal}
}

func (doc Document) Len() int {
	return len(doc.commands)
}

// Commands returns a copy of the command list
func (doc Document) Commands() []gbt.Command {
	return append([]gbt.Command(nil), doc.commands...)
}

func describe(cmd gbt.Command) string {
	if cmd == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T, %s", cmd, cmd.Kind())
}

// RenderTo passes the framed lines to c in order. It stops at the first
// command which can not be rendered, c may have accepted the lines before it.
func (doc Document) RenderTo(c strings_storage.Consumer) error {
	for i, cmd := range doc.commands {
		line, err := gerberstates.Line(cmd)
		if err != nil {
			glog.V(2).Infof("command %d (%s) failed: %v", i, describe(cmd), err)
			return errors.Wrapf(err, "command %d (%s)", i, describe(cmd))
		}
		c.Accept(line)
	}
	glog.V(2).Infof("rendered %d commands", len(doc.commands))
	return nil
}

// Lines renders all commands, nothing is returned if one of them fails
func (doc Document) Lines() ([]string, error) {
	storage := strings_storage.NewStorage()
	if err := doc.RenderTo(storage); err != nil {
		return nil, err
	}
	return storage.ToArray(), nil
}

// Render writes the lines separated by newlines, without a final newline.
// Nothing is written if a command fails.
func (doc Document) Render(w io.Writer) error {
	storage := strings_storage.NewStorage()
	if err := doc.RenderTo(storage); err != nil {
		return err
	}
	wc := strings_storage.NewWriterConsumer(w, gbt.GerberLineSeparator)
	strings_storage.Copy(wc, storage)
	if wc.Err() != nil {
		return errors.Wrapf(wc.Err(), "writing line %d", wc.Lines())
	}
	return nil
}

// Text returns the rendered document as a string
func (doc Document) Text() (string, error) {
	storage := strings_storage.NewStorage()
	if err := doc.RenderTo(storage); err != nil {
		return "", err
	}
	return storage.Join(gbt.GerberLineSeparator), nil
}
