package main

import (
	"errors"

	"github.com/fivemoreminix/qsource/pkg/log"
	"github.com/zyedidia/clipboard"
)

type ClipMethod uint8

const (
	ClipExternal ClipMethod = iota
	ClipInternal
)

func (m ClipMethod) String() string {
	if m == ClipExternal {
		return "external"
	}
	return "internal"
}

var errUnknownClipMethod = errors.New("unknown clipboard method")

// A Clipboard holds cut and copied text, in the system clipboard when one is
// available and in memory otherwise.
type Clipboard struct {
	Method   ClipMethod
	internal string
}

// ClipInitialize will initialize the clipboard for the given method first,
// and if that fails, an internal method will be chosen, instead. The error is
// not fatal because an internal method is used.
func ClipInitialize(m ClipMethod) (*Clipboard, error) {
	if m == ClipInternal {
		return &Clipboard{Method: ClipInternal}, nil
	}
	if err := clipboard.Initialize(); err != nil {
		log.ErrorErr(log.CatClipboard, "System clipboard unavailable, using internal", err)
		return &Clipboard{Method: ClipInternal}, err
	}
	log.Debug(log.CatClipboard, "Using system clipboard")
	return &Clipboard{Method: ClipExternal}, nil
}

// Read returns the clipboard contents.
func (c *Clipboard) Read() (string, error) {
	switch c.Method {
	case ClipExternal:
		return clipboard.ReadAll("clipboard")
	case ClipInternal:
		return c.internal, nil
	}
	return "", errUnknownClipMethod
}

// Write sets the clipboard contents.
func (c *Clipboard) Write(content string) error {
	switch c.Method {
	case ClipExternal:
		return clipboard.WriteAll(content, "clipboard")
	case ClipInternal:
		c.internal = content
		return nil
	}
	return errUnknownClipMethod
}
