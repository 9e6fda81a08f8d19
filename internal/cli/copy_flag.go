package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/temirov/tree/internal/services/clipboard"
)

const (
	copyFlagName                   = "copy"
	copyFlagDescription            = "also copy the rendered output to the system clipboard"
	clipboardServiceMissingMessage = "clipboard service is not configured"
	clipboardCopyErrorFormat       = "copy output to clipboard: %w"
)

// clipboardTee mirrors everything written to the destination so it can be
// copied once rendering has finished.
type clipboardTee struct {
	copier clipboard.Copier
	buffer *bytes.Buffer
}

// newClipboardTee wraps destination when copying was requested. Without a
// request it returns destination unchanged and a nil tee.
func newClipboardTee(destination io.Writer, copyRequested bool, copier clipboard.Copier) (io.Writer, *clipboardTee, error) {
	if !copyRequested {
		return destination, nil, nil
	}
	if copier == nil {
		return nil, nil, errors.New(clipboardServiceMissingMessage)
	}
	tee := &clipboardTee{copier: copier, buffer: &bytes.Buffer{}}
	return io.MultiWriter(destination, tee.buffer), tee, nil
}

func (tee *clipboardTee) commit() error {
	if tee == nil {
		return nil
	}
	if copyErr := tee.copier.Copy(tee.buffer.String()); copyErr != nil {
		return fmt.Errorf(clipboardCopyErrorFormat, copyErr)
	}
	return nil
}
