// Package display implements the memory-mapped character display adapter:
// a fixed-size grid of bytes, each rendered as a rune, throttled to a target
// frame rate.
package display

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 50
	DefaultFPS    = 120
)

// ErrDisplayLengthMismatch is returned by Draw when the supplied frame does
// not have exactly Len() bytes. This signals a programming error in the
// caller, not a recoverable runtime condition.
var ErrDisplayLengthMismatch = errors.New("display: frame length does not match width*height")

// Display renders a W*H byte grid to an io.Writer, throttled so that no two
// renders happen closer together than 1/FPS seconds.
type Display struct {
	Width, Height, FPS int
	Sink               io.Writer

	lastDrawn time.Time
}

// New returns a Display with the default 80x50 grid at 120 FPS, writing to
// os.Stdout.
func New() *Display {
	return &Display{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		FPS:    DefaultFPS,
		Sink:   os.Stdout,
	}
}

// Len returns the number of bytes Draw expects: Width*Height.
func (d *Display) Len() int {
	return d.Width * d.Height
}

// Draw renders data, one rune per cell, row-major. If less than 1/FPS
// seconds have passed since the last render it is skipped silently (not an
// error). A length mismatch is always an error, even when the frame would
// otherwise be skipped.
func (d *Display) Draw(data []byte) error {
	if len(data) != d.Len() {
		return fmt.Errorf("%w: got %d, want %d", ErrDisplayLengthMismatch, len(data), d.Len())
	}

	now := time.Now()
	if !d.lastDrawn.IsZero() && now.Sub(d.lastDrawn) < time.Second/time.Duration(d.FPS) {
		return nil
	}
	d.lastDrawn = now

	var b strings.Builder
	for row := 0; row < d.Height; row++ {
		for col := 0; col < d.Width; col++ {
			b.WriteRune(rune(data[row*d.Width+col]))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(d.Sink, b.String())
	return err
}
