// Package testpattern generates synthetic uncompressed video for testing
// senders without a capture device.
package testpattern

import (
	"errors"
	"fmt"
	"time"
)

// Info describes the generated video.
type Info struct {
	Width       uint
	Height      uint
	TimebaseNum int
	TimebaseDen int
}

// FrameDuration returns the duration of one frame, TimebaseNum frames per
// TimebaseDen seconds.
func (i Info) FrameDuration() time.Duration {
	fps := float64(i.TimebaseNum) / float64(i.TimebaseDen)
	return time.Duration(float64(time.Second) / fps)
}

// TimestampStep returns the RTP timestamp increment per frame at clockRate.
func (i Info) TimestampStep(clockRate uint32) uint32 {
	return uint32(uint64(clockRate) * uint64(i.TimebaseDen) / uint64(i.TimebaseNum))
}

// Crop removes lines and columns at the edges of a frame.
type Crop struct {
	Top    uint
	Left   uint
	Bottom uint
	Right  uint
}

// Window is the part of a frame left after cropping.
type Window struct {
	FirstLine uint
	LastLine  uint
	Offset    uint
	Width     uint
}

func (i Info) Window(c Crop) (Window, error) {
	if i.TimebaseNum <= 0 || i.TimebaseDen <= 0 {
		return Window{}, fmt.Errorf("invalid frame rate %d/%d", i.TimebaseNum, i.TimebaseDen)
	}
	if c.Top+c.Bottom >= i.Height {
		return Window{}, fmt.Errorf("crop %d+%d removes all %d lines", c.Top, c.Bottom, i.Height)
	}
	if c.Left+c.Right >= i.Width {
		return Window{}, fmt.Errorf("crop %d+%d removes all %d columns", c.Left, c.Right, i.Width)
	}
	return Window{
		FirstLine: c.Top,
		LastLine:  i.Height - c.Bottom - 1,
		Offset:    c.Left,
		Width:     i.Width - c.Left - c.Right,
	}, nil
}

// LineBytes returns the size of one window line for a pixel group of
// pixels/bytes. The width must be a whole number of pixel groups.
func (w Window) LineBytes(pixels, bytes uint) (int, error) {
	if pixels == 0 {
		return 0, errors.New("empty pixel group")
	}
	if w.Width%pixels != 0 {
		return 0, fmt.Errorf("width %d is not a multiple of %d pixels", w.Width, pixels)
	}
	return int(w.Width / pixels * bytes), nil
}

// Bounce fills every line with a single byte value that moves by one per line
// and reverses direction at 0 and 255.
type Bounce struct {
	value uint8
	step  int8
}

func NewBounce(start uint8) *Bounce {
	return &Bounce{value: start, step: 1}
}

// FillLine writes the current value to line and advances.
func (b *Bounce) FillLine(line []byte) {
	for i := range line {
		line[i] = b.value
	}
	switch b.value {
	case 0:
		b.step = 1
	case 255:
		b.step = -1
	}
	b.value = uint8(int16(b.value) + int16(b.step))
}
