package rtpvideotx

import (
	"fmt"
	"slices"

	"github.com/mengelbart/rtpvideotx/rfc4175"
)

type Format int

const (
	YCbCr411_8bit Format = iota
	YCbCr422_8bit
	YCbCr422_10bit
	RGB_8bit
	RGBA_8bit
	BGR_8bit
	BGRA_8bit
	RGB_10bit
	RGBA_10bit
	BGR_10bit
	BGRA_10bit
	RGB_12bit
	RGBA_12bit
	BGR_12bit
	BGRA_12bit
	RGB_16bit
	RGBA_16bit
	BGR_16bit
	BGRA_16bit
)

var pixelGroups = map[Format]rfc4175.PixelGroup{
	YCbCr411_8bit:  {Pixels: 4, Bytes: 6},
	YCbCr422_8bit:  {Pixels: 2, Bytes: 4},
	YCbCr422_10bit: {Pixels: 2, Bytes: 5},
	RGB_8bit:       {Pixels: 1, Bytes: 3},
	RGBA_8bit:      {Pixels: 1, Bytes: 4},
	BGR_8bit:       {Pixels: 1, Bytes: 3},
	BGRA_8bit:      {Pixels: 1, Bytes: 4},
	RGB_10bit:      {Pixels: 4, Bytes: 15},
	RGBA_10bit:     {Pixels: 1, Bytes: 5},
	BGR_10bit:      {Pixels: 4, Bytes: 15},
	BGRA_10bit:     {Pixels: 1, Bytes: 5},
	RGB_12bit:      {Pixels: 2, Bytes: 9},
	RGBA_12bit:     {Pixels: 1, Bytes: 6},
	BGR_12bit:      {Pixels: 2, Bytes: 9},
	BGRA_12bit:     {Pixels: 1, Bytes: 6},
	RGB_16bit:      {Pixels: 1, Bytes: 6},
	RGBA_16bit:     {Pixels: 1, Bytes: 8},
	BGR_16bit:      {Pixels: 1, Bytes: 6},
	BGRA_16bit:     {Pixels: 1, Bytes: 8},
}

var formatNames = map[Format]string{
	YCbCr411_8bit:  "YCbCr-4:1:1-8",
	YCbCr422_8bit:  "YCbCr-4:2:2-8",
	YCbCr422_10bit: "YCbCr-4:2:2-10",
	RGB_8bit:       "RGB-8",
	RGBA_8bit:      "RGBA-8",
	BGR_8bit:       "BGR-8",
	BGRA_8bit:      "BGRA-8",
	RGB_10bit:      "RGB-10",
	RGBA_10bit:     "RGBA-10",
	BGR_10bit:      "BGR-10",
	BGRA_10bit:     "BGRA-10",
	RGB_12bit:      "RGB-12",
	RGBA_12bit:     "RGBA-12",
	BGR_12bit:      "BGR-12",
	BGRA_12bit:     "BGRA-12",
	RGB_16bit:      "RGB-16",
	RGBA_16bit:     "RGBA-16",
	BGR_16bit:      "BGR-16",
	BGRA_16bit:     "BGRA-16",
}

// LookupPixelGroup returns the pixel group geometry of f.
func LookupPixelGroup(f Format) (rfc4175.PixelGroup, error) {
	pg, ok := pixelGroups[f]
	if !ok {
		return rfc4175.PixelGroup{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	return pg, nil
}

// Formats returns all supported formats in declaration order.
func Formats() []Format {
	fs := make([]Format, 0, len(pixelGroups))
	for f := range pixelGroups {
		fs = append(fs, f)
	}
	slices.Sort(fs)
	return fs
}

func ParseFormat(s string) (Format, error) {
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}
