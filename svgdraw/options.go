package svgdraw

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/benoitkugler/drawsvg/svgdoc"
)

// Options configures a drawing session.
type Options struct {
	StrokeColor string // green by default
	StrokeWidth string // 4px by default
	Fill        string // none by default

	LineTicks int // pointer events between two freehand segments: 10

	// PreciseArrows orients arrow tips with a two argument arctangent,
	// instead of the historical formula of LineAngle.
	PreciseArrows bool
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		StrokeColor: svgdoc.DefaultStyle.StrokeColor,
		StrokeWidth: svgdoc.DefaultStyle.StrokeWidth,
		Fill:        svgdoc.DefaultStyle.Fill,
		LineTicks:   DefaultLineTicks,
	}
}

func (o Options) style() svgdoc.Style {
	return svgdoc.Style{StrokeColor: o.StrokeColor, StrokeWidth: o.StrokeWidth, Fill: o.Fill}
}

// LoadOptions reads options in TOML format, such as
//
//	StrokeColor = "red"
//	LineTicks = 5
//
// Missing values keep their default. It will error if there
// are values in the input that were not parsed.
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	md, err := toml.DecodeReader(r, &opts)
	if err != nil {
		return opts, err
	}
	if len(md.Undecoded()) > 0 {
		return opts, fmt.Errorf("undecoded fields in drawing options: %v", md.Undecoded())
	}
	if opts.LineTicks < 1 {
		return opts, errors.New("LineTicks must be at least 1")
	}
	return opts, nil
}

// LoadOptionsFile is like LoadOptions but reads the given file.
func LoadOptionsFile(fileName string) (Options, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return DefaultOptions(), err
	}
	defer f.Close()
	return LoadOptions(f)
}
