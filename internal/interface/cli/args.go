package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/yanqian/weather-advisor/internal/domain/advisory"
)

// ErrNoCities is returned when no positional city was given.
var ErrNoCities = errors.New("at least one city is required")

// Defaults supplies flag defaults from configuration.
type Defaults struct {
	Model  string
	Tone   string
	Detail string
}

// Options is the parsed command line.
type Options struct {
	Cities   []string
	Refine   bool
	Advisory advisory.Options
}

// ParseArgs parses flags that may appear before, between or after city names.
// Everything after a bare "--" is treated as a city.
func ParseArgs(args []string, defaults Defaults, usageOut io.Writer) (Options, error) {
	fs := flag.NewFlagSet("advisor", flag.ContinueOnError)
	fs.SetOutput(usageOut)

	refine := fs.Bool("ai", false, "refine each advisory with the configured LLM provider")
	model := fs.String("model", defaults.Model, "completion model name")
	tone := fs.String("tone", defaults.Tone, "advisory tone: friendly, neutral or formal")
	detail := fs.String("detail", defaults.Detail, "advisory length: short or medium")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: advisor [--ai] [--model name] [--tone friendly|neutral|formal] [--detail short|medium] <city> [city ...]")
		fs.PrintDefaults()
	}

	var cities []string
	rest := args
	for len(rest) > 0 {
		if err := fs.Parse(rest); err != nil {
			return Options{}, err
		}
		remaining := fs.Args()
		consumed := len(rest) - len(remaining)
		if consumed > 0 && rest[consumed-1] == "--" {
			cities = append(cities, remaining...)
			break
		}
		if len(remaining) == 0 {
			break
		}
		cities = append(cities, remaining[0])
		rest = remaining[1:]
	}

	cities = compact(cities)
	if len(cities) == 0 {
		fs.Usage()
		return Options{}, ErrNoCities
	}

	parsedTone, err := advisory.ParseTone(*tone)
	if err != nil {
		return Options{}, err
	}
	parsedDetail, err := advisory.ParseDetail(*detail)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Cities: cities,
		Refine: *refine,
		Advisory: advisory.Options{
			Model:  strings.TrimSpace(*model),
			Tone:   parsedTone,
			Detail: parsedDetail,
		},
	}, nil
}

func compact(cities []string) []string {
	out := cities[:0]
	for _, city := range cities {
		if c := strings.TrimSpace(city); c != "" {
			out = append(out, c)
		}
	}
	return out
}
