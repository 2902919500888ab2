// spanfmt formats and parses time-span values with compiled patterns.
//
// Usage:
//
//	spanfmt format -p "H:mm" 26:03:04.5
//	spanfmt parse -p "uuuu/MM" -kind yearmonth -culture fi-FI 2026.07
//	spanfmt play
//
// format reads values in round-trip form and writes them with the given
// pattern; parse reads values with the given pattern and writes round-trip
// form. Values come from the arguments, or from stdin one per line when no
// arguments are given.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/dkoosis/spanfmt/internal/config"
	"github.com/dkoosis/spanfmt/internal/diagnose"
	"github.com/dkoosis/spanfmt/internal/playground"
	"github.com/dkoosis/spanfmt/internal/version"
	"github.com/dkoosis/spanfmt/pkg/culture"
	"github.com/dkoosis/spanfmt/pkg/pattern"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	sub := args[0]
	switch sub {
	case "version":
		fmt.Fprintf(stdout, "spanfmt %s (%s, built %s)\n", version.Version, version.CommitHash, version.BuildDate)
		return 0
	case "format", "parse", "play":
	default:
		fmt.Fprintf(stderr, "spanfmt: unknown command %q\n", sub)
		usage(stderr)
		return 2
	}

	fs := flag.NewFlagSet("spanfmt "+sub, flag.ContinueOnError)
	fs.SetOutput(stderr)
	patternFlag := fs.String("p", "", "Pattern text or preset name from .spanfmt.yaml (required for format and parse)")
	kindFlag := fs.String("kind", "duration", "Value kind: duration, yearmonth")
	cultureFlag := fs.String("culture", "", "Culture: BCP-47 tag or culture table YAML path")
	monoFlag := fs.Bool("mono", false, "Disable ANSI styling in diagnostics")
	debugFlag := fs.Bool("debug", false, "Enable debug output")
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}

	flags := config.CliFlags{
		Culture: *cultureFlag, CultureSet: flagWasSet(fs, "culture"),
		NoColor: *monoFlag, NoColorSet: flagWasSet(fs, "mono"),
		Debug: *debugFlag, DebugSet: flagWasSet(fs, "debug"),
	}
	rc := config.Resolve(config.LoadConfig(), flags)

	monochrome := rc.Monochrome || !isTTYWriter(stderr)

	if sub == "play" {
		return runPlay(rc.Culture, monochrome)
	}

	if *patternFlag == "" {
		fmt.Fprintf(stderr, "spanfmt: %s requires -p PATTERN\n", sub)
		return 2
	}
	if *kindFlag != "duration" && *kindFlag != "yearmonth" {
		fmt.Fprintf(stderr, "spanfmt: unknown kind %q (expected duration, yearmonth)\n", *kindFlag)
		return 2
	}

	conv, err := newConverter(sub, *kindFlag, rc.Pattern(*patternFlag), rc.Culture)
	if err != nil {
		renderer := diagnose.NewRenderer(monochrome)
		fmt.Fprintln(stderr, renderer.Render(err))
		return 1
	}
	return convertAll(conv, fs.Args(), stdin, stdout, stderr, monochrome)
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage:
  spanfmt format -p PATTERN [-kind duration|yearmonth] [-culture TAG|FILE] [VALUE...]
  spanfmt parse  -p PATTERN [-kind duration|yearmonth] [-culture TAG|FILE] [VALUE...]
  spanfmt play   [-culture TAG|FILE]
  spanfmt version
`)
}

func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runPlay(c culture.Culture, monochrome bool) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := playground.Run(ctx, c, monochrome); err != nil {
		fmt.Fprintf(os.Stderr, "spanfmt: playground: %v\n", err)
		return 1
	}
	return 0
}

// converter maps one value string to its converted form: round-trip in,
// pattern out for format; pattern in, round-trip out for parse.
type converter func(text string) (string, error)

// newConverter compiles the pattern once; every value reuses the plan.
func newConverter(sub, kind, patternText string, c culture.Culture) (converter, error) {
	if kind == "duration" {
		p, err := pattern.NewDurationPattern(patternText, c)
		if err != nil {
			return nil, err
		}
		rt := pattern.DurationRoundTrip()
		if sub == "format" {
			return func(text string) (string, error) {
				v, err := rt.Parse(text).Get()
				if err != nil {
					return "", err
				}
				return p.Format(v), nil
			}, nil
		}
		return func(text string) (string, error) {
			v, err := p.Parse(text).Get()
			if err != nil {
				return "", err
			}
			return rt.Format(v), nil
		}, nil
	}

	p, err := pattern.NewYearMonthPattern(patternText, c)
	if err != nil {
		return nil, err
	}
	rt := pattern.YearMonthRoundTrip()
	if sub == "format" {
		return func(text string) (string, error) {
			v, err := rt.Parse(text).Get()
			if err != nil {
				return "", err
			}
			return p.Format(v), nil
		}, nil
	}
	return func(text string) (string, error) {
		v, err := p.Parse(text).Get()
		if err != nil {
			return "", err
		}
		return rt.Format(v), nil
	}, nil
}

// convertAll applies conv to each argument, or to each stdin line when no
// arguments are given. Failures render to stderr and flip the exit code but
// do not stop the remaining values.
func convertAll(conv converter, args []string, stdin io.Reader, stdout, stderr io.Writer, monochrome bool) int {
	renderer := diagnose.NewRenderer(monochrome)
	code := 0
	emit := func(text string) {
		out, err := conv(text)
		if err != nil {
			fmt.Fprintln(stderr, renderer.Render(err))
			code = 1
			return
		}
		fmt.Fprintln(stdout, out)
	}

	if len(args) > 0 {
		for _, arg := range args {
			emit(arg)
		}
		return code
	}

	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		emit(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "spanfmt: reading stdin: %v\n", err)
		return 2
	}
	return code
}
