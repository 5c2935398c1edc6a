// Command htmlcheck parses an HTML document against the WHATWG HTML
// tree construction stage, using domref as the reference DOM, and prints a
// tree dump plus any validation diagnostics.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/curol/network/domref"
	"github.com/curol/network/htmltree"
	"github.com/curol/network/internal/config"
	"github.com/curol/network/parseerror"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	scripting := flag.Bool("scripting", false, "parse noscript content as raw text instead of markup")
	noColor := flag.Bool("no-color", false, "disable colorized output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "htmlcheck: loading config:", err)
		os.Exit(1)
	}
	if *scripting {
		cfg.Scripting = true
	}
	if *noColor {
		cfg.Color = false
	}
	color.NoColor = !cfg.Color

	var input []byte
	if args := flag.Args(); len(args) > 0 {
		input, err = os.ReadFile(args[0])
	} else {
		input, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "htmlcheck: reading input:", err)
		os.Exit(1)
	}

	var errs parseerror.Collector
	sink := domref.New()
	doc := htmltree.Parse(string(input), sink, &errs, htmltree.Options{Scripting: cfg.Scripting})

	fmt.Print(domref.Dump(doc))
	if len(errs.Errors) == 0 {
		return
	}
	fmt.Fprintln(os.Stderr)
	for _, kind := range errs.Errors {
		fmt.Fprintln(os.Stderr, color.YellowString("validation-error: %s", kind))
	}
}
