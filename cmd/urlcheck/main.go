// Command urlcheck parses a URL against the WHATWG URL Standard and prints
// its component breakdown plus any validation diagnostics.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/duke-git/lancet/v2/validator"
	"github.com/fatih/color"

	"github.com/curol/network/internal/config"
	"github.com/curol/network/parseerror"
	"github.com/curol/network/weburl"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	baseFlag := flag.String("base", "", "base URL to resolve relative input against")
	noColor := flag.Bool("no-color", false, "disable colorized output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "urlcheck: loading config:", err)
		os.Exit(1)
	}
	if *baseFlag != "" {
		cfg.BaseURL = *baseFlag
	}
	if *noColor {
		cfg.Color = false
	}
	color.NoColor = !cfg.Color

	args := flag.Args()
	if len(args) == 0 {
		runInteractive(cfg)
		return
	}
	status := 0
	for _, raw := range args {
		if !checkOne(raw, cfg) {
			status = 1
		}
	}
	os.Exit(status)
}

func runInteractive(cfg config.Config) {
	scanner := bufio.NewScanner(os.Stdin)
	status := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if !checkOne(line, cfg) {
			status = 1
		}
	}
	os.Exit(status)
}

func checkOne(raw string, cfg config.Config) bool {
	var base *weburl.Url
	if cfg.BaseURL != "" {
		b, err := weburl.Parse(cfg.BaseURL, nil, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, "urlcheck: invalid base URL:", err)
			return false
		}
		base = b
	}

	if cfg.PreScreen && !validator.IsUrl(raw) {
		fmt.Fprintln(os.Stderr, color.YellowString("pre-screen: %q does not look like a URL (lancet hint, non-authoritative)", raw))
	}

	var errs parseerror.Collector
	u, err := weburl.Parse(raw, base, &errs)
	if err != nil {
		fmt.Println(color.RedString("FAIL"), raw, "-", err)
		return false
	}

	fmt.Println(color.GreenString("OK"), u.Serialization())
	printField("scheme", u.Scheme())
	printField("username", u.Username())
	printField("password", u.Password())
	printField("host", u.HostString())
	if port, ok := u.Port(); ok {
		printField("port", fmt.Sprintf("%d", port))
	}
	printField("path", u.Path())
	if q, ok := u.Query(); ok {
		printField("query", q)
	}
	if f, ok := u.Fragment(); ok {
		printField("fragment", f)
	}
	if origin := u.Origin(); origin != "" {
		printField("origin", origin)
	}

	if h := u.Host(); cfg.PreScreen && (validator.IsIp4(h.String()) || validator.IsIp6(h.String())) {
		printField("host-kind (lancet hint)", "ip-literal")
	}

	for _, kind := range errs.Errors {
		fmt.Println(" ", color.YellowString("validation-error: %s", kind))
	}
	return true
}

func printField(name, value string) {
	if value == "" {
		return
	}
	fmt.Printf("  %-10s %s\n", name+":", value)
}
