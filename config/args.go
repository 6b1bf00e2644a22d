package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/lukemcguire/linkaudit/urlutil"
)

// Usage is the one-line synopsis printed with the flag defaults.
const Usage = "Usage: linkaudit [flags] <url> [-e CODE... | all] [-w CODE... | all] [-r]"

// arrayFlags collects every value of a repeatable flag.
type arrayFlags []string

func (af *arrayFlags) String() string {
	return strings.Join(*af, ", ")
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

// multiValueFlags accept several space-separated values after one flag.
var multiValueFlags = map[string]bool{"e": true, "errors": true, "w": true, "warnings": true}

// valueFlags take exactly one value.
var valueFlags = map[string]bool{"config": true, "crawler": true, "format": true}

// Parse resolves Options from command-line arguments (without the program
// name). Usage and flag errors are written to output. It returns
// flag.ErrHelp when help was requested.
func Parse(args []string, output io.Writer) (Options, error) {
	var (
		errorCodes   arrayFlags
		warningCodes arrayFlags
		crawlerArgs  arrayFlags
		opts         Options
		configPath   string
	)

	fs := flag.NewFlagSet("linkaudit", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		_, _ = fmt.Fprintln(output, Usage)
		_, _ = fmt.Fprintln(output, "Flags:")
		fs.PrintDefaults()
	}

	fs.Var(&errorCodes, "e", "error codes to report, or \"all\" (shorthand for -errors)")
	fs.Var(&errorCodes, "errors", "error codes to report, or \"all\"")
	fs.Var(&warningCodes, "w", "warning codes to report, or \"all\" (shorthand for -warnings)")
	fs.Var(&warningCodes, "warnings", "warning codes to report, or \"all\"")
	fs.BoolVar(&opts.Retry, "r", false, "re-verify flagged links (shorthand for -retry)")
	fs.BoolVar(&opts.Retry, "retry", false, "re-verify flagged links with an independent HTTP check")
	fs.StringVar(&configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.Crawler, "crawler", DefaultCrawler, "crawler executable name or path")
	fs.Var(&crawlerArgs, "crawler-arg", "extra flag passed to the crawler (repeatable)")
	fs.StringVar(&opts.Format, "format", FormatText, "output format: text, json or csv")
	fs.BoolVar(&opts.Progress, "progress", false, "show interactive progress while auditing")
	fs.BoolVar(&opts.Verbose, "v", false, "enable debug logging")

	flagArgs, positional := splitArgs(args)
	if err := fs.Parse(flagArgs); err != nil {
		return Options{}, err
	}
	positional = append(positional, fs.Args()...)

	if len(positional) != 1 {
		fs.Usage()
		return Options{}, fmt.Errorf("expected exactly one URL, got %d arguments", len(positional))
	}
	opts.URL = positional[0]
	opts.Errors = errorCodes
	opts.Warnings = warningCodes
	opts.CrawlerArgs = crawlerArgs

	if configPath != "" {
		file, err := LoadFile(configPath)
		if err != nil {
			return Options{}, err
		}
		opts.apply(file, setFlags(fs))
	}

	if err := urlutil.ValidateTarget(opts.URL); err != nil {
		return Options{}, fmt.Errorf("invalid URL: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// apply fills every option not set on the command line from file.
func (o *Options) apply(file *File, set map[string]bool) {
	if !set["e"] && !set["errors"] && len(file.Errors) > 0 {
		o.Errors = file.Errors
	}
	if !set["w"] && !set["warnings"] && len(file.Warnings) > 0 {
		o.Warnings = file.Warnings
	}
	if !set["r"] && !set["retry"] && file.Retry != nil {
		o.Retry = *file.Retry
	}
	if !set["crawler"] && file.Crawler != "" {
		o.Crawler = file.Crawler
	}
	if !set["crawler-arg"] && len(file.CrawlerArgs) > 0 {
		o.CrawlerArgs = file.CrawlerArgs
	}
	if !set["format"] && file.Format != "" {
		o.Format = file.Format
	}
}

func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// splitArgs separates flags from positional arguments so the URL may appear
// anywhere, and expands "-e 403 404" into "-e 403 -e 404". Values following a
// multi-value flag end at the next flag or at an http(s) URL.
func splitArgs(args []string) (flags []string, positional []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return flags, append(positional, args[i+1:]...)
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positional = append(positional, arg)
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		flags = append(flags, arg)
		if hasValue {
			continue
		}

		switch {
		case multiValueFlags[name]:
			for i+1 < len(args) && isFlagValue(args[i+1]) {
				i++
				flags = append(flags, args[i])
				if i+1 < len(args) && isFlagValue(args[i+1]) {
					flags = append(flags, arg)
				}
			}
		case valueFlags[name] || name == "crawler-arg":
			if i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		}
	}
	return flags, positional
}

func isFlagValue(arg string) bool {
	return !strings.HasPrefix(arg, "-") && !urlutil.IsHTTPScheme(arg)
}

// IsHelp reports whether err is the result of -h or -help.
func IsHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
