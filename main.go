package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/mcncl/textcodec/csvtext"
	"github.com/mcncl/textcodec/internal/config"
	"github.com/mcncl/textcodec/internal/convert"
	"github.com/mcncl/textcodec/internal/errors"
	"github.com/mcncl/textcodec/jsontext"
)

// CLI defines the command-line interface
var CLI struct {
	From     string `help:"Input format." enum:"json,csv" default:"json"`
	To       string `help:"Output format." enum:"json,csv" default:"json"`
	Input    string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output   string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Indent   int    `help:"Spaces per nesting level for JSON output." default:"-1"`
	Compact  bool   `help:"Emit compact JSON output." short:"c"`
	Quote    string `help:"CSV quote character."`
	FieldSep string `help:"CSV field separator (\\t accepted)."`
	RowSep   string `help:"CSV row separator (\\n accepted)."`
	Headers  bool   `help:"Treat CSV row 0 as a header row when converting to JSON."`
	KeyStyle string `help:"Restyle header-derived JSON keys (snake, camel, pascal, or original)."`
	Config   string `help:"Path to a config file. Defaults to the nearest .textcodec.yml." type:"path"`
	Debug    bool   `help:"Enable debug logging." short:"d"`
	Version  bool   `help:"Show version information." short:"v"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("textcodec"),
		kong.Description("A tool to convert between JSON and CSV, reformat JSON, and transcode CSV dialects"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// The usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("textcodec version %s\n", Version)
		return
	}

	logger := newLogger(CLI.Debug)

	if err := run(logger); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: textcodec --help\n")
		os.Exit(1)
	}
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// run executes the main program logic
func run(logger zerolog.Logger) error {
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	dialect, err := cfg.Dialect()
	if err != nil {
		return errors.NewConfigError("invalid CSV dialect", err)
	}

	text, err := readInput()
	if err != nil {
		return err
	}
	logger.Debug().Str("from", CLI.From).Str("to", CLI.To).Int("bytes", len(text)).Msg("read input")

	out, err := transcode(text, cfg, dialect, logger)
	if err != nil {
		return err
	}

	return writeOutput(out)
}

// loadConfig loads the config file (explicit path, or the nearest discovered
// one) and layers any explicitly set flags on top.
func loadConfig(logger zerolog.Logger) (*config.Config, error) {
	cfg := config.NewConfig()

	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("failed to load config from '%s'", path), err)
		}
		logger.Debug().Str("path", path).Msg("loaded config file")
		cfg = loaded
	}

	if CLI.Indent >= 0 {
		cfg.JSON.Indent = CLI.Indent
	}
	if CLI.Compact {
		cfg.JSON.Compact = true
	}
	if CLI.Quote != "" {
		cfg.CSV.Quote = CLI.Quote
	}
	if CLI.FieldSep != "" {
		cfg.CSV.FieldSep = CLI.FieldSep
	}
	if CLI.RowSep != "" {
		cfg.CSV.RowSep = CLI.RowSep
	}
	if CLI.Headers {
		cfg.Convert.Headers = true
	}
	if CLI.KeyStyle != "" {
		cfg.Convert.KeyStyle = CLI.KeyStyle
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

// transcode runs one of the four format pipelines.
func transcode(text string, cfg *config.Config, dialect csvtext.Dialect, logger zerolog.Logger) (string, error) {
	switch CLI.From + ">" + CLI.To {
	case "json>json":
		v, err := jsontext.Parse(text)
		if err != nil {
			return "", errors.NewParseError("invalid JSON input", err)
		}
		return serializeJSON(v, cfg)

	case "json>csv":
		v, err := jsontext.Parse(text)
		if err != nil {
			return "", errors.NewParseError("invalid JSON input", err)
		}
		table, err := convert.JSONToCSV(v)
		if err != nil {
			return "", errors.NewConvertError("cannot represent this JSON as CSV", err)
		}
		logger.Debug().Int("rows", len(table)).Msg("converted JSON to table")
		return csvtext.SerializeDialect(table, dialect)

	case "csv>json":
		table, err := csvtext.ParseDialect(text, dialect)
		if err != nil {
			return "", errors.NewParseError("invalid CSV input", err)
		}
		logger.Debug().Int("rows", len(table)).Msg("parsed table")
		v, err := convert.CSVToJSON(table, convert.Options{
			Headers:  cfg.Convert.Headers,
			KeyStyle: cfg.Convert.KeyStyle,
		})
		if err != nil {
			return "", errors.NewConvertError("cannot represent this CSV as JSON", err)
		}
		return serializeJSON(v, cfg)

	case "csv>csv":
		table, err := csvtext.ParseDialect(text, dialect)
		if err != nil {
			return "", errors.NewParseError("invalid CSV input", err)
		}
		return csvtext.SerializeDialect(table, dialect)

	default:
		return "", errors.NewInputError(fmt.Sprintf("unsupported conversion %s to %s", CLI.From, CLI.To), errors.ErrUnknownFormat)
	}
}

func serializeJSON(v jsontext.Value, cfg *config.Config) (string, error) {
	if cfg.JSON.Compact {
		return jsontext.Serialize(v)
	}
	return jsontext.SerializeIndent(v, jsontext.Indent(cfg.JSON.Indent))
}

// readInput reads the document from the input file or stdin
func readInput() (string, error) {
	if CLI.Input != "" {
		if strings.TrimSpace(CLI.Input) == "" {
			return "", errors.NewInputError("input file path is blank", errors.ErrInvalidFilePath)
		}
		data, err := os.ReadFile(CLI.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewInputError(fmt.Sprintf("file '%s' not found", CLI.Input), errors.ErrFileNotFound)
			}
			return "", errors.NewInputError(fmt.Sprintf("failed to read file '%s'", CLI.Input), err)
		}
		return string(data), nil
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive, nothing was piped in
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// writeOutput writes the converted document to file or stdout
func writeOutput(text string) error {
	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, []byte(text), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", CLI.Output)
		return nil
	}

	_, err := fmt.Println(strings.TrimSuffix(text, "\n"))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
