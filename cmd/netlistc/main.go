package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/teris-io/cli"

	"github.com/xyce-xdm/xdm-core/pkg/driver"
)

var Description = strings.ReplaceAll(`
netlistc translates a SPICE-family netlist file into a stream of classified,
line-delimited JSON statements. It supports the base Xyce grammar and the
HSPICE, PSPICE, TSPICE and Spectre dialect overlays.
`, "\n", " ")

var Netlistc = cli.New(Description).
	WithArg(cli.NewArg("input", "The netlist file to translate").WithType(cli.TypeString)).
	WithOption(cli.NewOption("dialect", "Netlist dialect: xyce, hspice, pspice, tspice or spectre").
		WithType(cli.TypeString)).
	WithOption(cli.NewOption("config", "Optional TOML config file (default_dialect, fail_on_recover)").
		WithType(cli.TypeString)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) < 1 {
		fmt.Printf("ERROR: Not enough arguments provided, use --help\n")
		return -1
	}

	var cfg driver.Config
	if path := options["config"]; path != "" {
		loaded, err := driver.LoadConfig(path)
		if err != nil {
			fmt.Printf("ERROR: Unable to read config file: %s\n", err)
			return -1
		}
		cfg = loaded
	}

	dialectName := options["dialect"]
	if dialectName == "" {
		dialectName = cfg.DefaultDialect
	}
	if dialectName == "" {
		dialectName = "xyce"
	}

	input := args[0]
	file, err := os.Open(input)
	if err != nil {
		fmt.Printf("ERROR: Unable to open input file: %s\n", err)
		return -1
	}
	defer file.Close()

	session, err := driver.NewSession(file, input, dialectName)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return -1
	}

	enc := json.NewEncoder(os.Stdout)
	for {
		parsed, ok, err := session.Next()
		if err != nil {
			fmt.Printf("ERROR: %s\n", err)
			return -1
		}
		if !ok {
			break
		}
		if parsed.Recovered() && cfg.FailOnRecover {
			fmt.Printf("ERROR: %s:%v: statement rejected by grammar: %q\n", parsed.FileName, parsed.LineNumbers, parsed.SourceLine)
			return -1
		}
		if err := enc.Encode(parsed); err != nil {
			fmt.Printf("ERROR: Unable to write output: %s\n", err)
			return -1
		}
	}

	for _, msg := range session.Diag.Messages() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
	}

	return 0
}

func main() { os.Exit(Netlistc.Run(os.Args, os.Stdout)) }
