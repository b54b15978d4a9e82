// Package interpreter wires the interpreter CLI command, following the
// same NewCommands() convention as cli/typechecker.
package interpreter

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/nspcc-dev/vimp/pkg/attest"
	"github.com/nspcc-dev/vimp/pkg/certcache"
	"github.com/nspcc-dev/vimp/pkg/vimpconfig"
)

// NewCommands returns the 'run' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:      "run",
		Usage:     "Run a certified .vimpc program against a .param argument buffer",
		UsageText: "interpreter run <program>.vimpc <args>.param [--config cfg.yml] [--json]",
		Action:    runRun,
		Flags: []cli.Flag{
			cli.StringFlag{Name: "config", Usage: "Path to a vimpconfig YAML file"},
			cli.BoolFlag{Name: "json", Usage: "Print the report as JSON instead of plain text"},
		},
	}}
}

func runRun(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) != 2 {
		return cli.NewExitError("expected <program>.vimpc and <args>.param paths", 1)
	}
	vimpcPath, paramPath := args[0], args[1]

	cfg, err := vimpconfig.Load(ctx.String("config"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	log, err := vimpconfig.NewLogger(cfg.Logger)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer log.Sync() //nolint:errcheck

	cache, err := certcache.New(cfg.Cache.Capacity)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	runner := attest.NewRunner(cfg.Limits.MaxDepth, cache, log)

	vimpcBytes, err := os.ReadFile(vimpcPath)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	paramBytes, err := os.ReadFile(paramPath)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	report, err := runner.Run(vimpcBytes, paramBytes)
	if err != nil {
		log.Error("run failed", zap.Error(err))
		return cli.NewExitError(err, 1)
	}

	if ctx.Bool("json") {
		return printJSON(report)
	}
	printPlain(report)
	return nil
}

type jsonReport struct {
	SessionPub string `json:"session_pub"`
	Signature  string `json:"signature"`
	HArgs      string `json:"h_args"`
	HCode      string `json:"h_code"`
	HOut       string `json:"h_out"`
	HasValue   bool   `json:"has_value"`
	Value      string `json:"value,omitempty"`
}

func printJSON(r attest.Report) error {
	jr := jsonReport{
		SessionPub: hex.EncodeToString(r.SessionPub[:]),
		Signature:  hex.EncodeToString(r.Signature[:]),
		HArgs:      hex.EncodeToString(r.HArgs[:]),
		HCode:      hex.EncodeToString(r.HCode[:]),
		HOut:       hex.EncodeToString(r.HOut[:]),
		HasValue:   r.HasValue,
	}
	if r.HasValue {
		jr.Value = r.Value.String()
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(jr)
}

func printPlain(r attest.Report) {
	fmt.Printf("h_code:  %x\n", r.HCode)
	fmt.Printf("h_args:  %x\n", r.HArgs)
	fmt.Printf("h_out:   %x\n", r.HOut)
	fmt.Printf("session: %x\n", r.SessionPub)
	fmt.Printf("sig:     %x\n", r.Signature)
	if r.HasValue {
		fmt.Printf("value:   %s\n", r.Value.String())
	} else {
		fmt.Println("value:   <void>")
	}
}
