// Package typechecker wires the type-checker CLI command, grounded on
// cli/query's NewCommands() convention: a small command table handed to
// cli/app's *cli.App.
package typechecker

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/nspcc-dev/vimp/pkg/attest"
	"github.com/nspcc-dev/vimp/pkg/vimpconfig"
	"github.com/nspcc-dev/vimp/pkg/vimpkeys"
)

const defaultKeyPath = "verifier.key"

// NewCommands returns the 'check' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:      "check",
		Usage:     "Type-check a .impc program and emit a signed .vimpc certificate",
		UsageText: "type-checker check <program>.impc [--out <program>.vimpc] [--config cfg.yml] [--key verifier.key]",
		Action:    runCheck,
		Flags: []cli.Flag{
			cli.StringFlag{Name: "config", Usage: "Path to a vimpconfig YAML file"},
			cli.StringFlag{Name: "out", Usage: "Output .vimpc path (default: input with .vimpc extension)"},
			cli.StringFlag{Name: "key", Value: defaultKeyPath, Usage: "Path to the verifier's persistent signing key"},
		},
	}}
}

func runCheck(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) != 1 {
		return cli.NewExitError("expected exactly one .impc program path", 1)
	}
	inPath := args[0]

	cfg, err := vimpconfig.Load(ctx.String("config"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	log, err := vimpconfig.NewLogger(cfg.Logger)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer log.Sync() //nolint:errcheck

	verifierKey, err := vimpkeys.LoadOrCreate(ctx.String("key"))
	if err != nil {
		return cli.NewExitError(fmt.Errorf("loading verifier key: %w", err), 1)
	}

	bytecode, err := os.ReadFile(inPath)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	cert, err := attest.Certify(bytecode, verifierKey)
	if err != nil {
		log.Error("certify failed", zap.Error(err))
		return cli.NewExitError(err, 1)
	}

	outPath := ctx.String("out")
	if outPath == "" {
		outPath = outputPath(inPath)
	}
	if err := os.WriteFile(outPath, cert.Bytes, 0o644); err != nil {
		return cli.NewExitError(err, 1)
	}

	log.Info("certified program",
		zap.String("in", inPath),
		zap.String("out", outPath),
		zap.Uint64("bytes_read", cert.BytesRead),
	)
	return nil
}

func outputPath(inPath string) string {
	trimmed := trimExt(inPath, ".impc")
	return trimmed + ".vimpc"
}

func trimExt(path, ext string) string {
	if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
		return path[:len(path)-len(ext)]
	}
	return path
}
