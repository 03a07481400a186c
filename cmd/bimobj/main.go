// bimobj is a CLI utility for exporting building model geometry to Wavefront OBJ.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/bimobj/internal/config"
	"github.com/Faultbox/bimobj/internal/logger"
)

func main() {
	config.ParseFlags()
	args := config.Args()

	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := args[0]
	args = args[1:]

	logger.Sugar.Debugf("Config: %+v", cfg)
	logger.Debug("running command", zap.String("command", command), zap.Strings("args", args))

	var cmdErr error
	switch command {
	case "export":
		cmdErr = cmdExport(cfg, args)
	case "info":
		cmdErr = cmdInfo(cfg, args)
	case "config":
		cmdErr = cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if cmdErr != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(cmdErr))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`bimobj - building model to Wavefront OBJ exporter

Usage:
  bimobj [flags] <command> [args]

Commands:
  export <model.yaml> [output.obj|-]  Export geometry (default: <model>.obj, "-" = stdout)
  info <model.yaml>                   List elements and whether they are exported
  config [path]                       Write the effective configuration

Flags:
  -config <file>        Config file (default: ./bimobj.yaml or user config dir)
  -debug                Enable debug logging
  -log-file <file>      Also log to a rotating file
  -metadata             Write type and GlobalId comments before each group
  -transform-normals    Transform normals with the inverse-transpose matrix
  -skip-malformed       Skip elements with malformed geometry
  -strict               Abort on malformed geometry (overrides config)

Examples:
  bimobj export office.yaml
  bimobj -metadata export office.yaml - > office.obj
  bimobj -skip-malformed -debug export scan.yaml scan.obj
  bimobj info office.yaml`)
}
