package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/bimobj/internal/config"
	"github.com/Faultbox/bimobj/internal/logger"
	"github.com/Faultbox/bimobj/pkg/model"
	"github.com/Faultbox/bimobj/pkg/objexport"
)

// stdoutPath selects standard output as the export target.
const stdoutPath = "-"

var errUsage = errors.New("usage")

func cmdExport(cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: bimobj export <model.yaml> [output.obj|-]", errUsage)
	}

	input := args[0]
	output := defaultOutputPath(input)
	if len(args) == 2 {
		output = args[1]
	}

	log := logger.Log.With(zap.String("run_id", uuid.New().String()))
	_, err := exportModel(cfg, input, output, os.Stdout, log)
	return err
}

// exportModel loads input and writes its OBJ rendition to output, or to
// stdout when output is "-". A partially written output file is removed on
// failure.
func exportModel(cfg *config.Config, input, output string, stdout io.Writer, log *zap.Logger) (objexport.Stats, error) {
	if output == input {
		return objexport.Stats{}, fmt.Errorf("output %s would overwrite the input", output)
	}

	m, err := model.Load(input)
	if err != nil {
		return objexport.Stats{}, err
	}
	if cfg.Model.DecodeNames {
		m.DecodeNames()
	}

	log.Info("export started",
		zap.String("input", input),
		zap.String("output", output),
		zap.String("schema", m.Schema),
		zap.Int("elements", len(m.Elements)))

	exp := objexport.New(cfg.Export.Options(), logger.NewExportObserver(log))

	if output == stdoutPath {
		stats, err := exp.Export(m.All(), stdout)
		logStats(log, stats, err)
		return stats, err
	}

	f, err := os.Create(output)
	if err != nil {
		return objexport.Stats{}, fmt.Errorf("creating output: %w", err)
	}

	stats, err := exp.Export(m.All(), f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("%w: %w", objexport.ErrWrite, closeErr)
	}
	if err != nil {
		_ = os.Remove(output)
	}
	logStats(log, stats, err)
	return stats, err
}

func logStats(log *zap.Logger, stats objexport.Stats, err error) {
	fields := []zap.Field{
		zap.Int("written", stats.Written),
		zap.Int("skipped", stats.Skipped),
		zap.Int("rejected", stats.Rejected),
		zap.Int("vertices", stats.Vertices),
		zap.Int("normals", stats.Normals),
		zap.Int("faces", stats.Faces),
	}
	if err != nil {
		log.Error("export failed", append(fields, zap.Error(err))...)
		return
	}
	log.Info("export finished", fields...)
}

// defaultOutputPath replaces the input extension with .obj.
func defaultOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".obj"
}

func cmdInfo(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: bimobj info <model.yaml>", errUsage)
	}

	m, err := model.Load(args[0])
	if err != nil {
		return err
	}
	if cfg.Model.DecodeNames {
		m.DecodeNames()
	}

	fmt.Printf("Model:    %s\n", args[0])
	writeInfo(os.Stdout, m)
	return nil
}

// writeInfo prints one line per element with its export status.
func writeInfo(w io.Writer, m *model.Model) {
	schema := m.Schema
	if schema == "" {
		schema = "(unspecified)"
	}

	exportable := 0
	for el := range m.All() {
		if objexport.IsExportable(el) {
			exportable++
		}
	}

	fmt.Fprintf(w, "Schema:   %s\n", schema)
	fmt.Fprintf(w, "Elements: %d (%d exportable)\n", len(m.Elements), exportable)
	fmt.Fprintln(w)

	for el := range m.All() {
		status := "export"
		if reason := objexport.Check(el); reason != objexport.SkipNone {
			status = "skip: " + reason.String()
		}

		guid := el.GlobalID
		if u, err := model.ExpandGlobalID(el.GlobalID); err == nil {
			guid = fmt.Sprintf("%s (%s)", el.GlobalID, u)
		} else {
			logger.Warn("unreadable GlobalId",
				zap.String("type", el.Type),
				zap.String("global_id", el.GlobalID),
				zap.Error(err))
		}

		fmt.Fprintf(w, "  %-22s %-48s %-24s %s\n", el.Type, guid, status, el.Name)
	}
}

func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: bimobj config [path]", errUsage)
	}

	path := filepath.Join(config.ConfigDir(), "config.yaml")
	save := cfg.Save
	if len(args) == 1 {
		path = args[0]
		save = func() error { return cfg.SaveTo(path) }
	}

	if err := save(); err != nil {
		return err
	}
	logger.Info("config written", zap.String("path", path))
	fmt.Printf("Wrote %s\n", path)
	return nil
}
