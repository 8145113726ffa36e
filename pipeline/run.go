package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"infogen/common"
	"infogen/meter"
	"infogen/state"
)

// Run is the generate subcommand action. It reads the request off the
// command line, assembles the pipeline from the loaded configuration, runs
// one generation and writes the artifacts out.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("generate")

	prompt := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if len(prompt) == 0 {
		return errors.New("no prompt has been specified")
	}

	dst := cmd.String("out")
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}

	plan := meter.PlanFree
	if s := cmd.String("plan"); len(s) > 0 {
		if plan, err = meter.ParsePlan(s); err != nil {
			log.Warn("Unknown plan requested, switching to free", zap.Error(err))
			plan = meter.PlanFree
		}
	}

	var formats []common.OutputFormat
	for _, s := range cmd.StringSlice("to") {
		f, err := common.ParseOutputFormat(s)
		if err != nil {
			log.Warn("Unknown output format requested, ignoring", zap.String("format", s))
			continue
		}
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		formats = []common.OutputFormat{common.OutputFormatSlide}
	}

	req := &Request{
		Prompt:          prompt,
		Caller:          cmd.String("caller"),
		Plan:            plan,
		Formats:         formats,
		TypeHint:        cmd.String("type"),
		EntityCountHint: int(cmd.Int("entities")),
		Lang:            cmd.String("lang"),
		Palette:         cmd.StringSlice("palette"),
		SkipCache:       cmd.Bool("no-cache"),
	}

	if req.Logo, err = readOptional(cmd.String("logo")); err != nil {
		return err
	}
	if req.Stylesheet, err = readOptional(cmd.String("stylesheet")); err != nil {
		return err
	}
	if req.Template, err = readOptional(cmd.String("template")); err != nil {
		return err
	}
	for _, path := range cmd.StringSlice("image") {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to read reference image %q: %w", path, err)
		}
		req.Reference = append(req.Reference, data)
	}

	log.Info("Processing starting", zap.String("destination", dst), zap.Stringer("plan", plan))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	p, err := FromConfig(env.Cfg, env.Log)
	if err != nil {
		return err
	}
	defer func() {
		if er := p.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close pipeline: %w", er))
		}
	}()

	res, err := p.Generate(ctx, req)
	if err != nil {
		return err
	}

	// keep the intermediate shapes when a debug report was requested
	if env.Rpt != nil {
		if data, er := json.MarshalIndent(res.Brief, "", "  "); er == nil {
			env.Rpt.StoreData(fmt.Sprintf("brief-%s.json", res.ID), data)
		}
		if data, er := json.MarshalIndent(res.Layout, "", "  "); er == nil {
			env.Rpt.StoreData(fmt.Sprintf("layout-%s.json", res.ID), data)
		}
	}

	overwrite := cmd.Bool("overwrite")
	for _, out := range res.Outputs {
		name := buildOutputPath(dst, out, res, req, env.Cfg.Document, log)

		if _, err := os.Stat(name); err == nil {
			if !overwrite {
				return fmt.Errorf("output file already exists: %s", name)
			}
			log.Warn("Overwriting existing file", zap.String("file", name))
		} else if !os.IsNotExist(err) {
			return err
		} else if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}

		if err := os.WriteFile(name, out.Data, 0644); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
		log.Info("Artifact written",
			zap.String("file", name), zap.Stringer("format", out.Format), zap.String("ref", out.Ref))
		if env.Rpt != nil {
			env.Rpt.Store(fmt.Sprintf("result-%s%s", res.ID, filepath.Ext(name)), name)
		}

		// signed references go to stdout unconditionally so scripts can
		// collect them with logging turned off
		fmt.Println(out.Ref)
	}
	return nil
}

func readOptional(path string) ([]byte, error) {
	if len(path) == 0 {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %q: %w", path, err)
	}
	return data, nil
}
