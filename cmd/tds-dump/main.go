// The tds-dump command renders the chunk tree a scene exports to.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/scenekit/tdsfile"
	"github.com/scenekit/tdsfile/internal/config"
	"github.com/scenekit/tdsfile/internal/logger"
	"github.com/scenekit/tdsfile/tds"
)

const usage = `usage: tds-dump [FLAGS] [INPUT] [OUTPUT]

Reads a scene description in JSON from INPUT, and writes to OUTPUT a readable
rendering of the 3D Studio chunk tree the scene would export to. The tree
matches what tds-export emits with the same flags.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified, then stdin
is used. If OUTPUT is "-" or unspecified, then stdout is used. Warnings and
errors are logged to stderr.

Flags:
`

var (
	flagSel     = flag.Bool("sel", false, "dump selected objects only")
	flagAnim    = flag.Bool("anim", false, "include the keyframe hierarchy")
	flagForward = flag.String("forward", "", "forward axis of the output: X, Y, Z, -X, -Y or -Z")
	flagUp      = flag.String("up", "", "up axis of the output")
	flagConfig  = flag.String("config", "", "path to an export profile")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadProfile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	if err := run(cfg, flag.Args()); err != nil {
		logger.Error("dump failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func loadProfile() (*config.Config, error) {
	path := *flagConfig
	if path == "" {
		path = config.FindFile()
	}
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if *flagSel {
		cfg.Export.SelectedOnly = true
	}
	if *flagAnim {
		cfg.Export.Keyframes = true
	}
	if *flagForward != "" {
		cfg.Export.Forward = *flagForward
	}
	if *flagUp != "" {
		cfg.Export.Up = *flagUp
	}
	return cfg, nil
}

func run(cfg *config.Config, args []string) error {
	transform, err := cfg.Transform()
	if err != nil {
		return err
	}

	scene, err := readScene(args)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var output io.Writer = os.Stdout
	if len(args) >= 2 && args[1] != "-" {
		out, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer out.Close()
		output = out
	}

	encoder := tds.Encoder{
		SelectedOnly: cfg.Export.SelectedOnly,
		Keyframes:    cfg.Export.Keyframes,
		Transform:    transform,
	}
	warn, err := encoder.Dump(output, scene)
	if warn != nil {
		logger.Warn("dump warnings", zap.Error(warn))
	}
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	return nil
}

func readScene(args []string) (*tdsfile.Scene, error) {
	var input io.Reader = os.Stdin
	if len(args) >= 1 && args[0] != "-" {
		in, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer in.Close()
		input = in
	}
	scene := new(tdsfile.Scene)
	if err := json.NewDecoder(input).Decode(scene); err != nil {
		return nil, err
	}
	return scene, nil
}
