package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/opensplit/feolattack/internal/def"
	"github.com/opensplit/feolattack/internal/lef"
	"github.com/opensplit/feolattack/internal/splitter"
)

var (
	splitConfigPath string
	splitLefPath    string
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Produce a partial-layer layout from a full one, for testing (C8)",
	RunE:  runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().StringVar(&splitConfigPath, "config", "split_def.ini", "path to the split_def.ini settings file")
	splitCmd.Flags().StringVar(&splitLefPath, "lef", "", "path to the standard-cell library file (required)")
	_ = splitCmd.MarkFlagRequired("lef")
}

func runSplit(_ *cobra.Command, _ []string) error {
	cfg := splitter.DefaultConfig()
	if f, err := os.Open(splitConfigPath); err == nil {
		cfg, err = splitter.LoadConfig(f)
		f.Close()
		if err != nil {
			return errors.Wrap(err, "feolattack split: loading config")
		}
	}

	lefFile, err := os.Open(splitLefPath)
	if err != nil {
		return errors.Wrap(err, "feolattack split: opening --lef")
	}
	defer lefFile.Close()
	library, err := lef.Parse(lefFile)
	if err != nil {
		return errors.Wrap(err, "feolattack split: parsing library")
	}

	inFile, err := os.Open(cfg.InputFile)
	if err != nil {
		return errors.Wrap(err, "feolattack split: opening INPUT_FILE_NAME")
	}
	layout, err := def.Parse(inFile, library)
	inFile.Close()
	if err != nil {
		return errors.Wrap(err, "feolattack split: parsing layout")
	}

	good, err := splitter.ProperLayers(layout.Layers, cfg.BackEnd, cfg.FrontEnd, cfg.SplitLayer)
	if err != nil {
		return errors.Wrap(err, "feolattack split: computing layer keep-set")
	}

	out, err := splitter.Split(layout, good, cfg.SplitLayer, splitter.WithViaPitch(cfg.ViaPitch))
	if err != nil {
		return errors.Wrap(err, "feolattack split: splitting layout")
	}
	log.Infof("split layout: %d nets kept/fragmented from %d original", len(out.Nets()), len(layout.Nets()))

	outFile, err := os.Create(cfg.OutputFile)
	if err != nil {
		return errors.Wrap(err, "feolattack split: creating OUTPUT_FILE_NAME")
	}
	defer outFile.Close()
	if err := def.Write(outFile, out); err != nil {
		return errors.Wrap(err, "feolattack split: writing output layout")
	}

	cfgFile, err := os.Create(splitConfigPath)
	if err != nil {
		return errors.Wrap(err, "feolattack split: saving config")
	}
	defer cfgFile.Close()
	return splitter.SaveConfig(cfgFile, cfg)
}
