package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/setanarut/texgen"
	"github.com/setanarut/texgen/config"
	"github.com/setanarut/texgen/pattern"
	"github.com/spf13/cobra"
)

var (
	configFile  string
	seed        uint64
	outDir      string
	compression string
	patterns    []string
	width       int
	height      int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "generate placeholder textures",
	Long:  `generate placeholder textures into the output directory.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("seed") {
			cfg.Seed = seed
		}
		if flags.Changed("out-dir") {
			cfg.OutDir = outDir
		}
		if flags.Changed("compression") {
			cfg.Compression = compression
		}
		cfg.Resize(width, height)
		cfg.Filter(patterns)
		if err := cfg.Validate(); err != nil {
			return err
		}
		if _, err := generate(cmd.Context(), cfg, logger, cmd.OutOrStdout()); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Textures generated!"))
		return nil
	},
}

type generated struct {
	Path  string
	Bytes int
}

// generate renders every texture of cfg with one generator seeded once, so the
// output only depends on cfg. Each file is fully encoded before it is written.
func generate(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) ([]generated, error) {
	l, err := texgen.ParseCompressionLevel(cfg.Compression)
	if err != nil {
		return nil, err
	}
	enc := &texgen.Encoder{CompressionLevel: l}
	r := pattern.NewRand(cfg.Seed)
	var results []generated
	for _, t := range cfg.Textures {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		g, err := pattern.Lookup(t.Pattern)
		if err != nil {
			return results, err
		}
		start := time.Now()
		pixels := g.Generate(r, t.Width, t.Height)
		b, err := enc.Encode(t.Width, t.Height, pixels)
		if err != nil {
			return results, fmt.Errorf("failed to encode %s: %w", t.Name, err)
		}
		p := filepath.Join(cfg.OutDir, t.Name)
		if err := texgen.WriteFile(p, b); err != nil {
			return results, err
		}
		logger.Info("generated texture",
			slog.String("name", t.Name),
			slog.String("pattern", t.Pattern),
			slog.Int("width", t.Width),
			slog.Int("height", t.Height),
			slog.Int("bytes", len(b)),
			slog.Duration("elapsed", time.Since(start)),
		)
		_, _ = fmt.Fprintf(out, "Generated %s\n", color.CyanString(t.Name))
		results = append(results, generated{Path: p, Bytes: len(b)})
	}
	return results, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	generateCmd.Flags().Uint64VarP(&seed, "seed", "", config.DefaultSeed, "random seed")
	generateCmd.Flags().StringVarP(&outDir, "out-dir", "o", config.DefaultOutDir, "output directory")
	generateCmd.Flags().StringVarP(&compression, "compression", "", config.DefaultCompression, "compression level (best|default|speed|none)")
	generateCmd.Flags().StringSliceVarP(&patterns, "pattern", "p", nil, "only generate textures using these patterns")
	generateCmd.Flags().IntVarP(&width, "width", "", 0, "override the width of every texture")
	generateCmd.Flags().IntVarP(&height, "height", "", 0, "override the height of every texture")
}
