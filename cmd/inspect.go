package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/k1LoW/errors"
	"github.com/setanarut/texgen"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE...",
	Short: "list the chunks of PNG files and verify their checksums",
	Long:  `list the chunks of PNG files and verify their checksums.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var errs error
		for _, f := range args {
			if err := inspectFile(cmd.OutOrStdout(), f); err != nil {
				logger.Error("inspect failed", "file", f, "error", err)
				errs = errors.Join(errs, fmt.Errorf("%s: %w", f, err))
			}
		}
		return errs
	},
}

func inspectFile(w io.Writer, path string) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()

	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%s (%d bytes)\n", path, len(b))
	chunks, err := texgen.ReadChunks(b)
	for _, c := range chunks {
		_, _ = fmt.Fprintf(w, "  %s  length=%-8d crc=%08x  %s\n", c.Type, len(c.Data), c.CRC, color.GreenString("ok"))
	}
	if err != nil {
		_, _ = fmt.Fprintf(w, "  %s\n", color.RedString(err.Error()))
		return err
	}
	h, err := texgen.HeaderFromChunks(chunks)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "  %dx%d bit_depth=%d color_type=%d compression=%d filter=%d interlace=%d\n",
		h.Width, h.Height, h.BitDepth, h.ColorType, h.Compression, h.Filter, h.Interlace)
	return nil
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
