package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/k1LoW/errors"
	"github.com/setanarut/texgen/config"
	"github.com/setanarut/texgen/version"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	logFormat string
	logFile   string
)

// logger is set up by the root command's PersistentPreRunE.
var (
	logger      = slog.New(slog.DiscardHandler)
	closeLogger = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:          version.Name,
	Short:        "texgen generates placeholder textures as PNG files",
	Long:         `texgen generates placeholder textures (TV static, scratched metal) as PNG files.`,
	SilenceUsage: true,
	Version:      fmt.Sprintf("%s (rev:%s)", version.Version, version.Revision),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, closer, err := newLogger(cmd.ErrOrStderr(), logFormat, verbose, logFile)
		if err != nil {
			return err
		}
		logger, closeLogger = l, closer
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		err := closeLogger()
		closeLogger = func() error { return nil }
		return err
	},
}

type errorData struct {
	Error       string    `json:"error"`
	StackTraces any       `json:"stack_traces"`
	CreatedAt   time.Time `json:"created_at"`
	Version     string    `json:"version"`
	Revision    string    `json:"revision"`
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_ = closeLogger()
		d := &errorData{
			Error:       err.Error(),
			StackTraces: errors.StackTraces(err),
			CreatedAt:   time.Now(),
			Version:     version.Version,
			Revision:    version.Revision,
		}
		if err := dumpError(d); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		os.Exit(1)
	}
}

func dumpError(d *errorData) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	dir := config.StateHomePath()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create state directory %s: %w", dir, err)
	}
	dumpPath := filepath.Join(dir, "error.json")
	if err := os.WriteFile(dumpPath, b, 0o600); err != nil {
		return fmt.Errorf("failed to write error.json to %s: %w", dumpPath, err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&logFormat, "log-format", "", "text", "log format on stderr (text|json)")
	rootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "", "", "also write JSON logs to this file")
}
