// Package cli implements the advisor debugging tool. It runs the same pipelines
// as the HTTP server against JSON request files.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"issuewiz.app/advisor/common/logger"
	"issuewiz.app/advisor/core/config"
	"issuewiz.app/advisor/internal/service"
)

// Options stores flags shared between commands.
type Options struct {
	File string
}

// Execute runs the root command with args. Results go to stdout, logs to stderr.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts := &Options{}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

func newRootCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "advisor",
		Short:         "Run the issue advisor pipelines from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.File, "file", "f", "", "Path to the request JSON or YAML (or saved model reply for sanitize)")

	cmd.AddCommand(
		newAnalyzeCommand(opts),
		newSuggestCommand(opts),
		newChatCommand(opts),
		newSanitizeCommand(opts),
	)

	return cmd
}

// loadServices builds the pipelines from the environment the same way the
// server does.
func loadServices(cmd *cobra.Command) (*service.Services, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(slog.New(logger.NewHandler(cfg, cmd.ErrOrStderr())))

	f, closeFn, err := service.NewEvidenceFetcher(cmd.Context(), cfg.Fetch)
	if err != nil {
		return nil, nil, err
	}
	return service.NewServices(cfg, service.NewModelClient(cfg.LLM), f), closeFn, nil
}

func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("--file is required")
	}
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// decodeFile reads a request body from path. Files ending in .yaml or .yml are
// converted to JSON first so both formats share the request's json tags.
func decodeFile(path string, v any) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
		if data, err = json.Marshal(doc); err != nil {
			return fmt.Errorf("converting %s to json: %w", path, err)
		}
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
