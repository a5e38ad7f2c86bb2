package cli

import (
	"errors"
	"slices"

	"github.com/spf13/cobra"

	"issuewiz.app/advisor/internal/advisor"
)

type sanitizeReport struct {
	OK        bool     `json:"ok"`
	Fields    []string `json:"fields,omitempty"`
	Error     string   `json:"error,omitempty"`
	Sanitized string   `json:"sanitized,omitempty"`
}

// newSanitizeCommand runs only the sanitizer and parser over a saved model reply.
func newSanitizeCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize",
		Short: "Sanitize and parse a saved model reply",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readFile(opts.File)
			if err != nil {
				return err
			}

			report := sanitizeReport{OK: true}
			fields, err := advisor.ParseReply(string(data))
			if err != nil {
				report.OK = false
				report.Error = err.Error()
				var parseErr *advisor.ResponseParseError
				if errors.As(err, &parseErr) {
					report.Sanitized = parseErr.Sanitized
				}
			}
			for key := range fields {
				report.Fields = append(report.Fields, key)
			}
			slices.Sort(report.Fields)

			return printJSON(cmd.OutOrStdout(), report)
		},
	}
}
