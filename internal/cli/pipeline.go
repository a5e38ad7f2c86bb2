package cli

import (
	"github.com/spf13/cobra"

	"issuewiz.app/advisor/internal/http/dto"
)

func newAnalyzeCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Analyze an issue against its matched files (/analyze-issue-files body)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.AnalyzeIssueRequest
			if err := decodeFile(opts.File, &req); err != nil {
				return err
			}

			services, closeFn, err := loadServices(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			analysis, err := services.Analyzer().Analyze(cmd.Context(), req.ToAnalysisRequest())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.AnalyzeIssueResponse{Reply: analysis})
		},
	}
}

func newSuggestCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest",
		Short: "Recommend issues for a developer (/suggest-issues body)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.SuggestIssuesRequest
			if err := decodeFile(opts.File, &req); err != nil {
				return err
			}

			services, closeFn, err := loadServices(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			suggestions, err := services.Suggester().Suggest(cmd.Context(), req.ToSuggestionRequest())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.SuggestIssuesResponse{Reply: suggestions})
		},
	}
}

func newChatCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Answer a follow-up question (/chat-followup body)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req dto.ChatFollowupRequest
			if err := decodeFile(opts.File, &req); err != nil {
				return err
			}

			services, closeFn, err := loadServices(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			reply, err := services.Mentor().Reply(cmd.Context(), req.ToMentorRequest())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.ChatFollowupResponse{Reply: reply})
		},
	}
}
