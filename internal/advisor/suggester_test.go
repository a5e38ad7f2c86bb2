package advisor_test

import (
	"context"
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"issuewiz.app/advisor/common/llm"
	"issuewiz.app/advisor/core/config"
	"issuewiz.app/advisor/internal/advisor"
)

var _ = Describe("Suggester", func() {
	var (
		ctx       context.Context
		client    *mockLLMClient
		provider  *mockProvider
		suggester *advisor.Suggester
	)

	BeforeEach(func() {
		ctx = context.Background()
		client = &mockLLMClient{completeFn: replyWith(`{"recommendations":[]}`)}
		provider = &mockProvider{client: client}
		suggester = advisor.NewSuggester(provider, config.FlowConfig{Model: "gpt-3.5-turbo", Temperature: 0.7, MaxTokens: 600})
	})

	request := func(issues []advisor.Issue) advisor.SuggestionRequest {
		return advisor.SuggestionRequest{
			Repositories: []advisor.Repository{{Language: "Go", Topics: []string{"cli"}}},
			Issues:       issues,
			IssueOwner:   "acme",
			IssueRepo:    "tool",
		}
	}

	It("parses a fenced reply", func() {
		client.completeFn = replyWith("```json\n{\"recommendations\":[{\"issue_title\":\"Add flag\",\"issue_url\":\"https://github.com/acme/tool/issues/12\",\"difficulty_level\":\"Beginner\",\"learning_opportunities\":\"cobra\",\"why_recommended\":\"Go\"}]}\n```")

		out, err := suggester.Suggest(ctx, request([]advisor.Issue{{Title: "Add flag", Number: 12}}))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.Recommendations).To(HaveLen(1))
		Expect(out.Recommendations[0].IssueURL).To(Equal("https://github.com/acme/tool/issues/12"))
		Expect(client.lastReq.Model).To(Equal("gpt-3.5-turbo"))
		Expect(client.lastReq.MaxTokens).To(Equal(600))
	})

	It("shows the model only real issues", func() {
		_, err := suggester.Suggest(ctx, request([]advisor.Issue{
			{Title: "Bump deps", Number: 3, PullRequest: json.RawMessage(`{"url":"x"}`)},
			{Title: "Add flag", Number: 12},
		}))

		Expect(err).NotTo(HaveOccurred())
		Expect(client.lastReq.UserPrompt).To(ContainSubstring("## AVAILABLE ISSUES (Total: 1)"))
		Expect(client.lastReq.UserPrompt).NotTo(ContainSubstring("Bump deps"))
		Expect(client.lastReq.UserPrompt).To(ContainSubstring("- Programming Languages: Go"))
	})

	It("skips the model when every issue is a pull request", func() {
		out, err := suggester.Suggest(ctx, request([]advisor.Issue{
			{Title: "A", Number: 1, PullRequest: json.RawMessage(`{}`)},
			{Title: "B", Number: 2, PullRequest: json.RawMessage(`{}`)},
		}))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.Recommendations).NotTo(BeNil())
		Expect(out.Recommendations).To(BeEmpty())
		Expect(client.callCount).To(BeZero())
	})

	It("drops a pull request the model recommended anyway", func() {
		client.completeFn = replyWith(`{"recommendations":[
			{"issue_title":"Bump deps","issue_url":"https://github.com/acme/tool/issues/3"},
			{"issue_title":"Add flag","issue_url":"https://github.com/acme/tool/issues/12"}
		]}`)

		out, err := suggester.Suggest(ctx, request([]advisor.Issue{
			{Title: "Bump deps", Number: 3, PullRequest: json.RawMessage(`{"url":"x"}`)},
			{Title: "Add flag", Number: 12},
		}))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.Recommendations).To(HaveLen(1))
		Expect(out.Recommendations[0].IssueTitle).To(Equal("Add flag"))
	})

	It("reports the missing credential first", func() {
		provider.err = llm.ErrMissingAPIKey

		_, err := suggester.Suggest(ctx, advisor.SuggestionRequest{})

		var cfgErr *advisor.ConfigurationError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
	})

	DescribeTable("invalid input",
		func(req advisor.SuggestionRequest, field string) {
			_, err := suggester.Suggest(ctx, req)

			var invalid *advisor.InvalidInputError
			Expect(errors.As(err, &invalid)).To(BeTrue())
			Expect(invalid.Field).To(Equal(field))
			Expect(client.callCount).To(BeZero())
		},
		Entry("no repositories", advisor.SuggestionRequest{Issues: []advisor.Issue{}}, "repositories"),
		Entry("no issues", advisor.SuggestionRequest{Repositories: []advisor.Repository{}}, "repoissues"),
	)

	It("surfaces a reply without recommendations", func() {
		client.completeFn = replyWith(`{"issues": []}`)

		_, err := suggester.Suggest(ctx, request([]advisor.Issue{{Title: "x", Number: 1}}))

		var schemaErr *advisor.SchemaViolationError
		Expect(errors.As(err, &schemaErr)).To(BeTrue())
	})

	It("surfaces a truncated reply as a parse error", func() {
		client.completeFn = replyWith(`{"recommendations": [{"issue_title": "x"`)

		_, err := suggester.Suggest(ctx, request([]advisor.Issue{{Title: "x", Number: 1}}))

		var parseErr *advisor.ResponseParseError
		Expect(errors.As(err, &parseErr)).To(BeTrue())
	})
})
