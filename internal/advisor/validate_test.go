package advisor_test

import (
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"issuewiz.app/advisor/internal/advisor"
)

func parsed(raw string) map[string]json.RawMessage {
	fields, err := advisor.ParseReply(raw)
	Expect(err).NotTo(HaveOccurred())
	return fields
}

var _ = Describe("ParseReply", func() {
	It("parses a fenced object", func() {
		fields := parsed("```json\n{\"recommendations\":[]}\n```")

		Expect(fields).To(HaveKey("recommendations"))
	})

	It("reports malformed JSON with the sanitized text", func() {
		_, err := advisor.ParseReply("```json\n{\"recommendations\": [\n```")

		var parseErr *advisor.ResponseParseError
		Expect(errors.As(err, &parseErr)).To(BeTrue())
		Expect(parseErr.Sanitized).To(Equal("{\"recommendations\": ["))
	})

	It("rejects trailing text after the object", func() {
		_, err := advisor.ParseReply(`{"a":1} Hope this helps!`)

		var parseErr *advisor.ResponseParseError
		Expect(errors.As(err, &parseErr)).To(BeTrue())
	})

	It("rejects an empty reply body", func() {
		_, err := advisor.ParseReply("```json\n```")

		var parseErr *advisor.ResponseParseError
		Expect(errors.As(err, &parseErr)).To(BeTrue())
		Expect(parseErr.Sanitized).To(BeEmpty())
	})

	It("treats a non-object document as a schema violation", func() {
		_, err := advisor.ParseReply(`[1,2,3]`)

		var schemaErr *advisor.SchemaViolationError
		Expect(errors.As(err, &schemaErr)).To(BeTrue())
	})
})

var _ = Describe("ValidateSuggestions", func() {
	rec := func(title, url string) string {
		return `{"issue_title":"` + title + `","issue_url":"` + url + `","difficulty_level":"Beginner","learning_opportunities":"x","why_recommended":"y"}`
	}

	It("caps the list at three, keeping the first entries", func() {
		fields := parsed(`{"recommendations":[` +
			rec("one", "https://github.com/o/r/issues/1") + "," +
			rec("two", "https://github.com/o/r/issues/2") + "," +
			rec("three", "https://github.com/o/r/issues/3") + "," +
			rec("four", "https://github.com/o/r/issues/4") + "," +
			rec("five", "https://github.com/o/r/issues/5") + `]}`)

		out, err := advisor.ValidateSuggestions(fields, advisor.NewPullRequestRefs(nil))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.Recommendations).To(HaveLen(advisor.MaxRecommendations))
		Expect(out.Recommendations[0].IssueTitle).To(Equal("one"))
		Expect(out.Recommendations[2].IssueTitle).To(Equal("three"))
	})

	It("drops recommendations pointing at pull requests before capping", func() {
		issues := []advisor.Issue{
			{Title: "Bump deps", Number: 7, PullRequest: json.RawMessage(`{"url":"x"}`)},
			{Title: "Real issue", Number: 8},
		}
		fields := parsed(`{"recommendations":[` +
			rec("Bump deps", "https://github.com/o/r/issues/99") + "," +
			rec("Other", "https://github.com/o/r/pull/3") + "," +
			rec("Renamed", "https://github.com/o/r/issues/7") + "," +
			rec("Real issue", "https://github.com/o/r/issues/8") + `]}`)

		out, err := advisor.ValidateSuggestions(fields, advisor.NewPullRequestRefs(issues))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.Recommendations).To(HaveLen(1))
		Expect(out.Recommendations[0].IssueTitle).To(Equal("Real issue"))
	})

	It("returns a non-nil empty list", func() {
		out, err := advisor.ValidateSuggestions(parsed(`{"recommendations":[]}`), advisor.NewPullRequestRefs(nil))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.Recommendations).NotTo(BeNil())
		Expect(out.Recommendations).To(BeEmpty())
	})

	DescribeTable("schema violations",
		func(reply string) {
			_, err := advisor.ValidateSuggestions(parsed(reply), advisor.NewPullRequestRefs(nil))

			var schemaErr *advisor.SchemaViolationError
			Expect(errors.As(err, &schemaErr)).To(BeTrue())
			Expect(schemaErr.Field).To(Equal("recommendations"))
		},
		Entry("missing field", `{"suggestions":[]}`),
		Entry("object instead of array", `{"recommendations":{}}`),
		Entry("null", `{"recommendations":null}`),
		Entry("entries of the wrong shape", `{"recommendations":[1,2]}`),
	)

	It("keeps fences mentioned in issue titles", func() {
		fields := parsed("```json\n{\"recommendations\":[" + rec("Render ```mermaid blocks", "https://github.com/o/r/issues/9") + "]}\n```")

		out, err := advisor.ValidateSuggestions(fields, advisor.NewPullRequestRefs(nil))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.Recommendations).To(HaveLen(1))
		Expect(out.Recommendations[0].IssueTitle).To(Equal("Render ```mermaid blocks"))
	})
})

var _ = Describe("ValidateAnalysis", func() {
	const valid = `{
		"repository_analysis": {"purpose": "CLI", "tech_stack": ["Go"], "issue_summary": "crash"},
		"file_analysis": {"analyzed_files": [
			{"file_name": "a.go", "combined_probability": 0.9, "reason": "r"},
			{"file_name": "b.go", "combined_probability": 0.5, "reason": "r"},
			{"file_name": "c.go", "combined_probability": 0.3, "reason": "r"},
			{"file_name": "d.go", "combined_probability": 0.1, "reason": "r"}
		]},
		"recommendations": {"priority_order": ["a.go"], "specific_changes": "fix", "additional_context": ""}
	}`

	It("accepts the three sections and clamps the file list", func() {
		out, err := advisor.ValidateAnalysis(parsed(valid))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.RepositoryAnalysis.Purpose).To(Equal("CLI"))
		Expect(out.FileAnalysis.AnalyzedFiles).To(HaveLen(advisor.MaxFiles))
		Expect(out.FileAnalysis.AnalyzedFiles[0].CombinedProbability).To(Equal(0.9))
		Expect(out.Recommendations.PriorityOrder).To(Equal([]string{"a.go"}))
	})

	It("keeps markdown fences inside string values", func() {
		changes := "Wrap it:\n```go\nfmt.Println(1)\n```"
		body, err := json.Marshal(map[string]any{
			"repository_analysis": map[string]any{"purpose": "Render ```mermaid blocks"},
			"file_analysis":       map[string]any{},
			"recommendations":     map[string]any{"specific_changes": changes},
		})
		Expect(err).NotTo(HaveOccurred())

		out, err := advisor.ValidateAnalysis(parsed("```json\n" + string(body) + "\n```"))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.Recommendations.SpecificChanges).To(Equal(changes))
		Expect(out.RepositoryAnalysis.Purpose).To(Equal("Render ```mermaid blocks"))
	})

	It("fills absent lists with empty ones", func() {
		out, err := advisor.ValidateAnalysis(parsed(`{"repository_analysis":{},"file_analysis":{},"recommendations":{}}`))

		Expect(err).NotTo(HaveOccurred())
		Expect(out.RepositoryAnalysis.TechStack).To(Equal([]string{}))
		Expect(out.FileAnalysis.AnalyzedFiles).To(Equal([]advisor.AnalyzedFile{}))
		Expect(out.Recommendations.PriorityOrder).To(Equal([]string{}))
	})

	DescribeTable("schema violations",
		func(reply, field string) {
			_, err := advisor.ValidateAnalysis(parsed(reply))

			var schemaErr *advisor.SchemaViolationError
			Expect(errors.As(err, &schemaErr)).To(BeTrue())
			Expect(schemaErr.Field).To(Equal(field))
		},
		Entry("missing repository section", `{"file_analysis":{},"recommendations":{}}`, "repository_analysis"),
		Entry("file section is an array", `{"repository_analysis":{},"file_analysis":[],"recommendations":{}}`, "file_analysis"),
		Entry("recommendations is a string", `{"repository_analysis":{},"file_analysis":{},"recommendations":"none"}`, "recommendations"),
	)
})
