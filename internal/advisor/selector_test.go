package advisor_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"issuewiz.app/advisor/internal/advisor"
)

func scores(set advisor.CandidateSet) []float64 {
	out := make([]float64, len(set))
	for i, item := range set {
		out[i] = item.RelevanceScore
	}
	return out
}

func names(set advisor.CandidateSet) []string {
	out := make([]string, len(set))
	for i, item := range set {
		out[i] = item.Identifier
	}
	return out
}

var _ = Describe("SelectTop", func() {
	It("keeps both files of a two-file set in score order", func() {
		set := advisor.SelectTop([]advisor.FileMatch{
			{FileName: "a.go", MatchScore: 0.9, DownloadURL: "https://raw/a.go"},
			{FileName: "b.go", MatchScore: 0.4, DownloadURL: "https://raw/b.go"},
		}, advisor.MaxFiles)

		Expect(names(set)).To(Equal([]string{"a.go", "b.go"}))
		Expect(set[0].SourceLocator).To(Equal("https://raw/a.go"))
		Expect(set[0].Content).To(BeNil())
	})

	It("sorts descending and caps at k", func() {
		set := advisor.SelectTop([]advisor.FileMatch{
			{FileName: "low.go", MatchScore: 0.1},
			{FileName: "high.go", MatchScore: 0.95},
			{FileName: "mid.go", MatchScore: 0.5},
			{FileName: "top.go", MatchScore: 0.99},
			{FileName: "midhigh.go", MatchScore: 0.7},
		}, 3)

		Expect(names(set)).To(Equal([]string{"top.go", "high.go", "midhigh.go"}))
	})

	It("keeps input order for equal scores", func() {
		set := advisor.SelectTop([]advisor.FileMatch{
			{FileName: "first.go", MatchScore: 0.5},
			{FileName: "second.go", MatchScore: 0.8},
			{FileName: "third.go", MatchScore: 0.5},
			{FileName: "fourth.go", MatchScore: 0.5},
		}, 3)

		Expect(names(set)).To(Equal([]string{"second.go", "first.go", "third.go"}))
	})

	It("does not reorder the caller's slice", func() {
		input := []advisor.FileMatch{{FileName: "a", MatchScore: 0.1}, {FileName: "b", MatchScore: 0.9}}

		advisor.SelectTop(input, 3)

		Expect(input[0].FileName).To(Equal("a"))
	})

	It("produces non-increasing scores and respects the cap for any input", func() {
		inputs := [][]float64{
			{},
			{0.3},
			{0.1, 0.2, 0.3, 0.4, 0.5, 0.6},
			{1, 1, 1, 1},
			{0.9, -0.2, 0.5, 0.5, 0.0, 2.5, 0.33},
		}
		for _, raw := range inputs {
			matches := make([]advisor.FileMatch, len(raw))
			for i, s := range raw {
				matches[i] = advisor.FileMatch{MatchScore: s}
			}

			got := scores(advisor.SelectTop(matches, advisor.MaxFiles))

			Expect(len(got)).To(BeNumerically("<=", advisor.MaxFiles))
			for i := 1; i < len(got); i++ {
				Expect(got[i]).To(BeNumerically("<=", got[i-1]))
			}
		}
	})
})

var _ = Describe("FilterIssues", func() {
	It("drops entries carrying a pull request marker", func() {
		issues := []advisor.Issue{
			{Title: "A", Number: 1, PullRequest: json.RawMessage(`{"url":"https://api.github.com/repos/o/r/pulls/1"}`)},
			{Title: "B", Number: 2},
		}

		Expect(advisor.FilterIssues(issues)).To(Equal([]advisor.Issue{{Title: "B", Number: 2}}))
	})

	It("treats null and false markers as regular issues", func() {
		issues := []advisor.Issue{
			{Title: "A", Number: 1, PullRequest: json.RawMessage(`null`)},
			{Title: "B", Number: 2, PullRequest: json.RawMessage(`false`)},
		}

		Expect(advisor.FilterIssues(issues)).To(HaveLen(2))
	})

	It("returns an empty list when only pull requests remain", func() {
		issues := []advisor.Issue{{Title: "A", PullRequest: json.RawMessage(`{}`)}}

		Expect(advisor.FilterIssues(issues)).To(BeEmpty())
	})
})

var _ = Describe("DeveloperSkills", func() {
	It("deduplicates languages and topics in first-seen order", func() {
		languages, topics := advisor.DeveloperSkills([]advisor.Repository{
			{Language: "Go", Topics: []string{"cli", "devtools"}},
			{Language: "", Topics: []string{"cli"}},
			{Language: "TypeScript"},
			{Language: "Go", Topics: []string{"web", ""}},
		})

		Expect(languages).To(Equal([]string{"Go", "TypeScript"}))
		Expect(topics).To(Equal([]string{"cli", "devtools", "web"}))
	})

	It("returns empty, non-nil lists for no repositories", func() {
		languages, topics := advisor.DeveloperSkills(nil)

		Expect(languages).NotTo(BeNil())
		Expect(languages).To(BeEmpty())
		Expect(topics).To(BeEmpty())
	})
})
