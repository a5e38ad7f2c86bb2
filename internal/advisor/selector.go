package advisor

import (
	"sort"
)

// SelectTop orders candidates by descending match score and keeps at most k.
// Equal scores keep their input order. The input slice is not modified.
func SelectTop(matches []FileMatch, k int) CandidateSet {
	sorted := make([]FileMatch, len(matches))
	copy(sorted, matches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MatchScore > sorted[j].MatchScore
	})

	if k >= 0 && len(sorted) > k {
		sorted = sorted[:k]
	}

	set := make(CandidateSet, len(sorted))
	for i, m := range sorted {
		set[i] = EvidenceItem{
			Identifier:     m.FileName,
			RelevanceScore: m.MatchScore,
			SourceLocator:  m.DownloadURL,
		}
	}
	return set
}

// FilterIssues drops pull requests, preserving order. It runs before any cap.
func FilterIssues(issues []Issue) []Issue {
	available := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.IsPullRequest() {
			continue
		}
		available = append(available, issue)
	}
	return available
}

// DeveloperSkills collects the distinct languages and topics of the developer's
// repositories in first-seen order. Empty values are skipped.
func DeveloperSkills(repos []Repository) (languages, topics []string) {
	seenLang := make(map[string]struct{})
	seenTopic := make(map[string]struct{})
	languages = []string{}
	topics = []string{}

	for _, repo := range repos {
		if repo.Language != "" {
			if _, ok := seenLang[repo.Language]; !ok {
				seenLang[repo.Language] = struct{}{}
				languages = append(languages, repo.Language)
			}
		}
		for _, topic := range repo.Topics {
			if topic == "" {
				continue
			}
			if _, ok := seenTopic[topic]; !ok {
				seenTopic[topic] = struct{}{}
				topics = append(topics, topic)
			}
		}
	}
	return languages, topics
}
