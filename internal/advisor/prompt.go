package advisor

import (
	"fmt"
	"strconv"
	"strings"
)

type AnalysisContext struct {
	Owner      string
	Repo       string
	IssueTitle string
	IssueBody  string
	Files      CandidateSet
}

type SuggestionContext struct {
	Languages []string
	Topics    []string
	Issues    []Issue
	Owner     string
	Repo      string
}

type MentorContext struct {
	Technical   TechnicalContext
	PublicRepos int
	History     []ChatTurn
	Query       string
}

// BuildAnalysisPrompt renders the file-analysis prompt. Files are rendered in
// the order given; the section header is always present.
func BuildAnalysisPrompt(c AnalysisContext) PromptPayload {
	var sb strings.Builder

	sb.WriteString("\nAnalyze this GitHub issue and relevant files:\n\n")
	fmt.Fprintf(&sb, "Repository: %s/%s\n", c.Owner, c.Repo)
	fmt.Fprintf(&sb, "Issue Title: %s\n", c.IssueTitle)
	fmt.Fprintf(&sb, "Issue Description: %s\n\n", TruncateIssueBody(c.IssueBody))

	sb.WriteString("Relevant Files:\n")
	files := make([]string, 0, len(c.Files))
	for _, f := range c.Files {
		content := ""
		if f.Content != nil {
			content = *f.Content
		}
		files = append(files, fmt.Sprintf("\nFile: %s\nMatch Score: %s\nKey Content:\n%s\n",
			f.Identifier, formatScore(f.RelevanceScore), content))
	}
	sb.WriteString(strings.Join(files, "\n"))

	sb.WriteString(`

Provide analysis focusing on:
1. Repository purpose and tech stack
2. File relevance to issue
3. Specific recommendations for changes
`)

	return PromptPayload{
		SystemInstruction: analysisSystemInstruction,
		UserContent:       sb.String(),
	}
}

// BuildSuggestionPrompt renders the issue-matching prompt for issues that have
// already been filtered.
func BuildSuggestionPrompt(c SuggestionContext) PromptPayload {
	var sb strings.Builder

	sb.WriteString("\nOPEN-SOURCE CONTRIBUTION MATCHER\n\n")
	sb.WriteString("## DEVELOPER SKILLS\n")
	fmt.Fprintf(&sb, "- Programming Languages: %s\n", strings.Join(c.Languages, ", "))
	fmt.Fprintf(&sb, "- Technical Interests: %s\n\n", strings.Join(c.Topics, ", "))

	fmt.Fprintf(&sb, "## AVAILABLE ISSUES (Total: %d)\n", len(c.Issues))
	issues := make([]string, 0, len(c.Issues))
	for i, issue := range c.Issues {
		issues = append(issues, fmt.Sprintf("\nIssue #%d:\n- Title: %s\n- Repository: %s/%s\n- Full GitHub Issue URL: %s\n",
			i+1, issue.Title, c.Owner, c.Repo, IssueURL(c.Owner, c.Repo, issue.Number)))
	}
	sb.WriteString(strings.Join(issues, "\n"))

	fmt.Fprintf(&sb, `

## RECOMMENDATION OBJECTIVE
Analyze the available issues and recommend ONLY those that match the developer's skills and interests.
Important constraints:
- Recommend a MAXIMUM of %d issues
- Only recommend issues that genuinely match the developer's background
- If no issues match well, return an empty recommendations array
- Never recommend pull requests
- If there are fewer than %d matching issues, only recommend those that truly fit

FORMAT YOUR RESPONSE AS JSON.
`, MaxRecommendations, MaxRecommendations)

	return PromptPayload{
		SystemInstruction: suggestionSystemInstruction,
		UserContent:       sb.String(),
	}
}

// BuildMentorPrompt renders the follow-up prompt with the folded chat history.
func BuildMentorPrompt(c MentorContext) PromptPayload {
	var sb strings.Builder

	sb.WriteString("\nYou are an experienced open source mentor helping a beginner developer. ")
	sb.WriteString("Your goal is to provide specific, actionable guidance while being encouraging and supportive.\n\n")

	sb.WriteString("USER TECHNICAL PROFILE:\n")
	fmt.Fprintf(&sb, "- Languages: %s\n", strings.Join(c.Technical.Languages, ", "))
	fmt.Fprintf(&sb, "- Interests/Topics: %s\n", strings.Join(c.Technical.Topics, ", "))
	fmt.Fprintf(&sb, "- Public Repos: %d\n\n", c.PublicRepos)

	sb.WriteString("CHAT HISTORY:\n")
	sb.WriteString(FoldTranscript(c.History))
	sb.WriteString("\n\n")

	sb.WriteString("CURRENT QUESTION:\n")
	sb.WriteString(c.Query)
	sb.WriteString("\n\n")

	sb.WriteString(mentorGuidelines)

	return PromptPayload{
		SystemInstruction: mentorSystemInstruction,
		UserContent:       sb.String(),
	}
}

// FoldTranscript renders turns as "<ROLE>: <content>" separated by a blank line.
func FoldTranscript(turns []ChatTurn) string {
	parts := make([]string, len(turns))
	for i, t := range turns {
		parts[i] = strings.ToUpper(t.Role) + ": " + t.Content
	}
	return strings.Join(parts, "\n\n")
}

func IssueURL(owner, repo string, number int) string {
	return fmt.Sprintf("https://github.com/%s/%s/issues/%d", owner, repo, number)
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

var analysisSystemInstruction = `You are an expert code analyst and issue resolver. Respond in valid JSON format following this structure:
{
  "repository_analysis": {
    "purpose": "Main purpose of the repository",
    "tech_stack": ["List", "of", "technologies"],
    "issue_summary": "Core problem analysis"
  },
  "file_analysis": {
    "analyzed_files": [
      {
        "file_name": "path/to/file",
        "combined_probability": number,
        "reason": "Why this file needs modification"
      }
    ]
  },
  "recommendations": {
    "priority_order": ["Ordered", "list", "of", "files"],
    "specific_changes": "Detailed description of recommended changes",
    "additional_context": "Extra information needed"
  }
}

Analyze at most ` + strconv.Itoa(MaxFiles) + ` files. The response must validate against this JSON Schema:
` + analysisSchema

var suggestionSystemInstruction = `You are an expert open-source contribution advisor. Only respond in valid JSON format. Your response must contain no more than ` + strconv.Itoa(MaxRecommendations) + ` recommendations, and may contain 0 if no issues are suitable matches. Never include pull requests in recommendations.

Response format:
{
  "recommendations": [
    {
      "issue_title": "Exact Issue Title from Input",
      "issue_url": "https://github.com/{issue_owner}/{issue_repo}/issues/{issue_number}",
      "difficulty_level": "Beginner/Intermediate/Advanced",
      "learning_opportunities": "Specific skills to learn",
      "why_recommended": "Detailed explanation of why this issue is a good match"
    }
  ]
}

The response must validate against this JSON Schema:
` + suggestionSchema

const mentorSystemInstruction = "You are a supportive and knowledgeable open source mentor. " +
	"Your responses should be specific, encouraging, and tailored to beginners. " +
	"Use a friendly tone and provide detailed, actionable guidance."

const mentorGuidelines = `RESPONSE GUIDELINES:
1. Be extremely specific - break down concepts into small, manageable steps
2. Use the user's known programming languages in examples when relevant
3. Acknowledge and validate any concerns or anxieties
4. Provide concrete examples and explanations
5. Be encouraging and emphasize growth mindset
6. Use friendly, conversational tone with emojis
7. Reference specific tools or resources when applicable
8. Highlight small wins and progress
9. Always relate advice back to their skill level and interests
10. If they express difficulty, break down the task into smaller steps

Remember: This user is a beginner, so avoid jargon without explanation and always provide context for technical terms.

Please provide a response that follows these guidelines and addresses their specific question.`
