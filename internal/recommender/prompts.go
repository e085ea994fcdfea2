package recommender

import (
	"fmt"
	"strings"
)

const (
	promptAssertions = "Include at least one assertion that verifies the result (such as the URL, element visibility, or text). "
	promptCodeOnly   = "Return only Python code, without explanations."
)

// contextPrompt builds the state-driven prompt used by RecommendTest.
func contextPrompt(targetURL string, s Session, outline string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a Playwright Python test case for the target '%s'. ", targetURL)

	// An empty action counts as no prior action.
	if action, ok := s.LastAction(); ok && action != "" {
		fmt.Fprintf(&sb, "The test must be related to the previous action '%s'. ", action)
		sb.WriteString("For example, if the previous action was adding the conversation to favorites, " +
			"the recommended test could cover the favorites feature. ")
	} else {
		sb.WriteString("Common actions include page navigation, logging in, or chatting with the model. " +
			"If there is no specific preference, prioritize logging in. ")
	}

	sb.WriteString(promptAssertions)
	sb.WriteString(promptCodeOnly)
	writeOutline(&sb, outline)
	return sb.String()
}

// descriptionPrompt builds the prompt used by RecommendFromNaturalLanguage.
func descriptionPrompt(targetURL, description, outline string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a Playwright Python test case for the target '%s', ", targetURL)
	fmt.Fprintf(&sb, "based on the following description: '%s'. ", description)
	sb.WriteString(promptAssertions)
	sb.WriteString(promptCodeOnly)
	writeOutline(&sb, outline)
	return sb.String()
}

func writeOutline(sb *strings.Builder, outline string) {
	outline = strings.TrimSpace(outline)
	if outline == "" {
		return
	}
	sb.WriteString("\n\nPAGE OUTLINE:\n")
	sb.WriteString(outline)
}
