package suggestion

import (
	"fmt"
	"strings"
)

type cannedSuggestion struct {
	pattern     string
	description string
}

// cannedSuggestions is matched in declaration order; the first hit wins.
var cannedSuggestions = []cannedSuggestion{
	{
		pattern:     "setup",
		description: "This task involves setting up and configuring necessary components or systems. Consider breaking this down into smaller steps: research requirements, gather resources, implement configuration, and test the setup.",
	},
	{
		pattern:     "fix",
		description: "This task is about identifying and resolving an issue. Steps might include: reproduce the problem, analyze root cause, implement solution, and verify the fix works as expected.",
	},
	{
		pattern:     "implement",
		description: "This task involves building or creating new functionality. Consider: design the solution, write the code/content, test thoroughly, and document the implementation.",
	},
	{
		pattern:     "review",
		description: "This task involves examining and evaluating existing work. Include: gather materials to review, analyze thoroughly, provide constructive feedback, and document findings.",
	},
	{
		pattern:     "update",
		description: "This task is about modifying or improving existing elements. Steps: assess current state, identify what needs changing, implement updates, and validate improvements.",
	},
	{
		pattern:     "test",
		description: "This task involves verifying functionality and quality. Include: create test cases, execute tests systematically, document results, and report any issues found.",
	},
}

const genericSuggestion = "This task is about: %s. Consider breaking this down into specific, actionable steps. Define clear success criteria and estimated time requirements. Identify any dependencies or resources needed to complete this task effectively."

// MockSuggestion returns a canned description for title without any I/O.
func MockSuggestion(title string) string {
	lower := strings.ToLower(title)
	for _, canned := range cannedSuggestions {
		if strings.Contains(lower, canned.pattern) {
			return canned.description
		}
	}

	return fmt.Sprintf(genericSuggestion, title)
}
