package suggestion

import "fmt"

const systemPrompt = "You are a helpful task management assistant that provides clear, actionable task descriptions and breakdown steps."

const promptTemplate = `You are a helpful task management assistant. Given a task title, provide a detailed, actionable description that breaks down the task into clear steps. Be practical and specific.

Task Title: "%s"

Please provide:
1. A brief overview of what this task involves
2. Specific steps to complete it
3. Any considerations or prerequisites
4. Estimated complexity level

Keep the response concise but comprehensive, around 2-3 sentences.`

// BuildPrompt embeds title into the task-breakdown instruction.
func BuildPrompt(title string) string {
	return fmt.Sprintf(promptTemplate, title)
}
