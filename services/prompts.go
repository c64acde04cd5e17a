package services

import "fmt"

// Prompt templates for the AI gateway. Wording follows the production
// dashboard so generated output stays consistent across rewrites.

const journalistSystemPrompt = "You are a professional journalist writing objective news summaries."

const translatorSystemPromptFmt = "You are a professional translator specializing in %s news translation."

const editorSystemPrompt = "You are a news editor writing concise, neutral headlines."

const artDirectorSystemPrompt = "You are an art director writing prompts for editorial news illustrations."

func summarizePrompt(title string) string {
	return fmt.Sprintf(`You are a professional journalist writing for Asian American Voices Media. Write a comprehensive, objective news summary of 300-400 words for: %q. Focus on facts and maintain journalistic objectivity.`, title)
}

func titlePrompt(originalTitle, description string) string {
	return fmt.Sprintf("Write one concise, neutral news headline for the following article. Respond with the headline only.\n\nOriginal title: %s\nDescription: %s", originalTitle, description)
}

func translatePrompt(language, text string) string {
	if language == "chinese" {
		return fmt.Sprintf("Translate this English news text to simplified Chinese, maintaining journalistic tone: %s", text)
	}
	return fmt.Sprintf("Translate this English news text to Korean, maintaining journalistic tone: %s", text)
}

func imagePromptPrompt(title, summary string) string {
	return fmt.Sprintf("Write a short prompt for a photorealistic editorial illustration for this news story. No text in the image. Respond with the prompt only.\n\nHeadline: %s\nSummary: %s", title, summary)
}
