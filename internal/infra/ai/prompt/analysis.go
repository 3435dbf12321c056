package prompt

import "fmt"

// AnalysisSystemPrompt asks for a single WebsiteAnalysis JSON object.
func AnalysisSystemPrompt() string {
	return `You are a marketing analysis expert. Analyze the website content and provide a structured analysis as one JSON object with the following fields:
1. productOverview: Brief description in 1-2 sentences
2. coreValueProposition: Most unique/urgent benefit
3. targetAudience: { "type": "Consumers" | "Business" | "Government", "segments": string[] }
4. currentAwareness: Stage of product (e.g., "Just an idea", "MVP live", "Some beta users", "Public launch", "Revenue generating")
5. goal: string[] (e.g., ["Awareness", "Waitlist signups", "App downloads"])
6. budget: Suggested budget range based on market and product stage (e.g., "$500-1,000")
7. strengths: string[] (Key advantages)
8. constraints: string[] (Limitations and risks)
9. preferredChannels: string[] (e.g., ["Paid ads", "Content marketing", "PR"])
10. toneAndPersonality: How the brand should feel in marketing materials`
}

// AnalysisUserPrompt wraps the cleaned page excerpt.
func AnalysisUserPrompt(excerpt string) string {
	return fmt.Sprintf("Analyze this website content:\n\n%s", excerpt)
}
