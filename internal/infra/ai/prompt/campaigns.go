package prompt

import (
	"fmt"
	"strings"
)

// CampaignTypes are the channel archetypes the model picks recommendations from.
var CampaignTypes = []string{
	"Viral Marketing",
	"Public Relations",
	"Unconventional PR",
	"Search Engine Marketing",
	"Social & Display Ads",
	"Offline Ads",
	"Search Engine Optimization",
	"Content Marketing",
	"Email Marketing",
	"Engineering as Marketing",
	"Targeting Blogs",
	"Business Development",
	"Sales",
	"Affiliate Programs",
	"Existing Platforms",
	"Trade Shows",
	"Offline Events",
	"Speaking Engagements",
	"Community Building",
}

// TopCampaignCount is how many recommendations the default prompt asks for.
const TopCampaignCount = 3

const campaignFields = `1. title: A title that includes the campaign type
2. platform: A suitable platform (e.g., "Google Ads", "Instagram", "LinkedIn")
3. description: A brief description
4. insights: 3 specific insights about why this campaign would work for this company
5. roi: A realistic ROI estimate (e.g., "2.5x")
6. difficulty: "Easy", "Medium", or "Hard"
`

// TopCampaignsSystemPrompt asks for the best three campaign types.
func TopCampaignsSystemPrompt() string {
	return fmt.Sprintf(`You are a marketing campaign expert. Based on the company analysis, recommend the best %d campaign types from this list: %s. For each campaign, provide:
%s7. budget: Budget range (e.g., "$500-1000")

Make concise recommendations. (150 words or less)
Format the response as a JSON array of campaign objects.`, TopCampaignCount, strings.Join(CampaignTypes, ", "), campaignFields)
}

// AllCampaignsSystemPrompt asks for every campaign type within a budget ceiling.
// The ceiling is advisory to the model; callers check it afterwards.
func AllCampaignsSystemPrompt(budget int) string {
	return fmt.Sprintf(`You are a marketing campaign expert. Based on the company analysis and the specified budget of $%d, create detailed campaign recommendations for ALL campaign types from this list: %s. For each campaign, provide:
%s7. budget: Budget range that fits within the total budget of $%d

Make concise recommendations. (150 words or less)
Format the response as a JSON array of campaign objects.`, budget, strings.Join(CampaignTypes, ", "), campaignFields, budget)
}

// CampaignsUserPrompt carries the analysis as indented JSON.
func CampaignsUserPrompt(analysisJSON string) string {
	return fmt.Sprintf("Here's the company analysis:\n\n%s", analysisJSON)
}
