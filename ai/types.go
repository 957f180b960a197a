package ai

// TagCategories defines the valid categories for generated company tags,
// with example values for each. Tag generators classify descriptions into
// these buckets.
var TagCategories = map[string][]string{
	"industry": {
		"fintech", "healthcare", "ai-ml", "blockchain", "cybersecurity",
		"edtech", "proptech", "insurtech", "biotech", "cleantech",
		"retail", "manufacturing", "logistics", "automotive", "agriculture",
	},
	"technology": {
		"machine-learning", "artificial-intelligence", "web-development",
		"mobile-apps", "cloud-computing", "data-analytics", "iot",
		"robotics", "ar-vr", "api-development", "devops", "blockchain-tech",
	},
	"business_model": {
		"b2b", "b2c", "b2b2c", "saas", "marketplace", "subscription",
		"freemium", "enterprise", "consulting", "licensing", "advertising",
	},
	"stage": {
		"pre-seed", "seed", "series-a", "series-b", "series-c",
		"growth", "mature", "public", "startup", "scale-up",
	},
	"market": {
		"enterprise", "consumer", "smb", "government", "healthcare-providers",
		"financial-institutions", "education", "retail-chains", "startups",
	},
	"solution_type": {
		"platform", "tool", "service", "infrastructure", "analytics",
		"automation", "integration", "security", "compliance", "optimization",
	},
}
