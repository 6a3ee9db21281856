package thesportsdb

const (
	// ProviderName identifies TheSportsDB in logs and metrics.
	ProviderName   = "thesportsdb"
	defaultBaseURL = "https://www.thesportsdb.com/api/v1/json"
	// defaultAPIKey is TheSportsDB's public test key.
	defaultAPIKey = "3"
)
