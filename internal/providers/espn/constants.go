package espn

const (
	// ProviderName identifies ESPN in logs and metrics.
	ProviderName     = "espn"
	defaultBaseURL   = "https://site.api.espn.com/apis/site/v2/sports"
	defaultUserAgent = "sports-scores-service/1.0"
)
