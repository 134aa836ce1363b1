package constant

const (
	AppName    = "Mayombo AI Assistant"
	AppVersion = "4.0 - Conversational Edition"

	BannerMessage = "Mayombo AI Assistant is running! / Gumagana ang Mayombo AI Assistant!"
	StatusOnline  = "online"
	StatusHealthy = "healthy"
	FeatureOn     = "enabled"
)

// Display names of the supported reply languages
var SupportedLanguages = []string{"English", "Tagalog"}
