package types

// ContactSubmission is the untrusted contact-form payload received by the
// relay. Both camelCase and snake_case variants of the name fields are
// accepted to support mixed client payloads; camelCase wins when both are set.
type ContactSubmission struct {
	FirstName      string `json:"firstName"`
	FirstNameSnake string `json:"firstname"`
	LastName       string `json:"lastName"`
	LastNameSnake  string `json:"lastname"`
	Email          string `json:"email"`
	Company        string `json:"company"`
	Phone          string `json:"phone"`
	Message        string `json:"message"`
	// Opt-in flags arrive as bool true, "true" or "on" depending on the
	// client; anything else means no opt-in.
	SubscribeToInsights interface{} `json:"subscribeToInsights"`
	InsightsOptIn       interface{} `json:"insights_opt_in"`
	// Website is a hidden honeypot field. Humans never fill it in.
	Website  string `json:"website"`
	PageURI  string `json:"pageUri"`
	PageName string `json:"pageName"`
	// HUTK is the HubSpot visitor token cookie, forwarded for attribution.
	HUTK string `json:"hutk"`
}

// InsightsSubmission is the untrusted newsletter-signup payload.
type InsightsSubmission struct {
	Email    string `json:"email"`
	Website  string `json:"website"`
	PageURI  string `json:"pageUri"`
	PageName string `json:"pageName"`
	HUTK     string `json:"hutk"`
}

// RelayResponse is the simplified success/failure envelope returned to the
// browser for both relay endpoints.
type RelayResponse struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}
