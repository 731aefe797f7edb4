package domain

// Settings is the single site-wide configuration document.
type Settings struct {
	GlobalTitle           string          `json:"globalTitle"`
	GlobalDescription     string          `json:"globalDescription"`
	HomeIntroContent      string          `json:"homeIntroContent"`
	SocialLinks           []SocialProfile `json:"socialLinks"`
	ProfileName           string          `json:"profileName,omitempty"`
	ProfileLabel          string          `json:"profileLabel,omitempty"`
	NewsletterTitle       string          `json:"newsletterTitle,omitempty"`
	NewsletterDescription string          `json:"newsletterDescription,omitempty"`
	ContactIntro          string          `json:"contactIntro,omitempty"`
	ContactEmail          string          `json:"contactEmail,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		GlobalTitle:       "Veranda",
		GlobalDescription: "Personal portfolio and blog.",
		HomeIntroContent:  "## Welcome\n\nThis site runs on Veranda.",
		NewsletterTitle:   "Newsletter",
		ContactIntro:      "## Get in Touch\nFill out the form below.",
	}
}
