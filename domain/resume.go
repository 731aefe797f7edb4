package domain

type SocialProfile struct {
	Network  string `json:"network"`
	Username string `json:"username"`
	URL      string `json:"url"`
}

type WorkExperience struct {
	ID         string   `json:"id"`
	Company    string   `json:"company"`
	Position   string   `json:"position"`
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	Summary    string   `json:"summary,omitempty"`
	Highlights []string `json:"highlights"`
	URL        string   `json:"url,omitempty"`
}

type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Area        string `json:"area"`
	StudyType   string `json:"studyType"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Score       string `json:"score,omitempty"`
}

type SkillCategory struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

type Publication struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Publisher   string `json:"publisher"`
	ReleaseDate string `json:"releaseDate"`
	URL         string `json:"url,omitempty"`
	Summary     string `json:"summary"`
}

type Certification struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Issuer string `json:"issuer"`
	URL    string `json:"url,omitempty"`
}

type ResumeBasics struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Image    string `json:"image"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	URL      string `json:"url,omitempty"`
	Summary  string `json:"summary"`
	Location struct {
		City        string `json:"city"`
		CountryCode string `json:"countryCode"`
		Region      string `json:"region"`
	} `json:"location"`
	Profiles []SocialProfile `json:"profiles"`
}

// Resume is stored as one JSON document, edited and replaced whole.
type Resume struct {
	Basics         ResumeBasics     `json:"basics"`
	Work           []WorkExperience `json:"work"`
	Education      []Education      `json:"education"`
	Skills         []SkillCategory  `json:"skills"`
	Publications   []Publication    `json:"publications"`
	Certifications []Certification  `json:"certifications"`
}
