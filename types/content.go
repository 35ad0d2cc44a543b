package types

// About is the single about-me record shown on the landing page.
type About struct {
	ID            int    `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	Title         string `json:"title" db:"title"`
	Description   string `json:"description" db:"description"`
	ProfilePicURL string `json:"profile_pic_url" db:"profile_pic_url"`
}

// Education is a single education history entry.
type Education struct {
	ID          int    `json:"id" db:"id"`
	Institution string `json:"institution" db:"institution"`
	Degree      string `json:"degree" db:"degree"`
	Years       string `json:"years" db:"years"`
}

// SkillCategory groups individual skills under a named heading.
type SkillCategory struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Skill is an individual skill belonging to a category.
type Skill struct {
	ID         int    `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	CategoryID int    `json:"category_id" db:"category_id"`

	// CategoryName is populated on joined reads only.
	CategoryName string `json:"category_name,omitempty" db:"category_name"`
}

// Experience is a single work history entry.
type Experience struct {
	ID          int    `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Company     string `json:"company" db:"company"`
	Duration    string `json:"duration" db:"duration"`
	Description string `json:"description" db:"description"`
}

// Project is a portfolio project entry.
type Project struct {
	ID           int    `json:"id" db:"id"`
	Title        string `json:"title" db:"title"`
	Description  string `json:"description" db:"description"`
	Technologies string `json:"technologies" db:"technologies"`
}

// ContactInfo is a single contact channel (email, github, linkedin, ...).
type ContactInfo struct {
	ID    int    `json:"id" db:"id"`
	Type  string `json:"type" db:"type"`
	Value string `json:"value" db:"value"`
	URL   string `json:"url" db:"url"`
}

// DashboardEntry is a row of the aggregated dashboard view.
type DashboardEntry struct {
	ID      int    `json:"id" db:"id"`
	Section string `json:"section" db:"section"`
	Label   string `json:"label" db:"label"`
	Value   string `json:"value" db:"value"`
}

// ContactMessage is a message submitted by a site visitor.
type ContactMessage struct {
	ID      int    `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Email   string `json:"email" db:"email"`
	Message string `json:"message" db:"message"`
}
