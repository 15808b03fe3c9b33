package job

// Job is the canonical posting shape used everywhere past the search
// boundary. Jobs are immutable for the lifetime of a result set.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Company     Company   `json:"company"`
	Workplace   Workplace `json:"workplace"`

	EmploymentType string `json:"employmentType"`
	WorkTimeExtent string `json:"workTimeExtent,omitempty"`

	// RequiresExperience and WorkExperiences are alternative shapes of the
	// same information; see ExperienceFlag.
	RequiresExperience *bool            `json:"requiresExperience,omitempty"`
	WorkExperiences    []WorkExperience `json:"workExperiences,omitempty"`

	DrivingLicenseRequired bool `json:"drivingLicenseRequired"`
	OwnCar                 bool `json:"ownCar"`

	PublishedDate       string `json:"publishedDate,omitempty"`
	LastApplicationDate string `json:"lastApplicationDate,omitempty"`

	Positions         int         `json:"positions,omitempty"`
	SalaryType        string      `json:"salaryType,omitempty"`
	SalaryDescription string      `json:"salaryDescription,omitempty"`
	Duration          string      `json:"duration,omitempty"`
	Contacts          []Contact   `json:"contacts,omitempty"`
	Application       Application `json:"application"`
}

type Company struct {
	Name string `json:"name"`
}

// Workplace.Municipality is empty when the posting does not name one.
type Workplace struct {
	Municipality string `json:"municipality,omitempty"`
}

type WorkExperience struct {
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

type Contact struct {
	Description string `json:"description"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Email       string `json:"email,omitempty"`
}

type Application struct {
	WebAddress string `json:"webAddress,omitempty"`
	Email      string `json:"email,omitempty"`
	Reference  string `json:"reference,omitempty"`
}
