package cv

import (
	"github.com/artem13815/jobsearch/pkg/job"
	"github.com/artem13815/jobsearch/pkg/profile"
)

// Request is the body POSTed to the generator: the profile fields followed
// by the job context and the template. lastUpdated is not sent.
type Request struct {
	DisplayName    string `json:"displayName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Skills         string `json:"skills"`
	Experience     string `json:"experience"`
	Education      string `json:"education"`
	Certifications string `json:"certifications"`

	JobTitle       string `json:"jobTitle"`
	JobDescription string `json:"jobDescription"`
	Template       string `json:"template"`
}

func NewRequest(p profile.Profile, j job.Job, template string) Request {
	return Request{
		DisplayName:    p.DisplayName,
		Email:          p.Email,
		Phone:          p.Phone,
		Location:       p.Location,
		Bio:            p.Bio,
		Skills:         p.Skills,
		Experience:     p.Experience,
		Education:      p.Education,
		Certifications: p.Certifications,
		JobTitle:       j.Title,
		JobDescription: j.Description,
		Template:       template,
	}
}
