package job

// Experience filter values as shown in the UI.
const (
	ExperienceRequired    = "Ja"
	ExperienceNotRequired = "Nej"
)

// ExperienceFlag derives "Ja"/"Nej" for a job.
//
// A direct RequiresExperience boolean wins when present. Otherwise a
// WorkExperiences list yields "Nej" iff any entry is not required, and
// "Ja" for a list where every entry is required (or the list is empty
// but present). ok is false when the job carries neither shape.
func ExperienceFlag(j Job) (flag string, ok bool) {
	if j.RequiresExperience != nil {
		if *j.RequiresExperience {
			return ExperienceRequired, true
		}
		return ExperienceNotRequired, true
	}
	if j.WorkExperiences == nil {
		return "", false
	}
	for _, we := range j.WorkExperiences {
		if !we.Required {
			return ExperienceNotRequired, true
		}
	}
	return ExperienceRequired, true
}

// IsExperienceValue reports whether v is one of the two filter values.
func IsExperienceValue(v string) bool {
	return v == ExperienceRequired || v == ExperienceNotRequired
}
