package job

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// fields is one JSON object, decoded key by key. A key whose value has an
// unexpected type reads as absent; it never rejects the whole object.
type fields map[string]json.RawMessage

func asObject(raw json.RawMessage) (fields, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var f fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, false
	}
	return f, true
}

// str returns the first non-empty string among keys. The order of keys
// is the precedence: callers list the camelCase spelling first.
func (f fields) str(keys ...string) string {
	for _, k := range keys {
		var s string
		if json.Unmarshal(f[k], &s) == nil && s != "" {
			return s
		}
	}
	return ""
}

func (f fields) boolean(keys ...string) *bool {
	for _, k := range keys {
		raw := bytes.TrimSpace(f[k])
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			continue
		}
		var b bool
		if json.Unmarshal(raw, &b) == nil {
			return &b
		}
	}
	return nil
}

func (f fields) integer(key string) int {
	var n int
	if json.Unmarshal(f[key], &n) != nil {
		return 0
	}
	return n
}

func (f fields) object(key string) fields {
	o, _ := asObject(f[key])
	return o
}

// list returns the array under the first key holding one; ok is false
// when none does.
func (f fields) list(keys ...string) (items []json.RawMessage, ok bool) {
	for _, k := range keys {
		raw := bytes.TrimSpace(f[k])
		if len(raw) == 0 || raw[0] != '[' {
			continue
		}
		if json.Unmarshal(raw, &items) == nil {
			return items, true
		}
	}
	return nil, false
}

// Decode translates the search backend's JSON array into canonical jobs.
// Both naming conventions are accepted; where a field exists in both
// spellings the camelCase value wins. Elements that are not JSON objects
// are skipped and counted. A mistyped field inside a job reads as missing.
// Only a body that is not a JSON array is an error.
func Decode(data []byte) (jobs []Job, skipped int, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("decode job array: %w", err)
	}
	jobs = make([]Job, 0, len(raw))
	for _, item := range raw {
		f, ok := asObject(item)
		if !ok {
			skipped++
			continue
		}
		jobs = append(jobs, canonical(f))
	}
	return jobs, skipped, nil
}

func canonical(f fields) Job {
	app := f.object("application")
	j := Job{
		ID:                  rawID(f["id"]),
		Title:               f.str("title"),
		Description:         f.str("description"),
		Company:             Company{Name: f.object("company").str("name")},
		EmploymentType:      f.str("employmentType", "employment_type"),
		WorkTimeExtent:      f.str("workTimeExtent", "work_time_extent"),
		RequiresExperience:  f.boolean("requiresExperience", "requires_experience"),
		PublishedDate:       f.str("publishedDate", "published_date"),
		LastApplicationDate: f.str("lastApplicationDate", "last_application_date"),
		Positions:           f.integer("positions"),
		SalaryType:          f.str("salaryType", "salary_type"),
		SalaryDescription:   f.str("salaryDescription", "salary_description"),
		Duration:            f.str("duration"),
		Application: Application{
			WebAddress: app.str("webAddress", "web_address"),
			Email:      app.str("email"),
			Reference:  app.str("reference"),
		},
	}
	j.Workplace.Municipality = strings.TrimSpace(f.object("workplace").str("municipality"))
	if v := f.boolean("drivingLicenseRequired", "driving_license_required"); v != nil {
		j.DrivingLicenseRequired = *v
	}
	if v := f.boolean("ownCar", "own_car"); v != nil {
		j.OwnCar = *v
	}

	if items, ok := f.list("workExperiences", "work_experiences"); ok {
		j.WorkExperiences = make([]WorkExperience, 0, len(items))
		for _, item := range items {
			e, ok := asObject(item)
			if !ok {
				continue
			}
			var required bool
			if v := e.boolean("required"); v != nil {
				required = *v
			}
			j.WorkExperiences = append(j.WorkExperiences, WorkExperience{
				Required:    required,
				Description: e.str("description", "experience"),
			})
		}
	}
	if items, ok := f.list("contacts"); ok {
		for _, item := range items {
			c, ok := asObject(item)
			if !ok {
				continue
			}
			j.Contacts = append(j.Contacts, Contact{
				Description: c.str("description"),
				PhoneNumber: c.str("phoneNumber", "phone_number"),
				Email:       c.str("email"),
			})
		}
	}
	return j
}

// rawID accepts string and numeric ids.
func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if raw[0] == '{' || raw[0] == '[' {
		return ""
	}
	return string(raw)
}
