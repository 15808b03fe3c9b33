// Package listing filters and pages a job result set.
//
// All functions here are pure over their inputs; Browser layers the
// per-session state (filters, query, current page) on top of them.
package listing

import (
	"strings"

	"github.com/artem13815/jobsearch/pkg/apperr"
	"github.com/artem13815/jobsearch/pkg/job"
	"github.com/artem13815/jobsearch/pkg/nlp"
)

// PageSize is fixed; the UI does not let the user change it.
const PageSize = 10

// Dimension names one filterable property of a job.
type Dimension string

const (
	DimensionEmploymentType Dimension = "employmentType"
	DimensionMunicipality   Dimension = "municipality"
	DimensionExperience     Dimension = "experience"
)

// ParseDimension converts a raw string to a Dimension.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(s)
	switch d {
	case DimensionEmploymentType, DimensionMunicipality, DimensionExperience:
		return d, nil
	}
	return "", apperr.Validation("unknown filter dimension " + s)
}

// Filters is the active predicate set. An empty slice imposes no
// constraint on its dimension. Values are unique within a slice.
type Filters struct {
	EmploymentTypes    []string `json:"employmentTypes"`
	Municipalities     []string `json:"municipalities"`
	ExperienceRequired []string `json:"experienceRequired"`
}

// EmptyFilters returns the "show all" state.
func EmptyFilters() Filters {
	return Filters{
		EmploymentTypes:    []string{},
		Municipalities:     []string{},
		ExperienceRequired: []string{},
	}
}

// IsEmpty reports whether no dimension is constrained.
func (f Filters) IsEmpty() bool {
	return len(f.EmploymentTypes) == 0 && len(f.Municipalities) == 0 && len(f.ExperienceRequired) == 0
}

// Active is the number of selected values across all dimensions.
func (f Filters) Active() int {
	return len(f.EmploymentTypes) + len(f.Municipalities) + len(f.ExperienceRequired)
}

// Toggle returns a copy of f with value added to, or removed from, the
// set for d. The receiver is not modified. Jobs without a value are never
// matched by a set, so a blank value is rejected rather than stored.
func (f Filters) Toggle(d Dimension, value string) (Filters, error) {
	if strings.TrimSpace(value) == "" {
		return f, apperr.Validation("filter value is required")
	}
	out := Filters{
		EmploymentTypes:    clone(f.EmploymentTypes),
		Municipalities:     clone(f.Municipalities),
		ExperienceRequired: clone(f.ExperienceRequired),
	}
	switch d {
	case DimensionEmploymentType:
		out.EmploymentTypes = toggle(out.EmploymentTypes, value)
	case DimensionMunicipality:
		out.Municipalities = toggle(out.Municipalities, value)
	case DimensionExperience:
		if !job.IsExperienceValue(value) {
			return f, apperr.Validation("experience filter accepts only Ja or Nej")
		}
		out.ExperienceRequired = toggle(out.ExperienceRequired, value)
	default:
		return f, apperr.Validation("unknown filter dimension " + string(d))
	}
	return out, nil
}

func (f Filters) set(d Dimension) []string {
	switch d {
	case DimensionEmploymentType:
		return f.EmploymentTypes
	case DimensionMunicipality:
		return f.Municipalities
	case DimensionExperience:
		return f.ExperienceRequired
	}
	return nil
}

// ValueOf returns the job's value for d; ok is false when the job has none.
func ValueOf(j job.Job, d Dimension) (value string, ok bool) {
	switch d {
	case DimensionEmploymentType:
		return j.EmploymentType, j.EmploymentType != ""
	case DimensionMunicipality:
		return j.Workplace.Municipality, j.Workplace.Municipality != ""
	case DimensionExperience:
		return job.ExperienceFlag(j)
	}
	return "", false
}

// Matches reports whether j passes every non-empty dimension of f.
// A job without a value for a constrained dimension does not pass.
func Matches(j job.Job, f Filters) bool {
	for _, d := range []Dimension{DimensionEmploymentType, DimensionMunicipality, DimensionExperience} {
		set := f.set(d)
		if len(set) == 0 {
			continue
		}
		v, ok := ValueOf(j, d)
		if !ok || !contains(set, v) {
			return false
		}
	}
	return true
}

// ApplyFilters keeps the jobs that pass f, preserving order. With no
// active filter the input slice itself is returned.
func ApplyFilters(jobs []job.Job, f Filters) []job.Job {
	if f.IsEmpty() {
		return jobs
	}
	out := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		if Matches(j, f) {
			out = append(out, j)
		}
	}
	return out
}

// MatchesQuery is the free-text search over title, company and municipality.
func MatchesQuery(j job.Job, query string) bool {
	return nlp.ContainsText(query, j.Title, j.Company.Name, j.Workplace.Municipality)
}

// FilterQuery keeps the jobs matching query; an empty query keeps all.
func FilterQuery(jobs []job.Job, query string) []job.Job {
	if nlp.NormalizeText(query) == "" {
		return jobs
	}
	out := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		if MatchesQuery(j, query) {
			out = append(out, j)
		}
	}
	return out
}

// FacetCounts counts each distinct value of d across jobs, which callers
// pass unfiltered. Jobs without a value are not counted. The experience
// dimension always reports both Ja and Nej.
func FacetCounts(jobs []job.Job, d Dimension) map[string]int {
	counts := make(map[string]int)
	if d == DimensionExperience {
		counts[job.ExperienceRequired] = 0
		counts[job.ExperienceNotRequired] = 0
	}
	for _, j := range jobs {
		if v, ok := ValueOf(j, d); ok {
			counts[v]++
		}
	}
	return counts
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func toggle(set []string, v string) []string {
	for i, s := range set {
		if s == v {
			return append(set[:i], set[i+1:]...)
		}
	}
	return append(set, v)
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
