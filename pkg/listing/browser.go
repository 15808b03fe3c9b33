package listing

import (
	"strings"
	"sync"

	"github.com/artem13815/jobsearch/pkg/job"
)

// View is one rendered page of the current result set.
type View struct {
	SearchTerm    string                       `json:"searchTerm"`
	Query         string                       `json:"query"`
	Jobs          []job.Job                    `json:"jobs"`
	Page          int                          `json:"page"`
	PageSize      int                          `json:"pageSize"`
	TotalPages    int                          `json:"totalPages"`
	PageWindow    []int                        `json:"pageWindow"`
	FilteredCount int                          `json:"filteredCount"`
	TotalCount    int                          `json:"totalCount"`
	Filters       Filters                      `json:"filters"`
	ActiveFilters int                          `json:"activeFilters"`
	Facets        map[Dimension]map[string]int `json:"facets"`
}

// Browser owns the result set of one session together with its filter,
// query and page state.
//
// Replacing the jobs resets filters, query and page; changing filters or
// the query resets the page to 1.
type Browser struct {
	mu         sync.RWMutex
	searchTerm string
	jobs       []job.Job
	filters    Filters
	query      string
	page       int
}

func NewBrowser() *Browser {
	return &Browser{filters: EmptyFilters(), page: 1}
}

// SetJobs replaces the result set wholesale.
func (b *Browser) SetJobs(searchTerm string, jobs []job.Job) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.searchTerm = searchTerm
	b.jobs = jobs
	b.filters = EmptyFilters()
	b.query = ""
	b.page = 1
}

// Toggle flips one filter value. On error nothing changes.
func (b *Browser) Toggle(d Dimension, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	next, err := b.filters.Toggle(d, value)
	if err != nil {
		return err
	}
	b.filters = next
	b.page = 1
	return nil
}

// ClearFilters drops every selected filter value.
func (b *Browser) ClearFilters() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filters = EmptyFilters()
	b.page = 1
}

func (b *Browser) SetQuery(q string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.query = strings.TrimSpace(q)
	b.page = 1
}

// SetPage moves to page p. Values below 1 are clamped to 1; pages past
// the end are kept and render as empty.
func (b *Browser) SetPage(p int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p < 1 {
		p = 1
	}
	b.page = p
}

func (b *Browser) Page() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.page
}

func (b *Browser) Filters() Filters {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.filters
}

// Job looks up a job of the current result set by id.
func (b *Browser) Job(id string) (job.Job, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, j := range b.jobs {
		if j.ID == id {
			return j, true
		}
	}
	return job.Job{}, false
}

// View computes the visible page.
func (b *Browser) View() View {
	b.mu.RLock()
	defer b.mu.RUnlock()

	filtered := ApplyFilters(FilterQuery(b.jobs, b.query), b.filters)
	total := TotalPages(len(filtered), PageSize)
	return View{
		SearchTerm:    b.searchTerm,
		Query:         b.query,
		Jobs:          Paginate(filtered, b.page, PageSize),
		Page:          b.page,
		PageSize:      PageSize,
		TotalPages:    total,
		PageWindow:    PageWindow(b.page, total),
		FilteredCount: len(filtered),
		TotalCount:    len(b.jobs),
		Filters:       b.filters,
		ActiveFilters: b.filters.Active(),
		Facets: map[Dimension]map[string]int{
			DimensionEmploymentType: FacetCounts(b.jobs, DimensionEmploymentType),
			DimensionMunicipality:   FacetCounts(b.jobs, DimensionMunicipality),
			DimensionExperience:     FacetCounts(b.jobs, DimensionExperience),
		},
	}
}
