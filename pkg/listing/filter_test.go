package listing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobsearch/pkg/apperr"
	"github.com/artem13815/jobsearch/pkg/job"
	"github.com/artem13815/jobsearch/pkg/listing"
)

func boolPtr(b bool) *bool { return &b }

func sampleJobs() []job.Job {
	return []job.Job{
		{ID: "1", Title: "Utvecklare", Company: job.Company{Name: "Acme"}, EmploymentType: "Heltid",
			Workplace: job.Workplace{Municipality: "Stockholm"}, RequiresExperience: boolPtr(true)},
		{ID: "2", Title: "Lagerarbetare", Company: job.Company{Name: "Lager AB"}, EmploymentType: "Deltid",
			Workplace: job.Workplace{Municipality: "Göteborg"}, RequiresExperience: boolPtr(false)},
		{ID: "3", Title: "Säljare", EmploymentType: "Heltid",
			WorkExperiences: []job.WorkExperience{{Required: false}}},
		{ID: "4", Title: "Kock", EmploymentType: "Heltid", Workplace: job.Workplace{Municipality: "Stockholm"}},
	}
}

func ids(jobs []job.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

// ── ApplyFilters ───────────────────────────────────────────────────────────

func TestApplyFilters_EmptyFiltersReturnInputInOrder(t *testing.T) {
	jobs := sampleJobs()
	got := listing.ApplyFilters(jobs, listing.EmptyFilters())
	assert.Equal(t, jobs, got)

	got = listing.ApplyFilters(jobs, listing.Filters{})
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(got))
}

func TestApplyFilters_Scenario(t *testing.T) {
	jobs := sampleJobs()[:2]
	got := listing.ApplyFilters(jobs, listing.Filters{EmploymentTypes: []string{"Heltid"}})
	require.Equal(t, []string{"1"}, ids(got))

	page := listing.Paginate(got, 1, listing.PageSize)
	assert.Equal(t, []string{"1"}, ids(page))
}

func TestApplyFilters_OrWithinDimension(t *testing.T) {
	got := listing.ApplyFilters(sampleJobs(), listing.Filters{EmploymentTypes: []string{"Heltid", "Deltid"}})
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(got))
}

func TestApplyFilters_AndAcrossDimensions(t *testing.T) {
	got := listing.ApplyFilters(sampleJobs(), listing.Filters{
		EmploymentTypes: []string{"Heltid"},
		Municipalities:  []string{"Stockholm"},
	})
	assert.Equal(t, []string{"1", "4"}, ids(got))
}

func TestApplyFilters_AbsentMunicipalityFailsNonEmptySet(t *testing.T) {
	got := listing.ApplyFilters(sampleJobs(), listing.Filters{Municipalities: []string{"Stockholm", "Göteborg"}})
	assert.NotContains(t, ids(got), "3")
	assert.Equal(t, []string{"1", "2", "4"}, ids(got))
}

func TestApplyFilters_Experience(t *testing.T) {
	cases := []struct {
		name string
		set  []string
		want []string
	}{
		{"required", []string{"Ja"}, []string{"1"}},
		{"not required", []string{"Nej"}, []string{"2", "3"}},
		{"both", []string{"Ja", "Nej"}, []string{"1", "2", "3"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := listing.ApplyFilters(sampleJobs(), listing.Filters{ExperienceRequired: c.set})
			assert.Equal(t, c.want, ids(got))
		})
	}
}

func TestApplyFilters_MembershipProperty(t *testing.T) {
	jobs := sampleJobs()
	filters := []listing.Filters{
		{EmploymentTypes: []string{"Deltid"}},
		{Municipalities: []string{"Göteborg"}},
		{ExperienceRequired: []string{"Nej"}},
	}
	dims := []listing.Dimension{listing.DimensionEmploymentType, listing.DimensionMunicipality, listing.DimensionExperience}
	sets := [][]string{{"Deltid"}, {"Göteborg"}, {"Nej"}}

	for i, f := range filters {
		got := ids(listing.ApplyFilters(jobs, f))
		for _, j := range jobs {
			v, ok := listing.ValueOf(j, dims[i])
			member := ok && v == sets[i][0]
			assert.Equal(t, member, contains(got, j.ID), "job %s dim %s", j.ID, dims[i])
		}
	}
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// ── Toggle ─────────────────────────────────────────────────────────────────

func TestFilters_ToggleAddsAndRemoves(t *testing.T) {
	f := listing.EmptyFilters()
	f1, err := f.Toggle(listing.DimensionMunicipality, "Stockholm")
	require.NoError(t, err)
	assert.Equal(t, []string{"Stockholm"}, f1.Municipalities)
	assert.Empty(t, f.Municipalities, "receiver must not change")

	f2, err := f1.Toggle(listing.DimensionMunicipality, "Stockholm")
	require.NoError(t, err)
	assert.Empty(t, f2.Municipalities)
	assert.True(t, f2.IsEmpty())
}

func TestFilters_ToggleRejectsBadInput(t *testing.T) {
	f := listing.EmptyFilters()
	_, err := f.Toggle(listing.DimensionExperience, "Kanske")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = f.Toggle(listing.Dimension("salary"), "x")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestFilters_ToggleRejectsBlankValue(t *testing.T) {
	f, err := listing.EmptyFilters().Toggle(listing.DimensionMunicipality, "Malmö")
	require.NoError(t, err)

	for _, d := range []listing.Dimension{listing.DimensionEmploymentType, listing.DimensionMunicipality} {
		for _, v := range []string{"", "   "} {
			got, err := f.Toggle(d, v)
			assert.ErrorIs(t, err, apperr.ErrValidation, "%s %q", d, v)
			assert.Equal(t, f, got, "filters must be unchanged")
		}
	}
}

func TestParseDimension(t *testing.T) {
	for _, s := range []string{"employmentType", "municipality", "experience"} {
		d, err := listing.ParseDimension(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(d))
	}
	_, err := listing.ParseDimension("")
	assert.Error(t, err)
}

// ── FacetCounts ────────────────────────────────────────────────────────────

func TestFacetCounts(t *testing.T) {
	jobs := sampleJobs()
	assert.Equal(t, map[string]int{"Heltid": 3, "Deltid": 1},
		listing.FacetCounts(jobs, listing.DimensionEmploymentType))
	assert.Equal(t, map[string]int{"Stockholm": 2, "Göteborg": 1},
		listing.FacetCounts(jobs, listing.DimensionMunicipality))
	assert.Equal(t, map[string]int{"Ja": 1, "Nej": 2},
		listing.FacetCounts(jobs, listing.DimensionExperience))
}

func TestFacetCounts_EmptyExperienceKeepsBothKeys(t *testing.T) {
	assert.Equal(t, map[string]int{"Ja": 0, "Nej": 0}, listing.FacetCounts(nil, listing.DimensionExperience))
}

// ── Query ──────────────────────────────────────────────────────────────────

func TestFilterQuery(t *testing.T) {
	jobs := sampleJobs()
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(listing.FilterQuery(jobs, "  ")))
	assert.Equal(t, []string{"2"}, ids(listing.FilterQuery(jobs, "LAGER")))
	assert.Equal(t, []string{"1", "4"}, ids(listing.FilterQuery(jobs, "stockholm")))
	assert.Equal(t, []string{"2"}, ids(listing.FilterQuery(jobs, "göteborg")))
}
