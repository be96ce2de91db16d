package filter

import (
	"testing"

	"github.com/jimezsa/jobscan/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func sampleWebsites() []models.Website {
	return []models.Website{
		{ID: "a", Name: "A", URL: "https://a.test", IsActive: true},
		{ID: "b", Name: "B", URL: "https://b.test", IsActive: false, LastError: "timeout"},
		{ID: "c", Name: "Careers Hub", URL: "https://jobs.test/hub", IsActive: true},
	}
}

func ids(sites []models.Website) []string {
	out := make([]string, 0, len(sites))
	for _, site := range sites {
		out = append(out, site.ID)
	}
	return out
}

func TestWebsiteScenario(t *testing.T) {
	p := NewWebsitePipeline()
	p.SetSource(sampleWebsites()[:2])

	p.SetCriteria(WebsiteCriteria{Search: "b", Active: Any})
	assert.Equal(t, []string{"b"}, ids(p.View()))

	p.SetCriteria(WebsiteCriteria{Search: "", Active: ActiveOnly})
	assert.Equal(t, []string{"a"}, ids(p.View()))
}

func TestWebsiteSearchMatchesNameOrURLCaseInsensitive(t *testing.T) {
	sites := sampleWebsites()

	got := Apply(sites, WebsiteCriteria{Search: "HUB"}, MatchWebsite)
	assert.Equal(t, []string{"c"}, ids(got))

	got = Apply(sites, WebsiteCriteria{Search: "jobs.test"}, MatchWebsite)
	assert.Equal(t, []string{"c"}, ids(got))

	got = Apply(sites, WebsiteCriteria{Active: InactiveOnly}, MatchWebsite)
	assert.Equal(t, []string{"b"}, ids(got))
}

func TestEmptyCriteriaIsIdentity(t *testing.T) {
	sites := sampleWebsites()
	got := Apply(sites, WebsiteCriteria{}, MatchWebsite)
	assert.Equal(t, sites, got)
}

func TestViewIsOrderedSubsequence(t *testing.T) {
	sites := append(sampleWebsites(), models.Website{ID: "d", Name: "Acme B", URL: "https://d.test", IsActive: true})
	criteria := []WebsiteCriteria{
		{Search: "b"},
		{Active: ActiveOnly},
		{Search: "test", Active: InactiveOnly},
		{Search: "zzz"},
	}

	for _, c := range criteria {
		view := Apply(sites, c, MatchWebsite)
		next := 0
		for _, item := range view {
			for next < len(sites) && sites[next].ID != item.ID {
				next++
			}
			require.Less(t, next, len(sites), "view %v is not a sub-sequence for %+v", ids(view), c)
			next++
		}
	}
}

func TestClearRestoresSource(t *testing.T) {
	p := NewWebsitePipeline()
	p.SetSource(sampleWebsites())
	p.SetCriteria(WebsiteCriteria{Search: "hub", Active: InactiveOnly})
	require.Empty(t, p.View())

	p.Clear()
	assert.Equal(t, WebsiteCriteria{Search: "", Active: Any}, p.Criteria())
	assert.Equal(t, p.Source(), p.View())
}

func TestNilSourceIsEmpty(t *testing.T) {
	p := NewJobPipeline()
	p.SetCriteria(JobCriteria{Search: "eng"})
	assert.Empty(t, p.View())
	assert.NotNil(t, p.View())

	p.SetSource(nil)
	assert.Empty(t, p.View())
}

func TestSetSourceRecomputesWithCurrentCriteria(t *testing.T) {
	p := NewWebsitePipeline()
	p.SetCriteria(WebsiteCriteria{Active: ActiveOnly})
	p.SetSource(sampleWebsites())
	assert.Equal(t, []string{"a", "c"}, ids(p.View()))
}

func TestJobBatchMatching(t *testing.T) {
	batches := []models.JobBatch{
		{ID: "1", Titles: []string{"Eng I", "Eng II"}, Website: models.WebsiteRef{ID: "a", IsActive: boolPtr(true)}},
		{ID: "2", Titles: []string{"Designer"}, Website: models.WebsiteRef{ID: "b", IsActive: boolPtr(false)}},
		{ID: "3", Titles: []string{"Junior Engineer"}, Website: models.WebsiteRef{ID: "c"}},
	}
	batchIDs := func(list []models.JobBatch) []string {
		out := []string{}
		for _, b := range list {
			out = append(out, b.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "3"}, batchIDs(Apply(batches, JobCriteria{Search: "ENG"}, MatchJobBatch)))
	assert.Equal(t, []string{"1"}, batchIDs(Apply(batches, JobCriteria{Active: ActiveOnly}, MatchJobBatch)))
	assert.Equal(t, []string{"2"}, batchIDs(Apply(batches, JobCriteria{Active: InactiveOnly}, MatchJobBatch)))
	assert.Equal(t, []string{"3"}, batchIDs(Apply(batches, JobCriteria{WebsiteID: "c"}, MatchJobBatch)))
	assert.Equal(t, []string{"1", "2", "3"}, batchIDs(Apply(batches, JobCriteria{}, MatchJobBatch)))
}

func TestParseTristate(t *testing.T) {
	cases := map[string]Tristate{"": Any, "all": Any, "Active": ActiveOnly, "inactive": InactiveOnly}
	for input, want := range cases {
		got, err := ParseTristate(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseTristate("sometimes")
	assert.Error(t, err)
}

func TestMatchTitlesNarrowsWithinBatch(t *testing.T) {
	titles := models.Flatten([]models.JobBatch{
		{ID: "1", Titles: []string{"Backend Engineer", "Designer"}, Website: models.WebsiteRef{ID: "a"}},
		{ID: "2", Titles: []string{"Data ENGINEER"}, Website: models.WebsiteRef{ID: "b"}},
	})

	got := MatchTitles(titles, " engineer ")
	require.Len(t, got, 2)
	assert.Equal(t, "Backend Engineer", got[0].Title)
	assert.Equal(t, "Data ENGINEER", got[1].Title)

	assert.Equal(t, titles, MatchTitles(titles, ""))
}
