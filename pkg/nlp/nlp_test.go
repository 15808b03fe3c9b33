package nlp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artem13815/jobsearch/pkg/nlp"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "systemutvecklare i malmö", nlp.NormalizeText("  Systemutvecklare, i MALMÖ!"))
	assert.Equal(t, "", nlp.NormalizeText(" -- "))
}

func TestContainsText(t *testing.T) {
	assert.True(t, nlp.ContainsText("", "anything"))
	assert.True(t, nlp.ContainsText("GÖTEBORG", "Volvo", "Göteborg"))
	assert.True(t, nlp.ContainsText("back-end", "Backend utvecklare", "Back end"))
	assert.False(t, nlp.ContainsText("java", "Go", "Malmö"))
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "PostgreSQL", "CI/CD"}, nlp.SplitSkills("Go, PostgreSQL;\n go ,CI/CD,,"))
	assert.Empty(t, nlp.SplitSkills(" , "))
}

func TestMatchSkills(t *testing.T) {
	text := "Vi söker en utvecklare med Golang, Postgres och Kubernetes. Erfarenhet av Google Cloud är meriterande."
	matched, missing := nlp.MatchSkills([]string{"Go", "PostgreSQL", "k8s", "Java", "CI/CD"}, text)
	assert.Equal(t, []string{"Go", "PostgreSQL", "k8s"}, matched)
	assert.Equal(t, []string{"Java", "CI/CD"}, missing)

	matched, missing = nlp.MatchSkills(nil, text)
	assert.Empty(t, matched)
	assert.Empty(t, missing)
}
