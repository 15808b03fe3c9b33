// Package coverletter drafts a cover letter for a job from the user's profile.
package coverletter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/artem13815/jobsearch/pkg/apperr"
	"github.com/artem13815/jobsearch/pkg/job"
	"github.com/artem13815/jobsearch/pkg/llm"
	"github.com/artem13815/jobsearch/pkg/nlp"
	"github.com/artem13815/jobsearch/pkg/profile"
)

// ErrLLMUnavailable is returned when no chat model is configured.
var ErrLLMUnavailable = errors.New("llm is not configured")

// Draft is a generated cover letter. It is never stored.
type Draft struct {
	Introduction  string   `json:"introduction"`
	Body          string   `json:"body"`
	Conclusion    string   `json:"conclusion"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
}

// maxDescriptionRunes caps the ad text sent to the model.
const maxDescriptionRunes = 8000

type Service struct {
	llm      llm.ChatModel
	maxRunes int
}

func NewService(model llm.ChatModel) *Service {
	return &Service{llm: model, maxRunes: maxDescriptionRunes}
}

type llmPayload struct {
	Introduction string `json:"introduction"`
	Body         string `json:"body"`
	Conclusion   string `json:"conclusion"`
}

// Draft asks the model for a three-part letter. Skills from the profile
// are matched against the job ad first and passed along as hints.
func (s *Service) Draft(ctx context.Context, p profile.Profile, j job.Job) (Draft, error) {
	if s.llm == nil {
		return Draft{}, ErrLLMUnavailable
	}
	if strings.TrimSpace(j.Title) == "" && strings.TrimSpace(j.Description) == "" {
		return Draft{}, apperr.Validation("job has neither title nor description")
	}

	matched, missing := nlp.MatchSkills(nlp.SplitSkills(p.Skills), j.Title+" "+j.Description)
	description := truncateRunes(j.Description, s.maxRunes)

	system := "Du skriver personliga brev på svenska. Svara STRIKT med ett JSON-objekt utan markdown. Hitta inte på erfarenheter som inte finns i profilen."
	user := fmt.Sprintf(
		"Tjänst: %s\nFöretag: %s\nAnnons:\n<<<\n%s\n>>>\n\nSökande: %s\nOm mig: %s\nErfarenhet:\n%s\nUtbildning:\n%s\nMatchande kompetenser: %s\nSaknade kompetenser: %s\n\nReturnera JSON med strängfälten introduction, body, conclusion.\n",
		j.Title,
		j.Company.Name,
		description,
		p.DisplayName,
		p.Bio,
		p.Experience,
		p.Education,
		strings.Join(matched, ", "),
		strings.Join(missing, ", "),
	)
	raw, err := s.llm.Ask(ctx, system, user)
	if err != nil {
		return Draft{}, apperr.Upstream("llm", err)
	}
	out, err := parsePayload(raw)
	if err != nil {
		return Draft{}, err
	}
	return Draft{
		Introduction:  out.Introduction,
		Body:          out.Body,
		Conclusion:    out.Conclusion,
		MatchedSkills: matched,
		MissingSkills: missing,
	}, nil
}

func parsePayload(raw string) (llmPayload, error) {
	raw = strings.TrimSpace(raw)
	var out llmPayload
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		// try to extract JSON from fenced block
		i := strings.Index(raw, "{")
		j := strings.LastIndex(raw, "}")
		if i < 0 || j <= i {
			return llmPayload{}, fmt.Errorf("%w: llm reply is not json", apperr.ErrMalformedResponse)
		}
		if err := json.Unmarshal([]byte(raw[i:j+1]), &out); err != nil {
			return llmPayload{}, fmt.Errorf("%w: %v", apperr.ErrMalformedResponse, err)
		}
	}
	if out.Introduction == "" && out.Body == "" && out.Conclusion == "" {
		return llmPayload{}, fmt.Errorf("%w: empty cover letter", apperr.ErrMalformedResponse)
	}
	return out, nil
}

// truncateRunes keeps at most n runes of s, never splitting a character.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
