package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/artem13815/jobsearch/pkg/apperr"
	"github.com/artem13815/jobsearch/pkg/auth"
	"github.com/artem13815/jobsearch/pkg/llm"
)

// ErrLLMUnavailable: no chat model configured.
var ErrLLMUnavailable = errors.New("llm is not configured")

// Importer fills profile fields from an uploaded CV file.
type Importer struct {
	resolver *Resolver
	store    Store
	llm      llm.ChatModel
	maxChars int
}

func NewImporter(resolver *Resolver, store Store, model llm.ChatModel) *Importer {
	return &Importer{resolver: resolver, store: store, llm: model, maxChars: 12000}
}

type extracted struct {
	Phone          string `json:"phone"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Skills         string `json:"skills"`
	Experience     string `json:"experience"`
	Education      string `json:"education"`
	Certifications string `json:"certifications"`
}

// Import extracts text from the file, asks the model for the profile
// fields and merges the non-empty ones into the stored profile.
func (im *Importer) Import(ctx context.Context, user auth.User, filename string, data []byte) (Profile, error) {
	text, err := ExtractText(filename, data)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			return Profile{}, apperr.Validation(err.Error())
		}
		return Profile{}, apperr.Validation("failed to read cv: " + err.Error())
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Profile{}, apperr.Validation("empty cv content")
	}
	if len(text) > im.maxChars {
		text = text[:im.maxChars]
	}
	if im.llm == nil {
		return Profile{}, ErrLLMUnavailable
	}

	system := "Du är en rekryteringsassistent. Svara STRIKT med ett JSON-objekt utan markdown eller förklaringar. Hitta inte på fakta; okända fält lämnas som tom sträng."
	prompt := fmt.Sprintf(
		"CV-text:\n<<<\n%s\n>>>\n\nReturnera exakt ett JSON-objekt med strängfälten:\n{\"phone\", \"location\", \"bio\", \"skills\", \"experience\", \"education\", \"certifications\"}\n- skills: kommaseparerad lista\n- experience, education, certifications: en rad per post\n",
		text,
	)
	raw, err := im.llm.Ask(ctx, system, prompt)
	if err != nil {
		return Profile{}, apperr.Upstream("llm", err)
	}
	var ex extracted
	if err := decodeJSONObject(raw, &ex); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", apperr.ErrMalformedResponse, err)
	}

	current, err := im.store.Get(ctx, user.ID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return Profile{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return im.resolver.save(ctx, user, ex.mergeInto(current))
}

func (ex extracted) mergeInto(p Profile) Profile {
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&p.Phone, ex.Phone)
	set(&p.Location, ex.Location)
	set(&p.Bio, ex.Bio)
	set(&p.Skills, ex.Skills)
	set(&p.Experience, ex.Experience)
	set(&p.Education, ex.Education)
	set(&p.Certifications, ex.Certifications)
	return p
}

// decodeJSONObject parses raw, falling back to the outermost {...} when the
// model wrapped the object in prose or a code fence.
func decodeJSONObject(raw string, v any) error {
	raw = strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}
	i := strings.Index(raw, "{")
	j := strings.LastIndex(raw, "}")
	if i < 0 || j <= i {
		return errors.New("no json object in model reply")
	}
	return json.Unmarshal([]byte(raw[i:j+1]), v)
}
