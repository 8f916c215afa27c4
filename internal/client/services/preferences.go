package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/campusevents/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/campusevents/internal/common"
	"golang.org/x/text/language"
)

// DefaultLanguage is used when no supported language is stored or requested.
const DefaultLanguage = "en"

// SupportedLanguages lists the UI language codes in preference order.
var SupportedLanguages = []string{"en", "ru", "kz"}

var ErrUnsupportedLanguage = errors.New("unsupported language")

// supportedTags is aligned with SupportedLanguages; "kz" is Kazakh (kk).
var (
	supportedTags   = []language.Tag{language.English, language.Russian, language.Kazakh}
	languageMatcher = language.NewMatcher(supportedTags)
)

// MatchLanguage maps a requested language, a code like "ru" or a BCP 47 tag
// like "ru-RU" or "kk", to a supported code. ok is false when nothing
// supported matches, in which case DefaultLanguage is returned.
func MatchLanguage(requested string) (code string, ok bool) {
	requested = strings.ToLower(strings.TrimSpace(requested))
	if requested == "kz" {
		return "kz", true
	}

	tag, err := language.Parse(requested)
	if err != nil {
		return DefaultLanguage, false
	}
	_, idx, conf := languageMatcher.Match(tag)
	if conf == language.No {
		return DefaultLanguage, false
	}
	return SupportedLanguages[idx], true
}

// PreferencesService keeps the preferred UI language. It is stored apart
// from the session and survives logout.
type PreferencesService struct {
	repo metadata.Repository
}

func NewPreferencesService(repo metadata.Repository) *PreferencesService {
	return &PreferencesService{repo: repo}
}

// Language returns the stored language, DefaultLanguage when none is stored.
func (p *PreferencesService) Language(ctx context.Context) (string, error) {
	raw, err := p.repo.Get(ctx, common.PreferredLanguageKey)
	if errors.Is(err, common.ErrorNotFound) {
		return DefaultLanguage, nil
	}
	if err != nil {
		return "", fmt.Errorf("load language: %w", err)
	}
	code, _ := MatchLanguage(string(raw))
	return code, nil
}

// SetLanguage stores the supported language matching requested and returns
// its code.
func (p *PreferencesService) SetLanguage(ctx context.Context, requested string) (string, error) {
	code, ok := MatchLanguage(requested)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, requested)
	}
	if err := p.repo.Set(ctx, common.PreferredLanguageKey, []byte(code)); err != nil {
		return "", fmt.Errorf("store language: %w", err)
	}
	return code, nil
}
