// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"regexp"
	"strings"

	"github.com/pdiddy/casefile/internal/naming"
)

// StatusVocabulary lists the recognized case statuses in priority order.
var StatusVocabulary = []string{
	"incontroverso",
	"valor total",
	"acordo",
	"homologado",
	"transitado em julgado",
	"sentença",
	"improcedente",
	"procedente",
	"extinto",
	"arquivado",
}

var statusPatterns = compileStatusPatterns(StatusVocabulary)

func compileStatusPatterns(vocab []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(vocab))
	for i, term := range vocab {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(naming.Fold(term)) + `\b`)
	}
	return out
}

// FindStatus returns the highest-priority vocabulary term occurring in text
// as a whole word, ignoring case and accents. The term is returned
// upper-cased with its accents.
func FindStatus(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	folded := naming.Fold(text)
	for i, re := range statusPatterns {
		if re.MatchString(folded) {
			return strings.ToUpper(StatusVocabulary[i]), true
		}
	}
	return "", false
}
