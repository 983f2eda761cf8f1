// Package i18n localizes violation and error messages. English format strings are the
// catalog keys; a key with no translation is printed as is.
package i18n

import (
	"errors"

	"github.com/SscSPs/chart_ledger/internal/apperrors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translator resolves a request language and prints messages in it.
type Translator struct {
	catalog *catalog.Builder
	matcher language.Matcher
}

// Supported lists the languages with a catalog, in preference order.
var Supported = []language.Tag{language.English, language.French}

// New builds the catalog for every supported language.
func New() *Translator {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range french {
		// SetString only fails for malformed tags.
		_ = b.SetString(language.French, key, msg)
	}
	return &Translator{catalog: b, matcher: language.NewMatcher(Supported)}
}

// Match picks the best supported language for an Accept-Language header value.
func (t *Translator) Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, index, confidence := t.matcher.Match(tags...)
	if confidence == language.No {
		return language.English
	}
	return Supported[index]
}

// Sprintf prints key in the given language.
func (t *Translator) Sprintf(tag language.Tag, key string, args ...any) string {
	return message.NewPrinter(tag, message.Catalog(t.catalog)).Sprintf(key, args...)
}

// Messages renders err as a list of user-facing messages. A validation batch yields one
// message per violation; other errors yield the message of their sentinel.
func (t *Translator) Messages(tag language.Tag, err error) []string {
	p := message.NewPrinter(tag, message.Catalog(t.catalog))

	var verrs *apperrors.ValidationErrors
	if errors.As(err, &verrs) && !verrs.Empty() {
		msgs := make([]string, len(verrs.Violations))
		for i, v := range verrs.Violations {
			msgs[i] = p.Sprintf(v.Key, v.Args...)
		}
		return msgs
	}

	for _, s := range sentinels {
		if errors.Is(err, s.err) {
			return []string{p.Sprintf(s.key)}
		}
	}
	return []string{p.Sprintf(msgInternal)}
}

const msgInternal = "An unexpected error occurred."

// sentinels is checked in order; the first match names the message.
var sentinels = []struct {
	err error
	key string
}{
	{apperrors.ErrStaleRevision, "The record was changed by another request. Reload it and retry."},
	{apperrors.ErrNotInitialized, "The chart of accounts has not been created yet."},
	{apperrors.ErrParentNotFound, "The parent account was not found."},
	{apperrors.ErrNotFound, "The requested record was not found."},
	{apperrors.ErrDuplicate, "A record with this code already exists."},
	{apperrors.ErrHasChildren, "The account has sub-accounts. Delete them first or cascade."},
	{apperrors.ErrAccountInUse, "The account is used by journal entries."},
	{apperrors.ErrCycleDetected, "An account cannot be moved under itself or its descendants."},
	{apperrors.ErrConflictingFlags, "An account cannot be both debit and credit."},
	{apperrors.ErrIdentifierMismatch, "The code and uuid refer to different records."},
	{apperrors.ErrInvalidIdentifier, "The identifier is missing or malformed."},
	{apperrors.ErrValidation, "The request is invalid."},
}
