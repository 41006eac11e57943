// Package landing owns the markdown-with-widget-token representation of a
// household's landing page: splitting stored markdown into renderable
// segments, and converting between the persisted token form and the
// rich-editor markup form. Everything here is a pure string transformation;
// malformed tokens degrade to literal text rather than erroring.
package landing

import (
	"fmt"
	"regexp"
	"strings"
)

// WidgetKey identifies one of the fixed set of live widgets that can be
// embedded in landing page markdown as a {{widget:<key>}} token.
type WidgetKey string

const (
	WidgetTasksOverview    WidgetKey = "tasks-overview"
	WidgetTasksForYou      WidgetKey = "tasks-for-you"
	WidgetYourBalance      WidgetKey = "your-balance"
	WidgetHouseholdBalance WidgetKey = "household-balance"
	WidgetRecentActivity   WidgetKey = "recent-activity"
	WidgetFairnessScore    WidgetKey = "fairness-score"
	WidgetExpensesByMonth  WidgetKey = "expenses-by-month"
	WidgetFairnessByMember WidgetKey = "fairness-by-member"
)

// editorTags maps each widget key to the element name the rich editor uses
// for it. The set is closed; adding a widget means adding a row here.
var editorTags = map[WidgetKey]string{
	WidgetTasksOverview:    "LandingWidgetTasksOverview",
	WidgetTasksForYou:      "LandingWidgetTasksForYou",
	WidgetYourBalance:      "LandingWidgetYourBalance",
	WidgetHouseholdBalance: "LandingWidgetHouseholdBalance",
	WidgetRecentActivity:   "LandingWidgetRecentActivity",
	WidgetFairnessScore:    "LandingWidgetFairnessScore",
	WidgetExpensesByMonth:  "LandingWidgetExpensesByMonth",
	WidgetFairnessByMember: "LandingWidgetFairnessByMember",
}

// keyOrder fixes iteration order for the per-key replacement passes so
// output is deterministic.
var keyOrder = []WidgetKey{
	WidgetTasksOverview,
	WidgetTasksForYou,
	WidgetYourBalance,
	WidgetHouseholdBalance,
	WidgetRecentActivity,
	WidgetFairnessScore,
	WidgetExpensesByMonth,
	WidgetFairnessByMember,
}

// Keys returns the closed widget key set in canonical order.
func Keys() []WidgetKey {
	out := make([]WidgetKey, len(keyOrder))
	copy(out, keyOrder)
	return out
}

// KnownKey reports whether s names a widget in the closed set.
func KnownKey(s string) bool {
	_, ok := editorTags[WidgetKey(s)]
	return ok
}

// Tag returns the editor element name for a known key, or "" otherwise.
func Tag(key WidgetKey) string {
	return editorTags[key]
}

// Token returns the canonical persisted form of a widget token.
func Token(key WidgetKey) string {
	return fmt.Sprintf("{{widget:%s}}", key)
}

// tokenPattern matches any widget-shaped token; the captured key is checked
// against the known set per match. Whitespace inside the braces is tolerated.
var tokenPattern = regexp.MustCompile(`\{\{\s*widget:([a-z-]+)\s*\}\}`)

// conversions holds the compiled patterns for one widget key's token and
// editor-tag forms.
type conversions struct {
	token     *regexp.Regexp // {{ widget:key }}
	selfClose *regexp.Regexp // <Tag ... />
	emptyPair *regexp.Regexp // <Tag ...></Tag>
}

var convByKey = func() map[WidgetKey]conversions {
	m := make(map[WidgetKey]conversions, len(editorTags))
	for key, tag := range editorTags {
		m[key] = conversions{
			token:     regexp.MustCompile(`\{\{\s*widget:` + regexp.QuoteMeta(string(key)) + `\s*\}\}`),
			selfClose: regexp.MustCompile(`<` + tag + `(\s[^>]*?)?\s*/>`),
			emptyPair: regexp.MustCompile(`<` + tag + `(\s[^>]*?)?>\s*</` + tag + `>`),
		}
	}
	return m
}()

// SavedMarkdown normalizes the nullable persisted markdown column: nil
// becomes the empty string.
func SavedMarkdown(raw *string) string {
	if raw == nil {
		return ""
	}
	return *raw
}

// EffectiveMarkdown returns the fallback template when nothing meaningful
// has been saved. The fallback is display-only; it is never persisted until
// an owner explicitly saves.
func EffectiveMarkdown(saved, fallback string) string {
	if strings.TrimSpace(saved) == "" {
		return fallback
	}
	return saved
}

// DefaultMarkdown builds the fallback landing page for a household that has
// not customized one yet.
func DefaultMarkdown(householdName string) string {
	return fmt.Sprintf(`# %s

Welcome home. This page is yours to edit.

{{widget:tasks-overview}}

{{widget:tasks-for-you}}

## Money

{{widget:your-balance}}

{{widget:expenses-by-month}}

## What's been happening

{{widget:recent-activity}}
`, householdName)
}

// CanEdit reports whether a household role may edit the landing page. Only
// owners may; the store layer re-checks this on write.
func CanEdit(role string) bool {
	return role == "owner"
}

// ShouldResetDraftOnClose reports whether an in-progress editor draft must
// be discarded: only when the editor has closed and no save is in flight.
// A draft is never clobbered while its save request is still outstanding.
func ShouldResetDraftOnClose(isOpen, isSaving bool) bool {
	return !isOpen && !isSaving
}

// SegmentKind discriminates the two segment variants.
type SegmentKind string

const (
	SegmentMarkdown SegmentKind = "markdown"
	SegmentWidget   SegmentKind = "widget"
)

// Segment is one slice of a landing page: either a run of markdown prose or
// a placeholder for a live widget.
type Segment struct {
	Kind SegmentKind
	Text string    // set when Kind == SegmentMarkdown
	Key  WidgetKey // set when Kind == SegmentWidget
	raw  string    // original matched token text, for lossless reconstruction
}

// Reconstruct returns the exact source text this segment was cut from.
// Tokens written with padding inside the braces reconstruct as written.
func (s Segment) Reconstruct() string {
	if s.Kind == SegmentWidget {
		if s.raw != "" {
			return s.raw
		}
		return Token(s.Key)
	}
	return s.Text
}

// Split partitions markdown into an ordered segment sequence. Tokens whose
// key is outside the known set stay embedded in the surrounding markdown
// text. Zero-length markdown segments are never emitted, except that input
// with no recognized token always yields exactly one markdown segment, even
// for the empty string.
//
// The split is lossless: joining each segment's Reconstruct output in order
// reproduces the input byte-for-byte.
func Split(markdown string) []Segment {
	var segs []Segment
	last := 0
	for _, m := range tokenPattern.FindAllStringSubmatchIndex(markdown, -1) {
		key := markdown[m[2]:m[3]]
		if !KnownKey(key) {
			continue
		}
		if m[0] > last {
			segs = append(segs, Segment{Kind: SegmentMarkdown, Text: markdown[last:m[0]]})
		}
		segs = append(segs, Segment{Kind: SegmentWidget, Key: WidgetKey(key), raw: markdown[m[0]:m[1]]})
		last = m[1]
	}
	if last < len(markdown) || len(segs) == 0 {
		segs = append(segs, Segment{Kind: SegmentMarkdown, Text: markdown[last:]})
	}
	return segs
}

// ExtractKeys returns the recognized widget keys in markdown, in order of
// appearance. Unknown keys are excluded.
func ExtractKeys(markdown string) []WidgetKey {
	var keys []WidgetKey
	for _, seg := range Split(markdown) {
		if seg.Kind == SegmentWidget {
			keys = append(keys, seg.Key)
		}
	}
	return keys
}

// ToEditorMarkup rewrites each well-formed widget token into the editor's
// self-closing element form. Keys are disjoint, so the per-key passes cannot
// interfere with one another.
func ToEditorMarkup(markdown string) string {
	out := markdown
	for _, key := range keyOrder {
		out = convByKey[key].token.ReplaceAllString(out, "<"+editorTags[key]+" />")
	}
	return out
}

// FromEditorMarkup is the inverse of ToEditorMarkup: both the self-closing
// and empty-element forms of each known tag collapse to the canonical token,
// ignoring any attributes inside the tag. Tags that match neither form are
// passed through untouched.
func FromEditorMarkup(markup string) string {
	out := markup
	for _, key := range keyOrder {
		conv := convByKey[key]
		token := Token(key)
		out = conv.emptyPair.ReplaceAllString(out, token)
		out = conv.selfClose.ReplaceAllString(out, token)
	}
	return out
}
