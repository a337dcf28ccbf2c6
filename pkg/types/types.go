package types

import (
	"errors"

	"github.com/google/uuid"
)

// Validation errors
var (
	ErrInvalidSpan      = errors.New("span end must not precede span begin")
	ErrEmptyCategory    = errors.New("relation category cannot be empty")
	ErrViewNotFound     = errors.New("annotation view not found")
	ErrNilFeatureValue  = errors.New("feature has a nil value")
	ErrEmptyDocumentID  = errors.New("document id cannot be empty")
	ErrMissingArguments = errors.New("relation requires two arguments")
)

// Span is a half-open character offset range [Begin, End) over a document's text.
// Spans are value types and must never be mutated after creation.
type Span struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// Validate checks that the span is well formed.
func (s Span) Validate() error {
	if s.End < s.Begin || s.Begin < 0 {
		return ErrInvalidSpan
	}
	return nil
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return other.Begin >= s.Begin && other.End <= s.End
}

// ArgumentMention is an entity mention that may take part in a binary relation.
// Mentions are produced by upstream annotation and are read-only here.
type ArgumentMention struct {
	Span
	Text string `json:"text,omitempty"`
}

// Role names carried on relation arguments. The values are wire-compatible with
// existing annotation data and must not change.
const (
	RoleArgument  = "Argument"
	RoleRelatedTo = "Related_to"
)

// RelationArgument pairs a mention with its role within a relation.
type RelationArgument struct {
	Mention ArgumentMention `json:"mention"`
	Role    string          `json:"role"`
}

// RelationRecord is a directional binary relation between two argument mentions.
// Argument order is semantic: the mention holding RoleArgument is the relation's
// first argument regardless of its position in the Arg1/Arg2 slots.
type RelationRecord struct {
	UUID     string           `json:"uuid,omitempty"`
	Arg1     RelationArgument `json:"arg1"`
	Arg2     RelationArgument `json:"arg2"`
	Category string           `json:"category"`
}

// NewRelation builds a relation with first in RoleArgument and second in
// RoleRelatedTo, assigning a fresh UUID.
func NewRelation(first, second ArgumentMention, category string) RelationRecord {
	return RelationRecord{
		UUID:     uuid.NewString(),
		Arg1:     RelationArgument{Mention: first, Role: RoleArgument},
		Arg2:     RelationArgument{Mention: second, Role: RoleRelatedTo},
		Category: category,
	}
}

// Arguments returns the relation's arguments normalized by role: the mention
// marked RoleArgument first, its counterpart second. An empty role on Arg1 is
// treated as RoleArgument, matching how legacy annotation data is stored.
func (r RelationRecord) Arguments() (first, second ArgumentMention) {
	if r.Arg1.Role == "" || r.Arg1.Role == RoleArgument {
		return r.Arg1.Mention, r.Arg2.Mention
	}
	return r.Arg2.Mention, r.Arg1.Mention
}

// Validate checks if the RelationRecord has all required fields set.
func (r RelationRecord) Validate() error {
	if r.Category == "" {
		return ErrEmptyCategory
	}
	if err := r.Arg1.Mention.Validate(); err != nil {
		return err
	}
	if err := r.Arg2.Mention.Validate(); err != nil {
		return err
	}
	return nil
}

// AnnotationView is an alternate set of annotations over the same document text,
// typically the manually annotated gold standard.
type AnnotationView struct {
	Name      string            `json:"name"`
	Mentions  []ArgumentMention `json:"mentions,omitempty"`
	Relations []RelationRecord  `json:"relations,omitempty"`
}

// MentionsWithin returns the view's mentions covered by the sentence span,
// in document order.
func (v *AnnotationView) MentionsWithin(sentence Span) []ArgumentMention {
	return mentionsWithin(v.Mentions, sentence)
}

// Document is a text with sentence boundaries and entity mentions supplied by
// upstream annotators. Relations holds system-produced records during
// extraction; Views holds alternate annotation sets selectable by name.
type Document struct {
	ID        string                     `json:"id"`
	Text      string                     `json:"text"`
	Sentences []Span                     `json:"sentences"`
	Mentions  []ArgumentMention          `json:"mentions,omitempty"`
	Relations []RelationRecord           `json:"relations,omitempty"`
	Views     map[string]*AnnotationView `json:"views,omitempty"`
}

// Validate checks if the Document has all required fields set.
func (d *Document) Validate() error {
	if d.ID == "" {
		return ErrEmptyDocumentID
	}
	return nil
}

// View resolves an annotation view by name.
func (d *Document) View(name string) (*AnnotationView, error) {
	v, ok := d.Views[name]
	if !ok {
		return nil, ErrViewNotFound
	}
	return v, nil
}

// MentionsWithin returns the document's mentions covered by the sentence span,
// in document order.
func (d *Document) MentionsWithin(sentence Span) []ArgumentMention {
	return mentionsWithin(d.Mentions, sentence)
}

// CoveredText returns the document text under the span, clamped to bounds.
func (d *Document) CoveredText(s Span) string {
	begin, end := s.Begin, s.End
	if begin < 0 {
		begin = 0
	}
	if end > len(d.Text) {
		end = len(d.Text)
	}
	if begin >= end {
		return ""
	}
	return d.Text[begin:end]
}

// AppendRelation adds a newly extracted relation to the document's relation
// store. Records are append-only and never mutated afterwards.
func (d *Document) AppendRelation(r RelationRecord) {
	d.Relations = append(d.Relations, r)
}

func mentionsWithin(mentions []ArgumentMention, sentence Span) []ArgumentMention {
	var covered []ArgumentMention
	for _, m := range mentions {
		if sentence.Contains(m.Span) {
			covered = append(covered, m)
		}
	}
	return covered
}
