package model

// DocTag is one parsed tag occurrence. The set of implementations is closed:
// *ParamTag, *TypedTag and *GenericTag.
type DocTag interface {
	// Name is the tag kind without the leading "@", e.g. "param".
	Name() string
	// Text is the verbatim tag text with the "@name" token removed.
	Text() string

	docTag()
}

// ParamTag is "@param type $variable description".
type ParamTag struct {
	Type        string // may be a "|" union, "" when absent
	Variable    string // without the leading "$", "" when it could not be found
	Description string
	Raw         string
}

func (*ParamTag) Name() string   { return "param" }
func (t *ParamTag) Text() string { return t.Raw }
func (*ParamTag) docTag()        {}

// TypedTag is "@var", "@return" or "@throws" followed by "type description".
type TypedTag struct {
	Kind        string
	Type        string
	Description string
	Raw         string
}

func (t *TypedTag) Name() string { return t.Kind }
func (t *TypedTag) Text() string { return t.Raw }
func (*TypedTag) docTag()        {}

// GenericTag carries no structured payload.
type GenericTag struct {
	Kind string
	Raw  string
}

func (t *GenericTag) Name() string { return t.Kind }
func (t *GenericTag) Text() string { return t.Raw }
func (*GenericTag) docTag()        {}

// TagGroup is every tag of one kind, in source order.
type TagGroup struct {
	Kind string
	Tags []DocTag
}

// DocBlock is a parsed structured comment. The zero value is the empty
// docblock.
type DocBlock struct {
	Summary     string
	Description string
	Tags        []TagGroup // kinds in first-seen order
}

// IsEmpty reports whether the docblock has neither a summary nor any tag.
func (d DocBlock) IsEmpty() bool {
	return d.Summary == "" && len(d.Tags) == 0
}

// Add appends tag to the group of its kind, creating the group on first use.
func (d *DocBlock) Add(tag DocTag) {
	for i := range d.Tags {
		if d.Tags[i].Kind == tag.Name() {
			d.Tags[i].Tags = append(d.Tags[i].Tags, tag)
			return
		}
	}
	d.Tags = append(d.Tags, TagGroup{Kind: tag.Name(), Tags: []DocTag{tag}})
}

// Group returns the tags of kind, or nil.
func (d DocBlock) Group(kind string) []DocTag {
	for _, g := range d.Tags {
		if g.Kind == kind {
			return g.Tags
		}
	}
	return nil
}

// Kinds returns the tag kinds in first-seen order.
func (d DocBlock) Kinds() []string {
	out := make([]string, len(d.Tags))
	for i, g := range d.Tags {
		out[i] = g.Kind
	}
	return out
}

// TagCount is the total number of tags across all kinds.
func (d DocBlock) TagCount() int {
	n := 0
	for _, g := range d.Tags {
		n += len(g.Tags)
	}
	return n
}

// Clone copies the group slices. Tags themselves are immutable once parsed
// and are shared.
func (d DocBlock) Clone() DocBlock {
	if d.Tags == nil {
		return d
	}
	groups := make([]TagGroup, len(d.Tags))
	for i, g := range d.Tags {
		groups[i] = TagGroup{Kind: g.Kind, Tags: append([]DocTag(nil), g.Tags...)}
	}
	d.Tags = groups
	return d
}
