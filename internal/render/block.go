package render

import (
	"encoding/json"
	"fmt"
)

// Kind names a block variant in serialized form.
type Kind string

const (
	KindHeading   Kind = "heading"
	KindParagraph Kind = "paragraph"
	KindList      Kind = "list"
	KindCode      Kind = "code"
)

// Block is one display block. The set of implementations is closed: Heading,
// Paragraph, List and Code.
type Block interface {
	Kind() Kind
	block()
}

// Heading is a "## " section title.
type Heading struct {
	Text string `json:"text"`
}

// Paragraph is a single non-blank line of prose, kept untrimmed.
type Paragraph struct {
	Text string `json:"text"`
}

// List is a run of consecutive "* " or "- " items.
type List struct {
	Items []string `json:"items"`
}

// Code is the raw content between two fence lines, joined by newlines.
type Code struct {
	Content string `json:"content"`
}

func (Heading) Kind() Kind   { return KindHeading }
func (Paragraph) Kind() Kind { return KindParagraph }
func (List) Kind() Kind      { return KindList }
func (Code) Kind() Kind      { return KindCode }

func (Heading) block()   {}
func (Paragraph) block() {}
func (List) block()      {}
func (Code) block()      {}

// wireBlock is the tagged JSON form of every variant.
type wireBlock struct {
	Type    Kind     `json:"type"`
	Text    string   `json:"text,omitempty"`
	Items   []string `json:"items,omitempty"`
	Content string   `json:"content,omitempty"`
}

func toWire(b Block) wireBlock {
	switch v := b.(type) {
	case Heading:
		return wireBlock{Type: KindHeading, Text: v.Text}
	case Paragraph:
		return wireBlock{Type: KindParagraph, Text: v.Text}
	case List:
		return wireBlock{Type: KindList, Items: v.Items}
	case Code:
		return wireBlock{Type: KindCode, Content: v.Content}
	default:
		panic(fmt.Sprintf("render: unknown block %T", b))
	}
}

// Blocks is an ordered block sequence with a tagged JSON encoding.
type Blocks []Block

func (bs Blocks) MarshalJSON() ([]byte, error) {
	out := make([]wireBlock, len(bs))
	for i, b := range bs {
		out[i] = toWire(b)
	}
	return json.Marshal(out)
}

func (bs *Blocks) UnmarshalJSON(data []byte) error {
	var in []wireBlock
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	out := make(Blocks, 0, len(in))
	for _, w := range in {
		switch w.Type {
		case KindHeading:
			out = append(out, Heading{Text: w.Text})
		case KindParagraph:
			out = append(out, Paragraph{Text: w.Text})
		case KindList:
			out = append(out, List{Items: w.Items})
		case KindCode:
			out = append(out, Code{Content: w.Content})
		default:
			return fmt.Errorf("unknown block type %q", w.Type)
		}
	}
	*bs = out
	return nil
}
