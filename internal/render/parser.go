package render

import "strings"

const (
	fenceMarker   = "```"
	headingPrefix = "## "
)

// state is the scan state carried from one line to the next. At most one of
// inCode and inList is true.
type state struct {
	inCode bool
	code   []string
	inList bool
	list   []string
}

// Render parses feedback into display blocks. It never fails; input that is
// not Markdown comes back as paragraphs.
func Render(feedback string) Blocks {
	out := Blocks{}
	var s state
	for _, line := range strings.Split(feedback, "\n") {
		var emitted []Block
		s, emitted = step(s, line)
		out = append(out, emitted...)
	}
	return append(out, finish(s)...)
}

// step consumes one line and returns the next state and any finished blocks.
func step(s state, line string) (state, []Block) {
	var emitted []Block

	if strings.HasPrefix(line, fenceMarker) {
		s, emitted = flushList(s)
		if s.inCode {
			emitted = append(emitted, Code{Content: strings.Join(s.code, "\n")})
			s.code = nil
			s.inCode = false
			return s, emitted
		}
		s.inCode = true
		return s, emitted
	}

	if s.inCode {
		s.code = append(s.code, line)
		return s, nil
	}

	if text, ok := strings.CutPrefix(line, headingPrefix); ok {
		s, emitted = flushList(s)
		return s, append(emitted, Heading{Text: text})
	}

	if item, ok := listItem(line); ok {
		s.list = append(s.list, item)
		s.inList = true
		return s, nil
	}

	s, emitted = flushList(s)
	if strings.TrimSpace(line) != "" {
		emitted = append(emitted, Paragraph{Text: line})
	}
	return s, emitted
}

// finish flushes whatever is still open at end of input. An unterminated
// fence with buffered lines still becomes a code block.
func finish(s state) []Block {
	s, emitted := flushList(s)
	if s.inCode && len(s.code) > 0 {
		emitted = append(emitted, Code{Content: strings.Join(s.code, "\n")})
	}
	return emitted
}

func flushList(s state) (state, []Block) {
	if !s.inList {
		return s, nil
	}
	b := List{Items: s.list}
	s.list = nil
	s.inList = false
	return s, []Block{b}
}

func listItem(line string) (string, bool) {
	if item, ok := strings.CutPrefix(line, "* "); ok {
		return item, true
	}
	return strings.CutPrefix(line, "- ")
}
