package app

import (
	"fmt"
	"regexp"
	"strings"
)

// NodeKind discriminates the three value variants a script node can hold.
type NodeKind int

const (
	// KindScalar is a single-line string value (`key: value`).
	KindScalar NodeKind = iota
	// KindText is a multi-line string value supplied as an indented block.
	KindText
	// KindBlock is an ordered sequence of keyed child nodes.
	KindBlock
)

func (k NodeKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindText:
		return "text"
	case KindBlock:
		return "block"
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is one entry of the parsed set description tree. Keys are not
// unique: repeated keys at the same level accumulate in encounter order,
// which is how multiple cards under one set are represented.
type Node struct {
	Key      string
	Kind     NodeKind
	Value    string  // KindScalar and KindText
	Children []*Node // KindBlock
	Line     int
}

// Scalar returns the single-line value, failing on any other variant.
func (n *Node) Scalar() (string, error) {
	if n.Kind != KindScalar {
		return "", fmt.Errorf("node %q at line %d is %s, not scalar", n.Key, n.Line, n.Kind)
	}
	return n.Value, nil
}

// Text returns the multi-line value, failing on any other variant.
func (n *Node) Text() (string, error) {
	if n.Kind != KindText {
		return "", fmt.Errorf("node %q at line %d is %s, not text", n.Key, n.Line, n.Kind)
	}
	return n.Value, nil
}

// Nodes returns the ordered children, failing on any other variant.
func (n *Node) Nodes() ([]*Node, error) {
	if n.Kind != KindBlock {
		return nil, fmt.Errorf("node %q at line %d is %s, not block", n.Key, n.Line, n.Kind)
	}
	return n.Children, nil
}

// All returns every child with the given key, in encounter order.
// Leaf nodes have no children.
func (n *Node) All(key string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Key == key {
			out = append(out, c)
		}
	}
	return out
}

// First returns the first child with the given key, or nil.
func (n *Node) First(key string) *Node {
	for _, c := range n.Children {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// Keys are lowercase words in MSE files ("set info", "rule text 2").
// Anything else on a line, colons included, is value content.
var scriptKeyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _-]*$`)

type scriptLine struct {
	number int
	level  int
	text   string
}

type scriptScan struct {
	lines []scriptLine
	unit  string // one level of indentation, e.g. "\t" or "  "
}

// ParseScript parses the set description text into a tree. The grammar
// is line-based: `key:value` is a scalar child, `key:` opens an indented
// block which is either a nested keyed block (every direct child line is
// itself keyed) or one multi-line string value. Blank lines and lines
// starting with '#' are skipped. The indentation unit is inferred from
// the first indented line and must be used consistently.
func ParseScript(text string) (*Node, error) {
	scan, err := scanScript(text)
	if err != nil {
		return nil, err
	}

	root := &Node{Kind: KindBlock, Line: 1}
	type frame struct {
		level int
		node  *Node
	}
	stack := []frame{{level: -1, node: root}}

	i := 0
	for i < len(scan.lines) {
		ln := scan.lines[i]
		for len(stack) > 1 && stack[len(stack)-1].level >= ln.level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		if ln.level != parent.level+1 {
			return nil, &SyntaxError{
				Line:    ln.number,
				Column:  ln.level*len(scan.unit) + 1,
				Message: "line indented deeper than any valid parent",
			}
		}

		key, value, keyed := splitScriptKey(ln.text)
		if !keyed {
			return nil, &SyntaxError{
				Line:    ln.number,
				Column:  ln.level*len(scan.unit) + 1,
				Message: fmt.Sprintf("expected key: value, got %q", ln.text),
			}
		}

		if value != "" {
			parent.node.Children = append(parent.node.Children, &Node{
				Key: key, Kind: KindScalar, Value: value, Line: ln.number,
			})
			i++
			continue
		}

		// Empty value: the block below decides the variant.
		end := i + 1
		for end < len(scan.lines) && scan.lines[end].level > ln.level {
			end++
		}
		sub := scan.lines[i+1 : end]

		switch {
		case len(sub) == 0:
			parent.node.Children = append(parent.node.Children, &Node{
				Key: key, Kind: KindScalar, Line: ln.number,
			})
			i++
		case blockIsKeyed(sub, ln.level+1):
			child := &Node{Key: key, Kind: KindBlock, Line: ln.number}
			parent.node.Children = append(parent.node.Children, child)
			stack = append(stack, frame{level: ln.level, node: child})
			i++
		default:
			parent.node.Children = append(parent.node.Children, &Node{
				Key:   key,
				Kind:  KindText,
				Value: joinTextBlock(sub, ln.level+1, scan.unit),
				Line:  ln.number,
			})
			i = end
		}
	}
	return root, nil
}

func scanScript(text string) (*scriptScan, error) {
	scan := &scriptScan{}
	var unitChar byte
	unitWidth := 0

	for idx, raw := range strings.Split(text, "\n") {
		number := idx + 1
		width := 0
		for width < len(raw) && (raw[width] == '\t' || raw[width] == ' ') {
			width++
		}
		body := raw[width:]
		if strings.TrimSpace(body) == "" || strings.HasPrefix(body, "#") {
			continue
		}

		level := 0
		if width > 0 {
			prefix := raw[:width]
			if strings.ContainsRune(prefix, '\t') && strings.ContainsRune(prefix, ' ') {
				return nil, &SyntaxError{Line: number, Column: 1, Message: "indentation mixes tabs and spaces"}
			}
			if unitWidth == 0 {
				unitChar = prefix[0]
				unitWidth = width
				scan.unit = prefix
			}
			if prefix[0] != unitChar {
				return nil, &SyntaxError{Line: number, Column: 1, Message: "indentation mixes tabs and spaces"}
			}
			if width%unitWidth != 0 {
				return nil, &SyntaxError{
					Line:    number,
					Column:  width + 1,
					Message: fmt.Sprintf("indentation width %d is not a multiple of %d", width, unitWidth),
				}
			}
			level = width / unitWidth
		}

		scan.lines = append(scan.lines, scriptLine{number: number, level: level, text: body})
	}
	return scan, nil
}

// splitScriptKey splits a line at its first colon. Only the first colon
// counts, and only when everything before it looks like a key; a line
// such as "{T}: Add {G}." is value content, not a keyed line.
func splitScriptKey(text string) (key, value string, ok bool) {
	idx := strings.IndexByte(text, ':')
	if idx <= 0 {
		return "", "", false
	}
	key = text[:idx]
	if !scriptKeyPattern.MatchString(key) {
		return "", "", false
	}
	value = strings.TrimPrefix(text[idx+1:], " ")
	return key, value, true
}

// blockIsKeyed reports whether an indented block is a nested keyed block
// rather than a multi-line string: every line at the block's own level
// must itself be keyed, and at least one such line must exist.
func blockIsKeyed(sub []scriptLine, level int) bool {
	direct := 0
	for _, ln := range sub {
		if ln.level != level {
			continue
		}
		if _, _, ok := splitScriptKey(ln.text); !ok {
			return false
		}
		direct++
	}
	return direct > 0
}

// joinTextBlock reassembles a multi-line value. Indentation deeper than
// the block's base level is content and is reproduced with the unit.
func joinTextBlock(sub []scriptLine, base int, unit string) string {
	parts := make([]string, len(sub))
	for i, ln := range sub {
		parts[i] = strings.Repeat(unit, ln.level-base) + ln.text
	}
	return strings.Join(parts, "\n")
}
