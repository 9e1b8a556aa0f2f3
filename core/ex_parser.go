package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

type AddressKind int

const (
	AddrCurrent AddressKind = iota // . or an offset alone
	AddrNumber
	AddrLast           // $
	AddrSearchForward  // /re/
	AddrSearchBackward // ?re?
)

// Address is one line address of an ex command.
type Address struct {
	Kind    AddressKind
	Line    int
	Pattern string
	Offset  int
}

// Range holds the zero, one or two addresses before a command. Semicolon
// makes the second address relative to the first.
type Range struct {
	Addrs     []Address
	Semicolon bool
}

// ExCommand is a parsed command line.
type ExCommand struct {
	Range       Range
	Name        string // canonical name, "" for a bare address
	Bang        bool
	Dest        *Address // m, co, t
	Pattern     string   // s, g, v
	Replacement string   // s
	Global      bool     // s///g
	Sub         string   // g, v
	Arg         string   // file name or set options
}

type exName struct {
	full string
	min  int
}

// exNames lists the supported commands with the shortest abbreviation each
// accepts. Order matters for completion only.
var exNames = []exName{
	{"substitute", 1},
	{"delete", 1},
	{"move", 1},
	{"copy", 2},
	{"t", 1},
	{"print", 1},
	{"global", 1},
	{"v", 1},
	{"write", 1},
	{"wq", 2},
	{"quit", 1},
	{"xit", 1},
	{"read", 1},
	{"join", 1},
	{"file", 1},
	{"undo", 1},
	{"redo", 3},
	{"set", 2},
}

var canonical = map[string]string{
	"substitute": "s",
	"delete":     "d",
	"move":       "m",
	"copy":       "co",
	"t":          "t",
	"print":      "p",
	"global":     "g",
	"v":          "v",
	"write":      "w",
	"wq":         "wq",
	"quit":       "q",
	"xit":        "x",
	"read":       "r",
	"join":       "j",
	"file":       "f",
	"undo":       "u",
	"redo":       "red",
	"set":        "set",
}

func lookupExName(word string) (string, bool) {
	for _, n := range exNames {
		if len(word) >= n.min && strings.HasPrefix(n.full, word) {
			return canonical[n.full], true
		}
	}
	return "", false
}

// CompleteExName returns the full command name for a prefix, or "" if none
// matches.
func CompleteExName(prefix string) string {
	if prefix == "" {
		return ""
	}
	for _, n := range exNames {
		if strings.HasPrefix(n.full, prefix) {
			return n.full
		}
	}
	return ""
}

type exParser struct {
	s   []rune
	pos int
}

func (p *exParser) peek() rune {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *exParser) eof() bool { return p.pos >= len(p.s) }

func (p *exParser) skipSpaces() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
}

func (p *exParser) rest() string {
	return strings.TrimSpace(string(p.s[p.pos:]))
}

func invalid(format string, args ...any) error {
	return &Error{id: ErrInvalidCommandId, err: fmt.Errorf("%w: "+format, append([]any{ErrInvalidCommand}, args...)...)}
}

// ParseEx parses a command line without the leading ':'.
func ParseEx(line string) (ExCommand, error) {
	p := &exParser{s: []rune(line)}
	var cmd ExCommand

	for p.peek() == ':' || unicode.IsSpace(p.peek()) {
		p.pos++
	}

	rng, err := p.parseRange()
	if err != nil {
		return cmd, err
	}
	cmd.Range = rng
	p.skipSpaces()

	if p.eof() {
		return cmd, nil
	}

	if err := p.parseName(&cmd); err != nil {
		return cmd, err
	}

	switch cmd.Name {
	case "s":
		err = p.parseSubstitute(&cmd)
	case "m", "co", "t":
		p.skipSpaces()
		addr, ok, aerr := p.parseAddress()
		switch {
		case aerr != nil:
			err = aerr
		case !ok:
			err = invalid("%s requires a destination", cmd.Name)
		default:
			cmd.Dest = &addr
		}
	case "g", "v":
		if cmd.Name == "g" && cmd.Bang {
			cmd.Name, cmd.Bang = "v", false
		}
		var delim rune
		delim, err = p.delimiter()
		if err == nil {
			cmd.Pattern = p.until(delim)
			cmd.Sub = p.rest()
		}
		return cmd, err
	case "w", "r", "f", "set", "wq", "x":
		cmd.Arg = p.rest()
		return cmd, nil
	}
	if err != nil {
		return cmd, err
	}

	if rest := p.rest(); rest != "" {
		return cmd, invalid("trailing characters %q", rest)
	}
	return cmd, nil
}

func (p *exParser) parseName(cmd *ExCommand) error {
	if p.peek() == '=' {
		p.pos++
		cmd.Name = "="
		return nil
	}

	start := p.pos
	for !p.eof() && unicode.IsLetter(p.peek()) {
		p.pos++
	}
	word := string(p.s[start:p.pos])
	if word == "" {
		return invalid("%q is not an editor command", string(p.s[start:]))
	}

	name, ok := lookupExName(word)
	if !ok {
		return invalid("%q is not an editor command", word)
	}
	cmd.Name = name

	if p.peek() == '!' {
		p.pos++
		cmd.Bang = true
	}
	return nil
}

func (p *exParser) parseRange() (Range, error) {
	var rng Range
	p.skipSpaces()

	if p.peek() == '%' {
		p.pos++
		rng.Addrs = []Address{{Kind: AddrNumber, Line: 1}, {Kind: AddrLast}}
		return rng, nil
	}

	first, ok, err := p.parseAddress()
	if err != nil {
		return rng, err
	}
	if ok {
		rng.Addrs = append(rng.Addrs, first)
	}

	p.skipSpaces()
	if c := p.peek(); c == ',' || c == ';' {
		p.pos++
		rng.Semicolon = c == ';'
		if !ok {
			rng.Addrs = append(rng.Addrs, Address{Kind: AddrCurrent})
		}
		p.skipSpaces()
		second, ok2, err := p.parseAddress()
		if err != nil {
			return rng, err
		}
		if !ok2 {
			second = Address{Kind: AddrCurrent}
		}
		rng.Addrs = append(rng.Addrs, second)
	}
	return rng, nil
}

// parseAddress reads one address with its offsets. ok is false when no
// address starts at the current position.
func (p *exParser) parseAddress() (Address, bool, error) {
	var addr Address
	ok := true

	switch c := p.peek(); {
	case c >= '0' && c <= '9':
		addr.Kind = AddrNumber
		addr.Line = p.number()
	case c == '.':
		p.pos++
		addr.Kind = AddrCurrent
	case c == '$':
		p.pos++
		addr.Kind = AddrLast
	case c == '/' || c == '?':
		p.pos++
		addr.Kind = AddrSearchForward
		if c == '?' {
			addr.Kind = AddrSearchBackward
		}
		addr.Pattern = p.until(c)
	case c == '+' || c == '-':
		addr.Kind = AddrCurrent
	default:
		ok = false
	}
	if !ok {
		return addr, false, nil
	}

	for {
		p.skipSpaces()
		c := p.peek()
		if c != '+' && c != '-' {
			break
		}
		p.pos++
		n := 1
		if d := p.peek(); d >= '0' && d <= '9' {
			n = p.number()
		}
		if c == '-' {
			n = -n
		}
		addr.Offset = addOffset(addr.Offset, n)
	}
	return addr, true, nil
}

// addOffset sums address offsets, saturating instead of wrapping.
func addOffset(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}

func (p *exParser) number() int {
	start := p.pos
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		p.pos++
	}
	n, err := strconv.Atoi(string(p.s[start:p.pos]))
	if err != nil {
		// only overflow gets here; treat as past the end
		return math.MaxInt
	}
	return n
}

// until reads up to an unescaped delim, consuming it. An escaped delimiter
// loses its backslash; other escapes are kept for the regexp.
func (p *exParser) until(delim rune) string {
	var sb strings.Builder
	for !p.eof() {
		c := p.peek()
		p.pos++
		if c == delim {
			return sb.String()
		}
		if c == '\\' && !p.eof() {
			next := p.peek()
			p.pos++
			if next != delim {
				sb.WriteRune('\\')
			}
			sb.WriteRune(next)
			continue
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

func (p *exParser) delimiter() (rune, error) {
	p.skipSpaces()
	d := p.peek()
	if d == 0 || d == '\\' || d == '"' || d == '|' || unicode.IsLetter(d) || unicode.IsDigit(d) {
		return 0, invalid("missing pattern delimiter")
	}
	p.pos++
	return d, nil
}

func (p *exParser) parseSubstitute(cmd *ExCommand) error {
	delim, err := p.delimiter()
	if err != nil {
		return err
	}
	cmd.Pattern = p.until(delim)
	cmd.Replacement = p.until(delim)

	for !p.eof() {
		switch c := p.peek(); c {
		case 'g':
			cmd.Global = true
		case ' ', '\t':
		default:
			return invalid("unknown substitute flag %q", c)
		}
		p.pos++
	}
	return nil
}
