package highlighter

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter colours buffer lines with a chroma lexer picked from the file
// name.
type Highlighter struct {
	lexer      chroma.Lexer
	style      *chroma.Style
	version    int
	tokenized  bool
	cache      map[int][]chroma.Token // tokens by buffer line
	styleCache map[chroma.TokenType]lipgloss.Style
	mu         sync.RWMutex
}

// New returns nil when no lexer matches fileName, so plain text is drawn
// without styling.
func New(fileName string, theme string) *Highlighter {
	lexer := lexers.Match(fileName)
	if lexer == nil {
		return nil
	}

	return &Highlighter{
		lexer:      chroma.Coalesce(lexer),
		style:      styles.Get(theme),
		cache:      make(map[int][]chroma.Token),
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// Language is the name of the lexer in use.
func (h *Highlighter) Language() string {
	return h.lexer.Config().Name
}

// Update re-tokenizes lines when version differs from the one last seen.
// Multi-line constructs such as block comments need the whole buffer.
func (h *Highlighter) Update(version int, lines []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.tokenized && h.version == version {
		return
	}
	h.version = version
	h.tokenized = true
	h.cache = make(map[int][]chroma.Token)

	iterator, err := h.lexer.Tokenise(nil, strings.Join(lines, "\n"))
	if err != nil {
		return
	}

	line := 0
	for _, token := range iterator.Tokens() {
		value := token.Value
		for {
			before, after, found := strings.Cut(value, "\n")
			if before != "" {
				h.cache[line] = append(h.cache[line], chroma.Token{Type: token.Type, Value: before})
			}
			if !found {
				break
			}
			line++
			value = after
		}
	}
}

// LineStyles returns one style per rune of the buffer line. It is nil when
// the line has no tokens.
func (h *Highlighter) LineStyles(line int) []lipgloss.Style {
	h.mu.RLock()
	tokens := h.cache[line]
	h.mu.RUnlock()

	if len(tokens) == 0 {
		return nil
	}

	var out []lipgloss.Style
	for _, token := range tokens {
		style := h.styleFor(token.Type)
		for range []rune(token.Value) {
			out = append(out, style)
		}
	}
	return out
}

// styleFor converts a chroma token type to a lipgloss style.
func (h *Highlighter) styleFor(tokenType chroma.TokenType) lipgloss.Style {
	h.mu.Lock()
	defer h.mu.Unlock()

	if style, ok := h.styleCache[tokenType]; ok {
		return style
	}

	entry := h.style.Get(tokenType)

	style := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	h.styleCache[tokenType] = style
	return style
}
