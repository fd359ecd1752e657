package present

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/MaJuniors/voice-commerce/internal/api"
)

// Style selects the color used for a history line.
type Style int

const (
	StyleInfo Style = iota
	StyleUser
	StyleReply
	StyleError
	StyleMuted
)

var styleColors = map[Style]*color.Color{
	StyleInfo:  color.New(color.FgCyan),
	StyleUser:  color.New(color.FgGreen, color.Bold),
	StyleReply: color.New(color.FgWhite),
	StyleError: color.New(color.FgRed, color.Bold),
	StyleMuted: color.New(color.FgHiBlack),
}

// Line is one rendered history line.
type Line struct {
	Text  string
	Style Style
}

// ProductBlock is one rendered search result block.
type ProductBlock struct {
	Title string
	Items []api.Product
}

// Presenter writes the interaction history to an output stream while keeping
// an in-memory record of everything rendered. It is safe for concurrent use
// by the pipeline stages.
type Presenter struct {
	mu     sync.Mutex
	out    io.Writer
	lines  []Line
	blocks []ProductBlock
}

// NewPresenter creates a presenter writing to out.
func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

// Log appends one styled line to the history.
func (p *Presenter) Log(text string, style Style) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.lines = append(p.lines, Line{Text: text, Style: style})

	c, ok := styleColors[style]
	if !ok {
		c = styleColors[StyleInfo]
	}
	c.Fprintln(p.out, text)
}

// RenderProducts appends a product block for a search result. Missing item
// fields render as placeholders instead of empty cells, and when the result
// carries no keyword the original query titles the block. An empty result
// renders a single muted line instead of a block.
func (p *Presenter) RenderProducts(query string, result *api.SearchResult) {
	keyword := query
	if result != nil && result.Keyword != "" {
		keyword = result.Keyword
	}

	if result == nil || len(result.Items) == 0 {
		p.Log(fmt.Sprintf("Tidak ada produk untuk %q", keyword), StyleMuted)
		return
	}

	title := fmt.Sprintf("Hasil pencarian %q", keyword)

	p.mu.Lock()
	defer p.mu.Unlock()

	p.blocks = append(p.blocks, ProductBlock{Title: title, Items: result.Items})
	p.lines = append(p.lines, Line{Text: title, Style: StyleInfo})

	styleColors[StyleInfo].Fprintln(p.out, title)

	for i, item := range result.Items {
		name := item.Name
		if name == "" {
			name = "(tanpa nama)"
		}
		price := item.Price
		if price == "" {
			price = "Rp -"
		}
		url := item.URL
		if url == "" {
			url = "#"
		}

		line := fmt.Sprintf("  %d. %s  %s  %s", i+1, name, price, url)
		p.lines = append(p.lines, Line{Text: line, Style: StyleReply})
		styleColors[StyleReply].Fprintln(p.out, line)

		if item.Image != "" {
			imgLine := "     " + item.Image
			p.lines = append(p.lines, Line{Text: imgLine, Style: StyleMuted})
			styleColors[StyleMuted].Fprintln(p.out, imgLine)
		}
	}
}

// Lines returns a copy of every rendered line, in render order.
func (p *Presenter) Lines() []Line {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Line, len(p.lines))
	copy(out, p.lines)
	return out
}

// Blocks returns a copy of every rendered product block, in render order.
func (p *Presenter) Blocks() []ProductBlock {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]ProductBlock, len(p.blocks))
	copy(out, p.blocks)
	return out
}
