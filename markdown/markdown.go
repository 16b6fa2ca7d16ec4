// Package markdown parses the blog shell's markdown subset into block
// elements and renders them as HTML or as a templ component.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"iter"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

// Kind identifies the type of a rendered block.
type Kind int

const (
	Paragraph Kind = iota
	Heading
	ListItem
	Blockquote
	CodeBlock
	Rule
	Spacer
)

var kindNames = [...]string{"paragraph", "heading", "list-item", "blockquote", "code-block", "rule", "spacer"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Block is one structural unit of a rendered document.
type Block struct {
	Kind Kind

	// Headings.
	Level int
	ID    string
	Text  string // raw, not inline formatted

	// Paragraphs and list items.
	HTML    string
	Ordered bool

	// Blockquotes: one inline-formatted paragraph per quoted line.
	Lines []string

	// Code blocks.
	Language string
	Code     string
}

var (
	reBold        = regexp.MustCompile(`\*\*(.*?)\*\*`)
	reItalic      = regexp.MustCompile(`\*(.*?)\*`)
	reInlineCode  = regexp.MustCompile("`([^`]+)`")
	reLink        = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	reOrderedList = regexp.MustCompile(`^\d+\.\s+`)
	reSpaces      = regexp.MustCompile(`\s+`)
)

const (
	fence       = "```"
	quotePrefix = "> "
)

// Parse returns the blocks of content in document order. The sequence is
// computed lazily in a single pass each time it is ranged over.
func Parse(content string) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		var (
			inCode  bool
			inQuote bool
			code    []string
			quote   []string
		)
		for _, line := range splitLines(content) {
			if strings.HasPrefix(strings.TrimSpace(line), fence) {
				if inCode {
					b := codeBlock(code)
					code, inCode = nil, false
					if !yield(b) {
						return
					}
				} else {
					code, inCode = []string{line}, true
				}
				continue
			}
			if inCode {
				code = append(code, line)
				continue
			}

			if strings.HasPrefix(line, quotePrefix) {
				if !inQuote {
					quote, inQuote = nil, true
				}
				quote = append(quote, line[len(quotePrefix):])
				continue
			}
			if inQuote {
				b := quoteBlock(quote)
				quote, inQuote = nil, false
				if !yield(b) {
					return
				}
			}

			if !yield(lineBlock(line)) {
				return
			}
		}
		// An unterminated code fence is dropped; a trailing quote is flushed.
		if inQuote && len(quote) > 0 {
			yield(quoteBlock(quote))
		}
	}
}

// Blocks collects Parse(content) into a slice.
func Blocks(content string) []Block {
	var out []Block
	for b := range Parse(content) {
		out = append(out, b)
	}
	return out
}

// splitLines splits on "\n", strips a trailing "\r" from each line and
// treats a final newline as a terminator rather than an empty last line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func codeBlock(buffered []string) Block {
	lang := strings.TrimSpace(strings.Replace(buffered[0], fence, "", 1))
	if lang == "" {
		lang = "text"
	}
	return Block{Kind: CodeBlock, Language: lang, Code: strings.Join(buffered[1:], "\n")}
}

func quoteBlock(buffered []string) Block {
	lines := make([]string, len(buffered))
	for i, l := range buffered {
		lines[i] = FormatInline(l)
	}
	return Block{Kind: Blockquote, Lines: lines}
}

func lineBlock(line string) Block {
	switch {
	case strings.HasPrefix(line, "# "):
		return heading(1, line[2:])
	case strings.HasPrefix(line, "## "):
		return heading(2, line[3:])
	case strings.HasPrefix(line, "### "):
		return heading(3, line[4:])
	case strings.HasPrefix(line, "- "):
		return Block{Kind: ListItem, HTML: FormatInline(line[2:])}
	case reOrderedList.MatchString(line):
		loc := reOrderedList.FindStringIndex(line)
		return Block{Kind: ListItem, Ordered: true, HTML: FormatInline(line[loc[1]:])}
	}
	switch strings.TrimSpace(line) {
	case "---", "***":
		return Block{Kind: Rule}
	case "":
		return Block{Kind: Spacer}
	}
	return Block{Kind: Paragraph, HTML: FormatInline(line)}
}

func heading(level int, text string) Block {
	return Block{
		Kind:  Heading,
		Level: level,
		Text:  text,
		ID:    HeadingID(text),
	}
}

// HeadingID lower-cases text and replaces whitespace runs with a hyphen.
// Punctuation is kept as is.
func HeadingID(text string) string {
	return reSpaces.ReplaceAllString(strings.ToLower(text), "-")
}

// FormatInline HTML-escapes s and then applies, in order, bold, italic,
// inline code and link substitution. Each pass operates on the output of
// the previous one.
func FormatInline(s string) string {
	s = html.EscapeString(s)
	s = reBold.ReplaceAllString(s, `<strong class="font-semibold">${1}</strong>`)
	s = reItalic.ReplaceAllString(s, `<em class="italic">${1}</em>`)
	s = reInlineCode.ReplaceAllString(s, `<code class="bg-muted px-1.5 py-0.5 rounded text-sm font-mono">${1}</code>`)
	s = reLink.ReplaceAllStringFunc(s, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		if unsafeLink(match[2]) {
			return match[1]
		}
		return `<a href="` + match[2] + `" class="text-primary hover:underline">` + match[1] + `</a>`
	})
	return s
}

// unsafeLink reports whether href uses a scheme that executes code.
func unsafeLink(href string) bool {
	val := strings.ToLower(strings.TrimSpace(html.UnescapeString(href)))
	val = strings.Map(func(r rune) rune {
		if r < 0x20 || r == ' ' {
			return -1
		}
		return r
	}, val)
	for _, scheme := range []string{"javascript:", "vbscript:", "data:"} {
		if strings.HasPrefix(val, scheme) {
			return true
		}
	}
	return false
}

// Render writes the HTML for blocks to w.
func Render(w io.Writer, blocks iter.Seq[Block]) error {
	var buf bytes.Buffer
	buf.WriteString(`<div class="prose prose-lg max-w-none">`)
	for b := range blocks {
		writeBlock(&buf, b)
	}
	buf.WriteString(`</div>`)
	_, err := w.Write(buf.Bytes())
	return err
}

func writeBlock(buf *bytes.Buffer, b Block) {
	switch b.Kind {
	case Heading:
		tag := "h1"
		switch b.Level {
		case 2:
			tag = "h2"
		case 3:
			tag = "h3"
		}
		buf.WriteString("<" + tag + ` class="prose-` + tag + ` scroll-mt-16" id="` + html.EscapeString(b.ID) + `">`)
		buf.WriteString(html.EscapeString(b.Text))
		buf.WriteString("</" + tag + ">")
	case ListItem:
		if b.Ordered {
			buf.WriteString(`<li class="prose-li list-decimal">`)
		} else {
			buf.WriteString(`<li class="prose-li">`)
		}
		buf.WriteString(b.HTML)
		buf.WriteString("</li>")
	case Blockquote:
		buf.WriteString(`<blockquote class="border-l-4 border-primary pl-6 py-4 my-6 bg-muted/30 rounded-r-lg italic">`)
		for _, l := range b.Lines {
			buf.WriteString(`<p class="mb-2 last:mb-0">` + l + `</p>`)
		}
		buf.WriteString("</blockquote>")
	case CodeBlock:
		buf.WriteString(`<div class="my-6"><div class="bg-muted/50 border border-theme rounded-t-lg px-4 py-2 text-sm font-medium text-muted-foreground">`)
		buf.WriteString(html.EscapeString(b.Language))
		buf.WriteString(`</div><pre class="bg-gray-900 text-gray-100 p-4 rounded-b-lg overflow-x-auto"><code>`)
		buf.WriteString(html.EscapeString(b.Code))
		buf.WriteString(`</code></pre></div>`)
	case Rule:
		buf.WriteString(`<hr class="my-8 border-t border-theme"/>`)
	case Spacer:
		buf.WriteString(`<div class="h-4"></div>`)
	default:
		buf.WriteString(`<p class="prose-p">` + b.HTML + `</p>`)
	}
}

// HTML renders content to an HTML string.
func HTML(content string) string {
	var buf bytes.Buffer
	_ = Render(&buf, Parse(content))
	return buf.String()
}

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Render(w, Parse(content))
	})
}
