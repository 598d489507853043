package badge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	svg "github.com/ajstarks/svgo"

	"github.com/azis14/devto-badge/article"
	"github.com/azis14/devto-badge/textlayout"
)

// ContentType of every rendered badge.
const ContentType = "image/svg+xml"

const fontFamily = `font-family="-apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif"`

// Content is everything a card is drawn from.
type Content struct {
	Request Request
	Article article.Article
	Cover   article.EmbeddedImage
	Avatar  article.EmbeddedImage
}

// Card returns a templ.Component that writes the badge SVG for c.
func Card(c Content) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write(compose(c))
		return err
	})
}

// blocks decides which parts of the card are drawn.
func blocks(c Content, text textlayout.Text) Blocks {
	hidden := c.Request.Hidden
	b := Blocks{
		Cover:       !hidden.Has(ComponentImage) && !c.Cover.Absent(),
		Title:       len(text.Title),
		Description: len(text.Description),
		Avatar:      !c.Avatar.Absent(),
	}
	if !hidden.Has(ComponentReactions) {
		b.Reactions = reactionsLabel(c.Article.ReactionsCount)
	}
	if !hidden.Has(ComponentMinReads) && c.Article.ReadingTimeMinutes > 0 {
		b.MinRead = fmt.Sprintf("%d min read", c.Article.ReadingTimeMinutes)
	}
	if !hidden.Has(ComponentTags) {
		b.Tags = textlayout.Tags(c.Article.Tags)
	}
	return b
}

func reactionsLabel(n int) string {
	if n == 1 {
		return "1 reaction"
	}
	return fmt.Sprintf("%d reactions", n)
}

func compose(c Content) []byte {
	p := PaletteFor(c.Request.Theme)
	text := textlayout.Layout(c.Article.Title, c.Article.Description)
	plan := PlanLayout(blocks(c, text))
	title := strings.Join(text.Title, " ")

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(Width, Height,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, Width, Height),
		`role="img"`,
		fmt.Sprintf(`aria-label="%s"`, textlayout.Escape(title)),
	)
	writeText(canvas, "title", "", textlayout.Escape(title))

	if plan.Cover != nil || plan.Author.Avatar != nil {
		canvas.Def()
		if r := plan.Cover; r != nil {
			canvas.ClipPath(`id="cover-clip"`)
			canvas.Roundrect(r.X, r.Y, r.W, r.H, coverRadius, coverRadius)
			canvas.ClipEnd()
		}
		if r := plan.Author.Avatar; r != nil {
			canvas.ClipPath(`id="avatar-clip"`)
			canvas.Circle(r.X+r.W/2, r.Y+r.H/2, r.W/2)
			canvas.ClipEnd()
		}
		canvas.DefEnd()
	}

	canvas.Group(fmt.Sprintf(`class="theme-%s"`, c.Request.Theme), fontFamily)
	canvas.Roundrect(1, 1, Width-2, Height-2, 10, 10,
		fmt.Sprintf(`fill="%s"`, p.Background), fmt.Sprintf(`stroke="%s"`, p.Border))

	if r := plan.Cover; r != nil {
		canvas.Image(r.X, r.Y, r.W, r.H, c.Cover.DataURI(),
			`id="cover"`, `clip-path="url(#cover-clip)"`, `preserveAspectRatio="xMidYMid slice"`)
	}

	for i, line := range text.Title.Escaped() {
		writeText(canvas, "text", textAttrs(padding, plan.Title[i], `class="title"`, 18, 700, p.Title), line)
	}
	for i, line := range text.Description.Escaped() {
		writeText(canvas, "text", textAttrs(padding, plan.Description[i], `class="description"`, 13, 400, p.Description), line)
	}

	if r := plan.Author.Avatar; r != nil {
		canvas.Image(r.X, r.Y, r.W, r.H, c.Avatar.DataURI(),
			`id="avatar"`, `clip-path="url(#avatar-clip)"`, `preserveAspectRatio="xMidYMid slice"`)
	}
	writeText(canvas, "text", textAttrs(plan.Author.NameX, plan.Author.Y, `id="author"`, 13, 600, p.Author),
		textlayout.Escape(textlayout.Sanitize(c.Article.Author.Name)))

	if s := plan.Stats; s != nil {
		for _, it := range s.Items {
			attrs := textAttrs(it.X, s.Y, fmt.Sprintf(`id="%s"`, it.Component), 12, 400, p.Stats)
			writeText(canvas, "text", attrs, textlayout.Escape(it.Text))
		}
		if t := s.Tags; t != nil {
			attrs := textAttrs(t.X, s.Y, `id="tags" text-anchor="end" xml:space="preserve"`, 12, 600, p.Tag)
			writeText(canvas, "text", attrs, textlayout.Escape(t.Text))
		}
	}

	canvas.Gend()
	canvas.End()
	return buf.Bytes()
}

func textAttrs(x, y int, extra string, size, weight int, fill string) string {
	return fmt.Sprintf(`x="%d" y="%d" %s font-size="%d" font-weight="%d" fill="%s"`, x, y, extra, size, weight, fill)
}

// writeText emits an element whose body is already escaped. svgo's own
// text helpers escape their input, which would double-escape ours.
func writeText(canvas *svg.SVG, tag, attrs, escaped string) {
	if attrs != "" {
		attrs = " " + attrs
	}
	fmt.Fprintf(canvas.Writer, "<%s%s>%s</%s>\n", tag, attrs, escaped, tag)
}
