package badge

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	svg "github.com/ajstarks/svgo"
)

// Error card size.
const (
	ErrorWidth  = Width
	ErrorHeight = 120
)

const (
	errorHeadline = "Could not render this badge"
	errorDetail   = "The article could not be loaded right now."
)

// ErrorCard returns a small themed card with a static error message. It
// never fails; unknown themes are drawn light.
func ErrorCard(t Theme) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write(composeError(t))
		return err
	})
}

func composeError(t Theme) []byte {
	if t != ThemeDark {
		t = ThemeLight
	}
	p := PaletteFor(t)

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(ErrorWidth, ErrorHeight,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, ErrorWidth, ErrorHeight),
		`role="img"`,
		fmt.Sprintf(`aria-label="%s"`, errorHeadline),
	)
	writeText(canvas, "title", "", errorHeadline)
	canvas.Group(fmt.Sprintf(`class="theme-%s"`, t), fontFamily)
	canvas.Roundrect(1, 1, ErrorWidth-2, ErrorHeight-2, 10, 10,
		fmt.Sprintf(`fill="%s"`, p.Background), fmt.Sprintf(`stroke="%s"`, p.Border))
	writeText(canvas, "text", textAttrs(padding, 52, `id="error"`, 18, 700, p.Title), errorHeadline)
	writeText(canvas, "text", textAttrs(padding, 80, `class="description"`, 13, 400, p.Description), errorDetail)
	canvas.Gend()
	canvas.End()
	return buf.Bytes()
}
