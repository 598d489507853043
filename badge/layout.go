package badge

import (
	"unicode/utf8"

	"github.com/azis14/devto-badge/textlayout"
)

// Canvas size of every badge.
const (
	Width  = 450
	Height = 290
)

const (
	padding = 20

	coverWidth  = Width - 2*padding
	coverHeight = 106
	coverRadius = 8

	// Baseline of the first content line, with and without a cover above it.
	contentStartWithCover = 152
	contentStartNoCover   = 44

	// Baseline-to-baseline distances.
	titleLineHeight       = 22
	descriptionGap        = 24
	descriptionLineHeight = 18
	authorGap             = 32
	statsGap              = 28

	avatarSize    = 24
	avatarTextGap = 8
	// avatarRise lifts the avatar so its center sits on the text's x-height.
	avatarRise = 17

	statsCharWidth = 7
	statsItemGap   = 16
)

// Rect is an axis-aligned box in canvas units.
type Rect struct {
	X, Y, W, H int
}

// Blocks describes what a card will contain; PlanLayout turns it into
// positions. Empty strings and zero line counts mean the block is absent.
type Blocks struct {
	Cover       bool
	Title       int
	Description int
	Avatar      bool
	Reactions   string
	MinRead     string
	// Tags are formatted tags in display order; trailing ones are dropped
	// when the row has no room for them.
	Tags []string
}

// Plan holds the position of every visible block of one card.
type Plan struct {
	Cover       *Rect
	Title       []int
	Description []int
	Author      AuthorRow
	Stats       *StatsRow
}

// AuthorRow places the avatar and the author name.
type AuthorRow struct {
	Y      int
	Avatar *Rect
	NameX  int
}

// StatsRow places the stats: Items run left to right, Tags is right-aligned.
type StatsRow struct {
	Y     int
	Items []StatItem
	Tags  *StatItem
}

// StatItem is one text element of the stats row.
type StatItem struct {
	Component Component
	X         int
	Text      string
}

// column stacks blocks downwards. Each placed block starts gap below the
// last baseline of the previous one; the first block starts at y.
type column struct {
	y       int
	started bool
}

func (c *column) place(lines, gap, lineHeight int) []int {
	if lines <= 0 {
		return nil
	}
	if c.started {
		c.y += gap
	}
	out := make([]int, lines)
	for i := range out {
		if i > 0 {
			c.y += lineHeight
		}
		out[i] = c.y
	}
	c.started = true
	return out
}

// PlanLayout computes block positions. Absent blocks are skipped and leave
// no gap behind.
func PlanLayout(b Blocks) Plan {
	var p Plan
	col := column{y: contentStartNoCover}
	if b.Cover {
		p.Cover = &Rect{X: padding, Y: padding, W: coverWidth, H: coverHeight}
		col.y = contentStartWithCover
	}

	p.Title = col.place(b.Title, 0, titleLineHeight)
	p.Description = col.place(b.Description, descriptionGap, descriptionLineHeight)

	p.Author = AuthorRow{Y: col.place(1, authorGap, 0)[0], NameX: padding}
	if b.Avatar {
		p.Author.Avatar = &Rect{X: padding, Y: p.Author.Y - avatarRise, W: avatarSize, H: avatarSize}
		p.Author.NameX = padding + avatarSize + avatarTextGap
	}

	if b.Reactions == "" && b.MinRead == "" && len(b.Tags) == 0 {
		return p
	}
	row := &StatsRow{Y: col.place(1, statsGap, 0)[0]}
	x := padding
	for _, it := range []StatItem{
		{Component: ComponentReactions, Text: b.Reactions},
		{Component: ComponentMinReads, Text: b.MinRead},
	} {
		if it.Text == "" {
			continue
		}
		it.X = x
		row.Items = append(row.Items, it)
		x += utf8.RuneCountInString(it.Text)*statsCharWidth + statsItemGap
	}
	if tags := fitTags(b.Tags, Width-padding-x); tags != "" {
		row.Tags = &StatItem{Component: ComponentTags, X: Width - padding, Text: tags}
	}
	if len(row.Items) == 0 && row.Tags == nil {
		return p
	}
	p.Stats = row
	return p
}

// fitTags joins the longest prefix of tags whose estimated width fits in
// room.
func fitTags(tags []string, room int) string {
	for n := len(tags); n > 0; n-- {
		s := textlayout.JoinTags(tags[:n])
		if utf8.RuneCountInString(s)*statsCharWidth <= room {
			return s
		}
	}
	return ""
}
