// Package badge composes the SVG card for one article: it resolves request
// parameters, lays out the card and draws it in one of two themes.
package badge

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/azis14/devto-badge/article"
)

// CacheControl lets shared caches keep a badge for an hour and serve it
// stale while they revalidate.
const CacheControl = "public, max-age=3600, s-maxage=3600, stale-while-revalidate=86400"

// Names reported in Rendered.Missing.
const (
	AssetCover  = "cover"
	AssetAvatar = "avatar"
)

// ArticleSource looks up article metadata.
type ArticleSource interface {
	Lookup(ctx context.Context, username, slug string) (article.Article, error)
}

// ImageSource turns a remote image into an inline one.
type ImageSource interface {
	EmbedImage(ctx context.Context, url string, maxWidth int) (article.EmbeddedImage, error)
}

// Rendered is a finished badge.
type Rendered struct {
	Markup       []byte
	ContentType  string
	CacheControl string
	// Missing lists images the article referenced but that could not be
	// embedded.
	Missing []string
}

// Builder runs one render pass: lookup, image fan-out, layout and drawing.
type Builder struct {
	articles ArticleSource
	images   ImageSource
	logger   *zap.Logger
}

// NewBuilder creates a Builder. A nil logger discards output.
func NewBuilder(articles ArticleSource, images ImageSource, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{articles: articles, images: images, logger: logger}
}

// Build renders the badge for req. Only the article lookup can fail it;
// images that cannot be fetched are left out of the card.
func (b *Builder) Build(ctx context.Context, req Request) (Rendered, error) {
	a, err := b.articles.Lookup(ctx, req.Username, req.Slug)
	if err != nil {
		return Rendered{}, fmt.Errorf("lookup %s/%s: %w", req.Username, req.Slug, err)
	}
	log := b.logger.With(zap.String("article", a.URL), zap.String("author", a.Author.Username))
	log.Debug("article resolved")

	c := Content{Request: req, Article: a}
	wantCover := a.CoverImageURL != "" && !req.Hidden.Has(ComponentImage)
	wantAvatar := a.Author.AvatarURL != ""

	var g errgroup.Group
	if wantCover {
		g.Go(func() error {
			c.Cover = b.embed(ctx, log, AssetCover, a.CoverImageURL, article.CoverMaxWidth)
			return nil
		})
	}
	if wantAvatar {
		g.Go(func() error {
			c.Avatar = b.embed(ctx, log, AssetAvatar, a.Author.AvatarURL, article.AvatarMaxWidth)
			return nil
		})
	}
	_ = g.Wait()

	var missing []string
	if wantCover && c.Cover.Absent() {
		missing = append(missing, AssetCover)
	}
	if wantAvatar && c.Avatar.Absent() {
		missing = append(missing, AssetAvatar)
	}

	var buf bytes.Buffer
	if err := Card(c).Render(ctx, &buf); err != nil {
		return Rendered{}, fmt.Errorf("render card: %w", err)
	}
	return Rendered{
		Markup:       buf.Bytes(),
		ContentType:  ContentType,
		CacheControl: CacheControl,
		Missing:      missing,
	}, nil
}

// embed fetches one image, turning any failure into an absent image.
func (b *Builder) embed(ctx context.Context, log *zap.Logger, asset, url string, maxWidth int) article.EmbeddedImage {
	img, err := b.images.EmbedImage(ctx, url, maxWidth)
	if err != nil {
		log.Warn("image embed failed",
			zap.String("asset", asset),
			zap.String("url", url),
			zap.Error(err),
		)
		return article.EmbeddedImage{}
	}
	return img
}
