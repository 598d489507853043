// Package article talks to the dev.to content API: it looks up a single
// article by author and slug and turns remote images into inline data URIs.
package article

import (
	"encoding/json"
	"strings"
)

// Article is the subset of an upstream article the badge renders.
type Article struct {
	Title              string
	Description        string
	URL                string
	CoverImageURL      string
	Author             Author
	Tags               []string
	ReadingTimeMinutes int
	ReactionsCount     int
}

// Author of an article.
type Author struct {
	Name      string
	Username  string
	AvatarURL string
}

// apiArticle mirrors the JSON returned by GET /articles/{username}/{slug}.
type apiArticle struct {
	Title                  string  `json:"title"`
	Description            string  `json:"description"`
	URL                    string  `json:"url"`
	CoverImage             *string `json:"cover_image"`
	TagList                tagList `json:"tag_list"`
	Tags                   tagList `json:"tags"`
	ReadingTimeMinutes     int     `json:"reading_time_minutes"`
	PublicReactionsCount   *int    `json:"public_reactions_count"`
	PositiveReactionsCount int     `json:"positive_reactions_count"`
	User                   apiUser `json:"user"`
}

type apiUser struct {
	Name           string `json:"name"`
	Username       string `json:"username"`
	ProfileImage   string `json:"profile_image"`
	ProfileImage90 string `json:"profile_image_90"`
}

// tagList accepts both shapes the API uses for tags: a JSON array, or a
// single comma-separated string.
type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = nil
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	var out []string
	for _, s := range strings.Split(joined, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	*t = out
	return nil
}

func (a apiArticle) toArticle() Article {
	out := Article{
		Title:              a.Title,
		Description:        a.Description,
		URL:                a.URL,
		ReadingTimeMinutes: a.ReadingTimeMinutes,
		ReactionsCount:     a.PositiveReactionsCount,
		Author: Author{
			Name:      a.User.Name,
			Username:  a.User.Username,
			AvatarURL: a.User.ProfileImage90,
		},
	}
	if a.CoverImage != nil {
		out.CoverImageURL = strings.TrimSpace(*a.CoverImage)
	}
	if a.PublicReactionsCount != nil {
		out.ReactionsCount = *a.PublicReactionsCount
	}
	if out.Author.Name == "" {
		out.Author.Name = a.User.Username
	}
	if out.Author.AvatarURL == "" {
		out.Author.AvatarURL = a.User.ProfileImage
	}
	// The single-article endpoint returns tags as an array under "tags" and
	// as a string under "tag_list"; list endpoints swap the two.
	out.Tags = []string(a.Tags)
	if len(out.Tags) == 0 {
		out.Tags = []string(a.TagList)
	}
	return out
}
