package domain

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// Separator splits rendered template content into front and back.
const Separator = "<hr>"

// Substitution tokens recognised in template content.
const (
	FrontToken = "{{front}}"
	BackToken  = "{{back}}"
)

// RenderedCard is a card's template content with all tokens substituted.
// The template is split at its first Separator before substitution, so a
// Separator inside the card's own text never moves the split.
type RenderedCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Render substitutes {{front}}, {{back}} and {{media:N}} in each half of the
// template's content. Media tokens resolve against media, keyed by ID; a
// token naming media that is not supplied renders as an empty string.
func Render(t *Template, c *Card, media map[int64]Media) RenderedCard {
	replacer := strings.NewReplacer(FrontToken, c.Front, BackToken, c.Back)
	front, back, _ := strings.Cut(t.Content, Separator)
	return RenderedCard{
		Front: renderPart(replacer, front, media),
		Back:  renderPart(replacer, back, media),
	}
}

func renderPart(replacer *strings.Replacer, part string, media map[int64]Media) string {
	text := replacer.Replace(part)
	return mediaTokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		m := mediaTokenPattern.FindStringSubmatch(token)
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return ""
		}
		item, ok := media[id]
		if !ok {
			return ""
		}
		return mediaElement(item)
	})
}

// mediaElement renders a media reference as an HTML element chosen by its mime type.
func mediaElement(m Media) string {
	src := html.EscapeString(m.Path)
	switch {
	case strings.HasPrefix(m.Mime, "image/"):
		return fmt.Sprintf(`<img src="%s">`, src)
	case strings.HasPrefix(m.Mime, "audio/"):
		return fmt.Sprintf(`<audio controls src="%s"></audio>`, src)
	case strings.HasPrefix(m.Mime, "video/"):
		return fmt.Sprintf(`<video controls src="%s"></video>`, src)
	default:
		return fmt.Sprintf(`<a href="%s">%s</a>`, src, src)
	}
}
