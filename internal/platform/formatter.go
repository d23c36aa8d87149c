// Package platform reshapes a source document for social platforms.
package platform

import (
	"fmt"
	"strings"

	"github.com/alkime/studio/internal/validation"
	"github.com/alkime/studio/pkg/collections"
)

// Platform names a social network.
type Platform string

const (
	LinkedIn  Platform = "linkedin"
	Twitter   Platform = "twitter"
	Instagram Platform = "instagram"
	Facebook  Platform = "facebook"
	TikTok    Platform = "tiktok"
)

// Parse maps a user-supplied name to a Platform.
func Parse(name string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(name)))
	switch p {
	case LinkedIn, Twitter, Instagram, Facebook, TikTok:
		return p, nil
	case "x":
		return Twitter, nil
	default:
		return "", validation.New("platform", fmt.Sprintf("unknown platform %q", name))
	}
}

// Limits and fixed suffixes per platform.
const (
	LinkedInMaxChars    = 3000
	InstagramMaxChars   = 2200
	TwitterMaxLineLen   = 247
	FacebookMaxLines    = 6
	LinkedInHashtags    = "#ContentMarketing #Business #Growth"
	TwitterHashtags     = "#Content #Marketing"
	InstagramHashtags   = "#content #creator #marketing #instagood #socialmedia"
	instagramSpacer     = ".\n.\n."
	ellipsis            = "..."
	linkedInExtraLines  = 3
	instagramExtraLines = 2
)

// Targets selects which platforms to format for.
type Targets struct {
	LinkedIn  bool `json:"linkedin"`
	Twitter   bool `json:"twitter"`
	Instagram bool `json:"instagram"`
	Facebook  bool `json:"facebook"`
}

// All selects every platform.
func All() Targets {
	return Targets{LinkedIn: true, Twitter: true, Instagram: true, Facebook: true}
}

// Format returns one variant per selected platform.
func Format(text string, targets Targets) (map[Platform]string, error) {
	if err := validation.Required("content", text); err != nil {
		return nil, err
	}

	lines := nonEmptyLines(text)
	out := make(map[Platform]string, 4)

	if targets.LinkedIn {
		out[LinkedIn] = FormatLinkedIn(lines)
	}
	if targets.Twitter {
		out[Twitter] = FormatTwitter(lines)
	}
	if targets.Instagram {
		out[Instagram] = FormatInstagram(lines)
	}
	if targets.Facebook {
		out[Facebook] = FormatFacebook(lines)
	}

	return out, nil
}

// FormatLinkedIn keeps the first line and the next three, then hashtags.
func FormatLinkedIn(lines []string) string {
	body := headAndNext(lines, linkedInExtraLines)
	return truncate(body+"\n\n"+LinkedInHashtags, LinkedInMaxChars)
}

// FormatTwitter keeps only the first line, ellipsized, then hashtags.
func FormatTwitter(lines []string) string {
	first := ""
	if len(lines) > 0 {
		first = lines[0]
	}
	if r := []rune(first); len(r) > TwitterMaxLineLen {
		first = string(r[:TwitterMaxLineLen]) + ellipsis
	}
	return first + "\n\n" + TwitterHashtags
}

// FormatInstagram keeps the first line and the next two, a spacer, then hashtags.
func FormatInstagram(lines []string) string {
	body := headAndNext(lines, instagramExtraLines)
	return truncate(body+"\n"+instagramSpacer+"\n"+InstagramHashtags, InstagramMaxChars)
}

// FormatFacebook keeps the first six lines verbatim.
func FormatFacebook(lines []string) string {
	return strings.Join(collections.Take(lines, FacebookMaxLines), "\n")
}

func headAndNext(lines []string, extra int) string {
	if len(lines) == 0 {
		return ""
	}
	rest := collections.Take(lines[1:], extra)
	if len(rest) == 0 {
		return lines[0]
	}
	return lines[0] + "\n\n" + strings.Join(rest, "\n")
}

// nonEmptyLines drops blank lines and keeps the rest untouched.
func nonEmptyLines(text string) []string {
	return collections.Filter(strings.Split(text, "\n"), func(line string) bool {
		return strings.TrimSpace(line) != ""
	})
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
