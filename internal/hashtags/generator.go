// Package hashtags derives hashtag sets for a topic and platform.
package hashtags

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alkime/studio/internal/platform"
	"github.com/alkime/studio/internal/validation"
	"github.com/alkime/studio/pkg/collections"
)

// Percent of the requested count given to each pool, rounded up.
const (
	primaryPercent   = 30
	secondaryPercent = 30
	trendingPercent  = 40
)

// MaxCount is the largest count a caller may ask for.
const MaxCount = 30

var secondaryTags = map[platform.Platform][]string{
	platform.Instagram: {"#instagood", "#photooftheday", "#instadaily", "#picoftheday", "#reels"},
	platform.Twitter:   {"#news", "#update", "#thread", "#followme", "#tweetoftheday"},
	platform.LinkedIn:  {"#professional", "#business", "#career", "#networking", "#leadership"},
	platform.TikTok:    {"#fyp", "#foryou", "#foryoupage", "#tiktoktips", "#learnontiktok"},
	platform.Facebook:  {"#community", "#facebookmarketing", "#smallbusiness", "#share", "#followus"},
}

var trendingTags = []string{
	"#Trending", "#ContentCreator", "#SocialMedia", "#Viral", "#Growth",
	"#Branding", "#Strategy", "#Marketing", "#Tips", "#Inspiration",
}

// Request is the input to Generate.
type Request struct {
	Topic    string            `json:"topic" validate:"notblank"`
	Platform platform.Platform `json:"platform"`
	Count    int               `json:"count" validate:"min=1,max=30"`
}

// Shares records how the requested count was split across pools.
type Shares struct {
	Primary   int `json:"primary"`
	Secondary int `json:"secondary"`
	Trending  int `json:"trending"`
}

// Set is a generated hashtag set, split by pool.
type Set struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
	Trending  []string `json:"trending"`
	Shares    Shares   `json:"shares"`
}

// All returns every tag in pool order.
func (s Set) All() []string {
	out := make([]string, 0, len(s.Primary)+len(s.Secondary)+len(s.Trending))
	out = append(out, s.Primary...)
	out = append(out, s.Secondary...)
	return append(out, s.Trending...)
}

// String joins the tags with spaces, ready to paste.
func (s Set) String() string {
	return strings.Join(s.All(), " ")
}

// Allocate splits count 30/30/40 across the pools, each share rounded up.
func Allocate(count int) Shares {
	return Shares{
		Primary:   ceilPercent(count, primaryPercent),
		Secondary: ceilPercent(count, secondaryPercent),
		Trending:  ceilPercent(count, trendingPercent),
	}
}

// ceilPercent stays in integers; 10*0.3 is not 3 in floating point.
func ceilPercent(count, percent int) int {
	return (count*percent + 99) / 100
}

// Generate builds the hashtag set for req.
//
// Each pool is sliced to its share first. Duplicates across pools are then
// removed case-insensitively, keeping the earliest pool's tag
// (primary, secondary, trending). Finally the set is capped at Count, trimming
// from the trending end, since rounded-up shares can sum past Count.
func Generate(req Request) (Set, error) {
	if err := validation.Struct(req); err != nil {
		return Set{}, err
	}

	shares := Allocate(req.Count)

	primary := collections.Take(Primary(req.Topic), shares.Primary)
	secondary := collections.Take(Secondary(req.Platform), shares.Secondary)
	trending := collections.Take(Trending(), shares.Trending)

	primary, secondary, trending = dedupe(primary, secondary, trending)

	budget := req.Count
	primary = collections.Take(primary, budget)
	budget -= len(primary)
	secondary = collections.Take(secondary, budget)
	budget -= len(secondary)
	trending = collections.Take(trending, budget)

	return Set{
		Primary:   primary,
		Secondary: secondary,
		Trending:  trending,
		Shares:    shares,
	}, nil
}

type pooledTag struct {
	pool int
	tag  string
}

// dedupe drops case-insensitive repeats across the pools, keeping the first
// occurrence in pool order.
func dedupe(primary, secondary, trending []string) ([]string, []string, []string) {
	pools := [][]string{primary, secondary, trending}

	var all []pooledTag
	for i, pool := range pools {
		all = append(all, collections.Apply(pool, func(tag string) pooledTag {
			return pooledTag{pool: i, tag: tag}
		})...)
	}

	split := [][]string{{}, {}, {}}
	for _, t := range collections.UniqueBy(all, func(t pooledTag) string { return strings.ToLower(t.tag) }) {
		split[t.pool] = append(split[t.pool], t.tag)
	}

	return split[0], split[1], split[2]
}

// Primary turns topic words longer than three characters into capitalized tags.
func Primary(topic string) []string {
	var tags []string
	for _, word := range strings.Fields(topic) {
		word = strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return r
			}
			return -1
		}, word)
		if utf8.RuneCountInString(word) <= 3 {
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		tags = append(tags, "#"+string(unicode.ToUpper(r))+word[size:])
	}
	return tags
}

// Secondary returns the fixed tags for p. Unknown platforms get none.
func Secondary(p platform.Platform) []string {
	return append([]string(nil), secondaryTags[p]...)
}

// Trending returns the global trending tags.
func Trending() []string {
	return append([]string(nil), trendingTags...)
}
