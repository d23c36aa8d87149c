package draft

import "strings"

type voice struct {
	opener  string
	promise string
	closer  string
}

// voices maps a tone to its phrasing. Each format string takes the topic.
var voices = map[string]voice{
	"professional": {
		opener:  "In today's landscape, %s has become a critical consideration for organizations and professionals alike.",
		promise: "The goal is a clear, actionable framework you can apply immediately.",
		closer:  "%s rewards a deliberate, measured approach. Start with the fundamentals, track your results, and refine your process as you go.",
	},
	"casual": {
		opener:  "Let's talk about %s. It comes up all the time, and it's easier to get right than most people think.",
		promise: "No jargon, just the stuff that actually helps.",
		closer:  "That's the gist of %s. Pick one idea from here, try it this week, and see what happens.",
	},
	"friendly": {
		opener:  "If you've been curious about %s, you're in the right place. We'll walk through it together.",
		promise: "By the end you'll have a few practical ideas to try.",
		closer:  "Thanks for reading! %s is a journey, and every small step counts. You've got this.",
	},
	"authoritative": {
		opener:  "%s is no longer optional. The evidence is clear, and the teams that master it pull ahead.",
		promise: "What follows is a proven approach, not theory.",
		closer:  "Master %s by committing to the process laid out here. Consistent execution is what separates leaders from everyone else.",
	},
	"inspirational": {
		opener:  "Every expert in %s started exactly where you are now: curious and ready to grow.",
		promise: "Let this be the start of something bigger.",
		closer:  "Your path with %s starts today. Take the first step, stay curious, and keep going.",
	},
}

func voiceFor(tone string) voice {
	if v, ok := voices[strings.ToLower(strings.TrimSpace(tone))]; ok {
		return v
	}
	return voices["professional"]
}

// Tones lists the supported tones.
func Tones() []string {
	return []string{"professional", "casual", "friendly", "authoritative", "inspirational"}
}
