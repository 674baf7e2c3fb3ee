package service

import (
	"sort"
	"strings"
)

type keywordBucket struct {
	label    string
	keywords []string
}

var emotionBuckets = []keywordBucket{
	{"happy", []string{"happy", "joy", "delighted", "pleased", "content", "satisfied"}},
	{"sad", []string{"sad", "unhappy", "depressed", "down", "blue", "gloomy"}},
	{"angry", []string{"angry", "mad", "furious", "irritated", "annoyed", "frustrated"}},
	{"anxious", []string{"anxious", "worried", "nervous", "uneasy", "concerned", "stressed"}},
	{"calm", []string{"calm", "peaceful", "relaxed", "serene", "tranquil", "composed"}},
	{"excited", []string{"excited", "thrilled", "enthusiastic", "eager", "animated"}},
	{"tired", []string{"tired", "exhausted", "fatigued", "drained", "sleepy"}},
	{"grateful", []string{"grateful", "thankful", "appreciative", "blessed"}},
	{"confused", []string{"confused", "puzzled", "perplexed", "uncertain", "unsure"}},
	{"hopeful", []string{"hopeful", "optimistic", "positive", "encouraged"}},
	{"overwhelmed", []string{"overwhelmed", "swamped", "overloaded", "burdened"}},
	{"proud", []string{"proud", "accomplished", "satisfied", "fulfilled"}},
}

var themeBuckets = []keywordBucket{
	{"work", []string{"work", "job", "career", "office", "professional", "colleague"}},
	{"relationships", []string{"relationship", "friend", "family", "partner", "spouse", "love"}},
	{"health", []string{"health", "wellness", "exercise", "diet", "sleep", "medical"}},
	{"personal growth", []string{"growth", "improvement", "learning", "development", "progress"}},
	{"stress", []string{"stress", "pressure", "tension", "overwhelm", "burnout"}},
	{"self-care", []string{"self-care", "relax", "rest", "recharge", "break", "me time"}},
	{"mindfulness", []string{"mindful", "present", "aware", "conscious", "meditation"}},
	{"goals", []string{"goal", "objective", "target", "aim", "aspiration", "achievement"}},
	{"creativity", []string{"creative", "art", "write", "music", "express", "imagination"}},
	{"balance", []string{"balance", "harmony", "equilibrium", "stability"}},
	{"change", []string{"change", "transition", "shift", "adjust", "adapt"}},
	{"gratitude", []string{"gratitude", "thankful", "appreciate", "blessing"}},
}

// extractKeywordTags cuenta apariciones (por substring) de cada bucket y devuelve
// las etiquetas presentes ordenadas por frecuencia.
func extractKeywordTags(text string, buckets []keywordBucket) []string {
	lower := strings.ToLower(text)
	counter := newTagCounter()
	for _, b := range buckets {
		n := 0
		for _, k := range b.keywords {
			n += strings.Count(lower, k)
		}
		if n > 0 {
			counter.addN(b.label, n)
		}
	}
	out := make([]string, 0, counter.distinct())
	for _, tc := range counter.top(0) {
		out = append(out, tc.tag)
	}
	return out
}

func extractEmotions(text string) []string { return extractKeywordTags(text, emotionBuckets) }

func extractThemes(text string) []string { return extractKeywordTags(text, themeBuckets) }

type tagCount struct {
	tag   string
	count int
}

// tagCounter cuenta etiquetas conservando el orden de primera aparicion para desempatar.
type tagCounter struct {
	order  []string
	counts map[string]int
}

func newTagCounter() *tagCounter {
	return &tagCounter{counts: make(map[string]int)}
}

func (c *tagCounter) add(tags ...string) {
	for _, t := range tags {
		c.addN(t, 1)
	}
}

func (c *tagCounter) addN(tag string, n int) {
	tag = strings.TrimSpace(tag)
	if tag == "" || n <= 0 {
		return
	}
	if _, ok := c.counts[tag]; !ok {
		c.order = append(c.order, tag)
	}
	c.counts[tag] += n
}

func (c *tagCounter) distinct() int { return len(c.order) }

// top devuelve las n etiquetas mas frecuentes (todas si n <= 0).
func (c *tagCounter) top(n int) []tagCount {
	out := make([]tagCount, 0, len(c.order))
	for _, t := range c.order {
		out = append(out, tagCount{tag: t, count: c.counts[t]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].count > out[j].count })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func (c *tagCounter) dominant(def string) string {
	top := c.top(1)
	if len(top) == 0 {
		return def
	}
	return top[0].tag
}
