package assistant

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Sentiment is the tone detected in the last customer message.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Memory is what the assistant remembers about a table for the rest of the visit.
type Memory struct {
	Allergies    []string  `json:"allergies,omitempty"`
	Dietary      []string  `json:"dietary,omitempty"`
	Budget       int       `json:"budget,omitempty"`
	Mood         string    `json:"mood,omitempty"`
	Occasion     string    `json:"occasion,omitempty"`
	Topics       []string  `json:"topics,omitempty"`
	Sentiment    Sentiment `json:"sentiment"`
	Interactions int       `json:"interactions"`
}

// Clone returns a copy that shares no slices with m.
func (m Memory) Clone() Memory {
	out := m
	out.Allergies = slices.Clone(m.Allergies)
	out.Dietary = slices.Clone(m.Dietary)
	out.Topics = slices.Clone(m.Topics)
	return out
}

// Preferences are the facts extracted from a single message.
// A zero field means nothing was detected.
type Preferences struct {
	Allergies       []string
	AllergyReported bool
	Dietary         string
	Budget          int
	Mood            string
	Occasion        string
}

// keyword maps a substring to the value it implies.
type keyword struct {
	word  string
	value string
}

var (
	allergyWords = []string{"allergie", "allergique", "intolérant", "intolerance", "sensible"}
	allergens    = []string{"gluten", "lactose", "lait", "noix", "arachide", "fruits de mer", "poisson", "oeuf", "œuf", "soja", "sésame"}

	// Later matches override earlier ones.
	dietaryWords = []keyword{
		{"végétarien", "végétarien"},
		{"vegetarien", "végétarien"},
		{"végétalien", "végétalien"},
		{"vegan", "végétalien"},
		{"végan", "végétalien"},
		{"halal", "halal"},
		{"sans viande", "sans viande"},
		{"pas de viande", "sans viande"},
		{"sans porc", "sans porc"},
	}

	budgetPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*(?:euros?|€|dinars?|dt)`),
		regexp.MustCompile(`budget.*?(\d+)`),
		regexp.MustCompile(`environ.*?(\d+)`),
		regexp.MustCompile(`maximum.*?(\d+)`),
		regexp.MustCompile(`pas plus de.*?(\d+)`),
	}

	moodWords = []keyword{
		{"faim", "très faim"},
		{"affamé", "très faim"},
		{"petit creux", "petite faim"},
		{"grignoter", "petite faim"},
		{"découvrir", "aventureux"},
		{"nouveau", "aventureux"},
		{"traditionnel", "classique"},
		{"habituel", "classique"},
		{"santé", "sain"},
		{"léger", "sain"},
		{"gourmand", "indulgent"},
		{"plaisir", "indulgent"},
	}

	occasionWords = []keyword{
		{"anniversaire", "anniversaire"},
		{"fête", "célébration"},
		{"romantique", "romantique"},
		{"amoureux", "romantique"},
		{"date", "romantique"},
		{"rendez-vous", "romantique"},
		{"affaires", "affaires"},
		{"business", "affaires"},
		{"professionnel", "affaires"},
		{"famille", "famille"},
		{"enfants", "famille"},
		{"amis", "entre amis"},
		{"groupe", "entre amis"},
		{"rapide", "rapide"},
		{"pressé", "rapide"},
		{"vite", "rapide"},
		{"décontracté", "décontracté"},
		{"relax", "décontracté"},
	}

	positiveWords = []string{"merci", "parfait", "excellent", "génial", "super", "top", "délicieux", "yahassal", "barsha behi", "bien"}
	negativeWords = []string{"non", "pas", "mauvais", "déçu", "problème", "jamais", "mouch behi"}
)

// Extract reads preferences from a lower-cased message.
func Extract(text string) Preferences {
	var p Preferences

	if containsAny(text, allergyWords) {
		p.AllergyReported = true
		for _, a := range allergens {
			if strings.Contains(text, a) {
				p.Allergies = append(p.Allergies, a)
			}
		}
	}

	for _, k := range dietaryWords {
		if strings.Contains(text, k.word) {
			p.Dietary = k.value
		}
	}

	for _, re := range budgetPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				p.Budget = n
			}
			break
		}
	}

	p.Mood = firstMatch(text, moodWords)
	p.Occasion = firstMatch(text, occasionWords)

	return p
}

// DetectSentiment compares positive and negative word counts.
func DetectSentiment(text string) Sentiment {
	pos, neg := countAny(text, positiveWords), countAny(text, negativeWords)
	switch {
	case pos > neg:
		return SentimentPositive
	case neg > pos:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// Merge folds newly extracted preferences into the memory.
func (m *Memory) Merge(p Preferences) {
	if len(p.Allergies) > 0 {
		m.Allergies = union(m.Allergies, p.Allergies...)
		m.Topics = union(m.Topics, "allergies")
	}
	if p.Dietary != "" {
		m.Dietary = union(m.Dietary, p.Dietary)
		m.Topics = union(m.Topics, "dietary")
	}
	if p.Budget > 0 {
		m.Budget = p.Budget
		m.Topics = union(m.Topics, "budget")
	}
	if p.Mood != "" {
		m.Mood = p.Mood
		m.Topics = union(m.Topics, "mood")
	}
	if p.Occasion != "" {
		m.Occasion = p.Occasion
		m.Topics = union(m.Topics, "occasion")
	}
}

func (m Memory) vegetarian() bool {
	return slices.Contains(m.Dietary, "végétarien") ||
		slices.Contains(m.Dietary, "végétalien") ||
		slices.Contains(m.Dietary, "sans viande")
}

func containsAny(text string, words []string) bool {
	return countAny(text, words) > 0
}

func countAny(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

func firstMatch(text string, words []keyword) string {
	for _, k := range words {
		if strings.Contains(text, k.word) {
			return k.value
		}
	}
	return ""
}

func union(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
