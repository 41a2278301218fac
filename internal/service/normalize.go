package service

import (
	"regexp"
	"sort"
	"strings"
)

// NormalizerTables is the static vocabulary the normalizer runs on. Injected at
// construction so tests can substitute smaller tables.
type NormalizerTables struct {
	// Synonyms maps regional or alternate spellings to one canonical form.
	// Applied longest-match-first with word-boundary-safe replacement.
	Synonyms map[string]string
	// Modifiers are freshness, dietary-claim, and size adjectives dropped
	// from token positions.
	Modifiers []string
	// PrepWords are preparation verbs (sliced, diced, ...) dropped from
	// token positions.
	PrepWords []string
	// FormWords are packaging/portion nouns (clove, tin, ...) dropped unless
	// doing so would empty the name.
	FormWords []string
}

type synonymRule struct {
	from    string
	to      string
	pattern *regexp.Regexp
}

type Normalizer struct {
	synonyms  []synonymRule
	modifiers map[string]bool
	prepWords map[string]bool
	formWords map[string]bool
}

var (
	parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
	numericTokenPattern  = regexp.MustCompile(`^[0-9]+([./][0-9]+)?$`)
)

func DefaultNormalizerTables() NormalizerTables {
	return NormalizerTables{
		Synonyms: map[string]string{
			"aubergine":           "eggplant",
			"aubergines":          "eggplant",
			"courgette":           "zucchini",
			"courgettes":          "zucchini",
			"capsicum":            "bell pepper",
			"capsicums":           "bell pepper",
			"coriander leaves":    "cilantro",
			"fresh coriander":     "cilantro",
			"rocket":              "arugula",
			"spring onion":        "scallion",
			"spring onions":       "scallion",
			"green onion":         "scallion",
			"green onions":        "scallion",
			"garbanzo bean":       "chickpea",
			"garbanzo beans":      "chickpea",
			"beetroot":            "beet",
			"beetroots":           "beet",
			"chilli":              "chili",
			"chillies":            "chili",
			"prawn":               "shrimp",
			"prawns":              "shrimp",
			"mangetout":           "snow pea",
			"mange tout":          "snow pea",
			"maize":               "corn",
			"cornflour":           "cornstarch",
			"bicarbonate of soda": "baking soda",
			"caster sugar":        "sugar",
			"icing sugar":         "powdered sugar",
			"plain flour":         "flour",
			"all purpose flour":   "flour",
			"wholemeal":           "whole wheat",
			"double cream":        "heavy cream",
			"single cream":        "light cream",
			"porridge oats":       "oats",
			"minced beef":         "ground beef",
			"minced pork":         "ground pork",
			"minced lamb":         "ground lamb",
		},
		Modifiers: []string{
			"fresh", "frozen", "organic", "ripe", "raw",
			"large", "medium", "small", "jumbo", "baby",
			"lean", "skinless", "boneless",
			"unsalted", "salted", "unsweetened", "sweetened",
			"light", "reduced", "extra", "virgin",
		},
		PrepWords: []string{
			"sliced", "diced", "chopped", "minced", "grated", "crushed",
			"peeled", "shredded", "melted", "softened", "beaten", "cooked",
			"boiled", "roasted", "toasted", "drained", "rinsed", "halved",
			"quartered", "cubed", "trimmed", "mashed", "sifted", "zested",
			"juiced", "deseeded", "pitted",
		},
		FormWords: []string{
			"clove", "cloves", "slice", "slices", "tin", "tins",
			"can", "cans", "jar", "jars", "packet", "packets", "pack", "packs",
			"bunch", "bunches", "sprig", "sprigs", "stick", "sticks",
			"stalk", "stalks", "head", "heads", "knob", "knobs",
			"fillet", "fillets", "rasher", "rashers", "loaf", "loaves",
			"handful", "handfuls", "pinch", "pinches",
		},
	}
}

func NewNormalizer() *Normalizer {
	return NewNormalizerWithTables(DefaultNormalizerTables())
}

func NewNormalizerWithTables(tables NormalizerTables) *Normalizer {
	rules := make([]synonymRule, 0, len(tables.Synonyms))
	for from, to := range tables.Synonyms {
		rules = append(rules, synonymRule{
			from:    from,
			to:      to,
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(from) + `\b`),
		})
	}
	// Longest match first so "spring onions" wins over any shorter overlap;
	// lexicographic tiebreak keeps replacement order deterministic.
	sort.Slice(rules, func(i, j int) bool {
		if len(rules[i].from) != len(rules[j].from) {
			return len(rules[i].from) > len(rules[j].from)
		}
		return rules[i].from < rules[j].from
	})
	return &Normalizer{
		synonyms:  rules,
		modifiers: toSet(tables.Modifiers),
		prepWords: toSet(tables.PrepWords),
		formWords: toSet(tables.FormWords),
	}
}

// Normalize canonicalizes a free-text ingredient name into a stable matching
// key. Pure, deterministic, and idempotent: Normalize(Normalize(s)) == Normalize(s).
// A synonym key can surface only after singularization ("rockets" -> "rocket"),
// so the pipeline runs to a fixpoint rather than a single pass.
func (n *Normalizer) Normalize(raw string) string {
	const maxPasses = 4
	out := n.normalizeOnce(raw)
	for i := 1; i < maxPasses; i++ {
		next := n.normalizeOnce(out)
		if next == out {
			return out
		}
		out = next
	}
	return out
}

func (n *Normalizer) normalizeOnce(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = parentheticalPattern.ReplaceAllString(s, " ")
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))

	for _, rule := range n.synonyms {
		s = rule.pattern.ReplaceAllString(s, rule.to)
	}
	s = strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))

	tokens := strings.Fields(s)
	tokens = dropIf(tokens, func(tok string) bool { return numericTokenPattern.MatchString(tok) })
	tokens = dropIf(tokens, func(tok string) bool { return n.modifiers[tok] })
	tokens = dropIf(tokens, func(tok string) bool { return n.prepWords[tok] })

	// Form nouns go too, unless that would empty the name, in which case the
	// form noun itself is the identity ("cloves" stays "clove").
	withoutForms := dropIf(tokens, func(tok string) bool { return n.formWords[tok] })
	if len(withoutForms) > 0 {
		tokens = withoutForms
	}

	for i := range tokens {
		tokens[i] = singularizeToken(tokens[i])
	}
	return strings.Join(tokens, " ")
}

// Similarity scores two raw names in [0,1]: 1.0 for an exact normalized match,
// a length ratio for containment, Jaccard token overlap otherwise.
func (n *Normalizer) Similarity(a, b string) float64 {
	na := n.Normalize(a)
	nb := n.Normalize(b)
	if na == nb {
		return 1.0
	}
	if na == "" || nb == "" {
		return 0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		shorter, longer := len(na), len(nb)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return float64(shorter) / float64(longer)
	}

	setA := toSet(strings.Fields(na))
	setB := toSet(strings.Fields(nb))
	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// SimilarityBand classifies a similarity score into the confidence tiers used
// for duplicate-ingredient flagging.
func SimilarityBand(score float64) string {
	switch {
	case score >= 0.9:
		return ConfidenceHigh
	case score >= 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func singularizeToken(tok string) string {
	switch {
	case len(tok) > 3 && strings.HasSuffix(tok, "ies"):
		return tok[:len(tok)-3] + "y"
	case len(tok) > 3 && strings.HasSuffix(tok, "oes"):
		return tok[:len(tok)-2]
	case len(tok) > 3 && hasSibilantESSuffix(tok):
		return tok[:len(tok)-2]
	case len(tok) > 2 && strings.HasSuffix(tok, "s") && !strings.HasSuffix(tok, "ss"):
		return tok[:len(tok)-1]
	default:
		return tok
	}
}

func hasSibilantESSuffix(tok string) bool {
	for _, suffix := range []string{"ches", "shes", "sses", "xes", "zes"} {
		if strings.HasSuffix(tok, suffix) {
			return true
		}
	}
	return false
}

func dropIf(tokens []string, drop func(string) bool) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if drop(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
