package checks

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// KeywordConfig controls the repetition check. Allowlist terms never
// count toward repetition, StopWords are ignored entirely, FixedTerms
// are segmented out verbatim but still counted (place names mostly).
type KeywordConfig struct {
	StopWords  map[string]struct{}
	Allowlist  map[string]struct{}
	FixedTerms []string
}

// Japanese particles, copulas and other functional words that say
// nothing about keyword stuffing.
var defaultStopWords = []string{
	"の", "や", "が", "を", "に", "へ", "で", "から", "まで", "り", "も", "は",
	"・", "|", "-", "です", "ます", "した", "する", "いる", "ある", "れる",
	"られる", "など", "どの", "その", "これ", "それ", "あれ", "この", "さん",
	"様", "氏", "方", "ない", "あり", "なし", "とき", "もの", "こと",
	"ところ", "できる", "おり", "なる", "いく", "しまう", "たい", "ください",
}

// Medical specialty and clinic vocabulary. A clinic site legitimately
// repeats these, so they are exempt from the repetition count.
var defaultAllowlist = []string{
	// base specialties
	"内科", "外科", "眼科", "歯科", "耳鼻科", "皮膚科", "小児科",
	"整形外科", "産婦人科", "泌尿器科", "精神科", "脳神経外科",
	"放射線科", "麻酔科", "形成外科", "救急科",
	// dental subspecialties
	"小児歯科", "矯正歯科", "審美歯科", "口腔外科", "歯科口腔外科",
	"予防歯科", "保存歯科", "補綴歯科", "インプラント", "一般歯科",
	// internal-medicine subspecialties
	"消化器内科", "循環器内科", "呼吸器内科", "脳神経内科",
	"血液内科", "腎臓内科", "糖尿病内科", "アレルギー科",
	// surgical subspecialties
	"消化器外科", "心臓血管外科", "呼吸器外科",
	"小児外科", "乳腺外科", "気管食道科",
	// generic medical-facility terms
	"病院", "クリニック", "医院", "診療所", "専門医",
}

var defaultFixedTerms = []string{"八王子"}

// DefaultKeywordConfig returns the stock stop-word set, specialty
// allowlist and fixed terms.
func DefaultKeywordConfig() *KeywordConfig {
	cfg := &KeywordConfig{
		StopWords:  make(map[string]struct{}, len(defaultStopWords)),
		Allowlist:  make(map[string]struct{}, len(defaultAllowlist)),
		FixedTerms: append([]string(nil), defaultFixedTerms...),
	}
	for _, w := range defaultStopWords {
		cfg.StopWords[w] = struct{}{}
	}
	for _, w := range defaultAllowlist {
		cfg.Allowlist[w] = struct{}{}
	}
	return cfg
}

var (
	keywordPunctRe = regexp.MustCompile(`[。、．，（）()「」『』｛｝\[\]【】]`)
	keywordSpaceRe = regexp.MustCompile(`\s+`)
	// 2+ character runs of Japanese script, or 2+ alphanumerics
	keywordTokenRe = regexp.MustCompile(`[\p{Han}\p{Hiragana}\p{Katakana}]{2,}|[a-zA-Z0-9]{2,}`)
)

// candidate is one potential token occurrence in the cleaned text.
type candidate struct {
	start, end int
	word       string
	exempt     bool
}

// Keywords flags likely keyword stuffing in text. Candidates are
// allowlist/fixed-term occurrences plus script runs; at each position
// the longest candidate wins (an exempt term wins length ties) and
// overlapped shorter candidates are suppressed, so a compound like
// 小児歯科 is never re-counted as 歯科. Tokens seen 3+ times come back
// as warnings formatted '{token}' ({count}x), in first-seen order.
func Keywords(text string, cfg *KeywordConfig) []string {
	if text == "" {
		return nil
	}
	if cfg == nil {
		cfg = DefaultKeywordConfig()
	}

	cleaned := keywordSpaceRe.ReplaceAllString(keywordPunctRe.ReplaceAllString(text, " "), " ")

	var cands []candidate
	for term := range cfg.Allowlist {
		for _, pos := range indexAll(cleaned, term) {
			cands = append(cands, candidate{pos, pos + len(term), term, true})
		}
	}
	for _, term := range cfg.FixedTerms {
		for _, pos := range indexAll(cleaned, term) {
			cands = append(cands, candidate{pos, pos + len(term), term, false})
		}
	}
	for _, loc := range keywordTokenRe.FindAllStringIndex(cleaned, -1) {
		cands = append(cands, candidate{loc[0], loc[1], cleaned[loc[0]:loc[1]], false})
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].start != cands[j].start {
			return cands[i].start < cands[j].start
		}
		if cands[i].end != cands[j].end {
			return cands[i].end > cands[j].end // longest match first
		}
		return cands[i].exempt && !cands[j].exempt
	})

	counts := make(map[string]int)
	var order []string
	pos := 0
	for _, c := range cands {
		if c.start < pos {
			continue
		}
		pos = c.end
		if c.exempt {
			continue
		}
		if _, stop := cfg.StopWords[c.word]; stop {
			continue
		}
		if counts[c.word] == 0 {
			order = append(order, c.word)
		}
		counts[c.word]++
	}

	var warnings []string
	for _, w := range order {
		if counts[w] >= 3 {
			warnings = append(warnings, fmt.Sprintf("'%s' (%dx)", w, counts[w]))
		}
	}
	return warnings
}

// indexAll returns the byte offsets of every non-overlapping
// occurrence of sub in s.
func indexAll(s, sub string) []int {
	var out []int
	for off := 0; ; {
		i := strings.Index(s[off:], sub)
		if i < 0 {
			return out
		}
		out = append(out, off+i)
		off += i + len(sub)
	}
}
