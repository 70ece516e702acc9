// Package extract implements structured field extraction over a parsed
// article abstract. For each target field it tries ranked structured
// section labels first, then ordered regex fallbacks over the whole
// abstract text, applies word-limit truncation, and guarantees a non-empty
// result via deterministic not-found sentinels.
package extract

import (
	"regexp"
	"strings"

	"github.com/scholarslide/scholarslide"
)

// Extractor extracts the six slide fields. The zero value is ready to use;
// all extraction is pure in-memory computation.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractAll extracts every field. The returned map always contains exactly
// the six extraction field names.
func (e *Extractor) ExtractAll(abstract *scholarslide.StructuredAbstract, fallback string) map[string]scholarslide.ExtractedField {
	fields := make(map[string]scholarslide.ExtractedField, 6)
	for _, name := range []string{
		scholarslide.FieldPopulation,
		scholarslide.FieldIntervention,
		scholarslide.FieldSetting,
		scholarslide.FieldPrimaryOutcome,
		scholarslide.FieldFinding1,
		scholarslide.FieldFinding2,
	} {
		fields[name] = e.Extract(name, abstract, fallback)
	}
	return fields
}

// Extract extracts a single field. It never fails: when neither the
// structured path nor the fallback path matches, the field carries its
// not-found sentinel.
func (e *Extractor) Extract(name string, abstract *scholarslide.StructuredAbstract, fallback string) scholarslide.ExtractedField {
	switch name {
	case scholarslide.FieldPopulation:
		return e.population(abstract, fallback)
	case scholarslide.FieldIntervention:
		return e.intervention(abstract, fallback)
	case scholarslide.FieldSetting:
		return e.setting(abstract, fallback)
	case scholarslide.FieldPrimaryOutcome:
		return e.primaryOutcome(abstract, fallback)
	case scholarslide.FieldFinding1:
		return e.finding(scholarslide.FieldFinding1, 1, abstract, fallback)
	case scholarslide.FieldFinding2:
		return e.finding(scholarslide.FieldFinding2, 2, abstract, fallback)
	}
	return sentinel(name)
}

// Population patterns: a participant count plus a demographic or condition
// clue, tried against the section body before falling back to its first
// sentence.
var (
	populationSections = []string{"Participants", "Design, Setting, and Participants", "Population"}

	populationSubPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+\s+(?:participants?|patients?|individuals?|subjects?)[^.;]+?(?:age|years|COVID|ARDS|with|mean)[^.;]+)`),
		regexp.MustCompile(`(?i)(Patients? with [^.;]+)`),
		regexp.MustCompile(`(?i)(\d+\s+(?:participants?|patients?)[^.;]+)`),
	}

	populationTrailing = regexp.MustCompile(`(?i)\s+(?:according to|enrolled from|Final).*$`)

	populationFallbacks = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Participants?|Population|Patients?)[:.\s]+([^.]+?)(?:\.|Intervention|Setting|Methods)`),
		regexp.MustCompile(`(?i)(\d+\s+(?:participants?|patients?|individuals?|subjects?)(?:[^.]+?)(?:aged?|mean age|median age)[^.]+)`),
		regexp.MustCompile(`(?i)(n\s*=\s*\d+[^.]+?)(?:\.|;)`),
	}
)

func (e *Extractor) population(abstract *scholarslide.StructuredAbstract, fallback string) scholarslide.ExtractedField {
	if text, ok := firstSection(abstract, populationSections); ok {
		for _, pattern := range populationSubPatterns {
			if m := pattern.FindStringSubmatch(text); m != nil {
				clause := populationTrailing.ReplaceAllString(strings.TrimSpace(m[1]), "")
				return finalize(scholarslide.FieldPopulation, clause)
			}
		}
		return finalize(scholarslide.FieldPopulation, scholarslide.FirstSentence(text))
	}
	return matchFallback(scholarslide.FieldPopulation, fallback, populationFallbacks)
}

var (
	interventionSections = []string{"Interventions", "Intervention", "Exposures"}

	interventionFallbacks = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Intervention[:.\s]+([^.]+?)(?:\.|Main Outcomes?|Results?|Setting)`),
		regexp.MustCompile(`(?i)(?:received|underwent|assigned to|randomized to)\s+([^.]+?)(?:\.|;|compared)`),
		regexp.MustCompile(`(?i)(?:Treatment|Therapy|Drug|Medication)[:.\s]+([^.]+?)(?:\.|;)`),
	}
)

func (e *Extractor) intervention(abstract *scholarslide.StructuredAbstract, fallback string) scholarslide.ExtractedField {
	if text, ok := firstSection(abstract, interventionSections); ok {
		return finalize(scholarslide.FieldIntervention, scholarslide.FirstSentence(text))
	}
	return matchFallback(scholarslide.FieldIntervention, fallback, interventionFallbacks)
}

var (
	settingSections = []string{"Setting", "Design, Setting, and Participants"}

	// Location clause within a combined design/setting/participants body.
	settingSubPattern = regexp.MustCompile(`(?i)(?:conducted|performed|carried out|in)\s+(.+?)(?:\.|;|Participants)`)

	settingFallbacks = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Setting[:.\s]+([^.]+?)(?:\.|Participants?|Methods?)`),
		regexp.MustCompile(`(?i)(?:conducted|performed|carried out)\s+(?:at|in)\s+([^.]+?)(?:\.|;)`),
		regexp.MustCompile(`(?i)(?:hospital|clinic|center|facility|institution)s?\s+(?:in|at|from)\s+([^.]+?)(?:\.|;)`),
	}
)

func (e *Extractor) setting(abstract *scholarslide.StructuredAbstract, fallback string) scholarslide.ExtractedField {
	if text, ok := firstSection(abstract, settingSections); ok {
		if m := settingSubPattern.FindStringSubmatch(text); m != nil {
			return finalize(scholarslide.FieldSetting, strings.TrimSpace(m[1]))
		}
		return finalize(scholarslide.FieldSetting, scholarslide.FirstSentence(text))
	}
	return matchFallback(scholarslide.FieldSetting, fallback, settingFallbacks)
}

var (
	outcomeSections = []string{"Main Outcomes and Measures", "Primary Outcome", "Primary Endpoint", "Main Outcome Measures"}

	outcomeFallbacks = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Main Outcomes? and Measures?|Primary Outcome|Primary Endpoint)[:.\s]+([^.]+?)(?:\.|Results?)`),
		regexp.MustCompile(`(?i)(?:measured|assessed|evaluated)\s+([^.]+?mortality|[^.]+?survival|[^.]+?incidence)`),
		regexp.MustCompile(`(?i)(?:outcome was|endpoint was)\s+([^.]+?)(?:\.|;)`),
	}
)

func (e *Extractor) primaryOutcome(abstract *scholarslide.StructuredAbstract, fallback string) scholarslide.ExtractedField {
	if text, ok := firstSection(abstract, outcomeSections); ok {
		return finalize(scholarslide.FieldPrimaryOutcome, scholarslide.FirstSentence(text))
	}
	return matchFallback(scholarslide.FieldPrimaryOutcome, fallback, outcomeFallbacks)
}

// Statistical markers that make a results sentence result-bearing:
// percentages, p-values, sample-size notation, confidence intervals, ratio
// notation, or explicit day counts.
var (
	resultMarker = regexp.MustCompile(`(?i)\d+\.?\d*%|\bp\s*[<>=]\s*0\.\d+|\bn\s*=\s*\d+|95%\s*CI|OR\s*=|HR\s*=|RR\s*=|\d+\s+days`)

	resultsFallback = regexp.MustCompile(`(?is)Results?[:.\s]+(.+?)(?:Conclusions?|Discussion|$)`)

	fallbackSentenceSplit = regexp.MustCompile(`[.;]\s+`)
)

// finding selects the k-th result-bearing sentence from the Results
// section. Marker-bearing sentences take priority in their original
// relative order; only when fewer than k qualify does selection fall back
// to the k-th sentence of the results text overall.
func (e *Extractor) finding(name string, k int, abstract *scholarslide.StructuredAbstract, fallback string) scholarslide.ExtractedField {
	if results, ok := abstract.Get("Results"); ok {
		sentences := scholarslide.SplitSentences(results)
		if text, ok := selectFinding(sentences, k); ok {
			return finalize(name, text)
		}
		return sentinel(name)
	}

	if m := resultsFallback.FindStringSubmatch(fallback); m != nil {
		sentences := splitNonEmpty(fallbackSentenceSplit, m[1])
		if text, ok := selectFinding(sentences, k); ok {
			return finalize(name, text)
		}
	}
	return sentinel(name)
}

// selectFinding picks the k-th qualifying sentence, falling back to the
// k-th positional sentence.
func selectFinding(sentences []string, k int) (string, bool) {
	var qualifying []string
	for _, s := range sentences {
		if resultMarker.MatchString(s) {
			qualifying = append(qualifying, s)
		}
	}
	if len(qualifying) >= k {
		return qualifying[k-1], true
	}
	if len(sentences) >= k {
		return sentences[k-1], true
	}
	return "", false
}

// firstSection returns the body of the first candidate label present in the
// structured abstract. Labels are tried strictly in the given priority
// order; first match wins.
func firstSection(abstract *scholarslide.StructuredAbstract, labels []string) (string, bool) {
	for _, label := range labels {
		if text, ok := abstract.Get(label); ok {
			return text, true
		}
	}
	return "", false
}

// matchFallback runs the field's fallback patterns against the
// whole-abstract text, first match wins, sentinel otherwise.
func matchFallback(name, fallback string, patterns []*regexp.Regexp) scholarslide.ExtractedField {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(fallback); m != nil {
			return finalize(name, strings.TrimSpace(m[1]))
		}
	}
	return sentinel(name)
}

func splitNonEmpty(re *regexp.Regexp, text string) []string {
	parts := re.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// finalize applies the field's word limit and fills in the bookkeeping.
func finalize(name, text string) scholarslide.ExtractedField {
	if strings.TrimSpace(text) == "" {
		return sentinel(name)
	}
	limit := scholarslide.WordLimits[name]
	raw := scholarslide.WordCount(text)
	limited := scholarslide.LimitWords(text, limit)
	count := raw
	if count > limit {
		count = limit
	}
	return scholarslide.ExtractedField{
		Name:         name,
		Text:         limited,
		WordCount:    count,
		LimitApplied: raw > limit,
	}
}

func sentinel(name string) scholarslide.ExtractedField {
	text := scholarslide.NotFoundText(name)
	return scholarslide.ExtractedField{
		Name:      name,
		Text:      text,
		WordCount: scholarslide.WordCount(text),
	}
}
