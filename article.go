package scholarslide

// Field names produced by a conversion. These are the keys of the mapping
// handed to renderers; renderers must treat every value as plain text and
// must not assume absence of the not-found sentinels.
const (
	FieldTitle          = "title"
	FieldAuthors        = "authors"
	FieldDate           = "publication_date"
	FieldDOI            = "doi"
	FieldPopulation     = "population"
	FieldIntervention   = "intervention"
	FieldSetting        = "setting"
	FieldPrimaryOutcome = "primary_outcome"
	FieldFinding1       = "finding_1"
	FieldFinding2       = "finding_2"
)

// FieldNames returns all ten field names in rendering order.
func FieldNames() []string {
	return []string{
		FieldTitle,
		FieldAuthors,
		FieldDate,
		FieldDOI,
		FieldPopulation,
		FieldIntervention,
		FieldSetting,
		FieldPrimaryOutcome,
		FieldFinding1,
		FieldFinding2,
	}
}

// WordLimits is the fixed word-limit contract for the extracted fields.
// Metadata fields (title, authors, date, doi) are not word-limited.
var WordLimits = map[string]int{
	FieldPopulation:     15,
	FieldIntervention:   15,
	FieldSetting:        10,
	FieldPrimaryOutcome: 20,
	FieldFinding1:       15,
	FieldFinding2:       15,
}

// notFoundSentinels maps each field to its deterministic not-found text.
// Extraction never returns an empty string or an error for a missing field;
// it returns the sentinel instead.
var notFoundSentinels = map[string]string{
	FieldTitle:          "Article Title Not Found",
	FieldAuthors:        "Authors Not Found",
	FieldDOI:            "DOI Not Found",
	FieldPopulation:     "Population data not found",
	FieldIntervention:   "Intervention data not found",
	FieldSetting:        "Setting data not found",
	FieldPrimaryOutcome: "Primary outcome not found",
	FieldFinding1:       "Finding 1 not found",
	FieldFinding2:       "Finding 2 not found",
}

// NotFoundText returns the sentinel value for a field with no extracted
// value. Unknown field names yield a generic sentinel.
func NotFoundText(field string) string {
	if s, ok := notFoundSentinels[field]; ok {
		return s
	}
	return "Data not found"
}

// IsNotFound reports whether text is the not-found sentinel for field.
func IsNotFound(field, text string) bool {
	return text == NotFoundText(field)
}

// ExtractedField is the outcome of extracting a single field.
type ExtractedField struct {
	// Name is one of the Field* constants.
	Name string

	// Text is the extracted value, possibly truncated, never empty.
	Text string

	// WordCount is the whitespace-delimited word count of Text,
	// excluding any truncation marker.
	WordCount int

	// LimitApplied reports whether word-limit truncation shortened Text.
	LimitApplied bool
}

// Metadata holds the citation metadata extracted from an article page.
type Metadata struct {
	Title   string
	Authors string
	Date    string
	DOI     string
}

// ArticleRecord aggregates all extracted fields plus citation metadata.
// It is the sole artifact handed to external renderers. A fresh record is
// created per conversion; records share no mutable state.
type ArticleRecord struct {
	URL      string
	Method   string // winning acquisition strategy
	Metadata Metadata
	Fields   map[string]ExtractedField // keyed by extraction field name
}

// FieldMap flattens the record into the renderer contract: a mapping from
// each of the ten field names to a bounded plain-text value. Every key is
// always present; missing extractions carry their sentinel.
func (r *ArticleRecord) FieldMap() map[string]string {
	m := map[string]string{
		FieldTitle:   r.Metadata.Title,
		FieldAuthors: r.Metadata.Authors,
		FieldDate:    r.Metadata.Date,
		FieldDOI:     r.Metadata.DOI,
	}
	for _, name := range []string{FieldPopulation, FieldIntervention, FieldSetting, FieldPrimaryOutcome, FieldFinding1, FieldFinding2} {
		if f, ok := r.Fields[name]; ok {
			m[name] = f.Text
		} else {
			m[name] = NotFoundText(name)
		}
	}
	return m
}

// TopicClassifier selects a topic tag for icon selection from a completed
// record. Classification is an external collaborator of the extraction
// core; it is specified here only at its interface.
type TopicClassifier interface {
	Classify(record *ArticleRecord) string
}
