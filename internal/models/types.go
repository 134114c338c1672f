package models

// Classification tells how a crawled URL was handled.
type Classification string

const (
	ClassNormal          Classification = "normal"
	ClassNotFound        Classification = "not-found"
	ClassPreviewSkipped  Classification = "preview-skipped"
	ClassConnectionError Classification = "connection-error"
)

// Status summarizes the outcome of one check on one page.
type Status string

const (
	StatusOK       Status = "ok"
	StatusIssues   Status = "issues"
	StatusSkipped  Status = "skipped"
	StatusError    Status = "error"
	StatusNoImages Status = "no-images"
)

// Field holds the result of a single heuristic. Issues is non-empty
// only when Status is StatusIssues; a failed heuristic marks its own
// field StatusError without touching the report's other fields.
type Field struct {
	Status Status   `json:"status"`
	Issues []string `json:"issues,omitempty"`
}

func OK() Field      { return Field{Status: StatusOK} }
func Skipped() Field { return Field{Status: StatusSkipped} }
func Errored() Field { return Field{Status: StatusError} }

// WithIssues returns an ok field when issues is empty.
func WithIssues(issues []string) Field {
	if len(issues) == 0 {
		return OK()
	}
	return Field{Status: StatusIssues, Issues: issues}
}

// MetaTag carries an extracted title or meta description together with
// its length in runes and its check result.
type MetaTag struct {
	Text   string `json:"text"`
	Length int    `json:"length"`
	Check  Field  `json:"check"`
}

// PageReport is the per-URL analysis result. URL is always the
// normalized form and is unique within one crawl run; a report is
// built in a single pass and never revised afterwards.
type PageReport struct {
	URL             string         `json:"url"`
	StatusCode      int            `json:"statusCode"` // 0 when the request never completed
	Class           Classification `json:"class"`
	Title           MetaTag        `json:"title"`
	Description     MetaTag        `json:"description"`
	Headings        Field          `json:"headings"`
	EnglishHeadings Field          `json:"englishOnlyHeadings"`
	ImageAlt        Field          `json:"imageAlt"`
	HTMLSyntax      Field          `json:"htmlSyntax"`
}

// CrawlResult is everything one crawl run produced. Reports and
// NotFound are disjoint: 404 pages are filed only under NotFound.
type CrawlResult struct {
	Reports  []PageReport `json:"reports"`
	NotFound []PageReport `json:"notFound,omitempty"`
}
