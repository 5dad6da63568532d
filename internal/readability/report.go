package readability

// Report bundles metrics with their display labels.
type Report struct {
	Metrics     Metrics `json:"metrics"`
	GradeLabel  string  `json:"gradeLabel"`
	EaseLabel   string  `json:"easeLabel"`
	MeetsTarget bool    `json:"meetsTarget"`
}

// NewReport builds the display report for m.
// Text without words gets "N/A" for both labels.
func NewReport(m Metrics) Report {
	r := Report{
		Metrics:     m,
		GradeLabel:  GradeLabel(m.FleschKincaidGrade),
		EaseLabel:   GradeLabelNone,
		MeetsTarget: m.MeetsTarget(),
	}
	if m.HasWords() {
		r.EaseLabel = EaseLabel(m.FleschReadingEase)
	}
	return r
}

// Comparison describes how a rewrite changed the metrics of a text.
// Deltas are after minus before, rounded to one decimal.
type Comparison struct {
	GradeDelta       float64 `json:"gradeDelta"`
	EaseDelta        float64 `json:"easeDelta"`
	WordDelta        int     `json:"wordDelta"`
	SentenceDelta    int     `json:"sentenceDelta"`
	ComplexWordDelta int     `json:"complexWordDelta"`

	// Improved is true when the grade went down or the reading ease went up.
	Improved bool `json:"improved"`
}

// Compare computes the change from before to after.
func Compare(before, after Metrics) Comparison {
	return Comparison{
		GradeDelta:       round1(after.FleschKincaidGrade - before.FleschKincaidGrade),
		EaseDelta:        round1(after.FleschReadingEase - before.FleschReadingEase),
		WordDelta:        after.WordCount - before.WordCount,
		SentenceDelta:    after.SentenceCount - before.SentenceCount,
		ComplexWordDelta: after.ComplexWordCount - before.ComplexWordCount,
		Improved: after.FleschKincaidGrade < before.FleschKincaidGrade ||
			after.FleschReadingEase > before.FleschReadingEase,
	}
}
