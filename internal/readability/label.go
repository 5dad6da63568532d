package readability

// Patient-education targets: grade 6 or lower, reading ease 60 or higher.
const (
	TargetGrade = 6.0
	TargetEase  = 60.0
)

// Grade bands, inclusive upper bounds.
const (
	GradeLabelNone        = "N/A"
	GradeLabelEasy        = "Easy (Grades 1-5)"
	GradeLabelStandard    = "Standard (Grades 6-8)"
	GradeLabelComplex     = "Complex (High School)"
	GradeLabelVeryComplex = "Very Complex (College+)"
)

// Reading ease bands, inclusive lower bounds.
const (
	EaseLabelVeryEasy      = "Very Easy"
	EaseLabelStandard      = "Standard"
	EaseLabelDifficult     = "Difficult"
	EaseLabelVeryConfusing = "Very Confusing"
)

// GradeLabel maps a Flesch-Kincaid grade to a human-readable band.
func GradeLabel(grade float64) string {
	switch {
	case grade <= 0:
		return GradeLabelNone
	case grade <= 5:
		return GradeLabelEasy
	case grade <= 8:
		return GradeLabelStandard
	case grade <= 12:
		return GradeLabelComplex
	default:
		return GradeLabelVeryComplex
	}
}

// EaseLabel maps a Flesch Reading Ease score to a human-readable band.
func EaseLabel(ease float64) string {
	switch {
	case ease >= 90:
		return EaseLabelVeryEasy
	case ease >= 60:
		return EaseLabelStandard
	case ease >= 30:
		return EaseLabelDifficult
	default:
		return EaseLabelVeryConfusing
	}
}
