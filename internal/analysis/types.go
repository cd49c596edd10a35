package analysis

import "time"

// AnalysisResult is the structured outcome of analyzing a deactivation
// notice. It is produced once per submitted notice and stays immutable
// until a new notice is analyzed.
type AnalysisResult struct {
	Platform         string
	Reason           string
	Category         string
	DeactivationDate time.Time
	AppealDeadline   time.Time
	DaysRemaining    int
	MissingInfo      []string
	RiskLevel        string // "easy", "moderate", or "difficult"
	SuccessRate      int    // percentage for similar cases
}

// Factor is one explainable adjustment applied by the scorer.
type Factor struct {
	Text     string
	Impact   int
	Positive bool
}

// Assessment is the scorer's output: a bounded score, a three-band
// label, and the ordered list of factors that produced it.
type Assessment struct {
	Score          int
	Likelihood     string // "Low", "Medium", or "High"
	ConfidenceBand string
	Factors        []Factor
}
