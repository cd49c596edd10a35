package gigshield

import (
	"fmt"
	"time"
)

// FlexibleTime is a time.Time that can parse the date formats the
// backend emits (Firestore ISO strings with and without zone).
type FlexibleTime struct {
	time.Time
}

// UnmarshalJSON implements custom JSON unmarshaling for FlexibleTime
func (ft *FlexibleTime) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, str); err == nil {
			ft.Time = t
			return nil
		}
	}

	return fmt.Errorf("unable to parse time: %s", str)
}

// MarshalJSON implements custom JSON marshaling
func (ft FlexibleTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", ft.Format(time.RFC3339))), nil
}

// HealthStatus reports API and upstream service availability.
type HealthStatus struct {
	Status              string `json:"status"`
	FirebaseConfigured  bool   `json:"firebase_configured"`
	AnthropicConfigured bool   `json:"anthropic_configured"`
	PineconeConfigured  bool   `json:"pinecone_configured"`
}

// NoticeAnalysis is the backend's analysis of a deactivation notice.
type NoticeAnalysis struct {
	Platform        string   `json:"platform"`
	Reason          string   `json:"reason"`
	UrgencyLevel    string   `json:"urgency_level"`
	DeadlineDays    *int     `json:"deadline_days"`
	RiskLevel       string   `json:"risk_level"`
	MissingInfo     []string `json:"missing_info"`
	Recommendations []string `json:"recommendations"`
}

// AppealRequest carries everything the wizard collected for letter
// generation. Field names follow the backend's request schema.
type AppealRequest struct {
	Platform           string `json:"platform"`
	DeactivationReason string `json:"deactivation_reason"`
	UserStory          string `json:"user_story"`
	AccountTenure      string `json:"account_tenure,omitempty"`
	CurrentRating      string `json:"current_rating,omitempty"`
	CompletionRate     string `json:"completion_rate,omitempty"`
	TotalDeliveries    string `json:"total_deliveries,omitempty"`
	AppealTone         string `json:"appeal_tone,omitempty"`
	UserState          string `json:"user_state,omitempty"`
	Evidence           string `json:"evidence,omitempty"`
	DeadlineDays       int    `json:"deadline_days,omitempty"`
}

// GenerateResult is the response to a letter generation request.
type GenerateResult struct {
	AppealID     string `json:"appeal_id"`
	AppealLetter string `json:"appeal_letter"`
	Status       string `json:"status"`
	Platform     string `json:"platform"`
	ToneUsed     string `json:"tone_used,omitempty"`
}

// Appeal is a stored appeal record, owned by the backend. The client
// only reads, updates status, and deletes by id.
type Appeal struct {
	ID                 string        `json:"id"`
	Platform           string        `json:"platform"`
	DeactivationReason string        `json:"deactivationReason"`
	UserStory          string        `json:"userStory,omitempty"`
	GeneratedLetter    string        `json:"generatedLetter"`
	Status             string        `json:"status"`
	AccountTenure      string        `json:"accountTenure,omitempty"`
	CurrentRating      string        `json:"currentRating,omitempty"`
	CompletionRate     string        `json:"completionRate,omitempty"`
	TotalDeliveries    string        `json:"totalDeliveries,omitempty"`
	AppealTone         string        `json:"appealTone,omitempty"`
	UserState          string        `json:"userState,omitempty"`
	CreatedAt          FlexibleTime  `json:"createdAt"`
	AppealDeadline     *FlexibleTime `json:"appealDeadline,omitempty"`
}

// appealsResponse wraps the appeal listing endpoint's payload.
type appealsResponse struct {
	Appeals []Appeal `json:"appeals"`
	Count   int      `json:"count"`
}

// EvidenceFile is a stored evidence file reference.
type EvidenceFile struct {
	ID          string        `json:"id"`
	AppealID    string        `json:"appeal_id,omitempty"`
	Filename    string        `json:"filename"`
	ContentType string        `json:"contentType"`
	URL         string        `json:"url"`
	UploadedAt  *FlexibleTime `json:"uploadedAt,omitempty"`
}

// UploadResult is the response to an evidence upload.
type UploadResult struct {
	Success     bool   `json:"success"`
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

// ChatMessage is one turn in a chatbot conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SuggestedAction is a follow-up the chatbot proposes.
type SuggestedAction struct {
	Label  string `json:"label"`
	Action string `json:"action"`
}

// ChatReply is the chatbot's response to a message.
type ChatReply struct {
	Response         string            `json:"response"`
	SuggestedActions []SuggestedAction `json:"suggested_actions"`
}

// KnowledgeArticle is a knowledge-base search hit.
type KnowledgeArticle struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Category string  `json:"category"`
	State    string  `json:"state"`
	Platform string  `json:"platform"`
	Score    float64 `json:"score,omitempty"`
}

// KnowledgeSearchResult wraps a knowledge-base search response.
type KnowledgeSearchResult struct {
	Query   string             `json:"query"`
	Results []KnowledgeArticle `json:"results"`
	Total   int                `json:"total"`
}

// AnalyticsSummary holds aggregate counts across all appeals.
type AnalyticsSummary struct {
	TotalCases     int    `json:"totalCases"`
	TotalApproved  int    `json:"totalApproved"`
	TotalDenied    int    `json:"totalDenied"`
	TotalPending   int    `json:"totalPending"`
	SimulatedCount int    `json:"simulatedCount"`
	DataSource     string `json:"dataSource"`
}

// PlatformOutcomes holds per-platform outcome counts.
type PlatformOutcomes struct {
	Approved int `json:"approved"`
	Denied   int `json:"denied"`
	Pending  int `json:"pending"`
}

// AnalyticsOverview is the aggregate analytics payload.
type AnalyticsOverview struct {
	Summary                AnalyticsSummary            `json:"summary"`
	CasesByPlatform        map[string]int              `json:"casesByPlatform"`
	OutcomesByPlatform     map[string]PlatformOutcomes `json:"outcomesByPlatform"`
	AvgResponseTimeDays    map[string]float64          `json:"avgResponseTimeDays"`
	MedianResponseTimeDays map[string]float64          `json:"medianResponseTimeDays"`
	ResponseTimeBuckets    map[string]int              `json:"responseTimeBuckets"`
	ReasonDistribution     map[string]int              `json:"reasonDistribution"`
}
