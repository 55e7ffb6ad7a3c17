package agents

import "time"

// Result is the uniform outcome of one logical agent call, retries included.
// Success means the response body decoded into the typed payload; otherwise
// Error carries the last failure seen before retries ran out. Callers must
// branch on Success — agent failures are never surfaced as Go errors.
type Result struct {
	Success bool
	Error   string
	Agent   string
	Elapsed time.Duration
}

// Request payloads. Field names are the wire contract of the remote webhooks.

type DoubtQuery struct {
	UserID        string `json:"user_id"`
	QuestionID    string `json:"question_id"`
	StudentAnswer string `json:"student_answer"`
	Topic         string `json:"topic"`
	Difficulty    string `json:"difficulty"`
}

type HintQuery struct {
	UserID           string `json:"user_id"`
	QuestionID       string `json:"question_id"`
	CurrentHintLevel int    `json:"current_hint_level"`
	StudentAnswer    string `json:"student_answer"`
	Topic            string `json:"topic"`
	Difficulty       string `json:"difficulty"`
}

type HesitationQuery struct {
	UserID        string `json:"user_id"`
	QuestionID    string `json:"question_id"`
	StepNumber    int    `json:"step_number"`
	StudentAnswer string `json:"student_answer"`
	TimeTaken     int    `json:"time_taken,omitempty"`
}

type StuckQuery struct {
	UserID          string  `json:"user_id"`
	QuestionID      string  `json:"question_id"`
	StepNumber      int     `json:"step_number"`
	StudentAnswer   string  `json:"student_answer"`
	HintLevel       int     `json:"hint_level"`
	HesitationScore float64 `json:"hesitation_score,omitempty"`
}

type MistakeQuery struct {
	UserID        string `json:"user_id"`
	QuestionID    string `json:"question_id"`
	StudentAnswer string `json:"student_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Topic         string `json:"topic"`
}

type ProgressQuery struct {
	UserID    string `json:"user_id"`
	Topic     string `json:"topic,omitempty"`
	TimeRange int    `json:"time_range,omitempty"`
}

type FlashcardQuery struct {
	UserID     string `json:"user_id"`
	Topic      string `json:"topic,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

type VideoQuery struct {
	UserID        string         `json:"user_id"`
	QuestionID    string         `json:"question_id"`
	Topic         string         `json:"topic"`
	TriggerReason string         `json:"trigger_reason"`
	Context       map[string]any `json:"context"`
}

// Response payloads, one per agent. Absent fields decode to zero values;
// pointer fields distinguish "absent" where policy defaults depend on it.

type Solution struct {
	Solution    string  `json:"solution"`
	Explanation string  `json:"explanation"`
	Confidence  float64 `json:"confidence"`
}

type Hint struct {
	Hint          string `json:"hint"`
	HintLevel     int    `json:"hint_level"`
	MaxHints      int    `json:"max_hints"`
	NextAvailable *bool  `json:"next_available"`
}

type Hesitation struct {
	HesitationDetected  bool    `json:"hesitation_detected"`
	HesitationScore     float64 `json:"hesitation_score"`
	ProlongedHesitation bool    `json:"prolonged_hesitation"`
}

type Stuck struct {
	StuckScore        int    `json:"stuck_score"`
	StuckLevel        string `json:"stuck_level"`
	NeedsIntervention bool   `json:"needs_intervention"`
}

type Mistake struct {
	MistakePattern  string  `json:"mistake_pattern"`
	PatternStrength float64 `json:"pattern_strength"`
	RepeatedMistake bool    `json:"repeated_mistake"`
	LearningGap     string  `json:"learning_gap"`
}

type Progress struct {
	MasteryLevels      map[string]float64 `json:"mastery_levels"`
	LearningVelocity   float64            `json:"learning_velocity"`
	TimeSpent          int                `json:"time_spent"`
	QuestionsAttempted int                `json:"questions_attempted"`
	RecentTopics       []string           `json:"recent_topics"`
	ImprovementRate    float64            `json:"improvement_rate"`
	RecentActivity     []map[string]any   `json:"recent_activity"`
}

type Flashcards struct {
	Flashcards     []map[string]any `json:"flashcards"`
	PriorityTopics []string         `json:"priority_topics"`
	ReviewCount    int              `json:"review_count"`
	NextReview     string           `json:"next_review"`
}

type Video struct {
	Action          string         `json:"action"`
	VideoRef        string         `json:"video_ref"`
	YoutubeMetadata map[string]any `json:"youtube_metadata"`
	Explanation     string         `json:"explanation"`
}
