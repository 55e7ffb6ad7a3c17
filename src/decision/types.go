package decision

import "time"

// Mode is the coarse category of what the gateway tells the student to do next.
type Mode string

const (
	ModeHint     Mode = "HINT"
	ModeSolution Mode = "SOLUTION"
	ModeVideo    Mode = "VIDEO"
	ModeError    Mode = "ERROR"
)

const (
	IntentGuided         = "guided"
	IntentDirectSolution = "direct_solution"
	IntentVideo          = "video"
)

// Inbound request shapes, bound straight from the HTTP surface.

type ProblemInput struct {
	UserID        string `json:"user_id" binding:"required"`
	QuestionID    string `json:"question_id" binding:"required"`
	StepNumber    int    `json:"step_number"`
	StudentAnswer string `json:"student_answer" binding:"required"`
	Intent        string `json:"intent" binding:"required,oneof=guided direct_solution video"`
	Topic         string `json:"topic" binding:"required"`
	Difficulty    string `json:"difficulty" binding:"required,oneof=easy medium hard"`
}

type HintInput struct {
	ProblemInput
	CurrentHintLevel int `json:"current_hint_level"`
}

type VideoInput struct {
	ProblemInput
	VideoContext string `json:"video_context"`
	Timestamp    int    `json:"timestamp"`
}

type ProgressInput struct {
	UserID    string `json:"user_id" binding:"required"`
	Topic     string `json:"topic"`
	TimeRange int    `json:"time_range"`
}

type MistakeInput struct {
	UserID        string `json:"user_id" binding:"required"`
	QuestionID    string `json:"question_id" binding:"required"`
	StudentAnswer string `json:"student_answer" binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required"`
	Topic         string `json:"topic" binding:"required"`
}

type DashboardInput struct {
	UserID string `json:"user_id" binding:"required"`
	Topic  string `json:"topic"`
}

// Decision is the common part of every outward response. Analytics is
// advisory metadata for the client and the activity sink, never policy input.
type Decision struct {
	Mode      Mode           `json:"mode"`
	Content   string         `json:"content"`
	Analytics map[string]any `json:"analytics"`
	Timestamp time.Time      `json:"timestamp"`
}

type DoubtDecision struct {
	Decision
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
}

type SolveDecision struct {
	Decision
	Steps      []string `json:"steps"`
	HintLevel  *int     `json:"hint_level,omitempty"`
	StuckScore *int     `json:"stuck_score,omitempty"`
}

type HintDecision struct {
	Decision
	HintLevel         int  `json:"hint_level"`
	NextHintAvailable bool `json:"next_hint_available"`
	StuckScore        *int `json:"stuck_score,omitempty"`
}

type VideoDecision struct {
	Decision
	VideoRef        string         `json:"video_ref,omitempty"`
	YoutubeMetadata map[string]any `json:"youtube_metadata,omitempty"`
	Action          string         `json:"action"`
}

type ProgressReport struct {
	UserID          string         `json:"user_id"`
	ProgressData    map[string]any `json:"progress_data"`
	Strengths       []string       `json:"strengths"`
	Weaknesses      []string       `json:"weaknesses"`
	Recommendations []string       `json:"recommendations"`
	Analytics       map[string]any `json:"analytics"`
	Timestamp       time.Time      `json:"timestamp"`
}

type MistakeReport struct {
	UserID          string         `json:"user_id"`
	MistakePattern  string         `json:"mistake_pattern"`
	PatternStrength float64        `json:"pattern_strength"`
	RepeatedMistake bool           `json:"repeated_mistake"`
	LearningGap     string         `json:"learning_gap"`
	Analytics       map[string]any `json:"analytics"`
	Timestamp       time.Time      `json:"timestamp"`
}

type Overview struct {
	TotalTimeSpent     int     `json:"total_time_spent"`
	LearningVelocity   float64 `json:"learning_velocity"`
	MasteryAverage     float64 `json:"mastery_average"`
	QuestionsAttempted int     `json:"questions_attempted"`
}

type ProgressSummary struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	RecentTopics    []string `json:"recent_topics"`
	ImprovementRate float64  `json:"improvement_rate"`
}

type Dashboard struct {
	UserID                   string           `json:"user_id"`
	Overview                 Overview         `json:"overview"`
	RecentActivity           []map[string]any `json:"recent_activity"`
	ProgressSummary          ProgressSummary  `json:"progress_summary"`
	FlashcardRecommendations []map[string]any `json:"flashcard_recommendations"`
	Analytics                map[string]any   `json:"analytics"`
	Timestamp                time.Time        `json:"timestamp"`
}
