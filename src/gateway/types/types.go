package types

import "time"

// UserActivity is one inbound tutoring event, written before the decision
// logic runs.
type UserActivity struct {
	ID           uint64 `gorm:"primaryKey"`
	UserID       string `gorm:"size:64;index:idx_activity_user_time;not null"`
	RequestID    string `gorm:"size:36"`
	ActivityType string `gorm:"size:32;not null"`
	QuestionID   string `gorm:"size:64"`
	Topic        string `gorm:"size:128"`
	Difficulty   string `gorm:"size:16"`
	Intent       string `gorm:"size:32"`
	StepNumber   int
	HintLevel    int
	TimeRange    int
	CreatedAt    time.Time `gorm:"index:idx_activity_user_time"`
}

// AgentOutcome is the result of one logical agent dispatch, written after
// the decision resolves. Request and Response hold the JSON-encoded inbound
// request and outward decision.
type AgentOutcome struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    string `gorm:"size:64;index:idx_outcome_user_time;not null"`
	AgentName string `gorm:"size:64;index;not null"`
	RequestID string `gorm:"size:36"`
	Request   string `gorm:"type:text"`
	Response  string `gorm:"type:text"`
	Success   bool
	ElapsedMs float64
	CreatedAt time.Time `gorm:"index:idx_outcome_user_time"`
}

// LearningInsight stores the strengths/weaknesses/recommendations snapshot
// produced by the progress use case.
type LearningInsight struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    string `gorm:"size:64;index;not null"`
	Insights  string `gorm:"type:text"`
	CreatedAt time.Time
}
