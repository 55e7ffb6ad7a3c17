package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/learnloop/tutor-gateway/src/gateway/types"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const analyticsTTL = time.Minute

// Activity is the write-side payload for one inbound tutoring event.
type Activity struct {
	RequestID    string
	ActivityType string
	QuestionID   string
	Topic        string
	Difficulty   string
	Intent       string
	StepNumber   int
	HintLevel    int
	TimeRange    int
}

// AgentPerformance aggregates outcome rows per agent over a window.
type AgentPerformance struct {
	AgentName       string  `json:"agent_name"`
	TotalCalls      int64   `json:"total_calls"`
	SuccessfulCalls int64   `json:"successful_calls"`
	AvgResponseMs   float64 `json:"avg_response_time"`
}

// DailyActivity is the per-day activity count over a window.
type DailyActivity struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
}

// Analytics is the read-side aggregate served to the dashboard surface.
type Analytics struct {
	DailyActivity    []DailyActivity    `json:"daily_activity"`
	AgentPerformance []AgentPerformance `json:"agent_performance"`
	PeriodDays       int                `json:"period_days"`
	GeneratedAt      time.Time          `json:"generated_at"`
}

// Sink receives fire-and-forget writes of user activity and agent-call
// outcomes, and serves aggregates back to the dashboard surface. Writes
// never report errors to callers; the decision path must not depend on the
// sink being up.
type Sink interface {
	RecordActivity(ctx context.Context, userID string, activity Activity)
	RecordOutcome(ctx context.Context, userID, agentName string, request, response any, success bool, elapsed time.Duration)
	StoreInsight(ctx context.Context, userID string, insights map[string]any)
	UserAnalytics(ctx context.Context, userID string, days int) (Analytics, error)
	RecentActivity(ctx context.Context, userID string, limit int) ([]types.UserActivity, error)
}

// Store backs the Sink with MySQL rows and a short-lived redis cache on the
// aggregate reads.
type Store struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewStore(db *gorm.DB, rdb *redis.Client) *Store {
	return &Store{db: db, rdb: rdb}
}

func (s *Store) RecordActivity(ctx context.Context, userID string, activity Activity) {
	row := types.UserActivity{
		UserID:       userID,
		RequestID:    activity.RequestID,
		ActivityType: activity.ActivityType,
		QuestionID:   activity.QuestionID,
		Topic:        activity.Topic,
		Difficulty:   activity.Difficulty,
		Intent:       activity.Intent,
		StepNumber:   activity.StepNumber,
		HintLevel:    activity.HintLevel,
		TimeRange:    activity.TimeRange,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("sink: record activity for %s: %v", userID, err)
	}
}

func (s *Store) RecordOutcome(ctx context.Context, userID, agentName string, request, response any, success bool, elapsed time.Duration) {
	reqJSON, _ := json.Marshal(request)
	respJSON, _ := json.Marshal(response)
	row := types.AgentOutcome{
		UserID:    userID,
		AgentName: agentName,
		Request:   string(reqJSON),
		Response:  string(respJSON),
		Success:   success,
		ElapsedMs: float64(elapsed) / float64(time.Millisecond),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("sink: record outcome for %s/%s: %v", userID, agentName, err)
	}
}

func (s *Store) StoreInsight(ctx context.Context, userID string, insights map[string]any) {
	blob, err := json.Marshal(insights)
	if err != nil {
		log.Printf("sink: encode insight for %s: %v", userID, err)
		return
	}
	row := types.LearningInsight{
		UserID:    userID,
		Insights:  string(blob),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		log.Printf("sink: store insight for %s: %v", userID, err)
	}
}

// UserAnalytics aggregates activity and outcome rows over the last `days`
// days. Results are cached in redis for a minute; the dashboard tolerates
// that staleness.
func (s *Store) UserAnalytics(ctx context.Context, userID string, days int) (Analytics, error) {
	key := fmt.Sprintf("analytics:%s:%d", userID, days)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var out Analytics
			if json.Unmarshal(cached, &out) == nil {
				return out, nil
			}
		}
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	out := Analytics{PeriodDays: days, GeneratedAt: time.Now().UTC()}

	err := s.db.WithContext(ctx).
		Model(&types.UserActivity{}).
		Select("DATE(created_at) AS date, COUNT(*) AS total").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Group("DATE(created_at)").
		Order("date").
		Scan(&out.DailyActivity).Error
	if err != nil {
		return Analytics{}, err
	}

	err = s.db.WithContext(ctx).
		Model(&types.AgentOutcome{}).
		Select("agent_name, COUNT(*) AS total_calls, SUM(success) AS successful_calls, AVG(elapsed_ms) AS avg_response_ms").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Group("agent_name").
		Scan(&out.AgentPerformance).Error
	if err != nil {
		return Analytics{}, err
	}

	if s.rdb != nil {
		if blob, err := json.Marshal(out); err == nil {
			_ = s.rdb.Set(ctx, key, blob, analyticsTTL).Err()
		}
	}
	return out, nil
}

func (s *Store) RecentActivity(ctx context.Context, userID string, limit int) ([]types.UserActivity, error) {
	var rows []types.UserActivity
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
