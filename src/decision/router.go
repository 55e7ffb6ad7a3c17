package decision

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/learnloop/tutor-gateway/src/agents"
	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxHintLevels       = 4
	defaultStuckThreshold      = 70
	defaultHesitationThreshold = 0.7
)

// Router holds the tutoring policy: which agents to consult for each use
// case and how to fold their answers into one outward decision. All fields
// are read-only after construction, so one Router serves any number of
// concurrent requests.
type Router struct {
	agents *agents.Client

	maxHintLevels       int
	stuckThreshold      int
	hesitationThreshold float64
}

func NewRouter(ac *agents.Client) *Router {
	return &Router{
		agents:              ac,
		maxHintLevels:       defaultMaxHintLevels,
		stuckThreshold:      defaultStuckThreshold,
		hesitationThreshold: defaultHesitationThreshold,
	}
}

// ResolveDoubt surfaces the solution agent's answer verbatim. An unreachable
// agent degrades to a SOLUTION decision whose content names the failure.
func (r *Router) ResolveDoubt(ctx context.Context, in ProblemInput) (DoubtDecision, error) {
	sol, res := r.agents.ResolveDoubt(ctx, agents.DoubtQuery{
		UserID:        in.UserID,
		QuestionID:    in.QuestionID,
		StudentAnswer: in.StudentAnswer,
		Topic:         in.Topic,
		Difficulty:    in.Difficulty,
	})

	if !res.Success {
		return DoubtDecision{Decision: Decision{
			Mode:      ModeSolution,
			Content:   "Error resolving doubt: " + res.Error,
			Analytics: map[string]any{"error": true, "agent": "agent1"},
			Timestamp: time.Now().UTC(),
		}}, nil
	}

	content := sol.Solution
	if content == "" {
		content = "Solution not available"
	}
	confidence := sol.Confidence
	return DoubtDecision{
		Decision: Decision{
			Mode:    ModeSolution,
			Content: content,
			Analytics: map[string]any{
				"agent":      "agent1",
				"confidence": confidence,
				"topic":      in.Topic,
				"difficulty": in.Difficulty,
			},
			Timestamp: time.Now().UTC(),
		},
		ConfidenceScore: &confidence,
	}, nil
}

// SolveProblem fans out hesitation detection and stuck scoring, waits for
// both, then decides between video assistance and a level-1 hint. A failed
// branch contributes zero values instead of aborting the request.
func (r *Router) SolveProblem(ctx context.Context, in ProblemInput) (SolveDecision, error) {
	var (
		hes      agents.Hesitation
		hesRes   agents.Result
		stuck    agents.Stuck
		stuckRes agents.Result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hes, hesRes = r.agents.DetectHesitation(gctx, agents.HesitationQuery{
			UserID:        in.UserID,
			QuestionID:    in.QuestionID,
			StepNumber:    in.StepNumber,
			StudentAnswer: in.StudentAnswer,
		})
		return nil
	})
	g.Go(func() error {
		stuck, stuckRes = r.agents.StuckScore(gctx, agents.StuckQuery{
			UserID:        in.UserID,
			QuestionID:    in.QuestionID,
			StepNumber:    in.StepNumber,
			StudentAnswer: in.StudentAnswer,
			HintLevel:     0,
		})
		return nil
	})
	_ = g.Wait()

	if !hesRes.Success {
		hes = agents.Hesitation{}
	}
	if !stuckRes.Success {
		stuck = agents.Stuck{}
	}

	videoNeeded := stuck.StuckScore >= r.stuckThreshold ||
		hes.ProlongedHesitation ||
		in.Intent == IntentVideo

	if videoNeeded {
		video, vres := r.triggerVideo(ctx, in, "high_stuck_or_hesitation", map[string]any{
			"stuck_score":         stuck.StuckScore,
			"hesitation_detected": hes.HesitationDetected,
		})
		if vres.Success {
			content := video.Explanation
			if content == "" {
				content = "Video assistance triggered"
			}
			return SolveDecision{Decision: Decision{
				Mode:    ModeVideo,
				Content: content,
				Analytics: map[string]any{
					"video_triggered": true,
					"stuck_score":     stuck.StuckScore,
					"hesitation":      hes.HesitationDetected,
					"agent":           "agent8",
				},
				Timestamp: time.Now().UTC(),
			}}, nil
		}
		// Video trigger failed; fall through to the hint path.
	}

	hint, hres := r.agents.Hint(ctx, agents.HintQuery{
		UserID:           in.UserID,
		QuestionID:       in.QuestionID,
		CurrentHintLevel: 1,
		StudentAnswer:    in.StudentAnswer,
		Topic:            in.Topic,
		Difficulty:       in.Difficulty,
	})
	if !hres.Success {
		return SolveDecision{Decision: Decision{
			Mode:      ModeSolution,
			Content:   "Unable to provide hint at this time.",
			Analytics: map[string]any{"error": true, "agent": "agent2"},
			Timestamp: time.Now().UTC(),
		}}, nil
	}

	level := hint.HintLevel
	if level == 0 {
		level = 1
	}
	content := hint.Hint
	if content == "" {
		content = "Hint not available"
	}
	score := stuck.StuckScore
	return SolveDecision{
		Decision: Decision{
			Mode:    ModeHint,
			Content: content,
			Analytics: map[string]any{
				"agent":       "agent2",
				"hint_level":  level,
				"stuck_score": score,
			},
			Timestamp: time.Now().UTC(),
		},
		HintLevel:  &level,
		StuckScore: &score,
	}, nil
}

// NextHint advances the hint ladder by one level. Past the ceiling it trades
// hints for video assistance instead.
func (r *Router) NextHint(ctx context.Context, in HintInput) (HintDecision, error) {
	level := in.CurrentHintLevel + 1

	if level > r.maxHintLevels {
		video, vres := r.triggerVideo(ctx, in.ProblemInput, "hints_exhausted", map[string]any{
			"hint_level": level,
		})
		if vres.Success {
			content := video.Explanation
			if content == "" {
				content = "Video assistance triggered"
			}
			return HintDecision{
				Decision: Decision{
					Mode:      ModeVideo,
					Content:   content,
					Analytics: map[string]any{"video_triggered": true, "hints_exhausted": true},
					Timestamp: time.Now().UTC(),
				},
				HintLevel:         level,
				NextHintAvailable: false,
			}, nil
		}
		// Video trigger failed; ask the hint agent anyway.
	}

	hint, hres := r.agents.Hint(ctx, agents.HintQuery{
		UserID:           in.UserID,
		QuestionID:       in.QuestionID,
		CurrentHintLevel: level,
		StudentAnswer:    in.StudentAnswer,
		Topic:            in.Topic,
		Difficulty:       in.Difficulty,
	})
	if !hres.Success {
		return HintDecision{
			Decision: Decision{
				Mode:      ModeHint,
				Content:   "Unable to provide hint at this time.",
				Analytics: map[string]any{"error": true, "agent": "agent2"},
				Timestamp: time.Now().UTC(),
			},
			HintLevel:         level,
			NextHintAvailable: false,
		}, nil
	}

	reported := hint.HintLevel
	if reported == 0 {
		reported = level
	}
	next := level < r.maxHintLevels
	if hint.NextAvailable != nil {
		next = *hint.NextAvailable
	}
	content := hint.Hint
	if content == "" {
		content = "Hint not available"
	}
	return HintDecision{
		Decision: Decision{
			Mode:    ModeHint,
			Content: content,
			Analytics: map[string]any{
				"agent":      "agent2",
				"hint_level": reported,
			},
			Timestamp: time.Now().UTC(),
		},
		HintLevel:         reported,
		NextHintAvailable: next,
	}, nil
}

// VideoAssist triggers the video agent directly on user request, no
// threshold checks.
func (r *Router) VideoAssist(ctx context.Context, in VideoInput) (VideoDecision, error) {
	video, vres := r.triggerVideo(ctx, in.ProblemInput, "user_request", map[string]any{
		"video_context": in.VideoContext,
		"timestamp":     in.Timestamp,
	})

	if !vres.Success {
		return VideoDecision{
			Decision: Decision{
				Mode:      ModeVideo,
				Content:   "Unable to provide video assistance: " + vres.Error,
				Analytics: map[string]any{"error": true, "agent": "agent8"},
				Timestamp: time.Now().UTC(),
			},
			Action: string(ModeError),
		}, nil
	}

	action := video.Action
	if action == "" {
		action = "SHOW_YOUTUBE"
	}
	content := video.Explanation
	if content == "" {
		content = "Video assistance provided"
	}
	return VideoDecision{
		Decision: Decision{
			Mode:    ModeVideo,
			Content: content,
			Analytics: map[string]any{
				"agent":  "agent8",
				"action": action,
			},
			Timestamp: time.Now().UTC(),
		},
		VideoRef:        video.VideoRef,
		YoutubeMetadata: video.YoutubeMetadata,
		Action:          action,
	}, nil
}

// TrackProgress reads the progress agent, then the flashcard recommender.
// The second call is issued only after the first settles; either failure
// degrades rather than propagates.
func (r *Router) TrackProgress(ctx context.Context, in ProgressInput) (ProgressReport, error) {
	prog, pres := r.agents.TrackProgress(ctx, agents.ProgressQuery{
		UserID:    in.UserID,
		Topic:     in.Topic,
		TimeRange: in.TimeRange,
	})
	if !pres.Success {
		return ProgressReport{
			UserID:       in.UserID,
			ProgressData: map[string]any{},
			Analytics:    map[string]any{"error": true, "agent": "agent6"},
			Timestamp:    time.Now().UTC(),
		}, nil
	}

	cards, cres := r.agents.Flashcards(ctx, agents.FlashcardQuery{
		UserID: in.UserID,
		Topic:  in.Topic,
	})
	var flashcards []map[string]any
	if cres.Success {
		flashcards = cards.Flashcards
	}

	strengths, weaknesses := partitionMastery(prog.MasteryLevels)

	var recommendations []string
	if len(weaknesses) > 0 {
		top := weaknesses
		if len(top) > 3 {
			top = top[:3]
		}
		recommendations = append(recommendations, "Focus on weak topics: "+strings.Join(top, ", "))
	}
	if len(flashcards) > 0 {
		recommendations = append(recommendations, fmt.Sprintf("Review %d recommended flashcards", len(flashcards)))
	}

	return ProgressReport{
		UserID: in.UserID,
		ProgressData: map[string]any{
			"mastery_levels":      prog.MasteryLevels,
			"learning_velocity":   prog.LearningVelocity,
			"time_spent":          prog.TimeSpent,
			"questions_attempted": prog.QuestionsAttempted,
			"recent_topics":       prog.RecentTopics,
			"improvement_rate":    prog.ImprovementRate,
		},
		Strengths:       strengths,
		Weaknesses:      weaknesses,
		Recommendations: recommendations,
		Analytics: map[string]any{
			"agent":           "agent6",
			"mastery_count":   len(strengths),
			"weakness_count":  len(weaknesses),
			"flashcard_count": len(flashcards),
		},
		Timestamp: time.Now().UTC(),
	}, nil
}

// BuildDashboard composes the dashboard from a fixed 30-day progress window
// and an unfiltered flashcard call. A requested topic filters only the
// strengths/weaknesses lists afterwards, by case-insensitive substring.
// Agent failures degrade to empty sections; the dashboard itself never
// fails because an agent did.
func (r *Router) BuildDashboard(ctx context.Context, in DashboardInput) (Dashboard, error) {
	prog, pres := r.agents.TrackProgress(ctx, agents.ProgressQuery{
		UserID:    in.UserID,
		TimeRange: 30,
	})
	cards, cres := r.agents.Flashcards(ctx, agents.FlashcardQuery{UserID: in.UserID})

	if !pres.Success {
		prog = agents.Progress{}
	}
	if !cres.Success {
		cards = agents.Flashcards{}
	}

	strengths, weaknesses := partitionMastery(prog.MasteryLevels)
	if in.Topic != "" {
		strengths = filterTopics(strengths, in.Topic)
		weaknesses = filterTopics(weaknesses, in.Topic)
	}

	return Dashboard{
		UserID: in.UserID,
		Overview: Overview{
			TotalTimeSpent:     prog.TimeSpent,
			LearningVelocity:   prog.LearningVelocity,
			MasteryAverage:     averageMastery(prog.MasteryLevels),
			QuestionsAttempted: prog.QuestionsAttempted,
		},
		RecentActivity: prog.RecentActivity,
		ProgressSummary: ProgressSummary{
			Strengths:       strengths,
			Weaknesses:      weaknesses,
			RecentTopics:    prog.RecentTopics,
			ImprovementRate: prog.ImprovementRate,
		},
		FlashcardRecommendations: cards.Flashcards,
		Analytics: map[string]any{
			"agents":         []string{"agent6", "agent7"},
			"data_freshness": "real-time",
		},
		Timestamp: time.Now().UTC(),
	}, nil
}

// AnalyzeMistake runs the mistake pattern learner; failure degrades to an
// empty pattern report.
func (r *Router) AnalyzeMistake(ctx context.Context, in MistakeInput) (MistakeReport, error) {
	mistake, res := r.agents.MistakePattern(ctx, agents.MistakeQuery{
		UserID:        in.UserID,
		QuestionID:    in.QuestionID,
		StudentAnswer: in.StudentAnswer,
		CorrectAnswer: in.CorrectAnswer,
		Topic:         in.Topic,
	})
	if !res.Success {
		return MistakeReport{
			UserID:    in.UserID,
			Analytics: map[string]any{"error": true, "agent": "agent5"},
			Timestamp: time.Now().UTC(),
		}, nil
	}
	return MistakeReport{
		UserID:          in.UserID,
		MistakePattern:  mistake.MistakePattern,
		PatternStrength: mistake.PatternStrength,
		RepeatedMistake: mistake.RepeatedMistake,
		LearningGap:     mistake.LearningGap,
		Analytics:       map[string]any{"agent": "agent5", "topic": in.Topic},
		Timestamp:       time.Now().UTC(),
	}, nil
}

func (r *Router) triggerVideo(ctx context.Context, in ProblemInput, reason string, extra map[string]any) (agents.Video, agents.Result) {
	return r.agents.VideoIntelligence(ctx, agents.VideoQuery{
		UserID:        in.UserID,
		QuestionID:    in.QuestionID,
		Topic:         in.Topic,
		TriggerReason: reason,
		Context:       extra,
	})
}

// partitionMastery splits topics into strengths (>= 0.8) and weaknesses
// (< 0.5). Topics in between belong to neither. Output order is sorted for
// stable responses.
func partitionMastery(levels map[string]float64) (strengths, weaknesses []string) {
	topics := make([]string, 0, len(levels))
	for topic := range levels {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	for _, topic := range topics {
		switch level := levels[topic]; {
		case level >= 0.8:
			strengths = append(strengths, topic)
		case level < 0.5:
			weaknesses = append(weaknesses, topic)
		}
	}
	return strengths, weaknesses
}

func averageMastery(levels map[string]float64) float64 {
	if len(levels) == 0 {
		return 0.0
	}
	var sum float64
	for _, level := range levels {
		sum += level
	}
	return sum / float64(len(levels))
}

func filterTopics(topics []string, filter string) []string {
	needle := strings.ToLower(filter)
	out := make([]string, 0, len(topics))
	for _, topic := range topics {
		if strings.Contains(strings.ToLower(topic), needle) {
			out = append(out, topic)
		}
	}
	return out
}
