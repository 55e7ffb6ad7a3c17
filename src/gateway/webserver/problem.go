package webserver

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/learnloop/tutor-gateway/src/decision"
	"github.com/learnloop/tutor-gateway/src/gateway/data"
)

type Problem struct {
	router *decision.Router
	sink   data.Sink
}

func NewProblem(router *decision.Router, sink data.Sink) Problem {
	return Problem{router: router, sink: sink}
}

func (h Problem) Solve(c *gin.Context) {
	var req decision.ProblemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	start := time.Now()
	reqID := uuid.NewString()
	ctx := c.Request.Context()

	h.sink.RecordActivity(ctx, req.UserID, data.Activity{
		RequestID:    reqID,
		ActivityType: "problem_solving",
		QuestionID:   req.QuestionID,
		Topic:        req.Topic,
		Difficulty:   req.Difficulty,
		Intent:       req.Intent,
		StepNumber:   req.StepNumber,
	})

	resp, err := h.router.SolveProblem(ctx, req)
	if err != nil {
		log.Printf("problem solve: %v", err)
		h.sink.RecordOutcome(ctx, req.UserID, "agent_router", req, gin.H{"error": err.Error()}, false, time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"err": "error solving problem"})
		return
	}

	resp.Analytics["request_id"] = reqID
	h.sink.RecordOutcome(ctx, req.UserID, "agent_router", req, resp, true, time.Since(start))
	c.JSON(http.StatusOK, resp)
}

func (h Problem) Hint(c *gin.Context) {
	var req decision.HintInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	start := time.Now()
	reqID := uuid.NewString()
	ctx := c.Request.Context()

	h.sink.RecordActivity(ctx, req.UserID, data.Activity{
		RequestID:    reqID,
		ActivityType: "hint_request",
		QuestionID:   req.QuestionID,
		Topic:        req.Topic,
		Difficulty:   req.Difficulty,
		Intent:       req.Intent,
		HintLevel:    req.CurrentHintLevel,
	})

	resp, err := h.router.NextHint(ctx, req)
	if err != nil {
		log.Printf("hint: %v", err)
		h.sink.RecordOutcome(ctx, req.UserID, "agent2", req, gin.H{"error": err.Error()}, false, time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"err": "error providing hint"})
		return
	}

	resp.Analytics["request_id"] = reqID
	h.sink.RecordOutcome(ctx, req.UserID, "agent2", req, resp, true, time.Since(start))
	c.JSON(http.StatusOK, resp)
}

// Progress reuses the guided problem-solving policy for step updates; only
// the recorded activity type differs.
func (h Problem) Progress(c *gin.Context) {
	var req decision.ProblemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	start := time.Now()
	reqID := uuid.NewString()
	ctx := c.Request.Context()

	h.sink.RecordActivity(ctx, req.UserID, data.Activity{
		RequestID:    reqID,
		ActivityType: "progress_update",
		QuestionID:   req.QuestionID,
		Topic:        req.Topic,
		Difficulty:   req.Difficulty,
		Intent:       req.Intent,
		StepNumber:   req.StepNumber,
	})

	resp, err := h.router.SolveProblem(ctx, req)
	if err != nil {
		log.Printf("problem progress: %v", err)
		h.sink.RecordOutcome(ctx, req.UserID, "progress_tracker", req, gin.H{"error": err.Error()}, false, time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"err": "error updating progress"})
		return
	}

	resp.Analytics["request_id"] = reqID
	h.sink.RecordOutcome(ctx, req.UserID, "progress_tracker", req, resp, true, time.Since(start))
	c.JSON(http.StatusOK, resp)
}
