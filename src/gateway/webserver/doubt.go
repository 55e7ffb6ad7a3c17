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

type Doubt struct {
	router *decision.Router
	sink   data.Sink
}

func NewDoubt(router *decision.Router, sink data.Sink) Doubt {
	return Doubt{router: router, sink: sink}
}

func (h Doubt) Resolve(c *gin.Context) {
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
		ActivityType: "doubt_resolution",
		QuestionID:   req.QuestionID,
		Topic:        req.Topic,
		Difficulty:   req.Difficulty,
		Intent:       req.Intent,
	})

	resp, err := h.router.ResolveDoubt(ctx, req)
	if err != nil {
		log.Printf("doubt: %v", err)
		h.sink.RecordOutcome(ctx, req.UserID, "agent1", req, gin.H{"error": err.Error()}, false, time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"err": "error processing doubt"})
		return
	}

	resp.Analytics["request_id"] = reqID
	h.sink.RecordOutcome(ctx, req.UserID, "agent1", req, resp, true, time.Since(start))
	c.JSON(http.StatusOK, resp)
}
