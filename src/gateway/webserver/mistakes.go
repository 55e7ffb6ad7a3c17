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

type Mistakes struct {
	router *decision.Router
	sink   data.Sink
}

func NewMistakes(router *decision.Router, sink data.Sink) Mistakes {
	return Mistakes{router: router, sink: sink}
}

func (h Mistakes) Analyze(c *gin.Context) {
	var req decision.MistakeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	start := time.Now()
	reqID := uuid.NewString()
	ctx := c.Request.Context()

	h.sink.RecordActivity(ctx, req.UserID, data.Activity{
		RequestID:    reqID,
		ActivityType: "mistake_analysis",
		QuestionID:   req.QuestionID,
		Topic:        req.Topic,
	})

	resp, err := h.router.AnalyzeMistake(ctx, req)
	if err != nil {
		log.Printf("mistakes: %v", err)
		h.sink.RecordOutcome(ctx, req.UserID, "agent5", req, gin.H{"error": err.Error()}, false, time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"err": "error analyzing mistake"})
		return
	}

	resp.Analytics["request_id"] = reqID
	h.sink.RecordOutcome(ctx, req.UserID, "agent5", req, resp, true, time.Since(start))
	c.JSON(http.StatusOK, resp)
}
