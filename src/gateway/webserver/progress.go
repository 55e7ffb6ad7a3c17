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

const defaultTimeRangeDays = 7

type Progress struct {
	router *decision.Router
	sink   data.Sink
}

func NewProgress(router *decision.Router, sink data.Sink) Progress {
	return Progress{router: router, sink: sink}
}

func (h Progress) Track(c *gin.Context) {
	var req decision.ProgressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if req.TimeRange <= 0 {
		req.TimeRange = defaultTimeRangeDays
	}

	start := time.Now()
	reqID := uuid.NewString()
	ctx := c.Request.Context()

	h.sink.RecordActivity(ctx, req.UserID, data.Activity{
		RequestID:    reqID,
		ActivityType: "progress_tracking",
		Topic:        req.Topic,
		TimeRange:    req.TimeRange,
	})

	resp, err := h.router.TrackProgress(ctx, req)
	if err != nil {
		log.Printf("progress: %v", err)
		h.sink.RecordOutcome(ctx, req.UserID, "agent6", req, gin.H{"error": err.Error()}, false, time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"err": "error tracking progress"})
		return
	}

	h.sink.StoreInsight(ctx, req.UserID, map[string]any{
		"strengths":       resp.Strengths,
		"weaknesses":      resp.Weaknesses,
		"recommendations": resp.Recommendations,
		"progress_data":   resp.ProgressData,
	})

	resp.Analytics["request_id"] = reqID
	h.sink.RecordOutcome(ctx, req.UserID, "agent6", req, resp, true, time.Since(start))
	c.JSON(http.StatusOK, resp)
}
