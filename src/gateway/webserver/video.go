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

type Video struct {
	router *decision.Router
	sink   data.Sink
}

func NewVideo(router *decision.Router, sink data.Sink) Video {
	return Video{router: router, sink: sink}
}

func (h Video) Assist(c *gin.Context) {
	var req decision.VideoInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	start := time.Now()
	reqID := uuid.NewString()
	ctx := c.Request.Context()

	h.sink.RecordActivity(ctx, req.UserID, data.Activity{
		RequestID:    reqID,
		ActivityType: "video_assistance",
		QuestionID:   req.QuestionID,
		Topic:        req.Topic,
		Difficulty:   req.Difficulty,
		Intent:       req.Intent,
	})

	resp, err := h.router.VideoAssist(ctx, req)
	if err != nil {
		log.Printf("video assist: %v", err)
		h.sink.RecordOutcome(ctx, req.UserID, "agent8", req, gin.H{"error": err.Error()}, false, time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"err": "error providing video assistance"})
		return
	}

	resp.Analytics["request_id"] = reqID
	h.sink.RecordOutcome(ctx, req.UserID, "agent8", req, resp, true, time.Since(start))
	c.JSON(http.StatusOK, resp)
}
