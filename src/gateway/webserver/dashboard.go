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

const dashboardWindowDays = 30

type Dashboard struct {
	router *decision.Router
	sink   data.Sink
}

func NewDashboard(router *decision.Router, sink data.Sink) Dashboard {
	return Dashboard{router: router, sink: sink}
}

// Show serves GET /api/dashboard?user_id=...&topic=... and enriches the
// composed dashboard with sink-side aggregates.
func (h Dashboard) Show(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "user_id is required"})
		return
	}
	topic := c.Query("topic")

	start := time.Now()
	reqID := uuid.NewString()
	ctx := c.Request.Context()

	h.sink.RecordActivity(ctx, userID, data.Activity{
		RequestID:    reqID,
		ActivityType: "dashboard_view",
		Topic:        topic,
	})

	resp, err := h.router.BuildDashboard(ctx, decision.DashboardInput{UserID: userID, Topic: topic})
	if err != nil {
		log.Printf("dashboard: %v", err)
		h.sink.RecordOutcome(ctx, userID, "dashboard", gin.H{"user_id": userID, "topic": topic}, gin.H{"error": err.Error()}, false, time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"err": "error generating dashboard"})
		return
	}

	if analytics, err := h.sink.UserAnalytics(ctx, userID, dashboardWindowDays); err == nil {
		resp.Analytics["sink_analytics"] = analytics
	} else {
		log.Printf("dashboard: analytics for %s: %v", userID, err)
	}
	if recent, err := h.sink.RecentActivity(ctx, userID, 5); err == nil {
		resp.Analytics["recent_activity"] = recent
	} else {
		log.Printf("dashboard: recent activity for %s: %v", userID, err)
	}
	resp.Analytics["request_id"] = reqID

	h.sink.RecordOutcome(ctx, userID, "dashboard", gin.H{"user_id": userID, "topic": topic}, resp, true, time.Since(start))
	c.JSON(http.StatusOK, resp)
}

// Create is the POST variant; no topic filter and no sink enrichment.
func (h Dashboard) Create(c *gin.Context) {
	var req decision.DashboardInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	start := time.Now()
	reqID := uuid.NewString()
	ctx := c.Request.Context()

	h.sink.RecordActivity(ctx, req.UserID, data.Activity{
		RequestID:    reqID,
		ActivityType: "dashboard_view",
	})

	resp, err := h.router.BuildDashboard(ctx, decision.DashboardInput{UserID: req.UserID})
	if err != nil {
		log.Printf("dashboard: %v", err)
		h.sink.RecordOutcome(ctx, req.UserID, "dashboard", req, gin.H{"error": err.Error()}, false, time.Since(start))
		c.JSON(http.StatusInternalServerError, gin.H{"err": "error generating dashboard"})
		return
	}

	resp.Analytics["request_id"] = reqID
	h.sink.RecordOutcome(ctx, req.UserID, "dashboard", req, resp, true, time.Since(start))
	c.JSON(http.StatusOK, resp)
}
