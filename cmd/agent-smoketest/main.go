package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/learnloop/tutor-gateway/src/agents"
)

var (
	baseURLFlag = flag.String("base-url", "http://localhost:5678", "Agent webhook host")
	agentsFlag  = flag.String("agents", "all", "Comma-separated agent list (doubt,hint,hesitation,stuck,mistake,progress,flashcards,video) or 'all'")
	timeoutFlag = flag.Duration("timeout", 10*time.Second, "Per-attempt timeout")
	retriesFlag = flag.Int("retries", 1, "Attempts per agent")
	userFlag    = flag.String("user", "smoketest", "User id to send")
)

var allAgents = []string{
	"doubt",
	"hint",
	"hesitation",
	"stuck",
	"mistake",
	"progress",
	"flashcards",
	"video",
}

func main() {
	log.SetFlags(0)
	flag.Parse()

	names := allAgents
	if *agentsFlag != "all" {
		names = strings.Split(*agentsFlag, ",")
	}

	client := agents.New(*baseURLFlag, *timeoutFlag, *retriesFlag)
	ctx := context.Background()

	failures := 0
	for _, name := range names {
		res := probe(ctx, client, strings.TrimSpace(name))
		if res.Success {
			log.Printf("[%s] OK in %s", res.Agent, res.Elapsed.Round(time.Millisecond))
			continue
		}
		failures++
		log.Printf("[%s] FAIL in %s: %s", res.Agent, res.Elapsed.Round(time.Millisecond), res.Error)
	}
	if failures > 0 {
		log.Fatalf("%d of %d agents failed", failures, len(names))
	}
}

func probe(ctx context.Context, client *agents.Client, name string) agents.Result {
	user := *userFlag
	switch name {
	case "doubt":
		_, res := client.ResolveDoubt(ctx, agents.DoubtQuery{UserID: user, QuestionID: "smoke", StudentAnswer: "ping", Topic: "smoke", Difficulty: "easy"})
		return res
	case "hint":
		_, res := client.Hint(ctx, agents.HintQuery{UserID: user, QuestionID: "smoke", CurrentHintLevel: 1, StudentAnswer: "ping", Topic: "smoke", Difficulty: "easy"})
		return res
	case "hesitation":
		_, res := client.DetectHesitation(ctx, agents.HesitationQuery{UserID: user, QuestionID: "smoke", StepNumber: 1, StudentAnswer: "ping"})
		return res
	case "stuck":
		_, res := client.StuckScore(ctx, agents.StuckQuery{UserID: user, QuestionID: "smoke", StepNumber: 1, StudentAnswer: "ping"})
		return res
	case "mistake":
		_, res := client.MistakePattern(ctx, agents.MistakeQuery{UserID: user, QuestionID: "smoke", StudentAnswer: "ping", CorrectAnswer: "pong", Topic: "smoke"})
		return res
	case "progress":
		_, res := client.TrackProgress(ctx, agents.ProgressQuery{UserID: user, TimeRange: 7})
		return res
	case "flashcards":
		_, res := client.Flashcards(ctx, agents.FlashcardQuery{UserID: user})
		return res
	case "video":
		_, res := client.VideoIntelligence(ctx, agents.VideoQuery{UserID: user, QuestionID: "smoke", Topic: "smoke", TriggerReason: "user_request", Context: map[string]any{}})
		return res
	default:
		return agents.Result{Agent: name, Error: "unknown agent"}
	}
}
