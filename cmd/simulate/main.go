package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/aldara/sentra/internal/engine"
	"github.com/aldara/sentra/internal/store"
)

// referenceProgression is the canonical risk walk: safe start, gradual
// escalation into high risk, then recovery.
var referenceProgression = []struct {
	score float64
	label string
}{
	{0.2, "Safe environment"},
	{0.4, "Slight increase"},
	{0.65, "Elevated risk"},
	{0.85, "High risk"},
	{0.7, "Risk decreasing"},
	{0.3, "Back to safer area"},
}

func main() {
	scores := flag.String("scores", "", "comma-separated risk scores (default: reference progression)")
	verbose := flag.Bool("v", false, "verbose engine logging")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		logger, _ = zap.NewDevelopment()
	}

	eng := engine.New(store.NewMemory(), engine.DefaultThresholds(), engine.DefaultCooldowns(), logger)

	steps := referenceProgression
	if *scores != "" {
		steps = steps[:0]
		for _, raw := range strings.Split(*scores, ",") {
			score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				fmt.Printf("bad score %q: %v\n", raw, err)
				return
			}
			steps = append(steps, struct {
				score float64
				label string
			}{score, ""})
		}
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Sentra decision engine simulation")
	fmt.Println(strings.Repeat("=", 60))

	for _, step := range steps {
		if step.label != "" {
			fmt.Printf("\nScenario: %s (risk=%.2f)\n", step.label, step.score)
		} else {
			fmt.Printf("\nrisk=%.2f\n", step.score)
		}
		d := eng.ProcessRiskUpdate(context.Background(), step.score, nil)
		fmt.Printf("State:    %s\n", d.State)
		fmt.Printf("Action:   %s\n", d.Action)
		fmt.Printf("Message:  %s\n", d.Message)
		fmt.Printf("Priority: %d\n", d.Priority)
		for _, opt := range d.EscalationOptions {
			fmt.Printf("  - %s\n", opt)
		}
		fmt.Println(strings.Repeat("-", 60))
	}

	s := eng.Summary()
	fmt.Printf("\nFinal state: %s | velocity: %+.2f | alerts: %d\n",
		s.CurrentState, s.RiskVelocity, s.AlertCount)
}
