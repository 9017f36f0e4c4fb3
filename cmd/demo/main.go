// Command demo computes and prints strategies for the reference examples, or
// for the scenarios in a YAML file given as the first argument.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"lane-strategy-service/internal/config"
	"lane-strategy-service/internal/scenario"
	"lane-strategy-service/internal/services"
)

func main() {
	config.Load()

	scenarios := scenario.Defaults()
	if len(os.Args) > 1 {
		loaded, err := scenario.Load(os.Args[1])
		if err != nil {
			log.Fatal(err)
		}
		scenarios = loaded
	}

	reqs := make([]services.PlanRequest, 0, len(scenarios))
	for _, sc := range scenarios {
		reqs = append(reqs, services.PlanRequest{
			DistanceKm:      sc.DistanceKm,
			AvailableLanes:  sc.AvailableLanes,
			ExactRemainders: sc.ExactRemainders,
		})
	}

	svc := services.NewStrategyService(nil, config.GetInt("BATCH_WORKERS", 5))
	results, err := svc.PlanBatch(context.Background(), reqs)
	if err != nil {
		log.Fatal(err)
	}

	for i, res := range results {
		if i > 0 {
			fmt.Println()
		}
		if err := scenario.Render(os.Stdout, scenarios[i], res.Strategy, res.Err); err != nil {
			log.Fatal(err)
		}
	}
}
