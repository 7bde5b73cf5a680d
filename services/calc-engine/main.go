package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/RahilKothari9/supplier-analysis/pkg/core/calc"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/insight"
	"github.com/RahilKothari9/supplier-analysis/pkg/core/utils"
)

// Offline calculator: latest-period scalars in, metrics out.
//
//	calc-engine -mode score -data '{"total_assets": 2000, "total_debt": 500, ...}'
//	cat inputs.json | calc-engine -mode all
func main() {
	mode := flag.String("mode", "all", "Mode: ratios, score, insights or all")
	dataStr := flag.String("data", "", "JSON data payload (reads stdin when empty)")
	flag.Parse()

	payload := *dataStr
	if payload == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Printf("Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		payload = string(raw)
	}
	if payload == "" {
		fmt.Println("Error: No data provided")
		os.Exit(1)
	}

	out, err := run(*mode, payload)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

type allOutput struct {
	Ratios   calc.Ratios    `json:"ratios"`
	Score    calc.RiskScore `json:"score"`
	Insights []string       `json:"insights"`
}

func run(mode, payload string) ([]byte, error) {
	var in calc.Inputs
	if err := utils.DecodeLenient(payload, &in); err != nil {
		return nil, fmt.Errorf("unmarshaling data: %w", err)
	}

	ratios := calc.ComputeRatios(in)
	score := calc.AltmanScore(in)

	var result interface{}
	switch mode {
	case "ratios":
		result = ratios
	case "score":
		result = score
	case "insights":
		result = insight.Generate(insight.FactsFrom(ratios, score))
	case "all":
		result = allOutput{
			Ratios:   ratios,
			Score:    score,
			Insights: insight.Generate(insight.FactsFrom(ratios, score)),
		}
	default:
		return nil, fmt.Errorf("unknown mode: %s", mode)
	}
	return json.MarshalIndent(result, "", "  ")
}
