package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/aperture/internal/config"
	"github.com/abhisek/aperture/internal/llm"
	"github.com/abhisek/aperture/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded photo evaluation requests",
}

// openEventStore opens the database without loading progress or building a
// provider; the llm commands only read events.
func openEventStore(cmd *cobra.Command) (*store.Store, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.NewLoader(nil).Load(configPath)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func rule(width int) string { return strings.Repeat("─", width) }

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent evaluation requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		opts := store.QueryOpts{Limit: limit, Purpose: purpose}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No evaluation requests recorded.")
			return nil
		}

		heading.Printf("%-5s  %-15s  %-10s  %-26s  %9s  %7s  %s\n",
			"ID", "When", "Provider", "Model", "Tokens", "Latency", "")
		fmt.Println(rule(86))
		for _, e := range events {
			status := good.Sprint("ok")
			if !e.Success {
				status = bad.Sprint("failed")
			}
			fmt.Printf("%-5d  %-15s  %-10s  %-26s  %9s  %7s  %s\n",
				e.ID,
				truncate(humanize.Time(e.Timestamp), 15),
				e.Provider,
				truncate(e.Model, 26),
				humanize.Comma(int64(e.InputTokens+e.OutputTokens)),
				formatLatency(e.LatencyMs),
				status,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the request and response of one evaluation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		field := func(label, value string) { fmt.Printf("%-10s %s\n", dim.Sprint(label), value) }
		field("ID", strconv.Itoa(e.ID))
		field("Time", e.Timestamp.Local().Format(time.DateTime)+" ("+humanize.Time(e.Timestamp)+")")
		field("Model", e.Provider+" / "+e.Model)
		field("Purpose", e.Purpose)
		field("Tokens", fmt.Sprintf("%s in, %s out", humanize.Comma(int64(e.InputTokens)), humanize.Comma(int64(e.OutputTokens))))
		field("Latency", formatLatency(e.LatencyMs))
		if e.Success {
			field("Result", good.Sprint("ok"))
		} else {
			field("Result", bad.Sprint(e.ErrorMessage))
		}

		section("Request", e.RequestBody)
		section("Response", e.ResponseBody)
		return nil
	},
}

// section prints a captured body, indenting it when it is JSON.
func section(title, body string) {
	fmt.Println()
	heading.Println(title)
	fmt.Println(rule(60))
	if body == "" {
		fmt.Println(dim.Sprint("(not captured)"))
		return
	}
	var buf bytes.Buffer
	if json.Indent(&buf, []byte(body), "", "  ") == nil {
		fmt.Println(buf.String())
		return
	}
	fmt.Println(body)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No evaluation requests recorded.")
			return nil
		}

		heading.Println("Usage")
		fmt.Printf("%-16s  %6s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Latency")
		fmt.Println(rule(58))
		for _, st := range byPurpose {
			fmt.Printf("%-16s  %6d  %10s  %10s  %8s\n",
				st.Purpose, st.Calls,
				humanize.Comma(int64(st.InputTokens)), humanize.Comma(int64(st.OutputTokens)),
				formatLatency(st.AvgLatencyMs))
		}
		fmt.Println(rule(58))
		fmt.Printf("%-16s  %6d  %10s  %10s\n", "Total",
			lo.SumBy(byPurpose, func(st store.LLMUsageStats) int { return st.Calls }),
			humanize.Comma(int64(lo.SumBy(byPurpose, func(st store.LLMUsageStats) int { return st.InputTokens }))),
			humanize.Comma(int64(lo.SumBy(byPurpose, func(st store.LLMUsageStats) int { return st.OutputTokens }))))

		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) == 0 {
			return nil
		}

		fmt.Println()
		heading.Println("Estimated cost (USD)")
		fmt.Printf("%-32s  %6s  %10s\n", "Model", "Calls", "Cost")
		fmt.Println(rule(52))
		var total float64
		var unpriced []string
		for _, mu := range byModel {
			price := llm.LookupCost(mu.Model)
			if price == nil {
				unpriced = append(unpriced, mu.Model)
				fmt.Printf("%-32s  %6d  %10s\n", truncate(mu.Model, 32), mu.Calls, dim.Sprint("?"))
				continue
			}
			c := price.Cost(mu.InputTokens, mu.OutputTokens)
			total += c
			fmt.Printf("%-32s  %6d  %10s\n", truncate(mu.Model, 32), mu.Calls, formatCost(c))
		}
		fmt.Println(rule(52))
		label := "Total"
		if len(unpriced) > 0 {
			label = "Total (partial)"
		}
		fmt.Printf("%-32s  %6s  %10s\n", label, "", formatCost(total))
		if len(unpriced) > 0 {
			fmt.Printf("\nNo pricing for: %s\n", strings.Join(lo.Uniq(unpriced), ", "))
		}
		return nil
	},
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func formatLatency(ms int64) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.1fs", float64(ms)/1000)
	}
	return fmt.Sprintf("%dms", ms)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. "+llm.PurposeEvaluation+")")
	llmListCmd.Flags().Duration("since", 0, "Only show events newer than this (e.g. 24h)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
