package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"portfolio_analyzer/internal/domain/entity"
)

// writeReport prints the overview, holdings, risk and recommendation panels of a report.
func writeReport(w io.Writer, r *entity.PortfolioReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Portfolio %s on %s (%s)\n\n", r.WalletAddress, r.NetworkName, r.Status)

	fmt.Fprintln(tw, "OVERVIEW")
	fmt.Fprintf(tw, "  Total value\t$%.2f\n", r.Snapshot.TotalValue)
	fmt.Fprintf(tw, "  24h change\t$%+.2f (%+.2f%%)\n", r.Snapshot.DayChange, r.Snapshot.DayChangePercent)
	fmt.Fprintf(tw, "  Tokens\t%d\n\n", r.Snapshot.TokenCount)

	fmt.Fprintln(tw, "HOLDINGS")
	if len(r.Tokens) == 0 {
		fmt.Fprintln(tw, "  No tokens found for this address.")
	} else {
		fmt.Fprintln(tw, "  SYMBOL\tBALANCE\tVALUE\t24H\tRISK\tACTION")
		for _, t := range r.Tokens {
			balance := t.FormattedBalance
			if balance == "" {
				balance = fmt.Sprintf("%.4f", t.Balance)
			}
			fmt.Fprintf(tw, "  %s\t%s\t$%.2f\t%+.2f%%\t%s\t%s\n",
				t.Symbol, balance, t.USDValue, t.PriceChange24h, t.RiskScore, t.Recommendation)
		}
	}
	for _, e := range r.Errors {
		fmt.Fprintf(tw, "  ! %s skipped: %s\n", e.TokenAddress, e.Message)
	}
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "RISK (overall %d/100)\n", r.Risk.OverallScore)
	for _, m := range r.Risk.Metrics {
		fmt.Fprintf(tw, "  %s\t%.0f\t%s\t%s\n", m.Name, m.Score, m.Band, m.Description)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "RECOMMENDATIONS")
	if len(r.Recommendations) == 0 {
		fmt.Fprintln(tw, "  Nothing to suggest.")
	}
	for _, rec := range r.Recommendations {
		title := rec.Title
		if rec.Token != "" {
			title += " [" + rec.Token + "]"
		}
		fmt.Fprintf(tw, "  [%s] %s (%.0f%% confidence)\n", strings.ToUpper(string(rec.Type)), title, rec.Confidence)
		fmt.Fprintf(tw, "    %s\n", rec.Description)
		for _, reason := range rec.Reasoning {
			fmt.Fprintf(tw, "    - %s\n", reason)
		}
	}

	return tw.Flush()
}
