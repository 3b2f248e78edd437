// Command evaluate runs the refund decision engine on a single request
// from the command line, without touching the database.
//
//	evaluate -requested 2 -total 45 -count 20 -first 2025-03-01 -prior 4
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"refund-decision-be/internal/config"
	"refund-decision-be/pkg/refund/decision"

	"github.com/fatih/color"
)

const dateLayout = "2006-01-02"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	requested := fs.Int("requested", 0, "shortlists requested for refund")
	total := fs.Float64("total", 0, "total refund amount requested")
	count := fs.Int("count", 0, "shortlists the requester has bought")
	first := fs.String("first", "", "first approved activity date (YYYY-MM-DD)")
	prior := fs.Int("prior", 0, "refunds approved before")
	notes := fs.String("notes", "", "refund notes")
	asOf := fs.String("as-of", "", "evaluate as of this date instead of today (YYYY-MM-DD)")
	asJSON := fs.Bool("json", false, "print the decision and case patch as JSON")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	in := decision.Input{
		ShortlistsRequested:      *requested,
		TotalSumRequested:        decision.Amount(*total),
		ShortlistCount:           *count,
		PriorApprovedRefundCount: *prior,
		RefundNotes:              *notes,
	}
	if *first != "" {
		d, err := time.Parse(dateLayout, *first)
		if err != nil {
			fmt.Fprintf(stderr, "invalid -first: %v\n", err)
			return 2
		}
		in.FirstActivityDate = &d
	}

	var opts []decision.Option
	if *asOf != "" {
		now, err := time.Parse(dateLayout, *asOf)
		if err != nil {
			fmt.Fprintf(stderr, "invalid -as-of: %v\n", err)
			return 2
		}
		opts = append(opts, decision.WithClock(func() time.Time { return now }))
	}

	engine := decision.NewEngine(config.LoadPolicy(), opts...)

	d, err := engine.Evaluate(in)
	if err != nil {
		var verr *decision.ValidationError
		if errors.As(err, &verr) {
			color.New(color.FgRed).Fprintln(stderr, "Please fill in all required fields")
			for _, f := range verr.Fields {
				fmt.Fprintf(stderr, "  - %s\n", f)
			}
			return 1
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]interface{}{
			"decision": d,
			"patch":    engine.Patch(in, d),
		}); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	printDecision(stdout, d)
	return 0
}

func styleColor(s decision.Style) *color.Color {
	switch s {
	case decision.StyleSuccess:
		return color.New(color.FgGreen, color.Bold)
	case decision.StyleHold:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func printDecision(w io.Writer, d decision.Decision) {
	styleColor(d.DisplayStyle).Fprintln(w, d.DisplayMessage)
	fmt.Fprintf(w, "Reason:      %s\n", d.Reason)
	fmt.Fprintf(w, "Experience:  %s\n", d.Experience)
	fmt.Fprintf(w, "Ratio:       %s\n", d.Ratio)
	fmt.Fprintf(w, "Approved:    %s for %d shortlists\n", d.ApprovedAmount.StringFixed(2), d.ApprovedShortlistCount)
}
