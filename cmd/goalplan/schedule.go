package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ndewijer/investment-goal-tracker/internal/allocator"
	"github.com/ndewijer/investment-goal-tracker/internal/api/request"
	"github.com/ndewijer/investment-goal-tracker/internal/validation"
)

// planFlags are the allocation inputs shared by schedule and compare.
type planFlags struct {
	goal      string
	start     string
	end       string
	policy    string
	increment int64
	output    string
}

func (f *planFlags) bind(fs *pflag.FlagSet, withPolicy bool) {
	fs.StringVarP(&f.goal, "goal", "g", "", "Goal amount, e.g. 12000 or 12000.50")
	fs.StringVarP(&f.start, "start", "s", "", "Start date (YYYY-MM-DD)")
	fs.StringVarP(&f.end, "end", "e", "", "End date (YYYY-MM-DD)")
	fs.Int64Var(&f.increment, "increment", allocator.DefaultRoundingIncrement, "Round monthly amounts to this multiple")
	fs.StringVarP(&f.output, "output", "o", "table", "Output format: table, json or yaml")
	if withPolicy {
		fs.StringVarP(&f.policy, "policy", "p", string(allocator.Fixed), "Allocation policy: fixed or growing")
	}
}

// request validates the flags and converts them to allocator input.
func (f *planFlags) request(requirePolicy bool) (allocator.Request, error) {
	goal, err := decimal.NewFromString(strings.TrimSpace(f.goal))
	if err != nil {
		return allocator.Request{}, fmt.Errorf("invalid --goal %q: %w", f.goal, err)
	}
	increment := f.increment

	sreq := request.ScheduleRequest{
		Goal:              goal,
		StartDate:         f.start,
		EndDate:           f.end,
		Policy:            f.policy,
		RoundingIncrement: &increment,
	}
	if err := validation.ValidateScheduleRequest(sreq, requirePolicy); err != nil {
		return allocator.Request{}, err
	}

	start, err := validation.ParseDate(f.start)
	if err != nil {
		return allocator.Request{}, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := validation.ParseDate(f.end)
	if err != nil {
		return allocator.Request{}, fmt.Errorf("invalid --end: %w", err)
	}
	req := allocator.Request{
		Goal:              goal,
		StartDate:         start,
		EndDate:           end,
		Policy:            allocator.Fixed,
		RoundingIncrement: increment,
	}
	if requirePolicy {
		policy, err := allocator.ParsePolicy(f.policy)
		if err != nil {
			return allocator.Request{}, err
		}
		req.Policy = policy
	}
	return req, nil
}

func newScheduleCmd() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Compute a month-by-month contribution schedule",
		Example: `  goalplan schedule --goal 12000 --start 2025-01-01 --end 2025-12-31 --policy growing
  goalplan schedule -g 5000 -s 2025-03-01 -e 2025-08-01 -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := flags.request(true)
			if err != nil {
				return err
			}
			res, err := allocator.ComputeSchedule(req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), flags.output, []plan{newPlan(req, res)})
		},
	}

	flags.bind(cmd.Flags(), true)
	for _, name := range []string{"goal", "start", "end"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newCompareCmd() *cobra.Command {
	var flags planFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the fixed and growing schedules for the same goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fixed, err := flags.request(false)
			if err != nil {
				return err
			}
			growing := fixed
			growing.Policy = allocator.Growing

			results, err := allocator.ComputeBatch(cmd.Context(), []allocator.Request{fixed, growing})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), flags.output, []plan{
				newPlan(fixed, results[0]),
				newPlan(growing, results[1]),
			})
		},
	}

	flags.bind(cmd.Flags(), false)
	for _, name := range []string{"goal", "start", "end"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
