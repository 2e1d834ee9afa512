package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/partner-desk/internal/domain"
	"github.com/spec-kit/partner-desk/internal/insights"
)

const timeLayout = "2006-01-02 15:04"

func newTabWriter(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show headline metrics, the health ring and focus items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, now, err := opts.load()
			if err != nil {
				return err
			}
			snap := st.Snapshot()
			metrics := insights.ComputeDashboard(snap.Partners, snap.Interactions, snap.Threads, now)
			ring := metrics.Ring

			w := newTabWriter(cmd.OutOrStdout())
			fmt.Fprintf(w, "Active partners\t%d\n", metrics.ActivePartners)
			fmt.Fprintf(w, "Open threads\t%d\n", metrics.OpenThreads)
			fmt.Fprintf(w, "Overdue follow-ups\t%d\n", metrics.OverdueFollowUps)
			fmt.Fprintf(w, "Interactions this week\t%d\n", metrics.WeeklyInteractions)
			fmt.Fprintf(w, "Health ring\thealthy %d (%.0f%%)  attention %d (%.0f%%)  critical %d (%.0f%%)  neutral %d\n",
				ring.Healthy, 100*ring.Fraction(domain.HealthHealthy),
				ring.Attention, 100*ring.Fraction(domain.HealthAttention),
				ring.Critical, 100*ring.Fraction(domain.HealthCritical),
				ring.Neutral)
			if err := w.Flush(); err != nil {
				return err
			}

			urgent, other := insights.ClassifyFocus(insights.BuildFocusItems(snap.Partners, snap.Interactions, snap.Threads, now))
			if err := printFocus(cmd.OutOrStdout(), "Urgent", urgent); err != nil {
				return err
			}
			return printFocus(cmd.OutOrStdout(), "Other", other)
		},
	}
}

func printFocus(out io.Writer, heading string, items []domain.FocusItem) error {
	fmt.Fprintf(out, "\n%s focus (%d)\n", heading, len(items))
	if len(items) == 0 {
		return nil
	}
	w := newTabWriter(out)
	fmt.Fprintln(w, "PRIORITY\tTYPE\tPARTNER\tTITLE\tDUE")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", item.Priority, item.Type, item.PartnerName, item.Title, formatDue(item.DueDate))
	}
	return w.Flush()
}

func formatDue(due *time.Time) string {
	if due == nil {
		return "-"
	}
	return due.Format("2006-01-02")
}

func newPartnersCmd(opts *rootOptions) *cobra.Command {
	var query insights.PartnerQuery
	var sortField string

	cmd := &cobra.Command{
		Use:   "partners",
		Short: "List partners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query.Sort = insights.PartnerSortField(sortField)
			if !query.Sort.Valid() {
				return fmt.Errorf("unknown sort %q", sortField)
			}
			st, _, err := opts.load()
			if err != nil {
				return err
			}

			w := newTabWriter(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME\tTIER\tHEALTH\tOPEN\tREVENUE\tLAST ACTIVITY")
			for _, p := range insights.QueryPartners(st.Partners(), query) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.0f\t%s\n",
					p.ID, p.Name, p.Tier, p.Health, p.OpenThreads, p.Revenue, p.LastActivity.Format(timeLayout))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&query.Search, "search", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&query.Health, "health", insights.FilterAll, "health filter")
	cmd.Flags().StringVar(&sortField, "sort", string(insights.SortByLastActivity), "name, health, revenue or lastActivity")
	return cmd
}

func newPartnerCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "partner <id>",
		Short: "Show one partner's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := opts.load()
			if err != nil {
				return err
			}
			partner, ok := st.Partner(args[0])
			if !ok {
				return fmt.Errorf("partner %q not found", args[0])
			}
			history := st.HealthHistory(partner.ID)
			trend := insights.PartnerHealthTrend(partner, history)
			if trend == insights.TrendNone {
				trend = "n/a"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s, %s)\n", partner.Name, partner.Tier, partner.Segment)
			fmt.Fprintf(out, "Health: %s, trend %s\n", partner.Health, trend)
			fmt.Fprintf(out, "Account manager: %s\n", partner.AccountManager)

			primary, others := insights.SplitContacts(st.Contacts(partner.ID))
			if primary != nil {
				fmt.Fprintf(out, "Primary contact: %s %s <%s>\n", primary.FirstName, primary.LastName, primary.Email)
			}
			if len(others) > 0 {
				fmt.Fprintf(out, "Other contacts: %d\n", len(others))
			}

			active, resolved := insights.SplitPartnerThreads(st.Threads(), partner.ID)
			fmt.Fprintf(out, "\nThreads: %d active, %d resolved\n", len(active), len(resolved))
			w := newTabWriter(out)
			for _, t := range active {
				fmt.Fprintf(w, "  %s\t%s\t%s\n", t.Status, t.Priority, t.Title)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(out, "\nTimeline")
			w = newTabWriter(out)
			for _, i := range insights.PartnerTimeline(st.Interactions(), partner.ID) {
				fmt.Fprintf(w, "  %s\t%s\t%s\n", i.Date.Format(timeLayout), i.Channel, i.Summary)
			}
			return w.Flush()
		},
	}
}

func newInteractionsCmd(opts *rootOptions) *cobra.Command {
	var query insights.InteractionQuery

	cmd := &cobra.Command{
		Use:   "interactions",
		Short: "List interactions grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, now, err := opts.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, group := range insights.GroupInteractionsByDay(insights.QueryInteractions(st.Interactions(), query)) {
				fmt.Fprintln(out, group.Day)
				w := newTabWriter(out)
				for _, i := range group.Interactions {
					flag := ""
					if insights.IsOverdue(i, now) {
						flag = "OVERDUE"
					}
					fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", i.Date.Format("15:04"), i.PartnerName, i.Channel, i.Summary, flag)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&query.Search, "search", "", "search summary and partner name")
	cmd.Flags().StringVar(&query.Kind, "type", insights.FilterAll, "direct, indirect or all")
	return cmd
}

func newThreadsCmd(opts *rootOptions) *cobra.Command {
	var query insights.ThreadQuery

	cmd := &cobra.Command{
		Use:   "threads",
		Short: "List threads grouped by visibility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := opts.load()
			if err != nil {
				return err
			}
			groups := insights.GroupThreadsByVisibility(insights.QueryThreads(st.Threads(), query))
			out := cmd.OutOrStdout()
			for _, section := range []struct {
				title   string
				threads []domain.Thread
			}{
				{"Owned", groups.Owned},
				{"Action required", groups.ActionRequired},
				{"FYI", groups.FYI},
			} {
				fmt.Fprintf(out, "%s (%d)\n", section.title, len(section.threads))
				w := newTabWriter(out)
				for _, t := range section.threads {
					fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
						strings.ToUpper(string(t.Priority)), t.Status, t.PartnerName, t.Title, t.UpdatedAt.Format(timeLayout))
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&query.Search, "search", "", "search title and partner name")
	cmd.Flags().StringVar(&query.Visibility, "visibility", insights.FilterAll, "owned, action_required, fyi or all")
	cmd.Flags().StringVar(&query.Status, "status", insights.FilterAll, "thread status or all")
	return cmd
}
