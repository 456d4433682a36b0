package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/worldinsights/internal/dataset"
	"github.com/jask/worldinsights/internal/nav"
	"github.com/jask/worldinsights/internal/server"
	"github.com/jask/worldinsights/internal/tui"
	"github.com/jask/worldinsights/internal/view"
)

func newBrowseCmd(e *env) *cobra.Command {
	var start string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive insights browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := nav.Walk(e.world, nav.ParsePath(start))
			if err != nil {
				return err
			}
			app := tui.New(tui.Options{
				World:         e.world,
				UI:            e.cfg.UI,
				Log:           e.log,
				Start:         s,
				MarkdownStyle: "auto",
			})
			e.log.Info("browse", zap.String("start", s.String()))
			if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "path", "", "start at a place, e.g. Africa/Kenya")
	return cmd
}

func newShowCmd(e *env) *cobra.Command {
	var (
		issue    int
		severity string
		period   string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "show [region/country/sector]",
		Short: "Print the view for a place, or one issue with --issue",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			if len(args) == 1 {
				raw = args[0]
			}
			s, err := nav.Walk(e.world, nav.ParsePath(raw))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("issue") {
				if s, err = nav.Reduce(e.world, s, nav.SelectIssue{ID: issue}); err != nil {
					return err
				}
			}
			f := view.DefaultFilters()
			if f.Severity, err = view.ParseSeverityFilter(severity); err != nil {
				return err
			}
			if f.Time, err = view.ParseTimeFilter(period); err != nil {
				return err
			}
			v := view.Render(e.world, s, f)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), v)
			}
			if v.Detail != nil {
				_, err := io.WriteString(cmd.OutOrStdout(), tui.IssueMarkdown(*v.Detail, e.cfg.UI.DashboardURL))
				return err
			}
			return writeView(cmd.OutOrStdout(), v)
		},
	}
	cmd.Flags().IntVar(&issue, "issue", 0, "show the detail of this issue id")
	cmd.Flags().StringVar(&severity, "severity", "all", "issue severity filter: all, critical, high, medium")
	cmd.Flags().StringVar(&period, "time", "all", "time filter: all, week, month")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newSearchCmd(e *env) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find regions, countries, sectors and issues by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hits := e.world.Search(strings.Join(args, " "), limit)
			e.log.Debug("search", zap.Strings("query", args), zap.Int("hits", len(hits)))
			if asJSON {
				if hits == nil {
					hits = []dataset.Hit{}
				}
				return writeJSON(cmd.OutOrStdout(), hits)
			}
			if len(hits) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No matches")
				return err
			}
			rows := make([][]string, 0, len(hits))
			for _, h := range hits {
				loc := strings.Join(h.Path, "/")
				if h.Kind == dataset.HitIssue {
					loc += "#" + strconv.Itoa(h.IssueID)
				}
				rows = append(rows, []string{string(h.Kind), h.Label, loc})
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), newTable("Kind", "Name", "Location").Rows(rows...))
			return err
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum results (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newServeCmd(e *env) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dataset over the read-only HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := e.cfg.Server
			if addr != "" {
				cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			e.log.Info("serving", zap.String("addr", cfg.Addr))
			if err := server.New(e.world, cfg, e.cfg.UI, e.log).ListenAndRun(ctx); err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			e.log.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

func newValidateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a dataset file, or the configured dataset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, name := e.world, datasetName(e.cfg.Dataset.Path)
			if len(args) == 1 {
				var err error
				if w, err = loadWorld(args[0]); err != nil {
					return err
				}
				name = args[0]
			}
			ov := w.Overview(e.cfg.UI.MatchThreshold)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d regions, %d countries, %d sectors, %d issues, %d opportunities)\n",
				name, ov.Regions, ov.Countries, ov.Sectors, ov.ActiveIssues, ov.RelatedOpportunities)
			return err
		},
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...)
}

// writeView prints a list view as a breadcrumb line and a table.
func writeView(out io.Writer, v view.View) error {
	fmt.Fprintf(out, "%s  [%s · %s]\n", strings.Join(v.Breadcrumbs, " › "), v.Filters.Time.Label(), v.Filters.Severity.Label())
	if v.Len() == 0 {
		_, err := fmt.Fprintln(out, "Nothing tracked here yet.")
		return err
	}
	var t *table.Table
	switch v.Kind {
	case view.RegionList:
		t = newTable("Region", "Impact", "Trend", "Countries", "Key issues")
		for _, r := range v.Regions {
			t.Row(r.Name, string(r.Impact), string(r.Trend), strconv.Itoa(r.Countries), strings.Join(r.KeyIssues, ", "))
		}
	case view.CountryList:
		t = newTable("Country", "Sectors")
		for _, c := range v.Countries {
			t.Row(c.Name, strconv.Itoa(c.Sectors))
		}
	case view.SectorList:
		t = newTable("Sector", "Issues")
		for _, s := range v.Sectors {
			t.Row(s.Name, strconv.Itoa(s.Issues))
		}
	default:
		t = newTable("ID", "Issue", "Severity", "Trend", "Timeline", "Opportunities")
		for _, is := range v.Issues {
			t.Row(strconv.Itoa(is.ID), is.Title, string(is.Severity), string(is.Trend), is.Timeline, strconv.Itoa(is.Opportunities))
		}
	}
	_, err := fmt.Fprintln(out, t)
	return err
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
