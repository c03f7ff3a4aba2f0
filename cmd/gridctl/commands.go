package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/league-grid/internal/app"
	"github.com/riskibarqy/league-grid/internal/config"
	"github.com/riskibarqy/league-grid/internal/domain/grid"
	"github.com/riskibarqy/league-grid/internal/platform/logging"
	"github.com/riskibarqy/league-grid/internal/usecase"
)

type rootOptions struct {
	file     string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "gridctl",
		Short:         "Inspect league exports and generate immaculate grids",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "league export (.json or .json.gz); defaults to LEAGUE_FILE_PATH")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error; defaults to LOG_LEVEL")

	root.AddCommand(summaryCmd(opts))
	root.AddCommand(achievementsCmd(opts))
	root.AddCommand(intersectCmd(opts))
	root.AddCommand(gridCmd(opts))
	root.AddCommand(playerCmd(opts))
	root.AddCommand(searchCmd(opts))
	return root
}

// withLeague loads the export named by --file and hands the wired services to fn.
func withLeague(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, services *app.Services) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = logging.ParseLevel(opts.logLevel)
	}
	if opts.file != "" {
		cfg.LeagueFilePath = opts.file
	}
	if strings.TrimSpace(cfg.LeagueFilePath) == "" {
		return fmt.Errorf("--file or LEAGUE_FILE_PATH is required")
	}

	logger := logging.NewConsole(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	services, err := app.NewServices(cfg, logger)
	if err != nil {
		return err
	}
	if _, err := services.LoadLeagueFile(ctx, cfg.LeagueFilePath); err != nil {
		return err
	}
	return fn(ctx, services)
}

func summaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print league bounds, franchises and award diagnostics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLeague(cmd, opts, func(ctx context.Context, services *app.Services) error {
				summary, err := services.League.Summary(ctx)
				if err != nil {
					return err
				}
				printSummary(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}
}

func printSummary(out io.Writer, s usecase.LeagueSummary) {
	fmt.Fprintf(out, "sport:    %s\n", s.Sport)
	fmt.Fprintf(out, "players:  %d\n", s.Players)
	fmt.Fprintf(out, "seasons:  %d-%d\n", s.Bounds.MinSeason, s.Bounds.MaxSeason)
	fmt.Fprintf(out, "awards:   %d indexed, %d unmapped\n", s.Diagnostics.Indexed, s.Diagnostics.Unmapped)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FID\tABBREV\tNAME\tPLAYERS")
	for _, f := range s.Franchises {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", f.ID, f.Abbrev, f.Name, f.Members)
	}
	_ = w.Flush()

	for _, label := range s.Diagnostics.TopUnmapped(10) {
		fmt.Fprintf(out, "unmapped: %s\n", label)
	}
}

func achievementsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List achievements offered for the league with player counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLeague(cmd, opts, func(ctx context.Context, services *app.Services) error {
				items, err := services.League.Achievements(ctx)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tLABEL\tPLAYERS")
				for _, item := range items {
					fmt.Fprintf(w, "%s\t%s\t%d\n", item.Definition.ID, item.Definition.Label, item.Players)
				}
				return w.Flush()
			})
		},
	}
}

func intersectCmd(opts *rootOptions) *cobra.Command {
	var a, b string
	var season int
	var countOnly bool

	cmd := &cobra.Command{
		Use:   "intersect",
		Short: "Answer one team/achievement intersection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			left, err := grid.ParseConstraint(a)
			if err != nil {
				return err
			}
			right, err := grid.ParseConstraint(b)
			if err != nil {
				return err
			}
			return withLeague(cmd, opts, func(ctx context.Context, services *app.Services) error {
				result, err := services.League.Intersect(ctx, usecase.IntersectQuery{
					A:         left,
					B:         right,
					Season:    season,
					WantCount: countOnly,
				})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s\t%d\n", result.Key, result.Count)
				for _, pid := range result.Members {
					fmt.Fprintln(out, pid)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&a, "a", "", "first constraint, team:<fid> or ach:<ID>")
	cmd.Flags().StringVar(&b, "b", "", "second constraint, team:<fid> or ach:<ID>")
	cmd.Flags().IntVar(&season, "season", 0, "restrict to one season")
	cmd.Flags().BoolVar(&countOnly, "count", false, "print the count only")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	return cmd
}

func gridCmd(opts *rootOptions) *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Generate a 3x3 grid and print its cell counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLeague(cmd, opts, func(ctx context.Context, services *app.Services) error {
				input := usecase.GenerateGridInput{}
				if cmd.Flags().Changed("seed") {
					input.Seed = &seed
				}
				g, err := services.Grid.Generate(ctx, input)
				if err != nil {
					return err
				}
				printGrid(cmd.OutOrStdout(), g)
				return nil
			})
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for a reproducible grid")
	return cmd
}

func printGrid(out io.Writer, g grid.Grid) {
	fmt.Fprintf(out, "grid %s (seed %d)\n", g.ID, g.Seed)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, col := range g.Cols {
		fmt.Fprintf(w, "\t%s", constraintLabel(col))
	}
	fmt.Fprintln(w)
	for r, row := range g.Rows {
		fmt.Fprint(w, constraintLabel(row))
		for c := range g.Cols {
			fmt.Fprintf(w, "\t%d", g.Counts[r][c])
		}
		fmt.Fprintln(w)
	}
	_ = w.Flush()
}

func constraintLabel(c grid.Constraint) string {
	if c.Label != "" {
		return c.Label
	}
	return c.Key()
}

func playerCmd(opts *rootOptions) *cobra.Command {
	var pid int

	cmd := &cobra.Command{
		Use:   "player",
		Short: "Print a player's franchises, totals and achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLeague(cmd, opts, func(ctx context.Context, services *app.Services) error {
				profile, err := services.Player.Profile(ctx, pid)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%d %s\n", profile.PID, profile.Name)
				fmt.Fprintf(out, "seasons: %d  games: %d  hof: %t\n",
					profile.Totals.SeasonsPlayed, profile.Totals.GamesPlayed, profile.HallOfFame)
				for _, f := range profile.Franchises {
					fmt.Fprintf(out, "team: %d %s\n", f.ID, f.Name)
				}
				for _, result := range profile.Achievements {
					if result.Met {
						fmt.Fprintf(out, "achievement: %s\n", result.ID)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&pid, "pid", -1, "player id")
	_ = cmd.MarkFlagRequired("pid")
	return cmd
}

func searchCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Find players by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLeague(cmd, opts, func(ctx context.Context, services *app.Services) error {
				refs, err := services.Player.Search(ctx, args[0], limit)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "PID\tNAME\tGP")
				for _, ref := range refs {
					fmt.Fprintf(w, "%d\t%s\t%d\n", ref.PID, ref.Name, ref.GamesPlayed)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum results")
	return cmd
}
