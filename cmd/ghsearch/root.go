package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamzaabialal/github-clone/internal/config"
	"github.com/hamzaabialal/github-clone/internal/github"
	"github.com/hamzaabialal/github-clone/internal/model"
	"github.com/hamzaabialal/github-clone/internal/service"
	"github.com/hamzaabialal/github-clone/internal/supersede"
)

var (
	configPath   string
	verbose      bool
	accountType  string
	location     string
	minFollowers string
	language     string
)

func init() {
	RootCmd.AddCommand(SearchCmd)
	RootCmd.AddCommand(UserCmd)

	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("CONFIG_PATH"), "path to a YAML config file")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log GitHub requests to stderr")

	SearchCmd.Flags().StringVarP(&accountType, "type", "t", model.AccountTypeAny, "account type: All, Users or Organizations")
	SearchCmd.Flags().StringVarP(&location, "location", "l", "", "only accounts in this location")
	SearchCmd.Flags().StringVarP(&minFollowers, "followers", "f", "", "minimum number of followers")

	UserCmd.Flags().StringVarP(&language, "language", "L", model.AllLanguages, "only show repositories in this language")
}

// RootCmd is the main command for the 'ghsearch' binary.
var RootCmd = &cobra.Command{
	Use:          "ghsearch",
	Short:        "Search GitHub users and view their repositories",
	SilenceUsage: true,
}

// SearchCmd runs a user search and prints a table of accounts.
var SearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search GitHub users",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, logger, err := newAPI(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		svc := service.NewSearchService(api, supersede.New(), logger)

		res, err := svc.Search(cmd.Context(), "", strings.Join(args, " "), model.SearchFilters{
			Type:         accountType,
			Location:     location,
			MinFollowers: minFollowers,
		})
		if err != nil {
			return err
		}
		return printSearch(cmd.OutOrStdout(), res)
	},
}

// UserCmd prints one profile and its repositories.
var UserCmd = &cobra.Command{
	Use:   "user <login>",
	Short: "Show a user's profile and repositories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, logger, err := newAPI(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		svc := service.NewProfileService(api, supersede.New(), logger)

		view, err := svc.Load(cmd.Context(), "", args[0], language)
		if err != nil {
			return err
		}
		return printProfile(cmd.OutOrStdout(), view)
	},
}

// newAPI builds a GitHub client from the same configuration the server
// reads, so GITHUB_TOKEN and GITHUB_API_URL apply here too.
func newAPI(stderr io.Writer) (github.API, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	client := github.NewClient(github.Options{
		BaseURL: cfg.GitHub.BaseURL,
		Token:   cfg.GitHub.Token,
		Timeout: time.Duration(cfg.GitHub.TimeoutSeconds) * time.Second,
		RPS:     cfg.GitHub.RPS,
		Burst:   cfg.GitHub.Burst,
	}, logger)
	return client, logger, nil
}

func printSearch(w io.Writer, res *model.SearchResult) error {
	if res.Count() == 0 {
		_, err := fmt.Fprintf(w, "No users found for %q\n", strings.TrimSpace(res.Query))
		return err
	}

	fmt.Fprintf(w, "Found %d users\n\n", res.Count())
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LOGIN\tTYPE\tSCORE")
	for _, u := range res.Items {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\n", u.Login, u.Type, u.Score)
	}
	return tw.Flush()
}

func printProfile(w io.Writer, view *model.ProfileView) error {
	p := view.Profile
	fmt.Fprintf(w, "%s (@%s)\n", p.DisplayName(), p.Login)
	if p.Bio != "" {
		fmt.Fprintln(w, p.Bio)
	}
	fmt.Fprintf(w, "%d repositories  %d followers  %d following  %d gists\n",
		p.PublicRepos, p.Followers, p.Following, p.PublicGists)
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Joined %s\n", p.CreatedAt.Format("January 2, 2006"))
	}
	fmt.Fprintln(w)

	if len(view.Repositories) == 0 {
		_, err := fmt.Fprintln(w, "No public repositories found")
		return err
	}

	fmt.Fprintf(w, "Showing %d of %d\n\n", len(view.Visible), len(view.Repositories))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLANGUAGE\tSTARS\tFORKS\tKIND\tUPDATED")
	for _, r := range view.Visible {
		kind := "Original"
		if r.Fork {
			kind = "Forked"
		}
		if r.Private {
			kind += ", Private"
		}
		lang := r.Language
		if lang == "" {
			lang = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			r.Name, lang, r.StargazersCount, r.ForksCount, kind, r.UpdatedAt.Format("January 2, 2006"))
	}
	return tw.Flush()
}
