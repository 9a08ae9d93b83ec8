// Package cli wires the use cases to a cobra command tree.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/prreview/prreview/internal/adapter/github"
	"github.com/prreview/prreview/internal/domain"
	"github.com/prreview/prreview/internal/usecase/review"
)

// ErrVersionRequested indicates the user requested the CLI version and
// no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// PullRequestReviewer runs the full fetch, review, and submit lifecycle
// for one pull request.
type PullRequestReviewer interface {
	ReviewPullRequest(ctx context.Context, owner, repo string, number int) error
}

// DiffReviewer reviews already-obtained diff text without submitting.
type DiffReviewer interface {
	ReviewDiff(ctx context.Context, pr domain.PullRequest, diffText string) ([]domain.ReviewComment, error)
}

// LocalDiffSource produces diff text from the local repository.
type LocalDiffSource interface {
	DiffText(ctx context.Context, baseRef, targetRef string) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	PullRequests     PullRequestReviewer
	Diffs            DiffReviewer
	Local            LocalDiffSource
	Args             Arguments
	DefaultBaseRef   string
	DefaultEventPath string
	Version          string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "prreview",
		Short: "AI pull request reviewer",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(reviewCommand(deps.PullRequests, deps.DefaultEventPath))
	root.AddCommand(localCommand(deps.Diffs, deps.Local, deps.DefaultBaseRef))

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func reviewCommand(reviewer PullRequestReviewer, defaultEventPath string) *cobra.Command {
	var owner string
	var repo string
	var prNumber int
	var eventPath string

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review a pull request and post inline comments",
		Long: `Review a pull request and post the findings as one review.

Target selection: pass --owner, --repo and --pr explicitly, or run
inside GitHub Actions where the event payload supplies them. Event
actions other than opened and synchronize exit successfully without
reviewing anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if owner == "" || repo == "" || prNumber <= 0 {
				path := eventPath
				if path == "" {
					path = defaultEventPath
				}
				event, err := github.LoadEvent(path)
				if err != nil {
					return fmt.Errorf("no pull request target: %w (pass --owner, --repo and --pr, or set GITHUB_EVENT_PATH)", err)
				}
				if !event.ShouldReview() {
					fmt.Fprintf(cmd.OutOrStdout(), "event action %q does not trigger a review, exiting\n", event.Action)
					return nil
				}
				owner = event.Repository.Owner.Login
				repo = event.Repository.Name
				prNumber = event.PullNumber()
			}

			if owner == "" || repo == "" || prNumber <= 0 {
				return fmt.Errorf("incomplete pull request target: owner=%q repo=%q pr=%d", owner, repo, prNumber)
			}

			return reviewer.ReviewPullRequest(ctx, owner, repo, prNumber)
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Repository owner")
	cmd.Flags().StringVar(&repo, "repo", "", "Repository name")
	cmd.Flags().IntVar(&prNumber, "pr", 0, "Pull request number")
	cmd.Flags().StringVar(&eventPath, "event-path", "", "GitHub Actions event payload path (defaults to GITHUB_EVENT_PATH)")

	return cmd
}

func localCommand(diffs DiffReviewer, local LocalDiffSource, defaultBaseRef string) *cobra.Command {
	var baseRef string
	var targetRef string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "local [target]",
		Short: "Review a local branch against a base reference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) > 0 {
				targetRef = args[0]
			}
			if targetRef == "" {
				resolved, err := local.CurrentBranch(ctx)
				if err != nil {
					return fmt.Errorf("detect target branch: %w", err)
				}
				targetRef = resolved
			}

			diffText, err := local.DiffText(ctx, baseRef, targetRef)
			if err != nil {
				return fmt.Errorf("compute diff: %w", err)
			}
			if diffText == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "no changes between %s and %s\n", baseRef, targetRef)
				return nil
			}

			pr := domain.PullRequest{
				Title: fmt.Sprintf("Local review of %s against %s", targetRef, baseRef),
			}
			comments, err := diffs.ReviewDiff(ctx, pr, diffText)
			if err != nil {
				return err
			}

			return printComments(cmd.OutOrStdout(), comments, asJSON || !review.IsOutputTerminal())
		},
	}

	cmd.Flags().StringVar(&baseRef, "base", defaultBaseRef, "Base reference to diff against")
	cmd.Flags().StringVar(&targetRef, "target", "", "Target reference (defaults to the current branch)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit findings as JSON")

	return cmd
}

// printComments writes findings as JSON when requested or when output
// is piped, and human-readably otherwise.
func printComments(w io.Writer, comments []domain.ReviewComment, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if comments == nil {
			comments = []domain.ReviewComment{}
		}
		return encoder.Encode(comments)
	}

	if len(comments) == 0 {
		fmt.Fprintln(w, "No findings.")
		return nil
	}
	for _, c := range comments {
		fmt.Fprintf(w, "%s:%d\n  %s\n", c.Path, c.Line, c.Body)
	}
	return nil
}
