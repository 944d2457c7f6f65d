package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/servilink/servilink-cli/internal/core/domain"
	"github.com/servilink/servilink-cli/internal/core/services"
)

var (
	jobListJSON   bool
	hireStart     string
	hireEnd       string
	reviewRating  int
	reviewComment string
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Hire services and follow your jobs",
	Long: `Jobs move from pending to in progress once the vendor accepts, and to
completed after both the client and the vendor confirm completion. Either side
can cancel a pending or in-progress job. Clients review completed jobs.`,
}

var jobListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your jobs",
	Long:  `List the jobs you hired (contractors) or received (vendors).`,
	Args:  cobra.NoArgs,
	RunE:  runJobList,
}

var jobShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a job and the actions available to you",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobShow,
}

var jobHireCmd = &cobra.Command{
	Use:   "hire <service-id>",
	Short: "Hire a service",
	Long: `Create a pending job for a service at its listed price.

The end date defaults to the start date. You cannot hire your own service or a
service you already have an active job for.`,
	Args: cobra.ExactArgs(1),
	RunE: runJobHire,
}

var jobAcceptCmd = &cobra.Command{
	Use:   "accept <id>",
	Short: "Accept a pending job (vendors)",
	Args:  cobra.ExactArgs(1),
	RunE:  jobActionRunner(domain.ActionAccept),
}

var jobCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Confirm that a job is completed",
	Args:  cobra.ExactArgs(1),
	RunE:  jobActionRunner(domain.ActionComplete),
}

var jobCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a pending or in-progress job",
	Args:  cobra.ExactArgs(1),
	RunE:  jobActionRunner(domain.ActionCancel),
}

var jobReviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Review a completed job (clients)",
	Args:  cobra.ExactArgs(1),
	RunE:  jobActionRunner(domain.ActionReview),
}

func init() {
	jobListCmd.Flags().BoolVar(&jobListJSON, "json", false, "output jobs as JSON")
	jobHireCmd.Flags().StringVar(&hireStart, "start", "", "start date (YYYY-MM-DD)")
	jobHireCmd.Flags().StringVar(&hireEnd, "end", "", "end date (YYYY-MM-DD, defaults to start)")
	jobReviewCmd.Flags().IntVarP(&reviewRating, "rating", "r", 0, "rating from 1 to 5")
	jobReviewCmd.Flags().StringVarP(&reviewComment, "comment", "m", "", "review comment")

	jobCmd.AddCommand(jobListCmd)
	jobCmd.AddCommand(jobShowCmd)
	jobCmd.AddCommand(jobHireCmd)
	jobCmd.AddCommand(jobAcceptCmd)
	jobCmd.AddCommand(jobCompleteCmd)
	jobCmd.AddCommand(jobCancelCmd)
	jobCmd.AddCommand(jobReviewCmd)
	rootCmd.AddCommand(jobCmd)
}

func runJobList(cmd *cobra.Command, _ []string) error {
	if jobService == nil {
		return fmt.Errorf("jobs: %w", errNotConfigured)
	}
	viewer, err := currentUser()
	if err != nil {
		return err
	}

	jobs, err := jobService.ListMine(cmd.Context(), viewer)
	if err != nil {
		return err
	}
	if jobListJSON {
		return printJSON(cmd, jobs)
	}
	if len(jobs) == 0 {
		cmd.Println("No jobs yet.")
		return nil
	}
	for i := range jobs {
		job := &jobs[i]
		with := ""
		if other := job.Counterpart(viewer.ID); other != nil && other.Name != "" {
			with = " with " + other.Name
		}
		cmd.Printf("  [%d] %-28s %-12s %s%s\n",
			job.ID, job.ServiceTitle(), job.EffectiveStatus().Label(), formatDate(job.StartDate), with)
	}
	return nil
}

func runJobShow(cmd *cobra.Command, args []string) error {
	if jobService == nil {
		return fmt.Errorf("jobs: %w", errNotConfigured)
	}
	viewer, err := currentUser()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	job, err := jobService.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	printJobView(cmd, domain.NewJobView(*job, viewer.ID))
	return nil
}

func runJobHire(cmd *cobra.Command, args []string) error {
	if jobService == nil || catalogService == nil {
		return fmt.Errorf("jobs: %w", errNotConfigured)
	}
	viewer, err := currentUser()
	if err != nil {
		return err
	}
	serviceID, err := parseID(args[0])
	if err != nil {
		return err
	}
	start, err := parseDate(hireStart)
	if err != nil {
		return err
	}
	end, err := parseDate(hireEnd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc, err := catalogService.Get(ctx, serviceID)
	if err != nil {
		return err
	}
	// Vendors can hire too, so duplicates are looked up on the hirer's side.
	known, err := jobService.Hired(ctx, viewer)
	if err != nil {
		return err
	}

	job, err := jobService.Hire(ctx, viewer, *svc, start, end, known)
	if err != nil {
		return err
	}
	cmd.Printf("Hired %q for %s. Job %d is pending until the vendor accepts.\n",
		svc.Title, formatPrice(job.TotalAmount), job.ID)
	return nil
}

// jobActionRunner returns the RunE of a lifecycle command. The job is
// fetched first so the available actions reflect the server's state.
func jobActionRunner(action domain.JobAction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if jobService == nil {
			return fmt.Errorf("jobs: %w", errNotConfigured)
		}
		viewer, err := currentUser()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		job, err := jobService.Get(ctx, id)
		if err != nil {
			return err
		}

		var review services.ReviewInput
		if action == domain.ActionReview {
			review = services.ReviewInput{Rating: reviewRating, Comment: strings.TrimSpace(reviewComment)}
		}

		tracker := services.NewJobTracker(jobService, viewer, *job)
		out := tracker.Fire(ctx, action, review)
		if out.Err != nil {
			return out.Err
		}
		cmd.Println(out.Message)
		if out.Job != nil {
			cmd.Println()
			printJobView(cmd, tracker.View())
		}
		return nil
	}
}

func printJobView(cmd *cobra.Command, view domain.JobView) {
	job := view.Job
	cmd.Printf("Job %d: %s\n", job.ID, job.ServiceTitle())
	cmd.Printf("  Status:  %s\n", view.Label)
	if job.TotalAmount > 0 {
		cmd.Printf("  Amount:  %s\n", formatPrice(job.TotalAmount))
	}
	cmd.Printf("  Dates:   %s to %s\n", formatDate(job.StartDate), formatDate(job.EndDate))
	if view.Status == domain.JobStatusInProgress {
		cmd.Printf("  Client confirmed: %s   Vendor confirmed: %s\n", yesNo(job.ClientConfirmed), yesNo(job.VendorConfirmed))
	}
	if view.Hint != "" {
		cmd.Printf("  %s\n", view.Hint)
	}
	if len(view.Actions) == 0 {
		return
	}
	cmd.Println("  Actions:")
	for _, a := range view.Actions {
		if a.Enabled {
			cmd.Printf("    servilink job %s %d  (%s)\n", a.Action, job.ID, a.Action.Label())
		} else {
			cmd.Printf("    %s\n", a.Text())
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
