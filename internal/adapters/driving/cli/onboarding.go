package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

var (
	onboardingSkills   []int64
	onboardingServices []string
)

var onboardingCmd = &cobra.Command{
	Use:   "onboarding",
	Short: "Finish setting up a vendor account",
	Long: `Declare the skills you offer and post your first services in one step.

Services are given as "title;price;skill-id[;description]" and may be repeated.
Entries without a title, a positive price or a skill are skipped.

Example:
  servilink onboarding --skill 1 --skill 3 \
    --service "Leak repair;45;1;Same-day visits" \
    --service "Interior painting;120;3"`,
	Args: cobra.NoArgs,
	RunE: runOnboarding,
}

func init() {
	onboardingCmd.Flags().Int64SliceVar(&onboardingSkills, "skill", nil, "skill ID you offer (repeatable)")
	onboardingCmd.Flags().StringArrayVar(&onboardingServices, "service", nil, `service as "title;price;skill-id[;description]" (repeatable)`)
	rootCmd.AddCommand(onboardingCmd)
}

func runOnboarding(cmd *cobra.Command, _ []string) error {
	if onboardingService == nil {
		return fmt.Errorf("onboarding: %w", errNotConfigured)
	}
	me, err := currentUser()
	if err != nil {
		return err
	}
	if !me.IsVendor() {
		return fmt.Errorf("onboarding is for vendor accounts: %w", domain.ErrForbidden)
	}

	drafts := make([]domain.ServiceDraft, 0, len(onboardingServices))
	for _, raw := range onboardingServices {
		d, err := parseDraft(raw)
		if err != nil {
			return err
		}
		drafts = append(drafts, d)
	}

	user, created, err := onboardingService.Complete(cmd.Context(), me.ID, onboardingSkills, drafts)
	if err != nil {
		return err
	}

	cmd.Printf("Welcome aboard, %s.\n", user.Name)
	cmd.Printf("  Skills added:     %d\n", len(onboardingSkills))
	cmd.Printf("  Services posted:  %d\n", len(created))
	if skipped := len(drafts) - len(created); skipped > 0 {
		cmd.Printf("  Services skipped: %d (missing title, price or skill)\n", skipped)
	}
	return nil
}

// parseDraft reads "title;price;skill-id[;description]".
func parseDraft(raw string) (domain.ServiceDraft, error) {
	parts := strings.SplitN(raw, ";", 4)
	if len(parts) < 3 {
		return domain.ServiceDraft{}, fmt.Errorf("service %q: expected title;price;skill-id: %w", raw, domain.ErrInvalidInput)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.ServiceDraft{}, fmt.Errorf("service %q: invalid price: %w", raw, domain.ErrInvalidInput)
	}
	skillID, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64)
	if err != nil {
		return domain.ServiceDraft{}, fmt.Errorf("service %q: invalid skill id: %w", raw, domain.ErrInvalidInput)
	}
	d := domain.ServiceDraft{
		Title:    strings.TrimSpace(parts[0]),
		Price:    price,
		SkillID:  skillID,
		IsActive: true,
	}
	if len(parts) == 4 {
		d.Description = strings.TrimSpace(parts[3])
	}
	return d, nil
}
