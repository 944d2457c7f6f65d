package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

var (
	serviceVendorID    int64
	serviceTitle       string
	serviceDescription string
	servicePrice       float64
	serviceSkillID     int64
	serviceImageURL    string
	serviceInactive    bool
)

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "View and manage services",
	Long:  `Show service details and reviews. Vendors can also create, edit and delete their services.`,
}

var serviceShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a service with its reviews",
	Long: `Show a service, its reviews and, when logged in, your latest job for it
together with the actions available to you.`,
	Args: cobra.ExactArgs(1),
	RunE: runServiceShow,
}

var serviceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a vendor's services",
	Long:  `List the services of a vendor. Defaults to your own services.`,
	Args:  cobra.NoArgs,
	RunE:  runServiceList,
}

var serviceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Post a new service (vendors)",
	Args:  cobra.NoArgs,
	RunE:  runServiceCreate,
}

var serviceUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit one of your services (vendors)",
	Long:  `Edit a service. Only the flags you pass are changed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runServiceUpdate,
}

var serviceDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one of your services (vendors)",
	Args:  cobra.ExactArgs(1),
	RunE:  runServiceDelete,
}

var serviceReviewsCmd = &cobra.Command{
	Use:   "reviews <id>",
	Short: "List the reviews of a service",
	Args:  cobra.ExactArgs(1),
	RunE:  runServiceReviews,
}

func init() {
	serviceListCmd.Flags().Int64Var(&serviceVendorID, "vendor", 0, "vendor user ID (defaults to you)")

	for _, c := range []*cobra.Command{serviceCreateCmd, serviceUpdateCmd} {
		c.Flags().StringVar(&serviceTitle, "title", "", "service title")
		c.Flags().StringVar(&serviceDescription, "description", "", "service description")
		c.Flags().Float64Var(&servicePrice, "price", 0, "price")
		c.Flags().Int64Var(&serviceSkillID, "skill", 0, "skill (category) ID")
		c.Flags().StringVar(&serviceImageURL, "image", "", "image URL")
		c.Flags().BoolVar(&serviceInactive, "inactive", false, "hide the service from search")
	}

	serviceCmd.AddCommand(serviceShowCmd)
	serviceCmd.AddCommand(serviceListCmd)
	serviceCmd.AddCommand(serviceCreateCmd)
	serviceCmd.AddCommand(serviceUpdateCmd)
	serviceCmd.AddCommand(serviceDeleteCmd)
	serviceCmd.AddCommand(serviceReviewsCmd)
	rootCmd.AddCommand(serviceCmd)
}

func runServiceShow(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return fmt.Errorf("catalog: %w", errNotConfigured)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc, err := catalogService.Get(ctx, id)
	if err != nil {
		return err
	}
	printService(cmd, svc)

	reviews, err := catalogService.Reviews(ctx, id)
	if err != nil {
		cmd.Printf("\nReviews unavailable: %s\n", domain.UserMessage(err))
	} else {
		printReviews(cmd, reviews)
	}

	viewer, err := currentUser()
	if err != nil || jobService == nil {
		return nil
	}
	if svc.OwnedBy(viewer.ID) {
		cmd.Println("\nThis is your service.")
	}
	job, err := jobService.LatestForService(ctx, viewer, *svc)
	if err != nil {
		cmd.Printf("\nJobs unavailable: %s\n", domain.UserMessage(err))
		return nil
	}
	if job == nil {
		if !svc.OwnedBy(viewer.ID) {
			cmd.Printf("\nHire it with 'servilink job hire %d --start YYYY-MM-DD'.\n", svc.ID)
		}
		return nil
	}
	cmd.Println()
	printJobView(cmd, domain.NewJobView(*job, viewer.ID))
	return nil
}

func runServiceList(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return fmt.Errorf("catalog: %w", errNotConfigured)
	}
	vendorID := serviceVendorID
	if vendorID == 0 {
		user, err := currentUser()
		if err != nil {
			return err
		}
		vendorID = user.ID
	}

	services, err := catalogService.ListByVendor(cmd.Context(), vendorID)
	if err != nil {
		return err
	}
	if len(services) == 0 {
		cmd.Println("No services.")
		return nil
	}
	for _, svc := range services {
		state := ""
		if !svc.IsActive {
			state = " (inactive)"
		}
		cmd.Printf("  [%d] %s - %s%s\n", svc.ID, svc.Title, formatPrice(svc.Price), state)
	}
	return nil
}

func runServiceCreate(cmd *cobra.Command, _ []string) error {
	if catalogService == nil {
		return fmt.Errorf("catalog: %w", errNotConfigured)
	}
	draft := domain.ServiceDraft{
		Title:       strings.TrimSpace(serviceTitle),
		Description: serviceDescription,
		Price:       servicePrice,
		SkillID:     serviceSkillID,
		ImageURL:    serviceImageURL,
		IsActive:    !serviceInactive,
	}
	svc, err := catalogService.Create(cmd.Context(), draft)
	if err != nil {
		return err
	}
	cmd.Printf("Created service %d: %s\n", svc.ID, svc.Title)
	return nil
}

func runServiceUpdate(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return fmt.Errorf("catalog: %w", errNotConfigured)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	current, err := catalogService.Get(ctx, id)
	if err != nil {
		return err
	}
	draft := domain.ServiceDraft{
		Title:       current.Title,
		Description: current.Description,
		Price:       current.Price,
		SkillID:     current.SkillID,
		ImageURL:    current.ImageURL,
		IsActive:    current.IsActive,
	}
	flags := cmd.Flags()
	if flags.Changed("title") {
		draft.Title = strings.TrimSpace(serviceTitle)
	}
	if flags.Changed("description") {
		draft.Description = serviceDescription
	}
	if flags.Changed("price") {
		draft.Price = servicePrice
	}
	if flags.Changed("skill") {
		draft.SkillID = serviceSkillID
	}
	if flags.Changed("image") {
		draft.ImageURL = serviceImageURL
	}
	if flags.Changed("inactive") {
		draft.IsActive = !serviceInactive
	}

	svc, err := catalogService.Update(ctx, id, draft)
	if err != nil {
		return err
	}
	cmd.Printf("Updated service %d: %s\n", svc.ID, svc.Title)
	return nil
}

func runServiceDelete(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return fmt.Errorf("catalog: %w", errNotConfigured)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := catalogService.Delete(cmd.Context(), id); err != nil {
		return err
	}
	cmd.Printf("Deleted service %d.\n", id)
	return nil
}

func runServiceReviews(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return fmt.Errorf("catalog: %w", errNotConfigured)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	reviews, err := catalogService.Reviews(cmd.Context(), id)
	if err != nil {
		return err
	}
	printReviews(cmd, reviews)
	return nil
}

func printService(cmd *cobra.Command, svc *domain.Service) {
	cmd.Printf("%s\n", svc.Title)
	cmd.Println(strings.Repeat("=", len(svc.Title)))
	cmd.Printf("  ID:       %d\n", svc.ID)
	cmd.Printf("  Price:    %s\n", formatPrice(svc.Price))
	if name := svc.CategoryName(); name != "" {
		cmd.Printf("  Category: %s\n", name)
	}
	if name := svc.VendorName(); name != "" {
		cmd.Printf("  Vendor:   %s\n", name)
	}
	if svc.AvgRating > 0 {
		cmd.Printf("  Rating:   %.1f\n", svc.AvgRating)
	}
	if svc.Description != "" {
		cmd.Printf("\n%s\n", svc.Description)
	}
}

func printReviews(cmd *cobra.Command, reviews []domain.Review) {
	cmd.Println()
	if len(reviews) == 0 {
		cmd.Println("No reviews yet.")
		return
	}
	cmd.Printf("Reviews (%d):\n", len(reviews))
	for _, r := range reviews {
		cmd.Printf("  %s %s", strings.Repeat("*", max(r.Rating, 0)), formatDate(r.CreatedAt))
		if r.Comment != "" {
			cmd.Printf("  %s", r.Comment)
		}
		cmd.Println()
	}
}
