package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

var (
	searchMinPrice   float64
	searchMaxPrice   float64
	searchMinRating  float64
	searchSort       string
	searchCategories []int64
	searchPage       int
	searchJSON       bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the service catalogue",
	Long: `Searches services by keyword with optional price, rating and category filters.

Price and rating bounds are passed to the server as given. Categories are
skill IDs (see 'servilink skills list --all') and may be repeated.

Sort keys: relevance, price_asc, price_desc, rating_desc.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Float64Var(&searchMinPrice, "min-price", 0, "minimum price")
	searchCmd.Flags().Float64Var(&searchMaxPrice, "max-price", 0, "maximum price")
	searchCmd.Flags().Float64Var(&searchMinRating, "min-rating", 0, "minimum average rating")
	searchCmd.Flags().StringVarP(&searchSort, "sort", "s", string(domain.SortRelevance), "sort order")
	searchCmd.Flags().Int64SliceVarP(&searchCategories, "category", "c", nil, "skill ID to filter by (repeatable)")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "page of results to show")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return fmt.Errorf("search: %w", errNotConfigured)
	}

	filter := domain.SearchFilter{
		Sort:        domain.SortKey(searchSort),
		CategoryIDs: searchCategories,
	}
	if len(args) == 1 {
		filter.Query = strings.TrimSpace(args[0])
	}
	flags := cmd.Flags()
	if flags.Changed("min-price") {
		filter.MinPrice = &searchMinPrice
	}
	if flags.Changed("max-price") {
		filter.MaxPrice = &searchMaxPrice
	}
	if flags.Changed("min-rating") {
		filter.MinRating = &searchMinRating
	}
	if err := filter.Validate(); err != nil {
		return fmt.Errorf("unknown sort key %q: %w", searchSort, err)
	}

	results, err := searchService.Search(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	listing := domain.NewListing(pageSize())
	listing.SetFilter(filter)
	listing.SetResults(results)
	listing.GoTo(searchPage)

	if searchJSON {
		return printJSON(cmd, listing.Window())
	}
	return outputSearchTable(cmd, listing)
}

func pageSize() int {
	if settingsService == nil {
		return domain.DefaultPageSize
	}
	settings, err := settingsService.Get()
	if err != nil || settings.Listing.PageSize < 1 {
		return domain.DefaultPageSize
	}
	return settings.Listing.PageSize
}

func outputSearchTable(cmd *cobra.Command, listing *domain.Listing) error {
	if len(listing.Results()) == 0 {
		cmd.Println("No services found.")
		return nil
	}

	cmd.Printf("Results (page %d of %d, %d services):\n\n", listing.Page(), listing.TotalPages(), len(listing.Results()))
	for _, svc := range listing.Window() {
		cmd.Printf("  [%d] %s - %s\n", svc.ID, svc.Title, formatPrice(svc.Price))
		meta := []string{}
		if name := svc.CategoryName(); name != "" {
			meta = append(meta, name)
		}
		if name := svc.VendorName(); name != "" {
			meta = append(meta, "by "+name)
		}
		if svc.AvgRating > 0 {
			meta = append(meta, fmt.Sprintf("%.1f stars", svc.AvgRating))
		}
		if len(meta) > 0 {
			cmd.Printf("      %s\n", strings.Join(meta, " | "))
		}
	}
	cmd.Println()

	var nav []string
	if listing.HasPrev() {
		nav = append(nav, fmt.Sprintf("--page %d for previous", listing.Page()-1))
	}
	if listing.HasNext() {
		nav = append(nav, fmt.Sprintf("--page %d for more", listing.Page()+1))
	}
	if len(nav) > 0 {
		cmd.Printf("Use %s.\n", strings.Join(nav, ", "))
	}
	return nil
}
