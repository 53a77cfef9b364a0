package cli

import (
	"errors"
	"fmt"
	"math"
	"time"

	"dormshare-cli/internal/api"
	"dormshare-cli/internal/format"
	"dormshare-cli/internal/model"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Browse and manage listings",
	}
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsShowCmd(app))
	cmd.AddCommand(newItemsCreateCmd(app))
	cmd.AddCommand(newItemsUpdateCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))
	cmd.AddCommand(newItemsRentCmd(app))
	cmd.AddCommand(newItemsReturnCmd(app))
	return cmd
}

// validPrice rejects negative and non-finite per-day rates; flag parsing
// happily accepts "NaN" and "Inf".
func validPrice(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return errors.New("--price must be a non-negative number")
	}
	return nil
}

func newItemsListCmd(app *App) *cobra.Command {
	var search, category string
	var cached bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items (optionally filtered by search/category)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}

			if cached {
				items, fetchedAt, err := app.cache.LoadListing(cmd.Context())
				if err != nil {
					return err
				}
				out := struct {
					Data      []model.Item `json:"data"`
					FetchedAt *time.Time   `json:"fetchedAt,omitempty"`
				}{Data: items}
				if !fetchedAt.IsZero() {
					out.FetchedAt = &fetchedAt
				}
				return format.WriteJSON(cmd.OutOrStdout(), out, app.PrettyJSON)
			}

			f := api.ListFilter{Search: search}
			if category != "" {
				c, err := model.ParseCategory(category)
				if err != nil {
					return err
				}
				f.Category = c
			}

			items, err := app.client.ListItems(cmd.Context(), f)
			if err != nil {
				return err
			}
			// Best-effort: an unfiltered listing refreshes the offline cache.
			if search == "" && category == "" {
				_ = app.cache.SaveListing(cmd.Context(), items)
			}
			return format.WriteJSON(cmd.OutOrStdout(), items, app.PrettyJSON)
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Search term")
	cmd.Flags().StringVar(&category, "category", "", "Category filter")
	cmd.Flags().BoolVar(&cached, "cached", false, "Read the last fetched listing from the local cache")
	return cmd
}

func newItemsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			it, err := app.client.GetItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return format.WriteJSON(cmd.OutOrStdout(), it, app.PrettyJSON)
		},
	}
}

func newItemsCreateCmd(app *App) *cobra.Command {
	var title, description, category string
	var price float64
	var images []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "List a new item",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			if err := requireAuth(app); err != nil {
				return err
			}
			if title == "" || category == "" {
				return errors.New("--title and --category are required")
			}
			c, err := model.ParseCategory(category)
			if err != nil {
				return err
			}
			if err := validPrice(price); err != nil {
				return err
			}

			it, err := app.client.CreateItem(cmd.Context(), api.ItemDraft{
				Title:       title,
				Description: description,
				Category:    c,
				Price:       price,
				Images:      images,
			})
			if err != nil {
				return err
			}
			return format.WriteJSON(cmd.OutOrStdout(), it, app.PrettyJSON)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&description, "description", "", "Description (markdown)")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().Float64Var(&price, "price", 0, "Per-day price")
	cmd.Flags().StringArrayVar(&images, "image", nil, "Image URL (repeatable)")
	return cmd
}

func newItemsUpdateCmd(app *App) *cobra.Command {
	var title, description, category string
	var price float64
	var images []string

	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Update fields of an item you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			if err := requireAuth(app); err != nil {
				return err
			}

			// Only flags the user actually set go on the wire.
			var p api.ItemPatch
			changed := false
			if cmd.Flags().Changed("title") {
				p.Title = &title
				changed = true
			}
			if cmd.Flags().Changed("description") {
				p.Description = &description
				changed = true
			}
			if cmd.Flags().Changed("category") {
				c, err := model.ParseCategory(category)
				if err != nil {
					return err
				}
				p.Category = &c
				changed = true
			}
			if cmd.Flags().Changed("price") {
				if err := validPrice(price); err != nil {
					return err
				}
				p.Price = &price
				changed = true
			}
			if cmd.Flags().Changed("image") {
				p.Images = images
				changed = true
			}
			if !changed {
				return errors.New("nothing to update: pass at least one field flag")
			}

			it, err := app.client.UpdateItem(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}
			return format.WriteJSON(cmd.OutOrStdout(), it, app.PrettyJSON)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&description, "description", "", "Description (markdown)")
	cmd.Flags().StringVar(&category, "category", "", "Category")
	cmd.Flags().Float64Var(&price, "price", 0, "Per-day price")
	cmd.Flags().StringArrayVar(&images, "image", nil, "Image URL (repeatable; replaces the set)")
	return cmd
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete an item you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			if err := requireAuth(app); err != nil {
				return err
			}
			if err := app.client.DeleteItem(cmd.Context(), args[0]); err != nil {
				return err
			}
			return format.WriteJSON(cmd.OutOrStdout(), struct {
				Deleted string `json:"deleted"`
			}{Deleted: args[0]}, app.PrettyJSON)
		},
	}
}

func newItemsRentCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "rent <item-id>",
		Short: "Rent an item for a number of days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			if err := requireAuth(app); err != nil {
				return err
			}
			if days < 1 {
				return fmt.Errorf("--days must be at least 1 (got %d)", days)
			}

			endDate := time.Now().UTC().AddDate(0, 0, days)
			it, err := app.client.RentItem(cmd.Context(), args[0], endDate)
			if err != nil {
				return err
			}
			return format.WriteJSON(cmd.OutOrStdout(), it, app.PrettyJSON)
		},
	}

	cmd.Flags().IntVar(&days, "days", 1, "Rental length in days")
	return cmd
}

func newItemsReturnCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "return <item-id>",
		Short: "Return an item you are renting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			if err := requireAuth(app); err != nil {
				return err
			}
			it, err := app.client.ReturnItem(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return format.WriteJSON(cmd.OutOrStdout(), it, app.PrettyJSON)
		},
	}
}
