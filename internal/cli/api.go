package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tabletime/pkg/client"
	"tabletime/pkg/model"
)

const requestTimeout = 15 * time.Second

func apiClient(cmd *cobra.Command) (*client.TableTimeClient, context.Context, context.CancelFunc, error) {
	server, err := cmd.Flags().GetString("server")
	if err != nil {
		return nil, nil, nil, err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	return client.NewTableTimeClient(server), ctx, cancel, nil
}

func newRestaurantsCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "restaurants",
		Short: "List restaurants, optionally filtered by a typeahead query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := apiClient(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			restaurants, err := c.Restaurants(ctx, query)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), restaurants)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "typeahead query")
	return cmd
}

func newAvailabilityCmd() *cobra.Command {
	var restaurant, date string
	cmd := &cobra.Command{
		Use:   "availability",
		Short: "Show free slots for a restaurant on a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := apiClient(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			availability, err := c.Availability(ctx, restaurant, date)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), availability)
		},
	}
	cmd.Flags().StringVar(&restaurant, "restaurant", "", "restaurant id")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("restaurant")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newBookCmd() *cobra.Command {
	var (
		req            model.BookingRequest
		idempotencyKey string
	)
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Create a booking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := apiClient(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			booking, err := c.CreateBooking(ctx, &req, idempotencyKey)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), booking)
		},
	}
	cmd.Flags().StringVar(&req.Restaurant, "restaurant", "", "restaurant id")
	cmd.Flags().StringVar(&req.Date, "date", "", "date as YYYY-MM-DD")
	cmd.Flags().StringVar(&req.Time, "time", "", "time as HH:MM")
	cmd.Flags().IntVar(&req.Guests, "guests", 0, "party size (server default 1)")
	cmd.Flags().StringVar(&req.Name, "name", "", "guest name")
	cmd.Flags().StringVar(&req.Email, "email", "", "guest email")
	cmd.Flags().StringVar(&req.Note, "note", "", "optional note")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "retry-safe key sent as Idempotency-Key")
	return cmd
}

func newBookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Search, cancel or reschedule bookings",
	}
	cmd.AddCommand(newBookingsSearchCmd())
	cmd.AddCommand(newBookingsCancelCmd())
	cmd.AddCommand(newBookingsRescheduleCmd())
	return cmd
}

func newBookingsSearchCmd() *cobra.Command {
	var params client.SearchParams
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find bookings by email and/or date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := apiClient(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			bookings, err := c.SearchBookings(ctx, params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), bookings)
		},
	}
	cmd.Flags().StringVar(&params.Email, "email", "", "guest email, case-insensitive")
	cmd.Flags().StringVar(&params.Date, "date", "", "date as YYYY-MM-DD")
	return cmd
}

func newBookingsCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel CODE",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := apiClient(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			if err := c.CancelBooking(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: cancelled\n", args[0])
			return nil
		},
	}
}

func newBookingsRescheduleCmd() *cobra.Command {
	var req model.RescheduleRequest
	cmd := &cobra.Command{
		Use:   "reschedule CODE",
		Short: "Move a booking to another date and time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel, err := apiClient(cmd)
			if err != nil {
				return err
			}
			defer cancel()

			booking, err := c.RescheduleBooking(ctx, args[0], &req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), booking)
		},
	}
	cmd.Flags().StringVar(&req.Date, "date", "", "new date as YYYY-MM-DD")
	cmd.Flags().StringVar(&req.Time, "time", "", "new time as HH:MM")
	return cmd
}
