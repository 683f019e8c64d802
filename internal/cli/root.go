package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

const (
	ServiceName   = "tabletime"
	DefaultServer = "http://localhost:8080"
)

func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:           ServiceName,
		Short:         "Restaurant table booking service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("server", DefaultServer, "base URL of a running tabletime server")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newRestaurantsCmd())
	cmd.AddCommand(newAvailabilityCmd())
	cmd.AddCommand(newBookCmd())
	cmd.AddCommand(newBookingsCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
