package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"eventagenda/internal/adapters/agendafile"
	"eventagenda/internal/domain"
)

// importOptions holds the flags of the import command.
type importOptions struct {
	eventID      string
	file         string
	sessionizeID string
	actor        string
}

func newImportCmd() *cobra.Command {
	opts := &importOptions{}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Add agenda items from a YAML file or a Sessionize schedule",
		Long: `Add agenda items to an event. Items already on the agenda with the same
date, start time and title are skipped, so an import can be re-run.

Examples:
  # Import a YAML agenda file
  agenda import --event 7f1c... --file agenda.yaml

  # Pull a published Sessionize schedule
  agenda import --event 7f1c... --sessionize abc123`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			n, err := runImport(cmd.Context(), a.gate, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d agenda items\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.eventID, "event", "", "Target event ID (required)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML agenda file, - for stdin")
	cmd.Flags().StringVar(&opts.sessionizeID, "sessionize", "", "Sessionize event ID")
	cmd.Flags().StringVar(&opts.actor, "actor", "cli", "User ID recorded as the organizer performing the import")
	_ = cmd.MarkFlagRequired("event")
	cmd.MarkFlagsMutuallyExclusive("file", "sessionize")
	return cmd
}

func (o *importOptions) validate() error {
	if o.file == "" && o.sessionizeID == "" {
		return fmt.Errorf("one of --file or --sessionize is required")
	}
	if o.actor == "" {
		return fmt.Errorf("--actor must not be empty")
	}
	return nil
}

// runImport runs the import as an organizer named by --actor.
func runImport(ctx context.Context, gate domain.AdminGate, opts *importOptions) (int, error) {
	p := domain.Principal{UserID: opts.actor, Role: domain.RoleOrganizer}
	if opts.sessionizeID != "" {
		return gate.ImportSessionize(ctx, p, opts.eventID, opts.sessionizeID)
	}

	var r io.Reader = os.Stdin
	if opts.file != "-" {
		f, err := os.Open(opts.file)
		if err != nil {
			return 0, fmt.Errorf("open agenda file: %w", err)
		}
		defer f.Close()
		r = f
	}
	items, err := agendafile.Parse(r)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", opts.file, err)
	}
	return gate.ImportItems(ctx, p, opts.eventID, items)
}
