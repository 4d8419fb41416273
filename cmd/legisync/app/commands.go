package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/capitolworks/legisync"
)

// NewIngestCommand creates the ingest command.
func (a *App) NewIngestCommand() *cobra.Command {
	var (
		congress        int
		filter          string
		force           bool
		disableIndexing bool
		disableEvents   bool
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest the legislative corpus",
		Long: `Ingest runs a full ingestion pass over the corpus under the data
directory: reference people and committees, the subject-term taxonomy,
then every bill document in scope.

Unchanged documents are skipped using per-file change records; use
--force to reprocess everything.`,
		Example: `  legisync ingest                      # Ingest the whole corpus
  legisync ingest --congress 111        # One congress only
  legisync ingest --filter 'hr1\d{3}'   # Paths matching an expression
  legisync ingest --force               # Bypass change detection`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ls, err := a.Legisync()
			if err != nil {
				return err
			}

			var opts []legisync.IngestOption
			if congress > 0 {
				opts = append(opts, legisync.WithCongress(congress))
			}
			if filter != "" {
				opts = append(opts, legisync.WithPathFilter(filter))
			}
			if force {
				opts = append(opts, legisync.WithForce())
			}
			if disableIndexing {
				opts = append(opts, legisync.WithoutIndexing())
			}
			if disableEvents {
				opts = append(opts, legisync.WithoutEvents())
			}

			result, err := ls.Ingest(cmd.Context(), opts...)
			if err != nil {
				return err
			}

			if !a.config.Quiet {
				fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&congress, "congress", 0, "ingest only this congress's bills")
	cmd.Flags().StringVar(&filter, "filter", "", "regular expression over bill document paths")
	cmd.Flags().BoolVar(&force, "force", false, "bypass change detection and reprocess every document")
	cmd.Flags().BoolVar(&disableIndexing, "disable-indexing", false, "skip search-index updates")
	cmd.Flags().BoolVar(&disableEvents, "disable-events", false, "skip event generation")

	return cmd
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "legisync %s (commit %s, built %s)\n", a.version, a.commit, a.date)
		},
	}
}
