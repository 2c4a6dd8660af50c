package commands

import (
	"github.com/spf13/cobra"

	"github.com/opsmind/opsmind/retrieval"
	"github.com/opsmind/opsmind/store/chromem"
)

var ingestDataDir string

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the static knowledge base from a document directory",
	Long: `Walks the data directory for .txt and .md files, embeds each file,
and indexes it into the static knowledge base collection. Safe to
re-run: unchanged files overwrite their previous entries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := chromem.Open(cfg.DBPath)
		if err != nil {
			return err
		}

		// Unlike query-time startup, ingest may create the collection.
		col, err := db.EnsureCollection(cfg.StaticCollection)
		if err != nil {
			return err
		}

		embedder, err := buildEmbedder(cfg)
		if err != nil {
			return err
		}

		ing := retrieval.NewIngester(col, embedder, logger)
		n, err := ing.Ingest(cmd.Context(), ingestDataDir)
		if err != nil {
			return err
		}

		logger.Info("knowledge base built", "collection", cfg.StaticCollection, "documents", n, "db", cfg.DBPath)
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDataDir, "data", "./data", "directory of .txt/.md documents")
}
