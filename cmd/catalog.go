package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/roadmap"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate, export and publish roadmap catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalog file for schema, prerequisite and cycle errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateCatalog(cmd.OutOrStdout(), args[0])
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the configured catalog as YAML or JSON, e.g. to start a custom roadmap",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		c, err := e.loadCatalog(cmd.Context())
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		format, _ := cmd.Flags().GetString("format")
		name, _ := cmd.Flags().GetString("name")
		data, err := catalog.Encode(c, name, catalog.Format(format))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var catalogPublishCmd = &cobra.Command{
	Use:   "publish <file>",
	Short: "Publish a catalog file to the Postgres milestone store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return errors.New("database_url is not set (config key database_url or CAREERPATH_DATABASE_URL)")
		}
		logger, err := newLogger(cfg.Log, os.Stderr)
		if err != nil {
			return err
		}

		res, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}
		printMismatches(cmd.ErrOrStderr(), res.Mismatches)

		pool, err := catalog.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		pg := catalog.NewPostgres(pool, cfg.Catalog.Slug, logger)
		if err := pg.Migrate(ctx); err != nil {
			return err
		}
		if err := pg.Publish(ctx, res.Catalog, res.Name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Published %s %s (%d milestones)\n", cfg.Catalog.Slug, res.Catalog.Version(), res.Catalog.Len())
		return nil
	},
}

func init() {
	catalogExportCmd.Flags().String("format", string(catalog.FormatYAML), "Output format (yaml or json)")
	catalogExportCmd.Flags().String("name", "", "Catalog name written to the file")

	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogPublishCmd)
}

// validateCatalog prints a summary of a valid file, or every problem found
// in an invalid one.
func validateCatalog(w io.Writer, path string) error {
	res, err := catalog.LoadFile(path)
	if err != nil {
		if errors.Is(err, roadmap.ErrInvalidCatalog) {
			fmt.Fprintf(w, "✗ %s is not a valid catalog:\n", path)
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
		return err
	}

	c := res.Catalog
	name := res.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "✓ %s: %s %s, %d milestones in %d levels\n", path, name, c.Version(), c.Len(), len(c.Levels()))
	printMismatches(w, res.Mismatches)
	return nil
}

func printMismatches(w io.Writer, mismatches []catalog.NextStepsMismatch) {
	for _, m := range mismatches {
		fmt.Fprintf(w, "  warning: %s (next_steps are ignored)\n", m)
	}
}
