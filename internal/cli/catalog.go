package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kode4food/testgen/internal/catalog"
	"github.com/kode4food/testgen/pkg/api"
)

func (r *runner) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the step and parameter templates",
		Args:  cobra.NoArgs,
		RunE:  r.runCatalog,
	}
	cmd.AddCommand(r.uploadCommand())
	return cmd
}

func (r *runner) uploadCommand() *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Store a local file as a catalog resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runUpload(cmd, args[0], key)
		},
	}
	cmd.Flags().StringVar(&key, "key", "",
		"resource key (defaults to the steps key)")
	return cmd
}

func (r *runner) runCatalog(cmd *cobra.Command, _ []string) error {
	cat, err := r.loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Steps (%d):\n", len(cat.Steps))
	for _, s := range cat.Steps {
		fmt.Fprintf(out, "  %s\n", s.Label)
	}
	fmt.Fprintf(out, "Parameters (%d):\n", len(cat.Parameters))
	for _, p := range cat.Parameters {
		fmt.Fprintf(out, "  %s = %s\n", p.Label, p.DefaultValue)
	}
	return nil
}

func (r *runner) runUpload(cmd *cobra.Command, path, key string) error {
	if key == "" {
		key = r.cfg.Catalog.StepsKey
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	src, err := catalog.OpenBlobSource(ctx, r.cfg.Catalog.URL)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	if err := src.Put(ctx, key, data); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (%d lines)\n",
		key, len(catalog.ParseLines(string(data))))
	return nil
}

func (r *runner) loadCatalog(ctx context.Context) (*api.Catalog, error) {
	src, err := catalog.OpenSource(
		ctx, r.cfg.Catalog.URL, r.cfg.CatalogTimeout(),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	res, err := catalog.NewLoader(src, r.cfg).Load(ctx)
	if err != nil {
		return nil, err
	}
	return res.Catalog, nil
}
