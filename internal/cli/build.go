package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kode4food/testgen/internal/clipboard"
	"github.com/kode4food/testgen/internal/session"
)

type buildOptions struct {
	copy   string
	ticket string
}

var ErrInvalidCopyKind = errors.New("copy must be description or json")

func (r *runner) buildCommand() *cobra.Command {
	var opts buildOptions
	cmd := &cobra.Command{
		Use:   "build <procedure.yaml>",
		Short: "Replay a procedure and print its description and payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runBuild(cmd, args[0], &opts)
		},
	}
	cmd.Flags().StringVar(&opts.copy, "copy", "",
		"copy the description or json to the clipboard")
	cmd.Flags().StringVar(&opts.ticket, "ticket", "",
		"push the description and json to this ticket")
	return cmd
}

func (r *runner) runBuild(
	cmd *cobra.Command, path string, opts *buildOptions,
) error {
	kind := clipboard.Kind(opts.copy)
	switch kind {
	case "", clipboard.KindDescription, clipboard.KindJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCopyKind, opts.copy)
	}

	proc, err := readProcedure(path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	cat, err := r.loadCatalog(ctx)
	if err != nil {
		return err
	}

	sess := session.NewManager(r.cfg, nil).Create(cat)
	if err := proc.Apply(sess.State); err != nil {
		return err
	}

	art, err := sess.Artifacts()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Description:\n%s\n\nPayload:\n%s\n",
		art.Description, art.JSON)

	switch kind {
	case clipboard.KindDescription:
		r.copy(cmd, kind, art.Description)
	case clipboard.KindJSON:
		r.copy(cmd, kind, art.JSON)
	}

	if opts.ticket == "" {
		return nil
	}
	tc, err := r.deps.NewTicket(r.cfg)
	if err != nil {
		return err
	}
	st, err := sess.Submit(ctx, tc, opts.ticket)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, st.Message)
	return nil
}

func (r *runner) copy(cmd *cobra.Command, kind clipboard.Kind, text string) {
	if sup := r.deps.ClipboardSupported; sup != nil && !sup() {
		fmt.Fprintln(cmd.ErrOrStderr(),
			"Clipboard is not available on this system")
		return
	}
	if clipboard.Copy(r.deps.Copier, kind, text) {
		fmt.Fprintf(cmd.OutOrStdout(), "Copied %s to clipboard\n", kind)
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Could not copy %s to clipboard\n", kind)
}

func readProcedure(path string) (*Procedure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return LoadProcedure(f)
}
