package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconciler/internal/snapshot"
)

func snapshotCmd(a *app) *cobra.Command {
	var (
		check bool
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot FILE NAME",
		Short: "Store or check the rendered host tree of a document",
		Long: `Mount a document and store its HTML under NAME in the configured
snapshot store: a directory (snapshot.dir) or an S3 bucket
(snapshot.bucket).

With --check the stored snapshot is compared instead, and the command
fails with a diff when the rendering changed.

Examples:
  reconcile snapshot app.yaml home
  reconcile snapshot app.yaml home --check
  reconcile snapshot --list`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cfg := a.cfg.Snapshot
			if cfg.Bucket == "" && !filepath.IsAbs(cfg.Dir) {
				cfg.Dir = filepath.Join(a.baseDir(), cfg.Dir)
			}
			store, err := snapshot.Open(ctx, cfg)
			if err != nil {
				return err
			}

			if list {
				names, err := store.List(ctx)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			file, name := args[0], args[1]
			if !snapshot.ValidName(name) {
				return fmt.Errorf("invalid snapshot name %q", name)
			}
			s := a.newSession()
			u, err := a.mountFile(s, file)
			if err != nil {
				return err
			}

			if check {
				stored, err := store.Get(ctx, name)
				if err != nil {
					return err
				}
				if string(stored.HTML) == u.HTML {
					success(out, "%s matches", name)
					return nil
				}
				writeLineDiff(out, string(stored.HTML)+"\n", u.HTML+"\n")
				return fmt.Errorf("snapshot %q does not match %s", name, file)
			}

			err = store.Put(ctx, snapshot.Snapshot{
				Name: name,
				HTML: []byte(u.HTML),
				Root: u.Root,
			})
			if err != nil {
				return err
			}
			success(out, "Stored %s (%d bytes)", name, len(u.HTML))
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Compare with the stored snapshot instead of writing")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List stored snapshots")

	return cmd
}

// baseDir is the directory relative config paths resolve against.
func (a *app) baseDir() string {
	if a.cfg.Path() != "" {
		return a.cfg.Dir()
	}
	return a.dir
}
