package cmd

import (
	"context"
	"fmt"
	"io"

	"roster-manager/core/database"
	"roster-manager/core/kv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// storeCmd is the parent command for bucket store maintenance.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Bucket store maintenance",
}

// storeCheckCmd verifies the configured store backend.
var storeCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the bucket store backend and summarize its contents",
	Long: `Checks that the configured bucket store is reachable. For the database
driver the kv_entries table is inspected for its required columns. Prints the
number of buckets and stored bytes per scope.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Driver: %s\n", rt.cfg.Store.Driver)

		switch rt.cfg.Store.Driver {
		case kv.DriverDatabase:
			columns, err := database.GetTableColumns(rt.db, kv.Entry{}.TableName())
			if err != nil {
				return err
			}
			if missing := database.MissingColumns(columns, kv.EntryColumns...); len(missing) > 0 {
				return fmt.Errorf("table %s is missing columns %v (enable store.migrate)", kv.Entry{}.TableName(), missing)
			}
			fmt.Fprintf(out, "Table %s: ok\n", kv.Entry{}.TableName())
		case kv.DriverObject:
			exists, err := rt.storage.BucketExists(cmd.Context(), rt.cfg.Storage.Bucket)
			if err != nil {
				return fmt.Errorf("failed to check bucket: %w", err)
			}
			if !exists {
				return fmt.Errorf("bucket %s does not exist", rt.cfg.Storage.Bucket)
			}
			fmt.Fprintf(out, "Bucket %s: ok\n", rt.cfg.Storage.Bucket)
		}

		if err := summarizeScope(cmd.Context(), out, kv.ScopeLocal, rt.repo.Local()); err != nil {
			return err
		}
		return summarizeScope(cmd.Context(), out, kv.ScopeSession, rt.repo.Session())
	},
}

func summarizeScope(ctx context.Context, w io.Writer, scope string, store kv.Store) error {
	if store == nil {
		return nil
	}
	keys, err := store.Keys(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to list %s buckets: %w", scope, err)
	}
	var size uint64
	for _, k := range keys {
		v, _, err := store.Get(ctx, k)
		if err != nil {
			return fmt.Errorf("failed to read bucket %s: %w", k, err)
		}
		size += uint64(len(v))
	}
	fmt.Fprintf(w, "Scope %s: %d buckets, %s\n", scope, len(keys), humanize.Bytes(size))
	return nil
}

func init() {
	storeCmd.AddCommand(storeCheckCmd)
	RootCmd.AddCommand(storeCmd)
}
