package cmd

import (
	"fmt"
	"io"
	"os"

	"roster-manager/core/kv"
	"roster-manager/feature/buckets"

	"github.com/spf13/cobra"
)

var scopeFlag string

// bucketsCmd is the parent command for raw bucket access.
var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "Inspect and seed the bucket store",
}

var bucketsListCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "List bucket keys",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := bucketService(cmd)
		if err != nil {
			return err
		}
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		keys, err := svc.List(cmd.Context(), scopeFlag, prefix)
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

var bucketsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a bucket value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := bucketService(cmd)
		if err != nil {
			return err
		}
		value, ok, err := svc.Get(cmd.Context(), scopeFlag, args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("bucket %s not found", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var bucketsPutCmd = &cobra.Command{
	Use:   "put <key> [file]",
	Short: "Store a JSON value read from a file or stdin",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := bucketService(cmd)
		if err != nil {
			return err
		}
		var value []byte
		if len(args) == 2 {
			value, err = os.ReadFile(args[1])
		} else {
			value, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("failed to read value: %w", err)
		}
		return svc.Put(cmd.Context(), scopeFlag, args[0], value)
	},
}

var bucketsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a storage dump (JSON object of key to value)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := bucketService(cmd)
		if err != nil {
			return err
		}
		dump, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read dump: %w", err)
		}
		keys, err := svc.Import(cmd.Context(), scopeFlag, dump)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d buckets\n", len(keys))
		return nil
	},
}

func bucketService(cmd *cobra.Command) (*buckets.Service, error) {
	rt, err := bootstrap(cmd.Context())
	if err != nil {
		return nil, err
	}
	return buckets.NewService(rt.repo, rt.log, nil), nil
}

func init() {
	bucketsCmd.PersistentFlags().StringVar(&scopeFlag, "scope", kv.ScopeLocal, "Bucket scope (local or session)")
	bucketsCmd.AddCommand(bucketsListCmd, bucketsGetCmd, bucketsPutCmd, bucketsImportCmd)
	RootCmd.AddCommand(bucketsCmd)
}
