package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spacemeshos/go-bloomsync/common/types"
	"github.com/spacemeshos/go-bloomsync/localsync"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <digest> <op hash>...",
		Short: "test op hashes against a bloom digest",
		Long: `Test op hashes against a bloom digest written by the run command.
For every op hash, prints the hash and whether the digest may contain it.`,
		Args: cobra.MinimumNArgs(2),
		// the digest needs no config, data dir or logger
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := readDigest(args[0])
			if err != nil {
				return err
			}
			for _, arg := range args[1:] {
				var h types.OpHash
				if err := h.UnmarshalText([]byte(arg)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%t\n", h, localsync.MayContain(filter, types.OpKey{Hash: h}))
			}
			return nil
		},
	}
}
