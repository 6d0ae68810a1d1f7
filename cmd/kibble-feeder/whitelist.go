package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/kibble-feeder/kibble-go/pkg/whitelist"
	"github.com/spf13/cobra"
)

func newWhitelistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whitelist",
		Short: "Inspect and build whitelist store images",
		Long: `The feeder never enrolls tags at runtime. Whitelist images are built
offline and flashed (or copied) to the store the feeder reads at startup.`,
	}
	cmd.AddCommand(newWhitelistShowCmd())
	cmd.AddCommand(newWhitelistImageCmd())
	return cmd
}

func newWhitelistShowCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "show <image>",
		Short: "List the tags stored in an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := whitelist.OpenFileStore(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Image: %s\n", store.Path())
			printWhitelist(cmd.OutOrStdout(), whitelist.Load(store), all)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Also list empty slots")
	return cmd
}

func printWhitelist(w io.Writer, wl *whitelist.Whitelist, all bool) {
	entries := wl.Entries()
	if !all {
		for _, e := range entries {
			fmt.Fprintf(w, "%2d  %s\n", e.Slot, e.UID)
		}
	} else {
		bySlot := make(map[int]whitelist.UID, len(entries))
		for _, e := range entries {
			bySlot[e.Slot] = e.UID
		}
		for slot := 0; slot < whitelist.MaxUsers; slot++ {
			if uid, ok := bySlot[slot]; ok {
				fmt.Fprintf(w, "%2d  %s\n", slot, uid)
			} else {
				fmt.Fprintf(w, "%2d  (empty)\n", slot)
			}
		}
	}
	fmt.Fprintf(w, "%d of %d slots used\n", wl.Len(), whitelist.MaxUsers)
}

func newWhitelistImageCmd() *cobra.Command {
	var (
		out  string
		from string
	)

	cmd := &cobra.Command{
		Use:   "image --out <image> [uid...]",
		Short: "Write a whitelist image",
		Long: `Write a whitelist image from UIDs given as arguments and/or a YAML tag file.

Examples:
  kibble-feeder whitelist image --out whitelist.bin AA:BB:CC:DD 01:02:03:04
  kibble-feeder whitelist image --out whitelist.bin --from tags.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("--out is required")
			}

			var uids []whitelist.UID
			if from != "" {
				tags, err := whitelist.LoadTagFile(from)
				if err != nil {
					return err
				}
				uids = append(uids, tags...)
			}
			parsed, err := whitelist.ParseUIDs(args)
			if err != nil {
				return err
			}
			uids = append(uids, parsed...)

			if err := whitelist.WriteImage(out, uids); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d tags to %s\n", len(uids), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Image file to write")
	cmd.Flags().StringVarP(&from, "from", "f", "", "YAML tag file to read")
	return cmd
}
