package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tags of your account",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

func runTags(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	api, err := a.api(ctx)
	if err != nil {
		return err
	}
	list, err := api.ListTags(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "There are no tags")
		return nil
	}
	for _, t := range list {
		fmt.Fprintf(cmd.OutOrStdout(), " #%s (%d)\n", t.Name, t.ID)
	}
	return nil
}
