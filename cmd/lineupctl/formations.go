package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/lineup/internal/domain/formation"
)

func newFormationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formations",
		Short: "List the formation templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, t := range formation.All() {
				roles := make([]string, 0, len(t.Slots))
				for _, s := range t.Slots {
					roles = append(roles, s.Role.String())
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", t.Name, strings.Join(roles, " ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
