// internal/cli/engines.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"foldlab-core/folding"
)

func (a *app) enginesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List registered folding engines",
		Args: func(cmd *cobra.Command, args []string) error {
			return usageErr(cobra.NoArgs(cmd, args))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := a.registry.Names()
			pending := make([]<-chan folding.Result, len(names))
			for i, name := range names {
				pending[i] = a.registry.CreateAsync(cmd.Context(), name)
			}
			for i, name := range names {
				res := <-pending[i]
				status := "functional"
				if res.Err != nil {
					status = "unavailable: " + res.Err.Error()
					a.log.Debug().Err(res.Err).Str("engine", name).Msg("engine unavailable")
				}
				mark := ""
				if name == a.cfg.Engine {
					mark = "*"
				}
				if _, err := fmt.Fprintf(a.stdout, "%s%s\t%s\n", name, mark, status); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
