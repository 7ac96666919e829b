package cli

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"512b.it/drawday/src/game"
	"512b.it/drawday/src/targets"
)

func newTargetCommand(opts *rootOptions) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "target",
		Short: "Print the public view of the target for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd, map[string]string{})
			if err != nil {
				return err
			}
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			var day *time.Time
			if date != "" {
				d, err := targets.ParseDate(date)
				if err != nil {
					return err
				}
				day = &d
			}

			resp, err := game.NewService(catalog, nil).Target(day)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to resolve as YYYY-MM-DD (default today, UTC)")
	return cmd
}
