package commands

import (
	"github.com/spf13/cobra"
)

func newExistsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "exists <image>",
		Short: "Check whether an image is in the image directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd)
			s, cfg, err := opts.openStore(cmd, p)
			if err != nil {
				return err
			}

			name := args[0]
			if s.ImageExists(name) {
				p.Success("%s exists\n", name)
			} else {
				p.Warning("%s does not exist in %s\n", name, cfg.ImageDir)
			}
			return nil
		},
	}
}
