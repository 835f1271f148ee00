package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/garunski/codequest/pkg/codequest/errors"
)

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <topic> <image>",
		Aliases: []string{"rm"},
		Short:   "Remove an image from a topic manifest",
		Long: `Removes every line equal to the image name from the topic manifest,
keeping the remaining names in order. The image file itself is untouched.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd)
			s, _, err := opts.openStore(cmd, p)
			if err != nil {
				return err
			}

			topic, err := parseTopicArg(p, args[0], s.TopicCount())
			if err != nil {
				return err
			}
			name := args[1]

			removed, err := s.DeleteImage(topic, name)
			switch {
			case err == nil:
				p.Success("Removed %s from topic %d (%d line(s))\n", name, topic, removed)
				return nil
			case errors.Is(err, apperrors.ErrNotFound):
				return p.Error("Image not listed",
					fmt.Sprintf("%s is not in the manifest for topic %d.", name, topic),
					[]string{fmt.Sprintf("Run \"codequest topics %d\" to see the listed images", topic)})
			default:
				return p.Error("Failed to delete image", err.Error(), nil)
			}
		},
	}
}
