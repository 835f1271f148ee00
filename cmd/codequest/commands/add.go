package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/garunski/codequest/pkg/codequest/errors"
)

func newAddCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "add <topic> <image>",
		Short: "Append an image to a topic manifest",
		Long: `Appends the image name to the topic manifest. The image must already
exist in the image directory. Adding a name that is already listed is
reported and leaves the manifest unchanged.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd)
			s, cfg, err := opts.openStore(cmd, p)
			if err != nil {
				return err
			}

			topic, err := parseTopicArg(p, args[0], s.TopicCount())
			if err != nil {
				return err
			}
			name := args[1]

			err = s.AddImage(topic, name)
			switch {
			case err == nil:
				p.Success("Added %s to topic %d\n", name, topic)
				return nil
			case errors.Is(err, apperrors.ErrDuplicate):
				p.Warning("%s is already listed in topic %d\n", name, topic)
				return nil
			case errors.Is(err, apperrors.ErrInvalidAsset):
				return p.Error("Image not found",
					fmt.Sprintf("%s does not exist in %s.", name, cfg.ImageDir),
					[]string{"Check the image name", "Copy the image into the image directory first"})
			default:
				return p.Error("Failed to add image", err.Error(), nil)
			}
		},
	}
}
