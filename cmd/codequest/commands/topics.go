package commands

import (
	"github.com/spf13/cobra"
)

func newTopicsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "topics [topic]",
		Short: "List topics and their images",
		Long: `Loads the manifests and prints each topic with the images that resolved.
Names listed in a manifest whose image cannot be loaded are shown as unavailable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd)
			s, _, err := opts.openStore(cmd, p)
			if err != nil {
				return err
			}

			projection := s.LoadAll()

			topics := make([]int, 0, s.TopicCount())
			if len(args) == 1 {
				topic, err := parseTopicArg(p, args[0], s.TopicCount())
				if err != nil {
					return err
				}
				topics = append(topics, topic)
			} else {
				for topic := 0; topic < s.TopicCount(); topic++ {
					topics = append(topics, topic)
				}
			}

			for _, topic := range topics {
				entries := projection[topic]
				names, err := s.Names(topic)
				if err != nil {
					return p.Error("Failed to read manifest", err.Error(), nil)
				}

				p.Heading("Topic %d", topic)
				p.Info(" (%d images)\n", len(entries))

				loaded := make(map[string]bool, len(entries))
				for _, e := range entries {
					loaded[e.Name] = true
				}
				for _, name := range names {
					if loaded[name] {
						p.Info("  %s\n", name)
					} else {
						p.Muted("  %s (unavailable)\n", name)
					}
				}
			}
			return nil
		},
	}
}
