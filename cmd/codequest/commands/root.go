package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/garunski/codequest/cmd/codequest/printer"
	"github.com/garunski/codequest/pkg/codequest"
	"github.com/garunski/codequest/pkg/codequest/store"
)

var versionString = "dev"

// options holds the persistent flags shared by every subcommand.
type options struct {
	configFile  string
	manifestDir string
	imageDir    string
	dataPath    string
	topicCount  int
	verbose     bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "codequest",
		Short: "CodeQuest - lesson topic manifest store",
		Long: `CodeQuest keeps an ordered list of images for each lesson topic.
Each topic is backed by a plain text manifest, one image name per line,
and images are looked up in a single image directory.

Run "codequest serve" to expose the topics over HTTP, or use the
topics, add, delete and exists commands to work with the manifests directly.`,
		Version: versionString,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	pf.StringVar(&opts.manifestDir, "manifests", "", "directory holding the topic manifests")
	pf.StringVar(&opts.imageDir, "images", "", "directory image names resolve against")
	pf.StringVar(&opts.dataPath, "data", "", "event database directory")
	pf.IntVar(&opts.topicCount, "topics", 0, "number of topic slots")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log store activity to stderr")

	root.AddCommand(
		newServeCmd(opts),
		newTopicsCmd(opts),
		newAddCmd(opts),
		newDeleteCmd(opts),
		newExistsCmd(opts),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	versionString = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// config resolves defaults, then the config file, then explicit flags.
func (o *options) config(cmd *cobra.Command) (codequest.Config, error) {
	cfg := codequest.DefaultConfig()
	if o.configFile != "" {
		var err error
		if cfg, err = codequest.LoadConfigFile(o.configFile, cfg); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("manifests") {
		cfg.ManifestDir = o.manifestDir
	}
	if flags.Changed("images") {
		cfg.ImageDir = o.imageDir
	}
	if flags.Changed("data") {
		cfg.DataPath = o.dataPath
	}
	if flags.Changed("topics") {
		cfg.TopicCount = o.topicCount
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (o *options) logger() logr.Logger {
	if !o.verbose {
		return logr.Discard()
	}
	logger, err := codequest.NewLogger()
	if err != nil {
		return logr.Discard()
	}
	return logger
}

func newPrinter(cmd *cobra.Command) *printer.Printer {
	return printer.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// openStore resolves configuration and opens the manifest store, reporting
// failures through p.
func (o *options) openStore(cmd *cobra.Command, p *printer.Printer) (*store.ManifestStore, codequest.Config, error) {
	cfg, err := o.config(cmd)
	if err != nil {
		return nil, cfg, p.Error("Invalid configuration", err.Error(), []string{
			"Check the --config file and the --manifests, --images and --topics flags",
		})
	}

	s, err := codequest.OpenStore(cfg, o.logger())
	if err != nil {
		return nil, cfg, p.Error("Failed to open topic store", err.Error(), nil)
	}
	return s, cfg, nil
}

func parseTopicArg(p *printer.Printer, arg string, count int) (int, error) {
	topic, err := strconv.Atoi(arg)
	if err != nil || topic < 0 || topic >= count {
		return 0, p.Error("Invalid topic", fmt.Sprintf("%q is not a topic number.", arg), []string{
			fmt.Sprintf("Use a topic between 0 and %d", count-1),
		})
	}
	return topic, nil
}
