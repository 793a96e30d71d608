package packwise

import (
	"embed"

	"github.com/arthur-debert/packwise/pkg/cobrax/topics"
	"github.com/arthur-debert/packwise/pkg/logging"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// installTopics wires the embedded help topics into root's help command
func installTopics(root *cobra.Command) {
	m, err := topics.Load(topicFiles, "topics", topics.Options{
		Renderer: topics.MarkdownRenderer{},
	})
	if err != nil {
		logger := logging.GetLogger("cmd")
		logger.Warn().Err(err).Msg("Help topics unavailable")
		return
	}
	m.Install(root)
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			help, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || help == nil || help.Name() != "help" || help.Run == nil {
				return errNoHelp
			}
			help.Run(help, []string{"topics"})
			return nil
		},
	}
}
