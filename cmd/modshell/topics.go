package modshell

import (
	"embed"

	"github.com/arthur-debert/modshell/pkg/cobrax/topics"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

func loadTopics() (*topics.Manager, error) {
	return topics.Load(topicsFS, "topics", topics.Options{
		Renderer: topics.NewGlamourRenderer(),
	})
}

func newTopicsCmd(manager *topics.Manager) *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			manager.WriteList(cmd.OutOrStdout(), cmd.Root().Name())
		},
	}
}
