package modshell

import (
	"io"

	"github.com/arthur-debert/modshell/pkg/errors"
	"github.com/spf13/cobra"
)

// GenCompletion writes the completion script of root for shell
func GenCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown shell %q, supported shells: bash, zsh, fish, powershell", shell).
			WithDetail("shell", shell)
	}
}
