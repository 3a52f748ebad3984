package modshell

import (
	"fmt"

	"github.com/arthur-debert/modshell/pkg/config"
	"github.com/arthur-debert/modshell/pkg/errors"
	"github.com/arthur-debert/modshell/pkg/host"
	"github.com/arthur-debert/modshell/pkg/logging"
	"github.com/arthur-debert/modshell/pkg/output"
	"github.com/spf13/cobra"
)

// bootstrap registers the configured modules and prints module failures to
// stderr. Only protocol violations and invalid configuration are returned.
func (o *globalOptions) bootstrap(cmd *cobra.Command, reportFailures bool) (*host.Result, error) {
	result, err := host.Bootstrap(cmd.Context(), o.cfg, host.Options{})
	if err != nil {
		return nil, err
	}

	if reportFailures && result.Errors.Len() > 0 {
		renderer, err := o.errRenderer(cmd)
		if err != nil {
			return nil, err
		}
		if err := renderer.RenderErrors(result.Errors.All()); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func newRoutesCmd(opts *globalOptions) *cobra.Command {
	var pendingOnly bool

	cmd := &cobra.Command{
		Use:     "routes",
		Short:   MsgRoutesShort,
		Long:    MsgRoutesLong,
		Example: MsgRoutesExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.routes")

			result, err := opts.bootstrap(cmd, true)
			if err != nil {
				return err
			}

			view := output.RoutesView{
				Routes:  result.Runtime.Routes(),
				Pending: result.Runtime.PendingRoutes(),
			}
			if pendingOnly {
				view.Routes = nil
			}

			logger.Info().
				Int("roots", len(view.Routes)).
				Int("pending", len(view.Pending)).
				Msg("Rendering routes")

			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderRoutes(view)
		},
	}

	cmd.Flags().BoolVar(&pendingOnly, "pending", false, MsgFlagPending)

	return cmd
}

func newNavCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "nav [menu...]",
		Short:   MsgNavShort,
		Long:    MsgNavLong,
		Example: MsgNavExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := opts.bootstrap(cmd, true)
			if err != nil {
				return err
			}

			menus := args
			if len(menus) == 0 {
				menus = result.Runtime.Menus()
			}

			views := make([]output.MenuView, 0, len(menus))
			for _, menu := range menus {
				items := result.Runtime.GetNavigationItems(menu)
				if len(items) == 0 {
					warnings, err := opts.errRenderer(cmd)
					if err != nil {
						return err
					}
					if err := warnings.RenderWarning(fmt.Sprintf(MsgEmptyMenu, menu)); err != nil {
						return err
					}
					continue
				}
				views = append(views, output.MenuView{Menu: menu, Items: items})
			}

			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderNavigation(views)
		},
	}
}

func newStatusCmd(opts *globalOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Failures are part of the report
			result, err := opts.bootstrap(cmd, false)
			if err != nil {
				return err
			}

			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			if err := renderer.RenderStatus(output.NewStatusReport(result)); err != nil {
				return err
			}

			if strict && result.Errors.Len() > 0 {
				return errors.Newf(errors.ErrModuleRegister, MsgModuleFailed, result.Errors.Len()).
					WithDetail("failures", result.Errors.Len())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, MsgFlagStrict)

	return cmd
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		Example: MsgConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.GenerateConfigContent())
				return err
			}

			if opts.cfg.Output.Format == config.FormatJSON {
				renderer, err := opts.renderer(cmd)
				if err != nil {
					return err
				}
				return renderer.RenderValue(opts.cfg)
			}

			data, err := config.Marshal(opts.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)

	return cmd
}
