package packwise

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arthur-debert/packwise/pkg/devserver"
	"github.com/arthur-debert/packwise/pkg/engine"
	"github.com/arthur-debert/packwise/pkg/errors"
	"github.com/arthur-debert/packwise/pkg/logging"
	"github.com/spf13/cobra"
)

func newServeCmd(load settingsLoader) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Short:   MsgServeShort,
		Long:    MsgServeLong,
		Example: MsgServeExample,
		GroupID: "build",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.GetLogger("cmd.serve")
			defer logging.LogOperationStart(logger, "serve")()

			settings, err := load()
			if err != nil {
				return err
			}
			if settings.Env.Production() {
				return errors.New(errors.ErrInvalidInput, MsgErrServeProd)
			}

			cfg, renderer := composeFor(settings)
			printBanner(settings.Env)

			srv, err := devserver.New(cfg.DevServer)
			if err != nil {
				return err
			}
			eng, err := engine.New(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- srv.ListenAndServe(ctx)
				cancel()
			}()

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgServing, cfg.DevServer.ContentBase, addressOf(cfg.DevServer.Host, cfg.DevServer.Port))

			err = eng.Watch(ctx, func(result engine.Result) {
				if renderer != nil {
					renderer.Done()
				}
				if result.Failed() {
					_, _ = fmt.Fprintf(out, MsgRebuildFailed, len(result.Errors))
					return
				}
				pages := srv.Notify()
				_, _ = fmt.Fprintf(out, MsgRebuildDone, len(result.Outputs), result.Duration.Round(time.Millisecond), pages)
			})
			cancel()

			listenErr := <-serveErr
			logger.Info().Str("session", eng.Session()).Msg("Serve stopped")
			return stderrors.Join(err, listenErr)
		},
	}
}

func addressOf(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
