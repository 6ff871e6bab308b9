package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/pixi-devenv/internal/configs"
	"github.com/PolarWolf314/pixi-devenv/internal/ui"
	"github.com/PolarWolf314/pixi-devenv/internal/workflows"
)

var watchDebounce time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "wait this long after a change before updating (defaults to the user config)")
}

func resetWatchState() {
	watchDebounce = 0
}

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Update pixi.toml whenever a project file changes",
	Long: `Runs update, then watches the pixi.devenv.toml of every project in the
workspace and runs update again after each change. Upstream projects added
or removed by a change are picked up automatically.

Stop with Ctrl+C.

Examples:
  pixi-devenv watch
  pixi-devenv watch --debounce 1s`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting watch command")

		debounce := watchDebounce
		if debounce <= 0 {
			userConfig, err := configs.LoadUserConfig()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to load user config: %w", err)
			}
			debounce = userConfig.Debounce()
		}
		Logger.Debugf("Debounce: %s", debounce)

		dir, err := projectDir(args)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Println(ui.Hint("Watching " + ui.Path.Sprint(dir) + ", press Ctrl+C to stop"))
		return workflows.Watch(ctx, workflows.WatchOptions{
			Dir:      dir,
			Debounce: debounce,
			Log:      Logger,
			OnUpdate: printWatchUpdate,
		})
	},
}

func printWatchUpdate(result *workflows.UpdateResult, err error) {
	stamp := ui.Muted.Sprint(time.Now().Format("15:04:05"))
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Failed(err.Error())+" "+stamp)
		printHint(err)
		return
	}
	fmt.Print(unknownKeyWarnings(result.UnknownKeys, result.Files))
	if result.Changed {
		fmt.Println(ui.Done("Updated "+ui.Path.Sprint(result.PixiFile)) + " " + stamp)
	} else {
		fmt.Println(ui.Done(ui.Path.Sprint(result.PixiFile)+" is up to date") + " " + stamp)
	}
}
