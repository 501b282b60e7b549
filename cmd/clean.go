package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"scene-editor/core/assets"
	"scene-editor/feature/browser"

	"github.com/spf13/cobra"
)

var cleanYes bool

// cleanCmd prunes unused assets across all categories.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove unused assets from storage and the database",
	Long: `Invokes Clean on every asset category that supports it. A failing
category is logged and skipped so the others still get cleaned.

Examples:
  # Clean with interactive confirmation
  scene-editor clean

  # Clean without prompting (non-interactive)
  scene-editor clean --yes`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanYes, "yes", false, "Auto-confirm the destructive prune (non-interactive)")
	RootCmd.AddCommand(cleanCmd)
}

// stdinConfirmer prompts on the terminal before destructive operations.
type stdinConfirmer struct{}

func (stdinConfirmer) Confirm(ctx context.Context, message string) (bool, error) {
	fmt.Printf("%s [y/N]: ", message)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func runClean(cmd *cobra.Command, args []string) error {
	stack, err := buildAssetStack()
	if err != nil {
		return err
	}

	var confirmer assets.Confirmer = stdinConfirmer{}
	if cleanYes {
		confirmer = assets.AutoConfirm{}
	}

	svc := browser.NewService(stack.registry, stack.coordinator, stack.store,
		stack.cfg.Storage.Bucket, assets.NewLogSink(stack.logger), confirmer,
		stack.cfg.Assets, stack.logger)

	cleaned, err := svc.CleanAll(context.Background())
	if err != nil {
		return err
	}
	if !cleaned {
		stack.logger.Info("Clean declined")
		return nil
	}
	stack.logger.Info("Clean completed")
	return nil
}
