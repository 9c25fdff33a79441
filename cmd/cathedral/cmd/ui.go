package cmd

import (
	"fmt"
	"os"

	"gioui.org/app"
	"github.com/spf13/cobra"

	appui "github.com/OpenTraceLab/Cathedral/internal/ui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the editor window",
	Long: `Launch the schematic editor. This is also what runs when cathedral is
started without a subcommand.`,
	RunE: runGUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := openLogger(cfg, nil)
	if err != nil {
		return err
	}

	go func() {
		w := new(app.Window)
		err := appui.New(w, cfg, log).Run()
		log.Close()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}
