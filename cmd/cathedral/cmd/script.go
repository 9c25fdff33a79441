package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/Cathedral/internal/logging"
	"github.com/OpenTraceLab/Cathedral/pkg/console"
	"github.com/OpenTraceLab/Cathedral/pkg/editor"
)

var copyListing bool

var scriptCmd = &cobra.Command{
	Use:   "script [file]",
	Short: "Run console commands without a window",
	Long: `Run console commands from a file, or from stdin when no file is given.
Each line is one command, for example:

  add resistor 4.7k nodes 1 2
  add capacitor 100n nodes 2 0 at 100 0
  connect Resistor0.right Capacitor1.left
  list
  netlist json

Lines starting with # are comments. The run stops at the first syntax error
or at "exit".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		log, err := openLogger(cfg, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer log.Close()

		in := cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		ed, err := runScript(in, cmd.OutOrStdout(), log)
		if err != nil {
			return err
		}
		if copyListing {
			text := strings.Join(ed.List().Lines(), "\n")
			if err := clipboard.WriteAll(text); err != nil {
				return fmt.Errorf("copy listing: %w", err)
			}
			log.Infof("Listing copied to clipboard")
		}
		return nil
	},
}

func init() {
	scriptCmd.Flags().BoolVar(&copyListing, "copy", false, "copy the final component listing to the clipboard")
	rootCmd.AddCommand(scriptCmd)
}

// runScript executes every command read from r against a fresh editor and
// returns the editor for inspection.
func runScript(r io.Reader, out io.Writer, log *logging.Logger) (*editor.Editor, error) {
	ed := editor.New(log)
	sh := console.New(ed, out)
	if err := sh.Run(r); err != nil {
		return ed, err
	}
	return ed, nil
}
