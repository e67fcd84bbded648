package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nsetools/stockcsv/internal/backup"
	"github.com/nsetools/stockcsv/internal/config"
	"github.com/nsetools/stockcsv/internal/renamer"
	"github.com/nsetools/stockcsv/internal/util"
	"github.com/nsetools/stockcsv/internal/weekfill"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	cfg := config.New()
	var logger util.Logger
	var quietMode bool
	var verboseMode bool

	renameOpts := &renamer.Options{}
	var backupFormat string

	fillOpts := &weekfill.Options{}
	var fillGlob string

	var rootCmd = &cobra.Command{
		Use:   "stockcsv",
		Short: "Maintenance CLI for NSE stock data CSV files",
		Long:  "Maintenance CLI for NSE stock data CSV files\n\nExit codes:\n  0 - Success\n  1 - General error",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cliGlob, _ := cmd.Flags().GetString("glob")
			cliPrefix, _ := cmd.Flags().GetString("prefix")
			quietMode, _ = cmd.Flags().GetBool("quiet")
			verboseMode, _ = cmd.Flags().GetBool("verbose")
			if cliGlob != "" {
				cfg.GlobPattern = cliGlob
			}
			if cliPrefix != "" {
				cfg.HeaderPrefix = cliPrefix
			}
			if quietMode {
				logger = util.NewLogger(io.Discard)
			} else if verboseMode {
				logger = util.NewVerboseLogger(os.Stdout)
			} else {
				logger = util.NewLogger(os.Stdout)
			}
			renameOpts.Logger = logger
			renameOpts.QuietMode = quietMode
			fillOpts.Logger = logger
			fillOpts.QuietMode = quietMode
		},
	}

	rootCmd.PersistentFlags().StringP("glob", "g", "", "Glob pattern(s) to select files (defaults to STOCKCSV_GLOB env var or 'nse_100_data*.csv'; comma-separated, supports negation with !)")
	rootCmd.PersistentFlags().StringP("prefix", "p", "", "Header prefix marking a file as already renamed (defaults to STOCKCSV_HEADER_PREFIX env var or 'Date')")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	var renameCmd = &cobra.Command{
		Use:   "rename [dir]",
		Short: "Rename raw CSV downloads after the symbol in their first line",
		Long:  "Rename raw CSV downloads after the symbol in their first line\n\nEach matched file is moved to '<symbol>.csv' with its first line stripped.\nFiles whose first line already starts with the header prefix are skipped.\n\nExit codes:\n  0 - Success\n  1 - One or more files failed",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if backupFormat != "" {
				format, err := backup.Parse(backupFormat)
				if err != nil {
					fmt.Println(err)
					os.Exit(1)
				}
				renameOpts.BackupFormat = format
			}
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			os.Exit(int(renamer.Run(dir, cfg, renameOpts)))
		},
	}
	renameCmd.Flags().BoolVarP(&renameOpts.Force, "force", "F", false, "Overwrite an existing file when the derived name collides")
	renameCmd.Flags().BoolVarP(&renameOpts.DryRun, "dry-run", "n", false, "Report what would be renamed without touching any file")
	renameCmd.Flags().StringVarP(&renameOpts.BackupFile, "backup", "b", "", "Archive the matched files to this path before renaming")
	renameCmd.Flags().StringVar(&backupFormat, "backup-format", "", "Backup compression format: gzip (default) or zstd")

	var fillWeekCmd = &cobra.Command{
		Use:   "fill-week [dir]",
		Short: "Insert a missing weekly row into weekly CSV files",
		Long:  "Insert a missing weekly row into weekly CSV files\n\nFor every matched file where --previous is absent from the first column and\n--current is present, a row '<previous> 15:30:00,<close>' is inserted before\nthe current week's row, using the current week's closing value.\n\nExit codes:\n  0 - Success\n  1 - One or more files failed",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if fillOpts.PreviousWeek == "" || fillOpts.CurrentWeek == "" {
				fmt.Println("both --previous and --current are required")
				os.Exit(1)
			}
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			os.Exit(int(weekfill.Run(dir, fillGlob, fillOpts)))
		},
	}
	fillWeekCmd.Flags().StringVar(&fillOpts.PreviousWeek, "previous", "", "Date of the missing week (e.g. '01/03/2024')")
	fillWeekCmd.Flags().StringVar(&fillOpts.CurrentWeek, "current", "", "Date of the week present in the file (e.g. '07/03/2024')")
	fillWeekCmd.Flags().BoolVarP(&fillOpts.DryRun, "dry-run", "n", false, "Report what would be updated without touching any file")
	fillWeekCmd.Flags().StringVar(&fillGlob, "week-glob", "*.csv", "Glob pattern(s) to select weekly files")

	var restoreCmd = &cobra.Command{
		Use:   "restore <archive> [dir]",
		Short: "Extract a backup archive created by 'rename --backup'",
		Long:  "Extract a backup archive created by 'rename --backup'\n\nExit codes:\n  0 - Success\n  1 - General error",
		Args:  cobra.RangeArgs(1, 2),
		Run: func(cmd *cobra.Command, args []string) {
			archivePath := args[0]
			dir := "."
			if len(args) == 2 {
				dir = args[1]
			}
			format := backup.Infer(archivePath)
			if backupFormat != "" {
				parsed, err := backup.Parse(backupFormat)
				if err != nil {
					fmt.Println(err)
					os.Exit(1)
				}
				format = parsed
			}
			file, err := os.Open(archivePath)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			defer file.Close()
			if err := format.Extract(file, dir); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			logger.Printf("Restored %s to %s\n", archivePath, dir)
		},
	}
	restoreCmd.Flags().StringVar(&backupFormat, "backup-format", "", "Archive format: gzip or zstd (defaults to the archive extension)")

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "Print the version number of stockcsv",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stockcsv version %s\n", version)
		},
	}

	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(fillWeekCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
