package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"matgen/cmd/util"
	"matgen/generator"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// RootCmd generates the M and N matrix files.
var RootCmd = &cobra.Command{
	Use:   "matgen <rowsM> <inner> <colsN>",
	Short: "Generate two random matrices M (rowsM x inner) and N (inner x colsN)",
	Long: `Generate two random integer matrices that can be multiplied together.

M is written to M_<rowsM>_<inner> and N to N_<inner>_<colsN>, one cell per line:
	<row>,<col>\t<value>
with 1-based indices in row-major order and values in [0,99].`,
	Args:          cobra.ArbitraryArgs,
	RunE:          generate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var seed int64
var output string
var stage bool
var runID string
var cpuProfile string

const tmpFolder = "_tmp"

// Execute runs the root command and exits with status 1 on failure.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to execute command: "+err.Error())
		os.Exit(1)
	}
}

func init() {
	RootCmd.Flags().Int64VarP(&seed, "seed", "s", 0, "Seed for the random values (default: current time in nanoseconds)")
	RootCmd.Flags().StringVarP(&output, "output", "o", ".", "The path to the output folder")
	RootCmd.Flags().BoolVar(&stage, "stage", false, "Write into <output>/"+tmpFolder+"/<id>/ first and copy to the output folder once both files are complete")
	RootCmd.Flags().StringVarP(&runID, "id", "n", "", "The id of the run, used for the staging folder (default: random UUID)")
	RootCmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "Write a CPU profile of the generation to this file and print a summary")
}

func generate(cmd *cobra.Command, args []string) error {
	dims, err := generator.ParseDims(args)
	if err != nil {
		return err
	}

	s := seed
	if !cmd.Flags().Changed("seed") {
		s = generator.NewSeed()
	}
	gen := generator.New(s)
	fmt.Fprintf(cmd.ErrOrStderr(), "Using seed: %d\n", gen.Seed())

	if cpuProfile != "" {
		stop, err := util.StartCPUProfile(cpuProfile)
		if err != nil {
			return err
		}
		defer func() {
			if err := stop(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error closing cpu profile: "+err.Error())
				return
			}
			if err := util.SummarizeProfile(cpuProfile, 5, cmd.ErrOrStderr()); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error reading cpu profile: "+err.Error())
			}
		}()
	}

	if !stage {
		return gen.Run(output, dims, cmd.OutOrStdout())
	}

	id := runID
	if len(id) == 0 {
		id = uuid.New().String()
	}
	stagePath := filepath.Join(output, tmpFolder, id)
	if err := util.CleanOrCreateTempFolder(stagePath); err != nil {
		return err
	}
	if err := gen.Run(stagePath, dims, cmd.OutOrStdout()); err != nil {
		return err
	}
	err = util.PublishStaged(stagePath, output,
		generator.FileName(generator.LabelM, dims.RowsM, dims.Inner),
		generator.FileName(generator.LabelN, dims.Inner, dims.ColsN))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Staged in %s, written to %s\n", stagePath, output)
	// a failed run keeps its staging folder for inspection
	return os.RemoveAll(stagePath)
}
