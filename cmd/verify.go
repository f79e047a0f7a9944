package cmd

import (
	"bytes"
	"fmt"
	"os"

	"matgen/verifier"

	"github.com/owenrumney/go-sarif/sarif"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:     "verify <file>...",
	Short:   "Check matrix files against the shape encoded in their names",
	Aliases: []string{"v"},
	Args:    cobra.MinimumNArgs(1),
	RunE:    verify,
}

var sarifPath string

func init() {
	verifyCmd.Flags().StringVarP(&sarifPath, "sarif", "r", "", "Also write the violations as a SARIF report to this file")
	RootCmd.AddCommand(verifyCmd)
}

func verify(cmd *cobra.Command, args []string) error {
	run := sarif.NewRun("matgen", "")
	total := 0
	for _, path := range args {
		violations, err := verifier.CheckFile(path)
		if err != nil {
			return fmt.Errorf("verifying %s: %w", path, err)
		}
		if len(violations) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			continue
		}
		for _, v := range violations {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, v)
			addRunResult(run, v, path)
		}
		total += len(violations)
	}

	if sarifPath != "" {
		if err := writeSarifReport(run, sarifPath); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "SARIF file written to "+sarifPath)
	}
	if total > 0 {
		return fmt.Errorf("%d violation(s) found", total)
	}
	return nil
}

func addRunResult(run *sarif.Run, v verifier.Violation, filePath string) {
	location := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewArtifactLocation().WithUri(filePath))
	if v.Line > 0 {
		location = location.WithRegion(sarif.NewRegion().WithStartLine(v.Line))
	}
	run.AddResult(v.Rule).
		WithLocation(sarif.NewLocationWithPhysicalLocation(location)).
		WithMessage(sarif.NewMessage().WithText(v.Message))
}

func writeSarifReport(run *sarif.Run, path string) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("creating SARIF report: %w", err)
	}
	report.AddRun(run)
	buffer := bytes.NewBufferString("")
	if err := report.Write(buffer); err != nil {
		return fmt.Errorf("writing SARIF report: %w", err)
	}
	if err := os.WriteFile(path, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing SARIF file %s: %w", path, err)
	}
	return nil
}
