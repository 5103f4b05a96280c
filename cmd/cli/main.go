package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"datacheck/adapters/excel"
	"datacheck/domain/dictionary"
	"datacheck/domain/report"
	"datacheck/internal"
	"datacheck/internal/evaluate"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "datacheck",
		Short: "Validate research datasets and data dictionaries",
	}

	rootCmd.AddCommand(
		newDatasetCmd(),
		newDictionaryCmd(),
		newDossierCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newDatasetCmd() *cobra.Command {
	var dictPath, out, name, idColumn string
	var extended bool

	cmd := &cobra.Command{
		Use:   "dataset [file]",
		Short: "Evaluate one dataset (xlsx or csv) against its data dictionary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := excel.NewDataReader(args[0]).ReadDataset(idColumn)
			if err != nil {
				return err
			}
			var dd *dictionary.DataDict
			if dictPath != "" {
				dd, err = excel.NewDataReader(dictPath).ReadDataDict()
				if err != nil {
					return err
				}
			}
			if name == "" {
				name = baseName(args[0])
			}
			rep, err := evaluate.New(internal.DefaultLogger).Dataset(ds, dd, nil, name, extended)
			if err != nil {
				return err
			}
			return emit(rep, out)
		},
	}

	cmd.Flags().StringVar(&dictPath, "dictionary", "", "data dictionary workbook (sheets Variables/Categories)")
	cmd.Flags().StringVar(&out, "out", "", "write the report workbook to this path instead of printing markdown")
	cmd.Flags().StringVar(&name, "name", "", "display name for the dataset")
	cmd.Flags().StringVar(&idColumn, "id-column", "", "declared id column of the dataset")
	cmd.Flags().BoolVar(&extended, "extended", true, "evaluate against the extended (tagged) schema")
	return cmd
}

func newDictionaryCmd() *cobra.Command {
	var out string
	var extended bool

	cmd := &cobra.Command{
		Use:   "dictionary [file]",
		Short: "Evaluate a data dictionary on its own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dd, err := excel.NewDataReader(args[0]).ReadDataDict()
			if err != nil {
				return err
			}
			rep, err := evaluate.New(internal.DefaultLogger).DataDictionary(dd, nil, extended)
			if err != nil {
				return err
			}
			return emit(rep, out)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "write the report workbook to this path instead of printing markdown")
	cmd.Flags().BoolVar(&extended, "extended", true, "evaluate against the extended (tagged) schema")
	return cmd
}

func newDossierCmd() *cobra.Command {
	var outDir, idColumn string
	var extended bool

	cmd := &cobra.Command{
		Use:   "dossier [dir]",
		Short: "Evaluate every dataset file in a directory, report per entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loadDossier(args[0], idColumn)
			if err != nil {
				return err
			}
			result, err := evaluate.New(internal.DefaultLogger).Dossier(entries, nil, extended)
			if err != nil {
				return err
			}
			for _, name := range result.Order {
				if entryErr, ok := result.Errors[name]; ok {
					fmt.Fprintf(os.Stderr, "%s: %v\n", name, entryErr)
					continue
				}
				rep := result.Reports[name]
				out := ""
				if outDir != "" {
					out = filepath.Join(outDir, name+".xlsx")
				} else {
					fmt.Printf("# %s\n\n", name)
				}
				if err := emit(rep, out); err != nil {
					return err
				}
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d of %d entries failed", len(result.Errors), len(result.Order))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "write one report workbook per entry into this directory")
	cmd.Flags().StringVar(&idColumn, "id-column", "", "declared id column shared by the datasets")
	cmd.Flags().BoolVar(&extended, "extended", true, "evaluate against the extended (tagged) schema")
	return cmd
}

// loadDossier builds dossier entries from the dataset files of a directory,
// in name order so reports are reproducible.
func loadDossier(dir, idColumn string) ([]evaluate.Entry, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	sort.Strings(matches)

	var entries []evaluate.Entry
	for _, path := range matches {
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".xlsx" && ext != ".csv" {
			continue
		}
		ds, err := excel.NewDataReader(path).ReadDataset(idColumn)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		entries = append(entries, evaluate.Entry{Name: baseName(path), Dataset: ds})
	}
	return entries, nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func emit(rep *report.Report, out string) error {
	if out == "" {
		fmt.Print(rep.Markdown())
		return nil
	}
	if err := excel.NewReportWriter().WriteReport(out, rep); err != nil {
		return err
	}
	fmt.Printf("report written to %s\n", out)
	return nil
}
