package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/orderscan/internal/declension"
	"github.com/dgallion1/orderscan/internal/history"
	"github.com/dgallion1/orderscan/internal/ordermode"
	"github.com/dgallion1/orderscan/internal/parser"
	"github.com/dgallion1/orderscan/internal/pipeline"
	"github.com/dgallion1/orderscan/internal/roster"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "orderscan",
		Short: "Search military orders by keyword or personnel roster",
		Long: `Orderscan rebuilds the point / subpoint / rank-line structure of an
order document and extracts the parts that mention a keyword or a person
from a roster, in any grammatical case.

Supported documents: DOCX, PDF, HTML, Markdown, TXT
Supported rosters:   XLSX, CSV, TXT`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log progress and structure anomalies to stderr")
	rootCmd.PersistentFlags().String("dictionary", "", "YAML file extending the built-in name dictionary")
	rootCmd.PersistentFlags().String("history", "", "SQLite file to record runs in (disabled when empty)")

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(namesCmd())
	rootCmd.AddCommand(paragraphsCmd())
	rootCmd.AddCommand(formsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find order items containing a keyword, with their parent items",
		Long: `Find order items whose text contains a keyword (case-insensitive).
Every match is printed together with the points, subpoints and rank lines it
hangs under, in document order.

Examples:
  orderscan search --doc order.docx --keyword відпустк
  orderscan search --doc order.docx -k відпустк -k відрядження --format docx --out result.docx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			keywords, _ := cmd.Flags().GetStringArray("keyword")
			if len(keywords) == 0 {
				return fmt.Errorf("--keyword flag is required")
			}
			req, err := documentRequest(cmd, pipeline.ModeSearch)
			if err != nil {
				return err
			}
			req.Keywords = keywords
			return run(cmd, req)
		},
	}
	addDocumentFlags(cmd)
	cmd.Flags().StringArrayP("keyword", "k", nil, "Keyword to search for (repeatable)")
	return cmd
}

func namesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "names",
		Short: "Find order items mentioning people from a roster",
		Long: `Find order items that mention any roster member in any grammatical
case, with their parent items. Leading ranks and upper-case surnames in the
roster are normalised.

Examples:
  orderscan names --doc order.docx --roster roster.xlsx
  orderscan names --doc order.docx --name "Шостак Олександр Володимирович" --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := documentRequest(cmd, pipeline.ModeNames)
			if err != nil {
				return err
			}
			if req.Names, err = rosterNames(cmd); err != nil {
				return err
			}
			return run(cmd, req)
		},
	}
	addDocumentFlags(cmd)
	addRosterFlags(cmd)
	return cmd
}

func paragraphsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paragraphs",
		Short: "Select directive paragraphs that name roster members",
		Long: `Split the document on blank lines and keep each paragraph that contains
the directive keyword and at least one roster name.

Examples:
  orderscan paragraphs --doc order.docx --roster roster.xlsx
  orderscan paragraphs --text order.txt --roster roster.csv --directive "згідно з наказом"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			textPath, _ := cmd.Flags().GetString("text")
			doc, _ := cmd.Flags().GetString("doc")

			var req pipeline.Request
			switch {
			case textPath != "" && doc != "":
				return fmt.Errorf("--doc and --text are mutually exclusive")
			case textPath != "":
				data, err := os.ReadFile(textPath)
				if err != nil {
					return fmt.Errorf("failed to read text: %w", err)
				}
				req = pipeline.Request{Mode: pipeline.ModeParagraphs, Filename: filepath.Base(textPath), Text: string(data)}
			default:
				var err error
				if req, err = documentRequest(cmd, pipeline.ModeParagraphs); err != nil {
					return err
				}
			}

			var err error
			if req.Names, err = rosterNames(cmd); err != nil {
				return err
			}
			return run(cmd, req)
		},
	}
	addDocumentFlags(cmd)
	addRosterFlags(cmd)
	cmd.Flags().String("text", "", "Plain text file to split on blank lines instead of --doc")
	cmd.Flags().String("directive", ordermode.DefaultKeyword, "Directive keyword a paragraph must contain")
	return cmd
}

func formsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forms NAME",
		Short: "List the inflected forms a name is searched under",
		Example: `  orderscan forms "Шостак Олександр Володимирович"
  orderscan forms Коваль Андрій`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := loadDictionary(cmd)
			if err != nil {
				return err
			}
			for _, f := range dict.AllForms(strings.Join(args, " ")) {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}

func addDocumentFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("doc", "d", "", "Order document (.docx, .pdf, .html, .md, .txt)")
	cmd.Flags().StringP("out", "o", "", "Output file (stdout when empty)")
	cmd.Flags().StringP("format", "f", "md", "Output format (docx, md, json)")
	cmd.Flags().Bool("pdftotext", true, "Fall back to pdftotext when the Go PDF reader fails")
}

func addRosterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("roster", "r", "", "Roster file (.xlsx, .csv, .txt)")
	cmd.Flags().Int("sheet", 0, "Roster worksheet index (xlsx)")
	cmd.Flags().Int("column", -1, "Roster name column index (auto-detected when negative)")
	cmd.Flags().StringArrayP("name", "n", nil, "Roster name given directly (repeatable)")
}

// documentRequest reads --doc into a request.
func documentRequest(cmd *cobra.Command, mode pipeline.Mode) (pipeline.Request, error) {
	doc, _ := cmd.Flags().GetString("doc")
	if doc == "" {
		return pipeline.Request{}, fmt.Errorf("--doc flag is required")
	}
	if !parser.IsSupportedExtension(doc) {
		return pipeline.Request{}, fmt.Errorf("%w: %s", parser.ErrUnsupportedFormat, filepath.Ext(doc))
	}
	data, err := os.ReadFile(doc)
	if err != nil {
		return pipeline.Request{}, fmt.Errorf("failed to read document: %w", err)
	}
	return pipeline.Request{Mode: mode, Filename: filepath.Base(doc), Data: data}, nil
}

// rosterNames merges --roster and --name.
func rosterNames(cmd *cobra.Command) ([]string, error) {
	path, _ := cmd.Flags().GetString("roster")
	direct, _ := cmd.Flags().GetStringArray("name")
	sheet, _ := cmd.Flags().GetInt("sheet")
	column, _ := cmd.Flags().GetInt("column")

	names := append([]string(nil), direct...)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open roster: %w", err)
		}
		defer f.Close()
		opts := roster.Options{Sheet: sheet, Column: column}
		fromFile, err := opts.Read(f, filepath.Base(path))
		if err != nil {
			return nil, fmt.Errorf("roster %s: %w", path, err)
		}
		names = append(names, fromFile...)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("--roster or --name is required")
	}
	return names, nil
}

func loadDictionary(cmd *cobra.Command) (*declension.Dictionary, error) {
	path, _ := cmd.Flags().GetString("dictionary")
	if path == "" {
		return declension.Default(), nil
	}
	return declension.LoadDictionary(path)
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// run processes req and writes the result in the requested format.
func run(cmd *cobra.Command, req pipeline.Request) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	pdftotext, _ := cmd.Flags().GetBool("pdftotext")
	directive, _ := cmd.Flags().GetString("directive")
	historyPath, _ := cmd.Flags().GetString("history")

	if err := checkFormat(format, out); err != nil {
		return err
	}
	dict, err := loadDictionary(cmd)
	if err != nil {
		return err
	}

	var hist *history.Store
	if historyPath != "" {
		if hist, err = history.Open(historyPath); err != nil {
			return err
		}
		defer hist.Close()
	}

	proc := pipeline.NewProcessor(pipeline.ProcessorConfig{
		Parsers:          parser.Options{PDFFallback: pdftotext},
		Dictionary:       dict,
		DirectiveKeyword: directive,
		History:          hist,
	}, newLogger(cmd))

	res, err := proc.Run(context.Background(), req, nil)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := writeResult(w, res, format); err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d matches written to %s\n", res.MatchCount(), out)
	}
	return nil
}
