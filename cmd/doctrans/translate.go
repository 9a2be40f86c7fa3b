package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/doctrans"
	"github.com/ZaguanLabs/doctrans/format"
	"github.com/ZaguanLabs/doctrans/internal/app"
	"github.com/ZaguanLabs/doctrans/internal/config"
	"github.com/ZaguanLabs/doctrans/store"
)

type translateFlags struct {
	source          string
	target          string
	sheets          []string
	output          string
	provider        string
	restrictCharset bool
	requiredColumn  string
	dryRun          bool
	jsonOutput      bool
	quiet           bool
}

func translateCmd(g *globalFlags) *cobra.Command {
	var f translateFlags

	cmd := &cobra.Command{
		Use:   "translate FILE",
		Short: "Translate a spreadsheet or document",
		Long: `Translate a .xlsx, .csv, .docx, .pptx or .pdf file.

Tables keep their shape: every cell is translated in place and written back
as translated_<name>.xlsx (or .csv for CSV input). Documents are flattened
to text and written as translated_<name>.txt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, g, &f, args[0])
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.source, "source", "auto", "Source language code or name, or auto")
	fl.StringVar(&f.target, "target", "", "Target language code (default: en)")
	fl.StringArrayVar(&f.sheets, "sheet", nil, "Only translate this sheet (repeatable)")
	fl.StringVarP(&f.output, "output", "o", "", "Output file, - for stdout (default: translated_<name> next to the input)")
	fl.StringVar(&f.provider, "provider", "", "Translation provider (google, google-llm, openai, mock)")
	fl.BoolVar(&f.restrictCharset, "restrict-charset", false, "Drop characters outside letters, digits and basic punctuation")
	fl.StringVar(&f.requiredColumn, "required-column", "", "Only translate this column; every selected sheet must have it")
	fl.BoolVar(&f.dryRun, "dry-run", false, "Show what would be translated without calling a provider")
	fl.BoolVar(&f.jsonOutput, "json", false, "Print the result summary as JSON")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "Suppress progress output")

	return cmd
}

func (f *translateFlags) overrides(cmd *cobra.Command) map[string]any {
	o := map[string]any{
		// The CLI never needs records to outlive the process.
		"store.backend": config.BackendMemory,
	}
	if f.provider != "" {
		o["translation.provider"] = f.provider
	}
	if f.target != "" {
		o["translation.target_language"] = f.target
	}
	if cmd.Flags().Changed("restrict-charset") {
		o["translation.restrict_charset"] = f.restrictCharset
	}
	if f.requiredColumn != "" {
		o["translation.required_column"] = f.requiredColumn
	}
	return o
}

func runTranslate(cmd *cobra.Command, g *globalFlags, f *translateFlags, inputPath string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	data, err := os.ReadFile(inputPath) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if f.dryRun {
		return runDryRun(ctx, inputPath, data, f, stdout)
	}

	cfg, err := loadConfig(cmd, g, f.overrides(cmd))
	if err != nil {
		return err
	}

	a, err := app.NewFromConfig(ctx, cfg, newLogger(cfg, stderr))
	if err != nil {
		return err
	}
	defer a.Close()

	if !f.quiet && !f.jsonOutput {
		fmt.Fprintf(stderr, "Translating %s from %s to %s...\n", filepath.Base(inputPath), f.source, a.TargetLang())
	}

	start := time.Now()
	rec, err := a.Translate(ctx, app.Request{
		FileName:   inputPath,
		Data:       data,
		SourceLang: f.source,
		Sheets:     f.sheets,
	})
	if err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	elapsed := time.Since(start)

	out, err := a.Download(ctx, rec.ID)
	if err != nil {
		return err
	}

	outPath := f.output
	if outPath == "" {
		outPath = filepath.Join(filepath.Dir(inputPath), out.FileName)
	}
	if outPath == "-" {
		if _, err := stdout.Write(out.Data); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	} else if err := os.WriteFile(outPath, out.Data, 0o644); err != nil { // #nosec G306 - output is a user document
		return fmt.Errorf("writing output: %w", err)
	}

	if f.jsonOutput {
		return outputJSON(stdout, rec, a.TargetLang(), outPath, elapsed)
	}

	if !f.quiet {
		printSummary(stderr, rec, outPath, elapsed)
	}
	return nil
}

func printSummary(w io.Writer, rec *store.Record, outPath string, elapsed time.Duration) {
	fmt.Fprintf(w, "\nDone in %v\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "  Units:        %d\n", rec.Stats.Units)
	fmt.Fprintf(w, "  Translated:   %d\n", rec.Stats.Translated)
	fmt.Fprintf(w, "  Failed:       %d\n", rec.Stats.Failed)
	fmt.Fprintf(w, "  Skipped:      %d\n", rec.Stats.Skipped)
	if outPath != "-" {
		fmt.Fprintf(w, "  Output:       %s\n", outPath)
	}
	for _, fail := range rec.Failures {
		fmt.Fprintf(w, "  ! %s: %s\n", fail.Position, fail.Message)
	}
}

// JSONOutput represents the JSON output format.
type JSONOutput struct {
	ID         string             `json:"id"`
	InputFile  string             `json:"input_file"`
	OutputFile string             `json:"output_file"`
	SourceLang string             `json:"source_lang"`
	TargetLang string             `json:"target_lang"`
	Stats      doctrans.Stats     `json:"stats"`
	Failures   []doctrans.Failure `json:"failures"`
	ElapsedMs  int64              `json:"elapsed_ms"`
}

func outputJSON(w io.Writer, rec *store.Record, target, outPath string, elapsed time.Duration) error {
	failures := rec.Failures
	if failures == nil {
		failures = []doctrans.Failure{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(JSONOutput{
		ID:         rec.ID,
		InputFile:  rec.FileName,
		OutputFile: outPath,
		SourceLang: rec.SourceLang.String(),
		TargetLang: target,
		Stats:      rec.Stats,
		Failures:   failures,
		ElapsedMs:  elapsed.Milliseconds(),
	})
}

// dryRunUnit is a non-blank unit that would be sent to the provider.
type dryRunUnit struct {
	At   string `json:"at"`
	Text string `json:"text"`
}

// runDryRun extracts the document and lists what a run would send to the
// provider, by running it against a provider that only records.
func runDryRun(ctx context.Context, inputPath string, data []byte, f *translateFlags, stdout io.Writer) error {
	lang, err := doctrans.ParseLanguage(f.source)
	if err != nil {
		return err
	}

	doc, err := format.DefaultRegistry().Extract(inputPath, data)
	if err != nil {
		return fmt.Errorf("extracting text: %w", err)
	}

	units := []dryRunUnit{}
	recorder := doctrans.NewFuncProvider("dry-run", true, func(_ context.Context, req doctrans.TranslateRequest) (string, error) {
		units = append(units, dryRunUnit{At: req.Position.String(), Text: req.Text})
		return req.Text, nil
	})

	translator := doctrans.NewTranslator(recorder, doctrans.WithRequiredColumn(f.requiredColumn))
	if _, err := translator.Run(ctx, doc, lang, doctrans.OnlySheets(f.sheets...)); err != nil {
		return err
	}

	if f.jsonOutput {
		type dryRunOutput struct {
			InputFile string       `json:"input_file"`
			Kind      string       `json:"kind"`
			Sheets    []string     `json:"sheets,omitempty"`
			UnitCount int          `json:"unit_count"`
			Units     []dryRunUnit `json:"units"`
		}

		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(dryRunOutput{
			InputFile: doc.Source,
			Kind:      string(doc.Kind),
			Sheets:    doc.SheetNames(),
			UnitCount: len(units),
			Units:     units,
		})
	}

	fmt.Fprintf(stdout, "Dry run: %s (%s)\n", doc.Source, doc.Kind)
	fmt.Fprintf(stdout, "Found %d translatable units:\n\n", len(units))

	for i, u := range units {
		text := []rune(u.Text)
		if len(text) > 60 {
			text = append(text[:57], []rune("...")...)
		}
		fmt.Fprintf(stdout, "%3d. %s %q\n", i+1, u.At, string(text))
	}

	return nil
}
