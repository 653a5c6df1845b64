package main

import (
	"fmt"
	"io"
	"os"

	"lesson-planner/internal/config"
	"lesson-planner/internal/export"
	"lesson-planner/internal/planner"

	"github.com/spf13/cobra"
)

type renderOptions struct {
	form   planner.Form
	format string
	out    string
}

var renderOpts renderOptions

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Synthesize a lesson plan and write it to a file without storing it",
	Example: `  lesson-planner render --subject Math --grade 5 --topic Fractions --duration 45 --format pdf
  lesson-planner render --subject Art --grade 2 --topic Colour --duration 30 --out -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd.OutOrStdout(), cfg.Export, renderOpts)
	},
}

func init() {
	flags := renderCmd.Flags()
	flags.StringVar(&renderOpts.form.Subject, "subject", "", "lesson subject")
	flags.StringVar(&renderOpts.form.Grade, "grade", "", "grade or class")
	flags.StringVar(&renderOpts.form.Topic, "topic", "", "lesson topic")
	flags.StringVar((*string)(&renderOpts.form.Duration), "duration", "", "duration in minutes")
	flags.StringVar(&renderOpts.form.TeacherActions, "teacher-actions", "", "teacher actions used for every activity")
	flags.StringVar(&renderOpts.form.StudentRequirements, "student-requirements", "", "supplies students need (inferred from the topic when empty)")
	flags.StringVar(&renderOpts.format, "format", string(export.FormatText), "output format: txt, pdf or docx")
	flags.StringVarP(&renderOpts.out, "out", "o", "", `output file (default lessonplan.<ext>, "-" for stdout)`)
}

func runRender(stdout io.Writer, exportCfg config.ExportConfig, opts renderOptions) error {
	format := export.Format(opts.format)
	switch format {
	case export.FormatText, export.FormatPDF, export.FormatDOCX:
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}

	in, err := planner.ParseForm(opts.form)
	if err != nil {
		return err
	}

	exporter := export.NewExporter(
		export.NewPDFRenderer(exportCfg.PDFEnabled),
		export.NewDOCXRenderer(exportCfg.DOCXEnabled),
	)
	artifact, err := exporter.Export(format, export.Document{
		Text: planner.Synthesize(in),
		Meta: &export.Metadata{
			Subject:  in.Subject,
			Grade:    in.Grade,
			Topic:    in.Topic,
			Duration: in.Duration,
		},
	})
	if err != nil {
		return err
	}

	if opts.out == "-" {
		_, err := stdout.Write(artifact.Body)
		return err
	}

	out := opts.out
	if out == "" {
		out = "lessonplan." + artifact.Extension
	}
	if err := os.WriteFile(out, artifact.Body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Fprintf(stdout, "Wrote %s (%d bytes)\n", out, len(artifact.Body))
	return nil
}
