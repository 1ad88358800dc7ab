// Package main is the imagepanel-batch CLI. It runs the panel's process and
// export flow on files from disk.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"image-panel/internal/config"
	"image-panel/internal/domain"
	"image-panel/internal/service"
	"image-panel/pkg/logger"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imagepanel-batch --operation <op> [files...]",
		Short: "Process images through the processing endpoint and export a PDF report",
		Long: `imagepanel-batch sends every file to the configured processing endpoint
with the chosen operation, prints one line per file and writes the
side-by-side PDF report when at least one file was processed.

The endpoint and limits come from the same environment as the server
(PROCESSOR_URL, PROCESSOR_TIMEOUT, PROCESS_CONCURRENCY, ...).`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBatch,
	}

	cmd.Flags().StringP("operation", "o", "", "operation to apply (grayscale, blur, edge, ...)")
	cmd.Flags().String("out", domain.ReportFilename, "path of the PDF report")
	cmd.Flags().String("save-dir", "", "directory for processed PNGs (skipped when empty)")
	_ = cmd.MarkFlagRequired("operation")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	operationName, _ := cmd.Flags().GetString("operation")
	out, _ := cmd.Flags().GetString("out")
	saveDir, _ := cmd.Flags().GetString("save-dir")

	operation, err := service.ParseOperation(operationName)
	if err != nil {
		return fmt.Errorf("%w; available: %s", err, operationNames())
	}

	cfg := config.NewConfig()
	container := config.BuildContainer(cfg, logger.NewConsoleLogger(cfg.GetLogLevel()))

	sources := make([]domain.ImageSource, 0, len(args))
	for _, path := range args {
		sources = append(sources, service.NewFileSource(path))
	}

	sessionID := uuid.NewString()
	batch, err := container.PanelService.ProcessBatch(cmd.Context(), sessionID, sources, operation)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printCards(w, batch.Cards)

	if saveDir != "" {
		if err := saveProcessed(w, container.PanelService, sessionID, batch.Cards, saveDir); err != nil {
			return err
		}
	}

	if !batch.Exportable {
		return fmt.Errorf("no image was processed, report not written")
	}

	report, err := container.ReportService.ExportReport(cmd.Context(), sessionID)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, report.Data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(w, "Report: %s (%d pages)\n", out, report.Pages)
	if report.ArchivePath != "" {
		fmt.Fprintf(w, "Archived: %s\n", report.ArchivePath)
	}
	return nil
}

func printCards(w io.Writer, cards []domain.ResultCard) {
	for _, card := range cards {
		if card.Succeeded() {
			fmt.Fprintf(w, "%s: ok\n", card.Title)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", card.Title, card.Error)
	}
}

func saveProcessed(w io.Writer, panel domain.PanelService, sessionID string, cards []domain.ResultCard, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	for _, card := range cards {
		if !card.Succeeded() {
			continue
		}
		dl, err := panel.Download(sessionID, card.Index, domain.DownloadPNG)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, dl.Filename)
		if err := os.WriteFile(path, dl.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(w, "Saved: %s\n", path)
	}
	return nil
}

func operationNames() string {
	names := ""
	for i, info := range domain.Operations() {
		if i > 0 {
			names += ", "
		}
		names += string(info.Name)
	}
	return names
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
