package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/docorator/internal/api"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage generated documents",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated documents",
	Args:  cobra.NoArgs,
	RunE:  runDocsList,
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete generated documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDocsDelete,
}

var docsDownloadCmd = &cobra.Command{
	Use:   "download <id>...",
	Short: "Download generated documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDocsDownload,
}

var (
	downloadFormat   string
	downloadDir      string
	downloadParallel int
)

func init() {
	docsDownloadCmd.Flags().StringVarP(&downloadFormat, "format", "f", "pdf", "Download format (pdf or docx)")
	docsDownloadCmd.Flags().StringVarP(&downloadDir, "out", "o", "", "Output directory (defaults to artifact_dir)")
	docsDownloadCmd.Flags().IntVar(&downloadParallel, "parallel", 4, "Maximum concurrent downloads")

	docsCmd.AddCommand(docsListCmd, docsDeleteCmd, docsDownloadCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	docs, err := a.client.ListDocuments(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	a.printer.PrintDocuments(docs)
	return nil
}

func runDocsDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	for _, id := range args {
		if err := a.client.DeleteDocument(context.Background(), id); err != nil {
			return fmt.Errorf("failed to delete %s: %w", id, err)
		}
		_, _ = fmt.Fprintf(a.out, "Deleted %s\n", id)
	}
	return nil
}

func runDocsDownload(cmd *cobra.Command, args []string) error {
	if downloadFormat != "pdf" && downloadFormat != "docx" {
		return fmt.Errorf("unsupported format %q (use pdf or docx)", downloadFormat)
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	dir := downloadDir
	if dir == "" {
		dir = a.cfg.ArtifactDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(downloadParallel, 1))
	for _, id := range args {
		g.Go(func() error {
			blob, err := a.client.Download(ctx, id, downloadFormat)
			if err != nil {
				return fmt.Errorf("failed to download %s: %w", id, err)
			}
			path := filepath.Join(dir, downloadName(id, downloadFormat, blob))
			if err := os.WriteFile(path, blob.Data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			mu.Lock()
			defer mu.Unlock()
			_, _ = fmt.Fprintf(a.out, "Downloaded %s -> %s (%d bytes)\n", id, path, len(blob.Data))
			return nil
		})
	}
	return g.Wait()
}

// downloadName prefers the server's file name and falls back to the id.
func downloadName(id, format string, blob *api.Blob) string {
	if blob.Filename != "" {
		return filepath.Base(blob.Filename)
	}
	return id + "." + format
}
