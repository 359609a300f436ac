package session

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raceiq/raceiq-engine/log"
	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/repository"
	sess "github.com/raceiq/raceiq-engine/pkg/session"
)

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "exports the current or a saved session as JSON",
		Long: `Exports a session. Without --out the file is written to the working
directory as raceiq_<track>_<type>_<date>.json. Use --out - for stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: repoCommand(func(ctx context.Context, repo repository.Repository, w io.Writer, args []string) error {
			s, err := resolve(ctx, repo, args)
			if err != nil {
				return err
			}
			if out == "-" {
				return sess.Export(w, s)
			}
			name, err := exportFile(s, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Session exported to %s\n", name)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "target file or directory")
	return cmd
}

// exportFile writes the session to target. An empty target or a directory
// gets the default export file name.
func exportFile(s *model.Session, target string) (string, error) {
	name := target
	if fi, err := os.Stat(target); target == "" || (err == nil && fi.IsDir()) {
		name = filepath.Join(target, sess.ExportFileName(s))
	}
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	if err := sess.Export(f, s); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	log.Debug("Session exported", log.String("file", name), log.Int("laps", len(s.Laps)))
	return name, nil
}

func newImportCmd() *cobra.Command {
	var setCurrent bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "imports an exported session and saves it",
		Args:  cobra.ExactArgs(1),
		RunE: repoCommand(func(ctx context.Context, repo repository.Repository, w io.Writer, args []string) error {
			s, err := importFile(ctx, repo, args[0], setCurrent)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Session %s imported (%d laps)\n", s.ID, len(s.Laps))
			return nil
		}),
	}
	cmd.Flags().BoolVar(&setCurrent, "current", false, "make the imported session the current one")
	return cmd
}

func importFile(ctx context.Context, repo repository.Repository, name string, setCurrent bool) (
	*model.Session, error,
) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()
	s, err := sess.Import(f)
	if err != nil {
		return nil, err
	}
	if err := repo.Save(ctx, s); err != nil {
		return nil, err
	}
	if setCurrent {
		if err := repo.SetCurrent(ctx, s); err != nil {
			return nil, err
		}
	}
	return s, nil
}
