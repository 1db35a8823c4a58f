package updater

import (
	"fmt"
	"io"

	"github.com/google/renameio/v2"
)

// WriteFile replaces the document at path with content. renameio gives the
// write atomic-replace semantics with an fsync before the rename: a crash
// mid-update leaves either the old document or the new one, never a torn mix.
func WriteFile(path, content string) error {
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending file for %s: %w", path, err)
	}
	defer func() {
		// Removes the temp file when the replace did not happen.
		_ = pending.Cleanup()
	}()

	if _, err := io.WriteString(pending, content); err != nil {
		return fmt.Errorf("write document %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace document %s: %w", path, err)
	}
	return nil
}
