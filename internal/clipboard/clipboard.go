// Package clipboard copies text to the system clipboard. Copy failures are
// never fatal for the tool; callers fall back to printed output.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Copy places text on the system clipboard.
func Copy(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard tool available on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}
