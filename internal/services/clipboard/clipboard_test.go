package clipboard_test

import (
	"errors"
	"testing"

	systemclipboard "github.com/atotto/clipboard"

	"github.com/temirov/dirtree/internal/services/clipboard"
)

func TestCopyReportsUnsupportedClipboard(t *testing.T) {
	previous := systemclipboard.Unsupported
	systemclipboard.Unsupported = true
	t.Cleanup(func() { systemclipboard.Unsupported = previous })

	if err := clipboard.NewService().Copy("project/"); !errors.Is(err, clipboard.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}
