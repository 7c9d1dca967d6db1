// Package clipboard exports builder views to the system clipboard
package clipboard

import (
	"log/slog"

	"github.com/atotto/clipboard"

	"github.com/kode4food/testgen/pkg/log"
)

type (
	// Copier places text on a clipboard
	Copier interface {
		WriteAll(text string) error
	}

	// Kind names the view being copied, for logging
	Kind string

	// System writes to the operating system clipboard
	System struct{}
)

const (
	KindDescription Kind = "description"
	KindJSON        Kind = "json"
)

var _ Copier = System{}

// WriteAll copies text to the system clipboard
func (System) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Supported returns false if no clipboard utility is available
func Supported() bool {
	return !clipboard.Unsupported
}

// Copy writes text through c. Failures are logged and reported as false,
// never returned
func Copy(c Copier, kind Kind, text string) bool {
	if err := c.WriteAll(text); err != nil {
		slog.Warn("Failed to copy to clipboard",
			slog.String("kind", string(kind)),
			log.Error(err))
		return false
	}
	slog.Info("Copied to clipboard",
		slog.String("kind", string(kind)),
		slog.Int("length", len(text)))
	return true
}
