// Package report renders persisted trends for humans and machines.
package report

import (
	"io"

	"github.com/stylx/stylx/internal/store"
)

// Formatter writes a rendered trend table to w.
type Formatter interface {
	Format(w io.Writer, trends []store.Trend) error
}
