package extract

import (
	"context"
)

// TextExtractor is Stage 1: uploaded bytes -> text lines per page.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) ([]PageText, error)
}

// PageText holds the reconstructed text lines of a single PDF page.
type PageText struct {
	Number int
	Lines  []string
}
