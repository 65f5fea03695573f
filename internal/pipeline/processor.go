package pipeline

import (
	"context"
	"log/slog"

	"github.com/lkoehler/ladeplan/internal/entity"
	"github.com/lkoehler/ladeplan/internal/extract"
	"github.com/lkoehler/ladeplan/internal/plan"
)

// Processor coordinates text extraction then table assembly for one upload.
type Processor struct {
	Extractor extract.TextExtractor
	Logger    *slog.Logger
}

func NewProcessor(extractor extract.TextExtractor, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Extractor: extractor, Logger: logger}
}

// Process runs the upload through both stages and returns the assembled
// plan. A plan with zero records is a valid result, not an error; only an
// unreadable document fails.
func (p *Processor) Process(ctx context.Context, filename string, data []byte) (*entity.LoadingPlan, error) {
	pages, err := p.Extractor.Extract(ctx, data)
	if err != nil {
		p.Logger.Error("processor.extract.failed", "filename", filename, "err", err)
		return nil, err
	}
	p.Logger.Info("processor.extract.ok", "filename", filename, "pages", len(pages))

	lp := plan.Assemble(filename, pages)
	p.Logger.Info("processor.assemble.ok",
		"filename", filename,
		"plan_id", lp.ID,
		"records", len(lp.Records),
		"trucks", len(lp.TruckIDs),
	)
	return lp, nil
}
