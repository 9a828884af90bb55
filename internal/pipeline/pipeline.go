// Package pipeline runs the extraction: one producer goroutine per export
// file feeding a bounded record queue drained by a single report consumer.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"tzzbcli/internal/dataprocessing"
	"tzzbcli/internal/encoding"
	apperrors "tzzbcli/internal/errors"
	"tzzbcli/internal/files"
	"tzzbcli/pkg/contracts/domain"
)

// Sink receives the report records in arrival order. A write error is fatal
// to the whole run.
type Sink interface {
	WriteRecord(order domain.DeliveryOrder) error
	Close() error
}

// Summary is the user-visible tally of one extraction run.
type Summary struct {
	Producers        int
	RecordsWritten   int
	RecordsIgnored   int
	LinesSkipped     int
	LedgerMismatches int64
	FileErrors       map[string]error
}

// Pipeline wires producers, ledger and consumer for extraction runs.
type Pipeline struct {
	queueCapacity int
	classifier    *dataprocessing.Classifier
	logger        *slog.Logger
}

// New creates a pipeline with the given record queue capacity.
func New(queueCapacity int, classifier *dataprocessing.Classifier, logger *slog.Logger) *Pipeline {
	if queueCapacity <= 0 {
		queueCapacity = 128
	}
	if classifier == nil {
		classifier = dataprocessing.NewClassifier()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		queueCapacity: queueCapacity,
		classifier:    classifier,
		logger:        logger.With(slog.String("component", "pipeline")),
	}
}

// Run extracts all inputs into the sink and returns the run summary.
//
// Protocol: every producer delivers zero or more records followed by exactly
// one nil sentinel. The consumer appends records in arrival order and is done
// once it has seen one sentinel per producer. Per-file errors stop only that
// producer; a sink error cancels every producer and fails the run. Cancelling
// ctx fails the run the same way: a cancelled producer may skip its sentinel,
// so the consumer stops counting as soon as the context is done.
func (p *Pipeline) Run(ctx context.Context, inputs []files.Input, sink Sink) (*Summary, error) {
	summary := &Summary{
		Producers:  len(inputs),
		FileErrors: make(map[string]error),
	}
	if len(inputs) == 0 {
		return summary, apperrors.NewValidationError("no inputs to process", nil)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ledger := dataprocessing.NewLedger(p.logger)
	queue := make(chan *domain.DeliveryOrder, p.queueCapacity)

	var mu sync.Mutex // guards summary counters written by producers

	g, prodCtx := errgroup.WithContext(ctx)
	for _, in := range inputs {
		in := in
		g.Go(func() error {
			// Per-file failures are recorded in the summary, never
			// propagated: one bad file must not cancel its siblings.
			p.produce(prodCtx, in, ledger, queue, summary, &mu)
			return nil
		})
	}

	var runErr error
	sentinels := 0
consume:
	for sentinels < len(inputs) {
		if err := ctx.Err(); err != nil {
			runErr = err
			p.logger.WarnContext(ctx, "extraction cancelled, stopping consumer",
				slog.String("error", err.Error()))
			break
		}
		select {
		case order := <-queue:
			if order == nil {
				sentinels++
				continue
			}
			if err := sink.WriteRecord(*order); err != nil {
				runErr = apperrors.NewSinkError("failed to write record", err)
				p.logger.ErrorContext(ctx, "report sink failed, cancelling producers",
					slog.String("error", err.Error()))
				cancel()
				break consume
			}
			summary.RecordsWritten++
		case <-ctx.Done():
			runErr = ctx.Err()
			p.logger.WarnContext(ctx, "extraction cancelled, stopping consumer",
				slog.String("error", ctx.Err().Error()))
			break consume
		}
	}

	// Producers either delivered their sentinel or observed cancellation.
	_ = g.Wait()
	summary.LedgerMismatches = ledger.Mismatches()

	if runErr != nil {
		return summary, runErr
	}
	if err := sink.Close(); err != nil {
		return summary, apperrors.NewSinkError("failed to finalize report", err)
	}

	p.logger.InfoContext(ctx, "extraction complete",
		slog.Int("producers", summary.Producers),
		slog.Int("records_written", summary.RecordsWritten),
		slog.Int("records_ignored", summary.RecordsIgnored),
		slog.Int("lines_skipped", summary.LinesSkipped),
		slog.Int64("ledger_mismatches", summary.LedgerMismatches),
		slog.Int("file_errors", len(summary.FileErrors)))

	return summary, nil
}

// produce reads one export file and feeds the queue, ending with exactly one
// sentinel unless the run was cancelled underneath it.
func (p *Pipeline) produce(ctx context.Context, in files.Input, ledger *dataprocessing.Ledger,
	queue chan<- *domain.DeliveryOrder, summary *Summary, mu *sync.Mutex) {

	logger := p.logger.With(slog.String("file", in.Path))

	fail := func(err error) {
		mu.Lock()
		summary.FileErrors[in.Path] = err
		mu.Unlock()
		logger.ErrorContext(ctx, "producer failed", slog.String("error", err.Error()))
	}

	defer func() {
		// One sentinel per producer, on every exit path. Cancellation means
		// the consumer stopped counting, so skipping it there is safe.
		select {
		case queue <- nil:
		case <-ctx.Done():
		}
	}()

	f, err := os.Open(in.Path)
	if err != nil {
		fail(apperrors.NewValidationError(fmt.Sprintf("cannot open export file: %s", in.Path), err))
		return
	}
	defer f.Close()

	lines := encoding.NewLineReader(f)
	title, ok := lines.Next()
	if !ok {
		fail(apperrors.NewFormatMismatch("export file has no title row", lines.Err()).
			WithContext("file", in.Path))
		return
	}

	mapper, err := dataprocessing.NewMapper(in.Variant, title, p.classifier)
	if err != nil {
		fail(err)
		return
	}

	logger.InfoContext(ctx, "producer started", slog.String("variant", in.Variant))

	lineNo := 1
	for {
		line, ok := lines.Next()
		if !ok {
			break
		}
		lineNo++
		if strings.TrimSpace(line) == "" {
			continue
		}

		mapped, err := mapper.MapLine(line)
		if err != nil {
			if apperrors.IsParseError(err) {
				logger.WarnContext(ctx, "skipping unparseable line",
					slog.Int("line", lineNo),
					slog.String("error", err.Error()))
				mu.Lock()
				summary.LinesSkipped++
				mu.Unlock()
				continue
			}
			// A format mismatch mid-file means the schema no longer holds;
			// nothing after this line can be trusted.
			fail(err)
			return
		}

		order := ledger.Settle(ctx, mapped)
		if !order.IsValid() {
			mu.Lock()
			summary.RecordsIgnored++
			mu.Unlock()
			continue
		}

		select {
		case queue <- &order:
		case <-ctx.Done():
			return
		}
	}

	if err := lines.Err(); err != nil {
		fail(apperrors.NewValidationError("failed reading export file", err))
		return
	}

	logger.InfoContext(ctx, "producer finished", slog.Int("lines", lineNo))
}
