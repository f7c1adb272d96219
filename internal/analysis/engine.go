package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"hardsub/internal/classify"
	"hardsub/internal/config"
	"hardsub/internal/detect"
	"hardsub/internal/ensemble"
	"hardsub/internal/logging"
	"hardsub/internal/sampling"
	"hardsub/internal/services"
	"hardsub/internal/tracking"
)

// FrameSource extracts single frames from a video file. A per-frame error is
// recoverable: the engine records a gap and continues.
type FrameSource interface {
	Extract(ctx context.Context, path string, timestamp float64, index, width, height int) (detect.Frame, error)
}

// Engine runs the full scan pipeline: probe, sample, detect, track, classify,
// and fuse. One engine serves many scans; each Scan call is independent.
type Engine struct {
	cfg        *config.Config
	logger     *slog.Logger
	prober     Prober
	frames     FrameSource
	strategies []detect.Strategy
}

// NewEngine wires the scan pipeline together. The strategy list must not be
// empty; weights must be positive.
func NewEngine(cfg *config.Config, logger *slog.Logger, prober Prober, frames FrameSource, strategies []detect.Strategy) (*Engine, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "analysis", "new", "nil config", nil)
	}
	if prober == nil || frames == nil {
		return nil, services.Wrap(services.ErrConfiguration, "analysis", "new", "missing prober or frame source", nil)
	}
	if len(strategies) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "analysis", "new", "no detection strategies", nil)
	}
	for _, strategy := range strategies {
		if strategy.Detector == nil {
			return nil, services.Wrap(services.ErrConfiguration, "analysis", "new", "strategy without detector", nil)
		}
		if strategy.Weight <= 0 {
			return nil, services.Wrap(services.ErrConfiguration, "analysis", "new", fmt.Sprintf("strategy %q has non-positive weight", strategy.Detector.Name()), nil)
		}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "analysis"),
		prober:     prober,
		frames:     frames,
		strategies: strategies,
	}, nil
}

// Scan analyzes one video and returns the fused verdict. Inconclusive
// outcomes surface as errors matching services.Inconclusive.
func (e *Engine) Scan(ctx context.Context, path string) (*Report, error) {
	started := time.Now()
	scanID := uuid.NewString()
	ctx = services.WithScanID(ctx, scanID)
	ctx = services.WithVideo(ctx, filepath.Base(path))
	log := logging.WithContext(ctx, e.logger)

	info, err := e.prober.Probe(ctx, path)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "analysis", "probe", path, err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, services.Wrap(services.ErrInvalidMetadata, "analysis", "probe", fmt.Sprintf("no usable video stream in %s", path), nil)
	}

	duration := info.DurationSeconds
	durationAssumed := false
	if duration <= 0 {
		duration = e.cfg.Sampling.DefaultDurationSeconds
		durationAssumed = true
		log.Warn("duration unavailable, scanning leading window",
			logging.Float64("window_seconds", duration))
	}

	rois, err := e.resolveROIs(info)
	if err != nil {
		return nil, err
	}

	timestamps := sampling.SampleTimestamps(duration, e.cfg.Sampling.MaxTemporalSamples)
	if len(timestamps) == 0 {
		return nil, services.Wrap(services.ErrInsufficientSamples, "analysis", "sample", "no timestamps could be planned", nil)
	}

	frames, extracted := e.extractFrames(ctx, log, path, timestamps, info)
	if extracted < e.cfg.Sampling.MinValidSamples {
		return nil, services.Wrap(services.ErrInsufficientSamples, "analysis", "extract",
			fmt.Sprintf("%d of %d frames extracted, need %d", extracted, len(timestamps), e.cfg.Sampling.MinValidSamples), nil)
	}

	log.Info("scan started",
		logging.Int("width", info.Width),
		logging.Int("height", info.Height),
		logging.Float64("duration_seconds", duration),
		logging.Int("frames_extracted", extracted))

	votes := make([]ensemble.Vote, 0, len(e.strategies))
	summaries := make([]StrategySummary, 0, len(e.strategies))
	textFrames := make(map[int]bool)

	for _, strategy := range e.strategies {
		summary := e.runStrategy(ctx, strategy, frames, rois, info, textFrames)
		summaries = append(summaries, summary)
		if !summary.Completed {
			log.Error("strategy failed",
				logging.String(logging.FieldStrategy, summary.Name),
				logging.String("detail", summary.Error))
			continue
		}
		votes = append(votes, ensemble.Vote{
			Strategy:     summary.Name,
			HasSubtitles: summary.HasSubtitles,
			Confidence:   summary.Confidence,
			Weight:       strategy.Weight,
		})
	}

	if len(votes) == 0 {
		return nil, services.Wrap(services.ErrAllDetectorsFailed, "analysis", "detect", "no strategy produced a vote", nil)
	}

	method, err := ensemble.ParseVotingMethod(e.cfg.Ensemble.VotingMethod)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "analysis", "fuse", "", err)
	}
	fused, err := ensemble.Fuse(votes, method)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "analysis", "fuse", "", err)
	}

	report := &Report{
		ScanID:           scanID,
		Source:           path,
		HasSubtitles:     fused.HasSubtitles,
		Confidence:       fused.Confidence,
		Reason:           fusedReason(fused, summaries),
		Conflict:         fused.Conflict.Detected,
		ConflictSeverity: fused.Conflict.Severity.String(),
		Uncertainty:      fused.Uncertainty.Level.String(),
		Votes:            voteViews(fused.Votes),
		Strategies:       summaries,
		Media:            info,
		Sampling: SamplingSummary{
			FramesPlanned:   len(timestamps),
			FramesExtracted: extracted,
			FramesWithText:  len(textFrames),
			DurationAssumed: durationAssumed,
		},
		StartedAt:      started,
		ElapsedSeconds: time.Since(started).Seconds(),
	}

	log.Info("scan complete",
		logging.Bool("has_subtitles", report.HasSubtitles),
		logging.Float64("confidence", report.Confidence),
		logging.String("reason", report.Reason),
		logging.Bool("conflict", report.Conflict),
		logging.Duration("elapsed", time.Since(started)))
	return report, nil
}

func (e *Engine) resolveROIs(info MediaInfo) ([]sampling.ROI, error) {
	rois := make([]sampling.ROI, 0, len(e.cfg.Sampling.Regions))
	for _, name := range e.cfg.Sampling.Regions {
		region, err := sampling.ParseRegion(name)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "analysis", "roi", "", err)
		}
		roi, err := sampling.ResolveROI(info.Width, info.Height, region, e.cfg.Sampling.ROIPercentage)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "analysis", "roi", "", err)
		}
		rois = append(rois, roi)
	}
	return rois, nil
}

// extractFrames pulls one frame per planned timestamp. Failed extractions
// leave a nil slot so frame indices keep matching timestamp order.
func (e *Engine) extractFrames(ctx context.Context, log *slog.Logger, path string, timestamps []float64, info MediaInfo) ([]*detect.Frame, int) {
	frames := make([]*detect.Frame, len(timestamps))
	extracted := 0
	for i, ts := range timestamps {
		frame, err := e.frames.Extract(ctx, path, ts, i, info.Width, info.Height)
		if err != nil {
			log.Warn("frame extraction failed, skipping sample",
				logging.Int("frame_index", i),
				logging.Float64("timestamp", ts),
				logging.Error(err))
			continue
		}
		frames[i] = &frame
		extracted++
	}
	return frames, extracted
}

// runStrategy executes one detection strategy across all extracted frames and
// derives its vote. Per-frame failures become gaps; a strategy where every
// frame failed is marked not completed and casts no vote.
func (e *Engine) runStrategy(ctx context.Context, strategy detect.Strategy, frames []*detect.Frame, rois []sampling.ROI, info MediaInfo, textFrames map[int]bool) StrategySummary {
	name := strategy.Detector.Name()
	summary := StrategySummary{Name: name}
	ctx = services.WithStrategy(ctx, name)

	perFrame := make([][]detect.Detection, len(frames))
	var mu sync.Mutex
	failures := 0
	attempted := 0

	timeout := time.Duration(e.cfg.Detection.FrameTimeoutSeconds) * time.Second
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.cfg.Detection.Concurrency)

	for i, frame := range frames {
		if frame == nil {
			continue
		}
		i, frame := i, frame
		attempted++
		group.Go(func() error {
			frameCtx := groupCtx
			if timeout > 0 {
				var cancel context.CancelFunc
				frameCtx, cancel = context.WithTimeout(groupCtx, timeout)
				defer cancel()
			}
			var all []detect.Detection
			for _, roi := range rois {
				detections, err := strategy.Detector.Detect(frameCtx, *frame, roi)
				if err != nil {
					mu.Lock()
					failures++
					mu.Unlock()
					return nil
				}
				all = append(all, detections...)
			}
			perFrame[i] = all
			return nil
		})
	}
	// Closures never return errors; Wait only propagates context cancellation.
	if err := group.Wait(); err != nil {
		summary.Error = err.Error()
		return summary
	}

	summary.FrameFailures = failures
	if attempted == 0 || failures == attempted {
		summary.Error = services.Wrap(services.ErrDetectorUnavailable, "analysis", name, "every frame detection failed", nil).Error()
		return summary
	}

	filter := detect.Filter{
		MinTextLength: e.cfg.Detection.MinTextLength,
		MinConfidence: e.cfg.Detection.MinConfidence,
		MinAlphaRatio: e.cfg.Detection.MinAlphaRatio,
	}
	trackerCfg := tracking.Config{
		LineYTolerancePx: e.cfg.Tracking.LineYTolerance * float64(info.Height),
		MaxFrameGap:      e.cfg.Tracking.MaxFrameGap,
	}
	trackers := make([]*tracking.Tracker, len(rois))
	for i, roi := range rois {
		trackers[i] = tracking.NewTracker(roi.Region, trackerCfg)
	}

	for i, detections := range perFrame {
		if frames[i] == nil {
			continue
		}
		kept, stats := filter.Apply(detections)
		summary.DroppedMalformed += stats.Malformed
		summary.DroppedFiltered += stats.Rejected
		if len(kept) > 0 {
			summary.FramesWithText++
			textFrames[i] = true
		}
		for _, tracker := range trackers {
			tracker.Observe(i, kept)
		}
	}

	observed := attempted - failures
	var tracks []*tracking.Track
	for _, tracker := range trackers {
		tracks = append(tracks, tracker.Finalize(observed)...)
	}

	classifier := classify.NewClassifier(classify.Thresholds{
		StaticMinPresence:      e.cfg.Classification.StaticMinPresence,
		StaticMaxChange:        e.cfg.Classification.StaticMaxChange,
		SubtitleMinChangeRate:  e.cfg.Classification.SubtitleMinChangeRate,
		ScreencastMinAreaRatio: e.cfg.Classification.ScreencastMinAreaRatio,
		IgnoreStaticText:       e.cfg.Classification.IgnoreStaticText,
	}, info.Width, info.Height)
	result := classifier.Decide(tracks)
	counts := result.Tracks.Counts()

	summary.Completed = true
	summary.HasSubtitles = result.HasSubtitles
	summary.Confidence = result.Confidence
	summary.Reason = result.Reason
	summary.Tracks = TrackCounts{
		Subtitle:      counts.Subtitle,
		StaticOverlay: counts.StaticOverlay,
		Screencast:    counts.Screencast,
		Ambiguous:     counts.Ambiguous,
	}
	if !result.HasSubtitles {
		summary.Confidence = negativeConfidence(tracks)
	}
	return summary
}

// negativeConfidence scores a "no subtitles" vote. Confident OCR on text that
// classified as non-subtitle is strong evidence of absence, as are frames with
// no text at all.
func negativeConfidence(tracks []*tracking.Track) float64 {
	if len(tracks) == 0 {
		return 0.8
	}
	var sum float64
	for _, track := range tracks {
		sum += track.Metrics.AvgConfidence
	}
	return sum / float64(len(tracks))
}

func fusedReason(fused ensemble.Result, summaries []StrategySummary) string {
	positive := 0
	completed := 0
	for _, vote := range fused.Votes {
		if vote.HasSubtitles {
			positive++
		}
	}
	for _, summary := range summaries {
		if summary.Completed {
			completed++
		}
	}

	// A single strategy's own reasoning is more useful than vote arithmetic.
	if completed == 1 {
		for _, summary := range summaries {
			if summary.Completed {
				return summary.Reason
			}
		}
	}
	verdict := "absent"
	if fused.HasSubtitles {
		verdict = "present"
	}
	reason := fmt.Sprintf("%d of %d strategies voted subtitles %s", agreeing(fused, positive), len(fused.Votes), verdict)
	if fused.Conflict.Detected {
		reason += fmt.Sprintf(" (%s conflict)", fused.Conflict.Severity)
	}
	return reason
}

func agreeing(fused ensemble.Result, positive int) int {
	if fused.HasSubtitles {
		return positive
	}
	return len(fused.Votes) - positive
}

func voteViews(votes []ensemble.Vote) []Vote {
	views := make([]Vote, 0, len(votes))
	for _, vote := range votes {
		views = append(views, Vote{
			Strategy:     vote.Strategy,
			HasSubtitles: vote.HasSubtitles,
			Confidence:   vote.Confidence,
			Weight:       vote.Weight,
		})
	}
	return views
}
