package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets callers match ErrInvalidConfig with errors.Is.
func (e *ValidationError) Unwrap() error { return ErrInvalidConfig }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks every field that would otherwise fail mid-run.
// Errors are joined so a single run reports all of them.
func (c *Config) Validate() error {
	var errs []error

	for i, p := range c.Boilerplate.Patterns {
		if _, err := regexp.Compile(p); err != nil {
			errs = append(errs, invalid(fmt.Sprintf("boilerplate.patterns[%d]", i), "%v", err))
		}
	}

	if _, err := c.Pages.SkipSet(); err != nil {
		errs = append(errs, err)
	}

	if c.OCR.MinTextLength < 0 {
		errs = append(errs, invalid("ocr.min_text_length", "must not be negative"))
	}
	if c.OCR.ConfidenceThreshold < 0 || c.OCR.ConfidenceThreshold > 100 {
		errs = append(errs, invalid("ocr.confidence_threshold", "must be between 0 and 100"))
	}
	if c.OCR.Enabled && c.OCR.DPI <= 0 {
		errs = append(errs, invalid("ocr.dpi", "must be positive"))
	}

	if c.Chunk.Size < 1 {
		errs = append(errs, invalid("chunk.size", "must be positive"))
	}
	if c.Chunk.Overlap < 0 || c.Chunk.Overlap >= c.Chunk.Size {
		errs = append(errs, invalid("chunk.overlap", "must be in [0, chunk.size)"))
	}

	if c.Retrieval.K < 1 {
		errs = append(errs, invalid("retrieval.k", "must be at least 1"))
	}
	if c.Index.Concurrency < 1 {
		errs = append(errs, invalid("index.concurrency", "must be at least 1"))
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, invalid("log.level", "must be one of: debug, info, warn, error"))
	}

	return errors.Join(errs...)
}

// SkipSet merges Skip and SkipRanges into a sorted, de-duplicated list.
// Ranges are inclusive ("1-14") or single pages ("20").
func (p PagesConfig) SkipSet() ([]int, error) {
	var pages []int
	for _, n := range p.Skip {
		if n < 1 {
			return nil, invalid("pages.skip", "page %d is not positive", n)
		}
		pages = append(pages, n)
	}

	for _, r := range p.SkipRanges {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		lo, hi, err := parseRange(r)
		if err != nil {
			return nil, invalid("pages.skip_ranges", "%q: %v", r, err)
		}
		for n := lo; n <= hi; n++ {
			pages = append(pages, n)
		}
	}

	slices.Sort(pages)
	return slices.Compact(pages), nil
}

func parseRange(r string) (int, int, error) {
	first, last, isRange := strings.Cut(r, "-")
	lo, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, fmt.Errorf("parsing start: %w", err)
	}
	hi := lo
	if isRange {
		if hi, err = strconv.Atoi(strings.TrimSpace(last)); err != nil {
			return 0, 0, fmt.Errorf("parsing end: %w", err)
		}
	}
	if lo < 1 || hi < lo {
		return 0, 0, errors.New("range must be positive and ascending")
	}
	return lo, hi, nil
}
