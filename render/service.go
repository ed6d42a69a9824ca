// Package render implements the service-surface collaborators spec.md
// §6.4 describes as pluggable I/O boundaries around the pure compiler:
// render, draft storage, and printing with counter commits
// (SPEC_FULL.md §11). None of this package's logic is part of the
// "interesting design" of §1; it exists so the contracts in §5/§6.4/§9
// are exercised by real code instead of left as prose.
package render

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trevordcampbell/zplgrid"
	"github.com/trevordcampbell/zplgrid/bind"
	"github.com/trevordcampbell/zplgrid/counterstore"
	"github.com/trevordcampbell/zplgrid/draftstore"
	"github.com/trevordcampbell/zplgrid/macro"
	"github.com/trevordcampbell/zplgrid/metrics"
	"github.com/trevordcampbell/zplgrid/model"
	"github.com/trevordcampbell/zplgrid/zerr"
)

// Service wires the pure core to its stateful collaborators.
type Service struct {
	Counters counterstore.Store
	Drafts   *draftstore.Store
	Location *time.Location
}

// Render compiles doc against target, resolving counter macros via
// Counters.Peek (a snapshot read — Render never commits) and recording
// duration/outcome to metrics.
func (s *Service) Render(ctx context.Context, doc *model.TemplateDocument, target model.RenderTarget, vars map[string]string, printerID string, flags zplgrid.Flags) ([]byte, error) {
	start := time.Now()
	mctx := macro.Context{
		Now:          time.Now(),
		Location:     s.Location,
		PrinterID:    printerID,
		TemplateName: doc.Name,
		Counters:     s.Counters,
	}
	zpl, err := zplgrid.Compile(ctx, doc, target, vars, mctx, flags)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		metrics.IncCompileError(errorKind(err))
	}
	metrics.ObserveCompile(outcome, time.Since(start))
	return zpl, err
}

// SaveDraft stores a compiled program under a fresh opaque id with the
// given TTL (spec.md §6.4 "Drafts").
func (s *Service) SaveDraft(_ context.Context, zpl []byte, ttl time.Duration) (id string, expiresAt time.Time, err error) {
	return s.Drafts.Put(zpl, ttl)
}

// GetDraft returns a previously saved draft's bytes, or
// draftstore.ErrExpired / draftstore.ErrNotFound.
func (s *Service) GetDraft(_ context.Context, id string) ([]byte, error) {
	return s.Drafts.Get(id)
}

// Print renders doc, and — only once the caller confirms the printer
// transport accepted the job — commits every counter scope the
// template actually referenced (spec.md §6.4 "Printing", §9 "Counter
// state"). transport is called with the rendered ZPL; a non-nil error
// from it aborts before any counter is committed.
func (s *Service) Print(ctx context.Context, doc *model.TemplateDocument, target model.RenderTarget, vars map[string]string, printerID string, flags zplgrid.Flags, transport func([]byte) error) ([]byte, error) {
	resolved := model.Resolve(doc)
	zpl, err := s.Render(ctx, doc, target, vars, printerID, flags)
	if err != nil {
		return nil, err
	}
	if err := transport(zpl); err != nil {
		return zpl, fmt.Errorf("render: print transport: %w", err)
	}

	date := time.Now().In(s.location()).Format("2006-01-02")
	for _, name := range bind.ReferencedMacros(resolved) {
		scope, ok := scopeForMacro(name, printerID, doc.Name, date)
		if !ok {
			continue
		}
		if _, err := s.Counters.Commit(ctx, scope); err != nil {
			return zpl, fmt.Errorf("render: commit counter %s: %w", scope.Key(), err)
		}
		metrics.IncCounterCommit(scope.Key())
	}
	return zpl, nil
}

func (s *Service) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

func scopeForMacro(name, printerID, templateName, date string) (counterstore.Scope, bool) {
	switch name {
	case "_counter_global":
		return counterstore.Scope{Kind: counterstore.ScopeGlobal}, true
	case "_counter_daily":
		return counterstore.Scope{Kind: counterstore.ScopeDaily, Date: date}, true
	case "_counter_printer":
		return counterstore.Scope{Kind: counterstore.ScopePrinter, PrinterID: printerID}, true
	case "_counter_printer_daily":
		return counterstore.Scope{Kind: counterstore.ScopePrinterDaily, PrinterID: printerID, Date: date}, true
	case "_counter_template":
		return counterstore.Scope{Kind: counterstore.ScopeTemplate, TemplateName: templateName}, true
	case "_counter_template_daily":
		return counterstore.Scope{Kind: counterstore.ScopeTemplateDaily, TemplateName: templateName, Date: date}, true
	default:
		return counterstore.Scope{}, false
	}
}

// ErrorStatus maps a core error to the HTTP status the service boundary
// uses (spec.md §7): schema/invariant/missing-variable/format/layout/
// unsupported map to 400, everything else to 500. The core never consults this
// mapping.
func ErrorStatus(err error) int {
	switch errorKind(err) {
	case string(zerr.KindSchema), string(zerr.KindInvariant), string(zerr.KindMissingVar),
		string(zerr.KindFormat), string(zerr.KindLayout), string(zerr.KindUnsupported):
		return 400
	default:
		return 500
	}
}

func errorKind(err error) string {
	var zerrErr *zerr.Error
	if errors.As(err, &zerrErr) {
		return string(zerrErr.Kind)
	}
	var missingErr *zerr.MissingVariableError
	if errors.As(err, &missingErr) {
		return string(missingErr.Kind())
	}
	return "internal"
}
