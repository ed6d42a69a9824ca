// Package zplgrid compiles a declarative JSON label template into ZPL II
// for a target label size and DPI (spec.md §1). Compile is the single
// entrypoint spec.md §6.1 describes: it wires the five pipeline stages —
// model.Validate, model.Resolve, bind.Bind, layout.Solve, compile.Compile
// — into one call and hands the result to assemble.Assemble.
package zplgrid

import (
	"context"

	"github.com/trevordcampbell/zplgrid/assemble"
	"github.com/trevordcampbell/zplgrid/bind"
	"github.com/trevordcampbell/zplgrid/compile"
	"github.com/trevordcampbell/zplgrid/layout"
	"github.com/trevordcampbell/zplgrid/macro"
	"github.com/trevordcampbell/zplgrid/measure"
	"github.com/trevordcampbell/zplgrid/model"
)

// Flags are the per-compile options spec.md §6.1 names: debug overlays
// and an override for the template's own missing_variables policy.
type Flags struct {
	// Debug forces both debug_padding_guides and debug_gutter_guides on,
	// regardless of the template's defaults.render settings.
	Debug bool
	// MissingVariablesOverride, when set, replaces whatever
	// defaults.render.missing_variables the template declares. The
	// binder itself never knows this came from a caller override
	// (design note §9(a) / SPEC_FULL.md §11): it only ever receives a
	// resolved model.MissingVariablesPolicy.
	MissingVariablesOverride *model.MissingVariablesPolicy
	// Measurer overrides the text-fit heuristic measurer (spec.md §4.5,
	// §9 "injected measurer"). Defaults to measure.Default{}.
	Measurer measure.Measurer
}

// Compile runs the full pipeline against doc, producing a ZPL program
// bounded by the start/end-of-format markers (spec.md §6.1). Compile
// runs model.Validate on doc itself, so callers that parsed it with
// model.Parse need no separate Validate call (an extra one is harmless
// but redundant).
func Compile(ctx context.Context, doc *model.TemplateDocument, target model.RenderTarget, vars map[string]string, mctx macro.Context, flags Flags) ([]byte, error) {
	if err := model.Validate(doc); err != nil {
		return nil, err
	}

	resolved := model.Resolve(doc)

	policy := missingVariablesPolicy(doc, flags.MissingVariablesOverride)
	bound, err := bind.Bind(ctx, resolved, mctx, vars, policy)
	if err != nil {
		return nil, err
	}

	solved, err := layout.Solve(bound, target)
	if err != nil {
		return nil, err
	}

	compiled, err := compile.Compile(solved, target.DPI, flags.Measurer)
	if err != nil {
		return nil, err
	}

	return assemble.Bytes(compiled, assembleFlags(doc, flags)), nil
}

func missingVariablesPolicy(doc *model.TemplateDocument, override *model.MissingVariablesPolicy) model.MissingVariablesPolicy {
	if override != nil {
		return *override
	}
	if doc.Defaults != nil && doc.Defaults.Render != nil && doc.Defaults.Render.MissingVariables != "" {
		return doc.Defaults.Render.MissingVariables
	}
	return model.MissingVariablesError
}

func assembleFlags(doc *model.TemplateDocument, flags Flags) assemble.Flags {
	emitCI28 := true
	paddingGuides := flags.Debug
	gutterGuides := flags.Debug
	if doc.Defaults != nil && doc.Defaults.Render != nil {
		r := doc.Defaults.Render
		if r.EmitCI28 != nil {
			emitCI28 = *r.EmitCI28
		}
		paddingGuides = paddingGuides || r.DebugPaddingGuides
		gutterGuides = gutterGuides || r.DebugGutterGuides
	}
	return assemble.Flags{
		EmitCI28:           emitCI28,
		DebugPaddingGuides: paddingGuides,
		DebugGutterGuides:  gutterGuides,
	}
}
