// Command zplgrid compiles a template JSON document plus a variables
// JSON map into a ZPL II program on stdout, against a render target
// given on the command line (spec.md §6.1).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/trevordcampbell/zplgrid"
	"github.com/trevordcampbell/zplgrid/macro"
	"github.com/trevordcampbell/zplgrid/model"
)

func main() {
	var (
		templatePath = flag.String("template", "", "path to template.json (required)")
		varsPath     = flag.String("vars", "", "path to variables.json (default: {})")
		widthMM      = flag.Float64("width-mm", 0, "render target width in mm (required)")
		heightMM     = flag.Float64("height-mm", 0, "render target height in mm (required)")
		dpi          = flag.Int("dpi", 203, "render target DPI")
		originXMM    = flag.Float64("origin-x-mm", 0, "render target x origin in mm")
		originYMM    = flag.Float64("origin-y-mm", 0, "render target y origin in mm")
		debug        = flag.Bool("debug", false, "force debug overlays on")
		missingVars  = flag.String("missing-variables", "", "override missing_variables policy: error or empty")
		printerID    = flag.String("printer-id", "", "_printer_id macro value")
		draftID      = flag.String("draft-id", "", "_draft_id macro value")
	)
	flag.Parse()

	if *templatePath == "" {
		fatalf("--template is required")
	}
	if *widthMM <= 0 || *heightMM <= 0 {
		fatalf("--width-mm and --height-mm are required and must be > 0")
	}

	templateData, err := os.ReadFile(*templatePath)
	if err != nil {
		fatalf("read template: %v", err)
	}

	vars := map[string]string{}
	if *varsPath != "" {
		data, err := os.ReadFile(*varsPath)
		if err != nil {
			fatalf("read vars: %v", err)
		}
		if err := json.Unmarshal(data, &vars); err != nil {
			fatalf("decode vars: %v", err)
		}
	}

	doc, err := model.Parse(templateData)
	if err != nil {
		fatalf("parse template: %v", err)
	}

	target := model.RenderTarget{
		WidthMM:   *widthMM,
		HeightMM:  *heightMM,
		DPI:       *dpi,
		OriginXMM: *originXMM,
		OriginYMM: *originYMM,
	}

	flags := zplgrid.Flags{Debug: *debug}
	if *missingVars != "" {
		policy := model.MissingVariablesPolicy(*missingVars)
		if policy != model.MissingVariablesError && policy != model.MissingVariablesEmpty {
			fatalf("--missing-variables must be %q or %q", model.MissingVariablesError, model.MissingVariablesEmpty)
		}
		flags.MissingVariablesOverride = &policy
	}

	mctx := macro.Context{
		Now:          time.Now(),
		Location:     time.UTC,
		DraftID:      *draftID,
		PrinterID:    *printerID,
		TemplateName: doc.Name,
	}

	zpl, err := zplgrid.Compile(context.Background(), doc, target, vars, mctx, flags)
	if err != nil {
		fatalf("compile: %v", err)
	}

	if _, err := io.WriteString(os.Stdout, string(zpl)); err != nil {
		fatalf("write output: %v", err)
	}
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "zplgrid: "+format+"\n", args...)
	os.Exit(1)
}
