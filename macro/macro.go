// Package macro resolves the built-in, context-injected variables of
// spec.md §6.3 ("Macro: a built-in, context-resolved variable recognised
// under a reserved underscore prefix") and implements the placeholder
// substitution grammar of spec.md §4.3.
package macro

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trevordcampbell/zplgrid/counterstore"
)

// Context carries everything needed to compute the built-in macro table
// for one compile. Now is captured once per compile (spec.md §6.3: "now
// is captured once per compile").
type Context struct {
	Now          time.Time
	Location     *time.Location
	DraftID      string
	PrinterID    string
	TemplateName string
	Counters     counterstore.Store // may be nil: counter macros then read as 0
}

// Names lists every recognised built-in macro, in the order spec.md §6.3
// presents them.
var Names = []string{
	"_now_iso", "_date_yyyy_mm_dd", "_date_dd_mm_yyyy",
	"_time_hh_mm", "_time_hh_mm_ss", "_timestamp_ms",
	"_uuid", "_short_id",
	"_draft_id", "_printer_id", "_template_name",
	"_counter_global", "_counter_daily",
	"_counter_printer", "_counter_printer_daily",
	"_counter_template", "_counter_template_daily",
}

// resolveOne computes the value of a single recognised macro name. now
// has already been converted to the configured timezone by the caller so
// that every date/time macro in one compile agrees with each other.
func resolveOne(ctx context.Context, mctx Context, now time.Time, name string) (string, error) {
	date := now.Format("2006-01-02")
	switch name {
	case "_now_iso":
		return now.Format(time.RFC3339), nil
	case "_date_yyyy_mm_dd":
		return date, nil
	case "_date_dd_mm_yyyy":
		return now.Format("02-01-2006"), nil
	case "_time_hh_mm":
		return now.Format("15:04"), nil
	case "_time_hh_mm_ss":
		return now.Format("15:04:05"), nil
	case "_timestamp_ms":
		return strconv.FormatInt(now.UnixMilli(), 10), nil
	case "_uuid":
		return uuid.NewString(), nil
	case "_short_id":
		return shortID()
	case "_draft_id":
		return mctx.DraftID, nil
	case "_printer_id":
		return mctx.PrinterID, nil
	case "_template_name":
		return mctx.TemplateName, nil
	case "_counter_global":
		return peekCounter(ctx, mctx, counterstore.Scope{Kind: counterstore.ScopeGlobal})
	case "_counter_daily":
		return peekCounter(ctx, mctx, counterstore.Scope{Kind: counterstore.ScopeDaily, Date: date})
	case "_counter_printer":
		return peekCounter(ctx, mctx, counterstore.Scope{Kind: counterstore.ScopePrinter, PrinterID: mctx.PrinterID})
	case "_counter_printer_daily":
		return peekCounter(ctx, mctx, counterstore.Scope{Kind: counterstore.ScopePrinterDaily, PrinterID: mctx.PrinterID, Date: date})
	case "_counter_template":
		return peekCounter(ctx, mctx, counterstore.Scope{Kind: counterstore.ScopeTemplate, TemplateName: mctx.TemplateName})
	case "_counter_template_daily":
		return peekCounter(ctx, mctx, counterstore.Scope{Kind: counterstore.ScopeTemplateDaily, TemplateName: mctx.TemplateName, Date: date})
	default:
		return "", fmt.Errorf("resolve macro: %q is not a recognised built-in", name)
	}
}

func peekCounter(ctx context.Context, mctx Context, scope counterstore.Scope) (string, error) {
	if mctx.Counters == nil {
		return "0", nil
	}
	v, err := mctx.Counters.Peek(ctx, scope)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(v, 10), nil
}

var isBuiltin = func() map[string]bool {
	m := make(map[string]bool, len(Names))
	for _, n := range Names {
		m[n] = true
	}
	return m
}()

// shortID returns an 8-character base-32 encoding of a random 40-bit
// value, per spec.md §6.3.
func shortID() (string, error) {
	var buf [5]byte // 40 bits
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("short id: %w", err)
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	return strings.ToLower(enc.EncodeToString(buf[:])), nil
}

// Effective builds the effective variable map: "start from user-provided;
// for every recognised built-in macro name not present in the user map,
// compute and insert it" (spec.md §4.3 step 1). Built-ins the caller
// already overrode are never computed, so e.g. supplying a fixed
// "_now_iso" suppresses the clock read entirely.
func Effective(ctx context.Context, mctx Context, user map[string]string) (map[string]string, error) {
	loc := mctx.Location
	if loc == nil {
		loc = time.UTC
	}
	now := mctx.Now.In(loc)

	out := make(map[string]string, len(user)+len(Names))
	for k, v := range user {
		out[k] = v
	}
	for _, name := range Names {
		if _, present := out[name]; present {
			continue
		}
		v, err := resolveOne(ctx, mctx, now, name)
		if err != nil {
			return nil, fmt.Errorf("build macros: %w", err)
		}
		out[name] = v
	}
	return out, nil
}

// IsBuiltin reports whether name is a recognised built-in macro.
func IsBuiltin(name string) bool { return isBuiltin[name] }
