package selector

import (
	"strings"

	"github.com/kailas-cloud/recordkit/internal/domain/datatype"
	"github.com/kailas-cloud/recordkit/internal/domain/display"
	"github.com/kailas-cloud/recordkit/internal/domain/record"
)

// filter keeps the records of the given type that match text, case-insensitively,
// on their label or any string value.
func filter(candidates []record.Record, slug string, dt *datatype.DataType, template, text string) []Option {
	needle := strings.ToLower(text)
	out := make([]Option, 0, len(candidates))
	for _, rec := range candidates {
		if rec.TypeSlug() != slug {
			continue
		}
		label := display.Resolve(rec, dt, template)
		if needle != "" && !matches(rec, label, needle) {
			continue
		}
		out = append(out, Option{ID: rec.ID(), Label: label, Record: rec})
	}
	return out
}

func matches(rec record.Record, label, needle string) bool {
	if strings.Contains(strings.ToLower(label), needle) {
		return true
	}
	for _, v := range rec.Data() {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

func scoped(recs []record.Record, slug string) []record.Record {
	out := make([]record.Record, 0, len(recs))
	for _, r := range recs {
		if r.TypeSlug() == slug {
			out = append(out, r)
		}
	}
	return out
}

// prepend puts rec first, dropping any earlier record with the same id.
func prepend(recs []record.Record, rec record.Record) []record.Record {
	out := make([]record.Record, 0, len(recs)+1)
	out = append(out, rec)
	for _, r := range recs {
		if r.ID() != rec.ID() {
			out = append(out, r)
		}
	}
	return out
}

func cloneOptions(opts []Option) []Option {
	if opts == nil {
		return nil
	}
	return append([]Option(nil), opts...)
}
