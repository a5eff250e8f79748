// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package bench

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/perf/benchfmt"
	"golang.org/x/perf/benchproc"
)

// DefaultLanguageKey selects the language from a "lang=" sub-benchmark name
// component, as in BenchmarkFannkuch/lang=go.
const DefaultLanguageKey = "/lang"

// ReadBenchfmt reads records from Go benchmark output. The benchmark is the
// base benchmark name and the language is the value of langKey, which may name
// a file configuration key ("lang") or a sub-benchmark key ("/lang"). Each
// result contributes its sec/op measurement. Syntax errors are logged and
// skipped, as are results without a language.
func ReadBenchfmt(r io.Reader, fileName string, langKey string) ([]Record, error) {
	if langKey == "" {
		langKey = DefaultLanguageKey
	}
	var pp benchproc.ProjectionParser
	langP, err := pp.Parse(langKey, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing language key %q: %w", langKey, err)
	}
	nameP, err := pp.Parse(".name", nil)
	if err != nil {
		return nil, err
	}

	logger := zap.L()
	var records []Record
	reader := benchfmt.NewReader(r, fileName)
	for reader.Scan() {
		var res *benchfmt.Result
		switch rec := reader.Result(); rec := rec.(type) {
		case *benchfmt.Result:
			res = rec
		case *benchfmt.SyntaxError:
			// Report a non-fatal parse error.
			logger.Warn("Skipping benchmark line",
				zap.String("component", "bench"),
				zap.Error(rec))
			continue
		default:
			// Unknown record type. Ignore.
			continue
		}

		language := langP.Project(res).Get(langP.Fields()[0])
		if language == "" {
			logger.Debug("Skipping result without language",
				zap.String("component", "bench"),
				zap.ByteString("name", res.Name))
			continue
		}
		t, ok := secondsPerOp(res)
		if !ok {
			continue
		}
		records = append(records, Record{
			Language:  language,
			Benchmark: nameP.Project(res).Get(nameP.Fields()[0]),
			Time:      t,
		})
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileName, err)
	}
	return records, nil
}

func secondsPerOp(res *benchfmt.Result) (float64, bool) {
	if v, ok := res.Value("sec/op"); ok {
		return v, true
	}
	if v, ok := res.Value("ns/op"); ok {
		return v / 1e9, true
	}
	return 0, false
}
