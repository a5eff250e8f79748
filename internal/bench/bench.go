// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package bench loads benchmark timings and groups them into the per-benchmark
// value lists drawn as sector charts.
package bench

type constError string

func (e constError) Error() string {
	return string(e)
}

const ErrMalformed = constError("malformed benchmark data")
const ErrUnknownOrder = constError("unknown benchmark order")

// Record is one timing: how long the given language's implementation of a
// benchmark took, in seconds.
type Record struct {
	Language  string
	Benchmark string
	Time      float64
}

// Languages returns the distinct languages of records in the order they are
// first seen.
func Languages(records []Record) []string {
	seen := make(map[string]struct{})
	var languages []string
	for _, r := range records {
		if _, ok := seen[r.Language]; ok {
			continue
		}
		seen[r.Language] = struct{}{}
		languages = append(languages, r.Language)
	}
	return languages
}

// Filter returns the records whose language and benchmark are not excluded.
func Filter(records []Record, excludeLanguages, excludeBenchmarks []string) []Record {
	if len(excludeLanguages) == 0 && len(excludeBenchmarks) == 0 {
		return records
	}
	langs := toSet(excludeLanguages)
	benches := toSet(excludeBenchmarks)
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if _, ok := langs[r.Language]; ok {
			continue
		}
		if _, ok := benches[r.Benchmark]; ok {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
