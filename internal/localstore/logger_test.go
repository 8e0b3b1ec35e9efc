// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package localstore

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func TestBadgerLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		log       func(l badgerLogger)
		wantLevel string
		wantMsg   string
	}{
		{"error", func(l badgerLogger) { l.Errorf("compaction failed: %v\n", "disk full") }, "error", "compaction failed: disk full"},
		{"warning", func(l badgerLogger) { l.Warningf("slow write %d ms", 40) }, "warn", "slow write 40 ms"},
		{"info demoted", func(l badgerLogger) { l.Infof("All %d tables opened\n", 3) }, "debug", "All 3 tables opened"},
		{"debug demoted", func(l badgerLogger) { l.Debugf("flush %s", "memtable") }, "trace", "flush memtable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newBadgerLogger(zerolog.New(&buf).Level(zerolog.TraceLevel)))

			var line map[string]string
			if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
				t.Fatalf("decode %q: %v", buf.String(), err)
			}
			if line["level"] != tt.wantLevel {
				t.Errorf("level = %q, want %q", line["level"], tt.wantLevel)
			}
			if line["message"] != tt.wantMsg {
				t.Errorf("message = %q, want %q", line["message"], tt.wantMsg)
			}
			if line["source"] != "badger" {
				t.Errorf("source = %q, want badger", line["source"])
			}
		})
	}
}

func TestBadgerLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newBadgerLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))
	l.Infof("housekeeping")
	l.Debugf("detail")
	if buf.Len() != 0 {
		t.Errorf("info logger wrote %q, want nothing", buf.String())
	}
	l.Warningf("kept")
	if buf.Len() == 0 {
		t.Error("warning was dropped")
	}
}
