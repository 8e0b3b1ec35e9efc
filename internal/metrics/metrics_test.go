// Marquee - Movie Search and Content-Based Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordCatalogLoad(t *testing.T) {
	loadedBefore := testutil.ToFloat64(CatalogRows.WithLabelValues("loaded"))
	skippedBefore := testutil.ToFloat64(CatalogRows.WithLabelValues("skipped"))
	missingBefore := testutil.ToFloat64(CatalogLoadsTotal.WithLabelValues("missing"))

	RecordCatalogLoad("success", 10*time.Millisecond, 42, 3, 1)
	RecordCatalogLoad("missing", time.Millisecond, 0, 0, 0)

	if got := testutil.ToFloat64(CatalogRows.WithLabelValues("loaded")) - loadedBefore; got != 42 {
		t.Errorf("loaded rows delta = %v, want 42", got)
	}
	if got := testutil.ToFloat64(CatalogRows.WithLabelValues("skipped")) - skippedBefore; got != 3 {
		t.Errorf("skipped rows delta = %v, want 3", got)
	}
	if got := testutil.ToFloat64(CatalogSize); got != 42 {
		t.Errorf("catalog size = %v, want 42", got)
	}
	if got := testutil.ToFloat64(CatalogLoadsTotal.WithLabelValues("missing")) - missingBefore; got != 1 {
		t.Errorf("missing loads delta = %v, want 1", got)
	}
}

func TestRecordSearchAndRecommend(t *testing.T) {
	tests := []struct {
		name   string
		record func()
		metric func() float64
	}{
		{
			name:   "search hit",
			record: func() { RecordSearch("hit", time.Millisecond) },
			metric: func() float64 { return testutil.ToFloat64(SearchRequests.WithLabelValues("hit")) },
		},
		{
			name:   "provider error",
			record: func() { RecordSearchProviderError("local") },
			metric: func() float64 { return testutil.ToFloat64(SearchProviderErrors.WithLabelValues("local")) },
		},
		{
			name:   "recommend served",
			record: func() { RecordRecommend("served", 2*time.Millisecond) },
			metric: func() float64 { return testutil.ToFloat64(RecommendRequests.WithLabelValues("served")) },
		},
		{
			name:   "recommend cache hit",
			record: func() { RecordRecommendCache(true) },
			metric: func() float64 { return testutil.ToFloat64(RecommendCacheHits) },
		},
		{
			name:   "recommend cache miss",
			record: func() { RecordRecommendCache(false) },
			metric: func() float64 { return testutil.ToFloat64(RecommendCacheMisses) },
		},
		{
			name:   "category",
			record: func() { RecordCategoryRequest("popular") },
			metric: func() float64 { return testutil.ToFloat64(CategoryRequests.WithLabelValues("popular")) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.metric()
			tt.record()
			if got := tt.metric() - before; got != 1 {
				t.Errorf("counter delta = %v, want 1", got)
			}
		})
	}
}

func TestRecordArtifactLoad(t *testing.T) {
	RecordArtifactLoad("success", 5*time.Millisecond, 4803)
	if got := testutil.ToFloat64(ArtifactMovies); got != 4803 {
		t.Errorf("artifact movies = %v, want 4803", got)
	}

	// Failed loads leave the gauge alone
	RecordArtifactLoad("missing", time.Millisecond, 0)
	if got := testutil.ToFloat64(ArtifactMovies); got != 4803 {
		t.Errorf("artifact movies after failure = %v, want 4803", got)
	}
}

func TestRecordBuild(t *testing.T) {
	before := testutil.ToFloat64(BuildsTotal.WithLabelValues("error"))
	RecordBuild(errors.New("dataset missing"), 0, 0, 0)
	if got := testutil.ToFloat64(BuildsTotal.WithLabelValues("error")) - before; got != 1 {
		t.Errorf("error builds delta = %v, want 1", got)
	}

	RecordBuild(nil, 100, 2, 5000)
	if got := testutil.ToFloat64(BuildRows.WithLabelValues("indexed")); got != 100 {
		t.Errorf("indexed rows = %v, want 100", got)
	}
	if got := testutil.ToFloat64(BuildVocabulary); got != 5000 {
		t.Errorf("vocabulary = %v, want 5000", got)
	}
}

func TestRecordQualityRun(t *testing.T) {
	at := time.Unix(1_700_000_000, 0)

	RecordQualityRun("passed", 0.42, at)
	if got := testutil.ToFloat64(QualityAvgTopK); got != 0.42 {
		t.Errorf("avg top-k = %v, want 0.42", got)
	}

	RecordQualityRun("invalid", 0.99, at.Add(time.Minute))
	if got := testutil.ToFloat64(QualityAvgTopK); got != 0.42 {
		t.Errorf("avg top-k after invalid run = %v, want unchanged 0.42", got)
	}
	if got := testutil.ToFloat64(QualityLastRun); got != float64(at.Add(time.Minute).Unix()) {
		t.Errorf("last run = %v, want %v", got, at.Add(time.Minute).Unix())
	}
}

func TestRecordLocalStoreOp(t *testing.T) {
	before := testutil.ToFloat64(LocalStoreOperations.WithLabelValues("put", "error"))
	RecordLocalStoreOp("put", errors.New("disk full"))
	if got := testutil.ToFloat64(LocalStoreOperations.WithLabelValues("put", "error")) - before; got != 1 {
		t.Errorf("put error delta = %v, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests) - before; got != 1 {
		t.Errorf("active requests delta = %v, want 1", got)
	}
}
