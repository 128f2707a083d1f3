package area

import (
	"context"
	"testing"

	"github.com/paulmach/orb"

	"placefinder_backend/platform/apperr"
	"placefinder_backend/platform/logger"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int
}

func (f *fakeCompleter) Complete(ctx context.Context, systemInstruction, userText string) (string, error) {
	f.calls++
	return f.response, f.err
}

type fakeNormalizer struct {
	address NormalizedAddress
	err     error
	calls   int
}

func (f *fakeNormalizer) Normalize(ctx context.Context, text string) (NormalizedAddress, error) {
	f.calls++
	return f.address, f.err
}

type fakeBoundary struct {
	bound orb.Bound
	err   error
	calls int
}

func (f *fakeBoundary) FetchBound(ctx context.Context, prefecture, city string) (orb.Bound, error) {
	f.calls++
	return f.bound, f.err
}

func testLogger() *logger.Logger {
	return logger.New("test")
}

func kyotanabeBound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{135.70, 34.76},
		Max: orb.Point{135.79, 34.87},
	}
}

func TestResolveSuccess(t *testing.T) {
	completer := &fakeCompleter{response: "京田辺市"}
	normalizer := &fakeNormalizer{address: NormalizedAddress{Prefecture: "京都府", City: "京田辺市"}}
	boundary := &fakeBoundary{bound: kyotanabeBound()}

	resolver := NewResolver(completer, normalizer, boundary, testLogger())

	resolved, bbox, err := resolver.Resolve(context.Background(), "京田辺市のレストランを探して下さい")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.Prefecture != "京都府" || resolved.City != "京田辺市" {
		t.Fatalf("unexpected area: %+v", resolved)
	}
	if !bbox.Valid() {
		t.Fatalf("expected ordered finite bbox, got %+v", bbox)
	}
	if bbox.MinLon != 135.70 || bbox.MaxLat != 34.87 {
		t.Fatalf("unexpected bbox coordinates: %+v", bbox)
	}
}

func TestResolveDecoratedCompletionStillNormalized(t *testing.T) {
	// The completion service sometimes wraps the answer in quotes and
	// punctuation; the stripped candidate is what reaches the normalizer.
	completer := &fakeCompleter{response: "「京田辺市」\n"}
	normalizer := &fakeNormalizer{address: NormalizedAddress{Prefecture: "京都府", City: "京田辺市"}}
	boundary := &fakeBoundary{bound: kyotanabeBound()}

	resolver := NewResolver(completer, normalizer, boundary, testLogger())

	if _, _, err := resolver.Resolve(context.Background(), "京田辺市"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if normalizer.calls != 1 {
		t.Fatalf("expected one normalizer call, got %d", normalizer.calls)
	}
}

func TestResolveSymbolOnlyCompletionFailsFast(t *testing.T) {
	completer := &fakeCompleter{response: "？、。"}
	normalizer := &fakeNormalizer{}
	boundary := &fakeBoundary{}

	resolver := NewResolver(completer, normalizer, boundary, testLogger())

	_, _, err := resolver.Resolve(context.Background(), "おすすめの場所")
	if !apperr.Is(err, apperr.KindAreaNotFound) {
		t.Fatalf("expected KindAreaNotFound, got %v", err)
	}
	if normalizer.calls != 0 || boundary.calls != 0 {
		t.Fatal("no collaborator should be called after an empty extraction")
	}
}

func TestResolveMissingPrefectureOrCity(t *testing.T) {
	cases := []struct {
		name    string
		address NormalizedAddress
	}{
		{"prefecture only", NormalizedAddress{Prefecture: "京都府"}},
		{"city only", NormalizedAddress{City: "京田辺市"}},
		{"nothing recognized", NormalizedAddress{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			boundary := &fakeBoundary{bound: kyotanabeBound()}
			resolver := NewResolver(
				&fakeCompleter{response: "関西"},
				&fakeNormalizer{address: tc.address},
				boundary,
				testLogger(),
			)

			_, _, err := resolver.Resolve(context.Background(), "関西のカフェ")
			if !apperr.Is(err, apperr.KindAreaNotFound) {
				t.Fatalf("expected KindAreaNotFound, got %v", err)
			}
			if boundary.calls != 0 {
				t.Fatal("boundary fetch should not happen without a full pair")
			}
		})
	}
}

func TestResolveBoundaryFetchFailure(t *testing.T) {
	resolver := NewResolver(
		&fakeCompleter{response: "京田辺市"},
		&fakeNormalizer{address: NormalizedAddress{Prefecture: "京都府", City: "京田辺市"}},
		&fakeBoundary{err: context.DeadlineExceeded},
		testLogger(),
	)

	_, _, err := resolver.Resolve(context.Background(), "京田辺市の公園")
	if !apperr.Is(err, apperr.KindBoundaryLookup) {
		t.Fatalf("expected KindBoundaryLookup, got %v", err)
	}
}

func TestResolveDegenerateBoundary(t *testing.T) {
	// An inverted bound cannot come from a well-formed document; it must
	// surface as a degenerate boundary, not as a silent bad bbox.
	resolver := NewResolver(
		&fakeCompleter{response: "京田辺市"},
		&fakeNormalizer{address: NormalizedAddress{Prefecture: "京都府", City: "京田辺市"}},
		&fakeBoundary{bound: orb.Bound{Min: orb.Point{135.79, 34.87}, Max: orb.Point{135.70, 34.76}}},
		testLogger(),
	)

	_, _, err := resolver.Resolve(context.Background(), "京田辺市の公園")
	if !apperr.Is(err, apperr.KindDegenerateBoundary) {
		t.Fatalf("expected KindDegenerateBoundary, got %v", err)
	}
}

func TestResolveCompletionFailurePassesThrough(t *testing.T) {
	upstream := apperr.Upstream("completion service request failed", nil)
	normalizer := &fakeNormalizer{}

	resolver := NewResolver(&fakeCompleter{err: upstream}, normalizer, &fakeBoundary{}, testLogger())

	_, _, err := resolver.Resolve(context.Background(), "京田辺市の公園")
	if !apperr.Is(err, apperr.KindUpstream) {
		t.Fatalf("expected KindUpstream, got %v", err)
	}
	if normalizer.calls != 0 {
		t.Fatal("normalizer should not be called after a completion failure")
	}
}
