package instrument_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/golivehtml/pkg/htmltok"
	"github.com/walteh/golivehtml/pkg/instrument"
	"github.com/walteh/golivehtml/pkg/scanner"
)

func TestInstrumentedHTML(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		spans []scanner.TagSpan
		want  string
	}{
		{
			name:  "no spans",
			text:  "plain text",
			spans: nil,
			want:  "plain text",
		},
		{
			name: "single tag",
			text: "<div>x</div>",
			spans: []scanner.TagSpan{
				{Name: "div", ID: 1, Start: 0, End: 12},
			},
			want: "<div data-brackets-id='1'>x</div>",
		},
		{
			name: "nested tags keep closure-order identities",
			text: "<div><span>x</span></div>",
			spans: []scanner.TagSpan{
				{Name: "div", ID: 2, Start: 0, End: 25},
				{Name: "span", ID: 1, Start: 5, End: 19},
			},
			want: "<div data-brackets-id='2'><span data-brackets-id='1'>x</span></div>",
		},
		{
			name: "attribute goes after the name, before existing attributes",
			text: `<img src="x">`,
			spans: []scanner.TagSpan{
				{Name: "img", ID: 7, Start: 0, End: 13},
			},
			want: `<img data-brackets-id='7' src="x">`,
		},
		{
			name: "spans arriving unsorted are handled",
			text: "<p>a</p><p>b</p>",
			spans: []scanner.TagSpan{
				{Name: "p", ID: 2, Start: 8, End: 16},
				{Name: "p", ID: 1, Start: 0, End: 8},
			},
			want: "<p data-brackets-id='1'>a</p><p data-brackets-id='2'>b</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, instrument.InstrumentedHTML(tt.text, tt.spans))
		})
	}
}

func TestInstrumentedHTML_DoesNotMutateInput(t *testing.T) {
	spans := []scanner.TagSpan{
		{Name: "div", ID: 2, Start: 8, End: 16},
		{Name: "div", ID: 1, Start: 0, End: 8},
	}
	_ = instrument.InstrumentedHTML("<div>a</div><div>b</div>", spans)

	assert.Equal(t, 2, spans[0].ID, "the caller's span order must survive instrumentation")
	assert.Equal(t, 1, spans[1].ID)
}

func TestStrip_RoundTrip(t *testing.T) {
	ctx := context.Background()
	texts := []string{
		"<div><span>x</span></div>",
		`<!DOCTYPE html><html><body><img src="x"><p>hi</p></body></html>`,
		"<div><p>unclosed",
		"",
	}

	for _, text := range texts {
		spans, _ := scanner.Scan(ctx, text, htmltok.Tokenize(ctx, text))
		instrumented := instrument.InstrumentedHTML(text, spans)
		assert.Equal(t, text, instrument.Strip(instrumented), "stripping must recover the original text")
	}
}

func TestStrip_LeavesUnrelatedAttributesAlone(t *testing.T) {
	text := `<div data-brackets-idx='9' id="a">x</div>`
	assert.Equal(t, text, instrument.Strip(text))
}

func TestInstrumentedHTML_SharedSnapshotStaysUsable(t *testing.T) {
	ctx := context.Background()
	text := "<div><span>x</span></div>"
	spans, _ := scanner.Scan(ctx, text, htmltok.Tokenize(ctx, text))

	first := instrument.InstrumentedHTML(text, spans)
	second := instrument.InstrumentedHTML(text, spans)
	require.Equal(t, first, second, "instrumenting from the same snapshot twice must agree")
}
