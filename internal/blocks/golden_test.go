package blocks

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/goliatone/go-storefront/pkg/testsupport"
)

func TestGoldenDocumentCoversEveryKind(t *testing.T) {
	raw, err := testsupport.LoadFixture("testdata/all_kinds.json")
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	seen := map[Kind]bool{}
	for _, block := range doc {
		seen[block.Kind()] = true
	}
	for _, kind := range Kinds {
		if !seen[kind] {
			t.Fatalf("fixture missing %s block", kind)
		}
	}
	unknown, ok := doc[len(doc)-1].(Unknown)
	if !ok || unknown.Type != "weather-radar" {
		t.Fatalf("expected trailing unknown block, got %#v", doc[len(doc)-1])
	}
}

func TestGoldenDocumentRoundTrip(t *testing.T) {
	var doc Document
	if err := testsupport.LoadGolden("testdata/all_kinds.json", &doc); err != nil {
		t.Fatalf("load golden: %v", err)
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var again Document
	if err := json.Unmarshal(encoded, &again); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(again) != len(doc) {
		t.Fatalf("expected %d blocks after round trip, got %d", len(doc), len(again))
	}
	known := len(doc) - 1
	if !reflect.DeepEqual(doc[:known], again[:known]) {
		t.Fatalf("known blocks changed across a round trip\nfirst: %#v\nagain: %#v", doc[:known], again[:known])
	}

	var want, got []map[string]any
	raw, _ := testsupport.LoadFixture("testdata/all_kinds.json")
	if err := json.Unmarshal(raw, &want); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	if err := json.Unmarshal(encoded, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("encoded document drifted from fixture\nwant: %v\ngot:  %v", want, got)
	}
}
