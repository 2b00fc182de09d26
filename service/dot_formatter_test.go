package service

import (
	"bytes"
	"strings"
	"testing"

	"tsshift/domain"
)

func TestWriteImportGraphDOT(t *testing.T) {
	graph := domain.NewImportGraph()
	graph.AddImport("src/a.ts", "src/b.ts")
	graph.AddImport("src/b.ts", "src/a.ts")
	graph.AddImport("src/c.ts", "src/a.ts")
	graph.Circular = [][]string{{"src/a.ts", "src/b.ts", "src/a.ts"}}

	var buf bytes.Buffer
	if err := NewDOTFormatter(nil).WriteImportGraph(graph, &buf); err != nil {
		t.Fatalf("WriteImportGraph failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "digraph imports {") {
		t.Errorf("missing digraph header:\n%s", out)
	}
	if !strings.Contains(out, `src__a_ts [label="src/a.ts"]`) {
		t.Errorf("node not rendered:\n%s", out)
	}
	if !strings.Contains(out, "src__a_ts -> src__b_ts [penwidth=2") {
		t.Errorf("cycle edge not highlighted:\n%s", out)
	}
	if !strings.Contains(out, "src__c_ts -> src__a_ts;") {
		t.Errorf("regular edge should not be highlighted:\n%s", out)
	}
}

func TestWriteImportGraphDOTDeterministic(t *testing.T) {
	graph := domain.NewImportGraph()
	graph.AddImport("src/z.ts", "src/a.ts")
	graph.AddImport("src/m.ts", "src/a.ts")

	formatter := NewDOTFormatter(nil)
	var first bytes.Buffer
	if err := formatter.WriteImportGraph(graph, &first); err != nil {
		t.Fatalf("WriteImportGraph failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		var again bytes.Buffer
		if err := formatter.WriteImportGraph(graph, &again); err != nil {
			t.Fatalf("WriteImportGraph failed: %v", err)
		}
		// Strip the timestamp line before comparing
		trim := func(s string) string {
			lines := strings.SplitN(s, "\n", 2)
			return lines[len(lines)-1]
		}
		if trim(again.String()) != trim(first.String()) {
			t.Fatal("DOT output must be deterministic across runs")
		}
	}
}

func TestWriteImportGraphDOTInvalidRankDir(t *testing.T) {
	formatter := NewDOTFormatter(&DOTFormatterConfig{RankDir: "UP"})
	var buf bytes.Buffer
	if err := formatter.WriteImportGraph(domain.NewImportGraph(), &buf); err == nil {
		t.Error("invalid rank direction must fail")
	}
}

func TestWriteImportGraphDOTNilGraph(t *testing.T) {
	var buf bytes.Buffer
	if err := NewDOTFormatter(nil).WriteImportGraph(nil, &buf); err == nil {
		t.Error("nil graph must fail")
	}
}
