package present

import (
	"bytes"
	"strings"
	"testing"

	"github.com/MaJuniors/voice-commerce/internal/api"
)

func TestLogAppendsHistory(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf)

	p.Log("Mendengarkan...", StyleInfo)
	p.Log("Kamu: sepatu lari", StyleUser)

	lines := p.Lines()
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}

	if lines[0].Text != "Mendengarkan..." || lines[0].Style != StyleInfo {
		t.Errorf("Unexpected first line: %+v", lines[0])
	}
	if lines[1].Text != "Kamu: sepatu lari" || lines[1].Style != StyleUser {
		t.Errorf("Unexpected second line: %+v", lines[1])
	}

	out := buf.String()
	if !strings.Contains(out, "Mendengarkan...") || !strings.Contains(out, "Kamu: sepatu lari") {
		t.Errorf("Expected both lines in output, got %q", out)
	}
}

func TestHistoryIsAppendOnly(t *testing.T) {
	p := NewPresenter(&bytes.Buffer{})

	p.Log("first", StyleInfo)
	p.Log("error happened", StyleError)
	p.Log("second", StyleInfo)

	lines := p.Lines()
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(lines))
	}
	if lines[1].Text != "error happened" {
		t.Errorf("Expected error line preserved in place, got %q", lines[1].Text)
	}

	// Mutating the returned copy must not affect the history
	lines[0].Text = "mutated"
	if p.Lines()[0].Text != "first" {
		t.Error("Expected Lines to return a copy")
	}
}

func TestRenderProducts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf)

	p.RenderProducts("sepatu lari", &api.SearchResult{
		Items: []api.Product{
			{Name: "Sepatu A", Price: "Rp100.000", Image: "http://img/a.jpg", URL: "http://x"},
			{Name: "Sepatu B", Price: "Rp250.000", URL: "http://y"},
		},
		Count:   2,
		Keyword: "sepatu",
	})

	blocks := p.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("Expected 1 block, got %d", len(blocks))
	}

	block := blocks[0]
	if !strings.Contains(block.Title, "sepatu") {
		t.Errorf("Expected keyword in title, got %q", block.Title)
	}
	if len(block.Items) != 2 {
		t.Errorf("Expected 2 items, got %d", len(block.Items))
	}

	out := buf.String()
	for _, want := range []string{"Sepatu A", "Rp100.000", "http://x", "http://img/a.jpg", "Sepatu B"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output, got %q", want, out)
		}
	}
}

func TestRenderProductsConsecutiveBlocks(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf)

	p.RenderProducts("sepatu", &api.SearchResult{
		Items:   []api.Product{{Name: "Sepatu A", Price: "Rp100.000"}},
		Count:   1,
		Keyword: "sepatu",
	})
	p.RenderProducts("tas", &api.SearchResult{
		Items:   []api.Product{{Name: "Tas B", Price: "Rp200.000"}},
		Count:   1,
		Keyword: "tas",
	})

	blocks := p.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(blocks))
	}

	// The first block stays present and unmodified after the second is appended
	first := blocks[0]
	if !strings.Contains(first.Title, "sepatu") {
		t.Errorf("Expected first block title to keep its keyword, got %q", first.Title)
	}
	if len(first.Items) != 1 || first.Items[0].Name != "Sepatu A" || first.Items[0].Price != "Rp100.000" {
		t.Errorf("Expected first block items unchanged, got %+v", first.Items)
	}

	second := blocks[1]
	if !strings.Contains(second.Title, "tas") || len(second.Items) != 1 || second.Items[0].Name != "Tas B" {
		t.Errorf("Unexpected second block: %+v", second)
	}
}

func TestRenderProductsFallbacks(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf)

	p.RenderProducts("tas", &api.SearchResult{
		Items: []api.Product{{}},
		Count: 1,
	})

	if !strings.Contains(buf.String(), "(tanpa nama)") {
		t.Errorf("Expected name placeholder, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "Rp -") {
		t.Errorf("Expected price placeholder, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "#") {
		t.Errorf("Expected URL placeholder, got %q", buf.String())
	}

	// Empty keyword falls back to the query
	if !strings.Contains(p.Blocks()[0].Title, "tas") {
		t.Errorf("Expected query in title, got %q", p.Blocks()[0].Title)
	}
}

func TestRenderProductsEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf)

	p.RenderProducts("barang aneh", &api.SearchResult{})

	if len(p.Blocks()) != 0 {
		t.Errorf("Expected no block for empty result, got %d", len(p.Blocks()))
	}

	lines := p.Lines()
	if len(lines) != 1 || lines[0].Style != StyleMuted {
		t.Fatalf("Expected one muted line, got %+v", lines)
	}
	if !strings.Contains(lines[0].Text, "barang aneh") {
		t.Errorf("Expected query in empty-result line, got %q", lines[0].Text)
	}

	// An echoed keyword takes precedence over the query text
	p.RenderProducts("carikan barang aneh", &api.SearchResult{Keyword: "barang aneh"})
	lines = p.Lines()
	if !strings.Contains(lines[1].Text, `"barang aneh"`) {
		t.Errorf("Expected keyword in empty-result line, got %q", lines[1].Text)
	}
}
