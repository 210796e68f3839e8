// Package rag wires the document pipeline together: extraction, chunking,
// embedding storage, retrieval and answer generation.
package rag

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yma-ai/yma/internal/history"
	"github.com/yma-ai/yma/internal/ocr"
	"github.com/yma-ai/yma/internal/pdf"
	"github.com/yma-ai/yma/internal/splitter"
	"github.com/yma-ai/yma/internal/textnorm"
	"github.com/yma-ai/yma/internal/vectordb"
)

// Pipeline turns a PDF file into indexed chunks.
type Pipeline struct {
	store    vectordb.Store
	history  *history.Store
	ocr      ocr.Engine
	splitCfg splitter.Config
}

// IngestResult summarizes one ProcessFile call.
type IngestResult struct {
	FileName string
	Skipped  bool
	Pages    int
	Figures  int
	Chunks   int
}

// NewPipeline creates an ingestion pipeline. engine may be nil to disable
// figure OCR.
func NewPipeline(store vectordb.Store, hist *history.Store, engine ocr.Engine, splitCfg splitter.Config) *Pipeline {
	if splitCfg.ChunkSize <= 0 {
		splitCfg = splitter.DefaultConfig()
	}
	return &Pipeline{store: store, history: hist, ocr: engine, splitCfg: splitCfg}
}

// ProcessFile ingests one PDF: it hashes the content, skips files already
// seen, extracts structure, figures and per-page text, normalizes and splits
// each page, and upserts the chunks with their metadata. Chunks from page N
// carry page number N, so retrieval can cite where an answer came from.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (IngestResult, error) {
	fileName := filepath.Base(path)
	res := IngestResult{FileName: fileName}

	data, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("reading %s: %w", fileName, err)
	}

	sum := sha256.Sum256(data)
	contentHash := hex.EncodeToString(sum[:])

	seen, err := p.history.Seen(contentHash)
	if err != nil {
		return res, fmt.Errorf("checking ingest history: %w", err)
	}
	if seen {
		res.Skipped = true
		return res, nil
	}

	rs := bytes.NewReader(data)
	structure := pdf.ExtractStructure(rs, fileName)

	var figuresByPage map[int][]string
	if p.ocr != nil {
		rs.Seek(0, 0)
		figures := pdf.ExtractFigures(ctx, rs, fileName, p.ocr)
		res.Figures = len(figures)
		figuresByPage = make(map[int][]string)
		for _, fig := range figures {
			text := strings.TrimSpace(fig.OCRText)
			if text != "" {
				figuresByPage[fig.Page] = append(figuresByPage[fig.Page], text)
			}
		}
	}

	rs.Seek(0, 0)
	pages, err := pdf.ExtractPages(rs)
	if err != nil {
		return res, fmt.Errorf("extracting text from %s: %w", fileName, err)
	}
	res.Pages = len(pages)

	headings := make([]string, 0, len(structure.Headings))
	for _, h := range structure.Headings {
		headings = append(headings, h.Text)
	}

	var chunks []vectordb.Chunk
	for _, page := range pages {
		text := textnorm.Normalize(page.Text)
		if text == "" {
			continue
		}
		for _, piece := range p.splitCfg.Split(text) {
			meta := map[string]any{
				"page":  strconv.Itoa(page.Number),
				"title": structure.Title,
			}
			if structure.Author != "" {
				meta["author"] = structure.Author
			}
			if len(headings) > 0 {
				meta["headings"] = headings
			}
			if figs := figuresByPage[page.Number]; len(figs) > 0 {
				meta["figures"] = figs
			}
			chunks = append(chunks, vectordb.Chunk{Text: piece, Metadata: meta})
		}
	}

	stored, err := p.store.Upsert(ctx, chunks, fileName)
	if err != nil {
		return res, fmt.Errorf("indexing %s: %w", fileName, err)
	}
	res.Chunks = stored

	if err := p.history.Add(fileName, contentHash); err != nil {
		return res, fmt.Errorf("recording %s in history: %w", fileName, err)
	}

	log.Printf("RAG: ingested %s (%d pages, %d figures, %d chunks)", fileName, res.Pages, res.Figures, res.Chunks)
	return res, nil
}

// RemoveFile drops every index record and the history entry for the named
// file, so a deleted document stops answering questions.
func (p *Pipeline) RemoveFile(ctx context.Context, fileName string) error {
	if err := p.store.DeleteFile(ctx, fileName); err != nil {
		return err
	}
	if err := p.history.Remove(fileName); err != nil {
		return err
	}
	log.Printf("RAG: removed %s from the index", fileName)
	return nil
}
