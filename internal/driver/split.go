package driver

import (
	"fmt"

	"cdl/internal/lexer"
	"cdl/internal/source"
	"cdl/internal/token"
)

// Chunk is the byte range of one top-level `component` block.
// Chunks are parsed independently of each other.
type Chunk struct {
	File  source.FileID
	Path  string
	Index int // порядковый номер в файле
	Start uint32
	End   uint32
	// Name is the identifier after `component`, guessed by the pre-scan.
	// The parser has the final word on it.
	Name string
}

// Label names the chunk for progress output even when the name is unknown.
func (c Chunk) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%s#%d", c.Path, c.Index)
}

// SplitComponents cuts file at every `component` keyword found at brace
// depth 0. Text before the first keyword stays in the first chunk so the
// parser reports it. A lexical error does not end the scan: it is left to
// the chunk it falls into and cutting resumes right after the bad text.
func SplitComponents(file *source.File) []Chunk {
	lx := lexer.New(file, lexer.Options{})
	end := uint32(len(file.Content))

	var (
		chunks []Chunk
		depth  int
		first  = true
	)
	for done := false; !done; {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		switch tok.Kind {
		case token.Invalid:
			// ошибка липкая, поэтому заводим новый лексер за испорченным местом
			resume := max(tok.Span.End, tok.Span.Start+1)
			if resume >= end {
				done = true
				break
			}
			lx = lexer.NewRange(file, resume, end, lexer.Options{})
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth > 0 {
				depth--
			}
		case token.KwComponent:
			if depth != 0 {
				break
			}
			start := tok.Span.Start
			if first {
				start = 0
			}
			if n := len(chunks); n > 0 && !first {
				chunks[n-1].End = tok.Span.Start
			}
			c := Chunk{File: file.ID, Path: file.Path, Index: len(chunks), Start: start, End: end}
			if next := lx.Peek(); next.Kind == token.Ident {
				c.Name = next.Value
			}
			chunks = append(chunks, c)
			first = false
			continue
		}
		if first {
			// мусор до первого component: отдаём весь файл парсеру одним куском
			first = false
			chunks = append(chunks, Chunk{File: file.ID, Path: file.Path, Start: 0, End: end})
		}
	}
	return chunks
}
