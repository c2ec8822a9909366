package render

import (
	"context"
	"strings"
	"sync"

	"github.com/mitchelldurbincs/GeneralsIRQ/internal/game/core"
)

// CellDraw is one DrawCell call
type CellDraw struct {
	Terrain core.Terrain
	Owner   core.Side
	Units   int
	Drawn   bool
}

// Highlight is one DrawCursorHighlight call
type Highlight struct {
	At   core.Coordinate
	Side core.Side
}

// TextDraw is one DrawText call
type TextDraw struct {
	Col, Row int
	Text     string
}

// Frame is a display list for one screen
type Frame struct {
	Seq        uint64
	W, H       int
	Cells      []CellDraw
	Highlights []Highlight
	Texts      []TextDraw
}

func newFrame(w, h int) *Frame {
	return &Frame{W: w, H: h, Cells: make([]CellDraw, w*h)}
}

func (f *Frame) clear() {
	for i := range f.Cells {
		f.Cells[i] = CellDraw{}
	}
	f.Highlights = f.Highlights[:0]
	f.Texts = f.Texts[:0]
}

// Cell returns the draw of a grid cell, or nil off the grid
func (f Frame) Cell(at core.Coordinate) *CellDraw {
	if !at.IsValid(f.W, f.H) {
		return nil
	}
	return &f.Cells[at.Y*f.W+at.X]
}

// HighlightsAt returns the sides highlighting at
func (f Frame) HighlightsAt(at core.Coordinate) []core.Side {
	var sides []core.Side
	for _, h := range f.Highlights {
		if h.At == at {
			sides = append(sides, h.Side)
		}
	}
	return sides
}

// TextLines composes the text draws into the character buffer, one string
// of TextCols runes per row. Later draws overwrite earlier ones.
func (f Frame) TextLines() []string {
	rows := make([][]rune, TextRows)
	for _, t := range f.Texts {
		if t.Row < 0 || t.Row >= TextRows {
			continue
		}
		if rows[t.Row] == nil {
			rows[t.Row] = []rune(strings.Repeat(" ", TextCols))
		}
		col := t.Col
		for _, r := range t.Text {
			if col >= TextCols {
				break
			}
			if col >= 0 {
				rows[t.Row][col] = r
			}
			col++
		}
	}

	out := make([]string, TextRows)
	for i, r := range rows {
		if r != nil {
			out[i] = strings.TrimRight(string(r), " ")
		}
	}
	return out
}

func (f *Frame) clone() Frame {
	cp := Frame{
		Seq:        f.Seq,
		W:          f.W,
		H:          f.H,
		Cells:      make([]CellDraw, len(f.Cells)),
		Highlights: make([]Highlight, len(f.Highlights)),
		Texts:      make([]TextDraw, len(f.Texts)),
	}
	copy(cp.Cells, f.Cells)
	copy(cp.Highlights, f.Highlights)
	copy(cp.Texts, f.Texts)
	return cp
}

// FrameBuffer is a double-buffered Renderer. The CPU draws into the back
// frame and requests a swap; the display performs it on its next Vsync.
type FrameBuffer struct {
	mu      sync.Mutex
	front   *Frame
	back    *Frame
	swapped chan struct{} // open while a swap is pending
	seq     uint64
	auto    bool
}

// NewFrameBuffer creates a frame buffer for a w x h grid
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{front: newFrame(w, h), back: newFrame(w, h)}
}

// NewHeadlessFrameBuffer creates a frame buffer that swaps as soon as a
// swap is requested, for runs with no display attached
func NewHeadlessFrameBuffer(w, h int) *FrameBuffer {
	fb := NewFrameBuffer(w, h)
	fb.auto = true
	return fb
}

// DrawCell implements Renderer
func (fb *FrameBuffer) DrawCell(at core.Coordinate, terrain core.Terrain, owner core.Side, units int) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if c := fb.back.Cell(at); c != nil {
		*c = CellDraw{Terrain: terrain, Owner: owner, Units: units, Drawn: true}
	}
}

// DrawCursorHighlight implements Renderer
func (fb *FrameBuffer) DrawCursorHighlight(at core.Coordinate, side core.Side) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if at.IsValid(fb.back.W, fb.back.H) && side.Valid() {
		fb.back.Highlights = append(fb.back.Highlights, Highlight{At: at, Side: side})
	}
}

// DrawText implements Renderer
func (fb *FrameBuffer) DrawText(col, row int, text string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.back.Texts = append(fb.back.Texts, TextDraw{Col: col, Row: row, Text: text})
}

// SwapBuffers requests that the back frame be shown at the next Vsync
func (fb *FrameBuffer) SwapBuffers() {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if fb.swapped == nil {
		fb.swapped = make(chan struct{})
	}
	if fb.auto {
		fb.swapLocked()
	}
}

// WaitForVsync blocks until the requested swap has happened
func (fb *FrameBuffer) WaitForVsync(ctx context.Context) error {
	fb.mu.Lock()
	done := fb.swapped
	fb.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Vsync is called by the display at the end of every scan-out. It
// performs a pending swap and reports whether one happened.
func (fb *FrameBuffer) Vsync() bool {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if fb.swapped == nil {
		return false
	}
	fb.swapLocked()
	return true
}

func (fb *FrameBuffer) swapLocked() {
	fb.seq++
	fb.back.Seq = fb.seq
	fb.front, fb.back = fb.back, fb.front
	fb.back.clear()
	close(fb.swapped)
	fb.swapped = nil
}

// Front returns a copy of the frame on screen
func (fb *FrameBuffer) Front() Frame {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.front.clone()
}

// Swaps returns the number of completed swaps
func (fb *FrameBuffer) Swaps() uint64 {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.seq
}
