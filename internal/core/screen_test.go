package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen should be blank, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '@', ColorBrightGreen)
	cell := s.GetCell(5, 5)
	if cell.Rune != '@' || cell.Color != ColorBrightGreen {
		t.Errorf("GetCell(5, 5) = %+v", cell)
	}

	// Out of bounds writes are ignored and reads return blank.
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(0, 100, 'A', ColorRed)
	if got := s.GetCell(-1, 0); got != blank {
		t.Errorf("out of bounds GetCell = %+v", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(12, 3)
	s.DrawTextCentered(1, "PAUSED", ColorYellow)

	row := s.Row(1)
	if strings.TrimSpace(row) != "PAUSED" {
		t.Errorf("Row(1) = %q", row)
	}
	if s.GetCell(3, 1).Color != ColorYellow {
		t.Errorf("centered text should be colored")
	}

	// Clipped at the right edge.
	s.DrawText(9, 0, "abcdef")
	if s.Row(0)[9:] != "abc" {
		t.Errorf("clipped row = %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(NewRect(0, 0, 5, 4), ColorGray)

	expected := "┌───┐\n│   │\n│   │\n└───┘"
	if s.String() != expected {
		t.Errorf("DrawBox:\n%s\nexpected:\n%s", s.String(), expected)
	}
}

func TestScreenResizeClears(t *testing.T) {
	s := NewScreen(4, 4)
	s.Set(1, 1, 'x')
	s.Resize(6, 2)
	if s.Width() != 6 || s.Height() != 2 {
		t.Fatalf("size = %dx%d", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Errorf("resize should clear content")
	}
}
