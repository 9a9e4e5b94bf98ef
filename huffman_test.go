package jpeg

import (
    "sort"
    "testing"
)

// TestBuildTreeStandardLuminanceDC builds the canonical DC luminance table
// from ITU-T T.81 Annex K.3 and checks a handful of known codes.
func TestBuildTreeStandardLuminanceDC( t *testing.T ) {
    bits := [16]uint8{ 0, 1, 5, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0 }
    values := []uint8{ 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11 }

    root, err := buildTree( bits, values )
    if err != nil {
        t.Fatalf( "buildTree: %v", err )
    }
    codes := root.codes()
    if len( codes ) != len( values ) {
        t.Fatalf( "got %d codes, want %d", len( codes ), len( values ) )
    }

    want := map[uint8]struct{ code uint16; length uint8 }{
        0:  { 0x00, 2 },
        1:  { 0x02, 3 },
        2:  { 0x03, 3 },
        3:  { 0x04, 3 },
        4:  { 0x05, 3 },
        5:  { 0x06, 3 },
        6:  { 0x0e, 4 },
        7:  { 0x1e, 5 },
        8:  { 0x3e, 6 },
        9:  { 0x7e, 7 },
        10: { 0xfe, 8 },
        11: { 0x1fe, 9 },
    }
    for _, c := range codes {
        w, ok := want[c.Symbol]
        if !ok {
            t.Fatalf( "unexpected symbol %d in tree", c.Symbol )
        }
        if c.Code != w.code || c.Length != w.length {
            t.Errorf( "symbol %d: got code 0x%x/%d bits, want 0x%x/%d bits",
                c.Symbol, c.Code, c.Length, w.code, w.length )
        }
    }
}

// TestBuildTreeIsPrefixFree checks the general invariant that no code is a
// prefix of another, for an arbitrary (non-canonical-reference) table.
func TestBuildTreeIsPrefixFree( t *testing.T ) {
    bits := [16]uint8{ 0, 2, 2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0 }
    values := []uint8{ 10, 20, 30, 40, 50, 60 }

    root, err := buildTree( bits, values )
    if err != nil {
        t.Fatalf( "buildTree: %v", err )
    }
    codes := root.codes()
    sort.Slice( codes, func( i, j int ) bool { return codes[i].Length < codes[j].Length } )

    for i := range codes {
        for j := i + 1; j < len( codes ); j++ {
            a, b := codes[i], codes[j]
            if a.Length > b.Length {
                continue
            }
            shifted := b.Code >> ( b.Length - a.Length )
            if shifted == a.Code {
                t.Errorf( "code for symbol %d (0x%x/%d) is a prefix of symbol %d (0x%x/%d)",
                    a.Symbol, a.Code, a.Length, b.Symbol, b.Code, b.Length )
            }
        }
    }
}

func TestBuildTreeRejectsOverdeterminedLength( t *testing.T ) {
    bits := [16]uint8{ 3 }   // only 2 slots possible at length 1
    values := []uint8{ 1, 2, 3 }
    if _, err := buildTree( bits, values ); err == nil {
        t.Fatalf( "expected an error for an impossible code length distribution" )
    }
}

func TestDecodeSymbolWalksBits( t *testing.T ) {
    bits := [16]uint8{ 0, 1, 5, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0 }
    values := []uint8{ 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11 }
    root, err := buildTree( bits, values )
    if err != nil {
        t.Fatalf( "buildTree: %v", err )
    }
    // symbol 0 has code 0b00 (2 bits)
    br := newBitReader( []byte{ 0x00 }, 0 )
    sym, err := decodeSymbol( br, root )
    if err != nil {
        t.Fatalf( "decodeSymbol: %v", err )
    }
    if sym != 0 {
        t.Errorf( "got symbol %d, want 0", sym )
    }
}
