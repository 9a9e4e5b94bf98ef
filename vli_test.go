package jpeg

import "testing"

func TestReceiveExtend( t *testing.T ) {
    cases := []struct {
        size uint8
        bits []byte
        want int32
    }{
        { 0, []byte{ 0x00 }, 0 },
        { 1, []byte{ 0x00 }, -1 },       // top bit 0 at size 1 -> -1
        { 1, []byte{ 0x80 }, 1 },        // top bit 1 at size 1 -> +1
        { 3, []byte{ 0x00 }, -7 },       // 000 -> -7 (smallest 3-bit negative)
        { 3, []byte{ 0xe0 }, 7 },        // 111 -> +7
        { 3, []byte{ 0x80 }, 4 },        // 100 -> +4
        { 3, []byte{ 0x60 }, -4 },       // 011 -> -4
    }
    for i, c := range cases {
        br := newBitReader( c.bits, 0 )
        got, err := receiveExtend( br, c.size )
        if err != nil {
            t.Fatalf( "case %d: unexpected error: %v", i, err )
        }
        if got != c.want {
            t.Errorf( "case %d: size %d got %d, want %d", i, c.size, got, c.want )
        }
    }
}

func TestReceiveExtendZeroSize( t *testing.T ) {
    br := newBitReader( []byte{}, 0 )
    v, err := receiveExtend( br, 0 )
    if err != nil {
        t.Fatalf( "unexpected error: %v", err )
    }
    if v != 0 {
        t.Errorf( "got %d, want 0", v )
    }
}
