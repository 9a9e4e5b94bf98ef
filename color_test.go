package jpeg

import "testing"

func TestYCbCrToRGBGray( t *testing.T ) {
    // Cb = Cr = 128 (neutral chroma) must reproduce Y exactly in all three
    // channels, regardless of Y.
    for _, y := range []uint8{ 0, 1, 16, 128, 200, 255 } {
        r, g, b := ycbcrToRGB( y, 128, 128 )
        if r != y || g != y || b != y {
            t.Errorf( "Y=%d: got (%d,%d,%d), want (%d,%d,%d)", y, r, g, b, y, y, y )
        }
    }
}

func TestYCbCrToRGBPureRed( t *testing.T ) {
    // The standard JFIF full-range red (255,0,0) maps to approximately
    // Y=76, Cb=85, Cr=255.
    r, g, b := ycbcrToRGB( 76, 85, 255 )
    if r < 250 {
        t.Errorf( "red channel: got %d, want close to 255", r )
    }
    if g > 10 {
        t.Errorf( "green channel: got %d, want close to 0", g )
    }
    if b > 10 {
        t.Errorf( "blue channel: got %d, want close to 0", b )
    }
}

func TestClamp8( t *testing.T ) {
    cases := []struct{ in int32; want uint8 }{
        { -10, 0 },
        { 0, 0 },
        { 255, 255 },
        { 300, 255 },
    }
    for _, c := range cases {
        if got := clamp8( c.in ); got != c.want {
            t.Errorf( "clamp8(%d): got %d, want %d", c.in, got, c.want )
        }
    }
}
