package jpeg

import (
    "bytes"
    "errors"
    "image"
    "testing"
)

// minimalGrayJPEG builds a hand-assembled 16x8, single-component baseline
// JPEG whose only Huffman codes are the trivial one-bit "all zero"
// codewords, so every data unit decodes to a flat mid-gray block after the
// inverse DCT's level shift.
func minimalGrayJPEG() []byte {
    var b bytes.Buffer
    b.Write( []byte{ 0xff, 0xd8 } )                              // SOI

    b.Write( []byte{ 0xff, 0xdb, 0x00, 0x43, 0x00 } )             // DQT, 8-bit, dest 0
    for i := 0; i < 64; i++ {
        b.WriteByte( 1 )
    }

    dht := func( tcTh byte ) {
        b.Write( []byte{ 0xff, 0xc4, 0x00, 0x14, tcTh, 0x01 } )
        for i := 0; i < 15; i++ {
            b.WriteByte( 0 )
        }
        b.WriteByte( 0x00 )                                       // single symbol: 0
    }
    dht( 0x00 )    // DC class 0, dest 0
    dht( 0x10 )    // AC class 1, dest 0

    b.Write( []byte{                                              // SOF0
        0xff, 0xc0, 0x00, 0x0b,
        0x08,             // precision
        0x00, 0x08,       // nLines = 8
        0x00, 0x10,       // nSamplesLine = 16
        0x01,             // 1 component
        0x01, 0x11, 0x00, // id 1, sampling 1x1, quant table 0
    } )

    b.Write( []byte{                                              // SOS
        0xff, 0xda, 0x00, 0x08,
        0x01,             // 1 component
        0x01, 0x00,       // component 1 uses DC0/AC0
        0x00, 0x3f, 0x00, // Ss=0 Se=63 Ah/Al=0
    } )

    b.WriteByte( 0x0f )    // 2 blocks x 2 bits ("0000") + 4 padding 1-bits
    b.Write( []byte{ 0xff, 0xd9 } )                                // EOI
    return b.Bytes()
}

func TestParseMinimalGrayJPEG( t *testing.T ) {
    jpg, err := Parse( minimalGrayJPEG(), nil )
    if err != nil {
        t.Fatalf( "Parse: %v", err )
    }
    fi, err := jpg.GetFrameInfo()
    if err != nil {
        t.Fatalf( "GetFrameInfo: %v", err )
    }
    if fi.Width != 16 || fi.Height != 8 {
        t.Fatalf( "got %dx%d, want 16x8", fi.Width, fi.Height )
    }
    if len( fi.Components ) != 1 {
        t.Fatalf( "got %d components, want 1", len( fi.Components ) )
    }

    img := jpg.Image()
    if img == nil {
        t.Fatalf( "Image() returned nil" )
    }
    cropped := img.Crop()
    bounds := cropped.Bounds()
    if bounds.Dx() != 16 || bounds.Dy() != 8 {
        t.Fatalf( "got cropped size %dx%d, want 16x8", bounds.Dx(), bounds.Dy() )
    }

    gray, ok := cropped.( *image.Gray )
    if !ok {
        t.Fatalf( "got %T, want *image.Gray", cropped )
    }
    for _, v := range gray.Pix {
        if v != 128 {
            t.Errorf( "got sample %d, want 128 (an all-zero-coefficient block level-shifts to mid-gray)", v )
        }
    }
}

func TestParseRejectsNonZeroRestartInterval( t *testing.T ) {
    data := minimalGrayJPEG()
    // Splice a DRI segment (restart interval 1) right after SOI.
    dri := []byte{ 0xff, 0xdd, 0x00, 0x04, 0x00, 0x01 }
    spliced := append( append( []byte{}, data[:2]... ), dri... )
    spliced = append( spliced, data[2:]... )

    _, err := Parse( spliced, nil )
    if err == nil {
        t.Fatalf( "expected an error for a non-zero restart interval" )
    }
    if !errors.Is( err, ErrUnsupportedFeature ) {
        t.Errorf( "got %v, want UnsupportedFeature", err )
    }
}

func TestParseRejectsTruncatedInput( t *testing.T ) {
    data := minimalGrayJPEG()
    _, err := Parse( data[:len(data)-4], nil )
    if err == nil {
        t.Fatalf( "expected an error for truncated input" )
    }
}

func TestParseRejectsBadStart( t *testing.T ) {
    _, err := Parse( []byte{ 0x00, 0x01, 0x02 }, nil )
    if err == nil {
        t.Fatalf( "expected an error for a file not starting with SOI" )
    }
    var de *DecodeError
    if !errors.As( err, &de ) || de.Kind != BadMarker {
        t.Errorf( "got %v, want BadMarker", err )
    }
}

func TestParseRejectsProgressiveFrame( t *testing.T ) {
    data := minimalGrayJPEG()
    spliced := append( []byte{}, data... )
    // Flip SOF0 (0xc0) to SOF2 (progressive DCT).
    for i := 0; i+1 < len( spliced ); i++ {
        if spliced[i] == 0xff && spliced[i+1] == 0xc0 {
            spliced[i+1] = 0xc2
            break
        }
    }
    _, err := Parse( spliced, nil )
    if err == nil {
        t.Fatalf( "expected an error for a progressive frame" )
    }
    if !errors.Is( err, ErrUnsupportedFeature ) {
        t.Errorf( "got %v, want UnsupportedFeature", err )
    }
}

func TestFormatSegmentsDoesNotError( t *testing.T ) {
    jpg, err := Parse( minimalGrayJPEG(), nil )
    if err != nil {
        t.Fatalf( "Parse: %v", err )
    }
    var buf bytes.Buffer
    if _, err := jpg.FormatSegments( &buf ); err != nil {
        t.Fatalf( "FormatSegments: %v", err )
    }
    if buf.Len() == 0 {
        t.Errorf( "FormatSegments wrote nothing" )
    }
}
