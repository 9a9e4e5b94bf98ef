package jpeg

import (
    "fmt"
    "io"
)

// FormatSegments writes a human-readable summary of every segment this
// package recognized while parsing: APPn identifiers, comments,
// quantization and Huffman tables, and the frame's component layout.
func (jpg *Desc) FormatSegments( w io.Writer ) (n int, err error) {
    cw := newCumulativeWriter( w )

    for _, a := range jpg.appSegments {
        if a.identifier != "" {
            cw.format( "%s: %s\n", markerName( a.marker ), a.identifier )
        } else {
            cw.format( "%s\n", markerName( a.marker ) )
        }
    }
    for _, c := range jpg.comments {
        cw.format( "COM: %q\n", c )
    }
    for i, qt := range jpg.qTables {
        if qt == nil {
            continue
        }
        cw.format( "DQT destination %d (precision %d bit)\n", i, 8+8*qt.precision )
        formatTable64( cw, qt.values[:] )
    }
    for i, h := range jpg.hTables {
        if h == nil {
            continue
        }
        class := "DC"
        if i%2 == 1 {
            class = "AC"
        }
        codes := h.codes()
        cw.format( "DHT class %s destination %d: %d codes\n", class, i/2, len( codes ) )
    }
    if jpg.frame != nil {
        cw.format( "Frame: %dx%d, %d-bit, %d component(s)\n",
            jpg.frame.nSamplesLine, jpg.frame.nLines, jpg.frame.precision, len( jpg.frame.components ) )
        for _, c := range jpg.frame.components {
            cw.format( "  component %d: sampling %dx%d, quant table %d\n", c.id, c.hSF, c.vSF, c.qId )
        }
    }
    return cw.result()
}

func formatTable64( cw *cumulativeWriter, zigzagValues []uint16 ) {
    var nat [64]uint16
    for zz, v := range zigzagValues {
        nat[zigZagOrder[zz]] = v
    }
    for row := 0; row < 8; row++ {
        cw.format( "  " )
        for col := 0; col < 8; col++ {
            cw.format( "%4d", nat[row*8+col] )
        }
        cw.format( "\n" )
    }
}

// FormatImageInfo writes one line describing the decoded picture's
// dimensions, or a message if no scan has been decoded.
func (jpg *Desc) FormatImageInfo( w io.Writer ) (int, error) {
    if jpg.image == nil {
        return io.WriteString( w, "Image: not decoded\n" )
    }
    return fmt.Fprintf( w, "Image: %dx%d\n", jpg.image.Width, jpg.image.Height )
}
