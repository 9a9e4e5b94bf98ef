package jpeg

import (
    "fmt"
    "io"
)

// cumulativeWriter accumulates the total byte count and first error across a
// sequence of writes, so a formatter can make several fmt.Fprintf calls and
// check the outcome once at the end.
type cumulativeWriter struct {
    w     io.Writer
    n     int
    err   error
}

func newCumulativeWriter( w io.Writer ) *cumulativeWriter {
    return &cumulativeWriter{ w: w }
}

func (cw *cumulativeWriter) Write( p []byte ) (int, error) {
    if cw.err != nil {
        return 0, cw.err
    }
    n, err := cw.w.Write( p )
    cw.n += n
    if err != nil {
        cw.err = err
    }
    return n, err
}

func (cw *cumulativeWriter) format( f string, args ...interface{} ) {
    if cw.err != nil {
        return
    }
    cw.Write( []byte( fmt.Sprintf( f, args... ) ) )
}

func (cw *cumulativeWriter) result() (int, error) { return cw.n, cw.err }

// findComponent returns the index of the component with the given SOF
// component id.
func (frm *frame) findComponent( id uint8 ) (int, bool) {
    for i := range frm.components {
        if frm.components[i].id == id {
            return i, true
        }
    }
    return -1, false
}

// defineQuantizationTable parses a DQT segment. A single DQT may carry more
// than one table; each is a precision/destination byte followed by 64
// values (1 byte each if 8-bit precision, 2 bytes each if 16-bit), in
// zig-zag order.
func (jpg *Desc) defineQuantizationTable() error {
    start := jpg.offset
    payload, err := jpg.segmentPayload()
    if err != nil {
        return err
    }
    p := 0
    for p < len( payload ) {
        pqTq := payload[p]
        p++
        pq := pqTq >> 4
        tq := pqTq & 0x0f
        if tq > 3 {
            return newError( MalformedSegment, start, "DQT destination %d out of range", tq )
        }
        if pq > 1 {
            return newError( MalformedSegment, start, "DQT precision %d out of range", pq )
        }
        if jpg.qTables[tq] != nil {
            if jpg.opts.strict() {
                return newError( MalformedSegment, start, "DQT destination %d redefined", tq )
            }
            jpg.logf( "DQT destination %d redefined at offset %d", tq, start )
        }
        qt := &qTable{ precision: pq }
        if pq == 0 {
            if p+64 > len( payload ) {
                return newError( TruncatedInput, start, "DQT segment too short for an 8-bit table" )
            }
            for i := 0; i < 64; i++ {
                qt.values[i] = uint16( payload[p+i] )
            }
            p += 64
        } else {
            if p+128 > len( payload ) {
                return newError( TruncatedInput, start, "DQT segment too short for a 16-bit table" )
            }
            for i := 0; i < 64; i++ {
                qt.values[i] = uint16( payload[p+2*i] )<<8 | uint16( payload[p+2*i+1] )
            }
            p += 128
        }
        jpg.qTables[tq] = qt
    }
    return nil
}

// defineHuffmanTable parses a DHT segment. As with DQT, a single DHT may
// carry more than one table.
func (jpg *Desc) defineHuffmanTable() error {
    start := jpg.offset
    payload, err := jpg.segmentPayload()
    if err != nil {
        return err
    }
    p := 0
    for p < len( payload ) {
        tcTh := payload[p]
        p++
        tc := tcTh >> 4
        th := tcTh & 0x0f
        if tc > 1 || th > 3 {
            return newError( MalformedSegment, start, "DHT class/destination %d/%d out of range", tc, th )
        }
        if p+16 > len( payload ) {
            return newError( TruncatedInput, start, "DHT segment too short for code length counts" )
        }
        var bits [16]uint8
        total := 0
        copy( bits[:], payload[p:p+16] )
        for _, c := range bits {
            total += int( c )
        }
        p += 16
        if total > 256 {
            return newError( MalformedHuffmanTable, start, "DHT declares %d codes, more than 256", total )
        }
        if p+total > len( payload ) {
            return newError( MalformedHuffmanTable, start, "DHT segment too short for %d symbol values", total )
        }
        values := payload[p : p+total]
        p += total

        root, err := buildTree( bits, values )
        if err != nil {
            return wrapError( MalformedHuffmanTable, start, err, "building Huffman table %d/%d", tc, th )
        }
        slot := 2*int(th) + int(tc)
        if jpg.hTables[slot] != nil {
            if jpg.opts.strict() {
                return newError( MalformedSegment, start, "Huffman table %d/%d redefined", tc, th )
            }
            jpg.logf( "Huffman table %d/%d redefined at offset %d", tc, th, start )
        }
        jpg.hTables[slot] = root
    }
    return nil
}

// defineRestartInterval parses a DRI segment. The interval is recorded but
// not acted upon here: a non-zero interval is rejected once a scan using it
// actually begins, so the error carries the offset of the scan rather than
// of this segment.
func (jpg *Desc) defineRestartInterval() error {
    start := jpg.offset
    payload, err := jpg.segmentPayload()
    if err != nil {
        return err
    }
    if len( payload ) != 2 {
        return newError( MalformedSegment, start, "DRI segment length must be 4, was %d", len( payload )+2 )
    }
    jpg.restartInterval = uint16( payload[0] )<<8 | uint16( payload[1] )
    return nil
}

// commentSegment parses a COM segment; comment text has no bearing on
// decoding and is only kept for diagnostics.
func (jpg *Desc) commentSegment() error {
    payload, err := jpg.segmentPayload()
    if err != nil {
        return err
    }
    jpg.comments = append( jpg.comments, string( payload ) )
    return nil
}

// startOfFrame parses an SOF0 segment, allocating the frame's components
// and their data-unit grids.
func (jpg *Desc) startOfFrame() error {
    start := jpg.offset
    payload, err := jpg.segmentPayload()
    if err != nil {
        return err
    }
    if len( payload ) < 6 {
        return newError( TruncatedInput, start, "SOF0 segment too short" )
    }
    precision := payload[0]
    if precision != 8 {
        return newError( UnsupportedFeature, start, "sample precision %d is not supported (only 8-bit)", precision )
    }
    nLines := uint16( payload[1] )<<8 | uint16( payload[2] )
    nSamplesLine := uint16( payload[3] )<<8 | uint16( payload[4] )
    if nSamplesLine == 0 {
        return newError( MalformedSegment, start, "SOF0 declares zero samples per line" )
    }
    nComp := int( payload[5] )
    if nComp == 0 || nComp > 3 {
        return newError( UnsupportedFeature, start, "%d components is not supported (only 1-3 are)", nComp )
    }
    if len( payload ) != 6+3*nComp {
        return newError( MalformedSegment, start, "SOF0 length inconsistent with %d components", nComp )
    }

    components := make( []component, nComp )
    var maxHSF, maxVSF uint8 = 1, 1
    for i := 0; i < nComp; i++ {
        base := 6 + 3*i
        id := payload[base]
        hv := payload[base+1]
        hSF := hv >> 4
        vSF := hv & 0x0f
        qId := payload[base+2]
        if hSF == 0 || hSF > 4 || vSF == 0 || vSF > 4 {
            return newError( MalformedSegment, start, "component %d has invalid sampling factors %d x %d", id, hSF, vSF )
        }
        if qId > 3 {
            return newError( MalformedSegment, start, "component %d references quantization table %d", id, qId )
        }
        components[i] = component{ id: id, hSF: hSF, vSF: vSF, qId: qId }
        if hSF > maxHSF {
            maxHSF = hSF
        }
        if vSF > maxVSF {
            maxVSF = vSF
        }
    }

    nMcusCol := ( uint( nSamplesLine ) + uint( maxHSF )*8 - 1 ) / ( uint( maxHSF ) * 8 )
    nMcusRow := ( uint( nLines ) + uint( maxVSF )*8 - 1 ) / ( uint( maxVSF ) * 8 )

    for i := range components {
        c := &components[i]
        c.duPerRow = nMcusCol * uint( c.hSF )
        c.duRows = nMcusRow * uint( c.vSF )
        c.iDCTdata = make( []dataUnit, c.duPerRow*c.duRows )
    }

    jpg.frame = &frame{
        precision:    precision,
        nLines:       nLines,
        nSamplesLine: nSamplesLine,
        components:   components,
        maxHSF:       maxHSF,
        maxVSF:       maxVSF,
        nMcusRow:     nMcusRow,
        nMcusCol:     nMcusCol,
    }
    jpg.sawFrame = true
    jpg.state = stateFrame
    return nil
}

// processScan parses an SOS header, then decodes the entropy-coded segment
// that immediately follows it, and assembles the final image once the last
// data unit has been decoded.
func (jpg *Desc) processScan() error {
    if jpg.frame == nil {
        return newError( MalformedSegment, jpg.offset, "SOS before any SOF0" )
    }
    start := jpg.offset
    payload, err := jpg.segmentPayload()
    if err != nil {
        return err
    }
    if len( payload ) < 1 {
        return newError( TruncatedInput, start, "SOS segment too short" )
    }
    nComp := int( payload[0] )
    if len( payload ) != 1+2*nComp+3 {
        return newError( MalformedSegment, start, "SOS length inconsistent with %d components", nComp )
    }
    if nComp < 1 || nComp > len( jpg.frame.components ) {
        return newError( MalformedSegment, start, "SOS references %d components", nComp )
    }

    scanComps := make( []scanComponent, nComp )
    for i := 0; i < nComp; i++ {
        base := 1 + 2*i
        cId := payload[base]
        tdTa := payload[base+1]
        dcId := tdTa >> 4
        acId := tdTa & 0x0f
        if dcId > 3 || acId > 3 {
            return newError( MalformedSegment, start, "SOS component %d uses table %d/%d", cId, dcId, acId )
        }
        idx, ok := jpg.frame.findComponent( cId )
        if !ok {
            return newError( MalformedSegment, start, "SOS references undefined component %d", cId )
        }
        scanComps[i] = scanComponent{ compIndex: idx, dcId: dcId, acId: acId }
    }

    ss := payload[1+2*nComp]
    se := payload[1+2*nComp+1]
    ahAl := payload[1+2*nComp+2]
    if ss != 0 || se != 63 || ahAl != 0 {
        return newError( UnsupportedFeature, start,
            "spectral selection/successive approximation (Ss=%d Se=%d Ah/Al=0x%02x) implies a non-baseline scan",
            ss, se, ahAl )
    }

    if jpg.restartInterval != 0 {
        return newError( UnsupportedFeature, start,
            "restart interval %d is not supported", jpg.restartInterval )
    }

    for _, sc := range scanComps {
        cmp := &jpg.frame.components[sc.compIndex]
        dc := jpg.hTables[2*int(sc.dcId)]
        ac := jpg.hTables[2*int(sc.acId)+1]
        if dc == nil || ac == nil {
            return newError( MalformedSegment, start,
                "component %d uses an undefined Huffman table", cmp.id )
        }
        cmp.hDC, cmp.hAC = dc, ac
    }

    scanStart := jpg.offset
    br := newBitReader( jpg.data[scanStart:], scanStart )
    if err := jpg.decodeScan( br, jpg.frame, scanComps ); err != nil {
        return err
    }
    jpg.offset = scanStart + br.pos

    img, err := assembleImage( jpg.frame, jpg.qTables )
    if err != nil {
        return err
    }
    jpg.image = &Image{
        Image:  img,
        Width:  int( jpg.frame.nSamplesLine ),
        Height: int( jpg.frame.nLines ),
    }
    jpg.state = stateScan
    return nil
}
