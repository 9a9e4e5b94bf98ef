// Package jpeg decodes baseline (sequential DCT, Huffman-coded) JFIF/JPEG
// images.
//
// A JPEG file is a sequence of marker segments: two-byte markers (0xff
// followed by a non-zero, non-stuffing byte) each introducing either a
// fixed-format segment of its own (SOI, EOI, RSTn) or a segment carrying a
// 16-bit big-endian length followed by that many bytes of payload (APPn,
// COM, DQT, DHT, DRI, SOFn, SOS). SOS is special: its payload is the scan
// header, and it is immediately followed by the entropy-coded segment
// itself, a stream of bits with byte stuffing (0xff 0x00 stands for a
// literal 0xff) that runs until the next real marker.
//
// This package only understands baseline sequential DCT frames (marker
// SOF0): one or more 8x8 data units per component per MCU, Huffman-coded
// DC/AC coefficients, up to four quantization tables and eight Huffman
// tables (four DC, four AC). Progressive and lossless frames, arithmetic
// coding, hierarchical processes, restart markers and more than three
// components are recognized only well enough to reject them cleanly; see
// Parse.
package jpeg

import (
    "fmt"
    "os"
)

// Marker codes, ITU-T T.81 Table B.1.
const (
    _TEM  = 0x01
    _SOF0 = 0xc0
    _SOF1 = 0xc1
    _SOF2 = 0xc2
    _SOF3 = 0xc3
    _DHT  = 0xc4
    _SOF5 = 0xc5
    _SOF6 = 0xc6
    _SOF7 = 0xc7
    _JPG  = 0xc8
    _SOF9 = 0xc9
    _SOF10 = 0xca
    _SOF11 = 0xcb
    _DAC  = 0xcc
    _SOF13 = 0xcd
    _SOF14 = 0xce
    _SOF15 = 0xcf
    _RST0 = 0xd0
    _RST7 = 0xd7
    _SOI  = 0xd8
    _EOI  = 0xd9
    _SOS  = 0xda
    _DQT  = 0xdb
    _DNL  = 0xdc
    _DRI  = 0xdd
    _DHP  = 0xde
    _EXP  = 0xdf
    _APP0 = 0xe0
    _APP15 = 0xef
    _COM  = 0xfe
)

func isRestartMarker( m byte ) bool { return m >= _RST0 && m <= _RST7 }

func markerName( m byte ) string {
    switch {
    case m >= _SOF0 && m <= _SOF3, m >= _SOF5 && m <= _SOF7, m >= _SOF9 && m <= _SOF15:
        return fmt.Sprintf( "SOF%d", sofNumber( m ) )
    case isRestartMarker( m ):
        return fmt.Sprintf( "RST%d", m-_RST0 )
    case m >= _APP0 && m <= _APP15:
        return fmt.Sprintf( "APP%d", m-_APP0 )
    }
    switch m {
    case _TEM:  return "TEM"
    case _DHT:  return "DHT"
    case _JPG:  return "JPG"
    case _DAC:  return "DAC"
    case _SOI:  return "SOI"
    case _EOI:  return "EOI"
    case _SOS:  return "SOS"
    case _DQT:  return "DQT"
    case _DNL:  return "DNL"
    case _DRI:  return "DRI"
    case _DHP:  return "DHP"
    case _EXP:  return "EXP"
    case _COM:  return "COM"
    }
    return fmt.Sprintf( "0x%02x", m )
}

func sofNumber( m byte ) int {
    switch {
    case m >= _SOF0 && m <= _SOF3:  return int( m - _SOF0 )
    case m >= _SOF5 && m <= _SOF7:  return int( m - _SOF5 ) + 5
    case m >= _SOF9 && m <= _SOF15: return int( m - _SOF9 ) + 9
    }
    return -1
}

// decoder state, simplified to what a baseline-only parser needs.
type parseState int

const (
    stateInit parseState = iota   // before SOI
    stateApplication              // after SOI, before SOFn
    stateFrame                    // after SOFn, before SOS (tables may appear)
    stateScan                     // a scan (SOS + entropy data) has been processed
    stateDone                     // after EOI
)

// qTable is one quantization table (DQT destination 0-3), values held in
// the zig-zag order of the segment; dequantize un-zigzags as it scales.
type qTable struct {
    precision uint8       // 0: 8-bit values, 1: 16-bit values
    values    [64]uint16  // zig-zag order, as read from the segment
}

// component describes one SOF component together with the per-frame
// bookkeeping needed to decode it: its data-unit grid and, while a scan
// referencing it is being decoded, its Huffman tables and DC predictor.
type component struct {
    id        uint8
    hSF, vSF  uint8
    qId       uint8

    duPerRow  uint        // data units across one MCU row of this component
    duRows    uint        // data unit rows for this component
    iDCTdata  []dataUnit  // duRows*duPerRow data units, row-major

    hDC, hAC  *hcnode     // current scan's Huffman tables for this component
    prevDC    int32       // DC predictor, reset at the start of each scan
}

// scanComponent names one component, and the DC/AC Huffman table
// destinations to use for it, as declared by an SOS header.
type scanComponent struct {
    compIndex  int
    dcId, acId uint8
}

// frame holds everything decoded from a SOF0 segment plus the scan(s) that
// follow it.
type frame struct {
    precision             uint8
    nLines, nSamplesLine  uint16
    components            []component
    maxHSF, maxVSF        uint8
    nMcusRow, nMcusCol    uint
}

// Desc is the result of parsing a JPEG file: its frame and table segments,
// and (once Parse has processed a scan) the reconstructed image.
type Desc struct {
    data   []byte
    offset int
    state  parseState
    opts   *Options

    qTables [4]*qTable
    hTables [8]*hcnode // index 2*id for DC, 2*id+1 for AC

    frame           *frame
    restartInterval uint16  // from DRI; non-zero is rejected once a scan starts
    sawFrame        bool
    image           *Image
    comments        []string
    appSegments     []appSegment
}

func (jpg *Desc) logf( format string, args ...interface{} ) {
    if jpg.opts.warn() {
        jpg.opts.logger().Printf( format, args... )
    }
}

// Parse reads JPEG marker segments from data and returns a Desc describing
// them; it entropy-decodes and reconstructs the image in the same pass,
// available afterwards via Desc.Image. opts may be nil to use defaults.
func Parse( data []byte, opts *Options ) (*Desc, error) {
    jpg := &Desc{ data: data, opts: opts }

    if len( data ) < 2 || data[0] != 0xff || data[1] != _SOI {
        return nil, newError( BadMarker, 0, "file does not start with SOI" )
    }
    jpg.offset = 2
    jpg.state = stateApplication

    for {
        marker, err := jpg.nextMarker()
        if err != nil {
            return nil, err
        }
        switch {
        case marker == _EOI:
            jpg.state = stateDone
            if jpg.offset < len( jpg.data ) {
                if jpg.opts.strict() {
                    return nil, newError( MalformedSegment, jpg.offset, "trailing data after EOI" )
                }
                jpg.logf( "%d trailing byte(s) after EOI", len( jpg.data )-jpg.offset )
            }
            return jpg, nil

        case isRestartMarker( marker ):
            return nil, newError( UnsupportedFeature, jpg.offset-2,
                "restart marker %s found outside of a scan", markerName( marker ) )

        case marker >= _APP0 && marker <= _APP15:
            if err = jpg.applicationSegment( marker ); err != nil {
                return nil, err
            }

        case marker == _COM:
            if err = jpg.commentSegment(); err != nil {
                return nil, err
            }

        case marker == _DQT:
            if err = jpg.defineQuantizationTable(); err != nil {
                return nil, err
            }

        case marker == _DHT:
            if err = jpg.defineHuffmanTable(); err != nil {
                return nil, err
            }

        case marker == _DRI:
            if err = jpg.defineRestartInterval(); err != nil {
                return nil, err
            }

        case marker == _SOF0:
            if err = jpg.startOfFrame(); err != nil {
                return nil, err
            }

        case marker >= _SOF1 && marker <= _SOF15 && marker != _DHT && marker != _JPG && marker != _DAC:
            return nil, newError( UnsupportedFeature, jpg.offset-2,
                "%s is not a baseline sequential frame", markerName( marker ) )

        case marker == _SOS:
            if err = jpg.processScan(); err != nil {
                return nil, err
            }

        case marker == _DNL:
            return nil, newError( UnsupportedFeature, jpg.offset-2, "DNL is not supported" )

        case marker == _DHP || marker == _EXP:
            return nil, newError( UnsupportedFeature, jpg.offset-2,
                "%s (hierarchical mode) is not supported", markerName( marker ) )

        default:
            return nil, newError( BadMarker, jpg.offset-2, "unexpected marker %s", markerName( marker ) )
        }
    }
}

// nextMarker advances past any fill bytes (0xff 0xff...) and returns the
// marker code, leaving jpg.offset positioned just after it.
func (jpg *Desc) nextMarker() (byte, error) {
    for {
        if jpg.offset >= len( jpg.data ) {
            return 0, newError( TruncatedInput, jpg.offset, "expected a marker, found end of file" )
        }
        if jpg.data[jpg.offset] != 0xff {
            return 0, newError( BadMarker, jpg.offset, "expected 0xff, found 0x%02x", jpg.data[jpg.offset] )
        }
        jpg.offset++
        if jpg.offset >= len( jpg.data ) {
            return 0, newError( TruncatedInput, jpg.offset, "truncated marker" )
        }
        m := jpg.data[jpg.offset]
        jpg.offset++
        if m == 0xff {
            jpg.offset--        // fill byte, try again
            continue
        }
        return m, nil
    }
}

// segmentPayload reads the 16-bit big-endian length of the segment starting
// at the current offset (which must point just past the marker), validates
// it against the remaining input, and returns the payload bytes following
// the length field (sLen-2 bytes), advancing past the whole segment.
func (jpg *Desc) segmentPayload() ([]byte, error) {
    start := jpg.offset
    if start+2 > len( jpg.data ) {
        return nil, newError( TruncatedInput, start, "truncated segment length" )
    }
    sLen := int( jpg.data[start] )<<8 | int( jpg.data[start+1] )
    if sLen < 2 {
        return nil, newError( MalformedSegment, start, "segment length %d is smaller than the length field itself", sLen )
    }
    if start+sLen > len( jpg.data ) {
        return nil, newError( TruncatedInput, start, "segment claims length %d but only %d bytes remain", sLen, len( jpg.data )-start )
    }
    jpg.offset = start + sLen
    return jpg.data[start+2 : start+sLen], nil
}

// Image returns the reconstructed picture, or nil if Parse has not yet
// processed a scan.
func (jpg *Desc) Image() *Image { return jpg.image }

// FrameInfo describes the geometry and component layout of the decoded
// frame, for callers that want it without pulling in the image/color types.
type FrameInfo struct {
    Width, Height uint
    Precision     uint8
    Components    []Component
}

// Component is the public, table-friendly view of one frame component.
type Component struct {
    Id, HSF, VSF, QTableId uint8
}

// GetFrameInfo returns the geometry of the single frame this package
// supports, or an error if Parse has not yet reached a SOF0 segment.
func (jpg *Desc) GetFrameInfo() (*FrameInfo, error) {
    if jpg.frame == nil {
        return nil, newError( MalformedSegment, -1, "no frame has been parsed yet" )
    }
    fi := &FrameInfo{
        Width:     uint( jpg.frame.nSamplesLine ),
        Height:    uint( jpg.frame.nLines ),
        Precision: jpg.frame.precision,
    }
    fi.Components = make( []Component, len( jpg.frame.components ) )
    for i, c := range jpg.frame.components {
        fi.Components[i] = Component{ Id: c.id, HSF: c.hSF, VSF: c.vSF, QTableId: c.qId }
    }
    return fi, nil
}

// Read parses the JPEG file at path.
func Read( path string, opts *Options ) (*Desc, error) {
    data, err := os.ReadFile( path )
    if err != nil {
        return nil, fmt.Errorf( "Read: %w", err )
    }
    return Parse( data, opts )
}
