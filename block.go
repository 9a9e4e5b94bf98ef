package jpeg

// dataUnit holds one 8x8 block of coefficients in zig-zag scan order, as
// produced directly by the entropy decoder. dequantize (in decode.go) both
// scales these by the quantization table and un-zigzags them into natural
// row/column order.
type dataUnit [64]int16

// decodeBlock reads one entropy-coded data unit: a DC coefficient encoded as
// a size/value pair via the DC Huffman table, followed by up to 63 AC
// coefficients via the AC Huffman table, run-length coded with ZRL (run of
// 16 zeros) and EOB (end of block) escapes.
//
// prevDC is the previous data unit's reconstructed DC value for this
// component (0 at the start of a scan); the returned value is this data
// unit's DC, to be threaded into the next call.
func decodeBlock( br *bitReader, dc, ac *hcnode, prevDC int32 ) (du dataUnit, newDC int32, err error) {
    sizeSym, err := decodeSymbol( br, dc )
    if err != nil {
        return du, prevDC, wrapError( HuffmanDecodeError, br.offset(), err, "decoding DC size" )
    }
    if sizeSym > 11 {
        return du, prevDC, newError( MalformedSegment, br.offset(), "DC size %d out of range", sizeSym )
    }
    diff, err := receiveExtend( br, sizeSym )
    if err != nil {
        return du, prevDC, wrapError( TruncatedBitstream, br.offset(), err, "reading DC value" )
    }
    dcVal := prevDC + diff
    du[0] = int16( dcVal )

    k := 1
    for k < 64 {
        rs, err := decodeSymbol( br, ac )
        if err != nil {
            return du, dcVal, wrapError( HuffmanDecodeError, br.offset(), err, "decoding AC run/size" )
        }
        run := int( rs >> 4 )
        size := rs & 0x0f

        if size == 0 {
            if run == 15 {         // ZRL: skip 16 zero coefficients
                k += 16
                continue
            }
            break                   // run == 0, size == 0: EOB
        }

        k += run
        if k >= 64 {
            return du, dcVal, newError( BlockOverflow, br.offset(),
                "AC run advances past the 64th coefficient" )
        }
        val, err := receiveExtend( br, size )
        if err != nil {
            return du, dcVal, wrapError( TruncatedBitstream, br.offset(), err, "reading AC value" )
        }
        du[k] = int16( val )
        k++
    }
    return du, dcVal, nil
}
