package jpeg

// receiveExtend implements the JPEG EXTEND procedure (ITU-T T.81 F.2.2.1):
// a value of size bits is read from the bit stream, and then sign-extended
// so that the stored magnitude recovers the original signed coefficient or
// DC difference. A size-bit field whose top bit is 1 decodes to its plain
// binary value; a field whose top bit is 0 encodes a negative number as
// the ones' complement of its magnitude and decodes to (bits - 2^size + 1).
func receiveExtend( br *bitReader, size uint8 ) (int32, error) {
    if size == 0 {
        return 0, nil
    }
    if size > 16 {
        return 0, newError( MalformedSegment, br.offset(), "VLI size %d exceeds 16 bits", size )
    }
    bits, err := br.readBits( uint( size ) )
    if err != nil {
        return 0, err
    }
    v := int32( bits )
    threshold := int32( 1 ) << ( size - 1 )
    if v < threshold {
        v += ( -1 << size ) + 1
    }
    return v, nil
}
