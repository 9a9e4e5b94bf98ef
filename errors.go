package jpeg

import "fmt"

// ErrorKind classifies the way a decode failed, so that callers can react
// programmatically instead of parsing an error string.
type ErrorKind int

const (
    TruncatedInput ErrorKind = iota   // fewer bytes than a segment or scan claims
    BadMarker                        // a 0xff byte is not followed by a valid marker
    MalformedSegment                 // a segment's declared fields are inconsistent
    MalformedHuffmanTable             // DHT counts/values do not describe a valid code
    HuffmanDecodeError                // the bit stream does not match any Huffman code
    BlockOverflow                     // more than 64 coefficients decoded in a data unit
    TruncatedBitstream                // the entropy-coded segment ends mid code
    UnsupportedFeature                // a legal but out-of-scope JPEG feature was found
)

func (k ErrorKind) String() string {
    switch k {
    case TruncatedInput:          return "truncated input"
    case BadMarker:               return "bad marker"
    case MalformedSegment:        return "malformed segment"
    case MalformedHuffmanTable:   return "malformed Huffman table"
    case HuffmanDecodeError:      return "Huffman decode error"
    case BlockOverflow:           return "block overflow"
    case TruncatedBitstream:      return "truncated bitstream"
    case UnsupportedFeature:      return "unsupported feature"
    }
    return "unknown error"
}

// DecodeError is the error type returned by every parsing and decoding
// failure of this package; errors from reading the file or io.Reader in
// Read, Decode and DecodeConfig are returned as ordinary errors. Offset is
// the byte position in the original input at which the problem was
// detected, or -1 when no single offset applies.
type DecodeError struct {
    Kind   ErrorKind
    Offset int
    Msg    string
    Err    error
}

func (e *DecodeError) Error() string {
    if e.Offset >= 0 {
        if e.Err != nil {
            return fmt.Sprintf( "%s at offset %d: %s: %v", e.Kind, e.Offset, e.Msg, e.Err )
        }
        return fmt.Sprintf( "%s at offset %d: %s", e.Kind, e.Offset, e.Msg )
    }
    if e.Err != nil {
        return fmt.Sprintf( "%s: %s: %v", e.Kind, e.Msg, e.Err )
    }
    return fmt.Sprintf( "%s: %s", e.Kind, e.Msg )
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets errors.Is( err, ErrUnsupportedFeature ) and friends match any
// DecodeError carrying that Kind, regardless of offset or message.
func (e *DecodeError) Is( target error ) bool {
    if de, ok := target.(*DecodeError); ok {
        return e.Kind == de.Kind
    }
    return false
}

func newError( kind ErrorKind, offset int, format string, args ...interface{} ) *DecodeError {
    return &DecodeError{ Kind: kind, Offset: offset, Msg: fmt.Sprintf( format, args... ) }
}

func wrapError( kind ErrorKind, offset int, err error, format string, args ...interface{} ) *DecodeError {
    return &DecodeError{ Kind: kind, Offset: offset, Msg: fmt.Sprintf( format, args... ), Err: err }
}

// Sentinels usable with errors.Is( err, jpeg.ErrUnsupportedFeature ), matching
// any DecodeError of that Kind independently of offset/message.
var (
    ErrTruncatedInput        = &DecodeError{ Kind: TruncatedInput, Offset: -1 }
    ErrBadMarker              = &DecodeError{ Kind: BadMarker, Offset: -1 }
    ErrMalformedSegment       = &DecodeError{ Kind: MalformedSegment, Offset: -1 }
    ErrMalformedHuffmanTable  = &DecodeError{ Kind: MalformedHuffmanTable, Offset: -1 }
    ErrHuffmanDecodeError     = &DecodeError{ Kind: HuffmanDecodeError, Offset: -1 }
    ErrBlockOverflow          = &DecodeError{ Kind: BlockOverflow, Offset: -1 }
    ErrTruncatedBitstream     = &DecodeError{ Kind: TruncatedBitstream, Offset: -1 }
    ErrUnsupportedFeature     = &DecodeError{ Kind: UnsupportedFeature, Offset: -1 }
)
