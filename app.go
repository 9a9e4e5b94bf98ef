package jpeg

import "bytes"

// appSegment records enough about an APPn segment to describe it in
// diagnostics; this package does not interpret JFIF density fields, EXIF
// tags or XMP packets beyond recognizing their identifier string, since
// none of that bears on reconstructing the pixel data.
type appSegment struct {
    marker     byte
    identifier string
}

// identifyApp looks for a NUL-terminated ASCII identifier at the start of
// an APPn payload (JFIF\0, Exif\0\0, http://ns.adobe.com/xap/1.0/\0, ...).
func identifyApp( payload []byte ) string {
    i := bytes.IndexByte( payload, 0 )
    if i <= 0 || i > 32 {
        return ""
    }
    for _, b := range payload[:i] {
        if b < 0x20 || b > 0x7e {
            return ""
        }
    }
    return string( payload[:i] )
}

// applicationSegment reads and discards an APPn segment's payload, keeping
// only its identifier string for FormatSegments to report.
func (jpg *Desc) applicationSegment( marker byte ) error {
    payload, err := jpg.segmentPayload()
    if err != nil {
        return err
    }
    jpg.appSegments = append( jpg.appSegments, appSegment{
        marker:     marker,
        identifier: identifyApp( payload ),
    } )
    return nil
}
