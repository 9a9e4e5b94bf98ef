package jpeg

import (
    "image"
    "image/color"
)

// Fixed-point (16.16) YCbCr -> RGB coefficients, the standard JFIF/ITU-R
// BT.601 conversion scaled by 65536 so the whole computation stays in
// integer arithmetic: 1.402, 0.34414, 0.71414 and 1.772 respectively.
const (
    crToR = 91881
    cbToG = 22554
    crToG = 46802
    cbToB = 116130
)

func clamp8( v int32 ) uint8 {
    switch {
    case v < 0:
        return 0
    case v > 255:
        return 255
    }
    return uint8( v )
}

// ycbcrToRGB converts one level-shifted (0-255) YCbCr triple to RGB using
// 16.16 fixed-point arithmetic.
func ycbcrToRGB( y, cb, cr uint8 ) (r, g, b uint8) {
    Y := int32( y )
    Cb := int32( cb ) - 128
    Cr := int32( cr ) - 128

    r = clamp8( Y + (crToR*Cr)>>16 )
    g = clamp8( Y - (cbToG*Cb+crToG*Cr)>>16 )
    b = clamp8( Y + (cbToB*Cb)>>16 )
    return
}

// assembleImage reconstructs the final raster for a frame whose components
// have all been entropy-decoded and are sitting in cmp.iDCTdata. A single
// component yields a grayscale image; three yield YCbCr converted to RGB
// with chroma upsampled by block replication (nearest neighbor), matching
// how subsampled chroma data units map back onto the full-resolution
// sample grid: sample (x,y) of component c reads component plane position
// (x*c.hSF/maxHSF, y*c.vSF/maxVSF), truncated.
//
// The returned image is always the full padded raster (MCU-aligned width
// and height); callers that want exactly the declared picture dimensions
// should use Image.Crop.
func assembleImage( frm *frame, qTables [4]*qTable ) (image.Image, error) {
    switch len( frm.components ) {
    case 1:
        return assembleGray( frm, qTables )
    case 3:
        return assembleRGB( frm, qTables )
    default:
        return nil, newError( UnsupportedFeature, -1,
            "%d components is not supported (only 1 or 3 are)", len( frm.components ) )
    }
}

func assembleGray( frm *frame, qTables [4]*qTable ) (image.Image, error) {
    cmp := &frm.components[0]
    qt := qTables[cmp.qId]
    if qt == nil {
        return nil, newError( MalformedSegment, -1, "component %d references an undefined quantization table", cmp.id )
    }
    plane := reconstructComponent( cmp, qt )
    width := int( cmp.duPerRow ) * 8
    height := int( cmp.duRows ) * 8

    img := image.NewGray( image.Rect( 0, 0, width, height ) )
    copy( img.Pix, plane )
    return img, nil
}

func assembleRGB( frm *frame, qTables [4]*qTable ) (image.Image, error) {
    planes := make( [][]uint8, 3 )
    widths := make( []int, 3 )
    for i := range frm.components {
        cmp := &frm.components[i]
        qt := qTables[cmp.qId]
        if qt == nil {
            return nil, newError( MalformedSegment, -1, "component %d references an undefined quantization table", cmp.id )
        }
        planes[i] = reconstructComponent( cmp, qt )
        widths[i] = int( cmp.duPerRow ) * 8
    }

    width := int( frm.nMcusCol ) * 8 * int( frm.maxHSF )
    height := int( frm.nMcusRow ) * 8 * int( frm.maxVSF )

    img := image.NewRGBA( image.Rect( 0, 0, width, height ) )
    for y := 0; y < height; y++ {
        for x := 0; x < width; x++ {
            yX := x * int( frm.components[0].hSF ) / int( frm.maxHSF )
            yY := y * int( frm.components[0].vSF ) / int( frm.maxVSF )
            yy := planes[0][yY*widths[0]+yX]

            cbX := x * int( frm.components[1].hSF ) / int( frm.maxHSF )
            cbY := y * int( frm.components[1].vSF ) / int( frm.maxVSF )
            cb := planes[1][cbY*widths[1]+cbX]

            crX := x * int( frm.components[2].hSF ) / int( frm.maxHSF )
            crY := y * int( frm.components[2].vSF ) / int( frm.maxVSF )
            cr := planes[2][crY*widths[2]+crX]

            r, g, b := ycbcrToRGB( yy, cb, cr )
            img.SetRGBA( x, y, color.RGBA{ R: r, G: g, B: b, A: 255 } )
        }
    }
    return img, nil
}
