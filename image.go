package jpeg

import (
    goimage "image"
    "image/color"
    "io"
)

// Image wraps the reconstructed picture. Image.Image is always the full
// MCU-aligned raster (its width/height are multiples of 8*maxSF); Width and
// Height are the dimensions declared by the frame. Crop returns a view
// trimmed to exactly those dimensions.
type Image struct {
    goimage.Image
    Width, Height int
}

// Crop returns the sub-image of the padded raster matching the frame's
// declared dimensions.
func (img *Image) Crop() goimage.Image {
    b := goimage.Rect( 0, 0, img.Width, img.Height )
    type subImager interface {
        SubImage( goimage.Rectangle ) goimage.Image
    }
    if si, ok := img.Image.( subImager ); ok {
        return si.SubImage( b )
    }
    return img.Image
}

// Decode reads a JPEG file from r and returns the decoded, padding-cropped
// image, satisfying the signature image.Decode expects.
func Decode( r io.Reader ) (goimage.Image, error) {
    data, err := io.ReadAll( r )
    if err != nil {
        return nil, err
    }
    jpg, err := Parse( data, nil )
    if err != nil {
        return nil, err
    }
    if jpg.image == nil {
        return nil, newError( MalformedSegment, -1, "file has no scan" )
    }
    return jpg.image.Crop(), nil
}

// DecodeConfig reports a JPEG file's dimensions and color model, for
// image.DecodeConfig. It reads and fully parses (and decodes) the whole input.
func DecodeConfig( r io.Reader ) (goimage.Config, error) {
    data, err := io.ReadAll( r )
    if err != nil {
        return goimage.Config{}, err
    }
    jpg, err := Parse( data, nil )
    if err != nil {
        return goimage.Config{}, err
    }
    if jpg.frame == nil {
        return goimage.Config{}, newError( MalformedSegment, -1, "file has no frame" )
    }
    model := goimage.Config{
        Width:  int( jpg.frame.nSamplesLine ),
        Height: int( jpg.frame.nLines ),
    }
    if len( jpg.frame.components ) == 1 {
        model.ColorModel = color.GrayModel
    } else {
        model.ColorModel = color.RGBAModel
    }
    return model, nil
}

func init() {
    goimage.RegisterFormat( "jpeg", "\xff\xd8", Decode, DecodeConfig )
}
