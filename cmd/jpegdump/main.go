// Command jpegdump decodes a baseline JPEG file, optionally writing the
// result as a PPM/PGM image and optionally dumping the segments it found.
package main

import (
    "bufio"
    "flag"
    "fmt"
    "image"
    "image/color"
    "os"

    "github.com/jrm-1535/bjpeg"
)

func main() {
    var out string
    var info bool
    flag.StringVar( &out, "o", "", "write the decoded image to this PPM/PGM file" )
    flag.BoolVar( &info, "info", false, "print the segments found while parsing" )
    flag.Parse()

    if flag.NArg() != 1 {
        fmt.Fprintln( os.Stderr, "usage: jpegdump [-o out.ppm] [-info] <file.jpg>" )
        os.Exit( 1 )
    }
    path := flag.Arg( 0 )

    jpg, err := jpeg.Read( path, &jpeg.Options{ Warn: true } )
    if err != nil {
        fmt.Fprintf( os.Stderr, "jpegdump: %s: %v\n", path, err )
        os.Exit( 1 )
    }

    if info {
        jpg.FormatSegments( os.Stdout )
        jpg.FormatImageInfo( os.Stdout )
    }

    if out != "" {
        img := jpg.Image()
        if img == nil {
            fmt.Fprintf( os.Stderr, "jpegdump: %s: no scan was decoded\n", path )
            os.Exit( 1 )
        }
        f, err := os.Create( out )
        if err != nil {
            fmt.Fprintf( os.Stderr, "jpegdump: %v\n", err )
            os.Exit( 1 )
        }
        defer f.Close()
        if err := writePNM( f, img.Crop() ); err != nil {
            fmt.Fprintf( os.Stderr, "jpegdump: writing %s: %v\n", out, err )
            os.Exit( 1 )
        }
    }
}

// writePNM writes img as a binary PGM (grayscale) or PPM (RGB) file,
// whichever matches its concrete color model.
func writePNM( f *os.File, img image.Image ) error {
    b := img.Bounds()
    w := bufio.NewWriter( f )

    switch im := img.(type) {
    case *image.Gray:
        fmt.Fprintf( w, "P5\n%d %d\n255\n", b.Dx(), b.Dy() )
        for y := b.Min.Y; y < b.Max.Y; y++ {
            w.Write( im.Pix[(y-b.Min.Y)*im.Stride : (y-b.Min.Y)*im.Stride+b.Dx()] )
        }
    default:
        fmt.Fprintf( w, "P6\n%d %d\n255\n", b.Dx(), b.Dy() )
        row := make( []byte, 3*b.Dx() )
        for y := b.Min.Y; y < b.Max.Y; y++ {
            for x := b.Min.X; x < b.Max.X; x++ {
                r, g, bl, _ := img.At( x, y ).RGBA()
                c := color.RGBA{ uint8( r>>8 ), uint8( g>>8 ), uint8( bl>>8 ), 255 }
                i := ( x - b.Min.X ) * 3
                row[i], row[i+1], row[i+2] = c.R, c.G, c.B
            }
            w.Write( row )
        }
    }
    return w.Flush()
}
