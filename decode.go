package jpeg

import "math"

// zigZagOrder[i] is the natural row-major index (row*8+col) of the
// coefficient stored at zig-zag position i, the order DQT values and
// entropy-decoded coefficients are both given in.
var zigZagOrder = [64]int{
    0,  1,  8, 16,  9,  2,  3, 10,
    17, 24, 32, 25, 18, 11,  4,  5,
    12, 19, 26, 33, 40, 48, 41, 34,
    27, 20, 13,  6,  7, 14, 21, 28,
    35, 42, 49, 56, 57, 50, 43, 36,
    29, 22, 15, 23, 30, 37, 44, 51,
    58, 59, 52, 45, 38, 31, 39, 46,
    53, 60, 61, 54, 47, 55, 62, 63,
}

// dequantize scales a zig-zag ordered data unit by its quantization table
// and un-zigzags it into natural row-major order, ready for the inverse
// transform.
func dequantize( du *dataUnit, qt *qTable ) (nat [64]float64) {
    for zz, v := range du {
        nat[zigZagOrder[zz]] = float64( v ) * float64( qt.values[zz] )
    }
    return
}

// cosTable[x][u] = cos( (2x+1)*u*pi/16 ), the basis used by both passes of
// the separable inverse DCT.
var cosTable [8][8]float64

func init() {
    for x := 0; x < 8; x++ {
        for u := 0; u < 8; u++ {
            cosTable[x][u] = math.Cos( float64( 2*x+1 ) * float64( u ) * math.Pi / 16.0 )
        }
    }
}

func dctScale( u int ) float64 {
    if u == 0 {
        return 1.0 / math.Sqrt2
    }
    return 1.0
}

// idct1D applies a one-dimensional inverse DCT-III to 8 coefficients,
// including the 0.5 normalization factor that, applied along both rows and
// columns of the separable 2D transform, yields the standard 1/4 overall
// scale of the JPEG inverse DCT.
func idct1D( in [8]float64 ) (out [8]float64) {
    for x := 0; x < 8; x++ {
        var sum float64
        for u := 0; u < 8; u++ {
            sum += dctScale( u ) * in[u] * cosTable[x][u]
        }
        out[x] = 0.5 * sum
    }
    return
}

// inverseDCT8 runs the separable 2D inverse DCT over a natural-order
// coefficient block (columns first, then rows; the transform is separable
// either order), then applies the level shift (+128) and clamps to the
// legal 8-bit sample range, writing stride-separated rows into dst starting
// at dst[0].
func inverseDCT8( nat [64]float64, dst []uint8, stride int ) {
    var cols [8][8]float64
    for c := 0; c < 8; c++ {
        var col [8]float64
        for r := 0; r < 8; r++ {
            col[r] = nat[r*8+c]
        }
        out := idct1D( col )
        for r := 0; r < 8; r++ {
            cols[r][c] = out[r]
        }
    }
    for r := 0; r < 8; r++ {
        row := idct1D( cols[r] )
        base := r * stride
        for c := 0; c < 8; c++ {
            s := row[c] + 128.0 + 0.5
            switch {
            case s < 0:
                s = 0
            case s > 255:
                s = 255
            }
            dst[base+c] = uint8( s )
        }
    }
}

// reconstructComponent dequantizes and inverse-transforms every data unit of
// a component into a contiguous 8-bit sample plane, duRows*8 rows of
// duPerRow*8 samples each.
func reconstructComponent( cmp *component, qt *qTable ) []uint8 {
    width := int( cmp.duPerRow ) * 8
    height := int( cmp.duRows ) * 8
    plane := make( []uint8, width*height )
    for r := uint( 0 ); r < cmp.duRows; r++ {
        for c := uint( 0 ); c < cmp.duPerRow; c++ {
            du := &cmp.iDCTdata[r*cmp.duPerRow+c]
            nat := dequantize( du, qt )
            dst := plane[ int(r)*8*width + int(c)*8 : ]
            inverseDCT8( nat, dst, width )
        }
    }
    return plane
}
