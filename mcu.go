package jpeg

// decodeScan runs the MCU driver for one entropy-coded segment: it walks
// every MCU in raster order, and within each MCU visits each scan component
// in scan order, decoding as many data units as that component's sampling
// factors call for (hSF*vSF of them), writing each into that component's
// data-unit grid at the position the MCU raster scan implies.
//
// DC prediction is per component and resets to 0 at the start of the scan;
// it is never reset mid-scan because restart markers, the only thing that
// would otherwise require it, are rejected before decoding begins.
func (jpg *Desc) decodeScan( br *bitReader, frm *frame, comps []scanComponent ) error {
    for _, sc := range comps {
        frm.components[sc.compIndex].prevDC = 0
    }

    for mcuRow := uint( 0 ); mcuRow < frm.nMcusRow; mcuRow++ {
        for mcuCol := uint( 0 ); mcuCol < frm.nMcusCol; mcuCol++ {
            for _, sc := range comps {
                cmp := &frm.components[sc.compIndex]
                for v := uint( 0 ); v < uint( cmp.vSF ); v++ {
                    for h := uint( 0 ); h < uint( cmp.hSF ); h++ {
                        duRow := mcuRow*uint( cmp.vSF ) + v
                        duCol := mcuCol*uint( cmp.hSF ) + h
                        if duRow >= cmp.duRows || duCol >= cmp.duPerRow {
                            continue    // padding data unit beyond the image edge: not stored
                        }
                        idx := duRow*cmp.duPerRow + duCol
                        du, newDC, err := decodeBlock( br, cmp.hDC, cmp.hAC, cmp.prevDC )
                        if err != nil {
                            return wrapError( HuffmanDecodeError, br.offset(), err,
                                "decoding data unit (component %d, MCU row %d col %d)",
                                cmp.id, mcuRow, mcuCol )
                        }
                        cmp.prevDC = newDC
                        cmp.iDCTdata[idx] = du
                    }
                }
            }
        }
    }
    return nil
}
