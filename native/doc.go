// Package native binds a shared pdfium library without cgo.
//
// Open loads libpdfium with purego (dlopen on Unix, LoadLibrary on
// Windows), resolves every entry point the bridge uses and returns a
// Library implementing pdfiumbridge.Library:
//
//	lib, err := native.Open("/opt/pdfium/lib/libpdfium.so")
//	if err != nil {
//	    var missing *errors.MissingSymbolsError
//	    if stderrors.As(err, &missing) {
//	        // the build lacks part of the API
//	    }
//	    return err
//	}
//	defer lib.Close()
//
// Argument widths follow the pdfium headers: int parameters are int32,
// unsigned long results are read as uint32 (their value range on every
// platform pdfium supports), pointers to results are Go stack values.
package native
