// Package render turns PDF pages into images on top of the bridge.
//
// It follows the usual pdfium recipe: load the page, fit its aspect ratio
// into the requested box, allocate a BGRA bitmap, paint the background,
// render with annotations and LCD-optimized text, then copy the pixels
// into an *image.NRGBA. Every native resource is released before a call
// returns, including on error paths.
//
//	doc, err := render.Open(b, "report.pdf", "")
//	if err != nil {
//	    return err
//	}
//	defer doc.Close()
//
//	img, err := doc.RenderPage(0, 1024, 1024, nil)
//
// Unlike the bridge, this package reports failures as *errors.Error values
// carrying pdfium's error code where one applies.
package render
