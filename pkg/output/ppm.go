package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// WritePPM writes the framebuffer as a plain-text PPM (P3) image. Rows
// are written from the top of the image (framebuffer row Height-1) down
// to row 0, one "R G B" triple per line.
func WritePPM(w io.Writer, fb *renderer.Framebuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return err
	}

	for row := fb.Height - 1; row >= 0; row-- {
		for col := 0; col < fb.Width; col++ {
			c := fb.Color(col, row)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
