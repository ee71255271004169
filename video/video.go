//go:build screen

package video

import (
	"encoding/binary"
	"fmt"
	"image"
	"os"

	"github.com/d21d3q/framebuffer"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"coopdoor/logger"
)

// ScreenSupported returns whether screen support is compiled in.
func ScreenSupported() bool {
	return true
}

const fontPath = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"

// Video renders the two status lines on a 16bpp framebuffer.
type Video struct {
	dc              *gg.Context
	pixBuffer       []byte
	backBuffer      []byte
	rgbaImage       *image.RGBA
	width           int
	height          int
	lineLengthBytes int
	initialized     bool

	line1, line2 string
	day          bool
	lit          bool
}

// New opens /dev/fb0.
func New() (*Video, error) {
	v := &Video{lit: true}
	if err := v.init(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Video) init() error {
	fbLowLevel, err := framebuffer.OpenFrameBuffer("/dev/fb0", os.O_RDWR)
	if err != nil {
		return fmt.Errorf("open framebuffer: %w", err)
	}

	varInfo, err := fbLowLevel.VarScreenInfo()
	if err != nil {
		return fmt.Errorf("get variable screen info: %w", err)
	}
	fixedInfo, err := fbLowLevel.FixScreenInfo()
	if err != nil {
		return fmt.Errorf("get fixed screen info: %w", err)
	}

	v.pixBuffer, err = fbLowLevel.Pixels()
	if err != nil {
		return fmt.Errorf("get pixel data: %w", err)
	}

	v.width = int(varInfo.XRes)
	v.height = int(varInfo.YRes)
	v.lineLengthBytes = int(fixedInfo.LineLength)
	v.backBuffer = make([]byte, v.height*v.lineLengthBytes)

	logger.Named("video").Infof("framebuffer %dx%d, %d bpp, stride %d bytes",
		v.width, v.height, varInfo.BitsPerPixel, v.lineLengthBytes)

	v.rgbaImage = image.NewRGBA(image.Rect(0, 0, v.width, v.height))
	v.dc = gg.NewContextForRGBA(v.rgbaImage)
	v.initialized = true

	v.clear()
	return nil
}

func (v *Video) clear() {
	for i := range v.pixBuffer {
		v.pixBuffer[i] = 0
	}
}

func (v *Video) update() {
	if !v.initialized {
		return
	}
	for y := 0; y < v.height; y++ {
		for x := 0; x < v.width; x++ {
			r, g, b, _ := v.rgbaImage.At(x, y).RGBA()
			r5 := uint16(r >> (16 - 5))
			g6 := uint16(g >> (16 - 6))
			b5 := uint16(b >> (16 - 5))
			pixel16 := (r5 << 11) | (g6 << 5) | b5
			fbIdx := (y * v.lineLengthBytes) + (x * 2)
			if fbIdx+1 < len(v.backBuffer) {
				binary.LittleEndian.PutUint16(v.backBuffer[fbIdx:], pixel16)
			}
		}
	}
	copy(v.pixBuffer, v.backBuffer)
}

func (v *Video) setFontSize(size int) {
	if err := v.dc.LoadFontFace(fontPath, float64(size)); err != nil {
		v.dc.SetFontFace(basicfont.Face7x13)
	}
}

func (v *Video) drawCentered(text string, y float64, r, g, b float64) {
	v.dc.SetRGB(r, g, b)
	v.dc.DrawStringAnchored(text, float64(v.width/2), y, 0.5, 0.5)
}

func (v *Video) redraw() {
	if !v.initialized {
		return
	}
	if !v.lit {
		v.clear()
		return
	}
	if v.day {
		v.dc.SetRGB(0, 0.5, 0) // Green background
	} else {
		v.dc.SetRGB(0, 0, 0.3) // Dark blue background
	}
	v.dc.DrawRectangle(0, 0, float64(v.width), float64(v.height))
	v.dc.Fill()

	v.setFontSize(64)
	v.drawCentered(v.line1, float64(v.height/2)-40, 1, 1, 1)
	v.setFontSize(48)
	v.drawCentered(v.line2, float64(v.height/2)+40, 1, 1, 0)
	v.update()
}

// Show renders the two status lines.
func (v *Video) Show(line1, line2 string) {
	v.line1, v.line2 = line1, line2
	v.redraw()
}

// Backlight blanks the screen when off.
func (v *Video) Backlight(on bool) {
	v.lit = on
	v.redraw()
}

// Daylight switches the background colour.
func (v *Video) Daylight(day bool) {
	v.day = day
	v.redraw()
}

// Fault shows an error screen.
func (v *Video) Fault(msg string) {
	if !v.initialized {
		return
	}
	v.dc.SetRGB(0.7, 0, 0) // Red
	v.dc.DrawRectangle(0, 0, float64(v.width), float64(v.height))
	v.dc.Fill()

	v.setFontSize(64)
	v.drawCentered("ERROR", float64(v.height/2)-40, 1, 1, 1)
	v.setFontSize(32)
	v.drawCentered(msg, float64(v.height/2)+40, 1, 1, 0)
	v.update()
}

// Shutdown blanks the screen.
func (v *Video) Shutdown() {
	if !v.initialized {
		return
	}
	v.clear()
}

// Release blanks the screen and stops drawing.
func (v *Video) Release() error {
	v.clear()
	v.initialized = false
	return nil
}
