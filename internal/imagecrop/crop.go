// Package imagecrop computes centered-square crop geometry for stored
// images. The server never touches pixels; clients apply the returned
// percentages as CSS.
package imagecrop

// Crop describes a rectangular window [X0,X1)x[Y0,Y1) over an image.
type Crop struct {
	ImageWidth  int `json:"imageWidth"`
	ImageHeight int `json:"imageHeight"`
	X0          int `json:"x0"`
	X1          int `json:"x1"`
	Y0          int `json:"y0"`
	Y1          int `json:"y1"`
}

// CenteredSquare crops the largest centered square out of a width x height
// image.
func CenteredSquare(width, height int) Crop {
	x0, x1 := 0, width
	y0, y1 := 0, height

	if height > width {
		y0 = (height - width) / 2
		y1 = (height + width) / 2
	} else if width > height {
		x0 = (width - height) / 2
		x1 = (width + height) / 2
	}

	return Crop{
		ImageWidth:  width,
		ImageHeight: height,
		X0:          x0,
		X1:          x1,
		Y0:          y0,
		Y1:          y1,
	}
}

func (c Crop) CropWidth() int  { return c.X1 - c.X0 }
func (c Crop) CropHeight() int { return c.Y1 - c.Y0 }

// ApplyLeft/ApplyTop/ApplyWidth/ApplyHeight position the image inside a
// container sized to the crop window, as percentages of the window.

func (c Crop) ApplyLeft() float64 {
	return -100 * float64(c.X0) / float64(c.CropWidth())
}

func (c Crop) ApplyTop() float64 {
	return -100 * float64(c.Y0) / float64(c.CropHeight())
}

func (c Crop) ApplyWidth() float64 {
	return 100 * float64(c.ImageWidth) / float64(c.CropWidth())
}

func (c Crop) ApplyHeight() float64 {
	return 100 * float64(c.ImageHeight) / float64(c.CropHeight())
}

// ShowLeft/ShowTop/ShowWidth/ShowHeight outline the crop window over the
// full image, as percentages of the image.

func (c Crop) ShowLeft() float64 {
	return 100 * float64(c.X0) / float64(c.ImageWidth)
}

func (c Crop) ShowTop() float64 {
	return 100 * float64(c.Y0) / float64(c.ImageHeight)
}

func (c Crop) ShowWidth() float64 {
	return 100 * float64(c.CropWidth()) / float64(c.ImageWidth)
}

func (c Crop) ShowHeight() float64 {
	return 100 * float64(c.CropHeight()) / float64(c.ImageHeight)
}
