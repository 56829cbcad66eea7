package imagecrop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCenteredSquareLandscape(t *testing.T) {
	c := CenteredSquare(200, 100)
	assert.Equal(t, 50, c.X0)
	assert.Equal(t, 150, c.X1)
	assert.Equal(t, 0, c.Y0)
	assert.Equal(t, 100, c.Y1)
	assert.Equal(t, 100, c.CropWidth())
	assert.Equal(t, 100, c.CropHeight())
}

func TestCenteredSquarePortrait(t *testing.T) {
	c := CenteredSquare(100, 200)
	assert.Equal(t, 0, c.X0)
	assert.Equal(t, 100, c.X1)
	assert.Equal(t, 50, c.Y0)
	assert.Equal(t, 150, c.Y1)
}

func TestCenteredSquareAlready(t *testing.T) {
	c := CenteredSquare(100, 100)
	assert.Equal(t, Crop{ImageWidth: 100, ImageHeight: 100, X0: 0, X1: 100, Y0: 0, Y1: 100}, c)
}

func TestApplyGeometry(t *testing.T) {
	c := CenteredSquare(200, 100)
	assert.InDelta(t, -50, c.ApplyLeft(), 1e-9)
	assert.InDelta(t, 0, c.ApplyTop(), 1e-9)
	assert.InDelta(t, 200, c.ApplyWidth(), 1e-9)
	assert.InDelta(t, 100, c.ApplyHeight(), 1e-9)
}

func TestShowGeometry(t *testing.T) {
	c := CenteredSquare(200, 100)
	assert.InDelta(t, 25, c.ShowLeft(), 1e-9)
	assert.InDelta(t, 0, c.ShowTop(), 1e-9)
	assert.InDelta(t, 50, c.ShowWidth(), 1e-9)
	assert.InDelta(t, 100, c.ShowHeight(), 1e-9)
}

func TestOddDimensionsStayInsideImage(t *testing.T) {
	c := CenteredSquare(101, 50)
	assert.GreaterOrEqual(t, c.X0, 0)
	assert.LessOrEqual(t, c.X1, 101)
	assert.Equal(t, 50, c.CropWidth())
}
