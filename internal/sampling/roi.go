package sampling

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle in source-frame pixel space.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Area returns the rectangle area in pixels.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// ROI describes the sub-rectangle of a frame scanned for text, together with
// the frame geometry it was resolved against.
type ROI struct {
	Rect        Rect
	Region      Region
	FrameWidth  int
	FrameHeight int
	Percentage  float64
}

// ResolveROI computes the scan rectangle for a frame. The region height in
// pixels is exactly percentage x frame height for every resolution; downstream
// detectors are resolution-sensitive, so this is a hard contract.
//
// Bottom and top regions span the full frame width. Left, right, and center
// are narrower horizontal bands positioned at the vertical mid-band.
func ResolveROI(frameWidth, frameHeight int, region Region, percentage float64) (ROI, error) {
	if frameWidth <= 0 || frameHeight <= 0 {
		return ROI{}, fmt.Errorf("resolve roi: invalid frame dimensions %dx%d", frameWidth, frameHeight)
	}
	if percentage <= 0 || percentage > 1 {
		return ROI{}, fmt.Errorf("resolve roi: percentage %v out of range (0, 1]", percentage)
	}

	height := int(math.Round(percentage * float64(frameHeight)))
	if height < 1 {
		height = 1
	}
	if height > frameHeight {
		height = frameHeight
	}

	rect := Rect{Width: frameWidth, Height: height}
	midY := (frameHeight - height) / 2

	switch region {
	case RegionBottom:
		rect.Y = frameHeight - height
	case RegionTop:
		rect.Y = 0
	case RegionMiddle:
		rect.Y = midY
	case RegionLeft:
		rect.Width = frameWidth / 3
		rect.X = 0
		rect.Y = midY
	case RegionRight:
		rect.Width = frameWidth / 3
		rect.X = frameWidth - rect.Width
		rect.Y = midY
	case RegionCenter:
		rect.Width = frameWidth / 2
		rect.X = (frameWidth - rect.Width) / 2
		rect.Y = midY
	default:
		return ROI{}, fmt.Errorf("resolve roi: unknown region %v", region)
	}

	if rect.Width < 1 {
		rect.Width = 1
	}

	return ROI{
		Rect:        rect,
		Region:      region,
		FrameWidth:  frameWidth,
		FrameHeight: frameHeight,
		Percentage:  percentage,
	}, nil
}
