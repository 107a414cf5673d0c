package network

import (
	"math"

	"github.com/muesli/clusters"
)

// Camera settings for the 3D projection.
const (
	cameraDistance = 2.5
	cameraTilt     = 0.35 // radians, rotation about the x-axis
	viewScale      = 0.9  // screen half-size per unit of camera space
)

// projected is a node position after rotation and perspective projection.
type projected struct {
	X, Y  float64              // Screen position in pixels
	Scale float64              // Perspective factor, larger when nearer
	View  clusters.Coordinates // Position in camera space
}

// projector maps graph coordinates to screen space for one frame.
type projector struct {
	center        clusters.Coordinates
	yaw           float64
	width, height float64
}

// camera is the eye position in camera space.
var camera = clusters.Coordinates{0, -cameraDistance, 0}

// project rotates p about the graph center by the frame's yaw, tilts it, and
// applies a perspective divide along the camera's y-axis.
func (pr projector) project(p clusters.Coordinates) projected {
	x, y, z := p[0]-pr.center[0], p[1]-pr.center[1], p[2]-pr.center[2]

	sinY, cosY := math.Sincos(pr.yaw)
	x, y = x*cosY-y*sinY, x*sinY+y*cosY

	sinT, cosT := math.Sincos(cameraTilt)
	y, z = y*cosT-z*sinT, y*sinT+z*cosT

	f := cameraDistance / (cameraDistance + y)
	half := math.Min(pr.width, pr.height) / 2

	return projected{
		X:     pr.width/2 + x*f*half*viewScale,
		Y:     pr.height/2 - z*f*half*viewScale,
		Scale: f,
		View:  clusters.Coordinates{x, y, z},
	}
}

// depth returns the distance from the camera, used to paint far objects first.
func depth(view clusters.Coordinates) float64 {
	return camera.Distance(view)
}

// midpoint returns the point halfway between a and b.
func midpoint(a, b clusters.Coordinates) clusters.Coordinates {
	m := make(clusters.Coordinates, len(a))
	for i := range a {
		m[i] = (a[i] + b[i]) / 2
	}
	return m
}
