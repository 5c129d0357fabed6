// Package session accumulates driving statistics over one logging session.
package session

import (
	"math"

	"github.com/samber/lo"
)

const (
	kmhToMs = 3.6

	// samples at or below this speed are excluded from the average
	movingSpeedKmh = 5
)

// Car tracks running statistics for the player's car
type Car struct {
	speeds []float64
	steers []float64

	MaxSpeed float64
	MaxGas   float64
	MaxBrake float64
	MaxSteer float64
	Distance float64 // metres

	prevSpeed   float64
	prevElapsed float64
	hasPrev     bool
}

// Summary is the derived statistics of a Car
type Summary struct {
	TopSpeedKmh     float64
	AverageSpeedKmh float64
	DistanceKm      float64
	MaxThrottle     float64
	MaxBrake        float64
	AverageSteer    float64
	MaxSteer        float64
}

func NewCar() *Car {
	return &Car{}
}

// Update folds one sample in. speed is km/h, elapsed is seconds since the
// session started.
func (c *Car) Update(speed, gas, brake, elapsed, steer float64) {
	c.speeds = append(c.speeds, speed)
	c.steers = append(c.steers, steer)

	c.MaxSpeed = max(c.MaxSpeed, speed)
	c.MaxGas = max(c.MaxGas, gas)
	c.MaxBrake = max(c.MaxBrake, brake)
	c.MaxSteer = max(c.MaxSteer, math.Abs(steer))

	// trapezoidal rule
	if c.hasPrev {
		dt := elapsed - c.prevElapsed
		avgSpeedMs := ((speed + c.prevSpeed) / 2) / kmhToMs
		c.Distance += avgSpeedMs * dt
	}

	c.prevSpeed = speed
	c.prevElapsed = elapsed
	c.hasPrev = true
}

// Samples returns how many updates have been applied
func (c *Car) Samples() int {
	return len(c.speeds)
}

// AverageSpeed is the mean over samples faster than 5 km/h
func (c *Car) AverageSpeed() float64 {
	moving := lo.Filter(c.speeds, func(s float64, _ int) bool {
		return s > movingSpeedKmh
	})

	return lo.Mean(moving)
}

// AverageSteer is the mean absolute steering input
func (c *Car) AverageSteer() float64 {
	return lo.MeanBy(c.steers, math.Abs)
}

func (c *Car) Summary() Summary {
	return Summary{
		TopSpeedKmh:     c.MaxSpeed,
		AverageSpeedKmh: c.AverageSpeed(),
		DistanceKm:      c.Distance / 1000,
		MaxThrottle:     c.MaxGas,
		MaxBrake:        c.MaxBrake,
		AverageSteer:    c.AverageSteer(),
		MaxSteer:        c.MaxSteer,
	}
}
