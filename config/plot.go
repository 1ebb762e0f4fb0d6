package config

import "fmt"

// PlotConfig sets the size of rendered images.
type PlotConfig struct {
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
}

func (c *PlotConfig) SetDefaults() {
	if c.WidthCm == 0 {
		c.WidthCm = 16
	}
	if c.HeightCm == 0 {
		c.HeightCm = 12
	}
}

func (c PlotConfig) Validate() error {
	if !(c.WidthCm > 0) || !(c.HeightCm > 0) {
		return fmt.Errorf("plot: image size must be positive, got %gx%g cm", c.WidthCm, c.HeightCm)
	}
	return nil
}
