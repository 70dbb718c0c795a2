package models

// Area is a named coastal fishing location with known coordinates
type Area struct {
	Name      string  `json:"name" yaml:"name"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Region    string  `json:"region,omitempty" yaml:"region,omitempty"` // e.g. "千葉"
}
