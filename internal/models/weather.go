package models

import "time"

// Weather is the sky condition recorded with a catch
type Weather string

const (
	WeatherSunny  Weather = "晴れ"
	WeatherCloudy Weather = "曇り"
	WeatherRain   Weather = "雨"
	WeatherWindy  Weather = "風強い"
)

// Weathers lists the selectable weather values in form order
var Weathers = []Weather{WeatherSunny, WeatherCloudy, WeatherRain, WeatherWindy}

// TimeOfDay is the coarse fishing session recorded with a catch
type TimeOfDay string

const (
	Morning TimeOfDay = "朝"
	Midday  TimeOfDay = "昼"
	Evening TimeOfDay = "夕方"
	Night   TimeOfDay = "夜"
)

// TimesOfDay lists the selectable sessions in form order
var TimesOfDay = []TimeOfDay{Morning, Midday, Evening, Night}

// TimeOfDayAt maps a clock time onto a session
func TimeOfDayAt(t time.Time) TimeOfDay {
	switch h := t.Hour(); {
	case h >= 4 && h < 10:
		return Morning
	case h >= 10 && h < 15:
		return Midday
	case h >= 15 && h < 19:
		return Evening
	default:
		return Night
	}
}

// MarineSnapshot holds the hourly marine and atmospheric values used for scoring.
// Units are metric: metres, degrees Celsius, m/s and hPa.
type MarineSnapshot struct {
	WaveHeightM     float64
	SeaSurfaceTempC float64
	WindSpeedMS     float64
	WindGustMS      float64
	PressureHPa     float64
	Hour            time.Time // Start of the hourly bucket the values were taken from
	FetchedAt       time.Time
}
