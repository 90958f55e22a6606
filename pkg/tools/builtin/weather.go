package builtin

import (
	"context"
	"fmt"
	"strings"
)

type cityWeather struct {
	temp      int
	condition string
	humidity  int
}

// Mock conditions for the three supported cities, keyed by lowercase name.
var weatherData = map[string]cityWeather{
	"bangalore": {temp: 28, condition: "Partly Cloudy", humidity: 65},
	"berlin":    {temp: 10, condition: "Cloudy", humidity: 75},
	"new york":  {temp: 15, condition: "Sunny", humidity: 55},
}

// Listed explicitly to keep the "not available" message deterministic.
var supportedCities = []string{"bangalore", "berlin", "new york"}

// WeatherTool returns mock weather for a small set of cities.
type WeatherTool struct{}

func NewWeatherTool() *WeatherTool { return &WeatherTool{} }

func (t *WeatherTool) Name() string { return "get_weather" }

func (t *WeatherTool) Description() string { return "Get weather for Bangalore, Berlin, or New York" }

func (t *WeatherTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"city": map[string]any{
				"type":        "string",
				"description": "The name of the city to get weather for",
			},
		},
		"required": []string{"city"},
	}
}

func (t *WeatherTool) Execute(_ context.Context, args map[string]any) (string, error) {
	city, err := stringArg(args, "city")
	if err != nil {
		return fmt.Sprintf("Error getting weather: %v", err), nil
	}

	data, ok := weatherData[strings.ToLower(strings.TrimSpace(city))]
	if !ok {
		return fmt.Sprintf("Weather data not available for %s. Available cities: %s",
			city, strings.Join(supportedCities, ", ")), nil
	}

	return fmt.Sprintf("Weather in %s: %d°C, %s, Humidity: %d%%",
		city, data.temp, data.condition, data.humidity), nil
}
