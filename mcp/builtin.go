package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Canned observations for the demo weather tool. The labs exercise tool
// calling mechanics, not a real weather backend.
var weatherByCity = map[string]string{
	"kingston":      "31C, sunny with a light sea breeze",
	"montego bay":   "29C, scattered clouds",
	"london":        "12C, light rain",
	"san francisco": "17C, fog clearing by noon",
	"tokyo":         "22C, clear",
}

// RegisterBuiltins adds the demo tools used by the tool-calling labs.
func RegisterBuiltins(reg *Registry) error {
	currentTime := mcptypes.NewTool("current_time",
		mcptypes.WithDescription("Returns the current date and time. Use when asked about today's date or the time."),
		mcptypes.WithString("timezone",
			mcptypes.Description("IANA timezone name, e.g. America/Jamaica. Defaults to the local timezone."),
		),
	)
	if err := reg.Register(currentTime, currentTimeHandler); err != nil {
		return err
	}

	getWeather := mcptypes.NewTool("get_weather",
		mcptypes.WithDescription("Returns current weather conditions for a city."),
		mcptypes.WithString("city",
			mcptypes.Required(),
			mcptypes.Description("City name, e.g. Kingston."),
		),
	)
	if err := reg.Register(getWeather, getWeatherHandler); err != nil {
		return err
	}

	calculate := mcptypes.NewTool("calculate",
		mcptypes.WithDescription("Performs basic arithmetic on two numbers."),
		mcptypes.WithString("operation",
			mcptypes.Required(),
			mcptypes.Description("One of: add, subtract, multiply, divide."),
			mcptypes.Enum("add", "subtract", "multiply", "divide"),
		),
		mcptypes.WithNumber("a", mcptypes.Required()),
		mcptypes.WithNumber("b", mcptypes.Required()),
	)
	return reg.Register(calculate, calculateHandler)
}

func currentTimeHandler(_ context.Context, args map[string]any) (string, error) {
	now := time.Now()

	if tz, ok := args["timezone"].(string); ok && tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return "", fmt.Errorf("unknown timezone %q: %w", tz, err)
		}
		now = now.In(loc)
	}

	return now.Format("Monday, January 2 2006, 3:04 PM MST"), nil
}

func getWeatherHandler(_ context.Context, args map[string]any) (string, error) {
	city, ok := args["city"].(string)
	if !ok || city == "" {
		return "", fmt.Errorf("city argument is required")
	}

	if conditions, found := weatherByCity[strings.ToLower(strings.TrimSpace(city))]; found {
		return fmt.Sprintf("Weather in %s: %s", city, conditions), nil
	}
	return fmt.Sprintf("Weather in %s: 24C, partly cloudy", city), nil
}

func calculateHandler(_ context.Context, args map[string]any) (string, error) {
	op, _ := args["operation"].(string)
	a, aok := toFloat(args["a"])
	b, bok := toFloat(args["b"])
	if !aok || !bok {
		return "", fmt.Errorf("a and b must be numbers")
	}

	var result float64
	switch op {
	case "add":
		result = a + b
	case "subtract":
		result = a - b
	case "multiply":
		result = a * b
	case "divide":
		if b == 0 {
			return "", fmt.Errorf("division by zero")
		}
		result = a / b
	default:
		return "", fmt.Errorf("unknown operation %q", op)
	}

	return fmt.Sprintf("%g", result), nil
}

// toFloat accepts the numeric shapes JSON decoding produces.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
