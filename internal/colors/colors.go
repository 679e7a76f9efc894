// Package colors holds the participant color palette: ten vivid colors
// chosen to stay distinguishable when events from several people overlap.
package colors

import (
	"math/rand"
)

type Color struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

var Universal = []Color{
	{Name: "Red", Value: "#DC143C", Description: "vivid red"},
	{Name: "Orange", Value: "#FF8C00", Description: "vivid orange"},
	{Name: "Yellow", Value: "#FFD700", Description: "vivid yellow"},
	{Name: "Lime", Value: "#32CD32", Description: "vivid yellow-green"},
	{Name: "Green", Value: "#228B22", Description: "vivid green"},
	{Name: "Blue", Value: "#0000FF", Description: "vivid blue"},
	{Name: "Cyan", Value: "#00FFFF", Description: "vivid cyan"},
	{Name: "Purple", Value: "#8A2BE2", Description: "vivid purple"},
	{Name: "Pink", Value: "#FF1493", Description: "vivid pink"},
	{Name: "Brown", Value: "#A0522D", Description: "vivid brown"},
}

// Random picks any palette color.
func Random() string {
	return Universal[rand.Intn(len(Universal))].Value
}

// NameOf returns the palette name for a color value, or "custom" for values
// outside the palette.
func NameOf(value string) string {
	for _, c := range Universal {
		if c.Value == value {
			return c.Name
		}
	}
	return "custom"
}

// Available returns palette values not present in used.
func Available(used []string) []string {
	taken := make(map[string]struct{}, len(used))
	for _, u := range used {
		taken[u] = struct{}{}
	}
	available := make([]string, 0, len(Universal))
	for _, c := range Universal {
		if _, ok := taken[c.Value]; !ok {
			available = append(available, c.Value)
		}
	}
	return available
}

// RandomAvailable picks a random unused palette color, falling back to the
// full palette when every color is taken.
func RandomAvailable(used []string) string {
	available := Available(used)
	if len(available) == 0 {
		return Random()
	}
	return available[rand.Intn(len(available))]
}
