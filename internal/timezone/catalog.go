package timezone

import (
	"sort"
	"time"
)

// Option is a selectable timezone entry grouped by country for the picker.
// Offset is informational only (winter/summer form for DST zones); actual
// conversions always go through the rule provider.
type Option struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Country string `json:"country"`
	Offset  string `json:"offset"`
}

// Options is the curated catalog of selectable timezones.
var Options = []Option{
	{Name: "Asia/Tokyo", Label: "Tokyo (Japan)", Country: "Japan", Offset: "+09:00"},

	{Name: "America/New_York", Label: "New York (US Eastern)", Country: "United States", Offset: "-05:00/-04:00"},
	{Name: "America/Chicago", Label: "Chicago (US Central)", Country: "United States", Offset: "-06:00/-05:00"},
	{Name: "America/Denver", Label: "Denver (US Mountain)", Country: "United States", Offset: "-07:00/-06:00"},
	{Name: "America/Los_Angeles", Label: "Los Angeles (US Pacific)", Country: "United States", Offset: "-08:00/-07:00"},
	{Name: "America/Anchorage", Label: "Anchorage (Alaska)", Country: "United States", Offset: "-09:00/-08:00"},
	{Name: "Pacific/Honolulu", Label: "Honolulu (Hawaii)", Country: "United States", Offset: "-10:00"},

	{Name: "Europe/London", Label: "London (United Kingdom)", Country: "United Kingdom", Offset: "+00:00/+01:00"},
	{Name: "Europe/Paris", Label: "Paris (France)", Country: "France", Offset: "+01:00/+02:00"},
	{Name: "Europe/Berlin", Label: "Berlin (Germany)", Country: "Germany", Offset: "+01:00/+02:00"},
	{Name: "Europe/Rome", Label: "Rome (Italy)", Country: "Italy", Offset: "+01:00/+02:00"},
	{Name: "Europe/Madrid", Label: "Madrid (Spain)", Country: "Spain", Offset: "+01:00/+02:00"},
	{Name: "Europe/Amsterdam", Label: "Amsterdam (Netherlands)", Country: "Netherlands", Offset: "+01:00/+02:00"},
	{Name: "Europe/Stockholm", Label: "Stockholm (Sweden)", Country: "Sweden", Offset: "+01:00/+02:00"},
	{Name: "Europe/Moscow", Label: "Moscow (Russia)", Country: "Russia", Offset: "+03:00"},

	{Name: "Asia/Shanghai", Label: "Shanghai (China)", Country: "China", Offset: "+08:00"},
	{Name: "Asia/Hong_Kong", Label: "Hong Kong", Country: "Hong Kong", Offset: "+08:00"},
	{Name: "Asia/Taipei", Label: "Taipei (Taiwan)", Country: "Taiwan", Offset: "+08:00"},
	{Name: "Asia/Seoul", Label: "Seoul (South Korea)", Country: "South Korea", Offset: "+09:00"},
	{Name: "Asia/Singapore", Label: "Singapore", Country: "Singapore", Offset: "+08:00"},
	{Name: "Asia/Bangkok", Label: "Bangkok (Thailand)", Country: "Thailand", Offset: "+07:00"},
	{Name: "Asia/Jakarta", Label: "Jakarta (Indonesia)", Country: "Indonesia", Offset: "+07:00"},
	{Name: "Asia/Manila", Label: "Manila (Philippines)", Country: "Philippines", Offset: "+08:00"},
	{Name: "Asia/Kolkata", Label: "Kolkata (India)", Country: "India", Offset: "+05:30"},
	{Name: "Asia/Dubai", Label: "Dubai (UAE)", Country: "United Arab Emirates", Offset: "+04:00"},

	{Name: "Australia/Sydney", Label: "Sydney (Australia East)", Country: "Australia", Offset: "+10:00/+11:00"},
	{Name: "Australia/Melbourne", Label: "Melbourne (Australia East)", Country: "Australia", Offset: "+10:00/+11:00"},
	{Name: "Australia/Perth", Label: "Perth (Australia West)", Country: "Australia", Offset: "+08:00"},
	{Name: "Australia/Adelaide", Label: "Adelaide (Australia Central)", Country: "Australia", Offset: "+09:30/+10:30"},
	{Name: "Pacific/Auckland", Label: "Auckland (New Zealand)", Country: "New Zealand", Offset: "+12:00/+13:00"},

	{Name: "America/Toronto", Label: "Toronto (Canada East)", Country: "Canada", Offset: "-05:00/-04:00"},
	{Name: "America/Vancouver", Label: "Vancouver (Canada West)", Country: "Canada", Offset: "-08:00/-07:00"},

	{Name: "America/Sao_Paulo", Label: "Sao Paulo (Brazil)", Country: "Brazil", Offset: "-03:00"},

	{Name: "Africa/Cairo", Label: "Cairo (Egypt)", Country: "Egypt", Offset: "+02:00/+03:00"},
	{Name: "Africa/Johannesburg", Label: "Johannesburg (South Africa)", Country: "South Africa", Offset: "+02:00"},
	{Name: "America/Mexico_City", Label: "Mexico City (Mexico)", Country: "Mexico", Offset: "-06:00"},
	{Name: "America/Argentina/Buenos_Aires", Label: "Buenos Aires (Argentina)", Country: "Argentina", Offset: "-03:00"},
}

// ByCountry groups the catalog by country name.
func ByCountry() map[string][]Option {
	grouped := make(map[string][]Option)
	for _, opt := range Options {
		grouped[opt.Country] = append(grouped[opt.Country], opt)
	}
	return grouped
}

// Countries returns the catalog's country names in alphabetical order.
func Countries() []string {
	seen := make(map[string]struct{})
	countries := make([]string, 0)
	for _, opt := range Options {
		if _, ok := seen[opt.Country]; ok {
			continue
		}
		seen[opt.Country] = struct{}{}
		countries = append(countries, opt.Country)
	}
	sort.Strings(countries)
	return countries
}

// ForCountry returns the catalog entries for one country.
func ForCountry(country string) []Option {
	options := make([]Option, 0)
	for _, opt := range Options {
		if opt.Country == country {
			options = append(options, opt)
		}
	}
	return options
}

// OffsetAt formats the UTC offset of tz at instant t, e.g. "+09:00".
func (e *Engine) OffsetAt(tz string, t time.Time) (string, error) {
	loc, err := e.rules.Rules(tz)
	if err != nil {
		return "", err
	}
	return t.In(loc).Format("-07:00"), nil
}

// CurrentTimeIn formats the current wall-clock time in tz.
func (e *Engine) CurrentTimeIn(tz string) (string, error) {
	loc, err := e.rules.Rules(tz)
	if err != nil {
		return "", err
	}
	return time.Now().In(loc).Format("2006-01-02 15:04:05"), nil
}
