package weather

// CodeInfo is the human label and icon for a WMO weather code.
type CodeInfo struct {
	Condition string
	Emoji     string
}

// wmoCodes maps WMO weather codes to display info.
var wmoCodes = map[int]CodeInfo{
	0:  {"Clear", "☀️"},
	1:  {"Mostly Clear", "🌤️"},
	2:  {"Partly Cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Foggy", "🌫️"},
	48: {"Foggy", "🌫️"},
	51: {"Light Drizzle", "🌦️"},
	53: {"Drizzle", "🌦️"},
	55: {"Heavy Drizzle", "🌧️"},
	61: {"Light Rain", "🌧️"},
	63: {"Rain", "🌧️"},
	65: {"Heavy Rain", "🌧️"},
	71: {"Light Snow", "🌨️"},
	73: {"Snow", "🌨️"},
	75: {"Heavy Snow", "❄️"},
	77: {"Snow Grains", "🌨️"},
	80: {"Light Showers", "🌦️"},
	81: {"Showers", "🌧️"},
	82: {"Heavy Showers", "🌧️"},
	85: {"Snow Showers", "🌨️"},
	86: {"Heavy Snow Showers", "❄️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm + Hail", "⛈️"},
	99: {"Thunderstorm + Hail", "⛈️"},
}

// CodeLookup returns the info for a WMO code, with a generic fallback for
// codes outside the table.
func CodeLookup(code int) CodeInfo {
	if info, ok := wmoCodes[code]; ok {
		return info
	}
	return CodeInfo{Condition: "Unknown", Emoji: "🌡️"}
}
