package calendar

// Season is a meteorological season.
type Season int

const (
	Winter Season = iota
	Spring
	Summer
	Fall
)

// Seasons lists every season in index order.
var Seasons = [...]Season{Winter, Spring, Summer, Fall}

// SeasonCount is the number of seasons.
const SeasonCount = len(Seasons)

func (s Season) String() string {
	switch s {
	case Winter:
		return "winter"
	case Spring:
		return "spring"
	case Summer:
		return "summer"
	case Fall:
		return "fall"
	default:
		return "unknown"
	}
}

// SeasonOf maps a month to its season. December through February is winter.
func SeasonOf(month int) (Season, error) {
	if err := ValidateMonth(month); err != nil {
		return 0, err
	}
	switch {
	case month == 12 || month <= 2:
		return Winter, nil
	case month <= 5:
		return Spring, nil
	case month <= 8:
		return Summer, nil
	default:
		return Fall, nil
	}
}

// ParseSeason converts a season name as produced by String.
func ParseSeason(name string) (Season, bool) {
	for _, s := range Seasons {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}
