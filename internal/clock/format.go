package clock

import "fmt"

// Format controls how a Sample is rendered for overlays.
type Format struct {
	// Meridiem appends " AM" or " PM".
	Meridiem bool
}

// Display renders s as h:mm:ss on a 12-hour dial, where hour 0 reads 12.
func (f Format) Display(s Sample) string {
	h := s.Hours % 12
	if h == 0 {
		h = 12
	}
	out := fmt.Sprintf("%d:%02d:%02d", h, s.Minutes, s.Seconds)
	if f.Meridiem {
		if s.PM {
			return out + " PM"
		}
		return out + " AM"
	}
	return out
}
