// Package clock turns wall-clock readings into the smooth phase angles that
// drive the wave parameters.
//
//   - [Sample]: a 12-hour clock reading with millisecond precision
//   - [Angles]: hour, minute and second hand angles in radians
//   - [Format]: the text shown by clock overlays
//   - [Source]: where readings come from (system, fixed, time-lapse)
//
// Angles are computed from fractional clock values, so the hands sweep
// continuously instead of stepping once per second. Each angle starts at
// [Midnight] and decreases as time advances (clockwise on screen).
package clock
